package wlgl

import (
	"errors"
	"fmt"

	"deedles.dev/wlgl/gpu"
)

var (
	ErrCreateBuffer = errors.New("failed to create vertex buffer")
	ErrSwapBuffers  = errors.New("failed to swap buffers")
)

// SubmitFrame clears the window, draws the triangle with the current
// program and swaps the window surface's buffers to present it.
func SubmitFrame(gl gpu.GL, egl gpu.EGL, binding *Binding, cfg Config) error {
	c := cfg.ClearColor
	gl.ClearColor(c[0], c[1], c[2], c[3])
	gl.Clear(gpu.ColorBufferBit)

	buf := gl.GenBuffer()
	if buf == 0 {
		return ErrCreateBuffer
	}
	gl.BindBuffer(gpu.ArrayBuffer, buf)
	gl.BufferData(gpu.ArrayBuffer, cfg.Triangle[:], gpu.StaticDraw)
	gl.VertexAttribPointer(cfg.AttributeIndex, 3, gpu.Float, false, 0, 0)
	gl.EnableVertexAttribArray(cfg.AttributeIndex)
	gl.DrawArrays(gpu.Triangles, 0, len(cfg.Triangle)/3)

	err := egl.SwapBuffers(binding.Display, binding.Surface)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSwapBuffers, err)
	}
	return nil
}
