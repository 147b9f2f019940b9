//go:build linux && cgo

package egl_test

import (
	"errors"
	"image"
	"testing"

	"deedles.dev/wlgl/gpu"
	"deedles.dev/wlgl/gpu/egl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type window struct {
	w, h   int
	frames []image.Image
}

func (win *window) Size() (int, int) { return win.w, win.h }

func (win *window) Present(frame image.Image) error {
	win.frames = append(win.frames, frame)
	return nil
}

func TestUnsupportedPlatform(t *testing.T) {
	d := egl.New()
	_, err := d.GetDisplay(gpu.NativeDisplay{Platform: gpu.PlatformWayland})
	assert.ErrorIs(t, err, egl.ErrUnsupportedPlatform)
}

func TestUnknownHandle(t *testing.T) {
	d := egl.New()
	_, _, err := d.Initialize(42)
	assert.ErrorIs(t, err, egl.ErrUnknownHandle)
}

// open returns an initialized surfaceless display, skipping the test if
// the machine has no usable EGL implementation.
func open(t *testing.T) (*egl.Driver, gpu.Display) {
	t.Helper()

	d := egl.New()
	display, err := d.GetDisplay(gpu.NativeDisplay{Platform: gpu.PlatformSurfaceless})
	if err != nil {
		t.Skip(err)
	}
	_, _, err = d.Initialize(display)
	if err != nil {
		t.Skip(err)
	}
	return d, display
}

func TestSwapBuffers(t *testing.T) {
	d, display := open(t)

	configs, err := d.ChooseConfigs(display, gpu.ConfigFilter{RedSize: 8, GreenSize: 8, BlueSize: 8, AlphaSize: 8, Version: gpu.OpenGLES2})
	require.NoError(t, err)
	if len(configs) == 0 {
		t.Skip("no OpenGL ES 2.0 pbuffer configuration")
	}

	win := &window{w: 8, h: 4}
	surface, err := d.CreateWindowSurface(display, configs[0], win)
	require.NoError(t, err)
	ctx, err := d.CreateContext(display, configs[0], gpu.OpenGLES2)
	require.NoError(t, err)
	require.NoError(t, d.MakeCurrent(display, surface, surface, ctx))

	other, err := d.CreateContext(display, configs[0], gpu.OpenGLES2)
	require.NoError(t, err)
	err = d.MakeCurrent(display, surface, surface, other)
	assert.True(t, errors.Is(err, egl.ErrContextBound))

	require.NoError(t, d.SwapBuffers(display, surface))
	require.Len(t, win.frames, 1)
	assert.Equal(t, image.Rect(0, 0, 8, 4), win.frames[0].Bounds())
}
