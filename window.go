package wlgl

import (
	"encoding/binary"
	"fmt"
	"image"

	wl "deedles.dev/wlgl/client"
	"deedles.dev/ximage/format"
	"golang.org/x/image/draw"
)

// Window is a fixed size gpu.NativeWindow that presents frames
// through a wl_shm buffer attached to a shell's surface.
type Window struct {
	shell         *Shell
	width, height int
	buf           *wl.ImageBuffer
	presented     int
}

func NewWindow(shell *Shell, width, height int) (*Window, error) {
	buf, err := wl.NewImageBuffer(shell.session.shm, int32(width), int32(height))
	if err != nil {
		return nil, fmt.Errorf("create image buffer: %w", err)
	}

	return &Window{
		shell:  shell,
		width:  width,
		height: height,
		buf:    buf,
	}, nil
}

func (w *Window) Size() (width, height int) {
	return w.width, w.height
}

// Present copies frame into the window's buffer, scaling it if its
// size doesn't match, and then attaches, damages and commits the
// surface. A full size *image.RGBA, such as a framebuffer readback, is
// copied byte for byte with only the channel order changed.
func (w *Window) Present(frame image.Image) error {
	dst := w.buf.Image()
	rgba, raw := frame.(*image.RGBA)
	switch {
	case raw && (rgba.Rect.Size() == dst.Rect.Size()):
		copyFramebuffer(dst, rgba)
	case frame.Bounds().Size() == dst.Bounds().Size():
		draw.Copy(dst, image.Point{}, frame, frame.Bounds(), draw.Src, nil)
	default:
		draw.NearestNeighbor.Scale(dst, dst.Bounds(), frame, frame.Bounds(), draw.Src, nil)
	}

	w.shell.framed = true
	w.buf.Present(w.shell.surface)
	w.presented++

	err := w.shell.session.client.Flush()
	if err != nil {
		return fmt.Errorf("flush: %w", err)
	}
	return nil
}

// Presented returns the number of frames that have been presented.
func (w *Window) Presented() int {
	return w.presented
}

func (w *Window) Destroy() error {
	return w.buf.Destroy()
}

// copyFramebuffer writes the RGBA bytes of src into dst as ARGB8888
// without converting them through a color.Color, which would drop the
// color channels of pixels whose alpha is zero.
func copyFramebuffer(dst *format.Image, src *image.RGBA) {
	w, h := src.Rect.Dx(), src.Rect.Dy()
	for y := 0; y < h; y++ {
		row := src.Pix[y*src.Stride : y*src.Stride+w*4]
		out := dst.Pix[dst.PixOffset(dst.Rect.Min.X, dst.Rect.Min.Y+y):]
		for i := 0; i < len(row); i += 4 {
			r, g, b, a := uint32(row[i]), uint32(row[i+1]), uint32(row[i+2]), uint32(row[i+3])
			binary.LittleEndian.PutUint32(out[i:], a<<24|r<<16|g<<8|b)
		}
	}
}
