package wlgl_test

import (
	"context"
	"image"
	"testing"
	"time"

	"deedles.dev/wlgl"
	"deedles.dev/wlgl/internal/compositortest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fill(pix []uint8, c ...uint8) {
	for i := 0; i < len(pix); i += len(c) {
		copy(pix[i:], c)
	}
}

func TestWindowPresent(t *testing.T) {
	framebuffer := image.NewRGBA(image.Rect(0, 0, 16, 8))
	fill(framebuffer.Pix, 0x00, 0x4c, 0x4c, 0x00)

	opaque := image.NewNRGBA(image.Rect(0, 0, 16, 8))
	fill(opaque.Pix, 0x10, 0x20, 0x30, 0xFF)

	small := image.NewRGBA(image.Rect(0, 0, 4, 2))
	fill(small.Pix, 0x10, 0x20, 0x30, 0xFF)

	tests := []struct {
		name  string
		frame image.Image
		pixel []byte
	}{
		{name: "Framebuffer", frame: framebuffer, pixel: []byte{0x4c, 0x4c, 0x00, 0x00}},
		{name: "Converted", frame: opaque, pixel: []byte{0x30, 0x20, 0x10, 0xFF}},
		{name: "Scaled", frame: small, pixel: []byte{0x30, 0x20, 0x10, 0xFF}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			server, session, shell := negotiate(t, compositortest.Options{})

			win, err := wlgl.NewWindow(shell, 16, 8)
			require.NoError(t, err)
			defer win.Destroy()

			require.NoError(t, win.Present(test.frame))
			require.NoError(t, session.Client().RoundTrip())
			assert.Equal(t, 1, win.Presented())

			snap := server.Snapshot()
			assert.Empty(t, snap.Violations)
			assert.Equal(t, 3, snap.Commits)
			assert.Equal(t, 1, snap.Attaches)
			assert.Equal(t, 1, snap.Damages)
			assert.Equal(t, int32(16), snap.FrameWidth)
			assert.Equal(t, int32(8), snap.FrameHeight)
			assert.Equal(t, int32(64), snap.FrameStride)
			require.Len(t, snap.Frame, 16*8*4)

			for i := 0; i < len(snap.Frame); i += 4 {
				require.Equal(t, test.pixel, snap.Frame[i:i+4], "pixel %v", i/4)
			}
		})
	}
}

func TestWindowReconfigure(t *testing.T) {
	server, session, shell := negotiate(t, compositortest.Options{Reconfigure: true})

	win, err := wlgl.NewWindow(shell, 16, 8)
	require.NoError(t, err)
	defer win.Destroy()
	require.NoError(t, win.Present(image.NewRGBA(image.Rect(0, 0, 16, 8))))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	for shell.Configures() < 2 {
		require.NoError(t, session.Client().Dispatch(ctx))
	}
	require.NoError(t, session.Client().RoundTrip())

	snap := server.Snapshot()
	assert.Empty(t, snap.Violations)
	require.Len(t, snap.Acks, 2)
	assert.Less(t, snap.LastIndex("xdg_surface.ack_configure"), snap.LastIndex("wl_surface.commit"))
	assert.Equal(t, 1, snap.Attaches)
}
