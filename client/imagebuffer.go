package wl

import (
	"errors"
	"fmt"
	"image"
	"os"

	"deedles.dev/wlgl/shm"
	"deedles.dev/ximage/format"
	"golang.org/x/sys/unix"
)

// ImageBuffer is a wl_buffer backed by shared memory that can be drawn
// into as an image.
type ImageBuffer struct {
	w, h int32
	shm  *Shm
	pool *ShmPool
	buf  *Buffer
	file *os.File
	mmap shm.Mmap
}

func NewImageBuffer(s *Shm, w, h int32) (buf *ImageBuffer, err error) {
	if (w <= 0) || (h <= 0) {
		return nil, fmt.Errorf("invalid buffer size %vx%v", w, h)
	}

	buf = &ImageBuffer{
		w:   w,
		h:   h,
		shm: s,
	}
	defer func() {
		if err != nil {
			buf.Destroy()
		}
	}()

	file, err := shm.Allocate("wl-image-buffer", int(buf.Len()))
	if err != nil {
		return buf, fmt.Errorf("create SHM file: %w", err)
	}
	buf.file = file

	mmap, err := shm.MapShared(file, int(buf.Len()), unix.PROT_READ|unix.PROT_WRITE)
	if err != nil {
		return buf, fmt.Errorf("mmap SHM file: %w", err)
	}
	buf.mmap = mmap

	buf.pool = buf.shm.CreatePool(file, buf.Len())
	buf.buf = buf.pool.CreateBuffer(0, w, h, buf.Stride(), ShmFormatArgb8888)

	return buf, nil
}

// Destroy releases the buffer's memory and destroys its protocol
// objects.
func (s *ImageBuffer) Destroy() error {
	var errs []error
	if s.mmap != nil {
		errs = append(errs, s.mmap.Unmap())
		s.mmap = nil
	}
	if s.file != nil {
		errs = append(errs, s.file.Close())
		s.file = nil
	}
	if s.buf != nil {
		s.buf.Destroy()
		s.buf = nil
	}
	if s.pool != nil {
		s.pool.Destroy()
		s.pool = nil
	}
	return errors.Join(errs...)
}

func (s *ImageBuffer) Shm() *Shm {
	return s.shm
}

func (s *ImageBuffer) ShmPool() *ShmPool {
	return s.pool
}

func (s *ImageBuffer) Buffer() *Buffer {
	return s.buf
}

func (s *ImageBuffer) Stride() int32 {
	return s.w * 4
}

func (s *ImageBuffer) Len() int32 {
	return s.Stride() * s.h
}

func (s *ImageBuffer) Bounds() image.Rectangle {
	return image.Rect(0, 0, int(s.w), int(s.h))
}

// Image returns a view of the buffer's memory. Writes to it are seen
// by the compositor after the buffer is attached and committed.
func (s *ImageBuffer) Image() *format.Image {
	return &format.Image{
		Format: format.ARGB8888,
		Rect:   s.Bounds(),
		Pix:    s.mmap,
	}
}

// Present attaches the buffer to surface, damages all of it and
// commits.
func (s *ImageBuffer) Present(surface *Surface) {
	s.buf.busy = true
	surface.Attach(s.buf, 0, 0)
	surface.Damage(0, 0, s.w, s.h)
	surface.Commit()
}
