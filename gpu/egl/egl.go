//go:build linux && cgo

// Package egl implements gpu.EGL on top of the system's libEGL.
//
// Only the surfaceless platform is supported. Window surfaces are
// pbuffers the size of the native window, and SwapBuffers reads each
// frame back and hands it to the window to present.
package egl

/*
#cgo LDFLAGS: -lEGL -lGLESv2
#include <stdint.h>
#include <stdlib.h>
#include <EGL/egl.h>
#include <EGL/eglext.h>
#include <GLES2/gl2.h>

#ifndef EGL_PLATFORM_SURFACELESS_MESA
#define EGL_PLATFORM_SURFACELESS_MESA 0x31DD
#endif

static EGLDisplay wlgl_get_platform_display(EGLenum platform, uintptr_t native) {
	PFNEGLGETPLATFORMDISPLAYEXTPROC get =
		(PFNEGLGETPLATFORMDISPLAYEXTPROC)eglGetProcAddress("eglGetPlatformDisplayEXT");
	if (get == NULL) {
		return EGL_NO_DISPLAY;
	}
	return get(platform, (void *)native, NULL);
}
*/
import "C"

import (
	"errors"
	"fmt"
	"image"
	"unsafe"

	"deedles.dev/wlgl/gpu"
)

var (
	ErrUnsupportedPlatform = errors.New("unsupported native platform")
	ErrUnknownHandle       = errors.New("unknown handle")
	ErrContextBound        = errors.New("a different context is already current")
)

// Error is a failed EGL call along with the code reported by
// eglGetError.
type Error struct {
	Op   string
	Code int
}

func lastError(op string) error {
	return Error{Op: op, Code: int(C.eglGetError())}
}

func (err Error) Error() string {
	return fmt.Sprintf("%v: %v", err.Op, codeName(err.Code))
}

func codeName(code int) string {
	switch code {
	case C.EGL_SUCCESS:
		return "EGL_SUCCESS"
	case C.EGL_NOT_INITIALIZED:
		return "EGL_NOT_INITIALIZED"
	case C.EGL_BAD_ACCESS:
		return "EGL_BAD_ACCESS"
	case C.EGL_BAD_ALLOC:
		return "EGL_BAD_ALLOC"
	case C.EGL_BAD_ATTRIBUTE:
		return "EGL_BAD_ATTRIBUTE"
	case C.EGL_BAD_CONFIG:
		return "EGL_BAD_CONFIG"
	case C.EGL_BAD_CONTEXT:
		return "EGL_BAD_CONTEXT"
	case C.EGL_BAD_CURRENT_SURFACE:
		return "EGL_BAD_CURRENT_SURFACE"
	case C.EGL_BAD_DISPLAY:
		return "EGL_BAD_DISPLAY"
	case C.EGL_BAD_MATCH:
		return "EGL_BAD_MATCH"
	case C.EGL_BAD_NATIVE_PIXMAP:
		return "EGL_BAD_NATIVE_PIXMAP"
	case C.EGL_BAD_NATIVE_WINDOW:
		return "EGL_BAD_NATIVE_WINDOW"
	case C.EGL_BAD_PARAMETER:
		return "EGL_BAD_PARAMETER"
	case C.EGL_BAD_SURFACE:
		return "EGL_BAD_SURFACE"
	case C.EGL_CONTEXT_LOST:
		return "EGL_CONTEXT_LOST"
	default:
		return fmt.Sprintf("0x%x", code)
	}
}

type surface struct {
	s    C.EGLSurface
	win  gpu.NativeWindow
	w, h int
}

// Driver implements gpu.EGL. EGL state is bound to the calling OS
// thread, so a Driver must only be used from a goroutine that has
// called runtime.LockOSThread.
type Driver struct {
	next     uintptr
	displays map[gpu.Display]C.EGLDisplay
	configs  map[gpu.Config]C.EGLConfig
	surfaces map[gpu.Surface]*surface
	contexts map[gpu.Context]C.EGLContext

	current gpu.Context
}

func New() *Driver {
	return &Driver{
		displays: make(map[gpu.Display]C.EGLDisplay),
		configs:  make(map[gpu.Config]C.EGLConfig),
		surfaces: make(map[gpu.Surface]*surface),
		contexts: make(map[gpu.Context]C.EGLContext),
	}
}

func (d *Driver) handle() uintptr {
	d.next++
	return d.next
}

func (d *Driver) display(display gpu.Display) (C.EGLDisplay, error) {
	dpy, ok := d.displays[display]
	if !ok {
		return 0, fmt.Errorf("display %v: %w", display, ErrUnknownHandle)
	}
	return dpy, nil
}

func (d *Driver) GetDisplay(native gpu.NativeDisplay) (gpu.Display, error) {
	if native.Platform != gpu.PlatformSurfaceless {
		return 0, fmt.Errorf("%v: %w", native.Platform, ErrUnsupportedPlatform)
	}

	dpy := C.wlgl_get_platform_display(C.EGL_PLATFORM_SURFACELESS_MESA, C.uintptr_t(native.Handle))
	if dpy == 0 {
		return 0, lastError("eglGetPlatformDisplay")
	}

	h := gpu.Display(d.handle())
	d.displays[h] = dpy
	return h, nil
}

func (d *Driver) Initialize(display gpu.Display) (major, minor int, err error) {
	dpy, err := d.display(display)
	if err != nil {
		return 0, 0, err
	}

	var cmajor, cminor C.EGLint
	if C.eglInitialize(dpy, &cmajor, &cminor) == C.EGL_FALSE {
		return 0, 0, lastError("eglInitialize")
	}
	return int(cmajor), int(cminor), nil
}

func (d *Driver) ChooseConfigs(display gpu.Display, filter gpu.ConfigFilter) ([]gpu.Config, error) {
	dpy, err := d.display(display)
	if err != nil {
		return nil, err
	}

	renderable := C.EGLint(C.EGL_OPENGL_ES2_BIT)
	if filter.Version != gpu.OpenGLES2 {
		return nil, fmt.Errorf("client version %v: %w", filter.Version, ErrUnsupportedPlatform)
	}

	attribs := []C.EGLint{
		C.EGL_RED_SIZE, C.EGLint(filter.RedSize),
		C.EGL_GREEN_SIZE, C.EGLint(filter.GreenSize),
		C.EGL_BLUE_SIZE, C.EGLint(filter.BlueSize),
		C.EGL_ALPHA_SIZE, C.EGLint(filter.AlphaSize),
		C.EGL_RENDERABLE_TYPE, renderable,
		C.EGL_SURFACE_TYPE, C.EGL_PBUFFER_BIT,
		C.EGL_NONE,
	}

	var n C.EGLint
	if C.eglChooseConfig(dpy, &attribs[0], nil, 0, &n) == C.EGL_FALSE {
		return nil, lastError("eglChooseConfig")
	}
	if n == 0 {
		return nil, nil
	}

	found := make([]C.EGLConfig, n)
	if C.eglChooseConfig(dpy, &attribs[0], &found[0], n, &n) == C.EGL_FALSE {
		return nil, lastError("eglChooseConfig")
	}

	configs := make([]gpu.Config, 0, n)
	for _, c := range found[:n] {
		h := gpu.Config(d.handle())
		d.configs[h] = c
		configs = append(configs, h)
	}
	return configs, nil
}

func (d *Driver) CreateWindowSurface(display gpu.Display, config gpu.Config, win gpu.NativeWindow) (gpu.Surface, error) {
	dpy, err := d.display(display)
	if err != nil {
		return 0, err
	}
	cfg, ok := d.configs[config]
	if !ok {
		return 0, fmt.Errorf("config %v: %w", config, ErrUnknownHandle)
	}

	w, h := win.Size()
	attribs := []C.EGLint{
		C.EGL_WIDTH, C.EGLint(w),
		C.EGL_HEIGHT, C.EGLint(h),
		C.EGL_NONE,
	}
	s := C.eglCreatePbufferSurface(dpy, cfg, &attribs[0])
	if s == nil {
		return 0, lastError("eglCreatePbufferSurface")
	}

	handle := gpu.Surface(d.handle())
	d.surfaces[handle] = &surface{s: s, win: win, w: w, h: h}
	return handle, nil
}

func (d *Driver) CreateContext(display gpu.Display, config gpu.Config, version gpu.ClientVersion) (gpu.Context, error) {
	dpy, err := d.display(display)
	if err != nil {
		return 0, err
	}
	cfg, ok := d.configs[config]
	if !ok {
		return 0, fmt.Errorf("config %v: %w", config, ErrUnknownHandle)
	}

	if C.eglBindAPI(C.EGL_OPENGL_ES_API) == C.EGL_FALSE {
		return 0, lastError("eglBindAPI")
	}

	attribs := []C.EGLint{
		C.EGL_CONTEXT_CLIENT_VERSION, C.EGLint(version),
		C.EGL_NONE,
	}
	ctx := C.eglCreateContext(dpy, cfg, nil, &attribs[0])
	if ctx == nil {
		return 0, lastError("eglCreateContext")
	}

	h := gpu.Context(d.handle())
	d.contexts[h] = ctx
	return h, nil
}

// MakeCurrent binds ctx to the calling thread. Once a context has been
// made current, no other context can take its place.
func (d *Driver) MakeCurrent(display gpu.Display, draw, read gpu.Surface, ctx gpu.Context) error {
	if (d.current != 0) && (d.current != ctx) {
		return ErrContextBound
	}

	dpy, err := d.display(display)
	if err != nil {
		return err
	}
	ds, ok := d.surfaces[draw]
	if !ok {
		return fmt.Errorf("draw surface %v: %w", draw, ErrUnknownHandle)
	}
	rs, ok := d.surfaces[read]
	if !ok {
		return fmt.Errorf("read surface %v: %w", read, ErrUnknownHandle)
	}
	c, ok := d.contexts[ctx]
	if !ok {
		return fmt.Errorf("context %v: %w", ctx, ErrUnknownHandle)
	}

	if C.eglMakeCurrent(dpy, ds.s, rs.s, c) == C.EGL_FALSE {
		return lastError("eglMakeCurrent")
	}

	d.current = ctx
	return nil
}

// SwapBuffers finishes the frame and presents it to the surface's
// native window.
func (d *Driver) SwapBuffers(display gpu.Display, s gpu.Surface) error {
	dpy, err := d.display(display)
	if err != nil {
		return err
	}
	surf, ok := d.surfaces[s]
	if !ok {
		return fmt.Errorf("surface %v: %w", s, ErrUnknownHandle)
	}

	if C.eglSwapBuffers(dpy, surf.s) == C.EGL_FALSE {
		return lastError("eglSwapBuffers")
	}

	frame, err := readFrame(surf.w, surf.h)
	if err != nil {
		return err
	}
	return surf.win.Present(frame)
}

// readFrame reads the current framebuffer. GL's origin is the bottom
// left corner, so rows are flipped on the way out.
func readFrame(w, h int) (*image.RGBA, error) {
	C.glFinish()

	pix := make([]byte, w*h*4)
	C.glReadPixels(0, 0, C.GLsizei(w), C.GLsizei(h), C.GL_RGBA, C.GL_UNSIGNED_BYTE, unsafe.Pointer(&pix[0]))
	if code := C.glGetError(); code != C.GL_NO_ERROR {
		return nil, fmt.Errorf("glReadPixels: 0x%x", int(code))
	}

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	stride := w * 4
	for y := 0; y < h; y++ {
		copy(img.Pix[y*img.Stride:], pix[(h-1-y)*stride:(h-y)*stride])
	}
	return img, nil
}
