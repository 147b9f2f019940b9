// Package gpu describes the graphics driver that the renderer talks to:
// an EGL implementation that binds contexts to native windows and an
// OpenGL ES 2.0 implementation that executes commands.
//
// Handles are opaque. Zero is never a valid handle.
package gpu

import "image"

type (
	Display uintptr
	Config  uintptr
	Surface uintptr
	Context uintptr

	Program uint32
	Shader  uint32
	Buffer  uint32
)

// Enum is a GLenum.
type Enum uint32

const (
	Triangles      Enum = 0x0004
	Float          Enum = 0x1406
	ColorBufferBit Enum = 0x4000
	ArrayBuffer    Enum = 0x8892
	StaticDraw     Enum = 0x88E4
	FragmentShader Enum = 0x8B30
	VertexShader   Enum = 0x8B31
	CompileStatus  Enum = 0x8B81
	LinkStatus     Enum = 0x8B82
	InfoLogLength  Enum = 0x8B84
)

// Platform is an EGL native platform.
type Platform int

const (
	// PlatformSurfaceless renders off screen. Frames are presented by
	// the NativeWindow.
	PlatformSurfaceless Platform = iota

	// PlatformWayland renders through a libwayland wl_display.
	PlatformWayland
)

func (p Platform) String() string {
	switch p {
	case PlatformSurfaceless:
		return "surfaceless"
	case PlatformWayland:
		return "wayland"
	default:
		return "unknown"
	}
}

// NativeDisplay identifies the display connection that EGL should use.
type NativeDisplay struct {
	Platform Platform

	// Handle is the platform's native display pointer, or zero.
	Handle uintptr
}

// NativeWindow is the window that a window surface renders into.
type NativeWindow interface {
	// Size returns the fixed size of the window in pixels.
	Size() (width, height int)

	// Present shows a finished frame. It is called by SwapBuffers on
	// platforms that can't scan out EGL surfaces directly.
	Present(frame image.Image) error
}

// ClientVersion is the EGL_CONTEXT_CLIENT_VERSION of a context.
type ClientVersion int

const (
	OpenGLES2 ClientVersion = 2
)

// ConfigFilter restricts the framebuffer configurations returned by
// ChooseConfigs.
type ConfigFilter struct {
	RedSize, GreenSize, BlueSize, AlphaSize int

	// Version is the client API that configurations must be able to
	// render with.
	Version ClientVersion
}

type EGL interface {
	GetDisplay(native NativeDisplay) (Display, error)
	Initialize(display Display) (major, minor int, err error)

	// ChooseConfigs returns the matching configurations in the order
	// that the implementation ranks them.
	ChooseConfigs(display Display, filter ConfigFilter) ([]Config, error)

	CreateWindowSurface(display Display, config Config, win NativeWindow) (Surface, error)
	CreateContext(display Display, config Config, version ClientVersion) (Context, error)
	MakeCurrent(display Display, draw, read Surface, ctx Context) error
	SwapBuffers(display Display, surface Surface) error
}

type GL interface {
	ClearColor(r, g, b, a float32)
	Clear(mask Enum)

	CreateProgram() Program
	CreateShader(typ Enum) Shader
	ShaderSource(shader Shader, src string)
	CompileShader(shader Shader)
	GetShaderi(shader Shader, pname Enum) int
	GetShaderInfoLog(shader Shader, limit int) string
	AttachShader(program Program, shader Shader)
	DeleteShader(shader Shader)
	BindAttribLocation(program Program, index uint32, name string)
	LinkProgram(program Program)
	GetProgrami(program Program, pname Enum) int
	GetProgramInfoLog(program Program, limit int) string
	GetAttribLocation(program Program, name string) int
	UseProgram(program Program)

	GenBuffer() Buffer
	BindBuffer(target Enum, buf Buffer)
	BufferData(target Enum, data []float32, usage Enum)
	VertexAttribPointer(index uint32, size int, typ Enum, normalized bool, stride, offset int)
	EnableVertexAttribArray(index uint32)
	DrawArrays(mode Enum, first, count int)
}

// Driver is a complete graphics driver.
type Driver interface {
	EGL
	GL
}

type driver struct {
	EGL
	GL
}

// Combine returns a Driver that forwards to egl and gl.
func Combine(egl EGL, gl GL) Driver {
	return driver{EGL: egl, GL: gl}
}
