//go:build linux && cgo

// Package gles implements gpu.GL on top of the system's libGLESv2.
// Every method must be called from the thread that the context was
// made current on.
package gles

/*
#cgo LDFLAGS: -lGLESv2
#include <stdint.h>
#include <stdlib.h>
#include <GLES2/gl2.h>

static void wlgl_vertex_attrib_pointer(GLuint index, GLint size, GLenum type, GLboolean normalized, GLsizei stride, uintptr_t offset) {
	glVertexAttribPointer(index, size, type, normalized, stride, (const void *)offset);
}
*/
import "C"

import (
	"unsafe"

	"deedles.dev/wlgl/gpu"
)

// GL is the process' GLES 2.0 implementation. It has no state of its
// own.
type GL struct{}

func New() GL {
	return GL{}
}

func glBool(v bool) C.GLboolean {
	if v {
		return C.GL_TRUE
	}
	return C.GL_FALSE
}

func (GL) ClearColor(r, g, b, a float32) {
	C.glClearColor(C.GLfloat(r), C.GLfloat(g), C.GLfloat(b), C.GLfloat(a))
}

func (GL) Clear(mask gpu.Enum) {
	C.glClear(C.GLbitfield(mask))
}

func (GL) CreateProgram() gpu.Program {
	return gpu.Program(C.glCreateProgram())
}

func (GL) CreateShader(typ gpu.Enum) gpu.Shader {
	return gpu.Shader(C.glCreateShader(C.GLenum(typ)))
}

func (GL) ShaderSource(shader gpu.Shader, src string) {
	csrc := (*C.GLchar)(unsafe.Pointer(C.CString(src)))
	defer C.free(unsafe.Pointer(csrc))

	C.glShaderSource(C.GLuint(shader), 1, &csrc, nil)
}

func (GL) CompileShader(shader gpu.Shader) {
	C.glCompileShader(C.GLuint(shader))
}

func (GL) GetShaderi(shader gpu.Shader, pname gpu.Enum) int {
	var v C.GLint
	C.glGetShaderiv(C.GLuint(shader), C.GLenum(pname), &v)
	return int(v)
}

func (GL) GetShaderInfoLog(shader gpu.Shader, limit int) string {
	return infoLog(limit, func(size C.GLsizei, length *C.GLsizei, buf *C.GLchar) {
		C.glGetShaderInfoLog(C.GLuint(shader), size, length, buf)
	})
}

func (GL) AttachShader(program gpu.Program, shader gpu.Shader) {
	C.glAttachShader(C.GLuint(program), C.GLuint(shader))
}

func (GL) DeleteShader(shader gpu.Shader) {
	C.glDeleteShader(C.GLuint(shader))
}

func (GL) BindAttribLocation(program gpu.Program, index uint32, name string) {
	cname := C.CString(name)
	defer C.free(unsafe.Pointer(cname))

	C.glBindAttribLocation(C.GLuint(program), C.GLuint(index), (*C.GLchar)(cname))
}

func (GL) LinkProgram(program gpu.Program) {
	C.glLinkProgram(C.GLuint(program))
}

func (GL) GetProgrami(program gpu.Program, pname gpu.Enum) int {
	var v C.GLint
	C.glGetProgramiv(C.GLuint(program), C.GLenum(pname), &v)
	return int(v)
}

func (GL) GetProgramInfoLog(program gpu.Program, limit int) string {
	return infoLog(limit, func(size C.GLsizei, length *C.GLsizei, buf *C.GLchar) {
		C.glGetProgramInfoLog(C.GLuint(program), size, length, buf)
	})
}

func (GL) GetAttribLocation(program gpu.Program, name string) int {
	cname := C.CString(name)
	defer C.free(unsafe.Pointer(cname))

	return int(C.glGetAttribLocation(C.GLuint(program), (*C.GLchar)(cname)))
}

func (GL) UseProgram(program gpu.Program) {
	C.glUseProgram(C.GLuint(program))
}

func (GL) GenBuffer() gpu.Buffer {
	var buf C.GLuint
	C.glGenBuffers(1, &buf)
	return gpu.Buffer(buf)
}

func (GL) BindBuffer(target gpu.Enum, buf gpu.Buffer) {
	C.glBindBuffer(C.GLenum(target), C.GLuint(buf))
}

func (GL) BufferData(target gpu.Enum, data []float32, usage gpu.Enum) {
	var ptr unsafe.Pointer
	if len(data) > 0 {
		ptr = unsafe.Pointer(&data[0])
	}
	C.glBufferData(C.GLenum(target), C.GLsizeiptr(len(data)*4), ptr, C.GLenum(usage))
}

func (GL) VertexAttribPointer(index uint32, size int, typ gpu.Enum, normalized bool, stride, offset int) {
	C.wlgl_vertex_attrib_pointer(C.GLuint(index), C.GLint(size), C.GLenum(typ), glBool(normalized), C.GLsizei(stride), C.uintptr_t(offset))
}

func (GL) EnableVertexAttribArray(index uint32) {
	C.glEnableVertexAttribArray(C.GLuint(index))
}

func (GL) DrawArrays(mode gpu.Enum, first, count int) {
	C.glDrawArrays(C.GLenum(mode), C.GLint(first), C.GLsizei(count))
}

// infoLog reads a log of at most limit bytes, including the
// terminating NUL that GL writes.
func infoLog(limit int, get func(size C.GLsizei, length *C.GLsizei, buf *C.GLchar)) string {
	if limit <= 0 {
		return ""
	}

	buf := (*C.GLchar)(C.malloc(C.size_t(limit)))
	defer C.free(unsafe.Pointer(buf))

	var length C.GLsizei
	get(C.GLsizei(limit), &length, buf)
	return C.GoStringN((*C.char)(unsafe.Pointer(buf)), C.int(length))
}
