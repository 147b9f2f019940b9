package wlgl

import (
	"errors"
	"fmt"

	"deedles.dev/wlgl/gpu"
	"github.com/charmbracelet/log"
)

var (
	ErrCreateProgram  = errors.New("failed to create program")
	ErrCreateShader   = errors.New("failed to create shader")
	ErrLink           = errors.New("failed to link program")
	ErrAttribLocation = errors.New("attribute is not at its bound location")
)

// Diagnostic is a compile or link log.
type Diagnostic struct {
	// Object is what the log belongs to, such as "fragment shader".
	Object string
	Log    string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%v: %v", d.Object, d.Log)
}

type Program struct {
	Handle gpu.Program
	Linked bool

	// Diagnostics holds the logs of every step that failed. Compile
	// failures don't stop the build.
	Diagnostics []Diagnostic
}

type shaderStage struct {
	name string
	typ  gpu.Enum
	src  string
}

// BuildPipeline compiles and links the shader program and makes it
// current. Shaders that fail to compile are logged and attached
// anyway. The program is made current even if linking fails, after
// which the failure is returned as ErrLink along with the program.
func BuildPipeline(gl gpu.GL, cfg Config) (*Program, error) {
	handle := gl.CreateProgram()
	if handle == 0 {
		return nil, ErrCreateProgram
	}
	prog := Program{Handle: handle}

	stages := []shaderStage{
		{name: "vertex shader", typ: gpu.VertexShader, src: cfg.VertexShader},
		{name: "fragment shader", typ: gpu.FragmentShader, src: cfg.FragmentShader},
	}
	shaders := make([]gpu.Shader, 0, len(stages))
	for _, stage := range stages {
		shader := gl.CreateShader(stage.typ)
		if shader == 0 {
			return nil, fmt.Errorf("%v: %w", stage.name, ErrCreateShader)
		}
		shaders = append(shaders, shader)

		gl.ShaderSource(shader, stage.src)
		gl.CompileShader(shader)
		if gl.GetShaderi(shader, gpu.CompileStatus) == 0 {
			prog.diagnose(stage.name, gl.GetShaderInfoLog(shader, cfg.InfoLogLimit))
		}
		gl.AttachShader(handle, shader)
	}

	gl.BindAttribLocation(handle, cfg.AttributeIndex, cfg.Attribute)
	gl.LinkProgram(handle)
	prog.Linked = gl.GetProgrami(handle, gpu.LinkStatus) != 0
	if !prog.Linked {
		prog.diagnose("program", gl.GetProgramInfoLog(handle, cfg.InfoLogLimit))
	}

	for _, shader := range shaders {
		gl.DeleteShader(shader)
	}

	gl.UseProgram(handle)
	if !prog.Linked {
		return &prog, ErrLink
	}

	loc := gl.GetAttribLocation(handle, cfg.Attribute)
	if loc != int(cfg.AttributeIndex) {
		return &prog, fmt.Errorf("%v is at %v, not %v: %w", cfg.Attribute, loc, cfg.AttributeIndex, ErrAttribLocation)
	}

	return &prog, nil
}

func (prog *Program) diagnose(object, msg string) {
	prog.Diagnostics = append(prog.Diagnostics, Diagnostic{Object: object, Log: msg})
	log.Warn("shader pipeline issue", "object", object, "log", msg)
}
