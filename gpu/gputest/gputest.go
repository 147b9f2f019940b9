// Package gputest provides a recording gpu.Driver for tests that don't
// have a real GPU to talk to.
package gputest

import (
	"fmt"
	"image"
	"image/color"
	"regexp"
	"strings"

	"deedles.dev/wlgl/gpu"
)

// Driver is an in-memory gpu.Driver that records every call made to
// it. The zero value is not usable. Use New.
type Driver struct {
	// Calls holds every call in the order that it was made, formatted
	// like "DrawArrays(4, 0, 3)".
	Calls []string

	// Configs is returned by ChooseConfigs.
	Configs []gpu.Config

	// Fail makes the named EGL method return the given error.
	Fail map[string]error

	// ZeroShader makes CreateShader return 0 for a shader type.
	ZeroShader map[gpu.Enum]bool

	// CompileLog makes compilation of a shader type fail with a log.
	CompileLog map[gpu.Enum]string

	// LinkLog, if not empty, makes linking fail with that log.
	LinkLog string

	// ZeroBuffer makes GenBuffer return 0.
	ZeroBuffer bool

	Filters []gpu.ConfigFilter
	Version gpu.ClientVersion
	Window  gpu.NativeWindow
	Current gpu.Context
	Program gpu.Program

	Background [4]float32
	Draws      int
	Swaps      int

	next     uint32
	shaders  map[gpu.Shader]*shader
	programs map[gpu.Program]*program
	buffers  map[gpu.Buffer][]float32
	bound    gpu.Buffer
	pointers map[uint32]pointer
	enabled  map[uint32]bool
}

type shader struct {
	typ      gpu.Enum
	src      string
	compiled bool
	log      string
}

type program struct {
	shaders   []gpu.Shader
	bindings  map[string]uint32
	linked    bool
	log       string
	locations map[string]int
}

type pointer struct {
	buffer gpu.Buffer
	size   int
	typ    gpu.Enum
	stride int
	offset int
}

func New() *Driver {
	return &Driver{
		Configs:    []gpu.Config{1, 2, 3},
		Fail:       make(map[string]error),
		ZeroShader: make(map[gpu.Enum]bool),
		CompileLog: make(map[gpu.Enum]string),
		shaders:    make(map[gpu.Shader]*shader),
		programs:   make(map[gpu.Program]*program),
		buffers:    make(map[gpu.Buffer][]float32),
		pointers:   make(map[uint32]pointer),
		enabled:    make(map[uint32]bool),
	}
}

func (d *Driver) record(name string, args ...any) {
	strs := make([]string, 0, len(args))
	for _, arg := range args {
		strs = append(strs, fmt.Sprint(arg))
	}
	d.Calls = append(d.Calls, fmt.Sprintf("%v(%v)", name, strings.Join(strs, ", ")))
}

func (d *Driver) handle() uint32 {
	d.next++
	return d.next
}

// Called reports whether any call to the named method was made.
func (d *Driver) Called(name string) bool {
	return d.Count(name) > 0
}

// Count returns the number of calls made to the named method.
func (d *Driver) Count(name string) (n int) {
	for _, call := range d.Calls {
		if strings.HasPrefix(call, name+"(") {
			n++
		}
	}
	return n
}

// Index returns the position of the first call to the named method in
// Calls, or -1.
func (d *Driver) Index(name string) int {
	for i, call := range d.Calls {
		if strings.HasPrefix(call, name+"(") {
			return i
		}
	}
	return -1
}

func (d *Driver) GetDisplay(native gpu.NativeDisplay) (gpu.Display, error) {
	d.record("GetDisplay", native.Platform)
	if err := d.Fail["GetDisplay"]; err != nil {
		return 0, err
	}
	return gpu.Display(d.handle()), nil
}

func (d *Driver) Initialize(display gpu.Display) (major, minor int, err error) {
	d.record("Initialize", display)
	if err := d.Fail["Initialize"]; err != nil {
		return 0, 0, err
	}
	return 1, 5, nil
}

func (d *Driver) ChooseConfigs(display gpu.Display, filter gpu.ConfigFilter) ([]gpu.Config, error) {
	d.record("ChooseConfigs", display)
	d.Filters = append(d.Filters, filter)
	if err := d.Fail["ChooseConfigs"]; err != nil {
		return nil, err
	}
	return append([]gpu.Config(nil), d.Configs...), nil
}

func (d *Driver) CreateWindowSurface(display gpu.Display, config gpu.Config, win gpu.NativeWindow) (gpu.Surface, error) {
	w, h := win.Size()
	d.record("CreateWindowSurface", display, config, w, h)
	if err := d.Fail["CreateWindowSurface"]; err != nil {
		return 0, err
	}
	d.Window = win
	return gpu.Surface(d.handle()), nil
}

func (d *Driver) CreateContext(display gpu.Display, config gpu.Config, version gpu.ClientVersion) (gpu.Context, error) {
	d.record("CreateContext", display, config, version)
	if err := d.Fail["CreateContext"]; err != nil {
		return 0, err
	}
	d.Version = version
	return gpu.Context(d.handle()), nil
}

func (d *Driver) MakeCurrent(display gpu.Display, draw, read gpu.Surface, ctx gpu.Context) error {
	d.record("MakeCurrent", display, draw, read, ctx)
	if err := d.Fail["MakeCurrent"]; err != nil {
		return err
	}
	d.Current = ctx
	return nil
}

// SwapBuffers presents a frame filled with the clear color to the
// window of the surface.
func (d *Driver) SwapBuffers(display gpu.Display, surface gpu.Surface) error {
	d.record("SwapBuffers", display, surface)
	if err := d.Fail["SwapBuffers"]; err != nil {
		return err
	}
	d.Swaps++

	if d.Window == nil {
		return nil
	}
	w, h := d.Window.Size()
	frame := image.NewRGBA(image.Rect(0, 0, w, h))
	c := color.RGBA{
		R: uint8(d.Background[0] * 255),
		G: uint8(d.Background[1] * 255),
		B: uint8(d.Background[2] * 255),
		A: uint8(d.Background[3] * 255),
	}
	for i := 0; i < len(frame.Pix); i += 4 {
		frame.Pix[i], frame.Pix[i+1], frame.Pix[i+2], frame.Pix[i+3] = c.R, c.G, c.B, c.A
	}
	return d.Window.Present(frame)
}

func (d *Driver) ClearColor(r, g, b, a float32) {
	d.record("ClearColor", r, g, b, a)
	d.Background = [...]float32{r, g, b, a}
}

func (d *Driver) Clear(mask gpu.Enum) {
	d.record("Clear", mask)
}

func (d *Driver) CreateProgram() gpu.Program {
	d.record("CreateProgram")
	p := gpu.Program(d.handle())
	d.programs[p] = &program{bindings: make(map[string]uint32)}
	return p
}

func (d *Driver) CreateShader(typ gpu.Enum) gpu.Shader {
	d.record("CreateShader", typ)
	if d.ZeroShader[typ] {
		return 0
	}
	s := gpu.Shader(d.handle())
	d.shaders[s] = &shader{typ: typ}
	return s
}

func (d *Driver) ShaderSource(s gpu.Shader, src string) {
	d.record("ShaderSource", s)
	if sh := d.shaders[s]; sh != nil {
		sh.src = src
	}
}

func (d *Driver) CompileShader(s gpu.Shader) {
	d.record("CompileShader", s)
	sh := d.shaders[s]
	if sh == nil {
		return
	}

	if log, ok := d.CompileLog[sh.typ]; ok {
		sh.log = log
		return
	}
	sh.compiled = strings.Contains(sh.src, "main")
	if !sh.compiled {
		sh.log = "error: missing main"
	}
}

func (d *Driver) GetShaderi(s gpu.Shader, pname gpu.Enum) int {
	d.record("GetShaderi", s, pname)
	sh := d.shaders[s]
	if sh == nil {
		return 0
	}

	switch pname {
	case gpu.CompileStatus:
		return boolInt(sh.compiled)
	case gpu.InfoLogLength:
		return logLength(sh.log)
	default:
		return 0
	}
}

func (d *Driver) GetShaderInfoLog(s gpu.Shader, limit int) string {
	d.record("GetShaderInfoLog", s, limit)
	sh := d.shaders[s]
	if sh == nil {
		return ""
	}
	return truncate(sh.log, limit)
}

func (d *Driver) AttachShader(p gpu.Program, s gpu.Shader) {
	d.record("AttachShader", p, s)
	if prog := d.programs[p]; prog != nil {
		prog.shaders = append(prog.shaders, s)
	}
}

func (d *Driver) DeleteShader(s gpu.Shader) {
	d.record("DeleteShader", s)
}

func (d *Driver) BindAttribLocation(p gpu.Program, index uint32, name string) {
	d.record("BindAttribLocation", p, index, name)
	if prog := d.programs[p]; prog != nil {
		prog.bindings[name] = index
	}
}

var attributePattern = regexp.MustCompile(`attribute\s+\w+\s+(\w+)\s*;`)

// LinkProgram succeeds if a compiled vertex and fragment shader are
// attached and LinkLog is empty. Attribute locations are fixed at link
// time from the bindings made before it.
func (d *Driver) LinkProgram(p gpu.Program) {
	d.record("LinkProgram", p)
	prog := d.programs[p]
	if prog == nil {
		return
	}

	var vertex, fragment *shader
	for _, s := range prog.shaders {
		sh := d.shaders[s]
		switch {
		case (sh == nil) || !sh.compiled:
			prog.linked = false
			prog.log = "error: attached shader is not compiled"
			return
		case sh.typ == gpu.VertexShader:
			vertex = sh
		case sh.typ == gpu.FragmentShader:
			fragment = sh
		}
	}
	if (vertex == nil) || (fragment == nil) {
		prog.linked = false
		prog.log = "error: program needs a vertex and a fragment shader"
		return
	}
	if d.LinkLog != "" {
		prog.linked = false
		prog.log = d.LinkLog
		return
	}

	used := make(map[int]bool)
	prog.locations = make(map[string]int)
	var unbound []string
	for _, m := range attributePattern.FindAllStringSubmatch(vertex.src, -1) {
		index, ok := prog.bindings[m[1]]
		if !ok {
			unbound = append(unbound, m[1])
			continue
		}
		prog.locations[m[1]] = int(index)
		used[int(index)] = true
	}
	next := 0
	for _, name := range unbound {
		for used[next] {
			next++
		}
		prog.locations[name] = next
		used[next] = true
	}

	prog.linked = true
	prog.log = ""
}

func (d *Driver) GetProgrami(p gpu.Program, pname gpu.Enum) int {
	d.record("GetProgrami", p, pname)
	prog := d.programs[p]
	if prog == nil {
		return 0
	}

	switch pname {
	case gpu.LinkStatus:
		return boolInt(prog.linked)
	case gpu.InfoLogLength:
		return logLength(prog.log)
	default:
		return 0
	}
}

func (d *Driver) GetProgramInfoLog(p gpu.Program, limit int) string {
	d.record("GetProgramInfoLog", p, limit)
	prog := d.programs[p]
	if prog == nil {
		return ""
	}
	return truncate(prog.log, limit)
}

func (d *Driver) GetAttribLocation(p gpu.Program, name string) int {
	d.record("GetAttribLocation", p, name)
	prog := d.programs[p]
	if (prog == nil) || !prog.linked {
		return -1
	}
	loc, ok := prog.locations[name]
	if !ok {
		return -1
	}
	return loc
}

func (d *Driver) UseProgram(p gpu.Program) {
	d.record("UseProgram", p)
	d.Program = p
}

func (d *Driver) GenBuffer() gpu.Buffer {
	d.record("GenBuffer")
	if d.ZeroBuffer {
		return 0
	}
	b := gpu.Buffer(d.handle())
	d.buffers[b] = nil
	return b
}

func (d *Driver) BindBuffer(target gpu.Enum, buf gpu.Buffer) {
	d.record("BindBuffer", target, buf)
	d.bound = buf
}

func (d *Driver) BufferData(target gpu.Enum, data []float32, usage gpu.Enum) {
	d.record("BufferData", target, len(data), usage)
	d.buffers[d.bound] = append([]float32(nil), data...)
}

func (d *Driver) VertexAttribPointer(index uint32, size int, typ gpu.Enum, normalized bool, stride, offset int) {
	d.record("VertexAttribPointer", index, size, typ, normalized, stride, offset)
	d.pointers[index] = pointer{buffer: d.bound, size: size, typ: typ, stride: stride, offset: offset}
}

func (d *Driver) EnableVertexAttribArray(index uint32) {
	d.record("EnableVertexAttribArray", index)
	d.enabled[index] = true
}

func (d *Driver) DrawArrays(mode gpu.Enum, first, count int) {
	d.record("DrawArrays", mode, first, count)
	d.Draws++
}

// Attrib returns the vertex data that attribute index reads from, or
// nil if it has no buffer or isn't enabled.
func (d *Driver) Attrib(index uint32) []float32 {
	if !d.enabled[index] {
		return nil
	}
	p, ok := d.pointers[index]
	if !ok {
		return nil
	}
	data := d.buffers[p.buffer]
	if p.offset/4 > len(data) {
		return nil
	}
	return data[p.offset/4:]
}

// Stride returns the stride that attribute index was configured with.
func (d *Driver) Stride(index uint32) int {
	return d.pointers[index].stride
}

func boolInt(v bool) int {
	if v {
		return 1
	}
	return 0
}

func logLength(log string) int {
	if log == "" {
		return 0
	}
	return len(log) + 1
}

// truncate mimics glGet*InfoLog, which reserves one byte of the
// buffer for the terminating NUL.
func truncate(log string, limit int) string {
	if limit <= 0 {
		return ""
	}
	if len(log) > limit-1 {
		return log[:limit-1]
	}
	return log
}
