package wlgl_test

import (
	"strings"
	"testing"

	"deedles.dev/wlgl"
	"deedles.dev/wlgl/gpu"
	"deedles.dev/wlgl/gpu/gputest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildPipeline(t *testing.T) {
	driver := gputest.New()
	cfg := wlgl.DefaultConfig()

	prog, err := wlgl.BuildPipeline(driver, cfg)
	require.NoError(t, err)
	assert.True(t, prog.Linked)
	assert.Empty(t, prog.Diagnostics)
	assert.Equal(t, prog.Handle, driver.Program)

	assert.Equal(t, 0, driver.GetAttribLocation(prog.Handle, "vPosition"))
	assert.Less(t, driver.Index("BindAttribLocation"), driver.Index("LinkProgram"))
	assert.Less(t, driver.Index("LinkProgram"), driver.Index("UseProgram"))
	assert.Equal(t, 2, driver.Count("AttachShader"))
	assert.Equal(t, 2, driver.Count("DeleteShader"))
	assert.False(t, driver.Called("GetShaderInfoLog"))
}

func TestBuildPipelineAttributeIndex(t *testing.T) {
	driver := gputest.New()
	cfg := wlgl.DefaultConfig()
	cfg.AttributeIndex = 3

	prog, err := wlgl.BuildPipeline(driver, cfg)
	require.NoError(t, err)
	assert.Equal(t, 3, driver.GetAttribLocation(prog.Handle, "vPosition"))
}

func TestBuildPipelineFragmentCompileFailure(t *testing.T) {
	driver := gputest.New()
	driver.CompileLog[gpu.FragmentShader] = "0:3(2): error: " + strings.Repeat("x", 4096)
	cfg := wlgl.DefaultConfig()

	prog, err := wlgl.BuildPipeline(driver, cfg)
	assert.ErrorIs(t, err, wlgl.ErrLink)
	require.NotNil(t, prog)
	assert.False(t, prog.Linked)

	require.Len(t, prog.Diagnostics, 2)
	assert.Equal(t, "fragment shader", prog.Diagnostics[0].Object)
	assert.True(t, strings.HasPrefix(prog.Diagnostics[0].Log, "0:3(2): error: "))
	assert.LessOrEqual(t, len(prog.Diagnostics[0].Log), cfg.InfoLogLimit)
	assert.Equal(t, "program", prog.Diagnostics[1].Object)

	assert.Equal(t, 2, driver.Count("AttachShader"), "failed shader was not attached")
	assert.Equal(t, 1, driver.Count("GetShaderInfoLog"))
	assert.True(t, driver.Called("UseProgram"))
	assert.Equal(t, prog.Handle, driver.Program)
}

func TestBuildPipelineLinkFailure(t *testing.T) {
	driver := gputest.New()
	driver.LinkLog = "error: vertex shader output not read"

	prog, err := wlgl.BuildPipeline(driver, wlgl.DefaultConfig())
	assert.ErrorIs(t, err, wlgl.ErrLink)
	require.Len(t, prog.Diagnostics, 1)
	assert.Equal(t, wlgl.Diagnostic{Object: "program", Log: driver.LinkLog}, prog.Diagnostics[0])
	assert.True(t, driver.Called("UseProgram"))
	assert.False(t, driver.Called("GetAttribLocation"))
}

func TestBuildPipelineZeroShader(t *testing.T) {
	for _, typ := range []gpu.Enum{gpu.VertexShader, gpu.FragmentShader} {
		driver := gputest.New()
		driver.ZeroShader[typ] = true

		_, err := wlgl.BuildPipeline(driver, wlgl.DefaultConfig())
		assert.ErrorIs(t, err, wlgl.ErrCreateShader)
		assert.False(t, driver.Called("LinkProgram"))
		assert.False(t, driver.Called("UseProgram"))
	}
}

func TestBuildPipelineUnusedAttribute(t *testing.T) {
	driver := gputest.New()
	cfg := wlgl.DefaultConfig()
	cfg.Attribute = "aPosition"

	_, err := wlgl.BuildPipeline(driver, cfg)
	assert.ErrorIs(t, err, wlgl.ErrAttribLocation)
}
