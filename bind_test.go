package wlgl_test

import (
	"errors"
	"testing"

	"deedles.dev/wlgl"
	"deedles.dev/wlgl/gpu"
	"deedles.dev/wlgl/gpu/gputest"
	"deedles.dev/wlgl/internal/compositortest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func negotiate(t *testing.T, opts compositortest.Options) (*compositortest.Server, *wlgl.Session, *wlgl.Shell) {
	t.Helper()

	server, session := connect(t, opts)
	shell, err := wlgl.Negotiate(session, wlgl.DefaultConfig())
	require.NoError(t, err)
	return server, session, shell
}

func TestSelectConfig(t *testing.T) {
	configs := []gpu.Config{7, 3, 5}
	for i := 0; i < 3; i++ {
		c, ok := wlgl.SelectConfig(configs)
		require.True(t, ok)
		assert.Equal(t, gpu.Config(7), c)
	}
	assert.Equal(t, []gpu.Config{7, 3, 5}, configs)

	_, ok := wlgl.SelectConfig(nil)
	assert.False(t, ok)
}

func TestBind(t *testing.T) {
	_, session, shell := negotiate(t, compositortest.Options{})
	driver := gputest.New()
	driver.Configs = []gpu.Config{4, 2}

	binding, err := wlgl.Bind(driver, session, shell, wlgl.DefaultConfig())
	require.NoError(t, err)
	defer binding.Window.Destroy()

	assert.Equal(t, gpu.Config(4), binding.Config)
	assert.Equal(t, binding.Context, driver.Current)
	assert.Equal(t, gpu.OpenGLES2, driver.Version)
	assert.Equal(t, []gpu.ConfigFilter{wlgl.ConfigFilter()}, driver.Filters)

	w, h := binding.Window.Size()
	assert.Equal(t, 800, w)
	assert.Equal(t, 600, h)
	assert.Same(t, binding.Window, driver.Window)

	order := []string{"GetDisplay", "Initialize", "ChooseConfigs", "CreateWindowSurface", "CreateContext", "MakeCurrent"}
	for i, name := range order {
		assert.Equal(t, i, driver.Index(name), name)
	}
	assert.Contains(t, driver.Calls, "GetDisplay(surfaceless)")
	assert.Contains(t, driver.Calls, "MakeCurrent(1, 2, 2, 3)")
}

func TestBindFailure(t *testing.T) {
	fail := errors.New("driver failure")

	tests := []struct {
		method string
		err    error
	}{
		{method: "GetDisplay", err: wlgl.ErrDisplay},
		{method: "Initialize", err: wlgl.ErrInitialize},
		{method: "ChooseConfigs", err: wlgl.ErrConfigs},
		{method: "CreateWindowSurface", err: wlgl.ErrWindowSurface},
		{method: "CreateContext", err: wlgl.ErrContext},
		{method: "MakeCurrent", err: wlgl.ErrMakeCurrent},
	}

	for _, test := range tests {
		t.Run(test.method, func(t *testing.T) {
			_, session, shell := negotiate(t, compositortest.Options{})
			driver := gputest.New()
			driver.Fail[test.method] = fail

			_, err := wlgl.Bind(driver, session, shell, wlgl.DefaultConfig())
			assert.ErrorIs(t, err, test.err)
			assert.ErrorIs(t, err, fail)
			assert.Equal(t, driver.Calls[len(driver.Calls)-1][:len(test.method)], test.method)
		})
	}
}

func TestBindNoConfig(t *testing.T) {
	_, session, shell := negotiate(t, compositortest.Options{})
	driver := gputest.New()
	driver.Configs = nil

	_, err := wlgl.Bind(driver, session, shell, wlgl.DefaultConfig())
	assert.ErrorIs(t, err, wlgl.ErrNoConfig)
	assert.False(t, driver.Called("CreateWindowSurface"))
}
