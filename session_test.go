package wlgl_test

import (
	"os"
	"testing"

	"deedles.dev/wlgl"
	"deedles.dev/wlgl/gpu"
	"deedles.dev/wlgl/internal/compositortest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func connect(t *testing.T, opts compositortest.Options) (*compositortest.Server, *wlgl.Session) {
	t.Helper()

	server := compositortest.Start(t, opts)
	session, err := wlgl.Connect()
	require.NoError(t, err)
	t.Cleanup(func() { session.Close() })

	return server, session
}

func TestConnect(t *testing.T) {
	server, session := connect(t, compositortest.Options{})
	require.NoError(t, session.Client().RoundTrip())

	snap := server.Snapshot()
	assert.Equal(t, map[string]uint32{"wl_compositor": 1, "wl_shm": 2, "xdg_wm_base": 3}, snap.Bound)
	assert.Equal(t, map[string]uint32{"wl_compositor": 1, "wl_shm": 1, "xdg_wm_base": 1}, snap.Versions)
	assert.Empty(t, snap.Violations)

	assert.Equal(t, gpu.NativeDisplay{Platform: gpu.PlatformSurfaceless}, session.NativeDisplay())
}

func TestConnectLowestName(t *testing.T) {
	server, session := connect(t, compositortest.Options{Duplicates: true})
	require.NoError(t, session.Client().RoundTrip())

	snap := server.Snapshot()
	assert.Equal(t, map[string]uint32{"wl_compositor": 1, "wl_shm": 2, "xdg_wm_base": 3}, snap.Bound)
}

func TestConnectMissingGlobal(t *testing.T) {
	tests := []struct {
		name  string
		iface string
		err   error
	}{
		{name: "Compositor", iface: "wl_compositor", err: wlgl.ErrNoCompositor},
		{name: "Shell", iface: "xdg_wm_base", err: wlgl.ErrNoShell},
		{name: "Shm", iface: "wl_shm", err: wlgl.ErrNoShm},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			server := compositortest.Start(t, compositortest.Options{Omit: []string{test.iface}})

			_, err := wlgl.Connect()
			assert.ErrorIs(t, err, test.err)

			snap := server.Snapshot()
			assert.Empty(t, snap.Bound)
			assert.Zero(t, snap.Commits)
		})
	}
}

func TestConnectNoCompositor(t *testing.T) {
	t.Setenv("XDG_RUNTIME_DIR", t.TempDir())
	t.Setenv("WAYLAND_DISPLAY", "wayland-0")
	t.Setenv("WAYLAND_SOCKET", "")
	os.Unsetenv("WAYLAND_SOCKET")

	_, err := wlgl.Connect()
	assert.Error(t, err)
}
