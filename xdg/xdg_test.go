package xdg_test

import (
	"testing"

	wl "deedles.dev/wlgl/client"
	"deedles.dev/wlgl/internal/compositortest"
	"deedles.dev/wlgl/xdg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type setup struct {
	server     *compositortest.Server
	client     *wl.Client
	compositor *wl.Compositor
	wm         *xdg.WmBase
}

func start(t *testing.T, opts compositortest.Options) setup {
	t.Helper()

	server := compositortest.Start(t, opts)
	client, err := wl.Dial()
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })

	registry := client.Display().GetRegistry()
	require.NoError(t, client.RoundTrip())

	compName, ok := registry.Find(wl.CompositorInterface, 1)
	require.True(t, ok)
	wmName, ok := registry.Find(xdg.WmBaseInterface, 1)
	require.True(t, ok)

	return setup{
		server:     server,
		client:     client,
		compositor: wl.BindCompositor(client, registry, compName, 1),
		wm:         xdg.BindWmBase(client, registry, wmName, 1),
	}
}

func TestPingPong(t *testing.T) {
	s := start(t, compositortest.Options{Ping: true})

	var pinged []uint32
	s.wm.Ping = func(serial uint32) { pinged = append(pinged, serial) }
	require.NoError(t, s.client.RoundTrip())
	require.NoError(t, s.client.RoundTrip())

	snap := s.server.Snapshot()
	require.Len(t, snap.Pings, 1)
	assert.Equal(t, snap.Pings, snap.Pongs)
	assert.Equal(t, snap.Pings, pinged)
}

type listener struct {
	serials []uint32
	unknown []uint16
	surface *xdg.Surface
}

func (lis *listener) Configure(serial uint32) error {
	lis.serials = append(lis.serials, serial)
	lis.surface.AckConfigure(serial)
	return nil
}

func (lis *listener) UnknownEvent(op uint16) error {
	lis.unknown = append(lis.unknown, op)
	return nil
}

func TestToplevel(t *testing.T) {
	s := start(t, compositortest.Options{})

	surface := s.compositor.CreateSurface()
	xs := s.wm.GetXdgSurface(surface)
	lis := listener{surface: xs}
	xs.Listener = &lis

	var configured bool
	toplevel := xs.GetToplevel()
	toplevel.Configure = func(width, height int32, states []xdg.ToplevelState) {
		configured = true
		assert.Zero(t, width)
		assert.Zero(t, height)
		assert.Empty(t, states)
	}
	toplevel.SetTitle("xdg test")
	toplevel.SetAppID("dev.deedles.xdgtest")
	surface.Commit()
	require.NoError(t, s.client.RoundTrip())
	require.NoError(t, s.client.RoundTrip())

	assert.True(t, configured)
	require.Len(t, lis.serials, 1)
	assert.Empty(t, lis.unknown)

	snap := s.server.Snapshot()
	assert.Equal(t, lis.serials, snap.Acks)
	assert.Equal(t, "xdg test", snap.Title)
	assert.Equal(t, "dev.deedles.xdgtest", snap.AppID)
	assert.Empty(t, snap.Violations)
}

func TestUnknownSurfaceEvent(t *testing.T) {
	s := start(t, compositortest.Options{UnknownSurfaceEvent: true})

	surface := s.compositor.CreateSurface()
	xs := s.wm.GetXdgSurface(surface)
	lis := listener{surface: xs}
	xs.Listener = &lis
	xs.GetToplevel()
	surface.Commit()
	require.NoError(t, s.client.RoundTrip())

	assert.Empty(t, lis.serials)
	assert.Equal(t, []uint16{1}, lis.unknown)
}
