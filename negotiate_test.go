package wlgl_test

import (
	"context"
	"testing"
	"time"

	"deedles.dev/wlgl"
	wl "deedles.dev/wlgl/client"
	"deedles.dev/wlgl/internal/compositortest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNegotiate(t *testing.T) {
	server, session := connect(t, compositortest.Options{})

	cfg := wlgl.DefaultConfig()
	shell, err := wlgl.Negotiate(session, cfg)
	require.NoError(t, err)
	require.NoError(t, session.Client().RoundTrip())

	assert.Equal(t, wlgl.Acknowledged, shell.State())
	assert.Equal(t, 2, shell.Commits())
	assert.Equal(t, 1, shell.Configures())

	snap := server.Snapshot()
	assert.Equal(t, 2, snap.Commits)
	assert.Equal(t, snap.Configures, snap.Acks)
	require.Len(t, snap.Acks, 1)
	assert.Equal(t, snap.Acks[0], shell.Serial())
	assert.Equal(t, cfg.Title, snap.Title)
	assert.Equal(t, cfg.AppID, snap.AppID)
	assert.Empty(t, snap.Violations)

	steps := []string{
		"wl_compositor.create_surface",
		"xdg_wm_base.get_xdg_surface",
		"xdg_surface.get_toplevel",
		"wl_surface.commit",
		"xdg_surface.ack_configure",
	}
	for i := 1; i < len(steps); i++ {
		assert.Less(t, snap.Index(steps[i-1]), snap.Index(steps[i]), "%v before %v", steps[i-1], steps[i])
	}
	assert.Less(t, snap.Index("xdg_surface.ack_configure"), snap.LastIndex("wl_surface.commit"))

	width, height := shell.SuggestedSize()
	assert.Zero(t, width)
	assert.Zero(t, height)
}

func TestNegotiateNoConfigure(t *testing.T) {
	server, session := connect(t, compositortest.Options{NoConfigure: true})

	_, err := wlgl.Negotiate(session, wlgl.DefaultConfig())
	assert.ErrorIs(t, err, wlgl.ErrNoConfigure)

	snap := server.Snapshot()
	assert.Equal(t, 1, snap.Commits)
	assert.Empty(t, snap.Acks)
}

func TestNegotiateUnknownEvent(t *testing.T) {
	server, session := connect(t, compositortest.Options{UnknownSurfaceEvent: true})

	_, err := wlgl.Negotiate(session, wlgl.DefaultConfig())

	var terr wlgl.InvalidTransitionError
	require.ErrorAs(t, err, &terr)
	assert.Equal(t, wlgl.AwaitingConfigure, terr.State)
	assert.Contains(t, terr.Event, "xdg_surface")

	assert.Empty(t, server.Snapshot().Acks)
}

func TestNegotiateReconfigure(t *testing.T) {
	server, session := connect(t, compositortest.Options{Reconfigure: true})

	shell, err := wlgl.Negotiate(session, wlgl.DefaultConfig())
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	for shell.Configures() < 2 {
		require.NoError(t, session.Client().Dispatch(ctx))
	}
	require.NoError(t, session.Client().RoundTrip())

	assert.Equal(t, wlgl.Acknowledged, shell.State())
	assert.Equal(t, 2, shell.Commits())

	snap := server.Snapshot()
	require.Len(t, snap.Acks, 2)
	assert.Equal(t, snap.Configures, snap.Acks)
	assert.Equal(t, snap.Acks[1], shell.Serial())
}

func TestNegotiateProtocolError(t *testing.T) {
	_, session := connect(t, compositortest.Options{Error: "surface rejected"})

	_, err := wlgl.Negotiate(session, wlgl.DefaultConfig())

	var perr wl.ProtocolError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "surface rejected", perr.Message)
	assert.Equal(t, wl.DisplayErrorImplementation, perr.Code)
	assert.Contains(t, perr.Object, "wl_surface@")
}
