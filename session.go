// Package wlgl opens a window on a Wayland compositor, binds an OpenGL
// ES 2.0 context to it and draws a single frame.
//
// The stages of a run are exposed individually so that each can be
// driven on its own. Run performs all of them in order.
package wlgl

import (
	"errors"
	"fmt"

	wl "deedles.dev/wlgl/client"
	"deedles.dev/wlgl/gpu"
	"deedles.dev/wlgl/xdg"
	"github.com/charmbracelet/log"
)

// bindVersion is the version that every global is bound at, which
// keeps the set of events that can arrive closed.
const bindVersion = 1

var (
	ErrNoCompositor = errors.New("no compatible compositor")
	ErrNoShell      = errors.New("no compatible shell")
	ErrNoShm        = errors.New("no compatible shared memory")
)

// Session is a connection to a compositor with the globals that a
// window needs already bound.
type Session struct {
	client     *wl.Client
	registry   *wl.Registry
	compositor *wl.Compositor
	shm        *wl.Shm
	wm         *xdg.WmBase
}

// Connect dials the compositor named by the environment and binds its
// globals.
func Connect() (*Session, error) {
	client, err := wl.Dial()
	if err != nil {
		return nil, fmt.Errorf("dial compositor: %w", err)
	}

	session, err := NewSession(client)
	if err != nil {
		client.Close()
		return nil, err
	}
	return session, nil
}

// NewSession binds the globals of an existing connection. Every
// global is looked up before any is bound, so nothing is created
// if one is missing.
func NewSession(client *wl.Client) (*Session, error) {
	registry := client.Display().GetRegistry()
	err := client.RoundTrip()
	if err != nil {
		return nil, fmt.Errorf("get globals: %w", err)
	}

	compName, ok := registry.Find(wl.CompositorInterface, bindVersion)
	if !ok {
		return nil, ErrNoCompositor
	}
	wmName, ok := registry.Find(xdg.WmBaseInterface, bindVersion)
	if !ok {
		return nil, ErrNoShell
	}
	shmName, ok := registry.Find(wl.ShmInterface, bindVersion)
	if !ok {
		return nil, ErrNoShm
	}

	session := Session{
		client:     client,
		registry:   registry,
		compositor: wl.BindCompositor(client, registry, compName, bindVersion),
		shm:        wl.BindShm(client, registry, shmName, bindVersion),
		wm:         xdg.BindWmBase(client, registry, wmName, bindVersion),
	}
	session.wm.Ping = func(serial uint32) {
		log.Debug("answered ping", "serial", serial)
	}

	log.Debug("bound globals", "compositor", compName, "shell", wmName, "shm", shmName)
	return &session, nil
}

func (s *Session) Client() *wl.Client {
	return s.client
}

func (s *Session) Registry() *wl.Registry {
	return s.registry
}

func (s *Session) Compositor() *wl.Compositor {
	return s.compositor
}

func (s *Session) Shm() *wl.Shm {
	return s.shm
}

func (s *Session) WmBase() *xdg.WmBase {
	return s.wm
}

// NativeDisplay describes the display that EGL should open. The
// connection is not libwayland's, so EGL can't be handed a wl_display
// and renders surfaceless instead.
func (s *Session) NativeDisplay() gpu.NativeDisplay {
	return gpu.NativeDisplay{Platform: gpu.PlatformSurfaceless}
}

func (s *Session) Close() error {
	return s.client.Close()
}
