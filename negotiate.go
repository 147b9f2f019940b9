package wlgl

import (
	"errors"
	"fmt"

	wl "deedles.dev/wlgl/client"
	"deedles.dev/wlgl/xdg"
	"github.com/charmbracelet/log"
)

var ErrNoConfigure = errors.New("compositor did not configure the surface")

// ShellState is the state of the xdg_surface handshake.
type ShellState int

const (
	// AwaitingConfigure is the state from creation until the first
	// configure event.
	AwaitingConfigure ShellState = iota

	// Acknowledged is entered by acknowledging a configure. Later
	// configures are acknowledged the same way.
	Acknowledged
)

func (s ShellState) String() string {
	switch s {
	case AwaitingConfigure:
		return "awaiting configure"
	case Acknowledged:
		return "acknowledged"
	default:
		return fmt.Sprintf("ShellState(%d)", int(s))
	}
}

// InvalidTransitionError is returned when the compositor sends an
// event that has no transition from the current state.
type InvalidTransitionError struct {
	State ShellState
	Event string
}

func (err InvalidTransitionError) Error() string {
	return fmt.Sprintf("unexpected %v event in state %v", err.Event, err.State)
}

// Shell is a surface with the xdg toplevel role that has completed
// its configure handshake.
type Shell struct {
	session  *Session
	surface  *wl.Surface
	xdg      *xdg.Surface
	toplevel *xdg.Toplevel

	state      ShellState
	serial     uint32
	commits    int
	configures int

	width, height int32
	closed        bool

	// framed is set once a buffer has been attached.
	framed bool
}

// Negotiate creates a toplevel window and performs the initial
// configure handshake: role assignment, an empty commit, a round trip
// for the configure, its acknowledgement and a second commit.
func Negotiate(session *Session, cfg Config) (*Shell, error) {
	shell := Shell{session: session}

	shell.surface = session.compositor.CreateSurface()

	shell.xdg = session.wm.GetXdgSurface(shell.surface)
	shell.xdg.Listener = &shell

	shell.toplevel = shell.xdg.GetToplevel()
	shell.toplevel.Configure = shell.configureToplevel
	shell.toplevel.Close = func() {
		log.Info("toplevel closed by compositor")
		shell.closed = true
	}
	if cfg.Title != "" {
		shell.toplevel.SetTitle(cfg.Title)
	}
	if cfg.AppID != "" {
		shell.toplevel.SetAppID(cfg.AppID)
	}

	shell.commit()
	err := session.client.RoundTrip()
	if err != nil {
		return nil, fmt.Errorf("await configure: %w", err)
	}
	if shell.configures == 0 {
		return nil, ErrNoConfigure
	}

	shell.commit()
	err = session.client.Flush()
	if err != nil {
		return nil, fmt.Errorf("flush: %w", err)
	}

	return &shell, nil
}

func (shell *Shell) commit() {
	shell.commits++
	shell.surface.Commit()
}

// Configure implements xdg.SurfaceListener. A configure that arrives
// after a frame has been attached is acknowledged and then applied by
// committing the same buffer again.
func (shell *Shell) Configure(serial uint32) error {
	shell.configures++
	shell.serial = serial
	shell.xdg.AckConfigure(serial)

	log.Debug("acknowledged configure", "serial", serial, "from", shell.state)
	shell.state = Acknowledged
	if shell.framed {
		shell.commit()
	}
	return nil
}

// UnknownEvent implements xdg.SurfaceListener.
func (shell *Shell) UnknownEvent(op uint16) error {
	return InvalidTransitionError{
		State: shell.state,
		Event: fmt.Sprintf("%v opcode %v", xdg.SurfaceInterface, op),
	}
}

func (shell *Shell) configureToplevel(width, height int32, states []xdg.ToplevelState) {
	shell.width, shell.height = width, height
	log.Debug("toplevel configure", "width", width, "height", height, "states", states)
}

func (shell *Shell) Surface() *wl.Surface {
	return shell.surface
}

func (shell *Shell) Toplevel() *xdg.Toplevel {
	return shell.toplevel
}

func (shell *Shell) State() ShellState {
	return shell.state
}

// Serial returns the serial of the last configure that was
// acknowledged.
func (shell *Shell) Serial() uint32 {
	return shell.serial
}

// Commits returns the number of commits made by the shell itself:
// two for the handshake and one for every configure after a frame.
// Frames committed by a Window are not counted.
func (shell *Shell) Commits() int {
	return shell.commits
}

// Configures returns the number of configure events received.
func (shell *Shell) Configures() int {
	return shell.configures
}

// SuggestedSize returns the size from the last toplevel configure.
// Zero means that the compositor left the choice to the client.
func (shell *Shell) SuggestedSize() (width, height int32) {
	return shell.width, shell.height
}

// Closed reports whether the compositor asked for the window to be
// closed.
func (shell *Shell) Closed() bool {
	return shell.closed
}
