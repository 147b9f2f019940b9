package xdg

import (
	wl "deedles.dev/wlgl/client"
	"deedles.dev/wlgl/internal/bin"
	"deedles.dev/wlgl/wire"
)

type Toplevel struct {
	// Configure is called with the compositor's suggested size, which
	// is zero if the client may pick, and the window's states.
	Configure func(width, height int32, states []ToplevelState)

	// Close is called when the user asks for the window to be closed.
	Close func()

	object
}

func (t *Toplevel) SetTitle(title string) {
	msg := newMessage(t, toplevelSetTitleRequest, "set_title", title)
	msg.WriteString(title)
	t.client.Enqueue(msg)
}

func (t *Toplevel) SetAppID(id string) {
	msg := newMessage(t, toplevelSetAppIdRequest, "set_app_id", id)
	msg.WriteString(id)
	t.client.Enqueue(msg)
}

func (t *Toplevel) Destroy() {
	t.client.Enqueue(newMessage(t, toplevelDestroyRequest, "destroy"))
}

func (t *Toplevel) Dispatch(msg *wire.MessageBuffer) error {
	switch msg.Op() {
	case toplevelConfigureEvent:
		width := msg.ReadInt()
		height := msg.ReadInt()
		states := decodeStates(msg.ReadArray())
		if err := msg.Err(); err != nil {
			return err
		}

		if t.Configure != nil {
			t.Configure(width, height, states)
		}
		return nil

	case toplevelCloseEvent:
		if t.Close != nil {
			t.Close()
		}
		return nil

	default:
		return unknownEvent(ToplevelInterface, msg.Op())
	}
}

func (t *Toplevel) MethodName(op uint16) string {
	return wl.MethodName(toplevelEvents, op)
}

func (t *Toplevel) String() string {
	return wl.ObjectString(ToplevelInterface, t.id)
}

func decodeStates(data []byte) []ToplevelState {
	states := make([]ToplevelState, 0, len(data)/4)
	for len(data) >= 4 {
		states = append(states, ToplevelState(bin.Value[uint32]([4]byte(data))))
		data = data[4:]
	}
	return states
}
