package xdg

import (
	wl "deedles.dev/wlgl/client"
	"deedles.dev/wlgl/wire"
)

type Surface struct {
	Listener SurfaceListener

	object
}

// SurfaceListener receives the events of an xdg_surface. Errors it
// returns are reported by the client call that dispatched the event.
type SurfaceListener interface {
	Configure(serial uint32) error

	// UnknownEvent is called for events that have no meaning at the
	// bound version of the interface.
	UnknownEvent(op uint16) error
}

func (s *Surface) GetToplevel() *Toplevel {
	toplevel := Toplevel{object: object{client: s.client}}
	s.client.Add(&toplevel)

	msg := newMessage(s, surfaceGetToplevelRequest, "get_toplevel", toplevel.id)
	msg.WriteUint(toplevel.id)
	s.client.Enqueue(msg)

	return &toplevel
}

func (s *Surface) AckConfigure(serial uint32) {
	msg := newMessage(s, surfaceAckConfigureRequest, "ack_configure", serial)
	msg.WriteUint(serial)
	s.client.Enqueue(msg)
}

func (s *Surface) Destroy() {
	s.client.Enqueue(newMessage(s, surfaceDestroyRequest, "destroy"))
}

func (s *Surface) Dispatch(msg *wire.MessageBuffer) error {
	switch msg.Op() {
	case surfaceConfigureEvent:
		serial := msg.ReadUint()
		if err := msg.Err(); err != nil {
			return err
		}

		if s.Listener == nil {
			s.AckConfigure(serial)
			return nil
		}
		return s.Listener.Configure(serial)

	default:
		if s.Listener == nil {
			return unknownEvent(SurfaceInterface, msg.Op())
		}
		return s.Listener.UnknownEvent(msg.Op())
	}
}

func (s *Surface) MethodName(op uint16) string {
	return wl.MethodName(surfaceEvents, op)
}

func (s *Surface) String() string {
	return wl.ObjectString(SurfaceInterface, s.id)
}
