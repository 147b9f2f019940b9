package wl

import "deedles.dev/wlgl/wire"

type Display struct {
	Listener DisplayListener

	object
	registry *Registry
}

type DisplayListener interface {
	Error(id, code uint32, msg string)
	DeleteId(id uint32)
}

// GetRegistry returns the connection's registry, creating it on the
// first call.
func (display *Display) GetRegistry() *Registry {
	if display.registry != nil {
		return display.registry
	}

	registry := Registry{
		object:  object{client: display.client},
		globals: make(map[uint32]Interface),
	}
	display.client.Add(&registry)

	msg := wire.NewMessage(display, displayGetRegistryRequest)
	msg.Method = "get_registry"
	msg.Args = []any{registry.id}
	msg.WriteUint(registry.id)
	display.client.Enqueue(msg)

	display.registry = &registry
	return &registry
}

// Sync asks the compositor to signal the returned callback once every
// request sent before it has been handled.
func (display *Display) Sync() *Callback {
	callback := Callback{object: object{client: display.client}}
	display.client.Add(&callback)

	msg := wire.NewMessage(display, displaySyncRequest)
	msg.Method = "sync"
	msg.Args = []any{callback.id}
	msg.WriteUint(callback.id)
	display.client.Enqueue(msg)

	return &callback
}

func (display *Display) Dispatch(msg *wire.MessageBuffer) error {
	switch msg.Op() {
	case displayErrorEvent:
		id := msg.ReadObject()
		code := msg.ReadUint()
		message := msg.ReadString()
		if err := msg.Err(); err != nil {
			return err
		}

		if display.Listener != nil {
			display.Listener.Error(id, code, message)
		}

		target := ObjectString("unknown", id)
		if obj := display.client.Get(id); obj != nil {
			target = fmtObject(obj)
		}
		return ProtocolError{Object: target, Code: DisplayError(code), Message: message}

	case displayDeleteIdEvent:
		id := msg.ReadUint()
		if err := msg.Err(); err != nil {
			return err
		}

		display.client.Delete(id)
		if display.Listener != nil {
			display.Listener.DeleteId(id)
		}
		return nil

	default:
		return unknownEvent(DisplayInterface, msg.Op())
	}
}

func (display *Display) MethodName(op uint16) string {
	return MethodName(displayEvents, op)
}

func (display *Display) String() string {
	return ObjectString(DisplayInterface, display.id)
}
