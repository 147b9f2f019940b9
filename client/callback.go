package wl

import "deedles.dev/wlgl/wire"

type Callback struct {
	object
	done func(uint32)
}

// Then sets the function to be called when the callback fires.
func (callback *Callback) Then(f func(data uint32)) {
	callback.done = f
}

func (callback *Callback) Dispatch(msg *wire.MessageBuffer) error {
	switch msg.Op() {
	case callbackDoneEvent:
		data := msg.ReadUint()
		if err := msg.Err(); err != nil {
			return err
		}

		if callback.done != nil {
			callback.done(data)
		}
		return nil

	default:
		return unknownEvent(CallbackInterface, msg.Op())
	}
}

func (callback *Callback) MethodName(op uint16) string {
	return MethodName(callbackEvents, op)
}

func (callback *Callback) String() string {
	return ObjectString(CallbackInterface, callback.id)
}
