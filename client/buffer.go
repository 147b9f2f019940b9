package wl

import "deedles.dev/wlgl/wire"

type Buffer struct {
	// Release is called when the compositor no longer reads from the
	// buffer.
	Release func()

	object
	busy bool
}

// Busy reports whether the buffer has been attached and not yet
// released by the compositor.
func (buf *Buffer) Busy() bool {
	return buf.busy
}

func (buf *Buffer) Destroy() {
	msg := wire.NewMessage(buf, bufferDestroyRequest)
	msg.Method = "destroy"
	buf.client.Enqueue(msg)
}

func (buf *Buffer) Dispatch(msg *wire.MessageBuffer) error {
	switch msg.Op() {
	case bufferReleaseEvent:
		buf.busy = false
		if buf.Release != nil {
			buf.Release()
		}
		return nil

	default:
		return unknownEvent(BufferInterface, msg.Op())
	}
}

func (buf *Buffer) MethodName(op uint16) string {
	return MethodName(bufferEvents, op)
}

func (buf *Buffer) String() string {
	return ObjectString(BufferInterface, buf.id)
}
