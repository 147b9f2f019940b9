package wl

import "deedles.dev/wlgl/wire"

type Surface struct {
	// Enter and Leave report the outputs that the surface is shown on.
	Enter, Leave func(output uint32)

	object
}

// Attach sets buf as the surface's pending content. A nil buf removes
// the surface's content on the next commit.
func (surface *Surface) Attach(buf *Buffer, x, y int32) {
	msg := wire.NewMessage(surface, surfaceAttachRequest)
	msg.Method = "attach"
	msg.Args = []any{buf, x, y}
	msg.WriteObject(buf)
	msg.WriteInt(x)
	msg.WriteInt(y)
	surface.client.Enqueue(msg)
}

func (surface *Surface) Damage(x, y, width, height int32) {
	msg := wire.NewMessage(surface, surfaceDamageRequest)
	msg.Method = "damage"
	msg.Args = []any{x, y, width, height}
	msg.WriteInt(x)
	msg.WriteInt(y)
	msg.WriteInt(width)
	msg.WriteInt(height)
	surface.client.Enqueue(msg)
}

// Commit applies the surface's pending state.
func (surface *Surface) Commit() {
	msg := wire.NewMessage(surface, surfaceCommitRequest)
	msg.Method = "commit"
	surface.client.Enqueue(msg)
}

func (surface *Surface) Destroy() {
	msg := wire.NewMessage(surface, surfaceDestroyRequest)
	msg.Method = "destroy"
	surface.client.Enqueue(msg)
}

func (surface *Surface) Dispatch(msg *wire.MessageBuffer) error {
	switch msg.Op() {
	case surfaceEnterEvent, surfaceLeaveEvent:
		output := msg.ReadObject()
		if err := msg.Err(); err != nil {
			return err
		}

		f := surface.Enter
		if msg.Op() == surfaceLeaveEvent {
			f = surface.Leave
		}
		if f != nil {
			f(output)
		}
		return nil

	default:
		return unknownEvent(SurfaceInterface, msg.Op())
	}
}

func (surface *Surface) MethodName(op uint16) string {
	return MethodName(surfaceEvents, op)
}

func (surface *Surface) String() string {
	return ObjectString(SurfaceInterface, surface.id)
}
