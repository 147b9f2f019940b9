package xdg

import (
	wl "deedles.dev/wlgl/client"
	"deedles.dev/wlgl/wire"
)

type WmBase struct {
	// Ping, if set, is called after a ping has been answered.
	Ping func(serial uint32)

	object
}

func IsWmBase(i wl.Interface) bool {
	return i.Is(WmBaseInterface, WmBaseVersion)
}

func BindWmBase(client *wl.Client, registry *wl.Registry, name, version uint32) *WmBase {
	wm := WmBase{object: object{client: client}}
	registry.Bind(name, WmBaseInterface, version, &wm)
	return &wm
}

// GetXdgSurface creates an xdg_surface for surface. surface must not
// have a role or any content attached yet.
func (wm *WmBase) GetXdgSurface(surface *wl.Surface) *Surface {
	s := Surface{object: object{client: wm.client}}
	wm.client.Add(&s)

	msg := newMessage(wm, wmBaseGetXdgSurfaceRequest, "get_xdg_surface", s.id, surface)
	msg.WriteUint(s.id)
	msg.WriteObject(surface)
	wm.client.Enqueue(msg)

	return &s
}

func (wm *WmBase) Pong(serial uint32) {
	msg := newMessage(wm, wmBasePongRequest, "pong", serial)
	msg.WriteUint(serial)
	wm.client.Enqueue(msg)
}

func (wm *WmBase) Destroy() {
	wm.client.Enqueue(newMessage(wm, wmBaseDestroyRequest, "destroy"))
}

func (wm *WmBase) Dispatch(msg *wire.MessageBuffer) error {
	switch msg.Op() {
	case wmBasePingEvent:
		serial := msg.ReadUint()
		if err := msg.Err(); err != nil {
			return err
		}

		wm.Pong(serial)
		if wm.Ping != nil {
			wm.Ping(serial)
		}
		return nil

	default:
		return unknownEvent(WmBaseInterface, msg.Op())
	}
}

func (wm *WmBase) MethodName(op uint16) string {
	return wl.MethodName(wmBaseEvents, op)
}

func (wm *WmBase) String() string {
	return wl.ObjectString(WmBaseInterface, wm.id)
}
