package wl

import "deedles.dev/wlgl/wire"

type Compositor struct {
	object
}

func IsCompositor(i Interface) bool {
	return i.Is(CompositorInterface, CompositorVersion)
}

func BindCompositor(client *Client, registry *Registry, name, version uint32) *Compositor {
	compositor := Compositor{object: object{client: client}}
	registry.Bind(name, CompositorInterface, version, &compositor)
	return &compositor
}

func (compositor *Compositor) CreateSurface() *Surface {
	surface := Surface{object: object{client: compositor.client}}
	compositor.client.Add(&surface)

	msg := wire.NewMessage(compositor, compositorCreateSurfaceRequest)
	msg.Method = "create_surface"
	msg.Args = []any{surface.id}
	msg.WriteUint(surface.id)
	compositor.client.Enqueue(msg)

	return &surface
}

func (compositor *Compositor) Dispatch(msg *wire.MessageBuffer) error {
	return unknownEvent(CompositorInterface, msg.Op())
}

func (compositor *Compositor) MethodName(op uint16) string {
	return MethodName(nil, op)
}

func (compositor *Compositor) String() string {
	return ObjectString(CompositorInterface, compositor.id)
}
