package wl

import (
	"deedles.dev/wlgl/wire"
	"golang.org/x/exp/maps"
)

type Registry struct {
	Listener RegistryListener

	object
	globals map[uint32]Interface
}

type RegistryListener interface {
	Global(name uint32, inter string, version uint32)
	GlobalRemove(name uint32)
}

// Globals returns a snapshot of the globals that have been advertised
// so far, keyed by name.
func (registry *Registry) Globals() map[uint32]Interface {
	return maps.Clone(registry.globals)
}

// Find returns the lowest named global that implements inter at a
// version of at least version.
func (registry *Registry) Find(inter string, version uint32) (name uint32, ok bool) {
	for n, i := range registry.globals {
		if !i.Is(inter, version) {
			continue
		}
		if !ok || n < name {
			name, ok = n, true
		}
	}
	return name, ok
}

// Bind binds obj to the named global. obj is added to the client if
// it doesn't have an ID yet.
func (registry *Registry) Bind(name uint32, inter string, version uint32, obj wire.Object) {
	if obj.ID() == 0 {
		registry.client.Add(obj)
	}

	msg := wire.NewMessage(registry, registryBindRequest)
	msg.Method = "bind"
	msg.Args = []any{name, inter, version, obj.ID()}
	msg.WriteUint(name)
	msg.WriteNewID(wire.NewID{Interface: inter, Version: version, ID: obj.ID()})
	registry.client.Enqueue(msg)
}

func (registry *Registry) Dispatch(msg *wire.MessageBuffer) error {
	switch msg.Op() {
	case registryGlobalEvent:
		name := msg.ReadUint()
		inter := msg.ReadString()
		version := msg.ReadUint()
		if err := msg.Err(); err != nil {
			return err
		}

		registry.globals[name] = Interface{Name: inter, Version: version}
		if registry.Listener != nil {
			registry.Listener.Global(name, inter, version)
		}
		return nil

	case registryGlobalRemoveEvent:
		name := msg.ReadUint()
		if err := msg.Err(); err != nil {
			return err
		}

		delete(registry.globals, name)
		if registry.Listener != nil {
			registry.Listener.GlobalRemove(name)
		}
		return nil

	default:
		return unknownEvent(RegistryInterface, msg.Op())
	}
}

func (registry *Registry) MethodName(op uint16) string {
	return MethodName(registryEvents, op)
}

func (registry *Registry) String() string {
	return ObjectString(RegistryInterface, registry.id)
}
