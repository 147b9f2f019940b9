package wl

// Interface identifies a global advertised by the registry.
type Interface struct {
	Name    string
	Version uint32
}

// Is reports whether i is the named interface at a version of at least
// version.
func (i Interface) Is(name string, version uint32) bool {
	return (i.Name == name) && (i.Version >= version)
}
