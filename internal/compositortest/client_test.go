package compositortest

import (
	"testing"

	"deedles.dev/wlgl/wire"
	"github.com/stretchr/testify/assert"
)

func TestObjects(t *testing.T) {
	objects := []any{
		new(resource),
		new(display),
		new(registry),
		new(compositor),
		new(surface),
		new(shm),
		new(pool),
		new(buffer),
		new(wmBase),
		new(xdgSurface),
		new(toplevel),
	}
	for _, obj := range objects {
		assert.Implements(t, (*wire.Object)(nil), obj)
	}
}
