package objstore_test

import (
	"testing"

	"deedles.dev/wlgl/internal/objstore"
	"deedles.dev/wlgl/wire"
	"github.com/stretchr/testify/assert"
)

type object struct {
	id      uint32
	deleted bool
}

func (obj *object) ID() uint32 { return obj.id }
func (obj *object) SetID(id uint32) { obj.id = id }
func (obj *object) Dispatch(*wire.MessageBuffer) error { return nil }
func (obj *object) Delete() { obj.deleted = true }
func (obj *object) MethodName(uint16) string { return "" }

func TestStore(t *testing.T) {
	s := objstore.New(2)

	a, b := new(object), new(object)
	s.Add(a)
	s.Add(b)
	assert.Equal(t, uint32(2), a.id)
	assert.Equal(t, uint32(3), b.id)

	fixed := &object{id: 1}
	s.Add(fixed)
	assert.Equal(t, uint32(1), fixed.id)
	assert.Equal(t, 3, s.Len())
	assert.Same(t, b, s.Get(3))

	s.Delete(2)
	assert.True(t, a.deleted)
	assert.Nil(t, s.Get(2))
	assert.Equal(t, 2, s.Len())

	s.Delete(42)
	assert.Equal(t, 2, s.Len())
}
