package wl

import "deedles.dev/wlgl/wire"

type ShmPool struct {
	object
}

func (pool *ShmPool) CreateBuffer(offset, width, height, stride int32, format ShmFormat) *Buffer {
	buf := Buffer{object: object{client: pool.client}}
	pool.client.Add(&buf)

	msg := wire.NewMessage(pool, shmPoolCreateBufferRequest)
	msg.Method = "create_buffer"
	msg.Args = []any{buf.id, offset, width, height, stride, format}
	msg.WriteUint(buf.id)
	msg.WriteInt(offset)
	msg.WriteInt(width)
	msg.WriteInt(height)
	msg.WriteInt(stride)
	msg.WriteUint(uint32(format))
	pool.client.Enqueue(msg)

	return &buf
}

func (pool *ShmPool) Resize(size int32) {
	msg := wire.NewMessage(pool, shmPoolResizeRequest)
	msg.Method = "resize"
	msg.Args = []any{size}
	msg.WriteInt(size)
	pool.client.Enqueue(msg)
}

func (pool *ShmPool) Destroy() {
	msg := wire.NewMessage(pool, shmPoolDestroyRequest)
	msg.Method = "destroy"
	pool.client.Enqueue(msg)
}

func (pool *ShmPool) Dispatch(msg *wire.MessageBuffer) error {
	return unknownEvent(ShmPoolInterface, msg.Op())
}

func (pool *ShmPool) MethodName(op uint16) string {
	return MethodName(nil, op)
}

func (pool *ShmPool) String() string {
	return ObjectString(ShmPoolInterface, pool.id)
}
