package wl

import (
	"os"
	"slices"

	"deedles.dev/wlgl/wire"
)

type Shm struct {
	// Format is called for every pixel format that the compositor
	// supports.
	Format func(ShmFormat)

	object
	formats []ShmFormat
}

func IsShm(i Interface) bool {
	return i.Is(ShmInterface, ShmVersion)
}

func BindShm(client *Client, registry *Registry, name, version uint32) *Shm {
	shm := Shm{object: object{client: client}}
	registry.Bind(name, ShmInterface, version, &shm)
	return &shm
}

// Supports reports whether the compositor has advertised format.
// ARGB8888 and XRGB8888 are always supported.
func (shm *Shm) Supports(format ShmFormat) bool {
	switch format {
	case ShmFormatArgb8888, ShmFormatXrgb8888:
		return true
	}
	return slices.Contains(shm.formats, format)
}

func (shm *Shm) CreatePool(file *os.File, size int32) *ShmPool {
	pool := ShmPool{object: object{client: shm.client}}
	shm.client.Add(&pool)

	msg := wire.NewMessage(shm, shmCreatePoolRequest)
	msg.Method = "create_pool"
	msg.Args = []any{pool.id, file, size}
	msg.WriteUint(pool.id)
	msg.WriteFile(file)
	msg.WriteInt(size)
	shm.client.Enqueue(msg)

	return &pool
}

func (shm *Shm) Dispatch(msg *wire.MessageBuffer) error {
	switch msg.Op() {
	case shmFormatEvent:
		format := ShmFormat(msg.ReadUint())
		if err := msg.Err(); err != nil {
			return err
		}

		shm.formats = append(shm.formats, format)
		if shm.Format != nil {
			shm.Format(format)
		}
		return nil

	default:
		return unknownEvent(ShmInterface, msg.Op())
	}
}

func (shm *Shm) MethodName(op uint16) string {
	return MethodName(shmEvents, op)
}

func (shm *Shm) String() string {
	return ObjectString(ShmInterface, shm.id)
}
