// Package wire defines types helpful for dealing with the Wayland
// wire protocol. It is primarly intended for usage by the protocol
// object implementations in the client and xdg packages.
package wire

import (
	"errors"
	"io"
	"net"

	"golang.org/x/sys/unix"
)

// maxFDs is the largest number of file descriptors that libwayland
// will send alongside a single write.
const maxFDs = 28

// unixTee reads from c, but also reads out-of-band data
// simultaneously, writing it into oob.
type unixTee struct {
	c   *net.UnixConn
	oob io.Writer
}

func (t unixTee) Read(buf []byte) (int, error) {
	oob := make([]byte, unix.CmsgSpace(maxFDs*4))
	n, oobn, _, _, err := t.c.ReadMsgUnix(buf, oob)
	if (n == 0) && (err == nil) {
		err = io.EOF
	}
	if _, ooberr := t.oob.Write(oob[:oobn]); ooberr != nil {
		return n, errors.Join(err, ooberr)
	}
	return n, err
}

// padding returns the number of bytes needed to pad a length out to a
// 32-bit boundary.
func padding(length uint32) uint32 {
	return (4 - (length % 4)) % 4
}

// Object represents a Wayland protocol object.
type Object interface {
	// ID returns the object's ID, or 0 if it hasn't been assigned one
	// yet.
	ID() uint32

	// SetID assigns the object's ID. It is called when the object is
	// added to a connection.
	SetID(id uint32)

	// Dispatch pertforms the operation requested by the message in the
	// buffer.
	Dispatch(msg *MessageBuffer) error

	// Delete is called when the object's ID has been released.
	Delete()

	// MethodName returns the name of the method with the given opcode
	// in the direction that this object receives messages in.
	MethodName(op uint16) string
}

// NewID is the dynamically typed form of a new_id argument, used by
// requests such as wl_registry.bind that create an object of an
// interface chosen at runtime.
type NewID struct {
	Interface string
	Version   uint32
	ID        uint32
}
