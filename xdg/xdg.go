// Package xdg implements the client side of the xdg-shell protocol,
// which gives wl_surfaces desktop window roles.
package xdg

import (
	wl "deedles.dev/wlgl/client"
	"deedles.dev/wlgl/wire"
)

//go:generate go run deedles.dev/wlgl/cmd/wlgen -pkg xdg -prefix xdg_ -out protocol.go -xml ../protocol/xdg-shell.xml

type object struct {
	id     uint32
	client *wl.Client
}

func (obj *object) ID() uint32 {
	return obj.id
}

func (obj *object) SetID(id uint32) {
	obj.id = id
}

func (obj *object) Delete() {}

func newMessage(sender wire.Object, op uint16, method string, args ...any) *wire.MessageBuilder {
	msg := wire.NewMessage(sender, op)
	msg.Method = method
	msg.Args = args
	return msg
}

func unknownEvent(iface string, op uint16) error {
	return wire.UnknownOpError{Interface: iface, Type: "event", Op: op}
}
