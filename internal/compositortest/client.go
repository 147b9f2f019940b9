package compositortest

import (
	"fmt"
	"os"
	"strings"

	"deedles.dev/wlgl/internal/objstore"
	"deedles.dev/wlgl/wire"
)

type client struct {
	server *Server
	conn   *wire.Conn
	store  *objstore.Store
	files  []*os.File
	closed bool
}

func newClient(server *Server, conn *wire.Conn) *client {
	c := client{
		server: server,
		conn:   conn,
		store:  objstore.New(0xFF000000),
	}
	c.store.Add(&display{resource: resource{id: 1, iface: "wl_display", client: &c}})

	return &c
}

func (c *client) listen() {
	for {
		msg, err := wire.ReadMessage(c.conn)
		if err != nil {
			c.server.enqueue(func() error {
				c.server.removeClient(c)
				if isDisconnect(err) {
					return nil
				}
				return err
			})
			return
		}

		c.server.enqueue(func() error { return c.dispatch(msg) })
	}
}

func (c *client) dispatch(msg *wire.MessageBuffer) error {
	if c.closed {
		return nil
	}

	obj := c.store.Get(msg.Sender())
	if obj == nil {
		return wire.UnknownSenderIDError{Msg: msg}
	}

	snap := &c.server.snap
	snap.Requests = append(snap.Requests, fmt.Sprintf("%v.%v", obj, obj.MethodName(msg.Op())))
	return obj.Dispatch(msg)
}

func (c *client) close() {
	if c.closed {
		return
	}
	c.closed = true

	c.conn.Close()
	for _, file := range c.files {
		file.Close()
	}
}

func (c *client) add(obj wire.Object) {
	c.store.Add(obj)
}

// release deletes obj and tells the client that its ID is free.
func (c *client) release(obj wire.Object) {
	c.store.Delete(obj.ID())
	c.send(c.store.Get(1), "wl_display", "delete_id", func(msg *wire.MessageBuilder) {
		msg.WriteUint(obj.ID())
	})
}

func (c *client) send(sender wire.Object, iface, event string, args func(*wire.MessageBuilder)) {
	c.sendOp(sender, eventOp(iface, event), event, args)
}

func (c *client) sendOp(sender wire.Object, op uint16, method string, args func(*wire.MessageBuilder)) {
	if c.closed {
		return
	}

	msg := wire.NewMessage(sender, op)
	msg.Method = method
	if args != nil {
		args(msg)
	}

	err := msg.Build(c.conn)
	if err != nil {
		c.server.errs = append(c.server.errs, fmt.Errorf("send %v: %w", msg, err))
	}
}

type resource struct {
	id     uint32
	iface  string
	client *client
}

func (r *resource) ID() uint32 {
	return r.id
}

func (r *resource) SetID(id uint32) {
	r.id = id
}

func (r *resource) Delete() {}

// Dispatch rejects every request. Plain resources, such as wl_callback,
// have none.
func (r *resource) Dispatch(msg *wire.MessageBuffer) error {
	r.client.server.violation(fmt.Sprintf("request opcode %v sent to %v", msg.Op(), r))
	return wire.UnknownOpError{Interface: r.iface, Type: "request", Op: msg.Op()}
}

func (r *resource) MethodName(op uint16) string {
	return requestName(r.iface, op)
}

func (r *resource) String() string {
	return fmt.Sprintf("%v@%v", r.iface, r.id)
}

func (r *resource) request(msg *wire.MessageBuffer) string {
	return requestName(r.iface, msg.Op())
}

func requestMethod(req string) string {
	at := strings.IndexByte(req, '@')
	dot := strings.IndexByte(req, '.')
	if (at < 0) || (dot < at) {
		return req
	}
	return req[:at] + req[dot:]
}
