package wl

import (
	"context"
	"errors"
	"fmt"
	"net"
	"sync"

	"deedles.dev/wlgl/internal/cq"
	"deedles.dev/wlgl/internal/debug"
	"deedles.dev/wlgl/internal/objstore"
	"deedles.dev/wlgl/wire"
)

//go:generate go run deedles.dev/wlgl/cmd/wlgen -pkg wl -prefix wl_ -out protocol.go -xml ../protocol/wayland.xml

// Client is the client side of a connection to a compositor. Requests
// are queued by protocol objects and only sent, and events are only
// handled, while one of Flush, RoundTrip or Dispatch is running, all
// on the goroutine calling them.
type Client struct {
	done  chan struct{}
	close sync.Once
	conn  *wire.Conn
	store *objstore.Store
	queue *cq.Queue[func() error]

	lost    chan struct{}
	lostErr error

	pending int
	display *Display
}

// Dial connects to the compositor indicated by the environment.
func Dial() (*Client, error) {
	c, err := wire.Dial()
	if err != nil {
		return nil, err
	}

	return NewClient(c), nil
}

func NewClient(conn *wire.Conn) *Client {
	client := Client{
		done:  make(chan struct{}),
		conn:  conn,
		store: objstore.New(1),
		queue: cq.New[func() error](),
		lost:  make(chan struct{}),
	}

	client.display = &Display{object: object{client: &client}}
	client.Add(client.display)

	go client.listen()

	return &client
}

func (client *Client) listen() {
	for {
		msg, err := wire.ReadMessage(client.conn)
		if err != nil {
			client.lostErr = fmt.Errorf("read message: %w", err)
			close(client.lost)
			return
		}

		select {
		case <-client.done:
			return
		case client.queue.Add() <- func() error { return client.dispatch(msg) }:
		}
	}
}

// Display returns the wl_display singleton of the connection.
func (client *Client) Display() *Display {
	return client.display
}

// Close closes the connection. Requests that are still queued are
// discarded.
func (client *Client) Close() error {
	client.close.Do(func() { close(client.done) })
	client.queue.Stop()
	err := client.conn.Close()
	if errors.Is(err, net.ErrClosed) {
		return nil
	}
	return err
}

// Add registers obj with the connection, assigning it a new ID.
func (client *Client) Add(obj wire.Object) {
	client.store.Add(obj)
}

func (client *Client) Get(id uint32) wire.Object {
	return client.store.Get(id)
}

func (client *Client) Delete(id uint32) {
	client.store.Delete(id)
}

func (client *Client) dispatch(msg *wire.MessageBuffer) error {
	obj := client.store.Get(msg.Sender())
	if obj == nil {
		return wire.UnknownSenderIDError{Msg: msg}
	}

	if debug.Enabled() {
		debug.Printf("%v", msg.Debug(obj))
	}
	return obj.Dispatch(msg)
}

// Enqueue queues msg to be sent during the next flush.
func (client *Client) Enqueue(msg *wire.MessageBuilder) {
	select {
	case <-client.done:
	case client.queue.Add() <- func() error {
		debug.Printf(" -> %v", msg)
		return msg.Build(client.conn)
	}:
		client.pending++
	}
}

func (client *Client) flush(queue []func() error) error {
	client.pending = 0
	return errors.Join(cq.Flush(queue)...)
}

// Flush sends all enqueued requests and handles every event that has
// been received since the last time the queue was flushed. It only
// blocks if requests are pending.
func (client *Client) Flush() error {
	if client.pending == 0 {
		select {
		case queue := <-client.queue.Get():
			return client.flush(queue)
		default:
			return nil
		}
	}

	select {
	case <-client.done:
		return net.ErrClosed
	case queue := <-client.queue.Get():
		return client.flush(queue)
	}
}

// RoundTrip flushes the queue and then blocks until the compositor
// has processed every request sent so far, handling events as they
// arrive. It returns every error that was encountered along the way.
func (client *Client) RoundTrip() error {
	done := make(chan struct{})
	client.display.Sync().Then(func(uint32) { close(done) })

	var errs []error

	for {
		select {
		case <-done:
			return errors.Join(errs...)

		case <-client.done:
			return errors.Join(append(errs, net.ErrClosed)...)

		case <-client.lost:
			return errors.Join(append(errs, client.drain(), client.lostErr)...)

		case queue := <-client.queue.Get():
			errs = append(errs, client.flush(queue))
		}
	}
}

// Dispatch blocks until at least one event or request is queued and
// then flushes the queue.
func (client *Client) Dispatch(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-client.done:
		return net.ErrClosed
	case <-client.lost:
		return errors.Join(client.drain(), client.lostErr)
	case queue := <-client.queue.Get():
		return client.flush(queue)
	}
}

// drain flushes whatever was queued before the connection was lost.
func (client *Client) drain() error {
	select {
	case queue := <-client.queue.Get():
		return client.flush(queue)
	default:
		return nil
	}
}

// object holds the state shared by every protocol object.
type object struct {
	id     uint32
	client *Client
}

func (obj *object) ID() uint32 {
	return obj.id
}

func (obj *object) SetID(id uint32) {
	obj.id = id
}

func (obj *object) Delete() {}

func (obj *object) Client() *Client {
	return obj.client
}

// ObjectString formats an object the way that WAYLAND_DEBUG output
// does, such as "wl_surface@3".
func ObjectString(iface string, id uint32) string {
	return fmt.Sprintf("%v@%v", iface, id)
}

// MethodName looks op up in a table of request or event names.
func MethodName(names []string, op uint16) string {
	if int(op) >= len(names) {
		return fmt.Sprintf("<unknown %v>", op)
	}
	return names[op]
}

func unknownEvent(iface string, op uint16) error {
	return wire.UnknownOpError{Interface: iface, Type: "event", Op: op}
}
