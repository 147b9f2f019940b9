// Package compositortest runs an in-process compositor that speaks
// just enough of the core and xdg-shell protocols to drive a client
// through window setup and a single shm presentation.
package compositortest

import (
	"errors"
	"io"
	"net"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"testing"

	"deedles.dev/wlgl/internal/cq"
	"deedles.dev/wlgl/internal/set"
	"deedles.dev/wlgl/wire"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/maps"
)

// Options change how the compositor behaves.
type Options struct {
	// Omit lists globals that are not advertised.
	Omit []string

	// Duplicates advertises a second copy of every global under a
	// higher name, ahead of the first.
	Duplicates bool

	// NoConfigure suppresses the configure that normally answers the
	// first commit of a surface with a role.
	NoConfigure bool

	// UnknownSurfaceEvent answers the first commit with an
	// xdg_surface event that the protocol doesn't define.
	UnknownSurfaceEvent bool

	// Reconfigure sends a second configure after the first has been
	// acknowledged and committed.
	Reconfigure bool

	// Ping pings the client as soon as it binds xdg_wm_base.
	Ping bool

	// CloseAfterFrame sends xdg_toplevel.close once a buffer has been
	// committed.
	CloseAfterFrame bool

	// Error, if not empty, makes the compositor respond to the first
	// commit with a wl_display.error carrying this message.
	Error string
}

// Snapshot is what the compositor has seen so far.
type Snapshot struct {
	// Requests holds every request, formatted like
	// "wl_surface@3.commit".
	Requests []string

	// Bound maps interfaces to the global name that they were bound
	// from and Versions to the version that they were bound at.
	Bound    map[string]uint32
	Versions map[string]uint32

	Commits    int
	Configures []uint32
	Acks       []uint32
	Pings      []uint32
	Pongs      []uint32
	Title      string
	AppID      string

	Pools    int
	Buffers  int
	Attaches int
	Damages  int

	// Frame holds the pixels of the last committed buffer.
	Frame                    []byte
	FrameWidth, FrameHeight  int32
	FrameStride, FrameFormat int32

	// Violations describes requests that a real compositor would
	// have rejected.
	Violations []string
}

// Count returns the number of requests that match method, such as
// "wl_surface.commit".
func (s Snapshot) Count(method string) (n int) {
	for _, req := range s.Requests {
		if requestMethod(req) == method {
			n++
		}
	}
	return n
}

// Index returns the position of the first request matching method, or
// -1.
func (s Snapshot) Index(method string) int {
	return slices.IndexFunc(s.Requests, func(req string) bool { return requestMethod(req) == method })
}

// LastIndex returns the position of the last request matching method,
// or -1.
func (s Snapshot) LastIndex(method string) int {
	for i := len(s.Requests) - 1; i >= 0; i-- {
		if requestMethod(s.Requests[i]) == method {
			return i
		}
	}
	return -1
}

type Server struct {
	opts  Options
	lis   *net.UnixListener
	done  chan struct{}
	close sync.Once
	queue *cq.Queue[func() error]

	m       sync.Mutex
	snap    Snapshot
	errs    []error
	serial  uint32
	clients set.Set[*client]
}

// Start starts a compositor listening in a temporary XDG_RUNTIME_DIR
// and points the environment of the test at it. It is stopped when the
// test ends.
func Start(t testing.TB, opts Options) *Server {
	t.Helper()

	t.Setenv("XDG_RUNTIME_DIR", t.TempDir())
	t.Setenv("WAYLAND_SOCKET", "")
	os.Unsetenv("WAYLAND_SOCKET")

	lis, err := wire.Listen()
	require.NoError(t, err)
	t.Setenv("WAYLAND_DISPLAY", filepath.Base(lis.Addr().String()))

	server := NewServer(lis, opts)
	t.Cleanup(server.Close)
	return server
}

func NewServer(lis *net.UnixListener, opts Options) *Server {
	server := Server{
		opts:  opts,
		lis:   lis,
		done:  make(chan struct{}),
		queue: cq.New[func() error](),
		snap: Snapshot{
			Bound:    make(map[string]uint32),
			Versions: make(map[string]uint32),
		},
		clients: make(set.Set[*client]),
	}
	go server.listen()
	go server.run()

	return &server
}

func (server *Server) listen() {
	for {
		c, err := server.lis.AcceptUnix()
		if err != nil {
			if !errors.Is(err, net.ErrClosed) {
				server.enqueue(func() error { return err })
			}
			return
		}

		server.enqueue(func() error {
			server.addClient(wire.NewConn(c))
			return nil
		})
	}
}

func (server *Server) enqueue(f func() error) {
	select {
	case <-server.done:
	case server.queue.Add() <- f:
	}
}

func (server *Server) run() {
	for {
		select {
		case <-server.done:
			return
		case queue := <-server.queue.Get():
			server.m.Lock()
			server.errs = append(server.errs, cq.Flush(queue)...)
			server.m.Unlock()
		}
	}
}

func (server *Server) addClient(conn *wire.Conn) {
	c := newClient(server, conn)
	server.clients.Add(c)
	go c.listen()
}

func (server *Server) removeClient(c *client) {
	server.clients.Delete(c)
	c.close()
}

// Close stops the server and disconnects every client.
func (server *Server) Close() {
	server.close.Do(func() {
		close(server.done)
		server.queue.Stop()
		server.lis.Close()

		server.m.Lock()
		defer server.m.Unlock()
		for c := range server.clients {
			c.close()
		}
	})
}

// Snapshot returns a copy of what the compositor has recorded.
func (server *Server) Snapshot() Snapshot {
	server.m.Lock()
	defer server.m.Unlock()

	s := server.snap
	s.Requests = slices.Clone(s.Requests)
	s.Configures = slices.Clone(s.Configures)
	s.Acks = slices.Clone(s.Acks)
	s.Pings = slices.Clone(s.Pings)
	s.Pongs = slices.Clone(s.Pongs)
	s.Frame = slices.Clone(s.Frame)
	s.Violations = slices.Clone(s.Violations)
	s.Bound = maps.Clone(s.Bound)
	s.Versions = maps.Clone(s.Versions)
	return s
}

// Err returns the errors that the server ran into while handling
// requests.
func (server *Server) Err() error {
	server.m.Lock()
	defer server.m.Unlock()

	return errors.Join(server.errs...)
}

func (server *Server) nextSerial() uint32 {
	server.serial++
	return server.serial
}

func (server *Server) violation(msg string) {
	server.snap.Violations = append(server.snap.Violations, msg)
}

func isDisconnect(err error) bool {
	return errors.Is(err, io.EOF) || errors.Is(err, net.ErrClosed) || errors.Is(err, io.ErrUnexpectedEOF)
}
