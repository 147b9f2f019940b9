package compositortest

import (
	"fmt"
	"slices"

	"deedles.dev/wlgl/wire"
)

type global struct {
	name    uint32
	iface   string
	version uint32
}

func (server *Server) globals() []global {
	base := []global{
		{name: 1, iface: "wl_compositor", version: 1},
		{name: 2, iface: "wl_shm", version: 1},
		{name: 3, iface: "xdg_wm_base", version: 1},
	}

	var globals []global
	if server.opts.Duplicates {
		for _, g := range base {
			g.name += 100
			globals = append(globals, g)
		}
	}
	globals = append(globals, base...)

	return slices.DeleteFunc(globals, func(g global) bool {
		return slices.Contains(server.opts.Omit, g.iface)
	})
}

type display struct {
	resource
}

func (d *display) Dispatch(msg *wire.MessageBuffer) error {
	c := d.client

	switch d.request(msg) {
	case "sync":
		id := msg.ReadUint()
		if err := msg.Err(); err != nil {
			return err
		}

		callback := &resource{id: id, iface: "wl_callback", client: c}
		c.send(callback, "wl_callback", "done", func(msg *wire.MessageBuilder) {
			msg.WriteUint(c.server.nextSerial())
		})
		c.send(d, "wl_display", "delete_id", func(msg *wire.MessageBuilder) {
			msg.WriteUint(id)
		})
		return nil

	case "get_registry":
		id := msg.ReadUint()
		if err := msg.Err(); err != nil {
			return err
		}

		r := &registry{resource: resource{id: id, iface: "wl_registry", client: c}}
		c.add(r)
		for _, g := range c.server.globals() {
			c.send(r, "wl_registry", "global", func(msg *wire.MessageBuilder) {
				msg.WriteUint(g.name)
				msg.WriteString(g.iface)
				msg.WriteUint(g.version)
			})
		}
		return nil

	default:
		return wire.UnknownOpError{Interface: d.iface, Type: "request", Op: msg.Op()}
	}
}

type registry struct {
	resource
}

func (r *registry) Dispatch(msg *wire.MessageBuffer) error {
	c := r.client
	server := c.server

	switch r.request(msg) {
	case "bind":
		name := msg.ReadUint()
		id := msg.ReadNewID()
		if err := msg.Err(); err != nil {
			return err
		}

		i := slices.IndexFunc(server.globals(), func(g global) bool { return g.name == name })
		if i < 0 {
			server.violation(fmt.Sprintf("bind of unknown global %v", name))
			return nil
		}
		g := server.globals()[i]
		if (g.iface != id.Interface) || (id.Version > g.version) || (id.Version == 0) {
			server.violation(fmt.Sprintf("bind of %v v%v as %v v%v", g.iface, g.version, id.Interface, id.Version))
			return nil
		}
		server.snap.Bound[g.iface] = name
		server.snap.Versions[g.iface] = id.Version

		res := resource{id: id.ID, iface: g.iface, client: c}
		switch g.iface {
		case "wl_compositor":
			c.add(&compositor{resource: res})

		case "wl_shm":
			s := &shm{resource: res}
			c.add(s)
			for _, format := range []uint32{0, 1} {
				c.send(s, "wl_shm", "format", func(msg *wire.MessageBuilder) { msg.WriteUint(format) })
			}

		case "xdg_wm_base":
			wm := &wmBase{resource: res}
			c.add(wm)
			if server.opts.Ping {
				serial := server.nextSerial()
				server.snap.Pings = append(server.snap.Pings, serial)
				c.send(wm, "xdg_wm_base", "ping", func(msg *wire.MessageBuilder) { msg.WriteUint(serial) })
			}
		}
		return nil

	default:
		return wire.UnknownOpError{Interface: r.iface, Type: "request", Op: msg.Op()}
	}
}

type compositor struct {
	resource
}

func (comp *compositor) Dispatch(msg *wire.MessageBuffer) error {
	switch comp.request(msg) {
	case "create_surface":
		id := msg.ReadUint()
		if err := msg.Err(); err != nil {
			return err
		}

		comp.client.add(&surface{resource: resource{id: id, iface: "wl_surface", client: comp.client}})
		return nil

	default:
		return wire.UnknownOpError{Interface: comp.iface, Type: "request", Op: msg.Op()}
	}
}

type surface struct {
	resource
	role     *xdgSurface
	pending  *buffer
	attached bool
	content  bool
	errored  bool
}

func (s *surface) Dispatch(msg *wire.MessageBuffer) error {
	c := s.client
	server := c.server

	switch s.request(msg) {
	case "attach":
		id := msg.ReadObject()
		msg.ReadInt()
		msg.ReadInt()
		if err := msg.Err(); err != nil {
			return err
		}

		s.pending = nil
		if buf, ok := c.store.Get(id).(*buffer); ok {
			s.pending = buf
		}
		s.attached = true
		server.snap.Attaches++
		return nil

	case "damage":
		server.snap.Damages++
		return nil

	case "commit":
		server.snap.Commits++
		s.commit()
		return nil

	case "destroy":
		c.release(s)
		return nil

	default:
		return nil
	}
}

func (s *surface) commit() {
	c := s.client
	server := c.server
	opts := server.opts

	if (opts.Error != "") && !s.errored {
		s.errored = true
		c.send(c.store.Get(1), "wl_display", "error", func(msg *wire.MessageBuilder) {
			msg.WriteObject(s)
			msg.WriteUint(3)
			msg.WriteString(opts.Error)
		})
		return
	}

	framed := false
	if s.attached {
		s.attached = false
		if (s.role != nil) && (len(s.role.acked) == 0) {
			server.violation(fmt.Sprintf("%v committed a buffer before acknowledging a configure", s))
		}
		if s.pending != nil {
			s.capture(s.pending)
			s.content = true
			framed = true
		}
	}

	if s.role == nil {
		return
	}
	xs := s.role
	if xs.toplevel == nil {
		server.violation(fmt.Sprintf("%v committed without a role", xs))
		return
	}

	switch {
	case !xs.initial:
		xs.initial = true
		xs.configure()
	case opts.Reconfigure && (len(xs.acked) > 0) && !xs.reconfigured:
		xs.reconfigured = true
		xs.configure()
	}

	if framed && opts.CloseAfterFrame {
		c.send(xs.toplevel, "xdg_toplevel", "close", nil)
	}
}

func (s *surface) capture(buf *buffer) {
	snap := &s.client.server.snap

	data := make([]byte, buf.stride*buf.height)
	_, err := buf.pool.file.ReadAt(data, int64(buf.offset))
	if err != nil {
		s.client.server.errs = append(s.client.server.errs, fmt.Errorf("read %v: %w", buf, err))
		return
	}

	snap.Frame = data
	snap.FrameWidth = buf.width
	snap.FrameHeight = buf.height
	snap.FrameStride = buf.stride
	snap.FrameFormat = int32(buf.format)
}

type shm struct {
	resource
}

func (s *shm) Dispatch(msg *wire.MessageBuffer) error {
	c := s.client

	switch s.request(msg) {
	case "create_pool":
		id := msg.ReadUint()
		file := msg.ReadFile()
		size := msg.ReadInt()
		if err := msg.Err(); err != nil {
			return err
		}

		c.files = append(c.files, file)
		c.add(&pool{resource: resource{id: id, iface: "wl_shm_pool", client: c}, file: file, size: size})
		c.server.snap.Pools++
		return nil

	default:
		return wire.UnknownOpError{Interface: s.iface, Type: "request", Op: msg.Op()}
	}
}

type pool struct {
	resource
	file interface {
		ReadAt([]byte, int64) (int, error)
	}
	size int32
}

func (p *pool) Dispatch(msg *wire.MessageBuffer) error {
	c := p.client

	switch p.request(msg) {
	case "create_buffer":
		buf := buffer{resource: resource{iface: "wl_buffer", client: c}, pool: p}
		buf.id = msg.ReadUint()
		buf.offset = msg.ReadInt()
		buf.width = msg.ReadInt()
		buf.height = msg.ReadInt()
		buf.stride = msg.ReadInt()
		buf.format = msg.ReadUint()
		if err := msg.Err(); err != nil {
			return err
		}

		if buf.offset+buf.stride*buf.height > p.size {
			c.server.violation(fmt.Sprintf("%v does not fit in %v", &buf, p))
		}
		c.add(&buf)
		c.server.snap.Buffers++
		return nil

	case "resize":
		p.size = msg.ReadInt()
		return msg.Err()

	case "destroy":
		c.release(p)
		return nil

	default:
		return wire.UnknownOpError{Interface: p.iface, Type: "request", Op: msg.Op()}
	}
}

type buffer struct {
	resource
	pool                  *pool
	offset, width, height int32
	stride                int32
	format                uint32
}

func (buf *buffer) Dispatch(msg *wire.MessageBuffer) error {
	switch buf.request(msg) {
	case "destroy":
		buf.client.release(buf)
		return nil

	default:
		return wire.UnknownOpError{Interface: buf.iface, Type: "request", Op: msg.Op()}
	}
}

type wmBase struct {
	resource
}

func (wm *wmBase) Dispatch(msg *wire.MessageBuffer) error {
	c := wm.client
	server := c.server

	switch wm.request(msg) {
	case "get_xdg_surface":
		id := msg.ReadUint()
		sid := msg.ReadObject()
		if err := msg.Err(); err != nil {
			return err
		}

		s, ok := c.store.Get(sid).(*surface)
		if !ok {
			server.violation(fmt.Sprintf("get_xdg_surface on unknown surface %v", sid))
			return nil
		}
		if s.content || (s.role != nil) {
			server.violation(fmt.Sprintf("get_xdg_surface on %v, which already has content or a role", s))
		}

		xs := &xdgSurface{resource: resource{id: id, iface: "xdg_surface", client: c}, surface: s}
		c.add(xs)
		s.role = xs
		return nil

	case "pong":
		serial := msg.ReadUint()
		if err := msg.Err(); err != nil {
			return err
		}

		server.snap.Pongs = append(server.snap.Pongs, serial)
		return nil

	case "destroy":
		c.release(wm)
		return nil

	default:
		server.violation(fmt.Sprintf("unsupported request %v.%v", wm, wm.request(msg)))
		return nil
	}
}

type xdgSurface struct {
	resource
	surface      *surface
	toplevel     *toplevel
	initial      bool
	reconfigured bool
	sent         []uint32
	acked        []uint32
}

func (xs *xdgSurface) configure() {
	c := xs.client
	server := c.server

	switch {
	case server.opts.NoConfigure:
		return

	case server.opts.UnknownSurfaceEvent:
		c.sendOp(xs, 1, "<unknown 1>", func(msg *wire.MessageBuilder) {
			msg.WriteUint(server.nextSerial())
		})
		return
	}

	serial := server.nextSerial()
	xs.sent = append(xs.sent, serial)
	server.snap.Configures = append(server.snap.Configures, serial)

	c.send(xs.toplevel, "xdg_toplevel", "configure", func(msg *wire.MessageBuilder) {
		msg.WriteInt(0)
		msg.WriteInt(0)
		msg.WriteArray(nil)
	})
	c.send(xs, "xdg_surface", "configure", func(msg *wire.MessageBuilder) {
		msg.WriteUint(serial)
	})
}

func (xs *xdgSurface) Dispatch(msg *wire.MessageBuffer) error {
	c := xs.client
	server := c.server

	switch xs.request(msg) {
	case "get_toplevel":
		id := msg.ReadUint()
		if err := msg.Err(); err != nil {
			return err
		}

		if xs.toplevel != nil {
			server.violation(fmt.Sprintf("%v already has a toplevel", xs))
		}
		t := &toplevel{resource: resource{id: id, iface: "xdg_toplevel", client: c}}
		c.add(t)
		xs.toplevel = t
		return nil

	case "ack_configure":
		serial := msg.ReadUint()
		if err := msg.Err(); err != nil {
			return err
		}

		if !slices.Contains(xs.sent, serial) {
			server.violation(fmt.Sprintf("%v acknowledged unknown serial %v", xs, serial))
		}
		xs.acked = append(xs.acked, serial)
		server.snap.Acks = append(server.snap.Acks, serial)
		return nil

	case "destroy":
		c.release(xs)
		return nil

	default:
		server.violation(fmt.Sprintf("unsupported request %v.%v", xs, xs.request(msg)))
		return nil
	}
}

type toplevel struct {
	resource
}

func (t *toplevel) Dispatch(msg *wire.MessageBuffer) error {
	server := t.client.server

	switch t.request(msg) {
	case "set_title":
		server.snap.Title = msg.ReadString()
		return msg.Err()

	case "set_app_id":
		server.snap.AppID = msg.ReadString()
		return msg.Err()

	case "destroy":
		t.client.release(t)
		return nil

	default:
		return nil
	}
}
