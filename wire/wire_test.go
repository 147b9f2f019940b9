package wire

import (
	"io"
	"net"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"
)

type testObject struct {
	id uint32
}

func (obj *testObject) ID() uint32                        { return obj.id }
func (obj *testObject) SetID(id uint32)                   { obj.id = id }
func (obj *testObject) Dispatch(msg *MessageBuffer) error { return nil }
func (obj *testObject) Delete()                           {}
func (obj *testObject) MethodName(op uint16) string       { return "test" }

func socketPair(t *testing.T) (*Conn, *Conn) {
	t.Helper()

	fds, err := unix.Socketpair(unix.AF_UNIX, unix.SOCK_STREAM|unix.SOCK_CLOEXEC, 0)
	require.NoError(t, err)

	conn := func(fd int) *Conn {
		file := os.NewFile(uintptr(fd), "socketpair")
		defer file.Close()

		c, err := net.FileConn(file)
		require.NoError(t, err)
		return NewConn(c.(*net.UnixConn))
	}

	a, b := conn(fds[0]), conn(fds[1])
	t.Cleanup(func() {
		a.Close()
		b.Close()
	})
	return a, b
}

func TestMessageRoundTrip(t *testing.T) {
	a, b := socketPair(t)

	sender := &testObject{id: 7}
	msg := NewMessage(sender, 3)
	msg.WriteInt(-12)
	msg.WriteUint(42)
	msg.WriteString("xdg_wm_base")
	msg.WriteString("")
	msg.WriteFixed(FixedFloat(-1.5))
	msg.WriteArray([]byte{1, 2, 3, 4, 5})
	msg.WriteNewID(NewID{Interface: "wl_shm", Version: 1, ID: 9})
	require.NoError(t, msg.Build(a))

	r, err := ReadMessage(b)
	require.NoError(t, err)
	assert.Equal(t, uint32(7), r.Sender())
	assert.Equal(t, uint16(3), r.Op())

	assert.Equal(t, int32(-12), r.ReadInt())
	assert.Equal(t, uint32(42), r.ReadUint())
	assert.Equal(t, "xdg_wm_base", r.ReadString())
	assert.Equal(t, "", r.ReadString())
	assert.Equal(t, -1.5, r.ReadFixed().Float())
	assert.Equal(t, []byte{1, 2, 3, 4, 5}, r.ReadArray())
	assert.Equal(t, NewID{Interface: "wl_shm", Version: 1, ID: 9}, r.ReadNewID())
	require.NoError(t, r.Err())

	r.ReadUint()
	assert.Error(t, r.Err())
}

func TestMessageFile(t *testing.T) {
	a, b := socketPair(t)

	file, err := os.CreateTemp(t.TempDir(), "shm")
	require.NoError(t, err)
	_, err = file.WriteString("pixels")
	require.NoError(t, err)
	defer file.Close()

	msg := NewMessage(&testObject{id: 1}, 0)
	msg.WriteUint(5)
	msg.WriteFile(file)
	msg.WriteInt(6)
	require.NoError(t, msg.Build(a))

	r, err := ReadMessage(b)
	require.NoError(t, err)
	assert.Equal(t, uint32(5), r.ReadUint())
	got := r.ReadFile()
	assert.Equal(t, int32(6), r.ReadInt())
	require.NoError(t, r.Err())
	require.NotNil(t, got)
	defer got.Close()

	data, err := io.ReadAll(io.NewSectionReader(got, 0, 6))
	require.NoError(t, err)
	assert.Equal(t, "pixels", string(data))

	r.ReadFile()
	assert.Error(t, r.Err())
}

func TestMessageTooLarge(t *testing.T) {
	a, _ := socketPair(t)

	msg := NewMessage(&testObject{id: 1}, 0)
	msg.WriteArray(make([]byte, 0x10000))
	assert.Error(t, msg.Build(a))
}

func TestReadMessageClosed(t *testing.T) {
	a, b := socketPair(t)
	require.NoError(t, a.Close())

	_, err := ReadMessage(b)
	assert.ErrorIs(t, err, io.EOF)
}

func TestFixed(t *testing.T) {
	tests := []struct {
		name  string
		fixed Fixed
		int   int
		frac  int
		float float64
	}{
		{name: "Integer", fixed: FixedInt(3), int: 3, frac: 0, float: 3},
		{name: "Half", fixed: FixedFloat(2.5), int: 2, frac: 128, float: 2.5},
		{name: "Negative", fixed: FixedFloat(-1.25), int: -2, frac: 192, float: -1.25},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.int, test.fixed.Int())
			assert.Equal(t, test.frac, test.fixed.Frac())
			assert.Equal(t, test.float, test.fixed.Float())
		})
	}
}

func TestSocketPath(t *testing.T) {
	t.Setenv("XDG_RUNTIME_DIR", "/run/user/1000")

	t.Setenv("WAYLAND_DISPLAY", "wayland-3")
	assert.Equal(t, "/run/user/1000/wayland-3", SocketPath())

	t.Setenv("WAYLAND_DISPLAY", "/tmp/compositor")
	assert.Equal(t, "/tmp/compositor", SocketPath())
}

func TestNewSocketPath(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_RUNTIME_DIR", dir)
	require.NoError(t, os.WriteFile(dir+"/wayland-0", nil, 0600))
	require.NoError(t, os.WriteFile(dir+"/wayland-2", nil, 0600))

	path, err := NewSocketPath()
	require.NoError(t, err)
	assert.Equal(t, dir+"/wayland-1", path)
}
