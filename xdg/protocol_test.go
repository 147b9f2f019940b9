package xdg

import (
	"testing"

	"deedles.dev/wlgl/protocol"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpcodesMatchProtocol(t *testing.T) {
	proto, err := protocol.XDGShell()
	require.NoError(t, err)

	tests := []struct {
		iface  string
		event  bool
		name   string
		opcode int
	}{
		{iface: WmBaseInterface, name: "get_xdg_surface", opcode: wmBaseGetXdgSurfaceRequest},
		{iface: WmBaseInterface, name: "pong", opcode: wmBasePongRequest},
		{iface: WmBaseInterface, event: true, name: "ping", opcode: wmBasePingEvent},
		{iface: SurfaceInterface, name: "get_toplevel", opcode: surfaceGetToplevelRequest},
		{iface: SurfaceInterface, name: "ack_configure", opcode: surfaceAckConfigureRequest},
		{iface: SurfaceInterface, event: true, name: "configure", opcode: surfaceConfigureEvent},
		{iface: ToplevelInterface, name: "set_title", opcode: toplevelSetTitleRequest},
		{iface: ToplevelInterface, name: "set_app_id", opcode: toplevelSetAppIdRequest},
		{iface: ToplevelInterface, event: true, name: "configure", opcode: toplevelConfigureEvent},
		{iface: ToplevelInterface, event: true, name: "close", opcode: toplevelCloseEvent},
	}

	for _, test := range tests {
		t.Run(test.iface+"."+test.name, func(t *testing.T) {
			i, err := proto.Interface(test.iface)
			require.NoError(t, err)

			ops := i.Requests
			if test.event {
				ops = i.Events
			}
			op, ok := protocol.Opcode(ops, test.name)
			require.True(t, ok)
			assert.Equal(t, op, test.opcode)
		})
	}
}

func TestDecodeStates(t *testing.T) {
	data := []byte{
		1, 0, 0, 0,
		4, 0, 0, 0,
		9,
	}
	assert.Equal(t, []ToplevelState{ToplevelStateMaximized, ToplevelStateActivated}, decodeStates(data))
	assert.Empty(t, decodeStates(nil))
}
