package wl

import (
	"testing"

	"deedles.dev/wlgl/protocol"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpcodesMatchProtocol(t *testing.T) {
	proto, err := protocol.Wayland()
	require.NoError(t, err)

	tests := []struct {
		iface  string
		event  bool
		name   string
		opcode int
	}{
		{iface: DisplayInterface, name: "sync", opcode: displaySyncRequest},
		{iface: DisplayInterface, name: "get_registry", opcode: displayGetRegistryRequest},
		{iface: DisplayInterface, event: true, name: "error", opcode: displayErrorEvent},
		{iface: DisplayInterface, event: true, name: "delete_id", opcode: displayDeleteIdEvent},
		{iface: RegistryInterface, name: "bind", opcode: registryBindRequest},
		{iface: RegistryInterface, event: true, name: "global", opcode: registryGlobalEvent},
		{iface: RegistryInterface, event: true, name: "global_remove", opcode: registryGlobalRemoveEvent},
		{iface: CallbackInterface, event: true, name: "done", opcode: callbackDoneEvent},
		{iface: CompositorInterface, name: "create_surface", opcode: compositorCreateSurfaceRequest},
		{iface: ShmInterface, name: "create_pool", opcode: shmCreatePoolRequest},
		{iface: ShmInterface, event: true, name: "format", opcode: shmFormatEvent},
		{iface: ShmPoolInterface, name: "create_buffer", opcode: shmPoolCreateBufferRequest},
		{iface: ShmPoolInterface, name: "destroy", opcode: shmPoolDestroyRequest},
		{iface: ShmPoolInterface, name: "resize", opcode: shmPoolResizeRequest},
		{iface: BufferInterface, name: "destroy", opcode: bufferDestroyRequest},
		{iface: BufferInterface, event: true, name: "release", opcode: bufferReleaseEvent},
		{iface: SurfaceInterface, name: "destroy", opcode: surfaceDestroyRequest},
		{iface: SurfaceInterface, name: "attach", opcode: surfaceAttachRequest},
		{iface: SurfaceInterface, name: "damage", opcode: surfaceDamageRequest},
		{iface: SurfaceInterface, name: "commit", opcode: surfaceCommitRequest},
		{iface: SurfaceInterface, event: true, name: "enter", opcode: surfaceEnterEvent},
		{iface: SurfaceInterface, event: true, name: "leave", opcode: surfaceLeaveEvent},
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

func TestShmFormats(t *testing.T) {
	assert.Equal(t, ShmFormat(0), ShmFormatArgb8888)
	assert.Equal(t, ShmFormat(1), ShmFormatXrgb8888)
}
