package compositortest

import (
	"fmt"
	"sync"

	"deedles.dev/wlgl/protocol"
)

var interfaces = sync.OnceValue(func() map[string]protocol.Interface {
	m := make(map[string]protocol.Interface)
	for _, load := range []func() (protocol.Protocol, error){protocol.Wayland, protocol.XDGShell} {
		proto, err := load()
		if err != nil {
			panic(fmt.Errorf("load bundled protocol: %w", err))
		}
		for _, i := range proto.Interfaces {
			m[i.Name] = i
		}
	}
	return m
})

func requestName(iface string, op uint16) string {
	reqs := interfaces()[iface].Requests
	if int(op) >= len(reqs) {
		return fmt.Sprintf("<unknown %v>", op)
	}
	return reqs[op].Name
}

func eventOp(iface, name string) uint16 {
	op, ok := protocol.Opcode(interfaces()[iface].Events, name)
	if !ok {
		panic(fmt.Errorf("%v has no event %q", iface, name))
	}
	return uint16(op)
}
