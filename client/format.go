package wl

import (
	"fmt"

	"deedles.dev/wlgl/wire"
)

func fmtObject(obj wire.Object) string {
	if s, ok := obj.(fmt.Stringer); ok {
		return s.String()
	}
	return ObjectString("unknown", obj.ID())
}
