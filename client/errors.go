package wl

import "fmt"

// ProtocolError is a fatal error reported by the compositor through
// wl_display.error.
type ProtocolError struct {
	Object  string
	Code    DisplayError
	Message string
}

func (err ProtocolError) Error() string {
	return fmt.Sprintf("protocol error on %v: code %v: %v", err.Object, uint32(err.Code), err.Message)
}
