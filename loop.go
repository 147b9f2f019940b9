package wlgl

import (
	"context"
	"errors"
	"fmt"
)

var ErrWayland = errors.New("wayland issue")

// Loop dispatches events until ctx is cancelled or the compositor
// closes the toplevel, both of which return nil. It never redraws.
func Loop(ctx context.Context, session *Session, shell *Shell) error {
	for !shell.Closed() {
		err := session.client.Dispatch(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("%w: %w", ErrWayland, err)
		}
	}
	return nil
}
