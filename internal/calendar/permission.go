package calendar

import (
	"fmt"
	"time"

	"github.com/elinsky/calendar-mcp/internal/eventstore"
)

// DefaultPermissionTimeout bounds the wait for the store's access answer.
// Stores that prompt the user interactively can take a while; stores that
// never answer must not hang the server forever.
const DefaultPermissionTimeout = 30 * time.Second

type accessResult struct {
	granted bool
	err     error
}

// requestAccess bridges the store's callback-based access request into a
// blocking call. Exactly one request is issued; the completion writes into a
// buffered channel so a late answer after timeout does not leak a goroutine.
func requestAccess(store eventstore.Store, timeout time.Duration) error {
	if timeout <= 0 {
		timeout = DefaultPermissionTimeout
	}

	ch := make(chan accessResult, 1)
	store.RequestAccess(eventstore.EntityTypeEvent, func(granted bool, err error) {
		ch <- accessResult{granted: granted, err: err}
	})

	select {
	case res := <-ch:
		if res.err != nil {
			return fmt.Errorf("calendar access request failed: %w", res.err)
		}
		if !res.granted {
			return fmt.Errorf("%w: grant calendar access to this application and restart the server", ErrPermissionDenied)
		}
		return nil
	case <-time.After(timeout):
		return fmt.Errorf("%w after %s", ErrPermissionTimeout, timeout)
	}
}
