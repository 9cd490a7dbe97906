package lifecycle

import (
	"context"
	"time"
)

// Handle is the lifecycle controller handed to each background service.
type Handle struct {
	ctx context.Context
	// Close notifies the Manager that the owning service has finished.
	// Services should defer it before entering their loop.
	Close func()
}

// Ctx returns the handle's context.
func (h *Handle) Ctx() context.Context {
	return h.ctx
}

// Done returns a channel closed when the manager broadcasts shutdown.
func (h *Handle) Done() <-chan struct{} {
	return h.ctx.Done()
}

// Err returns the context error after Done is closed.
func (h *Handle) Err() error {
	return h.ctx.Err()
}

// Sleep pauses for the given duration, returning early with the context
// error if shutdown is signalled. Job loops should use this instead of
// time.Sleep.
func (h *Handle) Sleep(duration time.Duration) error {
	timer := time.NewTimer(duration)

	select {
	case <-h.Done():
		if !timer.Stop() {
			<-timer.C
		}
		return h.Err()
	case <-timer.C:
		return nil
	}
}
