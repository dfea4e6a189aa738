package cancel

import "context"

// ContextCanceler adapts a context.Context to the Canceler interface.
//
// Use it when shutdown comes from outside the loop, e.g. a context from
// signal.NotifyContext. Done() performs a non-blocking select on ctx.Done().
type ContextCanceler struct {
	ctx    context.Context
	cancel context.CancelFunc
}

// NewContext creates a ContextCanceler from a parent context.
func NewContext(parent context.Context) *ContextCanceler {
	ctx, cancel := context.WithCancel(parent)
	return &ContextCanceler{
		ctx:    ctx,
		cancel: cancel,
	}
}

// Done returns true if the context has been cancelled.
func (c *ContextCanceler) Done() bool {
	select {
	case <-c.ctx.Done():
		return true
	default:
		return false
	}
}

// Cancel triggers cancellation of the context.
func (c *ContextCanceler) Cancel() {
	c.cancel()
}

// Context returns the underlying context.Context, for the blocking parts of
// a program that run beside the loop (servers, producers).
func (c *ContextCanceler) Context() context.Context {
	return c.ctx
}
