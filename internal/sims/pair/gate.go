package pair

import (
	"context"
	"sync"
)

// gate parks the run loop at its safe point while paused.
type gate struct {
	mu     sync.Mutex
	paused bool
	resume chan struct{}
}

func (g *gate) pause() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if !g.paused {
		g.paused = true
		g.resume = make(chan struct{})
	}
}

func (g *gate) release() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.paused {
		g.paused = false
		close(g.resume)
	}
}

func (g *gate) isPaused() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.paused
}

// wait blocks while the gate is paused. Cancellation releases the gate so the
// caller can observe ctx.Err() and exit.
func (g *gate) wait(ctx context.Context) error {
	g.mu.Lock()
	if !g.paused {
		g.mu.Unlock()
		return ctx.Err()
	}
	ch := g.resume
	g.mu.Unlock()

	select {
	case <-ch:
	case <-ctx.Done():
		g.release()
	}
	return ctx.Err()
}
