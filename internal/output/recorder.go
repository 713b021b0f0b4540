// Package output holds the frame sinks a run can write to: an in-memory
// recorder, heat-map PNG frames and a norm history chart.
package output

import (
	"context"
	"sync"

	"twobody/internal/sims/pair"
)

// Recorder keeps every frame it receives in memory.
type Recorder struct {
	mu     sync.Mutex
	frames []pair.Frame
}

// NewRecorder returns an empty recorder.
func NewRecorder() *Recorder { return &Recorder{} }

// WriteFrame stores f unless ctx is already done.
func (r *Recorder) WriteFrame(ctx context.Context, f pair.Frame) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	r.frames = append(r.frames, f)
	r.mu.Unlock()
	return nil
}

// Len reports how many frames were recorded.
func (r *Recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.frames)
}

// Frames returns a copy of the recorded frames in arrival order.
func (r *Recorder) Frames() []pair.Frame {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]pair.Frame(nil), r.frames...)
}

// NormSeries returns frame times and norms.
func (r *Recorder) NormSeries() (times, norms []float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	times = make([]float64, len(r.frames))
	norms = make([]float64, len(r.frames))
	for i, f := range r.frames {
		times[i] = f.Time
		norms[i] = f.Norm
	}
	return times, norms
}
