package output

import (
	"context"

	"twobody/internal/sims/pair"
)

type tee []pair.Sink

// Tee writes each frame to every sink in order and stops at the first error.
func Tee(sinks ...pair.Sink) pair.Sink {
	out := make(tee, 0, len(sinks))
	for _, s := range sinks {
		if s != nil {
			out = append(out, s)
		}
	}
	return out
}

func (t tee) WriteFrame(ctx context.Context, f pair.Frame) error {
	for _, s := range t {
		if err := s.WriteFrame(ctx, f); err != nil {
			return err
		}
	}
	return nil
}
