package assembly

import (
	"context"

	"github.com/san-kum/gearsim/internal/gear"
)

type PointerSample struct {
	Point gear.Point
	Time  float64
}

// Run feeds clock ticks and pointer samples to the engine from one goroutine,
// so the two handlers never overlap. onFrame, if set, sees every tick. Run
// returns when both channels are closed or ctx is done.
func (a *Assembly) Run(ctx context.Context, clock <-chan float64, pointer <-chan PointerSample, onFrame func(Frame)) error {
	for clock != nil || pointer != nil {
		select {
		case <-ctx.Done():
			a.logger.Debug("run stopped", "err", ctx.Err())
			return ctx.Err()
		case ms, ok := <-clock:
			if !ok {
				clock = nil
				continue
			}
			a.Tick(ms)
			if onFrame != nil {
				onFrame(a.Frame(ms))
			}
		case s, ok := <-pointer:
			if !ok {
				pointer = nil
				continue
			}
			a.Pointer(s.Point, s.Time)
		}
	}
	return nil
}
