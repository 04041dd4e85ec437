package aggregate

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"longshort/internal/ratio"
)

// Ratios fans one (symbol, timeframe) request out to every adapter
// concurrently and waits for all of them. The result always has exactly
// one entry per adapter, in roster order, regardless of which network
// call finishes first. Adapters are total, so one adapter's failure can
// only ever affect its own slot.
//
// No deadline is applied here: completion is the completion of the
// slowest adapter. Callers needing bounded latency set one on ctx.
func Ratios(ctx context.Context, adapters []ratio.Adapter, symbol string, tf ratio.Timeframe) []ratio.NormalizedRatio {
	out := make([]ratio.NormalizedRatio, len(adapters))
	var g errgroup.Group
	for i, a := range adapters {
		g.Go(func() error {
			out[i] = fetchOne(ctx, a, symbol, tf)
			return nil
		})
	}
	_ = g.Wait()
	for _, r := range out {
		if r.Status == ratio.StatusError {
			log.Warn().Str("exchange", r.Exchange).Str("symbol", symbol).
				Str("timeframe", string(tf)).Msg(r.Message)
		}
	}
	return out
}

// fetchOne guards the adapter boundary: Fetch is contractually total, but
// a panicking adapter still must not take down the other slots.
func fetchOne(ctx context.Context, a ratio.Adapter, symbol string, tf ratio.Timeframe) (r ratio.NormalizedRatio) {
	defer func() {
		if rec := recover(); rec != nil {
			r = ratio.Failure(a.Name(), fmt.Errorf("adapter panic: %v", rec))
		}
	}()
	return a.Fetch(ctx, symbol, tf)
}
