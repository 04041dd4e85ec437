// Package volume aggregates per-timeframe taker buy/sell volume totals,
// a secondary sentiment proxy next to the long/short ratio. It follows
// the same per-source fetch, normalize, tolerate-partial-failure shape
// as the ratio aggregation.
package volume

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"longshort/internal/ratio"
)

// Summary is the normalized taker volume record for one source.
type Summary struct {
	Exchange    string       `json:"exchange"`
	Status      ratio.Status `json:"status"`
	BuyVolume   *float64     `json:"buyVolume,omitempty"`
	SellVolume  *float64     `json:"sellVolume,omitempty"`
	BuySellRate *float64     `json:"buySellRatio,omitempty"`
	Message     string       `json:"message,omitempty"`
}

// Provider fetches taker volume totals from one source. Like
// ratio.Adapter, Fetch is total and reports failures via Status.
type Provider interface {
	Name() string
	Fetch(ctx context.Context, symbol string, tf ratio.Timeframe) Summary
}

// Success builds a success summary with the buy/sell ratio derived from
// the totals (0 when the sell side is empty).
func Success(exchange string, buy, sell float64) Summary {
	rate := 0.0
	if sell > 0 {
		rate = buy / sell
	}
	return Summary{
		Exchange:    exchange,
		Status:      ratio.StatusSuccess,
		BuyVolume:   &buy,
		SellVolume:  &sell,
		BuySellRate: &rate,
	}
}

func Failure(exchange string, err error) Summary {
	return Summary{Exchange: exchange, Status: ratio.StatusError, Message: err.Error()}
}

func Failuref(exchange, format string, args ...any) Summary {
	return Summary{Exchange: exchange, Status: ratio.StatusError, Message: fmt.Sprintf(format, args...)}
}

func NotSupported(exchange, message string) Summary {
	return Summary{Exchange: exchange, Status: ratio.StatusNotSupported, Message: message}
}

// Summaries runs every provider concurrently and returns one entry per
// provider in roster order, independent of individual failures.
func Summaries(ctx context.Context, providers []Provider, symbol string, tf ratio.Timeframe) []Summary {
	out := make([]Summary, len(providers))
	var g errgroup.Group
	for i, p := range providers {
		g.Go(func() error {
			out[i] = fetchOne(ctx, p, symbol, tf)
			return nil
		})
	}
	_ = g.Wait()
	for _, s := range out {
		if s.Status == ratio.StatusError {
			log.Warn().Str("exchange", s.Exchange).Str("symbol", symbol).
				Str("timeframe", string(tf)).Msg(s.Message)
		}
	}
	return out
}

func fetchOne(ctx context.Context, p Provider, symbol string, tf ratio.Timeframe) (s Summary) {
	defer func() {
		if rec := recover(); rec != nil {
			s = Failuref(p.Name(), "provider panic: %v", rec)
		}
	}()
	return p.Fetch(ctx, symbol, tf)
}
