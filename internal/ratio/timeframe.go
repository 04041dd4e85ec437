package ratio

import "fmt"

// Timeframe is the canonical aggregation window requested by callers.
// Adapters translate it to their exchange's native token; not every
// exchange supports every timeframe.
type Timeframe string

const (
	TF5m  Timeframe = "5m"
	TF15m Timeframe = "15m"
	TF30m Timeframe = "30m"
	TF1h  Timeframe = "1h"
	TF4h  Timeframe = "4h"
	TF1d  Timeframe = "1d"
)

// Timeframes lists the canonical set in display order.
func Timeframes() []Timeframe {
	return []Timeframe{TF5m, TF15m, TF30m, TF1h, TF4h, TF1d}
}

// ParseTimeframe validates a caller-supplied token.
func ParseTimeframe(s string) (Timeframe, error) {
	switch Timeframe(s) {
	case TF5m, TF15m, TF30m, TF1h, TF4h, TF1d:
		return Timeframe(s), nil
	}
	return "", fmt.Errorf("invalid timeframe %q (want one of 5m, 15m, 30m, 1h, 4h, 1d)", s)
}
