package ratio

import (
	"context"
	"fmt"

	json "github.com/goccy/go-json"
)

// Status tags a NormalizedRatio as exactly one of success, not_supported
// or error. The three are mutually exclusive.
type Status string

const (
	StatusSuccess      Status = "success"
	StatusNotSupported Status = "not_supported"
	StatusError        Status = "error"
)

// NormalizedRatio is the uniform shape returned by all exchange adapters.
// Percent and ratio fields are present only on success; Message is set on
// the other two statuses. RawInfo carries the upstream payload verbatim
// for debugging and must never be parsed by consumers.
type NormalizedRatio struct {
	Exchange       string          `json:"exchange"`
	Status         Status          `json:"status"`
	LongShortRatio *float64        `json:"longShortRatio,omitempty"`
	LongPercent    *float64        `json:"longPercent,omitempty"`
	ShortPercent   *float64        `json:"shortPercent,omitempty"`
	Message        string          `json:"message,omitempty"`
	RawInfo        json.RawMessage `json:"rawInfo,omitempty"`
}

// Adapter translates one exchange's native API into NormalizedRatio.
// Fetch is total: it never panics past its boundary and reports every
// failure through the Status field rather than an error return.
type Adapter interface {
	Name() string
	Fetch(ctx context.Context, symbol string, tf Timeframe) NormalizedRatio
}

// Success builds a success record from derived values.
func Success(exchange string, d Derived, raw json.RawMessage) NormalizedRatio {
	return NormalizedRatio{
		Exchange:       exchange,
		Status:         StatusSuccess,
		LongShortRatio: &d.Ratio,
		LongPercent:    &d.LongPercent,
		ShortPercent:   &d.ShortPercent,
		RawInfo:        raw,
	}
}

// NotSupported marks a structural capability gap: the exchange has no
// concept of this metric at all.
func NotSupported(exchange, message string) NormalizedRatio {
	return NormalizedRatio{Exchange: exchange, Status: StatusNotSupported, Message: message}
}

// Failure converts any adapter-level error into an error record.
func Failure(exchange string, err error) NormalizedRatio {
	return NormalizedRatio{Exchange: exchange, Status: StatusError, Message: err.Error()}
}

// Failuref is Failure with formatting.
func Failuref(exchange, format string, args ...any) NormalizedRatio {
	return NormalizedRatio{Exchange: exchange, Status: StatusError, Message: fmt.Sprintf(format, args...)}
}

// UnsupportedTimeframe marks a parameter gap: the exchange carries the
// metric but not the requested timeframe. Modeled as an error record so
// the caller still sees one entry per adapter.
func UnsupportedTimeframe(exchange string, tf Timeframe) NormalizedRatio {
	return Failuref(exchange, "timeframe %s not supported", tf)
}
