// Package okx fetches the contract long/short account ratio from OKX's
// rubik statistics API. OKX reports a single long:short ratio per data
// point, so percentages are derived from the closed form
// short = 1/(R+1), long = 1-short.
package okx

import (
	"context"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/shopspring/decimal"

	"longshort/internal/ratio"
	"longshort/internal/volume"
)

// periods maps canonical timeframes to OKX period tokens. OKX upper-cases
// hour and day windows.
var periods = map[ratio.Timeframe]string{
	ratio.TF5m:  "5m",
	ratio.TF15m: "15m",
	ratio.TF30m: "30m",
	ratio.TF1h:  "1H",
	ratio.TF4h:  "4H",
	ratio.TF1d:  "1D",
}

type Config struct {
	Name string
}

// Adapter wraps the rubik API client into the normalized contract.
// OKX keys these statistics by base currency (e.g. BTC), not by the
// BTC-USDT instrument family the contracts trade under.
type Adapter struct {
	cfg    Config
	client *APIClient
}

func New(cfg Config, client *APIClient) *Adapter {
	if cfg.Name == "" {
		cfg.Name = "OKX"
	}
	return &Adapter{cfg: cfg, client: client}
}

func (a *Adapter) Name() string { return a.cfg.Name }

func (a *Adapter) Fetch(ctx context.Context, symbol string, tf ratio.Timeframe) ratio.NormalizedRatio {
	period, ok := periods[tf]
	if !ok {
		return ratio.UnsupportedTimeframe(a.cfg.Name, tf)
	}

	rows, err := a.client.GetLongShortRatio(ctx, strings.ToUpper(symbol), period)
	if err != nil {
		return ratio.Failure(a.cfg.Name, err)
	}
	if len(rows) == 0 {
		return ratio.Failuref(a.cfg.Name, "empty ratio data for %s", strings.ToUpper(symbol))
	}
	// Rows arrive newest first; each is [timestamp, ratio].
	row := rows[0]
	if len(row) < 2 {
		return ratio.Failuref(a.cfg.Name, "short ratio row: %v", row)
	}
	r, err := decimal.NewFromString(row[1])
	if err != nil || r.IsNegative() {
		return ratio.Failuref(a.cfg.Name, "bad ratio %q", row[1])
	}

	raw, _ := json.Marshal(row)
	return ratio.Success(a.cfg.Name, ratio.FromRatio(r), raw)
}

// TakerVolume exposes OKX contract taker volume through the volume
// provider contract.
type TakerVolume struct {
	cfg    Config
	client *APIClient
}

func NewTakerVolume(cfg Config, client *APIClient) *TakerVolume {
	if cfg.Name == "" {
		cfg.Name = "OKX"
	}
	return &TakerVolume{cfg: cfg, client: client}
}

func (v *TakerVolume) Name() string { return v.cfg.Name }

func (v *TakerVolume) Fetch(ctx context.Context, symbol string, tf ratio.Timeframe) volume.Summary {
	period, ok := periods[tf]
	if !ok {
		return volume.Failuref(v.cfg.Name, "timeframe %s not supported", tf)
	}

	rows, err := v.client.GetTakerVolume(ctx, strings.ToUpper(symbol), period)
	if err != nil {
		return volume.Failure(v.cfg.Name, err)
	}
	if len(rows) == 0 {
		return volume.Failuref(v.cfg.Name, "empty taker volume data")
	}
	// Rows arrive newest first; each is [timestamp, sellVolume, buyVolume].
	row := rows[0]
	if len(row) < 3 {
		return volume.Failuref(v.cfg.Name, "short taker volume row: %v", row)
	}
	sell, err := decimal.NewFromString(row[1])
	if err != nil {
		return volume.Failuref(v.cfg.Name, "bad sell volume %q", row[1])
	}
	buy, err := decimal.NewFromString(row[2])
	if err != nil {
		return volume.Failuref(v.cfg.Name, "bad buy volume %q", row[2])
	}
	return volume.Success(v.cfg.Name, buy.InexactFloat64(), sell.InexactFloat64())
}
