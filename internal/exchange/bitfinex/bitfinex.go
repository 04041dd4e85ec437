// Package bitfinex derives the long/short split from Bitfinex margin
// position statistics. Bitfinex has no ratio endpoint; it publishes raw
// long and short position sizes, which this adapter combines into
// percentages with a zero-volume guard.
package bitfinex

import (
	"context"
	"fmt"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/shopspring/decimal"

	"longshort/internal/httpx"
	"longshort/internal/ratio"
)

// granularities maps canonical timeframes to the stats key sidecar.
// Bitfinex only aggregates position stats hourly and coarser, so the
// minute windows are a parameter gap rather than a missing metric.
var granularities = map[ratio.Timeframe]string{
	ratio.TF1h: "1h",
	ratio.TF4h: "4h",
	ratio.TF1d: "1d",
}

type Config struct {
	Name    string
	BaseURL string
	Quote   string // default USD; symbols look like tBTCUSD
}

type Adapter struct {
	cfg    Config
	client *httpx.Client
}

func New(cfg Config, hc *httpx.Client) *Adapter {
	if cfg.Name == "" {
		cfg.Name = "Bitfinex"
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api-pub.bitfinex.com"
	}
	if cfg.Quote == "" {
		cfg.Quote = "USD"
	}
	return &Adapter{cfg: cfg, client: hc}
}

func (a *Adapter) Name() string { return a.cfg.Name }

// symbol builds the Bitfinex trading pair identifier, e.g. BTC -> tBTCUSD.
func (a *Adapter) symbol(base string) string {
	return "t" + strings.ToUpper(base) + a.cfg.Quote
}

func (a *Adapter) Fetch(ctx context.Context, symbol string, tf ratio.Timeframe) ratio.NormalizedRatio {
	gran, ok := granularities[tf]
	if !ok {
		return ratio.UnsupportedTimeframe(a.cfg.Name, tf)
	}

	longSize, longRaw, err := a.positionSize(ctx, gran, a.symbol(symbol), "long")
	if err != nil {
		return ratio.Failure(a.cfg.Name, err)
	}
	shortSize, shortRaw, err := a.positionSize(ctx, gran, a.symbol(symbol), "short")
	if err != nil {
		return ratio.Failure(a.cfg.Name, err)
	}

	raw, _ := json.Marshal(map[string]json.RawMessage{"long": longRaw, "short": shortRaw})
	return ratio.Success(a.cfg.Name, ratio.FromVolumes(longSize, shortSize), raw)
}

// positionSize fetches the latest pos.size stat for one side. The
// response is a flat array [timestamp, value].
func (a *Adapter) positionSize(ctx context.Context, gran, pair, side string) (decimal.Decimal, json.RawMessage, error) {
	url := fmt.Sprintf("%s/v2/stats1/pos.size:%s:%s:%s/last", a.cfg.BaseURL, gran, pair, side)
	body, err := a.client.GetJSON(ctx, url)
	if err != nil {
		return decimal.Zero, nil, err
	}
	var row []json.Number
	if err := json.Unmarshal(body, &row); err != nil {
		return decimal.Zero, nil, fmt.Errorf("decode %s stat: %w", side, err)
	}
	if len(row) < 2 {
		return decimal.Zero, nil, fmt.Errorf("missing %s position size in %s", side, string(body))
	}
	size, err := decimal.NewFromString(row[1].String())
	if err != nil {
		return decimal.Zero, nil, fmt.Errorf("bad %s position size %q", side, row[1].String())
	}
	// Short sizes are sometimes reported negative; magnitude is what counts.
	return size.Abs(), json.RawMessage(body), nil
}
