// Package binance fetches the global long/short account ratio from
// Binance USDT-margined futures. Binance already reports long and short
// account fractions, so derivation is a direct scale to percent.
package binance

import (
	"context"
	"net/url"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/shopspring/decimal"

	"longshort/internal/httpx"
	"longshort/internal/ratio"
)

// periods maps canonical timeframes to Binance period tokens.
var periods = map[ratio.Timeframe]string{
	ratio.TF5m:  "5m",
	ratio.TF15m: "15m",
	ratio.TF30m: "30m",
	ratio.TF1h:  "1h",
	ratio.TF4h:  "4h",
	ratio.TF1d:  "1d",
}

type Config struct {
	Name    string
	BaseURL string
	Quote   string // quote currency appended to the base asset, default USDT
}

type Adapter struct {
	cfg    Config
	client *httpx.Client
}

func New(cfg Config, hc *httpx.Client) *Adapter {
	if cfg.Name == "" {
		cfg.Name = "Binance"
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://fapi.binance.com"
	}
	if cfg.Quote == "" {
		cfg.Quote = "USDT"
	}
	return &Adapter{cfg: cfg, client: hc}
}

func (a *Adapter) Name() string { return a.cfg.Name }

// symbol builds the Binance contract identifier, e.g. BTC -> BTCUSDT.
func (a *Adapter) symbol(base string) string {
	return strings.ToUpper(base) + a.cfg.Quote
}

func (a *Adapter) Fetch(ctx context.Context, symbol string, tf ratio.Timeframe) ratio.NormalizedRatio {
	period, ok := periods[tf]
	if !ok {
		return ratio.UnsupportedTimeframe(a.cfg.Name, tf)
	}

	q := url.Values{}
	q.Set("symbol", a.symbol(symbol))
	q.Set("period", period)
	q.Set("limit", "1")
	body, err := a.client.GetJSON(ctx, a.cfg.BaseURL+"/futures/data/globalLongShortAccountRatio?"+q.Encode())
	if err != nil {
		return ratio.Failure(a.cfg.Name, err)
	}

	var rows []accountRatio
	if err := json.Unmarshal(body, &rows); err != nil {
		return ratio.Failuref(a.cfg.Name, "decode: %v", err)
	}
	if len(rows) == 0 {
		return ratio.Failuref(a.cfg.Name, "empty ratio history for %s", a.symbol(symbol))
	}
	row := rows[len(rows)-1]

	long, err := decimal.NewFromString(row.LongAccount)
	if err != nil {
		return ratio.Failuref(a.cfg.Name, "bad longAccount %q", row.LongAccount)
	}
	short, err := decimal.NewFromString(row.ShortAccount)
	if err != nil {
		return ratio.Failuref(a.cfg.Name, "bad shortAccount %q", row.ShortAccount)
	}

	d := ratio.FromFractions(long, short)
	// Binance publishes its own ratio; prefer it over the derived one.
	if r, err := decimal.NewFromString(row.LongShortRatio); err == nil {
		d.Ratio = r.InexactFloat64()
	}
	raw, _ := json.Marshal(row)
	return ratio.Success(a.cfg.Name, d, raw)
}

type accountRatio struct {
	Symbol         string `json:"symbol"`
	LongShortRatio string `json:"longShortRatio"`
	LongAccount    string `json:"longAccount"`
	ShortAccount   string `json:"shortAccount"`
	Timestamp      int64  `json:"timestamp"`
}
