// Package gate fetches the long/short account ratio from Gate.io
// contract statistics. Gate reports a single ratio per window, so the
// percentage split is derived the same way as for OKX.
package gate

import (
	"context"
	"net/url"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/shopspring/decimal"

	"longshort/internal/httpx"
	"longshort/internal/ratio"
)

var intervals = map[ratio.Timeframe]string{
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
	Settle  string // settlement currency path segment, default usdt
	Quote   string
}

type Adapter struct {
	cfg    Config
	client *httpx.Client
}

func New(cfg Config, hc *httpx.Client) *Adapter {
	if cfg.Name == "" {
		cfg.Name = "Gate.io"
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.gateio.ws"
	}
	if cfg.Settle == "" {
		cfg.Settle = "usdt"
	}
	if cfg.Quote == "" {
		cfg.Quote = "USDT"
	}
	return &Adapter{cfg: cfg, client: hc}
}

func (a *Adapter) Name() string { return a.cfg.Name }

// contract builds the Gate contract identifier, e.g. BTC -> BTC_USDT.
func (a *Adapter) contract(base string) string {
	return strings.ToUpper(base) + "_" + a.cfg.Quote
}

func (a *Adapter) Fetch(ctx context.Context, symbol string, tf ratio.Timeframe) ratio.NormalizedRatio {
	interval, ok := intervals[tf]
	if !ok {
		return ratio.UnsupportedTimeframe(a.cfg.Name, tf)
	}

	q := url.Values{}
	q.Set("contract", a.contract(symbol))
	q.Set("interval", interval)
	q.Set("limit", "1")
	body, err := a.client.GetJSON(ctx, a.cfg.BaseURL+"/api/v4/futures/"+a.cfg.Settle+"/contract_stats?"+q.Encode())
	if err != nil {
		return ratio.Failure(a.cfg.Name, err)
	}

	var rows []contractStat
	if err := json.Unmarshal(body, &rows); err != nil {
		return ratio.Failuref(a.cfg.Name, "decode: %v", err)
	}
	if len(rows) == 0 {
		return ratio.Failuref(a.cfg.Name, "empty contract stats for %s", a.contract(symbol))
	}
	row := rows[len(rows)-1]
	if row.LsrAccount <= 0 {
		return ratio.Failuref(a.cfg.Name, "missing lsr_account in contract stats")
	}

	raw, _ := json.Marshal(row)
	return ratio.Success(a.cfg.Name, ratio.FromRatio(decimal.NewFromFloat(row.LsrAccount)), raw)
}

type contractStat struct {
	Time       int64   `json:"time"`
	LsrTaker   float64 `json:"lsr_taker"`
	LsrAccount float64 `json:"lsr_account"`
	LongLiqUsd float64 `json:"long_liq_usd"`
	ShortLiq   float64 `json:"short_liq_usd"`
	OpenInt    int64   `json:"open_interest"`
}
