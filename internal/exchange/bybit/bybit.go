// Package bybit fetches the long/short account ratio from Bybit's v5
// market API. The response carries buy/sell fractions directly.
package bybit

import (
	"context"
	"net/url"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/shopspring/decimal"

	"longshort/internal/httpx"
	"longshort/internal/ratio"
)

// periods maps canonical timeframes to Bybit interval tokens. Bybit
// spells minute windows out ("5min") but keeps hour/day short.
var periods = map[ratio.Timeframe]string{
	ratio.TF5m:  "5min",
	ratio.TF15m: "15min",
	ratio.TF30m: "30min",
	ratio.TF1h:  "1h",
	ratio.TF4h:  "4h",
	ratio.TF1d:  "1d",
}

type Config struct {
	Name     string
	BaseURL  string
	Category string // product category, default linear
	Quote    string
}

type Adapter struct {
	cfg    Config
	client *httpx.Client
}

func New(cfg Config, hc *httpx.Client) *Adapter {
	if cfg.Name == "" {
		cfg.Name = "Bybit"
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.bybit.com"
	}
	if cfg.Category == "" {
		cfg.Category = "linear"
	}
	if cfg.Quote == "" {
		cfg.Quote = "USDT"
	}
	return &Adapter{cfg: cfg, client: hc}
}

func (a *Adapter) Name() string { return a.cfg.Name }

func (a *Adapter) Fetch(ctx context.Context, symbol string, tf ratio.Timeframe) ratio.NormalizedRatio {
	period, ok := periods[tf]
	if !ok {
		return ratio.UnsupportedTimeframe(a.cfg.Name, tf)
	}

	q := url.Values{}
	q.Set("category", a.cfg.Category)
	q.Set("symbol", strings.ToUpper(symbol)+a.cfg.Quote)
	q.Set("period", period)
	q.Set("limit", "1")
	body, err := a.client.GetJSON(ctx, a.cfg.BaseURL+"/v5/market/account-ratio?"+q.Encode())
	if err != nil {
		return ratio.Failure(a.cfg.Name, err)
	}

	var resp accountRatioResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return ratio.Failuref(a.cfg.Name, "decode: %v", err)
	}
	if resp.RetCode != 0 {
		return ratio.Failuref(a.cfg.Name, "upstream error: code=%d msg=%q", resp.RetCode, resp.RetMsg)
	}
	if len(resp.Result.List) == 0 {
		return ratio.Failuref(a.cfg.Name, "empty account ratio list")
	}
	// Newest entry first in Bybit's list ordering.
	row := resp.Result.List[0]

	buy, err := decimal.NewFromString(row.BuyRatio)
	if err != nil {
		return ratio.Failuref(a.cfg.Name, "bad buyRatio %q", row.BuyRatio)
	}
	sell, err := decimal.NewFromString(row.SellRatio)
	if err != nil {
		return ratio.Failuref(a.cfg.Name, "bad sellRatio %q", row.SellRatio)
	}

	raw, _ := json.Marshal(row)
	return ratio.Success(a.cfg.Name, ratio.FromFractions(buy, sell), raw)
}

type accountRatioResponse struct {
	RetCode int    `json:"retCode"`
	RetMsg  string `json:"retMsg"`
	Result  struct {
		List []accountRatioRow `json:"list"`
	} `json:"result"`
}

type accountRatioRow struct {
	Symbol    string `json:"symbol"`
	BuyRatio  string `json:"buyRatio"`
	SellRatio string `json:"sellRatio"`
	Timestamp string `json:"timestamp"`
}
