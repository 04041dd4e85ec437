// Package bitget fetches the futures long/short position ratio from
// Bitget. The endpoint returns a window of history as parallel arrays,
// so the adapter takes the most recent element of each series.
package bitget

import (
	"context"
	"net/url"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/shopspring/decimal"

	"longshort/internal/httpx"
	"longshort/internal/ratio"
)

var periods = map[ratio.Timeframe]string{
	ratio.TF5m:  "5m",
	ratio.TF15m: "15m",
	ratio.TF30m: "30m",
	ratio.TF1h:  "1h",
	ratio.TF4h:  "4h",
	ratio.TF1d:  "1d",
}

type Config struct {
	Name        string
	BaseURL     string
	ProductType string // default USDT-FUTURES
	Quote       string
}

type Adapter struct {
	cfg    Config
	client *httpx.Client
}

func New(cfg Config, hc *httpx.Client) *Adapter {
	if cfg.Name == "" {
		cfg.Name = "Bitget"
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.bitget.com"
	}
	if cfg.ProductType == "" {
		cfg.ProductType = "USDT-FUTURES"
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
	q.Set("symbol", strings.ToUpper(symbol)+a.cfg.Quote)
	q.Set("productType", a.cfg.ProductType)
	q.Set("period", period)
	body, err := a.client.GetJSON(ctx, a.cfg.BaseURL+"/api/v2/mix/market/account-long-short?"+q.Encode())
	if err != nil {
		return ratio.Failure(a.cfg.Name, err)
	}

	var resp seriesResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return ratio.Failuref(a.cfg.Name, "decode: %v", err)
	}
	if resp.Code != "00000" {
		return ratio.Failuref(a.cfg.Name, "upstream error: code=%s msg=%q", resp.Code, resp.Msg)
	}
	series := resp.Data
	if len(series.LongRatios) == 0 || len(series.ShortRatios) == 0 {
		return ratio.Failuref(a.cfg.Name, "empty ratio series")
	}

	// The parallel arrays run oldest to newest; the last element of each
	// is the current snapshot. Values arrive as fractions in [0,1].
	long, err := decimal.NewFromString(last(series.LongRatios))
	if err != nil {
		return ratio.Failuref(a.cfg.Name, "bad long ratio %q", last(series.LongRatios))
	}
	short, err := decimal.NewFromString(last(series.ShortRatios))
	if err != nil {
		return ratio.Failuref(a.cfg.Name, "bad short ratio %q", last(series.ShortRatios))
	}

	d := ratio.FromFractions(long, short)
	if len(series.LongShortRatios) > 0 {
		if r, err := decimal.NewFromString(last(series.LongShortRatios)); err == nil {
			d.Ratio = r.InexactFloat64()
		}
	}
	raw, _ := json.Marshal(series)
	return ratio.Success(a.cfg.Name, d, raw)
}

func last(s []string) string { return s[len(s)-1] }

type seriesResponse struct {
	Code string `json:"code"`
	Msg  string `json:"msg"`
	Data struct {
		Times           []string `json:"timeList"`
		LongRatios      []string `json:"longAccountRatioList"`
		ShortRatios     []string `json:"shortAccountRatioList"`
		LongShortRatios []string `json:"longShortAccountRatioList"`
	} `json:"data"`
}
