package binance

import (
	"context"
	"net/url"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/shopspring/decimal"

	"longshort/internal/httpx"
	"longshort/internal/ratio"
	"longshort/internal/volume"
)

// TakerVolume fetches taker buy/sell volume totals from the same
// futures data API used for the account ratio.
type TakerVolume struct {
	cfg    Config
	client *httpx.Client
}

func NewTakerVolume(cfg Config, hc *httpx.Client) *TakerVolume {
	if cfg.Name == "" {
		cfg.Name = "Binance"
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://fapi.binance.com"
	}
	if cfg.Quote == "" {
		cfg.Quote = "USDT"
	}
	return &TakerVolume{cfg: cfg, client: hc}
}

func (v *TakerVolume) Name() string { return v.cfg.Name }

func (v *TakerVolume) Fetch(ctx context.Context, symbol string, tf ratio.Timeframe) volume.Summary {
	period, ok := periods[tf]
	if !ok {
		return volume.Failuref(v.cfg.Name, "timeframe %s not supported", tf)
	}

	q := url.Values{}
	q.Set("symbol", strings.ToUpper(symbol)+v.cfg.Quote)
	q.Set("period", period)
	q.Set("limit", "1")
	body, err := v.client.GetJSON(ctx, v.cfg.BaseURL+"/futures/data/takerlongshortRatio?"+q.Encode())
	if err != nil {
		return volume.Failure(v.cfg.Name, err)
	}

	var rows []takerRatio
	if err := json.Unmarshal(body, &rows); err != nil {
		return volume.Failuref(v.cfg.Name, "decode: %v", err)
	}
	if len(rows) == 0 {
		return volume.Failuref(v.cfg.Name, "empty taker volume history")
	}
	row := rows[len(rows)-1]

	buy, err := decimal.NewFromString(row.BuyVol)
	if err != nil {
		return volume.Failuref(v.cfg.Name, "bad buyVol %q", row.BuyVol)
	}
	sell, err := decimal.NewFromString(row.SellVol)
	if err != nil {
		return volume.Failuref(v.cfg.Name, "bad sellVol %q", row.SellVol)
	}
	return volume.Success(v.cfg.Name, buy.InexactFloat64(), sell.InexactFloat64())
}

type takerRatio struct {
	BuySellRatio string `json:"buySellRatio"`
	BuyVol       string `json:"buyVol"`
	SellVol      string `json:"sellVol"`
	Timestamp    int64  `json:"timestamp"`
}
