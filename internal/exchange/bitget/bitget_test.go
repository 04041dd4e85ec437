package bitget

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"longshort/internal/httpx"
	"longshort/internal/ratio"
)

func newTestAdapter(t *testing.T, handler http.HandlerFunc) *Adapter {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(Config{BaseURL: srv.URL}, httpx.New(2*time.Second))
}

func TestFetch_TakesLastSeriesElement(t *testing.T) {
	a := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v2/mix/market/account-long-short", r.URL.Path)
		assert.Equal(t, "BTCUSDT", r.URL.Query().Get("symbol"))
		assert.Equal(t, "USDT-FUTURES", r.URL.Query().Get("productType"))
		w.Write([]byte(`{"code":"00000","msg":"success","data":{
			"timeList":["1756496400000","1756500000000"],
			"longAccountRatioList":["0.4","0.45"],
			"shortAccountRatioList":["0.6","0.55"],
			"longShortAccountRatioList":["0.6667","0.8182"]
		}}`))
	})

	got := a.Fetch(context.Background(), "BTC", ratio.TF1h)
	require.Equal(t, ratio.StatusSuccess, got.Status)
	assert.InDelta(t, 45.0, *got.LongPercent, 1e-9)
	assert.InDelta(t, 55.0, *got.ShortPercent, 1e-9)
	assert.InDelta(t, 0.8182, *got.LongShortRatio, 1e-9)
	assert.InDelta(t, 100, *got.LongPercent+*got.ShortPercent, 0.01)
}

func TestFetch_EmptySeries(t *testing.T) {
	a := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"code":"00000","msg":"success","data":{"timeList":[],"longAccountRatioList":[],"shortAccountRatioList":[]}}`))
	})

	got := a.Fetch(context.Background(), "BTC", ratio.TF15m)
	assert.Equal(t, ratio.StatusError, got.Status)
	assert.Contains(t, got.Message, "empty ratio series")
}

func TestFetch_UpstreamCode(t *testing.T) {
	a := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"code":"40034","msg":"Parameter does not exist","data":{}}`))
	})

	got := a.Fetch(context.Background(), "BTC", ratio.TF4h)
	assert.Equal(t, ratio.StatusError, got.Status)
	assert.Contains(t, got.Message, "40034")
}

func TestFetch_MissingRatioFromSeries(t *testing.T) {
	// No longShortAccountRatioList: the ratio falls back to long/short.
	a := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"code":"00000","msg":"success","data":{
			"timeList":["1756500000000"],
			"longAccountRatioList":["0.75"],
			"shortAccountRatioList":["0.25"]
		}}`))
	})

	got := a.Fetch(context.Background(), "BTC", ratio.TF1d)
	require.Equal(t, ratio.StatusSuccess, got.Status)
	assert.InDelta(t, 3.0, *got.LongShortRatio, 1e-9)
}
