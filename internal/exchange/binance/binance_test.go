package binance

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"longshort/internal/httpx"
	"longshort/internal/ratio"
)

func newTestAdapter(t *testing.T, handler http.HandlerFunc) (*Adapter, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(Config{BaseURL: srv.URL}, httpx.New(2*time.Second)), srv
}

func TestFetch_Success(t *testing.T) {
	a, _ := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/futures/data/globalLongShortAccountRatio", r.URL.Path)
		assert.Equal(t, "BTCUSDT", r.URL.Query().Get("symbol"))
		assert.Equal(t, "1h", r.URL.Query().Get("period"))
		w.Write([]byte(`[{"symbol":"BTCUSDT","longShortRatio":"1.7027","longAccount":"0.63","shortAccount":"0.37","timestamp":1756500000000}]`))
	})

	got := a.Fetch(context.Background(), "BTC", ratio.TF1h)
	require.Equal(t, ratio.StatusSuccess, got.Status)
	assert.Equal(t, "Binance", got.Exchange)
	assert.InDelta(t, 63.0, *got.LongPercent, 1e-9)
	assert.InDelta(t, 37.0, *got.ShortPercent, 1e-9)
	assert.InDelta(t, 1.7027, *got.LongShortRatio, 1e-9)
	assert.NotEmpty(t, got.RawInfo)
}

func TestFetch_UpstreamError(t *testing.T) {
	a, _ := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"code":-1121,"msg":"Invalid symbol."}`, http.StatusBadRequest)
	})

	got := a.Fetch(context.Background(), "NOPE", ratio.TF1h)
	assert.Equal(t, ratio.StatusError, got.Status)
	assert.Contains(t, got.Message, "400")
	assert.Nil(t, got.LongPercent)
}

func TestFetch_EmptyHistory(t *testing.T) {
	a, _ := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	})

	got := a.Fetch(context.Background(), "BTC", ratio.TF5m)
	assert.Equal(t, ratio.StatusError, got.Status)
	assert.Contains(t, got.Message, "empty ratio history")
}

func TestFetch_MalformedPayload(t *testing.T) {
	a, _ := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"unexpected":"shape"}`))
	})

	got := a.Fetch(context.Background(), "BTC", ratio.TF1d)
	assert.Equal(t, ratio.StatusError, got.Status)
	assert.Contains(t, got.Message, "decode")
}

func TestFetch_BadFraction(t *testing.T) {
	a, _ := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"longAccount":"n/a","shortAccount":"0.4"}]`))
	})

	got := a.Fetch(context.Background(), "BTC", ratio.TF1h)
	assert.Equal(t, ratio.StatusError, got.Status)
	assert.Contains(t, got.Message, "longAccount")
}

func TestFetch_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()
	a := New(Config{BaseURL: srv.URL}, httpx.New(time.Second))

	got := a.Fetch(context.Background(), "BTC", ratio.TF1h)
	assert.Equal(t, ratio.StatusError, got.Status)
	assert.NotEmpty(t, got.Message)
}

func TestTakerVolume_Success(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		assert.Equal(t, "/futures/data/takerlongshortRatio", r.URL.Path)
		w.Write([]byte(`[{"buySellRatio":"3.0","buyVol":"300","sellVol":"100","timestamp":1756500000000}]`))
	}))
	t.Cleanup(srv.Close)

	v := NewTakerVolume(Config{BaseURL: srv.URL}, httpx.New(2*time.Second))
	got := v.Fetch(context.Background(), "BTC", ratio.TF4h)
	require.Equal(t, ratio.StatusSuccess, got.Status)
	assert.Equal(t, 300.0, *got.BuyVolume)
	assert.Equal(t, 100.0, *got.SellVolume)
	assert.Equal(t, 3.0, *got.BuySellRate)
	assert.Equal(t, int32(1), hits.Load())
}
