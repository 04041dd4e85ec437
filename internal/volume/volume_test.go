package volume

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"longshort/internal/ratio"
)

type fakeProvider struct {
	name    string
	summary Summary
}

func (f fakeProvider) Name() string { return f.name }
func (f fakeProvider) Fetch(context.Context, string, ratio.Timeframe) Summary {
	return f.summary
}

func TestSuccess_DerivesRate(t *testing.T) {
	s := Success("Binance", 300, 100)
	assert.Equal(t, ratio.StatusSuccess, s.Status)
	assert.Equal(t, 3.0, *s.BuySellRate)

	zero := Success("Binance", 0, 0)
	assert.Equal(t, 0.0, *zero.BuySellRate)
}

func TestSummaries_OrderAndIsolation(t *testing.T) {
	providers := []Provider{
		fakeProvider{name: "Binance", summary: Success("Binance", 300, 100)},
		fakeProvider{name: "OKX", summary: Failure("OKX", errors.New("i/o timeout"))},
	}
	got := Summaries(context.Background(), providers, "BTC", ratio.TF1h)
	require.Len(t, got, 2)
	assert.Equal(t, "Binance", got[0].Exchange)
	assert.Equal(t, ratio.StatusSuccess, got[0].Status)
	assert.Equal(t, "OKX", got[1].Exchange)
	assert.Equal(t, ratio.StatusError, got[1].Status)
	assert.Contains(t, got[1].Message, "i/o timeout")
}
