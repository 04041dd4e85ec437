package kraken

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"longshort/internal/ratio"
)

func TestFetch_AlwaysNotSupported(t *testing.T) {
	a := New(Config{})
	for _, tf := range ratio.Timeframes() {
		got := a.Fetch(context.Background(), "BTC", tf)
		assert.Equal(t, ratio.StatusNotSupported, got.Status)
		assert.Equal(t, "Kraken", got.Exchange)
		assert.Nil(t, got.LongPercent)
		assert.Nil(t, got.ShortPercent)
		assert.Nil(t, got.LongShortRatio)
		assert.NotEmpty(t, got.Message)
	}
}
