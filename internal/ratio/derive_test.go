package ratio

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}

func TestFromFractions(t *testing.T) {
	d := FromFractions(dec(t, "0.63"), dec(t, "0.37"))
	assert.InDelta(t, 63.0, d.LongPercent, 1e-9)
	assert.InDelta(t, 37.0, d.ShortPercent, 1e-9)
	assert.InDelta(t, 0.63/0.37, d.Ratio, 1e-9)
}

func TestFromFractions_ZeroShort(t *testing.T) {
	d := FromFractions(dec(t, "1"), dec(t, "0"))
	assert.Equal(t, 100.0, d.LongPercent)
	assert.Equal(t, 0.0, d.ShortPercent)
	assert.Equal(t, 0.0, d.Ratio)
}

func TestFromRatio(t *testing.T) {
	d := FromRatio(dec(t, "2.5"))
	assert.InDelta(t, 71.43, d.LongPercent, 0.01)
	assert.InDelta(t, 28.57, d.ShortPercent, 0.01)
	assert.Equal(t, 2.5, d.Ratio)
	assert.InDelta(t, 100, d.LongPercent+d.ShortPercent, 0.01)
}

func TestFromRatio_DegenerateDenominator(t *testing.T) {
	for _, s := range []string{"-1", "-2.5"} {
		d := FromRatio(dec(t, s))
		assert.Equal(t, Derived{}, d, "ratio %s", s)
	}
}

func TestFromVolumes(t *testing.T) {
	d := FromVolumes(dec(t, "300"), dec(t, "100"))
	assert.Equal(t, 75.0, d.LongPercent)
	assert.Equal(t, 25.0, d.ShortPercent)
	assert.Equal(t, 3.0, d.Ratio)
}

func TestFromVolumes_NoVolume(t *testing.T) {
	d := FromVolumes(decimal.Zero, decimal.Zero)
	assert.Equal(t, 0.0, d.LongPercent)
	assert.Equal(t, 0.0, d.ShortPercent)
	assert.Equal(t, 0.0, d.Ratio)
}

func TestPercentSumInvariant(t *testing.T) {
	cases := []Derived{
		FromFractions(dec(t, "0.5521"), dec(t, "0.4479")),
		FromRatio(dec(t, "0.87")),
		FromRatio(dec(t, "3.1415")),
		FromVolumes(dec(t, "12345.678"), dec(t, "9876.543")),
	}
	for _, d := range cases {
		assert.InDelta(t, 100, d.LongPercent+d.ShortPercent, 0.01)
	}
}
