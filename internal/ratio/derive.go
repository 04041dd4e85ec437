package ratio

import "github.com/shopspring/decimal"

var (
	hundred = decimal.NewFromInt(100)
	one     = decimal.NewFromInt(1)
)

// Derived holds the common output of the per-exchange derivation
// strategies. Percent values are in [0,100].
type Derived struct {
	Ratio        float64
	LongPercent  float64
	ShortPercent float64
}

// FromFractions handles direct-percentage exchanges: the upstream already
// reports long and short fractions in [0,1], so both only need scaling.
// The ratio is long/short, 0 when the short fraction is zero.
func FromFractions(long, short decimal.Decimal) Derived {
	d := Derived{
		LongPercent:  long.Mul(hundred).InexactFloat64(),
		ShortPercent: short.Mul(hundred).InexactFloat64(),
	}
	if short.IsPositive() {
		d.Ratio = long.Div(short).InexactFloat64()
	}
	return d
}

// FromRatio handles ratio-only exchanges that report a single long:short
// ratio R. With long+short = 1 and long/short = R, the short fraction is
// 1/(R+1) and the long fraction follows. R+1 must be positive for the
// closed form to hold; anything else yields a zero Derived.
func FromRatio(r decimal.Decimal) Derived {
	if !r.Add(one).IsPositive() {
		return Derived{}
	}
	short := one.Div(r.Add(one))
	long := one.Sub(short)
	return Derived{
		Ratio:        r.InexactFloat64(),
		LongPercent:  long.Mul(hundred).InexactFloat64(),
		ShortPercent: short.Mul(hundred).InexactFloat64(),
	}
}

// FromVolumes handles raw-volume exchanges reporting buy and sell sizes
// rather than fractions. Both percents are 0 when there is no volume at
// all, and the ratio is 0 when the sell side is empty.
func FromVolumes(buy, sell decimal.Decimal) Derived {
	var d Derived
	total := buy.Add(sell)
	if total.IsPositive() {
		d.LongPercent = buy.Div(total).Mul(hundred).InexactFloat64()
		d.ShortPercent = sell.Div(total).Mul(hundred).InexactFloat64()
	}
	if sell.IsPositive() {
		d.Ratio = buy.Div(sell).InexactFloat64()
	}
	return d
}
