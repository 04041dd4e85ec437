package bybit

import (
	"context"

	"longshort/internal/ratio"
	"longshort/internal/volume"
)

// TakerVolume is the taker buy/sell volume entry for Bybit. The v5
// public market API carries the account ratio but no taker volume
// breakdown, so the provider reports the gap explicitly and never
// performs a network call.
type TakerVolume struct {
	name string
}

func NewTakerVolume(cfg Config) *TakerVolume {
	if cfg.Name == "" {
		cfg.Name = "Bybit"
	}
	return &TakerVolume{name: cfg.Name}
}

func (v *TakerVolume) Name() string { return v.name }

func (v *TakerVolume) Fetch(_ context.Context, _ string, _ ratio.Timeframe) volume.Summary {
	return volume.NotSupported(v.name, "Bybit does not publish taker buy/sell volume data")
}
