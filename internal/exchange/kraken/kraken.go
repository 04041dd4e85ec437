// Package kraken is the adapter for an exchange that does not publish
// long/short positioning data at all. It exists so the dashboard shows
// an explicit "not supported" entry instead of silently omitting the
// venue, and it never performs a network call.
package kraken

import (
	"context"

	"longshort/internal/ratio"
)

type Config struct {
	Name string
}

type Adapter struct {
	cfg Config
}

func New(cfg Config) *Adapter {
	if cfg.Name == "" {
		cfg.Name = "Kraken"
	}
	return &Adapter{cfg: cfg}
}

func (a *Adapter) Name() string { return a.cfg.Name }

func (a *Adapter) Fetch(_ context.Context, _ string, _ ratio.Timeframe) ratio.NormalizedRatio {
	return ratio.NotSupported(a.cfg.Name, "Kraken does not publish long/short ratio data")
}
