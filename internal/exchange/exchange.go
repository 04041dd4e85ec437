// Package exchange wires the closed set of per-exchange adapters into
// rosters. The enabled set and base-URL overrides come from
// configuration; everything else about an exchange is encoded in its
// own package.
package exchange

import (
	"fmt"

	"longshort/internal/exchange/binance"
	"longshort/internal/exchange/bitfinex"
	"longshort/internal/exchange/bitget"
	"longshort/internal/exchange/bybit"
	"longshort/internal/exchange/gate"
	"longshort/internal/exchange/kraken"
	"longshort/internal/exchange/okx"
	"longshort/internal/httpx"
	"longshort/internal/ratio"
	"longshort/internal/volume"
)

// Names lists every implemented ratio adapter in default display order.
func Names() []string {
	return []string{"binance", "bybit", "okx", "bitget", "bitfinex", "gate", "kraken"}
}

// VolumeNames lists every implemented taker-volume source.
func VolumeNames() []string {
	return []string{"binance", "bybit", "okx"}
}

// Roster builds ratio adapters for the named exchanges, preserving the
// given order. endpoints optionally overrides an exchange's base URL.
func Roster(names []string, endpoints map[string]string, hc *httpx.Client) ([]ratio.Adapter, error) {
	out := make([]ratio.Adapter, 0, len(names))
	for _, name := range names {
		switch name {
		case "binance":
			out = append(out, binance.New(binance.Config{BaseURL: endpoints[name]}, hc))
		case "bybit":
			out = append(out, bybit.New(bybit.Config{BaseURL: endpoints[name]}, hc))
		case "okx":
			client, err := okx.NewAPIClient(okxOptions(endpoints[name], hc)...)
			if err != nil {
				return nil, fmt.Errorf("okx client: %w", err)
			}
			out = append(out, okx.New(okx.Config{}, client))
		case "bitget":
			out = append(out, bitget.New(bitget.Config{BaseURL: endpoints[name]}, hc))
		case "bitfinex":
			out = append(out, bitfinex.New(bitfinex.Config{BaseURL: endpoints[name]}, hc))
		case "gate":
			out = append(out, gate.New(gate.Config{BaseURL: endpoints[name]}, hc))
		case "kraken":
			out = append(out, kraken.New(kraken.Config{}))
		default:
			return nil, fmt.Errorf("unknown exchange %q", name)
		}
	}
	return out, nil
}

// VolumeRoster builds taker-volume providers for the named sources.
func VolumeRoster(names []string, endpoints map[string]string, hc *httpx.Client) ([]volume.Provider, error) {
	out := make([]volume.Provider, 0, len(names))
	for _, name := range names {
		switch name {
		case "binance":
			out = append(out, binance.NewTakerVolume(binance.Config{BaseURL: endpoints[name]}, hc))
		case "bybit":
			out = append(out, bybit.NewTakerVolume(bybit.Config{}))
		case "okx":
			client, err := okx.NewAPIClient(okxOptions(endpoints[name], hc)...)
			if err != nil {
				return nil, fmt.Errorf("okx client: %w", err)
			}
			out = append(out, okx.NewTakerVolume(okx.Config{}, client))
		default:
			return nil, fmt.Errorf("unknown volume source %q", name)
		}
	}
	return out, nil
}

func okxOptions(baseURL string, hc *httpx.Client) []okx.APIClientOption {
	opts := []okx.APIClientOption{okx.WithHTTPClient(hc.HTTP)}
	if baseURL != "" {
		opts = append(opts, okx.WithBaseURL(baseURL))
	}
	return opts
}
