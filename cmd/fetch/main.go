// Command fetch performs a one-shot aggregation and prints the result
// as indented JSON. Useful for spot checks without running the server.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	json "github.com/goccy/go-json"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"longshort/internal/aggregate"
	"longshort/internal/config"
	"longshort/internal/exchange"
	"longshort/internal/httpx"
	"longshort/internal/ratio"
	"longshort/internal/volume"
)

func main() {
	var symbol string
	var tfRaw string
	var timeout int
	var configPath string
	var withVolume bool

	flag.StringVar(&symbol, "symbol", getenv("SYMBOL", "BTC"), "base asset ticker")
	flag.StringVar(&tfRaw, "timeframe", getenv("TIMEFRAME", "1h"), "timeframe (5m, 15m, 30m, 1h, 4h, 1d)")
	flag.IntVar(&timeout, "timeout", 15, "request timeout seconds")
	flag.StringVar(&configPath, "config", getenv("CONFIG_FILE", ""), "path to config.json (optional)")
	flag.BoolVar(&withVolume, "volume", false, "include taker volume summaries")
	flag.Parse()

	_ = godotenv.Load()
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("config")
	}
	if timeout > 0 {
		cfg.Server.RequestTimeoutSec = timeout
	}

	tf, err := ratio.ParseTimeframe(tfRaw)
	if err != nil {
		log.Fatal().Err(err).Msg("timeframe")
	}

	httpClient := httpx.New(time.Duration(cfg.Server.RequestTimeoutSec) * time.Second)
	adapters, err := exchange.Roster(cfg.Exchanges, cfg.Endpoints, httpClient)
	if err != nil {
		log.Fatal().Err(err).Msg("exchange roster")
	}

	ctx := context.Background()
	out := struct {
		Symbol    string                  `json:"symbol"`
		Timeframe string                  `json:"timeframe"`
		Ratios    []ratio.NormalizedRatio `json:"ratios"`
		Volumes   []volume.Summary        `json:"volumes,omitempty"`
	}{
		Symbol:    symbol,
		Timeframe: tfRaw,
		Ratios:    aggregate.Ratios(ctx, adapters, symbol, tf),
	}

	if withVolume {
		providers, err := exchange.VolumeRoster(cfg.VolumeSources, cfg.Endpoints, httpClient)
		if err != nil {
			log.Fatal().Err(err).Msg("volume roster")
		}
		out.Volumes = volume.Summaries(ctx, providers, symbol, tf)
	}

	b, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		log.Fatal().Err(err).Msg("encode")
	}
	fmt.Println(string(b))
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
