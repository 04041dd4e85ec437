package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	json "github.com/goccy/go-json"

	"longshort/internal/exchange"
)

type Server struct {
	Port              string `json:"port" validate:"required"`
	RequestTimeoutSec int    `json:"request_timeout_sec" validate:"gte=1"`
}

type Config struct {
	Server Server `json:"server"`
	// Exchanges is the enabled adapter roster, in display order. The set
	// of valid names is the closed set of implemented adapters.
	Exchanges []string `json:"exchanges" validate:"min=1,dive,oneof=binance bybit okx bitget bitfinex gate kraken"`
	// VolumeSources is the enabled taker-volume roster.
	VolumeSources []string `json:"volume_sources" validate:"dive,oneof=binance bybit okx"`
	// Endpoints overrides an exchange's base URL, keyed by adapter name.
	// Used mostly for local development against recorded responses.
	Endpoints map[string]string `json:"endpoints"`
}

var validate = validator.New()

func Default() Config {
	return Config{
		Server:        Server{Port: "8080", RequestTimeoutSec: 10},
		Exchanges:     exchange.Names(),
		VolumeSources: exchange.VolumeNames(),
	}
}

// Load reads JSON config from path. If path is empty or the file does
// not exist, it returns defaults. Environment variables override select
// fields. The result is validated before being returned.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		if _, err := os.Stat("config.json"); err == nil {
			path = "config.json"
		}
	}
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return cfg, fmt.Errorf("read config: %w", err)
		}
		if err == nil {
			if err := json.Unmarshal(b, &cfg); err != nil {
				return cfg, fmt.Errorf("parse config: %w", err)
			}
		}
	}
	applyEnv(&cfg)
	if err := validate.Struct(cfg); err != nil {
		return cfg, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("PORT"); v != "" {
		cfg.Server.Port = v
	}
	if v := os.Getenv("REQUEST_TIMEOUT_SEC"); v != "" {
		if x, err := strconv.Atoi(v); err == nil && x > 0 {
			cfg.Server.RequestTimeoutSec = x
		}
	}
	if v := os.Getenv("EXCHANGES"); v != "" {
		cfg.Exchanges = splitCSV(v)
	}
	if v := os.Getenv("VOLUME_SOURCES"); v != "" {
		cfg.VolumeSources = splitCSV(v)
	}
}

func splitCSV(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
