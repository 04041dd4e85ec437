package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
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

type ratiosResponse struct {
	Symbol    string                  `json:"symbol"`
	Timeframe string                  `json:"timeframe"`
	Ratios    []ratio.NormalizedRatio `json:"ratios"`
}

type volumeResponse struct {
	Symbol    string           `json:"symbol"`
	Timeframe string           `json:"timeframe"`
	Volumes   []volume.Summary `json:"volumes"`
}

func main() {
	_ = godotenv.Load()
	setupLogging()

	cfg, err := config.Load(os.Getenv("CONFIG_FILE"))
	if err != nil {
		log.Fatal().Err(err).Msg("config")
	}

	httpClient := httpx.New(time.Duration(cfg.Server.RequestTimeoutSec) * time.Second)

	adapters, err := exchange.Roster(cfg.Exchanges, cfg.Endpoints, httpClient)
	if err != nil {
		log.Fatal().Err(err).Msg("exchange roster")
	}
	volumes, err := exchange.VolumeRoster(cfg.VolumeSources, cfg.Endpoints, httpClient)
	if err != nil {
		log.Fatal().Err(err).Msg("volume roster")
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/long-short", func(w http.ResponseWriter, r *http.Request) {
		symbol, tfRaw := queryParams(r)
		writeLongShort(w, r.Context(), adapters, symbol, tfRaw)
	})
	mux.HandleFunc("GET /api/taker-volume", func(w http.ResponseWriter, r *http.Request) {
		symbol, tfRaw := queryParams(r)
		writeTakerVolume(w, r.Context(), volumes, symbol, tfRaw)
	})
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"ok":true}`))
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           withJSONHeaders(withRequestLog(mux)),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Server.Port).Strs("exchanges", cfg.Exchanges).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server")
		}
	}()

	// graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
}

func setupLogging() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnixMs
	if lvl, err := zerolog.ParseLevel(strings.ToLower(os.Getenv("LOG_LEVEL"))); err == nil && lvl != zerolog.NoLevel {
		zerolog.SetGlobalLevel(lvl)
	}
	if os.Getenv("LOG_PRETTY") != "" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
}

func queryParams(r *http.Request) (symbol, timeframe string) {
	symbol = strings.TrimSpace(r.URL.Query().Get("symbol"))
	if symbol == "" {
		symbol = "BTC"
	}
	timeframe = strings.TrimSpace(r.URL.Query().Get("timeframe"))
	if timeframe == "" {
		timeframe = "1h"
	}
	return symbol, timeframe
}

func writeLongShort(w http.ResponseWriter, ctx context.Context, adapters []ratio.Adapter, symbol, tfRaw string) {
	tf, err := ratio.ParseTimeframe(tfRaw)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	reqID := uuid.NewString()
	start := time.Now()
	ratios := aggregate.Ratios(ctx, adapters, symbol, tf)
	log.Info().Str("request_id", reqID).Str("symbol", symbol).Str("timeframe", tfRaw).
		Int("exchanges", len(ratios)).Dur("elapsed", time.Since(start)).Msg("long-short aggregated")

	w.WriteHeader(http.StatusOK)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.Encode(ratiosResponse{Symbol: symbol, Timeframe: tfRaw, Ratios: ratios})
}

func writeTakerVolume(w http.ResponseWriter, ctx context.Context, providers []volume.Provider, symbol, tfRaw string) {
	tf, err := ratio.ParseTimeframe(tfRaw)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	reqID := uuid.NewString()
	start := time.Now()
	volumes := volume.Summaries(ctx, providers, symbol, tf)
	log.Info().Str("request_id", reqID).Str("symbol", symbol).Str("timeframe", tfRaw).
		Int("sources", len(volumes)).Dur("elapsed", time.Since(start)).Msg("taker volume aggregated")

	w.WriteHeader(http.StatusOK)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.Encode(volumeResponse{Symbol: symbol, Timeframe: tfRaw, Volumes: volumes})
}

func withJSONHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		// Basic CORS for browser usage; adjust as needed.
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET,OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func withRequestLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Debug().Str("method", r.Method).Str("path", r.URL.Path).
			Dur("elapsed", time.Since(start)).Msg("request")
	})
}
