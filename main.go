// go_transcript — YouTube transcript fetching and caching service.
//
// Accepts a video URL, extracts the 11-character video ID, fetches the
// transcript over the Innertube API and caches results in a bounded
// in-memory FIFO store. Exposes a small REST surface: /process,
// /transcripts, /transcripts/{id}, /metrics and a health check on /.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/anatolykoptev/go-kit/env"
	"github.com/anatolykoptev/go_transcript/internal/engine"
	"github.com/anatolykoptev/go_transcript/internal/engine/sources"
	"github.com/anatolykoptev/go_transcript/internal/httpserver"
	"golang.org/x/time/rate"
)

var (
	version = "dev"
	port    = env.Str("PORT", "8000")
)

func main() {
	setupLogging(env.Str("LOG_LEVEL", "info"))

	maxEntries := env.Int("STORE_MAX_ENTRIES", engine.DefaultMaxEntries)
	svc := initEngine(maxEntries)

	slog.Info("starting go_transcript",
		slog.String("version", version),
		slog.String("port", port),
		slog.Int("store_capacity", maxEntries),
	)

	srv := httpserver.New(httpserver.Config{
		Addr:            ":" + port,
		Service:         svc,
		DefaultLanguage: env.Str("LANGUAGE_DEFAULT", "en"),
		AllowedOrigins:  env.List("ALLOWED_ORIGINS", ""),
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := srv.Run(ctx); err != nil {
		slog.Error("server failed", slog.Any("error", err))
		os.Exit(1)
	}
	slog.Info("shutdown complete")
}

func initEngine(maxEntries int) *engine.Service {
	fetchTimeout := env.Duration("FETCH_TIMEOUT", 15*time.Second)

	engine.Init(engine.Config{
		LanguageDefault: env.Str("LANGUAGE_DEFAULT", "en"),
		FetchTimeout:    fetchTimeout,
		HTTPClient: &http.Client{
			Timeout: fetchTimeout,
			Transport: &http.Transport{
				MaxIdleConns:        20,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     60 * time.Second,
			},
		},
		OutboundLimiter: rate.NewLimiter(rate.Limit(env.Float("YT_RATE_LIMIT", 4)), 2),
	})

	return engine.NewService(engine.NewStore(maxEntries), sources.FetchYouTubeTranscript)
}

func setupLogging(level string) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})))
}
