package engine

import (
	"context"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

// Config holds all engine configuration, injected from main.
type Config struct {
	LanguageDefault string        // language requested when the caller gives none
	FetchTimeout    time.Duration // per-request budget for provider HTTP calls
	HTTPClient      *http.Client  // shared client for all outbound calls
	OutboundLimiter *rate.Limiter // nil = no throttling toward the provider
}

var cfg Config

// Cfg exposes the engine configuration for sub-packages (sources).
// Always points to the current cfg value.
var Cfg = &cfg

// Init initializes the engine with the given configuration.
func Init(c Config) {
	if c.FetchTimeout <= 0 {
		c.FetchTimeout = 15 * time.Second
	}
	if c.HTTPClient == nil {
		c.HTTPClient = &http.Client{Timeout: c.FetchTimeout}
	}
	if c.LanguageDefault == "" {
		c.LanguageDefault = "en"
	}
	cfg = c
	Cfg = &cfg
}

// WaitOutbound blocks until the outbound limiter grants a slot.
// No-op when throttling is disabled.
func WaitOutbound(ctx context.Context) error {
	if cfg.OutboundLimiter == nil {
		return nil
	}
	return cfg.OutboundLimiter.Wait(ctx)
}
