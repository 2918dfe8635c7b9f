package main

import (
	"os"
	"time"
)

type config struct {
	Addr       string
	Provider   string
	Language   string
	SessionTTL time.Duration
}

func configFromEnv() config {
	return config{
		Addr:       envStr("ADDR", ":8501"),
		Provider:   envStr("SUMMARY_PROVIDER", "openai"),
		Language:   envStr("TRANSCRIPT_LANGUAGE", "en"),
		SessionTTL: envDuration("SESSION_TTL", time.Hour),
	}
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
