// Transcripto — YouTube AI summarizer.
//
// Takes a YouTube URL, fetches the caption transcript for the preferred
// language and generates an AI summary, served as a small web UI with
// plain-text downloads for both artifacts.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/stayharshit/Transcripto/session"
	"github.com/stayharshit/Transcripto/summary"
	"github.com/stayharshit/Transcripto/web"
	"github.com/stayharshit/Transcripto/youtube"
)

func main() {
	godotenv.Load(".env.local")

	cfg := configFromEnv()
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	provider := summary.NewProvider(cfg.Provider, summary.TranscriptPrompts{})
	if provider == nil {
		logger.Error("unknown summary provider", slog.String("provider", cfg.Provider))
		os.Exit(1)
	}
	if err := provider.Prepare(); err != nil {
		// The server still starts; summarization fails per request until a
		// key is supplied, and the transcript side keeps working.
		logger.Warn("summary provider not ready",
			slog.String("provider", provider.String()),
			slog.Any("error", err),
		)
	}

	sessions := session.NewStore(cfg.SessionTTL)
	if cfg.SessionTTL > 0 {
		go sessions.PruneLoop(context.Background(), cfg.SessionTTL/2)
	}

	client := youtube.NewClient()
	server := web.NewServer(client, provider, sessions,
		web.WithLanguage(cfg.Language),
		web.WithLogger(logger),
		web.WithTitleResolver(client),
	)

	logger.Info("starting transcripto",
		slog.String("addr", cfg.Addr),
		slog.String("provider", provider.String()),
		slog.String("language", cfg.Language),
	)
	if err := http.ListenAndServe(cfg.Addr, server); err != nil {
		logger.Error("server failed", slog.Any("error", err))
		os.Exit(1)
	}
}
