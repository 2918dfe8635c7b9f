// Package web is the HTTP presentation layer: one page, one pipeline
// action, two plain-text downloads.
package web

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/stayharshit/Transcripto/session"
	"github.com/stayharshit/Transcripto/youtube"
)

//go:embed index.html.tmpl
var templateFS embed.FS

const sessionCookie = "transcripto_session"

// TranscriptFetcher retrieves the caption transcript of one video.
type TranscriptFetcher interface {
	Fetch(ctx context.Context, videoID, language string) (*youtube.Transcript, error)
}

// Summarizer produces a summary from transcript text.
type Summarizer interface {
	GenerateFromInput(ctx context.Context, input string) (string, error)
}

// TitleResolver looks up video metadata. Optional; a nil resolver simply
// leaves the title blank.
type TitleResolver interface {
	VideoTitle(ctx context.Context, videoID string) (string, error)
}

type Server struct {
	fetcher    TranscriptFetcher
	summarizer Summarizer
	titles     TitleResolver
	sessions   *session.Store
	language   string
	logger     *slog.Logger
	tmpl       *template.Template
	mux        *http.ServeMux
}

// Option configures the Server.
type Option func(*Server)

// WithLanguage sets the preferred caption language (default "en").
func WithLanguage(language string) Option {
	return func(s *Server) {
		s.language = language
	}
}

// WithLogger replaces the default logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithTitleResolver enables best-effort video title lookup.
func WithTitleResolver(titles TitleResolver) Option {
	return func(s *Server) {
		s.titles = titles
	}
}

// NewServer wires the pipeline components behind the HTTP routes.
func NewServer(fetcher TranscriptFetcher, summarizer Summarizer, sessions *session.Store, options ...Option) *Server {
	s := &Server{
		fetcher:    fetcher,
		summarizer: summarizer,
		sessions:   sessions,
		language:   "en",
		logger:     slog.Default(),
		tmpl:       template.Must(template.ParseFS(templateFS, "index.html.tmpl")),
	}
	for _, opt := range options {
		opt(s)
	}

	s.mux = http.NewServeMux()
	s.mux.HandleFunc("/", s.handleIndex)
	s.mux.HandleFunc("/summarize", s.handleSummarize)
	s.mux.HandleFunc("/download/transcript.txt", s.handleDownloadTranscript)
	s.mux.HandleFunc("/download/summary.txt", s.handleDownloadSummary)
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	s.mux.ServeHTTP(w, r)
	s.logger.Debug("request",
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.Duration("took", time.Since(start)),
	)
}

// state resolves the visitor's session from the cookie, creating a new
// session (and setting the cookie) when none exists.
func (s *Server) state(w http.ResponseWriter, r *http.Request) *session.State {
	if c, err := r.Cookie(sessionCookie); err == nil {
		if state, ok := s.sessions.Get(c.Value); ok {
			return state
		}
	}

	id, state := s.sessions.New()
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return state
}

type pageView struct {
	Flash         *session.Flash
	HasTranscript bool
	Transcript    string
	HasSummary    bool
	Summary       string
	Meta          session.Meta
	Language      string
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	state := s.state(w, r)
	view := pageView{
		Flash:    state.TakeFlash(),
		Language: s.language,
	}
	view.Transcript, view.HasTranscript = state.Transcript()
	view.Summary, view.HasSummary = state.Summary()
	view.Meta, _ = state.Meta()

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.tmpl.Execute(w, view); err != nil {
		s.logger.Error("rendering page", slog.Any("error", err))
	}
}

// handleSummarize runs the whole pipeline for one submitted URL: extract
// the video ID, fetch the transcript, then summarize exactly once. Every
// failure is converted to a flash message here; nothing propagates and no
// failure ends the session.
func (s *Server) handleSummarize(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	state := s.state(w, r)
	url := strings.TrimSpace(r.FormValue("url"))
	if url == "" {
		state.SetFlash(session.FlashError, "Paste a YouTube link first.")
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	videoID, ok := youtube.ExtractVideoID(url)
	if !ok {
		state.SetFlash(session.FlashError, "Invalid YouTube URL.")
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	// A new submission discards the prior transcript and summary before
	// the fetch is even attempted.
	state.Reset()

	ctx := r.Context()
	transcript, err := s.fetcher.Fetch(ctx, videoID, s.language)
	if err != nil {
		s.logger.Warn("transcript fetch failed",
			slog.String("video_id", videoID),
			slog.Any("error", err),
		)
		state.SetFlash(session.FlashError, s.fetchFailureMessage(err))
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	state.SetTranscript(transcript.Text(), s.transcriptMeta(ctx, transcript))
	s.logger.Info("transcript fetched",
		slog.String("video_id", videoID),
		slog.Int("segments", len(transcript.Segments)),
	)

	// Summarization runs exactly once per successful fetch. Its failure is
	// non-fatal: the transcript stays stored and displayable.
	generated, err := s.summarizer.GenerateFromInput(ctx, transcript.Text())
	if err != nil {
		s.logger.Warn("summary generation failed",
			slog.String("video_id", videoID),
			slog.Any("error", err),
		)
		state.SetFlash(session.FlashWarning, "Transcript fetched, but the AI summary could not be generated. Please try again later.")
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	if err := state.SetSummary(generated); err != nil {
		s.logger.Error("storing summary", slog.Any("error", err))
	}
	state.SetFlash(session.FlashSuccess, "Transcript fetched successfully!")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) fetchFailureMessage(err error) string {
	var disabled *youtube.ErrTranscriptsDisabled
	var missing *youtube.ErrNoTranscript
	var failed *youtube.ErrFetchFailed
	switch {
	case errors.As(err, &disabled):
		return "No transcript found (captions are disabled for this video)."
	case errors.As(err, &missing):
		return fmt.Sprintf("No %q transcript found for this video.", s.language)
	case errors.As(err, &failed):
		return fmt.Sprintf("An unexpected error occurred: %v", failed.Cause)
	default:
		return fmt.Sprintf("An unexpected error occurred: %v", err)
	}
}

func (s *Server) transcriptMeta(ctx context.Context, transcript *youtube.Transcript) session.Meta {
	stats := transcript.Stats()
	meta := session.Meta{
		Segments:           stats.Segments,
		Words:              stats.Words,
		MeanSegmentSeconds: stats.MeanSegmentSeconds,
		TotalSeconds:       stats.TotalSeconds,
	}
	if s.titles != nil {
		if title, err := s.titles.VideoTitle(ctx, transcript.VideoID); err == nil {
			meta.Title = title
		}
	}
	return meta
}

func (s *Server) handleDownloadTranscript(w http.ResponseWriter, r *http.Request) {
	text, ok := s.state(w, r).Transcript()
	if !ok {
		http.NotFound(w, r)
		return
	}
	serveText(w, "transcript.txt", text)
}

func (s *Server) handleDownloadSummary(w http.ResponseWriter, r *http.Request) {
	text, ok := s.state(w, r).Summary()
	if !ok {
		http.NotFound(w, r)
		return
	}
	serveText(w, "summary.txt", text)
}

// serveText writes the stored value byte-for-byte as a plain-text
// attachment.
func serveText(w http.ResponseWriter, filename, text string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	io.WriteString(w, text)
}
