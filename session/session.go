// Package session holds per-visitor state for the lifetime of one browsing
// session: at most one transcript and one summary, latest fetch wins.
package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ErrNoTranscriptHeld is returned when a summary is stored without a
// transcript backing it. A summary can only exist alongside the transcript
// it was generated from.
var ErrNoTranscriptHeld = errors.New("no transcript held by session")

// Flash kinds for one-shot user-facing notices.
const (
	FlashError   = "error"
	FlashWarning = "warning"
	FlashSuccess = "success"
)

// Flash is a one-shot notice shown on the next page render.
type Flash struct {
	Kind string
	Text string
}

// Meta is presentation metadata captured at fetch time alongside the
// transcript: video title and caption statistics.
type Meta struct {
	Title              string
	Segments           int
	Words              int
	MeanSegmentSeconds float64
	TotalSeconds       float64
}

// State is the two-key store behind one browser session.
type State struct {
	mu            sync.Mutex
	transcript    string
	summary       string
	meta          Meta
	hasTranscript bool
	hasSummary    bool
	flash         *Flash
	lastUsed      time.Time
}

func newState() *State {
	return &State{lastUsed: time.Now()}
}

func (s *State) touch() {
	s.lastUsed = time.Now()
}

// Reset discards the transcript, summary and metadata. Each new URL
// submission resets the session before repopulating it.
func (s *State) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transcript = ""
	s.summary = ""
	s.meta = Meta{}
	s.hasTranscript = false
	s.hasSummary = false
	s.touch()
}

// SetTranscript stores a freshly fetched transcript, discarding any prior
// summary: the old summary described the old transcript.
func (s *State) SetTranscript(text string, meta Meta) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transcript = text
	s.meta = meta
	s.hasTranscript = true
	s.summary = ""
	s.hasSummary = false
	s.touch()
}

// Transcript returns the stored transcript, if any.
func (s *State) Transcript() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	return s.transcript, s.hasTranscript
}

// SetSummary stores a generated summary. It fails when no transcript is
// held, preserving the invariant that a summary never outlives or precedes
// its transcript.
func (s *State) SetSummary(text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.hasTranscript {
		return ErrNoTranscriptHeld
	}
	s.summary = text
	s.hasSummary = true
	s.touch()
	return nil
}

// Summary returns the stored summary, if any.
func (s *State) Summary() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	return s.summary, s.hasSummary
}

// Meta returns the metadata captured with the current transcript.
func (s *State) Meta() (Meta, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.meta, s.hasTranscript
}

// SetFlash stores a one-shot notice, replacing any pending one.
func (s *State) SetFlash(kind, text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.flash = &Flash{Kind: kind, Text: text}
	s.touch()
}

// TakeFlash returns the pending notice and clears it.
func (s *State) TakeFlash() *Flash {
	s.mu.Lock()
	defer s.mu.Unlock()
	f := s.flash
	s.flash = nil
	return f
}

func (s *State) idleSince(now time.Time, ttl time.Duration) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return now.Sub(s.lastUsed) > ttl
}

// Store maps session IDs to their state. Sessions are isolated from each
// other; the store's lock only guards the map itself.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*State
	ttl      time.Duration
}

// NewStore creates a session store whose sessions expire after ttl of
// inactivity. A non-positive ttl disables expiry.
func NewStore(ttl time.Duration) *Store {
	return &Store{
		sessions: make(map[string]*State),
		ttl:      ttl,
	}
}

// New creates a fresh session and returns its ID.
func (st *Store) New() (string, *State) {
	id := uuid.NewString()
	state := newState()
	st.mu.Lock()
	st.sessions[id] = state
	st.mu.Unlock()
	return id, state
}

// Get returns the session for id, if it exists.
func (st *Store) Get(id string) (*State, bool) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	state, ok := st.sessions[id]
	return state, ok
}

// Len returns the number of live sessions.
func (st *Store) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}

// Prune drops sessions idle longer than the store's TTL and returns how
// many were removed.
func (st *Store) Prune(now time.Time) int {
	if st.ttl <= 0 {
		return 0
	}

	st.mu.Lock()
	defer st.mu.Unlock()
	removed := 0
	for id, state := range st.sessions {
		if state.idleSince(now, st.ttl) {
			delete(st.sessions, id)
			removed++
		}
	}
	return removed
}

// PruneLoop prunes idle sessions every interval until ctx is done.
func (st *Store) PruneLoop(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			st.Prune(now)
		}
	}
}
