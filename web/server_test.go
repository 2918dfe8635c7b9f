package web

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stayharshit/Transcripto/session"
	"github.com/stayharshit/Transcripto/youtube"
)

type stubFetcher struct {
	transcript *youtube.Transcript
	err        error
	calls      int
}

func (f *stubFetcher) Fetch(ctx context.Context, videoID, language string) (*youtube.Transcript, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.transcript, nil
}

type stubSummarizer struct {
	out   string
	err   error
	calls int
}

func (s *stubSummarizer) GenerateFromInput(ctx context.Context, input string) (string, error) {
	s.calls++
	if s.err != nil {
		return "", s.err
	}
	return s.out, nil
}

func helloWorldTranscript() *youtube.Transcript {
	return &youtube.Transcript{
		VideoID:  "dQw4w9WgXcQ",
		Language: "en",
		Segments: []youtube.Segment{
			{Text: "Hello", Start: 0, Duration: 1.5},
			{Text: "world", Start: 1.5, Duration: 2},
		},
	}
}

// newTestClient spins the server up behind httptest with a cookie jar so
// the session survives across requests like in a real browser.
func newTestClient(t *testing.T, fetcher TranscriptFetcher, summarizer Summarizer) (*httptest.Server, *http.Client) {
	t.Helper()
	server := NewServer(fetcher, summarizer, session.NewStore(time.Hour))
	srv := httptest.NewServer(server)
	t.Cleanup(srv.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return srv, &http.Client{Jar: jar}
}

func postURL(t *testing.T, client *http.Client, base, videoURL string) string {
	t.Helper()
	resp, err := client.PostForm(base+"/summarize", url.Values{"url": {videoURL}})
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	return string(body)
}

func get(t *testing.T, client *http.Client, rawURL string) (*http.Response, string) {
	t.Helper()
	resp, err := client.Get(rawURL)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(body)
}

func TestPipeline_Success(t *testing.T) {
	fetcher := &stubFetcher{transcript: helloWorldTranscript()}
	summarizer := &stubSummarizer{out: "a concise summary"}
	srv, client := newTestClient(t, fetcher, summarizer)

	body := postURL(t, client, srv.URL, "https://www.youtube.com/watch?v=dQw4w9WgXcQ")

	assert.Contains(t, body, "Hello world")
	assert.Contains(t, body, "a concise summary")
	assert.Contains(t, body, "Transcript fetched successfully!")
	assert.Equal(t, 1, fetcher.calls)
	assert.Equal(t, 1, summarizer.calls)

	// Re-rendering the page must not re-invoke the summarizer.
	_, body = get(t, client, srv.URL+"/")
	assert.Contains(t, body, "Hello world")
	assert.Equal(t, 1, summarizer.calls)
}

func TestPipeline_InvalidURL(t *testing.T) {
	fetcher := &stubFetcher{transcript: helloWorldTranscript()}
	summarizer := &stubSummarizer{out: "unused"}
	srv, client := newTestClient(t, fetcher, summarizer)

	body := postURL(t, client, srv.URL, "not a url")

	assert.Contains(t, body, "Invalid YouTube URL.")
	assert.Equal(t, 0, fetcher.calls, "fetcher must not run without a video ID")
	assert.Equal(t, 0, summarizer.calls)
}

func TestPipeline_TranscriptsDisabled(t *testing.T) {
	fetcher := &stubFetcher{err: &youtube.ErrTranscriptsDisabled{VideoID: "dQw4w9WgXcQ"}}
	summarizer := &stubSummarizer{out: "unused"}
	srv, client := newTestClient(t, fetcher, summarizer)

	body := postURL(t, client, srv.URL, "https://youtu.be/dQw4w9WgXcQ")

	assert.Contains(t, body, "captions are disabled")
	assert.Equal(t, 0, summarizer.calls, "summarizer must not run after a failed fetch")

	resp, _ := get(t, client, srv.URL+"/download/transcript.txt")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode, "transcript key must stay unset")
}

func TestPipeline_NoTranscriptForLanguage(t *testing.T) {
	fetcher := &stubFetcher{err: &youtube.ErrNoTranscript{VideoID: "dQw4w9WgXcQ", Language: "en"}}
	srv, client := newTestClient(t, fetcher, &stubSummarizer{})

	body := postURL(t, client, srv.URL, "https://youtu.be/dQw4w9WgXcQ")
	assert.Contains(t, body, "No &#34;en&#34; transcript found")
}

func TestPipeline_FetchFailureShowsCause(t *testing.T) {
	fetcher := &stubFetcher{err: &youtube.ErrFetchFailed{
		VideoID: "dQw4w9WgXcQ",
		Cause:   errors.New("connection reset"),
	}}
	srv, client := newTestClient(t, fetcher, &stubSummarizer{})

	body := postURL(t, client, srv.URL, "https://youtu.be/dQw4w9WgXcQ")
	assert.Contains(t, body, "An unexpected error occurred")
	assert.Contains(t, body, "connection reset")
}

func TestPipeline_SummarizerFailureKeepsTranscript(t *testing.T) {
	fetcher := &stubFetcher{transcript: helloWorldTranscript()}
	summarizer := &stubSummarizer{err: errors.New("quota exceeded")}
	srv, client := newTestClient(t, fetcher, summarizer)

	body := postURL(t, client, srv.URL, "https://youtu.be/dQw4w9WgXcQ")

	assert.Contains(t, body, "Hello world")
	assert.Contains(t, body, "could not be generated")

	resp, text := get(t, client, srv.URL+"/download/transcript.txt")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Hello world", text)

	resp, _ = get(t, client, srv.URL+"/download/summary.txt")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestDownloads_RoundTripBytes(t *testing.T) {
	transcript := &youtube.Transcript{
		VideoID:  "dQw4w9WgXcQ",
		Language: "en",
		Segments: []youtube.Segment{
			{Text: "naïve \"quoted\" text", Duration: 1},
			{Text: "and ümläuts", Start: 1, Duration: 1},
		},
	}
	fetcher := &stubFetcher{transcript: transcript}
	summarizer := &stubSummarizer{out: "summary with\nnewlines & ünïcode"}
	srv, client := newTestClient(t, fetcher, summarizer)

	postURL(t, client, srv.URL, "https://youtu.be/dQw4w9WgXcQ")

	resp, text := get(t, client, srv.URL+"/download/transcript.txt")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, transcript.Text(), text, "download must be byte-for-byte the stored value")
	assert.Equal(t, "text/plain; charset=utf-8", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "transcript.txt")

	resp, text = get(t, client, srv.URL+"/download/summary.txt")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "summary with\nnewlines & ünïcode", text)
}

func TestNewSubmissionDiscardsPriorState(t *testing.T) {
	fetcher := &stubFetcher{transcript: helloWorldTranscript()}
	summarizer := &stubSummarizer{out: "first summary"}
	srv, client := newTestClient(t, fetcher, summarizer)

	postURL(t, client, srv.URL, "https://youtu.be/dQw4w9WgXcQ")

	// Second submission fails to fetch; both keys must be gone afterwards.
	fetcher.err = &youtube.ErrTranscriptsDisabled{VideoID: "dQw4w9WgXcQ"}
	postURL(t, client, srv.URL, "https://youtu.be/dQw4w9WgXcQ")

	resp, _ := get(t, client, srv.URL+"/download/transcript.txt")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp, _ = get(t, client, srv.URL+"/download/summary.txt")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestEmptyURLSubmission(t *testing.T) {
	fetcher := &stubFetcher{transcript: helloWorldTranscript()}
	srv, client := newTestClient(t, fetcher, &stubSummarizer{})

	body := postURL(t, client, srv.URL, "   ")
	assert.Contains(t, body, "Paste a YouTube link first.")
	assert.Equal(t, 0, fetcher.calls)
}

func TestSessionsAreIsolatedBetweenVisitors(t *testing.T) {
	fetcher := &stubFetcher{transcript: helloWorldTranscript()}
	summarizer := &stubSummarizer{out: "a summary"}
	server := NewServer(fetcher, summarizer, session.NewStore(time.Hour))
	srv := httptest.NewServer(server)
	t.Cleanup(srv.Close)

	jarA, _ := cookiejar.New(nil)
	jarB, _ := cookiejar.New(nil)
	visitorA := &http.Client{Jar: jarA}
	visitorB := &http.Client{Jar: jarB}

	postURL(t, visitorA, srv.URL, "https://youtu.be/dQw4w9WgXcQ")

	resp, _ := get(t, visitorB, srv.URL+"/download/transcript.txt")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode, "visitor B must not see visitor A's transcript")
}

func TestIndex_UnknownPathIs404(t *testing.T) {
	srv, client := newTestClient(t, &stubFetcher{}, &stubSummarizer{})
	resp, _ := get(t, client, srv.URL+"/nope")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestFlashIsShownOnce(t *testing.T) {
	fetcher := &stubFetcher{err: &youtube.ErrTranscriptsDisabled{VideoID: "dQw4w9WgXcQ"}}
	srv, client := newTestClient(t, fetcher, &stubSummarizer{})

	body := postURL(t, client, srv.URL, "https://youtu.be/dQw4w9WgXcQ")
	require.Contains(t, body, "captions are disabled")

	_, body = get(t, client, srv.URL+"/")
	assert.False(t, strings.Contains(body, "captions are disabled"), "flash must not persist across renders")
}
