package youtube

import (
	"context"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"html"
	"io"
	"net/http"
	"strings"
	"time"

	ytdl "github.com/kkdai/youtube/v2"
)

const defaultWatchBase = "https://www.youtube.com"

// Desktop user agent; the watch page serves a different payload to
// unidentified clients.
const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// Client retrieves caption transcripts from YouTube watch pages.
type Client struct {
	httpClient *http.Client
	watchBase  string
	meta       *ytdl.Client
}

// ClientOption defines a function to configure the Client.
type ClientOption func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithBaseURL replaces the watch page origin, e.g. to route through a
// mirror or a local test server.
func WithBaseURL(base string) ClientOption {
	return func(c *Client) {
		c.watchBase = strings.TrimSuffix(base, "/")
	}
}

// NewClient creates a new transcript client.
func NewClient(options ...ClientOption) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		watchBase:  defaultWatchBase,
	}
	for _, opt := range options {
		opt(c)
	}
	c.meta = &ytdl.Client{HTTPClient: c.httpClient}
	return c
}

// Segment is one timed caption entry.
type Segment struct {
	Text     string
	Start    float64
	Duration float64
}

// Transcript is the ordered caption track of one video in one language.
type Transcript struct {
	VideoID  string
	Language string
	Segments []Segment
}

// Text joins all segment texts with single spaces, preserving source order.
func (t *Transcript) Text() string {
	parts := make([]string, 0, len(t.Segments))
	for _, s := range t.Segments {
		parts = append(parts, s.Text)
	}
	return strings.Join(parts, " ")
}

// captionsRenderer mirrors the caption section of ytInitialPlayerResponse.
type captionsRenderer struct {
	PlayerCaptionsTracklistRenderer struct {
		CaptionTracks []struct {
			BaseURL      string `json:"baseUrl"`
			LanguageCode string `json:"languageCode"`
			Kind         string `json:"kind"`
		} `json:"captionTracks"`
	} `json:"playerCaptionsTracklistRenderer"`
}

// Fetch retrieves the caption transcript of videoID in the requested
// language. Language matching is a prefix match, so "en" accepts "en-US".
//
// Failures are classified: *ErrTranscriptsDisabled when the video has no
// caption section, *ErrNoTranscript when no track matches the language,
// *ErrFetchFailed for everything else.
func (c *Client) Fetch(ctx context.Context, videoID, language string) (*Transcript, error) {
	page, err := c.fetchWatchPage(ctx, videoID)
	if err != nil {
		return nil, &ErrFetchFailed{VideoID: videoID, Cause: err}
	}

	captionsJSON, ok := extractCaptionsJSON(page)
	if !ok {
		return nil, &ErrTranscriptsDisabled{VideoID: videoID}
	}

	var captions captionsRenderer
	if err := json.Unmarshal([]byte(captionsJSON), &captions); err != nil {
		return nil, &ErrFetchFailed{VideoID: videoID, Cause: fmt.Errorf("parsing captions JSON: %w", err)}
	}

	tracks := captions.PlayerCaptionsTracklistRenderer.CaptionTracks
	if len(tracks) == 0 {
		return nil, &ErrTranscriptsDisabled{VideoID: videoID}
	}

	baseURL := ""
	for _, track := range tracks {
		if strings.HasPrefix(track.LanguageCode, language) {
			baseURL = track.BaseURL
			break
		}
	}
	if baseURL == "" {
		return nil, &ErrNoTranscript{VideoID: videoID, Language: language}
	}

	segments, err := c.fetchTimedText(ctx, baseURL)
	if err != nil {
		return nil, &ErrFetchFailed{VideoID: videoID, Cause: err}
	}

	return &Transcript{VideoID: videoID, Language: language, Segments: segments}, nil
}

func (c *Client) fetchWatchPage(ctx context.Context, videoID string) (string, error) {
	watchURL := fmt.Sprintf("%s/watch?v=%s", c.watchBase, videoID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, watchURL, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetching watch page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("watch page returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading watch page: %w", err)
	}

	return string(body), nil
}

// extractCaptionsJSON locates the "captions" object inside the inlined
// player response by matching braces from its opening one. A missing
// marker means the video has no captions at all.
func extractCaptionsJSON(page string) (string, bool) {
	startIndex := strings.Index(page, `"captions":`)
	if startIndex == -1 {
		return "", false
	}

	jsonStart := strings.Index(page[startIndex:], "{")
	if jsonStart == -1 {
		return "", false
	}
	jsonStart += startIndex

	braceCount := 1
	for i := jsonStart + 1; i < len(page); i++ {
		switch page[i] {
		case '{':
			braceCount++
		case '}':
			braceCount--
			if braceCount == 0 {
				return page[jsonStart : i+1], true
			}
		}
	}

	return "", false
}

func (c *Client) fetchTimedText(ctx context.Context, baseURL string) ([]Segment, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching timed text: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("timed text returned status %d", resp.StatusCode)
	}

	var timedText struct {
		XMLName xml.Name `xml:"transcript"`
		Texts   []struct {
			Start float64 `xml:"start,attr"`
			Dur   float64 `xml:"dur,attr"`
			Text  string  `xml:",chardata"`
		} `xml:"text"`
	}
	if err := xml.NewDecoder(resp.Body).Decode(&timedText); err != nil {
		return nil, fmt.Errorf("decoding timed text: %w", err)
	}

	segments := make([]Segment, 0, len(timedText.Texts))
	for _, text := range timedText.Texts {
		segments = append(segments, Segment{
			Text:     html.UnescapeString(text.Text),
			Start:    text.Start,
			Duration: text.Dur,
		})
	}

	return segments, nil
}
