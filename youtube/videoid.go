package youtube

import "regexp"

// videoIDPattern matches the three URL shapes that carry a video ID:
// watch?v=<id>, youtu.be/<id> and the legacy /v/<id> embed path.
var videoIDPattern = regexp.MustCompile(`(?:v=|youtu\.be/|/v/)([0-9A-Za-z_-]{11})`)

// ExtractVideoID searches url for an 11-character YouTube video ID and
// returns the first one found. The second return value is false when no ID
// is present; arbitrary non-URL input is a normal outcome, not an error.
func ExtractVideoID(url string) (string, bool) {
	m := videoIDPattern.FindStringSubmatch(url)
	if m == nil {
		return "", false
	}
	return m[1], true
}
