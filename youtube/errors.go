package youtube

import "fmt"

// ErrTranscriptsDisabled means the creator turned captions off entirely:
// the player response carries no caption section at all.
type ErrTranscriptsDisabled struct {
	VideoID string
}

func (e *ErrTranscriptsDisabled) Error() string {
	return fmt.Sprintf("transcripts are disabled for video %s", e.VideoID)
}

// ErrNoTranscript means caption tracks exist but none matches the
// requested language.
type ErrNoTranscript struct {
	VideoID  string
	Language string
}

func (e *ErrNoTranscript) Error() string {
	return fmt.Sprintf("no %s transcript found for video %s", e.Language, e.VideoID)
}

// ErrFetchFailed wraps every other retrieval failure: network errors,
// unexpected HTTP statuses, malformed player JSON or caption XML.
type ErrFetchFailed struct {
	VideoID string
	Cause   error
}

func (e *ErrFetchFailed) Error() string {
	return fmt.Sprintf("fetching transcript for video %s: %v", e.VideoID, e.Cause)
}

func (e *ErrFetchFailed) Unwrap() error {
	return e.Cause
}
