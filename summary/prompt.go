package summary

// TranscriptPrompts carries the instruction used for every summary request.
// The transcript text is substituted into the user template verbatim.
type TranscriptPrompts struct{}

func (TranscriptPrompts) SystemPrompt() string {
	return "You are a helpful assistant that summarizes transcripts."
}

func (TranscriptPrompts) UserPrompt() string {
	return "%s"
}

func (TranscriptPrompts) String() string {
	return "transcript"
}
