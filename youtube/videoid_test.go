package youtube

import "testing"

func TestExtractVideoID(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
		found bool
	}{
		{
			name:  "watch URL",
			input: "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
			want:  "dQw4w9WgXcQ",
			found: true,
		},
		{
			name:  "short URL",
			input: "https://youtu.be/dQw4w9WgXcQ",
			want:  "dQw4w9WgXcQ",
			found: true,
		},
		{
			name:  "legacy embed path",
			input: "https://www.youtube.com/v/dQw4w9WgXcQ",
			want:  "dQw4w9WgXcQ",
			found: true,
		},
		{
			name:  "watch URL with extra query parameters",
			input: "https://www.youtube.com/watch?v=dQw4w9WgXcQ&t=123&list=PL0",
			want:  "dQw4w9WgXcQ",
			found: true,
		},
		{
			name:  "marker buried in arbitrary text",
			input: "check this out v=dQw4w9WgXcQ wow",
			want:  "dQw4w9WgXcQ",
			found: true,
		},
		{
			name:  "not a url",
			input: "not a url",
			found: false,
		},
		{
			name:  "empty string",
			input: "",
			found: false,
		},
		{
			name:  "id too short",
			input: "https://youtu.be/shortid",
			found: false,
		},
		{
			name:  "bare id without marker",
			input: "dQw4w9WgXcQ",
			found: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, found := ExtractVideoID(tt.input)
			if found != tt.found {
				t.Fatalf("ExtractVideoID(%q) found = %v; want %v", tt.input, found, tt.found)
			}
			if got != tt.want {
				t.Errorf("ExtractVideoID(%q) = %q; want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestExtractVideoID_Idempotent(t *testing.T) {
	input := "https://www.youtube.com/watch?v=dQw4w9WgXcQ"
	first, ok1 := ExtractVideoID(input)
	second, ok2 := ExtractVideoID(input)
	if first != second || ok1 != ok2 {
		t.Errorf("repeated calls disagree: (%q,%v) vs (%q,%v)", first, ok1, second, ok2)
	}
}
