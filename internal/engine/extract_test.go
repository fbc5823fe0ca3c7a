package engine

import "testing"

func TestExtractVideoID(t *testing.T) {
	tests := []struct {
		name  string
		url   string
		want  string
		found bool
	}{
		{
			name:  "canonical watch URL",
			url:   "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
			want:  "dQw4w9WgXcQ",
			found: true,
		},
		{
			name:  "short youtu.be link",
			url:   "https://youtu.be/dQw4w9WgXcQ",
			want:  "dQw4w9WgXcQ",
			found: true,
		},
		{
			name:  "embed link",
			url:   "https://www.youtube.com/embed/dQw4w9WgXcQ",
			want:  "dQw4w9WgXcQ",
			found: true,
		},
		{
			name:  "extra query parameters after the id",
			url:   "https://www.youtube.com/watch?v=dQw4w9WgXcQ&t=42s&list=PL123",
			want:  "dQw4w9WgXcQ",
			found: true,
		},
		{
			name:  "shorts path segment",
			url:   "https://www.youtube.com/shorts/dQw4w9WgXcQ",
			want:  "dQw4w9WgXcQ",
			found: true,
		},
		{
			name:  "youtu.be with query string",
			url:   "https://youtu.be/dQw4w9WgXcQ?si=abcdef",
			want:  "dQw4w9WgXcQ",
			found: true,
		},
		{
			name:  "case preserved",
			url:   "https://www.youtube.com/watch?v=AbCdEfGhIjK",
			want:  "AbCdEfGhIjK",
			found: true,
		},
		{
			name:  "id with dash and underscore",
			url:   "https://youtu.be/a-b_c-d_e-f",
			want:  "a-b_c-d_e-f",
			found: true,
		},
		{
			name:  "first match wins across candidates",
			url:   "https://www.youtube.com/watch?v=AAAAAAAAAAA&next=BBBBBBBBBBB",
			want:  "AAAAAAAAAAA",
			found: true,
		},
		{
			name:  "not a url",
			url:   "not a url",
			found: false,
		},
		{
			name:  "empty string",
			url:   "",
			found: false,
		},
		{
			name:  "run longer than 11 chars",
			url:   "https://www.youtube.com/watch?v=dQw4w9WgXcQQ",
			found: false,
		},
		{
			name:  "run shorter than 11 chars",
			url:   "https://www.youtube.com/watch?v=short12345",
			found: false,
		},
		{
			name:  "bare id without separator",
			url:   "dQw4w9WgXcQ",
			found: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, found := ExtractVideoID(tt.url)
			if found != tt.found {
				t.Fatalf("ExtractVideoID(%q) found = %v, want %v", tt.url, found, tt.found)
			}
			if found && got != tt.want {
				t.Errorf("ExtractVideoID(%q) = %q, want %q", tt.url, got, tt.want)
			}
		})
	}
}
