package sources

import "testing"

func TestParseTimedText(t *testing.T) {
	body := []byte(`<?xml version="1.0" encoding="utf-8"?>
<transcript>
  <text start="0" dur="1.5">never gonna</text>
  <text start="1.5" dur="1.2">give you &amp;quot;up&amp;quot;</text>
  <text start="2.7" dur="0.3">   </text>
  <text start="3" dur="0.8">never gonna let</text>
</transcript>`)

	segments, err := parseTimedText(body)
	if err != nil {
		t.Fatalf("parseTimedText: %v", err)
	}
	if len(segments) != 3 {
		t.Fatalf("got %d segments, want 3 (blank line dropped)", len(segments))
	}
	if segments[0].Text != "never gonna" || segments[0].Start != 0 || segments[0].Duration != 1.5 {
		t.Errorf("segment[0] = %+v", segments[0])
	}
	if segments[1].Start != 1.5 {
		t.Errorf("segment[1].Start = %v", segments[1].Start)
	}
	if segments[2].Text != "never gonna let" {
		t.Errorf("segment[2].Text = %q", segments[2].Text)
	}
}

func TestParseTimedTextInvalidXML(t *testing.T) {
	if _, err := parseTimedText([]byte("<transcript><text")); err == nil {
		t.Error("expected error for truncated XML")
	}
}

func TestCleanCaption(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "plain text", in: "hello world", want: "hello world"},
		{name: "italic markup stripped", in: "hello <i>world</i>", want: "hello world"},
		{name: "nested and unclosed tags", in: "<font color=\"#fff\"><b>loud <i>text</b>", want: "loud text"},
		{name: "entity decoded", in: "rock &amp; roll", want: "rock & roll"},
		{name: "whitespace collapsed", in: "  two\n lines ", want: "two lines"},
		{name: "empty", in: "   ", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cleanCaption(tt.in); got != tt.want {
				t.Errorf("cleanCaption(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
