package engine

import (
	"strings"

	"github.com/anatolykoptev/go-kit/strutil"
)

// LanguageAll is the sentinel meaning "any available caption track".
const LanguageAll = "all"

// User-Agent for plain (non-stealth) outbound requests.
const UserAgentBot = "GoTranscript/1.0"

// LangPrefs converts a requested language code into the provider's
// preference list. Empty and "all" both mean no preference.
func LangPrefs(language string) []string {
	if language == "" || language == LanguageAll {
		return nil
	}
	return []string{language}
}

// JoinSegments concatenates segment texts with single spaces, in
// provider order, skipping empty segments.
func JoinSegments(segments []Segment) string {
	var sb strings.Builder
	for _, seg := range segments {
		if seg.Text == "" {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(seg.Text)
	}
	return sb.String()
}

// WordCount counts whitespace-delimited tokens.
func WordCount(s string) int {
	return len(strings.Fields(s))
}

// TruncateRunes caps s at limit runes, appending suffix if truncated.
// Safe for UTF-8 (Cyrillic, CJK, emoji).
func TruncateRunes(s string, limit int, suffix string) string {
	return strutil.TruncateWith(s, limit, suffix)
}
