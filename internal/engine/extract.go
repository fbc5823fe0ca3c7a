package engine

import "regexp"

// Video IDs are exactly 11 characters of [0-9A-Za-z_-]. Each pattern
// requires a non-ID character (or end of string) after the run so a
// 12-character run never matches its first 11 characters.
//
// Order matters: the generic v=/path rule is tried first, then the
// youtu.be and embed shapes. First matching rule wins, first match
// within a rule wins.
var videoIDPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:v=|/)([0-9A-Za-z_-]{11})(?:[^0-9A-Za-z_-]|$)`),
	regexp.MustCompile(`youtu\.be/([0-9A-Za-z_-]{11})(?:[^0-9A-Za-z_-]|$)`),
	regexp.MustCompile(`embed/([0-9A-Za-z_-]{11})(?:[^0-9A-Za-z_-]|$)`),
}

// ExtractVideoID pulls the 11-character video ID out of an arbitrary
// input string. Handles watch?v=ID, youtu.be/ID, embed/ID and any path
// segment directly preceding the ID. Returns false when nothing matches.
func ExtractVideoID(rawURL string) (string, bool) {
	for _, re := range videoIDPatterns {
		if m := re.FindStringSubmatch(rawURL); len(m) >= 2 {
			return m[1], true
		}
	}
	return "", false
}
