package sources

import (
	"github.com/anatolykoptev/go_transcript/internal/engine"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"strings"

	xhtml "golang.org/x/net/html"
)

// Timedtext XML caption format served from caption track base URLs.

type ytTimedText struct {
	Lines []ytTimedLine `xml:"text"`
}

type ytTimedLine struct {
	Start    float64 `xml:"start,attr"`
	Duration float64 `xml:"dur,attr"`
	Text     string  `xml:",chardata"`
}

// fetchTimedText fetches and parses a YouTube timedtext XML caption URL
// into ordered segments.
func fetchTimedText(ctx context.Context, baseURL string) ([]engine.Segment, error) {
	if err := engine.WaitOutbound(ctx); err != nil {
		return nil, err
	}
	resp, err := engine.RetryHTTP(ctx, engine.DefaultRetryConfig, func() (*http.Response, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("User-Agent", engine.UserAgentBot)
		return engine.Cfg.HTTPClient.Do(req)
	})
	if err != nil {
		return nil, fmt.Errorf("fetch timedtext: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 512*1024))
	if err != nil {
		return nil, err
	}
	return parseTimedText(body)
}

func parseTimedText(body []byte) ([]engine.Segment, error) {
	var tt ytTimedText
	if err := xml.Unmarshal(body, &tt); err != nil {
		return nil, fmt.Errorf("parse timedtext XML: %w", err)
	}

	segments := make([]engine.Segment, 0, len(tt.Lines))
	for _, line := range tt.Lines {
		text := cleanCaption(line.Text)
		if text == "" {
			continue
		}
		segments = append(segments, engine.Segment{
			Text:     text,
			Start:    line.Start,
			Duration: line.Duration,
		})
	}
	return segments, nil
}

// cleanCaption strips inline caption markup (<i>, <b>, <font>) and
// collapses whitespace. Tokenizing handles nested and unclosed caption
// tags that regex stripping chokes on.
func cleanCaption(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}

	var sb strings.Builder
	tok := xhtml.NewTokenizer(strings.NewReader(s))
	for {
		tt := tok.Next()
		if tt == xhtml.ErrorToken {
			break
		}
		if tt == xhtml.TextToken {
			sb.Write(tok.Text())
		}
	}

	out := strings.Join(strings.Fields(sb.String()), " ")
	return out
}
