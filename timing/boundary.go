package timing

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// TicksPerSecond is the unit of speech-boundary offsets: 100ns ticks.
const TicksPerSecond = 10000000.0

const (
	// trailingPad extends a clip past the last spoken word so the final
	// word is never clipped by the cut to the next clip.
	trailingPad = 0.5

	// FallbackDuration is used when a clip has no usable timing metadata.
	FallbackDuration = 4.0
)

// Boundary is one speech-boundary event with offsets converted to seconds.
type Boundary struct {
	Text     string
	Offset   float64
	Duration float64
}

// Map holds normalized spoken tokens mapped to their first-occurrence
// offset in seconds within a clip's narration.
type Map map[string]float64

// rawEvent covers both metadata shapes the TTS pipeline emits: a flat
// event object, or an envelope with a Metadata array wrapping the event.
type rawEvent struct {
	Type     string `json:"Type"`
	Offset   int64  `json:"Offset"`
	Duration int64  `json:"Duration"`
	TextStr  string `json:"Text"`
	TextObj  struct {
		Text string `json:"Text"`
	} `json:"text"`
	Metadata []struct {
		Type string `json:"Type"`
		Data struct {
			Offset   int64  `json:"Offset"`
			Duration int64  `json:"Duration"`
			TextStr  string `json:"Text"`
			TextObj  struct {
				Text string `json:"Text"`
			} `json:"text"`
		} `json:"Data"`
	} `json:"Metadata"`
}

// ParseBoundaries decodes speech-boundary metadata JSON into ordered
// word-boundary events. Non-word entries are skipped.
func ParseBoundaries(data []byte) ([]Boundary, error) {
	var raw []rawEvent
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse boundary metadata: %w", err)
	}

	var events []Boundary
	for _, item := range raw {
		typ := item.Type
		offset := item.Offset
		duration := item.Duration
		text := item.TextObj.Text
		if text == "" {
			text = item.TextStr
		}

		if len(item.Metadata) > 0 {
			entry := item.Metadata[0]
			typ = entry.Type
			offset = entry.Data.Offset
			duration = entry.Data.Duration
			text = entry.Data.TextObj.Text
			if text == "" {
				text = entry.Data.TextStr
			}
		}

		if typ != "WordBoundary" {
			continue
		}
		events = append(events, Boundary{
			Text:     text,
			Offset:   float64(offset) / TicksPerSecond,
			Duration: float64(duration) / TicksPerSecond,
		})
	}
	return events, nil
}

// BuildMap folds boundary events into a token timing map. Ties keep the
// smaller offset, so repeated words resolve to their first occurrence.
func BuildMap(events []Boundary) Map {
	m := make(Map)
	for _, ev := range events {
		token := Normalize(ev.Text)
		if token == "" {
			continue
		}
		if prev, ok := m[token]; !ok || ev.Offset < prev {
			m[token] = ev.Offset
		}
	}
	return m
}

// ClipDurationFrom derives the clip duration from its boundary events:
// end of the last spoken word plus a trailing pad. Zero events means no
// timing data and the caller should fall back.
func ClipDurationFrom(events []Boundary) (float64, bool) {
	if len(events) == 0 {
		return 0, false
	}
	last := events[len(events)-1]
	return last.Offset + last.Duration + trailingPad, true
}

// punctuation stripped during normalization. Covers Latin and CJK forms
// so "Code," and "code" collide to one key.
const punctuation = ".,!?;:'\"()[]{}<>，。！？；：“”‘’（）【】《》"

// Normalize lower-cases a token and strips whitespace and punctuation.
func Normalize(token string) string {
	token = strings.ToLower(token)
	return strings.Map(func(r rune) rune {
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' || r == '　' {
			return -1
		}
		if strings.ContainsRune(punctuation, r) {
			return -1
		}
		return r
	}, token)
}

// Resolve looks a token up in the map: exact match first, then the most
// lenient of prefix/suffix/substring matches in either direction, taking
// the minimum matched offset.
func (m Map) Resolve(token string) (float64, bool) {
	n := Normalize(token)
	if n == "" {
		return 0, false
	}
	if v, ok := m[n]; ok {
		return v, true
	}

	best := 0.0
	found := false
	for k, v := range m {
		if k == "" {
			continue
		}
		if strings.HasPrefix(k, n) || strings.HasPrefix(n, k) ||
			strings.Contains(k, n) || strings.Contains(n, k) {
			if !found || v < best {
				best = v
				found = true
			}
		}
	}
	return best, found
}

// LoadBoundaries reads and parses a per-clip metadata file.
func LoadBoundaries(path string) ([]Boundary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseBoundaries(data)
}
