package timing

import (
	"encoding/json"
	"os"
	"strings"
)

// Alignment is character-level speech alignment data, used by the
// document-spotlight clip to track how much narration has been spoken.
type Alignment struct {
	Characters          []string  `json:"characters"`
	CharacterStartTimes []float64 `json:"character_start_times_seconds"`
	CharacterEndTimes   []float64 `json:"character_end_times_seconds"`
}

// Valid reports whether the alignment carries usable character timing.
func (a *Alignment) Valid() bool {
	return a != nil && len(a.Characters) > 0 &&
		len(a.CharacterStartTimes) == len(a.Characters)
}

// SpokenUntil reconstructs the text spoken up to elapsed seconds t by
// walking the last character boundary at or before t.
func (a *Alignment) SpokenUntil(t float64) string {
	if !a.Valid() {
		return ""
	}
	last := -1
	for i, start := range a.CharacterStartTimes {
		if start <= t {
			last = i
		} else {
			break
		}
	}
	if last < 0 {
		return ""
	}
	return strings.Join(a.Characters[:last+1], "")
}

// ParseAlignment decodes character-alignment JSON. Returns nil when the
// data is not in alignment form (e.g. word-boundary metadata).
func ParseAlignment(data []byte) *Alignment {
	var a Alignment
	if err := json.Unmarshal(data, &a); err != nil {
		return nil
	}
	if !a.Valid() {
		return nil
	}
	return &a
}

// LoadAlignment reads a per-clip metadata file as character alignment.
func LoadAlignment(path string) *Alignment {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	return ParseAlignment(data)
}
