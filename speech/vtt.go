package speech

import (
	"bufio"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Cue is one word-level subtitle cue in seconds.
type Cue struct {
	Start float64
	End   float64
	Text  string
}

var (
	cueTimeRegex = regexp.MustCompile(`(\d{2}:\d{2}:\d{2}\.\d{3})\s+-->\s+(\d{2}:\d{2}:\d{2}\.\d{3})`)
	vttTagRegex  = regexp.MustCompile(`<[^>]*>`)
)

// ParseVTT extracts cues from WebVTT text. Formatting tags are stripped
// and multi-line cue payloads joined with spaces.
func ParseVTT(data string) ([]Cue, error) {
	var cues []Cue
	scanner := bufio.NewScanner(strings.NewReader(data))

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		m := cueTimeRegex.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		start, err1 := parseVTTTime(m[1])
		end, err2 := parseVTTTime(m[2])
		if err1 != nil || err2 != nil {
			continue
		}

		var textLines []string
		for scanner.Scan() {
			textLine := strings.TrimSpace(scanner.Text())
			if textLine == "" {
				break
			}
			if clean := vttTagRegex.ReplaceAllString(textLine, ""); clean != "" {
				textLines = append(textLines, clean)
			}
		}
		if len(textLines) > 0 {
			cues = append(cues, Cue{Start: start, End: end, Text: strings.Join(textLines, " ")})
		}
	}
	return cues, scanner.Err()
}

// parseVTTTime converts "HH:MM:SS.mmm" to seconds.
func parseVTTTime(s string) (float64, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 3 {
		return 0, fmt.Errorf("invalid timestamp %q", s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("invalid hours in %q", s)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("invalid minutes in %q", s)
	}
	sec, err := strconv.ParseFloat(parts[2], 64)
	if err != nil {
		return 0, fmt.Errorf("invalid seconds in %q", s)
	}
	return float64(h*3600+m*60) + sec, nil
}
