package stagestate

import (
	"math"
	"strings"

	"clipcast/project"
)

// Typography line reveal: each line slides in from an alternating side,
// staggered per line, fully settled after lineSlideDur.
const (
	lineStagger  = 0.1
	lineSlideDur = 0.6
	lineSlidePx  = 100.0
)

// typography renders the staggered-typography clip: massive title lines
// sliding in one after another, alternating entry side.
func typography(clip project.Clip, t float64) State {
	st := State{Phase: PhaseVisible, ContentVisible: true}
	if clip.Title == "" {
		return st
	}

	raw := strings.Split(clip.Title, "\n")
	st.Lines = make([]Line, len(raw))
	for i, text := range raw {
		progress := clamp01((t - float64(i)*lineStagger) / lineSlideDur)
		eased := easeOutCubic(progress)

		offset := (1 - eased) * lineSlidePx
		if i%2 != 0 {
			offset = -offset
		}
		st.Lines[i] = Line{Text: text, OffsetX: -offset, Opacity: eased}
	}
	return st
}

func easeOutCubic(t float64) float64 {
	return 1 - math.Pow(1-t, 3)
}
