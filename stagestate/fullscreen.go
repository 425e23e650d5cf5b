package stagestate

import (
	"math"

	"clipcast/project"
)

// fullScreen renders the full-screen media carousel: media items in
// round-robin with a crossfade at each segment tail, a typed title and
// a fixed-speed underline reveal on top.
func fullScreen(clip project.Clip, t, total float64) State {
	st := State{Phase: PhaseVisible, ContentVisible: true}

	chars := clip.TitleChars()
	cps := typingSpeed(chars, 16, 44, 1.1)
	st.VisibleChars = visibleCharCount(chars, t, cps)
	st.TypedLines = buildTypedLines(clip.Title, st.VisibleChars)
	st.CaretVisible = caretVisible(chars, st.VisibleChars, t)

	// Underline grows linearly over a fixed 0.8s starting at 0.4s,
	// independent of clip duration.
	st.Underline = clamp01((t - 0.4) / 0.8)

	st.MediaLayers = carouselLayers(len(clip.Media), t, total)
	return st
}

// carouselLayers computes the visible media layers and their crossfade
// weights. Inside a crossfade window the outgoing and incoming opacities
// always sum to 1.
func carouselLayers(count int, t, total float64) []MediaLayer {
	if count == 0 {
		return nil
	}
	if total <= 0 {
		return []MediaLayer{{Index: 0, Opacity: 1}}
	}

	segment := total / float64(count)
	idx := int(math.Floor(t / segment))
	if idx < 0 {
		idx = 0
	}
	if idx > count-1 {
		idx = count - 1
	}
	if count == 1 {
		return []MediaLayer{{Index: idx, Opacity: 1}}
	}

	inSegment := t - float64(idx)*segment
	window := clamp(segment*0.25, 0.15, 0.8)
	fadeStart := segment - window

	// The last segment holds instead of fading out.
	if idx < count-1 && inSegment >= fadeStart {
		p := clamp01((inSegment - fadeStart) / window)
		return []MediaLayer{
			{Index: idx, Opacity: 1 - p},
			{Index: idx + 1, Opacity: p},
		}
	}
	return []MediaLayer{{Index: idx, Opacity: 1}}
}
