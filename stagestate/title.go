package stagestate

import (
	"clipcast/project"
	"clipcast/timing"
)

// Trigger-offset fallbacks for media items whose word has no timing
// entry: items appear staggered half a second apart after an initial
// beat. The 0.4s lead compensates for TTS boundary latency.
const (
	triggerStagger = 0.5
	triggerBase    = 1.2
	triggerLead    = 0.4
)

// aroundTitle renders the title card with floating media: a typed title
// in the middle, media items flying in as their trigger words are
// spoken.
func aroundTitle(clip project.Clip, t, total float64, tm timing.Map) State {
	st := State{}

	switch {
	case t < 0.1:
		st.Phase = PhaseHidden
		st.ContentVisible = false
	case t < 0.6:
		st.Phase = PhaseVisible
		st.ContentVisible = true
	case t > total-0.6:
		st.Phase = PhaseExiting
		st.ContentVisible = false
	default:
		st.Phase = PhaseVisible
		st.ContentVisible = true
	}

	chars := clip.TitleChars()
	cps := typingSpeed(chars, 14, 40, 1.35)
	st.VisibleChars = visibleCharCount(chars, t, cps)
	st.TypedLines = buildTypedLines(clip.Title, st.VisibleChars)
	st.CaretVisible = caretVisible(chars, st.VisibleChars, t)

	if len(clip.Media) > 0 {
		st.MediaAppearAt = make([]float64, len(clip.Media))
		st.MediaVisible = make([]bool, len(clip.Media))
		for i, item := range clip.Media {
			at := MediaAppearTime(tm, item.Word, i)
			st.MediaAppearAt[i] = at
			st.MediaVisible[i] = t >= at
		}
	}
	return st
}

// MediaAppearTime resolves when a media item becomes visible: its
// trigger word's spoken offset (lenient match, minimum offset) minus the
// TTS lead, floored at zero; unmatched words fall back to an index-based
// stagger.
func MediaAppearTime(tm timing.Map, word string, index int) float64 {
	offset, ok := tm.Resolve(word)
	if !ok {
		offset = float64(index)*triggerStagger + triggerBase
	}
	at := offset - triggerLead
	if at < 0 {
		return 0
	}
	return at
}
