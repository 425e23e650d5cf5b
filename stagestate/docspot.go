package stagestate

import (
	"math"

	"clipcast/doc"
	"clipcast/project"
)

// docSpot renders the document-spotlight clip: narration segments drive
// which header-delimited section of the backing document is scrolled
// into view. The state only carries indices; consumers re-target the
// scroll when the section index actually changes.
func docSpot(clip project.Clip, t, total float64, in Inputs) State {
	st := State{Phase: PhaseVisible, ContentVisible: true}
	if len(clip.DocSegments) == 0 {
		return st
	}

	st.SegmentIndex = activeSegment(clip.DocSegments, t, total, in)
	st.SectionIndex = doc.Match(in.Sections, clip.DocSegments[st.SegmentIndex].StartWith)
	return st
}

// activeSegment picks the narration segment for elapsed time t. With
// character alignment it compares spoken-so-far text length against the
// segments' cumulative narration length; without it, time is sliced
// uniformly across the clip duration.
func activeSegment(segments []project.DocSegment, t, total float64, in Inputs) int {
	if in.Alignment.Valid() {
		spoken := len([]rune(in.Alignment.SpokenUntil(t)))
		cumulative := 0
		for i, seg := range segments {
			if i > 0 {
				cumulative++ // joining space between spoken segments
			}
			cumulative += len([]rune(seg.Speech))
			if cumulative >= spoken {
				return i
			}
		}
		return len(segments) - 1
	}

	if total <= 0 {
		return 0
	}
	slice := total / float64(len(segments))
	idx := int(math.Floor(t / slice))
	if idx < 0 {
		idx = 0
	}
	if idx > len(segments)-1 {
		idx = len(segments) - 1
	}
	return idx
}
