// Package stagestate derives the complete visual state of a clip from
// an elapsed-time scalar. The derivation is a pure function: identical
// (clip, elapsed) pairs always produce identical state, which is what
// makes frame capture reproducible and restartable at any timestamp.
package stagestate

import (
	"clipcast/doc"
	"clipcast/project"
	"clipcast/timing"
)

// Phase is the coarse visibility envelope of a clip overlay.
type Phase string

const (
	PhaseHidden  Phase = "hidden"
	PhaseVisible Phase = "visible"
	PhaseExiting Phase = "exiting"
)

// MediaLayer is one visible carousel layer with its crossfade weight.
type MediaLayer struct {
	Index   int     `json:"index"`
	Opacity float64 `json:"opacity"`
}

// Line is one typography line with its slide-in progress applied.
type Line struct {
	Text    string  `json:"text"`
	OffsetX float64 `json:"offsetX"`
	Opacity float64 `json:"opacity"`
}

// TweetState gates the tweet mockup's sub-elements on its internal
// micro-timeline.
type TweetState struct {
	Visible         bool `json:"visible"`
	GradientVisible bool `json:"gradientVisible"`
	HeaderVisible   bool `json:"headerVisible"`
	ContentVisible  bool `json:"contentVisible"`
}

// State is the full render state of a clip at an instant. Fields not
// meaningful for the clip's variant are left at their zero values.
type State struct {
	Phase          Phase        `json:"phase"`
	ContentVisible bool         `json:"contentVisible"`
	TypedLines     []string     `json:"typedLines,omitempty"`
	VisibleChars   int          `json:"visibleChars"`
	CaretVisible   bool         `json:"caretVisible"`
	MediaVisible   []bool       `json:"mediaVisible,omitempty"`
	MediaAppearAt  []float64    `json:"mediaAppearAt,omitempty"`
	MediaLayers    []MediaLayer `json:"mediaLayers,omitempty"`
	Underline      float64      `json:"underline"`
	Lines          []Line       `json:"lines,omitempty"`
	SegmentIndex   int          `json:"segmentIndex"`
	SectionIndex   int          `json:"sectionIndex"`
	Tweet          *TweetState  `json:"tweet,omitempty"`
}

// Inputs carries the per-clip collaborator data a variant may consult.
// All of it is optional; variants degrade to fixed heuristics.
type Inputs struct {
	Timings   timing.Map
	Alignment *timing.Alignment
	Sections  []doc.Section
}

// ForClip computes the render state for one clip. Total over the whole
// real line: elapsed values outside [0, total] are clamped, not errors.
func ForClip(clip project.Clip, elapsed, total float64, in Inputs) State {
	t := clamp(elapsed, 0, total)

	switch clip.Type {
	case project.ClipFootagesAroundTitle:
		return aroundTitle(clip, t, total, in.Timings)
	case project.ClipFootagesFullScreen:
		return fullScreen(clip, t, total)
	case project.ClipTypography:
		return typography(clip, t)
	case project.ClipDocSpot:
		return docSpot(clip, t, total, in)
	case project.ClipTweet:
		return tweet(t, total)
	default:
		return State{Phase: PhaseVisible, ContentVisible: true}
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clamp01(v float64) float64 {
	return clamp(v, 0, 1)
}
