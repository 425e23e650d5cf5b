package stagestate

import (
	"testing"

	"clipcast/project"
	"clipcast/timing"
)

func aroundTitleClip() project.Clip {
	return project.Clip{
		Type:  project.ClipFootagesAroundTitle,
		Title: "AI\nGENERATED",
		Media: []project.MediaItem{
			{Src: "/footage/chatbot.html", Word: "Code"},
			{Src: "/footage/chatbot.html", Word: "rest"},
		},
	}
}

func TestAroundTitlePhases(t *testing.T) {
	clip := aroundTitleClip()
	total := 5.0

	tests := []struct {
		t       float64
		phase   Phase
		content bool
	}{
		{0.0, PhaseHidden, false},
		{0.09, PhaseHidden, false},
		{0.1, PhaseVisible, true},
		{0.59, PhaseVisible, true},
		{2.0, PhaseVisible, true},
		{4.4, PhaseVisible, true}, // t == d-0.6 boundary is strict
		{4.41, PhaseExiting, false},
		{5.0, PhaseExiting, false},
	}
	for _, tt := range tests {
		st := ForClip(clip, tt.t, total, Inputs{})
		if st.Phase != tt.phase || st.ContentVisible != tt.content {
			t.Errorf("t=%v: phase=%v content=%v, want %v %v",
				tt.t, st.Phase, st.ContentVisible, tt.phase, tt.content)
		}
	}
}

func TestAroundTitleTypedReveal(t *testing.T) {
	clip := aroundTitleClip() // 11 non-newline chars, cps clamps to 14

	st := ForClip(clip, 0.86, 10, Inputs{})
	if st.VisibleChars != 9 {
		t.Errorf("VisibleChars at t=0.86 = %d, want 9", st.VisibleChars)
	}
	// "AI" fully typed, 7 chars of "GENERATED".
	if len(st.TypedLines) != 2 || st.TypedLines[0] != "AI" || st.TypedLines[1] != "GENERAT" {
		t.Errorf("TypedLines = %q", st.TypedLines)
	}

	// Monotone non-decreasing, capped at the non-newline count.
	prev := -1
	for ft := 0.0; ft <= 10.0; ft += 0.05 {
		st := ForClip(clip, ft, 10, Inputs{})
		if st.VisibleChars < prev {
			t.Fatalf("typed reveal regressed at t=%v: %d < %d", ft, st.VisibleChars, prev)
		}
		if st.VisibleChars > clip.TitleChars() {
			t.Fatalf("typed reveal exceeded budget at t=%v: %d", ft, st.VisibleChars)
		}
		prev = st.VisibleChars
	}
}

func TestAroundTitleCaretBlink(t *testing.T) {
	clip := aroundTitleClip()

	if st := ForClip(clip, 0.0, 10, Inputs{}); st.CaretVisible {
		t.Error("caret must be hidden before typing starts")
	}
	// At t=0.16 blink phase 0: on. At t=0.70 phase floor(0.55*2)=1: off.
	if st := ForClip(clip, 0.16, 10, Inputs{}); !st.CaretVisible {
		t.Error("caret should be on in first blink phase")
	}
	if st := ForClip(clip, 0.70, 10, Inputs{}); st.CaretVisible {
		t.Error("caret should be off in second blink phase")
	}
	// Caret disappears once typing completes (11 chars / 14 cps + 0.15).
	if st := ForClip(clip, 5.0, 10, Inputs{}); st.CaretVisible {
		t.Error("caret must be hidden after typing completes")
	}
}

func TestMediaAppearTime(t *testing.T) {
	tm := timing.Map{"code": 1.5}

	// Matched trigger: offset minus the 0.4s lead.
	if got := MediaAppearTime(tm, "Code", 0); got != 1.1 {
		t.Errorf("appear time = %v, want 1.1", got)
	}
	// Floored at zero for early words.
	if got := MediaAppearTime(timing.Map{"hi": 0.2}, "hi", 0); got != 0 {
		t.Errorf("appear time = %v, want 0", got)
	}
	// Unmatched trigger: index-based stagger (2*0.5 + 1.2 - 0.4).
	if got := MediaAppearTime(tm, "missing", 2); got != 1.8 {
		t.Errorf("fallback appear time = %v, want 1.8", got)
	}
}

func TestAroundTitleMediaVisibility(t *testing.T) {
	clip := aroundTitleClip()
	in := Inputs{Timings: timing.Map{"code": 1.5, "rest": 3.0}}

	st := ForClip(clip, 1.2, 10, in)
	if len(st.MediaVisible) != 2 {
		t.Fatalf("expected 2 media flags, got %d", len(st.MediaVisible))
	}
	if !st.MediaVisible[0] || st.MediaVisible[1] {
		t.Errorf("at t=1.2 expected [true false], got %v", st.MediaVisible)
	}
	if st.MediaAppearAt[0] != 1.1 || st.MediaAppearAt[1] != 2.6 {
		t.Errorf("appear times = %v, want [1.1 2.6]", st.MediaAppearAt)
	}
}
