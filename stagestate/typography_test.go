package stagestate

import (
	"math"
	"testing"

	"clipcast/project"
)

func TestTypographyStaggeredLines(t *testing.T) {
	clip := project.Clip{Type: project.ClipTypography, Title: "PURE\nCONTROL"}

	st := ForClip(clip, 0.0, 5, Inputs{})
	if len(st.Lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(st.Lines))
	}
	// Line 0 starts immediately; line 1 is still fully offset at t=0.
	if st.Lines[0].Opacity != 0 {
		t.Errorf("line 0 opacity at t=0 = %v, want 0", st.Lines[0].Opacity)
	}
	if st.Lines[1].Opacity != 0 || st.Lines[1].OffsetX == 0 {
		t.Errorf("line 1 at t=0 = %+v", st.Lines[1])
	}

	// Lines enter from alternating sides.
	st = ForClip(clip, 0.2, 5, Inputs{})
	if st.Lines[0].OffsetX >= 0 {
		t.Errorf("line 0 should enter from the left, offset %v", st.Lines[0].OffsetX)
	}
	if st.Lines[1].OffsetX <= 0 {
		t.Errorf("line 1 should enter from the right, offset %v", st.Lines[1].OffsetX)
	}

	// Both fully settled well past the stagger + slide window.
	st = ForClip(clip, 2.0, 5, Inputs{})
	for i, line := range st.Lines {
		if math.Abs(line.OffsetX) > 1e-9 || line.Opacity != 1 {
			t.Errorf("line %d not settled at t=2: %+v", i, line)
		}
	}
}

func TestTypographyMonotoneSettle(t *testing.T) {
	clip := project.Clip{Type: project.ClipTypography, Title: "A\nB\nC"}
	prev := make([]float64, 3)
	for ft := 0.0; ft <= 2.0; ft += 0.02 {
		st := ForClip(clip, ft, 5, Inputs{})
		for i, line := range st.Lines {
			if line.Opacity+1e-9 < prev[i] {
				t.Fatalf("line %d opacity regressed at t=%v", i, ft)
			}
			prev[i] = line.Opacity
		}
	}
}
