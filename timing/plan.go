package timing

import "math"

// Window is one clip's slot on the render timeline.
type Window struct {
	Start    float64
	End      float64
	Duration float64
}

// Plan is the immutable frame timing plan for a render run: one window
// per clip, start offsets accumulated in clip order.
type Plan []Window

// BuildPlan accumulates per-clip durations into absolute windows.
func BuildPlan(durations []float64) Plan {
	plan := make(Plan, 0, len(durations))
	start := 0.0
	for _, d := range durations {
		plan = append(plan, Window{Start: start, End: start + d, Duration: d})
		start += d
	}
	return plan
}

// Total returns the full timeline length covered by the plan.
func (p Plan) Total() float64 {
	if len(p) == 0 {
		return 0
	}
	return p[len(p)-1].End
}

// FrameCount converts a duration to a frame count at the given rate.
// Every clip gets at least one frame.
func FrameCount(duration float64, fps int) int {
	n := int(math.Round(duration * float64(fps)))
	if n < 1 {
		return 1
	}
	return n
}

// TotalFrames sums frame counts across the plan.
func (p Plan) TotalFrames(fps int) int {
	total := 0
	for _, w := range p {
		total += FrameCount(w.Duration, fps)
	}
	return total
}
