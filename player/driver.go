// Package player sequences a project's clips over time. The driver is
// the only owner of playback time: interactive mode advances it with a
// clock delta, render mode sets it explicitly. Both paths feed the same
// deterministic state derivation, so headless capture reproduces
// interactive playback exactly.
package player

import (
	"sync"

	"clipcast/project"
)

// Mode selects how elapsed time is allowed to move.
type Mode int

const (
	// ModeInteractive advances time continuously while playing.
	ModeInteractive Mode = iota
	// ModeRender only accepts externally injected time values.
	ModeRender
)

func (m Mode) String() string {
	if m == ModeRender {
		return "render"
	}
	return "interactive"
}

// Position is a consistent snapshot of the driver.
type Position struct {
	ClipIndex int
	Elapsed   float64
	Duration  float64
	Playing   bool
	Done      bool
}

// Driver holds the playback cursor for one project.
type Driver struct {
	mu        sync.Mutex
	proj      project.Project
	durations []float64
	mode      Mode

	clip    int
	elapsed float64
	playing bool
	done    bool
}

// New creates a driver positioned at the start of the first clip.
// durations carries one total duration per clip, in clip order.
func New(proj project.Project, durations []float64, mode Mode) *Driver {
	return &Driver{proj: proj, durations: durations, mode: mode}
}

// Mode returns the driver's configured mode.
func (d *Driver) Mode() Mode { return d.mode }

// ClipCount returns the number of clips in the project.
func (d *Driver) ClipCount() int { return len(d.proj.Clips) }

// Clip returns the declaration for the given index.
func (d *Driver) Clip(i int) (project.Clip, bool) {
	if i < 0 || i >= len(d.proj.Clips) {
		return project.Clip{}, false
	}
	return d.proj.Clips[i], true
}

// Advance moves the clock forward while playing (interactive mode
// only). Crossing a clip's duration advances to the next clip and
// resets elapsed time; the last clip stops playback at its end.
func (d *Driver) Advance(dt float64) Position {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.mode != ModeInteractive || !d.playing || dt <= 0 {
		return d.position()
	}

	d.elapsed += dt
	for d.elapsed >= d.duration(d.clip) {
		if d.clip < len(d.proj.Clips)-1 {
			d.elapsed -= d.duration(d.clip)
			d.clip++
		} else {
			d.elapsed = d.duration(d.clip)
			d.playing = false
			d.done = true
			break
		}
	}
	return d.position()
}

// Seek pauses playback and sets the elapsed time within the current
// clip. This is one of the two render-mode write operations.
func (d *Driver) Seek(t float64) Position {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.playing = false
	if t < 0 {
		t = 0
	}
	d.elapsed = t
	return d.position()
}

// SetClipIndex pauses playback, switches to the given clip and resets
// elapsed time to zero. Out-of-range indices clamp.
func (d *Driver) SetClipIndex(i int) Position {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.playing = false
	if i < 0 {
		i = 0
	}
	if max := len(d.proj.Clips) - 1; i > max && max >= 0 {
		i = max
	}
	d.clip = i
	d.elapsed = 0
	d.done = false
	return d.position()
}

// SetPlaying starts or stops the interactive clock.
func (d *Driver) SetPlaying(playing bool) Position {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.mode == ModeInteractive {
		if playing && d.done {
			d.clip = 0
			d.elapsed = 0
			d.done = false
		}
		d.playing = playing
	}
	return d.position()
}

// Reset returns to the start of the first clip, paused.
func (d *Driver) Reset() Position {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.clip = 0
	d.elapsed = 0
	d.playing = false
	d.done = false
	return d.position()
}

// Snapshot returns the current position.
func (d *Driver) Snapshot() Position {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.position()
}

func (d *Driver) position() Position {
	return Position{
		ClipIndex: d.clip,
		Elapsed:   d.elapsed,
		Duration:  d.duration(d.clip),
		Playing:   d.playing,
		Done:      d.done,
	}
}

func (d *Driver) duration(i int) float64 {
	if i < 0 || i >= len(d.durations) {
		return 0
	}
	return d.durations[i]
}
