package timing

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// Source resolves per-clip audio and timing metadata for one project.
// All lookup failures degrade to fixed fallbacks so a missing or corrupt
// metadata file never aborts playback or a render.
type Source struct {
	audioDir string
	project  string
	log      *slog.Logger
}

func NewSource(audioDir, projectID string, log *slog.Logger) *Source {
	if log == nil {
		log = slog.Default()
	}
	return &Source{audioDir: audioDir, project: projectID, log: log}
}

// MetaPath returns the speech-boundary metadata file for a clip.
func (s *Source) MetaPath(clipIndex int) string {
	return filepath.Join(s.audioDir, s.project, fmt.Sprintf("%d.json", clipIndex))
}

// AudioPath returns the synthesized audio file for a clip.
func (s *Source) AudioPath(clipIndex int) string {
	return filepath.Join(s.audioDir, s.project, fmt.Sprintf("%d.mp3", clipIndex))
}

// HasAudio reports whether the clip's audio file exists on disk.
func (s *Source) HasAudio(clipIndex int) bool {
	_, err := os.Stat(s.AudioPath(clipIndex))
	return err == nil
}

// HasTiming reports whether the clip's metadata file exists on disk.
func (s *Source) HasTiming(clipIndex int) bool {
	_, err := os.Stat(s.MetaPath(clipIndex))
	return err == nil
}

// Timings builds the clip's word timing map. Missing or malformed
// metadata yields an empty map, never an error.
func (s *Source) Timings(clipIndex int) Map {
	events, err := LoadBoundaries(s.MetaPath(clipIndex))
	if err != nil {
		s.log.Warn("no word timings for clip, media triggers fall back to stagger",
			"project", s.project, "clip", clipIndex, "err", err)
		return Map{}
	}
	return BuildMap(events)
}

// ClipDuration returns the clip's spoken duration in seconds, or the
// fixed fallback when no timing metadata is usable.
func (s *Source) ClipDuration(clipIndex int) float64 {
	events, err := LoadBoundaries(s.MetaPath(clipIndex))
	if err == nil {
		if d, ok := ClipDurationFrom(events); ok {
			return d
		}
	}
	s.log.Warn("clip duration defaulted", "project", s.project,
		"clip", clipIndex, "fallback", FallbackDuration)
	return FallbackDuration
}

// Alignment loads character-level alignment for a clip, or nil when the
// metadata is absent or in word-boundary form instead.
func (s *Source) Alignment(clipIndex int) *Alignment {
	return LoadAlignment(s.MetaPath(clipIndex))
}
