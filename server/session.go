package server

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"clipcast/doc"
	"clipcast/player"
	"clipcast/project"
	"clipcast/stagestate"
	"clipcast/timing"
)

// Session binds one loaded project to a playback driver plus the
// per-clip collaborator data the state derivation consults. Everything
// time-variant lives in the driver; the rest is resolved once at load.
type Session struct {
	ID        string
	Project   project.Project
	Driver    *player.Driver
	Durations []float64

	inputs []stagestate.Inputs
}

// NewSession resolves clip durations and per-clip inputs for the given
// project. assetsDir is the static root holding audio/ and the files
// referenced by docSrc attributes.
func NewSession(id string, proj project.Project, assetsDir string, mode player.Mode, log *slog.Logger) *Session {
	src := timing.NewSource(filepath.Join(assetsDir, "audio"), id, log)

	durations := make([]float64, len(proj.Clips))
	inputs := make([]stagestate.Inputs, len(proj.Clips))
	for i, clip := range proj.Clips {
		if clip.Duration > 0 {
			durations[i] = clip.Duration
		} else {
			durations[i] = src.ClipDuration(i)
		}
		inputs[i] = stagestate.Inputs{
			Timings:   src.Timings(i),
			Alignment: src.Alignment(i),
		}
		if clip.Type == project.ClipDocSpot && clip.DocSrc != "" {
			inputs[i].Sections = loadSections(assetsDir, clip.DocSrc, log)
		}
	}

	return &Session{
		ID:        id,
		Project:   proj,
		Driver:    player.New(proj, durations, mode),
		Durations: durations,
		inputs:    inputs,
	}
}

// State derives the render state at the given position.
func (s *Session) State(pos player.Position) stagestate.State {
	clip, ok := s.Driver.Clip(pos.ClipIndex)
	if !ok {
		return stagestate.State{}
	}
	return stagestate.ForClip(clip, pos.Elapsed, pos.Duration, s.inputs[pos.ClipIndex])
}

// Inputs exposes the resolved collaborator data for a clip.
func (s *Session) Inputs(clipIndex int) (stagestate.Inputs, error) {
	if clipIndex < 0 || clipIndex >= len(s.inputs) {
		return stagestate.Inputs{}, fmt.Errorf("clip %d out of range", clipIndex)
	}
	return s.inputs[clipIndex], nil
}

// loadSections reads a docSrc-referenced file from the assets root and
// splits it into scroll-target sections. Missing files produce an empty
// section list, keeping the clip playable.
func loadSections(assetsDir, docSrc string, log *slog.Logger) []doc.Section {
	rel := filepath.FromSlash(strings.TrimPrefix(docSrc, "/"))
	data, err := os.ReadFile(filepath.Join(assetsDir, rel))
	if err != nil {
		log.Warn("doc source unavailable, scroll targeting disabled",
			"src", docSrc, "err", err)
		return nil
	}
	return doc.Split(string(data))
}
