// Package speech synthesizes per-clip narration audio and the
// word-boundary metadata the player's timing layer consumes. Synthesis
// shells out to the edge-tts CLI, which emits word-granular WebVTT
// subtitles alongside the audio.
package speech

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"

	"clipcast/project"
	"clipcast/timing"
)

// DefaultVoice is used when a clip does not name one.
const DefaultVoice = "en-US-AndrewNeural"

// Generator produces <audio dir>/<project>/<i>.mp3 and <i>.json pairs.
type Generator struct {
	Bin      string
	Voice    string
	AudioDir string
	Log      *slog.Logger
}

// boundaryEvent is the flat metadata shape written to disk.
type boundaryEvent struct {
	Type     string `json:"Type"`
	Offset   int64  `json:"Offset"`
	Duration int64  `json:"Duration"`
	Text     string `json:"Text"`
}

// GenerateProject synthesizes narration for every clip with speech
// text. Clips whose audio and metadata already exist are skipped, so
// re-runs only fill gaps.
func (g *Generator) GenerateProject(ctx context.Context, id string, proj project.Project) error {
	dir := filepath.Join(g.AudioDir, id)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create audio dir: %w", err)
	}

	for i, clip := range proj.Clips {
		text := clip.SpeechText()
		if text == "" {
			continue
		}
		audioPath := filepath.Join(dir, fmt.Sprintf("%d.mp3", i))
		metaPath := filepath.Join(dir, fmt.Sprintf("%d.json", i))
		if exists(audioPath) && exists(metaPath) {
			g.Log.Info("clip narration exists, skipping", "project", id, "clip", i)
			continue
		}

		voice := clip.Voice
		if voice == "" {
			voice = g.Voice
		}
		if voice == "" {
			voice = DefaultVoice
		}

		if err := g.synthesize(ctx, text, voice, audioPath, metaPath); err != nil {
			return fmt.Errorf("clip %d: %w", i, err)
		}
		g.Log.Info("clip narration generated", "project", id, "clip", i, "voice", voice)
	}
	return nil
}

// synthesize runs one TTS invocation and converts its word-level VTT
// cues into boundary metadata.
func (g *Generator) synthesize(ctx context.Context, text, voice, audioPath, metaPath string) error {
	vttPath := audioPath + ".vtt"
	defer os.Remove(vttPath)

	bin := g.Bin
	if bin == "" {
		bin = "edge-tts"
	}
	cmd := exec.CommandContext(ctx, bin,
		"--text", text,
		"--voice", voice,
		"--words-in-cue", "1",
		"--write-media", audioPath,
		"--write-subtitles", vttPath)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("%s: %w: %s", bin, err, out)
	}

	data, err := os.ReadFile(vttPath)
	if err != nil {
		return fmt.Errorf("read subtitles: %w", err)
	}
	cues, err := ParseVTT(string(data))
	if err != nil {
		return fmt.Errorf("parse subtitles: %w", err)
	}
	if len(cues) == 0 {
		return fmt.Errorf("no word cues in %s", vttPath)
	}
	return writeMetadata(metaPath, cues)
}

// writeMetadata persists cues as word-boundary events with tick-based
// offsets.
func writeMetadata(path string, cues []Cue) error {
	events := make([]boundaryEvent, 0, len(cues))
	for _, cue := range cues {
		events = append(events, boundaryEvent{
			Type:     "WordBoundary",
			Offset:   int64(cue.Start * timing.TicksPerSecond),
			Duration: int64((cue.End - cue.Start) * timing.TicksPerSecond),
			Text:     cue.Text,
		})
	}
	data, err := json.MarshalIndent(events, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write metadata: %w", err)
	}
	return nil
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
