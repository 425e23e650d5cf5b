package capture

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Encoder wraps the ffmpeg and ffprobe binaries.
type Encoder struct {
	FFmpeg  string
	FFprobe string
	Log     *slog.Logger
}

// ProbeDuration returns a media file's duration in seconds.
func (e *Encoder) ProbeDuration(ctx context.Context, path string) (float64, error) {
	out, err := runCommand(ctx, e.FFprobe,
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "csv=p=0",
		path)
	if err != nil {
		return 0, fmt.Errorf("ffprobe %s: %w", path, err)
	}
	d, err := strconv.ParseFloat(strings.TrimSpace(out), 64)
	if err != nil {
		return 0, fmt.Errorf("ffprobe %s: parse duration %q: %w", path, out, err)
	}
	return d, nil
}

// ConcatAudio joins the input files into one track using the concat
// demuxer. The list file is written next to the output.
func (e *Encoder) ConcatAudio(ctx context.Context, inputs []string, output string) error {
	if len(inputs) == 0 {
		return fmt.Errorf("no audio inputs")
	}

	listPath := output + ".txt"
	var list strings.Builder
	for _, in := range inputs {
		abs, err := filepath.Abs(in)
		if err != nil {
			return fmt.Errorf("resolve %s: %w", in, err)
		}
		fmt.Fprintf(&list, "file '%s'\n", strings.ReplaceAll(abs, "'", `'\''`))
	}
	if err := os.WriteFile(listPath, []byte(list.String()), 0o644); err != nil {
		return fmt.Errorf("write concat list: %w", err)
	}
	defer os.Remove(listPath)

	_, err := runCommand(ctx, e.FFmpeg,
		"-y",
		"-f", "concat",
		"-safe", "0",
		"-i", listPath,
		"-c", "copy",
		output)
	if err != nil {
		return fmt.Errorf("concat audio: %w", err)
	}
	return nil
}

// EncodeVideo muxes a numbered PNG frame sequence, and optionally an
// audio track, into an H.264 MP4.
func (e *Encoder) EncodeVideo(ctx context.Context, framesDir string, fps int, audioPath, output string) error {
	args := []string{
		"-y",
		"-framerate", strconv.Itoa(fps),
		"-i", filepath.Join(framesDir, "frame_%05d.png"),
	}
	if audioPath != "" {
		args = append(args, "-i", audioPath)
	}
	args = append(args,
		"-c:v", "libx264",
		"-pix_fmt", "yuv420p",
	)
	if audioPath != "" {
		args = append(args, "-c:a", "aac", "-shortest")
	}
	args = append(args, output)

	if _, err := runCommand(ctx, e.FFmpeg, args...); err != nil {
		// ffmpeg leaves a partial file behind on failure.
		os.Remove(output)
		return fmt.Errorf("encode video: %w", err)
	}
	return nil
}

// Compress re-encodes a finished video at the given CRF and preset,
// returning the input and output sizes in bytes.
func (e *Encoder) Compress(ctx context.Context, input, output string, crf int, preset string) (int64, int64, error) {
	in, err := os.Stat(input)
	if err != nil {
		return 0, 0, err
	}

	_, err = runCommand(ctx, e.FFmpeg,
		"-y",
		"-i", input,
		"-c:v", "libx264",
		"-crf", strconv.Itoa(crf),
		"-preset", preset,
		"-c:a", "copy",
		output)
	if err != nil {
		os.Remove(output)
		return 0, 0, fmt.Errorf("compress %s: %w", input, err)
	}

	out, err := os.Stat(output)
	if err != nil {
		return 0, 0, err
	}
	return in.Size(), out.Size(), nil
}
