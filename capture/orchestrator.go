// Package capture drives a headless render: it hosts the player server
// in-process, steps a browser page through every frame timestamp and
// muxes the captured frames with the narration audio.
package capture

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"clipcast/config"
	"clipcast/player"
	"clipcast/project"
	"clipcast/server"
	"clipcast/timing"
)

// Phase is the renderer's lifecycle position. Transitions are strictly
// forward except for the jump to failed.
type Phase string

const (
	PhaseIdle             Phase = "idle"
	PhaseServerStarting   Phase = "server-starting"
	PhaseServerReady      Phase = "server-ready"
	PhaseBrowserLaunching Phase = "browser-launching"
	PhasePageLoading      Phase = "page-loading"
	PhaseCapturing        Phase = "capturing"
	PhaseEncoding         Phase = "encoding"
	PhaseCleanup          Phase = "cleanup"
	PhaseDone             Phase = "done"
	PhaseFailed           Phase = "failed"
)

// fallbackPassSeconds is the capture length used when a project carries
// no timing metadata at all.
const fallbackPassSeconds = 10.0

// Renderer owns one render run end to end.
type Renderer struct {
	cfg      config.Config
	registry project.Registry
	log      *slog.Logger

	mu    sync.Mutex
	phase Phase
}

// NewRenderer builds a renderer over an already-loaded registry.
func NewRenderer(cfg config.Config, reg project.Registry, log *slog.Logger) *Renderer {
	return &Renderer{cfg: cfg, registry: reg, log: log, phase: PhaseIdle}
}

// Phase returns the renderer's current lifecycle position.
func (r *Renderer) Phase() Phase {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.phase
}

func (r *Renderer) setPhase(p Phase) {
	r.mu.Lock()
	r.phase = p
	r.mu.Unlock()
	r.log.Info("render phase", "phase", p)
}

// Render produces the final video for a project and returns its path.
// All intermediate artifacts are removed regardless of outcome.
func (r *Renderer) Render(ctx context.Context, projectID string) (out string, err error) {
	defer func() {
		if err != nil {
			r.setPhase(PhaseFailed)
		}
	}()

	if _, ok := r.registry.Get(projectID); !ok {
		return "", fmt.Errorf("unknown project %q", projectID)
	}
	if err := os.MkdirAll(r.cfg.OutputDir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}

	// Host the player in-process. The page the browser loads talks to
	// this server for every frame's state.
	r.setPhase(PhaseServerStarting)
	srv := server.New(r.cfg, r.registry, r.log)
	port, err := srv.Listen()
	if err != nil {
		return "", err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(srv.Serve)
	defer func() {
		shutCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutCtx)
		if werr := g.Wait(); werr != nil && err == nil {
			err = werr
		}
	}()

	base := fmt.Sprintf("http://127.0.0.1:%d", port)
	if err := waitReady(gctx, base+"/healthz", r.cfg.ReadyTimeout); err != nil {
		return "", err
	}
	r.setPhase(PhaseServerReady)

	sess, err := srv.Load(projectID, player.ModeRender)
	if err != nil {
		return "", err
	}

	r.setPhase(PhaseBrowserLaunching)
	browser, err := NewSession(r.cfg.Headless, r.cfg.StageWidth, r.cfg.StageHeight, r.cfg.PageTimeout)
	if err != nil {
		return "", err
	}
	defer browser.Close()

	r.setPhase(PhasePageLoading)
	pageURL := fmt.Sprintf("%s/?record=true&project=%s", base, url.QueryEscape(projectID))
	if err := browser.Navigate(pageURL); err != nil {
		return "", err
	}
	if err := waitPlayerReady(browser, r.cfg.PageTimeout); err != nil {
		return "", err
	}

	r.setPhase(PhaseCapturing)
	framesDir, err := os.MkdirTemp(r.cfg.OutputDir, "frames-"+projectID+"-")
	if err != nil {
		return "", fmt.Errorf("create frames dir: %w", err)
	}
	defer os.RemoveAll(framesDir)

	if err := r.captureFrames(gctx, browser, sess, framesDir); err != nil {
		return "", err
	}

	r.setPhase(PhaseEncoding)
	audioPath := r.assembleAudio(gctx, projectID, len(sess.Project.Clips))
	if audioPath != "" {
		defer os.Remove(audioPath)
	}

	enc := &Encoder{FFmpeg: r.cfg.FFmpegPath, FFprobe: r.cfg.FFprobePath, Log: r.log}
	out = filepath.Join(r.cfg.OutputDir, projectID+".mp4")
	if err := enc.EncodeVideo(gctx, framesDir, r.cfg.FPS, audioPath, out); err != nil {
		return "", err
	}

	// Scratch state also goes away in the defers on failure paths; this
	// removes it eagerly so done means fully cleaned up.
	r.setPhase(PhaseCleanup)
	os.RemoveAll(framesDir)
	if audioPath != "" {
		os.Remove(audioPath)
	}

	r.setPhase(PhaseDone)
	r.log.Info("render finished", "project", projectID, "output", out)
	return out, nil
}

// captureFrames walks every clip through its frame timestamps. Each
// seek is awaited before the screenshot so the page has applied the
// state for exactly that instant.
func (r *Renderer) captureFrames(ctx context.Context, browser *Session, sess *server.Session, framesDir string) error {
	durations := sess.Durations
	clipRange := len(durations)
	if !r.hasAnyTiming(sess) {
		r.log.Warn("no timing metadata, capturing a single fixed-length pass",
			"seconds", fallbackPassSeconds)
		durations = []float64{fallbackPassSeconds}
		clipRange = 1
	}

	framePause := time.Second / time.Duration(r.cfg.FPS)
	frame := 0
	total := timing.BuildPlan(durations).TotalFrames(r.cfg.FPS)

	for i := 0; i < clipRange; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := browser.Eval(`(i) => window.setClipIndex(i)`, i); err != nil {
			return fmt.Errorf("set clip %d: %w", i, err)
		}
		n := timing.FrameCount(durations[i], r.cfg.FPS)
		for j := 0; j < n; j++ {
			t := float64(j) / float64(r.cfg.FPS)
			if err := browser.Eval(`(t) => window.seekTo(t)`, t); err != nil {
				return fmt.Errorf("seek clip %d frame %d: %w", i, j, err)
			}
			time.Sleep(framePause)

			shot, err := browser.Screenshot()
			if err != nil {
				return fmt.Errorf("screenshot clip %d frame %d: %w", i, j, err)
			}
			name := filepath.Join(framesDir, fmt.Sprintf("frame_%05d.png", frame))
			if err := os.WriteFile(name, shot, 0o644); err != nil {
				return fmt.Errorf("write frame: %w", err)
			}
			frame++
		}
		r.log.Info("clip captured", "clip", i, "frames", n, "progress",
			fmt.Sprintf("%d/%d", frame, total))
	}
	return nil
}

func (r *Renderer) hasAnyTiming(sess *server.Session) bool {
	src := timing.NewSource(filepath.Join(r.cfg.AssetsDir, "audio"), sess.ID, r.log)
	for i, clip := range sess.Project.Clips {
		if clip.Duration > 0 || src.HasTiming(i) {
			return true
		}
	}
	return false
}

// assembleAudio concatenates the clips' narration files into one track.
// Any failure degrades to a silent video with a warning.
func (r *Renderer) assembleAudio(ctx context.Context, projectID string, clipCount int) string {
	src := timing.NewSource(filepath.Join(r.cfg.AssetsDir, "audio"), projectID, r.log)
	var inputs []string
	for i := 0; i < clipCount; i++ {
		if src.HasAudio(i) {
			inputs = append(inputs, src.AudioPath(i))
		} else {
			r.log.Warn("clip has no audio file", "project", projectID, "clip", i)
		}
	}
	if len(inputs) == 0 {
		return ""
	}

	enc := &Encoder{FFmpeg: r.cfg.FFmpegPath, FFprobe: r.cfg.FFprobePath, Log: r.log}
	out := filepath.Join(r.cfg.OutputDir, projectID+"-audio.mp3")
	if err := enc.ConcatAudio(ctx, inputs, out); err != nil {
		r.log.Warn("audio assembly failed, rendering without sound", "err", err)
		os.Remove(out)
		return ""
	}
	return out
}

// waitReady polls a health endpoint until it answers 200.
func waitReady(ctx context.Context, url string, timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if err := ctx.Err(); err != nil {
			return err
		}
		resp, err := http.Get(url)
		if err == nil {
			resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return nil
			}
		}
		time.Sleep(100 * time.Millisecond)
	}
	return fmt.Errorf("server not ready after %s", timeout)
}

// waitPlayerReady polls the page until its boot sequence has loaded the
// project and applied the first state.
func waitPlayerReady(browser *Session, timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		res, err := browser.Page.Eval(`() => window.playerReady === true`)
		if err == nil && res.Value.Bool() {
			return nil
		}
		time.Sleep(100 * time.Millisecond)
	}
	return fmt.Errorf("player page not ready after %s", timeout)
}
