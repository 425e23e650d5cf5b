// Package config holds runtime settings for the player server and the
// render pipeline. Values come from defaults, an optional .env file and
// environment variables, in that order.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config is the resolved runtime configuration.
type Config struct {
	// Port is the first port the player server tries to bind.
	Port int
	// PortAttempts bounds how many consecutive ports are tried when the
	// preferred one is taken.
	PortAttempts int

	// FPS is the capture frame rate.
	FPS int
	// StageWidth and StageHeight fix the composition coordinate space.
	StageWidth  int
	StageHeight int

	// ScriptsDir holds project declaration files (.yaml/.json).
	ScriptsDir string
	// AssetsDir is the static root serving /audio, /footage and /doc.
	AssetsDir string
	// OutputDir receives rendered videos and scratch frame directories.
	OutputDir string

	FFmpegPath  string
	FFprobePath string

	// Headless controls browser visibility during capture.
	Headless bool
	// ReadyTimeout bounds the wait for the server health check.
	ReadyTimeout time.Duration
	// PageTimeout bounds page navigation and evaluation.
	PageTimeout time.Duration

	LogLevel string
}

// Default returns the stock configuration.
func Default() Config {
	return Config{
		Port:         5175,
		PortAttempts: 10,
		FPS:          30,
		StageWidth:   1920,
		StageHeight:  1080,
		ScriptsDir:   "scripts",
		AssetsDir:    "public",
		OutputDir:    "out",
		FFmpegPath:   "ffmpeg",
		FFprobePath:  "ffprobe",
		Headless:     true,
		ReadyTimeout: 15 * time.Second,
		PageTimeout:  30 * time.Second,
		LogLevel:     "info",
	}
}

// Load builds a Config from defaults overlaid with .env (if present)
// and the process environment.
func Load() (Config, error) {
	godotenv.Load()

	cfg := Default()
	if v := os.Getenv("CLIPCAST_PORT"); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil {
			return cfg, fmt.Errorf("CLIPCAST_PORT: %w", err)
		}
		cfg.Port = p
	}
	if v := os.Getenv("CLIPCAST_FPS"); v != "" {
		f, err := strconv.Atoi(v)
		if err != nil {
			return cfg, fmt.Errorf("CLIPCAST_FPS: %w", err)
		}
		cfg.FPS = f
	}
	if v := os.Getenv("CLIPCAST_SCRIPTS_DIR"); v != "" {
		cfg.ScriptsDir = v
	}
	if v := os.Getenv("CLIPCAST_ASSETS_DIR"); v != "" {
		cfg.AssetsDir = v
	}
	if v := os.Getenv("CLIPCAST_OUTPUT_DIR"); v != "" {
		cfg.OutputDir = v
	}
	if v := os.Getenv("CLIPCAST_FFMPEG"); v != "" {
		cfg.FFmpegPath = v
	}
	if v := os.Getenv("CLIPCAST_FFPROBE"); v != "" {
		cfg.FFprobePath = v
	}
	if v := os.Getenv("CLIPCAST_HEADLESS"); v != "" {
		cfg.Headless = v != "0" && v != "false"
	}
	if v := os.Getenv("CLIPCAST_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	return cfg, cfg.Validate()
}

// Validate rejects settings the pipeline cannot run with.
func (c Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	if c.PortAttempts < 1 {
		return fmt.Errorf("port attempts must be at least 1, got %d", c.PortAttempts)
	}
	if c.FPS < 1 || c.FPS > 240 {
		return fmt.Errorf("invalid fps %d", c.FPS)
	}
	if c.StageWidth < 1 || c.StageHeight < 1 {
		return fmt.Errorf("invalid stage size %dx%d", c.StageWidth, c.StageHeight)
	}
	return nil
}
