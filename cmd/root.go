package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"clipcast/config"
	"clipcast/project"
)

var rootCmd = &cobra.Command{
	Use:   "clipcast",
	Short: "Scripted video player and renderer",
	Long: `Clipcast plays declarative video scripts in a browser and renders them
to MP4. A script is an ordered list of clips (title cards, footage
carousels, typography, document spotlights, tweet mockups) whose
animations are driven by the narration's word timings.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(compressCmd)
	rootCmd.AddCommand(projectsCmd)
	rootCmd.AddCommand(voicesCmd)
}

// loadEnv resolves configuration and the project registry for a
// command invocation.
func loadEnv() (config.Config, project.Registry, error) {
	cfg, err := config.Load()
	if err != nil {
		return cfg, nil, err
	}
	reg, err := project.LoadDir(cfg.ScriptsDir)
	if err != nil {
		return cfg, nil, fmt.Errorf("load scripts from %s: %w", cfg.ScriptsDir, err)
	}
	return cfg, reg, nil
}
