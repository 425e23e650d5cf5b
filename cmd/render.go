package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"clipcast/capture"
	"clipcast/logging"
)

var renderFPS int

var renderCmd = &cobra.Command{
	Use:   "render <project>",
	Short: "Render a project to MP4",
	Long: `Render starts the player server in-process, steps a headless browser
through every frame of the project and muxes the captured frames with
the narration audio into an H.264 MP4.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, reg, err := loadEnv()
		if err != nil {
			return err
		}
		if renderFPS > 0 {
			cfg.FPS = renderFPS
		}
		if err := cfg.Validate(); err != nil {
			return err
		}
		log := logging.New(cfg.LogLevel)

		r := capture.NewRenderer(cfg, reg, log)
		out, err := r.Render(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("render %s: %w", args[0], err)
		}
		fmt.Println(out)
		return nil
	},
}

func init() {
	renderCmd.Flags().IntVar(&renderFPS, "fps", 0, "capture frame rate (default from config)")
}
