package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"clipcast/logging"
	"clipcast/speech"
)

var voicesVoice string

var voicesCmd = &cobra.Command{
	Use:   "voices <project>",
	Short: "Synthesize narration audio and word timings for a project",
	Long: `Voices runs text-to-speech over every clip's narration and writes the
audio plus word-boundary metadata the player reads at playback. Clips
whose files already exist are skipped.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, reg, err := loadEnv()
		if err != nil {
			return err
		}
		proj, ok := reg.Get(args[0])
		if !ok {
			return fmt.Errorf("unknown project %q", args[0])
		}

		g := &speech.Generator{
			Voice:    voicesVoice,
			AudioDir: filepath.Join(cfg.AssetsDir, "audio"),
			Log:      logging.New(cfg.LogLevel),
		}
		return g.GenerateProject(cmd.Context(), args[0], proj)
	},
}

func init() {
	voicesCmd.Flags().StringVar(&voicesVoice, "voice", speech.DefaultVoice, "default TTS voice")
}
