package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"clipcast/capture"
	"clipcast/logging"
)

var (
	compressCRF    int
	compressPreset string
	compressOut    string
)

var compressCmd = &cobra.Command{
	Use:   "compress <video>",
	Short: "Re-encode a rendered video at a smaller size",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _, err := loadEnv()
		if err != nil {
			return err
		}
		log := logging.New(cfg.LogLevel)

		input := args[0]
		output := compressOut
		if output == "" {
			output = strings.TrimSuffix(input, ".mp4") + "-small.mp4"
		}

		enc := &capture.Encoder{FFmpeg: cfg.FFmpegPath, FFprobe: cfg.FFprobePath, Log: log}
		inSize, outSize, err := enc.Compress(cmd.Context(), input, output, compressCRF, compressPreset)
		if err != nil {
			return err
		}
		fmt.Printf("%s: %.1f MB -> %.1f MB (%.0f%%)\n", output,
			float64(inSize)/1e6, float64(outSize)/1e6,
			100*float64(outSize)/float64(inSize))
		return nil
	},
}

func init() {
	compressCmd.Flags().IntVar(&compressCRF, "crf", 28, "x264 constant rate factor")
	compressCmd.Flags().StringVar(&compressPreset, "preset", "slow", "x264 preset")
	compressCmd.Flags().StringVarP(&compressOut, "output", "o", "", "output path")
}
