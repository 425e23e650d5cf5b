package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"clipcast/logging"
	"clipcast/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the interactive player server",
	Long: `Serve hosts the player page and its state API. Open
http://localhost:<port>/?project=<id> to play a script; the page drives
playback through the server so what you see matches a render exactly.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, reg, err := loadEnv()
		if err != nil {
			return err
		}
		log := logging.New(cfg.LogLevel)

		srv := server.New(cfg, reg, log)
		port, err := srv.Listen()
		if err != nil {
			return err
		}
		log.Info("player server listening", "url", fmt.Sprintf("http://localhost:%d", port),
			"projects", len(reg))

		errCh := make(chan error, 1)
		go func() { errCh <- srv.Serve() }()

		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		select {
		case err := <-errCh:
			return err
		case s := <-sig:
			log.Info("shutting down", "signal", s.String())
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return srv.Shutdown(ctx)
		}
	},
}
