package main

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/lead-mapper/leadmapper-cli/internal/relay"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the same-origin relay server",
	Long:  "Serves GET /api/proxy?url=<target>, forwarding provider requests server-side, plus GET /api/health.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		router := relay.New(relay.Config{
			AllowedOrigins: cfg.Server.AllowedOrigins,
		})

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: router,
		}

		// Graceful shutdown. The signal context is already cancelled here,
		// so drain on a fresh deadline.
		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down relay server")
			drainCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := srv.Shutdown(drainCtx); err != nil {
				zap.L().Warn("relay server shutdown", zap.Error(err))
			}
		}()

		zap.L().Info("starting relay server", zap.Int("port", port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "relay server listen")
		}

		return nil
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}
