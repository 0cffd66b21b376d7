package main

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/lead-mapper/leadmapper-cli/internal/config"
)

func TestServeShutsDownOnContextCancel(t *testing.T) {
	cfg = &config.Config{
		Server: config.ServerConfig{
			AllowedOrigins: []string{"http://localhost:5173"},
		},
	}
	servePort = 0 // ":0" picks a free port

	ctx, cancel := context.WithCancel(context.Background())
	serveCmd.SetContext(ctx)

	done := make(chan error, 1)
	go func() {
		done <- serveCmd.RunE(serveCmd, nil)
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("server did not shut down after cancel")
	}
}
