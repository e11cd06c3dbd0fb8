package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	httpiface "github.com/nameworth/nameworth/internal/interfaces/http"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the appraisal HTTP API",
		Long:  "Serve the bulk appraise endpoint, health and Prometheus metrics.",
		RunE:  runServe,
	}
}

func runServe(_ *cobra.Command, _ []string) error {
	stack, err := buildStack(configPath)
	if err != nil {
		return err
	}

	handlers := httpiface.NewHandlers(stack.appraiser, stack.cfg.Batch.MaxDomains, stack.metrics)
	server := httpiface.NewServer(httpiface.ServerConfig{
		Host:         stack.cfg.Server.Host,
		Port:         stack.cfg.Server.Port,
		ReadTimeout:  time.Duration(stack.cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(stack.cfg.Server.WriteTimeout) * time.Second,
	}, handlers, stack.metrics)

	errCh := make(chan error, 1)
	go func() { errCh <- server.Start() }()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-sigCh:
		log.Info().Str("signal", sig.String()).Msg("shutting down")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(ctx)
	}
}
