package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/rs/zerolog"

	"github.com/LuminoLuxx/whatsapp-orders-mvp/internal/bootstrap"
	"github.com/LuminoLuxx/whatsapp-orders-mvp/internal/config"
	"github.com/LuminoLuxx/whatsapp-orders-mvp/internal/logging"
	transporthttp "github.com/LuminoLuxx/whatsapp-orders-mvp/internal/transport/http"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "api: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	envPath, envErr := config.LoadDotEnv()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, err := logging.New(os.Stdout, cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}
	switch {
	case envErr != nil:
		logger.Warn().Err(envErr).Str("path", envPath).Msg("failed to load .env")
	case envPath != "":
		logger.Info().Str("path", envPath).Msg("loaded env file")
	}

	stopCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := bootstrap.New(stopCtx, cfg, logger)
	if err != nil {
		return fmt.Errorf("bootstrap: %w", err)
	}
	defer a.Close()

	if cfg.TwilioAuthToken == "" {
		logger.Warn().Msg("TWILIO_AUTH_TOKEN not set, webhook signatures are not verified")
	}

	router := transporthttp.NewRouter(transporthttp.RouterConfig{
		Chat:            a.Chat,
		Logger:          logger.With().Str("component", "http").Logger(),
		Metrics:         a.Metrics.Handler(),
		Observer:        a.Metrics,
		TwilioAuthToken: cfg.TwilioAuthToken,
		PublicBaseURL:   cfg.PublicBaseURL,
	})

	server := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Info().Str("addr", cfg.Addr()).Msg("api listening")

	srvErr := make(chan error, 1)
	go func() {
		srvErr <- server.ListenAndServe()
	}()

	select {
	case err := <-srvErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-stopCtx.Done():
		logger.Info().Msg("shutdown signal received, stopping server")
	}

	return shutdown(server, logger)
}

func shutdown(server *http.Server, logger zerolog.Logger) error {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server shutdown: %w", err)
	}
	logger.Info().Msg("server stopped")
	return nil
}
