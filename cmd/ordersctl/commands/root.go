// Package commands implements the ordersctl operator CLI.
package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/LuminoLuxx/whatsapp-orders-mvp/internal/bootstrap"
	"github.com/LuminoLuxx/whatsapp-orders-mvp/internal/config"
	"github.com/LuminoLuxx/whatsapp-orders-mvp/internal/logging"
)

var logLevel string

func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return NewRootCommand().ExecuteContext(ctx)
}

// NewRootCommand builds the command tree. opts are passed to bootstrap.New by the
// commands that need live storage.
func NewRootCommand(opts ...bootstrap.Option) *cobra.Command {
	root := &cobra.Command{
		Use:          "ordersctl",
		Short:        "Operate the WhatsApp ordering service",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.LoadDotEnv()
			if err != nil {
				return fmt.Errorf("load %s: %w", path, err)
			}
			return nil
		},
	}

	root.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level for service output")

	load := func(ctx context.Context) (*bootstrap.App, error) {
		return loadApp(ctx, opts...)
	}
	root.AddCommand(migrateCmd(), catalogCmd(load), simulateCmd(load))
	return root
}

func newLogger() (zerolog.Logger, error) {
	return logging.New(os.Stderr, logLevel, "console")
}

type appLoader func(ctx context.Context) (*bootstrap.App, error)

// loadApp builds the same services the API server runs with.
func loadApp(ctx context.Context, opts ...bootstrap.Option) (*bootstrap.App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	logger, err := newLogger()
	if err != nil {
		return nil, err
	}
	return bootstrap.New(ctx, cfg, logger, opts...)
}
