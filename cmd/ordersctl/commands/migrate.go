package commands

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/LuminoLuxx/whatsapp-orders-mvp/internal/bootstrap"
	"github.com/LuminoLuxx/whatsapp-orders-mvp/migrations"
)

func migrateCmd() *cobra.Command {
	var (
		databaseURL string
		list        bool
	)
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending Postgres migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if list {
				names, err := migrations.Names()
				if err != nil {
					return err
				}
				for _, name := range names {
					fmt.Fprintln(out, name)
				}
				return nil
			}

			if databaseURL == "" {
				databaseURL = os.Getenv("DATABASE_URL")
			}
			if databaseURL == "" {
				return errors.New("DATABASE_URL is not set; pass --database-url")
			}
			logger, err := newLogger()
			if err != nil {
				return err
			}
			pool, err := bootstrap.OpenPostgres(cmd.Context(), databaseURL, logger)
			if err != nil {
				return err
			}
			pool.Close()
			fmt.Fprintln(out, "migrations up to date")
			return nil
		},
	}
	cmd.Flags().StringVar(&databaseURL, "database-url", "", "Postgres DSN (default $DATABASE_URL)")
	cmd.Flags().BoolVar(&list, "list", false, "list embedded migrations without connecting")
	return cmd
}
