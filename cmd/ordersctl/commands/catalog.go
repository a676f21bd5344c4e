package commands

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func catalogCmd(load appLoader) *cobra.Command {
	var refresh bool
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Print the business config and active products",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := load(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			if refresh {
				if a.Cache == nil {
					return fmt.Errorf("--refresh needs REDIS_ADDR")
				}
				if err := a.Cache.Invalidate(ctx); err != nil {
					return err
				}
			}

			out := cmd.OutOrStdout()
			cfg, err := a.Catalog.GetBusinessConfig(ctx)
			if err != nil {
				return err
			}
			if cfg == nil {
				fmt.Fprintln(out, "business config: not set")
			} else {
				fmt.Fprintf(out, "business: %s\nmode: %s\nhours: %s\naddress: %s\n\n",
					cfg.BusinessName, cfg.OrderMode, cfg.Hours, cfg.Address)
			}

			products, err := a.Catalog.ListActiveProducts(ctx)
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "NUMBER\tNAME\tPRICE\tID")
			for _, p := range products {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", p.Number, p.Name, strconv.FormatFloat(p.Price, 'f', -1, 64), p.ProductID)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().BoolVar(&refresh, "refresh", false, "drop cached catalog entries before reading")
	return cmd
}
