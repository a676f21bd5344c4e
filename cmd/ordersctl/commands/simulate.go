package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/LuminoLuxx/whatsapp-orders-mvp/internal/app"
)

func simulateCmd(load appLoader) *cobra.Command {
	var from, sid string
	cmd := &cobra.Command{
		Use:   "simulate MESSAGE...",
		Short: "Run a customer message through the chat flow and print the reply",
		Long:  "Runs a message through the same flow as the webhook. Orders are written to the configured storage.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := load(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			reply, err := a.Chat.HandleMessage(ctx, app.Message{
				Body:       strings.Join(args, " "),
				From:       from,
				MessageSID: sid,
			})
			fmt.Fprintln(cmd.OutOrStdout(), reply.Text)
			return err
		},
	}
	cmd.Flags().StringVar(&from, "from", "whatsapp:+10000000000", "sender phone")
	cmd.Flags().StringVar(&sid, "sid", "", "message SID; repeat one to exercise idempotency")
	return cmd
}
