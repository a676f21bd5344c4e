package main

import (
	"os"

	"github.com/LuminoLuxx/whatsapp-orders-mvp/cmd/ordersctl/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
