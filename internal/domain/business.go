package domain

import (
	"strconv"
	"strings"
)

type OrderMode string

const (
	OrderModePickup   OrderMode = "pickup"
	OrderModeDelivery OrderMode = "delivery"
	OrderModeBoth     OrderMode = "both"
)

const (
	DefaultCurrencySymbol = "$"
	DefaultMenuPageSize   = 8
)

// BusinessConfig is the single row of shop settings the bot reads on every message.
type BusinessConfig struct {
	BusinessName   string
	OrderMode      OrderMode
	CurrencySymbol string
	Hours          string
	Address        string
	MenuPageSize   int
}

// ParseOrderMode normalises a raw order mode cell. Unknown values are kept as typed.
func ParseOrderMode(raw string) OrderMode {
	return OrderMode(strings.ToLower(strings.TrimSpace(raw)))
}

// ParseMenuPageSize falls back to DefaultMenuPageSize for blank or unusable values.
func ParseMenuPageSize(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n <= 0 {
		return DefaultMenuPageSize
	}
	return n
}
