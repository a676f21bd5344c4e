package app

import (
	"strconv"
	"time"
)

// newOrderID derives the customer-facing order number from the creation instant.
func newOrderID(now time.Time) string {
	return strconv.FormatInt(now.Unix(), 10)
}
