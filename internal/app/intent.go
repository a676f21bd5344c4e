package app

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/LuminoLuxx/whatsapp-orders-mvp/internal/domain"
)

type Intent string

const (
	IntentMenu        Intent = "menu"
	IntentOrder       Intent = "order"
	IntentHelp        Intent = "help"
	IntentConfigError Intent = "config_error"
	IntentError       Intent = "error"
)

var greetings = map[string]struct{}{
	"hola":          {},
	"buenas":        {},
	"buenos dias":   {},
	"buenas tardes": {},
	"buenas noches": {},
}

var menuPhrases = []string{"menu", "qué venden", "que venden"}

func normalizeBody(body string) string {
	return strings.ToLower(strings.TrimSpace(body))
}

// classify expects a normalized body. Greetings and menu phrases win over the order check.
func classify(body string) Intent {
	if _, ok := greetings[body]; ok {
		return IntentMenu
	}
	for _, phrase := range menuPhrases {
		if strings.Contains(body, phrase) {
			return IntentMenu
		}
	}
	if strings.Contains(body, "x") {
		return IntentOrder
	}
	return IntentHelp
}

// menuPageNumber reads "menu 2" style requests; anything else is page 1.
func menuPageNumber(body string) int {
	fields := strings.Fields(body)
	for i, f := range fields {
		if f != "menu" || i+1 >= len(fields) {
			continue
		}
		n, err := strconv.Atoi(fields[i+1])
		if errors.Is(err, strconv.ErrRange) && !strings.HasPrefix(fields[i+1], "-") {
			// Too large for an int; paginate clamps it to the last page.
			return math.MaxInt
		}
		if err == nil && n > 0 {
			return n
		}
	}
	return 1
}

type orderRequest struct {
	Number string
	Qty    int
}

// parseOrder splits "2001 x 2" at the first "x". A non-integer quantity is a format
// error; a non-positive one is ErrInvalidQuantity.
func parseOrder(body string) (orderRequest, error) {
	left, right, ok := strings.Cut(body, "x")
	if !ok {
		return orderRequest{}, domain.ErrInvalidOrderFormat
	}
	qty, err := strconv.Atoi(strings.TrimSpace(right))
	if err != nil {
		return orderRequest{}, domain.ErrInvalidOrderFormat
	}
	if qty <= 0 {
		return orderRequest{}, domain.ErrInvalidQuantity
	}
	return orderRequest{Number: strings.TrimSpace(left), Qty: qty}, nil
}
