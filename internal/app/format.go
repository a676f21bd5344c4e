package app

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/LuminoLuxx/whatsapp-orders-mvp/internal/domain"
)

// formatAmount renders a price the way the shop's chat always has: shortest
// round-trip digits, with a trailing ".0" for whole amounts (12 -> "12.0").
func formatAmount(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

type menuPage struct {
	Products []domain.Product
	Page     int
	Pages    int
}

// paginate splits products into pages of size; page is 1-based and clamped.
func paginate(products []domain.Product, size, page int) menuPage {
	if size <= 0 {
		size = domain.DefaultMenuPageSize
	}
	pages := (len(products) + size - 1) / size
	if pages == 0 {
		pages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > pages {
		page = pages
	}
	start := (page - 1) * size
	end := start + size
	if end > len(products) {
		end = len(products)
	}
	return menuPage{Products: products[start:end], Page: page, Pages: pages}
}

func renderMenu(cfg domain.BusinessConfig, page menuPage) string {
	var b strings.Builder
	fmt.Fprintf(&b, "👋 Hola, bienvenido a %s.\n\n", cfg.BusinessName)
	b.WriteString("Esto es lo que tenemos hoy:\n\n")
	for _, p := range page.Products {
		fmt.Fprintf(&b, "- %s — %s%s\n", p.Name, cfg.CurrencySymbol, formatAmount(p.Price))
	}
	if page.Page < page.Pages {
		fmt.Fprintf(&b, "\nEscribe MENU %d para ver más.\n", page.Page+1)
	}
	b.WriteString("\nPara ordenar, escribe por ejemplo: 2001 x 2")
	return b.String()
}

func renderOrderConfirmation(cfg domain.BusinessConfig, order domain.Order) string {
	item := order.Items[0]
	return fmt.Sprintf(
		"✅ ¡Pedido recibido!\n%d x %s\nTotal: %s%s\nPedido: #%s\n\nTe avisaremos cuando esté listo 🙌",
		item.Qty,
		item.Name,
		cfg.CurrencySymbol,
		formatAmount(order.Total),
		order.ID,
	)
}
