package sheets

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/LuminoLuxx/whatsapp-orders-mvp/internal/domain"
)

const (
	orderColumns  = 9
	createdLayout = time.RFC3339
)

func cellString(row []interface{}, i int) string {
	if i >= len(row) || row[i] == nil {
		return ""
	}
	switch v := row[i].(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return fmt.Sprint(row[i])
}

// parseAmount reads a numeric cell. Unformatted reads return float64; text cells
// from comma-decimal locales ("37,5") are accepted as well.
func parseAmount(cell interface{}) (float64, error) {
	if f, ok := cell.(float64); ok {
		return f, nil
	}
	raw := strings.TrimSpace(cellString([]interface{}{cell}, 0))
	if strings.Contains(raw, ",") && !strings.Contains(raw, ".") {
		raw = strings.Replace(raw, ",", ".", 1)
	}
	return strconv.ParseFloat(raw, 64)
}

// parseBusinessConfig reads the BusinessConfig!A2:F2 row. Missing trailing cells are blank.
func parseBusinessConfig(row []interface{}) domain.BusinessConfig {
	symbol := cellString(row, 2)
	if symbol == "" {
		symbol = domain.DefaultCurrencySymbol
	}
	return domain.BusinessConfig{
		BusinessName:   cellString(row, 0),
		OrderMode:      domain.ParseOrderMode(cellString(row, 1)),
		CurrencySymbol: symbol,
		Hours:          cellString(row, 3),
		Address:        cellString(row, 4),
		MenuPageSize:   domain.ParseMenuPageSize(cellString(row, 5)),
	}
}

// parseProducts reads Products!A2:H rows:
// product_id, number, name, price, active, keywords, unit, featured.
// Short rows, unparsable prices and inactive products are skipped.
func parseProducts(rows [][]interface{}) []domain.Product {
	products := make([]domain.Product, 0, len(rows))
	for _, row := range rows {
		if len(row) < 5 {
			continue
		}
		price, err := strconv.ParseFloat(strings.TrimSpace(cellString(row, 3)), 64)
		if err != nil {
			continue
		}
		if strings.ToLower(strings.TrimSpace(cellString(row, 4))) != "true" {
			continue
		}
		products = append(products, domain.Product{
			ProductID: cellString(row, 0),
			Number:    strings.TrimSpace(cellString(row, 1)),
			Name:      strings.TrimSpace(cellString(row, 2)),
			Price:     price,
		})
	}
	return products
}

// encodeItems writes the items_json cell in the layout existing sheets already hold:
// ", " and ": " separators, unescaped non-ASCII text and prices that always carry a
// decimal point ({"qty": 2, "price": 12.0}).
func encodeItems(items []domain.OrderItem) (string, error) {
	var b strings.Builder
	b.WriteByte('[')
	for i, item := range items {
		if i > 0 {
			b.WriteString(", ")
		}
		id, err := jsonString(item.ProductID)
		if err != nil {
			return "", err
		}
		name, err := jsonString(item.Name)
		if err != nil {
			return "", err
		}
		price, err := decimalFloat(item.Price)
		if err != nil {
			return "", err
		}
		fmt.Fprintf(&b, `{"product_id": %s, "name": %s, "qty": %d, "price": %s}`, id, name, item.Qty, price)
	}
	b.WriteByte(']')
	return b.String(), nil
}

func jsonString(s string) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return "", err
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

func decimalFloat(f float64) (string, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return "", fmt.Errorf("price %v is not a finite number", f)
	}
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s, nil
}

// orderRow lays an order out as the Orders sheet columns:
// order_id, phone, items, total, status, order_type, address, created_at, message_sid.
func orderRow(order domain.Order) ([]interface{}, error) {
	items, err := encodeItems(order.Items)
	if err != nil {
		return nil, fmt.Errorf("encode items: %w", err)
	}
	return []interface{}{
		order.ID,
		order.Phone,
		items,
		order.Total,
		string(order.Status),
		order.OrderType,
		order.Address,
		order.CreatedAt.Format(createdLayout),
		order.MessageSID,
	}, nil
}

func parseOrderRow(row []interface{}) (domain.Order, error) {
	order := domain.Order{
		ID:         cellString(row, 0),
		Phone:      cellString(row, 1),
		Status:     domain.OrderStatus(cellString(row, 4)),
		OrderType:  cellString(row, 5),
		Address:    cellString(row, 6),
		MessageSID: cellString(row, 8),
	}
	if raw := cellString(row, 2); raw != "" {
		if err := json.Unmarshal([]byte(raw), &order.Items); err != nil {
			return domain.Order{}, fmt.Errorf("decode items of order %s: %w", order.ID, err)
		}
	}
	if strings.TrimSpace(cellString(row, 3)) != "" {
		total, err := parseAmount(row[3])
		if err != nil {
			return domain.Order{}, fmt.Errorf("parse total of order %s: %w", order.ID, err)
		}
		order.Total = total
	}
	if raw := cellString(row, 7); raw != "" {
		if created, err := time.Parse(createdLayout, raw); err == nil {
			order.CreatedAt = created
		}
	}
	return order, nil
}
