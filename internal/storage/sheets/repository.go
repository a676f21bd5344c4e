// Package sheets stores the catalog and orders in a Google Sheets spreadsheet with
// the tabs BusinessConfig, Products and Orders.
package sheets

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	gsheets "google.golang.org/api/sheets/v4"

	"github.com/LuminoLuxx/whatsapp-orders-mvp/internal/domain"
)

const (
	configRange       = "BusinessConfig!A2:F2"
	productsRange     = "Products!A2:H"
	ordersAppendRange = "Orders!A2"
	ordersReadRange   = "Orders!A2:I"
	valueInputRaw     = "RAW"
	// Orders are read unformatted so totals come back as numbers whatever the sheet locale.
	renderUnformatted = "UNFORMATTED_VALUE"
)

// NewService builds an authenticated Sheets client from a service account JSON document.
func NewService(ctx context.Context, serviceAccountJSON string, opts ...option.ClientOption) (*gsheets.Service, error) {
	if serviceAccountJSON == "" {
		return nil, fmt.Errorf("missing GOOGLE_SERVICE_ACCOUNT_JSON: %w", domain.ErrStorageNotConfigured)
	}
	creds, err := google.CredentialsFromJSON(ctx, []byte(serviceAccountJSON), gsheets.SpreadsheetsScope)
	if err != nil {
		return nil, fmt.Errorf("parse service account: %w", err)
	}
	opts = append([]option.ClientOption{option.WithCredentials(creds)}, opts...)
	svc, err := gsheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	return svc, nil
}

type Repository struct {
	values        *gsheets.SpreadsheetsValuesService
	spreadsheetID string
}

func NewRepository(svc *gsheets.Service, spreadsheetID string) (*Repository, error) {
	if spreadsheetID == "" {
		return nil, fmt.Errorf("missing GOOGLE_SHEETS_SPREADSHEET_ID: %w", domain.ErrStorageNotConfigured)
	}
	if svc == nil {
		return nil, errors.New("sheets service is nil")
	}
	return &Repository{
		values:        svc.Spreadsheets.Values,
		spreadsheetID: spreadsheetID,
	}, nil
}

func (r *Repository) GetBusinessConfig(ctx context.Context) (*domain.BusinessConfig, error) {
	rows, err := r.read(ctx, configRange, "")
	if err != nil {
		return nil, fmt.Errorf("get business config: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	cfg := parseBusinessConfig(rows[0])
	return &cfg, nil
}

func (r *Repository) ListActiveProducts(ctx context.Context) ([]domain.Product, error) {
	rows, err := r.read(ctx, productsRange, "")
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return parseProducts(rows), nil
}

func (r *Repository) CreateOrder(ctx context.Context, order domain.Order) error {
	row, err := orderRow(order)
	if err != nil {
		return err
	}
	_, err = r.values.Append(r.spreadsheetID, ordersAppendRange, &gsheets.ValueRange{
		Values: [][]interface{}{row},
	}).ValueInputOption(valueInputRaw).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("append order: %w", err)
	}
	return nil
}

// FindOrderByMessageSID scans the Orders tab. Rows written before the message_sid
// column existed never match.
func (r *Repository) FindOrderByMessageSID(ctx context.Context, sid string) (*domain.Order, error) {
	if sid == "" {
		return nil, nil
	}
	rows, err := r.read(ctx, ordersReadRange, renderUnformatted)
	if err != nil {
		return nil, fmt.Errorf("find order: %w", err)
	}
	for _, row := range rows {
		if len(row) < orderColumns || cellString(row, 8) != sid {
			continue
		}
		order, err := parseOrderRow(row)
		if err != nil {
			return nil, err
		}
		return &order, nil
	}
	return nil, nil
}

// read fetches a range. An empty render option keeps the API default (FORMATTED_VALUE).
func (r *Repository) read(ctx context.Context, rng, render string) ([][]interface{}, error) {
	call := r.values.Get(r.spreadsheetID, rng)
	if render != "" {
		call = call.ValueRenderOption(render)
	}
	resp, err := call.Context(ctx).Do()
	if err != nil {
		return nil, err
	}
	return resp.Values, nil
}
