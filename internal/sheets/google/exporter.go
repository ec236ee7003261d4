// Package google appends expense change rows to a Google Sheets
// spreadsheet, giving the tracker an external append-only backup.
package google

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"

	"outlay/internal/core"
)

type Exporter struct {
	svc           *gsheet.Service
	spreadsheetID string
	sheetName     string
}

// Options carries the settings for the exporter. Exactly one of
// CredentialsFile and CredentialsJSON must be set; CredentialsJSON wins
// when both are.
type Options struct {
	SpreadsheetID   string
	SheetName       string
	CredentialsFile string
	CredentialsJSON string
}

// New creates an exporter authenticated with service account credentials.
func New(ctx context.Context, opts Options) (*Exporter, error) {
	if strings.TrimSpace(opts.SpreadsheetID) == "" {
		return nil, errors.New("missing spreadsheet id")
	}
	sheetName := strings.TrimSpace(opts.SheetName)
	if sheetName == "" {
		sheetName = "Expenses"
	}

	credentials, err := loadCredentials(opts)
	if err != nil {
		return nil, err
	}

	svc, err := gsheet.NewService(ctx,
		goption.WithCredentialsJSON(credentials),
		goption.WithScopes(gsheet.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}

	slog.InfoContext(ctx, "Google Sheets exporter ready",
		"spreadsheet_id", opts.SpreadsheetID,
		"sheet", sheetName)

	return &Exporter{
		svc:           svc,
		spreadsheetID: opts.SpreadsheetID,
		sheetName:     sheetName,
	}, nil
}

func loadCredentials(opts Options) ([]byte, error) {
	if json := strings.TrimSpace(opts.CredentialsJSON); json != "" {
		return []byte(json), nil
	}
	if file := strings.TrimSpace(opts.CredentialsFile); file != "" {
		credentials, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("read credentials file: %w", err)
		}
		return credentials, nil
	}
	return nil, errors.New("missing service account credentials")
}

// AppendExpense appends one row describing an expense change. Rows are
// never updated or removed; the sheet is a chronological log.
func (e *Exporter) AppendExpense(ctx context.Context, action string, expense core.Expense) error {
	if e.svc == nil {
		return errors.New("sheets service not initialized")
	}

	row := []any{
		time.Now().UTC().Format(time.RFC3339),
		action,
		expense.ID,
		expense.Date.String(),
		expense.Category.String(),
		expense.Description,
		expense.Amount.String(),
	}

	rng := fmt.Sprintf("%s!A:G", e.sheetName)
	_, err := e.svc.Spreadsheets.Values.
		Append(e.spreadsheetID, rng, &gsheet.ValueRange{Values: [][]any{row}}).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("append to sheet %s: %w", e.sheetName, err)
	}

	slog.InfoContext(ctx, "Exported expense row",
		"action", action,
		"id", expense.ID,
		"sheet", e.sheetName)

	return nil
}
