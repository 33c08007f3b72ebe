package database

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	sheets "google.golang.org/api/sheets/v4"

	"github.com/timeey-api/internal/config"
	"github.com/timeey-api/internal/models"
)

// GoogleSheets is the RangeStore implementation backed by the Google
// Sheets values API. There is one instance per process, owned by the
// entry point and injected into the repositories.
type GoogleSheets struct {
	spreadsheetID   string
	credentialsFile string
	service         *sheets.Service
	log             zerolog.Logger
}

// NewGoogleSheets creates an unconnected Google Sheets range store
func NewGoogleSheets(cfg *config.SheetsConfig, log zerolog.Logger) *GoogleSheets {
	return &GoogleSheets{
		spreadsheetID:   cfg.SpreadsheetID,
		credentialsFile: cfg.CredentialsFile,
		log:             log.With().Str("component", "sheets").Logger(),
	}
}

// Connect establishes the credentialed Sheets API session
func (s *GoogleSheets) Connect(ctx context.Context) error {
	opts := []option.ClientOption{option.WithScopes(sheets.SpreadsheetsScope)}
	if s.credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(s.credentialsFile))
	}

	service, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return storeError("connect to Google Sheets", err)
	}

	s.service = service
	s.log.Info().Str("spreadsheet_id", s.spreadsheetID).Msg("Connected to Google Sheets")
	return nil
}

// GetRange returns all rows in the addressed range
func (s *GoogleSheets) GetRange(ctx context.Context, rangeSpec string) ([][]string, error) {
	if s.service == nil {
		return nil, notConnected("get", rangeSpec)
	}

	s.log.Debug().Str("range", rangeSpec).Msg("Getting range")
	resp, err := s.service.Spreadsheets.Values.Get(s.spreadsheetID, rangeSpec).Context(ctx).Do()
	if err != nil {
		return nil, storeError(fmt.Sprintf("get range '%s'", rangeSpec), err)
	}

	rows := make([][]string, 0, len(resp.Values))
	for _, row := range resp.Values {
		cells := make([]string, 0, len(row))
		for _, cell := range row {
			cells = append(cells, fmt.Sprint(cell))
		}
		rows = append(rows, cells)
	}

	return rows, nil
}

// SetRange overwrites exactly the addressed cell range
func (s *GoogleSheets) SetRange(ctx context.Context, rangeSpec string, values [][]string) error {
	if s.service == nil {
		return notConnected("set", rangeSpec)
	}

	s.log.Debug().Str("range", rangeSpec).Msg("Setting range")
	_, err := s.service.Spreadsheets.Values.
		Update(s.spreadsheetID, rangeSpec, valueRange(values)).
		ValueInputOption("USER_ENTERED").
		Context(ctx).
		Do()
	if err != nil {
		return storeError(fmt.Sprintf("set range '%s'", rangeSpec), err)
	}

	return nil
}

// AppendRange inserts values as new rows after existing data in the sheet
func (s *GoogleSheets) AppendRange(ctx context.Context, rangeSpec string, values [][]string) error {
	if s.service == nil {
		return notConnected("append", rangeSpec)
	}

	s.log.Debug().Str("range", rangeSpec).Msg("Appending range")
	_, err := s.service.Spreadsheets.Values.
		Append(s.spreadsheetID, rangeSpec, valueRange(values)).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS"). // never overwrite existing rows
		Context(ctx).
		Do()
	if err != nil {
		return storeError(fmt.Sprintf("append range '%s'", rangeSpec), err)
	}

	return nil
}

func valueRange(values [][]string) *sheets.ValueRange {
	converted := make([][]interface{}, 0, len(values))
	for _, row := range values {
		cells := make([]interface{}, 0, len(row))
		for _, cell := range row {
			cells = append(cells, cell)
		}
		converted = append(converted, cells)
	}
	return &sheets.ValueRange{Values: converted}
}

func notConnected(op, rangeSpec string) *models.Error {
	return models.NewError(
		models.ErrServerError,
		fmt.Sprintf("tried to %s range '%s' before connecting to the range store", op, rangeSpec),
		http.StatusInternalServerError,
	)
}

// storeError maps an underlying API failure to a RANGE_STORE_ERROR
// carrying the status code the store reported, defaulting to 500.
func storeError(op string, err error) *models.Error {
	code := http.StatusInternalServerError
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) && apiErr.Code != 0 {
		code = apiErr.Code
	}

	return models.NewError(
		models.ErrRangeStore,
		fmt.Sprintf("failed to %s: %v", op, err),
		code,
	)
}
