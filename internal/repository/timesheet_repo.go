package repository

import (
	"context"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/timeey-api/internal/converters"
	"github.com/timeey-api/internal/database"
	"github.com/timeey-api/internal/models"
)

// timesheetRepo reads and writes the "Timesheet" sheet through the range
// store. Every read is a full-sheet fetch (subject to the store's cache)
// filtered client-side; the sheet offers no query pushdown.
type timesheetRepo struct {
	store database.RangeStore
	log   zerolog.Logger
}

// NewTimesheetRepo creates a new timesheet repository
func NewTimesheetRepo(store database.RangeStore, log zerolog.Logger) TimesheetRepository {
	return &timesheetRepo{
		store: store,
		log:   log.With().Str("repository", "timesheet").Logger(),
	}
}

// GetTimesheet reads every timesheet record, skipping the header row
func (r *timesheetRepo) GetTimesheet(ctx context.Context) ([]models.TimesheetRecord, error) {
	rows, err := r.store.GetRange(ctx, timesheetSheetRange)
	if err != nil {
		return nil, err
	}

	if len(rows) <= 1 {
		return nil, nil
	}

	records := make([]models.TimesheetRecord, 0, len(rows)-1)
	for i, row := range rows[1:] {
		record, convErr := converters.RowToTimesheetRecord(row)
		if convErr != nil {
			return nil, models.NewParsingError(i+2, row, convErr)
		}
		records = append(records, record)
	}

	r.log.Debug().Int("count", len(records)).Msg("Loaded timesheet records")
	return records, nil
}

// GetTimesheetRecordByID returns the record with the given id together
// with its zero-based position in the header-stripped sheet. The position
// is what update needs to compute the row's range address.
func (r *timesheetRepo) GetTimesheetRecordByID(ctx context.Context, id string) (models.TimesheetRecord, int, error) {
	records, err := r.GetTimesheet(ctx)
	if err != nil {
		return nil, 0, err
	}

	for position, record := range records {
		if record.GetID() == id {
			return record, position, nil
		}
	}

	return nil, 0, models.NewError(
		models.ErrRecordNotFound,
		fmt.Sprintf("timesheet record with id: '%s' not found", id),
		http.StatusNotFound,
	)
}

// GetClockInRecord returns the user's open record, or nil when the user
// is clocked out. Being clocked out is a normal state, not an error.
func (r *timesheetRepo) GetClockInRecord(ctx context.Context, username string) (*models.OpenTimesheetRecord, error) {
	records, err := r.GetTimesheet(ctx)
	if err != nil {
		return nil, err
	}

	for _, record := range records {
		if open, ok := record.(models.OpenTimesheetRecord); ok && open.Username == username {
			return &open, nil
		}
	}

	return nil, nil
}

// AppendTimesheet converts the record to a row and appends it to the sheet
func (r *timesheetRepo) AppendTimesheet(ctx context.Context, record models.TimesheetRecord) error {
	row, convErr := converters.TimesheetRecordToRow(record)
	if convErr != nil {
		return models.NewErrorWithData(
			models.ErrValidation,
			convErr.Error(),
			http.StatusBadRequest,
			record,
		)
	}

	if err := r.store.AppendRange(ctx, timesheetSheetRange, [][]string{row}); err != nil {
		return err
	}

	r.log.Info().Str("id", record.GetID()).Str("username", record.GetUsername()).Msg("Appended timesheet record")
	return nil
}

// UpdateTimesheet overwrites the single sheet row holding the record. The
// row position is re-resolved by id to tolerate rows having shifted since
// the record was first read.
func (r *timesheetRepo) UpdateTimesheet(ctx context.Context, record models.TimesheetRecord) error {
	_, position, err := r.GetTimesheetRecordByID(ctx, record.GetID())
	if err != nil {
		return err
	}

	row, convErr := converters.TimesheetRecordToRow(record)
	if convErr != nil {
		return models.NewErrorWithData(
			models.ErrValidation,
			convErr.Error(),
			http.StatusBadRequest,
			record,
		)
	}

	// +2: sheet rows are 1-indexed and row 1 is the header
	rangeSpec := fmt.Sprintf("Timesheet!%s%d:%s%d",
		timesheetStartColumn, position+2, timesheetEndColumn, position+2)

	if err := r.store.SetRange(ctx, rangeSpec, [][]string{row}); err != nil {
		return err
	}

	r.log.Info().Str("id", record.GetID()).Int("position", position).Msg("Updated timesheet record")
	return nil
}
