package repository

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/timeey-api/internal/database"
	"github.com/timeey-api/internal/models"
)

// Sheet ranges. Row 1 of each sheet is a header and is always skipped on
// read; a record at slice index i therefore lives at sheet row i+2.
const (
	loginSheetRange     = "Login Info!A:B"
	timesheetSheetRange = "Timesheet!A:H"

	timesheetStartColumn = "A"
	timesheetEndColumn   = "H"
)

// CredentialsRepository defines the interface for credential data operations
type CredentialsRepository interface {
	GetAllUserCredentials(ctx context.Context) ([]models.UserCredentials, error)
}

// TimesheetRepository defines the interface for timesheet data operations
type TimesheetRepository interface {
	GetTimesheet(ctx context.Context) ([]models.TimesheetRecord, error)
	GetTimesheetRecordByID(ctx context.Context, id string) (models.TimesheetRecord, int, error)
	GetClockInRecord(ctx context.Context, username string) (*models.OpenTimesheetRecord, error)
	AppendTimesheet(ctx context.Context, record models.TimesheetRecord) error
	UpdateTimesheet(ctx context.Context, record models.TimesheetRecord) error
}

// Repositories holds all repository interfaces
type Repositories struct {
	Credentials CredentialsRepository
	Timesheet   TimesheetRepository
}

// New creates all repositories on top of the given range store
func New(store database.RangeStore, log zerolog.Logger) *Repositories {
	return &Repositories{
		Credentials: NewCredentialsRepo(store, log),
		Timesheet:   NewTimesheetRepo(store, log),
	}
}
