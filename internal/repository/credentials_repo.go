package repository

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/timeey-api/internal/converters"
	"github.com/timeey-api/internal/database"
	"github.com/timeey-api/internal/models"
)

// credentialsRepo reads the "Login Info" sheet through the range store
type credentialsRepo struct {
	store database.RangeStore
	log   zerolog.Logger
}

// NewCredentialsRepo creates a new credentials repository
func NewCredentialsRepo(store database.RangeStore, log zerolog.Logger) CredentialsRepository {
	return &credentialsRepo{
		store: store,
		log:   log.With().Str("repository", "credentials").Logger(),
	}
}

// GetAllUserCredentials reads every credential row, skipping the header.
// The first malformed row aborts the read with a parsing error carrying
// the 1-based sheet row number.
func (r *credentialsRepo) GetAllUserCredentials(ctx context.Context) ([]models.UserCredentials, error) {
	rows, err := r.store.GetRange(ctx, loginSheetRange)
	if err != nil {
		return nil, err
	}

	if len(rows) <= 1 {
		return nil, nil
	}

	records := make([]models.UserCredentials, 0, len(rows)-1)
	for i, row := range rows[1:] {
		creds, convErr := converters.RowToUserCredentials(row)
		if convErr != nil {
			return nil, models.NewParsingError(i+2, row, convErr)
		}
		records = append(records, *creds)
	}

	r.log.Debug().Int("count", len(records)).Msg("Loaded user credentials")
	return records, nil
}
