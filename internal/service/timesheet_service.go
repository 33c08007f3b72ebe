package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/timeey-api/internal/models"
	"github.com/timeey-api/internal/repository"
	"github.com/timeey-api/internal/timeutil"
)

var validate = validator.New()

// validateRequest checks required fields, reporting one error per invalid
// field. It runs only after the clock-state conflict checks: a user who is
// already clocked in gets a 409 no matter what the body looks like.
func validateRequest(req interface{}) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return models.NewError(models.ErrValidation, err.Error(), http.StatusBadRequest)
	}

	errs := make([]*models.Error, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		errs = append(errs, models.NewError(
			models.ErrValidation,
			fmt.Sprintf("%s is %s", fe.Field(), fe.Tag()),
			http.StatusBadRequest,
		))
	}
	return &models.ValidationErrors{Errors: errs}
}

// timesheetService implements the per-user clock state machine: no open
// record -> clock-in appends one -> clock-out closes it. A closed record
// is terminal for this workflow.
type timesheetService struct {
	repo repository.TimesheetRepository
	log  zerolog.Logger
}

func newTimesheetService(repo repository.TimesheetRepository, log zerolog.Logger) TimesheetService {
	return &timesheetService{
		repo: repo,
		log:  log.With().Str("service", "timesheet").Logger(),
	}
}

// ClockIn appends a fresh open record for the user. Conflicts with a 409
// when the user already has an open record, regardless of the request body.
func (s *timesheetService) ClockIn(ctx context.Context, username string, req *models.ClockInRequest) (*models.OpenTimesheetRecord, error) {
	open, err := s.repo.GetClockInRecord(ctx, username)
	if err != nil {
		return nil, err
	}

	if open != nil {
		s.log.Warn().Str("username", username).Msg("User has already clocked in")
		return nil, models.NewErrorWithData(
			models.ErrAlreadyClockedIn,
			"user has already clocked in",
			http.StatusConflict,
			open,
		)
	}

	if err := validateRequest(req); err != nil {
		return nil, err
	}

	start, derr := timeutil.ParseDatetime(req.StartDatetime)
	if derr != nil {
		return nil, derr
	}

	record := models.OpenTimesheetRecord{
		ID:            uuid.NewString(),
		Username:      username,
		StartDatetime: timeutil.FormatDatetime(start),
		Status:        models.StatusClockedIn,
		Comments:      "",
	}

	if err := s.repo.AppendTimesheet(ctx, record); err != nil {
		return nil, err
	}

	s.log.Info().Str("username", username).Str("id", record.ID).Msg("User clocked in")
	return &record, nil
}

// ClockOut closes the user's open record. Conflicts with a 409 when there
// is no open record or the request targets a different record id.
func (s *timesheetService) ClockOut(ctx context.Context, username string, req *models.ClockOutRequest) (*models.ClosedTimesheetRecord, error) {
	open, err := s.repo.GetClockInRecord(ctx, username)
	if err != nil {
		return nil, err
	}

	if open == nil {
		s.log.Warn().Str("username", username).Msg("User has not clocked in")
		return nil, models.NewError(
			models.ErrNotClockedIn,
			"user has not clocked in",
			http.StatusConflict,
		)
	}

	if err := validateRequest(req); err != nil {
		return nil, err
	}

	if err := validateClockOutRequest(open, req); err != nil {
		return nil, err
	}

	record := models.ClosedTimesheetRecord{
		ID:            open.ID,
		Username:      open.Username,
		StartDatetime: open.StartDatetime,
		EndDatetime:   req.EndDatetime,
		TotalTime:     req.TotalTime,
		Status:        models.StatusPendingApproval,
		Comments:      strings.TrimSpace(req.Comments),
	}

	if err := s.repo.UpdateTimesheet(ctx, record); err != nil {
		return nil, err
	}

	s.log.Info().Str("username", username).Str("id", record.ID).Msg("User clocked out")
	return &record, nil
}

// validateClockOutRequest checks the request against the open record: the
// id must match, the end date must fall on the clock-in date, and the
// claimed total time must equal the recomputed one exactly.
func validateClockOutRequest(open *models.OpenTimesheetRecord, req *models.ClockOutRequest) error {
	if strings.TrimSpace(req.ID) != open.ID {
		return models.NewErrorWithData(
			models.ErrRecordMismatch,
			fmt.Sprintf("clock out request with record id '%s' does not match clock in record with id '%s'", req.ID, open.ID),
			http.StatusConflict,
			map[string]interface{}{"clockInRecord": open, "clockOutRequest": req},
		)
	}

	startDate, _, derr := timeutil.SeparateDateAndTime(open.StartDatetime)
	if derr != nil {
		return derr
	}
	endDate, _, derr := timeutil.SeparateDateAndTime(req.EndDatetime)
	if derr != nil {
		return derr
	}

	if startDate != endDate {
		return models.NewErrorWithData(
			models.ErrRecordValidation,
			fmt.Sprintf("clock out request with end date '%s' does not match clock in record with start date '%s'", endDate, startDate),
			http.StatusBadRequest,
			map[string]interface{}{"clockInRecord": open, "clockOutRequest": req},
		)
	}

	calculated, derr := timeutil.CalculateTotalTime(open.StartDatetime, req.EndDatetime)
	if derr != nil {
		return derr
	}

	if req.TotalTime != calculated {
		return models.NewErrorWithData(
			models.ErrRecordValidation,
			"calculated total time does not match provided total time",
			http.StatusBadRequest,
			map[string]interface{}{
				"startDatetime":       open.StartDatetime,
				"endDatetime":         req.EndDatetime,
				"providedTotalTime":   req.TotalTime,
				"calculatedTotalTime": calculated,
			},
		)
	}

	return nil
}

// History returns the user's records, most recent start first
func (s *timesheetService) History(ctx context.Context, username string) ([]models.TimesheetRecord, error) {
	records, err := s.repo.GetTimesheet(ctx)
	if err != nil {
		return nil, err
	}

	history := make([]models.TimesheetRecord, 0)
	for _, record := range records {
		if record.GetUsername() == username {
			history = append(history, record)
		}
	}

	sort.SliceStable(history, func(i, j int) bool {
		a, aErr := timeutil.ParseDatetime(history[i].GetStartDatetime())
		b, bErr := timeutil.ParseDatetime(history[j].GetStartDatetime())
		if aErr != nil || bErr != nil {
			return false
		}
		return a.After(b)
	})

	return history, nil
}
