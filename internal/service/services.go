package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/timeey-api/internal/config"
	"github.com/timeey-api/internal/models"
	"github.com/timeey-api/internal/repository"
)

// TimesheetService defines the clock-in/clock-out workflow
type TimesheetService interface {
	ClockIn(ctx context.Context, username string, req *models.ClockInRequest) (*models.OpenTimesheetRecord, error)
	ClockOut(ctx context.Context, username string, req *models.ClockOutRequest) (*models.ClosedTimesheetRecord, error)
	History(ctx context.Context, username string) ([]models.TimesheetRecord, error)
}

// UserService defines credential lookup and authentication
type UserService interface {
	ListUsernames(ctx context.Context) ([]string, error)
	Authenticate(ctx context.Context, username, password string) (*models.UserCredentials, error)
}

// Services holds all service interfaces
type Services struct {
	Timesheet TimesheetService
	User      UserService
}

// NewServices creates all services
func NewServices(repos *repository.Repositories, cfg *config.Config, log zerolog.Logger) *Services {
	return &Services{
		Timesheet: newTimesheetService(repos.Timesheet, log),
		User:      newUserService(repos.Credentials, log),
	}
}
