package service

import (
	"context"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/timeey-api/internal/models"
	"github.com/timeey-api/internal/repository"
)

// userService answers credential queries from the "Login Info" sheet
type userService struct {
	repo repository.CredentialsRepository
	log  zerolog.Logger
}

func newUserService(repo repository.CredentialsRepository, log zerolog.Logger) UserService {
	return &userService{
		repo: repo,
		log:  log.With().Str("service", "user").Logger(),
	}
}

// ListUsernames returns every known username, in sheet order
func (s *userService) ListUsernames(ctx context.Context) ([]string, error) {
	credentials, err := s.repo.GetAllUserCredentials(ctx)
	if err != nil {
		return nil, err
	}

	usernames := make([]string, 0, len(credentials))
	for _, creds := range credentials {
		usernames = append(usernames, creds.Username)
	}

	s.log.Debug().Int("count", len(usernames)).Msg("Listed usernames")
	return usernames, nil
}

// Authenticate checks for an exact username+password match and returns
// the matched credentials.
func (s *userService) Authenticate(ctx context.Context, username, password string) (*models.UserCredentials, error) {
	credentials, err := s.repo.GetAllUserCredentials(ctx)
	if err != nil {
		return nil, err
	}

	for _, creds := range credentials {
		if creds.Username == username && creds.Password == password {
			return &creds, nil
		}
	}

	s.log.Warn().Str("username", username).Msg("Invalid credentials")
	return nil, models.NewError(
		models.ErrInvalidCredentials,
		"invalid username or password",
		http.StatusUnauthorized,
	)
}
