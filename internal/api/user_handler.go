package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/timeey-api/internal/models"
	"github.com/timeey-api/internal/service"
)

// UserHandler handles user and credential endpoints
type UserHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(services *service.Services, log zerolog.Logger) *UserHandler {
	return &UserHandler{
		services: services,
		log:      log.With().Str("handler", "user").Logger(),
	}
}

// ListUsers handles GET /api/v1/users
// Returns every known username, in sheet order. Unauthenticated.
func (h *UserHandler) ListUsers(c *gin.Context) {
	usernames, err := h.services.User.ListUsernames(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, usernames)
}

// VerifyCredentials handles POST /api/v1/verify-credentials
// Authentication already happened in the middleware; acknowledge it.
func (h *UserHandler) VerifyCredentials(c *gin.Context) {
	c.JSON(http.StatusOK, models.MessageResponse{Message: "Login successful"})
}
