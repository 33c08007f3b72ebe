package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/timeey-api/internal/models"
	"github.com/timeey-api/internal/service"
)

// TimesheetHandler handles the authenticated /user endpoints
type TimesheetHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewTimesheetHandler creates a new TimesheetHandler
func NewTimesheetHandler(services *service.Services, log zerolog.Logger) *TimesheetHandler {
	return &TimesheetHandler{
		services: services,
		log:      log.With().Str("handler", "timesheet").Logger(),
	}
}

// History handles GET /api/v1/user/history
// Returns the authenticated user's records, newest start first.
func (h *TimesheetHandler) History(c *gin.Context) {
	user := currentUser(c)

	records, err := h.services.Timesheet.History(c.Request.Context(), user.Username)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, records)
}

// ClockIn handles POST /api/v1/user/clock-in
func (h *TimesheetHandler) ClockIn(c *gin.Context) {
	user := currentUser(c)

	var req models.ClockInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(models.NewError(models.ErrValidation, "invalid request body", http.StatusBadRequest))
		return
	}

	record, err := h.services.Timesheet.ClockIn(c.Request.Context(), user.Username, &req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, record)
}

// ClockOut handles POST /api/v1/user/clock-out
func (h *TimesheetHandler) ClockOut(c *gin.Context) {
	user := currentUser(c)

	var req models.ClockOutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(models.NewError(models.ErrValidation, "invalid request body", http.StatusBadRequest))
		return
	}

	record, err := h.services.Timesheet.ClockOut(c.Request.Context(), user.Username, &req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, record)
}
