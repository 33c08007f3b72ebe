package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/timeey-api/internal/models"
	"github.com/timeey-api/internal/service"
)

// contextUserKey is where the auth middleware stores the matched
// credentials for downstream handlers
const contextUserKey = "userCredentials"

// errorMiddleware serializes every error pushed onto the gin context as a
// uniform {"errors": [...]} body. Domain errors keep their own status
// code; anything else renders as a generic 500.
func errorMiddleware(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err
		log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("Request failed")

		// Schema failures carry one entry per invalid field
		var valErrs *models.ValidationErrors
		if errors.As(err, &valErrs) {
			c.JSON(http.StatusBadRequest, gin.H{"errors": valErrs.Errors})
			return
		}

		appErr := asDomainError(err)
		c.JSON(appErr.Code, gin.H{"errors": []*models.Error{appErr}})
	}
}

// basicAuthMiddleware decodes the Authorization header and matches the
// credentials against the "Login Info" sheet. A missing header is a 400;
// anything that does not resolve to an exact row match is a 401.
func basicAuthMiddleware(users service.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			abortWithError(c, models.NewError(
				models.ErrMissingAuthorizationHeader,
				"authorization header is required",
				http.StatusBadRequest,
			))
			return
		}

		username, password, ok := c.Request.BasicAuth()
		if !ok {
			abortWithError(c, models.NewError(
				models.ErrInvalidCredentials,
				"invalid authorization header",
				http.StatusUnauthorized,
			))
			return
		}

		creds, err := users.Authenticate(c.Request.Context(), username, password)
		if err != nil {
			abortWithError(c, err)
			return
		}

		c.Set(contextUserKey, creds)
		c.Next()
	}
}

// currentUser returns the credentials attached by basicAuthMiddleware
func currentUser(c *gin.Context) *models.UserCredentials {
	creds, _ := c.MustGet(contextUserKey).(*models.UserCredentials)
	return creds
}

func abortWithError(c *gin.Context, err error) {
	appErr := asDomainError(err)
	c.AbortWithStatusJSON(appErr.Code, gin.H{"errors": []*models.Error{appErr}})
}

func asDomainError(err error) *models.Error {
	var appErr *models.Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return models.NewError(models.ErrServerError, "internal server error", http.StatusInternalServerError)
}
