package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"taskhub/internal/errors"
)

// UserIDKey is the echo context key the auth middleware stores the caller under.
const UserIDKey = "user_id"

func currentUserID(c echo.Context) (uuid.UUID, error) {
	id, ok := c.Get(UserIDKey).(uuid.UUID)
	if !ok || id == uuid.Nil {
		return uuid.Nil, respondError(errors.ErrUnauthenticated)
	}
	return id, nil
}

// pathID parses a UUID path parameter. A malformed id cannot name any
// resource, so it gets the same answer as a missing one.
func pathID(c echo.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, respondError(errors.ErrNotFoundOrForbidden)
	}
	return id, nil
}

func respondError(err error) error {
	httpErr := errors.MapErrorToHTTP(err)
	return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
}

func bindAndValidate(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return respondError(errors.ErrInvalidRequest)
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: err.Error(),
			Code:  "VALIDATION_FAILED",
		})
	}
	return nil
}
