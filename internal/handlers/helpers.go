package handlers

import (
	"net/http"
	"strings"

	"github.com/daksh-app/daksh/backend/internal/middleware"
	apperrors "github.com/daksh-app/daksh/backend/pkg/errors"
	"github.com/daksh-app/daksh/backend/validators"
	"github.com/labstack/echo/v4"
)

// toHTTPError maps repository errors onto HTTP statuses. Unknown errors
// become a 500 with fallback as the message.
func toHTTPError(err error, fallback string) error {
	switch {
	case apperrors.IsInvalidInput(err):
		return echo.NewHTTPError(http.StatusBadRequest, apperrors.GetMessage(err))
	case apperrors.IsNotFound(err):
		return echo.NewHTTPError(http.StatusNotFound, apperrors.GetMessage(err))
	case apperrors.IsConflict(err):
		return echo.NewHTTPError(http.StatusConflict, apperrors.GetMessage(err))
	case apperrors.IsForbidden(err):
		return echo.NewHTTPError(http.StatusForbidden, apperrors.GetMessage(err))
	case apperrors.IsRateLimited(err):
		return echo.NewHTTPError(http.StatusTooManyRequests, apperrors.GetMessage(err))
	}
	return echo.NewHTTPError(http.StatusInternalServerError, fallback).SetInternal(err)
}

// actingStudent decides who is acting. Authenticated callers act as
// themselves and may not name someone else; anonymous callers use the
// supplied id, which must be an ObjectID.
func actingStudent(c echo.Context, supplied string) (string, error) {
	supplied = strings.TrimSpace(supplied)
	if authID := middleware.StudentID(c); authID != "" {
		if supplied != "" && supplied != authID {
			return "", echo.NewHTTPError(http.StatusForbidden, "studentId does not match the authenticated user")
		}
		return authID, nil
	}
	if !validators.IsObjectID(supplied) {
		return "", echo.NewHTTPError(http.StatusBadRequest, "Valid studentId is required")
	}
	return supplied, nil
}

// viewerStudent is the read-side variant: it never fails and returns ""
// when the supplied id is missing or malformed.
func viewerStudent(c echo.Context, supplied string) string {
	if authID := middleware.StudentID(c); authID != "" {
		return authID
	}
	if validators.IsObjectID(supplied) {
		return supplied
	}
	return ""
}
