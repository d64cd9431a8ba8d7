package middleware

import (
	"errors"
	"net/http"

	"github.com/daksh-app/daksh/backend/internal/repositories"
	"github.com/daksh-app/daksh/backend/pkg/logger"
	"github.com/labstack/echo/v4"
)

// AuthConfig configures Authenticate.
type AuthConfig struct {
	JWTSecret string
	// Firebase is optional; when set, tokens that are not valid JWTs are
	// tried as Firebase ID tokens.
	Firebase IDTokenVerifier
	Students repositories.StudentRepository
	// Required rejects anonymous requests with 401.
	Required bool
	Logger   logger.Logger
}

// Authenticate resolves the caller's student id from a bearer JWT or a
// Firebase ID token and stores it under ContextKeyStudentID.
func Authenticate(cfg AuthConfig) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			tokenString, err := bearerToken(c)
			if errors.Is(err, errMissingBearer) {
				if cfg.Required {
					return echo.NewHTTPError(http.StatusUnauthorized, "Missing Authorization header")
				}
				return next(c)
			}
			if err != nil {
				return err
			}

			claims, jwtErr := parseJWT(tokenString, cfg.JWTSecret)
			if jwtErr == nil {
				c.Set(ContextKeyClaims, claims)
				c.Set(ContextKeyStudentID, claims.StudentID)
				return next(c)
			}

			if cfg.Firebase != nil && cfg.Students != nil {
				student, token, fbErr := resolveFirebase(c.Request().Context(), cfg.Firebase, cfg.Students, tokenString)
				if fbErr == nil {
					c.Set("firebaseUID", token.UID)
					c.Set(ContextKeyStudentID, student.ID)
					return next(c)
				}
				if cfg.Logger != nil {
					cfg.Logger.Debug("firebase token rejected", "error", fbErr)
				}
			}

			return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
		}
	}
}
