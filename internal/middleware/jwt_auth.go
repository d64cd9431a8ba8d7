package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/daksh-app/daksh/backend/internal/models"
	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
)

const (
	// ContextKeyStudentID holds the authenticated student id.
	ContextKeyStudentID = "studentID"
	// ContextKeyClaims holds the parsed JWT claims.
	ContextKeyClaims = "user"
)

var errMissingBearer = errors.New("missing bearer token")

// bearerToken extracts "<token>" from "Authorization: Bearer <token>".
func bearerToken(c echo.Context) (string, error) {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return "", errMissingBearer
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "Invalid Authorization header format")
	}
	return parts[1], nil
}

// parseJWT validates an HS256 token signed with secret.
func parseJWT(tokenString, secret string) (*models.JwtCustomClaims, error) {
	claims := &models.JwtCustomClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, echo.NewHTTPError(http.StatusUnauthorized, "Unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid || claims.StudentID == "" {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return claims, nil
}

// StudentID returns the authenticated student id, or "" for anonymous requests.
func StudentID(c echo.Context) string {
	id, _ := c.Get(ContextKeyStudentID).(string)
	return id
}
