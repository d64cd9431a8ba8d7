package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/daksh-app/daksh/backend/internal/repositories"
	"github.com/daksh-app/daksh/backend/pkg/logger"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEcho() *echo.Echo {
	e := echo.New()
	log := logger.NewNop()
	SetupMiddleware(e, log)
	SetupRoutes(e, Deps{
		Repos:     &repositories.Repositories{},
		JWTSecret: "secret",
		Logger:    log,
	})
	return e
}

func TestSetupRoutes(t *testing.T) {
	e := newTestEcho()

	registered := map[string]bool{}
	for _, r := range e.Routes() {
		registered[r.Method+" "+r.Path] = true
	}

	for _, want := range []string{
		"GET /health",
		"GET /api/posts",
		"GET /api/hashtags",
		"POST /api/follow",
		"DELETE /api/follow",
		"GET /api/follow/check",
		"GET /api/video-assignment/:postId/highlight-stats",
		"POST /api/video-assignment/:postId/highlight-stats",
		"DELETE /api/video-assignment/:postId/highlight-stats",
		"GET /api/video-assignment/:postId/highlight-stats/comment-like",
		"POST /api/video-assignment/:postId/highlight-stats/comment-like",
		"DELETE /api/video-assignment/:postId/highlight-stats/comment-like",
		"GET /api/video-assignment/:postId/highlight-stats/comment-likes",
		"POST /api/v1/posts",
		"GET /api/v1/posts/:id",
		"POST /api/v1/posts/:id/save",
		"DELETE /api/v1/posts/:id/save",
	} {
		assert.True(t, registered[want], want)
	}
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	e := newTestEcho()

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/posts/665f1c2a9b1e8a0012345678/save", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get(echo.HeaderXRequestID))
}
