package handlers

import (
	"net/http"

	"github.com/daksh-app/daksh/backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

type HashtagHandler struct {
	postRepository repositories.PostRepository
}

func NewHashtagHandler(postRepo repositories.PostRepository) *HashtagHandler {
	return &HashtagHandler{postRepository: postRepo}
}

func (h *HashtagHandler) RegisterHashtagRoutes(g *echo.Group) {
	g.GET("/hashtags", h.GetHashtags)
}

// GetHashtags returns every hashtag in use, sorted
func (h *HashtagHandler) GetHashtags(c echo.Context) error {
	tags, err := h.postRepository.DistinctHashtags(c.Request().Context())
	if err != nil {
		return toHTTPError(err, "Failed to fetch hashtags")
	}
	return c.JSON(http.StatusOK, echo.Map{"tags": tags})
}
