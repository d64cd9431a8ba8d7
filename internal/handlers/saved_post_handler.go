package handlers

import (
	"net/http"

	"github.com/daksh-app/daksh/backend/internal/middleware"
	"github.com/daksh-app/daksh/backend/internal/models"
	"github.com/daksh-app/daksh/backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

// SavedPostHandler handles saved post HTTP requests
type SavedPostHandler struct {
	savedPostRepository repositories.SavedPostRepository
	postRepository      repositories.PostRepository
}

// NewSavedPostHandler creates a new SavedPostHandler
func NewSavedPostHandler(savedPostRepo repositories.SavedPostRepository, postRepo repositories.PostRepository) *SavedPostHandler {
	return &SavedPostHandler{
		savedPostRepository: savedPostRepo,
		postRepository:      postRepo,
	}
}

// RegisterSavedPostRoutes registers saved post routes
func (h *SavedPostHandler) RegisterSavedPostRoutes(g *echo.Group) {
	g.POST("/posts/:id/save", h.SavePost)
	g.DELETE("/posts/:id/save", h.UnsavePost)
}

// SavePost saves/bookmarks a post
func (h *SavedPostHandler) SavePost(c echo.Context) error {
	ctx := c.Request().Context()
	studentID := middleware.StudentID(c)
	if studentID == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	postID := c.Param("id")
	if _, err := h.postRepository.GetPostByID(ctx, postID); err != nil {
		return toHTTPError(err, "Failed to load post")
	}

	savedPost := &models.SavedPost{
		StudentID: studentID,
		PostID:    postID,
	}
	if err := h.savedPostRepository.SavePost(ctx, savedPost); err != nil {
		return toHTTPError(err, "Failed to save post")
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"saved": true}})
}

// UnsavePost removes a post from saved
func (h *SavedPostHandler) UnsavePost(c echo.Context) error {
	studentID := middleware.StudentID(c)
	if studentID == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	if err := h.savedPostRepository.UnsavePost(c.Request().Context(), studentID, c.Param("id")); err != nil {
		return toHTTPError(err, "Failed to unsave post")
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"saved": false}})
}
