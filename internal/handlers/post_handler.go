package handlers

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/daksh-app/daksh/backend/internal/middleware"
	"github.com/daksh-app/daksh/backend/internal/models"
	"github.com/daksh-app/daksh/backend/internal/repositories"
	"github.com/daksh-app/daksh/backend/internal/storage"
	"github.com/daksh-app/daksh/backend/pkg/logger"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const maxMediaSize = 50 << 20

// PostHandler handles HTTP requests related to posts
type PostHandler struct {
	postRepository    repositories.PostRepository
	studentRepository repositories.StudentRepository
	media             storage.MediaStore
	log               logger.Logger
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(postRepo repositories.PostRepository, studentRepo repositories.StudentRepository, media storage.MediaStore, log logger.Logger) *PostHandler {
	return &PostHandler{
		postRepository:    postRepo,
		studentRepository: studentRepo,
		media:             media,
		log:               log.WithComponent("posts"),
	}
}

// RegisterPostRoutes registers post-related routes
func (h *PostHandler) RegisterPostRoutes(g *echo.Group) {
	g.POST("/posts", h.CreatePost)
	g.GET("/posts/:id", h.GetPost)
}

// CreatePost uploads the media file and stores a new post for the
// authenticated mentor
func (h *PostHandler) CreatePost(c echo.Context) error {
	ctx := c.Request().Context()

	studentID := middleware.StudentID(c)
	if studentID == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}
	mentor, err := h.studentRepository.GetStudentByID(ctx, studentID)
	if err != nil {
		return toHTTPError(err, "Failed to load user")
	}
	if mentor.Role != models.RoleMentor {
		return echo.NewHTTPError(http.StatusForbidden, "Only mentors can create posts")
	}

	var req models.CreatePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(req); err != nil {
		return err
	}

	file, err := c.FormFile("media")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "media file is required")
	}
	if file.Size > maxMediaSize {
		return echo.NewHTTPError(http.StatusBadRequest, "media file too large")
	}

	src, err := file.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "unable to read media file")
	}
	defer src.Close()

	contentType := file.Header.Get("Content-Type")
	key := fmt.Sprintf("posts/%s%s", uuid.NewString(), strings.ToLower(filepath.Ext(file.Filename)))
	url, err := h.media.Upload(ctx, key, src, contentType)
	if err != nil {
		h.log.Error("media upload failed", "key", key, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to upload media")
	}

	post := &models.Post{
		MentorID:  mentor.ID,
		Username:  mentor.Username,
		Avatar:    mentor.ProfilePhoto,
		Images:    []string{url},
		MediaType: mediaTypeFor(contentType),
		Title:     strings.TrimSpace(req.Title),
		Caption:   strings.TrimSpace(req.Caption),
		Hashtags:  parseHashtags(req.Hashtags),
		CreatedAt: time.Now(),
	}

	if err := h.postRepository.CreatePost(ctx, post); err != nil {
		if delErr := h.media.Delete(ctx, key); delErr != nil {
			h.log.Warn("failed to remove orphaned media", "key", key, "error", delErr)
		}
		return toHTTPError(err, "Failed to create post")
	}

	return c.JSON(http.StatusCreated, echo.Map{"success": true, "data": post.View(time.Now())})
}

// GetPost retrieves a post by ID
func (h *PostHandler) GetPost(c echo.Context) error {
	post, err := h.postRepository.GetPostByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return toHTTPError(err, "Failed to fetch post")
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": post.View(time.Now())})
}

func mediaTypeFor(contentType string) string {
	if strings.HasPrefix(contentType, "video/") {
		return models.MediaTypeVideo
	}
	return models.MediaTypeImage
}

// parseHashtags splits "a, #b ,c" into ["a" "b" "c"], dropping blanks and
// repeats while keeping order.
func parseHashtags(raw string) []string {
	tags := []string{}
	seen := map[string]bool{}
	for _, part := range strings.Split(raw, ",") {
		tag := strings.TrimPrefix(strings.TrimSpace(part), "#")
		if tag == "" || seen[tag] {
			continue
		}
		seen[tag] = true
		tags = append(tags, tag)
	}
	return tags
}
