package handlers

import (
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/daksh-app/daksh/backend/internal/middleware"
	"github.com/daksh-app/daksh/backend/internal/models"
	"github.com/daksh-app/daksh/backend/internal/repositories"
	"github.com/daksh-app/daksh/backend/pkg/logger"
	"github.com/labstack/echo/v4"
)

const (
	defaultFeedLimit = 10
	maxFeedLimit     = 50
	// maxFeedPage keeps the skip offset far from overflow.
	maxFeedPage      = 1_000_000
)

// FeedHandler serves the paginated post feed
type FeedHandler struct {
	postRepository      repositories.PostRepository
	statsRepository     repositories.HighlightStatRepository
	savedPostRepository repositories.SavedPostRepository
	log                 logger.Logger
}

// NewFeedHandler creates a new FeedHandler
func NewFeedHandler(
	postRepo repositories.PostRepository,
	statsRepo repositories.HighlightStatRepository,
	savedPostRepo repositories.SavedPostRepository,
	log logger.Logger,
) *FeedHandler {
	return &FeedHandler{
		postRepository:      postRepo,
		statsRepository:     statsRepo,
		savedPostRepository: savedPostRepo,
		log:                 log.WithComponent("feed"),
	}
}

// RegisterFeedRoutes registers feed-related routes
func (h *FeedHandler) RegisterFeedRoutes(g *echo.Group) {
	g.GET("/posts", h.GetFeed)
}

// GetFeed returns one page of posts, newest first
func (h *FeedHandler) GetFeed(c echo.Context) error {
	ctx := c.Request().Context()

	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	if page < 1 {
		page = 1
	}
	if page > maxFeedPage {
		page = maxFeedPage
	}
	if limit < 1 || limit > maxFeedLimit {
		limit = defaultFeedLimit
	}

	skip := int64(page-1) * int64(limit)
	posts, total, err := h.postRepository.GetFeedPage(ctx, skip, int64(limit))
	if err != nil {
		h.log.Error("failed to fetch feed page", "page", page, "error", err)
		return c.JSON(http.StatusInternalServerError, models.FeedPage{
			Success: false,
			Data:    []models.PostView{},
			Error:   "Failed to fetch posts from database",
		})
	}

	postIDs := make([]string, len(posts))
	for i := range posts {
		postIDs[i] = posts[i].ID.Hex()
	}

	likedMap := map[string]bool{}
	savedMap := map[string]bool{}
	if studentID := middleware.StudentID(c); studentID != "" && len(postIDs) > 0 {
		if likedMap, err = h.statsRepository.LikedPostIDs(ctx, studentID, postIDs); err != nil {
			h.log.Warn("failed to load liked flags", "error", err)
			likedMap = map[string]bool{}
		}
		if savedMap, err = h.savedPostRepository.GetSavedPostIDs(ctx, studentID, postIDs); err != nil {
			h.log.Warn("failed to load saved flags", "error", err)
			savedMap = map[string]bool{}
		}
	}

	now := time.Now()
	views := make([]models.PostView, len(posts))
	for i := range posts {
		views[i] = posts[i].View(now)
		views[i].IsLiked = likedMap[postIDs[i]]
		views[i].IsSaved = savedMap[postIDs[i]]
	}

	totalPages := int(math.Ceil(float64(total) / float64(limit)))
	resp := models.FeedPage{
		Success:     true,
		Data:        views,
		CurrentPage: page,
		TotalPages:  totalPages,
		Total:       total,
		HasMore:     page < totalPages,
	}
	if len(views) == 0 {
		resp.Message = "No posts available in database"
	}

	return c.JSON(http.StatusOK, resp)
}
