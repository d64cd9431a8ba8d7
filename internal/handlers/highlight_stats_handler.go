package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/daksh-app/daksh/backend/internal/models"
	"github.com/daksh-app/daksh/backend/internal/ratelimit"
	"github.com/daksh-app/daksh/backend/internal/repositories"
	"github.com/daksh-app/daksh/backend/pkg/logger"
	"github.com/daksh-app/daksh/backend/validators"
	"github.com/labstack/echo/v4"
)

const (
	maxCommentLength = 500
	counterTimeout   = 5 * time.Second
)

// HighlightStatsHandler serves comments and likes on a post. Each student
// has one stat row per post holding their comment and like flag.
type HighlightStatsHandler struct {
	statsRepository repositories.HighlightStatRepository
	postRepository  repositories.PostRepository
	limiter         ratelimit.Limiter
	log             logger.Logger
}

// NewHighlightStatsHandler creates a new HighlightStatsHandler
func NewHighlightStatsHandler(
	statsRepo repositories.HighlightStatRepository,
	postRepo repositories.PostRepository,
	limiter ratelimit.Limiter,
	log logger.Logger,
) *HighlightStatsHandler {
	return &HighlightStatsHandler{
		statsRepository: statsRepo,
		postRepository:  postRepo,
		limiter:         limiter,
		log:             log.WithComponent("highlight-stats"),
	}
}

// RegisterHighlightStatsRoutes registers routes under /video-assignment/:postId
func (h *HighlightStatsHandler) RegisterHighlightStatsRoutes(g *echo.Group) {
	g.GET("/highlight-stats", h.GetStats)
	g.POST("/highlight-stats", h.PostStat)
	g.DELETE("/highlight-stats", h.Unlike)
}

func postIDParam(c echo.Context) (string, error) {
	postID := c.Param("postId")
	if !validators.IsObjectID(postID) {
		return "", echo.NewHTTPError(http.StatusBadRequest, "Invalid post ID")
	}
	return postID, nil
}

// GetStats lists comments (?type=comments), likes (?type=likes) or the like
// status of one student (?studentId=)
func (h *HighlightStatsHandler) GetStats(c echo.Context) error {
	ctx := c.Request().Context()
	postID, err := postIDParam(c)
	if err != nil {
		return err
	}

	switch c.QueryParam("type") {
	case "comments":
		stats, err := h.statsRepository.ListComments(ctx, postID)
		if err != nil {
			return toHTTPError(err, "Failed to fetch comments")
		}
		comments := make([]models.CommentView, len(stats))
		for i := range stats {
			comments[i] = stats[i].AsComment()
		}
		return c.JSON(http.StatusOK, echo.Map{"success": true, "comments": comments})

	case "likes":
		likes, err := h.statsRepository.ListLikes(ctx, postID)
		if err != nil {
			return toHTTPError(err, "Failed to fetch likes")
		}
		return c.JSON(http.StatusOK, echo.Map{"success": true, "likes": likes})
	}

	if _, ok := c.QueryParams()["studentId"]; ok {
		status, err := h.statsRepository.LikeStatus(ctx, postID, viewerStudent(c, c.QueryParam("studentId")))
		if err != nil {
			return toHTTPError(err, "Failed to fetch like status")
		}
		return c.JSON(http.StatusOK, status)
	}

	return echo.NewHTTPError(http.StatusBadRequest, "Invalid type parameter")
}

// PostStat sets the student's comment and/or like on a post
func (h *HighlightStatsHandler) PostStat(c echo.Context) error {
	ctx := c.Request().Context()
	postID, err := postIDParam(c)
	if err != nil {
		return err
	}

	var req models.HighlightStatRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	studentID, err := actingStudent(c, req.StudentID)
	if err != nil {
		return err
	}
	if req.Comment == nil && req.Like == nil {
		return echo.NewHTTPError(http.StatusBadRequest, "comment or like is required")
	}

	resp := echo.Map{"success": true}
	var likesDelta, commentsDelta int64

	if req.Comment != nil {
		text := strings.TrimSpace(*req.Comment)
		if text == "" || utf8.RuneCountInString(text) > maxCommentLength {
			return echo.NewHTTPError(http.StatusBadRequest, "Comment must be between 1 and 500 characters")
		}
		if h.limiter != nil && !h.limiter.Allow(studentID) {
			return echo.NewHTTPError(http.StatusTooManyRequests, "Too many comments, slow down")
		}

		stat, created, err := h.statsRepository.UpsertComment(ctx, postID, studentID, text)
		if err != nil {
			return toHTTPError(err, "Failed to save comment")
		}
		if created {
			commentsDelta = 1
		}
		resp["highlightStat"] = stat
		resp["comment"] = stat.AsComment()
	}

	if req.Like != nil {
		stat, changed, err := h.statsRepository.SetLiked(ctx, postID, studentID, *req.Like)
		if err != nil {
			return toHTTPError(err, "Failed to update like")
		}
		if changed {
			likesDelta = boolDelta(*req.Like)
		}
		if stat != nil {
			resp["highlightStat"] = stat
		}
	}

	h.adjustCounters(postID, likesDelta, commentsDelta)
	return c.JSON(http.StatusOK, resp)
}

// Unlike clears the student's like on a post
func (h *HighlightStatsHandler) Unlike(c echo.Context) error {
	postID, err := postIDParam(c)
	if err != nil {
		return err
	}
	studentID, err := actingStudent(c, c.QueryParam("studentId"))
	if err != nil {
		return err
	}

	stat, changed, err := h.statsRepository.SetLiked(c.Request().Context(), postID, studentID, false)
	if err != nil {
		return toHTTPError(err, "Failed to remove like")
	}
	if changed {
		h.adjustCounters(postID, -1, 0)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "highlightStat": stat})
}

// adjustCounters updates the denormalized post counters in the background.
// Drift is repaired by the stats reconciler.
func (h *HighlightStatsHandler) adjustCounters(postID string, likesDelta, commentsDelta int64) {
	if likesDelta == 0 && commentsDelta == 0 {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), counterTimeout)
		defer cancel()
		if err := h.postRepository.AdjustCounters(ctx, postID, likesDelta, commentsDelta); err != nil {
			h.log.Warn("failed to adjust post counters", "post_id", postID, "error", err)
		}
	}()
}

func boolDelta(on bool) int64 {
	if on {
		return 1
	}
	return -1
}
