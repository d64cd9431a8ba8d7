package handlers

import (
	"net/http"
	"strconv"

	"github.com/daksh-app/daksh/backend/internal/models"
	"github.com/daksh-app/daksh/backend/internal/repositories"
	"github.com/daksh-app/daksh/backend/pkg/logger"
	"github.com/labstack/echo/v4"
)

// CommentHandler handles likes on comments
type CommentHandler struct {
	commentLikeRepository repositories.CommentLikeRepository
	statsRepository       repositories.HighlightStatRepository
	log                   logger.Logger
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(commentLikeRepo repositories.CommentLikeRepository, statsRepo repositories.HighlightStatRepository, log logger.Logger) *CommentHandler {
	return &CommentHandler{
		commentLikeRepository: commentLikeRepo,
		statsRepository:       statsRepo,
		log:                   log.WithComponent("comment-likes"),
	}
}

// RegisterCommentRoutes registers routes under /video-assignment/:postId
func (h *CommentHandler) RegisterCommentRoutes(g *echo.Group) {
	g.GET("/highlight-stats/comment-like", h.GetCommentLike)
	g.POST("/highlight-stats/comment-like", h.LikeComment)
	g.DELETE("/highlight-stats/comment-like", h.UnlikeComment)
	g.GET("/highlight-stats/comment-likes", h.GetCommentLikes)
}

func parseCommentID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "commentId is required")
	}
	return uint(id), nil
}

// commentOnPost loads a comment and checks it belongs to postID.
func (h *CommentHandler) commentOnPost(c echo.Context, postID string, commentID uint) error {
	stat, err := h.statsRepository.GetByID(c.Request().Context(), commentID)
	if err != nil {
		return toHTTPError(err, "Failed to load comment")
	}
	if stat.PostID != postID || stat.Comment == nil {
		return echo.NewHTTPError(http.StatusNotFound, "comment not found")
	}
	return nil
}

// GetCommentLike returns the like count of a comment and whether the viewer liked it
func (h *CommentHandler) GetCommentLike(c echo.Context) error {
	if _, err := postIDParam(c); err != nil {
		return err
	}
	commentID, err := parseCommentID(c.QueryParam("commentId"))
	if err != nil {
		return err
	}

	status, err := h.commentLikeRepository.Status(c.Request().Context(), commentID, viewerStudent(c, c.QueryParam("studentId")))
	if err != nil {
		return toHTTPError(err, "Failed to fetch comment like")
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "count": status.Count, "liked": status.Liked})
}

// GetCommentLikes returns the like status of every comment on the post in one call
func (h *CommentHandler) GetCommentLikes(c echo.Context) error {
	postID, err := postIDParam(c)
	if err != nil {
		return err
	}

	statuses, err := h.commentLikeRepository.StatusesForPost(c.Request().Context(), postID, viewerStudent(c, c.QueryParam("studentId")))
	if err != nil {
		return toHTTPError(err, "Failed to fetch comment likes")
	}

	out := make(map[string]models.CommentLikeStatus, len(statuses))
	for id, status := range statuses {
		out[strconv.FormatUint(uint64(id), 10)] = status
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "statuses": out})
}

// LikeComment likes a comment; liking twice is a no-op
func (h *CommentHandler) LikeComment(c echo.Context) error {
	postID, err := postIDParam(c)
	if err != nil {
		return err
	}

	var req models.CommentLikeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if req.CommentID == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "commentId is required")
	}
	studentID, err := actingStudent(c, req.StudentID)
	if err != nil {
		return err
	}
	if err := h.commentOnPost(c, postID, req.CommentID); err != nil {
		return err
	}

	if err := h.commentLikeRepository.Like(c.Request().Context(), req.CommentID, studentID); err != nil {
		return toHTTPError(err, "Failed to like comment")
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "liked": true})
}

// UnlikeComment removes the viewer's like; removing a missing like is a no-op
func (h *CommentHandler) UnlikeComment(c echo.Context) error {
	if _, err := postIDParam(c); err != nil {
		return err
	}
	commentID, err := parseCommentID(c.QueryParam("commentId"))
	if err != nil {
		return err
	}
	studentID, err := actingStudent(c, c.QueryParam("studentId"))
	if err != nil {
		return err
	}

	if err := h.commentLikeRepository.Unlike(c.Request().Context(), commentID, studentID); err != nil {
		return toHTTPError(err, "Failed to unlike comment")
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "liked": false})
}
