package handlers

import (
	"net/http"

	"github.com/daksh-app/daksh/backend/internal/middleware"
	"github.com/daksh-app/daksh/backend/internal/models"
	"github.com/daksh-app/daksh/backend/internal/repositories"
	apperrors "github.com/daksh-app/daksh/backend/pkg/errors"
	"github.com/labstack/echo/v4"
)

// FollowHandler handles follow/unfollow HTTP requests
type FollowHandler struct {
	followRepository repositories.FollowRepository
}

// NewFollowHandler creates a new FollowHandler
func NewFollowHandler(followRepo repositories.FollowRepository) *FollowHandler {
	return &FollowHandler{followRepository: followRepo}
}

// RegisterFollowRoutes registers follow routes
func (h *FollowHandler) RegisterFollowRoutes(g *echo.Group) {
	g.POST("/follow", h.Follow)
	g.DELETE("/follow", h.Unfollow)
	g.GET("/follow/check", h.CheckFollow)
}

// bindFollow reads and checks a follow request. Authenticated callers can
// only follow on their own behalf.
func bindFollow(c echo.Context) (*models.FollowRequest, error) {
	var req models.FollowRequest
	if err := c.Bind(&req); err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if req.FollowerID == "" || req.FollowingID == "" {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "followerId and followingId are required")
	}
	if err := c.Validate(req); err != nil {
		return nil, err
	}
	if authID := middleware.StudentID(c); authID != "" && authID != req.FollowerID {
		return nil, echo.NewHTTPError(http.StatusForbidden, "followerId does not match the authenticated user")
	}
	return &req, nil
}

// Follow creates a follow relationship
func (h *FollowHandler) Follow(c echo.Context) error {
	req, err := bindFollow(c)
	if err != nil {
		return err
	}
	if req.FollowerID == req.FollowingID {
		return echo.NewHTTPError(http.StatusBadRequest, "Cannot follow yourself")
	}

	follow := &models.Follow{FollowerID: req.FollowerID, FollowingID: req.FollowingID}
	if err := h.followRepository.CreateFollow(c.Request().Context(), follow); err != nil {
		if apperrors.IsConflict(err) {
			return echo.NewHTTPError(http.StatusBadRequest, "Already following this user")
		}
		return toHTTPError(err, "Failed to follow user")
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"following": true}})
}

// Unfollow removes a follow relationship
func (h *FollowHandler) Unfollow(c echo.Context) error {
	req, err := bindFollow(c)
	if err != nil {
		return err
	}

	if err := h.followRepository.DeleteFollow(c.Request().Context(), req.FollowerID, req.FollowingID); err != nil {
		return toHTTPError(err, "Failed to unfollow user")
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"following": false}})
}

// CheckFollow reports whether followerId follows followingId
func (h *FollowHandler) CheckFollow(c echo.Context) error {
	followerID := c.QueryParam("followerId")
	followingID := c.QueryParam("followingId")
	if followerID == "" || followingID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "followerId and followingId are required")
	}

	following, err := h.followRepository.IsFollowing(c.Request().Context(), followerID, followingID)
	if err != nil {
		return toHTTPError(err, "Failed to check follow status")
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "isFollowing": following})
}
