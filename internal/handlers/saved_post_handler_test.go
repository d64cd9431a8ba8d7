package handlers

import (
	"net/http"
	"testing"

	"github.com/daksh-app/daksh/backend/internal/models"
	"github.com/daksh-app/daksh/backend/internal/repositories/mocks"
	apperrors "github.com/daksh-app/daksh/backend/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestSavedPostHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	posts := mocks.NewMockPostRepository(ctrl)
	saved := newFakeSaved()

	e := newEcho()
	NewSavedPostHandler(saved, posts).RegisterSavedPostRoutes(e.Group("/api/v1", as(studentA)))

	posts.EXPECT().GetPostByID(gomock.Any(), postID).Return(&models.Post{}, nil).Times(2)

	saveURL := "/api/v1/posts/" + postID + "/save"
	rec := serve(e, http.MethodPost, saveURL, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.True(t, saved.saved[studentA+"/"+postID])

	rec = serve(e, http.MethodPost, saveURL, "")
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = serve(e, http.MethodDelete, saveURL, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, map[string]any{"saved": false}, decode(t, rec)["data"])

	rec = serve(e, http.MethodDelete, saveURL, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSavedPostHandler_Rejects(t *testing.T) {
	ctrl := gomock.NewController(t)
	posts := mocks.NewMockPostRepository(ctrl)

	anon := newEcho()
	NewSavedPostHandler(newFakeSaved(), posts).RegisterSavedPostRoutes(anon.Group("/api/v1"))
	assert.Equal(t, http.StatusUnauthorized, serve(anon, http.MethodPost, "/api/v1/posts/"+postID+"/save", "").Code)
	assert.Equal(t, http.StatusUnauthorized, serve(anon, http.MethodDelete, "/api/v1/posts/"+postID+"/save", "").Code)

	e := newEcho()
	NewSavedPostHandler(newFakeSaved(), posts).RegisterSavedPostRoutes(e.Group("/api/v1", as(studentA)))
	posts.EXPECT().GetPostByID(gomock.Any(), "nope").Return(nil, apperrors.Wrap(apperrors.ErrInvalidInput, "invalid post ID format"))
	posts.EXPECT().GetPostByID(gomock.Any(), postID).Return(nil, apperrors.Wrap(apperrors.ErrNotFound, "post not found"))

	assert.Equal(t, http.StatusBadRequest, serve(e, http.MethodPost, "/api/v1/posts/nope/save", "").Code)
	assert.Equal(t, http.StatusNotFound, serve(e, http.MethodPost, "/api/v1/posts/"+postID+"/save", "").Code)
}
