package handlers

import (
	"bytes"
	"context"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"sync"
	"testing"

	"github.com/daksh-app/daksh/backend/internal/models"
	"github.com/daksh-app/daksh/backend/internal/repositories/mocks"
	apperrors "github.com/daksh-app/daksh/backend/pkg/errors"
	"github.com/daksh-app/daksh/backend/pkg/logger"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type fakeMedia struct {
	mu      sync.Mutex
	objects map[string][]byte
	deleted []string
}

func (m *fakeMedia) Upload(_ context.Context, key string, body io.Reader, _ string) (string, error) {
	data, err := io.ReadAll(body)
	if err != nil {
		return "", err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.objects == nil {
		m.objects = map[string][]byte{}
	}
	m.objects[key] = data
	return "https://media.example/" + key, nil
}

func (m *fakeMedia) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.objects, key)
	m.deleted = append(m.deleted, key)
	return nil
}

type fakeStudents map[string]*models.Student

func (f fakeStudents) GetStudentByID(_ context.Context, id string) (*models.Student, error) {
	if s, ok := f[id]; ok {
		return s, nil
	}
	return nil, apperrors.Wrap(apperrors.ErrNotFound, "student not found")
}

func (f fakeStudents) GetStudentByFirebaseUID(context.Context, string) (*models.Student, error) {
	return nil, apperrors.Wrap(apperrors.ErrNotFound, "student not found")
}

var students = fakeStudents{
	studentA: {ID: studentA, Username: "mentor.asha", ProfilePhoto: "https://cdn.example/a.png", Role: models.RoleMentor},
	studentB: {ID: studentB, Username: "ravi", Role: models.RoleStudent},
}

func multipartPost(t *testing.T, fields map[string]string, withFile bool) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if withFile {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", `form-data; name="media"; filename="Clip.MP4"`)
		h.Set("Content-Type", "video/mp4")
		part, err := w.CreatePart(h)
		require.NoError(t, err)
		_, err = part.Write([]byte("fake video"))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/posts", &buf)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	return req
}

func newPostFixture(t *testing.T, viewer string) (*echo.Echo, *mocks.MockPostRepository, *fakeMedia) {
	ctrl := gomock.NewController(t)
	posts := mocks.NewMockPostRepository(ctrl)
	media := &fakeMedia{}
	e := newEcho()
	NewPostHandler(posts, students, media, logger.NewNop()).RegisterPostRoutes(e.Group("/api/v1", as(viewer)))
	return e, posts, media
}

func TestPostHandler_CreatePost(t *testing.T) {
	e, posts, media := newPostFixture(t, studentA)

	var stored *models.Post
	posts.EXPECT().CreatePost(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, p *models.Post) error {
		stored = p
		return nil
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, multipartPost(t, map[string]string{
		"title":    "Week 3",
		"caption":  " Keep going ",
		"hashtags": "focus, #grind,focus,, ",
	}, true))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	require.NotNil(t, stored)
	assert.Equal(t, studentA, stored.MentorID)
	assert.Equal(t, "mentor.asha", stored.Username)
	assert.Equal(t, models.MediaTypeVideo, stored.MediaType)
	assert.Equal(t, "Keep going", stored.Caption)
	assert.Equal(t, []string{"focus", "grind"}, stored.Hashtags)
	require.Len(t, stored.Images, 1)
	assert.True(t, strings.HasPrefix(stored.Images[0], "https://media.example/posts/"))
	assert.True(t, strings.HasSuffix(stored.Images[0], ".mp4"))
	assert.Len(t, media.objects, 1)
}

func TestPostHandler_CreatePost_RemovesMediaOnFailure(t *testing.T) {
	e, posts, media := newPostFixture(t, studentA)
	posts.EXPECT().CreatePost(gomock.Any(), gomock.Any()).Return(errors.New("mongo down"))

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, multipartPost(t, nil, true))
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Empty(t, media.objects)
	assert.Len(t, media.deleted, 1)
}

func TestPostHandler_CreatePost_Rejects(t *testing.T) {
	tests := []struct {
		name     string
		viewer   string
		withFile bool
		code     int
	}{
		{"anonymous", "", true, http.StatusUnauthorized},
		{"not a mentor", studentB, true, http.StatusForbidden},
		{"unknown user", "665f1c2a9b1e8a00cccccccc", true, http.StatusNotFound},
		{"no media", studentA, false, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, _, media := newPostFixture(t, tt.viewer)
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, multipartPost(t, map[string]string{"title": "x"}, tt.withFile))
			assert.Equal(t, tt.code, rec.Code, rec.Body.String())
			assert.Empty(t, media.objects)
		})
	}
}

func TestPostHandler_GetPost(t *testing.T) {
	e, posts, _ := newPostFixture(t, studentA)
	posts.EXPECT().GetPostByID(gomock.Any(), postID).Return(&models.Post{Title: "Hello"}, nil)
	posts.EXPECT().GetPostByID(gomock.Any(), "bad").Return(nil, apperrors.Wrap(apperrors.ErrInvalidInput, "invalid post ID format"))

	rec := serve(e, http.MethodGet, "/api/v1/posts/"+postID, "")
	require.Equal(t, http.StatusOK, rec.Code)
	data := decode(t, rec)["data"].(map[string]any)
	assert.Equal(t, "Hello", data["caption"])

	assert.Equal(t, http.StatusBadRequest, serve(e, http.MethodGet, "/api/v1/posts/bad", "").Code)
}

func TestParseHashtags(t *testing.T) {
	assert.Equal(t, []string{}, parseHashtags(""))
	assert.Equal(t, []string{"a", "b", "c"}, parseHashtags(" #a,b , #c,a,#"))
}

func TestHashtagHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	posts := mocks.NewMockPostRepository(ctrl)
	posts.EXPECT().DistinctHashtags(gomock.Any()).Return([]string{"focus", "grind"}, nil)

	e := newEcho()
	NewHashtagHandler(posts).RegisterHashtagRoutes(e.Group("/api"))

	rec := serve(e, http.MethodGet, "/api/hashtags", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []any{"focus", "grind"}, decode(t, rec)["tags"])
}

func TestHealthCheck(t *testing.T) {
	e := newEcho()
	e.GET("/health", HealthCheck)
	rec := serve(e, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "healthy", decode(t, rec)["status"])
}
