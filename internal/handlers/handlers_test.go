package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/daksh-app/daksh/backend/internal/middleware"
	"github.com/daksh-app/daksh/backend/internal/models"
	apperrors "github.com/daksh-app/daksh/backend/pkg/errors"
	"github.com/daksh-app/daksh/backend/validators"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

const (
	postID    = "665f1c2a9b1e8a0012345678"
	studentA  = "665f1c2a9b1e8a00aaaaaaaa"
	studentB  = "665f1c2a9b1e8a00bbbbbbbb"
	jsonMedia = echo.MIMEApplicationJSON
)

func newEcho() *echo.Echo {
	e := echo.New()
	e.Validator = validators.NewValidator()
	return e
}

// as authenticates every request of a group as studentID; "" stays anonymous.
func as(studentID string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if studentID != "" {
				c.Set(middleware.ContextKeyStudentID, studentID)
			}
			return next(c)
		}
	}
}

func serve(e *echo.Echo, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, jsonMedia)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

type fakeSaved struct {
	mu    sync.Mutex
	saved map[string]bool
}

func newFakeSaved() *fakeSaved { return &fakeSaved{saved: map[string]bool{}} }

func (f *fakeSaved) SavePost(_ context.Context, s *models.SavedPost) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := s.StudentID + "/" + s.PostID
	if f.saved[key] {
		return apperrors.Wrap(apperrors.ErrConflict, "post already saved")
	}
	f.saved[key] = true
	return nil
}

func (f *fakeSaved) UnsavePost(_ context.Context, studentID, postID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := studentID + "/" + postID
	if !f.saved[key] {
		return apperrors.Wrap(apperrors.ErrNotFound, "saved post not found")
	}
	delete(f.saved, key)
	return nil
}

func (f *fakeSaved) IsPostSaved(_ context.Context, studentID, postID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.saved[studentID+"/"+postID], nil
}

func (f *fakeSaved) GetSavedPostIDs(_ context.Context, studentID string, postIDs []string) (map[string]bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := map[string]bool{}
	for _, id := range postIDs {
		if f.saved[studentID+"/"+id] {
			out[id] = true
		}
	}
	return out, nil
}

type fakeFollows struct {
	mu   sync.Mutex
	rows map[[2]string]bool
}

func newFakeFollows() *fakeFollows { return &fakeFollows{rows: map[[2]string]bool{}} }

func (f *fakeFollows) CreateFollow(_ context.Context, fl *models.Follow) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := [2]string{fl.FollowerID, fl.FollowingID}
	if f.rows[key] {
		return apperrors.Wrap(apperrors.ErrConflict, "Already following this user")
	}
	f.rows[key] = true
	return nil
}

func (f *fakeFollows) DeleteFollow(_ context.Context, followerID, followingID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := [2]string{followerID, followingID}
	if !f.rows[key] {
		return apperrors.Wrap(apperrors.ErrNotFound, "follow relationship not found")
	}
	delete(f.rows, key)
	return nil
}

func (f *fakeFollows) IsFollowing(_ context.Context, followerID, followingID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.rows[[2]string{followerID, followingID}], nil
}

func (f *fakeFollows) GetFollowingIDs(_ context.Context, followerID string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var ids []string
	for k := range f.rows {
		if k[0] == followerID {
			ids = append(ids, k[1])
		}
	}
	return ids, nil
}

type fakeCommentLikes struct {
	mu    sync.Mutex
	likes map[uint]map[string]bool
}

func newFakeCommentLikes() *fakeCommentLikes {
	return &fakeCommentLikes{likes: map[uint]map[string]bool{}}
}

func (f *fakeCommentLikes) Like(_ context.Context, commentID uint, studentID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.likes[commentID] == nil {
		f.likes[commentID] = map[string]bool{}
	}
	f.likes[commentID][studentID] = true
	return nil
}

func (f *fakeCommentLikes) Unlike(_ context.Context, commentID uint, studentID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.likes[commentID], studentID)
	return nil
}

func (f *fakeCommentLikes) Status(_ context.Context, commentID uint, studentID string) (models.CommentLikeStatus, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return models.CommentLikeStatus{
		Count: int64(len(f.likes[commentID])),
		Liked: studentID != "" && f.likes[commentID][studentID],
	}, nil
}

func (f *fakeCommentLikes) StatusesForPost(ctx context.Context, _ string, studentID string) (map[uint]models.CommentLikeStatus, error) {
	f.mu.Lock()
	ids := make([]uint, 0, len(f.likes))
	for id := range f.likes {
		ids = append(ids, id)
	}
	f.mu.Unlock()

	out := make(map[uint]models.CommentLikeStatus, len(ids))
	for _, id := range ids {
		out[id], _ = f.Status(ctx, id, studentID)
	}
	return out, nil
}

type fixedLimiter bool

func (l fixedLimiter) Allow(string) bool { return bool(l) }
