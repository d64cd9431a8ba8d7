package handlers

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/daksh-app/daksh/backend/internal/models"
	"github.com/daksh-app/daksh/backend/internal/ratelimit"
	"github.com/daksh-app/daksh/backend/internal/repositories/mocks"
	"github.com/daksh-app/daksh/backend/pkg/logger"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type statsFixture struct {
	e     *echo.Echo
	posts *mocks.MockPostRepository
	stats *mocks.MockHighlightStatRepository
}

func newStatsFixture(t *testing.T, viewer string, limiter ratelimit.Limiter) *statsFixture {
	ctrl := gomock.NewController(t)
	f := &statsFixture{
		e:     newEcho(),
		posts: mocks.NewMockPostRepository(ctrl),
		stats: mocks.NewMockHighlightStatRepository(ctrl),
	}
	g := f.e.Group("/api/video-assignment/:postId", as(viewer))
	NewHighlightStatsHandler(f.stats, f.posts, limiter, logger.NewNop()).RegisterHighlightStatsRoutes(g)
	return f
}

// expectCounters waits for the background counter update.
func (f *statsFixture) expectCounters(t *testing.T, likes, comments int64) {
	t.Helper()
	done := make(chan struct{})
	f.posts.EXPECT().AdjustCounters(gomock.Any(), postID, likes, comments).
		DoAndReturn(func(context.Context, string, int64, int64) error {
			close(done)
			return nil
		})
	t.Cleanup(func() {
		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Error("counters were not adjusted")
		}
	})
}

const statsURL = "/api/video-assignment/" + postID + "/highlight-stats"

func TestHighlightStats_PostComment(t *testing.T) {
	f := newStatsFixture(t, studentA, fixedLimiter(true))

	text := "Great post"
	f.stats.EXPECT().UpsertComment(gomock.Any(), postID, studentA, text).Return(&models.HighlightStat{
		ID:        7,
		PostID:    postID,
		StudentID: studentA,
		Comment:   &text,
		Student:   &models.Student{ID: studentA, Username: "asha"},
	}, true, nil)
	f.expectCounters(t, 0, 1)

	rec := serve(f.e, http.MethodPost, statsURL, `{"comment":"  Great post  "}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	body := decode(t, rec)
	assert.Equal(t, true, body["success"])
	comment := body["comment"].(map[string]any)
	assert.Equal(t, float64(7), comment["id"])
	assert.Equal(t, "Great post", comment["comment"])
	student := comment["student"].(map[string]any)
	assert.Equal(t, "asha", student["user"].(map[string]any)["username"])
}

func TestHighlightStats_EditCommentKeepsCount(t *testing.T) {
	f := newStatsFixture(t, studentA, nil)

	text := "edited"
	f.stats.EXPECT().UpsertComment(gomock.Any(), postID, studentA, text).
		Return(&models.HighlightStat{ID: 7, PostID: postID, StudentID: studentA, Comment: &text}, false, nil)

	rec := serve(f.e, http.MethodPost, statsURL, `{"comment":"edited"}`)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestHighlightStats_PostRejects(t *testing.T) {
	tests := []struct {
		name    string
		viewer  string
		limiter ratelimit.Limiter
		url     string
		body    string
		code    int
	}{
		{"bad post id", studentA, nil, "/api/video-assignment/nope/highlight-stats", `{"like":true}`, http.StatusBadRequest},
		{"nothing to do", studentA, nil, statsURL, `{}`, http.StatusBadRequest},
		{"blank comment", studentA, nil, statsURL, `{"comment":"   "}`, http.StatusBadRequest},
		{"anonymous without id", "", nil, statsURL, `{"like":true}`, http.StatusBadRequest},
		{"anonymous with bad id", "", nil, statsURL, `{"like":true,"studentId":"abc"}`, http.StatusBadRequest},
		{"acting for someone else", studentA, nil, statsURL, `{"like":true,"studentId":"` + studentB + `"}`, http.StatusForbidden},
		{"rate limited", studentA, fixedLimiter(false), statsURL, `{"comment":"hi"}`, http.StatusTooManyRequests},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newStatsFixture(t, tt.viewer, tt.limiter)
			rec := serve(f.e, http.MethodPost, tt.url, tt.body)
			assert.Equal(t, tt.code, rec.Code, rec.Body.String())
		})
	}
}

func TestHighlightStats_LikeAnonymousWithStudentID(t *testing.T) {
	f := newStatsFixture(t, "", nil)

	f.stats.EXPECT().SetLiked(gomock.Any(), postID, studentB, true).
		Return(&models.HighlightStat{ID: 3, PostID: postID, StudentID: studentB, Liked: true}, true, nil)
	f.expectCounters(t, 1, 0)

	rec := serve(f.e, http.MethodPost, statsURL, `{"like":true,"studentId":"`+studentB+`"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	stat := decode(t, rec)["highlightStat"].(map[string]any)
	assert.Equal(t, true, stat["liked"])
}

func TestHighlightStats_LikeTwiceDoesNotCount(t *testing.T) {
	f := newStatsFixture(t, studentA, nil)

	f.stats.EXPECT().SetLiked(gomock.Any(), postID, studentA, true).
		Return(&models.HighlightStat{ID: 3, Liked: true}, false, nil)

	rec := serve(f.e, http.MethodPost, statsURL, `{"like":true}`)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestHighlightStats_Unlike(t *testing.T) {
	f := newStatsFixture(t, studentA, nil)

	f.stats.EXPECT().SetLiked(gomock.Any(), postID, studentA, false).
		Return(&models.HighlightStat{ID: 3}, true, nil)
	f.expectCounters(t, -1, 0)

	rec := serve(f.e, http.MethodDelete, statsURL, "")
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestHighlightStats_GetStats(t *testing.T) {
	f := newStatsFixture(t, "", nil)

	first, second := "first", "second"
	f.stats.EXPECT().ListComments(gomock.Any(), postID).Return([]models.HighlightStat{
		{ID: 1, StudentID: studentA, Comment: &first, Student: &models.Student{ID: studentA, Username: "asha"}},
		{ID: 2, StudentID: studentB, Comment: &second},
	}, nil)
	f.stats.EXPECT().LikeStatus(gomock.Any(), postID, studentB).Return(models.PostLikeStatus{Likes: 4, Liked: true}, nil)
	f.stats.EXPECT().LikeStatus(gomock.Any(), postID, "").Return(models.PostLikeStatus{Likes: 4}, nil)

	rec := serve(f.e, http.MethodGet, statsURL+"?type=comments", "")
	require.Equal(t, http.StatusOK, rec.Code)
	comments := decode(t, rec)["comments"].([]any)
	require.Len(t, comments, 2)
	assert.Equal(t, "first", comments[0].(map[string]any)["comment"])
	assert.Equal(t, studentB, comments[1].(map[string]any)["student"].(map[string]any)["id"])

	rec = serve(f.e, http.MethodGet, statsURL+"?studentId="+studentB, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, map[string]any{"likes": float64(4), "liked": true}, decode(t, rec))

	// A malformed viewer id still gets the public count.
	rec = serve(f.e, http.MethodGet, statsURL+"?studentId=abc", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, false, decode(t, rec)["liked"])

	rec = serve(f.e, http.MethodGet, statsURL, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
