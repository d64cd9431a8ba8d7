package repositories

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/daksh-app/daksh/backend/internal/models"
	apperrors "github.com/daksh-app/daksh/backend/pkg/errors"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const (
	postA    = "665f1c2a9b1e8a0012345678"
	postB    = "665f1c2a9b1e8a0087654321"
	studentA = "665f1c2a9b1e8a00aaaaaaaa"
	studentB = "665f1c2a9b1e8a00bbbbbbbb"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })

	dialector := postgres.New(postgres.Config{
		Conn:                 mockDB,
		DriverName:           "postgres",
		PreferSimpleProtocol: true,
	})
	db, err := gorm.Open(dialector, &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)

	t.Cleanup(func() { assert.NoError(t, mock.ExpectationsWereMet()) })
	return db, mock
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, isUniqueViolation(&pgconn.PgError{Code: "23505"}))
	assert.True(t, isUniqueViolation(gorm.ErrDuplicatedKey))
	assert.False(t, isUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, isUniqueViolation(gorm.ErrRecordNotFound))
}

func TestFollowRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("duplicate follow is a conflict", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectQuery(`INSERT INTO "follows"`).WillReturnError(&pgconn.PgError{Code: "23505"})

		err := NewPostgresFollowRepository(db).CreateFollow(ctx, &models.Follow{FollowerID: studentA, FollowingID: studentB})
		assert.True(t, apperrors.IsConflict(err))
	})

	t.Run("unfollow without a follow", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectExec(`DELETE FROM "follows"`).WillReturnResult(sqlmock.NewResult(0, 0))

		err := NewPostgresFollowRepository(db).DeleteFollow(ctx, studentA, studentB)
		assert.True(t, apperrors.IsNotFound(err))
	})

	t.Run("is following", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectQuery(`SELECT count\(\*\) FROM "follows"`).
			WithArgs(studentA, studentB).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

		ok, err := NewPostgresFollowRepository(db).IsFollowing(ctx, studentA, studentB)
		require.NoError(t, err)
		assert.True(t, ok)
	})
}

func TestSavedPostRepository_GetSavedPostIDs(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery(`SELECT \* FROM "saved_posts"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "student_id", "post_id"}).AddRow(1, studentA, postB))

	repo := NewPostgresSavedPostRepository(db)
	saved, err := repo.GetSavedPostIDs(context.Background(), studentA, []string{postA, postB})
	require.NoError(t, err)
	assert.Equal(t, map[string]bool{postB: true}, saved)

	// No query for anonymous viewers or empty pages.
	saved, err = repo.GetSavedPostIDs(context.Background(), "", []string{postA})
	require.NoError(t, err)
	assert.Empty(t, saved)
}

func TestHighlightStatRepository_LikedPostIDs(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery(`SELECT "post_id" FROM "highlight_stats"`).
		WillReturnRows(sqlmock.NewRows([]string{"post_id"}).AddRow(postA))

	liked, err := NewPostgresHighlightStatRepository(db).LikedPostIDs(context.Background(), studentA, []string{postA, postB})
	require.NoError(t, err)
	assert.Equal(t, map[string]bool{postA: true}, liked)
}

func TestHighlightStatRepository_LikeStatus(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery(`SELECT count\(\*\) FROM "highlight_stats"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(5))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "highlight_stats"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	status, err := NewPostgresHighlightStatRepository(db).LikeStatus(context.Background(), postA, studentA)
	require.NoError(t, err)
	assert.Equal(t, int64(5), status.Likes)
	assert.True(t, status.Liked)
}

func TestHighlightStatRepository_SetLiked(t *testing.T) {
	ctx := context.Background()
	statRows := func(liked bool) *sqlmock.Rows {
		return sqlmock.NewRows([]string{"id", "post_id", "student_id", "comment", "liked"}).
			AddRow(7, postA, studentA, nil, liked)
	}

	t.Run("first like claims the row before locking it", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectBegin()
		mock.ExpectQuery(`INSERT INTO "highlight_stats".*ON CONFLICT.*DO NOTHING`).
			WillReturnRows(sqlmock.NewRows([]string{"liked", "id"}).AddRow(false, 7))
		mock.ExpectQuery(`SELECT \* FROM "highlight_stats" .*FOR UPDATE`).WillReturnRows(statRows(false))
		mock.ExpectExec(`UPDATE "highlight_stats" SET`).WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		stat, changed, err := NewPostgresHighlightStatRepository(db).SetLiked(ctx, postA, studentA, true)
		require.NoError(t, err)
		assert.True(t, changed)
		assert.True(t, stat.Liked)
	})

	t.Run("row written concurrently is updated rather than conflicting", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectBegin()
		mock.ExpectQuery(`INSERT INTO "highlight_stats".*ON CONFLICT.*DO NOTHING`).
			WillReturnRows(sqlmock.NewRows([]string{"liked", "id"}))
		mock.ExpectQuery(`SELECT \* FROM "highlight_stats" .*FOR UPDATE`).WillReturnRows(statRows(true))
		mock.ExpectCommit()

		_, changed, err := NewPostgresHighlightStatRepository(db).SetLiked(ctx, postA, studentA, true)
		require.NoError(t, err)
		assert.False(t, changed)
	})

	t.Run("unlike without a row inserts nothing", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT \* FROM "highlight_stats" .*FOR UPDATE`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))
		mock.ExpectCommit()

		stat, changed, err := NewPostgresHighlightStatRepository(db).SetLiked(ctx, postA, studentA, false)
		require.NoError(t, err)
		assert.False(t, changed)
		assert.Nil(t, stat)
	})
}

func TestHighlightStatRepository_GetByIDNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery(`SELECT \* FROM "highlight_stats"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := NewPostgresHighlightStatRepository(db).GetByID(context.Background(), 42)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestHighlightStatRepository_CountersByPost(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery(`SELECT post_id, COUNT\(\*\) FILTER \(WHERE liked\) AS likes`).
		WillReturnRows(sqlmock.NewRows([]string{"post_id", "likes", "comments"}).
			AddRow(postA, 3, 2).
			AddRow(postB, 0, 1))

	counters, err := NewPostgresHighlightStatRepository(db).CountersByPost(context.Background())
	require.NoError(t, err)
	assert.Equal(t, map[string]PostCounters{
		postA: {PostID: postA, Likes: 3, Comments: 2},
		postB: {PostID: postB, Likes: 0, Comments: 1},
	}, counters)
}

func TestCommentLikeRepository_StatusesForPost(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery(`SELECT h.id AS comment_id, COUNT\(cl.id\) AS count`).
		WithArgs(studentA, postA).
		WillReturnRows(sqlmock.NewRows([]string{"comment_id", "count", "liked"}).
			AddRow(1, 2, true).
			AddRow(4, 0, false))

	statuses, err := NewPostgresCommentLikeRepository(db).StatusesForPost(context.Background(), postA, studentA)
	require.NoError(t, err)
	require.Len(t, statuses, 2)
	assert.Equal(t, int64(2), statuses[1].Count)
	assert.True(t, statuses[1].Liked)
	assert.False(t, statuses[4].Liked)
}

func TestStudentRepository_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery(`SELECT \* FROM "students"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := NewPostgresStudentRepository(db).GetStudentByFirebaseUID(context.Background(), "uid-1")
	assert.True(t, apperrors.IsNotFound(err))
}
