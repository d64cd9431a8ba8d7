package repositories

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/daksh-app/daksh/backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CommentLikeRepository defines the interface for comment like operations
type CommentLikeRepository interface {
	Like(ctx context.Context, commentID uint, studentID string) error
	Unlike(ctx context.Context, commentID uint, studentID string) error
	Status(ctx context.Context, commentID uint, studentID string) (models.CommentLikeStatus, error)
	// StatusesForPost returns the like status of every comment on a post in
	// a single round trip.
	StatusesForPost(ctx context.Context, postID, studentID string) (map[uint]models.CommentLikeStatus, error)
}

type postgresCommentLikeRepository struct {
	db *gorm.DB
}

func NewPostgresCommentLikeRepository(db *gorm.DB) CommentLikeRepository {
	return &postgresCommentLikeRepository{db: db}
}

// Like is idempotent: liking twice keeps one row.
func (r *postgresCommentLikeRepository) Like(ctx context.Context, commentID uint, studentID string) error {
	like := &models.CommentLike{CommentID: commentID, StudentID: studentID}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(like).Error
}

// Unlike removes the like if present.
func (r *postgresCommentLikeRepository) Unlike(ctx context.Context, commentID uint, studentID string) error {
	return r.db.WithContext(ctx).
		Where("comment_id = ? AND student_id = ?", commentID, studentID).
		Delete(&models.CommentLike{}).Error
}

func (r *postgresCommentLikeRepository) Status(ctx context.Context, commentID uint, studentID string) (models.CommentLikeStatus, error) {
	var status models.CommentLikeStatus
	if err := r.db.WithContext(ctx).Model(&models.CommentLike{}).
		Where("comment_id = ?", commentID).
		Count(&status.Count).Error; err != nil {
		return status, err
	}
	if studentID == "" {
		return status, nil
	}

	var mine int64
	if err := r.db.WithContext(ctx).Model(&models.CommentLike{}).
		Where("comment_id = ? AND student_id = ?", commentID, studentID).
		Count(&mine).Error; err != nil {
		return status, err
	}
	status.Liked = mine > 0
	return status, nil
}

type commentLikeRow struct {
	CommentID uint
	Count     int64
	Liked     bool
}

func (r *postgresCommentLikeRepository) StatusesForPost(ctx context.Context, postID, studentID string) (map[uint]models.CommentLikeStatus, error) {
	query, args, err := SqBuilder.
		Select("h.id AS comment_id", "COUNT(cl.id) AS count").
		Column(squirrel.Expr("COALESCE(BOOL_OR(cl.student_id = ?), false) AS liked", studentID)).
		From("highlight_stats h").
		LeftJoin("comment_likes cl ON cl.comment_id = h.id").
		Where(squirrel.Eq{"h.post_id": postID}).
		Where("h.comment IS NOT NULL").
		GroupBy("h.id").
		ToSql()
	if err != nil {
		return nil, ErrBadQuery
	}

	var rows []commentLikeRow
	if err := r.db.WithContext(ctx).Raw(query, args...).Scan(&rows).Error; err != nil {
		return nil, err
	}

	result := make(map[uint]models.CommentLikeStatus, len(rows))
	for _, row := range rows {
		result[row.CommentID] = models.CommentLikeStatus{Count: row.Count, Liked: row.Liked}
	}
	return result, nil
}
