package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/daksh-app/daksh/backend/internal/models"
	apperrors "github.com/daksh-app/daksh/backend/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate go run go.uber.org/mock/mockgen -source=highlight_stat_repository.go -destination=mocks/highlight_stat_repository.go -package=mocks

// PostCounters are the like and comment totals of one post.
type PostCounters struct {
	PostID   string
	Likes    int64
	Comments int64
}

// HighlightStatRepository stores per-(post, student) comments and likes.
type HighlightStatRepository interface {
	// UpsertComment sets the student's comment on a post. created reports
	// whether the student had no comment on the post before.
	UpsertComment(ctx context.Context, postID, studentID, comment string) (stat *models.HighlightStat, created bool, err error)
	// SetLiked sets the like flag; changed is false when it already had that value.
	SetLiked(ctx context.Context, postID, studentID string, liked bool) (stat *models.HighlightStat, changed bool, err error)
	GetByID(ctx context.Context, id uint) (*models.HighlightStat, error)
	ListComments(ctx context.Context, postID string) ([]models.HighlightStat, error)
	ListLikes(ctx context.Context, postID string) ([]models.HighlightStat, error)
	LikeStatus(ctx context.Context, postID, studentID string) (models.PostLikeStatus, error)
	LikedPostIDs(ctx context.Context, studentID string, postIDs []string) (map[string]bool, error)
	CountersByPost(ctx context.Context) (map[string]PostCounters, error)
}

// PostgresHighlightStatRepository implements HighlightStatRepository for PostgreSQL
type PostgresHighlightStatRepository struct {
	db *gorm.DB
}

var _ HighlightStatRepository = (*PostgresHighlightStatRepository)(nil)

func NewPostgresHighlightStatRepository(db *gorm.DB) *PostgresHighlightStatRepository {
	return &PostgresHighlightStatRepository{db: db}
}

func (r *PostgresHighlightStatRepository) findForUpdate(tx *gorm.DB, postID, studentID string) (*models.HighlightStat, error) {
	var stat models.HighlightStat
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("post_id = ? AND student_id = ?", postID, studentID).
		First(&stat).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &stat, nil
}

// ensureRow inserts an empty stat for (postID, studentID) unless one exists.
// A concurrent first write blocks on the conflicting insert instead of
// failing, so the row lock taken afterwards always has a row to hold.
func (r *PostgresHighlightStatRepository) ensureRow(tx *gorm.DB, postID, studentID string) error {
	return tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "post_id"}, {Name: "student_id"}},
		DoNothing: true,
	}).Create(&models.HighlightStat{PostID: postID, StudentID: studentID}).Error
}

func (r *PostgresHighlightStatRepository) UpsertComment(ctx context.Context, postID, studentID, comment string) (*models.HighlightStat, bool, error) {
	var (
		result  *models.HighlightStat
		created bool
	)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := r.ensureRow(tx, postID, studentID); err != nil {
			return err
		}
		existing, err := r.findForUpdate(tx, postID, studentID)
		if err != nil {
			return err
		}
		if existing == nil {
			return gorm.ErrRecordNotFound
		}

		created = existing.Comment == nil
		existing.Comment = &comment
		existing.UpdatedAt = time.Now()
		result = existing
		return tx.Model(existing).Updates(map[string]interface{}{
			"comment":    comment,
			"updated_at": existing.UpdatedAt,
		}).Error
	})
	if err != nil {
		if isUniqueViolation(err) {
			return nil, false, apperrors.Wrap(apperrors.ErrConflict, "concurrent highlight stat write")
		}
		return nil, false, err
	}

	if err := r.db.WithContext(ctx).Preload("Student").First(result, result.ID).Error; err != nil {
		return nil, false, err
	}
	return result, created, nil
}

func (r *PostgresHighlightStatRepository) SetLiked(ctx context.Context, postID, studentID string, liked bool) (*models.HighlightStat, bool, error) {
	var (
		result  *models.HighlightStat
		changed bool
	)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Unliking never needs a row.
		if liked {
			if err := r.ensureRow(tx, postID, studentID); err != nil {
				return err
			}
		}
		existing, err := r.findForUpdate(tx, postID, studentID)
		if err != nil || existing == nil {
			return err
		}

		result = existing
		if existing.Liked == liked {
			return nil
		}
		changed = true
		existing.Liked = liked
		return tx.Model(existing).Updates(map[string]interface{}{
			"liked":      liked,
			"updated_at": time.Now(),
		}).Error
	})
	if err != nil {
		if isUniqueViolation(err) {
			return nil, false, apperrors.Wrap(apperrors.ErrConflict, "concurrent highlight stat write")
		}
		return nil, false, err
	}
	return result, changed, nil
}

func (r *PostgresHighlightStatRepository) GetByID(ctx context.Context, id uint) (*models.HighlightStat, error) {
	var stat models.HighlightStat
	if err := r.db.WithContext(ctx).First(&stat, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.Wrap(apperrors.ErrNotFound, "comment not found")
		}
		return nil, err
	}
	return &stat, nil
}

// ListComments returns every comment on a post, oldest first, with authors.
func (r *PostgresHighlightStatRepository) ListComments(ctx context.Context, postID string) ([]models.HighlightStat, error) {
	var stats []models.HighlightStat
	err := r.db.WithContext(ctx).
		Preload("Student").
		Where("post_id = ? AND comment IS NOT NULL", postID).
		Order("created_at ASC").
		Find(&stats).Error
	return stats, err
}

func (r *PostgresHighlightStatRepository) ListLikes(ctx context.Context, postID string) ([]models.HighlightStat, error) {
	var stats []models.HighlightStat
	err := r.db.WithContext(ctx).
		Preload("Student").
		Where("post_id = ? AND liked = ?", postID, true).
		Find(&stats).Error
	return stats, err
}

func (r *PostgresHighlightStatRepository) LikeStatus(ctx context.Context, postID, studentID string) (models.PostLikeStatus, error) {
	var status models.PostLikeStatus
	if err := r.db.WithContext(ctx).Model(&models.HighlightStat{}).
		Where("post_id = ? AND liked = ?", postID, true).
		Count(&status.Likes).Error; err != nil {
		return status, err
	}
	if studentID == "" {
		return status, nil
	}

	var mine int64
	if err := r.db.WithContext(ctx).Model(&models.HighlightStat{}).
		Where("post_id = ? AND student_id = ? AND liked = ?", postID, studentID, true).
		Count(&mine).Error; err != nil {
		return status, err
	}
	status.Liked = mine > 0
	return status, nil
}

// LikedPostIDs reports, in one query, which of postIDs the student likes.
func (r *PostgresHighlightStatRepository) LikedPostIDs(ctx context.Context, studentID string, postIDs []string) (map[string]bool, error) {
	result := make(map[string]bool)
	if len(postIDs) == 0 || studentID == "" {
		return result, nil
	}
	var ids []string
	err := r.db.WithContext(ctx).Model(&models.HighlightStat{}).
		Where("student_id = ? AND liked = ? AND post_id IN ?", studentID, true, postIDs).
		Pluck("post_id", &ids).Error
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		result[id] = true
	}
	return result, nil
}

// CountersByPost recomputes like and comment totals for every post with stats.
func (r *PostgresHighlightStatRepository) CountersByPost(ctx context.Context) (map[string]PostCounters, error) {
	query, args, err := SqBuilder.
		Select(
			"post_id",
			"COUNT(*) FILTER (WHERE liked) AS likes",
			"COUNT(*) FILTER (WHERE comment IS NOT NULL) AS comments",
		).
		From("highlight_stats").
		GroupBy("post_id").
		ToSql()
	if err != nil {
		return nil, ErrBadQuery
	}

	var rows []PostCounters
	if err := r.db.WithContext(ctx).Raw(query, args...).Scan(&rows).Error; err != nil {
		return nil, err
	}

	result := make(map[string]PostCounters, len(rows))
	for _, row := range rows {
		result[row.PostID] = row
	}
	return result, nil
}
