package repositories

import (
	"context"

	"github.com/daksh-app/daksh/backend/internal/models"
	apperrors "github.com/daksh-app/daksh/backend/pkg/errors"
	"gorm.io/gorm"
)

// SavedPostRepository defines the interface for saved post operations
type SavedPostRepository interface {
	SavePost(ctx context.Context, savedPost *models.SavedPost) error
	UnsavePost(ctx context.Context, studentID, postID string) error
	IsPostSaved(ctx context.Context, studentID, postID string) (bool, error)
	GetSavedPostIDs(ctx context.Context, studentID string, postIDs []string) (map[string]bool, error)
}

// PostgresSavedPostRepository implements SavedPostRepository
type PostgresSavedPostRepository struct {
	db *gorm.DB
}

var _ SavedPostRepository = (*PostgresSavedPostRepository)(nil)

func NewPostgresSavedPostRepository(db *gorm.DB) *PostgresSavedPostRepository {
	return &PostgresSavedPostRepository{db: db}
}

func (r *PostgresSavedPostRepository) SavePost(ctx context.Context, savedPost *models.SavedPost) error {
	if err := r.db.WithContext(ctx).Create(savedPost).Error; err != nil {
		if isUniqueViolation(err) {
			return apperrors.Wrap(apperrors.ErrConflict, "post already saved")
		}
		return err
	}
	return nil
}

func (r *PostgresSavedPostRepository) UnsavePost(ctx context.Context, studentID, postID string) error {
	res := r.db.WithContext(ctx).Where("student_id = ? AND post_id = ?", studentID, postID).Delete(&models.SavedPost{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.Wrap(apperrors.ErrNotFound, "saved post not found")
	}
	return nil
}

func (r *PostgresSavedPostRepository) IsPostSaved(ctx context.Context, studentID, postID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.SavedPost{}).Where("student_id = ? AND post_id = ?", studentID, postID).Count(&count).Error
	return count > 0, err
}

func (r *PostgresSavedPostRepository) GetSavedPostIDs(ctx context.Context, studentID string, postIDs []string) (map[string]bool, error) {
	result := make(map[string]bool)
	if len(postIDs) == 0 || studentID == "" {
		return result, nil
	}
	var saved []models.SavedPost
	err := r.db.WithContext(ctx).Where("student_id = ? AND post_id IN ?", studentID, postIDs).Find(&saved).Error
	if err != nil {
		return nil, err
	}
	for _, s := range saved {
		result[s.PostID] = true
	}
	return result, nil
}
