package repositories

import (
	"context"
	"errors"

	"github.com/daksh-app/daksh/backend/internal/models"
	apperrors "github.com/daksh-app/daksh/backend/pkg/errors"
	"gorm.io/gorm"
)

// StudentRepository defines the interface for student lookups
type StudentRepository interface {
	GetStudentByID(ctx context.Context, id string) (*models.Student, error)
	GetStudentByFirebaseUID(ctx context.Context, firebaseUID string) (*models.Student, error)
}

// PostgresStudentRepository implements StudentRepository for PostgreSQL
type PostgresStudentRepository struct {
	db *gorm.DB
}

var _ StudentRepository = (*PostgresStudentRepository)(nil)

// NewPostgresStudentRepository creates a new PostgresStudentRepository
func NewPostgresStudentRepository(db *gorm.DB) *PostgresStudentRepository {
	return &PostgresStudentRepository{db: db}
}

func (r *PostgresStudentRepository) GetStudentByID(ctx context.Context, id string) (*models.Student, error) {
	var student models.Student
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&student).Error; err != nil {
		return nil, notFound(err, "student not found")
	}
	return &student, nil
}

func (r *PostgresStudentRepository) GetStudentByFirebaseUID(ctx context.Context, firebaseUID string) (*models.Student, error) {
	var student models.Student
	if err := r.db.WithContext(ctx).Where("firebase_uid = ?", firebaseUID).First(&student).Error; err != nil {
		return nil, notFound(err, "student not found")
	}
	return &student, nil
}

func notFound(err error, message string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.Wrap(apperrors.ErrNotFound, message)
	}
	return err
}
