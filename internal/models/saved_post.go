package models

import "time"

// SavedPost represents a bookmarked post
type SavedPost struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	StudentID string    `json:"studentId" gorm:"type:varchar(24);not null;uniqueIndex:idx_student_post_save"`
	PostID    string    `json:"postId" gorm:"type:varchar(24);not null;uniqueIndex:idx_student_post_save"`
	CreatedAt time.Time `json:"createdAt"`
}
