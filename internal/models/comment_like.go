package models

import "time"

// CommentLike represents a like on a comment
type CommentLike struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CommentID uint      `json:"commentId" gorm:"not null;uniqueIndex:idx_comment_student_like"`
	StudentID string    `json:"studentId" gorm:"type:varchar(24);not null;uniqueIndex:idx_comment_student_like"`
	CreatedAt time.Time `json:"createdAt"`
}

// CommentLikeRequest is the body of POST comment-like.
type CommentLikeRequest struct {
	CommentID uint   `json:"commentId" validate:"required"`
	StudentID string `json:"studentId" validate:"omitempty,objectid"`
}

// CommentLikeStatus is the like count of a comment and whether the viewer liked it.
type CommentLikeStatus struct {
	Count int64 `json:"count"`
	Liked bool  `json:"liked"`
}
