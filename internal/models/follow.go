package models

import "time"

// Follow is a student following a mentor (or another student).
type Follow struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	FollowerID  string    `json:"followerId" gorm:"type:varchar(24);not null;uniqueIndex:idx_follower_following"`
	FollowingID string    `json:"followingId" gorm:"type:varchar(24);not null;index;uniqueIndex:idx_follower_following"`
	CreatedAt   time.Time `json:"createdAt"`
}

// FollowRequest is the body of POST/DELETE /api/follow.
type FollowRequest struct {
	FollowerID  string `json:"followerId" validate:"required,objectid"`
	FollowingID string `json:"followingId" validate:"required,objectid"`
}
