package models

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
)

const (
	RoleStudent = "STUDENT"
	RoleMentor  = "MENTOR"
)

// Student is any platform user able to react to posts. Mentors are students
// with the MENTOR role.
type Student struct {
	ID           string    `json:"id" gorm:"primaryKey;type:varchar(24)"`
	Username     string    `json:"username" gorm:"uniqueIndex;size:64"`
	ProfilePhoto string    `json:"profilePhoto"`
	Role         string    `json:"role" gorm:"size:16;default:'STUDENT'"`
	FirebaseUID  string    `json:"-" gorm:"column:firebase_uid;index"`
	CreatedAt    time.Time `json:"createdAt"`
}

// StudentRef is the author projection nested in comments.
type StudentRef struct {
	ID   string `json:"id"`
	User struct {
		Username string `json:"username"`
	} `json:"user"`
}

func (s *Student) Ref() StudentRef {
	ref := StudentRef{ID: s.ID}
	ref.User.Username = s.Username
	return ref
}

// JwtCustomClaims are custom claims extending standard jwt.RegisteredClaims
type JwtCustomClaims struct {
	StudentID string `json:"student_id"`
	Role      string `json:"role,omitempty"`
	jwt.RegisteredClaims
}
