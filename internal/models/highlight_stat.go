package models

import "time"

// HighlightStat is the per-(post, student) reaction row: the student's
// comment on the post, if any, and whether they like it.
type HighlightStat struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	PostID    string    `json:"videoAssignId" gorm:"type:varchar(24);not null;uniqueIndex:idx_highlight_post_student"`
	StudentID string    `json:"studentId" gorm:"type:varchar(24);not null;uniqueIndex:idx_highlight_post_student"`
	Comment   *string   `json:"comment"`
	Liked     bool      `json:"liked" gorm:"not null;default:false"`
	Student   *Student  `json:"student,omitempty" gorm:"foreignKey:StudentID"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CommentView is the wire form of a comment.
type CommentView struct {
	ID        uint       `json:"id"`
	Comment   string     `json:"comment"`
	Student   StudentRef `json:"student"`
	CreatedAt time.Time  `json:"createdAt"`
}

// AsComment projects a stat with a comment into its wire form.
func (h *HighlightStat) AsComment() CommentView {
	view := CommentView{ID: h.ID, CreatedAt: h.CreatedAt}
	if h.Comment != nil {
		view.Comment = *h.Comment
	}
	if h.Student != nil {
		view.Student = h.Student.Ref()
	} else {
		view.Student.ID = h.StudentID
	}
	return view
}

// HighlightStatRequest is the body of POST highlight-stats.
type HighlightStatRequest struct {
	StudentID string  `json:"studentId" validate:"omitempty,objectid"`
	Comment   *string `json:"comment" validate:"omitempty,max=500"`
	Like      *bool   `json:"like"`
}

// PostLikeStatus answers "how many likes and did this student like it".
type PostLikeStatus struct {
	Likes int64 `json:"likes"`
	Liked bool  `json:"liked"`
}
