package client

import "time"

// Post is one feed item as served by GET /api/posts.
type Post struct {
	ID        string   `json:"id"`
	MentorID  string   `json:"mentorId"`
	Username  string   `json:"username"`
	Avatar    string   `json:"avatar"`
	Images    []string `json:"images"`
	MediaType string   `json:"mediaType"`
	Title     string   `json:"title"`
	Caption   string   `json:"caption"`
	Hashtags  []string `json:"hashtags"`
	Likes     int64    `json:"likes"`
	Comments  int64    `json:"comments"`
	Time      string   `json:"time"`
	IsLiked   bool     `json:"isLiked"`
	IsSaved   bool     `json:"isSaved"`
}

// FeedPage is one page of the feed.
type FeedPage struct {
	Success     bool   `json:"success"`
	Data        []Post `json:"data"`
	CurrentPage int    `json:"currentPage"`
	TotalPages  int    `json:"totalPages"`
	Total       int64  `json:"total"`
	HasMore     bool   `json:"hasMore"`
	Message     string `json:"message,omitempty"`
	Error       string `json:"error,omitempty"`
}

type CommentAuthor struct {
	ID   string `json:"id"`
	User struct {
		Username string `json:"username"`
	} `json:"user"`
}

// Comment is a comment on a post. Likes and Liked are filled in by the
// comments session, not by the server list call.
type Comment struct {
	ID        int64         `json:"id"`
	Comment   string        `json:"comment"`
	Student   CommentAuthor `json:"student"`
	CreatedAt time.Time     `json:"createdAt"`
	Likes     int64         `json:"likes"`
	Liked     bool          `json:"liked"`
}

// LikeStatus is the like count of a comment and whether the viewer liked it.
type LikeStatus struct {
	Count int64 `json:"count"`
	Liked bool  `json:"liked"`
}
