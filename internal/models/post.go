package models

import (
	"time"

	"github.com/dustin/go-humanize"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	MediaTypeImage = "image"
	MediaTypeVideo = "video"

	DefaultAvatar  = "/placeholder.png"
	DefaultCaption = "Check out this post!"
)

// Post is a mentor post stored in MongoDB
type Post struct {
	ID            primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	MentorID      string             `json:"mentorId" bson:"mentor_id"`
	Username      string             `json:"username" bson:"username"`
	Avatar        string             `json:"avatar" bson:"avatar"`
	Images        []string           `json:"images" bson:"images"`
	MediaType     string             `json:"mediaType" bson:"media_type"`
	Title         string             `json:"title" bson:"title"`
	Caption       string             `json:"caption" bson:"caption"`
	Hashtags      []string           `json:"hashtags" bson:"hashtags"`
	LikesCount    int64              `json:"likes" bson:"likes_count"`
	CommentsCount int64              `json:"comments" bson:"comments_count"`
	CreatedAt     time.Time          `json:"createdAt" bson:"created_at"`
}

// PostView is the wire form of a post inside a feed page.
type PostView struct {
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

// View renders the post with the defaults the feed expects.
func (p *Post) View(now time.Time) PostView {
	caption := p.Caption
	if caption == "" {
		caption = p.Title
	}
	if caption == "" {
		caption = DefaultCaption
	}
	avatar := p.Avatar
	if avatar == "" {
		avatar = DefaultAvatar
	}
	mediaType := p.MediaType
	if mediaType == "" {
		mediaType = MediaTypeImage
	}
	hashtags := p.Hashtags
	if hashtags == nil {
		hashtags = []string{}
	}

	return PostView{
		ID:        p.ID.Hex(),
		MentorID:  p.MentorID,
		Username:  p.Username,
		Avatar:    avatar,
		Images:    p.Images,
		MediaType: mediaType,
		Title:     p.Title,
		Caption:   caption,
		Hashtags:  hashtags,
		Likes:     p.LikesCount,
		Comments:  p.CommentsCount,
		Time:      humanize.RelTime(p.CreatedAt, now, "ago", "from now"),
	}
}

// CreatePostRequest holds the non-file fields of a multipart post upload.
type CreatePostRequest struct {
	Title    string `form:"title" validate:"max=200"`
	Caption  string `form:"caption" validate:"max=2200"`
	Hashtags string `form:"hashtags" validate:"max=500"`
}

// FeedPage is the response body of the paginated feed endpoint.
type FeedPage struct {
	Success     bool       `json:"success"`
	Data        []PostView `json:"data"`
	CurrentPage int        `json:"currentPage"`
	TotalPages  int        `json:"totalPages"`
	Total       int64      `json:"total"`
	HasMore     bool       `json:"hasMore"`
	Message     string     `json:"message,omitempty"`
	Error       string     `json:"error,omitempty"`
}
