package repositories

import (
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// Repositories bundles every repository the service uses.
type Repositories struct {
	Posts        PostRepository
	Students     StudentRepository
	Stats        HighlightStatRepository
	CommentLikes CommentLikeRepository
	SavedPosts   SavedPostRepository
	Follows      FollowRepository
}

// New builds the Postgres and Mongo backed repositories.
func New(pg *gorm.DB, mg *mongo.Database) *Repositories {
	return &Repositories{
		Posts:        NewMongoPostRepository(mg),
		Students:     NewPostgresStudentRepository(pg),
		Stats:        NewPostgresHighlightStatRepository(pg),
		CommentLikes: NewPostgresCommentLikeRepository(pg),
		SavedPosts:   NewPostgresSavedPostRepository(pg),
		Follows:      NewPostgresFollowRepository(pg),
	}
}
