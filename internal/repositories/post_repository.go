package repositories

import (
	"context"
	"sort"
	"time"

	"github.com/daksh-app/daksh/backend/internal/models"
	apperrors "github.com/daksh-app/daksh/backend/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

//go:generate go run go.uber.org/mock/mockgen -source=post_repository.go -destination=mocks/post_repository.go -package=mocks

// PostRepository defines the interface for post data operations
type PostRepository interface {
	CreatePost(ctx context.Context, post *models.Post) error
	GetPostByID(ctx context.Context, id string) (*models.Post, error)
	GetFeedPage(ctx context.Context, skip, limit int64) ([]models.Post, int64, error)
	ListPostIDs(ctx context.Context) ([]string, error)
	AdjustCounters(ctx context.Context, postID string, likesDelta, commentsDelta int64) error
	SetCounters(ctx context.Context, postID string, likes, comments int64) error
	DistinctHashtags(ctx context.Context) ([]string, error)
}

// MongoPostRepository implements PostRepository for MongoDB
type MongoPostRepository struct {
	collection *mongo.Collection
}

var _ PostRepository = (*MongoPostRepository)(nil)

// NewMongoPostRepository creates a new MongoPostRepository
func NewMongoPostRepository(db *mongo.Database) *MongoPostRepository {
	return &MongoPostRepository{collection: db.Collection("posts")}
}

func parsePostID(id string) (primitive.ObjectID, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, apperrors.Wrap(apperrors.ErrInvalidInput, "invalid post ID format")
	}
	return objID, nil
}

// CreatePost creates a new post in MongoDB
func (r *MongoPostRepository) CreatePost(ctx context.Context, post *models.Post) error {
	post.ID = primitive.NewObjectID()
	if post.CreatedAt.IsZero() {
		post.CreatedAt = time.Now()
	}
	_, err := r.collection.InsertOne(ctx, post)
	return err
}

// GetPostByID retrieves a post by ID from MongoDB
func (r *MongoPostRepository) GetPostByID(ctx context.Context, id string) (*models.Post, error) {
	objID, err := parsePostID(id)
	if err != nil {
		return nil, err
	}

	var post models.Post
	err = r.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&post)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperrors.Wrap(apperrors.ErrNotFound, "post not found")
		}
		return nil, err
	}
	return &post, nil
}

// GetFeedPage returns one page of posts, newest first, and the total post count.
func (r *MongoPostRepository) GetFeedPage(ctx context.Context, skip, limit int64) ([]models.Post, int64, error) {
	total, err := r.collection.CountDocuments(ctx, bson.D{})
	if err != nil {
		return nil, 0, err
	}

	findOptions := options.Find().SetSkip(skip).SetLimit(limit).SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.D{}, findOptions)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	posts := []models.Post{}
	if err = cursor.All(ctx, &posts); err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

// ListPostIDs returns the hex id of every post.
func (r *MongoPostRepository) ListPostIDs(ctx context.Context) ([]string, error) {
	cursor, err := r.collection.Find(ctx, bson.D{}, options.Find().SetProjection(bson.M{"_id": 1}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var ids []string
	for cursor.Next(ctx) {
		var doc struct {
			ID primitive.ObjectID `bson:"_id"`
		}
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		ids = append(ids, doc.ID.Hex())
	}
	return ids, cursor.Err()
}

// AdjustCounters applies deltas to the denormalized like/comment counters.
func (r *MongoPostRepository) AdjustCounters(ctx context.Context, postID string, likesDelta, commentsDelta int64) error {
	if likesDelta == 0 && commentsDelta == 0 {
		return nil
	}
	objID, err := parsePostID(postID)
	if err != nil {
		return err
	}
	_, err = r.collection.UpdateOne(ctx, bson.M{"_id": objID}, bson.M{"$inc": bson.M{
		"likes_count":    likesDelta,
		"comments_count": commentsDelta,
	}})
	return err
}

// SetCounters overwrites the counters with recomputed values.
func (r *MongoPostRepository) SetCounters(ctx context.Context, postID string, likes, comments int64) error {
	objID, err := parsePostID(postID)
	if err != nil {
		return err
	}
	_, err = r.collection.UpdateOne(ctx, bson.M{"_id": objID}, bson.M{"$set": bson.M{
		"likes_count":    likes,
		"comments_count": comments,
	}})
	return err
}

// DistinctHashtags returns every hashtag used by any post, sorted.
func (r *MongoPostRepository) DistinctHashtags(ctx context.Context) ([]string, error) {
	values, err := r.collection.Distinct(ctx, "hashtags", bson.D{})
	if err != nil {
		return nil, err
	}

	tags := make([]string, 0, len(values))
	for _, v := range values {
		if tag, ok := v.(string); ok && tag != "" {
			tags = append(tags, tag)
		}
	}
	sort.Strings(tags)
	return tags, nil
}
