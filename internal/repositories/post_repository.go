package repositories

import (
	"context"
	"time"

	"github.com/ecovibe/community/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// PostRepository defines the interface for post data operations
type PostRepository interface {
	EngagementRepository
	CreatePost(ctx context.Context, post *models.Post) error
	GetPostByID(ctx context.Context, id string) (*models.Post, error)
	GetPostsByCommunity(ctx context.Context, community string, limit int64) ([]models.Post, error)
	GetPostsByAuthor(ctx context.Context, authorID uint) ([]models.Post, error)
	UpdatePostText(ctx context.Context, id, text string, hashtags []string) error
	DeletePost(ctx context.Context, id string) error
	GetTaggedPostsSince(ctx context.Context, since time.Time) ([]models.Post, error)
	RewriteAuthorName(ctx context.Context, authorID uint, placeholder, name string) (int64, error)
}

// MongoPostRepository implements PostRepository for MongoDB
type MongoPostRepository struct {
	engagementCollection
}

// NewMongoPostRepository creates a new MongoPostRepository
func NewMongoPostRepository(db *mongo.Database) *MongoPostRepository {
	return &MongoPostRepository{engagementCollection{collection: db.Collection("posts")}}
}

// CreatePost creates a new post in MongoDB
func (r *MongoPostRepository) CreatePost(ctx context.Context, post *models.Post) error {
	post.ID = primitive.NewObjectID()
	post.CreatedAt = time.Now()
	post.UpdatedAt = post.CreatedAt
	if post.Likes == nil {
		post.Likes = []uint{}
	}
	if post.Comments == nil {
		post.Comments = []models.Comment{}
	}
	_, err := r.collection.InsertOne(ctx, post)
	return err
}

// GetPostByID retrieves a post by ID from MongoDB
func (r *MongoPostRepository) GetPostByID(ctx context.Context, id string) (*models.Post, error) {
	objID, err := contentObjectID(id)
	if err != nil {
		return nil, err
	}

	var post models.Post
	err = r.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&post)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, models.ErrNotFound
		}
		return nil, err
	}
	return &post, nil
}

// GetPostsByCommunity retrieves the newest posts for one community, capped at limit.
func (r *MongoPostRepository) GetPostsByCommunity(ctx context.Context, community string, limit int64) ([]models.Post, error) {
	findOptions := options.Find().SetLimit(limit).SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"community": community}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var posts []models.Post
	if err = cursor.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// GetPostsByAuthor retrieves all posts by a specific author, newest first.
func (r *MongoPostRepository) GetPostsByAuthor(ctx context.Context, authorID uint) ([]models.Post, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"author_id": authorID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var posts []models.Post
	if err = cursor.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// UpdatePostText replaces the text and re-derived hashtags of an existing post.
func (r *MongoPostRepository) UpdatePostText(ctx context.Context, id, text string, hashtags []string) error {
	objID, err := contentObjectID(id)
	if err != nil {
		return err
	}

	if hashtags == nil {
		hashtags = []string{}
	}
	update := bson.M{
		"$set": bson.M{
			"text":       text,
			"hashtags":   hashtags,
			"updated_at": time.Now(),
		},
	}
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": objID}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return models.ErrNotFound
	}
	return nil
}

// DeletePost deletes a post by ID from MongoDB. Embedded comments go with the
// document.
func (r *MongoPostRepository) DeletePost(ctx context.Context, id string) error {
	objID, err := contentObjectID(id)
	if err != nil {
		return err
	}

	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return models.ErrNotFound
	}
	return nil
}

// GetTaggedPostsSince retrieves posts created at or after the cutoff that carry at
// least one hashtag. Feeds the trending aggregator.
func (r *MongoPostRepository) GetTaggedPostsSince(ctx context.Context, since time.Time) ([]models.Post, error) {
	filter := bson.M{
		"created_at": bson.M{"$gte": since},
		"hashtags.0": bson.M{"$exists": true},
	}
	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var posts []models.Post
	if err = cursor.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// RewriteAuthorName replaces a placeholder cached author name with the real one across
// all of an author's posts. Used by the identity resolver's background backfill.
func (r *MongoPostRepository) RewriteAuthorName(ctx context.Context, authorID uint, placeholder, name string) (int64, error) {
	filter := bson.M{"author_id": authorID, "author_name": placeholder}
	res, err := r.collection.UpdateMany(ctx, filter, bson.M{"$set": bson.M{"author_name": name}})
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}
