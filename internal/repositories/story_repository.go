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

// StoryRepository defines the interface for story operations
type StoryRepository interface {
	EngagementRepository
	CreateStory(ctx context.Context, story *models.Story) error
	GetStoryByID(ctx context.Context, id string) (*models.Story, error)
	GetStoriesByCommunity(ctx context.Context, community string) ([]models.Story, error)
	CountStoriesByAuthorSince(ctx context.Context, authorID uint, since time.Time) (int64, error)
	SetArchived(ctx context.Context, id string, archived bool) error
	IncrementShares(ctx context.Context, id string) error
	DeleteStory(ctx context.Context, id string) error
	DeleteExpiredStories(ctx context.Context, cutoff time.Time) (int64, error)
}

// MongoStoryRepository implements StoryRepository for MongoDB
type MongoStoryRepository struct {
	engagementCollection
}

// NewMongoStoryRepository creates a new MongoStoryRepository
func NewMongoStoryRepository(db *mongo.Database) *MongoStoryRepository {
	return &MongoStoryRepository{engagementCollection{collection: db.Collection("stories")}}
}

// CreateStory creates a new story in MongoDB
func (r *MongoStoryRepository) CreateStory(ctx context.Context, story *models.Story) error {
	story.ID = primitive.NewObjectID()
	story.CreatedAt = time.Now()
	if story.Likes == nil {
		story.Likes = []uint{}
	}
	if story.Comments == nil {
		story.Comments = []models.Comment{}
	}
	_, err := r.collection.InsertOne(ctx, story)
	return err
}

// GetStoryByID retrieves a story by ID from MongoDB
func (r *MongoStoryRepository) GetStoryByID(ctx context.Context, id string) (*models.Story, error) {
	objID, err := contentObjectID(id)
	if err != nil {
		return nil, err
	}

	var story models.Story
	err = r.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&story)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, models.ErrNotFound
		}
		return nil, err
	}
	return &story, nil
}

// GetStoriesByCommunity retrieves one community's stories, newest first. Archived
// stories are included; filtering them out is a client concern.
func (r *MongoStoryRepository) GetStoriesByCommunity(ctx context.Context, community string) ([]models.Story, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"community": community}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var stories []models.Story
	if err = cursor.All(ctx, &stories); err != nil {
		return nil, err
	}
	return stories, nil
}

// CountStoriesByAuthorSince counts an author's stories created inside the trailing
// window. Feeds the upload quota check.
func (r *MongoStoryRepository) CountStoriesByAuthorSince(ctx context.Context, authorID uint, since time.Time) (int64, error) {
	filter := bson.M{"author_id": authorID, "created_at": bson.M{"$gte": since}}
	return r.collection.CountDocuments(ctx, filter)
}

// SetArchived flips the archive flag, opting the story in or out of the TTL sweep.
func (r *MongoStoryRepository) SetArchived(ctx context.Context, id string, archived bool) error {
	objID, err := contentObjectID(id)
	if err != nil {
		return err
	}

	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": objID}, bson.M{"$set": bson.M{"is_archived": archived}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return models.ErrNotFound
	}
	return nil
}

// IncrementShares atomically bumps the monotonic share counter.
func (r *MongoStoryRepository) IncrementShares(ctx context.Context, id string) error {
	objID, err := contentObjectID(id)
	if err != nil {
		return err
	}

	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": objID}, bson.M{"$inc": bson.M{"shares": 1}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return models.ErrNotFound
	}
	return nil
}

// DeleteStory deletes a story by ID from MongoDB
func (r *MongoStoryRepository) DeleteStory(ctx context.Context, id string) error {
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

// DeleteExpiredStories removes unarchived stories created at or before the cutoff.
// The archived-skip predicate lives only here so the sweep cannot diverge from the
// lifecycle rule. Idempotent against already-deleted stories by construction.
func (r *MongoStoryRepository) DeleteExpiredStories(ctx context.Context, cutoff time.Time) (int64, error) {
	filter := bson.M{
		"is_archived": false,
		"created_at":  bson.M{"$lte": cutoff},
	}
	res, err := r.collection.DeleteMany(ctx, filter)
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
