package repositories

import (
	"context"
	"fmt"

	"github.com/ecovibe/community/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ContentRef is the minimal view of an aggregate root the engagement engine needs:
// who owns it and a short text excerpt for notification snippets.
type ContentRef struct {
	AuthorID uint   `bson:"author_id"`
	Text     string `bson:"text"`
}

// EngagementRepository is the shared mutation surface over any aggregate root that
// owns a likes set and a comment list. Both the post and story repositories implement
// it, so like/comment semantics are written once. Every mutation is a single-document
// atomic operator; concurrent likes and comment appends from different principals
// never lose updates.
type EngagementRepository interface {
	GetContentRef(ctx context.Context, contentID string) (*ContentRef, error)
	RemoveLike(ctx context.Context, contentID string, userID uint) (bool, error)
	AddLike(ctx context.Context, contentID string, userID uint) (bool, error)
	AppendComment(ctx context.Context, contentID string, comment models.Comment) error
	FindComment(ctx context.Context, contentID, commentID string) (*models.Comment, error)
	SetCommentText(ctx context.Context, contentID, commentID string, authorID uint, text string) error
	RemoveComment(ctx context.Context, contentID, commentID string, authorID uint) error
}

// engagementCollection implements EngagementRepository over a Mongo collection whose
// documents carry author_id, likes and comments fields. It is embedded by the
// concrete post and story repositories.
type engagementCollection struct {
	collection *mongo.Collection
}

func contentObjectID(id string) (primitive.ObjectID, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("invalid content ID format: %w", models.ErrNotFound)
	}
	return objID, nil
}

// GetContentRef resolves the owner and text excerpt of a document, or ErrNotFound.
func (e *engagementCollection) GetContentRef(ctx context.Context, contentID string) (*ContentRef, error) {
	objID, err := contentObjectID(contentID)
	if err != nil {
		return nil, err
	}

	var ref ContentRef
	opts := options.FindOne().SetProjection(bson.M{"author_id": 1, "text": 1})
	err = e.collection.FindOne(ctx, bson.M{"_id": objID}, opts).Decode(&ref)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, models.ErrNotFound
		}
		return nil, err
	}
	return &ref, nil
}

// RemoveLike atomically pulls userID from the likes set. Returns whether a like was
// actually removed.
func (e *engagementCollection) RemoveLike(ctx context.Context, contentID string, userID uint) (bool, error) {
	objID, err := contentObjectID(contentID)
	if err != nil {
		return false, err
	}

	res, err := e.collection.UpdateOne(ctx, bson.M{"_id": objID}, bson.M{"$pull": bson.M{"likes": userID}})
	if err != nil {
		return false, err
	}
	return res.ModifiedCount > 0, nil
}

// AddLike atomically adds userID to the likes set, guarded so a concurrent duplicate
// like cannot double-insert. Returns whether the membership actually changed.
func (e *engagementCollection) AddLike(ctx context.Context, contentID string, userID uint) (bool, error) {
	objID, err := contentObjectID(contentID)
	if err != nil {
		return false, err
	}

	filter := bson.M{"_id": objID, "likes": bson.M{"$ne": userID}}
	res, err := e.collection.UpdateOne(ctx, filter, bson.M{"$addToSet": bson.M{"likes": userID}})
	if err != nil {
		return false, err
	}
	return res.ModifiedCount > 0, nil
}

// AppendComment atomically pushes a comment onto the end of the comment list.
func (e *engagementCollection) AppendComment(ctx context.Context, contentID string, comment models.Comment) error {
	objID, err := contentObjectID(contentID)
	if err != nil {
		return err
	}

	res, err := e.collection.UpdateOne(ctx, bson.M{"_id": objID}, bson.M{"$push": bson.M{"comments": comment}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return models.ErrNotFound
	}
	return nil
}

// FindComment retrieves a single embedded comment by id, or ErrNotFound.
func (e *engagementCollection) FindComment(ctx context.Context, contentID, commentID string) (*models.Comment, error) {
	objID, err := contentObjectID(contentID)
	if err != nil {
		return nil, err
	}

	filter := bson.M{"_id": objID, "comments.id": commentID}
	opts := options.FindOne().SetProjection(bson.M{"comments.$": 1})

	var doc struct {
		Comments []models.Comment `bson:"comments"`
	}
	err = e.collection.FindOne(ctx, filter, opts).Decode(&doc)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, models.ErrNotFound
		}
		return nil, err
	}
	if len(doc.Comments) == 0 {
		return nil, models.ErrNotFound
	}
	return &doc.Comments[0], nil
}

// SetCommentText rewrites the text of an embedded comment via the positional
// operator. The filter re-asserts comment authorship so a stale read cannot let a
// non-author through.
func (e *engagementCollection) SetCommentText(ctx context.Context, contentID, commentID string, authorID uint, text string) error {
	objID, err := contentObjectID(contentID)
	if err != nil {
		return err
	}

	filter := bson.M{
		"_id":      objID,
		"comments": bson.M{"$elemMatch": bson.M{"id": commentID, "author_id": authorID}},
	}
	res, err := e.collection.UpdateOne(ctx, filter, bson.M{"$set": bson.M{"comments.$.text": text}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return models.ErrNotFound
	}
	return nil
}

// RemoveComment atomically pulls an embedded comment by id and author, preserving the
// relative order of the remaining comments.
func (e *engagementCollection) RemoveComment(ctx context.Context, contentID, commentID string, authorID uint) error {
	objID, err := contentObjectID(contentID)
	if err != nil {
		return err
	}

	update := bson.M{"$pull": bson.M{"comments": bson.M{"id": commentID, "author_id": authorID}}}
	res, err := e.collection.UpdateOne(ctx, bson.M{"_id": objID}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return models.ErrNotFound
	}
	if res.ModifiedCount == 0 {
		return models.ErrNotFound
	}
	return nil
}
