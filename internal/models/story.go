package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// StoryTTL is how long an unarchived story stays retrievable before the sweep
// deletes it.
const StoryTTL = 24 * time.Hour

// DailyStoryQuota caps how many stories one author may upload inside a rolling
// 24-hour window.
const DailyStoryQuota = 3

// Story is an ephemeral post stored in MongoDB. Like Post it owns its embedded likes
// set and comment list. An unarchived story is eligible for deletion 24 hours after
// creation; archiving opts it out of the sweep.
type Story struct {
	ID         primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	AuthorID   uint               `json:"author_id" bson:"author_id"`
	AuthorName string             `json:"author_name" bson:"author_name"`
	Community  string             `json:"community" bson:"community"`
	Media      Media              `json:"media" bson:"media"`
	Likes      []uint             `json:"likes" bson:"likes"`
	Comments   []Comment          `json:"comments" bson:"comments"`
	Shares     int64              `json:"shares" bson:"shares"`
	IsArchived bool               `json:"is_archived" bson:"is_archived"`
	CreatedAt  time.Time          `json:"created_at" bson:"created_at"`
}

// CreateStoryRequest defines the request body for uploading a story
type CreateStoryRequest struct {
	MediaURL         string `json:"media_url" validate:"required,url"`
	MediaContentType string `json:"media_content_type" validate:"required"`
}
