package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Post is a persistent community post stored in MongoDB. It is the aggregate root for
// its embedded likes set and comment list: likes holds user ids with set semantics,
// comments is an ordered, append-biased list.
type Post struct {
	ID         primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	AuthorID   uint               `json:"author_id" bson:"author_id"`
	AuthorName string             `json:"author_name" bson:"author_name"` // denormalized cache of the identity store name
	Community  string             `json:"community" bson:"community"`
	Text       string             `json:"text" bson:"text"`
	Media      Media              `json:"media" bson:"media"`
	Likes      []uint             `json:"likes" bson:"likes"`
	Comments   []Comment          `json:"comments" bson:"comments"`
	Hashtags   []string           `json:"hashtags" bson:"hashtags"`
	CreatedAt  time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt  time.Time          `json:"updated_at" bson:"updated_at"`
}

// CreatePostRequest defines the request body for creating a new post
type CreatePostRequest struct {
	Text             string `json:"text" validate:"required,max=2000"`
	MediaURL         string `json:"media_url,omitempty" validate:"omitempty,url"`
	MediaContentType string `json:"media_content_type,omitempty"`
}

// UpdatePostRequest defines the request body for updating an existing post
type UpdatePostRequest struct {
	Text string `json:"text" validate:"required,max=2000"`
}
