package models

import "time"

// Comment is an embedded sub-document of a Post or Story. It has no collection of its
// own; all mutation goes through the owning aggregate root, and only the comment's
// author may change it.
type Comment struct {
	ID         string    `json:"id" bson:"id"`
	AuthorID   uint      `json:"author_id" bson:"author_id"`
	AuthorName string    `json:"author_name" bson:"author_name"`
	Text       string    `json:"text" bson:"text"`
	CreatedAt  time.Time `json:"created_at" bson:"created_at"`
}

// CreateCommentRequest defines the request body for adding a comment
type CreateCommentRequest struct {
	Text string `json:"text" validate:"required"`
}

// UpdateCommentRequest defines the request body for editing a comment
type UpdateCommentRequest struct {
	Text string `json:"text" validate:"required"`
}
