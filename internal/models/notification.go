package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// NotificationTTL is how long a notification survives before the sweep deletes it.
const NotificationTTL = 7 * 24 * time.Hour

// Notification types, named after the triggering social action.
const (
	NotificationPostLike     = "post_like"
	NotificationPostComment  = "post_comment"
	NotificationStoryLike    = "story_like"
	NotificationStoryComment = "story_comment"
	NotificationStoryShare   = "story_share"
)

// Notification is a fan-out record stored in MongoDB, created as a side effect of a
// like, comment or share. It is never addressed to its own sender and is removed
// 7 days after creation.
type Notification struct {
	ID          primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	RecipientID uint               `json:"recipient_id" bson:"recipient_id"`
	SenderID    uint               `json:"sender_id" bson:"sender_id"`
	SenderName  string             `json:"sender_name" bson:"sender_name"`
	Type        string             `json:"type" bson:"type"`
	RefID       string             `json:"ref_id" bson:"ref_id"`
	RefKind     string             `json:"ref_kind" bson:"ref_kind"` // "post" or "story"
	Message     string             `json:"message" bson:"message"`
	Snippet     string             `json:"snippet,omitempty" bson:"snippet,omitempty"`
	Read        bool               `json:"read" bson:"read"`
	CreatedAt   time.Time          `json:"created_at" bson:"created_at"`
}
