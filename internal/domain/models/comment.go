// internal/domain/models/comment.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Comment is a note left on a candidate's application by an admin or
// client user. Body is sanitized HTML/plain text, never empty.
type Comment struct {
	ID                  primitive.ObjectID `bson:"_id" json:"id"`
	Body                string             `bson:"body" json:"body"`
	UserID              primitive.ObjectID `bson:"user_id" json:"user_id"`
	CandidatePositionID primitive.ObjectID `bson:"candidate_position_id" json:"candidate_position_id"`
	CreatedAt           time.Time          `bson:"created_at" json:"created_at"`
}
