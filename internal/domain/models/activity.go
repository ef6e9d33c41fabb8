// internal/domain/models/activity.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ActivityEntry is one append-only audit row on a candidate's
// application. Entries are immutable once written. UserName is
// denormalized so the timeline stays readable if the user is removed.
type ActivityEntry struct {
	ID                  primitive.ObjectID `bson:"_id" json:"id"`
	Action              string             `bson:"action" json:"action"`
	FromStage           string             `bson:"from_stage,omitempty" json:"from_stage,omitempty"`
	ToStage             string             `bson:"to_stage,omitempty" json:"to_stage,omitempty"`
	UserID              primitive.ObjectID `bson:"user_id" json:"user_id"`
	UserName            string             `bson:"user_name" json:"user_name"`
	CandidatePositionID primitive.ObjectID `bson:"candidate_position_id" json:"candidate_position_id"`
	CreatedAt           time.Time          `bson:"created_at" json:"created_at"`
}

// Activity actions.
const (
	ActionAssigned    = "assigned"
	ActionStageChange = "stage_change"
	ActionComment     = "comment"
)
