// internal/domain/models/notification.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Notification is one in-app alert for one recipient. IsRead moves
// false→true only.
type Notification struct {
	ID                         primitive.ObjectID  `bson:"_id" json:"id"`
	Type                       string              `bson:"type" json:"type"`
	Message                    string              `bson:"message" json:"message"`
	IsRead                     bool                `bson:"is_read" json:"is_read"`
	UserID                     primitive.ObjectID  `bson:"user_id" json:"user_id"`
	RelatedCandidatePositionID *primitive.ObjectID `bson:"related_candidate_position_id,omitempty" json:"related_candidate_position_id,omitempty"`
	CreatedAt                  time.Time           `bson:"created_at" json:"created_at"`
}

// Notification types. The same values are recorded as
// EmailLogEntry.RelatedEventType for outgoing email.
const (
	NotifyStageChange       = "stage_change"
	NotifyNewComment        = "new_comment"
	NotifyClientLogin       = "client_login"
	NotifyCandidateAssigned = "candidate_assigned"
)

// NotificationTypes is the full set of notification type identifiers.
var NotificationTypes = []string{
	NotifyStageChange,
	NotifyNewComment,
	NotifyClientLogin,
	NotifyCandidateAssigned,
}
