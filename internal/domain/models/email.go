// internal/domain/models/email.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// EmailJob is one queued outbound email in the outbox collection.
// Jobs are enqueued in the same logical operation as the entity write
// that triggered them and consumed by the dispatcher worker; the
// triggering request never waits on delivery.
type EmailJob struct {
	ID                         primitive.ObjectID  `bson:"_id" json:"id"`
	To                         string              `bson:"to" json:"to"`
	Subject                    string              `bson:"subject" json:"subject"`
	HTML                       string              `bson:"html" json:"-"`
	TemplateName               string              `bson:"template_name" json:"template_name"`
	RelatedEventType           string              `bson:"related_event_type" json:"related_event_type"`
	RelatedCandidatePositionID *primitive.ObjectID `bson:"related_candidate_position_id,omitempty" json:"related_candidate_position_id,omitempty"`
	Status                     string              `bson:"status" json:"status"` // pending | done
	Attempts                   int                 `bson:"attempts" json:"attempts"`
	CreatedAt                  time.Time           `bson:"created_at" json:"created_at"`
	FinishedAt                 *time.Time          `bson:"finished_at,omitempty" json:"finished_at,omitempty"`
}

// Outbox job statuses. A job goes pending→done exactly once; the
// delivery outcome (sent vs failed) lives in the email log, not here.
const (
	JobPending = "pending"
	JobDone    = "done"
)

// EmailLogEntry is the append-only audit of one dispatch attempt.
// Every attempt, including ones short-circuited by a missing provider
// credential, terminates in exactly one entry.
type EmailLogEntry struct {
	ID                         primitive.ObjectID  `bson:"_id" json:"id"`
	To                         string              `bson:"to" json:"to"`
	Subject                    string              `bson:"subject" json:"subject"`
	TemplateName               string              `bson:"template_name" json:"template_name"`
	RelatedEventType           string              `bson:"related_event_type" json:"related_event_type"`
	RelatedCandidatePositionID *primitive.ObjectID `bson:"related_candidate_position_id,omitempty" json:"related_candidate_position_id,omitempty"`
	SentAt                     time.Time           `bson:"sent_at" json:"sent_at"`
	Status                     string              `bson:"status" json:"status"` // sent | failed
	Error                      string              `bson:"error,omitempty" json:"error,omitempty"`
	ProviderMessageID          string              `bson:"provider_message_id,omitempty" json:"provider_message_id,omitempty"`
}

// Email delivery statuses.
const (
	EmailSent   = "sent"
	EmailFailed = "failed"
)
