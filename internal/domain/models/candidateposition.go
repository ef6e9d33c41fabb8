// internal/domain/models/candidateposition.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CandidatePosition is the join entity for one candidate's application
// to one position; it is the unit the stage workflow operates on.
// There is at most one row per (position, candidate) pair, enforced by
// a unique compound index.
//
// LastInteractionAt is bumped by every workflow operation that touches
// the row (assign, stage change, comment) and is never earlier than
// CreatedAt.
type CandidatePosition struct {
	ID                primitive.ObjectID `bson:"_id" json:"id"`
	CandidateID       primitive.ObjectID `bson:"candidate_id" json:"candidate_id"`
	PositionID        primitive.ObjectID `bson:"position_id" json:"position_id"`
	Stage             string             `bson:"stage" json:"stage"`
	CreatedAt         time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt         time.Time          `bson:"updated_at" json:"updated_at"`
	LastInteractionAt time.Time          `bson:"last_interaction_at" json:"last_interaction_at"`
}

// Pipeline stages a CandidatePosition moves through. Transitions are
// deliberately unrestricted: any stage may move to any other stage,
// including re-opening a rejected or approved candidate.
const (
	StageSubmitted   = "submitted"
	StageToInterview = "to_interview"
	StageApproved    = "approved"
	StageRejected    = "rejected"
)

// Stages is the full set of valid pipeline stages, the source of truth
// for validation.
var Stages = []string{
	StageSubmitted,
	StageToInterview,
	StageApproved,
	StageRejected,
}

// ValidStage reports whether s is one of the four pipeline stages.
func ValidStage(s string) bool {
	for _, v := range Stages {
		if s == v {
			return true
		}
	}
	return false
}

var stageLabels = map[string]string{
	StageSubmitted:   "Submitted",
	StageToInterview: "Interview",
	StageApproved:    "Approved",
	StageRejected:    "Rejected",
}

// StageLabel returns the human-readable label for a stage, falling back
// to the raw value for anything unknown.
func StageLabel(s string) string {
	if l, ok := stageLabels[s]; ok {
		return l
	}
	return s
}
