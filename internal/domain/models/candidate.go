// internal/domain/models/candidate.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Candidate is a person who can be assigned to any number of positions.
//
// ManatalID is set only for candidates imported from the Manatal ATS and
// is unique when present (sparse unique index), which is what makes
// re-imports detectable.
type Candidate struct {
	ID             primitive.ObjectID `bson:"_id" json:"id"`
	FullName       string             `bson:"full_name" json:"full_name"`
	FullNameCI     string             `bson:"full_name_ci" json:"-"`
	Email          string             `bson:"email,omitempty" json:"email,omitempty"`
	Phone          string             `bson:"phone,omitempty" json:"phone,omitempty"`
	CurrentRole    string             `bson:"current_role,omitempty" json:"current_role,omitempty"`
	CurrentCompany string             `bson:"current_company,omitempty" json:"current_company,omitempty"`
	Summary        string             `bson:"summary,omitempty" json:"summary,omitempty"`

	ManatalID         *int64     `bson:"manatal_id,omitempty" json:"manatal_id,omitempty"`
	ManatalURL        string     `bson:"manatal_url,omitempty" json:"manatal_url,omitempty"`
	ManatalImportedAt *time.Time `bson:"manatal_imported_at,omitempty" json:"manatal_imported_at,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// CandidateFile is a stored document (resume, portfolio) attached to a
// candidate. FileURL points at the object-storage public URL.
type CandidateFile struct {
	ID          primitive.ObjectID `bson:"_id" json:"id"`
	CandidateID primitive.ObjectID `bson:"candidate_id" json:"candidate_id"`
	FileURL     string             `bson:"file_url" json:"file_url"`
	FileName    string             `bson:"file_name" json:"file_name"`
	FileType    string             `bson:"file_type" json:"file_type"`
	UploadedAt  time.Time          `bson:"uploaded_at" json:"uploaded_at"`
}
