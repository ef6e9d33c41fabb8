// internal/domain/models/organization.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Organization is a client company whose open positions are staffed
// through the pipeline. NameCI is stored for case/diacritic-insensitive
// search and sort.
type Organization struct {
	ID           primitive.ObjectID `bson:"_id" json:"id"`
	Name         string             `bson:"name" json:"name"`
	NameCI       string             `bson:"name_ci" json:"-"`
	LogoURL      string             `bson:"logo_url,omitempty" json:"logo_url,omitempty"`
	PrimaryColor string             `bson:"primary_color,omitempty" json:"primary_color,omitempty"`
	CreatedAt    time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at" json:"updated_at"`
}
