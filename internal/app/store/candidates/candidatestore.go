// internal/app/store/candidates/candidatestore.go
package candidatestore

import (
	"context"
	"errors"
	"strings"
	"time"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/dalemusser/waffle/pantry/text"
	"github.com/nimble-la/stars/internal/app/system/normalize"
	"github.com/nimble-la/stars/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

var (
	// ErrAlreadyImported is returned when a candidate with the same
	// Manatal id already exists.
	ErrAlreadyImported = errors.New("candidate already imported from Manatal")
	ErrEmptyFullName   = errors.New("candidate full name must not be empty")
)

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("candidates")}
}

// EnsureIndexes creates the sparse unique Manatal id index and the
// folded-name search index.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	_, err := s.c.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "manatal_id", Value: 1}},
			Options: options.Index().SetName("uniq_candidate_manatal_id").SetUnique(true).SetSparse(true),
		},
		{
			Keys:    bson.D{{Key: "full_name_ci", Value: 1}},
			Options: options.Index().SetName("idx_candidate_name_ci"),
		},
	})
	return err
}

// Create inserts a new candidate after normalizing fields.
func (s *Store) Create(ctx context.Context, c models.Candidate) (models.Candidate, error) {
	c.FullName = normalize.Name(c.FullName)
	if c.FullName == "" {
		return models.Candidate{}, ErrEmptyFullName
	}

	now := time.Now().UTC()
	c.ID = primitive.NewObjectID()
	c.FullNameCI = text.Fold(c.FullName)
	c.Email = normalize.Email(c.Email)
	c.CreatedAt = now
	c.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, c); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Candidate{}, ErrAlreadyImported
		}
		return models.Candidate{}, err
	}
	return c, nil
}

// GetByID loads a candidate by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Candidate, error) {
	var c models.Candidate
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&c); err != nil {
		return nil, err
	}
	return &c, nil
}

// GetByManatalID looks up a candidate by external ATS id. Returns
// mongo.ErrNoDocuments if no candidate has been imported under that id.
func (s *Store) GetByManatalID(ctx context.Context, manatalID int64) (*models.Candidate, error) {
	var c models.Candidate
	if err := s.c.FindOne(ctx, bson.M{"manatal_id": manatalID}).Decode(&c); err != nil {
		return nil, err
	}
	return &c, nil
}

// Search returns candidates whose folded name, role or company contains
// the folded search term. An empty term returns everyone, sorted by name.
func (s *Store) Search(ctx context.Context, term string) ([]models.Candidate, error) {
	filter := bson.M{}
	if term = normalize.QueryParam(term); term != "" {
		folded := text.Fold(term)
		quoted := strings.NewReplacer(`\`, `\\`, `.`, `\.`, `*`, `\*`, `+`, `\+`, `?`, `\?`,
			`(`, `\(`, `)`, `\)`, `[`, `\[`, `]`, `\]`, `{`, `\{`, `}`, `\}`, `^`, `\^`, `$`, `\$`, `|`, `\|`).Replace(folded)
		rx := primitive.Regex{Pattern: quoted, Options: "i"}
		filter = bson.M{"$or": bson.A{
			bson.M{"full_name_ci": rx},
			bson.M{"current_role": rx},
			bson.M{"current_company": rx},
		}}
	}

	cur, err := s.c.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "full_name_ci", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var candidates []models.Candidate
	if err := cur.All(ctx, &candidates); err != nil {
		return nil, err
	}
	return candidates, nil
}

// Update holds candidate fields that can be changed after creation.
type Update struct {
	FullName       string
	Email          string
	Phone          string
	CurrentRole    string
	CurrentCompany string
	Summary        string
}

// UpdateByID patches a candidate's mutable fields.
func (s *Store) UpdateByID(ctx context.Context, id primitive.ObjectID, upd Update) error {
	name := normalize.Name(upd.FullName)
	if name == "" {
		return ErrEmptyFullName
	}
	_, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"full_name":       name,
		"full_name_ci":    text.Fold(name),
		"email":           normalize.Email(upd.Email),
		"phone":           upd.Phone,
		"current_role":    upd.CurrentRole,
		"current_company": upd.CurrentCompany,
		"summary":         upd.Summary,
		"updated_at":      time.Now().UTC(),
	}})
	return err
}
