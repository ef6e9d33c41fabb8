// internal/app/store/candidatepositions/candidatepositionstore.go
package candidatepositionstore

import (
	"context"
	"errors"
	"time"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
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
	// ErrDuplicateAssignment is returned when the (position, candidate)
	// pair already has a row.
	ErrDuplicateAssignment = errors.New("candidate is already assigned to this position")
	errBadStage            = errors.New(`stage must be "submitted"|"to_interview"|"approved"|"rejected"`)
)

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("candidate_positions")}
}

// EnsureIndexes creates the unique pair index plus the lookup indexes
// used by the pipeline views.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	_, err := s.c.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "position_id", Value: 1}, {Key: "candidate_id", Value: 1}},
			Options: options.Index().SetName("uniq_cp_position_candidate").SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "candidate_id", Value: 1}},
			Options: options.Index().SetName("idx_cp_candidate"),
		},
		{
			Keys:    bson.D{{Key: "position_id", Value: 1}, {Key: "stage", Value: 1}},
			Options: options.Index().SetName("idx_cp_position_stage"),
		},
		{
			Keys:    bson.D{{Key: "stage", Value: 1}},
			Options: options.Index().SetName("idx_cp_stage"),
		},
	})
	return err
}

// Create inserts the row for one candidate's application to one
// position, starting at the submitted stage. The unique pair index
// makes a second insert for the same pair fail with
// ErrDuplicateAssignment.
func (s *Store) Create(ctx context.Context, candidateID, positionID primitive.ObjectID) (models.CandidatePosition, error) {
	now := time.Now().UTC()
	cp := models.CandidatePosition{
		ID:                primitive.NewObjectID(),
		CandidateID:       candidateID,
		PositionID:        positionID,
		Stage:             models.StageSubmitted,
		CreatedAt:         now,
		UpdatedAt:         now,
		LastInteractionAt: now,
	}
	if _, err := s.c.InsertOne(ctx, cp); err != nil {
		if wafflemongo.IsDup(err) {
			return models.CandidatePosition{}, ErrDuplicateAssignment
		}
		return models.CandidatePosition{}, err
	}
	return cp, nil
}

// GetByID loads one row by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.CandidatePosition, error) {
	var cp models.CandidatePosition
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&cp); err != nil {
		return nil, err
	}
	return &cp, nil
}

// GetByPair looks up the row for a (position, candidate) pair. Returns
// mongo.ErrNoDocuments when the candidate is not assigned.
func (s *Store) GetByPair(ctx context.Context, positionID, candidateID primitive.ObjectID) (*models.CandidatePosition, error) {
	var cp models.CandidatePosition
	err := s.c.FindOne(ctx, bson.M{"position_id": positionID, "candidate_id": candidateID}).Decode(&cp)
	if err != nil {
		return nil, err
	}
	return &cp, nil
}

// SetStage patches the stage and bumps updated_at/last_interaction_at.
// The write is last-writer-wins: there is no optimistic concurrency
// token on the row.
func (s *Store) SetStage(ctx context.Context, id primitive.ObjectID, stage string) error {
	if !models.ValidStage(stage) {
		return errBadStage
	}
	now := time.Now().UTC()
	res, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"stage":               stage,
		"updated_at":          now,
		"last_interaction_at": now,
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// Touch bumps updated_at and last_interaction_at without changing the
// stage (used when a comment lands on the row).
func (s *Store) Touch(ctx context.Context, id primitive.ObjectID) error {
	now := time.Now().UTC()
	res, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"updated_at":          now,
		"last_interaction_at": now,
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// ListByPosition returns the rows for one position, most recently
// touched first.
func (s *Store) ListByPosition(ctx context.Context, positionID primitive.ObjectID) ([]models.CandidatePosition, error) {
	return s.find(ctx, bson.M{"position_id": positionID})
}

// ListByCandidate returns the rows for one candidate.
func (s *Store) ListByCandidate(ctx context.Context, candidateID primitive.ObjectID) ([]models.CandidatePosition, error) {
	return s.find(ctx, bson.M{"candidate_id": candidateID})
}

// ListByStage returns every row currently in the given stage.
func (s *Store) ListByStage(ctx context.Context, stage string) ([]models.CandidatePosition, error) {
	if !models.ValidStage(stage) {
		return nil, errBadStage
	}
	return s.find(ctx, bson.M{"stage": stage})
}

// CountByCandidate returns how many positions a candidate is assigned to.
func (s *Store) CountByCandidate(ctx context.Context, candidateID primitive.ObjectID) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{"candidate_id": candidateID})
}

func (s *Store) find(ctx context.Context, filter bson.M) ([]models.CandidatePosition, error) {
	cur, err := s.c.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "last_interaction_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var rows []models.CandidatePosition
	if err := cur.All(ctx, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}
