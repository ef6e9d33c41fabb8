// internal/app/store/activity/store.go
package activity

import (
	"context"
	"time"

	"github.com/nimble-la/stars/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store manages the append-only pipeline activity log. Entries are
// inserted by the workflow service and never updated or deleted.
type Store struct {
	c *mongo.Collection
}

// New creates a new activity Store.
func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("activity_log")}
}

// EnsureIndexes creates necessary indexes for efficient querying.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	_, err := s.c.Indexes().CreateMany(ctx, []mongo.IndexModel{
		// Per-application timeline
		{
			Keys:    bson.D{{Key: "candidate_position_id", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("idx_activity_cp"),
		},
		// Recent activity dashboard
		{
			Keys:    bson.D{{Key: "created_at", Value: -1}},
			Options: options.Index().SetName("idx_activity_created"),
		},
	})
	return err
}

// Append records a new activity entry.
func (s *Store) Append(ctx context.Context, e models.ActivityEntry) (models.ActivityEntry, error) {
	e.ID = primitive.NewObjectID()
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}
	if _, err := s.c.InsertOne(ctx, e); err != nil {
		return models.ActivityEntry{}, err
	}
	return e, nil
}

// ListByCandidatePosition returns the timeline for one application,
// newest first.
func (s *Store) ListByCandidatePosition(ctx context.Context, cpID primitive.ObjectID) ([]models.ActivityEntry, error) {
	return s.find(ctx, bson.M{"candidate_position_id": cpID}, 0)
}

// Recent returns the latest entries across the whole pipeline.
func (s *Store) Recent(ctx context.Context, limit int64) ([]models.ActivityEntry, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.find(ctx, bson.M{}, limit)
}

func (s *Store) find(ctx context.Context, filter bson.M, limit int64) ([]models.ActivityEntry, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if limit > 0 {
		opts.SetLimit(limit)
	}
	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var entries []models.ActivityEntry
	if err := cur.All(ctx, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}
