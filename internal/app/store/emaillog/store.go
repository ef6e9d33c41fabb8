// internal/app/store/emaillog/store.go
package emaillog

import (
	"context"
	"time"

	"github.com/nimble-la/stars/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store manages the append-only email dispatch audit. The dispatcher
// writes exactly one entry per attempt; nothing updates or deletes them.
type Store struct {
	c *mongo.Collection
}

// New creates a new email log Store.
func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("email_log")}
}

// EnsureIndexes creates the event lookup index.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	_, err := s.c.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "related_event_type", Value: 1},
				{Key: "related_candidate_position_id", Value: 1},
				{Key: "sent_at", Value: -1},
			},
			Options: options.Index().SetName("idx_emaillog_event"),
		},
		{
			Keys:    bson.D{{Key: "sent_at", Value: -1}},
			Options: options.Index().SetName("idx_emaillog_sent_at"),
		},
	})
	return err
}

// Append records one dispatch attempt outcome.
func (s *Store) Append(ctx context.Context, e models.EmailLogEntry) (models.EmailLogEntry, error) {
	e.ID = primitive.NewObjectID()
	if e.SentAt.IsZero() {
		e.SentAt = time.Now().UTC()
	}
	if _, err := s.c.InsertOne(ctx, e); err != nil {
		return models.EmailLogEntry{}, err
	}
	return e, nil
}

// ListByEvent returns the attempts recorded for one event on one
// application, newest first.
func (s *Store) ListByEvent(ctx context.Context, eventType string, cpID *primitive.ObjectID) ([]models.EmailLogEntry, error) {
	filter := bson.M{"related_event_type": eventType}
	if cpID != nil {
		filter["related_candidate_position_id"] = *cpID
	}
	return s.find(ctx, filter, 0)
}

// Recent returns the latest dispatch attempts.
func (s *Store) Recent(ctx context.Context, limit int64) ([]models.EmailLogEntry, error) {
	if limit <= 0 {
		limit = 50
	}
	return s.find(ctx, bson.M{}, limit)
}

func (s *Store) find(ctx context.Context, filter bson.M, limit int64) ([]models.EmailLogEntry, error) {
	opts := options.Find().SetSort(bson.D{{Key: "sent_at", Value: -1}})
	if limit > 0 {
		opts.SetLimit(limit)
	}
	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var entries []models.EmailLogEntry
	if err := cur.All(ctx, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}
