// internal/app/store/comments/commentstore.go
package commentstore

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/nimble-la/stars/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

// ErrEmptyBody is returned when a comment body is empty after trimming.
var ErrEmptyBody = errors.New("comment body must not be empty")

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("comments")}
}

// EnsureIndexes creates the candidate-position lookup index.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	_, err := s.c.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "candidate_position_id", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("idx_comment_cp"),
		},
	})
	return err
}

// Create inserts a comment. The body must be non-empty after trimming;
// sanitization is the caller's concern.
func (s *Store) Create(ctx context.Context, c models.Comment) (models.Comment, error) {
	c.Body = strings.TrimSpace(c.Body)
	if c.Body == "" {
		return models.Comment{}, ErrEmptyBody
	}
	c.ID = primitive.NewObjectID()
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC()
	}
	if _, err := s.c.InsertOne(ctx, c); err != nil {
		return models.Comment{}, err
	}
	return c, nil
}

// ListByCandidatePosition returns the comments on one application,
// newest first.
func (s *Store) ListByCandidatePosition(ctx context.Context, cpID primitive.ObjectID) ([]models.Comment, error) {
	cur, err := s.c.Find(ctx, bson.M{"candidate_position_id": cpID},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var comments []models.Comment
	if err := cur.All(ctx, &comments); err != nil {
		return nil, err
	}
	return comments, nil
}
