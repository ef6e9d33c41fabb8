// internal/app/store/candidatefiles/candidatefilestore.go
package candidatefilestore

import (
	"context"
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

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("candidate_files")}
}

// EnsureIndexes creates the candidate lookup index.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	_, err := s.c.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "candidate_id", Value: 1}, {Key: "uploaded_at", Value: -1}},
			Options: options.Index().SetName("idx_file_candidate"),
		},
	})
	return err
}

// Create registers a stored file for a candidate. FileURL points at the
// object store; upload itself happens elsewhere.
func (s *Store) Create(ctx context.Context, f models.CandidateFile) (models.CandidateFile, error) {
	f.ID = primitive.NewObjectID()
	if f.UploadedAt.IsZero() {
		f.UploadedAt = time.Now().UTC()
	}
	if _, err := s.c.InsertOne(ctx, f); err != nil {
		return models.CandidateFile{}, err
	}
	return f, nil
}

// ListByCandidate returns a candidate's files, newest first.
func (s *Store) ListByCandidate(ctx context.Context, candidateID primitive.ObjectID) ([]models.CandidateFile, error) {
	cur, err := s.c.Find(ctx, bson.M{"candidate_id": candidateID},
		options.Find().SetSort(bson.D{{Key: "uploaded_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var files []models.CandidateFile
	if err := cur.All(ctx, &files); err != nil {
		return nil, err
	}
	return files, nil
}

// DeleteByID removes a file record. Returns the number of documents
// deleted (0 or 1).
func (s *Store) DeleteByID(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
