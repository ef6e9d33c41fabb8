// internal/app/store/positions/positionstore.go
package positionstore

import (
	"context"
	"errors"
	"time"

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
	ErrEmptyTitle = errors.New("position title must not be empty")
	errBadStatus  = errors.New(`position status must be "open"|"closed"`)
)

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("positions")}
}

// EnsureIndexes creates the org lookup index.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	_, err := s.c.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "organization_id", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("idx_position_org"),
		},
		{
			Keys:    bson.D{{Key: "status", Value: 1}},
			Options: options.Index().SetName("idx_position_status"),
		},
	})
	return err
}

// Create inserts a new position. Status defaults to open.
func (s *Store) Create(ctx context.Context, p models.Position) (models.Position, error) {
	p.Title = normalize.Name(p.Title)
	if p.Title == "" {
		return models.Position{}, ErrEmptyTitle
	}
	if p.Status == "" {
		p.Status = models.PositionOpen
	}
	if p.Status != models.PositionOpen && p.Status != models.PositionClosed {
		return models.Position{}, errBadStatus
	}

	now := time.Now().UTC()
	p.ID = primitive.NewObjectID()
	p.TitleCI = text.Fold(p.Title)
	p.CreatedAt = now
	p.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, p); err != nil {
		return models.Position{}, err
	}
	return p, nil
}

// GetByID loads a position by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Position, error) {
	var p models.Position
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&p); err != nil {
		return nil, err
	}
	return &p, nil
}

// ListByOrg returns the positions of one organization, newest first.
func (s *Store) ListByOrg(ctx context.Context, orgID primitive.ObjectID) ([]models.Position, error) {
	return s.find(ctx, bson.M{"organization_id": orgID})
}

// List returns all positions, newest first.
func (s *Store) List(ctx context.Context) ([]models.Position, error) {
	return s.find(ctx, bson.M{})
}

// CountOpen returns the number of open positions.
func (s *Store) CountOpen(ctx context.Context) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{"status": models.PositionOpen})
}

// UpdateStatus opens or closes a position.
func (s *Store) UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) error {
	if status != models.PositionOpen && status != models.PositionClosed {
		return errBadStatus
	}
	_, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"status":     status,
		"updated_at": time.Now().UTC(),
	}})
	return err
}

// Update holds the position fields that can be changed after creation.
type Update struct {
	Title       string
	Description string
}

// UpdateByID patches a position's mutable fields.
func (s *Store) UpdateByID(ctx context.Context, id primitive.ObjectID, upd Update) error {
	title := normalize.Name(upd.Title)
	if title == "" {
		return ErrEmptyTitle
	}
	_, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"title":       title,
		"title_ci":    text.Fold(title),
		"description": upd.Description,
		"updated_at":  time.Now().UTC(),
	}})
	return err
}

func (s *Store) find(ctx context.Context, filter bson.M) ([]models.Position, error) {
	cur, err := s.c.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var positions []models.Position
	if err := cur.All(ctx, &positions); err != nil {
		return nil, err
	}
	return positions, nil
}
