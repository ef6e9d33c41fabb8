// internal/app/store/notifications/notificationstore.go
package notificationstore

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
	return &Store{c: db.Collection("notifications")}
}

// EnsureIndexes creates the per-user and per-user-unread indexes.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	_, err := s.c.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("idx_notification_user"),
		},
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "is_read", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("idx_notification_user_unread"),
		},
	})
	return err
}

// Create inserts a notification for one recipient, unread.
func (s *Store) Create(ctx context.Context, n models.Notification) (models.Notification, error) {
	n.ID = primitive.NewObjectID()
	n.IsRead = false
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now().UTC()
	}
	if _, err := s.c.InsertOne(ctx, n); err != nil {
		return models.Notification{}, err
	}
	return n, nil
}

// ListUnread returns a user's unread notifications, newest first.
func (s *Store) ListUnread(ctx context.Context, userID primitive.ObjectID) ([]models.Notification, error) {
	return s.find(ctx, bson.M{"user_id": userID, "is_read": false}, 0)
}

// ListRecent returns a user's latest notifications regardless of read
// state.
func (s *Store) ListRecent(ctx context.Context, userID primitive.ObjectID, limit int64) ([]models.Notification, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.find(ctx, bson.M{"user_id": userID}, limit)
}

// ListFiltered returns a user's notifications filtered by type, or by
// unread state when filter is "unread". An empty filter returns the
// latest notifications.
func (s *Store) ListFiltered(ctx context.Context, userID primitive.ObjectID, filter string, limit int64) ([]models.Notification, error) {
	if limit <= 0 {
		limit = 50
	}
	q := bson.M{"user_id": userID}
	switch filter {
	case "":
	case "unread":
		q["is_read"] = false
	default:
		q["type"] = filter
	}
	return s.find(ctx, q, limit)
}

// CountUnread returns the size of a user's unread set.
func (s *Store) CountUnread(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{"user_id": userID, "is_read": false})
}

// MarkAsRead flips one notification to read. The transition is one-way;
// marking an already-read notification is a no-op.
func (s *Store) MarkAsRead(ctx context.Context, id primitive.ObjectID) error {
	_, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"is_read": true}})
	return err
}

// MarkAllAsRead empties a user's unread set. Calling it with an already
// empty set is not an error.
func (s *Store) MarkAllAsRead(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	res, err := s.c.UpdateMany(ctx,
		bson.M{"user_id": userID, "is_read": false},
		bson.M{"$set": bson.M{"is_read": true}})
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}

func (s *Store) find(ctx context.Context, filter bson.M, limit int64) ([]models.Notification, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if limit > 0 {
		opts.SetLimit(limit)
	}
	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var notifications []models.Notification
	if err := cur.All(ctx, &notifications); err != nil {
		return nil, err
	}
	return notifications, nil
}
