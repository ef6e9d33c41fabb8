package indexes_test

import (
	"context"
	"testing"

	"github.com/nimble-la/stars/internal/app/system/indexes"
	"github.com/nimble-la/stars/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func ensureAll(t *testing.T) (*mongo.Database, context.Context) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	t.Cleanup(cancel)

	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}
	return db, ctx
}

// indexNames lists the index names present on a collection.
func indexNames(t *testing.T, ctx context.Context, db *mongo.Database, coll string) map[string]bool {
	t.Helper()
	cur, err := db.Collection(coll).Indexes().List(ctx)
	if err != nil {
		t.Fatalf("list indexes on %s: %v", coll, err)
	}
	defer cur.Close(ctx)

	names := make(map[string]bool)
	for cur.Next(ctx) {
		var idx bson.M
		if err := cur.Decode(&idx); err != nil {
			t.Fatalf("decode index: %v", err)
		}
		if name, ok := idx["name"].(string); ok {
			names[name] = true
		}
	}
	return names
}

func requireIndexes(t *testing.T, ctx context.Context, db *mongo.Database, coll string, expected ...string) {
	t.Helper()
	names := indexNames(t, ctx, db, coll)
	for _, want := range expected {
		if !names[want] {
			t.Errorf("expected index %q to exist on %s collection", want, coll)
		}
	}
}

func TestEnsureAll_Idempotent(t *testing.T) {
	db, ctx := ensureAll(t)

	// Running again must not conflict with the existing definitions.
	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("second EnsureAll failed: %v", err)
	}
}

func TestEnsureAll_UserIndexes(t *testing.T) {
	db, ctx := ensureAll(t)
	requireIndexes(t, ctx, db, "users",
		"uniq_user_email",
		"idx_user_org",
		"idx_user_role_active",
	)
}

func TestEnsureAll_OrganizationIndexes(t *testing.T) {
	db, ctx := ensureAll(t)
	requireIndexes(t, ctx, db, "organizations", "uniq_org_name_ci")
}

func TestEnsureAll_PositionIndexes(t *testing.T) {
	db, ctx := ensureAll(t)
	requireIndexes(t, ctx, db, "positions",
		"idx_position_org",
		"idx_position_status",
	)
}

func TestEnsureAll_CandidateIndexes(t *testing.T) {
	db, ctx := ensureAll(t)
	requireIndexes(t, ctx, db, "candidates",
		"idx_candidate_name_ci",
		"uniq_candidate_manatal_id",
	)
}

func TestEnsureAll_PipelineIndexes(t *testing.T) {
	db, ctx := ensureAll(t)
	requireIndexes(t, ctx, db, "candidate_positions",
		"uniq_cp_position_candidate",
		"idx_cp_candidate",
		"idx_cp_position_stage",
		"idx_cp_stage",
	)
	requireIndexes(t, ctx, db, "comments", "idx_comment_cp")
	requireIndexes(t, ctx, db, "activity_log",
		"idx_activity_cp",
		"idx_activity_created",
	)
}

func TestEnsureAll_NotificationAndEmailIndexes(t *testing.T) {
	db, ctx := ensureAll(t)
	requireIndexes(t, ctx, db, "notifications",
		"idx_notification_user",
		"idx_notification_user_unread",
	)
	requireIndexes(t, ctx, db, "email_outbox", "idx_outbox_status_created")
	requireIndexes(t, ctx, db, "email_log",
		"idx_emaillog_event",
		"idx_emaillog_sent_at",
	)
	requireIndexes(t, ctx, db, "candidate_files", "idx_file_candidate")
}

func TestUniqueEmail_Enforced(t *testing.T) {
	db, ctx := ensureAll(t)

	coll := db.Collection("users")
	base := bson.M{
		"full_name": "Test User",
		"email":     "dup@example.com",
		"role":      "admin",
		"is_active": true,
	}
	if _, err := coll.InsertOne(ctx, base); err != nil {
		t.Fatalf("first insert failed: %v", err)
	}
	dup := bson.M{
		"full_name": "Other User",
		"email":     "dup@example.com",
		"role":      "admin",
		"is_active": true,
	}
	if _, err := coll.InsertOne(ctx, dup); err == nil {
		t.Error("expected duplicate key error for repeated email")
	}
}

func TestUniqueAssignment_Enforced(t *testing.T) {
	db, ctx := ensureAll(t)

	coll := db.Collection("candidate_positions")
	candID := primitive.NewObjectID()
	posID := primitive.NewObjectID()

	if _, err := coll.InsertOne(ctx, bson.M{
		"candidate_id": candID,
		"position_id":  posID,
		"stage":        "submitted",
	}); err != nil {
		t.Fatalf("first insert failed: %v", err)
	}
	if _, err := coll.InsertOne(ctx, bson.M{
		"candidate_id": candID,
		"position_id":  posID,
		"stage":        "approved",
	}); err == nil {
		t.Error("expected duplicate key error for repeated candidate/position pair")
	}
}

func TestManatalID_SparseUnique(t *testing.T) {
	db, ctx := ensureAll(t)

	coll := db.Collection("candidates")

	// Two candidates without a manatal_id must both insert.
	for _, name := range []string{"Ada Lovelace", "Grace Hopper"} {
		if _, err := coll.InsertOne(ctx, bson.M{"full_name": name, "full_name_ci": name}); err != nil {
			t.Fatalf("insert %s: %v", name, err)
		}
	}

	// A repeated manatal_id must not.
	if _, err := coll.InsertOne(ctx, bson.M{"full_name": "A", "full_name_ci": "a", "manatal_id": int64(42)}); err != nil {
		t.Fatalf("insert with manatal_id: %v", err)
	}
	if _, err := coll.InsertOne(ctx, bson.M{"full_name": "B", "full_name_ci": "b", "manatal_id": int64(42)}); err == nil {
		t.Error("expected duplicate key error for repeated manatal_id")
	}
}
