package validators_test

import (
	"testing"

	"github.com/nimble-la/stars/internal/app/system/validators"
	"github.com/nimble-la/stars/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestEnsureAll(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	// EnsureAll should succeed on a clean database
	err := validators.EnsureAll(ctx, db)
	if err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}
}

func TestEnsureAll_Idempotent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	// First call
	err := validators.EnsureAll(ctx, db)
	if err != nil {
		t.Fatalf("First EnsureAll failed: %v", err)
	}

	// Second call should also succeed (idempotent)
	err = validators.EnsureAll(ctx, db)
	if err != nil {
		t.Fatalf("Second EnsureAll failed: %v", err)
	}
}

func TestEnsureAll_CreatesCollections(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	err := validators.EnsureAll(ctx, db)
	if err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}

	// Verify collections exist
	expectedCollections := []string{
		"users",
		"organizations",
		"positions",
		"candidates",
		"candidate_positions",
		"comments",
		"candidate_files",
		"activity_log",
		"notifications",
		"email_log",
		"email_outbox",
	}

	names, err := db.ListCollectionNames(ctx, bson.M{})
	if err != nil {
		t.Fatalf("ListCollectionNames failed: %v", err)
	}

	collMap := make(map[string]bool)
	for _, name := range names {
		collMap[name] = true
	}

	for _, expected := range expectedCollections {
		if !collMap[expected] {
			t.Errorf("expected collection %q to exist", expected)
		}
	}
}

func TestUsersValidator_RequiredFields(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	err := validators.EnsureAll(ctx, db)
	if err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}

	// Try to insert user without required fields - should fail
	_, err = db.Collection("users").InsertOne(ctx, bson.M{
		"email": "missing@example.com",
	})
	if err == nil {
		t.Error("expected validation error when inserting user without required fields")
	}
}

func TestUsersValidator_ValidUser(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	err := validators.EnsureAll(ctx, db)
	if err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}

	// Insert valid user - should succeed
	_, err = db.Collection("users").InsertOne(ctx, bson.M{
		"full_name":    "Test User",
		"full_name_ci": "test user",
		"email":        "test@example.com",
		"role":         "admin",
		"is_active":    true,
	})
	if err != nil {
		t.Errorf("Insert valid user failed: %v", err)
	}
}

func TestUsersValidator_InvalidRole(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	err := validators.EnsureAll(ctx, db)
	if err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}

	_, err = db.Collection("users").InsertOne(ctx, bson.M{
		"full_name":    "Test User",
		"full_name_ci": "test user",
		"email":        "test@example.com",
		"role":         "superuser",
		"is_active":    true,
	})
	if err == nil {
		t.Error("expected validation error for unknown role")
	}
}

func TestOrganizationsValidator_RequiredFields(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	err := validators.EnsureAll(ctx, db)
	if err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}

	_, err = db.Collection("organizations").InsertOne(ctx, bson.M{
		"logo_url": "https://example.com/logo.png",
	})
	if err == nil {
		t.Error("expected validation error when inserting organization without a name")
	}
}

func TestOrganizationsValidator_ValidOrg(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	err := validators.EnsureAll(ctx, db)
	if err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}

	_, err = db.Collection("organizations").InsertOne(ctx, bson.M{
		"name":    "Acme Corp",
		"name_ci": "acme corp",
	})
	if err != nil {
		t.Errorf("Insert valid organization failed: %v", err)
	}
}

func TestPositionsValidator_InvalidStatus(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	err := validators.EnsureAll(ctx, db)
	if err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}

	_, err = db.Collection("positions").InsertOne(ctx, bson.M{
		"title":           "Backend Engineer",
		"title_ci":        "backend engineer",
		"status":          "paused",
		"organization_id": primitive.NewObjectID(),
	})
	if err == nil {
		t.Error("expected validation error for unknown position status")
	}
}

func TestPositionsValidator_ValidPosition(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	err := validators.EnsureAll(ctx, db)
	if err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}

	_, err = db.Collection("positions").InsertOne(ctx, bson.M{
		"title":           "Backend Engineer",
		"title_ci":        "backend engineer",
		"status":          "open",
		"organization_id": primitive.NewObjectID(),
	})
	if err != nil {
		t.Errorf("Insert valid position failed: %v", err)
	}
}

func TestCandidatePositionsValidator_InvalidStage(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	err := validators.EnsureAll(ctx, db)
	if err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}

	_, err = db.Collection("candidate_positions").InsertOne(ctx, bson.M{
		"candidate_id": primitive.NewObjectID(),
		"position_id":  primitive.NewObjectID(),
		"stage":        "archived",
	})
	if err == nil {
		t.Error("expected validation error for unknown stage")
	}
}

func TestCandidatePositionsValidator_ValidAssignment(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	err := validators.EnsureAll(ctx, db)
	if err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}

	_, err = db.Collection("candidate_positions").InsertOne(ctx, bson.M{
		"candidate_id": primitive.NewObjectID(),
		"position_id":  primitive.NewObjectID(),
		"stage":        "submitted",
	})
	if err != nil {
		t.Errorf("Insert valid assignment failed: %v", err)
	}
}

func TestNotificationsValidator_InvalidType(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	err := validators.EnsureAll(ctx, db)
	if err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}

	_, err = db.Collection("notifications").InsertOne(ctx, bson.M{
		"type":    "marketing_blast",
		"message": "hello",
		"is_read": false,
		"user_id": primitive.NewObjectID(),
	})
	if err == nil {
		t.Error("expected validation error for unknown notification type")
	}
}

func TestNotificationsValidator_ValidNotification(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	err := validators.EnsureAll(ctx, db)
	if err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}

	_, err = db.Collection("notifications").InsertOne(ctx, bson.M{
		"type":    "stage_change",
		"message": "Ada Lovelace moved to Interview",
		"is_read": false,
		"user_id": primitive.NewObjectID(),
	})
	if err != nil {
		t.Errorf("Insert valid notification failed: %v", err)
	}
}

func TestEmailLogValidator_InvalidStatus(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	err := validators.EnsureAll(ctx, db)
	if err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}

	_, err = db.Collection("email_log").InsertOne(ctx, bson.M{
		"to":      "client@example.com",
		"subject": "Candidate Approved: Ada Lovelace",
		"status":  "queued",
	})
	if err == nil {
		t.Error("expected validation error for unknown email status")
	}
}

func TestEmailLogValidator_ValidEntry(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	err := validators.EnsureAll(ctx, db)
	if err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}

	_, err = db.Collection("email_log").InsertOne(ctx, bson.M{
		"to":      "client@example.com",
		"subject": "Candidate Approved: Ada Lovelace",
		"status":  "sent",
	})
	if err != nil {
		t.Errorf("Insert valid email log entry failed: %v", err)
	}
}
