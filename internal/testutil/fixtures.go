package testutil

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/dalemusser/waffle/pantry/text"
	"github.com/go-chi/chi/v5"
	"github.com/nimble-la/stars/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that need to access chi.URLParam values.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateOrganization creates a test organization with the given name.
// Returns the created organization with its generated ID.
func (f *Fixtures) CreateOrganization(ctx context.Context, name string) models.Organization {
	f.t.Helper()

	now := time.Now().UTC()
	org := models.Organization{
		ID:        primitive.NewObjectID(),
		Name:      name,
		NameCI:    text.Fold(name),
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err := f.db.Collection("organizations").InsertOne(ctx, org)
	if err != nil {
		f.t.Fatalf("failed to create test organization: %v", err)
	}

	return org
}

// CreateUser creates a test user with the given parameters.
// For client users, orgID must be provided.
func (f *Fixtures) CreateUser(ctx context.Context, fullName, email, role string, orgID *primitive.ObjectID) models.User {
	f.t.Helper()

	now := time.Now().UTC()
	user := models.User{
		ID:             primitive.NewObjectID(),
		FullName:       fullName,
		FullNameCI:     text.Fold(fullName),
		Email:          email,
		Role:           role,
		OrganizationID: orgID,
		IsActive:       true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	_, err := f.db.Collection("users").InsertOne(ctx, user)
	if err != nil {
		f.t.Fatalf("failed to create test user: %v", err)
	}

	return user
}

// CreateAdmin creates a test admin user.
func (f *Fixtures) CreateAdmin(ctx context.Context, fullName, email string) models.User {
	f.t.Helper()
	return f.CreateUser(ctx, fullName, email, models.RoleAdmin, nil)
}

// CreateClient creates a test client user in the given organization.
func (f *Fixtures) CreateClient(ctx context.Context, fullName, email string, orgID primitive.ObjectID) models.User {
	f.t.Helper()
	return f.CreateUser(ctx, fullName, email, models.RoleClient, &orgID)
}

// CreateInactiveUser creates a test user with is_active false.
func (f *Fixtures) CreateInactiveUser(ctx context.Context, fullName, email string) models.User {
	f.t.Helper()

	now := time.Now().UTC()
	user := models.User{
		ID:         primitive.NewObjectID(),
		FullName:   fullName,
		FullNameCI: text.Fold(fullName),
		Email:      email,
		Role:       models.RoleClient,
		IsActive:   false,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	_, err := f.db.Collection("users").InsertOne(ctx, user)
	if err != nil {
		f.t.Fatalf("failed to create inactive test user: %v", err)
	}

	return user
}

// CreatePosition creates a test open position in the given organization.
func (f *Fixtures) CreatePosition(ctx context.Context, title string, orgID primitive.ObjectID) models.Position {
	f.t.Helper()

	now := time.Now().UTC()
	pos := models.Position{
		ID:             primitive.NewObjectID(),
		Title:          title,
		TitleCI:        text.Fold(title),
		Status:         models.PositionOpen,
		OrganizationID: orgID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	_, err := f.db.Collection("positions").InsertOne(ctx, pos)
	if err != nil {
		f.t.Fatalf("failed to create test position: %v", err)
	}

	return pos
}

// CreateCandidate creates a test candidate.
func (f *Fixtures) CreateCandidate(ctx context.Context, fullName string) models.Candidate {
	f.t.Helper()

	now := time.Now().UTC()
	cand := models.Candidate{
		ID:         primitive.NewObjectID(),
		FullName:   fullName,
		FullNameCI: text.Fold(fullName),
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	_, err := f.db.Collection("candidates").InsertOne(ctx, cand)
	if err != nil {
		f.t.Fatalf("failed to create test candidate: %v", err)
	}

	return cand
}

// CreateAssignment creates a candidate/position pipeline row at the
// given stage.
func (f *Fixtures) CreateAssignment(ctx context.Context, candidateID, positionID primitive.ObjectID, stage string) models.CandidatePosition {
	f.t.Helper()

	now := time.Now().UTC()
	cp := models.CandidatePosition{
		ID:                primitive.NewObjectID(),
		CandidateID:       candidateID,
		PositionID:        positionID,
		Stage:             stage,
		CreatedAt:         now,
		UpdatedAt:         now,
		LastInteractionAt: now,
	}

	_, err := f.db.Collection("candidate_positions").InsertOne(ctx, cp)
	if err != nil {
		f.t.Fatalf("failed to create test assignment: %v", err)
	}

	return cp
}
