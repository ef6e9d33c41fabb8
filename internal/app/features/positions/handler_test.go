package positions_test

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/nimble-la/stars/internal/app/features/positions"
	candidatepositionstore "github.com/nimble-la/stars/internal/app/store/candidatepositions"
	organizationstore "github.com/nimble-la/stars/internal/app/store/organizations"
	positionstore "github.com/nimble-la/stars/internal/app/store/positions"
	"github.com/nimble-la/stars/internal/domain/models"
	"github.com/nimble-la/stars/internal/testutil"
	"go.uber.org/zap"
)

func newHandler(t *testing.T) (*positions.Handler, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	h := positions.NewHandler(
		positionstore.New(db),
		organizationstore.New(db),
		candidatepositionstore.New(db),
		zap.NewNop(),
	)
	return h, testutil.NewFixtures(t, db)
}

func TestServeList_AdminSeesAllOrgs(t *testing.T) {
	h, fx := newHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	orgA := fx.CreateOrganization(ctx, "Acme Corp")
	orgB := fx.CreateOrganization(ctx, "Globex")
	fx.CreatePosition(ctx, "Backend Engineer", orgA.ID)
	fx.CreatePosition(ctx, "Data Analyst", orgB.ID)

	req := testutil.NewAuthenticatedRequest("GET", "/positions", testutil.AdminUser())
	rec := testutil.NewRecorder()
	h.ServeList(rec, req)

	rec.AssertStatus(t, http.StatusOK)
	var list []models.Position
	if err := json.NewDecoder(rec.Body).Decode(&list); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(list) != 2 {
		t.Errorf("expected 2 positions, got %d", len(list))
	}
}

func TestServeList_ClientScopedToOwnOrg(t *testing.T) {
	h, fx := newHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	orgA := fx.CreateOrganization(ctx, "Acme Corp")
	orgB := fx.CreateOrganization(ctx, "Globex")
	fx.CreatePosition(ctx, "Backend Engineer", orgA.ID)
	fx.CreatePosition(ctx, "Data Analyst", orgB.ID)

	req := testutil.NewAuthenticatedRequest("GET", "/positions", testutil.ClientUser(orgA.ID))
	rec := testutil.NewRecorder()
	h.ServeList(rec, req)

	rec.AssertStatus(t, http.StatusOK)
	var list []models.Position
	if err := json.NewDecoder(rec.Body).Decode(&list); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("expected 1 position, got %d", len(list))
	}
	if list[0].Title != "Backend Engineer" {
		t.Errorf("expected own org's position, got %q", list[0].Title)
	}
}

func TestServeView_ClientOtherOrgForbidden(t *testing.T) {
	h, fx := newHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	orgA := fx.CreateOrganization(ctx, "Acme Corp")
	orgB := fx.CreateOrganization(ctx, "Globex")
	pos := fx.CreatePosition(ctx, "Backend Engineer", orgB.ID)

	req := testutil.NewAuthenticatedRequest("GET", "/positions/"+pos.ID.Hex(), testutil.ClientUser(orgA.ID))
	req = testutil.WithChiURLParam(req, "id", pos.ID.Hex())
	rec := testutil.NewRecorder()
	h.ServeView(rec, req)

	rec.AssertStatus(t, http.StatusForbidden)
}

func TestServeView_IncludesPipelineRows(t *testing.T) {
	h, fx := newHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	org := fx.CreateOrganization(ctx, "Acme Corp")
	pos := fx.CreatePosition(ctx, "Backend Engineer", org.ID)
	cand := fx.CreateCandidate(ctx, "Ada Lovelace")
	fx.CreateAssignment(ctx, cand.ID, pos.ID, models.StageSubmitted)

	req := testutil.NewAuthenticatedRequest("GET", "/positions/"+pos.ID.Hex(), testutil.ClientUser(org.ID))
	req = testutil.WithChiURLParam(req, "id", pos.ID.Hex())
	rec := testutil.NewRecorder()
	h.ServeView(rec, req)

	rec.AssertStatus(t, http.StatusOK)
	var resp struct {
		Position   models.Position            `json:"position"`
		Candidates []models.CandidatePosition `json:"candidates"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Position.ID != pos.ID {
		t.Errorf("position id: got %s, want %s", resp.Position.ID.Hex(), pos.ID.Hex())
	}
	if len(resp.Candidates) != 1 {
		t.Errorf("expected 1 pipeline row, got %d", len(resp.Candidates))
	}
}

func TestServeView_UnknownID(t *testing.T) {
	h, _ := newHandler(t)

	id := "64b000000000000000000000"
	req := testutil.NewAuthenticatedRequest("GET", "/positions/"+id, testutil.AdminUser())
	req = testutil.WithChiURLParam(req, "id", id)
	rec := testutil.NewRecorder()
	h.ServeView(rec, req)

	rec.AssertStatus(t, http.StatusNotFound)
}

func TestHandleCreate_UnknownOrgRejected(t *testing.T) {
	h, _ := newHandler(t)

	body := `{"title":"Backend Engineer","organization_id":"64b000000000000000000000"}`
	req := testutil.WithUser(
		testutil.NewRequestWithBody("POST", "/positions", body),
		testutil.AdminUser(),
	)
	rec := testutil.NewRecorder()
	h.HandleCreate(rec, req)

	rec.AssertStatus(t, http.StatusBadRequest)
	rec.AssertContains(t, "organization not found")
}

func TestHandleStatus_RejectsUnknownStatus(t *testing.T) {
	h, fx := newHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	org := fx.CreateOrganization(ctx, "Acme Corp")
	pos := fx.CreatePosition(ctx, "Backend Engineer", org.ID)

	req := testutil.WithUser(
		testutil.NewRequestWithBody("PUT", "/positions/"+pos.ID.Hex()+"/status", `{"status":"paused"}`),
		testutil.AdminUser(),
	)
	req = testutil.WithChiURLParam(req, "id", pos.ID.Hex())
	rec := testutil.NewRecorder()
	h.HandleStatus(rec, req)

	rec.AssertStatus(t, http.StatusBadRequest)
}

func TestHandleStatus_ClosesPosition(t *testing.T) {
	h, fx := newHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	org := fx.CreateOrganization(ctx, "Acme Corp")
	pos := fx.CreatePosition(ctx, "Backend Engineer", org.ID)

	req := testutil.WithUser(
		testutil.NewRequestWithBody("PUT", "/positions/"+pos.ID.Hex()+"/status", `{"status":"closed"}`),
		testutil.AdminUser(),
	)
	req = testutil.WithChiURLParam(req, "id", pos.ID.Hex())
	rec := testutil.NewRecorder()
	h.HandleStatus(rec, req)

	rec.AssertStatus(t, http.StatusOK)
	if !strings.Contains(rec.Body.String(), "closed") {
		t.Errorf("expected closed status in response, got %q", rec.Body.String())
	}
}
