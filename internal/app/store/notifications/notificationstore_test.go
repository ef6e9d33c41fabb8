package notificationstore_test

import (
	"testing"

	notificationstore "github.com/nimble-la/stars/internal/app/store/notifications"
	"github.com/nimble-la/stars/internal/domain/models"
	"github.com/nimble-la/stars/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newStore(t *testing.T) *notificationstore.Store {
	t.Helper()
	return notificationstore.New(testutil.SetupTestDB(t))
}

func TestCreate_StartsUnread(t *testing.T) {
	s := newStore(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	userID := primitive.NewObjectID()
	n, err := s.Create(ctx, models.Notification{
		UserID:  userID,
		Type:    models.NotifyStageChange,
		Title:   "Stage Change",
		Message: "Ada Lovelace moved to Interview",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if n.IsRead {
		t.Error("new notification should be unread")
	}

	unread, err := s.ListUnread(ctx, userID)
	if err != nil {
		t.Fatalf("ListUnread: %v", err)
	}
	if len(unread) != 1 {
		t.Errorf("expected 1 unread notification, got %d", len(unread))
	}
}

func TestMarkAsRead_OneWay(t *testing.T) {
	s := newStore(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	userID := primitive.NewObjectID()
	n, err := s.Create(ctx, models.Notification{
		UserID:  userID,
		Type:    models.NotifyNewComment,
		Title:   "New Comment",
		Message: "Client A left a comment",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := s.MarkAsRead(ctx, n.ID); err != nil {
		t.Fatalf("MarkAsRead: %v", err)
	}
	count, err := s.CountUnread(ctx, userID)
	if err != nil {
		t.Fatalf("CountUnread: %v", err)
	}
	if count != 0 {
		t.Errorf("expected 0 unread after MarkAsRead, got %d", count)
	}

	// Marking again is a no-op and the read state never reverts.
	if err := s.MarkAsRead(ctx, n.ID); err != nil {
		t.Fatalf("second MarkAsRead: %v", err)
	}
	list, err := s.ListRecent(ctx, userID, 10)
	if err != nil {
		t.Fatalf("ListRecent: %v", err)
	}
	if len(list) != 1 || !list[0].IsRead {
		t.Errorf("notification read state reverted: %+v", list)
	}
}

func TestMarkAllAsRead_Idempotent(t *testing.T) {
	s := newStore(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	userID := primitive.NewObjectID()
	for i := 0; i < 3; i++ {
		if _, err := s.Create(ctx, models.Notification{
			UserID:  userID,
			Type:    models.NotifyStageChange,
			Title:   "Stage Change",
			Message: "moved",
		}); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	n, err := s.MarkAllAsRead(ctx, userID)
	if err != nil {
		t.Fatalf("MarkAllAsRead: %v", err)
	}
	if n != 3 {
		t.Errorf("expected 3 marked, got %d", n)
	}

	// Second call on an empty unread set succeeds and marks nothing.
	n, err = s.MarkAllAsRead(ctx, userID)
	if err != nil {
		t.Fatalf("second MarkAllAsRead: %v", err)
	}
	if n != 0 {
		t.Errorf("expected 0 marked on second call, got %d", n)
	}

	count, err := s.CountUnread(ctx, userID)
	if err != nil {
		t.Fatalf("CountUnread: %v", err)
	}
	if count != 0 {
		t.Errorf("expected empty unread set, got %d", count)
	}
}

func TestListFiltered(t *testing.T) {
	s := newStore(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	userID := primitive.NewObjectID()
	stage, err := s.Create(ctx, models.Notification{
		UserID:  userID,
		Type:    models.NotifyStageChange,
		Title:   "Stage Change",
		Message: "moved",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := s.Create(ctx, models.Notification{
		UserID:  userID,
		Type:    models.NotifyNewComment,
		Title:   "New Comment",
		Message: "commented",
	}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := s.MarkAsRead(ctx, stage.ID); err != nil {
		t.Fatalf("MarkAsRead: %v", err)
	}

	byType, err := s.ListFiltered(ctx, userID, models.NotifyStageChange, 10)
	if err != nil {
		t.Fatalf("ListFiltered by type: %v", err)
	}
	if len(byType) != 1 || byType[0].Type != models.NotifyStageChange {
		t.Errorf("type filter: %+v", byType)
	}

	unread, err := s.ListFiltered(ctx, userID, "unread", 10)
	if err != nil {
		t.Fatalf("ListFiltered unread: %v", err)
	}
	if len(unread) != 1 || unread[0].Type != models.NotifyNewComment {
		t.Errorf("unread filter: %+v", unread)
	}

	all, err := s.ListFiltered(ctx, userID, "", 10)
	if err != nil {
		t.Fatalf("ListFiltered all: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("expected 2 notifications, got %d", len(all))
	}
}

func TestListFiltered_ScopedToUser(t *testing.T) {
	s := newStore(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	userA := primitive.NewObjectID()
	userB := primitive.NewObjectID()
	if _, err := s.Create(ctx, models.Notification{
		UserID:  userA,
		Type:    models.NotifyClientLogin,
		Title:   "Client Login",
		Message: "logged in",
	}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	list, err := s.ListFiltered(ctx, userB, "", 10)
	if err != nil {
		t.Fatalf("ListFiltered: %v", err)
	}
	if len(list) != 0 {
		t.Errorf("expected no notifications for other user, got %d", len(list))
	}
}
