package workers_test

import (
	"context"
	"errors"
	"testing"

	"github.com/nimble-la/stars/internal/app/store/emaillog"
	"github.com/nimble-la/stars/internal/app/store/outbox"
	"github.com/nimble-la/stars/internal/app/system/mailer"
	"github.com/nimble-la/stars/internal/app/system/workers"
	"github.com/nimble-la/stars/internal/domain/models"
	"github.com/nimble-la/stars/internal/testutil"
	"go.uber.org/zap"
)

// fakeSender succeeds or fails per configured error.
type fakeSender struct {
	err  error
	sent []mailer.Email
}

func (f *fakeSender) Send(ctx context.Context, e mailer.Email) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.sent = append(f.sent, e)
	return "msg_123", nil
}

func enqueueJob(t *testing.T, ob *outbox.Store, to string) models.EmailJob {
	t.Helper()
	ctx, cancel := testutil.TestContext()
	defer cancel()
	job, err := ob.Enqueue(ctx, models.EmailJob{
		To:               to,
		Subject:          "Candidate Approved: Ada Lovelace",
		HTML:             "<html><body>ok</body></html>",
		TemplateName:     "workflow-approved",
		RelatedEventType: models.NotifyStageChange,
	})
	if err != nil {
		t.Fatalf("enqueue: %v", err)
	}
	return job
}

func TestDrain_SuccessLogsSent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	ob := outbox.New(db)
	el := emaillog.New(db)
	sender := &fakeSender{}
	d := workers.NewEmailDispatcher(ob, el, sender, zap.NewNop(), 0)

	enqueueJob(t, ob, "client@acme.com")
	d.Drain(ctx)

	if len(sender.sent) != 1 {
		t.Fatalf("sends: got %d, want 1", len(sender.sent))
	}

	entries, err := el.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("read email log: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("log entries: got %d, want 1", len(entries))
	}
	e := entries[0]
	if e.Status != models.EmailSent {
		t.Errorf("status: got %q, want %q", e.Status, models.EmailSent)
	}
	if e.ProviderMessageID != "msg_123" {
		t.Errorf("provider message id: got %q", e.ProviderMessageID)
	}
	if e.Error != "" {
		t.Errorf("error should be empty on success, got %q", e.Error)
	}

	pending, err := ob.CountPending(ctx)
	if err != nil {
		t.Fatalf("count pending: %v", err)
	}
	if pending != 0 {
		t.Errorf("pending after drain: got %d, want 0", pending)
	}
}

func TestDrain_SendFailureLogsFailed(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	ob := outbox.New(db)
	el := emaillog.New(db)
	sender := &fakeSender{err: errors.New("provider exploded")}
	d := workers.NewEmailDispatcher(ob, el, sender, zap.NewNop(), 0)

	enqueueJob(t, ob, "client@acme.com")
	d.Drain(ctx)

	entries, err := el.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("read email log: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("log entries: got %d, want exactly 1", len(entries))
	}
	if entries[0].Status != models.EmailFailed {
		t.Errorf("status: got %q, want %q", entries[0].Status, models.EmailFailed)
	}
	if entries[0].Error != "provider exploded" {
		t.Errorf("error: got %q", entries[0].Error)
	}

	// A failed send still finishes the job; no retry storm.
	pending, _ := ob.CountPending(ctx)
	if pending != 0 {
		t.Errorf("pending after failed dispatch: got %d, want 0", pending)
	}
}

func TestDrain_MissingCredentialLogsFailed(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	ob := outbox.New(db)
	el := emaillog.New(db)
	// Empty API key: Send short-circuits with ErrNoCredential.
	d := workers.NewEmailDispatcher(ob, el, mailer.NewResend("", ""), zap.NewNop(), 0)

	enqueueJob(t, ob, "client@acme.com")
	d.Drain(ctx)

	entries, err := el.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("read email log: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("log entries: got %d, want 1", len(entries))
	}
	if entries[0].Status != models.EmailFailed {
		t.Errorf("status: got %q, want %q", entries[0].Status, models.EmailFailed)
	}
	if entries[0].Error != "credential not configured" {
		t.Errorf("error: got %q, want %q", entries[0].Error, "credential not configured")
	}
}

func TestDrain_OneLogEntryPerJob(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	ob := outbox.New(db)
	el := emaillog.New(db)
	sender := &fakeSender{}
	d := workers.NewEmailDispatcher(ob, el, sender, zap.NewNop(), 0)

	enqueueJob(t, ob, "a@acme.com")
	enqueueJob(t, ob, "b@acme.com")
	enqueueJob(t, ob, "c@acme.com")

	d.Drain(ctx)
	// A second drain over an empty outbox must not add entries.
	d.Drain(ctx)

	entries, err := el.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("read email log: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("log entries: got %d, want 3", len(entries))
	}
}
