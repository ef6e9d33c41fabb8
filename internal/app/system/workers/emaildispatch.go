// internal/app/system/workers/emaildispatch.go
package workers

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/nimble-la/stars/internal/app/store/emaillog"
	"github.com/nimble-la/stars/internal/app/store/outbox"
	"github.com/nimble-la/stars/internal/app/system/mailer"
	"github.com/nimble-la/stars/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// DefaultDispatchInterval is how often the dispatcher polls the outbox
// when idle.
const DefaultDispatchInterval = 5 * time.Second

// EmailDispatcher is a background worker that drains the email outbox.
// Each claimed job terminates in exactly one email-log entry: sent with
// the provider message id, or failed with the error. A missing provider
// credential logs failed without calling the provider.
type EmailDispatcher struct {
	outbox   *outbox.Store
	emailLog *emaillog.Store
	sender   mailer.Sender
	log      *zap.Logger
	interval time.Duration
	stopCh   chan struct{}
	wg       sync.WaitGroup
}

// NewEmailDispatcher creates the dispatcher. interval <= 0 falls back
// to DefaultDispatchInterval.
func NewEmailDispatcher(ob *outbox.Store, el *emaillog.Store, sender mailer.Sender, logger *zap.Logger, interval time.Duration) *EmailDispatcher {
	if interval <= 0 {
		interval = DefaultDispatchInterval
	}
	return &EmailDispatcher{
		outbox:   ob,
		emailLog: el,
		sender:   sender,
		log:      logger,
		interval: interval,
		stopCh:   make(chan struct{}),
	}
}

// Start begins the background dispatch loop.
func (w *EmailDispatcher) Start() {
	w.wg.Add(1)
	go w.run()
	w.log.Info("email dispatcher started", zap.Duration("interval", w.interval))
}

// Stop signals the worker to stop and waits for it to finish.
func (w *EmailDispatcher) Stop() {
	close(w.stopCh)
	w.wg.Wait()
	w.log.Info("email dispatcher stopped")
}

func (w *EmailDispatcher) run() {
	defer w.wg.Done()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.stopCh:
			return
		case <-ticker.C:
			w.Drain(context.Background())
		}
	}
}

// Drain claims and dispatches jobs until the outbox is empty. Exported
// so tests and the startup hook can run a pass synchronously.
func (w *EmailDispatcher) Drain(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		claimCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		job, err := w.outbox.ClaimNext(claimCtx)
		cancel()
		if err != nil {
			if !errors.Is(err, mongo.ErrNoDocuments) {
				w.log.Error("claim outbox job", zap.Error(err))
			}
			return
		}
		w.dispatch(ctx, *job)
	}
}

func (w *EmailDispatcher) dispatch(ctx context.Context, job models.EmailJob) {
	sendCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	entry := models.EmailLogEntry{
		To:                         job.To,
		Subject:                    job.Subject,
		TemplateName:               job.TemplateName,
		RelatedEventType:           job.RelatedEventType,
		RelatedCandidatePositionID: job.RelatedCandidatePositionID,
	}

	messageID, err := w.sender.Send(sendCtx, mailer.Email{
		To:       job.To,
		Subject:  job.Subject,
		HTMLBody: job.HTML,
	})
	if err != nil {
		entry.Status = models.EmailFailed
		entry.Error = err.Error()
		w.log.Warn("email send failed",
			zap.String("to", job.To),
			zap.String("template", job.TemplateName),
			zap.Error(err))
	} else {
		entry.Status = models.EmailSent
		entry.ProviderMessageID = messageID
	}

	if _, logErr := w.emailLog.Append(ctx, entry); logErr != nil {
		w.log.Error("append email log",
			zap.String("to", job.To),
			zap.String("status", entry.Status),
			zap.Error(logErr))
	}
}
