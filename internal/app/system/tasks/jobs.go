// internal/app/system/tasks/jobs.go
package tasks

import (
	"context"
	"time"

	"github.com/nimble-la/stars/internal/app/store/outbox"
	"go.uber.org/zap"
)

// OutboxRetentionJob creates a job that prunes finished outbox jobs
// older than the retention window. The email log keeps the audit
// trail; finished outbox rows are only operational residue.
func OutboxRetentionJob(ob *outbox.Store, logger *zap.Logger, retention time.Duration) Job {
	return Job{
		Name:     "outbox-retention",
		Interval: 1 * time.Hour,
		Run: func(ctx context.Context) error {
			count, err := ob.DeleteFinishedBefore(ctx, time.Now().UTC().Add(-retention))
			if err != nil {
				return err
			}
			if count > 0 {
				logger.Info("pruned finished outbox jobs",
					zap.Int64("count", count),
					zap.Duration("retention", retention))
			}
			return nil
		},
	}
}
