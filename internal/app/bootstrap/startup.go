// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/waffle/config"
	"github.com/nimble-la/stars/internal/app/store/emaillog"
	"github.com/nimble-la/stars/internal/app/store/outbox"
	"github.com/nimble-la/stars/internal/app/system/mailer"
	"github.com/nimble-la/stars/internal/app/system/tasks"
	"github.com/nimble-la/stars/internal/app/system/timeouts"
	"github.com/nimble-la/stars/internal/app/system/workers"
	"go.uber.org/zap"
)

// Background workers started in Startup and stopped in Shutdown.
var (
	emailDispatcher *workers.EmailDispatcher
	jobRunner       *tasks.Runner
)

// Startup runs one-time application initialization after DB connections
// and schema setup are complete, but before the HTTP handler is built.
//
// S.T.A.R.S starts the email dispatcher (draining the outbox into
// Resend) and the periodic job runner here so delivery works even
// before the first request arrives.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if n := timeouts.ConfigureFromEnv(); n > 0 {
		logger.Info("handler timeouts overridden from environment", zap.Int("count", n))
	}

	ob := outbox.New(deps.MongoDatabase)
	el := emaillog.New(deps.MongoDatabase)

	sender := mailer.NewResend(appCfg.ResendAPIKey, appCfg.ResendFromEmail)
	emailDispatcher = workers.NewEmailDispatcher(ob, el, sender, logger, appCfg.DispatchInterval)
	emailDispatcher.Start()

	jobRunner = tasks.NewRunner(logger,
		tasks.OutboxRetentionJob(ob, logger, appCfg.OutboxRetention),
	)
	jobRunner.Start()

	return nil
}
