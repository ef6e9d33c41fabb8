// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	candidatesfeature "github.com/nimble-la/stars/internal/app/features/candidates"
	emailsfeature "github.com/nimble-la/stars/internal/app/features/emails"
	healthfeature "github.com/nimble-la/stars/internal/app/features/health"
	loginfeature "github.com/nimble-la/stars/internal/app/features/login"
	manatalfeature "github.com/nimble-la/stars/internal/app/features/manatal"
	notificationsfeature "github.com/nimble-la/stars/internal/app/features/notifications"
	pipelinefeature "github.com/nimble-la/stars/internal/app/features/pipeline"
	positionsfeature "github.com/nimble-la/stars/internal/app/features/positions"
	organizationsfeature "github.com/nimble-la/stars/internal/app/features/organizations"
	systemusersfeature "github.com/nimble-la/stars/internal/app/features/systemusers"
	"github.com/nimble-la/stars/internal/app/store/activity"
	candidatefilestore "github.com/nimble-la/stars/internal/app/store/candidatefiles"
	candidatepositionstore "github.com/nimble-la/stars/internal/app/store/candidatepositions"
	candidatestore "github.com/nimble-la/stars/internal/app/store/candidates"
	commentstore "github.com/nimble-la/stars/internal/app/store/comments"
	"github.com/nimble-la/stars/internal/app/store/emaillog"
	notificationstore "github.com/nimble-la/stars/internal/app/store/notifications"
	organizationstore "github.com/nimble-la/stars/internal/app/store/organizations"
	"github.com/nimble-la/stars/internal/app/store/outbox"
	positionstore "github.com/nimble-la/stars/internal/app/store/positions"
	userstore "github.com/nimble-la/stars/internal/app/store/users"
	"github.com/nimble-la/stars/internal/app/system/auth"
	"github.com/nimble-la/stars/internal/app/system/importer"
	"github.com/nimble-la/stars/internal/app/system/manatal"
	"github.com/nimble-la/stars/internal/app/system/notify"
	"github.com/nimble-la/stars/internal/app/system/pipeline"
	"github.com/nimble-la/stars/internal/app/system/storage"
	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this
// WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup,
// and any Startup hooks have completed. The stores are thin wrappers
// around collections, so building a fresh set here is cheap; the
// services (notify fan-out, pipeline, importer) are layered on top and
// shared by the feature handlers.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	secure := coreCfg.Env == "prod"
	sessionMgr, err := auth.NewSessionManager(appCfg.SessionKey, appCfg.SessionName, appCfg.SessionDomain, appCfg.SessionTTL, secure, logger)
	if err != nil {
		logger.Error("session manager init failed", zap.Error(err))
		return nil, err
	}

	db := deps.MongoDatabase

	// Stores
	users := userstore.New(db)
	orgs := organizationstore.New(db)
	positions := positionstore.New(db)
	candidates := candidatestore.New(db)
	candidateFiles := candidatefilestore.New(db)
	candidatePositions := candidatepositionstore.New(db)
	comments := commentstore.New(db)
	act := activity.New(db)
	notifications := notificationstore.New(db)
	emailLog := emaillog.New(db)
	emailOutbox := outbox.New(db)

	// Services
	notifier := notify.New(users, notifications, emailOutbox, appCfg.BaseURL, logger)
	pipelineSvc := pipeline.New(users, orgs, positions, candidates, candidatePositions, comments, act, notifier, appCfg.LoginDebounce, logger)

	ats := manatal.New(appCfg.ManatalAPIKey, appCfg.ManatalBaseURL)
	store := storage.NewSupabase(appCfg.SupabaseURL, appCfg.SupabaseServiceKey)
	importSvc := importer.New(ats, store, candidates, candidateFiles, logger)

	r := chi.NewRouter()

	// Global auth middleware: loads SessionUser into context if logged
	// in, making the current user available via auth.CurrentUser(r).
	r.Use(sessionMgr.LoadSessionUser)

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.MongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Authentication
	loginHandler := loginfeature.NewHandler(users, sessionMgr, pipelineSvc, logger)
	r.Mount("/auth", loginfeature.Routes(loginHandler, sessionMgr))

	// Client organizations and their users
	orgHandler := organizationsfeature.NewHandler(orgs, users, logger)
	r.Mount("/organizations", organizationsfeature.Routes(orgHandler, sessionMgr))

	usersHandler := systemusersfeature.NewHandler(users, logger)
	r.Mount("/users", systemusersfeature.Routes(usersHandler, sessionMgr))

	// Positions and candidates
	positionsHandler := positionsfeature.NewHandler(positions, orgs, candidatePositions, logger)
	r.Mount("/positions", positionsfeature.Routes(positionsHandler, sessionMgr))

	candidatesHandler := candidatesfeature.NewHandler(candidates, candidateFiles, candidatePositions, logger)
	r.Mount("/candidates", candidatesfeature.Routes(candidatesHandler, sessionMgr))

	// The pipeline itself: assignments, stages, comments, audit trail
	pipelineHandler := pipelinefeature.NewHandler(pipelineSvc, candidatePositions, positions, comments, act, logger)
	r.Mount("/pipeline", pipelinefeature.Routes(pipelineHandler, sessionMgr))

	// In-app notifications
	notificationsHandler := notificationsfeature.NewHandler(notifications, logger)
	r.Mount("/notifications", notificationsfeature.Routes(notificationsHandler, sessionMgr))

	// Manatal ATS browsing and import
	manatalHandler := manatalfeature.NewHandler(ats, importSvc, logger)
	r.Mount("/manatal", manatalfeature.Routes(manatalHandler, sessionMgr))

	// Email delivery inspection
	emailsHandler := emailsfeature.NewHandler(emailLog, emailOutbox, logger)
	r.Mount("/emails", emailsfeature.Routes(emailsHandler, sessionMgr))

	return r, nil
}
