// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"
	"time"

	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/nimble-la/stars/internal/app/system/pipeline"
	"github.com/nimble-la/stars/internal/app/system/workers"
	"go.uber.org/zap"
)

// appConfigKeys defines the configuration keys for S.T.A.R.S.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: mongo_uri, session_name, etc.
//   - Environment variables: STARS_MONGO_URI, STARS_SESSION_NAME, etc.
//   - Command-line flags: --mongo_uri, --session_name, etc.
var appConfigKeys = []config.AppKey{
	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "stars", Desc: "MongoDB database name"},
	{Name: "mongo_max_pool_size", Default: 100, Desc: "MongoDB max connection pool size (default: 100)"},
	{Name: "mongo_min_pool_size", Default: 10, Desc: "MongoDB min connection pool size (default: 10)"},

	{Name: "session_key", Default: "dev-only-change-me-please-0123456789ABCDEF", Desc: "Session signing key (must be strong in production)"},
	{Name: "session_name", Default: "stars-session", Desc: "Session cookie name"},
	{Name: "session_domain", Default: "", Desc: "Session cookie domain (blank means current host)"},
	{Name: "session_ttl", Default: "168h", Desc: "Session lifetime (e.g., 24h, 168h)"},

	{Name: "base_url", Default: "https://stars.nimble.la", Desc: "Base URL for notification email links"},

	// Resend transactional email
	{Name: "resend_api_key", Default: "", Desc: "Resend API key (empty disables email delivery)"},
	{Name: "resend_from_email", Default: "Nimble S.T.A.R.S <notifications@stars.nimble.la>", Desc: "From header for outgoing email"},

	// Manatal ATS
	{Name: "manatal_api_key", Default: "", Desc: "Manatal Open API token (empty disables ATS endpoints)"},
	{Name: "manatal_base_url", Default: "", Desc: "Manatal API base URL override (blank = production)"},

	// Supabase object storage
	{Name: "supabase_url", Default: "", Desc: "Supabase project URL for resume storage"},
	{Name: "supabase_service_key", Default: "", Desc: "Supabase service-role key"},

	// Notification and outbox tuning
	{Name: "login_debounce", Default: "1h", Desc: "Window suppressing repeat client-login notifications"},
	{Name: "dispatch_interval", Default: "5s", Desc: "Email dispatcher poll interval"},
	{Name: "outbox_retention", Default: "720h", Desc: "How long finished outbox jobs are kept"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// It is called early in startup so that both WAFFLE and the app have
// access to configuration before any backends or handlers are built.
// CoreConfig comes from the shared WAFFLE layer; AppConfig is specific
// to this app.
//
// WAFFLE's config.LoadWithAppConfig handles:
//   - Loading from .env files
//   - Loading from config.yaml/json/toml files
//   - Reading environment variables (WAFFLE_* for core, STARS_* for app)
//   - Parsing command-line flags
//   - Merging with precedence: flags > env > files > defaults
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "STARS", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		MongoURI:         appValues.String("mongo_uri"),
		MongoDatabase:    appValues.String("mongo_database"),
		MongoMaxPoolSize: uint64(appValues.Int("mongo_max_pool_size")),
		MongoMinPoolSize: uint64(appValues.Int("mongo_min_pool_size")),

		SessionKey:    appValues.String("session_key"),
		SessionName:   appValues.String("session_name"),
		SessionDomain: appValues.String("session_domain"),
		SessionTTL:    appValues.Duration("session_ttl", 168*time.Hour),

		BaseURL: appValues.String("base_url"),

		ResendAPIKey:    appValues.String("resend_api_key"),
		ResendFromEmail: appValues.String("resend_from_email"),

		ManatalAPIKey:  appValues.String("manatal_api_key"),
		ManatalBaseURL: appValues.String("manatal_base_url"),

		SupabaseURL:        appValues.String("supabase_url"),
		SupabaseServiceKey: appValues.String("supabase_service_key"),

		LoginDebounce:    appValues.Duration("login_debounce", pipeline.DefaultLoginDebounce),
		DispatchInterval: appValues.Duration("dispatch_interval", workers.DefaultDispatchInterval),
		OutboxRetention:  appValues.Duration("outbox_retention", 30*24*time.Hour),
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation.
//
// Return nil to accept the loaded config, or an error to abort startup.
// The MongoDB URI format is validated early so configuration mistakes
// surface before a connection attempt. The Resend, Manatal, and
// Supabase credentials are optional: their absence degrades the related
// features rather than blocking startup.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
		logger.Error("invalid MongoDB URI", zap.Error(err))
		return fmt.Errorf("invalid MongoDB URI: %w", err)
	}

	if appCfg.ResendAPIKey == "" {
		logger.Warn("resend_api_key not set; notification emails will be logged as failed")
	}
	if appCfg.ManatalAPIKey == "" {
		logger.Warn("manatal_api_key not set; ATS search and import are disabled")
	}
	if appCfg.SupabaseURL == "" || appCfg.SupabaseServiceKey == "" {
		logger.Warn("supabase storage not configured; resume upload on import is disabled")
	}

	return nil
}
