// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). They represent *app-level*
// configuration, not WAFFLE core configuration.
//
// WAFFLE's CoreConfig handles framework-level settings like HTTP/HTTPS
// ports, TLS, logging level, and request limits. AppConfig is where
// everything specific to this application lives: the Mongo connection,
// session cookies, the Resend/Manatal/Supabase credentials, and the
// notification tuning knobs.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64 // Max connections in the driver pool
	MongoMinPoolSize uint64 // Min connections kept warm

	// Session management configuration
	SessionKey    string        // Secret key for signing session cookies (must be strong in production)
	SessionName   string        // Cookie name for sessions (default: stars-session)
	SessionDomain string        // Cookie domain (blank means current host)
	SessionTTL    time.Duration // How long a session cookie stays valid

	// Base URL used in notification email links
	BaseURL string // e.g., "https://stars.nimble.la" or "http://localhost:3000"

	// Resend (transactional email) configuration
	ResendAPIKey    string // API key; empty disables sending (dispatches log as failed)
	ResendFromEmail string // From header, e.g. "Nimble S.T.A.R.S <notifications@stars.nimble.la>"

	// Manatal ATS configuration
	ManatalAPIKey  string // Open API token; empty disables the ATS endpoints
	ManatalBaseURL string // Override for tests; blank means the production API

	// Supabase object storage configuration
	SupabaseURL        string // Project URL, e.g. https://xyz.supabase.co
	SupabaseServiceKey string // service_role key used for server-side uploads

	// Notification and outbox tuning
	LoginDebounce    time.Duration // Suppress repeat client-login notifications within this window
	DispatchInterval time.Duration // How often the email dispatcher polls the outbox
	OutboxRetention  time.Duration // How long finished outbox jobs are kept
}
