// internal/app/system/limits/limits.go
package limits

// Request and transfer size limits for various features.
// These limits help prevent memory exhaustion from oversized payloads.
const (
	// MaxJSONBodySize is the maximum size for JSON API request bodies.
	MaxJSONBodySize = 1 << 20 // 1 MB

	// MaxResumeSize is the maximum resume download accepted during an
	// ATS import. Oversized resumes degrade to a warning, not a
	// failed import.
	MaxResumeSize = 50 << 20 // 50 MB
)
