// internal/app/system/normalize/normalize.go
//
// Package normalize provides canonicalization helpers for user-supplied
// fields before they are validated or stored. Keeping normalization in
// one place ensures lookups (e.g. by email) behave consistently across
// stores and handlers.
package normalize

import "strings"

// Email trims whitespace and lowercases an email address.
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Name trims whitespace but preserves case.
func Name(s string) string {
	return strings.TrimSpace(s)
}

// Role trims and lowercases a role identifier.
func Role(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Stage trims and lowercases a pipeline stage identifier.
func Stage(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// QueryParam trims whitespace from a query parameter, preserving case.
func QueryParam(s string) string {
	return strings.TrimSpace(s)
}
