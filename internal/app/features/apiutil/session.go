// internal/app/features/apiutil/session.go
package apiutil

import (
	"net/http"
	"strings"

	"github.com/nimble-la/stars/internal/app/system/auth"
	"github.com/nimble-la/stars/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SessionUserID returns the signed-in user's ObjectID. The second
// return is false when no user is in context or the stored id is not a
// valid hex ObjectID.
func SessionUserID(r *http.Request) (primitive.ObjectID, bool) {
	su, ok := auth.CurrentUser(r)
	if !ok {
		return primitive.NilObjectID, false
	}
	id, err := primitive.ObjectIDFromHex(su.ID)
	if err != nil {
		return primitive.NilObjectID, false
	}
	return id, true
}

// SessionOrgID returns the signed-in client user's organization
// ObjectID. Admins (and malformed sessions) return false.
func SessionOrgID(r *http.Request) (primitive.ObjectID, bool) {
	su, ok := auth.CurrentUser(r)
	if !ok || su.OrganizationID == "" {
		return primitive.NilObjectID, false
	}
	id, err := primitive.ObjectIDFromHex(su.OrganizationID)
	if err != nil {
		return primitive.NilObjectID, false
	}
	return id, true
}

// IsAdmin reports whether the signed-in user carries the admin role.
func IsAdmin(r *http.Request) bool {
	su, ok := auth.CurrentUser(r)
	return ok && strings.EqualFold(su.Role, models.RoleAdmin)
}
