// internal/app/system/indexes/indexes.go
package indexes

import (
	"context"
	"errors"
	"strings"

	"github.com/nimble-la/stars/internal/app/store/activity"
	"github.com/nimble-la/stars/internal/app/store/candidatefiles"
	"github.com/nimble-la/stars/internal/app/store/candidatepositions"
	"github.com/nimble-la/stars/internal/app/store/candidates"
	"github.com/nimble-la/stars/internal/app/store/comments"
	"github.com/nimble-la/stars/internal/app/store/emaillog"
	"github.com/nimble-la/stars/internal/app/store/notifications"
	"github.com/nimble-la/stars/internal/app/store/organizations"
	"github.com/nimble-la/stars/internal/app/store/outbox"
	"github.com/nimble-la/stars/internal/app/store/positions"
	"github.com/nimble-la/stars/internal/app/store/users"
	"go.mongodb.org/mongo-driver/mongo"
)

/*
EnsureAll is called at startup. Each store's EnsureIndexes is idempotent.
We aggregate errors so any problem is visible and startup can fail fast.
*/
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	var problems []string

	ensure := func(name string, fn func(context.Context) error) {
		if err := fn(ctx); err != nil {
			problems = append(problems, name+": "+err.Error())
		}
	}

	ensure("users", userstore.New(db).EnsureIndexes)
	ensure("organizations", organizationstore.New(db).EnsureIndexes)
	ensure("positions", positionstore.New(db).EnsureIndexes)
	ensure("candidates", candidatestore.New(db).EnsureIndexes)
	ensure("candidate_files", candidatefilestore.New(db).EnsureIndexes)
	ensure("candidate_positions", candidatepositionstore.New(db).EnsureIndexes)
	ensure("comments", commentstore.New(db).EnsureIndexes)
	ensure("activity_log", activity.New(db).EnsureIndexes)
	ensure("notifications", notificationstore.New(db).EnsureIndexes)
	ensure("email_log", emaillog.New(db).EnsureIndexes)
	ensure("email_outbox", outbox.New(db).EnsureIndexes)

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}
