// internal/app/system/pipeline/pipeline.go
//
// Stage workflow service. Every mutation follows the same shape:
// validate, write the entity, append the audit entry, then fan out
// notifications. Fan-out runs after the writes and is best-effort; a
// notification failure never rolls back the assignment or stage move.
package pipeline

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/nimble-la/stars/internal/app/store/activity"
	"github.com/nimble-la/stars/internal/app/store/candidatepositions"
	"github.com/nimble-la/stars/internal/app/store/candidates"
	"github.com/nimble-la/stars/internal/app/store/comments"
	"github.com/nimble-la/stars/internal/app/store/organizations"
	"github.com/nimble-la/stars/internal/app/store/positions"
	"github.com/nimble-la/stars/internal/app/store/users"
	"github.com/nimble-la/stars/internal/app/system/htmlsanitize"
	"github.com/nimble-la/stars/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// DefaultLoginDebounce is how long after a client login before another
// login by the same client notifies admins again.
const DefaultLoginDebounce = time.Hour

// Notifier is the fan-out collaborator (see system/notify).
type Notifier interface {
	CandidateAssigned(ctx context.Context, actor models.User, candidate models.Candidate, position models.Position, org models.Organization, cpID primitive.ObjectID) error
	StageChanged(ctx context.Context, actor models.User, candidate models.Candidate, position models.Position, org models.Organization, cpID primitive.ObjectID, fromStage, toStage string) error
	CommentAdded(ctx context.Context, actor models.User, candidate models.Candidate, position models.Position, org models.Organization, cpID primitive.ObjectID, body string) error
	ClientLoggedIn(ctx context.Context, user models.User, org models.Organization, at time.Time) error
}

// Service coordinates the candidate pipeline.
type Service struct {
	users              *userstore.Store
	orgs               *organizationstore.Store
	positions          *positionstore.Store
	candidates         *candidatestore.Store
	candidatePositions *candidatepositionstore.Store
	comments           *commentstore.Store
	activity           *activity.Store
	notifier           Notifier
	loginDebounce      time.Duration
	log                *zap.Logger
}

func New(
	users *userstore.Store,
	orgs *organizationstore.Store,
	positions *positionstore.Store,
	candidates *candidatestore.Store,
	candidatePositions *candidatepositionstore.Store,
	comments *commentstore.Store,
	act *activity.Store,
	notifier Notifier,
	loginDebounce time.Duration,
	logger *zap.Logger,
) *Service {
	if loginDebounce <= 0 {
		loginDebounce = DefaultLoginDebounce
	}
	return &Service{
		users:              users,
		orgs:               orgs,
		positions:          positions,
		candidates:         candidates,
		candidatePositions: candidatePositions,
		comments:           comments,
		activity:           act,
		notifier:           notifier,
		loginDebounce:      loginDebounce,
		log:                logger,
	}
}

// eventContext is everything the fan-out needs about the entities an
// operation touched.
type eventContext struct {
	actor     models.User
	candidate models.Candidate
	position  models.Position
	org       models.Organization
}

// loadEvent resolves actor, candidate, position, and org, mapping any
// missing record to ErrNotFound.
func (s *Service) loadEvent(ctx context.Context, actorID, candidateID, positionID primitive.ObjectID) (eventContext, error) {
	var ev eventContext

	actor, err := s.users.GetByID(ctx, actorID)
	if err != nil {
		return ev, notFound(err)
	}
	cand, err := s.candidates.GetByID(ctx, candidateID)
	if err != nil {
		return ev, notFound(err)
	}
	pos, err := s.positions.GetByID(ctx, positionID)
	if err != nil {
		return ev, notFound(err)
	}
	org, err := s.orgs.GetByID(ctx, pos.OrganizationID)
	if err != nil {
		return ev, notFound(err)
	}

	ev.actor = *actor
	ev.candidate = *cand
	ev.position = *pos
	ev.org = *org
	return ev, nil
}

// AssignCandidate places a candidate into a position's pipeline at the
// submitted stage. Fails with ErrDuplicateAssignment if the pair
// already exists.
func (s *Service) AssignCandidate(ctx context.Context, candidateID, positionID, actorID primitive.ObjectID) (models.CandidatePosition, error) {
	ev, err := s.loadEvent(ctx, actorID, candidateID, positionID)
	if err != nil {
		return models.CandidatePosition{}, err
	}

	cp, err := s.candidatePositions.Create(ctx, candidateID, positionID)
	if err != nil {
		if errors.Is(err, candidatepositionstore.ErrDuplicateAssignment) {
			return models.CandidatePosition{}, ErrDuplicateAssignment
		}
		return models.CandidatePosition{}, err
	}

	if _, err := s.activity.Append(ctx, models.ActivityEntry{
		Action:              models.ActionAssigned,
		UserID:              ev.actor.ID,
		UserName:            ev.actor.FullName,
		CandidatePositionID: cp.ID,
	}); err != nil {
		s.log.Error("append activity", zap.String("action", models.ActionAssigned), zap.Error(err))
	}

	if err := s.notifier.CandidateAssigned(ctx, ev.actor, ev.candidate, ev.position, ev.org, cp.ID); err != nil {
		s.log.Error("fan out candidate_assigned", zap.String("cp_id", cp.ID.Hex()), zap.Error(err))
	}
	return cp, nil
}

// ChangeStage moves a candidate-position to a new stage. Any stage may
// move to any other stage, including reopening a rejected or approved
// candidate; repeating the current stage still audits and re-notifies.
func (s *Service) ChangeStage(ctx context.Context, cpID primitive.ObjectID, newStage string, actorID primitive.ObjectID) error {
	if !models.ValidStage(newStage) {
		return ErrInvalidStage
	}

	cp, err := s.candidatePositions.GetByID(ctx, cpID)
	if err != nil {
		return notFound(err)
	}
	fromStage := cp.Stage

	ev, err := s.loadEvent(ctx, actorID, cp.CandidateID, cp.PositionID)
	if err != nil {
		return err
	}

	if err := s.candidatePositions.SetStage(ctx, cpID, newStage); err != nil {
		return notFound(err)
	}

	if _, err := s.activity.Append(ctx, models.ActivityEntry{
		Action:              models.ActionStageChange,
		FromStage:           fromStage,
		ToStage:             newStage,
		UserID:              ev.actor.ID,
		UserName:            ev.actor.FullName,
		CandidatePositionID: cpID,
	}); err != nil {
		s.log.Error("append activity", zap.String("action", models.ActionStageChange), zap.Error(err))
	}

	if err := s.notifier.StageChanged(ctx, ev.actor, ev.candidate, ev.position, ev.org, cpID, fromStage, newStage); err != nil {
		s.log.Error("fan out stage_change", zap.String("cp_id", cpID.Hex()), zap.Error(err))
	}
	return nil
}

// AddComment records a note on a candidate-position, bumps its
// interaction timestamps, and notifies the opposite role. The body is
// sanitized before storage; an empty body (after trimming) fails with
// ErrInvalidInput.
func (s *Service) AddComment(ctx context.Context, cpID primitive.ObjectID, body string, actorID primitive.ObjectID) (models.Comment, error) {
	body = htmlsanitize.Sanitize(body)
	if strings.TrimSpace(body) == "" {
		return models.Comment{}, ErrInvalidInput
	}

	cp, err := s.candidatePositions.GetByID(ctx, cpID)
	if err != nil {
		return models.Comment{}, notFound(err)
	}

	ev, err := s.loadEvent(ctx, actorID, cp.CandidateID, cp.PositionID)
	if err != nil {
		return models.Comment{}, err
	}

	comment, err := s.comments.Create(ctx, models.Comment{
		Body:                body,
		UserID:              actorID,
		CandidatePositionID: cpID,
	})
	if err != nil {
		if errors.Is(err, commentstore.ErrEmptyBody) {
			return models.Comment{}, ErrInvalidInput
		}
		return models.Comment{}, err
	}

	if err := s.candidatePositions.Touch(ctx, cpID); err != nil {
		s.log.Error("touch candidate position", zap.String("cp_id", cpID.Hex()), zap.Error(err))
	}

	if _, err := s.activity.Append(ctx, models.ActivityEntry{
		Action:              models.ActionComment,
		UserID:              ev.actor.ID,
		UserName:            ev.actor.FullName,
		CandidatePositionID: cpID,
	}); err != nil {
		s.log.Error("append activity", zap.String("action", models.ActionComment), zap.Error(err))
	}

	if err := s.notifier.CommentAdded(ctx, ev.actor, ev.candidate, ev.position, ev.org, cpID, comment.Body); err != nil {
		s.log.Error("fan out new_comment", zap.String("cp_id", cpID.Hex()), zap.Error(err))
	}
	return comment, nil
}

// RecordLogin stamps the user's lastLoginAt. A client login additionally
// alerts admins, debounced to at most one alert per client per window.
// The check reads the previous lastLoginAt before the stamp; it is a
// relaxed check-then-act, acceptable because the alert is advisory.
func (s *Service) RecordLogin(ctx context.Context, userID primitive.ObjectID) error {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return notFound(err)
	}

	now := time.Now().UTC()
	prev := u.LastLoginAt

	if err := s.users.SetLastLogin(ctx, userID, now); err != nil {
		return err
	}

	if u.Role != models.RoleClient || u.OrganizationID == nil {
		return nil
	}
	if prev != nil && now.Sub(*prev) <= s.loginDebounce {
		return nil
	}

	org, err := s.orgs.GetByID(ctx, *u.OrganizationID)
	if err != nil {
		s.log.Error("load org for login alert", zap.String("user_id", userID.Hex()), zap.Error(err))
		return nil
	}

	if err := s.notifier.ClientLoggedIn(ctx, *u, *org, now); err != nil {
		s.log.Error("fan out client_login", zap.String("user_id", userID.Hex()), zap.Error(err))
	}
	return nil
}

func notFound(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}
	return err
}
