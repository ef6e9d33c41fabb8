// internal/app/system/notify/notify.go
//
// Notification fan-out. Every pipeline event resolves to a recipient
// set; each recipient gets one in-app notification and one queued
// email. Delivery to each recipient is independent: a failure for one
// is logged and does not roll back the others.
package notify

import (
	"context"
	"time"

	"github.com/nimble-la/stars/internal/app/system/mailer"
	"github.com/nimble-la/stars/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// RecipientResolver enumerates broadcast groups. The users store
// satisfies this; tests substitute a fixed list.
type RecipientResolver interface {
	ActiveAdmins(ctx context.Context) ([]models.User, error)
	ActiveClientsOf(ctx context.Context, orgID primitive.ObjectID) ([]models.User, error)
}

// NotificationCreator persists one in-app notification.
type NotificationCreator interface {
	Create(ctx context.Context, n models.Notification) (models.Notification, error)
}

// EmailEnqueuer queues one outbound email for the dispatcher.
type EmailEnqueuer interface {
	Enqueue(ctx context.Context, job models.EmailJob) (models.EmailJob, error)
}

// Service performs the fan-out.
type Service struct {
	recipients    RecipientResolver
	notifications NotificationCreator
	outbox        EmailEnqueuer
	baseURL       string
	log           *zap.Logger
}

func New(recipients RecipientResolver, notifications NotificationCreator, outbox EmailEnqueuer, baseURL string, logger *zap.Logger) *Service {
	if baseURL == "" {
		baseURL = "https://stars.nimble.la"
	}
	return &Service{
		recipients:    recipients,
		notifications: notifications,
		outbox:        outbox,
		baseURL:       baseURL,
		log:           logger,
	}
}

// CandidateAssigned notifies the client users of the position's org,
// excluding the acting admin.
func (s *Service) CandidateAssigned(ctx context.Context, actor models.User, candidate models.Candidate, position models.Position, org models.Organization, cpID primitive.ObjectID) error {
	clients, err := s.recipients.ActiveClientsOf(ctx, org.ID)
	if err != nil {
		return err
	}

	message := candidate.FullName + " was assigned to " + position.Title
	email := mailer.BuildCandidateAssignedEmail(mailer.AssignedData{
		CandidateName: candidate.FullName,
		PositionTitle: position.Title,
		OrgName:       org.Name,
		CurrentRole:   candidate.CurrentRole,
		ProfileURL:    s.baseURL + "/dashboard",
	})

	for _, u := range clients {
		if u.ID == actor.ID {
			continue
		}
		s.deliver(ctx, u, models.NotifyCandidateAssigned, message, "candidate-assigned", email, &cpID)
	}
	return nil
}

// StageChanged notifies the opposite side of the actor. An admin
// moving a candidate to approved additionally alerts the other admins.
func (s *Service) StageChanged(ctx context.Context, actor models.User, candidate models.Candidate, position models.Position, org models.Organization, cpID primitive.ObjectID, fromStage, toStage string) error {
	message := actor.FullName + " moved " + candidate.FullName +
		" from " + models.StageLabel(fromStage) + " to " + models.StageLabel(toStage)

	email, templateName := s.stageEmail(actor, candidate, position, org, fromStage, toStage)

	var targets []models.User
	if actor.Role == models.RoleClient {
		admins, err := s.recipients.ActiveAdmins(ctx)
		if err != nil {
			return err
		}
		targets = admins
	} else {
		clients, err := s.recipients.ActiveClientsOf(ctx, org.ID)
		if err != nil {
			return err
		}
		targets = clients
		if toStage == models.StageApproved {
			admins, err := s.recipients.ActiveAdmins(ctx)
			if err != nil {
				return err
			}
			targets = append(targets, admins...)
		}
	}

	for _, u := range targets {
		if u.ID == actor.ID {
			continue
		}
		s.deliver(ctx, u, models.NotifyStageChange, message, templateName, email, &cpID)
	}
	return nil
}

// stageEmail picks the stage-specific template for the terminal-ish
// stages and the generic from→to one otherwise.
func (s *Service) stageEmail(actor models.User, candidate models.Candidate, position models.Position, org models.Organization, fromStage, toStage string) (mailer.Email, string) {
	wf := mailer.WorkflowStageData{
		ActorName:     actor.FullName,
		CandidateName: candidate.FullName,
		PositionTitle: position.Title,
		OrgName:       org.Name,
		ProfileURL:    s.baseURL + "/dashboard",
	}
	switch toStage {
	case models.StageToInterview:
		return mailer.BuildToInterviewEmail(wf), "workflow-to-interview"
	case models.StageApproved:
		return mailer.BuildApprovedEmail(wf), "workflow-approved"
	case models.StageRejected:
		return mailer.BuildRejectedEmail(wf), "workflow-rejected"
	default:
		return mailer.BuildStageChangeEmail(mailer.StageChangeData{
			ActorName:     actor.FullName,
			CandidateName: candidate.FullName,
			FromStage:     fromStage,
			ToStage:       toStage,
			PositionTitle: position.Title,
			OrgName:       org.Name,
			ProfileURL:    s.baseURL + "/dashboard",
		}), "stage-change"
	}
}

// CommentAdded notifies the opposite role. A client comment alerts all
// admins; an admin comment surfaces to the org's clients as a note
// from Nimble rather than from the individual admin.
func (s *Service) CommentAdded(ctx context.Context, actor models.User, candidate models.Candidate, position models.Position, org models.Organization, cpID primitive.ObjectID, body string) error {
	if actor.Role == models.RoleClient {
		admins, err := s.recipients.ActiveAdmins(ctx)
		if err != nil {
			return err
		}
		message := actor.FullName + " commented on " + candidate.FullName
		email := mailer.BuildNewCommentEmail(mailer.CommentData{
			ActorName:      actor.FullName,
			CandidateName:  candidate.FullName,
			PositionTitle:  position.Title,
			CommentPreview: body,
			ProfileURL:     s.baseURL + "/admin",
		})
		for _, u := range admins {
			if u.ID == actor.ID {
				continue
			}
			s.deliver(ctx, u, models.NotifyNewComment, message, "new-comment", email, &cpID)
		}
		return nil
	}

	clients, err := s.recipients.ActiveClientsOf(ctx, org.ID)
	if err != nil {
		return err
	}
	message := "Nimble left a note on " + candidate.FullName
	email := mailer.BuildAdminCommentEmail(mailer.CommentData{
		ActorName:      actor.FullName,
		CandidateName:  candidate.FullName,
		PositionTitle:  position.Title,
		CommentPreview: body,
		ProfileURL:     s.baseURL + "/dashboard",
	})
	for _, u := range clients {
		if u.ID == actor.ID {
			continue
		}
		s.deliver(ctx, u, models.NotifyNewComment, message, "admin-comment", email, &cpID)
	}
	return nil
}

// ClientLoggedIn alerts all admins that a client signed in.
func (s *Service) ClientLoggedIn(ctx context.Context, user models.User, org models.Organization, at time.Time) error {
	admins, err := s.recipients.ActiveAdmins(ctx)
	if err != nil {
		return err
	}

	message := user.FullName + " from " + org.Name + " logged in"
	email := mailer.BuildClientLoginEmail(mailer.ClientLoginData{
		UserName:        user.FullName,
		OrgName:         org.Name,
		LoginTime:       at.UTC().Format("Jan 2, 2006 3:04 PM MST"),
		ClientDetailURL: s.baseURL + "/admin/clients/" + org.ID.Hex(),
	})

	for _, u := range admins {
		s.deliver(ctx, u, models.NotifyClientLogin, message, "client-login", email, nil)
	}
	return nil
}

// deliver writes one notification and queues one email for a single
// recipient. Failures are logged, never propagated.
func (s *Service) deliver(ctx context.Context, to models.User, eventType, message, templateName string, email mailer.Email, cpID *primitive.ObjectID) {
	if _, err := s.notifications.Create(ctx, models.Notification{
		Type:                       eventType,
		Message:                    message,
		UserID:                     to.ID,
		RelatedCandidatePositionID: cpID,
	}); err != nil {
		s.log.Error("create notification",
			zap.String("type", eventType),
			zap.String("user_id", to.ID.Hex()),
			zap.Error(err))
	}

	if _, err := s.outbox.Enqueue(ctx, models.EmailJob{
		To:                         to.Email,
		Subject:                    email.Subject,
		HTML:                       email.HTMLBody,
		TemplateName:               templateName,
		RelatedEventType:           eventType,
		RelatedCandidatePositionID: cpID,
	}); err != nil {
		s.log.Error("enqueue email",
			zap.String("type", eventType),
			zap.String("to", to.Email),
			zap.Error(err))
	}
}
