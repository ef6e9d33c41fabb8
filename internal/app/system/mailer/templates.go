// internal/app/system/mailer/templates.go
package mailer

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/nimble-la/stars/internal/domain/models"
)

// Notification email builders. Each returns an Email with the subject
// and HTML body filled in; the caller sets To per recipient.

type stageColor struct {
	Bg   string
	Text string
}

var stageColors = map[string]stageColor{
	models.StageSubmitted:   {Bg: "#DBEAFE", Text: "#1D4ED8"},
	models.StageToInterview: {Bg: "#FEF3C7", Text: "#B45309"},
	models.StageApproved:    {Bg: "#D1FAE5", Text: "#047857"},
	models.StageRejected:    {Bg: "#FEE2E2", Text: "#B91C1C"},
}

func stageBadge(stage string) template.HTML {
	colors, ok := stageColors[stage]
	if !ok {
		colors = stageColors[models.StageSubmitted]
	}
	label := models.StageLabel(stage)
	return template.HTML(fmt.Sprintf(
		`<span style="display:inline-block;padding:2px 8px;border-radius:4px;font-size:12px;font-weight:600;background:%s;color:%s">%s</span>`,
		colors.Bg, colors.Text, template.HTMLEscapeString(label)))
}

func btn(text, url string) template.HTML {
	return template.HTML(fmt.Sprintf(
		`<a href="%s" style="display:inline-block;background:#111827;color:#fff;padding:12px 24px;border-radius:6px;font-size:14px;font-weight:600;text-decoration:none;margin-top:8px">%s</a>`,
		template.HTMLEscapeString(url), template.HTMLEscapeString(text)))
}

// preview shortens a comment body for inclusion in an email.
func preview(body string) string {
	const max = 200
	runes := []rune(body)
	if len(runes) <= max {
		return body
	}
	return string(runes[:max]) + "..."
}

var funcs = template.FuncMap{
	"badge": stageBadge,
	"btn":   btn,
}

const wrapTemplate = `<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><meta name="viewport" content="width=device-width"></head>
<body style="background:#f6f9fc;font-family:-apple-system,BlinkMacSystemFont,'Segoe UI',Roboto,sans-serif;margin:0;padding:0">
<div style="background:#fff;max-width:580px;margin:0 auto;padding:20px 0 48px">
  <div style="padding:32px 40px 16px">
    <div style="font-size:24px;font-weight:bold;color:#111827;margin:0;line-height:1">nimble</div>
    <div style="font-size:11px;color:#6b7280;margin:2px 0 0;letter-spacing:2px;text-transform:uppercase">S.T.A.R.S</div>
  </div>
  <div style="padding:0 40px">{{template "content" .}}</div>
  <hr style="border:none;border-top:1px solid #e5e7eb;margin:32px 40px">
  <div style="padding:0 40px">
    <p style="font-size:12px;color:#6b7280;margin:0">Nimble S.T.A.R.S &middot; <a href="https://nimble.la" style="color:#6b7280;text-decoration:underline">nimble.la</a></p>
    <p style="font-size:11px;color:#9ca3af;margin:8px 0 0">You received this because you're a user on the platform.</p>
  </div>
</div>
</body>
</html>`

func render(name, content string, data any) string {
	tmpl := template.Must(template.New(name).Funcs(funcs).Parse(wrapTemplate))
	template.Must(tmpl.New("content").Parse(content))
	var buf bytes.Buffer
	_ = tmpl.Execute(&buf, data)
	return buf.String()
}

// StageChangeData drives the generic from→to stage email.
type StageChangeData struct {
	ActorName     string
	CandidateName string
	FromStage     string
	ToStage       string
	PositionTitle string
	OrgName       string
	ProfileURL    string
}

const stageChangeContent = `
    <h2 style="font-size:20px;font-weight:bold;color:#111827;margin:16px 0 8px">Stage Change</h2>
    <p style="font-size:14px;color:#374151;line-height:24px">
      <strong>{{.ActorName}}</strong> moved <strong>{{.CandidateName}}</strong>
      from {{badge .FromStage}} to {{badge .ToStage}}
    </p>
    <p style="font-size:13px;color:#6b7280;margin:4px 0 24px">Position: {{.PositionTitle}} &middot; {{.OrgName}}</p>
    {{btn "View Candidate Profile" .ProfileURL}}`

func BuildStageChangeEmail(data StageChangeData) Email {
	return Email{
		Subject:  fmt.Sprintf("%s moved to %s", data.CandidateName, models.StageLabel(data.ToStage)),
		HTMLBody: render("stage-change", stageChangeContent, data),
	}
}

// WorkflowStageData drives the stage-specific next-step emails.
type WorkflowStageData struct {
	ActorName     string
	CandidateName string
	PositionTitle string
	OrgName       string
	ProfileURL    string
}

const toInterviewContent = `
    <h2 style="font-size:20px;font-weight:bold;color:#111827;margin:16px 0 8px">Interview Stage</h2>
    <p style="font-size:14px;color:#374151;line-height:24px">
      <strong>{{.CandidateName}}</strong> has been moved to the {{badge "to_interview"}} stage
      for <strong>{{.PositionTitle}}</strong>.
    </p>
    <p style="font-size:13px;color:#6b7280;margin:4px 0 8px">{{.OrgName}}</p>
    <div style="background:#FEF3C7;border:1px solid #F59E0B;border-radius:8px;padding:16px;margin:16px 0 24px">
      <p style="font-size:14px;color:#92400E;margin:0;font-weight:600">Next Step: Schedule an interview</p>
      <p style="font-size:13px;color:#92400E;margin:4px 0 0">Review the candidate's profile and coordinate interview scheduling.</p>
    </div>
    {{btn "Review Candidate" .ProfileURL}}`

func BuildToInterviewEmail(data WorkflowStageData) Email {
	return Email{
		Subject:  fmt.Sprintf("Interview Stage: %s", data.CandidateName),
		HTMLBody: render("workflow-to-interview", toInterviewContent, data),
	}
}

const approvedContent = `
    <h2 style="font-size:20px;font-weight:bold;color:#111827;margin:16px 0 8px">Candidate Approved</h2>
    <p style="font-size:14px;color:#374151;line-height:24px">
      <strong>{{.CandidateName}}</strong> has been {{badge "approved"}}
      for <strong>{{.PositionTitle}}</strong>.
    </p>
    <p style="font-size:13px;color:#6b7280;margin:4px 0 8px">{{.OrgName}}</p>
    <div style="background:#D1FAE5;border:1px solid #10B981;border-radius:8px;padding:16px;margin:16px 0 24px">
      <p style="font-size:14px;color:#065F46;margin:0;font-weight:600">Next Step: Prepare offer</p>
      <p style="font-size:13px;color:#065F46;margin:4px 0 0">The candidate has been approved. Coordinate next steps for the hiring process.</p>
    </div>
    {{btn "View Candidate" .ProfileURL}}`

func BuildApprovedEmail(data WorkflowStageData) Email {
	return Email{
		Subject:  fmt.Sprintf("Candidate Approved: %s", data.CandidateName),
		HTMLBody: render("workflow-approved", approvedContent, data),
	}
}

const rejectedContent = `
    <h2 style="font-size:20px;font-weight:bold;color:#111827;margin:16px 0 8px">Candidate Rejected</h2>
    <p style="font-size:14px;color:#374151;line-height:24px">
      <strong>{{.CandidateName}}</strong> was {{badge "rejected"}}
      for <strong>{{.PositionTitle}}</strong> by <strong>{{.ActorName}}</strong>.
    </p>
    <p style="font-size:13px;color:#6b7280;margin:4px 0 24px">{{.OrgName}}</p>
    {{btn "View Details" .ProfileURL}}`

func BuildRejectedEmail(data WorkflowStageData) Email {
	return Email{
		Subject:  fmt.Sprintf("Candidate Rejected: %s", data.CandidateName),
		HTMLBody: render("workflow-rejected", rejectedContent, data),
	}
}

// CommentData drives both the client-comment and admin-note emails.
type CommentData struct {
	ActorName      string
	CandidateName  string
	PositionTitle  string
	CommentPreview string
	ProfileURL     string
}

const newCommentContent = `
    <h2 style="font-size:20px;font-weight:bold;color:#111827;margin:16px 0 8px">New Comment</h2>
    <p style="font-size:14px;color:#374151;line-height:24px">
      <strong>{{.ActorName}}</strong> left a comment on <strong>{{.CandidateName}}</strong>
    </p>
    <p style="font-size:13px;color:#6b7280;margin:4px 0 16px">Position: {{.PositionTitle}}</p>
    <div style="border-left:3px solid #d1d5db;padding-left:16px;margin:0 0 24px">
      <p style="font-size:14px;color:#4b5563;font-style:italic;line-height:22px;margin:0">&ldquo;{{.CommentPreview}}&rdquo;</p>
    </div>
    {{btn "View Comments" .ProfileURL}}`

func BuildNewCommentEmail(data CommentData) Email {
	data.CommentPreview = preview(data.CommentPreview)
	return Email{
		Subject:  fmt.Sprintf("New Comment on %s", data.CandidateName),
		HTMLBody: render("new-comment", newCommentContent, data),
	}
}

const adminCommentContent = `
    <h2 style="font-size:20px;font-weight:bold;color:#111827;margin:16px 0 8px">Note from Nimble</h2>
    <p style="font-size:14px;color:#374151;line-height:24px">
      Nimble left a note on <strong>{{.CandidateName}}</strong>
    </p>
    <p style="font-size:13px;color:#6b7280;margin:4px 0 16px">Position: {{.PositionTitle}}</p>
    <div style="border-left:3px solid #d1d5db;padding-left:16px;margin:0 0 24px">
      <p style="font-size:14px;color:#4b5563;font-style:italic;line-height:22px;margin:0">&ldquo;{{.CommentPreview}}&rdquo;</p>
    </div>
    {{btn "View Comments" .ProfileURL}}`

func BuildAdminCommentEmail(data CommentData) Email {
	data.CommentPreview = preview(data.CommentPreview)
	return Email{
		Subject:  fmt.Sprintf("Note from Nimble on %s", data.CandidateName),
		HTMLBody: render("admin-comment", adminCommentContent, data),
	}
}

// AssignedData drives the new-candidate email sent to client users.
type AssignedData struct {
	CandidateName string
	PositionTitle string
	OrgName       string
	CurrentRole   string
	ProfileURL    string
}

const assignedContent = `
    <h2 style="font-size:20px;font-weight:bold;color:#111827;margin:16px 0 8px">New Candidate Assigned</h2>
    <p style="font-size:14px;color:#374151;line-height:24px">
      A new candidate has been added to <strong>{{.PositionTitle}}</strong>
    </p>
    <p style="font-size:13px;color:#6b7280;margin:4px 0 16px">{{.OrgName}}</p>
    <div style="background:#f9fafb;border:1px solid #e5e7eb;border-radius:8px;padding:16px;margin:0 0 24px">
      <p style="font-size:16px;font-weight:600;color:#111827;margin:0">{{.CandidateName}}</p>
      {{if .CurrentRole}}<p style="font-size:13px;color:#6b7280;margin:4px 0 0">{{.CurrentRole}}</p>{{end}}
    </div>
    {{btn "Review Candidate" .ProfileURL}}`

func BuildCandidateAssignedEmail(data AssignedData) Email {
	return Email{
		Subject:  fmt.Sprintf("New Candidate for %s", data.PositionTitle),
		HTMLBody: render("candidate-assigned", assignedContent, data),
	}
}

// ClientLoginData drives the admin alert for client sign-ins.
type ClientLoginData struct {
	UserName        string
	OrgName         string
	LoginTime       string
	ClientDetailURL string
}

const clientLoginContent = `
    <h2 style="font-size:20px;font-weight:bold;color:#111827;margin:16px 0 8px">Client Login</h2>
    <p style="font-size:14px;color:#374151;line-height:24px">
      <strong>{{.UserName}}</strong> from <strong>{{.OrgName}}</strong> logged in
    </p>
    <p style="font-size:13px;color:#6b7280;margin:4px 0 24px">{{.LoginTime}}</p>
    {{btn "View Client" .ClientDetailURL}}`

func BuildClientLoginEmail(data ClientLoginData) Email {
	return Email{
		Subject:  fmt.Sprintf("Client Login: %s (%s)", data.UserName, data.OrgName),
		HTMLBody: render("client-login", clientLoginContent, data),
	}
}
