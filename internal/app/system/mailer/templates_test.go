package mailer

import (
	"strings"
	"testing"
)

func TestBuildStageChangeEmail(t *testing.T) {
	e := BuildStageChangeEmail(StageChangeData{
		ActorName:     "Client A",
		CandidateName: "Ada Lovelace",
		FromStage:     "submitted",
		ToStage:       "to_interview",
		PositionTitle: "Backend Engineer",
		OrgName:       "Acme Corp",
		ProfileURL:    "https://stars.example.com/candidates/1",
	})

	if e.Subject != "Ada Lovelace moved to Interview" {
		t.Errorf("subject: got %q", e.Subject)
	}
	for _, want := range []string{
		"Client A", "Ada Lovelace", "Backend Engineer", "Acme Corp",
		"Submitted", "Interview",
		`href="https://stars.example.com/candidates/1"`,
	} {
		if !strings.Contains(e.HTMLBody, want) {
			t.Errorf("body missing %q", want)
		}
	}
}

func TestBuildStageChangeEmail_EscapesNames(t *testing.T) {
	e := BuildStageChangeEmail(StageChangeData{
		ActorName:     "<script>alert(1)</script>",
		CandidateName: "Ada & Co",
		FromStage:     "submitted",
		ToStage:       "approved",
	})
	if strings.Contains(e.HTMLBody, "<script>") {
		t.Error("actor name not escaped")
	}
	if !strings.Contains(e.HTMLBody, "Ada &amp; Co") {
		t.Error("candidate name not escaped")
	}
}

func TestBuildWorkflowEmails(t *testing.T) {
	data := WorkflowStageData{
		ActorName:     "Nimble Admin",
		CandidateName: "Ada Lovelace",
		PositionTitle: "Backend Engineer",
		OrgName:       "Acme Corp",
		ProfileURL:    "https://stars.example.com/candidates/1",
	}

	cases := []struct {
		name        string
		build       func(WorkflowStageData) Email
		wantSubject string
		wantInBody  string
	}{
		{"to interview", BuildToInterviewEmail, "Interview Stage: Ada Lovelace", "Schedule an interview"},
		{"approved", BuildApprovedEmail, "Candidate Approved: Ada Lovelace", "Prepare offer"},
		{"rejected", BuildRejectedEmail, "Candidate Rejected: Ada Lovelace", "Nimble Admin"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := tc.build(data)
			if e.Subject != tc.wantSubject {
				t.Errorf("subject: got %q", e.Subject)
			}
			if !strings.Contains(e.HTMLBody, tc.wantInBody) {
				t.Errorf("body missing %q", tc.wantInBody)
			}
			if !strings.Contains(e.HTMLBody, "Backend Engineer") {
				t.Error("body missing position title")
			}
		})
	}
}

func TestBuildCommentEmails(t *testing.T) {
	data := CommentData{
		ActorName:      "Client A",
		CandidateName:  "Ada Lovelace",
		PositionTitle:  "Backend Engineer",
		CommentPreview: "Strong technical background.",
		ProfileURL:     "https://stars.example.com/pipeline/1",
	}

	e := BuildNewCommentEmail(data)
	if e.Subject != "New Comment on Ada Lovelace" {
		t.Errorf("comment subject: got %q", e.Subject)
	}
	if !strings.Contains(e.HTMLBody, "Strong technical background.") {
		t.Error("comment body missing preview")
	}

	note := BuildAdminCommentEmail(data)
	if note.Subject != "Note from Nimble on Ada Lovelace" {
		t.Errorf("note subject: got %q", note.Subject)
	}
	if !strings.Contains(note.HTMLBody, "Nimble left a note") {
		t.Error("note body missing Nimble attribution")
	}
}

func TestBuildNewCommentEmail_TruncatesLongPreview(t *testing.T) {
	long := strings.Repeat("x", 300)
	e := BuildNewCommentEmail(CommentData{CandidateName: "Ada", CommentPreview: long})
	if strings.Contains(e.HTMLBody, long) {
		t.Error("preview not truncated")
	}
	if !strings.Contains(e.HTMLBody, strings.Repeat("x", 200)+"...") {
		t.Error("truncated preview missing ellipsis")
	}
}

func TestBuildCandidateAssignedEmail(t *testing.T) {
	e := BuildCandidateAssignedEmail(AssignedData{
		CandidateName: "Ada Lovelace",
		PositionTitle: "Backend Engineer",
		OrgName:       "Acme Corp",
		CurrentRole:   "Engineer at Analytical Engines",
		ProfileURL:    "https://stars.example.com/candidates/1",
	})
	if e.Subject != "New Candidate for Backend Engineer" {
		t.Errorf("subject: got %q", e.Subject)
	}
	if !strings.Contains(e.HTMLBody, "Engineer at Analytical Engines") {
		t.Error("body missing current role")
	}

	noRole := BuildCandidateAssignedEmail(AssignedData{CandidateName: "Ada", PositionTitle: "Backend Engineer"})
	if strings.Contains(noRole.HTMLBody, "margin:4px 0 0\"></p>") {
		t.Error("empty current role should omit the paragraph")
	}
}

func TestBuildClientLoginEmail(t *testing.T) {
	e := BuildClientLoginEmail(ClientLoginData{
		UserName:        "Client A",
		OrgName:         "Acme Corp",
		LoginTime:       "2026-08-31 10:00 UTC",
		ClientDetailURL: "https://stars.example.com/organizations/1",
	})
	if e.Subject != "Client Login: Client A (Acme Corp)" {
		t.Errorf("subject: got %q", e.Subject)
	}
	if !strings.Contains(e.HTMLBody, "2026-08-31 10:00 UTC") {
		t.Error("body missing login time")
	}
}

func TestStageBadge_UnknownStageFallsBack(t *testing.T) {
	badge := string(stageBadge("bogus"))
	if !strings.Contains(badge, stageColors["submitted"].Bg) {
		t.Error("unknown stage should use the submitted palette")
	}
}
