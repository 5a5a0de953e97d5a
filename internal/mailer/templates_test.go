package mailer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joe123-crypto/recruiter/internal/types"
)

func TestSMTPHost(t *testing.T) {
	tests := []struct {
		imapHost string
		want     string
	}{
		{"imap.gmail.com", "smtp.gmail.com"},
		{"imap.example.org", "smtp.example.org"},
		{"mail.example.org", "mail.example.org"},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, SMTPHost(tt.imapHost))
	}
}

func TestScoreColor(t *testing.T) {
	assert.Equal(t, "#22c55e", ScoreColor(95))
	assert.Equal(t, "#22c55e", ScoreColor(80))
	assert.Equal(t, "#eab308", ScoreColor(79))
	assert.Equal(t, "#eab308", ScoreColor(60))
	assert.Equal(t, "#ef4444", ScoreColor(59))
	assert.Equal(t, "#ef4444", ScoreColor(1))
}

func TestSummaryHTML(t *testing.T) {
	criteria := types.JobCriteria{JobTitle: "Backend Engineer", ExperienceLevel: "Senior (5-8 yrs)"}
	session := types.ScanSession{
		ScannedCount: 7,
		Candidates: []types.CandidateRecord{
			types.NewCandidateRecord(10, types.CandidateEvaluation{
				Name:    "Ada Lovelace",
				Email:   "ada@example.com",
				Score:   91,
				Status:  types.StatusInterview,
				Summary: "Excellent fit.",
			}),
			types.NewCandidateRecord(11, types.CandidateEvaluation{
				Name:   "Charles Babbage",
				Email:  "charles@example.com",
				Score:  55,
				Status: types.StatusPending,
			}),
		},
	}

	html, err := SummaryHTML(criteria, session)
	require.NoError(t, err)

	assert.Contains(t, html, "Backend Engineer")
	assert.Contains(t, html, "Ada Lovelace")
	assert.Contains(t, html, "Charles Babbage")
	assert.Contains(t, html, "#22c55e") // high score color
	assert.Contains(t, html, "#ef4444") // low score color
	assert.Contains(t, html, "Messages scanned: 7")
}

func TestSummaryHTMLNoCandidates(t *testing.T) {
	html, err := SummaryHTML(types.JobCriteria{JobTitle: "QA Engineer"}, types.ScanSession{ScannedCount: 3})
	require.NoError(t, err)
	assert.Contains(t, html, "No candidates matched")
}

func TestSummaryHTMLEscapesContent(t *testing.T) {
	session := types.ScanSession{
		ScannedCount: 1,
		Candidates: []types.CandidateRecord{
			types.NewCandidateRecord(1, types.CandidateEvaluation{
				Name:  "<script>alert(1)</script>",
				Score: 70,
			}),
		},
	}

	html, err := SummaryHTML(types.JobCriteria{JobTitle: "Engineer"}, session)
	require.NoError(t, err)
	assert.NotContains(t, html, "<script>")
}

func TestInvitationHTML(t *testing.T) {
	candidate := types.NewCandidateRecord(5, types.CandidateEvaluation{
		Name:  "Ada Lovelace",
		Email: "ada@example.com",
	})
	criteria := types.JobCriteria{JobTitle: "Backend Engineer"}

	html, err := InvitationHTML(candidate, criteria)
	require.NoError(t, err)
	assert.Contains(t, html, "Dear Ada Lovelace")
	assert.Contains(t, html, "Backend Engineer")
	assert.Contains(t, html, "interview")
}

func TestBuildMessage(t *testing.T) {
	msg, err := buildMessage("hr@example.com", "ada@example.com", "Interview invitation", "<p>Hello</p>")
	require.NoError(t, err)

	text := string(msg)
	assert.Contains(t, text, "From: <hr@example.com>")
	assert.Contains(t, text, "To: <ada@example.com>")
	assert.Contains(t, text, "Subject: Interview invitation")
	assert.Contains(t, text, "text/html")
}
