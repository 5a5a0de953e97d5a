package mailer

import (
	"html/template"
	"strings"

	"github.com/joe123-crypto/recruiter/internal/types"
)

var summaryTmpl = template.Must(template.New("summary").Funcs(template.FuncMap{
	"scoreColor": ScoreColor,
}).Parse(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #1f2937;">
  <h2>Recruitment scan report</h2>
  <p>
    Position: <strong>{{.Criteria.JobTitle}}</strong><br>
    {{if .Criteria.ExperienceLevel}}Experience level: {{.Criteria.ExperienceLevel}}<br>{{end}}
    Messages scanned: {{.Session.ScannedCount}}<br>
    Candidates found: {{len .Session.Candidates}}
  </p>
  {{if .Session.Candidates}}
  <table cellpadding="8" cellspacing="0" border="0" style="border-collapse: collapse; width: 100%;">
    <tr style="background: #f3f4f6; text-align: left;">
      <th>Candidate</th><th>Email</th><th>Score</th><th>Status</th><th>Summary</th>
    </tr>
    {{range .Session.Candidates}}
    <tr style="border-bottom: 1px solid #e5e7eb;">
      <td>{{.Name}}</td>
      <td>{{.Email}}</td>
      <td style="color: {{scoreColor .Score}}; font-weight: bold;">{{.Score}}</td>
      <td>{{.Status}}</td>
      <td>{{.Summary}}</td>
    </tr>
    {{end}}
  </table>
  {{else}}
  <p>No candidates matched this scan.</p>
  {{end}}
</body>
</html>`))

var invitationTmpl = template.Must(template.New("invitation").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #1f2937;">
  <p>Dear {{.Candidate.Name}},</p>
  <p>
    Thank you for applying for the <strong>{{.Criteria.JobTitle}}</strong> position.
    We reviewed your application and would like to invite you to an interview.
  </p>
  <p>Please reply to this email with your availability for the coming week.</p>
  <p>Best regards,<br>The Recruitment Team</p>
</body>
</html>`))

// ScoreColor maps a score onto the report color scale.
func ScoreColor(score int) string {
	switch {
	case score >= 80:
		return "#22c55e"
	case score >= 60:
		return "#eab308"
	default:
		return "#ef4444"
	}
}

// SummaryHTML renders the scan summary report body.
func SummaryHTML(criteria types.JobCriteria, session types.ScanSession) (string, error) {
	var sb strings.Builder
	err := summaryTmpl.Execute(&sb, struct {
		Criteria types.JobCriteria
		Session  types.ScanSession
	}{criteria, session})
	if err != nil {
		return "", err
	}
	return sb.String(), nil
}

// InvitationHTML renders the interview invitation body.
func InvitationHTML(candidate types.CandidateRecord, criteria types.JobCriteria) (string, error) {
	var sb strings.Builder
	err := invitationTmpl.Execute(&sb, struct {
		Candidate types.CandidateRecord
		Criteria  types.JobCriteria
	}{candidate, criteria})
	if err != nil {
		return "", err
	}
	return sb.String(), nil
}
