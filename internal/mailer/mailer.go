// Package mailer sends the post-scan summary report and interview
// invitations over SMTP, reusing the mailbox credentials the scan ran with.
package mailer

import (
	"bytes"
	"crypto/tls"
	"fmt"
	"io"
	"net"
	"net/smtp"
	"strings"
	"time"

	"github.com/emersion/go-message/mail"

	"github.com/joe123-crypto/recruiter/internal/logger"
	"github.com/joe123-crypto/recruiter/internal/types"
)

const submissionPort = "465"

// Mailer sends HTML mail over implicit-TLS SMTP.
type Mailer struct{}

// New creates a Mailer.
func New() *Mailer {
	return &Mailer{}
}

// SMTPHost derives the SMTP host from the IMAP host. Most providers pair
// imap.example.com with smtp.example.com.
func SMTPHost(imapHost string) string {
	if rest, ok := strings.CutPrefix(imapHost, "imap."); ok {
		return "smtp." + rest
	}
	return imapHost
}

// SendSummary sends the scan summary report to the recipient.
func (m *Mailer) SendSummary(creds types.MailboxCredentials, recipient string, criteria types.JobCriteria, session types.ScanSession) error {
	subject := fmt.Sprintf("Scan report: %s (%d candidates)", criteria.JobTitle, len(session.Candidates))
	html, err := SummaryHTML(criteria, session)
	if err != nil {
		return fmt.Errorf("building summary email: %w", err)
	}
	return m.send(creds, recipient, subject, html)
}

// SendInterviewInvitation invites a candidate to interview for the position.
func (m *Mailer) SendInterviewInvitation(creds types.MailboxCredentials, candidate types.CandidateRecord, criteria types.JobCriteria) error {
	if candidate.Email == "" {
		return fmt.Errorf("candidate %s has no email address", candidate.Name)
	}
	subject := fmt.Sprintf("Interview invitation: %s", criteria.JobTitle)
	html, err := InvitationHTML(candidate, criteria)
	if err != nil {
		return fmt.Errorf("building invitation email: %w", err)
	}
	return m.send(creds, candidate.Email, subject, html)
}

func (m *Mailer) send(creds types.MailboxCredentials, to, subject, htmlBody string) error {
	host := SMTPHost(creds.Host)
	addr := net.JoinHostPort(host, submissionPort)

	message, err := buildMessage(creds.User, to, subject, htmlBody)
	if err != nil {
		return fmt.Errorf("building message: %w", err)
	}

	tlsConfig := &tls.Config{
		ServerName:         host,
		InsecureSkipVerify: creds.AllowInsecureTLS,
	}
	conn, err := tls.Dial("tcp", addr, tlsConfig)
	if err != nil {
		return fmt.Errorf("smtp tls dial %s: %w", addr, err)
	}

	client, err := smtp.NewClient(conn, host)
	if err != nil {
		conn.Close()
		return fmt.Errorf("smtp new client: %w", err)
	}
	defer client.Close()

	auth := smtp.PlainAuth("", creds.User, creds.Secret, host)
	if err := client.Auth(auth); err != nil {
		return fmt.Errorf("smtp auth: %w", err)
	}

	if err := client.Mail(creds.User); err != nil {
		return fmt.Errorf("smtp MAIL FROM: %w", err)
	}
	if err := client.Rcpt(to); err != nil {
		return fmt.Errorf("smtp RCPT TO: %w", err)
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("smtp DATA: %w", err)
	}
	if _, err := w.Write(message); err != nil {
		return fmt.Errorf("smtp write: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("smtp close data: %w", err)
	}

	log := logger.With("mailer")
	log.Info().Str("to", to).Str("subject", subject).Msg("email sent")

	return client.Quit()
}

// buildMessage assembles a single-part HTML message.
func buildMessage(from, to, subject, htmlBody string) ([]byte, error) {
	var buf bytes.Buffer

	var h mail.Header
	h.SetDate(time.Now())
	h.SetAddressList("From", []*mail.Address{{Address: from}})
	h.SetAddressList("To", []*mail.Address{{Address: to}})
	h.SetSubject(subject)
	h.SetContentType("text/html", map[string]string{"charset": "utf-8"})

	w, err := mail.CreateSingleInlineWriter(&buf, h)
	if err != nil {
		return nil, err
	}
	if _, err := io.WriteString(w, htmlBody); err != nil {
		w.Close()
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
