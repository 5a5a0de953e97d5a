// Package types provides type definitions for structured data used throughout the recruiter system.
package types

import (
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Candidate status values. The scorer derives a status when the model does
// not assign one of these directly.
const (
	StatusInterview = "interview"
	StatusPending   = "pending"
	StatusRejected  = "rejected"
)

// ExperienceLevels enumerates the labels job criteria may use for seniority.
var ExperienceLevels = []string{
	"Entry Level (0-2 yrs)",
	"Mid-Level (3-5 yrs)",
	"Senior (5-8 yrs)",
	"Lead / Principal (8+ yrs)",
	"Executive",
}

// JobCriteria describes the position candidates are evaluated against.
// It is immutable for the duration of one scan.
type JobCriteria struct {
	JobTitle        string `json:"jobTitle" validate:"required"`
	ExperienceLevel string `json:"experienceLevel"`
	KeySkills       string `json:"keySkills"`
	Deadline        string `json:"deadline,omitempty"` // YYYY-MM-DD, optional
}

// Validate validates the JobCriteria using the validator.
func (c *JobCriteria) Validate() error {
	validate := validator.New()
	return validate.Struct(c)
}

// MailboxCredentials holds IMAP/SMTP login details. The secret is never
// logged anywhere in the system.
type MailboxCredentials struct {
	User   string `json:"user" validate:"required"`
	Secret string `json:"pass" validate:"required"`
	Host   string `json:"host" validate:"required"`
	Port   int    `json:"port,omitempty"`

	// TLS selects implicit TLS. Unset means on; only an explicit false
	// switches the connection to STARTTLS.
	TLS *bool `json:"tls,omitempty"`

	// AllowInsecureTLS disables certificate verification for providers with
	// self-signed infrastructure. Explicit opt-in, never the default.
	AllowInsecureTLS bool `json:"allowInsecureTls,omitempty"`
}

// Normalize fills in defaults and strips whitespace that app passwords pick
// up when pasted from provider UIs (Gmail renders them in groups of four).
func (c *MailboxCredentials) Normalize() {
	c.User = strings.TrimSpace(c.User)
	c.Host = strings.TrimSpace(c.Host)
	c.Secret = strings.Join(strings.Fields(c.Secret), "")
	if c.Port == 0 {
		c.Port = 993
	}
}

// UseTLS reports whether the connection uses implicit TLS.
func (c *MailboxCredentials) UseTLS() bool {
	return c.TLS == nil || *c.TLS
}

// Validate validates the MailboxCredentials using the validator.
func (c *MailboxCredentials) Validate() error {
	validate := validator.New()
	return validate.Struct(c)
}

// SearchFilter narrows a scan to messages matching header predicates.
// Present fields are AND-ed together.
type SearchFilter struct {
	SubjectContains string `json:"subject,omitempty"`
	SenderContains  string `json:"sender,omitempty"`
}

// IsZero reports whether no filter field is set.
func (f *SearchFilter) IsZero() bool {
	return f == nil || (f.SubjectContains == "" && f.SenderContains == "")
}

// Attachment is a single decoded MIME attachment.
type Attachment struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ParsedMessage is the decoded form of one fetched mailbox message.
type ParsedMessage struct {
	Subject       string
	From          string
	PlainTextBody string
	Attachments   []Attachment
}

// CandidateEvaluation is the structured result of scoring one application
// against the job criteria. Score 0 is reserved for content classified as
// unrelated to the job; genuine weak-fit applications score low but nonzero.
type CandidateEvaluation struct {
	Name                 string   `json:"name"`
	Email                string   `json:"email"`
	Role                 string   `json:"role"`
	Score                int      `json:"score"`
	Summary              string   `json:"summary"`
	Strengths            []string `json:"strengths"`
	Weaknesses           []string `json:"weaknesses"`
	RecommendationReason string   `json:"recommendationReason"`
	Status               string   `json:"status"`
}

// CandidateRecord is the unit streamed to the caller and persisted in scan
// history. Its identity is derived solely from the message UID, so
// re-scanning the same message reproduces the same ID.
type CandidateRecord struct {
	CandidateEvaluation

	ID                string `json:"id"`
	OriginalMessageID string `json:"originalEmailId"`
	UID               uint32 `json:"uid"`
}

// NewCandidateRecord builds a record for an evaluation scored from the
// message with the given UID.
func NewCandidateRecord(uid uint32, eval CandidateEvaluation) CandidateRecord {
	id := strconv.FormatUint(uint64(uid), 10)
	return CandidateRecord{
		CandidateEvaluation: eval,
		ID:                  id,
		OriginalMessageID:   id,
		UID:                 uid,
	}
}

// ScanSession carries the mutable state of one scan: the checkpoint and the
// candidates accumulated so far. It is passed in by the caller and returned
// updated, never kept in ambient storage.
type ScanSession struct {
	Checkpoint   uint32            `json:"checkpoint"`
	Candidates   []CandidateRecord `json:"candidates"`
	ScannedCount int               `json:"scannedCount"`
}

// Advance moves the checkpoint forward to uid. The checkpoint is monotonic;
// a smaller or equal UID leaves it untouched.
func (s *ScanSession) Advance(uid uint32) {
	if uid > s.Checkpoint {
		s.Checkpoint = uid
	}
}

// ChatMessage is one turn of the recruitment assistant conversation.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ScanRequest is everything a caller supplies to start a scan.
type ScanRequest struct {
	Criteria         JobCriteria        `json:"jobCriteria"`
	Credentials      MailboxCredentials `json:"emailCredentials"`
	Filter           *SearchFilter      `json:"emailFilters,omitempty"`
	ResumeCheckpoint uint32             `json:"resumeCheckpoint,omitempty"`
	SendSummary      bool               `json:"sendSummaryEmail,omitempty"`
	SummaryRecipient string             `json:"managerEmail,omitempty"`
}

// Validate normalizes the credentials and checks that the request carries
// everything required to start a scan.
func (r *ScanRequest) Validate() error {
	r.Credentials.Normalize()
	if err := r.Credentials.Validate(); err != nil {
		return err
	}
	return r.Criteria.Validate()
}
