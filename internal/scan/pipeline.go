// Package scan orchestrates one mailbox scan: search, per-message fetch,
// scoring, checkpointing, and the ordered event stream callers observe.
package scan

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/joe123-crypto/recruiter/internal/extract"
	"github.com/joe123-crypto/recruiter/internal/logger"
	"github.com/joe123-crypto/recruiter/internal/mailbox"
	"github.com/joe123-crypto/recruiter/internal/types"
)

// State names the pipeline phase, for logging and status events.
type State string

const (
	StateIdle       State = "idle"
	StateConnecting State = "connecting"
	StateSearching  State = "searching"
	StateIterating  State = "iterating"
	StateCompleted  State = "completed"
	StateFailed     State = "failed"
)

// MailboxSession is the slice of a mailbox connection the pipeline needs.
type MailboxSession interface {
	Search(filter *types.SearchFilter, checkpoint uint32) ([]uint32, error)
	FetchFull(uid uint32) ([]byte, error)
	Close() error
}

// MailboxDialer opens authenticated mailbox sessions.
type MailboxDialer interface {
	Open(creds types.MailboxCredentials) (MailboxSession, error)
}

// CandidateScorer evaluates one application against the job criteria.
type CandidateScorer interface {
	Evaluate(ctx context.Context, subject, body, resumeText string, criteria types.JobCriteria) (*types.CandidateEvaluation, error)
}

// SummarySender dispatches the post-scan summary report.
type SummarySender interface {
	SendSummary(creds types.MailboxCredentials, recipient string, criteria types.JobCriteria, session types.ScanSession) error
}

// Pipeline runs scans. One Pipeline value serves many scans; all per-scan
// state lives in the ScanSession value.
type Pipeline struct {
	dialer MailboxDialer
	scorer CandidateScorer
	mailer SummarySender // optional
	log    zerolog.Logger
}

// New builds a pipeline. mailer may be nil when summary email is unavailable.
func New(dialer MailboxDialer, scorer CandidateScorer, mailer SummarySender) *Pipeline {
	return &Pipeline{
		dialer: dialer,
		scorer: scorer,
		mailer: mailer,
		log:    logger.With("scan"),
	}
}

// Run executes one scan and emits events to sink in order. The returned
// session carries the final checkpoint and candidates regardless of how the
// scan ended. Cancellation via ctx stops the scan between messages; work
// already done stays done.
//
// The stream ends with exactly one complete event, or one error event for
// connection-level failures. A cancelled scan ends with a status event and
// neither terminal event.
func (p *Pipeline) Run(ctx context.Context, req types.ScanRequest, sink types.EventSink) (types.ScanSession, error) {
	session := types.ScanSession{Checkpoint: req.ResumeCheckpoint}

	if err := req.Validate(); err != nil {
		sink.Emit(types.ErrorEvent(fmt.Sprintf("invalid scan request: %v", err)))
		return session, err
	}

	p.setState(StateConnecting)
	sink.Emit(types.StatusEvent("Connecting to mailbox..."))

	mbox, err := p.dialer.Open(req.Credentials)
	if err != nil {
		p.setState(StateFailed)
		sink.Emit(types.ErrorEvent(fmt.Sprintf("mailbox connection failed: %v", err)))
		return session, err
	}
	defer func() { _ = mbox.Close() }()

	p.setState(StateSearching)
	sink.Emit(types.StatusEvent("Searching for messages..."))

	uids, err := mbox.Search(req.Filter, req.ResumeCheckpoint)
	if err != nil {
		p.setState(StateFailed)
		sink.Emit(types.ErrorEvent(fmt.Sprintf("mailbox search failed: %v", err)))
		return session, err
	}

	if len(uids) == 0 {
		p.setState(StateCompleted)
		sink.Emit(types.StatusEvent("No new messages to scan."))
		sink.Emit(types.CompleteEvent(0, 0))
		return session, nil
	}

	sink.Emit(types.StatusEvent(fmt.Sprintf("Found %d messages to scan.", len(uids))))
	p.setState(StateIterating)

	for i, uid := range uids {
		if ctx.Err() != nil {
			sink.Emit(types.StatusEvent("Scan stopped."))
			return session, ctx.Err()
		}

		sink.Emit(types.ProgressEvent(i+1, len(uids)))

		record, err := p.processMessage(ctx, mbox, uid, req.Criteria)
		if err != nil {
			var connErr *mailbox.ConnectionError
			if errors.As(err, &connErr) {
				p.setState(StateFailed)
				sink.Emit(types.ErrorEvent(fmt.Sprintf("mailbox connection lost: %v", err)))
				return session, err
			}
			p.log.Warn().Uint32("uid", uid).Err(err).Msg("message skipped")
			session.ScannedCount++
			session.Advance(uid)
			sink.Emit(types.ProcessedEvent(uid))
			continue
		}

		session.ScannedCount++
		session.Advance(uid)

		if record == nil {
			sink.Emit(types.ProcessedEvent(uid))
			continue
		}

		session.Candidates = append(session.Candidates, *record)
		sink.Emit(types.CandidateEvent(*record))
	}

	if req.SendSummary && p.mailer != nil {
		recipient := req.SummaryRecipient
		if recipient == "" {
			recipient = req.Credentials.User
		}
		if err := p.mailer.SendSummary(req.Credentials, recipient, req.Criteria, session); err != nil {
			p.log.Warn().Err(err).Msg("summary email failed")
			sink.Emit(types.StatusEvent("Summary email could not be sent."))
		} else {
			sink.Emit(types.StatusEvent("Summary email sent."))
		}
	}

	p.setState(StateCompleted)
	sink.Emit(types.CompleteEvent(session.ScannedCount, len(session.Candidates)))
	return session, nil
}

// processMessage fetches, parses, and scores one message. A nil record with a
// nil error means the message was handled but produced no candidate, either
// because scoring failed softly or the content was off topic.
func (p *Pipeline) processMessage(ctx context.Context, mbox MailboxSession, uid uint32, criteria types.JobCriteria) (*types.CandidateRecord, error) {
	raw, err := mbox.FetchFull(uid)
	if err != nil {
		return nil, err
	}

	msg := mailbox.ParseMessage(raw)
	resumeText := extract.FirstResumeText(msg.Attachments)

	eval, err := p.scorer.Evaluate(ctx, msg.Subject, msg.PlainTextBody, resumeText, criteria)
	if err != nil || eval == nil {
		p.log.Warn().Uint32("uid", uid).Err(err).Msg("evaluation failed")
		return nil, nil
	}

	// Score 0 marks content unrelated to the job; it is processed but
	// never surfaces as a candidate.
	if eval.Score == 0 {
		p.log.Debug().Uint32("uid", uid).Msg("off-topic message suppressed")
		return nil, nil
	}

	record := types.NewCandidateRecord(uid, *eval)
	return &record, nil
}

func (p *Pipeline) setState(state State) {
	p.log.Debug().Str("state", string(state)).Msg("pipeline state")
}
