package server

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/joe123-crypto/recruiter/internal/types"
)

// handleScan runs a scan and streams its events as NDJSON. The request body
// is a types.ScanRequest. With ?resume=latest and no explicit checkpoint,
// the scan resumes from the user's most recent stored checkpoint.
func (s *Server) handleScan(w http.ResponseWriter, r *http.Request) {
	var req types.ScanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	if req.ResumeCheckpoint == 0 && r.URL.Query().Get("resume") == "latest" {
		checkpoint, err := s.history.LatestCheckpoint(r.Context(), req.Credentials.User)
		if err != nil {
			s.log.Warn().Err(err).Msg("checkpoint lookup failed")
		} else {
			req.ResumeCheckpoint = checkpoint
		}
	}

	stream, err := NewStreamWriter(w)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	// The client closing the connection cancels the scan between messages.
	session, runErr := s.pipeline.Run(r.Context(), req, stream)

	// History is written even when the client is gone; a stopped scan must
	// keep its checkpoint or resume would re-scan everything.
	if session.ScannedCount > 0 {
		saveCtx := context.WithoutCancel(r.Context())
		if _, err := s.history.SaveScan(saveCtx, req.Credentials.User, req.Criteria, session); err != nil {
			s.log.Warn().Err(err).Msg("saving scan history failed")
		}
	}

	if runErr != nil {
		s.log.Warn().Err(runErr).Msg("scan ended with error")
	}
}

// chatRequest is the body of POST /api/chat. The last message carries the
// question; earlier turns are accepted for client compatibility.
type chatRequest struct {
	Messages   []types.ChatMessage     `json:"messages"`
	Candidates []types.CandidateRecord `json:"candidates"`
	Criteria   types.JobCriteria       `json:"jobCriteria"`
}

// handleChat answers a question about scan results through the assistant.
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if len(req.Messages) == 0 || req.Messages[len(req.Messages)-1].Content == "" {
		s.errorResponse(w, http.StatusBadRequest, "messages must end with a non-empty question")
		return
	}

	question := req.Messages[len(req.Messages)-1].Content
	answer, err := s.assistant.Answer(r.Context(), question, req.Criteria, req.Candidates)
	if err != nil {
		s.log.Warn().Err(err).Msg("chat failed")
		s.errorResponse(w, HTTPStatus(err), "failed to generate response")
		return
	}

	s.jsonResponse(w, http.StatusOK, types.ChatMessage{Role: "assistant", Content: answer})
}

// inviteRequest is the body of POST /api/invite.
type inviteRequest struct {
	Credentials types.MailboxCredentials `json:"emailCredentials"`
	Criteria    types.JobCriteria        `json:"jobCriteria"`
	Candidate   types.CandidateRecord    `json:"candidate"`
}

// handleInvite sends an interview invitation to a candidate.
func (s *Server) handleInvite(w http.ResponseWriter, r *http.Request) {
	var req inviteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	req.Credentials.Normalize()
	if err := req.Credentials.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Candidate.Email == "" {
		s.errorResponse(w, http.StatusBadRequest, "candidate email is required")
		return
	}

	if err := s.mailer.SendInterviewInvitation(req.Credentials, req.Candidate, req.Criteria); err != nil {
		s.log.Warn().Err(err).Msg("invitation failed")
		s.errorResponse(w, HTTPStatus(err), "failed to send invitation")
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "sent"})
}

// handleListScans returns stored scan history, newest first.
func (s *Server) handleListScans(w http.ResponseWriter, r *http.Request) {
	records, err := s.history.ListScans(r.Context(), 50)
	if err != nil {
		s.log.Error().Err(err).Msg("listing scans failed")
		s.errorResponse(w, http.StatusInternalServerError, "failed to list scans")
		return
	}
	s.jsonResponse(w, http.StatusOK, records)
}
