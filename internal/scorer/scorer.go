// Package scorer evaluates job application emails against job criteria using
// the LLM, returning structured candidate evaluations.
package scorer

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"

	"github.com/joe123-crypto/recruiter/internal/llm"
	"github.com/joe123-crypto/recruiter/internal/logger"
	"github.com/joe123-crypto/recruiter/internal/prompts"
	"github.com/joe123-crypto/recruiter/internal/schemas"
	"github.com/joe123-crypto/recruiter/internal/types"
)

const promptFile = "scoring.json"

// evaluationSchema constrains the model response to the evaluation contract.
// The same contract is re-checked post hoc with JSON Schema; the model side
// alone is not trusted.
var evaluationSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"name":                 {Type: genai.TypeString},
		"email":                {Type: genai.TypeString},
		"role":                 {Type: genai.TypeString},
		"score":                {Type: genai.TypeInteger},
		"summary":              {Type: genai.TypeString},
		"strengths":            {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
		"weaknesses":           {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
		"recommendationReason": {Type: genai.TypeString},
		"status":               {Type: genai.TypeString},
	},
	Required: []string{
		"name", "email", "role", "score", "summary",
		"strengths", "weaknesses", "recommendationReason", "status",
	},
}

var criteriaSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"jobTitle":        {Type: genai.TypeString},
		"experienceLevel": {Type: genai.TypeString},
		"keySkills":       {Type: genai.TypeString},
		"deadline":        {Type: genai.TypeString},
	},
	Required: []string{"jobTitle", "experienceLevel", "keySkills"},
}

// Scorer scores candidates through an LLM client.
type Scorer struct {
	client llm.Client
}

// New creates a Scorer backed by the given client.
func New(client llm.Client) *Scorer {
	return &Scorer{client: client}
}

// Evaluate scores one application against the job criteria. When resumeText
// is non-empty it takes precedence over the email body. Any failure comes
// back as an error with a nil evaluation; the caller decides whether it is
// fatal for the whole scan.
func (s *Scorer) Evaluate(ctx context.Context, subject, body, resumeText string, criteria types.JobCriteria) (*types.CandidateEvaluation, error) {
	resumeSection := ""
	if resumeText != "" {
		resumeSection = "\nResume text (extracted from the attached PDF):\n" + resumeText + "\n"
	}

	template := prompts.MustGet(promptFile, "evaluate-candidate")
	prompt := prompts.Format(template, map[string]string{
		"JobTitle":        criteria.JobTitle,
		"ExperienceLevel": criteria.ExperienceLevel,
		"KeySkills":       criteria.KeySkills,
		"Subject":         subject,
		"Body":            body,
		"ResumeSection":   resumeSection,
	})

	raw, err := s.client.GenerateJSON(ctx, prompt, evaluationSchema, llm.TierStandard)
	if err != nil {
		return nil, &APICallError{Operation: "evaluate candidate", Cause: err}
	}

	if err := schemas.ValidateJSONString(schemas.CandidateEvaluationSchema(), raw); err != nil {
		return nil, &ParseError{Message: "evaluation failed schema validation", Cause: err}
	}

	var eval types.CandidateEvaluation
	if err := json.Unmarshal([]byte(raw), &eval); err != nil {
		return nil, &ParseError{Message: "evaluation is not valid JSON", Cause: err}
	}

	if eval.Score < 0 || eval.Score > 100 {
		return nil, &ParseError{Message: fmt.Sprintf("score %d out of range", eval.Score)}
	}

	eval.Status = normalizeStatus(eval.Status, eval.Score)

	log := logger.With("scorer")
	log.Debug().
		Str("candidate", eval.Name).
		Int("score", eval.Score).
		Str("status", eval.Status).
		Msg("candidate evaluated")

	return &eval, nil
}

// ExtractJobCriteria derives job criteria from a job description document.
// Uses the lite tier; this is extraction, not reasoning.
func (s *Scorer) ExtractJobCriteria(ctx context.Context, document string) (*types.JobCriteria, error) {
	template := prompts.MustGet(promptFile, "extract-job-criteria")
	prompt := prompts.Format(template, map[string]string{
		"Document":         document,
		"ExperienceLevels": strings.Join(types.ExperienceLevels, "; "),
	})

	raw, err := s.client.GenerateJSON(ctx, prompt, criteriaSchema, llm.TierLite)
	if err != nil {
		return nil, &APICallError{Operation: "extract job criteria", Cause: err}
	}

	var criteria types.JobCriteria
	if err := json.Unmarshal([]byte(raw), &criteria); err != nil {
		return nil, &ParseError{Message: "criteria is not valid JSON", Cause: err}
	}

	if criteria.JobTitle == "" {
		return nil, &ParseError{Message: "document yielded no job title"}
	}
	if criteria.Deadline == "" {
		criteria.Deadline = time.Now().AddDate(0, 0, 30).Format("2006-01-02")
	}

	return &criteria, nil
}

// Answer responds to a question about scan results as the recruitment
// assistant. Candidates are reduced to their evaluation fields so the model
// grounds its answer in the scored data, not raw mail.
func (s *Scorer) Answer(ctx context.Context, question string, criteria types.JobCriteria, candidates []types.CandidateRecord) (string, error) {
	digest := make([]map[string]any, 0, len(candidates))
	for _, c := range candidates {
		digest = append(digest, map[string]any{
			"name":       c.Name,
			"role":       c.Role,
			"score":      c.Score,
			"summary":    c.Summary,
			"strengths":  c.Strengths,
			"weaknesses": c.Weaknesses,
			"reason":     c.RecommendationReason,
		})
	}
	digestJSON, err := json.MarshalIndent(digest, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding candidates: %w", err)
	}

	template := prompts.MustGet(promptFile, "recruiter-chat")
	prompt := prompts.Format(template, map[string]string{
		"JobTitle":        criteria.JobTitle,
		"ExperienceLevel": criteria.ExperienceLevel,
		"KeySkills":       criteria.KeySkills,
		"CandidateCount":  strconv.Itoa(len(candidates)),
		"Candidates":      string(digestJSON),
		"Question":        question,
	})

	text, err := s.client.GenerateContent(ctx, prompt, llm.TierStandard)
	if err != nil {
		return "", &APICallError{Operation: "answer question", Cause: err}
	}
	return text, nil
}

// normalizeStatus keeps a recognized model-assigned status and derives one
// from the score otherwise. Off-topic content (score 0) is always rejected.
func normalizeStatus(status string, score int) string {
	if score == 0 {
		return types.StatusRejected
	}
	switch status {
	case types.StatusInterview, types.StatusPending, types.StatusRejected:
		return status
	}
	if score > 75 {
		return types.StatusInterview
	}
	return types.StatusPending
}
