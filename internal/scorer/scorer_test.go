package scorer

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joe123-crypto/recruiter/internal/llm"
	"github.com/joe123-crypto/recruiter/internal/types"
)

type fakeClient struct {
	response   string
	err        error
	lastPrompt string
	lastTier   llm.ModelTier
}

func (f *fakeClient) GenerateContent(_ context.Context, prompt string, tier llm.ModelTier) (string, error) {
	f.lastPrompt = prompt
	f.lastTier = tier
	return f.response, f.err
}

func (f *fakeClient) GenerateJSON(_ context.Context, prompt string, _ *genai.Schema, tier llm.ModelTier) (string, error) {
	f.lastPrompt = prompt
	f.lastTier = tier
	return f.response, f.err
}

func (f *fakeClient) Close() error { return nil }

func evaluationJSON(score int, status string) string {
	return `{
		"name": "Ada Lovelace",
		"email": "ada@example.com",
		"role": "Backend Engineer",
		"score": ` + strconv.Itoa(score) + `,
		"summary": "Solid backend background.",
		"strengths": ["Go"],
		"weaknesses": [],
		"recommendationReason": "Experience matches.",
		"status": "` + status + `"
	}`
}

var criteria = types.JobCriteria{
	JobTitle:        "Backend Engineer",
	ExperienceLevel: "Senior (5-8 yrs)",
	KeySkills:       "Go, SQL",
}

func TestEvaluateKeepsRecognizedStatus(t *testing.T) {
	client := &fakeClient{response: evaluationJSON(40, "rejected")}
	eval, err := New(client).Evaluate(context.Background(), "Application", "body", "", criteria)

	require.NoError(t, err)
	assert.Equal(t, 40, eval.Score)
	assert.Equal(t, types.StatusRejected, eval.Status)
	assert.Equal(t, llm.TierStandard, client.lastTier)
}

func TestEvaluateDerivesStatusFromScore(t *testing.T) {
	tests := []struct {
		name       string
		score      int
		status     string
		wantStatus string
	}{
		{"high score unrecognized status", 90, "strong hire", types.StatusInterview},
		{"boundary 76 becomes interview", 76, "", types.StatusInterview},
		{"boundary 75 stays pending", 75, "", types.StatusPending},
		{"low score empty status", 30, "", types.StatusPending},
		{"off-topic is always rejected", 0, "interview", types.StatusRejected},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &fakeClient{response: evaluationJSON(tt.score, tt.status)}
			eval, err := New(client).Evaluate(context.Background(), "s", "b", "", criteria)

			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, eval.Status)
		})
	}
}

func TestEvaluatePromptIncludesResume(t *testing.T) {
	client := &fakeClient{response: evaluationJSON(80, "interview")}
	s := New(client)

	_, err := s.Evaluate(context.Background(), "subj", "body text", "resume text here", criteria)
	require.NoError(t, err)
	assert.Contains(t, client.lastPrompt, "resume text here")
	assert.Contains(t, client.lastPrompt, "Backend Engineer")

	_, err = s.Evaluate(context.Background(), "subj", "body text", "", criteria)
	require.NoError(t, err)
	assert.NotContains(t, client.lastPrompt, "Resume text")
}

func TestEvaluateFailures(t *testing.T) {
	t.Run("api error", func(t *testing.T) {
		client := &fakeClient{err: errors.New("quota exceeded")}
		eval, err := New(client).Evaluate(context.Background(), "s", "b", "", criteria)

		assert.Nil(t, eval)
		var apiErr *APICallError
		assert.ErrorAs(t, err, &apiErr)
	})

	t.Run("malformed JSON", func(t *testing.T) {
		client := &fakeClient{response: "not json at all"}
		eval, err := New(client).Evaluate(context.Background(), "s", "b", "", criteria)

		assert.Nil(t, eval)
		var parseErr *ParseError
		assert.ErrorAs(t, err, &parseErr)
	})

	t.Run("missing required fields", func(t *testing.T) {
		client := &fakeClient{response: `{"name": "Ada", "score": 50}`}
		eval, err := New(client).Evaluate(context.Background(), "s", "b", "", criteria)

		assert.Nil(t, eval)
		var parseErr *ParseError
		assert.ErrorAs(t, err, &parseErr)
	})

	t.Run("score out of range", func(t *testing.T) {
		client := &fakeClient{response: evaluationJSON(150, "interview")}
		eval, err := New(client).Evaluate(context.Background(), "s", "b", "", criteria)

		assert.Nil(t, eval)
		var parseErr *ParseError
		assert.ErrorAs(t, err, &parseErr)
	})
}

func TestExtractJobCriteria(t *testing.T) {
	client := &fakeClient{response: `{
		"jobTitle": "Data Engineer",
		"experienceLevel": "Mid-Level (3-5 yrs)",
		"keySkills": "Python, SQL, Airflow",
		"deadline": ""
	}`}

	got, err := New(client).ExtractJobCriteria(context.Background(), "We are hiring a data engineer...")
	require.NoError(t, err)
	assert.Equal(t, "Data Engineer", got.JobTitle)
	assert.Equal(t, llm.TierLite, client.lastTier)
	assert.Contains(t, client.lastPrompt, "Mid-Level (3-5 yrs)")

	// Missing deadline defaults to 30 days out.
	want := time.Now().AddDate(0, 0, 30).Format("2006-01-02")
	assert.Equal(t, want, got.Deadline)
}

func TestAnswer(t *testing.T) {
	client := &fakeClient{response: "Ada Lovelace is the strongest candidate."}
	candidates := []types.CandidateRecord{
		types.NewCandidateRecord(10, types.CandidateEvaluation{
			Name:      "Ada Lovelace",
			Score:     91,
			Strengths: []string{"Go"},
		}),
		types.NewCandidateRecord(11, types.CandidateEvaluation{
			Name:  "Charles Babbage",
			Score: 55,
		}),
	}

	answer, err := New(client).Answer(context.Background(), "Who should we interview first?", criteria, candidates)

	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace is the strongest candidate.", answer)
	assert.Equal(t, llm.TierStandard, client.lastTier)

	// The prompt grounds the model in the scored data and the question.
	assert.Contains(t, client.lastPrompt, "Ada Lovelace")
	assert.Contains(t, client.lastPrompt, "Charles Babbage")
	assert.Contains(t, client.lastPrompt, "Who should we interview first?")
	assert.Contains(t, client.lastPrompt, "Backend Engineer")
	assert.Contains(t, client.lastPrompt, "Candidates Found (2)")
}

func TestAnswerAPIError(t *testing.T) {
	client := &fakeClient{err: errors.New("quota exceeded")}

	answer, err := New(client).Answer(context.Background(), "question", criteria, nil)

	assert.Empty(t, answer)
	var apiErr *APICallError
	assert.ErrorAs(t, err, &apiErr)
}

func TestExtractJobCriteriaNoTitle(t *testing.T) {
	client := &fakeClient{response: `{"jobTitle": "", "experienceLevel": "", "keySkills": ""}`}
	got, err := New(client).ExtractJobCriteria(context.Background(), "unrelated document")

	assert.Nil(t, got)
	var parseErr *ParseError
	assert.ErrorAs(t, err, &parseErr)
	assert.True(t, strings.Contains(err.Error(), "job title"))
}
