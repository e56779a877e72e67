package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Vishal-jain-01/kuvakaBackendAssignment/internal/models"
)

type fakeGemini struct {
	response string
	err      error
	prompts  []string
}

func (f *fakeGemini) GenerateEmbedding(_ context.Context, _ string) ([]float32, error) {
	return []float32{0.1, 0.2}, nil
}

func (f *fakeGemini) GenerateText(_ context.Context, prompt string, _ float32) (string, error) {
	f.prompts = append(f.prompts, prompt)
	return f.response, f.err
}

func (f *fakeGemini) GenerateTextWithRetry(ctx context.Context, prompt string, temperature float32, _ int) (string, error) {
	return f.GenerateText(ctx, prompt, temperature)
}

type fakeRetriever struct {
	context string
	err     error
}

func (f *fakeRetriever) RetrieveContext(_ context.Context, _ string) (string, error) {
	return f.context, f.err
}

func newModelClassifier(gemini GeminiService, retriever ContextRetriever) IntentClassifier {
	return NewIntentClassifier(gemini, retriever, 5*time.Second, 1)
}

func TestHeuristicClassifier_Branches(t *testing.T) {
	classifier := NewIntentClassifier(nil, nil, 5*time.Second, 1)

	tests := []struct {
		name       string
		lead       *models.Lead
		wantIntent models.IntentLevel
		wantPoints int
	}{
		{
			name:       "decision maker in tech with complete core profile",
			lead:       completeLead(),
			wantIntent: models.IntentHigh,
			wantPoints: 50,
		},
		{
			name: "decision maker outside tech",
			lead: &models.Lead{
				Name: "Dana", Role: "CFO", Company: "AgriCo", Industry: "Agriculture",
			},
			wantIntent: models.IntentMedium,
			wantPoints: 30,
		},
		{
			name: "tech industry without decision-making role",
			lead: &models.Lead{
				Name: "Ben", Role: "Analyst", Company: "CloudCo", Industry: "Software",
			},
			wantIntent: models.IntentMedium,
			wantPoints: 30,
		},
		{
			name: "decision maker in tech with incomplete core profile",
			lead: &models.Lead{
				Name: "Kim", Role: "CTO", Industry: "SaaS",
			},
			wantIntent: models.IntentMedium,
			wantPoints: 30,
		},
		{
			name: "no signals",
			lead: &models.Lead{
				Name: "Pat", Role: "Analyst", Company: "AgriCo", Industry: "Agriculture",
			},
			wantIntent: models.IntentLow,
			wantPoints: 10,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := classifier.Classify(context.Background(), tt.lead, testOffer())

			assert.Equal(t, tt.wantIntent, result.Intent)
			assert.Equal(t, tt.wantPoints, result.Points)
			assert.Equal(t, models.SourceFallback, result.Source)
			assert.NotEmpty(t, result.Reasoning)
		})
	}
}

func TestHeuristicClassifier_NilLead(t *testing.T) {
	classifier := NewIntentClassifier(nil, nil, 5*time.Second, 1)

	result := classifier.Classify(context.Background(), nil, testOffer())

	assert.Equal(t, models.IntentLow, result.Intent)
	assert.Equal(t, 10, result.Points)
	assert.Equal(t, models.SourceFallback, result.Source)
	assert.Contains(t, result.Reasoning, "Insufficient lead data")
}

func TestModelClassifier_NilOfferFallsBack(t *testing.T) {
	gemini := &fakeGemini{response: "Intent: High\nReasoning: should not be used"}
	classifier := newModelClassifier(gemini, nil)

	result := classifier.Classify(context.Background(), completeLead(), nil)

	assert.Equal(t, models.SourceFallback, result.Source)
	assert.Equal(t, models.IntentHigh, result.Intent)
	assert.Empty(t, gemini.prompts, "no model call without an offer")
}

func TestModelClassifier_ParsesResponse(t *testing.T) {
	gemini := &fakeGemini{response: "Intent: High\nReasoning: Founder at a fast-growing SaaS company."}
	classifier := newModelClassifier(gemini, nil)

	result := classifier.Classify(context.Background(), completeLead(), testOffer())

	assert.Equal(t, models.IntentHigh, result.Intent)
	assert.Equal(t, 50, result.Points)
	assert.Equal(t, models.SourceModel, result.Source)
	assert.Equal(t, "Founder at a fast-growing SaaS company.", result.Reasoning)
}

func TestModelClassifier_FallsBackOnError(t *testing.T) {
	gemini := &fakeGemini{err: errors.New("transport failure")}
	classifier := newModelClassifier(gemini, nil)

	result := classifier.Classify(context.Background(), completeLead(), testOffer())

	assert.Equal(t, models.SourceFallback, result.Source)
	assert.Equal(t, models.IntentHigh, result.Intent)
	assert.Equal(t, 50, result.Points)
}

func TestModelClassifier_FallsBackOnEmptyResponse(t *testing.T) {
	gemini := &fakeGemini{response: "   \n  "}
	classifier := newModelClassifier(gemini, nil)

	result := classifier.Classify(context.Background(), completeLead(), testOffer())

	assert.Equal(t, models.SourceFallback, result.Source)
}

func TestModelClassifier_RetrieverFailureIsNonFatal(t *testing.T) {
	gemini := &fakeGemini{response: "Intent: Medium\nReasoning: Some fit."}
	classifier := newModelClassifier(gemini, &fakeRetriever{err: errors.New("qdrant down")})

	result := classifier.Classify(context.Background(), completeLead(), testOffer())

	assert.Equal(t, models.SourceModel, result.Source)
	assert.Equal(t, models.IntentMedium, result.Intent)
}

func TestModelClassifier_PromptContainsOfferAndLead(t *testing.T) {
	gemini := &fakeGemini{response: "Intent: Low\nReasoning: Weak fit."}
	classifier := newModelClassifier(gemini, &fakeRetriever{context: "ICP: mid-market SaaS"})

	classifier.Classify(context.Background(), completeLead(), testOffer())

	require.Len(t, gemini.prompts, 1)
	prompt := gemini.prompts[0]
	assert.Contains(t, prompt, "AI Outreach Automation")
	assert.Contains(t, prompt, "Ava Patel")
	assert.Contains(t, prompt, "ICP: mid-market SaaS")
	assert.Contains(t, prompt, "Intent: <High|Medium|Low>")
}

func TestParseIntentResponse(t *testing.T) {
	tests := []struct {
		name          string
		response      string
		wantIntent    models.IntentLevel
		wantReasoning string
	}{
		{
			name:          "canonical two-line response",
			response:      "Intent: High\nReasoning: Decision maker with budget.",
			wantIntent:    models.IntentHigh,
			wantReasoning: "Decision maker with budget.",
		},
		{
			name:          "case-insensitive prefix and label",
			response:      "INTENT: low\nREASONING: Poor fit.",
			wantIntent:    models.IntentLow,
			wantReasoning: "Poor fit.",
		},
		{
			name:          "extra prose around the lines",
			response:      "Here is my analysis.\n  Intent: Medium  \n  Reasoning: Mixed signals.\nThanks!",
			wantIntent:    models.IntentMedium,
			wantReasoning: "Mixed signals.",
		},
		{
			name:          "unrecognized label defaults to Medium",
			response:      "Intent: banana\nReasoning: Confused model.",
			wantIntent:    models.IntentMedium,
			wantReasoning: "Confused model.",
		},
		{
			name:          "missing intent line defaults to Medium",
			response:      "Reasoning: Only reasoning given.",
			wantIntent:    models.IntentMedium,
			wantReasoning: "Only reasoning given.",
		},
		{
			name:          "missing reasoning line yields placeholder",
			response:      "Intent: High",
			wantIntent:    models.IntentHigh,
			wantReasoning: defaultModelReasoning,
		},
		{
			name:          "no usable lines at all",
			response:      "The lead looks promising overall.",
			wantIntent:    models.IntentMedium,
			wantReasoning: defaultModelReasoning,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			intent, reasoning := ParseIntentResponse(tt.response)
			assert.Equal(t, tt.wantIntent, intent)
			assert.Equal(t, tt.wantReasoning, reasoning)
		})
	}
}

func TestPointsForIntent(t *testing.T) {
	assert.Equal(t, 50, pointsForIntent(models.IntentHigh))
	assert.Equal(t, 30, pointsForIntent(models.IntentMedium))
	assert.Equal(t, 10, pointsForIntent(models.IntentLow))
	// Anything unrecognized lands on the Medium points.
	assert.Equal(t, 30, pointsForIntent(models.IntentLevel("banana")))
}

func TestFormatPlaybookContext(t *testing.T) {
	assert.Empty(t, FormatPlaybookContext(nil))

	formatted := FormatPlaybookContext([]SearchResult{
		{Score: 0.91, Text: "Target mid-market SaaS."},
		{Score: 0.85, Text: "Avoid regulated industries."},
	})

	assert.True(t, strings.Contains(formatted, "Snippet 1"))
	assert.True(t, strings.Contains(formatted, "Snippet 2"))
	assert.True(t, strings.Contains(formatted, "Target mid-market SaaS."))
}
