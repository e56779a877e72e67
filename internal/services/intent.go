package services

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/Vishal-jain-01/kuvakaBackendAssignment/internal/models"
)

const (
	intentPointsHigh   = 50
	intentPointsMedium = 30
	intentPointsLow    = 10
)

// Fallback heuristic keyword tables. Deliberately smaller than the rule
// engine's: the heuristic only needs a coarse signal.
var (
	fallbackDecisionKeywords = []string{
		"ceo", "cto", "cfo", "chief", "founder", "vp", "head", "director", "owner",
	}
	fallbackTechKeywords = []string{
		"saas", "software", "tech", "it", "cloud", "fintech",
	}
)

// IntentClassifier maps a lead + offer to an intent label. Implementations
// never return an error: when the model path fails for any reason the
// deterministic heuristic result is substituted instead.
type IntentClassifier interface {
	Classify(ctx context.Context, lead *models.Lead, offer *models.Offer) models.IntentResult
}

// ContextRetriever supplies optional playbook snippets for the prompt.
type ContextRetriever interface {
	RetrieveContext(ctx context.Context, query string) (string, error)
}

// NewIntentClassifier selects the classifier variant at construction time:
// model-backed when a Gemini client is available, heuristic-only otherwise.
func NewIntentClassifier(gemini GeminiService, retriever ContextRetriever, timeout time.Duration, maxRetries int) IntentClassifier {
	if gemini == nil {
		return &heuristicClassifier{}
	}

	return &modelClassifier{
		gemini:     gemini,
		retriever:  retriever,
		prompts:    NewPromptBuilder(),
		timeout:    timeout,
		maxRetries: maxRetries,
	}
}

type heuristicClassifier struct{}

// Classify implements IntentClassifier.
func (h *heuristicClassifier) Classify(_ context.Context, lead *models.Lead, _ *models.Offer) models.IntentResult {
	return heuristicIntent(lead)
}

type modelClassifier struct {
	gemini     GeminiService
	retriever  ContextRetriever
	prompts    *PromptBuilder
	timeout    time.Duration
	maxRetries int
}

// Classify implements IntentClassifier. The model call carries a bounded
// timeout; any transport error, timeout or empty response degrades to the
// heuristic result rather than failing the lead. Without an offer there is
// nothing to classify against, so that degrades the same way.
func (c *modelClassifier) Classify(ctx context.Context, lead *models.Lead, offer *models.Offer) models.IntentResult {
	if lead == nil || offer == nil {
		return heuristicIntent(lead)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	playbookContext := ""
	if c.retriever != nil {
		query := strings.TrimSpace(strings.Join([]string{offer.Name, lead.Industry, lead.Role}, " "))
		retrieved, err := c.retriever.RetrieveContext(ctx, query)
		if err != nil {
			log.Printf("⚠️  Playbook retrieval failed, continuing without context: %v\n", err)
		} else {
			playbookContext = retrieved
		}
	}

	prompt := c.prompts.BuildIntentPrompt(lead, offer, playbookContext)

	response, err := c.gemini.GenerateTextWithRetry(ctx, prompt, 0.3, c.maxRetries)
	if err != nil {
		log.Printf("⚠️  Intent classification fell back to heuristic: %v\n", err)
		return heuristicIntent(lead)
	}

	if strings.TrimSpace(response) == "" {
		log.Println("⚠️  Empty classification response, falling back to heuristic")
		return heuristicIntent(lead)
	}

	intent, reasoning := ParseIntentResponse(response)

	return models.IntentResult{
		Intent:    intent,
		Reasoning: reasoning,
		Points:    pointsForIntent(intent),
		Source:    models.SourceModel,
	}
}

func pointsForIntent(intent models.IntentLevel) int {
	switch intent {
	case models.IntentHigh:
		return intentPointsHigh
	case models.IntentLow:
		return intentPointsLow
	default:
		return intentPointsMedium
	}
}

// heuristicIntent is the deterministic classification used when no model
// is configured or the model path fails. Three signals: decision-maker
// role, tech-indicative industry, and a complete core profile.
func heuristicIntent(lead *models.Lead) models.IntentResult {
	if lead == nil {
		return models.IntentResult{
			Intent:    models.IntentLow,
			Reasoning: "Insufficient lead data for intent analysis",
			Points:    intentPointsLow,
			Source:    models.SourceFallback,
		}
	}

	role := strings.ToLower(lead.Role)
	industry := strings.ToLower(lead.Industry)

	isDecisionMaker := containsAny(role, fallbackDecisionKeywords)
	isTechIndustry := containsAny(industry, fallbackTechKeywords)
	hasCoreProfile := strings.TrimSpace(lead.Name) != "" &&
		strings.TrimSpace(lead.Role) != "" &&
		strings.TrimSpace(lead.Company) != "" &&
		strings.TrimSpace(lead.Industry) != ""

	switch {
	case isDecisionMaker && isTechIndustry && hasCoreProfile:
		return models.IntentResult{
			Intent:    models.IntentHigh,
			Reasoning: "Decision maker at a tech-oriented company with a complete profile",
			Points:    intentPointsHigh,
			Source:    models.SourceFallback,
		}
	case isDecisionMaker || isTechIndustry:
		return models.IntentResult{
			Intent:    models.IntentMedium,
			Reasoning: "Partial fit: either a decision-making role or a tech-oriented industry",
			Points:    intentPointsMedium,
			Source:    models.SourceFallback,
		}
	default:
		return models.IntentResult{
			Intent:    models.IntentLow,
			Reasoning: "No decision-making role or tech industry signal detected",
			Points:    intentPointsLow,
			Source:    models.SourceFallback,
		}
	}
}

func containsAny(s string, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.Contains(s, keyword) {
			return true
		}
	}
	return false
}
