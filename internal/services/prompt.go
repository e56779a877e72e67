package services

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/Vishal-jain-01/kuvakaBackendAssignment/internal/models"
)

// defaultModelReasoning is the placeholder used when the model omits its
// reasoning line. The orchestrator skips it when composing the final
// reasoning text.
const defaultModelReasoning = "AI classification completed without detailed reasoning"

type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// BuildIntentPrompt creates the classification prompt for one lead. The
// model is instructed to answer in exactly two lines so the response can
// be parsed without a JSON round trip.
func (pb *PromptBuilder) BuildIntentPrompt(lead *models.Lead, offer *models.Offer, playbookContext string) string {
	var b strings.Builder

	b.WriteString("You are a B2B sales analyst classifying a prospect's buying intent for a product offer.\n\n")

	b.WriteString("PRODUCT / OFFER:\n")
	fmt.Fprintf(&b, "Name: %s\n", offer.Name)
	fmt.Fprintf(&b, "Value propositions: %s\n", strings.Join(offer.ValueProps, "; "))
	fmt.Fprintf(&b, "Ideal use cases: %s\n", strings.Join(offer.IdealUseCases, "; "))

	if brochure := strings.TrimSpace(offer.BrochureText); brochure != "" {
		if len(brochure) > 2000 {
			brochure = brochure[:2000]
		}
		fmt.Fprintf(&b, "\nPRODUCT BROCHURE EXCERPT:\n%s\n", brochure)
	}

	if strings.TrimSpace(playbookContext) != "" {
		fmt.Fprintf(&b, "\nSALES PLAYBOOK CONTEXT:\n%s\n", playbookContext)
	}

	b.WriteString("\nPROSPECT:\n")
	fmt.Fprintf(&b, "Name: %s\n", lead.Name)
	fmt.Fprintf(&b, "Role: %s\n", lead.Role)
	fmt.Fprintf(&b, "Company: %s\n", lead.Company)
	fmt.Fprintf(&b, "Industry: %s\n", lead.Industry)
	fmt.Fprintf(&b, "Location: %s\n", lead.Location)
	fmt.Fprintf(&b, "LinkedIn bio: %s\n", lead.LinkedInBio)

	b.WriteString(`
Classify this prospect's buying intent as High, Medium, or Low.
Respond with exactly two lines in this format:
Intent: <High|Medium|Low>
Reasoning: <one or two sentences explaining your classification>`)

	return b.String()
}

var intentLabelPattern = regexp.MustCompile(`(?i)\b(high|medium|low)\b`)

// ParseIntentResponse extracts the intent label and reasoning from a model
// response. A missing or unrecognized intent line defaults to Medium; a
// missing reasoning line yields the generic placeholder.
func ParseIntentResponse(response string) (models.IntentLevel, string) {
	intent := models.IntentMedium
	reasoning := defaultModelReasoning
	intentFound := false
	reasoningFound := false

	for _, line := range strings.Split(response, "\n") {
		trimmed := strings.TrimSpace(line)
		lowered := strings.ToLower(trimmed)

		switch {
		case !intentFound && strings.HasPrefix(lowered, "intent:"):
			rest := trimmed[len("intent:"):]
			if match := intentLabelPattern.FindString(rest); match != "" {
				intent = normalizeIntentLabel(match)
				intentFound = true
			}
		case !reasoningFound && strings.HasPrefix(lowered, "reasoning:"):
			rest := strings.TrimSpace(trimmed[len("reasoning:"):])
			if rest != "" {
				reasoning = rest
				reasoningFound = true
			}
		}
	}

	return intent, reasoning
}

func normalizeIntentLabel(label string) models.IntentLevel {
	switch strings.ToLower(label) {
	case "high":
		return models.IntentHigh
	case "low":
		return models.IntentLow
	default:
		return models.IntentMedium
	}
}

// FormatPlaybookContext flattens retrieval hits into a prompt section.
func FormatPlaybookContext(results []SearchResult) string {
	if len(results) == 0 {
		return ""
	}

	var parts []string
	for i, result := range results {
		parts = append(parts, fmt.Sprintf("--- Snippet %d (score %.2f) ---\n%s",
			i+1, result.Score, strings.TrimSpace(result.Text)))
	}

	return strings.Join(parts, "\n\n")
}
