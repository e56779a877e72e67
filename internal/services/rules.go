package services

import (
	"fmt"
	"strings"

	"github.com/Vishal-jain-01/kuvakaBackendAssignment/internal/models"
)

const (
	rolePointsDecisionMaker = 20
	rolePointsInfluencer    = 10
	industryPointsICP       = 20
	industryPointsAdjacent  = 10
	completenessPointsMax   = 10
	profileFieldCount       = 6
	ruleTotalMax            = 50
)

// Keywords holds the substring tables the rule engine matches against.
// Lists are ordered and matched first-hit-wins, so composition and order
// are part of the scoring contract.
type Keywords struct {
	DecisionMakers     []string
	Influencers        []string
	ICPIndustries      []string
	AdjacentIndustries []string
}

func DefaultKeywords() Keywords {
	return Keywords{
		DecisionMakers: []string{
			"ceo", "cto", "cfo", "coo", "cmo", "chief", "founder", "co-founder",
			"president", "vp", "vice president", "head of", "director", "owner",
		},
		Influencers: []string{
			"manager", "lead", "senior", "principal", "architect",
			"consultant", "specialist", "supervisor",
		},
		ICPIndustries: []string{
			"saas", "software", "technology", "tech", "b2b",
			"information technology", "it services", "cloud", "fintech",
		},
		AdjacentIndustries: []string{
			"finance", "financial", "banking", "insurance", "consulting",
			"marketing", "e-commerce", "ecommerce", "retail", "telecom", "media",
		},
	}
}

// RuleEngine scores a lead against an offer deterministically. It does no
// I/O and holds no mutable state, so a single instance is safe to share.
type RuleEngine struct {
	keywords Keywords
}

func NewRuleEngine(keywords Keywords) *RuleEngine {
	return &RuleEngine{keywords: keywords}
}

// Score produces the rule half of a lead's score: role bracket (0/10/20),
// industry bracket (0/10/20) and profile completeness (0-10). Total is
// the exact sum, capped at 50. Details always holds exactly one line per
// sub-score.
func (e *RuleEngine) Score(lead *models.Lead, offer *models.Offer) models.RuleBreakdown {
	roleScore, roleDetail := e.scoreRole(lead.Role)
	industryScore, industryDetail := e.scoreIndustry(lead.Industry, offer)
	completenessScore, completenessDetail := e.scoreCompleteness(lead)

	total := roleScore + industryScore + completenessScore
	if total > ruleTotalMax {
		total = ruleTotalMax
	}

	return models.RuleBreakdown{
		RoleScore:         roleScore,
		IndustryScore:     industryScore,
		CompletenessScore: completenessScore,
		Total:             total,
		Details:           []string{roleDetail, industryDetail, completenessDetail},
	}
}

func (e *RuleEngine) scoreRole(role string) (int, string) {
	normalized := strings.ToLower(strings.TrimSpace(role))
	if normalized == "" {
		return 0, fmt.Sprintf("Role missing (0/%d points)", rolePointsDecisionMaker)
	}

	for _, keyword := range e.keywords.DecisionMakers {
		if strings.Contains(normalized, keyword) {
			return rolePointsDecisionMaker, fmt.Sprintf(
				"Role %q matches decision maker keyword %q (%d/%d points)",
				role, keyword, rolePointsDecisionMaker, rolePointsDecisionMaker)
		}
	}

	for _, keyword := range e.keywords.Influencers {
		if strings.Contains(normalized, keyword) {
			return rolePointsInfluencer, fmt.Sprintf(
				"Role %q matches influencer keyword %q (%d/%d points)",
				role, keyword, rolePointsInfluencer, rolePointsDecisionMaker)
		}
	}

	return 0, fmt.Sprintf("Role %q is neither decision maker nor influencer (0/%d points)",
		role, rolePointsDecisionMaker)
}

func (e *RuleEngine) scoreIndustry(industry string, offer *models.Offer) (int, string) {
	normalized := strings.ToLower(strings.TrimSpace(industry))
	if normalized == "" {
		return 0, fmt.Sprintf("Industry missing (0/%d points)", industryPointsICP)
	}

	// The offer's own ideal use cases outrank the static tables.
	if offer != nil {
		for _, useCase := range offer.IdealUseCases {
			lowered := strings.ToLower(strings.TrimSpace(useCase))
			if lowered == "" {
				continue
			}
			if strings.Contains(lowered, normalized) || strings.Contains(normalized, lowered) {
				return industryPointsICP, fmt.Sprintf(
					"Industry %q matches offer ideal use case %q (%d/%d points)",
					industry, useCase, industryPointsICP, industryPointsICP)
			}
		}
	}

	for _, keyword := range e.keywords.ICPIndustries {
		if strings.Contains(normalized, keyword) {
			return industryPointsICP, fmt.Sprintf(
				"Industry %q is an ICP industry (%d/%d points)",
				industry, industryPointsICP, industryPointsICP)
		}
	}

	for _, keyword := range e.keywords.AdjacentIndustries {
		if strings.Contains(normalized, keyword) {
			return industryPointsAdjacent, fmt.Sprintf(
				"Industry %q is adjacent to the ICP (%d/%d points)",
				industry, industryPointsAdjacent, industryPointsICP)
		}
	}

	return 0, fmt.Sprintf("Industry %q is outside the ICP (0/%d points)",
		industry, industryPointsICP)
}

func (e *RuleEngine) scoreCompleteness(lead *models.Lead) (int, string) {
	present := 0
	for _, field := range lead.ProfileFields() {
		if strings.TrimSpace(field) != "" {
			present++
		}
	}

	if present == profileFieldCount {
		return completenessPointsMax, fmt.Sprintf(
			"All %d profile fields present (%d/%d points)",
			profileFieldCount, completenessPointsMax, completenessPointsMax)
	}

	// Integer division truncates: 5 of 6 fields scores 8, not 9.
	points := present * completenessPointsMax / profileFieldCount
	return points, fmt.Sprintf("%d of %d profile fields present (%d/%d points)",
		present, profileFieldCount, points, completenessPointsMax)
}
