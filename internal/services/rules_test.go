package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Vishal-jain-01/kuvakaBackendAssignment/internal/models"
)

func testOffer() *models.Offer {
	return &models.Offer{
		Name:          "AI Outreach Automation",
		ValueProps:    []string{"24/7 outreach", "6x more meetings"},
		IdealUseCases: []string{"B2B SaaS mid-market"},
	}
}

func completeLead() *models.Lead {
	return &models.Lead{
		Name:        "Ava Patel",
		Role:        "CEO",
		Company:     "FlowMetrics",
		Industry:    "SaaS",
		Location:    "Austin",
		LinkedInBio: "Building analytics tooling for B2B teams",
	}
}

func TestRuleEngine_Score_Scenarios(t *testing.T) {
	engine := NewRuleEngine(DefaultKeywords())

	tests := []struct {
		name             string
		lead             *models.Lead
		wantRole         int
		wantIndustry     int
		wantCompleteness int
		wantTotal        int
	}{
		{
			name:             "CEO in SaaS with complete profile scores the maximum",
			lead:             completeLead(),
			wantRole:         20,
			wantIndustry:     20,
			wantCompleteness: 10,
			wantTotal:        50,
		},
		{
			name: "junior developer in agriculture only earns completeness",
			lead: &models.Lead{
				Name:        "Sam Green",
				Role:        "Junior Developer",
				Company:     "AgriCo",
				Industry:    "Agriculture",
				Location:    "Des Moines",
				LinkedInBio: "Farm software hobbyist",
			},
			wantRole:         0,
			wantIndustry:     0,
			wantCompleteness: 10,
			wantTotal:        10,
		},
		{
			name: "influencer role in adjacent industry",
			lead: &models.Lead{
				Name:        "Lee Wong",
				Role:        "Marketing Manager",
				Company:     "RetailCorp",
				Industry:    "Retail",
				Location:    "Chicago",
				LinkedInBio: "Growth marketing",
			},
			wantRole:         10,
			wantIndustry:     10,
			wantCompleteness: 10,
			wantTotal:        30,
		},
		{
			name: "missing role and industry score zero brackets",
			lead: &models.Lead{
				Name:        "No Role",
				Company:     "Acme",
				Location:    "NYC",
				LinkedInBio: "bio",
			},
			wantRole:         0,
			wantIndustry:     0,
			wantCompleteness: 6, // 4 of 6 fields -> floor(4/6*10)
			wantTotal:        6,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			breakdown := engine.Score(tt.lead, testOffer())

			assert.Equal(t, tt.wantRole, breakdown.RoleScore)
			assert.Equal(t, tt.wantIndustry, breakdown.IndustryScore)
			assert.Equal(t, tt.wantCompleteness, breakdown.CompletenessScore)
			assert.Equal(t, tt.wantTotal, breakdown.Total)

			// Total is always the exact sum of the sub-scores.
			assert.Equal(t, breakdown.RoleScore+breakdown.IndustryScore+breakdown.CompletenessScore, breakdown.Total)
			assert.GreaterOrEqual(t, breakdown.Total, 0)
			assert.LessOrEqual(t, breakdown.Total, 50)

			require.Len(t, breakdown.Details, 3)
			for _, detail := range breakdown.Details {
				assert.NotEmpty(t, detail)
			}
		})
	}
}

func TestRuleEngine_RoleScoring_CaseInsensitive(t *testing.T) {
	engine := NewRuleEngine(DefaultKeywords())

	for _, role := range []string{"ceo", "CEO", "Ceo", "Chief Executive Officer"} {
		lead := completeLead()
		lead.Role = role
		breakdown := engine.Score(lead, testOffer())
		assert.Equal(t, 20, breakdown.RoleScore, "role %q", role)
	}
}

func TestRuleEngine_DecisionMakerOutranksInfluencer(t *testing.T) {
	engine := NewRuleEngine(DefaultKeywords())

	// "Senior VP" matches both tables; the decision-maker set is checked first.
	lead := completeLead()
	lead.Role = "Senior VP of Sales"

	breakdown := engine.Score(lead, testOffer())
	assert.Equal(t, 20, breakdown.RoleScore)
}

func TestRuleEngine_IndustryBrackets(t *testing.T) {
	engine := NewRuleEngine(DefaultKeywords())

	tests := []struct {
		name     string
		industry string
		offer    *models.Offer
		want     int
	}{
		{"offer ideal use case match", "SaaS", testOffer(), 20},
		{"ICP industry without offer overlap", "Cloud Infrastructure", &models.Offer{Name: "x"}, 20},
		{"adjacent industry", "Insurance", &models.Offer{Name: "x"}, 10},
		{"unrelated industry", "Agriculture", &models.Offer{Name: "x"}, 0},
		{"empty industry", "", testOffer(), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lead := completeLead()
			lead.Industry = tt.industry
			breakdown := engine.Score(lead, tt.offer)
			assert.Equal(t, tt.want, breakdown.IndustryScore)
		})
	}
}

func TestRuleEngine_CompletenessTruncation(t *testing.T) {
	engine := NewRuleEngine(DefaultKeywords())

	// All six fields present scores exactly 10.
	full := engine.Score(completeLead(), testOffer())
	assert.Equal(t, 10, full.CompletenessScore)

	// Exactly one missing field truncates to 8, not 9.
	lead := completeLead()
	lead.LinkedInBio = ""
	fiveOfSix := engine.Score(lead, testOffer())
	assert.Equal(t, 8, fiveOfSix.CompletenessScore)

	// Whitespace-only fields count as missing.
	lead = completeLead()
	lead.Location = "   "
	assert.Equal(t, 8, engine.Score(lead, testOffer()).CompletenessScore)

	empty := engine.Score(&models.Lead{}, testOffer())
	assert.Equal(t, 0, empty.CompletenessScore)
}
