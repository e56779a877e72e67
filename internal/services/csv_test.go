package services

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Vishal-jain-01/kuvakaBackendAssignment/internal/models"
)

func TestParseLeads_Success(t *testing.T) {
	input := strings.Join([]string{
		"name,role,company,industry,location,linkedin_bio",
		"Ava Patel,CEO,FlowMetrics,SaaS,Austin,Building analytics tooling",
		"Sam Green,Junior Developer,AgriCo,Agriculture,Des Moines,Farm software",
	}, "\n")

	leads, err := NewCSVService().ParseLeads(strings.NewReader(input))

	require.NoError(t, err)
	require.Len(t, leads, 2)
	assert.Equal(t, "Ava Patel", leads[0].Name)
	assert.Equal(t, "CEO", leads[0].Role)
	assert.Equal(t, "Agriculture", leads[1].Industry)
}

func TestParseLeads_ColumnOrderAndExtras(t *testing.T) {
	// Column order is free and unknown columns are ignored.
	input := strings.Join([]string{
		"linkedin_bio,location,industry,company,role,name,email",
		"bio text,Austin,SaaS,FlowMetrics,CTO,Ava Patel,ava@example.com",
	}, "\n")

	leads, err := NewCSVService().ParseLeads(strings.NewReader(input))

	require.NoError(t, err)
	require.Len(t, leads, 1)
	assert.Equal(t, "Ava Patel", leads[0].Name)
	assert.Equal(t, "CTO", leads[0].Role)
	assert.Equal(t, "bio text", leads[0].LinkedInBio)
}

func TestParseLeads_EmptyCellsArePresentButIncomplete(t *testing.T) {
	input := strings.Join([]string{
		"name,role,company,industry,location,linkedin_bio",
		"Ava Patel,,FlowMetrics,,Austin,",
	}, "\n")

	leads, err := NewCSVService().ParseLeads(strings.NewReader(input))

	require.NoError(t, err)
	require.Len(t, leads, 1)
	assert.Empty(t, leads[0].Role)
	assert.Empty(t, leads[0].Industry)
	assert.Equal(t, "FlowMetrics", leads[0].Company)
}

func TestParseLeads_RaggedRowsDegradeToEmptyFields(t *testing.T) {
	// Short rows lose trailing fields; long rows carry ignored extras.
	input := strings.Join([]string{
		"name,role,company,industry,location,linkedin_bio",
		"Ava Patel,CEO,FlowMetrics",
		"Sam Green,Manager,RetailCorp,Retail,Chicago,bio,extra",
	}, "\n")

	leads, err := NewCSVService().ParseLeads(strings.NewReader(input))

	require.NoError(t, err)
	require.Len(t, leads, 2)
	assert.Equal(t, "FlowMetrics", leads[0].Company)
	assert.Empty(t, leads[0].Industry)
	assert.Empty(t, leads[0].LinkedInBio)
	assert.Equal(t, "Chicago", leads[1].Location)
	assert.Equal(t, "bio", leads[1].LinkedInBio)
}

func TestParseLeads_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr string
	}{
		{
			name:    "empty file",
			input:   "",
			wantErr: "CSV file is empty",
		},
		{
			name:    "missing required columns",
			input:   "name,role,company\nAva,CEO,FlowMetrics",
			wantErr: "missing required columns: industry, location, linkedin_bio",
		},
		{
			name:    "header only",
			input:   "name,role,company,industry,location,linkedin_bio",
			wantErr: "no lead rows",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewCSVService().ParseLeads(strings.NewReader(tt.input))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestWriteResults_FixedColumnOrder(t *testing.T) {
	scored := []models.ScoredLead{
		{
			Name:        "Ava Patel",
			Role:        "CEO",
			Company:     "FlowMetrics",
			Industry:    "SaaS",
			Location:    "Austin",
			FinalIntent: models.IntentHigh,
			FinalScore:  100,
			RuleTotal:   50,
			AIPoints:    50,
			Reasoning:   "Rule analysis: 50/50 points.",
		},
	}

	var buf bytes.Buffer
	require.NoError(t, NewCSVService().WriteResults(&buf, scored))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)

	assert.Equal(t, "Name,Role,Company,Industry,Location,Intent,Score,Rule Score,AI Score,Reasoning", lines[0])
	assert.Equal(t, "Ava Patel,CEO,FlowMetrics,SaaS,Austin,High,100,50,50,Rule analysis: 50/50 points.", lines[1])
}

func TestWriteResults_EmptySet(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewCSVService().WriteResults(&buf, nil))

	// Header only.
	assert.Equal(t, "Name,Role,Company,Industry,Location,Intent,Score,Rule Score,AI Score,Reasoning",
		strings.TrimSpace(buf.String()))
}