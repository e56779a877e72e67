package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type IntentLevel string

const (
	IntentHigh   IntentLevel = "High"
	IntentMedium IntentLevel = "Medium"
	IntentLow    IntentLevel = "Low"
)

type ClassifierSource string

const (
	SourceModel    ClassifierSource = "model"
	SourceFallback ClassifierSource = "fallback"
)

// RuleBreakdown is the deterministic half of a lead's score.
// Total is always the exact sum of the three sub-scores, capped at 50.
type RuleBreakdown struct {
	RoleScore         int      `json:"role_score"`
	IndustryScore     int      `json:"industry_score"`
	CompletenessScore int      `json:"completeness_score"`
	Total             int      `json:"total"`
	Details           []string `json:"details"`
}

// IntentResult is the AI half of a lead's score. Source records whether
// the label came from the model or the deterministic fallback heuristic.
type IntentResult struct {
	Intent    IntentLevel      `json:"intent"`
	Reasoning string           `json:"reasoning"`
	Points    int              `json:"points"`
	Source    ClassifierSource `json:"source"`
}

type RunStatus string

const (
	RunQueued     RunStatus = "queued"
	RunProcessing RunStatus = "processing"
	RunCompleted  RunStatus = "completed"
	RunFailed     RunStatus = "failed"
)

// ResultSet is one generation of scored leads. A rerun creates a new
// ResultSet rather than updating an existing one.
type ResultSet struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	OfferID      uuid.UUID `gorm:"type:uuid;not null" json:"offer_id"`
	BatchID      uuid.UUID `gorm:"type:uuid;not null" json:"batch_id"`
	Status       RunStatus `gorm:"not null;default:'queued'" json:"status"`
	TotalLeads   int       `gorm:"not null;default:0" json:"total_leads"`
	HighCount    int       `gorm:"not null;default:0" json:"high_count"`
	MediumCount  int       `gorm:"not null;default:0" json:"medium_count"`
	LowCount     int       `gorm:"not null;default:0" json:"low_count"`
	AverageScore int       `gorm:"not null;default:0" json:"average_score"`
	MaxScore     int       `gorm:"not null;default:0" json:"max_score"`
	MinScore     int       `gorm:"not null;default:0" json:"min_score"`
	ErrorPreview []string  `gorm:"type:jsonb;serializer:json" json:"error_preview,omitempty"`
	ErrorMessage *string   `gorm:"type:text" json:"error_message,omitempty"`
	CreatedAt    time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt    time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (s *ResultSet) TableName() string {
	return "result_sets"
}

// ScoredLead snapshots a lead together with both score components and the
// blended outcome. Records are immutable once stored.
type ScoredLead struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	ResultSetID uuid.UUID `gorm:"type:uuid;not null;index" json:"result_set_id"`
	Position    int       `gorm:"not null" json:"position"`

	Name        string `gorm:"type:text" json:"name"`
	Role        string `gorm:"type:text" json:"role"`
	Company     string `gorm:"type:text" json:"company"`
	Industry    string `gorm:"type:text" json:"industry"`
	Location    string `gorm:"type:text" json:"location"`
	LinkedInBio string `gorm:"type:text" json:"linkedin_bio"`

	RoleScore         int      `gorm:"not null;default:0" json:"role_score"`
	IndustryScore     int      `gorm:"not null;default:0" json:"industry_score"`
	CompletenessScore int      `gorm:"not null;default:0" json:"completeness_score"`
	RuleTotal         int      `gorm:"not null;default:0" json:"rule_total"`
	RuleDetails       []string `gorm:"type:jsonb;serializer:json" json:"rule_details"`

	AIIntent    IntentLevel      `gorm:"type:text" json:"ai_intent"`
	AIPoints    int              `gorm:"not null;default:0" json:"ai_points"`
	AISource    ClassifierSource `gorm:"type:text" json:"ai_source"`
	FinalScore  int              `gorm:"not null;default:0" json:"final_score"`
	FinalIntent IntentLevel      `gorm:"type:text" json:"final_intent"`
	Reasoning   string           `gorm:"type:text" json:"reasoning"`

	CreatedAt time.Time `gorm:"type:timestamp;default:now()" json:"created_at"`
}

func (s *ScoredLead) TableName() string {
	return "scored_leads"
}

// ScoreSummary aggregates one completed run. Percentages are preformatted
// as "NN.N%" strings; an empty run reports zeros throughout.
type ScoreSummary struct {
	Total         int    `json:"total"`
	HighCount     int    `json:"high_count"`
	MediumCount   int    `json:"medium_count"`
	LowCount      int    `json:"low_count"`
	HighPercent   string `json:"high_percent"`
	MediumPercent string `json:"medium_percent"`
	LowPercent    string `json:"low_percent"`
	AverageScore  int    `json:"average_score"`
	MaxScore      int    `json:"max_score"`
	MinScore      int    `json:"min_score"`
}

// FormatPercent renders count/total as "NN.N%". Callers guard total > 0.
func FormatPercent(count, total int) string {
	return fmt.Sprintf("%.1f%%", float64(count)*100/float64(total))
}
