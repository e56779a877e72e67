package services

import (
	"context"
	"fmt"
	"log"
	"math"
	"strings"

	"github.com/google/uuid"

	"github.com/Vishal-jain-01/kuvakaBackendAssignment/internal/models"
	"github.com/Vishal-jain-01/kuvakaBackendAssignment/internal/repositories"
)

const (
	finalScoreMax     = 100
	highThreshold     = 70
	mediumThreshold   = 40
	errorPreviewLimit = 5
)

// ScoringService blends the rule engine and intent classifier into final
// scores. Leads are processed sequentially in input order; one lead's
// failure never aborts the batch.
type ScoringService interface {
	RunPipeline(ctx context.Context, offer *models.Offer, leads []models.Lead) ([]models.ScoredLead, models.ScoreSummary, []string)
}

type scoringService struct {
	rules      *RuleEngine
	classifier IntentClassifier
}

func NewScoringService(rules *RuleEngine, classifier IntentClassifier) ScoringService {
	return &scoringService{
		rules:      rules,
		classifier: classifier,
	}
}

// RunPipeline implements ScoringService. The returned error strings are
// per-lead failures; the corresponding leads appear in the output as
// zero-score placeholders.
func (s *scoringService) RunPipeline(ctx context.Context, offer *models.Offer, leads []models.Lead) ([]models.ScoredLead, models.ScoreSummary, []string) {
	scored := make([]models.ScoredLead, 0, len(leads))
	var errs []string

	for i := range leads {
		lead := leads[i]

		result, err := s.scoreLead(ctx, &lead, offer)
		if err != nil {
			errs = append(errs, fmt.Sprintf("lead %d (%s): %v", i+1, lead.Name, err))
			result = errorPlaceholder(&lead, err)
		}

		scored = append(scored, result)
	}

	return scored, buildSummary(scored), errs
}

// scoreLead scores one lead. The classifier never returns an error, so a
// recovered panic is the only per-lead failure path left.
func (s *scoringService) scoreLead(ctx context.Context, lead *models.Lead, offer *models.Offer) (result models.ScoredLead, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("scoring panicked: %v", r)
		}
	}()

	breakdown := s.rules.Score(lead, offer)
	intent := s.classifier.Classify(ctx, lead, offer)

	finalScore := breakdown.Total + intent.Points
	if finalScore > finalScoreMax {
		finalScore = finalScoreMax
	}

	finalIntent := IntentForScore(finalScore)

	return models.ScoredLead{
		Name:        lead.Name,
		Role:        lead.Role,
		Company:     lead.Company,
		Industry:    lead.Industry,
		Location:    lead.Location,
		LinkedInBio: lead.LinkedInBio,

		RoleScore:         breakdown.RoleScore,
		IndustryScore:     breakdown.IndustryScore,
		CompletenessScore: breakdown.CompletenessScore,
		RuleTotal:         breakdown.Total,
		RuleDetails:       breakdown.Details,

		AIIntent:    intent.Intent,
		AIPoints:    intent.Points,
		AISource:    intent.Source,
		FinalScore:  finalScore,
		FinalIntent: finalIntent,
		Reasoning:   composeReasoning(breakdown, intent, finalIntent),
	}, nil
}

// IntentForScore derives the final label from the blended score. The
// brackets are fixed: 70 and above is High, 40 to 69 Medium, below 40 Low.
func IntentForScore(score int) models.IntentLevel {
	switch {
	case score >= highThreshold:
		return models.IntentHigh
	case score >= mediumThreshold:
		return models.IntentMedium
	default:
		return models.IntentLow
	}
}

func composeReasoning(breakdown models.RuleBreakdown, intent models.IntentResult, finalIntent models.IntentLevel) string {
	parts := []string{fmt.Sprintf("Rule analysis: %d/%d points (%s).",
		breakdown.Total, ruleTotalMax, strings.Join(breakdown.Details, "; "))}

	if reasoning := strings.TrimSpace(intent.Reasoning); reasoning != "" && reasoning != defaultModelReasoning {
		if !strings.HasSuffix(reasoning, ".") {
			reasoning += "."
		}
		parts = append(parts, reasoning)
	}

	switch finalIntent {
	case models.IntentHigh:
		parts = append(parts, "Overall this lead is a strong fit and worth immediate outreach.")
	case models.IntentMedium:
		parts = append(parts, "Overall this lead shows moderate potential and merits a follow-up.")
	default:
		parts = append(parts, "Overall this lead appears to be a weak fit at this time.")
	}

	return strings.Join(parts, " ")
}

func errorPlaceholder(lead *models.Lead, err error) models.ScoredLead {
	return models.ScoredLead{
		Name:        lead.Name,
		Role:        lead.Role,
		Company:     lead.Company,
		Industry:    lead.Industry,
		Location:    lead.Location,
		LinkedInBio: lead.LinkedInBio,

		RuleDetails: []string{
			fmt.Sprintf("Scoring error: %v", err),
			"Rule scores unavailable (0/50 points)",
			"AI classification skipped",
		},
		AIIntent:    models.IntentLow,
		AISource:    models.SourceFallback,
		FinalIntent: models.IntentLow,
		Reasoning:   fmt.Sprintf("Lead could not be scored (%v); recorded with a zero score.", err),
	}
}

func buildSummary(scored []models.ScoredLead) models.ScoreSummary {
	summary := models.ScoreSummary{
		HighPercent:   "0.0%",
		MediumPercent: "0.0%",
		LowPercent:    "0.0%",
	}

	total := len(scored)
	summary.Total = total
	if total == 0 {
		return summary
	}

	sum := 0
	summary.MaxScore = scored[0].FinalScore
	summary.MinScore = scored[0].FinalScore

	for _, lead := range scored {
		switch lead.FinalIntent {
		case models.IntentHigh:
			summary.HighCount++
		case models.IntentMedium:
			summary.MediumCount++
		default:
			summary.LowCount++
		}

		sum += lead.FinalScore
		if lead.FinalScore > summary.MaxScore {
			summary.MaxScore = lead.FinalScore
		}
		if lead.FinalScore < summary.MinScore {
			summary.MinScore = lead.FinalScore
		}
	}

	summary.AverageScore = int(math.Round(float64(sum) / float64(total)))
	summary.HighPercent = models.FormatPercent(summary.HighCount, total)
	summary.MediumPercent = models.FormatPercent(summary.MediumCount, total)
	summary.LowPercent = models.FormatPercent(summary.LowCount, total)

	return summary
}

// RunService executes a queued scoring run end to end: load the offer and
// lead batch the run was enqueued with, run the pipeline, persist the
// generation. This is the unit of work the background worker processes.
type RunService interface {
	ExecuteRun(ctx context.Context, runID uuid.UUID) error
}

type runService struct {
	offerRepo  repositories.OfferRepository
	leadRepo   repositories.LeadRepository
	resultRepo repositories.ResultRepository
	scoring    ScoringService
}

func NewRunService(
	offerRepo repositories.OfferRepository,
	leadRepo repositories.LeadRepository,
	resultRepo repositories.ResultRepository,
	scoring ScoringService,
) RunService {
	return &runService{
		offerRepo:  offerRepo,
		leadRepo:   leadRepo,
		resultRepo: resultRepo,
		scoring:    scoring,
	}
}

// ExecuteRun implements RunService.
func (r *runService) ExecuteRun(ctx context.Context, runID uuid.UUID) error {
	if err := r.resultRepo.UpdateStatus(runID, models.RunProcessing); err != nil {
		return fmt.Errorf("failed to update status: %w", err)
	}

	log.Printf("🔄 Starting scoring run %s\n", runID)

	run, err := r.resultRepo.FindByID(runID)
	if err != nil {
		r.resultRepo.UpdateError(runID, err.Error())
		return fmt.Errorf("failed to load run: %w", err)
	}

	offer, err := r.offerRepo.FindByID(run.OfferID)
	if err != nil {
		r.resultRepo.UpdateError(runID, fmt.Sprintf("offer not found: %v", err))
		return fmt.Errorf("failed to load offer: %w", err)
	}

	leads, err := r.leadRepo.FindByBatch(run.BatchID)
	if err != nil {
		r.resultRepo.UpdateError(runID, fmt.Sprintf("lead batch not found: %v", err))
		return fmt.Errorf("failed to load leads: %w", err)
	}

	log.Printf("📊 Scoring %d leads against offer %q\n", len(leads), offer.Name)

	scored, summary, errs := r.scoring.RunPipeline(ctx, offer, leads)

	preview := errs
	if len(preview) > errorPreviewLimit {
		preview = preview[:errorPreviewLimit]
	}

	if err := r.resultRepo.Complete(runID, scored, summary, preview); err != nil {
		r.resultRepo.UpdateError(runID, fmt.Sprintf("failed to store results: %v", err))
		return fmt.Errorf("failed to store results: %w", err)
	}

	log.Printf("✅ Scoring run %s completed: %d leads, avg %d\n", runID, summary.Total, summary.AverageScore)
	return nil
}
