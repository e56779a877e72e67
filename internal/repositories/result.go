package repositories

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Vishal-jain-01/kuvakaBackendAssignment/internal/models"
)

type ResultRepository interface {
	Create(set *models.ResultSet) error
	FindByID(id uuid.UUID) (*models.ResultSet, error)
	Latest() (*models.ResultSet, error)
	LatestCompleted() (*models.ResultSet, error)
	UpdateStatus(id uuid.UUID, status models.RunStatus) error
	UpdateError(id uuid.UUID, errorMsg string) error
	Complete(id uuid.UUID, scored []models.ScoredLead, summary models.ScoreSummary, errPreview []string) error
	ScoredLeads(resultSetID uuid.UUID) ([]models.ScoredLead, error)
	FindPendingRuns(limit int) ([]models.ResultSet, error)
}

type resultRepository struct {
	db *gorm.DB
}

func NewResultRepository(db *gorm.DB) ResultRepository {
	return &resultRepository{db: db}
}

func (r *resultRepository) Create(set *models.ResultSet) error {
	if err := r.db.Create(set).Error; err != nil {
		return fmt.Errorf("failed to create result set: %w", err)
	}
	return nil
}

func (r *resultRepository) FindByID(id uuid.UUID) (*models.ResultSet, error) {
	var set models.ResultSet
	if err := r.db.Where("id = ?", id).First(&set).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("result set %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find result set: %w", err)
	}
	return &set, nil
}

// Latest returns the most recently created result set regardless of status.
func (r *resultRepository) Latest() (*models.ResultSet, error) {
	var set models.ResultSet
	err := r.db.Order("created_at DESC").First(&set).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("no results available: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find latest result set: %w", err)
	}
	return &set, nil
}

// LatestCompleted returns the newest result set that finished scoring,
// which is what the CSV export serves.
func (r *resultRepository) LatestCompleted() (*models.ResultSet, error) {
	var set models.ResultSet
	err := r.db.
		Where("status = ?", models.RunCompleted).
		Order("created_at DESC").
		First(&set).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("no completed results available: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find completed result set: %w", err)
	}
	return &set, nil
}

func (r *resultRepository) UpdateStatus(id uuid.UUID, status models.RunStatus) error {
	result := r.db.Model(&models.ResultSet{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_at": time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update status: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return fmt.Errorf("result set %s: %w", id, ErrNotFound)
	}

	return nil
}

func (r *resultRepository) UpdateError(id uuid.UUID, errorMsg string) error {
	result := r.db.Model(&models.ResultSet{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":        models.RunFailed,
			"error_message": errorMsg,
			"updated_at":    time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update error: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return fmt.Errorf("result set %s: %w", id, ErrNotFound)
	}

	return nil
}

// Complete stores the scored leads and the summary in one transaction and
// marks the run completed.
func (r *resultRepository) Complete(id uuid.UUID, scored []models.ScoredLead, summary models.ScoreSummary, errPreview []string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		for i := range scored {
			scored[i].ResultSetID = id
			scored[i].Position = i
		}

		if len(scored) > 0 {
			if err := tx.CreateInBatches(scored, 100).Error; err != nil {
				return fmt.Errorf("failed to store scored leads: %w", err)
			}
		}

		updates := models.ResultSet{
			Status:       models.RunCompleted,
			TotalLeads:   summary.Total,
			HighCount:    summary.HighCount,
			MediumCount:  summary.MediumCount,
			LowCount:     summary.LowCount,
			AverageScore: summary.AverageScore,
			MaxScore:     summary.MaxScore,
			MinScore:     summary.MinScore,
			ErrorPreview: errPreview,
			UpdatedAt:    time.Now(),
		}

		result := tx.Model(&models.ResultSet{}).
			Where("id = ?", id).
			Select("status", "total_leads", "high_count", "medium_count", "low_count",
				"average_score", "max_score", "min_score", "error_preview", "updated_at").
			Updates(updates)

		if result.Error != nil {
			return fmt.Errorf("failed to complete result set: %w", result.Error)
		}

		if result.RowsAffected == 0 {
			return fmt.Errorf("result set %s: %w", id, ErrNotFound)
		}

		return nil
	})
}

func (r *resultRepository) ScoredLeads(resultSetID uuid.UUID) ([]models.ScoredLead, error) {
	var leads []models.ScoredLead
	err := r.db.
		Where("result_set_id = ?", resultSetID).
		Order("position ASC").
		Find(&leads).Error

	if err != nil {
		return nil, fmt.Errorf("failed to find scored leads: %w", err)
	}

	return leads, nil
}

func (r *resultRepository) FindPendingRuns(limit int) ([]models.ResultSet, error) {
	var sets []models.ResultSet
	err := r.db.
		Where("status = ?", models.RunQueued).
		Order("created_at ASC").
		Limit(limit).
		Find(&sets).Error

	if err != nil {
		return nil, fmt.Errorf("failed to find pending runs: %w", err)
	}

	return sets, nil
}
