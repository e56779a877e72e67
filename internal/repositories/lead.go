package repositories

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Vishal-jain-01/kuvakaBackendAssignment/internal/models"
)

type LeadRepository interface {
	CreateBatch(batch *models.LeadBatch, leads []models.Lead) error
	CurrentBatch() (*models.LeadBatch, error)
	FindByBatch(batchID uuid.UUID) ([]models.Lead, error)
}

type leadRepository struct {
	db *gorm.DB
}

func NewLeadRepository(db *gorm.DB) LeadRepository {
	return &leadRepository{db: db}
}

// CreateBatch implements LeadRepository. The batch record and its leads
// are written in one transaction so a half-stored upload never becomes
// the current batch.
func (r *leadRepository) CreateBatch(batch *models.LeadBatch, leads []models.Lead) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(batch).Error; err != nil {
			return fmt.Errorf("failed to create lead batch: %w", err)
		}

		for i := range leads {
			leads[i].BatchID = batch.ID
			leads[i].Position = i
		}

		if err := tx.CreateInBatches(leads, 100).Error; err != nil {
			return fmt.Errorf("failed to create leads: %w", err)
		}

		return nil
	})
}

// CurrentBatch implements LeadRepository.
func (r *leadRepository) CurrentBatch() (*models.LeadBatch, error) {
	var batch models.LeadBatch
	err := r.db.Order("created_at DESC").First(&batch).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("no leads uploaded: %w", ErrNotFound)
		}

		return nil, fmt.Errorf("failed to find current batch: %w", err)
	}

	return &batch, nil
}

// FindByBatch implements LeadRepository. Leads come back in upload order.
func (r *leadRepository) FindByBatch(batchID uuid.UUID) ([]models.Lead, error) {
	var leads []models.Lead
	err := r.db.
		Where("batch_id = ?", batchID).
		Order("position ASC").
		Find(&leads).Error

	if err != nil {
		return nil, fmt.Errorf("failed to find leads for batch %s: %w", batchID, err)
	}

	return leads, nil
}
