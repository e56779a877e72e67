package repositories

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Vishal-jain-01/kuvakaBackendAssignment/internal/models"
)

var ErrNotFound = fmt.Errorf("record not found")

type OfferRepository interface {
	Create(offer *models.Offer) error
	FindByID(id uuid.UUID) (*models.Offer, error)
	Current() (*models.Offer, error)
	AttachBrochure(id uuid.UUID, text string) error
}

type offerRepository struct {
	db *gorm.DB
}

func NewOfferRepository(db *gorm.DB) OfferRepository {
	return &offerRepository{db: db}
}

// Create implements OfferRepository.
func (r *offerRepository) Create(offer *models.Offer) error {
	if err := r.db.Create(offer).Error; err != nil {
		return fmt.Errorf("failed to create offer: %w", err)
	}

	return nil
}

// FindByID implements OfferRepository.
func (r *offerRepository) FindByID(id uuid.UUID) (*models.Offer, error) {
	var offer models.Offer
	if err := r.db.Where("id = ?", id).First(&offer).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("offer %s: %w", id, ErrNotFound)
		}

		return nil, fmt.Errorf("failed to find offer: %w", err)
	}

	return &offer, nil
}

// Current implements OfferRepository. The current offer is the most
// recently created one; scoring always runs against it.
func (r *offerRepository) Current() (*models.Offer, error) {
	var offer models.Offer
	err := r.db.Order("created_at DESC").First(&offer).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("no offer uploaded: %w", ErrNotFound)
		}

		return nil, fmt.Errorf("failed to find current offer: %w", err)
	}

	return &offer, nil
}

// AttachBrochure implements OfferRepository.
func (r *offerRepository) AttachBrochure(id uuid.UUID, text string) error {
	result := r.db.Model(&models.Offer{}).
		Where("id = ?", id).
		Update("brochure_text", text)

	if result.Error != nil {
		return fmt.Errorf("failed to attach brochure: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return fmt.Errorf("offer %s: %w", id, ErrNotFound)
	}

	return nil
}
