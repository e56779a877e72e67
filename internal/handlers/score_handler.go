package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/Vishal-jain-01/kuvakaBackendAssignment/internal/models"
	"github.com/Vishal-jain-01/kuvakaBackendAssignment/internal/repositories"
	"github.com/Vishal-jain-01/kuvakaBackendAssignment/internal/services"
)

type ScoreHandler struct {
	offerRepo  repositories.OfferRepository
	leadRepo   repositories.LeadRepository
	resultRepo repositories.ResultRepository
	worker     services.Worker
}

func NewScoreHandler(
	offerRepo repositories.OfferRepository,
	leadRepo repositories.LeadRepository,
	resultRepo repositories.ResultRepository,
	worker services.Worker,
) *ScoreHandler {
	return &ScoreHandler{
		offerRepo:  offerRepo,
		leadRepo:   leadRepo,
		resultRepo: resultRepo,
		worker:     worker,
	}
}

// HandleScore handles POST /score. Both preconditions are checked before
// a run is created; a missing offer or lead batch never reaches the
// pipeline.
func (h *ScoreHandler) HandleScore(c *fiber.Ctx) error {
	offer, err := h.offerRepo.Current()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No offer uploaded. Please create an offer before scoring.",
		})
	}

	batch, err := h.leadRepo.CurrentBatch()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No leads uploaded. Please upload a CSV of leads before scoring.",
		})
	}

	run := &models.ResultSet{
		ID:        uuid.New(),
		OfferID:   offer.ID,
		BatchID:   batch.ID,
		Status:    models.RunQueued,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := h.resultRepo.Create(run); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create scoring run",
		})
	}

	h.worker.EnqueueRun(run.ID)

	return c.Status(fiber.StatusAccepted).JSON(models.ScoreResponse{
		ID:     run.ID.String(),
		Status: string(models.RunQueued),
	})
}
