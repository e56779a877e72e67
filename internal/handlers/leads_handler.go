package handlers

import (
	"fmt"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/Vishal-jain-01/kuvakaBackendAssignment/internal/models"
	"github.com/Vishal-jain-01/kuvakaBackendAssignment/internal/repositories"
	"github.com/Vishal-jain-01/kuvakaBackendAssignment/internal/services"
)

type LeadsHandler struct {
	leadRepo       repositories.LeadRepository
	storageService services.StorageService
	csvService     services.CSVService
	maxFileSize    int64
}

func NewLeadsHandler(
	leadRepo repositories.LeadRepository,
	storageService services.StorageService,
	csvService services.CSVService,
	maxFileSize int64,
) *LeadsHandler {
	return &LeadsHandler{
		leadRepo:       leadRepo,
		storageService: storageService,
		csvService:     csvService,
		maxFileSize:    maxFileSize,
	}
}

// HandleUploadLeads handles POST /leads/upload. The CSV is saved to disk
// first, then parsed; a new batch replaces the previous one as the
// current lead set.
func (h *LeadsHandler) HandleUploadLeads(c *fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "file is required. Please upload a CSV of leads.",
		})
	}

	if file.Size > h.maxFileSize {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("CSV file too large. Max size: %d bytes", h.maxFileSize),
		})
	}

	filename, filePath, err := h.storageService.SaveFile(file, "leads")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("failed to save CSV file: %v", err),
		})
	}

	f, err := os.Open(filePath)
	if err != nil {
		h.storageService.DeleteFile(filename)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to read uploaded file",
		})
	}
	defer f.Close()

	leads, err := h.csvService.ParseLeads(f)
	if err != nil {
		h.storageService.DeleteFile(filename)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	batch := &models.LeadBatch{
		ID:               uuid.New(),
		OriginalFileName: file.Filename,
		LeadCount:        len(leads),
		CreatedAt:        time.Now(),
	}

	if err := h.leadRepo.CreateBatch(batch, leads); err != nil {
		h.storageService.DeleteFile(filename)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to store leads",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(models.UploadLeadsResponse{
		BatchID:   batch.ID.String(),
		LeadCount: batch.LeadCount,
		Filename:  file.Filename,
	})
}
