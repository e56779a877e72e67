package handlers

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/Vishal-jain-01/kuvakaBackendAssignment/internal/models"
	"github.com/Vishal-jain-01/kuvakaBackendAssignment/internal/repositories"
	"github.com/Vishal-jain-01/kuvakaBackendAssignment/internal/services"
)

type OfferHandler struct {
	offerRepo      repositories.OfferRepository
	storageService services.StorageService
	pdfParser      services.PDFParserService
	maxFileSize    int64
}

func NewOfferHandler(
	offerRepo repositories.OfferRepository,
	storageService services.StorageService,
	pdfParser services.PDFParserService,
	maxFileSize int64,
) *OfferHandler {
	return &OfferHandler{
		offerRepo:      offerRepo,
		storageService: storageService,
		pdfParser:      pdfParser,
		maxFileSize:    maxFileSize,
	}
}

// HandleCreateOffer handles POST /offer
func (h *OfferHandler) HandleCreateOffer(c *fiber.Ctx) error {
	var req models.OfferRequest

	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	if req.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "name is required",
		})
	}

	if len(req.ValueProps) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "value_props must contain at least one entry",
		})
	}

	offer := &models.Offer{
		ID:            uuid.New(),
		Name:          req.Name,
		ValueProps:    req.ValueProps,
		IdealUseCases: req.IdealUseCases,
		CreatedAt:     time.Now(),
	}

	if err := h.offerRepo.Create(offer); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to store offer",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Offer stored successfully",
		"offer":   offer,
	})
}

// HandleUploadBrochure handles POST /offer/brochure. The extracted PDF
// text is attached to the current offer and fed into the classification
// prompt as extra product context.
func (h *OfferHandler) HandleUploadBrochure(c *fiber.Ctx) error {
	offer, err := h.offerRepo.Current()
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "No offer uploaded. Please create an offer first.",
		})
	}

	file, err := c.FormFile("brochure")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "brochure file is required",
		})
	}

	if file.Size > h.maxFileSize {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("Brochure file too large. Max size: %d bytes", h.maxFileSize),
		})
	}

	filename, filePath, err := h.storageService.SaveFile(file, "brochure")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("failed to save brochure: %v", err),
		})
	}

	text, err := h.pdfParser.ExtractText(filePath)
	if err != nil {
		h.storageService.DeleteFile(filename)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("failed to extract brochure text: %v", err),
		})
	}

	if err := h.offerRepo.AttachBrochure(offer.ID, text); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to attach brochure to offer",
		})
	}

	return c.JSON(fiber.Map{
		"message":    "Brochure attached successfully",
		"offer_id":   offer.ID.String(),
		"characters": len(text),
	})
}
