package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/Vishal-jain-01/kuvakaBackendAssignment/internal/models"
	"github.com/Vishal-jain-01/kuvakaBackendAssignment/internal/repositories"
)

type ResultHandler struct {
	resultRepo repositories.ResultRepository
}

func NewResultHandler(resultRepo repositories.ResultRepository) *ResultHandler {
	return &ResultHandler{
		resultRepo: resultRepo,
	}
}

// HandleGetResult handles GET /result/:id
func (h *ResultHandler) HandleGetResult(c *fiber.Ctx) error {
	idParam := c.Params("id")
	runID, err := uuid.Parse(idParam)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid result set ID format",
		})
	}

	run, err := h.resultRepo.FindByID(runID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Result set not found",
		})
	}

	return h.respondWithRun(c, run)
}

// HandleLatestResult handles GET /results/latest
func (h *ResultHandler) HandleLatestResult(c *fiber.Ctx) error {
	run, err := h.resultRepo.Latest()
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "No scoring results available yet",
		})
	}

	return h.respondWithRun(c, run)
}

func (h *ResultHandler) respondWithRun(c *fiber.Ctx, run *models.ResultSet) error {
	response := models.ResultResponse{
		ID:     run.ID.String(),
		Status: string(run.Status),
	}

	if run.Status == models.RunCompleted {
		leads, err := h.resultRepo.ScoredLeads(run.ID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to load scored leads",
			})
		}

		response.Leads = leads
		response.Errors = run.ErrorPreview
		response.Summary = &models.ScoreSummary{
			Total:         run.TotalLeads,
			HighCount:     run.HighCount,
			MediumCount:   run.MediumCount,
			LowCount:      run.LowCount,
			HighPercent:   percentOf(run.HighCount, run.TotalLeads),
			MediumPercent: percentOf(run.MediumCount, run.TotalLeads),
			LowPercent:    percentOf(run.LowCount, run.TotalLeads),
			AverageScore:  run.AverageScore,
			MaxScore:      run.MaxScore,
			MinScore:      run.MinScore,
		}
	}

	if run.Status == models.RunFailed && run.ErrorMessage != nil {
		response.ErrorMessage = run.ErrorMessage
	}

	return c.JSON(response)
}

func percentOf(count, total int) string {
	if total == 0 {
		return "0.0%"
	}
	return models.FormatPercent(count, total)
}
