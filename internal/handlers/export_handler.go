package handlers

import (
	"bytes"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/Vishal-jain-01/kuvakaBackendAssignment/internal/repositories"
	"github.com/Vishal-jain-01/kuvakaBackendAssignment/internal/services"
)

type ExportHandler struct {
	resultRepo repositories.ResultRepository
	csvService services.CSVService
}

func NewExportHandler(
	resultRepo repositories.ResultRepository,
	csvService services.CSVService,
) *ExportHandler {
	return &ExportHandler{
		resultRepo: resultRepo,
		csvService: csvService,
	}
}

// HandleExport handles GET /results/latest/export. Only completed runs
// are exportable; a queued or failed latest run is skipped in favor of
// the newest completed one.
func (h *ExportHandler) HandleExport(c *fiber.Ctx) error {
	run, err := h.resultRepo.LatestCompleted()
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "No completed scoring results to export",
		})
	}

	leads, err := h.resultRepo.ScoredLeads(run.ID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load scored leads",
		})
	}

	var buf bytes.Buffer
	if err := h.csvService.WriteResults(&buf, leads); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to build CSV export",
		})
	}

	c.Set(fiber.HeaderContentType, "text/csv")
	c.Set(fiber.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename="scored_leads_%s.csv"`, run.ID))

	return c.Send(buf.Bytes())
}
