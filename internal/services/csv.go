package services

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/Vishal-jain-01/kuvakaBackendAssignment/internal/models"
)

// requiredLeadColumns are the CSV header columns every lead upload must
// carry. Column order is free and extra columns are ignored; a missing
// column is a validation error, an empty cell is merely an incomplete
// field.
var requiredLeadColumns = []string{
	"name", "role", "company", "industry", "location", "linkedin_bio",
}

// exportColumns is the fixed column order of the results export.
var exportColumns = []string{
	"Name", "Role", "Company", "Industry", "Location",
	"Intent", "Score", "Rule Score", "AI Score", "Reasoning",
}

type CSVService interface {
	ParseLeads(r io.Reader) ([]models.Lead, error)
	WriteResults(w io.Writer, leads []models.ScoredLead) error
}

type csvService struct{}

func NewCSVService() CSVService {
	return &csvService{}
}

// ParseLeads implements CSVService.
func (s *csvService) ParseLeads(r io.Reader) ([]models.Lead, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	// A ragged row degrades to empty fields instead of rejecting the file.
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("CSV file is empty")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	columnIndex := make(map[string]int, len(header))
	for i, column := range header {
		columnIndex[strings.ToLower(strings.TrimSpace(column))] = i
	}

	var missing []string
	for _, column := range requiredLeadColumns {
		if _, ok := columnIndex[column]; !ok {
			missing = append(missing, column)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("CSV is missing required columns: %s", strings.Join(missing, ", "))
	}

	var leads []models.Lead
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV row: %w", err)
		}

		field := func(column string) string {
			idx := columnIndex[column]
			if idx >= len(record) {
				return ""
			}
			return strings.TrimSpace(record[idx])
		}

		leads = append(leads, models.Lead{
			Name:        field("name"),
			Role:        field("role"),
			Company:     field("company"),
			Industry:    field("industry"),
			Location:    field("location"),
			LinkedInBio: field("linkedin_bio"),
		})
	}

	if len(leads) == 0 {
		return nil, fmt.Errorf("CSV contains no lead rows")
	}

	return leads, nil
}

// WriteResults implements CSVService.
func (s *csvService) WriteResults(w io.Writer, leads []models.ScoredLead) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(exportColumns); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, lead := range leads {
		record := []string{
			lead.Name,
			lead.Role,
			lead.Company,
			lead.Industry,
			lead.Location,
			string(lead.FinalIntent),
			strconv.Itoa(lead.FinalScore),
			strconv.Itoa(lead.RuleTotal),
			strconv.Itoa(lead.AIPoints),
			lead.Reasoning,
		}

		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV: %w", err)
	}

	return nil
}
