package models

type OfferRequest struct {
	Name          string   `json:"name"`
	ValueProps    []string `json:"value_props"`
	IdealUseCases []string `json:"ideal_use_cases"`
}

type UploadLeadsResponse struct {
	BatchID   string `json:"batch_id"`
	LeadCount int    `json:"lead_count"`
	Filename  string `json:"filename"`
}

type ScoreResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

type ResultResponse struct {
	ID           string        `json:"id"`
	Status       string        `json:"status"`
	Summary      *ScoreSummary `json:"summary,omitempty"`
	Leads        []ScoredLead  `json:"leads,omitempty"`
	Errors       []string      `json:"errors,omitempty"`
	ErrorMessage *string       `json:"error_message,omitempty"`
}
