package models

import (
	"time"

	"github.com/google/uuid"
)

// LeadBatch groups the leads from a single CSV upload. The most recent
// batch is the one a scoring run operates on.
type LeadBatch struct {
	ID               uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	OriginalFileName string    `gorm:"type:text" json:"original_filename"`
	LeadCount        int       `gorm:"not null;default:0" json:"lead_count"`
	CreatedAt        time.Time `gorm:"type:timestamp;default:now()" json:"created_at"`
}

func (b *LeadBatch) TableName() string {
	return "lead_batches"
}

type Lead struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	BatchID     uuid.UUID `gorm:"type:uuid;not null;index" json:"batch_id"`
	Position    int       `gorm:"not null;default:0" json:"position"`
	Name        string    `gorm:"type:text" json:"name"`
	Role        string    `gorm:"type:text" json:"role"`
	Company     string    `gorm:"type:text" json:"company"`
	Industry    string    `gorm:"type:text" json:"industry"`
	Location    string    `gorm:"type:text" json:"location"`
	LinkedInBio string    `gorm:"type:text" json:"linkedin_bio"`
	CreatedAt   time.Time `gorm:"type:timestamp;default:now()" json:"created_at"`
}

func (l *Lead) TableName() string {
	return "leads"
}

// ProfileFields returns the six profile fields in their canonical order.
func (l *Lead) ProfileFields() []string {
	return []string{l.Name, l.Role, l.Company, l.Industry, l.Location, l.LinkedInBio}
}
