package models

import (
	"time"

	"github.com/google/uuid"
)

type Offer struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Name          string    `gorm:"type:text;not null" json:"name"`
	ValueProps    []string  `gorm:"type:jsonb;serializer:json" json:"value_props"`
	IdealUseCases []string  `gorm:"type:jsonb;serializer:json" json:"ideal_use_cases"`
	BrochureText  string    `gorm:"type:text" json:"-"`
	CreatedAt     time.Time `gorm:"type:timestamp;default:now()" json:"created_at"`
}

func (o *Offer) TableName() string {
	return "offers"
}
