package model

import "time"

// PropertyType classifies a managed property.
type PropertyType string

const (
	PropertyTypeResidential PropertyType = "residential"
	PropertyTypeCommercial  PropertyType = "commercial"
)

// Property represents a managed real-estate unit.
type Property struct {
	ID        uint         `json:"id" gorm:"primaryKey"`
	Name      string       `json:"name" gorm:"size:255;not null;index"`
	Address   string       `json:"address" gorm:"size:500;not null"`
	Type      PropertyType `json:"type" gorm:"type:varchar(20);not null;index"`
	CreatedAt time.Time    `json:"-"`
	UpdatedAt time.Time    `json:"-"`
}
