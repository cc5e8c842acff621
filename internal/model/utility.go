package model

import (
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// Amounts go over the wire as JSON numbers, not quoted strings.
	decimal.MarshalJSONWithoutQuotes = true
}

// UtilityType classifies a utility bill.
type UtilityType string

const (
	UtilityTypeElectricity UtilityType = "electricity"
	UtilityTypeWater       UtilityType = "water"
	UtilityTypeGas         UtilityType = "gas"
)

// Utility represents a dated utility charge recorded against one property.
type Utility struct {
	ID         uint            `json:"id" gorm:"primaryKey"`
	PropertyID uint            `json:"propertyId" gorm:"not null;index"`
	Type       UtilityType     `json:"type" gorm:"type:varchar(20);not null"`
	Amount     decimal.Decimal `json:"amount" gorm:"type:decimal(12,2);not null"`
	Date       Date            `json:"date" gorm:"not null;index"`
	CreatedAt  time.Time       `json:"-"`
	UpdatedAt  time.Time       `json:"-"`

	// Relations
	Property *Property `json:"-" gorm:"foreignKey:PropertyID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}
