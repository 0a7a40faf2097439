package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LegalCost is the ledger header for billable legal expenses of an
// Honorary (one ledger per arrangement).
type LegalCost struct {
	ID        string         `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	HonoraryID string   `gorm:"type:uuid;not null;uniqueIndex" json:"honorary_id"`
	Honorary   Honorary `gorm:"foreignKey:HonoraryID" json:"honorary,omitempty"`

	// Administrative surcharge applied on top of the entry total (0-100)
	AdminFeePercentage float64 `gorm:"not null;default:0" json:"admin_fee_percentage"`

	ClientResponsible bool `gorm:"not null;default:true" json:"client_responsible"`
	IncludeInInvoices bool `gorm:"not null;default:true" json:"include_in_invoices"`

	// Relationships
	Entries []LegalCostEntry `gorm:"foreignKey:LegalCostID" json:"entries,omitempty"`
}

// BeforeCreate hook to generate UUID
func (lc *LegalCost) BeforeCreate(tx *gorm.DB) error {
	if lc.ID == "" {
		lc.ID = uuid.New().String()
	}
	return nil
}

// TableName specifies the table name for LegalCost model
func (LegalCost) TableName() string {
	return "legal_costs"
}
