package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Honorary status constants
const (
	HonoraryStatusActive    = "active"
	HonoraryStatusCompleted = "completed"
	HonoraryStatusCancelled = "cancelled"
)

// Honorary type constants
const (
	HonoraryTypeWork    = "work"    // Fees for work performed
	HonoraryTypeSuccess = "success" // Fees contingent on outcome
	HonoraryTypeBoth    = "both"    // Mixed arrangement
	HonoraryTypeBonus   = "bonus"   // Discretionary bonus
)

// Honorary represents an attorney-fee arrangement. It attaches to exactly
// one of a Work or a Procedure (enforced at the service layer) and owns an
// ordered list of fee components plus at most one legal-cost ledger.
type Honorary struct {
	ID        string         `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Firm relationship (multi-tenancy)
	FirmID string `gorm:"type:uuid;not null;index" json:"firm_id"`
	Firm   Firm   `gorm:"foreignKey:FirmID" json:"firm,omitempty"`

	Name         string `gorm:"not null" json:"name"`
	Status       string `gorm:"not null;default:active" json:"status"`
	HonoraryType string `gorm:"not null" json:"honorary_type"`
	Description  string `gorm:"type:text" json:"description"`

	// Attachment: exactly one of WorkID / ProcedureID must be set
	WorkID      *string    `gorm:"type:uuid;index" json:"work_id,omitempty"`
	Work        *Work      `gorm:"foreignKey:WorkID" json:"work,omitempty"`
	ProcedureID *string    `gorm:"type:uuid;index" json:"procedure_id,omitempty"`
	Procedure   *Procedure `gorm:"foreignKey:ProcedureID" json:"procedure,omitempty"`

	// Relationships
	Components []HonoraryComponent `gorm:"foreignKey:HonoraryID" json:"components,omitempty"`
	LegalCost  *LegalCost          `gorm:"foreignKey:HonoraryID" json:"legal_cost,omitempty"`
}

// BeforeCreate hook to generate UUID
func (h *Honorary) BeforeCreate(tx *gorm.DB) error {
	if h.ID == "" {
		h.ID = uuid.New().String()
	}
	return nil
}

// TableName specifies the table name for Honorary model
func (Honorary) TableName() string {
	return "honoraries"
}

// IsActive checks if the arrangement is active
func (h *Honorary) IsActive() bool {
	return h.Status == HonoraryStatusActive
}

// IsValidHonoraryStatus checks if the status is valid
func IsValidHonoraryStatus(status string) bool {
	switch status {
	case HonoraryStatusActive, HonoraryStatusCompleted, HonoraryStatusCancelled:
		return true
	}
	return false
}

// IsValidHonoraryType checks if the type is valid
func IsValidHonoraryType(honoraryType string) bool {
	switch honoraryType {
	case HonoraryTypeWork, HonoraryTypeSuccess, HonoraryTypeBoth, HonoraryTypeBonus:
		return true
	}
	return false
}
