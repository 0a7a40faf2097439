package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Work status constants (workflow states - must remain fixed)
const (
	WorkStatusOpen       = "OPEN"
	WorkStatusInProgress = "IN_PROGRESS"
	WorkStatusCompleted  = "COMPLETED"
	WorkStatusCancelled  = "CANCELLED"
)

// Work represents a non-litigation engagement (consulting, contracts,
// filings) that fee arrangements can attach to.
type Work struct {
	ID        string         `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Firm relationship (multi-tenancy)
	FirmID string `gorm:"type:uuid;not null;index" json:"firm_id"`
	Firm   Firm   `gorm:"foreignKey:FirmID" json:"firm,omitempty"`

	// Identification
	WorkNumber  string `gorm:"not null;uniqueIndex" json:"work_number"` // e.g., WRK-2026-00001
	Title       string `gorm:"not null" json:"title"`
	Description string `gorm:"type:text" json:"description"`
	ClientName  string `gorm:"not null" json:"client_name"`

	Status string `gorm:"not null;default:OPEN" json:"status"`

	// Relationships
	Honoraries []Honorary `gorm:"foreignKey:WorkID" json:"honoraries,omitempty"`
}

// BeforeCreate hook to generate UUID
func (w *Work) BeforeCreate(tx *gorm.DB) error {
	if w.ID == "" {
		w.ID = uuid.New().String()
	}
	return nil
}

// TableName specifies the table name for Work model
func (Work) TableName() string {
	return "works"
}

// IsValidWorkStatus checks if the status is valid
func IsValidWorkStatus(status string) bool {
	switch status {
	case WorkStatusOpen, WorkStatusInProgress, WorkStatusCompleted, WorkStatusCancelled:
		return true
	}
	return false
}
