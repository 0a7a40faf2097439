package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Procedure status constants (workflow states - must remain fixed)
const (
	ProcedureStatusActive    = "ACTIVE"
	ProcedureStatusSuspended = "SUSPENDED"
	ProcedureStatusClosed    = "CLOSED"
	ProcedureStatusArchived  = "ARCHIVED"
)

// Procedure represents a litigation matter (a judicial or administrative
// proceeding). A procedure may descend from another procedure (appeals,
// incidents); like law areas, the ancestry stores a parent pointer only
// and must stay acyclic.
type Procedure struct {
	ID        string         `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Firm relationship (multi-tenancy)
	FirmID string `gorm:"type:uuid;not null;index" json:"firm_id"`
	Firm   Firm   `gorm:"foreignKey:FirmID" json:"firm,omitempty"`

	// Identification
	FilingNumber string `gorm:"not null;index" json:"filing_number"` // Court filing number (radicado)
	Title        string `gorm:"not null" json:"title"`
	ClientName   string `gorm:"not null" json:"client_name"`

	Status string `gorm:"not null;default:ACTIVE" json:"status"`

	// Authorization scope: the law area whose powers apply to this matter
	LawAreaID *string  `gorm:"type:uuid;index" json:"law_area_id,omitempty"`
	LawArea   *LawArea `gorm:"foreignKey:LawAreaID" json:"law_area,omitempty"`

	// Ancestry (appeal of, incident of)
	ParentProcedureID *string    `gorm:"type:uuid;index" json:"parent_procedure_id,omitempty"`
	ParentProcedure   *Procedure `gorm:"foreignKey:ParentProcedureID" json:"parent_procedure,omitempty"`

	// Relationships
	Honoraries []Honorary `gorm:"foreignKey:ProcedureID" json:"honoraries,omitempty"`
}

// BeforeCreate hook to generate UUID
func (p *Procedure) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return nil
}

// TableName specifies the table name for Procedure model
func (Procedure) TableName() string {
	return "procedures"
}

// IsValidProcedureStatus checks if the status is valid
func IsValidProcedureStatus(status string) bool {
	switch status {
	case ProcedureStatusActive, ProcedureStatusSuspended, ProcedureStatusClosed, ProcedureStatusArchived:
		return true
	}
	return false
}
