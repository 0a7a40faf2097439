package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LawArea represents a node in the legal subject-matter taxonomy
// (e.g., "Derecho Laboral" -> "Seguridad y Salud en el Trabajo").
// Areas form a forest: each node stores a parent pointer only and the
// children index is derived on demand. A nil FirmID marks a
// system-provided area visible to every firm; a non-nil FirmID marks a
// custom area owned by that firm.
type LawArea struct {
	ID        string         `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Owning scope (nil = system catalog)
	FirmID *string `gorm:"type:uuid;index" json:"firm_id,omitempty"`
	Firm   *Firm   `gorm:"foreignKey:FirmID" json:"firm,omitempty"`

	// Hierarchy (parent pointer only; must stay acyclic)
	ParentAreaID *string  `gorm:"type:uuid;index" json:"parent_area_id,omitempty"`
	ParentArea   *LawArea `gorm:"foreignKey:ParentAreaID" json:"parent_area,omitempty"`

	// Area metadata
	Code        string `gorm:"not null;index" json:"code"` // Unique within (parent, owning scope)
	Name        string `gorm:"not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`
	SortOrder   int    `gorm:"not null;default:0" json:"sort_order"`
	IsActive    bool   `gorm:"not null;default:true" json:"is_active"`
	IsSystem    bool   `gorm:"not null;default:false" json:"is_system"` // Prevents deletion of seeded areas
}

// BeforeCreate hook to generate UUID
func (a *LawArea) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	return nil
}

// TableName specifies the table name for LawArea model
func (LawArea) TableName() string {
	return "law_areas"
}

// IsRoot reports whether the area is a top-level area
func (a *LawArea) IsRoot() bool {
	return a.ParentAreaID == nil
}

// IsCustom reports whether the area belongs to a firm rather than the
// system catalog
func (a *LawArea) IsCustom() bool {
	return a.FirmID != nil
}
