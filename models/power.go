package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Power category constants (fixed taxonomy)
const (
	PowerCategoryAdministrative = "administrative"
	PowerCategoryJudicial       = "judicial"
	PowerCategoryExtrajudicial  = "extrajudicial"
)

// Power represents a procedural authorization grantable for a law area.
// Base powers apply everywhere regardless of area; every other power must
// reference the law area it belongs to. A nil FirmID marks a system power.
type Power struct {
	ID        string         `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Owning scope (nil = system catalog)
	FirmID *string `gorm:"type:uuid;index" json:"firm_id,omitempty"`
	Firm   *Firm   `gorm:"foreignKey:FirmID" json:"firm,omitempty"`

	// Area relationship (required unless IsBase)
	LawAreaID *string  `gorm:"type:uuid;index" json:"law_area_id,omitempty"`
	LawArea   *LawArea `gorm:"foreignKey:LawAreaID" json:"law_area,omitempty"`

	Category    string `gorm:"not null;index" json:"category"`
	Description string `gorm:"not null" json:"description"`
	IsBase      bool   `gorm:"not null;default:false" json:"is_base"`
	IsActive    bool   `gorm:"not null;default:true" json:"is_active"`
}

// BeforeCreate hook to generate UUID
func (p *Power) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return nil
}

// TableName specifies the table name for Power model
func (Power) TableName() string {
	return "powers"
}

// PowerKey identifies a power for override purposes: a sub-area power with
// the same key as a parent-area power shadows the parent's entry.
type PowerKey struct {
	Description string
	Category    string
}

// Key returns the override key for the power
func (p *Power) Key() PowerKey {
	return PowerKey{Description: p.Description, Category: p.Category}
}

// IsValidPowerCategory checks if the category is valid
func IsValidPowerCategory(category string) bool {
	switch category {
	case PowerCategoryAdministrative, PowerCategoryJudicial, PowerCategoryExtrajudicial:
		return true
	}
	return false
}

// GetPowerCategoryDisplayName returns human-readable category name
func GetPowerCategoryDisplayName(category string) string {
	names := map[string]string{
		PowerCategoryAdministrative: "Administrative",
		PowerCategoryJudicial:       "Judicial",
		PowerCategoryExtrajudicial:  "Extrajudicial",
	}
	if name, ok := names[category]; ok {
		return name
	}
	return category
}
