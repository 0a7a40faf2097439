package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Component type constants (closed set - calculation dispatches on these)
const (
	ComponentTypeFixedFee          = "fixed_fee"
	ComponentTypeHourlyRate        = "hourly_rate"
	ComponentTypeMonthlyRetainer   = "monthly_retainer"
	ComponentTypeSuccessFee        = "success_fee"
	ComponentTypePerformanceFee    = "performance_fee"
	ComponentTypeConsultationFee   = "consultation_fee"
	ComponentTypePrevidenciarioFee = "previdenciario_fee"
	ComponentTypeSucumbenciaFee    = "sucumbencia_fee"
)

// HonoraryComponent represents one typed fee rule within an Honorary.
// The Details payload carries type-specific fields (validated against the
// component type's schema at write time); unknown extra keys are kept for
// forward compatibility.
type HonoraryComponent struct {
	ID        string         `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	HonoraryID string   `gorm:"type:uuid;not null;index:idx_component_honorary" json:"honorary_id"`
	Honorary   Honorary `gorm:"foreignKey:HonoraryID" json:"honorary,omitempty"`

	ComponentType string `gorm:"not null" json:"component_type"`
	IsActive      bool   `gorm:"not null;default:true" json:"is_active"`

	// Position defines relative ordering; appends go to max+1 and deleting
	// a middle component leaves a gap
	Position int `gorm:"not null;default:0" json:"position"`

	Details JSONMap `gorm:"type:text" json:"details"`
}

// BeforeCreate hook to generate UUID
func (c *HonoraryComponent) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	return nil
}

// TableName specifies the table name for HonoraryComponent model
func (HonoraryComponent) TableName() string {
	return "honorary_components"
}

// IsValidComponentType checks if the component type is valid
func IsValidComponentType(componentType string) bool {
	switch componentType {
	case ComponentTypeFixedFee, ComponentTypeHourlyRate, ComponentTypeMonthlyRetainer,
		ComponentTypeSuccessFee, ComponentTypePerformanceFee, ComponentTypeConsultationFee,
		ComponentTypePrevidenciarioFee, ComponentTypeSucumbenciaFee:
		return true
	}
	return false
}

// GetComponentTypeDisplayName returns human-readable component type name
func GetComponentTypeDisplayName(componentType string) string {
	names := map[string]string{
		ComponentTypeFixedFee:          "Fixed Fee",
		ComponentTypeHourlyRate:        "Hourly Rate",
		ComponentTypeMonthlyRetainer:   "Monthly Retainer",
		ComponentTypeSuccessFee:        "Success Fee",
		ComponentTypePerformanceFee:    "Performance Fee",
		ComponentTypeConsultationFee:   "Consultation Fee",
		ComponentTypePrevidenciarioFee: "Social Security Fee",
		ComponentTypeSucumbenciaFee:    "Court-Awarded Fee",
	}
	if name, ok := names[componentType]; ok {
		return name
	}
	return componentType
}

// JSONMap is a helper for storing JSON data in text columns
type JSONMap map[string]interface{}

func (j JSONMap) Value() (driver.Value, error) {
	if len(j) == 0 {
		return nil, nil
	}
	return json.Marshal(j)
}

func (j *JSONMap) Scan(value interface{}) error {
	if value == nil {
		*j = JSONMap{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, j)
	case string:
		return json.Unmarshal([]byte(v), j)
	}
	return errors.New("unsupported type for JSONMap scan")
}
