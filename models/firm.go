package models

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Firm struct {
	ID        string         `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Name         string `gorm:"not null" json:"name"`
	Slug         string `gorm:"uniqueIndex;not null" json:"slug"`
	Country      string `gorm:"not null" json:"country"`
	BillingEmail string `gorm:"not null" json:"billing_email"`
}

// BeforeCreate hook to generate UUID and slug
func (f *Firm) BeforeCreate(tx *gorm.DB) error {
	if f.ID == "" {
		f.ID = uuid.New().String()
	}
	if f.Slug == "" {
		f.Slug = generateFirmSlug(f.Name)
	}
	return nil
}

// TableName specifies the table name for Firm model
func (Firm) TableName() string {
	return "firms"
}

var slugCleanup = regexp.MustCompile(`[^a-z0-9-]+`)

// generateFirmSlug creates a URL-friendly slug from the firm name
func generateFirmSlug(name string) string {
	slug := strings.ToLower(name)
	slug = strings.ReplaceAll(slug, " ", "-")
	slug = slugCleanup.ReplaceAllString(slug, "")
	slug = strings.Trim(slug, "-")
	if slug == "" {
		slug = "firm-" + uuid.New().String()[:8]
	}
	return slug
}
