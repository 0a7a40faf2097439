package services

import (
	"errors"
	"fmt"
	"lexcase_app_go/models"

	"gorm.io/gorm"
)

// Honorary errors
var (
	ErrHonoraryNotFound   = errors.New("honorary not found")
	ErrHonoraryAttachment = errors.New("honorary must be attached to exactly one of a work or a procedure")
)

// CreateHonorary validates and persists a fee arrangement. The attachment
// is exclusive: exactly one of WorkID / ProcedureID must be set.
func CreateHonorary(db *gorm.DB, honorary *models.Honorary) error {
	hasWork := honorary.WorkID != nil && *honorary.WorkID != ""
	hasProcedure := honorary.ProcedureID != nil && *honorary.ProcedureID != ""
	if hasWork == hasProcedure {
		return ErrHonoraryAttachment
	}

	if honorary.Status == "" {
		honorary.Status = models.HonoraryStatusActive
	}
	if !models.IsValidHonoraryStatus(honorary.Status) {
		return fmt.Errorf("invalid honorary status: %s", honorary.Status)
	}
	if !models.IsValidHonoraryType(honorary.HonoraryType) {
		return fmt.Errorf("invalid honorary type: %s", honorary.HonoraryType)
	}

	return db.Create(honorary).Error
}

// GetHonoraryByID retrieves an honorary with its components (in
// evaluation order) and ledger
func GetHonoraryByID(db *gorm.DB, firmID string, honoraryID string) (*models.Honorary, error) {
	var honorary models.Honorary
	err := db.
		Preload("Components", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Preload("LegalCost").
		First(&honorary, "id = ? AND firm_id = ?", honoraryID, firmID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrHonoraryNotFound
		}
		return nil, err
	}
	return &honorary, nil
}

// GetHonorariesByFirm lists a firm's honoraries, optionally filtered by
// status
func GetHonorariesByFirm(db *gorm.DB, firmID string, status string) ([]models.Honorary, error) {
	query := db.Where("firm_id = ?", firmID)
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var honoraries []models.Honorary
	err := query.Order("created_at DESC").Find(&honoraries).Error
	return honoraries, err
}

// UpdateHonoraryStatus transitions an honorary to a new status
func UpdateHonoraryStatus(db *gorm.DB, firmID string, honoraryID string, status string) error {
	if !models.IsValidHonoraryStatus(status) {
		return fmt.Errorf("invalid honorary status: %s", status)
	}

	result := db.Model(&models.Honorary{}).
		Where("id = ? AND firm_id = ?", honoraryID, firmID).
		Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrHonoraryNotFound
	}
	return nil
}

func getHonorary(db *gorm.DB, honoraryID string) (*models.Honorary, error) {
	var honorary models.Honorary
	err := db.First(&honorary, "id = ?", honoraryID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrHonoraryNotFound
		}
		return nil, err
	}
	return &honorary, nil
}
