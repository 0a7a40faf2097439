package services

import (
	"errors"
	"fmt"
	"lexcase_app_go/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Procedure errors
var (
	ErrProcedureNotFound = errors.New("procedure not found")
	ErrCyclicAncestry    = errors.New("procedure parent assignment would create a cycle")
)

// validateProcedureParent walks the candidate parent's ancestry and rejects
// the assignment if it reaches the procedure itself. Same write-time cycle
// discipline as the law-area tree.
func validateProcedureParent(procedureID string, candidateParentID *string, procedures []models.Procedure) error {
	if candidateParentID == nil {
		return nil
	}
	if *candidateParentID == procedureID {
		return fmt.Errorf("%w: procedure cannot be its own parent", ErrCyclicAncestry)
	}

	index := make(map[string]*models.Procedure, len(procedures))
	for i := range procedures {
		index[procedures[i].ID] = &procedures[i]
	}

	seen := make(map[string]bool)
	current := index[*candidateParentID]
	for current != nil {
		if current.ID == procedureID {
			return fmt.Errorf("%w: %s is an ancestor of the candidate parent", ErrCyclicAncestry, procedureID)
		}
		if seen[current.ID] {
			return fmt.Errorf("%w: ancestry above candidate parent is cyclic", ErrCyclicAncestry)
		}
		seen[current.ID] = true
		if current.ParentProcedureID == nil {
			break
		}
		current = index[*current.ParentProcedureID]
	}

	return nil
}

// CreateProcedure validates and persists a litigation matter for a firm
func CreateProcedure(db *gorm.DB, firmID string, procedure *models.Procedure) error {
	if procedure.Status == "" {
		procedure.Status = models.ProcedureStatusActive
	}
	if !models.IsValidProcedureStatus(procedure.Status) {
		return fmt.Errorf("invalid procedure status: %s", procedure.Status)
	}
	procedure.FirmID = firmID

	return db.Transaction(func(tx *gorm.DB) error {
		if procedure.LawAreaID != nil {
			if _, err := GetLawAreaByID(tx, firmID, *procedure.LawAreaID); err != nil {
				return err
			}
		}

		procedures, err := GetProceduresByFirm(tx, firmID)
		if err != nil {
			return err
		}
		if procedure.ID == "" {
			procedure.ID = uuid.New().String()
		}
		if err := validateProcedureParent(procedure.ID, procedure.ParentProcedureID, procedures); err != nil {
			return err
		}

		return tx.Create(procedure).Error
	})
}

// UpdateProcedureParent re-parents a procedure (appeal of, incident of)
// after the write-time cycle check
func UpdateProcedureParent(db *gorm.DB, firmID string, procedureID string, parentID *string) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var procedure models.Procedure
		err := tx.First(&procedure, "id = ? AND firm_id = ?", procedureID, firmID).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrProcedureNotFound
			}
			return err
		}

		procedures, err := GetProceduresByFirm(tx, firmID)
		if err != nil {
			return err
		}
		if err := validateProcedureParent(procedureID, parentID, procedures); err != nil {
			return err
		}

		return tx.Model(&models.Procedure{}).
			Where("id = ?", procedureID).
			Update("parent_procedure_id", parentID).Error
	})
}

// GetProceduresByFirm lists a firm's procedures
func GetProceduresByFirm(db *gorm.DB, firmID string) ([]models.Procedure, error) {
	var procedures []models.Procedure
	err := db.Where("firm_id = ?", firmID).
		Order("created_at DESC").
		Find(&procedures).Error
	return procedures, err
}
