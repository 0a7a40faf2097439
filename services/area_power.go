package services

import (
	"errors"
	"fmt"
	"lexcase_app_go/models"
	"sort"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Area and power errors
var (
	ErrCyclicHierarchy   = errors.New("law area parent assignment would create a cycle")
	ErrOrphanPower       = errors.New("non-base power must reference a law area")
	ErrAreaHasChildren   = errors.New("law area still has child areas")
	ErrLawAreaNotFound   = errors.New("law area not found")
	ErrPowerNotFound     = errors.New("power not found")
	ErrDuplicateAreaCode = errors.New("law area code already in use under this parent")
)

// BuildAreaIndex builds the id -> area index for a snapshot of law areas
// and verifies the forest is acyclic: walking the parent chain from any
// node must never revisit an id. Parent ids pointing outside the snapshot
// terminate the walk (referential integrity is the persistence layer's
// concern, not ours).
func BuildAreaIndex(areas []models.LawArea) (map[string]*models.LawArea, error) {
	index := make(map[string]*models.LawArea, len(areas))
	for i := range areas {
		index[areas[i].ID] = &areas[i]
	}

	for id := range index {
		seen := make(map[string]bool)
		current := index[id]
		for current != nil {
			if seen[current.ID] {
				return nil, fmt.Errorf("%w: area %s is its own ancestor", ErrCyclicHierarchy, current.ID)
			}
			seen[current.ID] = true
			if current.ParentAreaID == nil {
				break
			}
			current = index[*current.ParentAreaID]
		}
	}

	return index, nil
}

// ValidateAreaParent checks that assigning candidateParentID as the parent
// of areaID keeps the forest acyclic. It walks up from the candidate
// parent: reaching areaID means the assignment would close a cycle. Runs
// at write time, before the row is persisted.
func ValidateAreaParent(areaID string, candidateParentID *string, areas []models.LawArea) error {
	if candidateParentID == nil {
		return nil
	}
	if *candidateParentID == areaID {
		return fmt.Errorf("%w: area cannot be its own parent", ErrCyclicHierarchy)
	}

	index := make(map[string]*models.LawArea, len(areas))
	for i := range areas {
		index[areas[i].ID] = &areas[i]
	}

	seen := make(map[string]bool)
	current := index[*candidateParentID]
	for current != nil {
		if current.ID == areaID {
			return fmt.Errorf("%w: %s is an ancestor of the candidate parent", ErrCyclicHierarchy, areaID)
		}
		if seen[current.ID] {
			// Pre-existing cycle above the candidate parent; reject rather
			// than loop forever
			return fmt.Errorf("%w: hierarchy above candidate parent is cyclic", ErrCyclicHierarchy)
		}
		seen[current.ID] = true
		if current.ParentAreaID == nil {
			break
		}
		current = index[*current.ParentAreaID]
	}

	return nil
}

// HierarchyPath returns the areas from the root down to (and including)
// the given area. The index must come from BuildAreaIndex so the walk is
// bounded.
func HierarchyPath(area *models.LawArea, index map[string]*models.LawArea) []models.LawArea {
	var reversed []models.LawArea
	current := area
	for current != nil {
		reversed = append(reversed, *current)
		if current.ParentAreaID == nil {
			break
		}
		current = index[*current.ParentAreaID]
	}

	path := make([]models.LawArea, 0, len(reversed))
	for i := len(reversed) - 1; i >= 0; i-- {
		path = append(path, reversed[i])
	}
	return path
}

// AreaDepth returns 0 for roots, parent depth + 1 otherwise
func AreaDepth(area *models.LawArea, index map[string]*models.LawArea) int {
	depth := 0
	current := area
	for current != nil && current.ParentAreaID != nil {
		parent := index[*current.ParentAreaID]
		if parent == nil {
			break
		}
		depth++
		current = parent
	}
	return depth
}

// AreaFullName renders the root-to-node path as a display name,
// e.g. "Derecho Laboral / Seguridad y Salud en el Trabajo"
func AreaFullName(area *models.LawArea, index map[string]*models.LawArea) string {
	path := HierarchyPath(area, index)
	name := ""
	for i, node := range path {
		if i > 0 {
			name += " / "
		}
		name += node.Name
	}
	return name
}

// ResolveApplicablePowers computes the exact set of powers that apply to
// an area:
//   - base powers always apply
//   - powers attached to the area itself apply
//   - powers attached to the parent area are inherited, except where the
//     area has its own power with the same (description, category) key -
//     the area's entry shadows the parent's (override-by-key, not by id)
//
// The result is deduplicated by id and ordered by category then
// description, so two calls on the same snapshot are identical.
func ResolveApplicablePowers(area models.LawArea, powers []models.Power) []models.Power {
	specificKeys := make(map[models.PowerKey]bool)
	for i := range powers {
		p := &powers[i]
		if p.LawAreaID != nil && *p.LawAreaID == area.ID {
			specificKeys[p.Key()] = true
		}
	}

	var result []models.Power
	seen := make(map[string]bool)
	add := func(p models.Power) {
		if !seen[p.ID] {
			seen[p.ID] = true
			result = append(result, p)
		}
	}

	for _, p := range powers {
		if p.IsBase {
			add(p)
		}
	}
	for _, p := range powers {
		if p.LawAreaID != nil && *p.LawAreaID == area.ID {
			add(p)
		}
	}
	if area.ParentAreaID != nil {
		for _, p := range powers {
			if p.IsBase || p.LawAreaID == nil {
				continue
			}
			if *p.LawAreaID == *area.ParentAreaID && !specificKeys[p.Key()] {
				add(p)
			}
		}
	}

	sort.SliceStable(result, func(i, j int) bool {
		if result[i].Category != result[j].Category {
			return result[i].Category < result[j].Category
		}
		return result[i].Description < result[j].Description
	})

	return result
}

// PowerApplicableTo is the point check used when validating a power
// assignment: base powers apply everywhere, area powers apply to their
// own area and to its direct children.
func PowerApplicableTo(power models.Power, area models.LawArea) bool {
	if power.IsBase {
		return true
	}
	if power.LawAreaID == nil {
		return false
	}
	if *power.LawAreaID == area.ID {
		return true
	}
	if area.ParentAreaID != nil && *power.LawAreaID == *area.ParentAreaID {
		return true
	}
	return false
}

// --- Persistence wrappers ---

// GetLawAreasForFirm fetches the active law areas visible to a firm: the
// system catalog plus the firm's own custom areas
func GetLawAreasForFirm(db *gorm.DB, firmID string) ([]models.LawArea, error) {
	var areas []models.LawArea
	err := db.
		Where("firm_id IS NULL OR firm_id = ?", firmID).
		Where("is_active = ?", true).
		Order("sort_order ASC, name ASC").
		Find(&areas).Error
	return areas, err
}

// GetLawAreaByID fetches one law area visible to the firm
func GetLawAreaByID(db *gorm.DB, firmID string, areaID string) (*models.LawArea, error) {
	var area models.LawArea
	err := db.
		Where("firm_id IS NULL OR firm_id = ?", firmID).
		First(&area, "id = ?", areaID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLawAreaNotFound
		}
		return nil, err
	}
	return &area, nil
}

// CreateLawArea validates and persists a custom law area for a firm. The
// parent chain and code uniqueness are checked against the current
// snapshot inside one transaction.
func CreateLawArea(db *gorm.DB, firmID string, area *models.LawArea) error {
	area.FirmID = &firmID
	area.IsSystem = false

	return db.Transaction(func(tx *gorm.DB) error {
		areas, err := GetLawAreasForFirm(tx, firmID)
		if err != nil {
			return err
		}

		if area.ID == "" {
			// Pre-assign so the cycle check can reason about the new node
			area.ID = uuid.New().String()
		}
		if err := ValidateAreaParent(area.ID, area.ParentAreaID, areas); err != nil {
			return err
		}
		if err := checkAreaCodeUnique(areas, area); err != nil {
			return err
		}

		return tx.Create(area).Error
	})
}

// UpdateLawAreaParent re-parents an area after the write-time cycle check
func UpdateLawAreaParent(db *gorm.DB, firmID string, areaID string, parentID *string) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if _, err := GetLawAreaByID(tx, firmID, areaID); err != nil {
			return err
		}

		areas, err := GetLawAreasForFirm(tx, firmID)
		if err != nil {
			return err
		}
		if err := ValidateAreaParent(areaID, parentID, areas); err != nil {
			return err
		}

		return tx.Model(&models.LawArea{}).
			Where("id = ?", areaID).
			Update("parent_area_id", parentID).Error
	})
}

// DeleteLawArea removes a firm's custom area. Areas with children cannot
// be destroyed; children must be reassigned or deleted first.
func DeleteLawArea(db *gorm.DB, firmID string, areaID string) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var area models.LawArea
		err := tx.First(&area, "id = ? AND firm_id = ?", areaID, firmID).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrLawAreaNotFound
			}
			return err
		}

		var children int64
		if err := tx.Model(&models.LawArea{}).
			Where("parent_area_id = ?", areaID).
			Count(&children).Error; err != nil {
			return err
		}
		if children > 0 {
			return ErrAreaHasChildren
		}

		return tx.Delete(&area).Error
	})
}

// GetPowersForFirm fetches the active powers visible to a firm
func GetPowersForFirm(db *gorm.DB, firmID string) ([]models.Power, error) {
	var powers []models.Power
	err := db.
		Where("firm_id IS NULL OR firm_id = ?", firmID).
		Where("is_active = ?", true).
		Order("category ASC, description ASC").
		Find(&powers).Error
	return powers, err
}

// CreatePower validates and persists a custom power for a firm
func CreatePower(db *gorm.DB, firmID string, power *models.Power) error {
	if !power.IsBase && power.LawAreaID == nil {
		return ErrOrphanPower
	}
	if !models.IsValidPowerCategory(power.Category) {
		return fmt.Errorf("invalid power category: %s", power.Category)
	}
	power.FirmID = &firmID
	return db.Create(power).Error
}

// ResolvePowersForArea loads the firm's snapshot and resolves the powers
// applicable to one area
func ResolvePowersForArea(db *gorm.DB, firmID string, areaID string) ([]models.Power, error) {
	area, err := GetLawAreaByID(db, firmID, areaID)
	if err != nil {
		return nil, err
	}
	powers, err := GetPowersForFirm(db, firmID)
	if err != nil {
		return nil, err
	}
	return ResolveApplicablePowers(*area, powers), nil
}

// GetAreaHierarchyPath loads the firm's snapshot and returns the
// root-to-node path for one area
func GetAreaHierarchyPath(db *gorm.DB, firmID string, areaID string) ([]models.LawArea, error) {
	area, err := GetLawAreaByID(db, firmID, areaID)
	if err != nil {
		return nil, err
	}
	areas, err := GetLawAreasForFirm(db, firmID)
	if err != nil {
		return nil, err
	}
	index, err := BuildAreaIndex(areas)
	if err != nil {
		return nil, err
	}
	if _, ok := index[area.ID]; !ok {
		// Inactive areas are not part of the visible snapshot but still
		// have a path
		index[area.ID] = area
	}
	return HierarchyPath(area, index), nil
}

func checkAreaCodeUnique(areas []models.LawArea, candidate *models.LawArea) error {
	for i := range areas {
		existing := &areas[i]
		if existing.ID == candidate.ID || existing.Code != candidate.Code {
			continue
		}
		if !sameParent(existing.ParentAreaID, candidate.ParentAreaID) {
			continue
		}
		if sameScope(existing.FirmID, candidate.FirmID) {
			return ErrDuplicateAreaCode
		}
	}
	return nil
}

func sameParent(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func sameScope(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
