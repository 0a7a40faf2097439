package services

import (
	"lexcase_app_go/models"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupAreaPowerTestDB() *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		panic("failed to connect database")
	}
	db.AutoMigrate(&models.Firm{}, &models.LawArea{}, &models.Power{})
	return db
}

func strPtr(s string) *string {
	return &s
}

// buildTestForest returns Labor -> Labor/Safety plus an unrelated root
func buildTestForest() []models.LawArea {
	areas := []models.LawArea{
		{ID: "labor", Code: "LABOR", Name: "Labor"},
		{ID: "safety", Code: "SAFETY", Name: "Workplace Safety", ParentAreaID: strPtr("labor")},
		{ID: "civil", Code: "CIVIL", Name: "Civil"},
	}
	return areas
}

func TestBuildAreaIndex(t *testing.T) {
	areas := buildTestForest()

	index, err := BuildAreaIndex(areas)
	assert.NoError(t, err)
	assert.Len(t, index, 3)
	assert.Equal(t, "Labor", index["labor"].Name)
}

func TestBuildAreaIndex_CyclicInput(t *testing.T) {
	areas := []models.LawArea{
		{ID: "a", Code: "A", Name: "A", ParentAreaID: strPtr("b")},
		{ID: "b", Code: "B", Name: "B", ParentAreaID: strPtr("a")},
	}

	_, err := BuildAreaIndex(areas)
	assert.ErrorIs(t, err, ErrCyclicHierarchy)
}

func TestValidateAreaParent(t *testing.T) {
	areas := buildTestForest()

	// Valid: re-parenting civil under safety
	assert.NoError(t, ValidateAreaParent("civil", strPtr("safety"), areas))

	// Nil parent is always valid
	assert.NoError(t, ValidateAreaParent("safety", nil, areas))

	// Self-parenting
	assert.ErrorIs(t, ValidateAreaParent("labor", strPtr("labor"), areas), ErrCyclicHierarchy)

	// Any id in the node's own path is rejected: labor -> safety closes a cycle
	assert.ErrorIs(t, ValidateAreaParent("labor", strPtr("safety"), areas), ErrCyclicHierarchy)
}

func TestValidateAreaParent_DeepChain(t *testing.T) {
	// a -> b -> c -> d; making a a child of d closes the loop
	areas := []models.LawArea{
		{ID: "a", Code: "A", Name: "A"},
		{ID: "b", Code: "B", Name: "B", ParentAreaID: strPtr("a")},
		{ID: "c", Code: "C", Name: "C", ParentAreaID: strPtr("b")},
		{ID: "d", Code: "D", Name: "D", ParentAreaID: strPtr("c")},
	}

	assert.ErrorIs(t, ValidateAreaParent("a", strPtr("d"), areas), ErrCyclicHierarchy)
	assert.NoError(t, ValidateAreaParent("d", strPtr("a"), areas))
}

func TestHierarchyPathAndDepth(t *testing.T) {
	areas := buildTestForest()
	index, err := BuildAreaIndex(areas)
	assert.NoError(t, err)

	root := index["labor"]
	child := index["safety"]

	assert.Equal(t, 0, AreaDepth(root, index))
	assert.Equal(t, 1, AreaDepth(child, index))

	path := HierarchyPath(child, index)
	assert.Len(t, path, 2)
	assert.Equal(t, "labor", path[0].ID)
	assert.Equal(t, "safety", path[1].ID)

	assert.Equal(t, "Labor", AreaFullName(root, index))
	assert.Equal(t, "Labor / Workplace Safety", AreaFullName(child, index))
}

func TestResolveApplicablePowers_Root(t *testing.T) {
	areas := buildTestForest()
	powers := []models.Power{
		{ID: "p-base", Description: "File petition", Category: models.PowerCategoryJudicial, IsBase: true},
		{ID: "p-labor", Description: "Appeal", Category: models.PowerCategoryJudicial, LawAreaID: strPtr("labor")},
		{ID: "p-civil", Description: "Settle", Category: models.PowerCategoryExtrajudicial, LawAreaID: strPtr("civil")},
	}

	resolved := ResolveApplicablePowers(areas[0], powers)

	ids := resolvedIDs(resolved)
	assert.ElementsMatch(t, []string{"p-base", "p-labor"}, ids)
}

func TestResolveApplicablePowers_OverrideByKey(t *testing.T) {
	// End-to-end shadowing scenario: the sub-area's own "Appeal" hides the
	// parent's identically-keyed power
	areas := buildTestForest()
	powers := []models.Power{
		{ID: "p-base", Description: "File petition", Category: models.PowerCategoryJudicial, IsBase: true},
		{ID: "p-parent-appeal", Description: "Appeal", Category: models.PowerCategoryJudicial, LawAreaID: strPtr("labor")},
		{ID: "p-safety-appeal", Description: "Appeal", Category: models.PowerCategoryJudicial, LawAreaID: strPtr("safety")},
	}

	resolved := ResolveApplicablePowers(areas[1], powers)
	ids := resolvedIDs(resolved)
	assert.ElementsMatch(t, []string{"p-base", "p-safety-appeal"}, ids)
	assert.NotContains(t, ids, "p-parent-appeal")

	// Removing the specific power makes the parent's visible again
	resolved = ResolveApplicablePowers(areas[1], powers[:2])
	ids = resolvedIDs(resolved)
	assert.ElementsMatch(t, []string{"p-base", "p-parent-appeal"}, ids)
}

func TestResolveApplicablePowers_DifferentKeyInherited(t *testing.T) {
	// Same description, different category: not a shadow
	areas := buildTestForest()
	powers := []models.Power{
		{ID: "p-parent", Description: "Appeal", Category: models.PowerCategoryJudicial, LawAreaID: strPtr("labor")},
		{ID: "p-safety", Description: "Appeal", Category: models.PowerCategoryAdministrative, LawAreaID: strPtr("safety")},
	}

	resolved := ResolveApplicablePowers(areas[1], powers)
	assert.ElementsMatch(t, []string{"p-parent", "p-safety"}, resolvedIDs(resolved))
}

func TestResolveApplicablePowers_Deterministic(t *testing.T) {
	areas := buildTestForest()
	powers := []models.Power{
		{ID: "p3", Description: "Zeta", Category: models.PowerCategoryJudicial, LawAreaID: strPtr("safety")},
		{ID: "p1", Description: "Alpha", Category: models.PowerCategoryAdministrative, IsBase: true},
		{ID: "p2", Description: "Beta", Category: models.PowerCategoryJudicial, LawAreaID: strPtr("labor")},
	}

	first := ResolveApplicablePowers(areas[1], powers)
	second := ResolveApplicablePowers(areas[1], powers)

	assert.Equal(t, resolvedIDs(first), resolvedIDs(second))

	// Ordered by category then description
	assert.Equal(t, []string{"p1", "p2", "p3"}, resolvedIDs(first))
}

func TestPowerApplicableTo(t *testing.T) {
	areas := buildTestForest()
	labor, safety, civil := areas[0], areas[1], areas[2]

	base := models.Power{ID: "p-base", Description: "File petition", Category: models.PowerCategoryJudicial, IsBase: true}
	laborPower := models.Power{ID: "p-labor", Description: "Appeal", Category: models.PowerCategoryJudicial, LawAreaID: strPtr("labor")}
	orphan := models.Power{ID: "p-orphan", Description: "Nothing", Category: models.PowerCategoryJudicial}

	assert.True(t, PowerApplicableTo(base, labor))
	assert.True(t, PowerApplicableTo(base, civil))
	assert.True(t, PowerApplicableTo(laborPower, labor))
	// Parent-level power applies to direct children
	assert.True(t, PowerApplicableTo(laborPower, safety))
	assert.False(t, PowerApplicableTo(laborPower, civil))
	assert.False(t, PowerApplicableTo(orphan, labor))
}

func TestCreateLawArea_Persistence(t *testing.T) {
	db := setupAreaPowerTestDB()
	firm := models.Firm{Name: "Test Firm", Country: "Colombia", BillingEmail: "billing@test.com"}
	db.Create(&firm)

	area := &models.LawArea{Code: "CUSTOM", Name: "Custom Area"}
	assert.NoError(t, CreateLawArea(db, firm.ID, area))
	assert.NotEmpty(t, area.ID)

	// Duplicate code under the same parent and scope is rejected
	duplicate := &models.LawArea{Code: "CUSTOM", Name: "Another"}
	assert.ErrorIs(t, CreateLawArea(db, firm.ID, duplicate), ErrDuplicateAreaCode)

	// Same code under a different parent is fine
	child := &models.LawArea{Code: "CUSTOM", Name: "Child", ParentAreaID: &area.ID}
	assert.NoError(t, CreateLawArea(db, firm.ID, child))
}

func TestUpdateLawAreaParent_CycleRejected(t *testing.T) {
	db := setupAreaPowerTestDB()
	firm := models.Firm{Name: "Test Firm", Country: "Colombia", BillingEmail: "billing@test.com"}
	db.Create(&firm)

	parent := &models.LawArea{Code: "P", Name: "Parent"}
	assert.NoError(t, CreateLawArea(db, firm.ID, parent))
	child := &models.LawArea{Code: "C", Name: "Child", ParentAreaID: &parent.ID}
	assert.NoError(t, CreateLawArea(db, firm.ID, child))

	err := UpdateLawAreaParent(db, firm.ID, parent.ID, &child.ID)
	assert.ErrorIs(t, err, ErrCyclicHierarchy)

	// The rejected write must not have changed anything
	var reloaded models.LawArea
	db.First(&reloaded, "id = ?", parent.ID)
	assert.Nil(t, reloaded.ParentAreaID)
}

func TestDeleteLawArea_WithChildren(t *testing.T) {
	db := setupAreaPowerTestDB()
	firm := models.Firm{Name: "Test Firm", Country: "Colombia", BillingEmail: "billing@test.com"}
	db.Create(&firm)

	parent := &models.LawArea{Code: "P", Name: "Parent"}
	assert.NoError(t, CreateLawArea(db, firm.ID, parent))
	child := &models.LawArea{Code: "C", Name: "Child", ParentAreaID: &parent.ID}
	assert.NoError(t, CreateLawArea(db, firm.ID, child))

	assert.ErrorIs(t, DeleteLawArea(db, firm.ID, parent.ID), ErrAreaHasChildren)
	assert.NoError(t, DeleteLawArea(db, firm.ID, child.ID))
	assert.NoError(t, DeleteLawArea(db, firm.ID, parent.ID))
}

func TestCreatePower_OrphanRejected(t *testing.T) {
	db := setupAreaPowerTestDB()
	firm := models.Firm{Name: "Test Firm", Country: "Colombia", BillingEmail: "billing@test.com"}
	db.Create(&firm)

	orphan := &models.Power{Category: models.PowerCategoryJudicial, Description: "Appeal"}
	assert.ErrorIs(t, CreatePower(db, firm.ID, orphan), ErrOrphanPower)

	base := &models.Power{Category: models.PowerCategoryJudicial, Description: "File petition", IsBase: true}
	assert.NoError(t, CreatePower(db, firm.ID, base))
}

func TestResolvePowersForArea_DB(t *testing.T) {
	db := setupAreaPowerTestDB()
	firm := models.Firm{Name: "Test Firm", Country: "Colombia", BillingEmail: "billing@test.com"}
	db.Create(&firm)

	labor := &models.LawArea{Code: "LABOR", Name: "Labor"}
	assert.NoError(t, CreateLawArea(db, firm.ID, labor))
	safety := &models.LawArea{Code: "SAFETY", Name: "Workplace Safety", ParentAreaID: &labor.ID}
	assert.NoError(t, CreateLawArea(db, firm.ID, safety))

	base := &models.Power{Category: models.PowerCategoryJudicial, Description: "File petition", IsBase: true}
	assert.NoError(t, CreatePower(db, firm.ID, base))
	parentAppeal := &models.Power{Category: models.PowerCategoryJudicial, Description: "Appeal", LawAreaID: &labor.ID}
	assert.NoError(t, CreatePower(db, firm.ID, parentAppeal))
	safetyAppeal := &models.Power{Category: models.PowerCategoryJudicial, Description: "Appeal", LawAreaID: &safety.ID}
	assert.NoError(t, CreatePower(db, firm.ID, safetyAppeal))

	resolved, err := ResolvePowersForArea(db, firm.ID, safety.ID)
	assert.NoError(t, err)
	assert.ElementsMatch(t, []string{base.ID, safetyAppeal.ID}, resolvedIDs(resolved))
}

func resolvedIDs(powers []models.Power) []string {
	ids := make([]string, 0, len(powers))
	for _, p := range powers {
		ids = append(ids, p.ID)
	}
	return ids
}
