package services

import (
	"lexcase_app_go/models"
	"log"

	"gorm.io/gorm"
)

// SeedLawAreaCatalog seeds the system law-area tree and power catalog
// (FirmID = nil, visible to every firm). Idempotent: skips when system
// areas already exist.
func SeedLawAreaCatalog(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.LawArea{}).Where("firm_id IS NULL").Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		log.Println("[SEED] System law areas already exist, skipping seed")
		return nil
	}

	roots := []models.LawArea{
		{Code: "CIVIL", Name: "Derecho Civil", SortOrder: 10, IsActive: true, IsSystem: true},
		{Code: "LABORAL", Name: "Derecho Laboral", SortOrder: 20, IsActive: true, IsSystem: true},
		{Code: "PENAL", Name: "Derecho Penal", SortOrder: 30, IsActive: true, IsSystem: true},
		{Code: "ADMINISTRATIVO", Name: "Derecho Administrativo", SortOrder: 40, IsActive: true, IsSystem: true},
		{Code: "FAMILIA", Name: "Derecho de Familia", SortOrder: 50, IsActive: true, IsSystem: true},
		{Code: "COMERCIAL", Name: "Derecho Comercial", SortOrder: 60, IsActive: true, IsSystem: true},
	}

	rootMap := make(map[string]string) // code -> ID
	for _, root := range roots {
		if err := db.Create(&root).Error; err != nil {
			return err
		}
		rootMap[root.Code] = root.ID
	}

	subAreas := []struct {
		Code       string
		Name       string
		ParentCode string
		SortOrder  int
	}{
		{"CIVIL_CONTRATOS", "Contratos", "CIVIL", 10},
		{"CIVIL_RESPONSABILIDAD", "Responsabilidad Civil", "CIVIL", 20},
		{"CIVIL_SUCESIONES", "Sucesiones", "CIVIL", 30},
		{"LABORAL_INDIVIDUAL", "Derecho Laboral Individual", "LABORAL", 10},
		{"LABORAL_COLECTIVO", "Derecho Laboral Colectivo", "LABORAL", 20},
		{"LABORAL_SEGURIDAD", "Seguridad y Salud en el Trabajo", "LABORAL", 30},
		{"LABORAL_PENSIONES", "Pensiones y Seguridad Social", "LABORAL", 40},
		{"PENAL_ESPECIAL", "Derecho Penal Especial", "PENAL", 10},
		{"PENAL_CORPORATIVO", "Derecho Penal Corporativo", "PENAL", 20},
		{"ADMIN_CONTRATACION", "Contratación Estatal", "ADMINISTRATIVO", 10},
		{"ADMIN_RESPONSABILIDAD", "Responsabilidad del Estado", "ADMINISTRATIVO", 20},
		{"FAMILIA_DIVORCIO", "Divorcio y Separación", "FAMILIA", 10},
		{"FAMILIA_CUSTODIA", "Custodia y Alimentos", "FAMILIA", 20},
		{"COMERCIAL_SOCIEDADES", "Derecho Societario", "COMERCIAL", 10},
		{"COMERCIAL_INSOLVENCIA", "Insolvencia y Reorganización", "COMERCIAL", 20},
	}

	areaMap := make(map[string]string) // code -> ID
	for code, id := range rootMap {
		areaMap[code] = id
	}
	for _, s := range subAreas {
		parentID := rootMap[s.ParentCode]
		area := models.LawArea{
			ParentAreaID: &parentID,
			Code:         s.Code,
			Name:         s.Name,
			SortOrder:    s.SortOrder,
			IsActive:     true,
			IsSystem:     true,
		}
		if err := db.Create(&area).Error; err != nil {
			return err
		}
		areaMap[area.Code] = area.ID
	}

	if err := seedSystemPowers(db, areaMap); err != nil {
		return err
	}

	log.Printf("[SEED] Seeded %d system law areas", len(areaMap))
	return nil
}

// seedSystemPowers seeds the base powers (applicable everywhere) and the
// per-area power catalog
func seedSystemPowers(db *gorm.DB, areaMap map[string]string) error {
	basePowers := []struct {
		Category    string
		Description string
	}{
		{models.PowerCategoryJudicial, "Presentar demandas y peticiones"},
		{models.PowerCategoryJudicial, "Recibir notificaciones"},
		{models.PowerCategoryAdministrative, "Radicar documentos"},
		{models.PowerCategoryExtrajudicial, "Asistir a audiencias de conciliación"},
	}
	for _, p := range basePowers {
		power := models.Power{
			Category:    p.Category,
			Description: p.Description,
			IsBase:      true,
			IsActive:    true,
		}
		if err := db.Create(&power).Error; err != nil {
			return err
		}
	}

	areaPowers := []struct {
		AreaCode    string
		Category    string
		Description string
	}{
		{"CIVIL", models.PowerCategoryJudicial, "Interponer recursos de apelación"},
		{"CIVIL", models.PowerCategoryExtrajudicial, "Celebrar transacciones"},
		{"LABORAL", models.PowerCategoryJudicial, "Interponer recursos de apelación"},
		{"LABORAL", models.PowerCategoryAdministrative, "Representar ante el Ministerio de Trabajo"},
		{"LABORAL_PENSIONES", models.PowerCategoryAdministrative, "Tramitar reconocimiento pensional"},
		{"PENAL", models.PowerCategoryJudicial, "Representar en audiencias preliminares"},
		{"ADMINISTRATIVO", models.PowerCategoryAdministrative, "Interponer recursos de reposición"},
		{"FAMILIA", models.PowerCategoryExtrajudicial, "Suscribir acuerdos de custodia"},
		{"COMERCIAL", models.PowerCategoryJudicial, "Representar en procesos de insolvencia"},
	}
	for _, p := range areaPowers {
		areaID, ok := areaMap[p.AreaCode]
		if !ok {
			continue
		}
		id := areaID
		power := models.Power{
			LawAreaID:   &id,
			Category:    p.Category,
			Description: p.Description,
			IsActive:    true,
		}
		if err := db.Create(&power).Error; err != nil {
			return err
		}
	}

	return nil
}
