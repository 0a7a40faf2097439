package jobs

import (
	"lexcase_app_go/config"
	"lexcase_app_go/models"
	"lexcase_app_go/services"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupReminderTestDB(t *testing.T) (*gorm.DB, *models.LegalCost) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		panic("failed to connect database")
	}
	db.AutoMigrate(
		&models.Firm{}, &models.Work{}, &models.Procedure{},
		&models.Honorary{}, &models.HonoraryComponent{},
		&models.LegalCost{}, &models.LegalCostEntry{},
	)

	firm := models.Firm{Name: "Test Firm", Country: "Colombia", BillingEmail: "billing@test.com"}
	assert.NoError(t, db.Create(&firm).Error)
	work := models.Work{FirmID: firm.ID, WorkNumber: "WRK-001", Title: "Contract review", ClientName: "Acme"}
	assert.NoError(t, db.Create(&work).Error)
	honorary := models.Honorary{FirmID: firm.ID, Name: "Work fees", HonoraryType: models.HonoraryTypeWork, WorkID: &work.ID}
	assert.NoError(t, services.CreateHonorary(db, &honorary))
	legalCost := models.LegalCost{HonoraryID: honorary.ID, AdminFeePercentage: 0}
	assert.NoError(t, services.CreateLegalCost(db, &legalCost))

	return db, &legalCost
}

func reminderTestConfig() *config.Config {
	return &config.Config{
		EmailTestMode: true,
		AppURL:        "http://localhost:8080",
	}
}

func TestSendCostDueReminders(t *testing.T) {
	db, ledger := setupReminderTestDB(t)

	soon := time.Now().UTC().AddDate(0, 0, 3)
	overdue := time.Now().UTC().AddDate(0, 0, -2)
	farOut := time.Now().UTC().AddDate(0, 0, 60)

	dueSoon, err := services.AddCostEntry(db, ledger.ID, models.CostTypeCourtFiling, "Filing fee", 100, &services.CostEntryOptions{DueDate: &soon})
	assert.NoError(t, err)
	late, err := services.AddCostEntry(db, ledger.ID, models.CostTypeNotaryFees, "Notary certification", 50, &services.CostEntryOptions{DueDate: &overdue})
	assert.NoError(t, err)
	notYet, err := services.AddCostEntry(db, ledger.ID, models.CostTypeTravel, "Hearing travel", 80, &services.CostEntryOptions{DueDate: &farOut})
	assert.NoError(t, err)
	paid, err := services.AddCostEntry(db, ledger.ID, models.CostTypeCopies, "Copies", 10, &services.CostEntryOptions{DueDate: &overdue, Paid: true})
	assert.NoError(t, err)
	noDueDate, err := services.AddCostEntry(db, ledger.ID, models.CostTypeOther, "Misc", 5, nil)
	assert.NoError(t, err)

	SendCostDueReminders(db, reminderTestConfig())

	reminded := func(id string) bool {
		entry, err := services.GetCostEntryByID(db, id)
		assert.NoError(t, err)
		return entry.ReminderSentAt != nil
	}

	assert.True(t, reminded(dueSoon.ID))
	assert.True(t, reminded(late.ID))
	assert.False(t, reminded(notYet.ID))
	assert.False(t, reminded(paid.ID))
	assert.False(t, reminded(noDueDate.ID))
}

func TestSendCostDueReminders_OncePerEntry(t *testing.T) {
	db, ledger := setupReminderTestDB(t)

	overdue := time.Now().UTC().AddDate(0, 0, -2)
	entry, err := services.AddCostEntry(db, ledger.ID, models.CostTypeCourtFiling, "Filing fee", 100, &services.CostEntryOptions{DueDate: &overdue})
	assert.NoError(t, err)

	cfg := reminderTestConfig()
	SendCostDueReminders(db, cfg)

	first, err := services.GetCostEntryByID(db, entry.ID)
	assert.NoError(t, err)
	assert.NotNil(t, first.ReminderSentAt)
	stamp := *first.ReminderSentAt

	SendCostDueReminders(db, cfg)

	second, err := services.GetCostEntryByID(db, entry.ID)
	assert.NoError(t, err)
	if assert.NotNil(t, second.ReminderSentAt) {
		assert.Equal(t, stamp.Unix(), second.ReminderSentAt.Unix())
	}
}

func TestSendCostDueReminders_SkipsFirmWithoutBillingEmail(t *testing.T) {
	db, ledger := setupReminderTestDB(t)

	assert.NoError(t, db.Model(&models.Firm{}).Where("1 = 1").Update("billing_email", "").Error)

	overdue := time.Now().UTC().AddDate(0, 0, -2)
	entry, err := services.AddCostEntry(db, ledger.ID, models.CostTypeCourtFiling, "Filing fee", 100, &services.CostEntryOptions{DueDate: &overdue})
	assert.NoError(t, err)

	SendCostDueReminders(db, reminderTestConfig())

	reloaded, err := services.GetCostEntryByID(db, entry.ID)
	assert.NoError(t, err)
	assert.Nil(t, reloaded.ReminderSentAt)
}
