package services

import (
	"lexcase_app_go/models"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func createTestLedger(t *testing.T, db *gorm.DB, adminFeePercentage float64) (*models.Honorary, *models.LegalCost) {
	honorary := createTestHonorary(t, db)
	legalCost := models.LegalCost{
		HonoraryID:         honorary.ID,
		AdminFeePercentage: adminFeePercentage,
		ClientResponsible:  true,
	}
	assert.NoError(t, CreateLegalCost(db, &legalCost))
	return honorary, &legalCost
}

func TestCreateLegalCost_Validation(t *testing.T) {
	db := setupHonoraryTestDB()
	honorary := createTestHonorary(t, db)

	assert.ErrorIs(t, CreateLegalCost(db, &models.LegalCost{HonoraryID: honorary.ID, AdminFeePercentage: -1}), ErrInvalidPercentage)
	assert.ErrorIs(t, CreateLegalCost(db, &models.LegalCost{HonoraryID: honorary.ID, AdminFeePercentage: 101}), ErrInvalidPercentage)
	assert.ErrorIs(t, CreateLegalCost(db, &models.LegalCost{HonoraryID: "missing-id", AdminFeePercentage: 10}), ErrHonoraryNotFound)

	// Boundary percentages are valid
	ledger := models.LegalCost{HonoraryID: honorary.ID, AdminFeePercentage: 0}
	assert.NoError(t, CreateLegalCost(db, &ledger))

	// One ledger per honorary
	assert.ErrorIs(t, CreateLegalCost(db, &models.LegalCost{HonoraryID: honorary.ID, AdminFeePercentage: 100}), ErrLedgerExists)
}

func TestAddCostEntry_Validation(t *testing.T) {
	db := setupHonoraryTestDB()
	_, ledger := createTestLedger(t, db, 10)

	_, err := AddCostEntry(db, ledger.ID, "bribe", "Unknown", 100, nil)
	assert.ErrorIs(t, err, ErrInvalidCostType)

	_, err = AddCostEntry(db, ledger.ID, models.CostTypeCourtFiling, "Filing fee", -5, nil)
	assert.ErrorIs(t, err, ErrNegativeAmount)

	_, err = AddCostEntry(db, "missing-ledger", models.CostTypeCourtFiling, "Filing fee", 100, nil)
	assert.ErrorIs(t, err, ErrLegalCostNotFound)

	entry, err := AddCostEntry(db, ledger.ID, models.CostTypeCourtFiling, "Filing fee", 100, nil)
	assert.NoError(t, err)
	assert.False(t, entry.Paid)
	assert.False(t, entry.Estimated)
	assert.Nil(t, entry.DueDate)
}

func TestCostEntryStatusDerivation(t *testing.T) {
	now := time.Date(2026, 3, 15, 10, 30, 0, 0, time.UTC)

	datePtr := func(d time.Time) *time.Time { return &d }

	cases := []struct {
		name     string
		entry    models.LegalCostEntry
		expected string
	}{
		{"paid wins over everything", models.LegalCostEntry{Paid: true, DueDate: datePtr(now.AddDate(0, 0, -10))}, models.CostEntryStatusPaid},
		{"no due date is pending", models.LegalCostEntry{}, models.CostEntryStatusPending},
		{"due yesterday is overdue", models.LegalCostEntry{DueDate: datePtr(now.AddDate(0, 0, -1))}, models.CostEntryStatusOverdue},
		{"due today is urgent", models.LegalCostEntry{DueDate: datePtr(now)}, models.CostEntryStatusUrgent},
		{"due in 7 days is urgent", models.LegalCostEntry{DueDate: datePtr(now.AddDate(0, 0, 7))}, models.CostEntryStatusUrgent},
		{"due in 8 days is upcoming", models.LegalCostEntry{DueDate: datePtr(now.AddDate(0, 0, 8))}, models.CostEntryStatusUpcoming},
		{"due in 30 days is upcoming", models.LegalCostEntry{DueDate: datePtr(now.AddDate(0, 0, 30))}, models.CostEntryStatusUpcoming},
		{"due in 31 days is pending", models.LegalCostEntry{DueDate: datePtr(now.AddDate(0, 0, 31))}, models.CostEntryStatusPending},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.expected, tc.entry.StatusOn(now), tc.name)
	}

	// Day truncation: due earlier today, by clock time, is not overdue
	earlier := now.Add(-3 * time.Hour)
	entry := models.LegalCostEntry{DueDate: &earlier}
	assert.Equal(t, models.CostEntryStatusUrgent, entry.StatusOn(now))
}

func TestMarkEntryPaidAndUnpaid(t *testing.T) {
	db := setupHonoraryTestDB()
	_, ledger := createTestLedger(t, db, 10)

	yesterday := time.Now().AddDate(0, 0, -1)
	entry, err := AddCostEntry(db, ledger.ID, models.CostTypeExpertWitness, "Expert report", 250, &CostEntryOptions{
		DueDate:   &yesterday,
		Estimated: true,
	})
	assert.NoError(t, err)
	assert.Equal(t, models.CostEntryStatusOverdue, entry.StatusOn(time.Now()))

	paymentDate := time.Now()
	assert.NoError(t, MarkEntryPaid(db, entry.ID, paymentDate, "wire transfer", "RCPT-42"))

	reloaded, err := GetCostEntryByID(db, entry.ID)
	assert.NoError(t, err)
	assert.True(t, reloaded.Paid)
	assert.False(t, reloaded.Estimated)
	assert.Equal(t, models.CostEntryStatusPaid, reloaded.StatusOn(time.Now()))
	if assert.NotNil(t, reloaded.PaymentMethod) {
		assert.Equal(t, "wire transfer", *reloaded.PaymentMethod)
	}
	if assert.NotNil(t, reloaded.ReceiptNumber) {
		assert.Equal(t, "RCPT-42", *reloaded.ReceiptNumber)
	}

	assert.NoError(t, MarkEntryUnpaid(db, entry.ID))

	reloaded, err = GetCostEntryByID(db, entry.ID)
	assert.NoError(t, err)
	assert.False(t, reloaded.Paid)
	assert.Nil(t, reloaded.PaymentDate)
	assert.Nil(t, reloaded.PaymentMethod)
	assert.Nil(t, reloaded.ReceiptNumber)
	// The amount was confirmed by payment: unpaying does not make it an
	// estimate again
	assert.False(t, reloaded.Estimated)
	assert.Equal(t, models.CostEntryStatusOverdue, reloaded.StatusOn(time.Now()))

	assert.ErrorIs(t, MarkEntryPaid(db, "missing-id", paymentDate, "", ""), ErrCostEntryNotFound)
	assert.ErrorIs(t, MarkEntryUnpaid(db, "missing-id"), ErrCostEntryNotFound)
}

func TestSummarizeLegalCost(t *testing.T) {
	db := setupHonoraryTestDB()
	honorary, ledger := createTestLedger(t, db, 10)

	paid, err := AddCostEntry(db, ledger.ID, models.CostTypeCourtFiling, "Filing fee", 100, nil)
	assert.NoError(t, err)
	assert.NoError(t, MarkEntryPaid(db, paid.ID, time.Now(), "cash", ""))

	yesterday := time.Now().AddDate(0, 0, -1)
	_, err = AddCostEntry(db, ledger.ID, models.CostTypeNotaryFees, "Notary certification", 50, &CostEntryOptions{DueDate: &yesterday})
	assert.NoError(t, err)

	summary, err := SummarizeLedgerForHonorary(db, honorary.ID, time.Now())
	assert.NoError(t, err)

	assert.True(t, summary.Total.Equal(decimal.NewFromInt(150)), "total = %s", summary.Total)
	assert.True(t, summary.Paid.Equal(decimal.NewFromInt(100)), "paid = %s", summary.Paid)
	assert.True(t, summary.Pending.Equal(decimal.NewFromInt(50)), "pending = %s", summary.Pending)
	assert.True(t, summary.Overdue.Equal(decimal.NewFromInt(50)), "overdue = %s", summary.Overdue)
	assert.True(t, summary.AdminFee.Equal(decimal.NewFromInt(15)), "admin fee = %s", summary.AdminFee)
	assert.True(t, summary.TotalWithFee.Equal(decimal.NewFromInt(165)), "total with fee = %s", summary.TotalWithFee)
}

func TestSummarizeLegalCost_ExactDecimals(t *testing.T) {
	ledger := models.LegalCost{AdminFeePercentage: 10}
	entries := []models.LegalCostEntry{
		{Amount: 0.1},
		{Amount: 0.2},
	}

	summary := SummarizeLegalCost(ledger, entries, time.Now())

	// 0.1 + 0.2 must be exactly 0.3, not 0.30000000000000004
	assert.True(t, summary.Total.Equal(decimal.NewFromFloat(0.3)), "total = %s", summary.Total)
	assert.True(t, summary.AdminFee.Equal(decimal.NewFromFloat(0.03)), "admin fee = %s", summary.AdminFee)
}

func TestGetLegalCostByHonorary_EntriesOrdered(t *testing.T) {
	db := setupHonoraryTestDB()
	honorary, ledger := createTestLedger(t, db, 0)

	later := time.Now().AddDate(0, 0, 20)
	sooner := time.Now().AddDate(0, 0, 5)
	_, err := AddCostEntry(db, ledger.ID, models.CostTypeCourtFiling, "Later", 10, &CostEntryOptions{DueDate: &later})
	assert.NoError(t, err)
	_, err = AddCostEntry(db, ledger.ID, models.CostTypeNotaryFees, "Sooner", 20, &CostEntryOptions{DueDate: &sooner})
	assert.NoError(t, err)

	loaded, err := GetLegalCostByHonorary(db, honorary.ID)
	assert.NoError(t, err)
	assert.Len(t, loaded.Entries, 2)
	assert.Equal(t, "Sooner", loaded.Entries[0].Name)
	assert.Equal(t, "Later", loaded.Entries[1].Name)

	_, err = GetLegalCostByHonorary(db, "missing-id")
	assert.ErrorIs(t, err, ErrLegalCostNotFound)
}
