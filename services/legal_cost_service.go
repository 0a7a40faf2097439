package services

import (
	"errors"
	"fmt"
	"lexcase_app_go/models"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Legal cost errors
var (
	ErrLegalCostNotFound = errors.New("legal cost ledger not found")
	ErrCostEntryNotFound = errors.New("legal cost entry not found")
	ErrInvalidPercentage = errors.New("admin fee percentage must be between 0 and 100")
	ErrInvalidCostType   = errors.New("invalid cost type")
	ErrNegativeAmount    = errors.New("cost entry amount must be non-negative")
	ErrLedgerExists      = errors.New("honorary already has a legal cost ledger")
)

// LedgerSummary aggregates a ledger's entries. Sums use exact decimal
// arithmetic to avoid currency drift.
type LedgerSummary struct {
	Total        decimal.Decimal `json:"total"`
	Paid         decimal.Decimal `json:"paid"`
	Pending      decimal.Decimal `json:"pending"`
	Overdue      decimal.Decimal `json:"overdue"`
	AdminFee     decimal.Decimal `json:"admin_fee"`
	TotalWithFee decimal.Decimal `json:"total_with_fee"`
}

// CreateLegalCost validates and persists the ledger header for an
// honorary (at most one ledger per arrangement)
func CreateLegalCost(db *gorm.DB, legalCost *models.LegalCost) error {
	if legalCost.AdminFeePercentage < 0 || legalCost.AdminFeePercentage > 100 {
		return ErrInvalidPercentage
	}

	return db.Transaction(func(tx *gorm.DB) error {
		if _, err := getHonorary(tx, legalCost.HonoraryID); err != nil {
			return err
		}

		var existing int64
		if err := tx.Model(&models.LegalCost{}).
			Where("honorary_id = ?", legalCost.HonoraryID).
			Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return ErrLedgerExists
		}

		return tx.Create(legalCost).Error
	})
}

// CostEntryOptions carries the optional fields of a new ledger entry
type CostEntryOptions struct {
	DueDate   *time.Time
	Estimated bool
	Paid      bool
}

// AddCostEntry validates and appends a line item to a ledger
func AddCostEntry(db *gorm.DB, legalCostID string, costType string, name string, amount float64, opts *CostEntryOptions) (*models.LegalCostEntry, error) {
	if !models.IsValidCostType(costType) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidCostType, costType)
	}
	if amount < 0 {
		return nil, ErrNegativeAmount
	}

	entry := &models.LegalCostEntry{
		LegalCostID: legalCostID,
		CostType:    costType,
		Name:        name,
		Amount:      amount,
	}
	if opts != nil {
		entry.DueDate = opts.DueDate
		entry.Estimated = opts.Estimated
		entry.Paid = opts.Paid
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		var ledger models.LegalCost
		if err := tx.First(&ledger, "id = ?", legalCostID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrLegalCostNotFound
			}
			return err
		}
		return tx.Create(entry).Error
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// MarkEntryPaid records a payment against an entry. A paid entry is by
// definition no longer an estimate.
func MarkEntryPaid(db *gorm.DB, entryID string, paymentDate time.Time, method string, receiptNumber string) error {
	result := db.Model(&models.LegalCostEntry{}).
		Where("id = ?", entryID).
		Updates(map[string]interface{}{
			"paid":           true,
			"estimated":      false,
			"payment_date":   paymentDate,
			"payment_method": method,
			"receipt_number": receiptNumber,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCostEntryNotFound
	}
	return nil
}

// MarkEntryUnpaid reverses a recorded payment. The estimated flag is not
// restored: the amount was confirmed by the payment and stays confirmed.
func MarkEntryUnpaid(db *gorm.DB, entryID string) error {
	result := db.Model(&models.LegalCostEntry{}).
		Where("id = ?", entryID).
		Updates(map[string]interface{}{
			"paid":           false,
			"payment_date":   nil,
			"payment_method": nil,
			"receipt_number": nil,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCostEntryNotFound
	}
	return nil
}

// GetLegalCostByHonorary retrieves the ledger (with its entries) of an
// honorary
func GetLegalCostByHonorary(db *gorm.DB, honoraryID string) (*models.LegalCost, error) {
	var legalCost models.LegalCost
	err := db.Preload("Entries", func(db *gorm.DB) *gorm.DB {
		return db.Order("due_date ASC, created_at ASC")
	}).First(&legalCost, "honorary_id = ?", honoraryID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLegalCostNotFound
		}
		return nil, err
	}
	return &legalCost, nil
}

// GetCostEntryByID retrieves one ledger entry
func GetCostEntryByID(db *gorm.DB, entryID string) (*models.LegalCostEntry, error) {
	var entry models.LegalCostEntry
	err := db.First(&entry, "id = ?", entryID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCostEntryNotFound
		}
		return nil, err
	}
	return &entry, nil
}

// SummarizeLegalCost aggregates the ledger's entries at the given
// instant: total, paid, pending, overdue, admin fee and grand total
func SummarizeLegalCost(legalCost models.LegalCost, entries []models.LegalCostEntry, now time.Time) LedgerSummary {
	summary := LedgerSummary{
		Total:   decimal.Zero,
		Paid:    decimal.Zero,
		Pending: decimal.Zero,
		Overdue: decimal.Zero,
	}

	for i := range entries {
		entry := &entries[i]
		amount := decimal.NewFromFloat(entry.Amount)
		summary.Total = summary.Total.Add(amount)
		if entry.Paid {
			summary.Paid = summary.Paid.Add(amount)
		} else {
			summary.Pending = summary.Pending.Add(amount)
		}
		if entry.IsOverdueOn(now) {
			summary.Overdue = summary.Overdue.Add(amount)
		}
	}

	percentage := decimal.NewFromFloat(legalCost.AdminFeePercentage)
	summary.AdminFee = summary.Total.Mul(percentage).Div(decimal.NewFromInt(100))
	summary.TotalWithFee = summary.Total.Add(summary.AdminFee)

	return summary
}

// SummarizeLedgerForHonorary loads an honorary's ledger and aggregates it
func SummarizeLedgerForHonorary(db *gorm.DB, honoraryID string, now time.Time) (*LedgerSummary, error) {
	legalCost, err := GetLegalCostByHonorary(db, honoraryID)
	if err != nil {
		return nil, err
	}
	summary := SummarizeLegalCost(*legalCost, legalCost.Entries, now)
	return &summary, nil
}
