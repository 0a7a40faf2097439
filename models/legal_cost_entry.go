package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Cost type constants (jurisdiction-specific expense categories)
const (
	CostTypeCourtFiling       = "court_filing"
	CostTypeJudicialDeposit   = "judicial_deposit"
	CostTypeNotaryFees        = "notary_fees"
	CostTypeRegistrationFees  = "registration_fees"
	CostTypeCertificates      = "certificates"
	CostTypeExpertWitness     = "expert_witness"
	CostTypeAppraisal         = "appraisal"
	CostTypePublicationEdict  = "publication_edict"
	CostTypeTravel            = "travel"
	CostTypeCourier           = "courier"
	CostTypeCopies            = "copies"
	CostTypeAuthentication    = "authentication"
	CostTypeApostille         = "apostille"
	CostTypeTranslation       = "translation"
	CostTypeSuretyBond        = "surety_bond"
	CostTypeAuctionFees       = "auction_fees"
	CostTypeSequestration     = "sequestration"
	CostTypeStampTax          = "stamp_tax"
	CostTypeArbitrationCenter = "arbitration_center"
	CostTypeOther             = "other"
)

// Derived entry status labels (never persisted - computed from stored
// fields plus the wall clock, see StatusOn)
const (
	CostEntryStatusPaid     = "paid"
	CostEntryStatusOverdue  = "overdue"
	CostEntryStatusUrgent   = "urgent"   // Due within the next 7 days
	CostEntryStatusUpcoming = "upcoming" // Due within the next 30 days
	CostEntryStatusPending  = "pending"
)

// LegalCostEntry is one billable/payable line item in a legal-cost ledger.
// Entries start out unpaid; paying one confirms its amount (Estimated goes
// false and stays false even if the payment is later reversed).
type LegalCostEntry struct {
	ID        string         `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	LegalCostID string    `gorm:"type:uuid;not null;index:idx_cost_entry_ledger" json:"legal_cost_id"`
	LegalCost   LegalCost `gorm:"foreignKey:LegalCostID" json:"legal_cost,omitempty"`

	CostType string  `gorm:"not null;index" json:"cost_type"`
	Name     string  `gorm:"not null" json:"name"`
	Amount   float64 `gorm:"not null" json:"amount"`

	DueDate *time.Time `gorm:"index" json:"due_date,omitempty"`

	// Payment tracking
	Paid          bool       `gorm:"not null;default:false;index" json:"paid"`
	PaymentDate   *time.Time `json:"payment_date,omitempty"`
	PaymentMethod *string    `json:"payment_method,omitempty"`
	ReceiptNumber *string    `json:"receipt_number,omitempty"`

	Estimated bool `gorm:"not null;default:false" json:"estimated"`

	// Stamped by the reminder job so each entry is reminded once
	ReminderSentAt *time.Time `json:"reminder_sent_at,omitempty"`
}

// BeforeCreate hook to generate UUID
func (e *LegalCostEntry) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	return nil
}

// TableName specifies the table name for LegalCostEntry model
func (LegalCostEntry) TableName() string {
	return "legal_cost_entries"
}

// StatusOn derives the entry status at the given instant. Comparison is
// day-granular: an entry due today is urgent, not overdue.
func (e *LegalCostEntry) StatusOn(now time.Time) string {
	if e.Paid {
		return CostEntryStatusPaid
	}
	if e.DueDate == nil {
		return CostEntryStatusPending
	}

	today := truncateToDay(now)
	due := truncateToDay(*e.DueDate)

	if due.Before(today) {
		return CostEntryStatusOverdue
	}

	days := int(due.Sub(today).Hours() / 24)
	if days <= 7 {
		return CostEntryStatusUrgent
	}
	if days <= 30 {
		return CostEntryStatusUpcoming
	}
	return CostEntryStatusPending
}

// IsOverdueOn reports whether the entry is overdue at the given instant
func (e *LegalCostEntry) IsOverdueOn(now time.Time) bool {
	return e.StatusOn(now) == CostEntryStatusOverdue
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// IsValidCostType checks if the cost type is valid
func IsValidCostType(costType string) bool {
	switch costType {
	case CostTypeCourtFiling, CostTypeJudicialDeposit, CostTypeNotaryFees,
		CostTypeRegistrationFees, CostTypeCertificates, CostTypeExpertWitness,
		CostTypeAppraisal, CostTypePublicationEdict, CostTypeTravel,
		CostTypeCourier, CostTypeCopies, CostTypeAuthentication,
		CostTypeApostille, CostTypeTranslation, CostTypeSuretyBond,
		CostTypeAuctionFees, CostTypeSequestration, CostTypeStampTax,
		CostTypeArbitrationCenter, CostTypeOther:
		return true
	}
	return false
}

// GetCostTypeDisplayName returns human-readable cost type name
func GetCostTypeDisplayName(costType string) string {
	names := map[string]string{
		CostTypeCourtFiling:       "Court Filing",
		CostTypeJudicialDeposit:   "Judicial Deposit",
		CostTypeNotaryFees:        "Notary Fees",
		CostTypeRegistrationFees:  "Registration Fees",
		CostTypeCertificates:      "Certificates",
		CostTypeExpertWitness:     "Expert Witness",
		CostTypeAppraisal:         "Appraisal",
		CostTypePublicationEdict:  "Publication / Edict",
		CostTypeTravel:            "Travel",
		CostTypeCourier:           "Courier",
		CostTypeCopies:            "Copies",
		CostTypeAuthentication:    "Authentication",
		CostTypeApostille:         "Apostille",
		CostTypeTranslation:       "Translation",
		CostTypeSuretyBond:        "Surety Bond",
		CostTypeAuctionFees:       "Auction Fees",
		CostTypeSequestration:     "Sequestration",
		CostTypeStampTax:          "Stamp Tax",
		CostTypeArbitrationCenter: "Arbitration Center",
		CostTypeOther:             "Other",
	}
	if name, ok := names[costType]; ok {
		return name
	}
	return costType
}
