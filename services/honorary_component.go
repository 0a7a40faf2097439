package services

import (
	"errors"
	"fmt"
	"lexcase_app_go/models"
	"strings"

	"gorm.io/gorm"
)

// Component errors
var (
	ErrComponentNotFound    = errors.New("honorary component not found")
	ErrUnknownComponentType = errors.New("unknown component type")
)

// MissingFieldError reports a required detail field that is absent
type MissingFieldError struct {
	ComponentType string
	Field         string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("%s: missing required field %q", e.ComponentType, e.Field)
}

// InvalidTypeError reports a detail field with the wrong value type
type InvalidTypeError struct {
	ComponentType string
	Field         string
	Expected      string
}

func (e *InvalidTypeError) Error() string {
	return fmt.Sprintf("%s: field %q must be %s", e.ComponentType, e.Field, e.Expected)
}

// ComponentValidationError bundles every schema violation found on one
// component so handlers can render field-level messages
type ComponentValidationError struct {
	Errors []error
}

func (e *ComponentValidationError) Error() string {
	msgs := make([]string, len(e.Errors))
	for i, err := range e.Errors {
		msgs[i] = err.Error()
	}
	return "invalid component details: " + strings.Join(msgs, "; ")
}

// ComponentDetails is the closed set of typed detail payloads, one case
// per component type. Total returns the upfront value of the component,
// or nil when the basis (a future judgment, award or consultation count)
// is not yet known - distinct from 0.
type ComponentDetails interface {
	Total() *float64
}

type FixedFeeDetails struct {
	Amount       float64
	Installments int    // optional
	PaymentTerms string // optional
}

func (d FixedFeeDetails) Total() *float64 {
	amount := d.Amount
	return &amount
}

type HourlyRateDetails struct {
	Rate           float64
	EstimatedHours float64 // optional, 0 when absent
}

func (d HourlyRateDetails) Total() *float64 {
	total := d.Rate * d.EstimatedHours
	return &total
}

type MonthlyRetainerDetails struct {
	MonthlyAmount float64
	Months        float64 // optional, 1 when absent
}

func (d MonthlyRetainerDetails) Total() *float64 {
	months := d.Months
	if months == 0 {
		months = 1
	}
	total := d.MonthlyAmount * months
	return &total
}

type PrevidenciarioFeeDetails struct {
	Percentage           float64
	MonthlyIncomeAverage float64 // optional, 0 when absent
	BenefitMonths        float64 // optional, 0 when absent
}

func (d PrevidenciarioFeeDetails) Total() *float64 {
	total := d.MonthlyIncomeAverage * d.BenefitMonths * d.Percentage / 100
	return &total
}

type SuccessFeeDetails struct {
	Percentage float64 // applied to a future success amount
}

func (d SuccessFeeDetails) Total() *float64 { return nil }

type PerformanceFeeDetails struct {
	Milestones []interface{}
}

func (d PerformanceFeeDetails) Total() *float64 { return nil }

type ConsultationFeeDetails struct {
	RatePerConsultation float64
}

func (d ConsultationFeeDetails) Total() *float64 { return nil }

type SucumbenciaFeeDetails struct {
	Percentage float64 // applied to a future court award
}

func (d SucumbenciaFeeDetails) Total() *float64 { return nil }

// DecodeComponentDetails validates the raw details payload against the
// schema of the component type and converts it into the matching typed
// payload. Every violation is collected; unknown extra keys are tolerated
// for forward compatibility. Writes must be rejected on any violation.
func DecodeComponentDetails(componentType string, details models.JSONMap) (ComponentDetails, []error) {
	var errs []error

	requireNumber := func(field string) float64 {
		value, present := details[field]
		if !present {
			errs = append(errs, &MissingFieldError{ComponentType: componentType, Field: field})
			return 0
		}
		number, ok := detailNumber(value)
		if !ok {
			errs = append(errs, &InvalidTypeError{ComponentType: componentType, Field: field, Expected: "numeric"})
			return 0
		}
		return number
	}
	optionalNumber := func(field string, fallback float64) float64 {
		value, present := details[field]
		if !present {
			return fallback
		}
		number, ok := detailNumber(value)
		if !ok {
			errs = append(errs, &InvalidTypeError{ComponentType: componentType, Field: field, Expected: "numeric"})
			return fallback
		}
		return number
	}
	requireArray := func(field string) []interface{} {
		value, present := details[field]
		if !present {
			errs = append(errs, &MissingFieldError{ComponentType: componentType, Field: field})
			return nil
		}
		array, ok := value.([]interface{})
		if !ok {
			errs = append(errs, &InvalidTypeError{ComponentType: componentType, Field: field, Expected: "an array"})
			return nil
		}
		return array
	}

	var decoded ComponentDetails
	switch componentType {
	case models.ComponentTypeFixedFee:
		payload := FixedFeeDetails{Amount: requireNumber("amount")}
		payload.Installments = int(optionalNumber("installments", 0))
		if terms, ok := details["paymentTerms"].(string); ok {
			payload.PaymentTerms = terms
		}
		decoded = payload
	case models.ComponentTypeHourlyRate:
		decoded = HourlyRateDetails{
			Rate:           requireNumber("rate"),
			EstimatedHours: optionalNumber("estimatedHours", 0),
		}
	case models.ComponentTypeMonthlyRetainer:
		decoded = MonthlyRetainerDetails{
			MonthlyAmount: requireNumber("monthlyAmount"),
			Months:        optionalNumber("months", 1),
		}
	case models.ComponentTypeSuccessFee:
		decoded = SuccessFeeDetails{Percentage: requireNumber("percentage")}
	case models.ComponentTypePerformanceFee:
		decoded = PerformanceFeeDetails{Milestones: requireArray("milestones")}
	case models.ComponentTypeConsultationFee:
		decoded = ConsultationFeeDetails{RatePerConsultation: requireNumber("ratePerConsultation")}
	case models.ComponentTypePrevidenciarioFee:
		decoded = PrevidenciarioFeeDetails{
			Percentage:           requireNumber("percentage"),
			MonthlyIncomeAverage: optionalNumber("monthlyIncomeAverage", 0),
			BenefitMonths:        optionalNumber("benefitMonths", 0),
		}
	case models.ComponentTypeSucumbenciaFee:
		decoded = SucumbenciaFeeDetails{Percentage: requireNumber("percentage")}
	default:
		errs = append(errs, fmt.Errorf("%w: %s", ErrUnknownComponentType, componentType))
	}

	if len(errs) > 0 {
		return nil, errs
	}
	return decoded, nil
}

// ValidateComponentDetails checks the raw details payload against the
// schema of its component type without keeping the decoded payload
func ValidateComponentDetails(componentType string, details models.JSONMap) []error {
	_, errs := DecodeComponentDetails(componentType, details)
	return errs
}

// ComponentTotal calculates the upfront value of a component. A nil
// result means "not calculable without external input" and is distinct
// from 0; it is also returned for components whose payload no longer
// decodes (schema violations are rejected at write time, so that case is
// a bypassed validation, not a normal path).
func ComponentTotal(component models.HonoraryComponent) *float64 {
	decoded, errs := DecodeComponentDetails(component.ComponentType, component.Details)
	if len(errs) > 0 {
		return nil
	}
	return decoded.Total()
}

// HonoraryEstimatedValue sums the calculable totals of the active
// components. Components whose basis is still unknown contribute 0, so
// the aggregate is a floor estimate, not an authoritative total; callers
// must present it as such.
func HonoraryEstimatedValue(honorary models.Honorary) float64 {
	total := 0.0
	for _, component := range honorary.Components {
		if !component.IsActive {
			continue
		}
		if value := ComponentTotal(component); value != nil {
			total += *value
		}
	}
	return total
}

// FormatComponentDetails builds the per-type display projection for a
// component. Pure presentation, no side effects; totals that depend on a
// future outcome render as "not yet determinable" rather than zero.
func FormatComponentDetails(component models.HonoraryComponent) map[string]interface{} {
	out := map[string]interface{}{
		"component_type": component.ComponentType,
		"label":          models.GetComponentTypeDisplayName(component.ComponentType),
	}

	decoded, errs := DecodeComponentDetails(component.ComponentType, component.Details)
	if len(errs) > 0 {
		return out
	}

	switch payload := decoded.(type) {
	case FixedFeeDetails:
		out["amount"] = formatMoney(payload.Amount)
		if payload.Installments > 0 {
			out["installments"] = payload.Installments
		}
		if payload.PaymentTerms != "" {
			out["payment_terms"] = payload.PaymentTerms
		}
	case HourlyRateDetails:
		out["rate"] = formatMoney(payload.Rate) + "/hour"
		out["estimated_hours"] = payload.EstimatedHours
		out["estimated_total"] = formatMoney(*payload.Total())
	case MonthlyRetainerDetails:
		out["monthly_amount"] = formatMoney(payload.MonthlyAmount)
		out["months"] = payload.Months
		out["estimated_total"] = formatMoney(*payload.Total())
	case PrevidenciarioFeeDetails:
		out["percentage"] = formatPercent(payload.Percentage)
		out["monthly_income_average"] = formatMoney(payload.MonthlyIncomeAverage)
		out["benefit_months"] = payload.BenefitMonths
		out["estimated_total"] = formatMoney(*payload.Total())
	case SuccessFeeDetails:
		out["percentage"] = formatPercent(payload.Percentage)
		out["estimated_total"] = "not yet determinable"
	case PerformanceFeeDetails:
		out["milestones"] = payload.Milestones
		out["estimated_total"] = "not yet determinable"
	case ConsultationFeeDetails:
		out["rate_per_consultation"] = formatMoney(payload.RatePerConsultation)
		out["estimated_total"] = "not yet determinable"
	case SucumbenciaFeeDetails:
		out["percentage"] = formatPercent(payload.Percentage)
		out["estimated_total"] = "not yet determinable"
	}

	return out
}

// AddComponent validates and appends a component to an honorary at
// position max+1 (0 when empty). Existing positions are never renumbered,
// so deletions leave gaps; ordering is relative, not contiguous.
func AddComponent(db *gorm.DB, honoraryID string, componentType string, details models.JSONMap, active bool) (*models.HonoraryComponent, error) {
	if errs := ValidateComponentDetails(componentType, details); len(errs) > 0 {
		return nil, &ComponentValidationError{Errors: errs}
	}

	component := &models.HonoraryComponent{
		HonoraryID:    honoraryID,
		ComponentType: componentType,
		IsActive:      active,
		Details:       details,
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if _, err := getHonorary(tx, honoraryID); err != nil {
			return err
		}

		var maxPosition int64
		if err := tx.Model(&models.HonoraryComponent{}).
			Where("honorary_id = ?", honoraryID).
			Select("COALESCE(MAX(position), -1)").
			Scan(&maxPosition).Error; err != nil {
			return err
		}
		component.Position = int(maxPosition) + 1

		return tx.Create(component).Error
	})
	if err != nil {
		return nil, err
	}

	return component, nil
}

// UpdateComponentDetails replaces a component's details after re-running
// schema validation for its type
func UpdateComponentDetails(db *gorm.DB, componentID string, details models.JSONMap) error {
	var component models.HonoraryComponent
	if err := db.First(&component, "id = ?", componentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrComponentNotFound
		}
		return err
	}

	if errs := ValidateComponentDetails(component.ComponentType, details); len(errs) > 0 {
		return &ComponentValidationError{Errors: errs}
	}

	return db.Model(&component).Update("details", details).Error
}

// GetComponentsByHonorary retrieves the components of an honorary in
// evaluation order
func GetComponentsByHonorary(db *gorm.DB, honoraryID string) ([]models.HonoraryComponent, error) {
	var components []models.HonoraryComponent
	err := db.Where("honorary_id = ?", honoraryID).
		Order("position ASC").
		Find(&components).Error
	return components, err
}

// DeleteComponent removes a component without renumbering its siblings
func DeleteComponent(db *gorm.DB, componentID string) error {
	result := db.Delete(&models.HonoraryComponent{}, "id = ?", componentID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrComponentNotFound
	}
	return nil
}

// detailNumber extracts a numeric detail value. JSON round-trips give
// float64; values set directly in Go may be ints.
func detailNumber(value interface{}) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	}
	return 0, false
}

func formatMoney(value float64) string {
	return fmt.Sprintf("$%.2f", value)
}

func formatPercent(value float64) string {
	return fmt.Sprintf("%g%%", value)
}
