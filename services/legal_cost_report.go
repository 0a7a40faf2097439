package services

import (
	"fmt"
	"lexcase_app_go/models"
	"time"

	"github.com/xuri/excelize/v2"
)

const legalCostSheet = "Legal Costs"

// BuildLegalCostWorkbook renders a ledger and its aggregation into an
// xlsx workbook for download. Estimated, unpaid rows are marked so
// readers treat the totals as a floor, not a final figure.
func BuildLegalCostWorkbook(honorary models.Honorary, legalCost models.LegalCost, entries []models.LegalCostEntry, now time.Time) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", legalCostSheet); err != nil {
		return nil, err
	}

	titleStyle, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 14}})
	headerStyle, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 11}})

	f.SetCellValue(legalCostSheet, "A1", fmt.Sprintf("Legal cost ledger - %s", honorary.Name))
	f.SetCellStyle(legalCostSheet, "A1", "A1", titleStyle)
	f.SetCellValue(legalCostSheet, "A2", "Generated "+now.Format("2006-01-02"))

	headers := []string{"Cost Type", "Name", "Amount", "Due Date", "Status", "Estimated", "Payment Date", "Payment Method", "Receipt"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 4)
		f.SetCellValue(legalCostSheet, cell, header)
		f.SetCellStyle(legalCostSheet, cell, cell, headerStyle)
	}

	row := 5
	for i := range entries {
		entry := &entries[i]

		dueDate := ""
		if entry.DueDate != nil {
			dueDate = entry.DueDate.Format("2006-01-02")
		}
		paymentDate := ""
		if entry.PaymentDate != nil {
			paymentDate = entry.PaymentDate.Format("2006-01-02")
		}
		paymentMethod := ""
		if entry.PaymentMethod != nil {
			paymentMethod = *entry.PaymentMethod
		}
		receipt := ""
		if entry.ReceiptNumber != nil {
			receipt = *entry.ReceiptNumber
		}
		estimated := "no"
		if entry.Estimated {
			estimated = "yes"
		}

		values := []interface{}{
			models.GetCostTypeDisplayName(entry.CostType),
			entry.Name,
			entry.Amount,
			dueDate,
			entry.StatusOn(now),
			estimated,
			paymentDate,
			paymentMethod,
			receipt,
		}
		for col, value := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			f.SetCellValue(legalCostSheet, cell, value)
		}
		row++
	}

	summary := SummarizeLegalCost(legalCost, entries, now)
	row++

	summaryRows := []struct {
		Label string
		Value string
	}{
		{"Total", summary.Total.StringFixed(2)},
		{"Paid", summary.Paid.StringFixed(2)},
		{"Pending", summary.Pending.StringFixed(2)},
		{"Overdue", summary.Overdue.StringFixed(2)},
		{fmt.Sprintf("Admin fee (%.1f%%)", legalCost.AdminFeePercentage), summary.AdminFee.StringFixed(2)},
		{"Total with admin fee", summary.TotalWithFee.StringFixed(2)},
	}
	for _, s := range summaryRows {
		labelCell, _ := excelize.CoordinatesToCellName(1, row)
		valueCell, _ := excelize.CoordinatesToCellName(2, row)
		f.SetCellValue(legalCostSheet, labelCell, s.Label)
		f.SetCellStyle(legalCostSheet, labelCell, labelCell, headerStyle)
		f.SetCellValue(legalCostSheet, valueCell, s.Value)
		row++
	}

	return f, nil
}
