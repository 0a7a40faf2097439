package handlers

import (
	"errors"
	"fmt"
	"lexcase_app_go/db"
	"lexcase_app_go/middleware"
	"lexcase_app_go/models"
	"lexcase_app_go/services"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// CreateLegalCostHandler creates the ledger header for an honorary
func CreateLegalCostHandler(c echo.Context) error {
	firm := middleware.GetCurrentFirm(c)
	honoraryID := c.Param("id")

	honorary, err := services.GetHonoraryByID(db.DB, firm.ID, honoraryID)
	if err != nil {
		if errors.Is(err, services.ErrHonoraryNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Honorary not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to retrieve honorary")
	}

	var req struct {
		AdminFeePercentage float64 `json:"admin_fee_percentage"`
		ClientResponsible  *bool   `json:"client_responsible"`
		IncludeInInvoices  *bool   `json:"include_in_invoices"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	legalCost := &models.LegalCost{
		HonoraryID:         honorary.ID,
		AdminFeePercentage: req.AdminFeePercentage,
		ClientResponsible:  true,
		IncludeInInvoices:  true,
	}
	if req.ClientResponsible != nil {
		legalCost.ClientResponsible = *req.ClientResponsible
	}
	if req.IncludeInInvoices != nil {
		legalCost.IncludeInInvoices = *req.IncludeInInvoices
	}

	if err := services.CreateLegalCost(db.DB, legalCost); err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidPercentage):
			return echo.NewHTTPError(http.StatusUnprocessableEntity, "Admin fee percentage must be between 0 and 100")
		case errors.Is(err, services.ErrLedgerExists):
			return echo.NewHTTPError(http.StatusConflict, "Honorary already has a legal cost ledger")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to create legal cost ledger")
	}

	return c.JSON(http.StatusCreated, legalCost)
}

// GetLegalCostHandler returns the ledger with per-entry derived status
func GetLegalCostHandler(c echo.Context) error {
	firm := middleware.GetCurrentFirm(c)
	honoraryID := c.Param("id")

	if _, err := services.GetHonoraryByID(db.DB, firm.ID, honoraryID); err != nil {
		if errors.Is(err, services.ErrHonoraryNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Honorary not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to retrieve honorary")
	}

	legalCost, err := services.GetLegalCostByHonorary(db.DB, honoraryID)
	if err != nil {
		if errors.Is(err, services.ErrLegalCostNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Legal cost ledger not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to retrieve ledger")
	}

	now := time.Now()
	type entryView struct {
		models.LegalCostEntry
		Status string `json:"status"`
	}
	entryViews := make([]entryView, 0, len(legalCost.Entries))
	for _, entry := range legalCost.Entries {
		entryViews = append(entryViews, entryView{LegalCostEntry: entry, Status: entry.StatusOn(now)})
	}

	summary := services.SummarizeLegalCost(*legalCost, legalCost.Entries, now)

	return c.JSON(http.StatusOK, map[string]interface{}{
		"data":    legalCost,
		"entries": entryViews,
		"summary": summary,
	})
}

// AddCostEntryHandler appends a line item to the ledger
func AddCostEntryHandler(c echo.Context) error {
	firm := middleware.GetCurrentFirm(c)
	honoraryID := c.Param("id")

	if _, err := services.GetHonoraryByID(db.DB, firm.ID, honoraryID); err != nil {
		if errors.Is(err, services.ErrHonoraryNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Honorary not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to retrieve honorary")
	}

	legalCost, err := services.GetLegalCostByHonorary(db.DB, honoraryID)
	if err != nil {
		if errors.Is(err, services.ErrLegalCostNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Legal cost ledger not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to retrieve ledger")
	}

	var req struct {
		CostType  string  `json:"cost_type"`
		Name      string  `json:"name"`
		Amount    float64 `json:"amount"`
		DueDate   string  `json:"due_date"`
		Estimated bool    `json:"estimated"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if req.Name == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Name is required")
	}

	dueDate, err := services.ParseOptionalDate(req.DueDate)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	entry, err := services.AddCostEntry(db.DB, legalCost.ID, req.CostType, req.Name, req.Amount, &services.CostEntryOptions{
		DueDate:   dueDate,
		Estimated: req.Estimated,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidCostType):
			return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
		case errors.Is(err, services.ErrNegativeAmount):
			return echo.NewHTTPError(http.StatusUnprocessableEntity, "Amount must be non-negative")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to add cost entry")
	}

	return c.JSON(http.StatusCreated, entry)
}

// PayCostEntryHandler records a payment against an entry
func PayCostEntryHandler(c echo.Context) error {
	entryID := c.Param("entry_id")

	var req struct {
		PaymentDate   string `json:"payment_date"`
		PaymentMethod string `json:"payment_method"`
		ReceiptNumber string `json:"receipt_number"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	paymentDate := time.Now()
	if req.PaymentDate != "" {
		parsed, err := services.ParseDate(req.PaymentDate)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		paymentDate = parsed
	}

	if err := services.MarkEntryPaid(db.DB, entryID, paymentDate, req.PaymentMethod, req.ReceiptNumber); err != nil {
		if errors.Is(err, services.ErrCostEntryNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Cost entry not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to record payment")
	}

	return c.NoContent(http.StatusNoContent)
}

// UnpayCostEntryHandler reverses a recorded payment
func UnpayCostEntryHandler(c echo.Context) error {
	entryID := c.Param("entry_id")

	if err := services.MarkEntryUnpaid(db.DB, entryID); err != nil {
		if errors.Is(err, services.ErrCostEntryNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Cost entry not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to reverse payment")
	}

	return c.NoContent(http.StatusNoContent)
}

// ExportLegalCostHandler downloads the ledger as an xlsx workbook
func ExportLegalCostHandler(c echo.Context) error {
	firm := middleware.GetCurrentFirm(c)
	honoraryID := c.Param("id")

	honorary, err := services.GetHonoraryByID(db.DB, firm.ID, honoraryID)
	if err != nil {
		if errors.Is(err, services.ErrHonoraryNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Honorary not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to retrieve honorary")
	}

	legalCost, err := services.GetLegalCostByHonorary(db.DB, honoraryID)
	if err != nil {
		if errors.Is(err, services.ErrLegalCostNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Legal cost ledger not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to retrieve ledger")
	}

	workbook, err := services.BuildLegalCostWorkbook(*honorary, *legalCost, legalCost.Entries, time.Now())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to build report")
	}

	buffer, err := workbook.WriteToBuffer()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to render report")
	}

	filename := fmt.Sprintf("legal-costs-%s.xlsx", honoraryID)
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Blob(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buffer.Bytes())
}
