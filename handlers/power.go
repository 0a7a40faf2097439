package handlers

import (
	"errors"
	"lexcase_app_go/db"
	"lexcase_app_go/middleware"
	"lexcase_app_go/models"
	"lexcase_app_go/services"
	"net/http"

	"github.com/labstack/echo/v4"
)

// GetPowersHandler returns the powers visible to the firm, optionally
// filtered by category
func GetPowersHandler(c echo.Context) error {
	firm := middleware.GetCurrentFirm(c)

	powers, err := services.GetPowersForFirm(db.DB, firm.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch powers")
	}

	if category := c.QueryParam("category"); category != "" {
		filtered := powers[:0]
		for _, p := range powers {
			if p.Category == category {
				filtered = append(filtered, p)
			}
		}
		powers = filtered
	}

	return c.JSON(http.StatusOK, map[string]interface{}{"data": powers})
}

// CreatePowerHandler creates a custom power for the firm
func CreatePowerHandler(c echo.Context) error {
	firm := middleware.GetCurrentFirm(c)

	var req struct {
		Category    string  `json:"category"`
		Description string  `json:"description"`
		IsBase      bool    `json:"is_base"`
		LawAreaID   *string `json:"law_area_id"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if req.Description == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Description is required")
	}
	if !models.IsValidPowerCategory(req.Category) {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid category")
	}

	power := &models.Power{
		Category:    req.Category,
		Description: textPolicy.Sanitize(req.Description),
		IsBase:      req.IsBase,
		LawAreaID:   req.LawAreaID,
		IsActive:    true,
	}

	if err := services.CreatePower(db.DB, firm.ID, power); err != nil {
		if errors.Is(err, services.ErrOrphanPower) {
			return echo.NewHTTPError(http.StatusUnprocessableEntity, "Non-base power must reference a law area")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to create power")
	}

	return c.JSON(http.StatusCreated, power)
}

// CheckPowerApplicableHandler answers whether one power applies to one
// area (point check used when attaching authorization scope)
func CheckPowerApplicableHandler(c echo.Context) error {
	firm := middleware.GetCurrentFirm(c)
	powerID := c.Param("id")
	areaID := c.QueryParam("area_id")
	if areaID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "area_id query parameter is required")
	}

	var power models.Power
	if err := db.DB.Where("firm_id IS NULL OR firm_id = ?", firm.ID).
		First(&power, "id = ?", powerID).Error; err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Power not found")
	}

	area, err := services.GetLawAreaByID(db.DB, firm.ID, areaID)
	if err != nil {
		if errors.Is(err, services.ErrLawAreaNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Law area not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch law area")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"applicable": services.PowerApplicableTo(power, *area),
	})
}
