package handlers

import (
	"errors"
	"lexcase_app_go/db"
	"lexcase_app_go/middleware"
	"lexcase_app_go/models"
	"lexcase_app_go/services"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/microcosm-cc/bluemonday"
)

// textPolicy strips all markup from user-supplied free text
var textPolicy = bluemonday.StrictPolicy()

// GetLawAreasHandler returns the law areas visible to the firm (system
// catalog plus the firm's custom areas), with depth and full name
func GetLawAreasHandler(c echo.Context) error {
	firm := middleware.GetCurrentFirm(c)

	areas, err := services.GetLawAreasForFirm(db.DB, firm.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch law areas")
	}

	index, err := services.BuildAreaIndex(areas)
	if err != nil {
		// Persisted cycles mean write-time validation was bypassed
		return echo.NewHTTPError(http.StatusInternalServerError, "Law area hierarchy is corrupt")
	}

	type areaView struct {
		models.LawArea
		Depth    int    `json:"depth"`
		FullName string `json:"full_name"`
	}
	views := make([]areaView, 0, len(areas))
	for i := range areas {
		views = append(views, areaView{
			LawArea:  areas[i],
			Depth:    services.AreaDepth(&areas[i], index),
			FullName: services.AreaFullName(&areas[i], index),
		})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{"data": views})
}

// CreateLawAreaHandler creates a custom law area for the firm
func CreateLawAreaHandler(c echo.Context) error {
	firm := middleware.GetCurrentFirm(c)

	var req struct {
		Code         string  `json:"code"`
		Name         string  `json:"name"`
		Description  string  `json:"description"`
		ParentAreaID *string `json:"parent_area_id"`
		SortOrder    int     `json:"sort_order"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if req.Code == "" || req.Name == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Code and name are required")
	}

	area := &models.LawArea{
		Code:         req.Code,
		Name:         textPolicy.Sanitize(req.Name),
		Description:  textPolicy.Sanitize(req.Description),
		ParentAreaID: req.ParentAreaID,
		SortOrder:    req.SortOrder,
		IsActive:     true,
	}

	if err := services.CreateLawArea(db.DB, firm.ID, area); err != nil {
		switch {
		case errors.Is(err, services.ErrCyclicHierarchy):
			return echo.NewHTTPError(http.StatusUnprocessableEntity, "Parent assignment would create a cycle")
		case errors.Is(err, services.ErrDuplicateAreaCode):
			return echo.NewHTTPError(http.StatusConflict, "Code already in use under this parent")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to create law area")
	}

	return c.JSON(http.StatusCreated, area)
}

// UpdateLawAreaParentHandler re-parents a law area
func UpdateLawAreaParentHandler(c echo.Context) error {
	firm := middleware.GetCurrentFirm(c)
	areaID := c.Param("id")

	var req struct {
		ParentAreaID *string `json:"parent_area_id"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	if err := services.UpdateLawAreaParent(db.DB, firm.ID, areaID, req.ParentAreaID); err != nil {
		switch {
		case errors.Is(err, services.ErrLawAreaNotFound):
			return echo.NewHTTPError(http.StatusNotFound, "Law area not found")
		case errors.Is(err, services.ErrCyclicHierarchy):
			return echo.NewHTTPError(http.StatusUnprocessableEntity, "Parent assignment would create a cycle")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to update law area")
	}

	return c.NoContent(http.StatusNoContent)
}

// DeleteLawAreaHandler removes a firm's custom law area
func DeleteLawAreaHandler(c echo.Context) error {
	firm := middleware.GetCurrentFirm(c)
	areaID := c.Param("id")

	if err := services.DeleteLawArea(db.DB, firm.ID, areaID); err != nil {
		switch {
		case errors.Is(err, services.ErrLawAreaNotFound):
			return echo.NewHTTPError(http.StatusNotFound, "Law area not found")
		case errors.Is(err, services.ErrAreaHasChildren):
			return echo.NewHTTPError(http.StatusConflict, "Law area still has child areas")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to delete law area")
	}

	return c.NoContent(http.StatusNoContent)
}

// GetLawAreaPathHandler returns the root-to-node path of an area
func GetLawAreaPathHandler(c echo.Context) error {
	firm := middleware.GetCurrentFirm(c)
	areaID := c.Param("id")

	path, err := services.GetAreaHierarchyPath(db.DB, firm.ID, areaID)
	if err != nil {
		if errors.Is(err, services.ErrLawAreaNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Law area not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to resolve hierarchy path")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{"data": path})
}

// GetApplicablePowersHandler resolves the powers applicable to an area
func GetApplicablePowersHandler(c echo.Context) error {
	firm := middleware.GetCurrentFirm(c)
	areaID := c.Param("id")

	powers, err := services.ResolvePowersForArea(db.DB, firm.ID, areaID)
	if err != nil {
		if errors.Is(err, services.ErrLawAreaNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Law area not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to resolve powers")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{"data": powers})
}
