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

// CreateHonoraryHandler creates a fee arrangement attached to a work or a
// procedure
func CreateHonoraryHandler(c echo.Context) error {
	firm := middleware.GetCurrentFirm(c)

	var req struct {
		Name         string  `json:"name"`
		HonoraryType string  `json:"honorary_type"`
		Description  string  `json:"description"`
		WorkID       *string `json:"work_id"`
		ProcedureID  *string `json:"procedure_id"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if req.Name == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Name is required")
	}

	honorary := &models.Honorary{
		FirmID:       firm.ID,
		Name:         textPolicy.Sanitize(req.Name),
		HonoraryType: req.HonoraryType,
		Description:  textPolicy.Sanitize(req.Description),
		WorkID:       req.WorkID,
		ProcedureID:  req.ProcedureID,
	}

	if err := services.CreateHonorary(db.DB, honorary); err != nil {
		if errors.Is(err, services.ErrHonoraryAttachment) {
			return echo.NewHTTPError(http.StatusUnprocessableEntity, "Honorary must be attached to exactly one of a work or a procedure")
		}
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	return c.JSON(http.StatusCreated, honorary)
}

// GetHonoraryHandler returns one honorary with components, ledger, the
// formatted component projections and the floor estimate
func GetHonoraryHandler(c echo.Context) error {
	firm := middleware.GetCurrentFirm(c)
	honoraryID := c.Param("id")

	honorary, err := services.GetHonoraryByID(db.DB, firm.ID, honoraryID)
	if err != nil {
		if errors.Is(err, services.ErrHonoraryNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Honorary not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to retrieve honorary")
	}

	formatted := make([]map[string]interface{}, 0, len(honorary.Components))
	for _, component := range honorary.Components {
		formatted = append(formatted, services.FormatComponentDetails(component))
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"data":               honorary,
		"component_display":  formatted,
		"estimated_value":    services.HonoraryEstimatedValue(*honorary),
		// Components without a known basis contribute 0, so this is a
		// floor, not a final quote
		"estimate_is_floor": true,
	})
}

// ListHonorariesHandler lists the firm's honoraries
func ListHonorariesHandler(c echo.Context) error {
	firm := middleware.GetCurrentFirm(c)

	honoraries, err := services.GetHonorariesByFirm(db.DB, firm.ID, c.QueryParam("status"))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch honoraries")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{"data": honoraries})
}

// UpdateHonoraryStatusHandler transitions an honorary's status
func UpdateHonoraryStatusHandler(c echo.Context) error {
	firm := middleware.GetCurrentFirm(c)
	honoraryID := c.Param("id")

	var req struct {
		Status string `json:"status"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	if err := services.UpdateHonoraryStatus(db.DB, firm.ID, honoraryID, req.Status); err != nil {
		if errors.Is(err, services.ErrHonoraryNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Honorary not found")
		}
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	return c.NoContent(http.StatusNoContent)
}

// AddComponentHandler appends a fee component to an honorary
func AddComponentHandler(c echo.Context) error {
	firm := middleware.GetCurrentFirm(c)
	honoraryID := c.Param("id")

	// Scope check before touching the components
	if _, err := services.GetHonoraryByID(db.DB, firm.ID, honoraryID); err != nil {
		if errors.Is(err, services.ErrHonoraryNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Honorary not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to retrieve honorary")
	}

	var req struct {
		ComponentType string         `json:"component_type"`
		Details       models.JSONMap `json:"details"`
		IsActive      *bool          `json:"is_active"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}

	component, err := services.AddComponent(db.DB, honoraryID, req.ComponentType, req.Details, active)
	if err != nil {
		var validationErr *services.ComponentValidationError
		if errors.As(err, &validationErr) {
			messages := make([]string, 0, len(validationErr.Errors))
			for _, fieldErr := range validationErr.Errors {
				messages = append(messages, fieldErr.Error())
			}
			return c.JSON(http.StatusUnprocessableEntity, map[string]interface{}{
				"error":  "Invalid component details",
				"fields": messages,
			})
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to add component")
	}

	return c.JSON(http.StatusCreated, component)
}

// UpdateComponentDetailsHandler replaces a component's details payload
func UpdateComponentDetailsHandler(c echo.Context) error {
	componentID := c.Param("component_id")

	var req struct {
		Details models.JSONMap `json:"details"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	if err := services.UpdateComponentDetails(db.DB, componentID, req.Details); err != nil {
		var validationErr *services.ComponentValidationError
		if errors.As(err, &validationErr) {
			return echo.NewHTTPError(http.StatusUnprocessableEntity, validationErr.Error())
		}
		if errors.Is(err, services.ErrComponentNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Component not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to update component")
	}

	return c.NoContent(http.StatusNoContent)
}
