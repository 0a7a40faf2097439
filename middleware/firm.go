package middleware

import (
	"lexcase_app_go/db"
	"lexcase_app_go/models"
	"net/http"

	"github.com/labstack/echo/v4"
)

const firmContextKey = "current_firm"

// FirmHeader carries the acting firm's id. Authentication itself is
// handled upstream (gateway/session layer); this middleware only resolves
// the firm scope every handler needs.
const FirmHeader = "X-Firm-ID"

// RequireFirm resolves the acting firm from the request header and stores
// it in the context
func RequireFirm() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			firmID := c.Request().Header.Get(FirmHeader)
			if firmID == "" {
				return echo.NewHTTPError(http.StatusBadRequest, "Missing "+FirmHeader+" header")
			}

			var firm models.Firm
			if err := db.DB.First(&firm, "id = ?", firmID).Error; err != nil {
				return echo.NewHTTPError(http.StatusNotFound, "Firm not found")
			}

			c.Set(firmContextKey, &firm)
			return next(c)
		}
	}
}

// GetCurrentFirm returns the firm resolved by RequireFirm, or nil
func GetCurrentFirm(c echo.Context) *models.Firm {
	firm, ok := c.Get(firmContextKey).(*models.Firm)
	if !ok {
		return nil
	}
	return firm
}
