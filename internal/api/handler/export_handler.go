package handler

import (
	"encoding/csv"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/gamevault/license-server/internal/core/ports"
)

// ExportHandler renders the user base as CSV or JSON for the admin screens.
type ExportHandler struct {
	userService ports.UserService
}

func NewExportHandler(userService ports.UserService) *ExportHandler {
	return &ExportHandler{userService: userService}
}

type exportRow struct {
	ports.UserListing
	Status string `json:"status"`
}

// Export streams the user list in the requested format (csv default).
//
// @Summary      Export users
// @Tags         admin
// @Produce      json
// @Param        format  query  string  false  "csv or json"
// @Router       /admin/export [get]
func (h *ExportHandler) Export(c echo.Context) error {
	format := c.QueryParam("format")
	if format == "" {
		format = "csv"
	}
	if format != "csv" && format != "json" {
		return echo.NewHTTPError(http.StatusBadRequest, "unsupported format")
	}

	users, err := h.userService.List(c.Request().Context())
	if err != nil {
		return err
	}

	rows := make([]exportRow, 0, len(users))
	for _, u := range users {
		status := "active"
		if u.LicenseDays == 0 {
			status = "expired"
		}
		rows = append(rows, exportRow{UserListing: u, Status: status})
	}

	if format == "json" {
		return c.JSON(http.StatusOK, rows)
	}

	res := c.Response()
	res.Header().Set(echo.HeaderContentType, "text/csv")
	res.Header().Set(echo.HeaderContentDisposition, `attachment; filename=users_export.csv`)
	res.WriteHeader(http.StatusOK)

	w := csv.NewWriter(res)
	if err := w.Write([]string{"id", "first_name", "last_name", "phone", "email", "license_end_date", "status"}); err != nil {
		return err
	}
	for _, r := range rows {
		record := []string{
			r.ID,
			r.FirstName,
			r.LastName,
			r.Phone,
			r.Email,
			time.UnixMilli(r.LicenseEndDate).UTC().Format(time.RFC3339),
			r.Status,
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
