package api

import (
	"bytes"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/wellnest/internal/services"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func (handler *Handler) ExportSummary(c *fiber.Ctx) error {
	rows, ok, err := handler.exportRows(c)
	if !ok {
		return err
	}
	return c.JSON(services.BuildExportSummary(rows))
}

func (handler *Handler) ExportCycleCSV(c *fiber.Ctx) error {
	rows, ok, err := handler.exportRows(c)
	if !ok {
		return err
	}

	var output bytes.Buffer
	if err := services.WriteExportCSV(&output, rows); err != nil {
		return handler.respondServiceError(c, err)
	}
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, handler.exportDisposition("csv"))
	return c.Send(output.Bytes())
}

func (handler *Handler) ExportCycleXLSX(c *fiber.Ctx) error {
	rows, ok, err := handler.exportRows(c)
	if !ok {
		return err
	}

	var output bytes.Buffer
	if err := services.WriteExportXLSX(&output, rows); err != nil {
		return handler.respondServiceError(c, err)
	}
	c.Set(fiber.HeaderContentType, xlsxContentType)
	c.Set(fiber.HeaderContentDisposition, handler.exportDisposition("xlsx"))
	return c.Send(output.Bytes())
}

// exportRows returns ok=false together with the already-written response
// when the request cannot be served.
func (handler *Handler) exportRows(c *fiber.Ctx) ([]services.ExportRow, bool, error) {
	user, found := currentUser(c)
	if !found {
		return nil, false, handler.apiError(c, fiber.StatusUnauthorized, "error.unauthorized")
	}
	rows, err := handler.export.BuildRows(user.ID, c.Query("from"), c.Query("to"))
	if err != nil {
		return nil, false, handler.respondServiceError(c, err)
	}
	return rows, true, nil
}

func (handler *Handler) exportDisposition(extension string) string {
	stamp := handler.now().In(handler.location).Format("2006-01-02")
	return fmt.Sprintf("attachment; filename=\"wellnest-cycle-%s.%s\"", stamp, extension)
}
