package http

import (
	"bytes"

	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/inventory-manager/internal/application/analytics"
)

// ReportHandler maneja /api/reports: resumen, exportación y PDF de inventario.
type ReportHandler struct {
	uc *appanalytics.ReportUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *appanalytics.ReportUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// Summary godoc
// @Summary      Reportes: series mensuales y rankings
// @Tags         reports
// @Security     Cookie
// @Produce      json
// @Success      200  {object}  dto.ReportSummaryResponse
// @Router       /api/reports/summary [get]
func (h *ReportHandler) Summary(c *fiber.Ctx) error {
	out, err := h.uc.Summary(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Export godoc
// @Summary      Página de exportación
// @Description  HTML con enlaces data:text/csv para productos, ventas y compras.
// @Tags         reports
// @Security     Cookie
// @Produce      html
// @Success      200  {string}  string
// @Router       /api/reports/export [post]
func (h *ReportHandler) Export(c *fiber.Ctx) error {
	page, err := h.uc.ExportHTML(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.Send(page)
}

// ExportCSV godoc
// @Summary      Descargar CSV
// @Tags         reports
// @Security     Cookie
// @Produce      text/csv
// @Param        what  path  string  true  "products | sales | purchases"
// @Success      200   {string}  string
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/reports/export/{what} [get]
func (h *ReportHandler) ExportCSV(c *fiber.Ctx) error {
	what := c.Params("what")
	// Se arma completo antes de responder.
	var buf bytes.Buffer
	if _, err := h.uc.WriteCSV(c.UserContext(), what, &buf); err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+what+`.csv"`)
	return c.Send(buf.Bytes())
}

// InventoryPDF godoc
// @Summary      Reporte de inventario valorizado (PDF)
// @Tags         reports
// @Security     Cookie
// @Produce      application/pdf
// @Success      200  {file}  binary
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/reports/inventory.pdf [get]
func (h *ReportHandler) InventoryPDF(c *fiber.Ctx) error {
	doc, err := h.uc.InventoryPDF(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="inventario.pdf"`)
	return c.Send(doc)
}
