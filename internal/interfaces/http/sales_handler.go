package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/mdhome/bella-api/internal/application/reports"
)

// SalesHandler maneja las consultas de ventas y estadísticas. Las ventas son
// de solo lectura: se derivan del libro de compras de las clientas.
type SalesHandler struct {
	uc *reports.UseCase
}

// NewSalesHandler construye el handler.
func NewSalesHandler(uc *reports.UseCase) *SalesHandler {
	return &SalesHandler{uc: uc}
}

// salesRange interpreta los query params start y end ("2006-01-02"). Sin
// start se toma desde el origen; sin end, hasta hoy.
func salesRange(c *fiber.Ctx) (time.Time, time.Time, error) {
	from := time.Time{}
	now := time.Now().UTC()
	to := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	if s := c.Query("start"); s != "" {
		t, err := time.ParseInLocation("2006-01-02", s, time.UTC)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		from = t
	}
	if s := c.Query("end"); s != "" {
		t, err := time.ParseInLocation("2006-01-02", s, time.UTC)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		to = t
	}
	return from, to, nil
}

// List GET /api/sales?start=2026-01-01&end=2026-01-31
func (h *SalesHandler) List(c *fiber.Ctx) error {
	from, to, err := salesRange(c)
	if err != nil {
		return badRequest(c, "rango de fechas inválido")
	}
	sales, err := h.uc.SalesBetween(c.Context(), from, to)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(sales)
}

// Statistics GET /api/sales/statistics?start=...&end=...
func (h *SalesHandler) Statistics(c *fiber.Ctx) error {
	from, to, err := salesRange(c)
	if err != nil {
		return badRequest(c, "rango de fechas inválido")
	}
	stats, err := h.uc.Statistics(c.Context(), from, to)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(stats)
}
