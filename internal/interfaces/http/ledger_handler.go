package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/mdhome/bella-api/internal/application/dto"
	"github.com/mdhome/bella-api/internal/application/ledger"
)

// LedgerHandler maneja las operaciones que mutan el libro de una clienta:
// compras, pagos y pruebas (registro y resolución).
type LedgerHandler struct {
	uc *ledger.UseCase
}

// NewLedgerHandler construye el handler.
func NewLedgerHandler(uc *ledger.UseCase) *LedgerHandler {
	return &LedgerHandler{uc: uc}
}

// RecordPurchase POST /api/clients/:id/purchases
func (h *LedgerHandler) RecordPurchase(c *fiber.Ctx) error {
	var in dto.RecordPurchaseRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	if err := validate.Struct(in); err != nil {
		return badRequest(c, err.Error())
	}
	mov, err := h.uc.RecordPurchase(c.Context(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(mov)
}

// RecordPayment POST /api/clients/:id/payments
func (h *LedgerHandler) RecordPayment(c *fiber.Ctx) error {
	var in dto.RecordPaymentRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	if err := validate.Struct(in); err != nil {
		return badRequest(c, err.Error())
	}
	mov, err := h.uc.RecordPayment(c.Context(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(mov)
}

// RecordTrial POST /api/clients/:id/trials
func (h *LedgerHandler) RecordTrial(c *fiber.Ctx) error {
	var in dto.RecordTrialRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	if err := validate.Struct(in); err != nil {
		return badRequest(c, err.Error())
	}
	mov, err := h.uc.RecordTrial(c.Context(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(mov)
}

// ResolveTrialAsPurchase POST /api/clients/:id/trials/:movementId/purchase
func (h *LedgerHandler) ResolveTrialAsPurchase(c *fiber.Ctx) error {
	var in dto.ResolveTrialPurchaseRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	if err := validate.Struct(in); err != nil {
		return badRequest(c, err.Error())
	}
	mov, err := h.uc.ResolveTrialAsPurchase(c.Context(), c.Params("id"), c.Params("movementId"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(mov)
}

// ResolveTrialAsReturn POST /api/clients/:id/trials/:movementId/return
func (h *LedgerHandler) ResolveTrialAsReturn(c *fiber.Ctx) error {
	if err := h.uc.ResolveTrialAsReturn(c.Context(), c.Params("id"), c.Params("movementId")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
