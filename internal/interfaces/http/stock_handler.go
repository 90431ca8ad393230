package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/mdhome/bella-api/internal/application/catalog"
	"github.com/mdhome/bella-api/internal/application/dto"
)

// StockHandler maneja las peticiones HTTP del catálogo de prendas.
type StockHandler struct {
	uc *catalog.UseCase
}

// NewStockHandler construye el handler.
func NewStockHandler(uc *catalog.UseCase) *StockHandler {
	return &StockHandler{uc: uc}
}

// Create POST /api/stock
func (h *StockHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateStockItemRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	if err := validate.Struct(in); err != nil {
		return badRequest(c, err.Error())
	}
	item, err := h.uc.CreateItem(c.Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(item)
}

// List GET /api/stock
func (h *StockHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.ListItems(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(list)
}

// GetByName GET /api/stock/:name
func (h *StockHandler) GetByName(c *fiber.Ctx) error {
	name, err := paramString(c, "name")
	if err != nil {
		return badRequest(c, "nombre inválido")
	}
	item, err := h.uc.GetItem(c.Context(), name)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(item)
}

// Update PUT /api/stock/:name
func (h *StockHandler) Update(c *fiber.Ctx) error {
	name, err := paramString(c, "name")
	if err != nil {
		return badRequest(c, "nombre inválido")
	}
	var in dto.UpdateStockItemRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	if err := validate.Struct(in); err != nil {
		return badRequest(c, err.Error())
	}
	item, err := h.uc.UpdateItem(c.Context(), name, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(item)
}

// SetSizeQuantity PUT /api/stock/:name/sizes/:size
func (h *StockHandler) SetSizeQuantity(c *fiber.Ctx) error {
	name, err := paramString(c, "name")
	if err != nil {
		return badRequest(c, "nombre inválido")
	}
	size, err := paramString(c, "size")
	if err != nil {
		return badRequest(c, "talle inválido")
	}
	var in dto.SetSizeQuantityRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	if err := validate.Struct(in); err != nil {
		return badRequest(c, err.Error())
	}
	item, err := h.uc.SetSizeQuantity(c.Context(), name, size, in.Quantity)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(item)
}

// Delete DELETE /api/stock/:name
func (h *StockHandler) Delete(c *fiber.Ctx) error {
	name, err := paramString(c, "name")
	if err != nil {
		return badRequest(c, "nombre inválido")
	}
	if err := h.uc.DeleteItem(c.Context(), name); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
