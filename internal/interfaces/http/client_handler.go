package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/mdhome/bella-api/internal/application/dto"
	"github.com/mdhome/bella-api/internal/application/ledger"
)

// ClientHandler maneja las peticiones HTTP de clientas y su libro de
// movimientos.
type ClientHandler struct {
	uc *ledger.UseCase
}

// NewClientHandler construye el handler.
func NewClientHandler(uc *ledger.UseCase) *ClientHandler {
	return &ClientHandler{uc: uc}
}

// Create POST /api/clients
func (h *ClientHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateClientRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	if err := validate.Struct(in); err != nil {
		return badRequest(c, err.Error())
	}
	client, err := h.uc.CreateClient(c.Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(client)
}

// List GET /api/clients
func (h *ClientHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.ListClients(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(list)
}

// GetByID GET /api/clients/:id
func (h *ClientHandler) GetByID(c *fiber.Ctx) error {
	client, err := h.uc.GetClient(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(client)
}

// Delete DELETE /api/clients/:id?confirm=true
// Con deuda pendiente el borrado exige confirm=true; sin la confirmación
// responde 409 PENDING_DEBT.
func (h *ClientHandler) Delete(c *fiber.Ctx) error {
	confirmed := c.Query("confirm") == "true"
	if err := h.uc.DeleteClient(c.Context(), c.Params("id"), confirmed); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Movements GET /api/clients/:id/movements
func (h *ClientHandler) Movements(c *fiber.Ctx) error {
	movs, err := h.uc.Movements(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(movs)
}

// Trials GET /api/clients/:id/trials
func (h *ClientHandler) Trials(c *fiber.Ctx) error {
	trials, err := h.uc.Trials(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(trials)
}
