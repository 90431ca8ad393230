package dto

import "github.com/shopspring/decimal"

// CreateClientRequest body para POST /api/clients.
type CreateClientRequest struct {
	Name  string `json:"name" validate:"required"`
	Phone string `json:"phone"`
	Email string `json:"email" validate:"omitempty,email"`
}

// ClientResponse representación de una clienta en respuestas.
type ClientResponse struct {
	ID        string          `json:"id"`
	LegacyID  int             `json:"legacy_id,omitempty"`
	Name      string          `json:"name"`
	Phone     string          `json:"phone,omitempty"`
	Email     string          `json:"email,omitempty"`
	Debt      decimal.Decimal `json:"debt"`
	HasTrials bool            `json:"has_trials"`
}

// MovementResponse un movimiento del libro en respuestas.
type MovementResponse struct {
	ID       string          `json:"id"`
	Type     string          `json:"type"`
	Date     string          `json:"date"`
	Item     string          `json:"item,omitempty"`
	Size     string          `json:"size,omitempty"`
	Quantity int             `json:"quantity,omitempty"`
	Price    decimal.Decimal `json:"price"`
	Payment  string          `json:"payment,omitempty"`
	Amount   decimal.Decimal `json:"amount"`
}
