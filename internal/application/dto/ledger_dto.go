package dto

import "github.com/shopspring/decimal"

// RecordPurchaseRequest body para POST /api/clients/:id/purchases.
// PaidAmount solo aplica con payment=partial. UnitPrice es opcional: si no
// viene se usa el precio de venta actual de la prenda.
type RecordPurchaseRequest struct {
	Item       string           `json:"item" validate:"required"`
	Size       string           `json:"size,omitempty"`
	Quantity   int              `json:"quantity" validate:"min=1"`
	Payment    string           `json:"payment" validate:"required,oneof=full partial none"`
	PaidAmount *decimal.Decimal `json:"paid_amount,omitempty"`
	UnitPrice  *decimal.Decimal `json:"unit_price,omitempty"`
	Date       string           `json:"date,omitempty"`
}

// RecordPaymentRequest body para POST /api/clients/:id/payments.
type RecordPaymentRequest struct {
	Amount decimal.Decimal `json:"amount" validate:"required"`
	Date   string          `json:"date,omitempty"`
}

// RecordTrialRequest body para POST /api/clients/:id/trials.
// Las pruebas son siempre por talle: la prenda debe manejar talles.
type RecordTrialRequest struct {
	Item     string `json:"item" validate:"required"`
	Size     string `json:"size" validate:"required"`
	Quantity int    `json:"quantity" validate:"min=1"`
	Date     string `json:"date,omitempty"`
}

// ResolveTrialPurchaseRequest body para
// POST /api/clients/:id/trials/:movementId/purchase.
type ResolveTrialPurchaseRequest struct {
	Payment    string           `json:"payment" validate:"required,oneof=full partial none"`
	PaidAmount *decimal.Decimal `json:"paid_amount,omitempty"`
	Date       string           `json:"date,omitempty"`
}
