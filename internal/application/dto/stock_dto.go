package dto

import "github.com/shopspring/decimal"

// CreateStockItemRequest body para POST /api/stock.
// Exactamente una de Quantity o Sizes debe venir: Quantity para prendas de
// cantidad única, Sizes para prendas con talles.
type CreateStockItemRequest struct {
	Name        string          `json:"name" validate:"required"`
	Description string          `json:"description"`
	CostPrice   decimal.Decimal `json:"cost_price"`
	Price       decimal.Decimal `json:"price"`
	Quantity    *int            `json:"quantity,omitempty" validate:"omitempty,min=0"`
	Sizes       map[string]int  `json:"sizes,omitempty"`
}

// UpdateStockItemRequest body para PUT /api/stock/:name. Campos opcionales;
// solo los presentes se actualizan. La variante de stock no puede cambiar.
type UpdateStockItemRequest struct {
	Description *string          `json:"description,omitempty"`
	CostPrice   *decimal.Decimal `json:"cost_price,omitempty"`
	Price       *decimal.Decimal `json:"price,omitempty"`
	Quantity    *int             `json:"quantity,omitempty" validate:"omitempty,min=0"`
}

// SetSizeQuantityRequest body para PUT /api/stock/:name/sizes/:size
// (la edición en línea de la tabla de stock).
type SetSizeQuantityRequest struct {
	Quantity int `json:"quantity" validate:"min=0"`
}

// StockItemResponse representación de una prenda en respuestas.
type StockItemResponse struct {
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	CostPrice   decimal.Decimal `json:"cost_price"`
	Price       decimal.Decimal `json:"price"`
	Kind        string          `json:"kind"`
	Quantity    *int            `json:"quantity,omitempty"`
	Sizes       map[string]int  `json:"sizes,omitempty"`
	Total       int             `json:"total_quantity"`
}
