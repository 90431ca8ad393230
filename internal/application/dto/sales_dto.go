package dto

import "github.com/shopspring/decimal"

// SaleResponse una venta derivada (compra de cualquier clienta) en el período.
type SaleResponse struct {
	MovementID string          `json:"movement_id"`
	ClientID   string          `json:"client_id"`
	ClientName string          `json:"client_name"`
	Date       string          `json:"date"`
	Item       string          `json:"item"`
	Size       string          `json:"size,omitempty"`
	Quantity   int             `json:"quantity"`
	Price      decimal.Decimal `json:"price"`
	Payment    string          `json:"payment"`
	Amount     decimal.Decimal `json:"amount"`
}

// StatisticsResponse el panel de estadísticas de la página de ventas.
type StatisticsResponse struct {
	SalesCount       int             `json:"sales_count"`
	TotalDebts       decimal.Decimal `json:"total_debts"`
	CostOfSales      decimal.Decimal `json:"cost_of_sales"`
	NetSales         decimal.Decimal `json:"net_sales"`
	SalesProfit      decimal.Decimal `json:"sales_profit"`
	InvestedCapital  decimal.Decimal `json:"invested_capital"`
	ProjectedCapital decimal.Decimal `json:"projected_capital"`
	TotalProfit      decimal.Decimal `json:"total_profit"`
}
