package reports

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mdhome/bella-api/internal/application/dto"
	"github.com/mdhome/bella-api/internal/domain"
	"github.com/mdhome/bella-api/internal/domain/entity"
	"github.com/mdhome/bella-api/internal/domain/repository"
)

// costEstimateRate se usa cuando una venta referencia una prenda que ya no
// está en el catálogo: se estima el costo como 60% del precio de venta.
var costEstimateRate = decimal.NewFromFloat(0.6)

// UseCase reportes de ventas. Las ventas no se persisten aparte: son la vista
// derivada de las compras de todas las clientas, reconstruida en cada
// consulta.
type UseCase struct {
	clients repository.ClientRepository
	stock   repository.StockRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(clients repository.ClientRepository, stock repository.StockRepository) *UseCase {
	return &UseCase{clients: clients, stock: stock}
}

// SalesBetween devuelve las compras de todas las clientas dentro del rango
// [from, to], más recientes primero, cada una etiquetada con su clienta.
func (uc *UseCase) SalesBetween(ctx context.Context, from, to time.Time) ([]dto.SaleResponse, error) {
	if from.After(to) {
		return nil, domain.ErrInvalidInput
	}
	list, err := uc.clients.List()
	if err != nil {
		return nil, err
	}
	var sales []dto.SaleResponse
	for _, client := range list {
		for _, m := range client.Movements {
			if m.Type != entity.MovementTypePurchase {
				continue
			}
			if m.Date.Before(from) || m.Date.After(to) {
				continue
			}
			sales = append(sales, dto.SaleResponse{
				MovementID: m.ID,
				ClientID:   client.ID,
				ClientName: client.Name,
				Date:       m.Date.Format("2006-01-02"),
				Item:       m.Item,
				Size:       m.Size,
				Quantity:   m.Quantity,
				Price:      m.Price,
				Payment:    m.Payment,
				Amount:     m.Amount,
			})
		}
	}
	sort.SliceStable(sales, func(i, j int) bool { return sales[i].Date > sales[j].Date })
	return sales, nil
}

// Statistics calcula el panel de la página de ventas para el rango dado:
// cantidad de ventas, deuda total de clientas, costo y neto de lo vendido,
// ganancia de ventas, capital invertido y proyectado del stock actual, y
// ganancia total.
func (uc *UseCase) Statistics(ctx context.Context, from, to time.Time) (*dto.StatisticsResponse, error) {
	sales, err := uc.SalesBetween(ctx, from, to)
	if err != nil {
		return nil, err
	}
	clients, err := uc.clients.List()
	if err != nil {
		return nil, err
	}
	items, err := uc.stock.List()
	if err != nil {
		return nil, err
	}

	byKey := make(map[string]*entity.StockItem, len(items))
	for _, item := range items {
		byKey[item.Key()] = item
	}

	totalDebts := decimal.Zero
	for _, c := range clients {
		totalDebts = totalDebts.Add(c.Debt)
	}

	costOfSales := decimal.Zero
	netSales := decimal.Zero
	for _, sale := range sales {
		netSales = netSales.Add(sale.Price)
		if item, ok := byKey[entity.NormalizeName(sale.Item)]; ok {
			qty := decimal.NewFromInt(int64(sale.Quantity))
			costOfSales = costOfSales.Add(item.CostPrice.Mul(qty))
		} else {
			// Prenda fuera de catálogo: costo estimado sobre el total de la línea.
			costOfSales = costOfSales.Add(sale.Price.Mul(costEstimateRate))
		}
	}

	invested := decimal.Zero
	projected := decimal.Zero
	for _, item := range items {
		qty := decimal.NewFromInt(int64(item.TotalQuantity()))
		invested = invested.Add(item.CostPrice.Mul(qty))
		projected = projected.Add(item.Price.Mul(qty))
	}

	return &dto.StatisticsResponse{
		SalesCount:       len(sales),
		TotalDebts:       totalDebts,
		CostOfSales:      costOfSales,
		NetSales:         netSales,
		SalesProfit:      netSales.Sub(costOfSales),
		InvestedCapital:  invested,
		ProjectedCapital: projected,
		TotalProfit:      projected.Sub(invested),
	}, nil
}
