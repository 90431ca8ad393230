// Package ledger contiene la aritmética pura del libro de clientas.
package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/mdhome/bella-api/internal/domain/entity"
)

// ReplayDebt recalcula la deuda de una clienta desde su historial:
// suma de porciones impagas de compras menos suma de pagos. Las pruebas no
// participan. Es el valor contra el que se audita el campo Debt mantenido.
func ReplayDebt(movements []entity.Movement) decimal.Decimal {
	debt := decimal.Zero
	for _, m := range movements {
		switch m.Type {
		case entity.MovementTypePurchase:
			debt = debt.Add(m.Outstanding())
		case entity.MovementTypePayment:
			debt = debt.Sub(m.Amount)
		}
	}
	return debt
}

// Consistent informa si la deuda mantenida coincide con el replay del
// historial.
func Consistent(c *entity.Client) bool {
	return c.Debt.Equal(ReplayDebt(c.Movements))
}
