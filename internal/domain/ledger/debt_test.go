package ledger_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/mdhome/bella-api/internal/domain/entity"
	"github.com/mdhome/bella-api/internal/domain/ledger"
)

func mov(tipo string, price, amount float64) entity.Movement {
	return entity.Movement{
		Type:   tipo,
		Date:   time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC),
		Price:  decimal.NewFromFloat(price),
		Amount: decimal.NewFromFloat(amount),
	}
}

func TestReplayDebt_LibroVacio_EsCero(t *testing.T) {
	assert.True(t, ledger.ReplayDebt(nil).IsZero(), "sin movimientos la deuda es cero")
}

// La deuda es la suma de porciones impagas de compras menos los pagos.
func TestReplayDebt_ComprasYPagos(t *testing.T) {
	movimientos := []entity.Movement{
		mov(entity.MovementTypePurchase, 1000, 0),    // fiado: debe 1000
		mov(entity.MovementTypePurchase, 500, 200),   // parcial: debe 300 más
		mov(entity.MovementTypePayment, 0, 400),      // paga 400
		mov(entity.MovementTypePurchase, 800, 800),   // full: no cambia la deuda
	}
	deuda := ledger.ReplayDebt(movimientos)
	assert.True(t, deuda.Equal(decimal.NewFromInt(900)),
		"1000 + 300 - 400 + 0 = 900, se obtuvo %s", deuda)
}

// Las pruebas no participan en la deuda aunque lleven precio.
func TestReplayDebt_IgnoraPruebas(t *testing.T) {
	movimientos := []entity.Movement{
		mov(entity.MovementTypeTrial, 2500, 0),
		mov(entity.MovementTypePurchase, 100, 0),
	}
	deuda := ledger.ReplayDebt(movimientos)
	assert.True(t, deuda.Equal(decimal.NewFromInt(100)),
		"solo la compra aporta deuda, se obtuvo %s", deuda)
}

func TestConsistent_DetectaDesvio(t *testing.T) {
	c := &entity.Client{
		Debt:      decimal.NewFromInt(100),
		Movements: []entity.Movement{mov(entity.MovementTypePurchase, 100, 0)},
	}
	assert.True(t, ledger.Consistent(c))

	c.Debt = decimal.NewFromInt(99)
	assert.False(t, ledger.Consistent(c), "una deuda mantenida distinta del replay es inconsistente")
}
