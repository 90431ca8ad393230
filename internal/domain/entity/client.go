package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Client representa una clienta del negocio y su libro de movimientos.
// Debt es el saldo impago mantenido por el libro: debe coincidir siempre con
// la suma de porciones impagas de sus compras menos la suma de sus pagos
// (ver ledger.ReplayDebt). LegacyID conserva el id numérico incremental de
// los datos importados del sistema anterior; el ID canónico es el UUID.
type Client struct {
	ID        string
	LegacyID  int
	Name      string
	Phone     string
	Email     string
	Debt      decimal.Decimal
	Movements []Movement
	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasTrials informa si la clienta tiene pruebas sin resolver.
func (c *Client) HasTrials() bool {
	for _, m := range c.Movements {
		if m.Type == MovementTypeTrial {
			return true
		}
	}
	return false
}

// Trials devuelve las pruebas pendientes, en orden de registro.
func (c *Client) Trials() []Movement {
	var trials []Movement
	for _, m := range c.Movements {
		if m.Type == MovementTypeTrial {
			trials = append(trials, m)
		}
	}
	return trials
}

// FindMovement busca un movimiento por id. Devuelve nil si no existe.
func (c *Client) FindMovement(id string) *Movement {
	for i := range c.Movements {
		if c.Movements[i].ID == id {
			return &c.Movements[i]
		}
	}
	return nil
}
