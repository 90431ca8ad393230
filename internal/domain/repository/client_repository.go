package repository

import (
	"github.com/shopspring/decimal"

	"github.com/mdhome/bella-api/internal/domain/entity"
)

// ClientRepository define el puerto de persistencia para Client y su libro
// de movimientos. Los movimientos viajan cargados dentro del Client.
type ClientRepository interface {
	Create(client *entity.Client) error
	GetByID(id string) (*entity.Client, error)
	// GetForUpdate bloquea la fila de la clienta para la transacción en curso
	// (SELECT FOR UPDATE en PostgreSQL).
	GetForUpdate(id string) (*entity.Client, error)
	List() ([]*entity.Client, error)
	// UpdateDebt persiste el nuevo saldo mantenido.
	UpdateDebt(clientID string, debt decimal.Decimal) error
	AppendMovement(clientID string, mov *entity.Movement) error
	RemoveMovement(clientID, movementID string) error
	Delete(id string) error
}
