package ledger

import (
	"context"

	"github.com/mdhome/bella-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción del store, pasando
// repositorios atados a esa transacción. Garantiza la atomicidad del libro:
// o se confirma el cambio completo (stock + deuda + movimiento) o nada queda
// visible.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		clients repository.ClientRepository,
		stock repository.StockRepository,
	) error) error
}
