package repository

import "github.com/mdhome/bella-api/internal/domain/entity"

// StockRepository define el puerto de persistencia para el catálogo de
// prendas. name es el nombre tal como lo escribió la usuaria; los adaptadores
// resuelven por la clave normalizada (entity.NormalizeName).
type StockRepository interface {
	Create(item *entity.StockItem) error
	GetByName(name string) (*entity.StockItem, error)
	// GetForUpdate bloquea la fila de la prenda para la transacción en curso.
	GetForUpdate(name string) (*entity.StockItem, error)
	List() ([]*entity.StockItem, error)
	Update(item *entity.StockItem) error
	Delete(name string) error
}
