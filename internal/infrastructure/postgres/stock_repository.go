package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/mdhome/bella-api/internal/domain"
	"github.com/mdhome/bella-api/internal/domain/entity"
	"github.com/mdhome/bella-api/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo implementación de StockRepository sobre PostgreSQL (usable con
// pool o tx). La clave primaria es name_key (entity.NormalizeName del nombre);
// la variante por talle se guarda como JSONB en sizes y la plana en quantity.
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

const stockColumns = `name_key, name, description, cost_price, price, quantity, sizes, created_at, updated_at`

// Create persiste una prenda nueva.
func (r *StockRepo) Create(item *entity.StockItem) error {
	sizes, err := marshalSizes(item.Sizes)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO stock_items (` + stockColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err = r.q.Exec(context.Background(), query,
		item.Key(), item.Name, item.Description, item.CostPrice, item.Price,
		item.Quantity, sizes, item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert stock item: %w", err)
	}
	return nil
}

// GetByName obtiene una prenda por nombre (clave normalizada).
func (r *StockRepo) GetByName(name string) (*entity.StockItem, error) {
	query := `SELECT ` + stockColumns + ` FROM stock_items WHERE name_key = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, entity.NormalizeName(name)))
}

// GetForUpdate obtiene una prenda y bloquea la fila (SELECT FOR UPDATE).
func (r *StockRepo) GetForUpdate(name string) (*entity.StockItem, error) {
	query := `SELECT ` + stockColumns + ` FROM stock_items WHERE name_key = $1 FOR UPDATE`
	return r.scanOne(r.q.QueryRow(context.Background(), query, entity.NormalizeName(name)))
}

// List devuelve el catálogo completo.
func (r *StockRepo) List() ([]*entity.StockItem, error) {
	query := `SELECT ` + stockColumns + ` FROM stock_items ORDER BY name`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list stock items: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockItem
	for rows.Next() {
		item, err := scanStockItem(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, item)
	}
	return list, rows.Err()
}

// Update actualiza una prenda existente (precios, descripción y cantidades).
func (r *StockRepo) Update(item *entity.StockItem) error {
	sizes, err := marshalSizes(item.Sizes)
	if err != nil {
		return err
	}
	query := `
		UPDATE stock_items
		SET name = $2, description = $3, cost_price = $4, price = $5,
		    quantity = $6, sizes = $7, updated_at = $8
		WHERE name_key = $1`
	tag, err := r.q.Exec(context.Background(), query,
		item.Key(), item.Name, item.Description, item.CostPrice, item.Price,
		item.Quantity, sizes, item.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update stock item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina una prenda por nombre.
func (r *StockRepo) Delete(name string) error {
	_, err := r.q.Exec(context.Background(),
		`DELETE FROM stock_items WHERE name_key = $1`, entity.NormalizeName(name))
	if err != nil {
		return fmt.Errorf("delete stock item: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *StockRepo) scanOne(row pgx.Row) (*entity.StockItem, error) {
	item, err := scanStockItem(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return item, nil
}

func scanStockItem(row rowScanner) (*entity.StockItem, error) {
	var (
		item    entity.StockItem
		nameKey string
		sizes   []byte
	)
	err := row.Scan(
		&nameKey, &item.Name, &item.Description, &item.CostPrice, &item.Price,
		&item.Quantity, &sizes, &item.CreatedAt, &item.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan stock item: %w", err)
	}
	if len(sizes) > 0 {
		if err := json.Unmarshal(sizes, &item.Sizes); err != nil {
			return nil, fmt.Errorf("decode sizes: %w", err)
		}
	}
	return &item, nil
}

// marshalSizes serializa el mapa de talles a JSONB; nil se guarda como NULL
// para distinguir la variante plana.
func marshalSizes(sizes map[string]int) ([]byte, error) {
	if sizes == nil {
		return nil, nil
	}
	b, err := json.Marshal(sizes)
	if err != nil {
		return nil, fmt.Errorf("encode sizes: %w", err)
	}
	return b, nil
}
