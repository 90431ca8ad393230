package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/mdhome/bella-api/internal/domain"
	"github.com/mdhome/bella-api/internal/domain/entity"
	"github.com/mdhome/bella-api/internal/domain/repository"
)

var _ repository.ClientRepository = (*ClientRepo)(nil)

// ClientRepo implementación de ClientRepository sobre PostgreSQL (usable con
// pool o tx). Los movimientos viven en la tabla movements, ordenados por la
// columna position (BIGSERIAL) que preserva el orden de registro.
type ClientRepo struct {
	q Querier
}

// NewClientRepository construye el adaptador. Pasar pool o tx (Querier).
func NewClientRepository(q Querier) *ClientRepo {
	return &ClientRepo{q: q}
}

// Create persiste una clienta nueva. legacy_id lo asigna la secuencia de la
// tabla y queda cargado en el struct al volver.
func (r *ClientRepo) Create(client *entity.Client) error {
	query := `
		INSERT INTO clients (id, name, phone, email, debt, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING legacy_id`
	err := r.q.QueryRow(context.Background(), query,
		client.ID, client.Name, client.Phone, client.Email, client.Debt,
		client.CreatedAt, client.UpdatedAt,
	).Scan(&client.LegacyID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert client: %w", err)
	}
	return nil
}

// GetByID obtiene una clienta con su libro de movimientos.
func (r *ClientRepo) GetByID(id string) (*entity.Client, error) {
	return r.get(id, false)
}

// GetForUpdate obtiene una clienta bloqueando su fila (SELECT FOR UPDATE).
func (r *ClientRepo) GetForUpdate(id string) (*entity.Client, error) {
	return r.get(id, true)
}

func (r *ClientRepo) get(id string, forUpdate bool) (*entity.Client, error) {
	query := `
		SELECT id, legacy_id, name, phone, email, debt, created_at, updated_at
		FROM clients WHERE id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	var c entity.Client
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&c.ID, &c.LegacyID, &c.Name, &c.Phone, &c.Email, &c.Debt, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get client: %w", err)
	}
	movements, err := r.movementsFor(c.ID)
	if err != nil {
		return nil, err
	}
	c.Movements = movements
	return &c, nil
}

// List devuelve todas las clientas con sus movimientos cargados.
// El volumen es el de un negocio de barrio; dos queries alcanzan.
func (r *ClientRepo) List() ([]*entity.Client, error) {
	rows, err := r.q.Query(context.Background(), `
		SELECT id, legacy_id, name, phone, email, debt, created_at, updated_at
		FROM clients ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	defer rows.Close()

	var list []*entity.Client
	index := make(map[string]*entity.Client)
	for rows.Next() {
		var c entity.Client
		if err := rows.Scan(&c.ID, &c.LegacyID, &c.Name, &c.Phone, &c.Email, &c.Debt, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan client: %w", err)
		}
		list = append(list, &c)
		index[c.ID] = &c
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	movRows, err := r.q.Query(context.Background(), `
		SELECT client_id, id, type, date, item, size, quantity, price, payment, amount
		FROM movements ORDER BY client_id, position`)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer movRows.Close()
	for movRows.Next() {
		var (
			clientID string
			m        entity.Movement
		)
		if err := movRows.Scan(&clientID, &m.ID, &m.Type, &m.Date, &m.Item, &m.Size, &m.Quantity, &m.Price, &m.Payment, &m.Amount); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		if c, ok := index[clientID]; ok {
			c.Movements = append(c.Movements, m)
		}
	}
	return list, movRows.Err()
}

// UpdateDebt persiste el nuevo saldo mantenido de la clienta.
func (r *ClientRepo) UpdateDebt(clientID string, debt decimal.Decimal) error {
	tag, err := r.q.Exec(context.Background(),
		`UPDATE clients SET debt = $2, updated_at = now() WHERE id = $1`, clientID, debt)
	if err != nil {
		return fmt.Errorf("update debt: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// AppendMovement agrega un movimiento al final del libro de la clienta.
func (r *ClientRepo) AppendMovement(clientID string, mov *entity.Movement) error {
	query := `
		INSERT INTO movements (id, client_id, type, date, item, size, quantity, price, payment, amount)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		mov.ID, clientID, mov.Type, mov.Date, mov.Item, mov.Size, mov.Quantity,
		mov.Price, mov.Payment, mov.Amount,
	)
	if err != nil {
		return fmt.Errorf("insert movement: %w", err)
	}
	return nil
}

// RemoveMovement elimina un movimiento del libro (resolución de pruebas).
func (r *ClientRepo) RemoveMovement(clientID, movementID string) error {
	tag, err := r.q.Exec(context.Background(),
		`DELETE FROM movements WHERE id = $1 AND client_id = $2`, movementID, clientID)
	if err != nil {
		return fmt.Errorf("delete movement: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina la clienta; sus movimientos caen por ON DELETE CASCADE.
func (r *ClientRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM clients WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete client: %w", err)
	}
	return nil
}

func (r *ClientRepo) movementsFor(clientID string) ([]entity.Movement, error) {
	rows, err := r.q.Query(context.Background(), `
		SELECT id, type, date, item, size, quantity, price, payment, amount
		FROM movements WHERE client_id = $1 ORDER BY position`, clientID)
	if err != nil {
		return nil, fmt.Errorf("get movements: %w", err)
	}
	defer rows.Close()
	var movements []entity.Movement
	for rows.Next() {
		var m entity.Movement
		if err := rows.Scan(&m.ID, &m.Type, &m.Date, &m.Item, &m.Size, &m.Quantity, &m.Price, &m.Payment, &m.Amount); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		movements = append(movements, m)
	}
	return movements, rows.Err()
}
