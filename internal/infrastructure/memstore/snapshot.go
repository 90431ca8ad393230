package memstore

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mdhome/bella-api/internal/domain"
	"github.com/mdhome/bella-api/internal/domain/entity"
)

// Colecciones con nombre del contrato de persistencia. "sales" es una vista
// derivada de las compras de todas las clientas: se puede cargar pero no
// guardar.
const (
	CollectionStock   = "stock"
	CollectionClients = "clients"
	CollectionSales   = "sales"
)

// Formato de registro de cada colección (el formato de intercambio que el
// sistema anterior guardaba como JSON).

type stockRecord struct {
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	CostPrice   decimal.Decimal `json:"costPrice"`
	Price       decimal.Decimal `json:"price"`
	Quantity    *int            `json:"quantity,omitempty"`
	Sizes       map[string]int  `json:"sizes,omitempty"`
}

type movementRecord struct {
	ID       string          `json:"id"`
	Type     string          `json:"type"`
	Date     string          `json:"date"`
	Item     string          `json:"item,omitempty"`
	Size     string          `json:"size,omitempty"`
	Quantity int             `json:"quantity,omitempty"`
	Price    decimal.Decimal `json:"price"`
	Payment  string          `json:"payment,omitempty"`
	Amount   decimal.Decimal `json:"amount"`
}

type clientRecord struct {
	ID        string           `json:"id"`
	LegacyID  int              `json:"legacyId,omitempty"`
	Name      string           `json:"name"`
	Phone     string           `json:"phone,omitempty"`
	Email     string           `json:"email,omitempty"`
	Debt      decimal.Decimal  `json:"debt"`
	Movements []movementRecord `json:"movements"`
}

type saleRecord struct {
	ClientID   string `json:"clientId"`
	ClientName string `json:"clientName"`
	movementRecord
}

// LoadCollection devuelve los registros de una colección serializados.
// Guardar y volver a cargar "stock" o "clients" reproduce un conjunto
// equivalente (mismos ids, deudas y secuencias de movimientos).
func (s *Store) LoadCollection(name string) ([]json.RawMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	switch name {
	case CollectionStock:
		items := make([]*entity.StockItem, 0, len(s.st.stock))
		for _, item := range s.st.stock {
			items = append(items, item)
		}
		sort.Slice(items, func(i, j int) bool { return items[i].Key() < items[j].Key() })
		out := make([]json.RawMessage, 0, len(items))
		for _, item := range items {
			raw, err := json.Marshal(stockRecord{
				Name:        item.Name,
				Description: item.Description,
				CostPrice:   item.CostPrice,
				Price:       item.Price,
				Quantity:    item.Quantity,
				Sizes:       item.Sizes,
			})
			if err != nil {
				return nil, fmt.Errorf("%w: %v", domain.ErrPersistence, err)
			}
			out = append(out, raw)
		}
		return out, nil

	case CollectionClients:
		clients := make([]*entity.Client, 0, len(s.st.clients))
		for _, c := range s.st.clients {
			clients = append(clients, c)
		}
		sort.Slice(clients, func(i, j int) bool { return clients[i].ID < clients[j].ID })
		out := make([]json.RawMessage, 0, len(clients))
		for _, c := range clients {
			raw, err := json.Marshal(toClientRecord(c))
			if err != nil {
				return nil, fmt.Errorf("%w: %v", domain.ErrPersistence, err)
			}
			out = append(out, raw)
		}
		return out, nil

	case CollectionSales:
		var out []json.RawMessage
		for _, c := range s.st.clients {
			for _, m := range c.Movements {
				if m.Type != entity.MovementTypePurchase {
					continue
				}
				raw, err := json.Marshal(saleRecord{
					ClientID:       c.ID,
					ClientName:     c.Name,
					movementRecord: toMovementRecord(m),
				})
				if err != nil {
					return nil, fmt.Errorf("%w: %v", domain.ErrPersistence, err)
				}
				out = append(out, raw)
			}
		}
		return out, nil
	}
	return nil, domain.ErrInvalidInput
}

// SaveCollection reemplaza el contenido de una colección. "sales" no es
// autoritativa (se deriva de los movimientos) y no admite escritura.
func (s *Store) SaveCollection(name string, records []json.RawMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch name {
	case CollectionStock:
		stock := make(map[string]*entity.StockItem, len(records))
		now := time.Now()
		for _, raw := range records {
			var rec stockRecord
			if err := json.Unmarshal(raw, &rec); err != nil {
				return fmt.Errorf("%w: %v", domain.ErrPersistence, err)
			}
			item := &entity.StockItem{
				Name:        rec.Name,
				Description: rec.Description,
				CostPrice:   rec.CostPrice,
				Price:       rec.Price,
				Quantity:    rec.Quantity,
				Sizes:       rec.Sizes,
				CreatedAt:   now,
				UpdatedAt:   now,
			}
			stock[item.Key()] = item
		}
		s.st.stock = stock
		return nil

	case CollectionClients:
		clients := make(map[string]*entity.Client, len(records))
		next := 1
		now := time.Now()
		for _, raw := range records {
			var rec clientRecord
			if err := json.Unmarshal(raw, &rec); err != nil {
				return fmt.Errorf("%w: %v", domain.ErrPersistence, err)
			}
			c, err := fromClientRecord(rec, now)
			if err != nil {
				return err
			}
			clients[c.ID] = c
			if c.LegacyID >= next {
				next = c.LegacyID + 1
			}
		}
		s.st.clients = clients
		s.st.nextClientID = next
		return nil
	}
	return domain.ErrInvalidInput
}

func toClientRecord(c *entity.Client) clientRecord {
	movs := make([]movementRecord, 0, len(c.Movements))
	for _, m := range c.Movements {
		movs = append(movs, toMovementRecord(m))
	}
	return clientRecord{
		ID:        c.ID,
		LegacyID:  c.LegacyID,
		Name:      c.Name,
		Phone:     c.Phone,
		Email:     c.Email,
		Debt:      c.Debt,
		Movements: movs,
	}
}

func toMovementRecord(m entity.Movement) movementRecord {
	return movementRecord{
		ID:       m.ID,
		Type:     m.Type,
		Date:     m.Date.Format("2006-01-02"),
		Item:     m.Item,
		Size:     m.Size,
		Quantity: m.Quantity,
		Price:    m.Price,
		Payment:  m.Payment,
		Amount:   m.Amount,
	}
}

func fromClientRecord(rec clientRecord, now time.Time) (*entity.Client, error) {
	c := &entity.Client{
		ID:        rec.ID,
		LegacyID:  rec.LegacyID,
		Name:      rec.Name,
		Phone:     rec.Phone,
		Email:     rec.Email,
		Debt:      rec.Debt,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, m := range rec.Movements {
		date, err := time.Parse("2006-01-02", m.Date)
		if err != nil {
			return nil, fmt.Errorf("%w: fecha de movimiento %q", domain.ErrPersistence, m.Date)
		}
		c.Movements = append(c.Movements, entity.Movement{
			ID:       m.ID,
			Type:     m.Type,
			Date:     date,
			Item:     m.Item,
			Size:     m.Size,
			Quantity: m.Quantity,
			Price:    m.Price,
			Payment:  m.Payment,
			Amount:   m.Amount,
		})
	}
	return c, nil
}
