// Package memstore implementa los puertos de persistencia en memoria.
// Es el backend del modo local (el rol que cumplía el almacenamiento del
// navegador en el sistema anterior) y el store de los tests. Una sola
// goroutine de mutación a la vez: el TxRunner trabaja sobre una copia del
// estado y la publica recién cuando el callback termina sin error, así un
// fallo a mitad de operación no deja estado parcial visible.
package memstore

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/mdhome/bella-api/internal/application/ledger"
	"github.com/mdhome/bella-api/internal/domain"
	"github.com/mdhome/bella-api/internal/domain/entity"
	"github.com/mdhome/bella-api/internal/domain/repository"
)

var (
	_ repository.ClientRepository = (*Store)(nil)
	_ repository.StockRepository  = (*lockedStock)(nil)
	_ ledger.TxRunner             = (*Store)(nil)
)

// Store es el almacén en memoria de las tres colecciones.
type Store struct {
	mu sync.RWMutex
	st *state
}

// state es el contenido completo del almacén. nextClientID es el contador
// incremental que el sistema anterior guardaba junto a las colecciones.
type state struct {
	stock        map[string]*entity.StockItem // clave: nombre normalizado
	clients      map[string]*entity.Client
	nextClientID int
}

// New crea un almacén vacío.
func New() *Store {
	return &Store{st: &state{
		stock:        make(map[string]*entity.StockItem),
		clients:      make(map[string]*entity.Client),
		nextClientID: 1,
	}}
}

// Run ejecuta fn contra una copia del estado y la publica solo si fn no
// devuelve error. Equivale al Commit/Rollback del backend PostgreSQL.
func (s *Store) Run(ctx context.Context, fn func(
	clients repository.ClientRepository,
	stock repository.StockRepository,
) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	scratch := s.st.clone()
	if err := fn(&clientView{st: scratch}, &stockView{st: scratch}); err != nil {
		return err
	}
	s.st = scratch
	return nil
}

// --- repository.ClientRepository (lecturas y mutaciones directas) ---

func (s *Store) Create(client *entity.Client) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return (&clientView{st: s.st}).Create(client)
}

func (s *Store) GetByID(id string) (*entity.Client, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return (&clientView{st: s.st}).GetByID(id)
}

func (s *Store) GetForUpdate(id string) (*entity.Client, error) {
	return s.GetByID(id)
}

func (s *Store) List() ([]*entity.Client, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return (&clientView{st: s.st}).List()
}

func (s *Store) UpdateDebt(clientID string, debt decimal.Decimal) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return (&clientView{st: s.st}).UpdateDebt(clientID, debt)
}

func (s *Store) AppendMovement(clientID string, mov *entity.Movement) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return (&clientView{st: s.st}).AppendMovement(clientID, mov)
}

func (s *Store) RemoveMovement(clientID, movementID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return (&clientView{st: s.st}).RemoveMovement(clientID, movementID)
}

func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return (&clientView{st: s.st}).Delete(id)
}

// --- repository.StockRepository ---

// Stock devuelve una vista del almacén que implementa StockRepository.
// Store implementa ambos puertos pero los métodos de stock chocan con los de
// clients en nombre, así que el puerto de stock se expone por acá.
func (s *Store) Stock() repository.StockRepository {
	return &lockedStock{s: s}
}

type lockedStock struct {
	s *Store
}

func (l *lockedStock) Create(item *entity.StockItem) error {
	l.s.mu.Lock()
	defer l.s.mu.Unlock()
	return (&stockView{st: l.s.st}).Create(item)
}

func (l *lockedStock) GetByName(name string) (*entity.StockItem, error) {
	l.s.mu.RLock()
	defer l.s.mu.RUnlock()
	return (&stockView{st: l.s.st}).GetByName(name)
}

func (l *lockedStock) GetForUpdate(name string) (*entity.StockItem, error) {
	return l.GetByName(name)
}

func (l *lockedStock) List() ([]*entity.StockItem, error) {
	l.s.mu.RLock()
	defer l.s.mu.RUnlock()
	return (&stockView{st: l.s.st}).List()
}

func (l *lockedStock) Update(item *entity.StockItem) error {
	l.s.mu.Lock()
	defer l.s.mu.Unlock()
	return (&stockView{st: l.s.st}).Update(item)
}

func (l *lockedStock) Delete(name string) error {
	l.s.mu.Lock()
	defer l.s.mu.Unlock()
	return (&stockView{st: l.s.st}).Delete(name)
}

// --- vistas sin lock (se usan con el lock tomado o sobre el scratch de Run) ---

type clientView struct {
	st *state
}

func (v *clientView) Create(client *entity.Client) error {
	if _, ok := v.st.clients[client.ID]; ok {
		return domain.ErrDuplicate
	}
	c := copyClient(client)
	if c.LegacyID == 0 {
		c.LegacyID = v.st.nextClientID
		v.st.nextClientID++
	} else if c.LegacyID >= v.st.nextClientID {
		v.st.nextClientID = c.LegacyID + 1
	}
	client.LegacyID = c.LegacyID
	v.st.clients[c.ID] = c
	return nil
}

func (v *clientView) GetByID(id string) (*entity.Client, error) {
	c, ok := v.st.clients[id]
	if !ok {
		return nil, nil
	}
	return copyClient(c), nil
}

func (v *clientView) GetForUpdate(id string) (*entity.Client, error) {
	return v.GetByID(id)
}

func (v *clientView) List() ([]*entity.Client, error) {
	out := make([]*entity.Client, 0, len(v.st.clients))
	for _, c := range v.st.clients {
		out = append(out, copyClient(c))
	}
	return out, nil
}

func (v *clientView) UpdateDebt(clientID string, debt decimal.Decimal) error {
	c, ok := v.st.clients[clientID]
	if !ok {
		return domain.ErrNotFound
	}
	c.Debt = debt
	return nil
}

func (v *clientView) AppendMovement(clientID string, mov *entity.Movement) error {
	c, ok := v.st.clients[clientID]
	if !ok {
		return domain.ErrNotFound
	}
	c.Movements = append(c.Movements, *mov)
	return nil
}

func (v *clientView) RemoveMovement(clientID, movementID string) error {
	c, ok := v.st.clients[clientID]
	if !ok {
		return domain.ErrNotFound
	}
	for i := range c.Movements {
		if c.Movements[i].ID == movementID {
			c.Movements = append(c.Movements[:i], c.Movements[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

func (v *clientView) Delete(id string) error {
	if _, ok := v.st.clients[id]; !ok {
		return domain.ErrNotFound
	}
	delete(v.st.clients, id)
	return nil
}

type stockView struct {
	st *state
}

func (v *stockView) Create(item *entity.StockItem) error {
	key := item.Key()
	if _, ok := v.st.stock[key]; ok {
		return domain.ErrDuplicate
	}
	v.st.stock[key] = copyStockItem(item)
	return nil
}

func (v *stockView) GetByName(name string) (*entity.StockItem, error) {
	item, ok := v.st.stock[entity.NormalizeName(name)]
	if !ok {
		return nil, nil
	}
	return copyStockItem(item), nil
}

func (v *stockView) GetForUpdate(name string) (*entity.StockItem, error) {
	return v.GetByName(name)
}

func (v *stockView) List() ([]*entity.StockItem, error) {
	out := make([]*entity.StockItem, 0, len(v.st.stock))
	for _, item := range v.st.stock {
		out = append(out, copyStockItem(item))
	}
	return out, nil
}

func (v *stockView) Update(item *entity.StockItem) error {
	key := item.Key()
	if _, ok := v.st.stock[key]; !ok {
		return domain.ErrNotFound
	}
	v.st.stock[key] = copyStockItem(item)
	return nil
}

func (v *stockView) Delete(name string) error {
	key := entity.NormalizeName(name)
	if _, ok := v.st.stock[key]; !ok {
		return domain.ErrNotFound
	}
	delete(v.st.stock, key)
	return nil
}

// --- copias profundas ---

func (s *state) clone() *state {
	next := &state{
		stock:        make(map[string]*entity.StockItem, len(s.stock)),
		clients:      make(map[string]*entity.Client, len(s.clients)),
		nextClientID: s.nextClientID,
	}
	for k, item := range s.stock {
		next.stock[k] = copyStockItem(item)
	}
	for k, c := range s.clients {
		next.clients[k] = copyClient(c)
	}
	return next
}

func copyStockItem(item *entity.StockItem) *entity.StockItem {
	out := *item
	if item.Quantity != nil {
		q := *item.Quantity
		out.Quantity = &q
	}
	if item.Sizes != nil {
		out.Sizes = make(map[string]int, len(item.Sizes))
		for size, n := range item.Sizes {
			out.Sizes[size] = n
		}
	}
	return &out
}

func copyClient(c *entity.Client) *entity.Client {
	out := *c
	if c.Movements != nil {
		out.Movements = make([]entity.Movement, len(c.Movements))
		copy(out.Movements, c.Movements)
	}
	return &out
}
