package ledger

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mdhome/bella-api/internal/application/dto"
	"github.com/mdhome/bella-api/internal/domain"
	"github.com/mdhome/bella-api/internal/domain/entity"
	"github.com/mdhome/bella-api/internal/domain/repository"
)

// UseCase es el libro de clientas: mantiene la deuda de cada clienta y el
// historial de movimientos (compra, pago, prueba) que la justifica. Toda
// operación que muta estado corre dentro de una transacción del TxRunner.
type UseCase struct {
	tx      TxRunner
	clients repository.ClientRepository
	stock   repository.StockRepository
}

// NewUseCase construye el caso de uso. clients y stock se usan para lecturas
// fuera de transacción; las mutaciones pasan por tx.
func NewUseCase(tx TxRunner, clients repository.ClientRepository, stock repository.StockRepository) *UseCase {
	return &UseCase{tx: tx, clients: clients, stock: stock}
}

// purchaseSpec entrada interna ya validada para registrar una compra.
// total es el precio de la línea (unitario × cantidad); amount lo pagado.
type purchaseSpec struct {
	size      string
	quantity  int
	total     decimal.Decimal
	payment   string
	amount    decimal.Decimal
	date      time.Time
	stockHeld bool // true si el stock ya fue descontado por una prueba
}

// CreateClient da de alta una clienta con deuda cero y libro vacío.
func (uc *UseCase) CreateClient(ctx context.Context, in dto.CreateClientRequest) (*dto.ClientResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	client := &entity.Client{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Phone:     in.Phone,
		Email:     in.Email,
		Debt:      decimal.Zero,
		CreatedAt: now,
		UpdatedAt: now,
	}
	err := uc.tx.Run(ctx, func(clients repository.ClientRepository, _ repository.StockRepository) error {
		return clients.Create(client)
	})
	if err != nil {
		return nil, err
	}
	return toClientResponse(client), nil
}

// GetClient devuelve una clienta por id.
func (uc *UseCase) GetClient(ctx context.Context, id string) (*dto.ClientResponse, error) {
	client, err := uc.clients.GetByID(id)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, domain.ErrNotFound
	}
	return toClientResponse(client), nil
}

// ListClients lista todas las clientas ordenadas por nombre.
func (uc *UseCase) ListClients(ctx context.Context) ([]*dto.ClientResponse, error) {
	list, err := uc.clients.List()
	if err != nil {
		return nil, err
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	out := make([]*dto.ClientResponse, 0, len(list))
	for _, c := range list {
		out = append(out, toClientResponse(c))
	}
	return out, nil
}

// Movements devuelve el historial de una clienta, más recientes primero
// (el orden en que la pantalla de movimientos lo mostraba).
func (uc *UseCase) Movements(ctx context.Context, clientID string) ([]dto.MovementResponse, error) {
	client, err := uc.clients.GetByID(clientID)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, domain.ErrNotFound
	}
	movs := make([]entity.Movement, len(client.Movements))
	copy(movs, client.Movements)
	sort.SliceStable(movs, func(i, j int) bool { return movs[i].Date.After(movs[j].Date) })
	out := make([]dto.MovementResponse, 0, len(movs))
	for _, m := range movs {
		out = append(out, toMovementResponse(m))
	}
	return out, nil
}

// Trials devuelve las pruebas pendientes de una clienta.
func (uc *UseCase) Trials(ctx context.Context, clientID string) ([]dto.MovementResponse, error) {
	client, err := uc.clients.GetByID(clientID)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, domain.ErrNotFound
	}
	trials := client.Trials()
	out := make([]dto.MovementResponse, 0, len(trials))
	for _, m := range trials {
		out = append(out, toMovementResponse(m))
	}
	return out, nil
}

// RecordPurchase registra una compra para la clienta.
//
// total = precio unitario × cantidad. Según el modo de pago:
//   - full: amount = total, la deuda no cambia.
//   - partial: requiere 0 < paid_amount < total (estricto: pagar el total
//     no es un pago parcial); la deuda sube en total - paid_amount.
//   - none: amount = 0; la deuda sube en total.
//
// Descuenta stock de la variante que la prenda declare (plana o por talle).
func (uc *UseCase) RecordPurchase(ctx context.Context, clientID string, in dto.RecordPurchaseRequest) (*dto.MovementResponse, error) {
	if in.Item == "" || in.Quantity < 1 {
		return nil, domain.ErrInvalidInput
	}
	date, err := parseDate(in.Date)
	if err != nil {
		return nil, err
	}

	var mov *entity.Movement
	err = uc.tx.Run(ctx, func(clients repository.ClientRepository, stock repository.StockRepository) error {
		// Orden de bloqueo fijo en todas las operaciones: clienta, luego prenda.
		client, err := clients.GetForUpdate(clientID)
		if err != nil {
			return err
		}
		if client == nil {
			return domain.ErrNotFound
		}
		item, err := stock.GetForUpdate(in.Item)
		if err != nil {
			return err
		}
		if item == nil {
			return domain.ErrNotFound
		}
		unitPrice := item.Price
		if in.UnitPrice != nil {
			if in.UnitPrice.IsNegative() {
				return domain.ErrInvalidInput
			}
			unitPrice = *in.UnitPrice
		}
		spec := purchaseSpec{
			size:     in.Size,
			quantity: in.Quantity,
			total:    unitPrice.Mul(decimal.NewFromInt(int64(in.Quantity))),
			payment:  in.Payment,
			date:     date,
		}
		if in.PaidAmount != nil {
			spec.amount = *in.PaidAmount
		}
		mov, err = uc.recordPurchase(clients, stock, client, item, spec)
		return err
	})
	if err != nil {
		return nil, err
	}
	resp := toMovementResponse(*mov)
	return &resp, nil
}

// recordPurchase aplica una compra dentro de la transacción en curso.
// client e item ya vienen bloqueados por GetForUpdate. Si spec.stockHeld es
// true el stock no se toca (fue descontado al registrar la prueba).
func (uc *UseCase) recordPurchase(
	clients repository.ClientRepository,
	stock repository.StockRepository,
	client *entity.Client,
	item *entity.StockItem,
	spec purchaseSpec,
) (*entity.Movement, error) {
	var amount decimal.Decimal
	switch spec.payment {
	case entity.PaymentFull:
		amount = spec.total
	case entity.PaymentNone:
		amount = decimal.Zero
	case entity.PaymentPartial:
		// Cota estricta: un parcial igual al total es un pago full mal cargado.
		if !spec.amount.IsPositive() || spec.amount.GreaterThanOrEqual(spec.total) {
			return nil, domain.ErrInvalidInput
		}
		amount = spec.amount
	default:
		return nil, domain.ErrInvalidInput
	}

	if !spec.stockHeld {
		switch item.Kind() {
		case entity.StockKindSized:
			if spec.size == "" {
				return nil, domain.ErrInvalidInput
			}
			if err := item.AdjustSize(spec.size, -spec.quantity); err != nil {
				return nil, err
			}
		default:
			if err := item.Adjust(-spec.quantity); err != nil {
				return nil, err
			}
		}
		item.UpdatedAt = time.Now()
		if err := stock.Update(item); err != nil {
			return nil, err
		}
	}

	mov := &entity.Movement{
		ID:       uuid.New().String(),
		Type:     entity.MovementTypePurchase,
		Date:     spec.date,
		Item:     item.Name,
		Size:     spec.size,
		Quantity: spec.quantity,
		Price:    spec.total,
		Payment:  spec.payment,
		Amount:   amount,
	}
	if err := clients.AppendMovement(client.ID, mov); err != nil {
		return nil, err
	}
	if outstanding := spec.total.Sub(amount); outstanding.IsPositive() {
		if err := clients.UpdateDebt(client.ID, client.Debt.Add(outstanding)); err != nil {
			return nil, err
		}
	}
	return mov, nil
}

// RecordPayment registra un pago a cuenta: baja la deuda y agrega el
// movimiento. El monto debe ser positivo y no superar la deuda actual.
func (uc *UseCase) RecordPayment(ctx context.Context, clientID string, in dto.RecordPaymentRequest) (*dto.MovementResponse, error) {
	if !in.Amount.IsPositive() {
		return nil, domain.ErrInvalidInput
	}
	date, err := parseDate(in.Date)
	if err != nil {
		return nil, err
	}

	var mov *entity.Movement
	err = uc.tx.Run(ctx, func(clients repository.ClientRepository, _ repository.StockRepository) error {
		client, err := clients.GetForUpdate(clientID)
		if err != nil {
			return err
		}
		if client == nil {
			return domain.ErrNotFound
		}
		if in.Amount.GreaterThan(client.Debt) {
			return domain.ErrOverpayment
		}
		mov = &entity.Movement{
			ID:     uuid.New().String(),
			Type:   entity.MovementTypePayment,
			Date:   date,
			Amount: in.Amount,
		}
		if err := clients.AppendMovement(client.ID, mov); err != nil {
			return err
		}
		return clients.UpdateDebt(client.ID, client.Debt.Sub(in.Amount))
	})
	if err != nil {
		return nil, err
	}
	resp := toMovementResponse(*mov)
	return &resp, nil
}

// RecordTrial registra una prueba: reserva stock del talle pedido y agrega
// el movimiento. No toca la deuda. Solo prendas con talles admiten pruebas.
func (uc *UseCase) RecordTrial(ctx context.Context, clientID string, in dto.RecordTrialRequest) (*dto.MovementResponse, error) {
	if in.Item == "" || in.Size == "" || in.Quantity < 1 {
		return nil, domain.ErrInvalidInput
	}
	date, err := parseDate(in.Date)
	if err != nil {
		return nil, err
	}

	var mov *entity.Movement
	err = uc.tx.Run(ctx, func(clients repository.ClientRepository, stock repository.StockRepository) error {
		client, err := clients.GetForUpdate(clientID)
		if err != nil {
			return err
		}
		if client == nil {
			return domain.ErrNotFound
		}
		item, err := stock.GetForUpdate(in.Item)
		if err != nil {
			return err
		}
		if item == nil {
			return domain.ErrNotFound
		}
		if item.Kind() != entity.StockKindSized {
			return domain.ErrInvalidInput
		}
		if err := item.AdjustSize(in.Size, -in.Quantity); err != nil {
			return err
		}
		item.UpdatedAt = time.Now()
		if err := stock.Update(item); err != nil {
			return err
		}
		mov = &entity.Movement{
			ID:       uuid.New().String(),
			Type:     entity.MovementTypeTrial,
			Date:     date,
			Item:     item.Name,
			Size:     in.Size,
			Quantity: in.Quantity,
			Price:    item.Price.Mul(decimal.NewFromInt(int64(in.Quantity))),
		}
		return clients.AppendMovement(client.ID, mov)
	})
	if err != nil {
		return nil, err
	}
	resp := toMovementResponse(*mov)
	return &resp, nil
}

// ResolveTrialAsPurchase convierte una prueba en compra: elimina la prueba
// del libro y registra la compra con el stock ya descontado (no vuelve a
// descontar ni exige disponibilidad).
func (uc *UseCase) ResolveTrialAsPurchase(ctx context.Context, clientID, movementID string, in dto.ResolveTrialPurchaseRequest) (*dto.MovementResponse, error) {
	date, err := parseDate(in.Date)
	if err != nil {
		return nil, err
	}

	var mov *entity.Movement
	err = uc.tx.Run(ctx, func(clients repository.ClientRepository, stock repository.StockRepository) error {
		client, err := clients.GetForUpdate(clientID)
		if err != nil {
			return err
		}
		if client == nil {
			return domain.ErrNotFound
		}
		trial := client.FindMovement(movementID)
		if trial == nil || trial.Type != entity.MovementTypeTrial {
			return domain.ErrNotFound
		}
		item, err := stock.GetForUpdate(trial.Item)
		if err != nil {
			return err
		}
		if item == nil {
			// La prenda pudo haberse borrado del catálogo; la compra se
			// registra igual con los datos de la prueba.
			item = &entity.StockItem{Name: trial.Item, Price: decimal.Zero}
		}
		if err := clients.RemoveMovement(client.ID, trial.ID); err != nil {
			return err
		}
		spec := purchaseSpec{
			size:      trial.Size,
			quantity:  trial.Quantity,
			total:     trial.Price,
			payment:   in.Payment,
			date:      date,
			stockHeld: true,
		}
		if in.PaidAmount != nil {
			spec.amount = *in.PaidAmount
		}
		mov, err = uc.recordPurchase(clients, stock, client, item, spec)
		return err
	})
	if err != nil {
		return nil, err
	}
	resp := toMovementResponse(*mov)
	return &resp, nil
}

// ResolveTrialAsReturn devuelve una prueba: elimina el movimiento y restituye
// el stock del talle. Si la prenda ya no existe en el catálogo, solo se
// elimina la prueba.
func (uc *UseCase) ResolveTrialAsReturn(ctx context.Context, clientID, movementID string) error {
	return uc.tx.Run(ctx, func(clients repository.ClientRepository, stock repository.StockRepository) error {
		client, err := clients.GetForUpdate(clientID)
		if err != nil {
			return err
		}
		if client == nil {
			return domain.ErrNotFound
		}
		trial := client.FindMovement(movementID)
		if trial == nil || trial.Type != entity.MovementTypeTrial {
			return domain.ErrNotFound
		}
		if err := clients.RemoveMovement(client.ID, trial.ID); err != nil {
			return err
		}
		item, err := stock.GetForUpdate(trial.Item)
		if err != nil {
			return err
		}
		if item == nil {
			return nil
		}
		if err := item.AdjustSize(trial.Size, trial.Quantity); err != nil {
			return err
		}
		item.UpdatedAt = time.Now()
		return stock.Update(item)
	})
}

// DeleteClient elimina una clienta. Si tiene deuda pendiente exige la
// confirmación explícita; sin ella devuelve ErrPendingDebt.
func (uc *UseCase) DeleteClient(ctx context.Context, clientID string, confirmedDespiteDebt bool) error {
	return uc.tx.Run(ctx, func(clients repository.ClientRepository, _ repository.StockRepository) error {
		client, err := clients.GetForUpdate(clientID)
		if err != nil {
			return err
		}
		if client == nil {
			return domain.ErrNotFound
		}
		if client.Debt.IsPositive() && !confirmedDespiteDebt {
			return domain.ErrPendingDebt
		}
		return clients.Delete(client.ID)
	})
}

// parseDate interpreta una fecha YYYY-MM-DD del request. Vacía significa hoy.
func parseDate(s string) (time.Time, error) {
	if s == "" {
		now := time.Now().UTC()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, domain.ErrInvalidInput
	}
	return t, nil
}

func toClientResponse(c *entity.Client) *dto.ClientResponse {
	return &dto.ClientResponse{
		ID:        c.ID,
		LegacyID:  c.LegacyID,
		Name:      c.Name,
		Phone:     c.Phone,
		Email:     c.Email,
		Debt:      c.Debt,
		HasTrials: c.HasTrials(),
	}
}

func toMovementResponse(m entity.Movement) dto.MovementResponse {
	return dto.MovementResponse{
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
