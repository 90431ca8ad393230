package catalog

import (
	"context"
	"sort"
	"time"

	"github.com/mdhome/bella-api/internal/application/dto"
	"github.com/mdhome/bella-api/internal/domain"
	"github.com/mdhome/bella-api/internal/domain/entity"
	"github.com/mdhome/bella-api/internal/domain/repository"
)

// UseCase casos de uso CRUD del catálogo de prendas. Los descuentos por
// compra/prueba no pasan por acá: los maneja el libro (ledger) en su
// transacción.
type UseCase struct {
	repo repository.StockRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(repo repository.StockRepository) *UseCase {
	return &UseCase{repo: repo}
}

// CreateItem da de alta una prenda. El nombre es único sin distinguir
// mayúsculas; la request debe traer exactamente una variante de stock
// (quantity o sizes).
func (uc *UseCase) CreateItem(ctx context.Context, in dto.CreateStockItemRequest) (*dto.StockItemResponse, error) {
	if in.Name == "" || in.CostPrice.IsNegative() || in.Price.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	if (in.Quantity == nil) == (in.Sizes == nil) {
		return nil, domain.ErrInvalidInput
	}
	if in.Quantity != nil && *in.Quantity < 0 {
		return nil, domain.ErrInvalidInput
	}
	for _, n := range in.Sizes {
		if n < 0 {
			return nil, domain.ErrInvalidInput
		}
	}
	existing, err := uc.repo.GetByName(in.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	item := &entity.StockItem{
		Name:        in.Name,
		Description: in.Description,
		CostPrice:   in.CostPrice,
		Price:       in.Price,
		Quantity:    in.Quantity,
		Sizes:       in.Sizes,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(item); err != nil {
		return nil, err
	}
	return toStockItemResponse(item), nil
}

// GetItem devuelve una prenda por nombre.
func (uc *UseCase) GetItem(ctx context.Context, name string) (*dto.StockItemResponse, error) {
	item, err := uc.repo.GetByName(name)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	return toStockItemResponse(item), nil
}

// ListItems lista el catálogo ordenado por nombre.
func (uc *UseCase) ListItems(ctx context.Context) ([]*dto.StockItemResponse, error) {
	list, err := uc.repo.List()
	if err != nil {
		return nil, err
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	out := make([]*dto.StockItemResponse, 0, len(list))
	for _, item := range list {
		out = append(out, toStockItemResponse(item))
	}
	return out, nil
}

// UpdateItem edita precios, descripción o cantidad plana de una prenda.
// La variante de stock no cambia: quantity sobre una prenda con talles es
// entrada inválida.
func (uc *UseCase) UpdateItem(ctx context.Context, name string, in dto.UpdateStockItemRequest) (*dto.StockItemResponse, error) {
	item, err := uc.repo.GetByName(name)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	if in.Description != nil {
		item.Description = *in.Description
	}
	if in.CostPrice != nil {
		if in.CostPrice.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		item.CostPrice = *in.CostPrice
	}
	if in.Price != nil {
		if in.Price.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		item.Price = *in.Price
	}
	if in.Quantity != nil {
		if item.Kind() != entity.StockKindSimple || *in.Quantity < 0 {
			return nil, domain.ErrInvalidInput
		}
		item.Quantity = in.Quantity
	}
	item.UpdatedAt = time.Now()
	if err := uc.repo.Update(item); err != nil {
		return nil, err
	}
	return toStockItemResponse(item), nil
}

// SetSizeQuantity fija la cantidad de un talle (la edición en línea de la
// tabla de stock). Solo prendas con talles.
func (uc *UseCase) SetSizeQuantity(ctx context.Context, name, size string, quantity int) (*dto.StockItemResponse, error) {
	if size == "" || quantity < 0 {
		return nil, domain.ErrInvalidInput
	}
	item, err := uc.repo.GetByName(name)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	if item.Kind() != entity.StockKindSized {
		return nil, domain.ErrInvalidInput
	}
	item.Sizes[size] = quantity
	item.UpdatedAt = time.Now()
	if err := uc.repo.Update(item); err != nil {
		return nil, err
	}
	return toStockItemResponse(item), nil
}

// DeleteItem elimina una prenda del catálogo. Las compras y pruebas ya
// registradas conservan el nombre como referencia histórica.
func (uc *UseCase) DeleteItem(ctx context.Context, name string) error {
	item, err := uc.repo.GetByName(name)
	if err != nil {
		return err
	}
	if item == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(name)
}

func toStockItemResponse(item *entity.StockItem) *dto.StockItemResponse {
	return &dto.StockItemResponse{
		Name:        item.Name,
		Description: item.Description,
		CostPrice:   item.CostPrice,
		Price:       item.Price,
		Kind:        item.Kind(),
		Quantity:    item.Quantity,
		Sizes:       item.Sizes,
		Total:       item.TotalQuantity(),
	}
}
