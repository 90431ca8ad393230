package catalog_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mdhome/bella-api/internal/application/catalog"
	"github.com/mdhome/bella-api/internal/application/dto"
	"github.com/mdhome/bella-api/internal/domain"
	"github.com/mdhome/bella-api/internal/infrastructure/memstore"
)

func newUseCase() (*catalog.UseCase, context.Context) {
	return catalog.NewUseCase(memstore.New().Stock()), context.Background()
}

func intPtr(n int) *int { return &n }

func decPtr(v float64) *decimal.Decimal {
	d := decimal.NewFromFloat(v)
	return &d
}

func TestCreateItem_VariantePlana(t *testing.T) {
	uc, ctx := newUseCase()

	item, err := uc.CreateItem(ctx, dto.CreateStockItemRequest{
		Name:      "Cartera",
		CostPrice: decimal.NewFromInt(500),
		Price:     decimal.NewFromInt(1000),
		Quantity:  intPtr(3),
	})
	require.NoError(t, err)

	assert.Equal(t, "simple", item.Kind)
	assert.Equal(t, 3, *item.Quantity)
	assert.Equal(t, 3, item.Total)
	assert.Nil(t, item.Sizes)
}

func TestCreateItem_VariantePorTalle(t *testing.T) {
	uc, ctx := newUseCase()

	item, err := uc.CreateItem(ctx, dto.CreateStockItemRequest{
		Name:  "Jean",
		Price: decimal.NewFromInt(500),
		Sizes: map[string]int{"38": 2, "40": 1},
	})
	require.NoError(t, err)

	assert.Equal(t, "sized", item.Kind)
	assert.Nil(t, item.Quantity)
	assert.Equal(t, 3, item.Total)
}

// Exactamente una variante: ni las dos, ni ninguna.
func TestCreateItem_VarianteObligatoria(t *testing.T) {
	uc, ctx := newUseCase()

	_, err := uc.CreateItem(ctx, dto.CreateStockItemRequest{
		Name: "Cartera", Price: decimal.NewFromInt(100),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "sin variante debe rechazarse")

	_, err = uc.CreateItem(ctx, dto.CreateStockItemRequest{
		Name: "Cartera", Price: decimal.NewFromInt(100),
		Quantity: intPtr(1), Sizes: map[string]int{"38": 1},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "las dos variantes a la vez debe rechazarse")
}

// El nombre es único sin distinguir mayúsculas ni acentos mal compuestos.
func TestCreateItem_DuplicadoInsensibleAMayusculas(t *testing.T) {
	uc, ctx := newUseCase()

	_, err := uc.CreateItem(ctx, dto.CreateStockItemRequest{
		Name: "Remera Básica", Price: decimal.NewFromInt(300), Quantity: intPtr(1),
	})
	require.NoError(t, err)

	_, err = uc.CreateItem(ctx, dto.CreateStockItemRequest{
		Name: "REMERA BÁSICA", Price: decimal.NewFromInt(300), Quantity: intPtr(1),
	})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestCreateItem_PreciosNegativos(t *testing.T) {
	uc, ctx := newUseCase()

	_, err := uc.CreateItem(ctx, dto.CreateStockItemRequest{
		Name: "Cartera", Price: decimal.NewFromInt(-1), Quantity: intPtr(1),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.CreateItem(ctx, dto.CreateStockItemRequest{
		Name: "Cartera", CostPrice: decimal.NewFromInt(-1), Quantity: intPtr(1),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUpdateItem_SoloCamposPresentes(t *testing.T) {
	uc, ctx := newUseCase()
	_, err := uc.CreateItem(ctx, dto.CreateStockItemRequest{
		Name: "Cartera", CostPrice: decimal.NewFromInt(500),
		Price: decimal.NewFromInt(1000), Quantity: intPtr(3),
	})
	require.NoError(t, err)

	item, err := uc.UpdateItem(ctx, "Cartera", dto.UpdateStockItemRequest{
		Price: decPtr(1200),
	})
	require.NoError(t, err)

	assert.True(t, item.Price.Equal(decimal.NewFromInt(1200)))
	assert.True(t, item.CostPrice.Equal(decimal.NewFromInt(500)), "el costo no vino y no debe cambiar")
	assert.Equal(t, 3, *item.Quantity)
}

// La variante de stock no cambia: quantity sobre una prenda con talles es inválido.
func TestUpdateItem_NoCambiaVariante(t *testing.T) {
	uc, ctx := newUseCase()
	_, err := uc.CreateItem(ctx, dto.CreateStockItemRequest{
		Name: "Jean", Price: decimal.NewFromInt(500), Sizes: map[string]int{"38": 2},
	})
	require.NoError(t, err)

	_, err = uc.UpdateItem(ctx, "Jean", dto.UpdateStockItemRequest{Quantity: intPtr(5)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSetSizeQuantity_FijaElTalle(t *testing.T) {
	uc, ctx := newUseCase()
	_, err := uc.CreateItem(ctx, dto.CreateStockItemRequest{
		Name: "Jean", Price: decimal.NewFromInt(500), Sizes: map[string]int{"38": 2},
	})
	require.NoError(t, err)

	item, err := uc.SetSizeQuantity(ctx, "Jean", "40", 4)
	require.NoError(t, err)
	assert.Equal(t, 4, item.Sizes["40"])
	assert.Equal(t, 6, item.Total)

	_, err = uc.SetSizeQuantity(ctx, "Jean", "40", -1)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSetSizeQuantity_SoloPrendasConTalle(t *testing.T) {
	uc, ctx := newUseCase()
	_, err := uc.CreateItem(ctx, dto.CreateStockItemRequest{
		Name: "Cartera", Price: decimal.NewFromInt(1000), Quantity: intPtr(1),
	})
	require.NoError(t, err)

	_, err = uc.SetSizeQuantity(ctx, "Cartera", "U", 2)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestListItems_OrdenadoPorNombre(t *testing.T) {
	uc, ctx := newUseCase()
	for _, name := range []string{"Pollera", "Cartera", "Jean"} {
		_, err := uc.CreateItem(ctx, dto.CreateStockItemRequest{
			Name: name, Price: decimal.NewFromInt(100), Quantity: intPtr(1),
		})
		require.NoError(t, err)
	}

	list, err := uc.ListItems(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "Cartera", list[0].Name)
	assert.Equal(t, "Jean", list[1].Name)
	assert.Equal(t, "Pollera", list[2].Name)
}

func TestDeleteItem(t *testing.T) {
	uc, ctx := newUseCase()
	_, err := uc.CreateItem(ctx, dto.CreateStockItemRequest{
		Name: "Cartera", Price: decimal.NewFromInt(100), Quantity: intPtr(1),
	})
	require.NoError(t, err)

	require.NoError(t, uc.DeleteItem(ctx, "cartera"))
	_, err = uc.GetItem(ctx, "Cartera")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, uc.DeleteItem(ctx, "Cartera"), domain.ErrNotFound)
}
