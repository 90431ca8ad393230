package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mdhome/bella-api/internal/domain"
	"github.com/mdhome/bella-api/internal/domain/entity"
)

// Los nombres de prenda identifican sin distinguir mayúsculas ni forma de
// composición Unicode.
func TestNormalizeName_MayusculasYAcentos(t *testing.T) {
	assert.Equal(t, entity.NormalizeName("Remera Básica"), entity.NormalizeName("REMERA BÁSICA"))
	// "á" precompuesta vs "a" + combinante
	assert.Equal(t, entity.NormalizeName("Básica"), entity.NormalizeName("Básica"))
	assert.NotEqual(t, entity.NormalizeName("Remera"), entity.NormalizeName("Pollera"))
}

func TestStockItem_Kind(t *testing.T) {
	q := 5
	plana := &entity.StockItem{Name: "Cartera", Quantity: &q}
	talles := &entity.StockItem{Name: "Jean", Sizes: map[string]int{"38": 2}}

	assert.Equal(t, entity.StockKindSimple, plana.Kind())
	assert.Equal(t, entity.StockKindSized, talles.Kind())
}

func TestAdjust_NoPermiteNegativo(t *testing.T) {
	q := 2
	item := &entity.StockItem{Name: "Cartera", Quantity: &q}

	require.NoError(t, item.Adjust(-2))
	assert.Equal(t, 0, *item.Quantity)

	err := item.Adjust(-1)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, 0, *item.Quantity, "un ajuste rechazado no debe tocar la cantidad")
}

func TestAdjustSize_TalleInexistenteEsStockCero(t *testing.T) {
	item := &entity.StockItem{Name: "Jean", Sizes: map[string]int{"38": 1}}

	err := item.AdjustSize("40", -1)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	require.NoError(t, item.AdjustSize("40", 3))
	assert.Equal(t, 3, item.Sizes["40"])
}

func TestAdjust_VarianteEquivocada(t *testing.T) {
	item := &entity.StockItem{Name: "Jean", Sizes: map[string]int{"38": 1}}
	assert.ErrorIs(t, item.Adjust(-1), domain.ErrInvalidInput)

	q := 1
	plana := &entity.StockItem{Name: "Cartera", Quantity: &q}
	assert.ErrorIs(t, plana.AdjustSize("38", -1), domain.ErrInvalidInput)
}

func TestTotalQuantity_SumaTalles(t *testing.T) {
	item := &entity.StockItem{Name: "Jean", Sizes: map[string]int{"38": 2, "40": 3}}
	assert.Equal(t, 5, item.TotalQuantity())
}
