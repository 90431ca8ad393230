package entity

import (
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"

	"github.com/mdhome/bella-api/internal/domain"
)

// Variantes de stock: una prenda maneja cantidad plana o cantidades por talle,
// nunca ambas.
const (
	StockKindSimple = "simple" // cantidad única (Quantity)
	StockKindSized  = "sized"  // cantidad por talle (Sizes)
)

// StockItem representa una prenda del catálogo. El nombre es la clave única,
// comparada sin distinguir mayúsculas ni forma Unicode (ver NormalizeName).
// CostPrice y Price son por unidad; la cantidad vive en Quantity o en Sizes
// según la variante.
type StockItem struct {
	Name        string
	Description string
	CostPrice   decimal.Decimal
	Price       decimal.Decimal
	Quantity    *int           // variante simple
	Sizes       map[string]int // variante por talle
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

var foldCaser = cases.Fold()

// NormalizeName devuelve la clave canónica de un nombre de prenda:
// case folding Unicode + normalización NFC, para que "Remera Básica" y
// "remera básica" sean la misma prenda.
func NormalizeName(name string) string {
	return foldCaser.String(norm.NFC.String(name))
}

// Key devuelve la clave canónica del nombre de la prenda.
func (s *StockItem) Key() string {
	return NormalizeName(s.Name)
}

// Kind devuelve la variante de stock de la prenda.
func (s *StockItem) Kind() string {
	if s.Sizes != nil {
		return StockKindSized
	}
	return StockKindSimple
}

// Available devuelve las unidades disponibles para un talle dado, o la
// cantidad plana si la prenda no maneja talles (size se ignora en ese caso).
func (s *StockItem) Available(size string) int {
	if s.Sizes != nil {
		return s.Sizes[size]
	}
	if s.Quantity != nil {
		return *s.Quantity
	}
	return 0
}

// TotalQuantity suma las unidades de todos los talles, o devuelve la cantidad
// plana. Usado por reportes para capital invertido/proyectado.
func (s *StockItem) TotalQuantity() int {
	if s.Sizes != nil {
		total := 0
		for _, n := range s.Sizes {
			total += n
		}
		return total
	}
	if s.Quantity != nil {
		return *s.Quantity
	}
	return 0
}

// Adjust suma delta a la cantidad plana. La cantidad nunca queda negativa:
// un delta que la haría negativa devuelve ErrInsufficientStock sin aplicar.
func (s *StockItem) Adjust(delta int) error {
	if s.Quantity == nil {
		return domain.ErrInvalidInput
	}
	next := *s.Quantity + delta
	if next < 0 {
		return domain.ErrInsufficientStock
	}
	*s.Quantity = next
	return nil
}

// AdjustSize suma delta a la cantidad de un talle. Mismo invariante que
// Adjust: ningún talle queda negativo.
func (s *StockItem) AdjustSize(size string, delta int) error {
	if s.Sizes == nil {
		return domain.ErrInvalidInput
	}
	next := s.Sizes[size] + delta
	if next < 0 {
		return domain.ErrInsufficientStock
	}
	s.Sizes[size] = next
	return nil
}
