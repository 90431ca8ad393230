package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento del libro de clientes.
const (
	MovementTypePurchase = "purchase" // compra
	MovementTypePayment  = "payment"  // pago a cuenta
	MovementTypeTrial    = "trial"    // prueba: reserva de stock, no es venta
)

// Modos de pago de una compra.
const (
	PaymentFull    = "full"    // pagó el total al comprar
	PaymentPartial = "partial" // pagó una parte; el resto suma deuda
	PaymentNone    = "none"    // no pagó nada; el total suma deuda
)

// Movement es un evento del libro de una clienta, discriminado por Type.
//
//   - purchase: Item, Size (si la prenda maneja talles), Quantity, Price
//     (total de la línea: precio unitario × cantidad), Payment y Amount
//     (lo efectivamente pagado al momento de comprar).
//   - payment: solo Amount (> 0, aplicado contra la deuda existente).
//   - trial: Item, Size, Quantity y Price informativo; no toca la deuda.
//     El stock queda reservado hasta resolverla como compra o devolución.
//
// Los movimientos se agregan al final y no se modifican. La única excepción
// son las pruebas, que se eliminan del libro al resolverse.
type Movement struct {
	ID       string
	Type     string
	Date     time.Time
	Item     string
	Size     string
	Quantity int
	Price    decimal.Decimal
	Payment  string
	Amount   decimal.Decimal
}

// Outstanding devuelve la porción impaga de una compra (Price - Amount).
// Para cualquier otro tipo de movimiento devuelve cero.
func (m Movement) Outstanding() decimal.Decimal {
	if m.Type != MovementTypePurchase {
		return decimal.Zero
	}
	return m.Price.Sub(m.Amount)
}
