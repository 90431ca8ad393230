package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrOverpayment       = errors.New("el pago supera la deuda actual")
	ErrPendingDebt       = errors.New("la clienta tiene deuda pendiente")
	ErrPersistence       = errors.New("error de persistencia")
)
