package domain

import "errors"

// Errores de dominio (sin dependencias externas).
// Cada uno corresponde a una señal distinta para el llamador; ninguno se reintenta internamente.
var (
	ErrNotFound             = errors.New("recurso no encontrado")
	ErrInvalidInput         = errors.New("entrada inválida")
	ErrDuplicate            = errors.New("recurso duplicado")
	ErrDuplicatePart        = errors.New("el número de parte ya existe")
	ErrConfigurationMissing = errors.New("configuración de precios no registrada")
	ErrInvalidQuantity      = errors.New("cantidad o precio inválido")
	ErrInsufficientStock    = errors.New("stock insuficiente")
	ErrInvalidState         = errors.New("estado inválido para la operación")
	ErrOverReceipt          = errors.New("no se puede recibir más de lo ordenado")
)
