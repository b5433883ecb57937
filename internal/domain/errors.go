package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")

	// Errores del libro de existencias (stock ledger).
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrSameLocation      = errors.New("ubicación origen y destino son iguales")
	ErrInvalidQuantity   = errors.New("la cantidad debe ser mayor que cero")

	// Errores de la máquina de estados de traslados.
	ErrAlreadyExecuted  = errors.New("el traslado ya fue ejecutado")
	ErrAlreadyCancelled = errors.New("el traslado ya fue cancelado")

	// Guardas de aplicación única (compras, ajustes de inventario, bajas).
	ErrAlreadyApplied = errors.New("el movimiento de stock ya fue aplicado")

	// Eliminación administrativa de saldos.
	ErrBalanceNotEmpty = errors.New("el saldo debe estar en cero para eliminarse")
)
