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

	// Conteo de inventario
	ErrSessionNotFound = errors.New("sesión de inventario no encontrada")
	ErrSessionClosed   = errors.New("la sesión de inventario ya está cerrada")
	ErrVersionConflict = errors.New("versión de conteo duplicada, reintente")
)
