// Package inventory contiene las reglas puras del conteo de inventario:
// asignación de versiones, transiciones de estado de la sesión y la
// agregación del dashboard. No accede a la base de datos.
package inventory

import (
	"time"

	"github.com/jhoicas/inventory-count-api/internal/domain"
	"github.com/jhoicas/inventory-count-api/internal/domain/entity"
)

// StatusTransition intención de cambio de estado que la capa de persistencia
// aplica en la misma transacción que el conteo.
type StatusTransition struct {
	From entity.SessionStatus
	To   entity.SessionStatus
}

// CountPlan resultado de planificar un conteo nuevo para (sesión, EAN).
type CountPlan struct {
	Version    int
	Transition *StatusTransition // nil si la sesión no cambia de estado
}

// PlanCount calcula la versión del próximo conteo (máxima existente + 1, o 1)
// y la transición Open -> InProgress cuando es el primer conteo de la sesión.
// maxVersion es 0 si no hay conteos previos para el EAN.
func PlanCount(session *entity.InventorySession, maxVersion int) (CountPlan, error) {
	if session == nil {
		return CountPlan{}, domain.ErrSessionNotFound
	}
	if session.IsClosed() {
		return CountPlan{}, domain.ErrSessionClosed
	}
	if maxVersion < 0 {
		maxVersion = 0
	}
	plan := CountPlan{Version: maxVersion + 1}
	if session.Status == entity.SessionOpen {
		plan.Transition = &StatusTransition{From: entity.SessionOpen, To: entity.SessionInProgress}
	}
	return plan, nil
}

// StatusChange cambio de estado administrativo ya resuelto.
type StatusChange struct {
	Status  entity.SessionStatus
	EndDate *time.Time
}

// PlanStatusChange resuelve un cambio de estado pedido por un administrador.
// Cerrar la sesión sella EndDate con now; los demás estados conservan EndDate.
func PlanStatusChange(session *entity.InventorySession, to entity.SessionStatus, now time.Time) (StatusChange, error) {
	if session == nil {
		return StatusChange{}, domain.ErrSessionNotFound
	}
	if !to.Valid() {
		return StatusChange{}, domain.ErrInvalidInput
	}
	change := StatusChange{Status: to, EndDate: session.EndDate}
	if to == entity.SessionClosed {
		end := now.UTC()
		change.EndDate = &end
	}
	return change, nil
}
