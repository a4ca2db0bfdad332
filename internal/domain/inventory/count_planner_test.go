package inventory_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventory-count-api/internal/domain"
	"github.com/jhoicas/inventory-count-api/internal/domain/entity"
	"github.com/jhoicas/inventory-count-api/internal/domain/inventory"
)

func TestPlanCount(t *testing.T) {
	tests := []struct {
		name           string
		status         entity.SessionStatus
		maxVersion     int
		wantVersion    int
		wantTransition bool
		wantErr        error
	}{
		{name: "primer conteo en sesión abierta", status: entity.SessionOpen, maxVersion: 0, wantVersion: 1, wantTransition: true},
		{name: "reconteo en sesión en curso", status: entity.SessionInProgress, maxVersion: 3, wantVersion: 4},
		{name: "versión negativa se trata como cero", status: entity.SessionInProgress, maxVersion: -2, wantVersion: 1},
		{name: "sesión cerrada", status: entity.SessionClosed, maxVersion: 1, wantErr: domain.ErrSessionClosed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			session := &entity.InventorySession{ID: "s1", Status: tt.status}
			plan, err := inventory.PlanCount(session, tt.maxVersion)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantVersion, plan.Version)
			if tt.wantTransition {
				require.NotNil(t, plan.Transition)
				assert.Equal(t, entity.SessionOpen, plan.Transition.From)
				assert.Equal(t, entity.SessionInProgress, plan.Transition.To)
			} else {
				assert.Nil(t, plan.Transition)
			}
		})
	}
}

func TestPlanCount_SesionNil(t *testing.T) {
	_, err := inventory.PlanCount(nil, 0)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestPlanStatusChange_CerrarSellaFechaFin(t *testing.T) {
	now := time.Date(2026, 3, 1, 15, 0, 0, 0, time.UTC)
	session := &entity.InventorySession{ID: "s1", Status: entity.SessionInProgress}

	change, err := inventory.PlanStatusChange(session, entity.SessionClosed, now)
	require.NoError(t, err)
	assert.Equal(t, entity.SessionClosed, change.Status)
	require.NotNil(t, change.EndDate)
	assert.True(t, change.EndDate.Equal(now))
}

func TestPlanStatusChange_ConservaFechaFin(t *testing.T) {
	end := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	session := &entity.InventorySession{ID: "s1", Status: entity.SessionClosed, EndDate: &end}

	change, err := inventory.PlanStatusChange(session, entity.SessionInProgress, time.Now())
	require.NoError(t, err)
	assert.Equal(t, entity.SessionInProgress, change.Status)
	assert.Equal(t, &end, change.EndDate)
}

func TestPlanStatusChange_EstadoInvalido(t *testing.T) {
	session := &entity.InventorySession{ID: "s1", Status: entity.SessionOpen}
	_, err := inventory.PlanStatusChange(session, entity.SessionStatus("Audit"), time.Now())
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
