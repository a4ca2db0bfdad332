// Package counting implementa la ingesta de conteos de inventario.
package counting

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/inventory-count-api/internal/application/dto"
	"github.com/jhoicas/inventory-count-api/internal/domain"
	"github.com/jhoicas/inventory-count-api/internal/domain/entity"
	"github.com/jhoicas/inventory-count-api/internal/domain/inventory"
	"github.com/jhoicas/inventory-count-api/internal/domain/repository"
)

const defaultQuantity = 1

// RegisterCountUseCase registra lecturas de conteo como filas inmutables versionadas.
type RegisterCountUseCase struct {
	txRunner TxRunner
	log      zerolog.Logger
	now      func() time.Time
}

// NewRegisterCountUseCase construye el caso de uso.
func NewRegisterCountUseCase(txRunner TxRunner, log zerolog.Logger) *RegisterCountUseCase {
	return &RegisterCountUseCase{
		txRunner: txRunner,
		log:      log,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// CountInput entrada ya autenticada: el usuario viene del token.
type CountInput struct {
	SessionID         string
	UserID            string
	EAN               string
	ProductLocationID *string
	Quantity          *int
}

// RegisterCount valida la entrada y, en una transacción:
//  1. bloquea la sesión (SELECT FOR UPDATE),
//  2. rechaza sesiones inexistentes o cerradas,
//  3. calcula la versión siguiente para (sesión, EAN),
//  4. aplica Open -> InProgress si es el primer conteo,
//  5. inserta la fila con timestamp del servidor.
func (uc *RegisterCountUseCase) RegisterCount(ctx context.Context, in CountInput) (*dto.RegisterCountResponse, error) {
	count, err := uc.validate(in)
	if err != nil {
		return nil, err
	}

	var transition *inventory.StatusTransition
	err = uc.txRunner.RunCount(ctx, func(
		sessionRepo repository.SessionRepository,
		countRepo repository.CountRepository,
	) error {
		session, err := sessionRepo.GetForUpdate(ctx, count.SessionID)
		if err != nil {
			return err
		}
		if session == nil {
			return domain.ErrSessionNotFound
		}
		maxVersion, err := countRepo.MaxVersion(ctx, count.SessionID, count.EAN)
		if err != nil {
			return err
		}
		plan, err := inventory.PlanCount(session, maxVersion)
		if err != nil {
			return err
		}
		if plan.Transition != nil {
			if err := sessionRepo.UpdateStatus(ctx, session.ID, plan.Transition.To, session.EndDate); err != nil {
				return err
			}
		}
		count.Version = plan.Version
		count.CountedAt = uc.now()
		transition = plan.Transition
		return countRepo.Create(ctx, count)
	})
	if err != nil {
		return nil, err
	}

	if transition != nil {
		uc.log.Info().
			Str("session_id", count.SessionID).
			Str("from", string(transition.From)).
			Str("to", string(transition.To)).
			Msg("sesión iniciada con el primer conteo")
	}

	return &dto.RegisterCountResponse{
		Message:   "Conteo registrado con éxito",
		CountID:   count.ID,
		EAN:       count.EAN,
		CountedAt: count.CountedAt,
		Version:   count.Version,
	}, nil
}

func (uc *RegisterCountUseCase) validate(in CountInput) (*entity.InventoryCount, error) {
	if _, err := uuid.Parse(in.SessionID); err != nil {
		return nil, domain.ErrSessionNotFound
	}
	ean := strings.TrimSpace(in.EAN)
	if ean == "" || in.UserID == "" {
		return nil, domain.ErrInvalidInput
	}
	qty := defaultQuantity
	if in.Quantity != nil {
		qty = *in.Quantity
	}
	if qty < 0 {
		return nil, domain.ErrInvalidInput
	}
	var locationID *string
	if in.ProductLocationID != nil && strings.TrimSpace(*in.ProductLocationID) != "" {
		id, err := uuid.Parse(strings.TrimSpace(*in.ProductLocationID))
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
		if id != uuid.Nil {
			s := id.String()
			locationID = &s
		}
	}
	return &entity.InventoryCount{
		ID:                uuid.New().String(),
		SessionID:         in.SessionID,
		EAN:               ean,
		ProductLocationID: locationID,
		Quantity:          qty,
		UserID:            in.UserID,
	}, nil
}
