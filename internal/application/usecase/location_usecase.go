package usecase

import (
	"context"

	"github.com/google/uuid"

	"github.com/jhoicas/inventory-count-api/internal/application/dto"
	"github.com/jhoicas/inventory-count-api/internal/domain"
	"github.com/jhoicas/inventory-count-api/internal/domain/entity"
	"github.com/jhoicas/inventory-count-api/internal/domain/repository"
)

// LocationUseCase alta, baja y listado de ubicaciones de productos.
type LocationUseCase struct {
	repo repository.ProductLocationRepository
}

// NewLocationUseCase construye el caso de uso.
func NewLocationUseCase(repo repository.ProductLocationRepository) *LocationUseCase {
	return &LocationUseCase{repo: repo}
}

func (uc *LocationUseCase) List(ctx context.Context) ([]dto.LocationResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.LocationResponse, 0, len(list))
	for _, l := range list {
		out = append(out, toLocationResponse(l))
	}
	return out, nil
}

// Create registra una ubicación con id nuevo.
func (uc *LocationUseCase) Create(ctx context.Context, in dto.LocationRequest) (*dto.LocationResponse, error) {
	loc := &entity.ProductLocation{
		ID:          uuid.New().String(),
		Barcode:     in.Barcode,
		Description: in.Description,
	}
	if err := uc.repo.Create(ctx, loc); err != nil {
		return nil, err
	}
	resp := toLocationResponse(loc)
	return &resp, nil
}

// Delete elimina la ubicación; los conteos que la referencian quedan sin ubicación.
func (uc *LocationUseCase) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return domain.ErrNotFound
	}
	loc, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if loc == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(ctx, id)
}

func toLocationResponse(l *entity.ProductLocation) dto.LocationResponse {
	return dto.LocationResponse{ID: l.ID, Barcode: l.Barcode, Description: l.Description}
}
