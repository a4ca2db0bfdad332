// Package catalog contiene la importación del catálogo maestro de productos y
// del stock esperado del cliente para una sesión.
package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/inventory-count-api/internal/application/dto"
	"github.com/jhoicas/inventory-count-api/internal/domain"
	"github.com/jhoicas/inventory-count-api/internal/domain/entity"
	"github.com/jhoicas/inventory-count-api/internal/domain/repository"
)

// UseCase importaciones y consulta del catálogo.
type UseCase struct {
	txRunner    TxRunner
	sessionRepo repository.SessionRepository
	productRepo repository.ProductRepository
	log         zerolog.Logger
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	txRunner TxRunner,
	sessionRepo repository.SessionRepository,
	productRepo repository.ProductRepository,
	log zerolog.Logger,
) *UseCase {
	return &UseCase{txRunner: txRunner, sessionRepo: sessionRepo, productRepo: productRepo, log: log}
}

// ImportProducts upsert por EAN: los existentes actualizan nombre, categoría y
// precio (el stock no se toca); los nuevos se insertan. Todo o nada.
func (uc *UseCase) ImportProducts(ctx context.Context, items []dto.ProductImportItem) (*dto.ImportResponse, error) {
	for i := range items {
		items[i].EAN = strings.TrimSpace(items[i].EAN)
		items[i].Name = strings.TrimSpace(items[i].Name)
		if err := validateProduct(i, items[i]); err != nil {
			return nil, err
		}
	}

	res := &dto.ImportResponse{Processed: len(items)}
	err := uc.txRunner.RunCatalog(ctx, func(productRepo repository.ProductRepository, _ repository.ExpectedStockRepository) error {
		res.Created, res.Updated = 0, 0
		for _, it := range items {
			existing, err := productRepo.GetByEAN(ctx, it.EAN)
			if err != nil {
				return err
			}
			if existing != nil {
				existing.Name = it.Name
				existing.Category = it.Category
				existing.Price = it.Price
				if err := productRepo.UpdateDetails(ctx, existing); err != nil {
					return err
				}
				res.Updated++
				continue
			}
			p := &entity.Product{
				ID:            uuid.New().String(),
				EAN:           it.EAN,
				Name:          it.Name,
				Category:      strings.TrimSpace(it.Category),
				Price:         it.Price,
				StockQuantity: it.StockQuantity,
			}
			if err := productRepo.Create(ctx, p); err != nil {
				return err
			}
			res.Created++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	res.Message = fmt.Sprintf("%d productos procesados.", res.Processed)
	uc.log.Info().
		Int("processed", res.Processed).
		Int("created", res.Created).
		Int("updated", res.Updated).
		Msg("catálogo importado")
	return res, nil
}

// ImportExpectedStock agrega las filas de stock esperado a la sesión.
// domain.ErrSessionNotFound si la sesión no existe.
func (uc *UseCase) ImportExpectedStock(ctx context.Context, sessionID string, items []dto.ExpectedStockImportItem) (*dto.ImportResponse, error) {
	if _, err := uuid.Parse(sessionID); err != nil {
		return nil, domain.ErrSessionNotFound
	}
	exists, err := uc.sessionRepo.Exists(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.ErrSessionNotFound
	}

	rows := make([]entity.ExpectedStock, 0, len(items))
	for i, it := range items {
		ean := strings.TrimSpace(it.EAN)
		if ean == "" || it.ExpectedQuantity < 0 {
			return nil, fmt.Errorf("fila %d: %w", i+1, domain.ErrInvalidInput)
		}
		rows = append(rows, entity.ExpectedStock{
			ID:               uuid.New().String(),
			SessionID:        sessionID,
			EAN:              ean,
			ExpectedQuantity: it.ExpectedQuantity,
		})
	}

	if len(rows) > 0 {
		err = uc.txRunner.RunCatalog(ctx, func(_ repository.ProductRepository, expectedRepo repository.ExpectedStockRepository) error {
			return expectedRepo.CreateBatch(ctx, rows)
		})
		if err != nil {
			return nil, err
		}
	}

	uc.log.Info().Str("session_id", sessionID).Int("rows", len(rows)).Msg("stock esperado importado")
	return &dto.ImportResponse{
		Message:   "Stock del cliente importado.",
		Processed: len(rows),
		Created:   len(rows),
	}, nil
}

// ListProducts catálogo completo ordenado por EAN.
func (uc *UseCase) ListProducts(ctx context.Context) ([]dto.ProductResponse, error) {
	list, err := uc.productRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		out = append(out, dto.ProductResponse{
			ID:            p.ID,
			EAN:           p.EAN,
			Name:          p.Name,
			Category:      p.Category,
			Price:         p.Price,
			StockQuantity: p.StockQuantity,
		})
	}
	return out, nil
}

func validateProduct(i int, it dto.ProductImportItem) error {
	switch {
	case it.EAN == "":
		return fmt.Errorf("fila %d: EAN requerido: %w", i+1, domain.ErrInvalidInput)
	case it.Price.IsNegative():
		return fmt.Errorf("fila %d: precio negativo: %w", i+1, domain.ErrInvalidInput)
	case it.StockQuantity < 0:
		return fmt.Errorf("fila %d: stock negativo: %w", i+1, domain.ErrInvalidInput)
	}
	return nil
}
