package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/Shape-and-Shift/shopware-variant-switch/internal/domain"
)

type ProductUC struct {
	Products domain.ProductRepo
}

func (uc *ProductUC) List(ctx context.Context, f domain.ProductFilter) ([]domain.Product, int64, error) {
	if f.PageSize == 0 {
		f.PageSize = 20
	}
	return uc.Products.List(ctx, f)
}

func (uc *ProductUC) Get(ctx context.Context, id, versionID uuid.UUID) (*domain.Product, error) {
	if id == uuid.Nil {
		return nil, fmt.Errorf("%w: product id", domain.ErrInvalidInput)
	}
	return uc.Products.FindByID(ctx, id, versionID)
}

// GetMany respeta el orden de ids y omite los que no existen.
func (uc *ProductUC) GetMany(ctx context.Context, ids []uuid.UUID, versionID uuid.UUID) ([]domain.Product, error) {
	if len(ids) == 0 {
		return []domain.Product{}, nil
	}
	list, err := uc.Products.FindByIDs(ctx, ids, versionID)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]domain.Product, len(list))
	for _, p := range list {
		byID[p.ID] = p
	}
	out := make([]domain.Product, 0, len(list))
	for _, id := range ids {
		if p, ok := byID[id]; ok {
			out = append(out, p)
			delete(byID, id)
		}
	}
	return out, nil
}
