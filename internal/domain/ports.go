package domain

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var (
	ErrNotFound         = errors.New("not found")
	ErrVariantNotFound  = errors.New("variante no encontrada")
	ErrLineItemNotFound = errors.New("línea de carrito no encontrada")
	ErrInvalidInput     = errors.New("datos inválidos")
)

// CombinationQuery acota la carga de combinaciones.
type CombinationQuery struct {
	ParentIDs []uuid.UUID
	VersionID uuid.UUID
	Active    bool
}

type CombinationSource interface {
	Combinations(ctx context.Context, q CombinationQuery) ([]CombinationRow, error)
}

type ConfiguratorSettingRepo interface {
	FindByProductIDs(ctx context.Context, productIDs []uuid.UUID, languageID uuid.UUID) ([]ConfiguratorSetting, error)
}

type ProductRepo interface {
	FindByID(ctx context.Context, id, versionID uuid.UUID) (*Product, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID, versionID uuid.UUID) ([]Product, error)
	List(ctx context.Context, f ProductFilter) ([]Product, int64, error)
}

// CartRecalculator recalcula el carrito después de modificarlo.
type CartRecalculator interface {
	Recalculate(ctx context.Context, sc SalesChannelContext, cart *Cart) error
}
