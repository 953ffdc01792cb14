package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/Shape-and-Shift/shopware-variant-switch/internal/domain"
)

// ListingUC resuelve los grupos de opciones de los productos que se muestran.
type ListingUC struct {
	Settings     domain.ConfiguratorSettingRepo
	Combinations *CombinationLoader
}

// Resolve devuelve una entrada por producto. Los productos no configurables
// reciben un GroupSet vacío.
func (uc *ListingUC) Resolve(ctx context.Context, sc domain.SalesChannelContext, products []domain.Product) (domain.ResolvedGroups, error) {
	out := make(domain.ResolvedGroups, len(products))
	parentIDs := distinctParentIDs(products)
	if len(parentIDs) == 0 {
		for i := range products {
			out[products[i].ID] = domain.GroupSet{}
		}
		return out, nil
	}

	settings, err := uc.Settings.FindByProductIDs(ctx, parentIDs, sc.LanguageID)
	if err != nil {
		return nil, fmt.Errorf("configurator settings: %w", err)
	}
	byProduct := map[uuid.UUID][]domain.ConfiguratorSetting{}
	for _, s := range settings {
		byProduct[s.ProductID] = append(byProduct[s.ProductID], s)
	}

	index, err := uc.Combinations.Load(ctx, parentIDs, sc.VersionID)
	if err != nil {
		return nil, err
	}

	for i := range products {
		p := &products[i]
		parentID := p.ConfigParentID()
		out[p.ID] = resolveProduct(p, byProduct[parentID], index.For(parentID))
	}
	return out, nil
}

// distinctParentIDs sólo considera productos con padre: el resto nunca es configurable.
func distinctParentIDs(products []domain.Product) []uuid.UUID {
	seen := map[uuid.UUID]struct{}{}
	ids := []uuid.UUID{}
	for i := range products {
		if products[i].ParentID == nil {
			continue
		}
		id := *products[i].ParentID
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids
}
