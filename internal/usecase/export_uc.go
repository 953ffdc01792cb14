package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/Shape-and-Shift/shopware-variant-switch/internal/domain"
)

type MatrixGroup struct {
	ID   uuid.UUID
	Name string
}

type MatrixRow struct {
	ProductNumber string
	VariantID     uuid.UUID
	// nombre de opción por grupo, en el orden de Groups
	Options   []string
	Available bool
}

// CombinationMatrix es la grilla de variantes de un producto padre.
type CombinationMatrix struct {
	Parent *domain.Product
	Groups []MatrixGroup
	Rows   []MatrixRow
}

type ExportUC struct {
	Products     *ProductUC
	Settings     domain.ConfiguratorSettingRepo
	Combinations *CombinationLoader
}

func (uc *ExportUC) CombinationMatrix(ctx context.Context, sc domain.SalesChannelContext, parentID uuid.UUID) (CombinationMatrix, error) {
	parent, err := uc.Products.Get(ctx, parentID, sc.VersionID)
	if err != nil {
		return CombinationMatrix{}, err
	}
	if parent.ParentID != nil {
		return CombinationMatrix{}, fmt.Errorf("%w: %s no es un producto padre", domain.ErrInvalidInput, parentID)
	}
	settings, err := uc.Settings.FindByProductIDs(ctx, []uuid.UUID{parentID}, sc.LanguageID)
	if err != nil {
		return CombinationMatrix{}, fmt.Errorf("configurator settings: %w", err)
	}
	index, err := uc.Combinations.Load(ctx, []uuid.UUID{parentID}, sc.VersionID)
	if err != nil {
		return CombinationMatrix{}, err
	}

	groups := foldSettings(settings)
	groups, _ = orderGroups(groups, parent)

	m := CombinationMatrix{Parent: parent}
	col := map[uuid.UUID]int{}
	names := map[uuid.UUID]string{}
	for i, g := range groups {
		m.Groups = append(m.Groups, MatrixGroup{ID: g.group.ID, Name: g.group.TranslatedName()})
		for _, o := range g.options {
			col[o.option.ID] = i
			names[o.option.ID] = o.option.TranslatedName()
		}
	}
	for _, c := range index.For(parentID).Combinations() {
		row := MatrixRow{
			ProductNumber: c.ProductNumber,
			VariantID:     c.VariantID,
			Options:       make([]string, len(groups)),
			Available:     c.Available,
		}
		for _, id := range c.OptionIDs {
			if i, ok := col[id]; ok {
				row.Options[i] = names[id]
			}
		}
		m.Rows = append(m.Rows, row)
	}
	if len(m.Rows) == 0 && len(m.Groups) == 0 {
		return m, fmt.Errorf("%w: sin variantes para %s", domain.ErrNotFound, parentID)
	}
	return m, nil
}
