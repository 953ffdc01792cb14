package usecase

import (
	"context"

	"github.com/google/uuid"

	"github.com/Shape-and-Shift/shopware-variant-switch/internal/domain"
)

type VariantFinder struct {
	Source domain.CombinationSource
}

// Find busca la variante hija del padre que contiene todas las opciones pedidas.
// Si no hay y se indicó el grupo cambiado, se queda con la variante que tiene la
// opción cambiada y comparte más opciones con la selección.
func (f *VariantFinder) Find(ctx context.Context, sc domain.SalesChannelContext, parentID uuid.UUID, options map[uuid.UUID]uuid.UUID, switched *uuid.UUID) (domain.FoundCombination, error) {
	rows, err := f.Source.Combinations(ctx, domain.CombinationQuery{
		ParentIDs: []uuid.UUID{parentID},
		VersionID: sc.VersionID,
		Active:    true,
	})
	if err != nil {
		return domain.FoundCombination{}, err
	}
	combos := domain.BuildCombinationIndex(rows).For(parentID).Combinations()
	if len(combos) == 0 {
		return domain.FoundCombination{}, domain.ErrVariantNotFound
	}

	wanted := make([]uuid.UUID, 0, len(options))
	for _, optionID := range options {
		wanted = append(wanted, optionID)
	}

	for _, c := range combos {
		if overlap(c.OptionIDs, wanted) == len(wanted) {
			return found(c, options), nil
		}
	}

	if switched == nil {
		return domain.FoundCombination{}, domain.ErrVariantNotFound
	}
	switchedOption, ok := options[*switched]
	if !ok {
		return domain.FoundCombination{}, domain.ErrVariantNotFound
	}
	best, bestScore := -1, -1
	for i, c := range combos {
		if overlap(c.OptionIDs, []uuid.UUID{switchedOption}) == 0 {
			continue
		}
		if score := overlap(c.OptionIDs, wanted); score > bestScore {
			best, bestScore = i, score
		}
	}
	if best < 0 {
		return domain.FoundCombination{}, domain.ErrVariantNotFound
	}
	return found(combos[best], options), nil
}

func overlap(have, wanted []uuid.UUID) int {
	set := make(map[uuid.UUID]struct{}, len(have))
	for _, id := range have {
		set[id] = struct{}{}
	}
	n := 0
	for _, id := range wanted {
		if _, ok := set[id]; ok {
			n++
		}
	}
	return n
}

// found devuelve sólo las opciones pedidas que la variante realmente tiene.
func found(c domain.Combination, options map[uuid.UUID]uuid.UUID) domain.FoundCombination {
	set := make(map[uuid.UUID]struct{}, len(c.OptionIDs))
	for _, id := range c.OptionIDs {
		set[id] = struct{}{}
	}
	matched := map[uuid.UUID]uuid.UUID{}
	for groupID, optionID := range options {
		if _, ok := set[optionID]; ok {
			matched[groupID] = optionID
		}
	}
	return domain.FoundCombination{VariantID: c.VariantID, Options: matched}
}
