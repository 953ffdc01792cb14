package usecase

import (
	"sort"

	"github.com/google/uuid"

	"github.com/Shape-and-Shift/shopware-variant-switch/internal/domain"
)

type draftOption struct {
	option  *domain.PropertyOption
	setting *domain.ConfiguratorSetting
}

type draftGroup struct {
	group   *domain.PropertyGroup
	options []draftOption
}

// foldSettings agrupa los settings del padre por grupo de propiedades.
// Los settings sin opción o sin grupo se descartan.
func foldSettings(settings []domain.ConfiguratorSetting) []*draftGroup {
	groups := []*draftGroup{}
	byID := map[uuid.UUID]*draftGroup{}
	seen := map[uuid.UUID]struct{}{}
	for i := range settings {
		s := &settings[i]
		if s.Option == nil || s.Option.Group == nil {
			continue
		}
		if _, dup := seen[s.Option.ID]; dup {
			continue
		}
		seen[s.Option.ID] = struct{}{}

		g, ok := byID[s.Option.Group.ID]
		if !ok {
			g = &draftGroup{group: s.Option.Group}
			byID[g.group.ID] = g
			groups = append(groups, g)
		}
		g.options = append(g.options, draftOption{option: s.Option, setting: s})
	}
	return groups
}

func sortOptions(g *draftGroup) {
	alpha := g.group.SortingType == domain.SortingTypeAlphanumeric
	sort.SliceStable(g.options, func(i, j int) bool {
		a, b := g.options[i], g.options[j]
		if a.setting.Position != b.setting.Position {
			return a.setting.Position < b.setting.Position
		}
		if alpha {
			return natCompare(a.option.TranslatedName(), b.option.TranslatedName()) < 0
		}
		return a.option.TranslatedPosition() < b.option.TranslatedPosition()
	})
}

// orderGroups aplica el orden de grupos del producto. Sin configuración propia
// se ordena por posición. Devuelve además los grupos ocultos en listados.
func orderGroups(groups []*draftGroup, p *domain.Product) ([]*draftGroup, map[uuid.UUID]bool) {
	hidden := map[uuid.UUID]bool{}
	config := p.ConfiguratorGroupConfig
	if len(config) == 0 {
		sort.SliceStable(groups, func(i, j int) bool {
			return groups[i].group.TranslatedPosition() < groups[j].group.TranslatedPosition()
		})
		return groups, hidden
	}

	byID := make(map[uuid.UUID]*draftGroup, len(groups))
	for _, g := range groups {
		byID[g.group.ID] = g
	}
	if p.MainVariantID == nil {
		for _, item := range config {
			if _, ok := byID[item.ID]; ok && item.ExpressionForListings {
				hidden[item.ID] = true
			}
		}
	}

	ordered := make([]*draftGroup, 0, len(groups))
	placed := make(map[uuid.UUID]struct{}, len(groups))
	for _, item := range config {
		g, ok := byID[item.ID]
		if !ok {
			continue
		}
		if _, dup := placed[item.ID]; dup {
			continue
		}
		placed[item.ID] = struct{}{}
		ordered = append(ordered, g)
	}
	for _, g := range groups {
		if _, ok := placed[g.group.ID]; ok {
			continue
		}
		placed[g.group.ID] = struct{}{}
		ordered = append(ordered, g)
	}
	return ordered, hidden
}

// currentSelection mapea grupo -> opción a partir de los option ids del producto.
func currentSelection(p *domain.Product, groups []*draftGroup) map[uuid.UUID]uuid.UUID {
	keyMap := map[uuid.UUID]uuid.UUID{}
	for _, g := range groups {
		for _, o := range g.options {
			keyMap[o.option.ID] = g.group.ID
		}
	}
	current := map[uuid.UUID]uuid.UUID{}
	for _, id := range p.OptionIDList() {
		groupID, ok := keyMap[id]
		if !ok {
			continue
		}
		current[groupID] = id
	}
	return current
}

func combinability(option *domain.PropertyOption, current map[uuid.UUID]uuid.UUID, combos *domain.AvailableCombinations) domain.Combinability {
	candidate := make([]uuid.UUID, 0, len(current)+1)
	for groupID, optionID := range current {
		if groupID == option.GroupID {
			continue
		}
		candidate = append(candidate, optionID)
	}
	candidate = append(candidate, option.ID)

	if combos.HasCombination(candidate) && combos.IsAvailable(candidate) {
		return domain.Combinable
	}
	if combos.HasOptionID(option.ID) {
		return domain.NotCombinable
	}
	return domain.CombinabilityUnknown
}

// resolveProduct arma los grupos anotados de un producto. settings son los del
// padre y combos su índice de combinaciones.
func resolveProduct(p *domain.Product, settings []domain.ConfiguratorSetting, combos *domain.AvailableCombinations) domain.GroupSet {
	if len(p.ConfiguratorSettings) > 0 || p.ParentID == nil || len(settings) == 0 {
		return domain.GroupSet{}
	}

	groups := foldSettings(settings)
	for _, g := range groups {
		sortOptions(g)
	}
	groups, hidden := orderGroups(groups, p)
	current := currentSelection(p, groups)

	out := make(domain.GroupSet, 0, len(groups))
	for _, g := range groups {
		rg := domain.ResolvedGroup{
			ID:            g.group.ID,
			Name:          g.group.TranslatedName(),
			DisplayType:   g.group.DisplayType,
			SortingType:   g.group.SortingType,
			Position:      g.group.TranslatedPosition(),
			HideOnListing: hidden[g.group.ID],
			Options:       []domain.ResolvedOption{},
		}
		for _, o := range g.options {
			verdict := combinability(o.option, current, combos)
			if verdict == domain.CombinabilityUnknown {
				continue
			}
			media := o.setting.MediaURL
			if media == "" {
				media = o.option.MediaURL
			}
			rg.Options = append(rg.Options, domain.ResolvedOption{
				ID:                   o.option.ID,
				GroupID:              g.group.ID,
				Name:                 o.option.TranslatedName(),
				Position:             o.option.TranslatedPosition(),
				ConfiguratorPosition: o.setting.Position,
				ColorHexCode:         o.option.ColorHexCode,
				MediaURL:             media,
				Selected:             current[g.group.ID] == o.option.ID,
				Combinable:           verdict,
			})
		}
		out = append(out, rg)
	}
	return out
}
