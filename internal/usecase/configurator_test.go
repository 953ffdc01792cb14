package usecase

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Shape-and-Shift/shopware-variant-switch/internal/domain"
)

func verdicts(gs domain.GroupSet) map[uuid.UUID]domain.Combinability {
	out := map[uuid.UUID]domain.Combinability{}
	for _, g := range gs {
		for _, o := range g.Options {
			out[o.ID] = o.Combinable
		}
	}
	return out
}

func resolveFor(s *shirt, p domain.Product) domain.GroupSet {
	combos := domain.BuildCombinationIndex(rowsFor(s.children())).For(s.parent.ID)
	return resolveProduct(&p, s.settings, combos)
}

func rowsFor(products []domain.Product) []domain.CombinationRow {
	rows := []domain.CombinationRow{}
	for _, p := range products {
		rows = append(rows, domain.CombinationRow{ID: p.ID, ParentID: *p.ParentID, OptionIDs: string(p.OptionIDs), ProductNumber: p.ProductNumber, Available: p.Available})
	}
	return rows
}

func TestResolveProductTriState(t *testing.T) {
	s := newShirt()
	gs := resolveFor(s, s.redSmall)
	v := verdicts(gs)

	assert.Equal(t, domain.Combinable, v[s.red.ID])
	assert.Equal(t, domain.Combinable, v[s.blue.ID])
	assert.Equal(t, domain.Combinable, v[s.small.ID])
	// rojo/L existe pero sin stock
	assert.Equal(t, domain.NotCombinable, v[s.large.ID])
	// verde no aparece en ninguna combinación
	_, ok := v[s.green.ID]
	assert.False(t, ok)
}

func TestResolveProductSelection(t *testing.T) {
	s := newShirt()
	gs := resolveFor(s, s.blueSmall)
	require.Len(t, gs, 2)

	color, ok := gs.Get(s.color.ID)
	require.True(t, ok)
	for _, o := range color.Options {
		assert.Equal(t, o.ID == s.blue.ID, o.Selected, o.Name)
	}
	v := verdicts(gs)
	// azul/L no existe pero L está en otra combinación
	assert.Equal(t, domain.NotCombinable, v[s.large.ID])
	assert.Equal(t, domain.Combinable, v[s.red.ID])
}

func TestResolveProductEmptyIndexRemovesOptions(t *testing.T) {
	s := newShirt()
	p := s.redSmall
	gs := resolveProduct(&p, s.settings, domain.NewAvailableCombinations())

	require.Len(t, gs, 2)
	assert.Zero(t, gs.OptionCount())
	for _, g := range gs {
		assert.Empty(t, g.Options, g.Name)
	}
}

func TestResolveProductSelectionWithoutCombination(t *testing.T) {
	s := newShirt()
	// verde/S no está en el índice
	greenSmall := s.child("SW-1.9", true, s.green, s.small)
	gs := resolveFor(s, greenSmall)
	v := verdicts(gs)

	// S y L aparecen en otras combinaciones: quedan visibles pero no combinables
	assert.Equal(t, domain.NotCombinable, v[s.small.ID])
	assert.Equal(t, domain.NotCombinable, v[s.large.ID])
	assert.Equal(t, domain.Combinable, v[s.red.ID])
	assert.Equal(t, domain.Combinable, v[s.blue.ID])
	_, ok := v[s.green.ID]
	assert.False(t, ok)
}

func TestResolveProductGroupOrderFromConfig(t *testing.T) {
	s := newShirt()
	material := &domain.PropertyGroup{ID: uuid.New(), Name: "Material", Position: 0}
	cotton := &domain.PropertyOption{ID: uuid.New(), GroupID: material.ID, Group: material, Name: "Algodón"}
	s.settings = append(s.settings, domain.ConfiguratorSetting{ID: uuid.New(), ProductID: s.parent.ID, OptionID: cotton.ID, Option: cotton})

	p := s.redSmall
	p.ConfiguratorGroupConfig = []domain.GroupConfig{{ID: s.size.ID}, {ID: s.color.ID, ExpressionForListings: true}}
	gs := resolveFor(s, p)

	ids := []uuid.UUID{}
	for _, g := range gs {
		ids = append(ids, g.ID)
	}
	assert.Equal(t, []uuid.UUID{s.size.ID, s.color.ID, material.ID}, ids)

	color, _ := gs.Get(s.color.ID)
	assert.True(t, color.HideOnListing)
	// material queda sin opciones pero el grupo se mantiene
	mat, ok := gs.Get(material.ID)
	require.True(t, ok)
	assert.Empty(t, mat.Options)

	mainID := p.ID
	p.MainVariantID = &mainID
	gs = resolveFor(s, p)
	color, _ = gs.Get(s.color.ID)
	assert.False(t, color.HideOnListing)
}

func TestResolveProductGroupOrderByPosition(t *testing.T) {
	s := newShirt()
	s.color.Position = 5
	gs := resolveFor(s, s.redSmall)
	require.Len(t, gs, 2)
	assert.Equal(t, s.size.ID, gs[0].ID)
	assert.Equal(t, s.color.ID, gs[1].ID)
}

func TestSortOptionsNaturalOrder(t *testing.T) {
	g := &domain.PropertyGroup{ID: uuid.New(), SortingType: domain.SortingTypeAlphanumeric}
	mk := func(name string) draftOption {
		return draftOption{
			option:  &domain.PropertyOption{ID: uuid.New(), GroupID: g.ID, Group: g, Name: name},
			setting: &domain.ConfiguratorSetting{},
		}
	}
	dg := &draftGroup{group: g, options: []draftOption{mk("Option 10"), mk("Option 2"), mk("Option 1")}}
	sortOptions(dg)
	names := []string{}
	for _, o := range dg.options {
		names = append(names, o.option.Name)
	}
	assert.Equal(t, []string{"Option 1", "Option 2", "Option 10"}, names)
}

func TestSortOptionsSettingPositionWins(t *testing.T) {
	g := &domain.PropertyGroup{ID: uuid.New(), SortingType: domain.SortingTypePosition}
	a := draftOption{option: &domain.PropertyOption{Name: "A", Position: 1}, setting: &domain.ConfiguratorSetting{Position: 2}}
	b := draftOption{option: &domain.PropertyOption{Name: "B", Position: 9}, setting: &domain.ConfiguratorSetting{Position: 1}}
	dg := &draftGroup{group: g, options: []draftOption{a, b}}
	sortOptions(dg)
	assert.Equal(t, "B", dg.options[0].option.Name)
}

func TestResolveProductWithoutParent(t *testing.T) {
	s := newShirt()
	gs := resolveProduct(&s.parent, s.settings, domain.NewAvailableCombinations())
	assert.NotNil(t, gs)
	assert.Empty(t, gs)
}

func TestListingResolveSideTable(t *testing.T) {
	s := newShirt()
	cat := newFakeCatalog(s)
	uc := &ListingUC{Settings: cat, Combinations: &CombinationLoader{Source: cat}}
	plain := domain.Product{ID: uuid.New()}

	out, err := uc.Resolve(context.Background(), domain.SalesChannelContext{}, []domain.Product{s.redSmall, s.blueSmall, plain})
	require.NoError(t, err)
	require.Len(t, out, 3)
	assert.Len(t, out[s.redSmall.ID], 2)
	assert.Empty(t, out[plain.ID])
	// una sola consulta por lote
	assert.Equal(t, 1, cat.settingCalls)
	assert.Equal(t, 1, cat.comboCalls)

	again, err := uc.Resolve(context.Background(), domain.SalesChannelContext{}, []domain.Product{s.redSmall, s.blueSmall, plain})
	require.NoError(t, err)
	assert.Equal(t, out, again)
}

func TestListingResolveNoParentsSkipsQueries(t *testing.T) {
	cat := newFakeCatalog(newShirt())
	uc := &ListingUC{Settings: cat, Combinations: &CombinationLoader{Source: cat}}
	p := domain.Product{ID: uuid.New()}
	out, err := uc.Resolve(context.Background(), domain.SalesChannelContext{}, []domain.Product{p})
	require.NoError(t, err)
	assert.Equal(t, domain.GroupSet{}, out[p.ID])
	assert.Zero(t, cat.settingCalls)
	assert.Zero(t, cat.comboCalls)
}

func TestListingResolveError(t *testing.T) {
	s := newShirt()
	cat := newFakeCatalog(s)
	cat.err = errBoom
	uc := &ListingUC{Settings: cat, Combinations: &CombinationLoader{Source: cat}}
	_, err := uc.Resolve(context.Background(), domain.SalesChannelContext{}, []domain.Product{s.redSmall})
	assert.ErrorIs(t, err, errBoom)
}
