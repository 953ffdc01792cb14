package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"sort"

	"github.com/google/uuid"

	"github.com/Shape-and-Shift/shopware-variant-switch/internal/domain"
)

// shirt es un padre con color y talle; rojo/L no tiene stock y verde no tiene hijos.
type shirt struct {
	parent                         domain.Product
	color, size                    *domain.PropertyGroup
	red, blue, green, small, large *domain.PropertyOption
	redSmall, redLarge, blueSmall  domain.Product
	settings                       []domain.ConfiguratorSetting
}

func newShirt() *shirt {
	s := &shirt{}
	s.parent = domain.Product{ID: uuid.New(), ProductNumber: "SW-1", Name: "Remera"}
	s.color = &domain.PropertyGroup{ID: uuid.New(), Name: "Color", SortingType: domain.SortingTypePosition, Position: 1}
	s.size = &domain.PropertyGroup{ID: uuid.New(), Name: "Talle", SortingType: domain.SortingTypeAlphanumeric, Position: 2}
	opt := func(g *domain.PropertyGroup, name string, pos int) *domain.PropertyOption {
		return &domain.PropertyOption{ID: uuid.New(), GroupID: g.ID, Group: g, Name: name, Position: pos}
	}
	s.red, s.blue, s.green = opt(s.color, "Rojo", 1), opt(s.color, "Azul", 2), opt(s.color, "Verde", 3)
	s.small, s.large = opt(s.size, "S", 0), opt(s.size, "L", 0)
	for _, o := range []*domain.PropertyOption{s.red, s.blue, s.green, s.small, s.large} {
		s.settings = append(s.settings, domain.ConfiguratorSetting{ID: uuid.New(), ProductID: s.parent.ID, OptionID: o.ID, Option: o})
	}
	s.redSmall = s.child("SW-1.1", true, s.red, s.small)
	s.redLarge = s.child("SW-1.2", false, s.red, s.large)
	s.blueSmall = s.child("SW-1.3", true, s.blue, s.small)
	return s
}

func (s *shirt) child(number string, available bool, opts ...*domain.PropertyOption) domain.Product {
	pid := s.parent.ID
	p := domain.Product{ID: uuid.New(), ParentID: &pid, ProductNumber: number, Name: s.parent.Name, Available: available}
	ids := []uuid.UUID{}
	for _, o := range opts {
		ids = append(ids, o.ID)
	}
	p.SetOptionIDs(ids)
	return p
}

func (s *shirt) children() []domain.Product {
	return []domain.Product{s.redSmall, s.redLarge, s.blueSmall}
}

// fakeCatalog sirve productos, settings y combinaciones desde memoria.
type fakeCatalog struct {
	products     map[uuid.UUID]domain.Product
	settings     []domain.ConfiguratorSetting
	settingCalls int
	comboCalls   int
	err          error
}

func newFakeCatalog(s *shirt) *fakeCatalog {
	c := &fakeCatalog{products: map[uuid.UUID]domain.Product{}, settings: s.settings}
	c.products[s.parent.ID] = s.parent
	for _, p := range s.children() {
		c.products[p.ID] = p
	}
	return c
}

func (c *fakeCatalog) Combinations(ctx context.Context, q domain.CombinationQuery) ([]domain.CombinationRow, error) {
	c.comboCalls++
	if c.err != nil {
		return nil, c.err
	}
	wanted := map[uuid.UUID]bool{}
	for _, id := range q.ParentIDs {
		wanted[id] = true
	}
	rows := []domain.CombinationRow{}
	for _, p := range c.products {
		if p.ParentID == nil || !wanted[*p.ParentID] {
			continue
		}
		rows = append(rows, domain.CombinationRow{ID: p.ID, ParentID: *p.ParentID, OptionIDs: string(p.OptionIDs), ProductNumber: p.ProductNumber, Available: p.Available})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].ProductNumber < rows[j].ProductNumber })
	return rows, nil
}

func (c *fakeCatalog) FindByProductIDs(ctx context.Context, ids []uuid.UUID, languageID uuid.UUID) ([]domain.ConfiguratorSetting, error) {
	c.settingCalls++
	if c.err != nil {
		return nil, c.err
	}
	wanted := map[uuid.UUID]bool{}
	for _, id := range ids {
		wanted[id] = true
	}
	out := []domain.ConfiguratorSetting{}
	for _, st := range c.settings {
		if wanted[st.ProductID] {
			out = append(out, st)
		}
	}
	return out, nil
}

func (c *fakeCatalog) FindByID(ctx context.Context, id, versionID uuid.UUID) (*domain.Product, error) {
	p, ok := c.products[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &p, nil
}

func (c *fakeCatalog) FindByIDs(ctx context.Context, ids []uuid.UUID, versionID uuid.UUID) ([]domain.Product, error) {
	out := []domain.Product{}
	for _, id := range ids {
		if p, ok := c.products[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (c *fakeCatalog) List(ctx context.Context, f domain.ProductFilter) ([]domain.Product, int64, error) {
	out := []domain.Product{}
	for _, p := range c.products {
		if p.ParentID != nil {
			out = append(out, p)
		}
	}
	return out, int64(len(out)), nil
}

var errBoom = errors.New("boom")

func optionsJSON(ids ...uuid.UUID) string {
	b, _ := json.Marshal(ids)
	return string(b)
}
