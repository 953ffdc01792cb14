package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/Shape-and-Shift/shopware-variant-switch/internal/domain"
)

// Boundary es cada punto de armado de página donde se resuelven variantes.
type Boundary string

const (
	BoundaryListing       Boundary = "listing"
	BoundaryProductBox    Boundary = "product_box"
	BoundaryOffCanvasCart Boundary = "offcanvas_cart"
	BoundaryCartPage      Boundary = "cart_page"
	BoundaryConfirmPage   Boundary = "confirm_page"
)

type Features struct {
	ShowOnProductCard         bool
	PreviewOnHover            bool
	ShowOnOffCanvasCart       bool
	ShowOnCartPage            bool
	ShowOnCheckoutConfirmPage bool
}

func (f Features) Enabled(b Boundary) bool {
	switch b {
	case BoundaryListing, BoundaryProductBox:
		return f.ShowOnProductCard
	case BoundaryOffCanvasCart:
		return f.ShowOnOffCanvasCart
	case BoundaryCartPage:
		return f.ShowOnCartPage
	case BoundaryConfirmPage:
		return f.ShowOnCheckoutConfirmPage
	}
	return false
}

type StorefrontUC struct {
	Products *ProductUC
	Listing  *ListingUC
	Finder   *VariantFinder
	Features Features
}

type ListingPage struct {
	Products []domain.Product
	Groups   domain.ResolvedGroups
	Total    int64
	Page     int
	Pages    int
}

// ListingPage carga la página de productos y, si está habilitado, sus grupos.
func (uc *StorefrontUC) ListingPage(ctx context.Context, sc domain.SalesChannelContext, f domain.ProductFilter) (ListingPage, error) {
	if f.Page <= 0 {
		f.Page = 1
	}
	f.VersionID = sc.VersionID
	list, total, err := uc.Products.List(ctx, f)
	if err != nil {
		return ListingPage{}, err
	}
	pageSize := f.PageSize
	if pageSize <= 0 {
		pageSize = 20
	}
	pages := (int(total) + (pageSize - 1)) / pageSize
	if pages == 0 {
		pages = 1
	}
	page := ListingPage{Products: list, Groups: domain.ResolvedGroups{}, Total: total, Page: f.Page, Pages: pages}
	if !uc.Features.Enabled(BoundaryListing) {
		return page, nil
	}
	groups, err := uc.Listing.Resolve(ctx, sc, list)
	if err != nil {
		return ListingPage{}, err
	}
	page.Groups = groups
	return page, nil
}

// SwitchProductBox resuelve la variante elegida en una tarjeta y la devuelve
// cargada junto a sus grupos. ErrVariantNotFound si no hay combinación.
func (uc *StorefrontUC) SwitchProductBox(ctx context.Context, sc domain.SalesChannelContext, parentID uuid.UUID, options map[uuid.UUID]uuid.UUID, switched *uuid.UUID) (*domain.Product, domain.GroupSet, error) {
	found, err := uc.Finder.Find(ctx, sc, parentID, options, switched)
	if err != nil {
		return nil, nil, err
	}
	p, err := uc.Products.Get(ctx, found.VariantID, sc.VersionID)
	if err != nil {
		return nil, nil, fmt.Errorf("cargar variante: %w", err)
	}
	groups, err := uc.ProductBox(ctx, sc, p)
	if err != nil {
		return nil, nil, err
	}
	return p, groups, nil
}

// ProductBox resuelve los grupos de una tarjeta suelta.
func (uc *StorefrontUC) ProductBox(ctx context.Context, sc domain.SalesChannelContext, p *domain.Product) (domain.GroupSet, error) {
	if !uc.Features.Enabled(BoundaryProductBox) {
		return domain.GroupSet{}, nil
	}
	groups, err := uc.Listing.Resolve(ctx, sc, []domain.Product{*p})
	if err != nil {
		return nil, err
	}
	return groups[p.ID], nil
}

// CartConfigs anota las líneas de producto del carrito para la página indicada.
// Devuelve nil si la página no tiene habilitado el cambio de variante.
func (uc *StorefrontUC) CartConfigs(ctx context.Context, sc domain.SalesChannelContext, b Boundary, cart *domain.Cart) (map[string]domain.LineItemConfig, error) {
	if !uc.Features.Enabled(b) {
		return nil, nil
	}
	lines := cart.ProductLineItems()
	if len(lines) == 0 {
		return nil, nil
	}
	ids := make([]uuid.UUID, 0, len(lines))
	for _, li := range lines {
		ids = append(ids, *li.ReferencedID)
	}
	products, err := uc.Products.GetMany(ctx, ids, sc.VersionID)
	if err != nil {
		return nil, err
	}
	if len(products) == 0 {
		return nil, nil
	}
	groups, err := uc.Listing.Resolve(ctx, sc, products)
	if err != nil {
		return nil, err
	}

	byProduct := make(map[uuid.UUID]*domain.Product, len(products))
	for i := range products {
		byProduct[products[i].ID] = &products[i]
	}
	out := make(map[string]domain.LineItemConfig, len(lines))
	for _, li := range lines {
		p, ok := byProduct[*li.ReferencedID]
		if !ok {
			continue
		}
		cfg := domain.LineItemConfig{OptionIDs: p.OptionIDList(), Groups: groups[p.ID]}
		if p.ParentID != nil {
			cfg.ParentID = *p.ParentID
		}
		out[li.ID] = cfg
	}
	return out, nil
}
