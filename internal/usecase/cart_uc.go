package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/Shape-and-Shift/shopware-variant-switch/internal/domain"
)

// SwitchRequest son los datos del formulario de cambio de variante de una línea.
type SwitchRequest struct {
	ParentID *uuid.UUID
	Options  map[uuid.UUID]uuid.UUID
	Switched *uuid.UUID
}

type CartUC struct {
	Finder       *VariantFinder
	Recalculator domain.CartRecalculator
}

// SwitchLineItem cambia el producto referenciado por la línea a la variante que
// resulta de las opciones. Devuelve false sin error si la variante no existe.
// Si devuelve false el carrito no se toca.
func (uc *CartUC) SwitchLineItem(ctx context.Context, sc domain.SalesChannelContext, cart *domain.Cart, lineID string, req SwitchRequest) (bool, error) {
	if req.Options == nil {
		return false, fmt.Errorf("%w: options field is required", domain.ErrInvalidInput)
	}
	if req.ParentID == nil || *req.ParentID == uuid.Nil {
		return false, fmt.Errorf("%w: parentId field is required", domain.ErrInvalidInput)
	}
	li, ok := cart.Get(lineID)
	if !ok {
		return false, fmt.Errorf("%w: %s", domain.ErrLineItemNotFound, lineID)
	}
	if li.Type != domain.LineItemTypeProduct {
		return false, fmt.Errorf("%w: line item is not a product", domain.ErrInvalidInput)
	}

	found, err := uc.Finder.Find(ctx, sc, *req.ParentID, req.Options, req.Switched)
	if errors.Is(err, domain.ErrVariantNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	// se trabaja sobre una copia: si el recálculo falla el carrito queda igual
	next := *cart
	next.LineItems = swapLineItem(cart.LineItems, lineID, found.VariantID)
	if uc.Recalculator != nil {
		if err := uc.Recalculator.Recalculate(ctx, sc, &next); err != nil {
			return false, fmt.Errorf("recalcular carrito: %w", err)
		}
	}
	*cart = next
	log.Debug().Str("line", lineID).Str("variant", found.VariantID.String()).Msg("variante cambiada")
	return true, nil
}

// swapLineItem reemplaza la línea por una nueva con id = variante. Si la variante
// ya estaba en otra línea las cantidades se suman en una sola, en la primera posición.
func swapLineItem(items []domain.LineItem, lineID string, variantID uuid.UUID) []domain.LineItem {
	newID := variantID.String()
	out := make([]domain.LineItem, 0, len(items))
	pos := -1
	merge := func(li domain.LineItem) {
		if pos >= 0 {
			out[pos].Quantity += li.Quantity
			return
		}
		pos = len(out)
		out = append(out, li)
	}
	for _, li := range items {
		switch {
		case li.ID == lineID:
			ref := variantID
			merge(domain.LineItem{
				ID:           newID,
				Type:         domain.LineItemTypeProduct,
				ReferencedID: &ref,
				Quantity:     li.Quantity,
				Stackable:    li.Stackable,
				Removable:    li.Removable,
			})
		case li.ID == newID:
			merge(li)
		default:
			out = append(out, li)
		}
	}
	return out
}

// ProductRecalculator refresca etiqueta y número de las líneas de producto y
// saca las que ya no existen. Precios y stock quedan fuera.
type ProductRecalculator struct {
	Products domain.ProductRepo
}

func (r *ProductRecalculator) Recalculate(ctx context.Context, sc domain.SalesChannelContext, cart *domain.Cart) error {
	ids := []uuid.UUID{}
	for _, li := range cart.ProductLineItems() {
		ids = append(ids, *li.ReferencedID)
	}
	if len(ids) == 0 {
		return nil
	}
	list, err := r.Products.FindByIDs(ctx, ids, sc.VersionID)
	if err != nil {
		return err
	}
	byID := make(map[uuid.UUID]domain.Product, len(list))
	for _, p := range list {
		byID[p.ID] = p
	}

	cart.Errors = nil
	kept := make([]domain.LineItem, 0, len(cart.LineItems))
	for _, li := range cart.LineItems {
		if li.Type != domain.LineItemTypeProduct || li.ReferencedID == nil {
			kept = append(kept, li)
			continue
		}
		p, ok := byID[*li.ReferencedID]
		if !ok {
			cart.Errors = append(cart.Errors, domain.CartError{LineItemID: li.ID, Message: "product-not-found", Persistent: true})
			continue
		}
		li.Label = p.Name
		li.ProductNumber = p.ProductNumber
		kept = append(kept, li)
	}
	cart.LineItems = kept
	return nil
}

// AddProduct agrega una línea de producto; si el producto no existe el
// recálculo la saca y deja el error en el carrito.
func (uc *CartUC) AddProduct(ctx context.Context, sc domain.SalesChannelContext, cart *domain.Cart, productID uuid.UUID, qty int) error {
	if productID == uuid.Nil {
		return fmt.Errorf("%w: product id", domain.ErrInvalidInput)
	}
	cart.Add(domain.NewProductLineItem(productID, qty))
	if uc.Recalculator != nil {
		return uc.Recalculator.Recalculate(ctx, sc, cart)
	}
	return nil
}

func (uc *CartUC) RemoveLineItem(cart *domain.Cart, lineID string) error {
	li, ok := cart.Get(lineID)
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrLineItemNotFound, lineID)
	}
	if !li.Removable {
		return fmt.Errorf("%w: line item is not removable", domain.ErrInvalidInput)
	}
	cart.Remove(lineID)
	return nil
}
