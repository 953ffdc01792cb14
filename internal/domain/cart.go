package domain

import (
	"github.com/google/uuid"
)

type LineItemType string

const (
	LineItemTypeProduct   LineItemType = "product"
	LineItemTypePromotion LineItemType = "promotion"
	LineItemTypeCustom    LineItemType = "custom"
)

type LineItem struct {
	ID            string       `json:"id"`
	Type          LineItemType `json:"type"`
	ReferencedID  *uuid.UUID   `json:"referencedId,omitempty"`
	Label         string       `json:"label,omitempty"`
	ProductNumber string       `json:"productNumber,omitempty"`
	Quantity      int          `json:"quantity"`
	Stackable     bool         `json:"stackable"`
	Removable     bool         `json:"removable"`
}

type CartError struct {
	LineItemID string `json:"lineItemId"`
	Message    string `json:"message"`
	Persistent bool   `json:"persistent"`
}

type Cart struct {
	Token     string      `json:"token"`
	LineItems []LineItem  `json:"lineItems"`
	Errors    []CartError `json:"-"`
}

func (c *Cart) Get(id string) (*LineItem, bool) {
	for i := range c.LineItems {
		if c.LineItems[i].ID == id {
			return &c.LineItems[i], true
		}
	}
	return nil, false
}

func (c *Cart) Has(id string) bool {
	_, ok := c.Get(id)
	return ok
}

// ProductLineItems filtra las líneas de tipo producto.
func (c *Cart) ProductLineItems() []LineItem {
	out := []LineItem{}
	for _, li := range c.LineItems {
		if li.Type == LineItemTypeProduct && li.ReferencedID != nil {
			out = append(out, li)
		}
	}
	return out
}

func (c *Cart) Count() int {
	n := 0
	for _, li := range c.LineItems {
		n += li.Quantity
	}
	return n
}

// Add suma una línea; si es apilable y ya existe se acumula la cantidad.
func (c *Cart) Add(li LineItem) {
	if li.Quantity <= 0 {
		li.Quantity = 1
	}
	if cur, ok := c.Get(li.ID); ok {
		if cur.Stackable {
			cur.Quantity += li.Quantity
		}
		return
	}
	c.LineItems = append(c.LineItems, li)
}

func (c *Cart) Remove(id string) {
	out := c.LineItems[:0]
	for _, li := range c.LineItems {
		if li.ID != id {
			out = append(out, li)
		}
	}
	c.LineItems = out
}

// NewProductLineItem crea una línea que referencia al producto con su mismo id.
func NewProductLineItem(productID uuid.UUID, qty int) LineItem {
	id := productID
	return LineItem{
		ID:           productID.String(),
		Type:         LineItemTypeProduct,
		ReferencedID: &id,
		Quantity:     qty,
		Stackable:    true,
		Removable:    true,
	}
}
