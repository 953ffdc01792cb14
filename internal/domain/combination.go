package domain

import (
	"sort"
	"strings"

	"github.com/google/uuid"
)

// Combination es una variante hija concreta con su set de opciones.
type Combination struct {
	VariantID     uuid.UUID
	ProductNumber string
	OptionIDs     []uuid.UUID
	Available     bool
}

// CombinationRow es la fila cruda que entrega el catálogo.
type CombinationRow struct {
	ID            uuid.UUID
	ParentID      uuid.UUID
	OptionIDs     string
	ProductNumber string
	Available     bool
}

// AvailableCombinations contiene las combinaciones conocidas de un producto padre.
// No se modifica después de construida.
type AvailableCombinations struct {
	hashes       map[string]bool
	optionIDs    map[uuid.UUID]struct{}
	combinations []Combination
}

func NewAvailableCombinations() *AvailableCombinations {
	return &AvailableCombinations{
		hashes:    map[string]bool{},
		optionIDs: map[uuid.UUID]struct{}{},
	}
}

func (c *AvailableCombinations) add(comb Combination) {
	key := combinationKey(comb.OptionIDs)
	c.hashes[key] = c.hashes[key] || comb.Available
	for _, id := range comb.OptionIDs {
		c.optionIDs[id] = struct{}{}
	}
	c.combinations = append(c.combinations, comb)
}

// HasCombination indica si el set exacto de opciones identifica una variante.
func (c *AvailableCombinations) HasCombination(optionIDs []uuid.UUID) bool {
	if c == nil {
		return false
	}
	_, ok := c.hashes[combinationKey(optionIDs)]
	return ok
}

func (c *AvailableCombinations) IsAvailable(optionIDs []uuid.UUID) bool {
	if c == nil {
		return false
	}
	return c.hashes[combinationKey(optionIDs)]
}

// HasOptionID indica si la opción aparece en alguna combinación.
func (c *AvailableCombinations) HasOptionID(id uuid.UUID) bool {
	if c == nil {
		return false
	}
	_, ok := c.optionIDs[id]
	return ok
}

func (c *AvailableCombinations) Len() int {
	if c == nil {
		return 0
	}
	return len(c.combinations)
}

// Combinations devuelve una copia en el orden de carga.
func (c *AvailableCombinations) Combinations() []Combination {
	if c == nil {
		return nil
	}
	out := make([]Combination, len(c.combinations))
	copy(out, c.combinations)
	return out
}

func combinationKey(ids []uuid.UUID) string {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		parts = append(parts, id.String())
	}
	sort.Strings(parts)
	return strings.Join(parts, ",")
}

// CombinationIndex agrupa las combinaciones por producto padre.
type CombinationIndex map[uuid.UUID]*AvailableCombinations

// For nunca devuelve nil: un padre sin hijos indexados da un set vacío.
func (idx CombinationIndex) For(parentID uuid.UUID) *AvailableCombinations {
	if c, ok := idx[parentID]; ok {
		return c
	}
	return NewAvailableCombinations()
}

// BuildCombinationIndex arma el índice a partir de las filas del catálogo.
// Filas repetidas se ignoran y las que no tienen option ids válidos se descartan.
func BuildCombinationIndex(rows []CombinationRow) CombinationIndex {
	idx := CombinationIndex{}
	seen := make(map[uuid.UUID]struct{}, len(rows))
	for _, row := range rows {
		if _, ok := seen[row.ID]; ok {
			continue
		}
		seen[row.ID] = struct{}{}

		ids, err := ParseOptionIDs([]byte(row.OptionIDs))
		if err != nil {
			continue
		}
		set, ok := idx[row.ParentID]
		if !ok {
			set = NewAvailableCombinations()
			idx[row.ParentID] = set
		}
		set.add(Combination{
			VariantID:     row.ID,
			ProductNumber: row.ProductNumber,
			OptionIDs:     ids,
			Available:     row.Available,
		})
	}
	return idx
}
