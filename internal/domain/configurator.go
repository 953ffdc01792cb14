package domain

import "github.com/google/uuid"

// Combinability es el veredicto de una opción respecto de la selección actual.
type Combinability int

const (
	// CombinabilityUnknown: la opción no aparece en ninguna combinación y no se muestra.
	CombinabilityUnknown Combinability = iota
	Combinable
	NotCombinable
)

func (c Combinability) String() string {
	switch c {
	case Combinable:
		return "combinable"
	case NotCombinable:
		return "not_combinable"
	default:
		return "unknown"
	}
}

type ResolvedOption struct {
	ID                   uuid.UUID
	GroupID              uuid.UUID
	Name                 string
	Position             int
	ConfiguratorPosition int
	ColorHexCode         string
	MediaURL             string
	Selected             bool
	Combinable           Combinability
}

func (o ResolvedOption) IsCombinable() bool    { return o.Combinable == Combinable }
func (o ResolvedOption) IsNotCombinable() bool { return o.Combinable == NotCombinable }

type ResolvedGroup struct {
	ID            uuid.UUID
	Name          string
	DisplayType   DisplayType
	SortingType   SortingType
	Position      int
	HideOnListing bool
	Options       []ResolvedOption
}

// GroupSet es la lista ordenada de grupos de un producto.
type GroupSet []ResolvedGroup

// OptionCount suma las opciones visibles de todos los grupos.
func (gs GroupSet) OptionCount() int {
	n := 0
	for _, g := range gs {
		n += len(g.Options)
	}
	return n
}

func (gs GroupSet) Get(groupID uuid.UUID) (ResolvedGroup, bool) {
	for _, g := range gs {
		if g.ID == groupID {
			return g, true
		}
	}
	return ResolvedGroup{}, false
}

// ResolvedGroups es la tabla lateral producto -> grupos resueltos.
type ResolvedGroups map[uuid.UUID]GroupSet

// LineItemConfig es la anotación de una línea de carrito.
type LineItemConfig struct {
	ParentID  uuid.UUID
	OptionIDs []uuid.UUID
	Groups    GroupSet
}

// FoundCombination es el resultado del buscador de variantes.
type FoundCombination struct {
	VariantID uuid.UUID
	Options   map[uuid.UUID]uuid.UUID
}

// SalesChannelContext identifica idioma y versión de catálogo de la request.
type SalesChannelContext struct {
	SalesChannelID uuid.UUID
	LanguageID     uuid.UUID
	VersionID      uuid.UUID
}
