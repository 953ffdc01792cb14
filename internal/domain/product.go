package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// LiveVersionID es la versión publicada del catálogo.
var LiveVersionID = uuid.MustParse("0fa91ce3-e96a-4bc2-be4b-d9ce752c3425")

type Product struct {
	ID            uuid.UUID      `gorm:"type:uuid;primaryKey"`
	VersionID     uuid.UUID      `gorm:"type:uuid;index"`
	ParentID      *uuid.UUID     `gorm:"type:uuid;index"`
	ProductNumber string         `gorm:"size:64;index"`
	Name          string         `gorm:"size:180"`
	Active        *bool          `gorm:"index"`
	Available     bool           `gorm:"default:false"`
	OptionIDs     datatypes.JSON `gorm:"column:option_ids"`
	MainVariantID *uuid.UUID     `gorm:"type:uuid"`
	// orden propio de grupos del configurador (sólo en el padre)
	ConfiguratorGroupConfig []GroupConfig         `gorm:"type:jsonb;serializer:json"`
	ConfiguratorSettings    []ConfiguratorSetting `gorm:"foreignKey:ProductID"`
	ImageURL                string                `gorm:"size:255"`
	CreatedAt               time.Time
	UpdatedAt               time.Time
}

// GroupConfig es una entrada del orden de grupos definido en el producto padre.
type GroupConfig struct {
	ID                    uuid.UUID `json:"id"`
	ExpressionForListings bool      `json:"expressionForListings,omitempty"`
}

// ConfigParentID devuelve el id del producto que tiene la configuración de variantes.
func (p *Product) ConfigParentID() uuid.UUID {
	if p.ParentID != nil {
		return *p.ParentID
	}
	return p.ID
}

// OptionIDList decodifica los option ids guardados. Datos inválidos devuelven nil.
func (p *Product) OptionIDList() []uuid.UUID {
	ids, err := ParseOptionIDs(p.OptionIDs)
	if err != nil {
		return nil
	}
	return ids
}

func (p *Product) SetOptionIDs(ids []uuid.UUID) {
	b, _ := json.Marshal(ids)
	p.OptionIDs = datatypes.JSON(b)
}

// ParseOptionIDs decodifica un array JSON de ids.
func ParseOptionIDs(raw []byte) ([]uuid.UUID, error) {
	if len(raw) == 0 {
		return nil, ErrInvalidInput
	}
	var ids []uuid.UUID
	if err := json.Unmarshal(raw, &ids); err != nil {
		return nil, err
	}
	if ids == nil {
		return nil, ErrInvalidInput
	}
	return ids, nil
}

// ProductFilter se usa para los listados del storefront.
type ProductFilter struct {
	Page      int
	PageSize  int
	Query     string
	VersionID uuid.UUID
}
