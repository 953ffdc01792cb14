package domain

import (
	"github.com/google/uuid"
)

type SortingType string

const (
	SortingTypeAlphanumeric SortingType = "alphanumeric"
	SortingTypePosition     SortingType = "position"
)

type DisplayType string

const (
	DisplayTypeText  DisplayType = "text"
	DisplayTypeColor DisplayType = "color"
	DisplayTypeMedia DisplayType = "media"
)

type PropertyGroup struct {
	ID           uuid.UUID          `gorm:"type:uuid;primaryKey"`
	Name         string             `gorm:"size:120"`
	DisplayType  DisplayType        `gorm:"type:varchar(20);default:'text'"`
	SortingType  SortingType        `gorm:"type:varchar(20);default:'alphanumeric'"`
	Position     int                `gorm:"default:0"`
	Translations []GroupTranslation `gorm:"foreignKey:GroupID"`
}

type PropertyOption struct {
	ID           uuid.UUID           `gorm:"type:uuid;primaryKey"`
	GroupID      uuid.UUID           `gorm:"type:uuid;index"`
	Group        *PropertyGroup      `gorm:"foreignKey:GroupID"`
	Name         string              `gorm:"size:120"`
	Position     int                 `gorm:"default:0"`
	ColorHexCode string              `gorm:"size:20"`
	MediaURL     string              `gorm:"size:255"`
	Translations []OptionTranslation `gorm:"foreignKey:OptionID"`
}

type GroupTranslation struct {
	GroupID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	LanguageID uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name       string    `gorm:"size:120"`
	Position   *int
}

type OptionTranslation struct {
	OptionID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	LanguageID uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name       string    `gorm:"size:120"`
	Position   *int
}

// ConfiguratorSetting une un producto padre con una opción seleccionable.
type ConfiguratorSetting struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	ProductID uuid.UUID       `gorm:"type:uuid;index"`
	OptionID  uuid.UUID       `gorm:"type:uuid;index"`
	Option    *PropertyOption `gorm:"foreignKey:OptionID"`
	Position  int             `gorm:"default:0"`
	MediaURL  string          `gorm:"size:255"`
}

// TranslatedName usa la traducción cargada si existe.
func (g *PropertyGroup) TranslatedName() string {
	for _, t := range g.Translations {
		if t.Name != "" {
			return t.Name
		}
	}
	return g.Name
}

func (g *PropertyGroup) TranslatedPosition() int {
	for _, t := range g.Translations {
		if t.Position != nil {
			return *t.Position
		}
	}
	return g.Position
}

func (o *PropertyOption) TranslatedName() string {
	for _, t := range o.Translations {
		if t.Name != "" {
			return t.Name
		}
	}
	return o.Name
}

func (o *PropertyOption) TranslatedPosition() int {
	for _, t := range o.Translations {
		if t.Position != nil {
			return *t.Position
		}
	}
	return o.Position
}
