package postgres

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Shape-and-Shift/shopware-variant-switch/internal/domain"
)

type ConfiguratorRepo struct{ db *gorm.DB }

func NewConfiguratorRepo(db *gorm.DB) *ConfiguratorRepo { return &ConfiguratorRepo{db: db} }

// FindByProductIDs trae los settings con opción, grupo y traducciones del idioma pedido.
func (r *ConfiguratorRepo) FindByProductIDs(ctx context.Context, productIDs []uuid.UUID, languageID uuid.UUID) ([]domain.ConfiguratorSetting, error) {
	var list []domain.ConfiguratorSetting
	if len(productIDs) == 0 {
		return list, nil
	}
	err := r.db.WithContext(ctx).
		Where("product_id IN ?", productIDs).
		Preload("Option").
		Preload("Option.Translations", "language_id = ?", languageID).
		Preload("Option.Group").
		Preload("Option.Group.Translations", "language_id = ?", languageID).
		Order("position asc").
		Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (r *ConfiguratorRepo) Save(ctx context.Context, s *domain.ConfiguratorSetting) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Omit("Option").Save(s).Error
}

func (r *ConfiguratorRepo) SaveGroup(ctx context.Context, g *domain.PropertyGroup) error {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Translations").Save(g).Error; err != nil {
			return err
		}
		for i := range g.Translations {
			g.Translations[i].GroupID = g.ID
			if err := tx.Save(&g.Translations[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *ConfiguratorRepo) SaveOption(ctx context.Context, o *domain.PropertyOption) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Group", "Translations").Save(o).Error; err != nil {
			return err
		}
		for i := range o.Translations {
			o.Translations[i].OptionID = o.ID
			if err := tx.Save(&o.Translations[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
