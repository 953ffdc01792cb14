package postgres

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Shape-and-Shift/shopware-variant-switch/internal/domain"
)

type ProductRepo struct{ db *gorm.DB }

func NewProductRepo(db *gorm.DB) *ProductRepo { return &ProductRepo{db: db} }

func (r *ProductRepo) Save(ctx context.Context, p *domain.Product) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.VersionID == uuid.Nil {
		p.VersionID = domain.LiveVersionID
	}
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *ProductRepo) FindByID(ctx context.Context, id, versionID uuid.UUID) (*domain.Product, error) {
	var p domain.Product
	if err := r.db.WithContext(ctx).First(&p, "id = ? AND version_id = ?", id, versionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	list := []domain.Product{p}
	if err := r.inherit(ctx, list, versionID); err != nil {
		return nil, err
	}
	return &list[0], nil
}

func (r *ProductRepo) FindByIDs(ctx context.Context, ids []uuid.UUID, versionID uuid.UUID) ([]domain.Product, error) {
	var list []domain.Product
	if len(ids) == 0 {
		return list, nil
	}
	if err := r.db.WithContext(ctx).Where("id IN ? AND version_id = ?", ids, versionID).Find(&list).Error; err != nil {
		return nil, err
	}
	if err := r.inherit(ctx, list, versionID); err != nil {
		return nil, err
	}
	return list, nil
}

// List devuelve los productos mostrables en el listado: hijos activos que son
// la variante principal de su padre, o productos sin variantes.
func (r *ProductRepo) List(ctx context.Context, f domain.ProductFilter) ([]domain.Product, int64, error) {
	var list []domain.Product
	q := r.db.WithContext(ctx).Model(&domain.Product{}).
		Joins("LEFT JOIN products AS parent ON products.parent_id = parent.id").
		Where("products.version_id = ?", f.VersionID).
		Where("COALESCE(products.active, parent.active, ?) = ?", true, true).
		Where(`(products.parent_id IS NULL AND NOT EXISTS (SELECT 1 FROM products AS child WHERE child.parent_id = products.id))
			OR (products.parent_id IS NOT NULL AND (parent.main_variant_id = products.id OR (parent.main_variant_id IS NULL AND products.id = (
				SELECT c.id FROM products AS c WHERE c.parent_id = products.parent_id ORDER BY c.product_number ASC LIMIT 1))))`)
	if f.Query != "" {
		like := "%" + strings.TrimSpace(f.Query) + "%"
		q = q.Where("LOWER(COALESCE(NULLIF(products.name, ''), parent.name)) LIKE LOWER(?) OR LOWER(products.product_number) LIKE LOWER(?)", like, like)
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if f.Page <= 0 {
		f.Page = 1
	}
	if f.PageSize <= 0 {
		f.PageSize = 20
	}
	offset := (f.Page - 1) * f.PageSize
	if err := q.Select("products.*").Order("products.product_number asc").Offset(offset).Limit(f.PageSize).Find(&list).Error; err != nil {
		return nil, 0, err
	}
	if err := r.inherit(ctx, list, f.VersionID); err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

// inherit completa en los hijos los campos vacíos con los del padre.
func (r *ProductRepo) inherit(ctx context.Context, list []domain.Product, versionID uuid.UUID) error {
	parentIDs := []uuid.UUID{}
	for _, p := range list {
		if p.ParentID != nil {
			parentIDs = append(parentIDs, *p.ParentID)
		}
	}
	if len(parentIDs) == 0 {
		return nil
	}
	var parents []domain.Product
	if err := r.db.WithContext(ctx).Where("id IN ? AND version_id = ?", parentIDs, versionID).Find(&parents).Error; err != nil {
		return err
	}
	byID := make(map[uuid.UUID]*domain.Product, len(parents))
	for i := range parents {
		byID[parents[i].ID] = &parents[i]
	}
	for i := range list {
		p := &list[i]
		if p.ParentID == nil {
			continue
		}
		parent, ok := byID[*p.ParentID]
		if !ok {
			continue
		}
		if p.Name == "" {
			p.Name = parent.Name
		}
		if p.ImageURL == "" {
			p.ImageURL = parent.ImageURL
		}
		if p.Active == nil {
			p.Active = parent.Active
		}
		if len(p.ConfiguratorGroupConfig) == 0 {
			p.ConfiguratorGroupConfig = parent.ConfiguratorGroupConfig
		}
		if p.MainVariantID == nil {
			p.MainVariantID = parent.MainVariantID
		}
	}
	return nil
}
