package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/Shape-and-Shift/shopware-variant-switch/internal/domain"
)

type CombinationRepo struct{ db *gorm.DB }

func NewCombinationRepo(db *gorm.DB) *CombinationRepo { return &CombinationRepo{db: db} }

// Combinations lista los hijos de los padres pedidos. Un hijo sin flag de activo
// hereda el del padre.
func (r *CombinationRepo) Combinations(ctx context.Context, q domain.CombinationQuery) ([]domain.CombinationRow, error) {
	rows := []domain.CombinationRow{}
	if len(q.ParentIDs) == 0 {
		return rows, nil
	}
	err := r.db.WithContext(ctx).
		Table("products AS product").
		Select(`product.id AS id,
			product.parent_id AS parent_id,
			product.option_ids AS option_ids,
			product.product_number AS product_number,
			product.available AS available`).
		Joins("LEFT JOIN products AS parent ON product.parent_id = parent.id").
		Where("product.parent_id IN ?", q.ParentIDs).
		Where("product.version_id = ?", q.VersionID).
		Where("COALESCE(product.active, parent.active) = ?", q.Active).
		Where("product.option_ids IS NOT NULL").
		Order("product.product_number asc").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
