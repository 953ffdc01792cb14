package usecase

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/Shape-and-Shift/shopware-variant-switch/internal/domain"
)

// CombinationLoader construye el índice de combinaciones de varios padres en una sola consulta.
type CombinationLoader struct {
	Source domain.CombinationSource
}

// Load sólo indexa hijos activos de la versión pedida. Los errores de la
// fuente se devuelven sin envolver.
func (l *CombinationLoader) Load(ctx context.Context, parentIDs []uuid.UUID, versionID uuid.UUID) (domain.CombinationIndex, error) {
	if len(parentIDs) == 0 {
		return domain.CombinationIndex{}, nil
	}
	rows, err := l.Source.Combinations(ctx, domain.CombinationQuery{
		ParentIDs: parentIDs,
		VersionID: versionID,
		Active:    true,
	})
	if err != nil {
		return nil, err
	}
	idx := domain.BuildCombinationIndex(rows)

	indexed := 0
	for _, set := range idx {
		indexed += set.Len()
	}
	if skipped := len(rows) - indexed; skipped > 0 {
		log.Debug().Int("skipped", skipped).Int("parents", len(parentIDs)).Msg("combinaciones descartadas")
	}
	return idx, nil
}
