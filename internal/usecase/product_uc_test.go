package usecase

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Shape-and-Shift/shopware-variant-switch/internal/domain"
)

func TestProductGetRejectsNilID(t *testing.T) {
	uc := &ProductUC{Products: newFakeCatalog(newShirt())}
	p, err := uc.Get(context.Background(), uuid.Nil, domain.LiveVersionID)
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Nil(t, p)
}

func TestProductGet(t *testing.T) {
	s := newShirt()
	uc := &ProductUC{Products: newFakeCatalog(s)}
	p, err := uc.Get(context.Background(), s.blueSmall.ID, domain.LiveVersionID)
	require.NoError(t, err)
	assert.Equal(t, s.blueSmall.ID, p.ID)
}
