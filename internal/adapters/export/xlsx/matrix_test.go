package xlsx

import (
	"bytes"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/Shape-and-Shift/shopware-variant-switch/internal/usecase"
)

func TestWriteMatrix(t *testing.T) {
	variant := uuid.New()
	m := usecase.CombinationMatrix{
		Groups: []usecase.MatrixGroup{{ID: uuid.New(), Name: "Color"}, {ID: uuid.New(), Name: "Talle"}},
		Rows: []usecase.MatrixRow{
			{ProductNumber: "SW-1.1", VariantID: variant, Options: []string{"Rojo", "S"}, Available: true},
			{ProductNumber: "SW-1.2", VariantID: uuid.New(), Options: []string{"Rojo", ""}, Available: false},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteMatrix(&buf, m))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Product number", "Variant ID", "Color", "Talle", "Available"}, rows[0])
	assert.Equal(t, []string{"SW-1.1", variant.String(), "Rojo", "S", "yes"}, rows[1])
	assert.Equal(t, "SW-1.2", rows[2][0])
	assert.Equal(t, "no", rows[2][4])
}

func TestWriteMatrixEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteMatrix(&buf, usecase.CombinationMatrix{}))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 1)
}
