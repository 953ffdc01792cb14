package xlsx

import (
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/Shape-and-Shift/shopware-variant-switch/internal/usecase"
)

const SheetName = "Combinations"

// WriteMatrix escribe la grilla de variantes en una planilla con una fila por hijo.
func WriteMatrix(w io.Writer, m usecase.CombinationMatrix) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return err
	}

	header := []any{"Product number", "Variant ID"}
	for _, g := range m.Groups {
		header = append(header, g.Name)
	}
	header = append(header, "Available")
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return err
	}

	for i, row := range m.Rows {
		values := []any{row.ProductNumber, row.VariantID.String()}
		for _, name := range row.Options {
			values = append(values, name)
		}
		avail := "no"
		if row.Available {
			avail = "yes"
		}
		values = append(values, avail)

		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(SheetName, cell, &values); err != nil {
			return err
		}
	}

	if len(m.Rows) > 0 {
		last, err := excelize.CoordinatesToCellName(len(header), len(m.Rows)+1)
		if err != nil {
			return err
		}
		if err := f.AutoFilter(SheetName, "A1:"+last, nil); err != nil {
			return err
		}
	}
	_, err := f.WriteTo(w)
	return err
}
