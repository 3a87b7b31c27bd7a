// Package xlsx genera la planilla descargable del inventario consolidado.
package xlsx

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	app "github.com/jhoicas/semillas-api/internal/application/production"
	"github.com/jhoicas/semillas-api/internal/domain/entity"
)

var _ app.InventoryExporter = (*InventoryExporter)(nil)

// SheetName hoja única del archivo.
const SheetName = "Inventario"

var headers = []string{"Sede", "Semilla", "Variedad", "Categoría", "Lotes", "Unidades", "Kg"}

// InventoryExporter arma un .xlsx con una fila por grupo y una fila de totales.
type InventoryExporter struct{}

// NewInventoryExporter construye el exportador.
func NewInventoryExporter() *InventoryExporter {
	return &InventoryExporter{}
}

func (e *InventoryExporter) Export(rows []*entity.InventorySnapshot) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	boldStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#D9E1F2"}},
	})
	if err != nil {
		return nil, fmt.Errorf("header style: %w", err)
	}
	kgFmt := "#,##0.00"
	kgStyle, err := f.NewStyle(&excelize.Style{CustomNumFmt: &kgFmt})
	if err != nil {
		return nil, fmt.Errorf("kg style: %w", err)
	}

	for i, h := range headers {
		col, _ := excelize.ColumnNumberToName(i + 1)
		cell := fmt.Sprintf("%s1", col)
		_ = f.SetCellValue(SheetName, cell, h)
		_ = f.SetCellStyle(SheetName, cell, cell, boldStyle)
	}

	totalUnits, totalBatches := 0, 0
	totalKg := 0.0
	for i, r := range rows {
		row := i + 2
		kg, _ := r.TotalKg.Float64()
		_ = f.SetCellValue(SheetName, fmt.Sprintf("A%d", row), r.UnitID)
		_ = f.SetCellValue(SheetName, fmt.Sprintf("B%d", row), r.SeedName)
		_ = f.SetCellValue(SheetName, fmt.Sprintf("C%d", row), r.VarietyName)
		_ = f.SetCellValue(SheetName, fmt.Sprintf("D%d", row), r.CategoryName)
		_ = f.SetCellValue(SheetName, fmt.Sprintf("E%d", row), r.BatchCount)
		_ = f.SetCellValue(SheetName, fmt.Sprintf("F%d", row), r.TotalUnits)
		_ = f.SetCellValue(SheetName, fmt.Sprintf("G%d", row), kg)
		totalUnits += r.TotalUnits
		totalBatches += r.BatchCount
		totalKg += kg
	}

	summaryRow := len(rows) + 2
	_ = f.SetCellValue(SheetName, fmt.Sprintf("A%d", summaryRow), "Total")
	_ = f.SetCellValue(SheetName, fmt.Sprintf("E%d", summaryRow), totalBatches)
	_ = f.SetCellValue(SheetName, fmt.Sprintf("F%d", summaryRow), totalUnits)
	_ = f.SetCellValue(SheetName, fmt.Sprintf("G%d", summaryRow), totalKg)
	_ = f.SetCellStyle(SheetName, fmt.Sprintf("A%d", summaryRow), fmt.Sprintf("G%d", summaryRow), boldStyle)
	_ = f.SetCellStyle(SheetName, "G2", fmt.Sprintf("G%d", summaryRow), kgStyle)

	for i := range headers {
		col, _ := excelize.ColumnNumberToName(i + 1)
		_ = f.SetColWidth(SheetName, col, col, 18)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write xlsx: %w", err)
	}
	return buf.Bytes(), nil
}
