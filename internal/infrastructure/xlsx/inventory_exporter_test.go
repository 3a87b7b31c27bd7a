package xlsx_test

import (
	"bytes"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/semillas-api/internal/domain/entity"
	"github.com/jhoicas/semillas-api/internal/infrastructure/xlsx"
)

func TestInventoryExporter_FilasYTotales(t *testing.T) {
	rows := []*entity.InventorySnapshot{
		{VarietyID: "V1", VarietyName: "DM 46i20", SeedName: "Soja", CategoryID: "A", CategoryName: "Primera",
			TotalUnits: 60, TotalKg: decimal.RequireFromString("150.50"), BatchCount: 2},
		{VarietyID: "V2", VarietyName: "Baguette 750", SeedName: "Trigo", CategoryID: "A", CategoryName: "Primera",
			TotalUnits: 40, TotalKg: decimal.RequireFromString("49.50"), BatchCount: 1},
	}

	data, err := xlsx.NewInventoryExporter().Export(rows)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	got, err := f.GetRows(xlsx.SheetName)
	require.NoError(t, err)
	require.Len(t, got, 4, "encabezado, dos grupos y totales")
	assert.Equal(t, "Semilla", got[0][1])
	assert.Equal(t, "Soja", got[1][1])
	assert.Equal(t, "Baguette 750", got[2][2])
	assert.Equal(t, "Total", got[3][0])
	assert.Equal(t, "100", got[3][5])

	raw, err := f.GetCellValue(xlsx.SheetName, "G4", excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	assert.Equal(t, "200", raw)
}

func TestInventoryExporter_SinFilas(t *testing.T) {
	data, err := xlsx.NewInventoryExporter().Export(nil)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	got, err := f.GetRows(xlsx.SheetName)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Total", got[1][0])
}
