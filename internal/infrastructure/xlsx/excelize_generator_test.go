package xlsx_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/stockflow-api/internal/domain/entity"
	"github.com/jhoicas/stockflow-api/internal/infrastructure/xlsx"
)

func readRows(t *testing.T, data []byte, sheet string) [][]string {
	t.Helper()
	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows(sheet)
	require.NoError(t, err)
	return rows
}

// ─── StockWorkbook ───────────────────────────────────────────────────────────

func TestStockWorkbook(t *testing.T) {
	price := decimal.RequireFromString("12.50")
	products := []*entity.Product{
		{
			Name: "Routeur", SKU: "RT-1", Quantity: 4, SalePrice: &price,
			SerialNumbers: []string{"A", "B"},
			Brand:         &entity.Brand{Name: "Teltonika"},
			Location:      &entity.Location{Name: "Dépôt"},
		},
		{Name: "Câble", Quantity: 0},
	}

	data, err := xlsx.NewExcelizeGenerator().StockWorkbook(products)
	require.NoError(t, err)

	rows := readRows(t, data, "Stock")
	require.Len(t, rows, 3)
	assert.Equal(t, "Nom", rows[0][0])
	assert.Equal(t, "Routeur", rows[1][0])
	assert.Equal(t, "Teltonika", rows[1][3])
	assert.Equal(t, "Dépôt", rows[1][6])
	assert.Equal(t, "4", rows[1][7])
	assert.Equal(t, "A, B", rows[1][8])
	assert.Equal(t, "50", rows[1][12])
	assert.Equal(t, "Câble", rows[2][0])
}

func TestStockWorkbook_Vacio(t *testing.T) {
	data, err := xlsx.NewExcelizeGenerator().StockWorkbook(nil)
	require.NoError(t, err)
	assert.Len(t, readRows(t, data, "Stock"), 1)
}

// ─── MovementsWorkbook ───────────────────────────────────────────────────────

func TestMovementsWorkbook(t *testing.T) {
	movs := []*entity.Movement{
		{
			Type: entity.MovementTypeExit, Quantity: 2,
			Date:        time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
			ProductName: "Routeur", UserName: "Admin", ProjectName: "Nord",
			SerialNumbers: []string{"X1", "X2"},
		},
		{Type: entity.MovementTypeEntry, Quantity: 5, ProductName: "Câble"},
	}

	data, err := xlsx.NewExcelizeGenerator().MovementsWorkbook(movs)
	require.NoError(t, err)

	rows := readRows(t, data, "Mouvements")
	require.Len(t, rows, 3)
	assert.Equal(t, "2026-03-01 09:00", rows[1][0])
	assert.Equal(t, "Sortie", rows[1][1])
	assert.Equal(t, "2", rows[1][6])
	assert.Equal(t, "X1, X2", rows[1][7])
	assert.Equal(t, "Nord", rows[1][11])
	assert.Equal(t, "Entrée", rows[2][1])
}
