package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resto-dashboard/internal/dto"
)

func TestOrdersWorkbook(t *testing.T) {
	created := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	f, err := OrdersWorkbook([]dto.OrderDTO{
		{Number: "A-1", TableName: "Стол 4", Status: "open", Items: []dto.OrderItemDTO{{}, {}}, Subtotal: 90, Total: 100, CreatedAt: created, UpdatedAt: created},
	})
	require.NoError(t, err)

	header, err := f.GetCellValue(ordersSheet, "A1")
	require.NoError(t, err)
	assert.Equal(t, "№ заказа", header)

	rows, err := f.GetRows(ordersSheet)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "A-1", rows[1][0])
	assert.Equal(t, "2", rows[1][3])
	assert.Equal(t, "100", rows[1][5])
}

func TestPayrollWorkbookTotalRow(t *testing.T) {
	f, err := PayrollWorkbook(&dto.PayrollDetailDTO{
		Period: dto.PayrollPeriodDTO{From: "2026-03-01", To: "2026-03-15"},
		Lines: []dto.PayrollLineDTO{
			{StaffID: "s1", StaffName: "Алия", Hours: 40, Rate: 10, Gross: 400},
			{StaffID: "s2", StaffName: "Бахром", Hours: 20, Rate: 12, Gross: 240},
		},
		Total: 640,
	})
	require.NoError(t, err)

	label, err := f.GetCellValue(payrollSheet, "A4")
	require.NoError(t, err)
	assert.Equal(t, "Итого за 2026-03-01 - 2026-03-15", label)

	total, err := f.GetCellValue(payrollSheet, "E4")
	require.NoError(t, err)
	assert.Equal(t, "640", total)
}
