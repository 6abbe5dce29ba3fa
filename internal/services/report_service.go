package services

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"resto-dashboard/internal/dto"
)

const (
	ordersSheet  = "Заказы"
	payrollSheet = "Зарплата"
)

var orderHeaders = []string{
	"№ заказа", "Стол", "Статус", "Позиций", "Подытог", "Итого", "Создан", "Обновлён",
}

var payrollHeaders = []string{
	"Сотрудник", "ID сотрудника", "Часы", "Ставка", "Начислено",
}

// OrdersWorkbook - выгрузка списка заказов.
func OrdersWorkbook(orders []dto.OrderDTO) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", ordersSheet); err != nil {
		return nil, err
	}
	if err := writeHeader(f, ordersSheet, orderHeaders); err != nil {
		return nil, err
	}

	dateFmt := "02.01.2006 15:04"
	for i, o := range orders {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		row := []interface{}{
			o.Number, o.TableName, o.Status, len(o.Items), o.Subtotal, o.Total,
			o.CreatedAt.Local().Format(dateFmt), o.UpdatedAt.Local().Format(dateFmt),
		}
		if err := f.SetSheetRow(ordersSheet, cell, &row); err != nil {
			return nil, err
		}
	}
	_ = f.SetColWidth(ordersSheet, "A", "C", 18)
	_ = f.SetColWidth(ordersSheet, "G", "H", 20)
	return f, nil
}

// PayrollWorkbook - расчётная ведомость периода с итоговой строкой.
func PayrollWorkbook(detail *dto.PayrollDetailDTO) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", payrollSheet); err != nil {
		return nil, err
	}
	if err := writeHeader(f, payrollSheet, payrollHeaders); err != nil {
		return nil, err
	}

	for i, line := range detail.Lines {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		row := []interface{}{line.StaffName, line.StaffID, line.Hours, line.Rate, line.Gross}
		if err := f.SetSheetRow(payrollSheet, cell, &row); err != nil {
			return nil, err
		}
	}

	totalRow := len(detail.Lines) + 2
	label, _ := excelize.CoordinatesToCellName(1, totalRow)
	value, _ := excelize.CoordinatesToCellName(5, totalRow)
	if err := f.SetCellValue(payrollSheet, label, fmt.Sprintf("Итого за %s - %s", detail.Period.From, detail.Period.To)); err != nil {
		return nil, err
	}
	if err := f.SetCellValue(payrollSheet, value, detail.Total); err != nil {
		return nil, err
	}
	_ = f.SetColWidth(payrollSheet, "A", "B", 28)
	return f, nil
}

func writeHeader(f *excelize.File, sheet string, headers []string) error {
	if err := f.SetSheetRow(sheet, "A1", &headers); err != nil {
		return err
	}
	style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(len(headers), 1)
	if err != nil {
		return err
	}
	return f.SetCellStyle(sheet, "A1", last, style)
}
