// Package export renders console lists as spreadsheets.
package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"room-booking-console/internal/model"
)

// ContentTypeXLSX is the MIME type of the generated workbooks.
const ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// AssetSheet is the sheet holding the asset list.
const AssetSheet = "Tài sản"

var assetHeaders = []any{
	"Mã tài sản", "Tên tài sản", "Loại", "Giá trị", "Ngày mua",
	"Tình trạng", "Vị trí", "Người quản lý", "Số lần cấp phát",
}

// Assets writes the asset list as an xlsx workbook to w.
func Assets(w io.Writer, assets []model.Asset) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", AssetSheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}
	if err := f.SetSheetRow(AssetSheet, "A1", &assetHeaders); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err == nil {
		f.SetCellStyle(AssetSheet, "A1", "I1", style)
	}

	for i, a := range assets {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := assetRow(a)
		if err := f.SetSheetRow(AssetSheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write asset %d: %w", a.ID, err)
		}
	}
	f.SetColWidth(AssetSheet, "A", "A", 15)
	f.SetColWidth(AssetSheet, "B", "B", 30)
	f.SetColWidth(AssetSheet, "G", "H", 25)

	return f.Write(w)
}

func assetRow(a model.Asset) []any {
	category := string(a.CategoryLabel)
	if category == "" {
		category = string(a.Category)
	}
	condition := string(a.ConditionLabel)
	if condition == "" {
		condition = string(a.Condition)
	}
	var value any
	if a.Value != nil {
		value = float64(*a.Value)
	}
	var manager string
	if a.Manager != nil {
		manager = string(a.Manager.FullName)
	}
	return []any{string(a.Code), string(a.Name), category, value, string(a.PurchaseDate), condition, string(a.Location), manager, int64(a.AllocationCount)}
}
