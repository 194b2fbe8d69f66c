package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"room-booking-console/internal/model"
)

func TestAssets(t *testing.T) {
	value := model.Number(1500000)
	assets := []model.Asset{
		{ID: 1, Code: "TS01", Name: "Máy in", Category: model.CategoryPrinter, CategoryLabel: "Máy in", Value: &value, Condition: model.ConditionGood, Manager: &model.Employee{FullName: "Nguyễn Văn A"}},
		{ID: 2, Code: "TS02", Name: "Bàn họp", Category: model.CategoryFurniture},
	}

	var buf bytes.Buffer
	require.NoError(t, Assets(&buf, assets))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(AssetSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Mã tài sản", rows[0][0])
	assert.Equal(t, []string{"TS01", "Máy in", "Máy in", "1500000", "", "tot", "", "Nguyễn Văn A", "0"}, rows[1])
	assert.Equal(t, "ban_ghe", rows[2][2])
}

func TestAssets_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Assets(&buf, nil))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	rows, err := f.GetRows(AssetSheet)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}
