package sheet

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"freightrate/common/model"
)

// TemplateFileName 模板下载文件名
const TemplateFileName = "pincodes_template.xlsx"

const templateSheet = "Pincodes"

// 表头列名
var headers = []string{"pincode", "zone", "state", "city", "oda"}

// 错误定义
var (
	ErrEmptySheet    = errors.New("sheet is empty")
	ErrMissingColumn = errors.New("sheet is missing a required column")
)

// WriteTemplate 写出邮编导入模板
func WriteTemplate(w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", templateSheet); err != nil {
		return err
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellStr(templateSheet, cell, h); err != nil {
			return err
		}
	}

	sample := []string{"110001", "N1", "Delhi", "New Delhi", "no"}
	for i, v := range sample {
		cell, _ := excelize.CoordinatesToCellName(i+1, 2)
		if err := f.SetCellStr(templateSheet, cell, v); err != nil {
			return err
		}
	}

	// 邮编列按文本存储，避免前导零丢失
	style, err := f.NewStyle(&excelize.Style{NumFmt: 49})
	if err != nil {
		return err
	}
	if err := f.SetColStyle(templateSheet, "A", style); err != nil {
		return err
	}

	_, err = f.WriteTo(w)
	return err
}

// ParsePincodes 解析上传的邮编表（第一个工作表），按表头名定位列
// 行号从 1 开始，与 Excel 中显示的一致
func ParsePincodes(r io.Reader) ([]model.PincodeRow, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open sheet failed: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrEmptySheet
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read rows failed: %w", err)
	}
	if len(rows) == 0 {
		return nil, ErrEmptySheet
	}

	index := make(map[string]int, len(headers))
	for i, h := range rows[0] {
		index[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, required := range []string{"pincode", "zone"} {
		if _, ok := index[required]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, required)
		}
	}

	cell := func(row []string, name string) string {
		i, ok := index[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	result := make([]model.PincodeRow, 0, len(rows)-1)
	for n, row := range rows[1:] {
		if isBlank(row) {
			continue
		}
		result = append(result, model.PincodeRow{
			Line:    n + 2,
			Pincode: cell(row, "pincode"),
			Zone:    cell(row, "zone"),
			State:   cell(row, "state"),
			City:    cell(row, "city"),
			ODA:     parseBool(cell(row, "oda")),
		})
	}
	return result, nil
}

func isBlank(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

func parseBool(s string) bool {
	switch strings.ToLower(s) {
	case "1", "y", "yes", "true", "oda":
		return true
	default:
		return false
	}
}
