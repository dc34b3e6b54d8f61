package interchange

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/extrame/xls"
	"github.com/xuri/excelize/v2"
)

const (
	SheetName         = "Staff Data"
	TemplateSheetName = "Staff Template"
	TemplateFilename  = "staff_import_template.xlsx"
	ContentTypeXLSX   = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

	maxXLSRows = 100000
)

// ExportFilename names an export after the day it was produced.
func ExportFilename(now time.Time) string {
	return fmt.Sprintf("staff_data_%s.xlsx", now.UTC().Format("2006-01-02"))
}

// WriteWorkbook encodes t as a single-sheet .xlsx file.
func WriteWorkbook(t Table, sheet string) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	rows := append([][]string{t.Header}, t.Rows...)
	for r, row := range rows {
		cells := make([]any, len(row))
		for c, v := range row {
			cells[c] = v
			if r > 0 && c < len(t.Header) && numericColumns[t.Header[c]] {
				if n, err := strconv.Atoi(v); err == nil {
					cells[c] = n
				}
			}
		}
		start, err := excelize.CoordinatesToCellName(1, r+1)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(sheet, start, &cells); err != nil {
			return nil, fmt.Errorf("write row %d: %w", r+1, err)
		}
	}

	for i, h := range t.Header {
		width, ok := widthFor(h)
		if !ok {
			continue
		}
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetColWidth(sheet, col, col, width); err != nil {
			return nil, fmt.Errorf("set width %s: %w", col, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("encode workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// IsSupportedFile reports whether filename has an accepted spreadsheet extension.
func IsSupportedFile(filename string) bool {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx", ".xls":
		return true
	}
	return false
}

// ReadWorkbook decodes the first worksheet of an .xlsx or .xls file. The first
// row is the header; blank rows are skipped.
func ReadWorkbook(filename string, data []byte) (Table, error) {
	var (
		rows [][]string
		err  error
	)
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx":
		rows, err = readXLSX(data)
	case ".xls":
		rows, err = readXLS(data)
	default:
		return Table{}, ErrUnsupportedFile
	}
	if err != nil {
		return Table{}, ErrUnreadableWorkbook.WithErr(err)
	}
	if len(rows) == 0 {
		return Table{}, ErrNoValidRows
	}

	header := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		header[i] = strings.TrimSpace(h)
	}

	t := Table{Header: header}
	for _, row := range rows[1:] {
		if isBlankRow(row) {
			continue
		}
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}

func readXLSX(data []byte) ([][]string, error) {
	// Raw values keep date cells as serial numbers instead of locale-formatted text.
	opts := excelize.Options{RawCellValue: true}
	f, err := excelize.OpenReader(bytes.NewReader(data), opts)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, fmt.Errorf("no worksheet found")
	}
	return f.GetRows(sheet, opts)
}

func readXLS(data []byte) (rows [][]string, err error) {
	// the xls decoder panics on some malformed inputs
	defer func() {
		if r := recover(); r != nil {
			rows, err = nil, fmt.Errorf("decode xls: %v", r)
		}
	}()

	wb, err := xls.OpenReader(bytes.NewReader(data), "utf-8")
	if err != nil {
		return nil, err
	}
	if wb.NumSheets() == 0 {
		return nil, fmt.Errorf("no worksheet found")
	}
	sheet := wb.GetSheet(0)
	if sheet == nil {
		return nil, fmt.Errorf("no worksheet found")
	}

	for i := 0; i <= int(sheet.MaxRow) && i < maxXLSRows; i++ {
		row := sheet.Row(i)
		if row == nil {
			rows = append(rows, nil)
			continue
		}
		cells := make([]string, 0, row.LastCol()+1)
		for c := 0; c < row.LastCol(); c++ {
			cells = append(cells, row.Col(c))
		}
		rows = append(rows, cells)
	}
	return rows, nil
}

func isBlankRow(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
