package interchange_test

import (
	"bytes"
	"testing"
	"time"

	"go-roster/internal/interchange"
	"go-roster/internal/shared/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/xuri/excelize/v2"
)

func TestExportFilename(t *testing.T) {
	now := time.Date(2025, 3, 10, 23, 0, 0, 0, time.UTC)
	assert.Equal(t, "staff_data_2025-03-10.xlsx", interchange.ExportFilename(now))
}

func TestWriteWorkbook_ReadBack(t *testing.T) {
	table := interchange.ToTable(sampleRecords())

	data, err := interchange.WriteWorkbook(table, interchange.SheetName)
	assert.NoError(t, err)
	assert.NotEmpty(t, data)

	got, err := interchange.ReadWorkbook("roster.xlsx", data)
	assert.NoError(t, err)
	assert.Equal(t, table.Header, got.Header)
	assert.Len(t, got.Rows, 2)
	assert.Equal(t, "0123456789", got.Rows[1][3])

	out := interchange.FromTable(got, sequentialIDs(), func() time.Time { return fixedNow })
	assert.Len(t, out, 2)
	assert.Equal(t, "2020-01-01", out[0].DateOfJoining)
	assert.Equal(t, 5, out[0].ExperienceYears)
}

func TestWriteWorkbook_SheetAndWidths(t *testing.T) {
	data, err := interchange.WriteWorkbook(interchange.ToTable(sampleRecords()), interchange.SheetName)
	assert.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	assert.NoError(t, err)
	defer func() { _ = f.Close() }()

	assert.Equal(t, interchange.SheetName, f.GetSheetName(0))

	width, err := f.GetColWidth(interchange.SheetName, "E")
	assert.NoError(t, err)
	assert.Equal(t, 25.0, width)
}

func TestReadWorkbook_SkipsBlankRows(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	_ = f.SetSheetRow(sheet, "A1", &[]any{"Staff ID", "Name", "Mobile No", "Email ID", "Designation", "Date of Joining"})
	_ = f.SetSheetRow(sheet, "A3", &[]any{"S1", "A", "9000000001", "a@example.com", "Clerk", 43831})
	buf, err := f.WriteToBuffer()
	assert.NoError(t, err)

	got, err := interchange.ReadWorkbook("Upload.XLSX", buf.Bytes())
	assert.NoError(t, err)
	assert.Len(t, got.Rows, 1)

	out := interchange.FromTable(got, sequentialIDs(), func() time.Time { return fixedNow })
	assert.Len(t, out, 1)
	assert.Equal(t, "2020-01-01", out[0].DateOfJoining)
}

func TestReadWorkbook_RejectsUnsupportedExtension(t *testing.T) {
	_, err := interchange.ReadWorkbook("staff.csv", []byte("Staff ID,Name\n"))
	assert.ErrorIs(t, err, interchange.ErrUnsupportedFile)
	assert.False(t, interchange.IsSupportedFile("staff.csv"))
	assert.True(t, interchange.IsSupportedFile("STAFF.xls"))
}

func TestReadWorkbook_RejectsGarbage(t *testing.T) {
	for _, name := range []string{"broken.xlsx", "broken.xls"} {
		_, err := interchange.ReadWorkbook(name, []byte("this is not a spreadsheet"))

		appErr, ok := apperror.As(err)
		assert.True(t, ok, name)
		assert.Equal(t, apperror.CodeImportFormat, appErr.Code, name)
	}
}
