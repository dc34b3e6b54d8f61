// Package interchange converts the roster to and from spreadsheet tables.
package interchange

import (
	"strconv"
	"strings"
	"time"

	"go-roster/internal/domain"
)

// Table is a header row plus data rows of raw cell text.
type Table struct {
	Header []string
	Rows   [][]string
}

// ToTable renders one row per record in the fixed column order.
func ToTable(records []domain.Staff) Table {
	rows := make([][]string, 0, len(records))
	for i, r := range records {
		row := make([]string, len(Columns))
		row[colSrNo] = strconv.Itoa(i + 1)
		row[colStaffID] = r.StaffID
		row[colName] = r.Name
		row[colMobile] = r.Mobile
		row[colEmail] = r.Email
		row[colType] = string(r.Type)
		row[colDepartment] = r.Department
		row[colPanCard] = r.PanCard
		row[colAadhaarCard] = r.AadhaarCard
		row[colDesignation] = r.Designation
		row[colQualifications] = r.Qualifications
		row[colExperienceYears] = strconv.Itoa(r.ExperienceYears)
		row[colExperienceMonths] = strconv.Itoa(r.ExperienceMonths)
		row[colDateOfBirth] = FormatDisplayDate(r.DateOfBirth)
		row[colDateOfJoining] = FormatDisplayDate(r.DateOfJoining)
		row[colDateOfRelieving] = FormatDisplayDate(r.DateOfRelieving)
		row[colStatus] = string(r.Status)
		rows = append(rows, row)
	}
	return Table{Header: Headers(), Rows: rows}
}

// FromTable reads records by header name, accepting each column's aliases.
// Every surviving row gets a fresh id and createdAt. Rows missing staffId,
// name, mobile, email or designation are dropped.
func FromTable(t Table, newID func() string, now func() time.Time) []domain.Staff {
	lookup := newHeaderLookup(t.Header)

	out := make([]domain.Staff, 0, len(t.Rows))
	for _, row := range t.Rows {
		get := func(col int) string { return lookup.value(row, col) }

		rec := domain.Staff{
			StaffID:          get(colStaffID),
			Name:             get(colName),
			Mobile:           get(colMobile),
			Email:            get(colEmail),
			Type:             domain.StaffType(get(colType)),
			Department:       get(colDepartment),
			PanCard:          get(colPanCard),
			AadhaarCard:      get(colAadhaarCard),
			Designation:      get(colDesignation),
			Qualifications:   get(colQualifications),
			ExperienceYears:  parseInt(get(colExperienceYears)),
			ExperienceMonths: parseInt(get(colExperienceMonths)),
			DateOfBirth:      ParseDate(get(colDateOfBirth)),
			DateOfJoining:    ParseDate(get(colDateOfJoining)),
			DateOfRelieving:  ParseDate(get(colDateOfRelieving)),
			Status:           domain.StaffStatus(get(colStatus)),
		}
		if rec.Type == "" {
			rec.Type = domain.StaffTypeTeaching
		}
		if rec.Status == "" {
			rec.Status = domain.StaffStatusActive
		}

		if rec.StaffID == "" || rec.Name == "" || rec.Mobile == "" || rec.Email == "" || rec.Designation == "" {
			continue
		}

		rec.ID = newID()
		rec.CreatedAt = now().UTC()
		out = append(out, rec)
	}
	return out
}

// TemplateTable is the one-row example offered for download next to the import form.
func TemplateTable() Table {
	header := Headers()[colStaffID:]
	row := make([]string, len(Columns))
	row[colStaffID] = "S001"
	row[colName] = "John Doe"
	row[colMobile] = "9876543210"
	row[colEmail] = "john.doe@example.com"
	row[colType] = string(domain.StaffTypeTeaching)
	row[colDepartment] = "CSE"
	row[colPanCard] = "ABCDE1234F"
	row[colAadhaarCard] = "1234-5678-9012"
	row[colDesignation] = "Professor"
	row[colQualifications] = "PhD Computer Science"
	row[colExperienceYears] = "5"
	row[colExperienceMonths] = "6"
	row[colDateOfBirth] = "15-Jan-1985"
	row[colDateOfJoining] = "01-Jan-2020"
	row[colDateOfRelieving] = ""
	row[colStatus] = string(domain.StaffStatusActive)
	return Table{Header: header, Rows: [][]string{row[colStaffID:]}}
}

// headerLookup maps each column to the sheet positions of its accepted headers,
// in preference order.
type headerLookup [][]int

func newHeaderLookup(header []string) headerLookup {
	pos := make(map[string]int, len(header))
	for i, h := range header {
		key := normalizeHeader(h)
		if _, dup := pos[key]; !dup {
			pos[key] = i
		}
	}

	lookup := make(headerLookup, len(Columns))
	for col, c := range Columns {
		names := append([]string{c.Header}, c.Aliases...)
		for _, name := range names {
			if i, ok := pos[normalizeHeader(name)]; ok {
				lookup[col] = append(lookup[col], i)
			}
		}
	}
	return lookup
}

// value returns the first non-blank cell among the column's headers.
func (l headerLookup) value(row []string, col int) string {
	for _, i := range l[col] {
		if i < len(row) {
			if v := strings.TrimSpace(row[i]); v != "" {
				return v
			}
		}
	}
	return ""
}

func parseInt(raw string) int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0
	}
	if n, err := strconv.Atoi(raw); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return int(f)
	}
	return 0
}
