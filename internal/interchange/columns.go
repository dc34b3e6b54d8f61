package interchange

import "strings"

// Column describes one spreadsheet column: the exported header, extra headers
// accepted on import and the export width hint in characters.
type Column struct {
	Header  string
	Aliases []string
	Width   float64
}

const (
	colSrNo = iota
	colStaffID
	colName
	colMobile
	colEmail
	colType
	colDepartment
	colPanCard
	colAadhaarCard
	colDesignation
	colQualifications
	colExperienceYears
	colExperienceMonths
	colDateOfBirth
	colDateOfJoining
	colDateOfRelieving
	colStatus
)

// Columns is the fixed export order.
var Columns = []Column{
	colSrNo:             {Header: "Sr. No", Width: 8},
	colStaffID:          {Header: "Staff ID", Aliases: []string{"staffId"}, Width: 12},
	colName:             {Header: "Name", Aliases: []string{"name"}, Width: 20},
	colMobile:           {Header: "Mobile No", Aliases: []string{"mobile"}, Width: 15},
	colEmail:            {Header: "Email ID", Aliases: []string{"email"}, Width: 25},
	colType:             {Header: "Teaching/Non-Teaching", Aliases: []string{"type"}, Width: 18},
	colDepartment:       {Header: "Department", Aliases: []string{"department"}, Width: 20},
	colPanCard:          {Header: "PAN Card", Aliases: []string{"panCard"}, Width: 15},
	colAadhaarCard:      {Header: "Aadhaar Card", Aliases: []string{"aadhaarCard"}, Width: 18},
	colDesignation:      {Header: "Designation", Aliases: []string{"designation"}, Width: 20},
	colQualifications:   {Header: "Qualifications", Aliases: []string{"qualifications"}, Width: 25},
	colExperienceYears:  {Header: "Experience (Years)", Aliases: []string{"experienceYears"}, Width: 12},
	colExperienceMonths: {Header: "Experience (Months)", Aliases: []string{"experienceMonths"}, Width: 12},
	colDateOfBirth:      {Header: "Date of Birth", Aliases: []string{"dateOfBirth"}, Width: 15},
	colDateOfJoining:    {Header: "Date of Joining", Aliases: []string{"dateOfJoining"}, Width: 15},
	colDateOfRelieving:  {Header: "Date of Leaving", Aliases: []string{"Date of Relieving", "dateOfRelieving"}, Width: 15},
	colStatus:           {Header: "Status", Aliases: []string{"status"}, Width: 10},
}

var numericColumns = map[string]bool{
	Columns[colSrNo].Header:             true,
	Columns[colExperienceYears].Header:  true,
	Columns[colExperienceMonths].Header: true,
}

// Headers returns the export header row.
func Headers() []string {
	out := make([]string, len(Columns))
	for i, c := range Columns {
		out[i] = c.Header
	}
	return out
}

func normalizeHeader(header string) string {
	return strings.ToLower(strings.TrimSpace(header))
}

func widthFor(header string) (float64, bool) {
	for _, c := range Columns {
		if c.Header == header {
			return c.Width, true
		}
	}
	return 0, false
}
