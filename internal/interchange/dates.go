package interchange

import (
	"math"
	"strconv"
	"strings"
	"time"

	"go-roster/internal/domain"
)

// DisplayDateLayout renders dates as 01-Jan-2020 in exported sheets.
const DisplayDateLayout = "02-Jan-2006"

// Spreadsheet serial day 25569 is 1970-01-01.
const serialEpochOffset = 25569

var textDateLayouts = []string{
	domain.DateLayout,
	DisplayDateLayout,
	"2-Jan-2006",
	"02-Jan-06",
	"02 Jan 2006",
	"2 Jan 2006",
	"2 January 2006",
	"02-January-2006",
	"Jan 2, 2006",
	"January 2, 2006",
	"01/02/2006",
	"1/2/2006",
	"2006/01/02",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2006-01-02 15:04:05",
}

// FormatDisplayDate turns a stored ISO date into the export format.
// Blank stays blank; an unparseable value is passed through untouched.
func FormatDisplayDate(iso string) string {
	iso = strings.TrimSpace(iso)
	if iso == "" {
		return ""
	}
	t, ok := domain.ParseDate(iso)
	if !ok {
		return iso
	}
	return t.Format(DisplayDateLayout)
}

// ParseDate normalises a spreadsheet cell to an ISO calendar date. It accepts a
// numeric date serial or any of the textual layouts above; anything else yields "".
func ParseDate(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "-" {
		return ""
	}

	if serial, err := strconv.ParseFloat(raw, 64); err == nil {
		return SerialToDate(serial).Format(domain.DateLayout)
	}

	for _, layout := range textDateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format(domain.DateLayout)
		}
	}
	return ""
}

// SerialToDate converts a spreadsheet date serial to its UTC calendar date.
func SerialToDate(serial float64) time.Time {
	secs := math.Round((serial - serialEpochOffset) * 86400)
	return domain.DateOnly(time.Unix(int64(secs), 0).UTC())
}
