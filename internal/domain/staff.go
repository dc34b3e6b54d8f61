package domain

import (
	"strings"
	"time"
)

// DateLayout is the ISO calendar date format used for every stored date field.
const DateLayout = "2006-01-02"

type StaffType string

const (
	StaffTypeTeaching    StaffType = "Teaching"
	StaffTypeNonTeaching StaffType = "Non-Teaching"
)

type StaffStatus string

const (
	StaffStatusActive StaffStatus = "Active"
	StaffStatusLeft   StaffStatus = "Left"
)

// Departments is the closed set a staff member may belong to. Empty is also allowed.
var Departments = []string{"CSE", "EE", "ECE", "CIVIL", "Physics", "Math", "Chemistry", "Biotech"}

func IsDepartment(v string) bool {
	for _, d := range Departments {
		if d == v {
			return true
		}
	}
	return false
}

// Staff is the persisted roster entry. JSON names are the storage format.
type Staff struct {
	ID               string      `json:"id"`
	StaffID          string      `json:"staffId"`
	Name             string      `json:"name"`
	Mobile           string      `json:"mobile"`
	Email            string      `json:"email"`
	Type             StaffType   `json:"type"`
	Department       string      `json:"department"`
	PanCard          string      `json:"panCard"`
	AadhaarCard      string      `json:"aadhaarCard"`
	Designation      string      `json:"designation"`
	Qualifications   string      `json:"qualifications"`
	ExperienceYears  int         `json:"experienceYears"`
	ExperienceMonths int         `json:"experienceMonths"`
	DateOfBirth      string      `json:"dateOfBirth"`
	DateOfJoining    string      `json:"dateOfJoining"`
	DateOfRelieving  string      `json:"dateOfRelieving"`
	Status           StaffStatus `json:"status"`
	CreatedAt        time.Time   `json:"createdAt"`
	UpdatedAt        *time.Time  `json:"updatedAt,omitempty"`
}

func (s Staff) IsActive() bool {
	return s.Status == StaffStatusActive
}

// TotalExperienceYears folds whole years out of the month counter.
func (s Staff) TotalExperienceYears() int {
	years, months := s.ExperienceYears, s.ExperienceMonths
	if years < 0 {
		years = 0
	}
	if months < 0 {
		months = 0
	}
	return years + months/12
}

// ParseDate parses an ISO calendar date. Blank input reports ok=false.
func ParseDate(v string) (time.Time, bool) {
	v = strings.TrimSpace(v)
	if v == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(DateLayout, v)
	if err != nil {
		// Tolerate full timestamps written by older clients.
		t, err = time.Parse(time.RFC3339, v)
		if err != nil {
			return time.Time{}, false
		}
		return DateOnly(t), true
	}
	return t, true
}

// DateOnly truncates t to its calendar date at UTC midnight.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
