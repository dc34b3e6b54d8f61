package staff

import (
	"strings"

	"go-roster/internal/domain"
)

// StaffDraft carries every user-editable field of a staff record.
type StaffDraft struct {
	StaffID          string             `json:"staffId" validate:"required"`
	Name             string             `json:"name" validate:"required"`
	Mobile           string             `json:"mobile" validate:"required,mobile10"`
	Email            string             `json:"email" validate:"required,looseemail"`
	Type             domain.StaffType   `json:"type" validate:"oneof=Teaching Non-Teaching"`
	Department       string             `json:"department" validate:"omitempty,department"`
	PanCard          string             `json:"panCard"`
	AadhaarCard      string             `json:"aadhaarCard"`
	Designation      string             `json:"designation" validate:"required"`
	Qualifications   string             `json:"qualifications"`
	ExperienceYears  int                `json:"experienceYears" validate:"gte=0"`
	ExperienceMonths int                `json:"experienceMonths" validate:"gte=0"`
	DateOfBirth      string             `json:"dateOfBirth" validate:"omitempty,isodate"`
	DateOfJoining    string             `json:"dateOfJoining" validate:"required,isodate"`
	DateOfRelieving  string             `json:"dateOfRelieving" validate:"omitempty,isodate"`
	Status           domain.StaffStatus `json:"status" validate:"oneof=Active Left"`
}

// Normalize trims text fields and applies the type and status defaults.
func (d StaffDraft) Normalize() StaffDraft {
	for _, p := range []*string{
		&d.StaffID, &d.Name, &d.Mobile, &d.Email, &d.Department, &d.PanCard, &d.AadhaarCard,
		&d.Designation, &d.Qualifications, &d.DateOfBirth, &d.DateOfJoining, &d.DateOfRelieving,
	} {
		*p = strings.TrimSpace(*p)
	}
	if d.Type == "" {
		d.Type = domain.StaffTypeTeaching
	}
	if d.Status == "" {
		d.Status = domain.StaffStatusActive
	}
	return d
}

// apply copies the draft onto r, leaving id and timestamps alone.
func (d StaffDraft) apply(r *domain.Staff) {
	r.StaffID = d.StaffID
	r.Name = d.Name
	r.Mobile = d.Mobile
	r.Email = d.Email
	r.Type = d.Type
	r.Department = d.Department
	r.PanCard = d.PanCard
	r.AadhaarCard = d.AadhaarCard
	r.Designation = d.Designation
	r.Qualifications = d.Qualifications
	r.ExperienceYears = d.ExperienceYears
	r.ExperienceMonths = d.ExperienceMonths
	r.DateOfBirth = d.DateOfBirth
	r.DateOfJoining = d.DateOfJoining
	r.DateOfRelieving = d.DateOfRelieving
	r.Status = d.Status
}

// ListQuery is the filter and paging input of the list and export endpoints.
type ListQuery struct {
	Search     string `form:"q"`
	Status     string `form:"status"`
	Type       string `form:"type"`
	Department string `form:"department"`
	Experience string `form:"experience"`
	Page       int    `form:"page"`
	PageSize   int    `form:"page_size"`
}

func (q ListQuery) Facets() FacetFilters {
	return FacetFilters{
		Status:     domain.StaffStatus(strings.TrimSpace(q.Status)),
		Type:       domain.StaffType(strings.TrimSpace(q.Type)),
		Department: strings.TrimSpace(q.Department),
		Experience: strings.TrimSpace(q.Experience),
	}
}

type StaffResponse struct {
	domain.Staff
	Experience string `json:"experience"`
}

type BirthdayResponse struct {
	Staff     StaffResponse `json:"staff"`
	DaysUntil int           `json:"daysUntil"`
	IsToday   bool          `json:"isToday"`
}

type SummaryResponse struct {
	Counts             StatusCounts       `json:"counts"`
	TodaysBirthday     *StaffResponse     `json:"todaysBirthday"`
	MostRecentlyJoined *StaffResponse     `json:"mostRecentlyJoined"`
	UpcomingBirthdays  []BirthdayResponse `json:"upcomingBirthdays"`
}

type BulkDeleteRequest struct {
	IDs []string `json:"ids"`
}

type BulkDeleteResponse struct {
	Deleted int `json:"deleted"`
}

// ImportResult is the outcome of merging an incoming batch into the roster.
type ImportResult struct {
	Added   []domain.Staff
	Skipped int
}

type ImportResponse struct {
	Added   int             `json:"added"`
	Skipped int             `json:"skipped"`
	Message string          `json:"message"`
	Records []StaffResponse `json:"records"`
}

// ExportFile is a rendered workbook ready to be sent as an attachment.
type ExportFile struct {
	Filename    string
	ContentType string
	Data        []byte
}
