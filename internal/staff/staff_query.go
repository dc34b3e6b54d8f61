package staff

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"go-roster/internal/domain"
)

// Experience bands accepted by the experience facet.
const (
	ExperienceBand0To2  = "0-2"
	ExperienceBand3To5  = "3-5"
	ExperienceBand6To10 = "6-10"
	ExperienceBand10Up  = "10+"
)

const (
	DefaultBirthdayWindow = 30
	DefaultBirthdayLimit  = 5
)

// FacetFilters are AND-ed together. A zero field matches everything.
type FacetFilters struct {
	Status     domain.StaffStatus
	Type       domain.StaffType
	Department string
	Experience string
}

// Filter keeps records matching the search term and every active facet, in input order.
func Filter(records []domain.Staff, searchTerm string, f FacetFilters) []domain.Staff {
	term := strings.ToLower(strings.TrimSpace(searchTerm))

	out := make([]domain.Staff, 0, len(records))
	for _, r := range records {
		if !matchesSearch(r, term) {
			continue
		}
		if f.Status != "" && r.Status != f.Status {
			continue
		}
		if f.Type != "" && r.Type != f.Type {
			continue
		}
		if f.Department != "" && r.Department != f.Department {
			continue
		}
		if !InExperienceBand(r, f.Experience) {
			continue
		}
		out = append(out, r)
	}
	return out
}

func matchesSearch(r domain.Staff, term string) bool {
	if term == "" {
		return true
	}
	for _, field := range []string{r.Name, r.StaffID, r.Email, r.Designation, r.Department} {
		if strings.Contains(strings.ToLower(field), term) {
			return true
		}
	}
	return false
}

// InExperienceBand reports whether r falls in band. Blank or unknown bands match.
func InExperienceBand(r domain.Staff, band string) bool {
	years := r.TotalExperienceYears()
	switch band {
	case ExperienceBand0To2:
		return years <= 2
	case ExperienceBand3To5:
		return years >= 3 && years <= 5
	case ExperienceBand6To10:
		return years >= 6 && years <= 10
	case ExperienceBand10Up:
		return years > 10
	default:
		return true
	}
}

type Birthday struct {
	Staff     domain.Staff
	DaysUntil int
	IsToday   bool
}

// UpcomingBirthdays lists active staff whose next birthday falls within windowDays
// of today, soonest first. A limit <= 0 disables truncation.
func UpcomingBirthdays(records []domain.Staff, today time.Time, windowDays, limit int) []Birthday {
	day := calendarDay(today)

	out := make([]Birthday, 0)
	for _, r := range records {
		if !r.IsActive() {
			continue
		}
		dob, ok := domain.ParseDate(r.DateOfBirth)
		if !ok {
			continue
		}

		next := time.Date(day.Year(), dob.Month(), dob.Day(), 0, 0, 0, 0, time.UTC)
		if next.Before(day) {
			next = time.Date(day.Year()+1, dob.Month(), dob.Day(), 0, 0, 0, 0, time.UTC)
		}
		days := int(next.Sub(day).Hours() / 24)
		if days > windowDays {
			continue
		}
		out = append(out, Birthday{
			Staff:     r,
			DaysUntil: days,
			IsToday:   sameMonthDay(dob, day),
		})
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].DaysUntil < out[j].DaysUntil })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// TodaysBirthday returns the first active record born on today's month and day.
func TodaysBirthday(records []domain.Staff, today time.Time) (domain.Staff, bool) {
	day := calendarDay(today)
	for _, r := range records {
		if !r.IsActive() {
			continue
		}
		if dob, ok := domain.ParseDate(r.DateOfBirth); ok && sameMonthDay(dob, day) {
			return r, true
		}
	}
	return domain.Staff{}, false
}

// MostRecentlyJoined returns the record with the latest joining date. A parseable
// date beats an unparseable one; on ties the earlier record wins.
func MostRecentlyJoined(records []domain.Staff) (domain.Staff, bool) {
	if len(records) == 0 {
		return domain.Staff{}, false
	}

	best := 0
	bestDate, bestOK := domain.ParseDate(records[0].DateOfJoining)
	for i := 1; i < len(records); i++ {
		d, ok := domain.ParseDate(records[i].DateOfJoining)
		if !ok {
			continue
		}
		if !bestOK || d.After(bestDate) {
			best, bestDate, bestOK = i, d, true
		}
	}
	return records[best], true
}

type StatusCounts struct {
	Active int `json:"active"`
	Left   int `json:"left"`
	Total  int `json:"total"`
}

func CountByStatus(records []domain.Staff) StatusCounts {
	c := StatusCounts{Total: len(records)}
	for _, r := range records {
		switch r.Status {
		case domain.StaffStatusActive:
			c.Active++
		case domain.StaffStatusLeft:
			c.Left++
		}
	}
	return c
}

// FormatExperience renders an experience pair as "5Y 6M".
func FormatExperience(years, months int) string {
	return fmt.Sprintf("%dY %dM", years, months)
}

// Summary backs the dashboard cards.
type Summary struct {
	Counts             StatusCounts
	TodaysBirthday     *domain.Staff
	MostRecentlyJoined *domain.Staff
	UpcomingBirthdays  []Birthday
}

func BuildSummary(records []domain.Staff, today time.Time) Summary {
	s := Summary{
		Counts:            CountByStatus(records),
		UpcomingBirthdays: UpcomingBirthdays(records, today, DefaultBirthdayWindow, DefaultBirthdayLimit),
	}
	if r, ok := TodaysBirthday(records, today); ok {
		s.TodaysBirthday = &r
	}
	if r, ok := MostRecentlyJoined(records); ok {
		s.MostRecentlyJoined = &r
	}
	return s
}

func calendarDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func sameMonthDay(a, b time.Time) bool {
	return a.Month() == b.Month() && a.Day() == b.Day()
}
