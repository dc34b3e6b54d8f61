package staff_test

import (
	"testing"
	"time"

	"go-roster/internal/domain"
	"go-roster/internal/staff"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func roster() []domain.Staff {
	return []domain.Staff{
		{ID: "1", StaffID: "T100", Name: "Asha Rao", Email: "asha@college.edu", Designation: "Professor",
			Department: "CSE", Type: domain.StaffTypeTeaching, Status: domain.StaffStatusActive,
			ExperienceYears: 2, ExperienceMonths: 11},
		{ID: "2", StaffID: "N200", Name: "Ravi Kumar", Email: "ravi@college.edu", Designation: "Clerk",
			Department: "", Type: domain.StaffTypeNonTeaching, Status: domain.StaffStatusActive,
			ExperienceYears: 4},
		{ID: "3", StaffID: "T300", Name: "Meena Iyer", Email: "meena@college.edu", Designation: "Lecturer",
			Department: "Physics", Type: domain.StaffTypeTeaching, Status: domain.StaffStatusLeft,
			ExperienceYears: 10, ExperienceMonths: 1},
		{ID: "4", StaffID: "T400", Name: "John Mathew", Email: "john@college.edu", Designation: "Professor",
			Department: "Math", Type: domain.StaffTypeTeaching, Status: domain.StaffStatusActive,
			ExperienceYears: 9, ExperienceMonths: 24},
	}
}

func ids(records []domain.Staff) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.ID
	}
	return out
}

func TestFilter(t *testing.T) {
	records := roster()

	tests := []struct {
		name   string
		term   string
		facets staff.FacetFilters
		want   []string
	}{
		{name: "blank term matches all", term: "   ", want: []string{"1", "2", "3", "4"}},
		{name: "name case insensitive", term: "ASHA", want: []string{"1"}},
		{name: "staff id", term: "t3", want: []string{"3"}},
		{name: "email", term: "ravi@", want: []string{"2"}},
		{name: "designation", term: "professor", want: []string{"1", "4"}},
		{name: "department", term: "phys", want: []string{"3"}},
		{name: "status facet", facets: staff.FacetFilters{Status: domain.StaffStatusLeft}, want: []string{"3"}},
		{name: "type facet", facets: staff.FacetFilters{Type: domain.StaffTypeNonTeaching}, want: []string{"2"}},
		{name: "department facet", facets: staff.FacetFilters{Department: "Math"}, want: []string{"4"}},
		{name: "band 0-2", facets: staff.FacetFilters{Experience: "0-2"}, want: []string{"1"}},
		{name: "band 3-5", facets: staff.FacetFilters{Experience: "3-5"}, want: []string{"2"}},
		{name: "band 6-10", facets: staff.FacetFilters{Experience: "6-10"}, want: []string{"3"}},
		{name: "band 10+", facets: staff.FacetFilters{Experience: "10+"}, want: []string{"4"}},
		{name: "unknown band matches all", facets: staff.FacetFilters{Experience: "20-30"}, want: []string{"1", "2", "3", "4"}},
		{
			name:   "term and facets are combined",
			term:   "professor",
			facets: staff.FacetFilters{Status: domain.StaffStatusActive, Department: "Math"},
			want:   []string{"4"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(staff.Filter(records, tt.term, tt.facets)))
		})
	}
}

func TestFilter_ConstraintsOnlyShrink(t *testing.T) {
	records := roster()
	terms := []string{"", "o", "college", "t"}
	facets := []staff.FacetFilters{
		{},
		{Status: domain.StaffStatusActive},
		{Type: domain.StaffTypeTeaching, Experience: "6-10"},
		{Department: "CSE", Status: domain.StaffStatusLeft},
	}

	for _, term := range terms {
		byTerm := ids(staff.Filter(records, term, staff.FacetFilters{}))
		for _, f := range facets {
			byFacets := ids(staff.Filter(records, "", f))
			for _, id := range ids(staff.Filter(records, term, f)) {
				assert.Contains(t, byTerm, id)
				assert.Contains(t, byFacets, id)
			}
		}
	}
}

func TestInExperienceBand_Boundaries(t *testing.T) {
	assert.True(t, staff.InExperienceBand(domain.Staff{ExperienceYears: 2, ExperienceMonths: 11}, "0-2"))
	assert.True(t, staff.InExperienceBand(domain.Staff{ExperienceYears: 10, ExperienceMonths: 1}, "6-10"))
	assert.False(t, staff.InExperienceBand(domain.Staff{ExperienceYears: 10, ExperienceMonths: 1}, "10+"))
	assert.True(t, staff.InExperienceBand(domain.Staff{ExperienceYears: 10, ExperienceMonths: 12}, "10+"))
	assert.True(t, staff.InExperienceBand(domain.Staff{}, "0-2"))
}

func TestUpcomingBirthdays(t *testing.T) {
	today := time.Date(2025, 6, 15, 18, 30, 0, 0, time.UTC)
	records := []domain.Staff{
		{ID: "today", Status: domain.StaffStatusActive, DateOfBirth: "1990-06-15"},
		{ID: "in30", Status: domain.StaffStatusActive, DateOfBirth: "1985-07-15"},
		{ID: "in31", Status: domain.StaffStatusActive, DateOfBirth: "1985-07-16"},
		{ID: "left", Status: domain.StaffStatusLeft, DateOfBirth: "1990-06-16"},
		{ID: "nodob", Status: domain.StaffStatusActive},
		{ID: "bad", Status: domain.StaffStatusActive, DateOfBirth: "someday"},
		{ID: "in1", Status: domain.StaffStatusActive, DateOfBirth: "2000-06-16"},
		{ID: "in1b", Status: domain.StaffStatusActive, DateOfBirth: "1970-06-16"},
	}

	got := staff.UpcomingBirthdays(records, today, staff.DefaultBirthdayWindow, staff.DefaultBirthdayLimit)

	var gotIDs []string
	for _, b := range got {
		gotIDs = append(gotIDs, b.Staff.ID)
	}
	assert.Equal(t, []string{"today", "in1", "in1b", "in30"}, gotIDs)
	assert.True(t, got[0].IsToday)
	assert.Equal(t, 0, got[0].DaysUntil)
	assert.Equal(t, 1, got[1].DaysUntil)
	assert.False(t, got[1].IsToday)
	assert.Equal(t, 30, got[3].DaysUntil)

	limited := staff.UpcomingBirthdays(records, today, 30, 2)
	assert.Len(t, limited, 2)
}

func TestUpcomingBirthdays_WrapsToNextYear(t *testing.T) {
	today := time.Date(2025, 12, 20, 0, 0, 0, 0, time.UTC)
	records := []domain.Staff{
		{ID: "jan", Status: domain.StaffStatusActive, DateOfBirth: "1991-01-05"},
		{ID: "past", Status: domain.StaffStatusActive, DateOfBirth: "1991-12-19"},
	}

	got := staff.UpcomingBirthdays(records, today, 30, 5)

	assert.Len(t, got, 1)
	assert.Equal(t, "jan", got[0].Staff.ID)
	assert.Equal(t, 16, got[0].DaysUntil)
}

func TestUpcomingBirthdays_LeapDay(t *testing.T) {
	records := []domain.Staff{
		{ID: "leap", Status: domain.StaffStatusActive, DateOfBirth: "1992-02-29"},
	}

	tests := []struct {
		name        string
		today       time.Time
		wantDays    int
		wantIsToday bool
	}{
		{name: "day before in non-leap year", today: time.Date(2025, 2, 28, 10, 0, 0, 0, time.UTC), wantDays: 1},
		{name: "observed on march 1 in non-leap year", today: time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC), wantDays: 0},
		{name: "on the day in leap year", today: time.Date(2028, 2, 29, 10, 0, 0, 0, time.UTC), wantDays: 0, wantIsToday: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := staff.UpcomingBirthdays(records, tt.today, staff.DefaultBirthdayWindow, staff.DefaultBirthdayLimit)

			require.Len(t, got, 1)
			assert.Equal(t, tt.wantDays, got[0].DaysUntil)
			assert.Equal(t, tt.wantIsToday, got[0].IsToday)
		})
	}
}

func TestTodaysBirthday(t *testing.T) {
	today := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	records := []domain.Staff{
		{ID: "left", Status: domain.StaffStatusLeft, DateOfBirth: "1990-06-15"},
		{ID: "first", Status: domain.StaffStatusActive, DateOfBirth: "1980-06-15"},
		{ID: "second", Status: domain.StaffStatusActive, DateOfBirth: "1999-06-15"},
	}

	got, ok := staff.TodaysBirthday(records, today)
	assert.True(t, ok)
	assert.Equal(t, "first", got.ID)

	_, ok = staff.TodaysBirthday(records[:1], today)
	assert.False(t, ok)
}

func TestMostRecentlyJoined(t *testing.T) {
	_, ok := staff.MostRecentlyJoined(nil)
	assert.False(t, ok)

	records := []domain.Staff{
		{ID: "bad", DateOfJoining: ""},
		{ID: "old", DateOfJoining: "2015-01-01"},
		{ID: "new", DateOfJoining: "2023-08-01"},
		{ID: "tie", DateOfJoining: "2023-08-01"},
	}
	got, ok := staff.MostRecentlyJoined(records)
	assert.True(t, ok)
	assert.Equal(t, "new", got.ID)
}

func TestCountByStatus(t *testing.T) {
	assert.Equal(t, staff.StatusCounts{Active: 3, Left: 1, Total: 4}, staff.CountByStatus(roster()))
	assert.Equal(t, staff.StatusCounts{}, staff.CountByStatus(nil))
}

func TestFormatExperience(t *testing.T) {
	assert.Equal(t, "5Y 6M", staff.FormatExperience(5, 6))
	assert.Equal(t, "0Y 0M", staff.FormatExperience(0, 0))
}
