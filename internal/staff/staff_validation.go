package staff

import (
	"regexp"
	"time"

	"go-roster/internal/domain"
	"go-roster/internal/shared/apperror"

	"github.com/go-playground/validator/v10"
)

// FieldErrors maps a json field name to its user-facing message.
type FieldErrors map[string]string

var (
	mobilePattern = regexp.MustCompile(`^\d{10}$`)
	emailPattern  = regexp.MustCompile(`\S+@\S+\.\S+`)

	draftValidator = newDraftValidator()
)

var draftMessages = map[string]string{
	"staffId:required":        "Staff ID is required",
	"name:required":           "Name is required",
	"mobile:required":         "Mobile number is required",
	"mobile:mobile10":         "Mobile number must be 10 digits",
	"email:required":          "Email is required",
	"email:looseemail":        "Email is invalid",
	"designation:required":    "Designation is required",
	"dateOfJoining:required":  "Date of joining is required",
	"dateOfJoining:isodate":   "Date of joining must be a YYYY-MM-DD date",
	"dateOfBirth:isodate":     "Date of birth must be a YYYY-MM-DD date",
	"dateOfRelieving:isodate": "Date of leaving must be a YYYY-MM-DD date",
	"type:oneof":              "Type must be Teaching or Non-Teaching",
	"status:oneof":            "Status must be Active or Left",
	"department:department":   "Department is not recognised",
	"experienceYears:gte":     "Experience years cannot be negative",
	"experienceMonths:gte":    "Experience months cannot be negative",
}

func newDraftValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(apperror.JSONTagName)

	_ = v.RegisterValidation("mobile10", func(fl validator.FieldLevel) bool {
		return mobilePattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("looseemail", func(fl validator.FieldLevel) bool {
		return emailPattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("isodate", func(fl validator.FieldLevel) bool {
		_, err := time.Parse(domain.DateLayout, fl.Field().String())
		return err == nil
	})
	_ = v.RegisterValidation("department", func(fl validator.FieldLevel) bool {
		return domain.IsDepartment(fl.Field().String())
	})
	return v
}

// ValidateDraft checks a normalized draft and returns nil when it is acceptable.
func ValidateDraft(d StaffDraft) FieldErrors {
	err := draftValidator.Struct(d)
	if err == nil {
		return nil
	}

	fields := apperror.MapValidationError(err, func(field, tag string) string {
		return draftMessages[field+":"+tag]
	})
	if len(fields) == 0 {
		return FieldErrors{"": err.Error()}
	}
	return FieldErrors(fields)
}
