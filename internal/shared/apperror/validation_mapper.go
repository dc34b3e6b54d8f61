package apperror

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// FormatFieldName turns a json field name into a label: staffId -> Staff Id, date_of_birth -> Date Of Birth.
func FormatFieldName(s string) string {
	s = strings.ReplaceAll(s, "_", " ")

	var b strings.Builder
	for i, r := range s {
		if i > 0 && r >= 'A' && r <= 'Z' {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}

	caser := cases.Title(language.English)
	return caser.String(b.String())
}

// MapValidationError converts validator errors into a field -> message map.
// messages may override the text for a field; otherwise a generic one is built from the tag.
func MapValidationError(err error, messages func(field, tag string) string) map[string]string {
	errs, ok := err.(validator.ValidationErrors)
	if !ok {
		return nil
	}

	out := make(map[string]string, len(errs))
	for _, e := range errs {
		field := e.Field()
		if _, seen := out[field]; seen {
			continue
		}
		if messages != nil {
			if msg := messages(field, e.Tag()); msg != "" {
				out[field] = msg
				continue
			}
		}
		label := FormatFieldName(field)
		switch e.Tag() {
		case "required":
			out[field] = RequiredField(label).Message
		default:
			out[field] = InvalidField(label).Message
		}
	}
	return out
}
