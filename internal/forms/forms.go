// Package forms validates and resolves template form data before prompt
// assembly.
package forms

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/avery/copydesk/internal/catalog"
)

// FormData maps field IDs to raw string values. Companion values for the
// Other sentinel live under "<fieldID>_other".
type FormData map[string]string

// Errors maps field IDs to user-facing validation messages. An empty map
// means the form is valid.
type Errors map[string]string

// Valid reports whether no field failed validation.
func (e Errors) Valid() bool {
	return len(e) == 0
}

// Validate checks every field of the template against the form data.
// Required fields must hold a non-empty trimmed value; values must not exceed
// the field's MaxLength; a select holding the Other sentinel promotes its
// companion to required with the strategic-path length cap.
func Validate(tpl *catalog.Template, data FormData) Errors {
	return validateFields(tpl.Fields, data)
}

// ValidateStep checks only the fields of one wizard step. Templates without
// steps treat step 0 as the full form.
func ValidateStep(tpl *catalog.Template, step int, data FormData) (Errors, error) {
	fields, err := tpl.StepFields(step)
	if err != nil {
		return nil, err
	}
	return validateFields(fields, data), nil
}

func validateFields(fields []catalog.Field, data FormData) Errors {
	errs := Errors{}
	for i := range fields {
		f := &fields[i]
		value := data[f.ID]
		trimmed := strings.TrimSpace(value)

		if f.Required && trimmed == "" {
			errs[f.ID] = fmt.Sprintf("%s is required", f.Label)
			continue
		}
		// Length caps count characters, not bytes, so multibyte input is
		// not penalized.
		if f.MaxLength > 0 && utf8.RuneCountInString(value) > f.MaxLength {
			errs[f.ID] = fmt.Sprintf("%s must be %d characters or fewer", f.Label, f.MaxLength)
			continue
		}

		if f.HasOtherOption() && value == catalog.OtherSentinel {
			otherKey := f.OtherKey()
			other := data[otherKey]
			otherTrimmed := strings.TrimSpace(other)
			if f.Required && otherTrimmed == "" {
				errs[otherKey] = fmt.Sprintf("Please specify a custom %s", strings.ToLower(f.Label))
				continue
			}
			if utf8.RuneCountInString(other) > catalog.OtherMaxLength {
				errs[otherKey] = fmt.Sprintf("Custom %s must be %d characters or fewer",
					strings.ToLower(f.Label), catalog.OtherMaxLength)
			}
		}
	}
	return errs
}

// Resolve returns a copy of the form data with Other sentinels replaced by
// their companion values. Companion keys are dropped from the result. The
// caller is expected to have validated the data first.
func Resolve(tpl *catalog.Template, data FormData) FormData {
	resolved := make(FormData, len(data))
	for key, value := range data {
		if strings.HasSuffix(key, catalog.OtherSuffix) {
			continue
		}
		resolved[key] = value
	}
	for i := range tpl.Fields {
		f := &tpl.Fields[i]
		if f.HasOtherOption() && resolved[f.ID] == catalog.OtherSentinel {
			if other := strings.TrimSpace(data[f.OtherKey()]); other != "" {
				resolved[f.ID] = other
			}
		}
	}
	return resolved
}
