package finpulse

import (
	"errors"
	"sort"

	validation "github.com/go-ozzo/ozzo-validation"
)

// ValidateStringEquals will check that both values match
func ValidateStringEquals(str string) validation.RuleFunc {
	return func(value any) error {
		s, _ := value.(string)
		if s != str {
			return errors.New("values must match")
		}
		return nil
	}
}

// FormatValidationErrorToMap flattens ozzo validation errors into a
// field to message map for response payloads.
func FormatValidationErrorToMap(err error) map[string]string {
	out := map[string]string{}

	var verrs validation.Errors
	if errors.As(err, &verrs) {
		for field, ferr := range verrs {
			if ferr != nil {
				out[field] = ferr.Error()
			}
		}
		return out
	}

	if err != nil {
		out["error"] = err.Error()
	}

	return out
}

// FirstValidationError returns a single structured message, picking the
// lexicographically first field so the output is deterministic.
func FirstValidationError(err error) string {
	var verrs validation.Errors
	if !errors.As(err, &verrs) {
		if err != nil {
			return err.Error()
		}
		return ""
	}

	fields := make([]string, 0, len(verrs))
	for field := range verrs {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	for _, field := range fields {
		if ferr := verrs[field]; ferr != nil {
			return field + ": " + ferr.Error()
		}
	}

	return ""
}
