package validator

import (
	"regexp"
	"strings"
)

// emailRegex accepts the conventional local@domain.tld shape used by web forms.
// It is intentionally narrower than RFC 5322 (no quoted locals, no IP literals).
var emailRegex = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)

// ValidEmail validates a local@domain.tld address.
func ValidEmail(field, value string) Rule {
	return Rule{
		Check: func() bool {
			if !emailRegex.MatchString(value) {
				return false
			}
			// Reject empty domain labels such as "a@b..com" which the pattern lets through.
			domain := value[strings.LastIndex(value, "@")+1:]
			for part := range strings.SplitSeq(domain, ".") {
				if part == "" {
					return false
				}
			}
			return true
		},
		Error: ValidationError{
			Field:          field,
			Kind:           KindMalformed,
			Message:        "must be a valid email address",
			TranslationKey: "validation.email",
			TranslationValues: map[string]any{
				"field": field,
			},
		},
	}
}
