package validator

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// IsBlank reports whether r is white space, including the ideographic (full-width) space.
func IsBlank(r rune) bool {
	return unicode.IsSpace(r) || r == '　'
}

// TrimBlank trims leading and trailing white space, including full-width spaces.
func TrimBlank(s string) string {
	return strings.TrimFunc(s, IsBlank)
}

// RequiredString validates that a string is not empty after trimming white space.
// Full-width spaces count as white space.
func RequiredString(field, value string) Rule {
	return Rule{
		Check: func() bool {
			return TrimBlank(value) != ""
		},
		Error: ValidationError{
			Field:          field,
			Kind:           KindRequired,
			Message:        "field is required",
			TranslationKey: "validation.required",
			TranslationValues: map[string]any{
				"field": field,
			},
		},
	}
}

// RequiredAll validates that every value is non-empty after trimming.
func RequiredAll(field string, values ...string) Rule {
	return Rule{
		Check: func() bool {
			for _, v := range values {
				if TrimBlank(v) == "" {
					return false
				}
			}
			return true
		},
		Error: ValidationError{
			Field:          field,
			Kind:           KindRequired,
			Message:        "field is required",
			TranslationKey: "validation.required",
			TranslationValues: map[string]any{
				"field": field,
			},
		},
	}
}

// NoSurroundingSpace validates that the value neither starts nor ends with white space.
func NoSurroundingSpace(field, value string) Rule {
	return Rule{
		Check: func() bool {
			if value == "" {
				return true
			}
			first, _ := utf8.DecodeRuneInString(value)
			last, _ := utf8.DecodeLastRuneInString(value)
			return !IsBlank(first) && !IsBlank(last)
		},
		Error: ValidationError{
			Field:          field,
			Kind:           KindMalformed,
			Message:        "must not start or end with spaces",
			TranslationKey: "validation.surrounding_space",
			TranslationValues: map[string]any{
				"field": field,
			},
		},
	}
}

// MaxRunes validates the length in code points, so multi-byte text is measured by characters.
func MaxRunes(field, value string, max int) Rule {
	return Rule{
		Check: func() bool {
			return utf8.RuneCountInString(value) <= max
		},
		Error: ValidationError{
			Field:          field,
			Kind:           KindMalformed,
			Message:        fmt.Sprintf("must be at most %d characters long", max),
			TranslationKey: "validation.max_length",
			TranslationValues: map[string]any{
				"field": field,
				"max":   max,
			},
		},
	}
}

// RuneLenBetween validates that the length in code points is within [min, max].
func RuneLenBetween(field, value string, min, max int) Rule {
	return Rule{
		Check: func() bool {
			n := utf8.RuneCountInString(value)
			return n >= min && n <= max
		},
		Error: ValidationError{
			Field:          field,
			Kind:           KindMalformed,
			Message:        fmt.Sprintf("must be between %d and %d characters long", min, max),
			TranslationKey: "validation.length_between",
			TranslationValues: map[string]any{
				"field": field,
				"min":   min,
				"max":   max,
			},
		},
	}
}

// WithMessage returns a copy of the rule reporting the given translation key and message.
func (r Rule) WithMessage(key, message string) Rule {
	r.Error.TranslationKey = key
	r.Error.Message = message
	return r
}
