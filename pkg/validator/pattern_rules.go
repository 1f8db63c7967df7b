package validator

import (
	"fmt"
	"regexp"
	"unicode"
)

// Matches validates against a precompiled pattern.
func Matches(field, value string, re *regexp.Regexp, description string) Rule {
	return Rule{
		Check: func() bool {
			return re.MatchString(value)
		},
		Error: ValidationError{
			Field:          field,
			Kind:           KindMalformed,
			Message:        fmt.Sprintf("must match %s pattern", description),
			TranslationKey: "validation.regex_pattern",
			TranslationValues: map[string]any{
				"field":       field,
				"pattern":     re.String(),
				"description": description,
			},
		},
	}
}

// Charset describes an allow-set of runes built from Unicode range tables and
// explicit extra runes.
type Charset struct {
	Tables []*unicode.RangeTable
	Extra  []rune
	Blank  bool // allow U+0020 and the ideographic space U+3000 only
}

// Contains reports whether r belongs to the set.
func (c Charset) Contains(r rune) bool {
	if c.Blank && (r == ' ' || r == '\u3000') {
		return true
	}
	for _, x := range c.Extra {
		if x == r {
			return true
		}
	}
	return unicode.IsOneOf(c.Tables, r)
}

// OnlyCharset validates that every rune of value belongs to the charset.
// An empty value passes; pair it with RequiredString when needed.
func OnlyCharset(field, value string, set Charset, description string) Rule {
	return Rule{
		Check: func() bool {
			for _, r := range value {
				if !set.Contains(r) {
					return false
				}
			}
			return true
		},
		Error: ValidationError{
			Field:          field,
			Kind:           KindMalformed,
			Message:        fmt.Sprintf("must contain only %s", description),
			TranslationKey: "validation.charset",
			TranslationValues: map[string]any{
				"field":       field,
				"description": description,
			},
		},
	}
}
