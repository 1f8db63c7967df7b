package advisory

import (
	"fmt"
	"regexp"
	"slices"
	"strings"
	"time"
	"unicode"

	"github.com/proclimb/minisystem/pkg/validator"
)

// Upload is what a browser knows about a chosen file before sending it.
// Type is the declared type, not sniffed content.
type Upload struct {
	Name string `json:"name,omitempty"`
	Size int64  `json:"size"`
	Type string `json:"type"`
}

// Feedback lists advisory problems keyed like the authoritative result.
// Advisory is always true so clients never mistake it for a verdict.
type Feedback struct {
	Advisory bool              `json:"advisory"`
	Fields   map[string]string `json:"fields"`
	Files    map[string]string `json:"files"`
}

// OK reports whether no problem was found.
func (f Feedback) OK() bool {
	return len(f.Fields) == 0 && len(f.Files) == 0
}

// All merges field and file messages into one map.
func (f Feedback) All() map[string]string {
	out := make(map[string]string, len(f.Fields)+len(f.Files))
	for k, v := range f.Fields {
		out[k] = v
	}
	for k, v := range f.Files {
		out[k] = v
	}
	return out
}

var (
	postalRegex = regexp.MustCompile(`^\d{3}-\d{4}$`)
	telRegex    = regexp.MustCompile(`^0\d{1,4}-\d{1,4}-\d{3,4}$`)
)

const minBirthYear = 1900

// ぁ..ん and ァ..ヶ, as on the server.
var (
	hiragana = &unicode.RangeTable{R16: []unicode.Range16{{Lo: 0x3041, Hi: 0x3093, Stride: 1}}}
	katakana = &unicode.RangeTable{R16: []unicode.Range16{{Lo: 0x30A1, Hi: 0x30F6, Stride: 1}}}
)

var (
	nameSet = validator.Charset{
		Tables: []*unicode.RangeTable{unicode.Han, hiragana, katakana},
		Extra:  []rune{'ー', '々', '〆', '〤'},
		Blank:  true,
	}
	kanaSet = validator.Charset{
		Tables: []*unicode.RangeTable{hiragana},
		Extra:  []rune{'ー'},
		Blank:  true,
	}
	documentTypes = []string{"image/png", "image/jpeg", "image/jpg"}
)

// Checker runs the advisory rules. It never consults the postal code
// directory and never reads file content.
type Checker struct {
	clock    func() time.Time
	loc      *time.Location
	maxBytes int64
}

type Option func(*Checker)

func WithClock(now func() time.Time) Option {
	return func(c *Checker) {
		if now != nil {
			c.clock = now
		}
	}
}

func WithLocation(loc *time.Location) Option {
	return func(c *Checker) {
		if loc != nil {
			c.loc = loc
		}
	}
}

func WithMaxUploadBytes(n int64) Option {
	return func(c *Checker) {
		if n > 0 {
			c.maxBytes = n
		}
	}
}

func New(opts ...Option) *Checker {
	c := &Checker{
		clock:    time.Now,
		loc:      time.FixedZone("JST", 9*60*60),
		maxBytes: 2 << 20,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Check evaluates fields and uploads. edit skips the birth date.
func (c *Checker) Check(edit bool, fields map[string]string, uploads map[string]Upload) Feedback {
	get := func(k string) string { return fields[k] }
	fb := Feedback{Advisory: true, Fields: map[string]string{}, Files: map[string]string{}}

	add := func(key string, v *validator.ValidationError) {
		if v != nil {
			fb.Fields[key] = v.Message
		}
	}

	add("name", textChain("name", get("name"), 20, nameSet))
	add("kana", textChain("kana", get("kana"), 20, kanaSet))
	if !edit {
		add("birth_date", c.birthDate(get("birth_year"), get("birth_month"), get("birth_day")))
	}
	add("postal_code", postalChain(get("postal_code")))
	add("address", addressChain(get("prefecture"), get("city_town"), get("building")))
	add("tel", telChain(get("tel")))
	add("email", emailChain(get("email")))

	for _, slot := range []string{"document1", "document2"} {
		u, ok := uploads[slot]
		if !ok {
			continue
		}
		if v := c.document(slot, u); v != nil {
			fb.Files[slot] = v.Message
		}
	}
	return fb
}

func msg(r validator.Rule, code string) validator.Rule {
	return r.WithMessage(code, message(code))
}

func textChain(field, v string, max int, set validator.Charset) *validator.ValidationError {
	return validator.First(
		msg(validator.RequiredString(field, v), field+".required"),
		msg(validator.NoSurroundingSpace(field, v), field+".surrounding_space"),
		msg(validator.MaxRunes(field, v, max), field+".too_long"),
		msg(validator.OnlyCharset(field, v, set, "Japanese"), field+".charset"),
	)
}

func (c *Checker) birthDate(y, m, d string) *validator.ValidationError {
	now := c.clock().In(c.loc)
	yearRange := validator.YearBetween("birth_date", y, minBirthYear, now.Year())
	return validator.First(
		msg(validator.RequiredAll("birth_date", y, m, d), "birth_date.required"),
		yearRange.WithMessage("birth_date.year_range", fmt.Sprintf(message("birth_date.year_range"), minBirthYear, now.Year())),
		msg(validator.CalendarDate("birth_date", y, m, d), "birth_date.invalid"),
		msg(validator.NotAfterDay("birth_date", y, m, d, now), "birth_date.future"),
	)
}

func postalChain(v string) *validator.ValidationError {
	return validator.First(
		msg(validator.RequiredString("postal_code", v), "postal_code.required"),
		msg(validator.NoSurroundingSpace("postal_code", v), "postal_code.surrounding_space"),
		msg(validator.Rule{
			Check: func() bool { return strings.Contains(v, "-") },
			Error: validator.ValidationError{Field: "postal_code", Kind: validator.KindMalformed},
		}, "postal_code.hyphen"),
		msg(validator.Matches("postal_code", v, postalRegex, "XXX-XXXX"), "postal_code.format"),
	)
}

func addressChain(pref, city, building string) *validator.ValidationError {
	return validator.First(
		msg(validator.Rule{
			Check: func() bool {
				return validator.NoSurroundingSpace("address", pref).Check() &&
					validator.NoSurroundingSpace("address", city).Check() &&
					validator.NoSurroundingSpace("address", building).Check()
			},
			Error: validator.ValidationError{Field: "address", Kind: validator.KindMalformed},
		}, "address.surrounding_space"),
		msg(validator.RequiredAll("address", pref, city), "address.required"),
		msg(validator.MaxRunes("address", pref, 10), "address.prefecture_too_long"),
		msg(validator.Rule{
			Check: func() bool {
				return validator.MaxRunes("address", city, 50).Check() &&
					validator.MaxRunes("address", building, 50).Check()
			},
			Error: validator.ValidationError{Field: "address", Kind: validator.KindMalformed},
		}, "address.city_too_long"),
	)
}

func telChain(v string) *validator.ValidationError {
	return validator.First(
		msg(validator.RequiredString("tel", v), "tel.required"),
		msg(validator.NoSurroundingSpace("tel", v), "tel.surrounding_space"),
		msg(validator.Matches("tel", v, telRegex, "XXX-XXXX-XXXX"), "tel.format"),
		msg(validator.RuneLenBetween("tel", v, 12, 13), "tel.format"),
	)
}

func emailChain(v string) *validator.ValidationError {
	return validator.First(
		msg(validator.RequiredString("email", v), "email.required"),
		msg(validator.NoSurroundingSpace("email", v), "email.surrounding_space"),
		msg(validator.ValidEmail("email", v), "email.format"),
	)
}

func (c *Checker) document(slot string, u Upload) *validator.ValidationError {
	declared := strings.ToLower(strings.TrimSpace(u.Type))
	return validator.First(
		msg(validator.MaxNum(slot, u.Size, c.maxBytes).WithKind(validator.KindTooLarge), "document.too_large"),
		msg(validator.Rule{
			Check: func() bool { return slices.Contains(documentTypes, declared) },
			Error: validator.ValidationError{Field: slot, Kind: validator.KindUnsupportedType},
		}, "document.unsupported_type"),
	)
}
