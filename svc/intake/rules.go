package intake

import (
	"regexp"
	"time"
	"unicode"

	"github.com/proclimb/minisystem/pkg/validator"
)

const (
	maxNameRunes       = 20
	maxKanaRunes       = 20
	maxPrefectureRunes = 10
	maxCityTownRunes   = 50
	minBirthYear       = 1900
	minTelLen          = 12
	maxTelLen          = 13
)

var (
	postalCodeRegex = regexp.MustCompile(`^[0-9]{3}-[0-9]{4}$`)
	telRegex        = regexp.MustCompile(`^0\d{1,4}-\d{1,4}-\d{3,4}$`)
)

// ぁ..ん and ァ..ヶ. Half-width katakana is not accepted.
var (
	hiragana = &unicode.RangeTable{R16: []unicode.Range16{{Lo: 0x3041, Hi: 0x3093, Stride: 1}}}
	katakana = &unicode.RangeTable{R16: []unicode.Range16{{Lo: 0x30A1, Hi: 0x30F6, Stride: 1}}}
)

var (
	nameCharset = validator.Charset{
		Tables: []*unicode.RangeTable{unicode.Han, hiragana, katakana},
		Extra:  []rune{'ー', '々', '〆', '〤'},
		Blank:  true,
	}
	kanaCharset = validator.Charset{
		Tables: []*unicode.RangeTable{hiragana},
		Extra:  []rune{'ー'},
		Blank:  true,
	}
)

// coded sets the violation code of a rule and renders its catalog message.
func coded(rule validator.Rule, code string) validator.Rule {
	return rule.WithMessage(code, Message(code, rule.Error.TranslationValues))
}

// CheckName validates the full name.
func CheckName(v string) *validator.ValidationError {
	return validator.First(
		coded(validator.RequiredString(FieldName, v), "name.required"),
		coded(validator.NoSurroundingSpace(FieldName, v), "name.surrounding_space"),
		coded(validator.MaxRunes(FieldName, v, maxNameRunes), "name.too_long"),
		coded(validator.OnlyCharset(FieldName, v, nameCharset, "kanji, kana and spaces"), "name.charset"),
	)
}

// CheckKana validates the phonetic name.
func CheckKana(v string) *validator.ValidationError {
	return validator.First(
		coded(validator.RequiredString(FieldKana, v), "kana.required"),
		coded(validator.NoSurroundingSpace(FieldKana, v), "kana.surrounding_space"),
		coded(validator.MaxRunes(FieldKana, v, maxKanaRunes), "kana.too_long"),
		coded(validator.OnlyCharset(FieldKana, v, kanaCharset, "hiragana and spaces"), "kana.charset"),
	)
}

// CheckBirthDate validates the birth date parts against now. Edit mode skips
// the whole chain.
func CheckBirthDate(mode Mode, year, month, day string, now time.Time) *validator.ValidationError {
	create := mode != ModeEdit
	return validator.First(
		validator.When(create, coded(validator.RequiredAll(FieldBirthDate, year, month, day), "birth_date.required")),
		validator.When(create, coded(validator.YearBetween(FieldBirthDate, year, minBirthYear, now.Year()), "birth_date.year_range")),
		validator.When(create, coded(validator.CalendarDate(FieldBirthDate, year, month, day), "birth_date.invalid")),
		validator.When(create, coded(validator.NotAfterDay(FieldBirthDate, year, month, day, now), "birth_date.future")),
	)
}

// CheckPostalCode validates the NNN-NNNN shape.
func CheckPostalCode(v string) *validator.ValidationError {
	return validator.First(
		coded(validator.RequiredString(FieldPostalCode, v), "postal_code.required"),
		coded(validator.Matches(FieldPostalCode, v, postalCodeRegex, "NNN-NNNN"), "postal_code.format"),
	)
}

// CheckAddress validates the structure of the address parts. The directory
// comparison is done by AddressChecker.
func CheckAddress(prefecture, cityTown, building string) *validator.ValidationError {
	city := validator.MaxRunes(FieldAddress, cityTown, maxCityTownRunes)
	bld := validator.MaxRunes(FieldAddress, building, maxCityTownRunes)

	return validator.First(
		coded(validator.RequiredAll(FieldAddress, prefecture, cityTown), "address.required"),
		coded(validator.MaxRunes(FieldAddress, prefecture, maxPrefectureRunes), "address.prefecture_too_long"),
		coded(validator.Rule{
			Check: func() bool { return city.Check() && bld.Check() },
			Error: city.Error,
		}, "address.city_too_long"),
	)
}

// CheckTel validates a hyphenated Japanese phone number.
func CheckTel(v string) *validator.ValidationError {
	return validator.First(
		coded(validator.RequiredString(FieldTel, v), "tel.required"),
		coded(validator.Matches(FieldTel, v, telRegex, "0XX-XXXX-XXXX"), "tel.format"),
		coded(validator.RuneLenBetween(FieldTel, v, minTelLen, maxTelLen), "tel.length"),
	)
}

// CheckEmail validates a local@domain.tld address.
func CheckEmail(v string) *validator.ValidationError {
	return validator.First(
		coded(validator.RequiredString(FieldEmail, v), "email.required"),
		coded(validator.ValidEmail(FieldEmail, v), "email.format"),
	)
}
