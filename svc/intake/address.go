package intake

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/proclimb/minisystem/pkg/logger"
	"github.com/proclimb/minisystem/pkg/postcode"
	"github.com/proclimb/minisystem/pkg/validator"
)

// Outcome is the result of comparing a claimed address with the directory.
type Outcome int

const (
	Match Outcome = iota
	PrefectureMismatch
	CityMismatch
	LookupMiss
	LookupFailure
)

func (o Outcome) String() string {
	switch o {
	case Match:
		return "match"
	case PrefectureMismatch:
		return "prefecture_mismatch"
	case CityMismatch:
		return "city_mismatch"
	case LookupMiss:
		return "lookup_miss"
	case LookupFailure:
		return "lookup_failure"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// Violation converts the outcome into a field error. Mismatches land on the
// address field; lookup problems land on the postal code.
func (o Outcome) Violation() *validator.ValidationError {
	var (
		field string
		kind  validator.Kind
		code  string
	)
	switch o {
	case Match:
		return nil
	case PrefectureMismatch:
		field, kind, code = FieldAddress, validator.KindInconsistent, "address.prefecture_mismatch"
	case CityMismatch:
		field, kind, code = FieldAddress, validator.KindInconsistent, "address.city_mismatch"
	case LookupMiss:
		field, kind, code = FieldPostalCode, validator.KindUnverifiable, "postal_code.not_found"
	default:
		field, kind, code = FieldPostalCode, validator.KindUnverifiable, "postal_code.lookup_failed"
	}
	return &validator.ValidationError{
		Field:             field,
		Kind:              kind,
		Message:           Message(code, nil),
		TranslationKey:    code,
		TranslationValues: map[string]any{"field": field},
	}
}

// CityMatch selects how the directory locality is compared with city_town.
type CityMatch string

const (
	// CityMatchContains accepts city_town containing city+town, so a trailing
	// street number is allowed.
	CityMatchContains CityMatch = "contains"
	// CityMatchExact requires city_town to equal city+town.
	CityMatchExact CityMatch = "exact"
)

// UnmarshalText lets env parsing reject unknown modes.
func (m *CityMatch) UnmarshalText(text []byte) error {
	switch v := CityMatch(strings.ToLower(strings.TrimSpace(string(text)))); v {
	case CityMatchContains, CityMatchExact:
		*m = v
		return nil
	case "":
		*m = CityMatchContains
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownCityMatch, string(text))
	}
}

func (m CityMatch) matches(claimed, locality string) bool {
	if m == CityMatchExact {
		return claimed == locality
	}
	return strings.Contains(claimed, locality)
}

// DefaultLookupTimeout bounds a directory lookup when no positive timeout is set.
const DefaultLookupTimeout = 3 * time.Second

// AddressChecker compares a claimed prefecture and city with the directory
// record of a postal code. It holds no per-call state.
type AddressChecker struct {
	dir     postcode.Directory
	match   CityMatch
	timeout time.Duration
	log     *slog.Logger
}

// NewAddressChecker returns a checker over dir. A non-positive timeout falls
// back to DefaultLookupTimeout.
func NewAddressChecker(dir postcode.Directory, match CityMatch, timeout time.Duration, log *slog.Logger) *AddressChecker {
	if match == "" {
		match = CityMatchContains
	}
	if timeout <= 0 {
		timeout = DefaultLookupTimeout
	}
	if log == nil {
		log = logger.Discard()
	}
	return &AddressChecker{dir: dir, match: match, timeout: timeout, log: log}
}

// Check looks up postalCode and compares the record. Directory errors,
// timeouts and panics all become LookupFailure.
func (c *AddressChecker) Check(ctx context.Context, postalCode, prefecture, cityTown string) Outcome {
	code := postcode.Normalize(postalCode)

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	rec, err := c.lookup(ctx, code)
	switch {
	case errors.Is(err, postcode.ErrNotFound):
		return LookupMiss
	case err != nil:
		c.log.WarnContext(ctx, "postal code lookup failed",
			logger.Component("address_checker"),
			logger.PostalCode(code),
			logger.Error(err),
		)
		return LookupFailure
	case rec.Prefecture == "" || rec.City == "":
		c.log.WarnContext(ctx, "postal code record is incomplete",
			logger.Component("address_checker"),
			logger.PostalCode(code),
		)
		return LookupFailure
	}

	if prefecture != rec.Prefecture {
		return PrefectureMismatch
	}
	if !c.match.matches(cityTown, rec.Locality()) {
		return CityMismatch
	}
	return Match
}

func (c *AddressChecker) lookup(ctx context.Context, code string) (rec postcode.Record, err error) {
	if c.dir == nil {
		return postcode.Record{}, ErrNoDirectory
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrDirectoryPanic, r)
		}
	}()
	return c.dir.Lookup(ctx, code)
}
