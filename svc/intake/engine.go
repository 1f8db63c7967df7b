package intake

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/proclimb/minisystem/pkg/logger"
	"github.com/proclimb/minisystem/pkg/postcode"
)

// Mode selects which rules apply. Only the birth date depends on it.
type Mode string

const (
	ModeCreate Mode = "create"
	ModeEdit   Mode = "edit"
)

// ParseMode parses "create" or "edit".
func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case ModeCreate, ModeEdit:
		return m, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
	}
}

// Engine is the authoritative validator for intake submissions. It holds only
// configuration and is safe for concurrent use.
type Engine struct {
	dir       postcode.Directory
	clock     func() time.Time
	loc       *time.Location
	cityMatch CityMatch
	timeout   time.Duration
	maxUpload int64
	log       *slog.Logger

	address *AddressChecker
	files   FileChecker
}

// Option configures Engine.
type Option func(*Engine)

// WithClock replaces time.Now for birth date checks.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		if now != nil {
			e.clock = now
		}
	}
}

// WithLocation sets the time zone that defines "today". Defaults to Asia/Tokyo.
func WithLocation(loc *time.Location) Option {
	return func(e *Engine) {
		if loc != nil {
			e.loc = loc
		}
	}
}

// WithCityMatch sets how city_town is compared with the directory locality.
func WithCityMatch(m CityMatch) Option {
	return func(e *Engine) {
		if m != "" {
			e.cityMatch = m
		}
	}
}

// WithLookupTimeout bounds each directory lookup. Non-positive values keep
// DefaultLookupTimeout.
func WithLookupTimeout(d time.Duration) Option {
	return func(e *Engine) {
		if d > 0 {
			e.timeout = d
		}
	}
}

// WithMaxUploadBytes sets the per-document size ceiling.
func WithMaxUploadBytes(n int64) Option {
	return func(e *Engine) {
		e.maxUpload = n
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.log = l
		}
	}
}

// NewEngine builds an engine that verifies addresses against dir.
func NewEngine(dir postcode.Directory, opts ...Option) *Engine {
	e := &Engine{
		dir:       dir,
		clock:     time.Now,
		loc:       tokyo(),
		cityMatch: CityMatchContains,
		timeout:   DefaultLookupTimeout,
		maxUpload: DefaultMaxUploadBytes,
		log:       logger.Discard(),
	}
	for _, opt := range opts {
		opt(e)
	}

	e.address = NewAddressChecker(e.dir, e.cityMatch, e.timeout, e.log)
	e.files = NewFileChecker(e.maxUpload)
	return e
}

// NewFromConfig builds an engine from cfg. Options are applied after cfg.
func NewFromConfig(dir postcode.Directory, cfg Config, opts ...Option) (*Engine, error) {
	base := []Option{
		WithCityMatch(cfg.CityMatch),
		WithLookupTimeout(cfg.LookupTimeout),
		WithMaxUploadBytes(cfg.MaxUploadBytes),
	}
	if cfg.TimeZone != "" {
		loc, err := time.LoadLocation(cfg.TimeZone)
		if err != nil {
			return nil, fmt.Errorf("intake: load time zone %q: %w", cfg.TimeZone, err)
		}
		base = append(base, WithLocation(loc))
	}
	return NewEngine(dir, append(base, opts...)...), nil
}

func tokyo() *time.Location {
	if loc, err := time.LoadLocation("Asia/Tokyo"); err == nil {
		return loc
	}
	return time.FixedZone("JST", 9*60*60)
}

// Validate runs every field chain and every upload check and returns the
// merged result. Fields are independent: one failing never skips another.
// The directory is consulted only when the postal code and the address
// parts passed their structural checks.
func (e *Engine) Validate(ctx context.Context, mode Mode, sub Submission, uploads Uploads) Result {
	now := e.clock().In(e.loc)
	res := newResult()

	res.setField(FieldName, CheckName(sub.Get(FieldName)))
	res.setField(FieldKana, CheckKana(sub.Get(FieldKana)))
	res.setField(FieldBirthDate, CheckBirthDate(mode,
		sub.Get(KeyBirthYear), sub.Get(KeyBirthMonth), sub.Get(KeyBirthDay), now))

	postal := sub.Get(FieldPostalCode)
	prefecture, cityTown := sub.Get(KeyPrefecture), sub.Get(KeyCityTown)

	postalErr := CheckPostalCode(postal)
	addressErr := CheckAddress(prefecture, cityTown, sub.Get(KeyBuilding))
	res.setField(FieldPostalCode, postalErr)
	res.setField(FieldAddress, addressErr)

	if postalErr == nil && addressErr == nil {
		if v := e.address.Check(ctx, postal, prefecture, cityTown).Violation(); v != nil {
			res.setField(v.Field, v)
		}
	}

	res.setField(FieldTel, CheckTel(sub.Get(FieldTel)))
	res.setField(FieldEmail, CheckEmail(sub.Get(FieldEmail)))

	for _, slot := range Slots {
		res.setFile(slot, e.files.Check(slot, uploads[slot]))
	}

	e.log.DebugContext(ctx, "submission validated",
		logger.Component("intake"),
		logger.Mode(string(mode)),
		logger.ErrorCount(len(res.fields)+len(res.files)),
	)
	return *res
}
