package intake_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/proclimb/minisystem/pkg/file"
	"github.com/proclimb/minisystem/pkg/postcode"
	"github.com/proclimb/minisystem/pkg/validator"
	"github.com/proclimb/minisystem/svc/intake"
)

func TestEngine_ValidSubmission(t *testing.T) {
	t.Parallel()

	dir := &stubDirectory{}
	res := newEngine(dir).Validate(context.Background(), intake.ModeCreate, validSubmission(), nil)

	assert.True(t, res.OK())
	assert.Empty(t, res.FieldErrors())
	assert.Empty(t, res.FileErrors())
	assert.NoError(t, res.Err())
	assert.EqualValues(t, 1, dir.calls.Load())
}

func TestEngine_ReportsEveryField(t *testing.T) {
	t.Parallel()

	res := newEngine(&stubDirectory{}).Validate(context.Background(), intake.ModeCreate, intake.Submission{}, intake.Uploads{
		intake.SlotDocument1: {Filename: "a.gif", Size: 10, MediaType: "image/gif"},
	})

	require.False(t, res.OK())
	assert.Len(t, res.FieldErrors(), len(intake.Fields))
	for _, key := range intake.Fields {
		v, ok := res.Field(key)
		require.True(t, ok, key)
		assert.Equal(t, validator.KindRequired, v.Kind, key)
		assert.Equal(t, key+".required", v.TranslationKey)
	}
	assert.Equal(t, map[string]string{
		intake.SlotDocument1: intake.Message("document.unsupported_type", nil),
	}, res.FileErrors())

	errs := validator.ExtractValidationErrors(res.Err())
	require.Len(t, errs, len(intake.Fields)+1)
	assert.Equal(t, intake.FieldName, errs[0].Field)
	assert.Equal(t, intake.SlotDocument1, errs[len(errs)-1].Field)
}

func TestEngine_Deterministic(t *testing.T) {
	t.Parallel()

	engine := newEngine(&stubDirectory{})
	sub := with(validSubmission(), "name", "Yamada", "prefecture", "大阪府", "tel", "0312345678")
	uploads := intake.Uploads{intake.SlotDocument2: {Size: intake.DefaultMaxUploadBytes + 1, MediaType: "image/png"}}

	first := engine.Validate(context.Background(), intake.ModeCreate, sub, uploads)
	second := engine.Validate(context.Background(), intake.ModeCreate, sub, uploads)
	assert.Equal(t, first, second)
	assert.Equal(t, first.Errors(), second.Errors())
}

func TestEngine_Mode(t *testing.T) {
	t.Parallel()

	engine := newEngine(&stubDirectory{})
	noBirth := with(validSubmission(), "birth_year", "", "birth_month", "", "birth_day", "")

	t.Run("edit skips absent birth date", func(t *testing.T) {
		res := engine.Validate(context.Background(), intake.ModeEdit, noBirth, nil)
		assert.True(t, res.OK())
		_, ok := res.Field(intake.FieldBirthDate)
		assert.False(t, ok)
	})

	t.Run("edit ignores partial birth date", func(t *testing.T) {
		res := engine.Validate(context.Background(), intake.ModeEdit, with(noBirth, "birth_year", "3000"), nil)
		assert.True(t, res.OK())
	})

	t.Run("create requires birth date", func(t *testing.T) {
		res := engine.Validate(context.Background(), intake.ModeCreate, noBirth, nil)
		v, ok := res.Field(intake.FieldBirthDate)
		require.True(t, ok)
		assert.Equal(t, validator.KindRequired, v.Kind)
		assert.Len(t, res.FieldErrors(), 1)
	})

	t.Run("unknown mode is treated as create", func(t *testing.T) {
		res := engine.Validate(context.Background(), intake.Mode("draft"), noBirth, nil)
		_, ok := res.Field(intake.FieldBirthDate)
		assert.True(t, ok)
	})
}

func TestEngine_BirthDateAgainstClock(t *testing.T) {
	t.Parallel()

	engine := newEngine(&stubDirectory{})
	tests := []struct {
		name       string
		y, m, d    string
		wantCode   string
		wantKind   validator.Kind
		wantErrors bool
	}{
		{name: "today passes", y: "2025", m: "6", d: "15"},
		{name: "tomorrow is future", y: "2025", m: "6", d: "16", wantErrors: true, wantCode: "birth_date.future", wantKind: validator.KindOutOfRange},
		{name: "next year is out of range", y: "2026", m: "1", d: "1", wantErrors: true, wantCode: "birth_date.year_range", wantKind: validator.KindOutOfRange},
		{name: "1899 is out of range", y: "1899", m: "12", d: "31", wantErrors: true, wantCode: "birth_date.year_range", wantKind: validator.KindOutOfRange},
		{name: "1900 passes", y: "1900", m: "1", d: "1"},
		{name: "feb 29 non leap", y: "2023", m: "2", d: "29", wantErrors: true, wantCode: "birth_date.invalid", wantKind: validator.KindMalformed},
		{name: "feb 29 leap", y: "2024", m: "2", d: "29"},
		{name: "april 31", y: "2000", m: "4", d: "31", wantErrors: true, wantCode: "birth_date.invalid", wantKind: validator.KindMalformed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sub := with(validSubmission(), "birth_year", tt.y, "birth_month", tt.m, "birth_day", tt.d)
			res := engine.Validate(context.Background(), intake.ModeCreate, sub, nil)

			v, ok := res.Field(intake.FieldBirthDate)
			require.Equal(t, tt.wantErrors, ok)
			if ok {
				assert.Equal(t, tt.wantCode, v.TranslationKey)
				assert.Equal(t, tt.wantKind, v.Kind)
			}
		})
	}
}

func TestEngine_AddressConsistency(t *testing.T) {
	t.Parallel()

	t.Run("matching address", func(t *testing.T) {
		res := newEngine(&stubDirectory{}).Validate(context.Background(), intake.ModeCreate, validSubmission(), nil)
		_, ok := res.Field(intake.FieldAddress)
		assert.False(t, ok)
	})

	t.Run("other prefecture is inconsistent", func(t *testing.T) {
		sub := with(validSubmission(), "prefecture", "大阪府")
		res := newEngine(&stubDirectory{}).Validate(context.Background(), intake.ModeCreate, sub, nil)

		v, ok := res.Field(intake.FieldAddress)
		require.True(t, ok)
		assert.Equal(t, validator.KindInconsistent, v.Kind)
		assert.Equal(t, "address.prefecture_mismatch", v.TranslationKey)
		assert.ErrorIs(t, v, validator.ErrInconsistent)
		_, postalErr := res.Field(intake.FieldPostalCode)
		assert.False(t, postalErr)
	})

	t.Run("other city is inconsistent", func(t *testing.T) {
		sub := with(validSubmission(), "city_town", "港区芝公園4-2-8")
		res := newEngine(&stubDirectory{}).Validate(context.Background(), intake.ModeCreate, sub, nil)

		v, ok := res.Field(intake.FieldAddress)
		require.True(t, ok)
		assert.Equal(t, "address.city_mismatch", v.TranslationKey)
	})

	t.Run("not found is unverifiable on postal code", func(t *testing.T) {
		sub := with(validSubmission(), "postal_code", "999-9999")
		res := newEngine(&stubDirectory{}).Validate(context.Background(), intake.ModeCreate, sub, nil)

		v, ok := res.Field(intake.FieldPostalCode)
		require.True(t, ok)
		assert.Equal(t, validator.KindUnverifiable, v.Kind)
		assert.Equal(t, "postal_code.not_found", v.TranslationKey)
		assert.ErrorIs(t, v, validator.ErrUnverifiable)
		_, addrErr := res.Field(intake.FieldAddress)
		assert.False(t, addrErr)
	})

	t.Run("directory failure is unverifiable with its own code", func(t *testing.T) {
		res := newEngine(&stubDirectory{err: errUnavailable}).Validate(context.Background(), intake.ModeCreate, validSubmission(), nil)

		v, ok := res.Field(intake.FieldPostalCode)
		require.True(t, ok)
		assert.Equal(t, validator.KindUnverifiable, v.Kind)
		assert.Equal(t, "postal_code.lookup_failed", v.TranslationKey)
	})

	t.Run("directory panic does not escape", func(t *testing.T) {
		var res intake.Result
		require.NotPanics(t, func() {
			res = newEngine(&stubDirectory{panic: true}).Validate(context.Background(), intake.ModeCreate, validSubmission(), nil)
		})
		v, ok := res.Field(intake.FieldPostalCode)
		require.True(t, ok)
		assert.Equal(t, "postal_code.lookup_failed", v.TranslationKey)
	})

	t.Run("slow directory times out", func(t *testing.T) {
		res := newEngine(&stubDirectory{block: true}).Validate(context.Background(), intake.ModeCreate, validSubmission(), nil)
		v, ok := res.Field(intake.FieldPostalCode)
		require.True(t, ok)
		assert.Equal(t, "postal_code.lookup_failed", v.TranslationKey)
	})

	t.Run("nil directory fails closed", func(t *testing.T) {
		res := newEngine(nil).Validate(context.Background(), intake.ModeCreate, validSubmission(), nil)
		v, ok := res.Field(intake.FieldPostalCode)
		require.True(t, ok)
		assert.Equal(t, validator.KindUnverifiable, v.Kind)
	})

	t.Run("structural errors skip the lookup", func(t *testing.T) {
		cases := map[string]intake.Submission{
			"bad postal code":  with(validSubmission(), "postal_code", "1000001"),
			"missing city":     with(validSubmission(), "city_town", ""),
			"long prefecture":  with(validSubmission(), "prefecture", "東京都東京都東京都東京都"),
			"empty prefecture": with(validSubmission(), "prefecture", "　"),
		}
		for name, sub := range cases {
			t.Run(name, func(t *testing.T) {
				dir := &stubDirectory{}
				res := newEngine(dir).Validate(context.Background(), intake.ModeCreate, sub, nil)
				assert.False(t, res.OK())
				assert.Zero(t, dir.calls.Load())
			})
		}
	})

	t.Run("exact city match", func(t *testing.T) {
		engine := newEngine(&stubDirectory{}, intake.WithCityMatch(intake.CityMatchExact))

		res := engine.Validate(context.Background(), intake.ModeCreate, validSubmission(), nil)
		v, ok := res.Field(intake.FieldAddress)
		require.True(t, ok)
		assert.Equal(t, "address.city_mismatch", v.TranslationKey)

		res = engine.Validate(context.Background(), intake.ModeCreate, with(validSubmission(), "city_town", "千代田区千代田"), nil)
		assert.True(t, res.OK())
	})
}

func TestEngine_Uploads(t *testing.T) {
	t.Parallel()

	engine := newEngine(&stubDirectory{})
	tests := []struct {
		name     string
		uploads  intake.Uploads
		wantKind map[string]validator.Kind
	}{
		{name: "no uploads", uploads: nil},
		{name: "nil descriptors", uploads: intake.Uploads{intake.SlotDocument1: nil, intake.SlotDocument2: nil}},
		{
			name: "exactly at the limit",
			uploads: intake.Uploads{
				intake.SlotDocument1: {Size: intake.DefaultMaxUploadBytes, MediaType: "image/png"},
				intake.SlotDocument2: {Size: 1, MediaType: "image/jpeg"},
			},
		},
		{
			name:     "one byte over",
			uploads:  intake.Uploads{intake.SlotDocument1: {Size: intake.DefaultMaxUploadBytes + 1, MediaType: "image/png"}},
			wantKind: map[string]validator.Kind{intake.SlotDocument1: validator.KindTooLarge},
		},
		{
			name:     "gif",
			uploads:  intake.Uploads{intake.SlotDocument2: {Size: 100, MediaType: "image/gif", Filename: "scan.png"}},
			wantKind: map[string]validator.Kind{intake.SlotDocument2: validator.KindUnsupportedType},
		},
		{
			name: "both slots fail independently",
			uploads: intake.Uploads{
				intake.SlotDocument1: {Size: 3 << 20, MediaType: "image/gif"},
				intake.SlotDocument2: {Size: 10, MediaType: "application/pdf"},
			},
			wantKind: map[string]validator.Kind{
				intake.SlotDocument1: validator.KindTooLarge,
				intake.SlotDocument2: validator.KindUnsupportedType,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := engine.Validate(context.Background(), intake.ModeCreate, validSubmission(), tt.uploads)
			assert.Empty(t, res.FieldErrors())
			assert.Len(t, res.FileErrors(), len(tt.wantKind))
			for slot, kind := range tt.wantKind {
				v, ok := res.File(slot)
				require.True(t, ok, slot)
				assert.Equal(t, kind, v.Kind)
			}
		})
	}
}

func TestEngine_MaxUploadBytesOption(t *testing.T) {
	t.Parallel()

	engine := newEngine(&stubDirectory{}, intake.WithMaxUploadBytes(1<<10))
	res := engine.Validate(context.Background(), intake.ModeCreate, validSubmission(), intake.Uploads{
		intake.SlotDocument1: &file.Descriptor{Size: 1<<10 + 1, MediaType: "image/png"},
	})

	v, ok := res.File(intake.SlotDocument1)
	require.True(t, ok)
	assert.Equal(t, validator.KindTooLarge, v.Kind)
	assert.Equal(t, "ファイルサイズは1KB以下にしてください", v.Message)
}

func TestResult_AccessorsReturnCopies(t *testing.T) {
	t.Parallel()

	res := newEngine(&stubDirectory{}).Validate(context.Background(), intake.ModeCreate, intake.Submission{}, nil)

	fields := res.FieldErrors()
	fields[intake.FieldName] = "changed"
	delete(fields, intake.FieldKana)

	v, _ := res.Field(intake.FieldName)
	v.TranslationValues["field"] = "changed"

	again, ok := res.Field(intake.FieldName)
	require.True(t, ok)
	assert.Equal(t, intake.FieldName, again.TranslationValues["field"])
	assert.Equal(t, intake.Message("name.required", nil), res.FieldErrors()[intake.FieldName])
	assert.Contains(t, res.FieldErrors(), intake.FieldKana)
}

func TestNewFromConfig(t *testing.T) {
	t.Parallel()

	cfg := intake.Config{
		LookupTimeout:  time.Second,
		MaxUploadBytes: 2 << 20,
		CityMatch:      intake.CityMatchExact,
		TimeZone:       "UTC",
	}
	engine, err := intake.NewFromConfig(&stubDirectory{}, cfg, intake.WithClock(fixedClock))
	require.NoError(t, err)

	res := engine.Validate(context.Background(), intake.ModeCreate, validSubmission(), nil)
	v, ok := res.Field(intake.FieldAddress)
	require.True(t, ok)
	assert.Equal(t, "address.city_mismatch", v.TranslationKey)

	_, err = intake.NewFromConfig(&stubDirectory{}, intake.Config{TimeZone: "Mars/Olympus"})
	assert.Error(t, err)
}

func TestNewFromConfig_ZeroLookupTimeout(t *testing.T) {
	t.Parallel()

	var bounded bool
	dir := postcode.DirectoryFunc(func(ctx context.Context, code string) (postcode.Record, error) {
		_, bounded = ctx.Deadline()
		return chiyoda, nil
	})
	engine, err := intake.NewFromConfig(dir, intake.Config{LookupTimeout: 0}, intake.WithClock(fixedClock))
	require.NoError(t, err)

	res := engine.Validate(context.Background(), intake.ModeCreate, validSubmission(), nil)
	assert.True(t, res.OK(), res.FieldErrors())
	assert.True(t, bounded)
}

func TestParseMode(t *testing.T) {
	t.Parallel()

	m, err := intake.ParseMode(" Edit ")
	require.NoError(t, err)
	assert.Equal(t, intake.ModeEdit, m)

	m, err = intake.ParseMode("create")
	require.NoError(t, err)
	assert.Equal(t, intake.ModeCreate, m)

	_, err = intake.ParseMode("delete")
	assert.ErrorIs(t, err, intake.ErrUnknownMode)
}
