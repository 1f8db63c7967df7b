package intake_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/proclimb/minisystem/pkg/postcode"
	"github.com/proclimb/minisystem/pkg/validator"
	"github.com/proclimb/minisystem/svc/intake"
)

func TestAddressChecker_Check(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		dir        *stubDirectory
		match      intake.CityMatch
		prefecture string
		city       string
		want       intake.Outcome
	}{
		{"match", &stubDirectory{}, intake.CityMatchContains, "東京都", "千代田区千代田1-1", intake.Match},
		{"prefecture mismatch", &stubDirectory{}, intake.CityMatchContains, "大阪府", "千代田区千代田1-1", intake.PrefectureMismatch},
		{"prefecture compared exactly", &stubDirectory{}, intake.CityMatchContains, "東京", "千代田区千代田1-1", intake.PrefectureMismatch},
		{"city mismatch", &stubDirectory{}, intake.CityMatchContains, "東京都", "千代田区丸の内1-1", intake.CityMismatch},
		{"exact requires equality", &stubDirectory{}, intake.CityMatchExact, "東京都", "千代田区千代田1-1", intake.CityMismatch},
		{"exact match", &stubDirectory{}, intake.CityMatchExact, "東京都", "千代田区千代田", intake.Match},
		{"failure", &stubDirectory{err: errUnavailable}, intake.CityMatchContains, "東京都", "千代田区千代田", intake.LookupFailure},
		{"panic", &stubDirectory{panic: true}, intake.CityMatchContains, "東京都", "千代田区千代田", intake.LookupFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := intake.NewAddressChecker(tt.dir, tt.match, time.Second, nil)
			assert.Equal(t, tt.want, c.Check(context.Background(), "100-0001", tt.prefecture, tt.city))
			assert.EqualValues(t, 1, tt.dir.calls.Load())
		})
	}
}

func TestAddressChecker_NormalizesCode(t *testing.T) {
	t.Parallel()

	var got string
	dir := postcode.DirectoryFunc(func(_ context.Context, code string) (postcode.Record, error) {
		got = code
		return postcode.Record{}, postcode.ErrNotFound
	})

	out := intake.NewAddressChecker(dir, "", 0, nil).Check(context.Background(), "100-0001", "東京都", "千代田区")
	assert.Equal(t, intake.LookupMiss, out)
	assert.Equal(t, "1000001", got)
}

func TestAddressChecker_IncompleteRecord(t *testing.T) {
	t.Parallel()

	dir := postcode.DirectoryFunc(func(context.Context, string) (postcode.Record, error) {
		return postcode.Record{City: "千代田区"}, nil
	})
	out := intake.NewAddressChecker(dir, "", 0, nil).Check(context.Background(), "100-0001", "", "千代田区")
	assert.Equal(t, intake.LookupFailure, out)
}

func TestAddressChecker_Timeout(t *testing.T) {
	t.Parallel()

	dir := &stubDirectory{block: true}
	start := time.Now()
	out := intake.NewAddressChecker(dir, "", 20*time.Millisecond, nil).Check(context.Background(), "100-0001", "東京都", "千代田区")

	assert.Equal(t, intake.LookupFailure, out)
	assert.Less(t, time.Since(start), time.Second)
}

func TestAddressChecker_NonPositiveTimeoutUsesDefault(t *testing.T) {
	t.Parallel()

	for _, timeout := range []time.Duration{0, -time.Second} {
		var deadline time.Time
		var bounded bool
		dir := postcode.DirectoryFunc(func(ctx context.Context, _ string) (postcode.Record, error) {
			deadline, bounded = ctx.Deadline()
			return postcode.Record{Prefecture: "東京都", City: "千代田区"}, nil
		})

		start := time.Now()
		out := intake.NewAddressChecker(dir, "", timeout, nil).Check(context.Background(), "100-0001", "東京都", "千代田区")

		assert.Equal(t, intake.Match, out)
		require.True(t, bounded, "lookup must carry a deadline for timeout %v", timeout)
		assert.WithinDuration(t, start.Add(intake.DefaultLookupTimeout), deadline, time.Second)
	}
}

func TestOutcome_Violation(t *testing.T) {
	t.Parallel()

	assert.Nil(t, intake.Match.Violation())

	tests := []struct {
		outcome intake.Outcome
		field   string
		kind    validator.Kind
		code    string
	}{
		{intake.PrefectureMismatch, intake.FieldAddress, validator.KindInconsistent, "address.prefecture_mismatch"},
		{intake.CityMismatch, intake.FieldAddress, validator.KindInconsistent, "address.city_mismatch"},
		{intake.LookupMiss, intake.FieldPostalCode, validator.KindUnverifiable, "postal_code.not_found"},
		{intake.LookupFailure, intake.FieldPostalCode, validator.KindUnverifiable, "postal_code.lookup_failed"},
	}
	for _, tt := range tests {
		t.Run(tt.outcome.String(), func(t *testing.T) {
			v := tt.outcome.Violation()
			require.NotNil(t, v)
			assert.Equal(t, tt.field, v.Field)
			assert.Equal(t, tt.kind, v.Kind)
			assert.Equal(t, tt.code, v.TranslationKey)
			assert.NotEmpty(t, v.Message)
		})
	}
}

func TestCityMatch_UnmarshalText(t *testing.T) {
	t.Parallel()

	var m intake.CityMatch
	require.NoError(t, m.UnmarshalText([]byte("EXACT")))
	assert.Equal(t, intake.CityMatchExact, m)

	require.NoError(t, m.UnmarshalText(nil))
	assert.Equal(t, intake.CityMatchContains, m)

	assert.ErrorIs(t, m.UnmarshalText([]byte("prefix")), intake.ErrUnknownCityMatch)
}
