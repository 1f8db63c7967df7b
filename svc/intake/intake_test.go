package intake_test

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/proclimb/minisystem/pkg/postcode"
	"github.com/proclimb/minisystem/svc/intake"
)

var (
	jst   = time.FixedZone("JST", 9*60*60)
	today = time.Date(2025, time.June, 15, 10, 30, 0, 0, jst)

	chiyoda = postcode.Record{Prefecture: "東京都", City: "千代田区", Town: "千代田"}
)

func fixedClock() time.Time { return today }

// stubDirectory knows 1000001 and counts lookups.
type stubDirectory struct {
	calls atomic.Int32
	err   error
	panic bool
	block bool
}

func (d *stubDirectory) Lookup(ctx context.Context, code string) (postcode.Record, error) {
	d.calls.Add(1)
	switch {
	case d.panic:
		panic("directory exploded")
	case d.block:
		<-ctx.Done()
		return postcode.Record{}, ctx.Err()
	case d.err != nil:
		return postcode.Record{}, d.err
	case code == "1000001":
		return chiyoda, nil
	default:
		return postcode.Record{}, postcode.ErrNotFound
	}
}

func newEngine(dir postcode.Directory, opts ...intake.Option) *intake.Engine {
	base := []intake.Option{
		intake.WithClock(fixedClock),
		intake.WithLocation(jst),
		intake.WithLookupTimeout(50 * time.Millisecond),
	}
	return intake.NewEngine(dir, append(base, opts...)...)
}

func validSubmission() intake.Submission {
	return intake.Submission{
		"name":        "山田 太郎",
		"kana":        "やまだ たろう",
		"birth_year":  "1990",
		"birth_month": "4",
		"birth_day":   "1",
		"postal_code": "100-0001",
		"prefecture":  "東京都",
		"city_town":   "千代田区千代田1-1",
		"building":    "",
		"tel":         "03-1234-5678",
		"email":       "taro@example.com",
	}
}

func with(sub intake.Submission, kv ...string) intake.Submission {
	out := make(intake.Submission, len(sub))
	for k, v := range sub {
		out[k] = v
	}
	for i := 0; i+1 < len(kv); i += 2 {
		out[kv[i]] = kv[i+1]
	}
	return out
}

var errUnavailable = errors.New("directory unavailable")
