package kernel

import (
	"fmt"
	"time"

	"dispatch/internal/pkg/errs"
)

// TimestampLayout is the canonical wire format for assign and complete times,
// e.g. "2021-01-10T10:33:01.420000Z".
const TimestampLayout = "2006-01-02T15:04:05.000000Z"

// ParseTimestamp parses a timestamp in TimestampLayout and returns it in UTC.
func ParseTimestamp(s string) (time.Time, error) {
	ts, err := time.Parse(TimestampLayout, s)
	if err != nil {
		return time.Time{}, errs.NewValueIsInvalidErrorWithCause("timestamp",
			fmt.Errorf("%q does not match %s", s, TimestampLayout))
	}
	return ts.UTC(), nil
}

// FormatTimestamp renders t in TimestampLayout after converting it to UTC.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}
