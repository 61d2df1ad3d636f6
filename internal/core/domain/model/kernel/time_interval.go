package kernel

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

// Minute is a wall-clock time of day expressed in minutes since midnight.
// Valid minutes range from MinuteMin to MinuteMax inclusive.
type Minute int16

const (
	// MinuteMin is the first minute of a day (00:00).
	MinuteMin Minute = 0
	// MinuteMax is the last minute of a day (23:59).
	MinuteMax Minute = 24*60 - 1

	clockLayout = "15:04"
)

// ErrTimeIntervalIsNotConstructed is returned when a zero-value TimeInterval is used.
var ErrTimeIntervalIsNotConstructed = errs.NewValueIsRequiredError(
	"time interval must be created via NewTimeInterval or ParseTimeInterval constructors")

// TimeInterval is a half-open [start, end) span on a 24h clock. Courier working hours and
// order delivery hours are sequences of TimeInterval values.
// The zero value of TimeInterval is invalid; use constructors to create instances.
//
// Example:
//
//	ti, err := kernel.ParseTimeInterval("09:00-11:00")
//	if err != nil {
//	    // Handle validation error
//	}
//	fmt.Println(ti) // Output: 09:00-11:00
type TimeInterval struct { //nolint:recvcheck //using for validation
	start Minute
	end   Minute
	guard guard.ConstructorGuard
}

// NewTimeInterval creates a TimeInterval from minutes since midnight.
// Both bounds must be within [MinuteMin..MinuteMax] and start must precede end.
func NewTimeInterval(start Minute, end Minute) (TimeInterval, error) {
	ti := TimeInterval{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(ti.setStart(start), ti.setEnd(end)); err != nil {
		return TimeInterval{}, err
	}
	if ti.start >= ti.end {
		return TimeInterval{}, errs.NewValueIsInvalidErrorWithCause("time interval",
			fmt.Errorf("start %s must be before end %s", start, end))
	}

	return ti, nil
}

// ParseTimeInterval parses the "HH:MM-HH:MM" schedule format.
//
// Example:
//
//	ti, err := ParseTimeInterval("08:00-22:00")
//	// ti.Start() == 480, ti.End() == 1320
func ParseTimeInterval(s string) (TimeInterval, error) {
	left, right, ok := strings.Cut(s, "-")
	if !ok {
		return TimeInterval{}, errs.NewValueIsInvalidErrorWithCause("time interval",
			fmt.Errorf("%q is not in HH:MM-HH:MM format", s))
	}

	start, err := parseMinute(left)
	if err != nil {
		return TimeInterval{}, errs.NewValueIsInvalidErrorWithCause("time interval", err)
	}
	end, err := parseMinute(right)
	if err != nil {
		return TimeInterval{}, errs.NewValueIsInvalidErrorWithCause("time interval", err)
	}

	return NewTimeInterval(start, end)
}

// ParseTimeIntervals parses every element of a schedule and joins the errors of the failing ones.
func ParseTimeIntervals(values []string) ([]TimeInterval, error) {
	intervals := make([]TimeInterval, 0, len(values))
	var parseErrs []error
	for _, v := range values {
		ti, err := ParseTimeInterval(v)
		if err != nil {
			parseErrs = append(parseErrs, err)
			continue
		}
		intervals = append(intervals, ti)
	}
	if len(parseErrs) > 0 {
		return nil, errors.Join(parseErrs...)
	}
	return intervals, nil
}

// Validate checks that the TimeInterval was created with a constructor.
func (t TimeInterval) Validate() error {
	return t.guard.Validate(ErrTimeIntervalIsNotConstructed)
}

// Start returns the inclusive start of the interval.
func (t TimeInterval) Start() Minute {
	return t.start
}

// End returns the exclusive end of the interval.
func (t TimeInterval) End() Minute {
	return t.end
}

// String renders the interval back to "HH:MM-HH:MM".
func (t TimeInterval) String() string {
	return t.start.String() + "-" + t.end.String()
}

// Overlaps reports whether either start falls within the other interval:
// t.start <= other.start < t.end OR other.start <= t.start < other.end.
// An interval always overlaps itself.
func (t TimeInterval) Overlaps(other TimeInterval) bool {
	return (t.start <= other.start && other.start < t.end) ||
		(other.start <= t.start && t.start < other.end)
}

// AnyOverlap reports whether any interval of a overlaps any interval of b.
func AnyOverlap(a, b []TimeInterval) bool {
	for _, x := range a {
		for _, y := range b {
			if x.Overlaps(y) {
				return true
			}
		}
	}
	return false
}

// String renders the minute as "HH:MM".
func (m Minute) String() string {
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

func (t *TimeInterval) setStart(start Minute) error {
	if start < MinuteMin || start > MinuteMax {
		return errs.NewValueIsOutOfRangeError("start", start, MinuteMin, MinuteMax)
	}

	t.start = start
	return nil
}

func (t *TimeInterval) setEnd(end Minute) error {
	// 24:00 is accepted as the end of day
	if end < MinuteMin || end > MinuteMax+1 {
		return errs.NewValueIsOutOfRangeError("end", end, MinuteMin, MinuteMax+1)
	}

	t.end = end
	return nil
}

func parseMinute(s string) (Minute, error) {
	if len(s) != len(clockLayout) {
		return 0, fmt.Errorf("%q is not in HH:MM format", s)
	}

	t, err := time.Parse(clockLayout, s)
	if err != nil {
		return 0, fmt.Errorf("%q is not in HH:MM format: %w", s, err)
	}

	return Minute(t.Hour()*60 + t.Minute()), nil
}
