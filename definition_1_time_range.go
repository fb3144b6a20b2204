package meeting

import (
	"cmp"
	"errors"
	"fmt"

	goerrors "github.com/TudorHulban/go-errors"
)

const (
	StartOfDay    = 0
	EndOfDay      = 24*60 - 1
	MinutesPerDay = 24 * 60
)

// TimeRange is the half-open interval [start, end) in minutes since midnight.
type TimeRange struct {
	start int
	end   int
}

// WholeDay spans [0, 1440).
var WholeDay = TimeRange{
	start: StartOfDay,
	end:   MinutesPerDay,
}

// TimeInMinutes converts a wall clock time of day to minutes since midnight.
func TimeInMinutes(hours, minutes int) int {
	return hours*60 + minutes
}

// FromStartEnd builds a range from its bounds.
// With inclusive set the end minute belongs to the range.
// An end before start collapses the range to empty at start.
func FromStartEnd(start, end int, inclusive bool) TimeRange {
	if inclusive {
		end++
	}

	return TimeRange{
		start: start,
		end:   max(start, end),
	}
}

func FromStartDuration(start, duration int) TimeRange {
	return FromStartEnd(start, start+duration, false)
}

// NewTimeRange validates the bounds against the day, [0, 1440].
func NewTimeRange(start, end int) (TimeRange, error) {
	if start < StartOfDay {
		return TimeRange{},
			goerrors.ErrNegativeInput{
				InputName: "start",
			}
	}

	if end > MinutesPerDay {
		return TimeRange{},
			goerrors.ErrInvalidInput{
				Caller:     "NewTimeRange",
				InputName:  "end",
				InputValue: end,
				Issue: errors.New(
					"end past the end of day",
				),
			}
	}

	if start > end {
		return TimeRange{},
			goerrors.ErrInvalidInput{
				Caller:     "NewTimeRange",
				InputName:  "end",
				InputValue: end,
				Issue: errors.New(
					"time start greater than time end",
				),
			}
	}

	return TimeRange{
			start: start,
			end:   end,
		},
		nil
}

func (r TimeRange) Start() int {
	return r.start
}

func (r TimeRange) End() int {
	return r.end
}

func (r TimeRange) Duration() int {
	return r.end - r.start
}

func (r TimeRange) IsEmpty() bool {
	return r.end <= r.start
}

// Contains reports whether the minute falls inside the range.
// The end minute is excluded.
func (r TimeRange) Contains(point int) bool {
	return point >= r.start && point < r.end
}

// ContainsRange reports whether other lies fully inside r.
// Empty ranges are contained anywhere within the bounds, inclusive of the end.
func (r TimeRange) ContainsRange(other TimeRange) bool {
	if other.IsEmpty() {
		return other.start >= r.start && other.start <= r.end
	}

	return other.start >= r.start && other.end <= r.end
}

// Overlaps reports whether the ranges share at least one minute.
func (r TimeRange) Overlaps(other TimeRange) bool {
	if r.IsEmpty() || other.IsEmpty() {
		return false
	}

	return r.start < other.end && other.start < r.end
}

// Intersect returns the common part of the ranges, empty when they do not overlap.
func (r TimeRange) Intersect(other TimeRange) TimeRange {
	start := max(r.start, other.start)

	return TimeRange{
		start: start,
		end:   max(start, min(r.end, other.end)),
	}
}

func (r TimeRange) Equals(other TimeRange) bool {
	return r == other
}

func (r TimeRange) String() string {
	return fmt.Sprintf(
		"Range: [%d, %d)",

		r.start,
		r.end,
	)
}

// Clock renders the range as wall clock, ex. 09:00-09:30.
func (r TimeRange) Clock() string {
	return fmt.Sprintf(
		"%02d:%02d-%02d:%02d",

		r.start/60, r.start%60,
		r.end/60, r.end%60,
	)
}

// OrderByStart sorts ascending by start, ties by end.
func OrderByStart(a, b TimeRange) int {
	if a.start != b.start {
		return cmp.Compare(a.start, b.start)
	}

	return cmp.Compare(a.end, b.end)
}

// OrderByEnd sorts ascending by end, ties by start.
func OrderByEnd(a, b TimeRange) int {
	if a.end != b.end {
		return cmp.Compare(a.end, b.end)
	}

	return cmp.Compare(a.start, b.start)
}
