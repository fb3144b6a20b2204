package meeting

import (
	"slices"
	"strings"
)

// Attendees is a set of attendee identifiers.
type Attendees map[string]struct{}

func NewAttendees(ids ...string) Attendees {
	result := make(Attendees, len(ids))

	for _, id := range ids {
		result[id] = struct{}{}
	}

	return result
}

func (a Attendees) Contains(id string) bool {
	_, exists := a[id]

	return exists
}

// Intersects reports whether the sets share at least one attendee.
func (a Attendees) Intersects(other Attendees) bool {
	small, large := a, other
	if len(small) > len(large) {
		small, large = large, small
	}

	for id := range small {
		if large.Contains(id) {
			return true
		}
	}

	return false
}

func (a Attendees) Sorted() []string {
	result := make([]string, 0, len(a))

	for id := range a {
		result = append(result, id)
	}

	slices.Sort(result)

	return result
}

func (a Attendees) String() string {
	return "{" + strings.Join(a.Sorted(), ", ") + "}"
}

func ternary[T any](condition bool, value1, value2 T) T {
	if condition {
		return value1
	}

	return value2
}
