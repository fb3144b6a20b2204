package meeting

type busyRanges struct {
	mandatory []TimeRange
	optional  []TimeRange
}

// partitionBusy splits the events by whom they block.
// An event blocking any mandatory attendee counts as mandatory only.
func partitionBusy(events []*Event, request *MeetingRequest) busyRanges {
	var result busyRanges

	for _, event := range events {
		if event == nil {
			continue
		}

		if event.Attendees.Intersects(request.Attendees) {
			result.mandatory = append(result.mandatory, event.When)

			continue
		}

		if event.Attendees.Intersects(request.OptionalAttendees) {
			result.optional = append(result.optional, event.When)
		}
	}

	return result
}

// FindMeetingQuery returns the free ranges of the day, ascending by start,
// that can hold the requested meeting.
// Ranges free for mandatory and optional attendees alike are preferred.
// When there are none, optional attendees are dropped, provided
// the request has mandatory attendees.
func FindMeetingQuery(events []*Event, request *MeetingRequest) []TimeRange {
	if request == nil || !request.hasAttendees() {
		return []TimeRange{WholeDay}
	}

	if request.Duration > WholeDay.Duration() {
		return []TimeRange{}
	}

	busy := partitionBusy(events, request)

	mandatoryFree := freeWindows(WholeDay, busy.mandatory)

	var optionalFree []TimeRange

	if len(busy.mandatory) == 0 {
		optionalFree = freeWindows(WholeDay, busy.optional)
	} else {
		optionalFree = windowsClearOf(mandatoryFree, busy.optional)
	}

	noFallback := len(optionalFree) > 0 || len(request.Attendees) == 0

	return atLeast(
		ternary(noFallback, optionalFree, mandatoryFree),
		request.Duration,
	)
}
