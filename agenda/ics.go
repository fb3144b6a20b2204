package agenda

import (
	"fmt"
	"io"
	"strings"
	"time"

	goerrors "github.com/TudorHulban/go-errors"
	"github.com/TudorHulban/meeting"
	"github.com/apognu/gocal"
	"github.com/asaskevich/govalidator"
)

// parserMargin widens the parser bounds, gocal drops events starting or ending
// exactly on a bound and reads all-day dates in UTC.
const parserMargin = 24 * time.Hour

type ParamsImportICS struct {
	Day      time.Time      `valid:"required"`
	Location *time.Location `valid:"required"`
}

// ImportICS reads the iCalendar events touching the day in the given location
// as busy events, clipped to the day.
// Attendees are identified by email, or by common name when no email is given.
func ImportICS(r io.Reader, params *ParamsImportICS) ([]*meeting.Event, error) {
	if params == nil {
		return nil,
			goerrors.ErrValidation{
				Caller: "ImportICS",
				Issue: goerrors.ErrNilInput{
					InputName: "ParamsImportICS",
				},
			}
	}

	if _, errValidation := govalidator.ValidateStruct(params); errValidation != nil {
		return nil,
			goerrors.ErrServiceValidation{
				ServiceName: "Agenda",
				Caller:      "ImportICS",
				Issue:       errValidation,
			}
	}

	year, month, day := params.Day.In(params.Location).Date()

	dayStart := time.Date(year, month, day, 0, 0, 0, 0, params.Location)
	dayEnd := dayStart.AddDate(0, 0, 1)

	parserStart, parserEnd := dayStart.Add(-parserMargin), dayEnd.Add(parserMargin)

	parser := gocal.NewParser(r)
	parser.Start, parser.End = &parserStart, &parserEnd
	parser.Strict = gocal.StrictParams{
		Mode: gocal.StrictModeFailEvent,
	}

	if errParse := parser.Parse(); errParse != nil {
		return nil,
			fmt.Errorf("parse ics: %w", errParse)
	}

	result := make([]*meeting.Event, 0, len(parser.Events))

	for _, e := range parser.Events {
		start, end := boundsOf(&e, params.Location)

		if !end.After(dayStart) || !start.Before(dayEnd) {
			continue
		}

		when := meeting.FromStartEnd(
			minutesInto(dayStart, start, false),
			minutesInto(dayStart, end, true),
			false,
		)

		var attendees []string

		for _, attendee := range e.Attendees {
			if id := identify(attendee.Value, attendee.Cn); len(id) > 0 {
				attendees = append(attendees, id)
			}
		}

		if e.Organizer != nil {
			if id := identify(e.Organizer.Value, e.Organizer.Cn); len(id) > 0 {
				attendees = append(attendees, id)
			}
		}

		event, errCr := meeting.NewEvent(
			&meeting.ParamsNewEvent{
				Name:      nameOf(e.Summary, e.Uid),
				Attendees: attendees,
				When:      when,
			},
		)
		if errCr != nil {
			return nil,
				fmt.Errorf("ics event %q: %w", e.Uid, errCr)
		}

		result = append(result, event)
	}

	return result, nil
}

// boundsOf returns the event bounds in the location.
// All-day events cover whole local days, from the start date to the last date inclusive.
func boundsOf(e *gocal.Event, location *time.Location) (time.Time, time.Time) {
	if e.RawStart.Params["VALUE"] != "DATE" {
		return e.Start.In(location), e.End.In(location)
	}

	// gocal ends all-day events just before midnight UTC of the day after the last one.
	firstYear, firstMonth, firstDay := e.Start.UTC().Date()
	lastYear, lastMonth, lastDay := e.End.UTC().Add(-time.Millisecond).Date()

	return time.Date(firstYear, firstMonth, firstDay, 0, 0, 0, 0, location),
		time.Date(lastYear, lastMonth, lastDay+1, 0, 0, 0, 0, location)
}

// minutesInto counts whole minutes from the day start, rounding partial minutes
// up when roundUp is set, then clamps to the day.
// Days with a DST switch still map into [0, 1440].
func minutesInto(dayStart, moment time.Time, roundUp bool) int {
	elapsed := moment.Sub(dayStart)
	minutes := int(elapsed / time.Minute)

	if roundUp && elapsed%time.Minute > 0 {
		minutes++
	}

	return min(
		max(minutes, meeting.StartOfDay),
		meeting.MinutesPerDay,
	)
}

func identify(value, commonName string) string {
	value = strings.TrimSpace(value)

	if len(value) >= len("mailto:") && strings.EqualFold(value[:len("mailto:")], "mailto:") {
		value = value[len("mailto:"):]
	}

	if len(value) > 0 {
		return strings.ToLower(value)
	}

	return strings.TrimSpace(commonName)
}

func nameOf(summary, uid string) string {
	if name := strings.TrimSpace(summary); len(name) > 0 {
		return name
	}

	if len(uid) > 0 {
		return uid
	}

	return "busy"
}
