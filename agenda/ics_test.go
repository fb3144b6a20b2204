package agenda

import (
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/TudorHulban/meeting"
	"github.com/stretchr/testify/require"
)

const calendarICS = `BEGIN:VCALENDAR
VERSION:2.0
PRODID:-//meeting//test//EN
BEGIN:VEVENT
UID:standup-1
DTSTAMP:20261001T000000Z
SUMMARY:Standup
DTSTART:20261019T090000Z
DTEND:20261019T093000Z
ORGANIZER;CN=Alice:mailto:Alice@example.com
ATTENDEE;CN=Bob:mailto:bob@example.com
END:VEVENT
BEGIN:VEVENT
UID:overnight-1
DTSTAMP:20261001T000000Z
SUMMARY:Overnight deploy
DTSTART:20261018T230000Z
DTEND:20261019T010000Z
ATTENDEE;CN=Carol:mailto:carol@example.com
END:VEVENT
BEGIN:VEVENT
UID:tomorrow-1
DTSTAMP:20261001T000000Z
SUMMARY:Tomorrow
DTSTART:20261020T100000Z
DTEND:20261020T110000Z
ATTENDEE;CN=Bob:mailto:bob@example.com
END:VEVENT
END:VCALENDAR
`

func TestImportICS(t *testing.T) {
	events, errImport := ImportICS(
		strings.NewReader(calendarICS),
		&ParamsImportICS{
			Day:      time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC),
			Location: time.UTC,
		},
	)
	require.NoError(t, errImport)
	require.Len(t, events, 2)

	byName := make(map[string]*meeting.Event, len(events))
	for _, event := range events {
		byName[event.Name] = event
	}

	standup, exists := byName["Standup"]
	require.True(t, exists)
	require.Equal(t,
		meeting.FromStartEnd(540, 570, false),
		standup.When,
	)
	require.Equal(t,
		[]string{"alice@example.com", "bob@example.com"},
		standup.Attendees.Sorted(),
	)

	overnight, exists := byName["Overnight deploy"]
	require.True(t, exists)
	require.Equal(t,
		meeting.FromStartEnd(0, 60, false),
		overnight.When,
	)
	require.True(t, overnight.Attendees.Contains("carol@example.com"))
}

func wrapCalendar(events ...string) string {
	return "BEGIN:VCALENDAR\nVERSION:2.0\nPRODID:-//meeting//test//EN\n" +
		strings.Join(events, "") +
		"END:VCALENDAR\n"
}

func TestImportICSBounds(t *testing.T) {
	bucharest := time.FixedZone("EEST", 3*60*60)

	tests := []struct {
		name     string
		calendar string
		location *time.Location
		expected []meeting.TimeRange
	}{
		{
			name: "1. events touching midnight",
			calendar: wrapCalendar(
				"BEGIN:VEVENT\nUID:early\nDTSTAMP:20261001T000000Z\nDTSTART:20261019T000000Z\nDTEND:20261019T010000Z\nATTENDEE:mailto:alice\nEND:VEVENT\n",
				"BEGIN:VEVENT\nUID:noon\nDTSTAMP:20261001T000000Z\nDTSTART:20261019T120000Z\nDTEND:20261019T130000Z\nATTENDEE:mailto:alice\nEND:VEVENT\n",
				"BEGIN:VEVENT\nUID:late\nDTSTAMP:20261001T000000Z\nDTSTART:20261019T230000Z\nDTEND:20261020T000000Z\nATTENDEE:mailto:alice\nEND:VEVENT\n",
			),
			location: time.UTC,
			expected: []meeting.TimeRange{
				meeting.FromStartEnd(0, 60, false),
				meeting.FromStartEnd(720, 780, false),
				meeting.FromStartEnd(1380, 1440, false),
			},
		},
		{
			name: "2. partial minutes widen the busy range",
			calendar: wrapCalendar(
				"BEGIN:VEVENT\nUID:seconds\nDTSTAMP:20261001T000000Z\nDTSTART:20261019T090030Z\nDTEND:20261019T093030Z\nATTENDEE:mailto:alice\nEND:VEVENT\n",
			),
			location: time.UTC,
			expected: []meeting.TimeRange{
				meeting.FromStartEnd(540, 571, false),
			},
		},
		{
			name: "3. all day in UTC",
			calendar: wrapCalendar(
				"BEGIN:VEVENT\nUID:allday\nDTSTAMP:20261001T000000Z\nDTSTART;VALUE=DATE:20261019\nDTEND;VALUE=DATE:20261020\nATTENDEE:mailto:alice\nEND:VEVENT\n",
			),
			location: time.UTC,
			expected: []meeting.TimeRange{meeting.WholeDay},
		},
		{
			name: "4. all day east of UTC covers the local day",
			calendar: wrapCalendar(
				"BEGIN:VEVENT\nUID:allday\nDTSTAMP:20261001T000000Z\nDTSTART;VALUE=DATE:20261019\nDTEND;VALUE=DATE:20261020\nATTENDEE:mailto:alice\nEND:VEVENT\n",
				"BEGIN:VEVENT\nUID:next-day\nDTSTAMP:20261001T000000Z\nDTSTART;VALUE=DATE:20261020\nDTEND;VALUE=DATE:20261021\nATTENDEE:mailto:alice\nEND:VEVENT\n",
			),
			location: bucharest,
			expected: []meeting.TimeRange{meeting.WholeDay},
		},
		{
			name: "5. all day without end, spanning from the day before",
			calendar: wrapCalendar(
				"BEGIN:VEVENT\nUID:no-end\nDTSTAMP:20261001T000000Z\nDTSTART;VALUE=DATE:20261019\nATTENDEE:mailto:alice\nEND:VEVENT\n",
				"BEGIN:VEVENT\nUID:two-days\nDTSTAMP:20261001T000000Z\nDTSTART;VALUE=DATE:20261018\nDTEND;VALUE=DATE:20261020\nATTENDEE:mailto:alice\nEND:VEVENT\n",
			),
			location: bucharest,
			expected: []meeting.TimeRange{
				meeting.WholeDay,
				meeting.WholeDay,
			},
		},
		{
			name: "6. event without DTSTAMP is skipped",
			calendar: wrapCalendar(
				"BEGIN:VEVENT\nUID:no-stamp\nDTSTART:20261019T080000Z\nDTEND:20261019T090000Z\nATTENDEE:mailto:alice\nEND:VEVENT\n",
				"BEGIN:VEVENT\nUID:noon\nDTSTAMP:20261001T000000Z\nDTSTART:20261019T120000Z\nDTEND:20261019T130000Z\nATTENDEE:mailto:alice\nEND:VEVENT\n",
			),
			location: time.UTC,
			expected: []meeting.TimeRange{
				meeting.FromStartEnd(720, 780, false),
			},
		},
	}

	for _, tt := range tests {
		t.Run(
			tt.name,
			func(t *testing.T) {
				events, errImport := ImportICS(
					strings.NewReader(tt.calendar),
					&ParamsImportICS{
						Day:      time.Date(2026, 10, 19, 12, 0, 0, 0, tt.location),
						Location: tt.location,
					},
				)
				require.NoError(t, errImport)

				busy := make([]meeting.TimeRange, 0, len(events))
				for _, event := range events {
					busy = append(busy, event.When)
					require.True(t, event.Attendees.Contains("alice"))
				}

				slices.SortFunc(busy, meeting.OrderByStart)

				require.Equal(t, tt.expected, busy)
			},
		)
	}
}

func TestErrorsImportICS(t *testing.T) {
	t.Run(
		"1. nil params",
		func(t *testing.T) {
			events, errImport := ImportICS(strings.NewReader(calendarICS), nil)
			require.Error(t, errImport)
			require.Nil(t, events)
		},
	)

	t.Run(
		"2. missing location",
		func(t *testing.T) {
			events, errImport := ImportICS(
				strings.NewReader(calendarICS),
				&ParamsImportICS{
					Day: time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC),
				},
			)
			require.Error(t, errImport)
			require.Nil(t, events)
		},
	)
}

func TestIdentify(t *testing.T) {
	require.Equal(t, "bob@example.com", identify("MAILTO:Bob@Example.com", "Bob"))
	require.Equal(t, "Bob", identify("", " Bob "))
	require.Empty(t, identify("", ""))
}

func TestMinutesInto(t *testing.T) {
	dayStart := time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)

	require.Equal(t, 0, minutesInto(dayStart, dayStart.Add(-time.Hour), true))
	require.Equal(t, 90, minutesInto(dayStart, dayStart.Add(90*time.Minute), true))
	require.Equal(t, 90, minutesInto(dayStart, dayStart.Add(90*time.Minute+30*time.Second), false))
	require.Equal(t, 91, minutesInto(dayStart, dayStart.Add(90*time.Minute+30*time.Second), true))
	require.Equal(t, meeting.MinutesPerDay, minutesInto(dayStart, dayStart.Add(23*time.Hour+59*time.Minute+time.Second), true))
	require.Equal(t, meeting.MinutesPerDay, minutesInto(dayStart, dayStart.Add(25*time.Hour), false))
}
