package meeting

import (
	"errors"
	"fmt"
	"strings"

	goerrors "github.com/TudorHulban/go-errors"
	"github.com/asaskevich/govalidator"
)

// Event blocks its attendees for the When range.
type Event struct {
	Name      string
	Attendees Attendees
	When      TimeRange
}

type ParamsNewEvent struct {
	Name      string `valid:"required"`
	Attendees []string
	When      TimeRange
}

func NewEvent(params *ParamsNewEvent) (*Event, error) {
	if params == nil {
		return nil,
			goerrors.ErrValidation{
				Caller: "NewEvent",
				Issue: goerrors.ErrNilInput{
					InputName: "ParamsNewEvent",
				},
			}
	}

	if _, errValidation := govalidator.ValidateStruct(params); errValidation != nil {
		return nil,
			goerrors.ErrServiceValidation{
				ServiceName: "Meeting",
				Caller:      "NewEvent",
				Issue:       errValidation,
			}
	}

	if params.When.start < StartOfDay || params.When.end > MinutesPerDay {
		return nil,
			goerrors.ErrInvalidInput{
				Caller:     "NewEvent",
				InputName:  "When",
				InputValue: params.When.String(),
				Issue: errors.New(
					"time range outside of day",
				),
			}
	}

	for _, attendee := range params.Attendees {
		if len(strings.TrimSpace(attendee)) == 0 {
			return nil,
				goerrors.ErrValidation{
					Caller: "NewEvent",
					Issue: goerrors.ErrNilInput{
						InputName: "Attendees",
					},
				}
		}
	}

	return &Event{
			Name:      params.Name,
			When:      params.When,
			Attendees: NewAttendees(params.Attendees...),
		},
		nil
}

func (e *Event) String() string {
	return fmt.Sprintf(
		"Event{%s %s attendees: %s}",

		e.Name,
		e.When,
		e.Attendees,
	)
}

// MeetingRequest asks for Duration minutes with all of Attendees
// and, where possible, all of OptionalAttendees.
type MeetingRequest struct {
	Attendees         Attendees
	OptionalAttendees Attendees

	Duration int
}

type ParamsNewMeetingRequest struct {
	Attendees         []string
	OptionalAttendees []string

	Duration int
}

func NewMeetingRequest(params *ParamsNewMeetingRequest) (*MeetingRequest, error) {
	if params == nil {
		return nil,
			goerrors.ErrValidation{
				Caller: "NewMeetingRequest",
				Issue: goerrors.ErrNilInput{
					InputName: "ParamsNewMeetingRequest",
				},
			}
	}

	if params.Duration < 0 {
		return nil,
			goerrors.ErrValidation{
				Caller: "NewMeetingRequest",
				Issue: goerrors.ErrNegativeInput{
					InputName: "Duration",
				},
			}
	}

	return &MeetingRequest{
			Attendees:         NewAttendees(params.Attendees...),
			OptionalAttendees: NewAttendees(params.OptionalAttendees...),
			Duration:          params.Duration,
		},
		nil
}

func (r *MeetingRequest) hasAttendees() bool {
	return len(r.Attendees) > 0 || len(r.OptionalAttendees) > 0
}
