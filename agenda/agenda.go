package agenda

import (
	"errors"
	"fmt"
	"os"
	"path"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	goerrors "github.com/TudorHulban/go-errors"
	"github.com/TudorHulban/meeting"
	"github.com/asaskevich/govalidator"
	"gopkg.in/yaml.v2"
)

type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"

	// FormatAuto tries TOML first, then YAML.
	FormatAuto Format = ""
)

type EntryEvent struct {
	Name      string   `yaml:"name" toml:"name" valid:"required"`
	Start     string   `yaml:"start" toml:"start" valid:"required"`
	End       string   `yaml:"end" toml:"end" valid:"required"`
	Attendees []string `yaml:"attendees" toml:"attendees"`
}

type EntryRequest struct {
	Attendees []string `yaml:"attendees" toml:"attendees"`
	Optional  []string `yaml:"optional" toml:"optional"`
	Duration  int      `yaml:"duration" toml:"duration"`
}

// Agenda is the decoded content of an agenda file.
type Agenda struct {
	Request EntryRequest `yaml:"request" toml:"request"`
	Entries []EntryEvent `yaml:"events" toml:"events"`
}

// UnmatchedTomlKeysError lists the keys of a TOML agenda not matching any field.
type UnmatchedTomlKeysError struct {
	Keys []toml.Key
}

func (e *UnmatchedTomlKeysError) Error() string {
	return fmt.Sprintf(
		"agenda keys not matching any field: %v",
		e.Keys,
	)
}

func FormatOf(file string) Format {
	switch strings.ToLower(path.Ext(file)) {
	case ".yaml", ".yml":
		return FormatYAML

	case ".toml":
		return FormatTOML
	}

	return FormatAuto
}

// Load reads the agenda file, the format is picked by extension.
func Load(file string) (*Agenda, error) {
	data, errRead := os.ReadFile(file)
	if errRead != nil {
		return nil,
			fmt.Errorf("read agenda %s: %w", file, errRead)
	}

	return Decode(data, FormatOf(file))
}

// Decode parses agenda content. Unknown keys are rejected.
func Decode(data []byte, format Format) (*Agenda, error) {
	var result Agenda

	switch format {
	case FormatYAML:
		if errUnmarshal := yaml.UnmarshalStrict(data, &result); errUnmarshal != nil {
			return nil,
				fmt.Errorf("decode yaml agenda: %w", errUnmarshal)
		}

	case FormatTOML:
		if errUnmarshal := unmarshalToml(data, &result); errUnmarshal != nil {
			return nil,
				fmt.Errorf("decode toml agenda: %w", errUnmarshal)
		}

	case FormatAuto:
		errToml := unmarshalToml(data, &result)
		if errToml == nil {
			break
		}

		var errUnmatched *UnmatchedTomlKeysError
		if errors.As(errToml, &errUnmatched) {
			return nil, errToml
		}

		result = Agenda{}

		if errYaml := yaml.UnmarshalStrict(data, &result); errYaml != nil {
			return nil,
				errors.New("failed to decode agenda as toml or yaml")
		}

	default:
		return nil,
			goerrors.ErrInvalidInput{
				Caller:     "Decode",
				InputName:  "format",
				InputValue: string(format),
				Issue: errors.New(
					"unsupported agenda format",
				),
			}
	}

	return &result, nil
}

func unmarshalToml(data []byte, cfg any) error {
	metadata, errDecode := toml.Decode(string(data), cfg)
	if errDecode != nil {
		return errDecode
	}

	if undecoded := metadata.Undecoded(); len(undecoded) > 0 {
		return &UnmatchedTomlKeysError{
			Keys: undecoded,
		}
	}

	return nil
}

// ParseClock converts HH:MM to minutes since midnight. 24:00 is the end of day.
func ParseClock(clock string) (int, error) {
	hoursPart, minutesPart, found := strings.Cut(strings.TrimSpace(clock), ":")
	if !found ||
		len(hoursPart) == 0 || len(hoursPart) > 2 || len(minutesPart) != 2 ||
		!isDigits(hoursPart) || !isDigits(minutesPart) {
		return 0,
			goerrors.ErrInvalidInput{
				Caller:     "ParseClock",
				InputName:  "clock",
				InputValue: clock,
				Issue: errors.New(
					"expected HH:MM",
				),
			}
	}

	hours, errHours := strconv.Atoi(hoursPart)
	minutes, errMinutes := strconv.Atoi(minutesPart)

	if errHours != nil || errMinutes != nil ||
		hours > 24 || minutes > 59 ||
		(hours == 24 && minutes != 0) {
		return 0,
			goerrors.ErrInvalidInput{
				Caller:     "ParseClock",
				InputName:  "clock",
				InputValue: clock,
				Issue: errors.New(
					"not a time of day",
				),
			}
	}

	return meeting.TimeInMinutes(hours, minutes), nil
}

func isDigits(text string) bool {
	return strings.IndexFunc(
		text,
		func(r rune) bool {
			return r < '0' || r > '9'
		},
	) == -1
}

func (entry *EntryEvent) toEvent() (*meeting.Event, error) {
	if _, errValidation := govalidator.ValidateStruct(entry); errValidation != nil {
		return nil,
			goerrors.ErrServiceValidation{
				ServiceName: "Agenda",
				Caller:      "toEvent",
				Issue:       errValidation,
			}
	}

	start, errStart := ParseClock(entry.Start)
	if errStart != nil {
		return nil, errStart
	}

	end, errEnd := ParseClock(entry.End)
	if errEnd != nil {
		return nil, errEnd
	}

	when, errRange := meeting.NewTimeRange(start, end)
	if errRange != nil {
		return nil, errRange
	}

	return meeting.NewEvent(
		&meeting.ParamsNewEvent{
			Name:      entry.Name,
			Attendees: entry.Attendees,
			When:      when,
		},
	)
}

// Events converts the agenda entries, failing on the first invalid one.
func (a *Agenda) Events() ([]*meeting.Event, error) {
	result := make([]*meeting.Event, 0, len(a.Entries))

	for ix := range a.Entries {
		event, errConvert := a.Entries[ix].toEvent()
		if errConvert != nil {
			return nil,
				fmt.Errorf("agenda event %d (%q): %w", ix, a.Entries[ix].Name, errConvert)
		}

		result = append(result, event)
	}

	return result, nil
}

func (a *Agenda) MeetingRequest() (*meeting.MeetingRequest, error) {
	return meeting.NewMeetingRequest(
		&meeting.ParamsNewMeetingRequest{
			Attendees:         a.Request.Attendees,
			OptionalAttendees: a.Request.Optional,
			Duration:          a.Request.Duration,
		},
	)
}
