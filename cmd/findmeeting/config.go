package main

import (
	"errors"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const envPrefix = "FINDMEETING"

const (
	keyAgenda   = "agenda"
	keyICS      = "ics"
	keyDay      = "day"
	keyTimezone = "timezone"
	keyAttendee = "attendee"
	keyOptional = "optional"
	keyDuration = "duration"
	keyDebug    = "debug"
)

type settings struct {
	AgendaFile string
	ICSFile    string

	Location *time.Location

	Attendees         []string
	OptionalAttendees []string

	Day time.Time

	Duration    int
	DurationSet bool
	Debug       bool
}

func registerFlags(cmd *cobra.Command) {
	cmd.Flags().StringP(keyAgenda, "a", "", "agenda file, yaml or toml")
	cmd.Flags().StringP(keyICS, "i", "", "iCalendar file with busy events")
	cmd.Flags().String(keyDay, "", "day to import from the iCalendar file, YYYY-MM-DD (default today)")
	cmd.Flags().String(keyTimezone, "UTC", "timezone of the day")
	cmd.Flags().StringSlice(keyAttendee, nil, "mandatory attendee, overrides the agenda request")
	cmd.Flags().StringSlice(keyOptional, nil, "optional attendee, overrides the agenda request")
	cmd.Flags().IntP(keyDuration, "m", 0, "meeting duration in minutes, overrides the agenda request")
	cmd.Flags().BoolP(keyDebug, "d", false, "debug mode")
}

// loadSettings merges flags, FINDMEETING_* environment and an optional
// findmeeting.yaml from the working directory, in this order of precedence.
func loadSettings(cmd *cobra.Command) (*settings, error) {
	v := viper.New()

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetConfigName("findmeeting")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	if errRead := v.ReadInConfig(); errRead != nil {
		var errNotFound viper.ConfigFileNotFoundError
		if !errors.As(errRead, &errNotFound) {
			return nil, errRead
		}
	}

	if errBind := v.BindPFlags(cmd.Flags()); errBind != nil {
		return nil, errBind
	}

	location, errLocation := time.LoadLocation(v.GetString(keyTimezone))
	if errLocation != nil {
		return nil, errLocation
	}

	day := time.Now().In(location)

	if dayText := v.GetString(keyDay); len(dayText) > 0 {
		parsed, errDay := time.ParseInLocation(time.DateOnly, dayText, location)
		if errDay != nil {
			return nil, errDay
		}

		day = parsed
	}

	if len(v.GetString(keyAgenda)) == 0 && len(v.GetString(keyICS)) == 0 &&
		len(v.GetStringSlice(keyAttendee)) == 0 && len(v.GetStringSlice(keyOptional)) == 0 {
		return nil,
			errors.New("nothing to schedule, pass an agenda, an ics file or attendees")
	}

	return &settings{
			AgendaFile: v.GetString(keyAgenda),
			ICSFile:    v.GetString(keyICS),

			Location: location,

			Attendees:         v.GetStringSlice(keyAttendee),
			OptionalAttendees: v.GetStringSlice(keyOptional),

			Day: day,

			Duration:    v.GetInt(keyDuration),
			DurationSet: v.IsSet(keyDuration),
			Debug:       v.GetBool(keyDebug),
		},
		nil
}
