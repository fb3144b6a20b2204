package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"syscall"

	"github.com/TudorHulban/meeting"
	"github.com/TudorHulban/meeting/agenda"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var rootCmd = &cobra.Command{
	Use:   "findmeeting",
	Short: "Find the free time slots of a day for a meeting",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, errCfg := loadSettings(cmd)
		if errCfg != nil {
			return errCfg
		}

		logger, errLogger := newLogger(cfg.Debug)
		if errLogger != nil {
			return errLogger
		}

		defer func() {
			if errSync := logger.Sync(); errSync != nil && !errors.Is(errSync, syscall.ENOTTY) && !errors.Is(errSync, syscall.EINVAL) {
				fmt.Fprintln(os.Stderr, errSync)
			}
		}()

		if errRun := run(cfg, logger, cmd.OutOrStdout()); errRun != nil {
			logger.Error("find meeting", zap.Error(errRun))

			return errRun
		}

		return nil
	},
	SilenceUsage: true,
}

func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}

	return zap.NewProduction()
}

func run(cfg *settings, logger *zap.Logger, out io.Writer) error {
	var (
		events  []*meeting.Event
		request = &meeting.MeetingRequest{}
	)

	if len(cfg.AgendaFile) > 0 {
		loaded, errLoad := agenda.Load(cfg.AgendaFile)
		if errLoad != nil {
			return errLoad
		}

		agendaEvents, errEvents := loaded.Events()
		if errEvents != nil {
			return errEvents
		}

		agendaRequest, errRequest := loaded.MeetingRequest()
		if errRequest != nil {
			return errRequest
		}

		logger.Debug(
			"agenda loaded",
			zap.String("file", cfg.AgendaFile),
			zap.Int("events", len(agendaEvents)),
		)

		events = append(events, agendaEvents...)
		request = agendaRequest
	}

	if len(cfg.ICSFile) > 0 {
		icsEvents, errImport := importICSFile(cfg)
		if errImport != nil {
			return errImport
		}

		logger.Debug(
			"ics imported",
			zap.String("file", cfg.ICSFile),
			zap.Time("day", cfg.Day),
			zap.Int("events", len(icsEvents)),
		)

		events = append(events, icsEvents...)
	}

	request, errRequest := overrideRequest(request, cfg)
	if errRequest != nil {
		return errRequest
	}

	slots := meeting.FindMeetingQuery(events, request)

	logger.Info(
		"meeting query",
		zap.Strings("attendees", request.Attendees.Sorted()),
		zap.Strings("optional", request.OptionalAttendees.Sorted()),
		zap.Int("duration", request.Duration),
		zap.Int("events", len(events)),
		zap.Int("slots", len(slots)),
	)

	if len(slots) == 0 {
		_, errWrite := fmt.Fprintln(out, "no available time")

		return errWrite
	}

	for _, slot := range slots {
		if _, errWrite := fmt.Fprintf(out, "%s %s\n", slot, slot.Clock()); errWrite != nil {
			return errWrite
		}
	}

	return nil
}

func importICSFile(cfg *settings) ([]*meeting.Event, error) {
	f, errOpen := os.Open(cfg.ICSFile)
	if errOpen != nil {
		return nil,
			fmt.Errorf("open ics %s: %w", cfg.ICSFile, errOpen)
	}
	defer f.Close()

	return agenda.ImportICS(
		f,
		&agenda.ParamsImportICS{
			Day:      cfg.Day,
			Location: cfg.Location,
		},
	)
}

// overrideRequest replaces the parts of the agenda request given on the command line.
func overrideRequest(request *meeting.MeetingRequest, cfg *settings) (*meeting.MeetingRequest, error) {
	params := meeting.ParamsNewMeetingRequest{
		Attendees:         request.Attendees.Sorted(),
		OptionalAttendees: request.OptionalAttendees.Sorted(),
		Duration:          request.Duration,
	}

	if len(cfg.Attendees) > 0 {
		params.Attendees = cfg.Attendees
	}

	if len(cfg.OptionalAttendees) > 0 {
		params.OptionalAttendees = cfg.OptionalAttendees
	}

	if cfg.DurationSet {
		params.Duration = cfg.Duration
	}

	return meeting.NewMeetingRequest(&params)
}

func main() {
	registerFlags(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(-1)
	}
}
