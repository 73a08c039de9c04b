package main

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/charlie0129/battnotify/pkg/alertwindow"
	"github.com/charlie0129/battnotify/pkg/config"
)

func NewAlertEveryTickCommand() *cobra.Command {
	return newEnableDisableCommand(
		"alert-every-tick",
		"Set whether to repeat the critical notification on every percent drop",
		`Set whether to repeat the critical notification on every percent drop.

By default the critical notification is shown once when the battery reaches the critical level. With this option, it is shown again every time the level drops by one more percent. Below 5% the notification always repeats.`,
		func(b bool) (string, error) { return apiClient.SetAlertEveryTick(b) },
	)
}

func NewWarningNotifyCommand() *cobra.Command {
	return newEnableDisableCommand(
		"warning-notify",
		"Set whether to show the low battery warning",
		`Set whether to show the low battery warning.

Critical notifications are always shown.`,
		func(b bool) (string, error) { return apiClient.SetWarningNotify(b) },
	)
}

func NewFullNotifyCommand() *cobra.Command {
	return newEnableDisableCommand(
		"full-notify",
		"Set whether to notify when the battery is fully charged",
		`Set whether to notify when the battery is fully charged.

The notification is shown once per charge and is re-armed after the level drops back below 95%.`,
		func(b bool) (string, error) { return apiClient.SetFullNotify(b) },
	)
}

func NewStickyCommand() *cobra.Command {
	return newEnableDisableCommand(
		"sticky",
		"Set whether notifications stay until dismissed",
		`Set whether notifications stay on screen until dismissed.

Only supported by notification daemons that honor an expire timeout of 0 (Linux).`,
		func(b bool) (string, error) { return apiClient.SetSticky(b) },
	)
}

func NewAlertTimeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "alert-time",
		Short:   "Limit the hours in which notifications make sound",
		GroupID: gAdvanced,
		Long: `Limit the hours in which notifications make sound.

Outside the window, notifications are still shown but stay silent. Times are in 24-hour HH:MM format. If the end hour is not after the start hour, the window ends on the next day, e.g. 'battnotify alert-time set 22:00 07:00'.`,
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "set [start] [end]",
			Short: "Only make sound between start and end",
			Args:  cobra.ExactArgs(2),
			RunE: func(_ *cobra.Command, args []string) error {
				w, err := alertwindow.Parse(args[0], args[1])
				if err != nil {
					return err
				}

				ret, err := apiClient.SetAlertTime(config.AlertTime{
					Enabled: true,
					Start:   w.Start.String(),
					End:     w.End.String(),
				})
				if err != nil {
					return fmt.Errorf("failed to set alert time: %w", err)
				}
				logResponse(ret)

				logrus.Infof("successfully limited audible alerts to %s", w)

				return nil
			},
		},
		&cobra.Command{
			Use:   "disable",
			Short: "Make sound at any time",
			Args:  cobra.NoArgs,
			RunE: func(_ *cobra.Command, _ []string) error {
				ret, err := apiClient.SetAlertTime(config.AlertTime{Enabled: false})
				if err != nil {
					return fmt.Errorf("failed to disable alert time: %w", err)
				}
				logResponse(ret)

				logrus.Infof("successfully disabled alert time limit")

				return nil
			},
		},
	)

	return cmd
}
