package main

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/charlie0129/battnotify/pkg/config"
	"github.com/charlie0129/battnotify/pkg/health"
	"github.com/charlie0129/battnotify/pkg/monitor"
	"github.com/charlie0129/battnotify/pkg/notify"
	"github.com/charlie0129/battnotify/pkg/powerinfo"
	"github.com/charlie0129/battnotify/pkg/utils/units"
)

type statusData struct {
	batteryInfo *powerinfo.Battery
	status      *monitor.Status
	health      *health.Summary
	config      *config.RawFileConfig
}

// fetchStatusData gathers all data required for the status command from the daemon.
func fetchStatusData() (*statusData, error) {
	bat, err := apiClient.GetBatteryInfo()
	if err != nil {
		return nil, fmt.Errorf("failed to get battery info: %w", err)
	}

	st, err := apiClient.GetStatus()
	if err != nil {
		return nil, fmt.Errorf("failed to get monitor status: %w", err)
	}

	h, err := apiClient.GetHealth()
	if err != nil {
		return nil, fmt.Errorf("failed to get battery health: %w", err)
	}

	conf, err := apiClient.GetConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to get config: %w", err)
	}

	return &statusData{
		batteryInfo: bat,
		status:      st,
		health:      h,
		config:      conf,
	}, nil
}

// minutesToFull estimates the minutes until the battery is full, or nil.
func minutesToFull(bat *powerinfo.Battery) *int {
	if bat.State != powerinfo.Charging || bat.ChargeRate <= 0 || bat.Full <= bat.Current {
		return nil
	}
	minutes := int((bat.Full - bat.Current) / bat.ChargeRate * 60)
	return &minutes
}

func NewStatusCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:     "status",
		GroupID: gBasic,
		Short:   "Get the current status of battnotify",
		Long:    `Get battery info, notification state, battery health, and configuration.`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			data, err := fetchStatusData()
			if err != nil {
				return err
			}

			conf := config.NewFileFromConfig(data.config, "")

			if asJSON {
				return printStatusJSON(cmd, data, conf)
			}

			bat := data.batteryInfo

			// Battery Info.
			cmd.Println(bold("Battery status:"))
			cmd.Printf("  Current charge: %s\n", bold("%d%%", bat.Percentage))

			state := "not charging"
			switch bat.State {
			case powerinfo.Charging:
				state = color.GreenString("charging")
			case powerinfo.Discharging:
				if bat.ChargeRate != 0 {
					state = color.RedString("discharging")
				}
			case powerinfo.Full:
				state = "full"
			}
			cmd.Printf("  State: %s\n", bold("%s", state))
			cmd.Printf("  Power source: %s\n", bold("%s", bat.Source))
			if m := minutesToFull(bat); m != nil {
				cmd.Printf("  Time to full: %s\n", bold("~%d minutes", *m))
			}
			if bat.Health != notify.HealthUnknown {
				cmd.Printf("  Reported condition: %s\n", bold("%s", bat.Health))
			}
			if bat.TemperatureC != 0 {
				cmd.Printf("  Temperature: %s\n", bold("%.1f °C (%.1f °F)", bat.TemperatureC, units.CelsiusToFahrenheit(bat.TemperatureC)))
			}
			if bat.Design > 0 {
				cmd.Printf("  Full capacity: %s\n", bold("%.1f Wh (design %.1f Wh)", bat.Full/1e3, bat.Design/1e3))
			}
			// Show charge rate in Watts with sign (+ charging, - discharging) and bright color (bold)
			watts := bat.ChargeRate / 1e3
			var rateStr string
			switch {
			case watts > 0:
				rateStr = color.New(color.Bold, color.FgGreen).Sprintf("%+.1f W", watts)
			case watts < 0:
				rateStr = color.New(color.Bold, color.FgRed).Sprintf("%+.1f W", watts)
			default:
				rateStr = bold("%+.1f W", watts)
			}
			cmd.Printf("  Charge rate: %s\n", rateStr)
			cmd.Printf("  Voltage: %s\n", bold("%.2f V", bat.Voltage))

			cmd.Println()

			// Notification state.
			st := data.status
			cmd.Println(bold("Notifications:"))
			cmd.Printf("  Last notified: %s\n", bold("%s", st.Classifier.PreviousNotified))
			cmd.Printf("  Full notification sent: %s\n", bool2Text(st.Classifier.FullNotificationSent))
			if st.ChargeSourceKnown && st.ChargeSource.Plugged() {
				session := st.ChargeSource.String()
				if st.HealthyCharge {
					session += color.GreenString(" (healthy charge)")
				}
				cmd.Printf("  Charge session: %s\n", bold("%s", session))
			}
			cmd.Printf("  Alerts audible now: %s\n", bool2Text(st.Audible))
			if st.Stalled {
				cmd.Printf("  Monitor: %s\n", color.RedString("stalled, no battery reading in the last poll interval"))
			}

			cmd.Println()

			// Health.
			h := data.health
			cmd.Println(bold("Battery health (estimated):"))
			printHealth(cmd, h)

			cmd.Println()

			// Config.
			cmd.Println(bold("Configuration:"))
			cmd.Printf("  Warning level: %s (notify: %s)\n", bold("%d%%", conf.WarningLevel()), bool2Text(conf.WarningEnabled()))
			cmd.Printf("  Critical level: %s\n", bold("%d%%", conf.CriticalLevel()))
			cmd.Printf("  Repeat critical alert on every drop: %s\n", bool2Text(conf.AlertEveryTick()))
			cmd.Printf("  Notify when fully charged: %s\n", bool2Text(conf.FullNotifyEnabled()))
			cmd.Printf("  Sticky notifications: %s\n", bool2Text(conf.StickyNotifications()))
			if conf.LimitAlertTime() {
				cmd.Printf("  Audible alerts: %s\n", bold("%s-%s", conf.AlertTimeStart(), conf.AlertTimeEnd()))
			} else {
				cmd.Printf("  Audible alerts: %s\n", bold("any time"))
			}
			cmd.Printf("  Desktop notifications: %s\n", bool2Text(conf.DesktopNotifications()))
			cmd.Printf("  Poll interval: %s\n", bold("%s", conf.PollInterval()))
			cmd.Printf("  Allow non-root users to access the daemon: %s\n", bool2Text(conf.AllowNonRootAccess()))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print status as JSON")

	return cmd
}

func printHealth(cmd *cobra.Command, h *health.Summary) {
	cmd.Printf("  Health: %s\n", healthText(h))
	cmd.Printf("    %s\n", h.Description)
	cmd.Printf("  Charge cycles: %s\n", bold("%d", h.Cycles))
	if h.CycleInProgress {
		cmd.Println("    A cycle is in progress, charge to 95% to complete it.")
	}
	if !h.FirstUse.IsZero() {
		cmd.Printf("  Tracking since: %s (%d days)\n", bold("%s", h.FirstUse.Local().Format(time.DateOnly)), h.DaysSinceFirstUse)
	}
}

func healthText(h *health.Summary) string {
	text := fmt.Sprintf("%d%% (%s)", h.HealthPercent, h.Status)
	switch h.Status {
	case health.StatusExcellent, health.StatusGood:
		return color.New(color.Bold, color.FgGreen).Sprint(text)
	case health.StatusFair:
		return color.New(color.Bold, color.FgYellow).Sprint(text)
	default:
		return color.New(color.Bold, color.FgRed).Sprint(text)
	}
}

func bool2Text(b bool) string {
	if b {
		return color.New(color.Bold, color.FgGreen).Sprint("✔")
	}
	return color.New(color.Bold, color.FgRed).Sprint("✘")
}

func bold(format string, a ...interface{}) string {
	return color.New(color.Bold).Sprintf(format, a...)
}
