package main

import (
	"encoding/json"
	"math"
	"time"

	"github.com/spf13/cobra"

	"github.com/charlie0129/battnotify/pkg/config"
	"github.com/charlie0129/battnotify/pkg/powerinfo"
)

type statusJSON struct {
	Battery       statusBatteryJSON       `json:"battery"`
	Notifications statusNotificationsJSON `json:"notifications"`
	Health        statusHealthJSON        `json:"health"`
	Configuration statusConfigJSON        `json:"configuration"`
}

type statusBatteryJSON struct {
	CurrentChargePercent int      `json:"currentChargePercent"`
	State                string   `json:"state"`
	Source               string   `json:"source"`
	Condition            string   `json:"condition"`
	TemperatureCelsius   *float64 `json:"temperatureCelsius"`
	TimeToFullMinutes    *int     `json:"timeToFullMinutes"`
	FullCapacityWh       float64  `json:"fullCapacityWh"`
	DesignCapacityWh     float64  `json:"designCapacityWh"`
	ChargeRateWatts      float64  `json:"chargeRateWatts"`
	VoltageVolts         float64  `json:"voltageVolts"`
}

type statusNotificationsJSON struct {
	LastNotified         string `json:"lastNotified"`
	FullNotificationSent bool   `json:"fullNotificationSent"`
	ChargeSource         string `json:"chargeSource"`
	HealthyCharge        bool   `json:"healthyCharge"`
	AudibleNow           bool   `json:"audibleNow"`
	MonitorStalled       bool   `json:"monitorStalled"`
}

type statusHealthJSON struct {
	Cycles            int        `json:"cycles"`
	HealthPercent     int        `json:"healthPercent"`
	Status            string     `json:"status"`
	CycleInProgress   bool       `json:"cycleInProgress"`
	TrackingSince     *time.Time `json:"trackingSince"`
	DaysSinceFirstUse int        `json:"daysSinceFirstUse"`
}

type statusAlertTimeJSON struct {
	Enabled bool   `json:"enabled"`
	Start   string `json:"start"`
	End     string `json:"end"`
}

type statusConfigJSON struct {
	WarningLevelPercent  int                 `json:"warningLevelPercent"`
	CriticalLevelPercent int                 `json:"criticalLevelPercent"`
	WarningEnabled       bool                `json:"warningEnabled"`
	FullNotifyEnabled    bool                `json:"fullNotifyEnabled"`
	AlertEveryTick       bool                `json:"alertEveryTick"`
	StickyNotifications  bool                `json:"stickyNotifications"`
	AlertTime            statusAlertTimeJSON `json:"alertTime"`
	DesktopNotifications bool                `json:"desktopNotifications"`
	PollIntervalSeconds  int                 `json:"pollIntervalSeconds"`
	AllowNonRootAccess   bool                `json:"allowNonRootAccess"`
}

// batteryStateString returns a camelCase string for the battery state.
func batteryStateString(state powerinfo.BatteryState, chargeRate float64) string {
	switch state {
	case powerinfo.Charging:
		return "charging"
	case powerinfo.Discharging:
		if chargeRate != 0 {
			return "discharging"
		}
		return "notCharging"
	case powerinfo.Full:
		return "full"
	default:
		return "notCharging"
	}
}

func buildStatusJSON(data *statusData, cfg config.Config) statusJSON {
	bat := data.batteryInfo

	var temp *float64
	if bat.TemperatureC != 0 {
		t := math.Round(bat.TemperatureC*10) / 10
		temp = &t
	}

	out := statusJSON{
		Battery: statusBatteryJSON{
			CurrentChargePercent: bat.Percentage,
			State:                batteryStateString(bat.State, bat.ChargeRate),
			Source:               bat.Source.String(),
			Condition:            bat.Health.String(),
			TemperatureCelsius:   temp,
			TimeToFullMinutes:    minutesToFull(bat),
			FullCapacityWh:       math.Round(bat.Full/1e3*10) / 10,
			DesignCapacityWh:     math.Round(bat.Design/1e3*10) / 10,
			ChargeRateWatts:      math.Round(bat.ChargeRate/1e3*10) / 10,
			VoltageVolts:         math.Round(bat.Voltage*100) / 100,
		},
		Configuration: statusConfigJSON{
			WarningLevelPercent:  cfg.WarningLevel(),
			CriticalLevelPercent: cfg.CriticalLevel(),
			WarningEnabled:       cfg.WarningEnabled(),
			FullNotifyEnabled:    cfg.FullNotifyEnabled(),
			AlertEveryTick:       cfg.AlertEveryTick(),
			StickyNotifications:  cfg.StickyNotifications(),
			AlertTime: statusAlertTimeJSON{
				Enabled: cfg.LimitAlertTime(),
				Start:   cfg.AlertTimeStart(),
				End:     cfg.AlertTimeEnd(),
			},
			DesktopNotifications: cfg.DesktopNotifications(),
			PollIntervalSeconds:  int(cfg.PollInterval() / time.Second),
			AllowNonRootAccess:   cfg.AllowNonRootAccess(),
		},
	}

	if st := data.status; st != nil {
		out.Notifications = statusNotificationsJSON{
			LastNotified:         st.Classifier.PreviousNotified.String(),
			FullNotificationSent: st.Classifier.FullNotificationSent,
			ChargeSource:         st.ChargeSource.String(),
			HealthyCharge:        st.HealthyCharge,
			AudibleNow:           st.Audible,
			MonitorStalled:       st.Stalled,
		}
	}

	if h := data.health; h != nil {
		var since *time.Time
		if !h.FirstUse.IsZero() {
			firstUse := h.FirstUse
			since = &firstUse
		}
		out.Health = statusHealthJSON{
			Cycles:            h.Cycles,
			HealthPercent:     h.HealthPercent,
			Status:            string(h.Status),
			CycleInProgress:   h.CycleInProgress,
			TrackingSince:     since,
			DaysSinceFirstUse: h.DaysSinceFirstUse,
		}
	}

	return out
}

func printStatusJSON(cmd *cobra.Command, data *statusData, cfg config.Config) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(buildStatusJSON(data, cfg))
}
