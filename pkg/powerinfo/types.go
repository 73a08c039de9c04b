package powerinfo

import (
	"github.com/distatus/battery"

	"github.com/charlie0129/battnotify/pkg/notify"
)

// BatteryState represents the charging state of the battery.
type BatteryState int

const (
	// Discharging indicates the battery is discharging.
	Discharging BatteryState = iota
	// Charging indicates the battery is charging.
	Charging
	// Full indicates the battery is full.
	Full
	// Idle indicates the battery is neither charging nor discharging.
	Idle
)

func (s BatteryState) String() string {
	switch s {
	case Charging:
		return "charging"
	case Full:
		return "full"
	case Idle:
		return "not charging"
	default:
		return "discharging"
	}
}

func stateFrom(s battery.State) BatteryState {
	switch s {
	case battery.Charging:
		return Charging
	case battery.Full:
		return Full
	case battery.Discharging:
		return Discharging
	default:
		return Idle
	}
}

// Battery is the battery info served on /battery-info.
// Units:
// - Current, Full, Design: mWh
// - ChargeRate: mW (negative when discharging)
// - Voltage, DesignVoltage: Volts
type Battery struct {
	State         BatteryState         `json:"state"`
	Percentage    int                  `json:"percentage"`
	Current       float64              `json:"current"`
	Full          float64              `json:"full"`
	Design        float64              `json:"design"`
	ChargeRate    float64              `json:"chargeRate"`
	Voltage       float64              `json:"voltage"`
	DesignVoltage float64              `json:"designVoltage"`
	Source        notify.PluggedSource `json:"source"`
	Health        notify.BatteryHealth `json:"health"`
	TemperatureC  float64              `json:"temperatureC,omitempty"`
}

// Charging reports whether the battery is charging or full.
func (b *Battery) Charging() bool {
	return b.State == Charging || b.State == Full
}

// Snapshot projects the battery info onto a classifier reading.
func (b *Battery) Snapshot() notify.Snapshot {
	return notify.Snapshot{
		Percentage:   b.Percentage,
		Charging:     b.Charging(),
		Full:         b.State == Full,
		Source:       b.Source,
		Health:       b.Health,
		TemperatureC: b.TemperatureC,
	}
}
