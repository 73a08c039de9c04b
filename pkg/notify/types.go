package notify

import (
	"fmt"
	"strings"

	pkgerrors "github.com/pkg/errors"
)

const (
	// RedAlertLevel is the percentage at or below which any memory of a
	// previous notification is dropped, so a critical alert always fires.
	RedAlertLevel = 4
	// FullPercentage is the level at or below which a full notification is
	// re-armed once the battery has discharged past the warning level.
	FullPercentage = 95
	// HealthyChargeThreshold is the highest percentage at which starting to
	// charge counts as a healthy charge.
	HealthyChargeThreshold = 20
)

// Kind is the kind of a battery notification.
type Kind int

const (
	KindNone Kind = iota
	KindCritical
	KindWarning
	KindFull
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindCritical:
		return "critical"
	case KindWarning:
		return "warning"
	case KindFull:
		return "full"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// ParseKind is the inverse of Kind.String.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "none", "":
		return KindNone, nil
	case "critical":
		return KindCritical, nil
	case "warning":
		return KindWarning, nil
	case "full":
		return KindFull, nil
	default:
		return KindNone, pkgerrors.Errorf("unknown notification kind %q", s)
	}
}

func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(b []byte) error {
	parsed, err := ParseKind(string(b))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// PluggedSource is the power source the device is plugged into.
type PluggedSource int

const (
	SourceNone PluggedSource = iota
	SourceUSB
	SourceAC
	SourceWireless
	SourceOther
)

func (p PluggedSource) String() string {
	switch p {
	case SourceNone:
		return "battery"
	case SourceUSB:
		return "USB"
	case SourceAC:
		return "AC"
	case SourceWireless:
		return "wireless"
	case SourceOther:
		return "charger"
	default:
		return fmt.Sprintf("PluggedSource(%d)", int(p))
	}
}

// Plugged reports whether p is an actual power source.
func (p PluggedSource) Plugged() bool {
	return p != SourceNone
}

func (p PluggedSource) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *PluggedSource) UnmarshalText(b []byte) error {
	switch strings.ToLower(string(b)) {
	case "battery", "none", "":
		*p = SourceNone
	case "usb":
		*p = SourceUSB
	case "ac":
		*p = SourceAC
	case "wireless":
		*p = SourceWireless
	case "charger", "other":
		*p = SourceOther
	default:
		return pkgerrors.Errorf("unknown plugged source %q", string(b))
	}
	return nil
}

// BatteryHealth is the platform-reported condition of the battery. It is
// informational and plays no part in notification decisions.
type BatteryHealth int

const (
	HealthUnknown BatteryHealth = iota
	HealthGood
	HealthWarning
	HealthCritical
)

func (h BatteryHealth) String() string {
	switch h {
	case HealthGood:
		return "good"
	case HealthWarning:
		return "warning"
	case HealthCritical:
		return "critical"
	default:
		return "unknown"
	}
}

func (h BatteryHealth) MarshalText() ([]byte, error) {
	return []byte(h.String()), nil
}

func (h *BatteryHealth) UnmarshalText(b []byte) error {
	switch string(b) {
	case "good":
		*h = HealthGood
	case "warning":
		*h = HealthWarning
	case "critical":
		*h = HealthCritical
	default:
		*h = HealthUnknown
	}
	return nil
}

// ParseBatteryHealth maps a platform health string (as found in the linux
// power_supply class) to a BatteryHealth.
func ParseBatteryHealth(raw string) BatteryHealth {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "good":
		return HealthGood
	case "cold", "overheat", "unspecified failure":
		return HealthWarning
	case "dead", "over voltage":
		return HealthCritical
	default:
		return HealthUnknown
	}
}

// Snapshot is a single battery reading.
type Snapshot struct {
	// Percentage is the charge level in [0, 100]. Callers clamp it.
	Percentage int `json:"percentage"`
	// Charging is true while the battery is charging or full.
	Charging bool `json:"charging"`
	// Full is the platform's "battery full" flag.
	Full   bool          `json:"full"`
	Source PluggedSource `json:"source"`
	Health BatteryHealth `json:"health"`
	// TemperatureC is zero when the platform does not report it.
	TemperatureC float64 `json:"temperatureC,omitempty"`
}

// Intent asks the notification layer to show a notification.
type Intent struct {
	Kind Kind `json:"kind"`
	// Threshold is the configured level that triggered the notification.
	Threshold  int `json:"threshold"`
	Percentage int `json:"percentage"`
}

// ChargeSessionSignal is emitted when the plugged state changes.
type ChargeSessionSignal struct {
	Started bool          `json:"started"`
	Source  PluggedSource `json:"source"`
	// Healthy is only meaningful when Started is true.
	Healthy    bool `json:"healthy"`
	Percentage int  `json:"percentage"`
}
