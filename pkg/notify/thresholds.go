package notify

import (
	pkgerrors "github.com/pkg/errors"
)

// ErrInvalidThresholds is returned by Thresholds.Validate.
var ErrInvalidThresholds = pkgerrors.New("invalid notification thresholds")

// Thresholds holds the user-configurable notification settings.
type Thresholds struct {
	WarningLevel      int  `json:"warningLevel"`
	CriticalLevel     int  `json:"criticalLevel"`
	AlertEveryTick    bool `json:"alertEveryTick"`
	WarningEnabled    bool `json:"warningEnabled"`
	FullNotifyEnabled bool `json:"fullNotifyEnabled"`
}

// DefaultThresholds returns the out-of-the-box settings.
func DefaultThresholds() Thresholds {
	return Thresholds{
		WarningLevel:      40,
		CriticalLevel:     20,
		AlertEveryTick:    false,
		WarningEnabled:    true,
		FullNotifyEnabled: true,
	}
}

// Validate checks that both levels are percentages and that the critical
// level is below the warning level. Classify does not call it: a
// misconfigured classifier still works, the critical check just always wins.
func (t Thresholds) Validate() error {
	if t.WarningLevel < 0 || t.WarningLevel > 100 {
		return pkgerrors.Wrapf(ErrInvalidThresholds, "warning level must be between 0 and 100, got %d", t.WarningLevel)
	}
	if t.CriticalLevel < 0 || t.CriticalLevel > 100 {
		return pkgerrors.Wrapf(ErrInvalidThresholds, "critical level must be between 0 and 100, got %d", t.CriticalLevel)
	}
	if t.CriticalLevel >= t.WarningLevel {
		return pkgerrors.Wrapf(ErrInvalidThresholds, "critical level (%d) must be lower than warning level (%d)", t.CriticalLevel, t.WarningLevel)
	}
	return nil
}
