package config

import (
	"time"

	"github.com/sirupsen/logrus"

	"github.com/charlie0129/battnotify/pkg/notify"
)

type Config interface {
	WarningLevel() int
	CriticalLevel() int
	AlertEveryTick() bool
	WarningEnabled() bool
	FullNotifyEnabled() bool
	StickyNotifications() bool
	// LimitAlertTime restricts audible alerts to AlertTimeStart..AlertTimeEnd.
	LimitAlertTime() bool
	AlertTimeStart() string
	AlertTimeEnd() string
	PollInterval() time.Duration
	AllowNonRootAccess() bool
	DesktopNotifications() bool

	// Thresholds projects the notification settings for the classifier.
	Thresholds() notify.Thresholds

	SetWarningLevel(int)
	SetCriticalLevel(int)
	SetAlertEveryTick(bool)
	SetWarningEnabled(bool)
	SetFullNotifyEnabled(bool)
	SetStickyNotifications(bool)
	SetAlertTime(limit bool, start, end string)
	SetAllowNonRootAccess(bool)
	SetDesktopNotifications(bool)

	LogrusFields() logrus.Fields

	// Load reads the configuration from the source.
	Load() error
	// Save saves the configuration to the source.
	Save() error
}

// AlertTime is the payload of the alert time setting.
type AlertTime struct {
	Enabled bool   `json:"enabled"`
	Start   string `json:"start"`
	End     string `json:"end"`
}
