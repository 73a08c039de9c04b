package config

import (
	"encoding/json"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/charlie0129/battnotify/pkg/notify"
	"github.com/charlie0129/battnotify/pkg/utils/ptr"
)

var (
	defaultFileConfig = &RawFileConfig{
		WarningLevel:         ptr.To(40),
		CriticalLevel:        ptr.To(20),
		AlertEveryTick:       ptr.To(false),
		WarningEnabled:       ptr.To(true),
		FullNotifyEnabled:    ptr.To(true),
		StickyNotifications:  ptr.To(false),
		LimitAlertTime:       ptr.To(false),
		AlertTimeStart:       ptr.To("08:00"),
		AlertTimeEnd:         ptr.To("22:00"),
		PollIntervalSeconds:  ptr.To(10),
		AllowNonRootAccess:   ptr.To(false),
		DesktopNotifications: ptr.To(true),
	}
)

var _ Config = &File{}

type File struct {
	c        *RawFileConfig
	mu       *sync.RWMutex
	filepath string
}

func NewFile(configPath string) (*File, error) {
	f := &File{
		filepath: configPath,
		mu:       &sync.RWMutex{},
	}
	err := f.Load()
	if err != nil {
		return nil, err
	}

	return f, nil
}

// NewFileFromConfig wraps an existing raw config. A nil c uses an empty
// config, so every value falls back to its default.
func NewFileFromConfig(c *RawFileConfig, configPath string) *File {
	if c == nil {
		c = &RawFileConfig{}
	}

	return &File{
		c:        c,
		mu:       &sync.RWMutex{},
		filepath: configPath,
	}
}

type RawFileConfig struct {
	WarningLevel         *int    `json:"warningLevel,omitempty"`
	CriticalLevel        *int    `json:"criticalLevel,omitempty"`
	AlertEveryTick       *bool   `json:"alertEveryTick,omitempty"`
	WarningEnabled       *bool   `json:"warningEnabled,omitempty"`
	FullNotifyEnabled    *bool   `json:"fullNotifyEnabled,omitempty"`
	StickyNotifications  *bool   `json:"stickyNotifications,omitempty"`
	LimitAlertTime       *bool   `json:"limitAlertTime,omitempty"`
	AlertTimeStart       *string `json:"alertTimeStart,omitempty"`
	AlertTimeEnd         *string `json:"alertTimeEnd,omitempty"`
	PollIntervalSeconds  *int    `json:"pollIntervalSeconds,omitempty"`
	AllowNonRootAccess   *bool   `json:"allowNonRootAccess,omitempty"`
	DesktopNotifications *bool   `json:"desktopNotifications,omitempty"`
}

func NewRawFileConfigFromConfig(c Config) (*RawFileConfig, error) {
	if c == nil {
		return nil, pkgerrors.New("config is nil")
	}

	return &RawFileConfig{
		WarningLevel:         ptr.To(c.WarningLevel()),
		CriticalLevel:        ptr.To(c.CriticalLevel()),
		AlertEveryTick:       ptr.To(c.AlertEveryTick()),
		WarningEnabled:       ptr.To(c.WarningEnabled()),
		FullNotifyEnabled:    ptr.To(c.FullNotifyEnabled()),
		StickyNotifications:  ptr.To(c.StickyNotifications()),
		LimitAlertTime:       ptr.To(c.LimitAlertTime()),
		AlertTimeStart:       ptr.To(c.AlertTimeStart()),
		AlertTimeEnd:         ptr.To(c.AlertTimeEnd()),
		PollIntervalSeconds:  ptr.To(int(c.PollInterval() / time.Second)),
		AllowNonRootAccess:   ptr.To(c.AllowNonRootAccess()),
		DesktopNotifications: ptr.To(c.DesktopNotifications()),
	}, nil
}

// read returns the field selected by get, or its default when unset.
func read[T any](f *File, get func(*RawFileConfig) *T) T {
	if f.c == nil {
		panic("config is nil")
	}

	f.mu.RLock()
	defer f.mu.RUnlock()

	if v := get(f.c); v != nil {
		return *v
	}
	return *get(defaultFileConfig)
}

func write[T any](f *File, set func(*RawFileConfig, *T), v T) {
	if f.c == nil {
		panic("config is nil")
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	set(f.c, &v)
}

func (f *File) WarningLevel() int {
	return read(f, func(c *RawFileConfig) *int { return c.WarningLevel })
}

func (f *File) CriticalLevel() int {
	return read(f, func(c *RawFileConfig) *int { return c.CriticalLevel })
}

func (f *File) AlertEveryTick() bool {
	return read(f, func(c *RawFileConfig) *bool { return c.AlertEveryTick })
}

func (f *File) WarningEnabled() bool {
	return read(f, func(c *RawFileConfig) *bool { return c.WarningEnabled })
}

func (f *File) FullNotifyEnabled() bool {
	return read(f, func(c *RawFileConfig) *bool { return c.FullNotifyEnabled })
}

func (f *File) StickyNotifications() bool {
	return read(f, func(c *RawFileConfig) *bool { return c.StickyNotifications })
}

func (f *File) LimitAlertTime() bool {
	return read(f, func(c *RawFileConfig) *bool { return c.LimitAlertTime })
}

func (f *File) AlertTimeStart() string {
	return read(f, func(c *RawFileConfig) *string { return c.AlertTimeStart })
}

func (f *File) AlertTimeEnd() string {
	return read(f, func(c *RawFileConfig) *string { return c.AlertTimeEnd })
}

// PollInterval is never shorter than one second.
func (f *File) PollInterval() time.Duration {
	secs := read(f, func(c *RawFileConfig) *int { return c.PollIntervalSeconds })
	if secs < 1 {
		secs = 1
	}
	return time.Duration(secs) * time.Second
}

func (f *File) AllowNonRootAccess() bool {
	return read(f, func(c *RawFileConfig) *bool { return c.AllowNonRootAccess })
}

func (f *File) DesktopNotifications() bool {
	return read(f, func(c *RawFileConfig) *bool { return c.DesktopNotifications })
}

func (f *File) Thresholds() notify.Thresholds {
	return notify.Thresholds{
		WarningLevel:      f.WarningLevel(),
		CriticalLevel:     f.CriticalLevel(),
		AlertEveryTick:    f.AlertEveryTick(),
		WarningEnabled:    f.WarningEnabled(),
		FullNotifyEnabled: f.FullNotifyEnabled(),
	}
}

// SetWarningLevel does not check the level against the critical level.
// Callers validate at the settings boundary.
func (f *File) SetWarningLevel(i int) {
	write(f, func(c *RawFileConfig, v *int) { c.WarningLevel = v }, i)
}

func (f *File) SetCriticalLevel(i int) {
	write(f, func(c *RawFileConfig, v *int) { c.CriticalLevel = v }, i)
}

func (f *File) SetAlertEveryTick(b bool) {
	write(f, func(c *RawFileConfig, v *bool) { c.AlertEveryTick = v }, b)
}

func (f *File) SetWarningEnabled(b bool) {
	write(f, func(c *RawFileConfig, v *bool) { c.WarningEnabled = v }, b)
}

func (f *File) SetFullNotifyEnabled(b bool) {
	write(f, func(c *RawFileConfig, v *bool) { c.FullNotifyEnabled = v }, b)
}

func (f *File) SetStickyNotifications(b bool) {
	write(f, func(c *RawFileConfig, v *bool) { c.StickyNotifications = v }, b)
}

func (f *File) SetAlertTime(limit bool, start, end string) {
	if f.c == nil {
		panic("config is nil")
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	f.c.LimitAlertTime = &limit
	if start != "" {
		f.c.AlertTimeStart = &start
	}
	if end != "" {
		f.c.AlertTimeEnd = &end
	}
}

func (f *File) SetAllowNonRootAccess(b bool) {
	write(f, func(c *RawFileConfig, v *bool) { c.AllowNonRootAccess = v }, b)
}

func (f *File) SetDesktopNotifications(b bool) {
	write(f, func(c *RawFileConfig, v *bool) { c.DesktopNotifications = v }, b)
}

func (f *File) Load() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	fp, err := os.Open(f.filepath)
	if err != nil {
		if os.IsNotExist(err) {
			// If the file does not exist, return the empty config.
			// Do not make f.c a nil.
			f.c = &RawFileConfig{}
			return nil
		}
		return pkgerrors.Wrapf(err, "failed to open file %s", f.filepath)
	}
	defer func(fp *os.File) {
		err := fp.Close()
		if err != nil {
			logrus.Warnf("failed to close file %s", f.filepath)
		}
	}(fp)

	// Since we want to tell if the file is empty, using json.Decoder will
	// not work.
	b, err := io.ReadAll(fp)
	if err != nil {
		return pkgerrors.Wrapf(err, "failed to read file %s", f.filepath)
	}

	if strings.TrimSpace(string(b)) == "" {
		f.c = &RawFileConfig{}
		return nil
	}

	conf := RawFileConfig{}
	err = json.Unmarshal(b, &conf)
	if err != nil {
		return pkgerrors.Wrapf(err, "failed to unmarshal config from file %s", f.filepath)
	}
	f.c = &conf

	return nil
}

func (f *File) Save() error {
	f.mu.RLock()
	defer f.mu.RUnlock()

	if f.c == nil {
		return pkgerrors.New("config is nil")
	}

	fp, err := os.OpenFile(f.filepath, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return pkgerrors.Wrapf(err, "failed to open file %s", f.filepath)
	}
	defer func(fp *os.File) {
		err := fp.Close()
		if err != nil {
			logrus.Warnf("failed to close file %s", f.filepath)
		}
	}(fp)

	enc := json.NewEncoder(fp)
	enc.SetIndent("", "  ")
	err = enc.Encode(f.c)
	if err != nil {
		return pkgerrors.Wrapf(err, "failed to encode config to file %s", f.filepath)
	}

	return nil
}

func (f *File) LogrusFields() logrus.Fields {
	if f.c == nil {
		panic("config is nil")
	}

	return logrus.Fields{
		"warningLevel":         f.WarningLevel(),
		"criticalLevel":        f.CriticalLevel(),
		"alertEveryTick":       f.AlertEveryTick(),
		"warningEnabled":       f.WarningEnabled(),
		"fullNotifyEnabled":    f.FullNotifyEnabled(),
		"stickyNotifications":  f.StickyNotifications(),
		"limitAlertTime":       f.LimitAlertTime(),
		"alertTime":            f.AlertTimeStart() + "-" + f.AlertTimeEnd(),
		"pollInterval":         f.PollInterval().String(),
		"allowNonRootAccess":   f.AllowNonRootAccess(),
		"desktopNotifications": f.DesktopNotifications(),
	}
}
