package powerinfo

import (
	"github.com/distatus/battery"
	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/charlie0129/battnotify/pkg/notify"
	"github.com/charlie0129/battnotify/pkg/utils/units"
)

// ErrNoBattery is returned when the system reports no battery.
var ErrNoBattery = pkgerrors.New("no batteries found")

// Source produces battery readings.
type Source interface {
	Read() (notify.Snapshot, error)
}

// platform provides the readings distatus/battery does not expose.
type platform interface {
	// PluggedSource reports the connected power source. charging is the
	// battery state, used when the platform has nothing better.
	PluggedSource(charging bool) (notify.PluggedSource, error)
	// Details reports battery health and temperature, if known.
	Details() (notify.BatteryHealth, float64)
	Close() error
}

// SystemSource reads the first system battery.
type SystemSource struct {
	getAll   func() ([]*battery.Battery, error)
	platform platform
}

var _ Source = &SystemSource{}

// NewSystemSource returns a source backed by the OS battery APIs.
func NewSystemSource() *SystemSource {
	return &SystemSource{
		getAll:   battery.GetAll,
		platform: newPlatform(),
	}
}

// Info returns detailed information about the battery.
func (s *SystemSource) Info() (*Battery, error) {
	batteries, err := s.getAll()
	bat, err := firstUsable(batteries, err)
	if err != nil {
		return nil, err
	}

	info := &Battery{
		State:         stateFrom(bat.State),
		Percentage:    units.Percentage(bat.Current, bat.Full),
		Current:       bat.Current,
		Full:          bat.Full,
		Design:        bat.Design,
		ChargeRate:    bat.ChargeRate,
		Voltage:       bat.Voltage,
		DesignVoltage: bat.DesignVoltage,
	}
	if info.State == Discharging {
		info.ChargeRate = -info.ChargeRate
	}

	info.Source, err = s.platform.PluggedSource(info.Charging())
	if err != nil {
		logrus.WithError(err).Debug("failed to read power source, deriving it from battery state")
		info.Source = fallbackSource(info.Charging())
	}
	info.Health, info.TemperatureC = s.platform.Details()

	return info, nil
}

// firstUsable picks the first battery whose state and charge levels were
// read. Missing optional fields are logged and ignored.
func firstUsable(batteries []*battery.Battery, err error) (*battery.Battery, error) {
	var perBattery battery.Errors
	if err != nil {
		errs, ok := err.(battery.Errors)
		if !ok {
			return nil, pkgerrors.Wrap(err, "failed to get batteries")
		}
		perBattery = errs
	}

	for i, bat := range batteries {
		if bat == nil {
			continue
		}
		var batErr error
		if i < len(perBattery) {
			batErr = perBattery[i]
		}
		if batErr == nil {
			return bat, nil
		}

		partial, ok := asPartial(batErr)
		if !ok || partial.State != nil || partial.Current != nil || partial.Full != nil {
			logrus.WithError(batErr).WithField("battery", i).Debug("battery reading unusable")
			continue
		}
		logrus.WithFields(logrus.Fields{
			"battery": i,
			"missing": batErr.Error(),
		}).Debug("battery reading is partial, using it")
		return bat, nil
	}

	if err != nil {
		return nil, pkgerrors.Wrap(err, "failed to get batteries")
	}
	return nil, ErrNoBattery
}

func asPartial(err error) (battery.ErrPartial, bool) {
	switch e := err.(type) {
	case battery.ErrPartial:
		return e, true
	case *battery.ErrPartial:
		if e != nil {
			return *e, true
		}
	}
	return battery.ErrPartial{}, false
}

// Read implements Source.
func (s *SystemSource) Read() (notify.Snapshot, error) {
	info, err := s.Info()
	if err != nil {
		return notify.Snapshot{}, err
	}
	return info.Snapshot(), nil
}

// Close releases platform resources.
func (s *SystemSource) Close() error {
	return s.platform.Close()
}

func fallbackSource(charging bool) notify.PluggedSource {
	if charging {
		return notify.SourceOther
	}
	return notify.SourceNone
}

// fallbackPlatform knows nothing beyond the battery state.
type fallbackPlatform struct{}

func (fallbackPlatform) PluggedSource(charging bool) (notify.PluggedSource, error) {
	return fallbackSource(charging), nil
}

func (fallbackPlatform) Details() (notify.BatteryHealth, float64) {
	return notify.HealthUnknown, 0
}

func (fallbackPlatform) Close() error { return nil }
