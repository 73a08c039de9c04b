package powerinfo

import (
	"github.com/sirupsen/logrus"

	"github.com/charlie0129/battnotify/pkg/notify"
	"github.com/charlie0129/battnotify/pkg/smc"
)

// smcPlatform reads the adapter state and battery temperature from the SMC.
type smcPlatform struct {
	conn *smc.AppleSMC
}

func newPlatform() platform {
	return &smcPlatform{conn: smc.New()}
}

func (p *smcPlatform) PluggedSource(_ bool) (notify.PluggedSource, error) {
	plugged, err := p.conn.IsPluggedIn()
	if err != nil {
		return notify.SourceNone, err
	}
	if plugged {
		return notify.SourceAC, nil
	}
	return notify.SourceNone, nil
}

// Details reports the SMC temperature. The SMC has no health flag.
func (p *smcPlatform) Details() (notify.BatteryHealth, float64) {
	temp, err := p.conn.GetBatteryTemperature()
	if err != nil {
		logrus.WithError(err).Trace("failed to read battery temperature")
		return notify.HealthUnknown, 0
	}
	return notify.HealthUnknown, temp
}

func (p *smcPlatform) Close() error {
	return p.conn.Close()
}
