package powerinfo

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/distatus/battery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/charlie0129/battnotify/pkg/notify"
)

type fakePlatform struct {
	source notify.PluggedSource
	err    error
	health notify.BatteryHealth
	temp   float64
}

func (f *fakePlatform) PluggedSource(bool) (notify.PluggedSource, error) { return f.source, f.err }
func (f *fakePlatform) Details() (notify.BatteryHealth, float64)         { return f.health, f.temp }
func (f *fakePlatform) Close() error                                     { return nil }

func newTestSource(bats []*battery.Battery, err error, p platform) *SystemSource {
	return &SystemSource{
		getAll:   func() ([]*battery.Battery, error) { return bats, err },
		platform: p,
	}
}

func TestSystemSourceRead(t *testing.T) {
	tests := []struct {
		name     string
		bat      battery.Battery
		platform *fakePlatform
		want     notify.Snapshot
	}{
		{
			name:     "discharging",
			bat:      battery.Battery{State: battery.Discharging, Current: 30000, Full: 60000},
			platform: &fakePlatform{source: notify.SourceNone, health: notify.HealthGood, temp: 30.5},
			want:     notify.Snapshot{Percentage: 50, Source: notify.SourceNone, Health: notify.HealthGood, TemperatureC: 30.5},
		},
		{
			name:     "charging",
			bat:      battery.Battery{State: battery.Charging, Current: 59000, Full: 60000},
			platform: &fakePlatform{source: notify.SourceUSB},
			want:     notify.Snapshot{Percentage: 98, Charging: true, Source: notify.SourceUSB},
		},
		{
			name:     "full",
			bat:      battery.Battery{State: battery.Full, Current: 60000, Full: 60000},
			platform: &fakePlatform{source: notify.SourceAC},
			want:     notify.Snapshot{Percentage: 100, Charging: true, Full: true, Source: notify.SourceAC},
		},
		{
			name:     "platform error falls back to state",
			bat:      battery.Battery{State: battery.Charging, Current: 10000, Full: 60000},
			platform: &fakePlatform{err: errors.New("no smc")},
			want:     notify.Snapshot{Percentage: 17, Charging: true, Source: notify.SourceOther},
		},
		{
			name:     "zero full capacity",
			bat:      battery.Battery{State: battery.Unknown},
			platform: &fakePlatform{},
			want:     notify.Snapshot{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bat := tt.bat
			s := newTestSource([]*battery.Battery{&bat}, nil, tt.platform)
			got, err := s.Read()
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSystemSourceInfo(t *testing.T) {
	bat := &battery.Battery{State: battery.Discharging, Current: 20000, Full: 40000, Design: 50000, ChargeRate: 5000, Voltage: 12.1, DesignVoltage: 11.4}
	s := newTestSource([]*battery.Battery{bat}, nil, &fakePlatform{})

	info, err := s.Info()
	require.NoError(t, err)
	assert.Equal(t, Discharging, info.State)
	assert.Equal(t, 50, info.Percentage)
	assert.Equal(t, -5000.0, info.ChargeRate)
	assert.Equal(t, 50000.0, info.Design)
	assert.False(t, info.Charging())
}

func TestSystemSourceErrors(t *testing.T) {
	_, err := newTestSource(nil, nil, &fakePlatform{}).Read()
	assert.ErrorIs(t, err, ErrNoBattery)

	boom := errors.New("boom")
	_, err = newTestSource(nil, boom, &fakePlatform{}).Read()
	assert.ErrorIs(t, err, boom)

	_, err = newTestSource(nil, battery.ErrFatal{Err: boom}, &fakePlatform{}).Read()
	assert.Error(t, err)
}

func TestSystemSourcePartialReadings(t *testing.T) {
	missing := errors.New("no such file")
	charging := &battery.Battery{State: battery.Charging, Current: 50, Full: 100}

	tests := []struct {
		name    string
		bats    []*battery.Battery
		err     error
		want    notify.Snapshot
		wantErr bool
	}{
		{
			name: "optional fields missing",
			bats: []*battery.Battery{charging},
			err:  battery.Errors{battery.ErrPartial{DesignVoltage: missing, ChargeRate: missing}},
			want: notify.Snapshot{Percentage: 50, Charging: true, Source: notify.SourceOther},
		},
		{
			name:    "charge level missing",
			bats:    []*battery.Battery{charging},
			err:     battery.Errors{battery.ErrPartial{Current: missing}},
			wantErr: true,
		},
		{
			name:    "state missing",
			bats:    []*battery.Battery{charging},
			err:     battery.Errors{battery.ErrPartial{State: missing}},
			wantErr: true,
		},
		{
			name:    "fatal battery",
			bats:    []*battery.Battery{nil},
			err:     battery.Errors{battery.ErrFatal{Err: missing}},
			wantErr: true,
		},
		{
			name: "first battery fatal, second usable",
			bats: []*battery.Battery{nil, charging},
			err:  battery.Errors{battery.ErrFatal{Err: missing}, nil},
			want: notify.Snapshot{Percentage: 50, Charging: true, Source: notify.SourceOther},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := newTestSource(tt.bats, tt.err, fallbackPlatform{}).Read()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func writeSupply(t *testing.T, root, name string, files map[string]string) {
	t.Helper()
	dir := filepath.Join(root, name)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	for k, v := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, k), []byte(v), 0o644))
	}
}

func TestSysfsPluggedSource(t *testing.T) {
	tests := []struct {
		name     string
		supplies map[string]map[string]string
		charging bool
		want     notify.PluggedSource
	}{
		{
			name: "mains online",
			supplies: map[string]map[string]string{
				"BAT0": {"type": "Battery\n"},
				"AC":   {"type": "Mains\n", "online": "1\n"},
			},
			want: notify.SourceAC,
		},
		{
			name: "usb pd online",
			supplies: map[string]map[string]string{
				"ucsi-source-psy-1": {"type": "USB_PD\n", "online": "1\n"},
			},
			want: notify.SourceUSB,
		},
		{
			name: "wireless online",
			supplies: map[string]map[string]string{
				"wls": {"type": "Wireless\n", "online": "1\n"},
			},
			want: notify.SourceWireless,
		},
		{
			name: "nothing online",
			supplies: map[string]map[string]string{
				"AC": {"type": "Mains\n", "online": "0\n"},
			},
			want: notify.SourceNone,
		},
		{
			name: "charging without an online supply",
			supplies: map[string]map[string]string{
				"BAT0": {"type": "Battery\n"},
			},
			charging: true,
			want:     notify.SourceOther,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := t.TempDir()
			for name, files := range tt.supplies {
				writeSupply(t, root, name, files)
			}
			p := &sysfsPlatform{root: root}
			got, err := p.PluggedSource(tt.charging)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSysfsMissingRoot(t *testing.T) {
	p := &sysfsPlatform{root: filepath.Join(t.TempDir(), "missing")}
	_, err := p.PluggedSource(false)
	assert.Error(t, err)

	health, temp := p.Details()
	assert.Equal(t, notify.HealthUnknown, health)
	assert.Zero(t, temp)
}

func TestSysfsDetails(t *testing.T) {
	root := t.TempDir()
	writeSupply(t, root, "AC", map[string]string{"type": "Mains\n", "online": "1\n"})
	writeSupply(t, root, "BAT0", map[string]string{
		"type":   "Battery\n",
		"uevent": "POWER_SUPPLY_NAME=BAT0\nPOWER_SUPPLY_HEALTH=Overheat\nPOWER_SUPPLY_TEMP=415\n",
	})

	p := &sysfsPlatform{root: root}
	health, temp := p.Details()
	assert.Equal(t, notify.HealthWarning, health)
	assert.InDelta(t, 41.5, temp, 0.001)
}
