package client

import (
	"context"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/charlie0129/battnotify/pkg/config"
	"github.com/charlie0129/battnotify/pkg/daemon"
	"github.com/charlie0129/battnotify/pkg/events"
	"github.com/charlie0129/battnotify/pkg/health"
	"github.com/charlie0129/battnotify/pkg/monitor"
	"github.com/charlie0129/battnotify/pkg/notifier"
	"github.com/charlie0129/battnotify/pkg/notify"
	"github.com/charlie0129/battnotify/pkg/powerinfo"
)

type fakeBattery struct{}

func (fakeBattery) Info() (*powerinfo.Battery, error) {
	return &powerinfo.Battery{State: powerinfo.Charging, Percentage: 80, Source: notify.SourceAC}, nil
}

func (f fakeBattery) Read() (notify.Snapshot, error) {
	b, _ := f.Info()
	return b.Snapshot(), nil
}

type testDaemon struct {
	client *Client
	hub    *events.EventHub
	conf   *config.File
}

func startDaemon(t *testing.T) *testDaemon {
	t.Helper()

	// Unix socket paths are length-limited, t.TempDir can be too long on macOS.
	dir, err := os.MkdirTemp("", "bn")
	require.NoError(t, err)
	t.Cleanup(func() { _ = os.RemoveAll(dir) })
	sock := filepath.Join(dir, "d.sock")

	conf := config.NewFileFromConfig(nil, filepath.Join(dir, "conf.json"))
	hub := events.NewEventHub()
	mon := monitor.New(conf, fakeBattery{}, &notifier.LogNotifier{}, &health.MemoryStore{}, hub)

	l, err := net.Listen("unix", sock)
	require.NoError(t, err)
	srv := &http.Server{Handler: daemon.NewServer(conf, mon, fakeBattery{}, hub).Router()}
	go func() { _ = srv.Serve(l) }()
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	})

	return &testDaemon{client: NewClient(sock), hub: hub, conf: conf}
}

func TestDaemonNotRunning(t *testing.T) {
	c := NewClient(filepath.Join(t.TempDir(), "missing.sock"))
	_, err := c.GetVersion()
	assert.ErrorIs(t, err, ErrDaemonNotRunning)
}

func TestUnknownMethod(t *testing.T) {
	c := NewClient("/nonexistent")
	_, err := c.Send("PATCH", "/x", "")
	assert.Error(t, err)
}

func TestSettingsRoundTrip(t *testing.T) {
	d := startDaemon(t)
	c := d.client

	_, err := c.SetWarningLevel(50)
	require.NoError(t, err)
	_, err = c.SetCriticalLevel(10)
	require.NoError(t, err)
	_, err = c.SetAlertEveryTick(true)
	require.NoError(t, err)
	_, err = c.SetWarningNotify(false)
	require.NoError(t, err)
	_, err = c.SetFullNotify(false)
	require.NoError(t, err)
	_, err = c.SetSticky(true)
	require.NoError(t, err)

	th, err := c.GetThresholds()
	require.NoError(t, err)
	assert.Equal(t, notify.Thresholds{
		WarningLevel:      50,
		CriticalLevel:     10,
		AlertEveryTick:    true,
		WarningEnabled:    false,
		FullNotifyEnabled: false,
	}, *th)

	_, err = c.SetCriticalLevel(60)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "400")

	_, err = c.SetAlertTime(config.AlertTime{Enabled: true, Start: "09:00", End: "18:00"})
	require.NoError(t, err)

	conf, err := c.GetConfig()
	require.NoError(t, err)
	require.NotNil(t, conf.StickyNotifications)
	assert.True(t, *conf.StickyNotifications)
	require.NotNil(t, conf.AlertTimeStart)
	assert.Equal(t, "09:00", *conf.AlertTimeStart)
}

func TestReadAPIs(t *testing.T) {
	d := startDaemon(t)
	c := d.client

	v, err := c.GetVersion()
	require.NoError(t, err)
	assert.NotEmpty(t, v)

	bat, err := c.GetBatteryInfo()
	require.NoError(t, err)
	assert.Equal(t, 80, bat.Percentage)
	assert.Equal(t, notify.SourceAC, bat.Source)

	st, err := c.GetStatus()
	require.NoError(t, err)
	assert.Nil(t, st.Snapshot)

	h, err := c.GetHealth()
	require.NoError(t, err)
	assert.Equal(t, 100, h.HealthPercent)

	_, err = c.ResetHealth()
	require.NoError(t, err)

	_, err = c.Get("/no-such-route")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSubscribeEvents(t *testing.T) {
	d := startDaemon(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := d.client.SubscribeEvents(ctx)
	require.NoError(t, err)

	require.Eventually(t, func() bool { return d.hub.Subscribers() == 1 }, 5*time.Second, 10*time.Millisecond)
	d.hub.Publish(events.ChargeSession, events.ChargeSessionEvent{Started: true, Source: notify.SourceUSB, Percentage: 12})

	select {
	case ev := <-ch:
		assert.Equal(t, events.ChargeSession, ev.Name)
		payload, err := events.DecodeAs[events.ChargeSessionEvent](ev)
		require.NoError(t, err)
		assert.True(t, payload.Started)
		assert.Equal(t, notify.SourceUSB, payload.Source)
	case <-time.After(5 * time.Second):
		t.Fatal("no event received")
	}

	cancel()
	require.Eventually(t, func() bool {
		select {
		case _, ok := <-ch:
			return !ok
		default:
			return false
		}
	}, 5*time.Second, 10*time.Millisecond)
}

func TestReadEvents(t *testing.T) {
	stream := strings.Join([]string{
		": keep-alive",
		"event:notification.sent",
		`data:{"kind":"critical"}`,
		"",
		"event: health.cycle",
		"data: {\"cycles\":1,",
		"data: \"status\":\"excellent\"}",
		"",
		"",
	}, "\n")

	var got []events.Event
	err := readEvents(strings.NewReader(stream), func(ev events.Event) bool {
		got = append(got, ev)
		return true
	})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, events.NotificationSent, got[0].Name)
	assert.JSONEq(t, `{"kind":"critical"}`, string(got[0].Data))
	assert.Equal(t, events.HealthCycle, got[1].Name)

	payload, err := events.DecodeAs[events.HealthCycleEvent](got[1])
	require.NoError(t, err)
	assert.Equal(t, 1, payload.Cycles)
}
