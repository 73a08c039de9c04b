package events

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/charlie0129/battnotify/pkg/notify"
)

func TestHubPublishSubscribe(t *testing.T) {
	h := NewEventHub()
	ch := h.Subscribe()
	assert.Equal(t, 1, h.Subscribers())

	h.Publish(NotificationSent, NotificationEvent{Kind: notify.KindCritical, Percentage: 12, Threshold: 20})

	ev := <-ch
	assert.Equal(t, NotificationSent, ev.Name)
	payload, err := DecodeAs[NotificationEvent](ev)
	require.NoError(t, err)
	assert.Equal(t, notify.KindCritical, payload.Kind)
	assert.Equal(t, 12, payload.Percentage)

	h.Unsubscribe(ch)
	_, open := <-ch
	assert.False(t, open)
	assert.Equal(t, 0, h.Subscribers())

	// Unsubscribing twice is a no-op.
	h.Unsubscribe(ch)
}

func TestHubDropsForSlowSubscribers(t *testing.T) {
	h := NewEventHub()
	ch := h.Subscribe()
	for i := 0; i < 100; i++ {
		h.Publish(ChargeSession, ChargeSessionEvent{Started: true, Percentage: i})
	}
	assert.Len(t, ch, cap(ch))
}

func TestNilHubPublish(t *testing.T) {
	var h *EventHub
	h.Publish(HealthCycle, HealthCycleEvent{})
}

func TestDecodeAsEmpty(t *testing.T) {
	got, err := DecodeAs[HealthCycleEvent](Event{Name: HealthCycle})
	require.NoError(t, err)
	assert.Equal(t, HealthCycleEvent{}, got)
}

func TestHubReplaysLatest(t *testing.T) {
	h := NewEventHub()
	h.Publish(HealthCycle, HealthCycleEvent{Cycles: 1})
	h.Publish(ChargeSession, ChargeSessionEvent{Percentage: 10})
	h.Publish(HealthCycle, HealthCycleEvent{Cycles: 2})

	latest := h.Latest()
	require.Len(t, latest, 2)
	assert.Equal(t, ChargeSession, latest[0].Name)
	assert.Equal(t, HealthCycle, latest[1].Name)

	ch := h.Subscribe()
	defer h.Unsubscribe(ch)
	require.Len(t, ch, 2)

	first := <-ch
	assert.Equal(t, ChargeSession, first.Name)
	second := <-ch
	payload, err := DecodeAs[HealthCycleEvent](second)
	require.NoError(t, err)
	assert.Equal(t, 2, payload.Cycles)
}
