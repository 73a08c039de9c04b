package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/charlie0129/battnotify/pkg/events"
)

func formatEvent(ev events.Event) string {
	switch ev.Name {
	case events.NotificationSent:
		p, err := events.DecodeAs[events.NotificationEvent](ev)
		if err == nil {
			return fmt.Sprintf("%s %s: %s", timestamp(p.Ts), bold("%s", p.Title), p.Content)
		}
	case events.NotificationCleared:
		p, err := events.DecodeAs[events.NotificationEvent](ev)
		if err == nil {
			return fmt.Sprintf("%s notification cleared", timestamp(p.Ts))
		}
	case events.ChargeSession:
		p, err := events.DecodeAs[events.ChargeSessionEvent](ev)
		if err == nil {
			if !p.Started {
				return fmt.Sprintf("%s charger disconnected at %d%%", timestamp(p.Ts), p.Percentage)
			}
			healthy := ""
			if p.Healthy {
				healthy = " (healthy charge)"
			}
			return fmt.Sprintf("%s charging from %s at %d%%%s", timestamp(p.Ts), p.Source, p.Percentage, healthy)
		}
	case events.HealthCycle:
		p, err := events.DecodeAs[events.HealthCycleEvent](ev)
		if err == nil {
			return fmt.Sprintf("%s charge cycle %s, %d cycles, health %d%% (%s)", timestamp(p.Ts), p.Transition, p.Cycles, p.HealthPercent, p.Status)
		}
	}
	return fmt.Sprintf("%s %s", ev.Name, string(ev.Data))
}

func timestamp(ts int64) string {
	return time.Unix(ts, 0).Format(time.Kitchen)
}

func NewEventsCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "events",
		Short:   "Follow notifications and battery events from the daemon",
		GroupID: gAdvanced,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			ch, err := apiClient.SubscribeEvents(ctx)
			if err != nil {
				return fmt.Errorf("failed to subscribe to events: %w", err)
			}

			for ev := range ch {
				cmd.Println(formatEvent(ev))
			}

			return nil
		},
	}
}
