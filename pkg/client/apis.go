package client

import (
	"encoding/json"
	"fmt"
	"strconv"

	pkgerrors "github.com/pkg/errors"

	"github.com/charlie0129/battnotify/pkg/config"
	"github.com/charlie0129/battnotify/pkg/health"
	"github.com/charlie0129/battnotify/pkg/monitor"
	"github.com/charlie0129/battnotify/pkg/notify"
	"github.com/charlie0129/battnotify/pkg/powerinfo"
)

func (c *Client) SetWarningLevel(l int) (string, error) {
	return c.Put("/warning-level", strconv.Itoa(l))
}

func (c *Client) SetCriticalLevel(l int) (string, error) {
	return c.Put("/critical-level", strconv.Itoa(l))
}

func (c *Client) SetAlertEveryTick(enabled bool) (string, error) {
	return c.Put("/alert-every-tick", strconv.FormatBool(enabled))
}

func (c *Client) SetWarningNotify(enabled bool) (string, error) {
	return c.Put("/warning-notify", strconv.FormatBool(enabled))
}

func (c *Client) SetFullNotify(enabled bool) (string, error) {
	return c.Put("/full-notify", strconv.FormatBool(enabled))
}

func (c *Client) SetSticky(enabled bool) (string, error) {
	return c.Put("/sticky", strconv.FormatBool(enabled))
}

func (c *Client) SetAlertTime(at config.AlertTime) (string, error) {
	payload, err := json.Marshal(at)
	if err != nil {
		return "", err
	}
	return c.Put("/alert-time", string(payload))
}

func (c *Client) GetThresholds() (*notify.Thresholds, error) {
	ret, err := c.Get("/thresholds")
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to get thresholds")
	}

	var t notify.Thresholds
	if err := json.Unmarshal([]byte(ret), &t); err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to unmarshal thresholds")
	}

	return &t, nil
}

func (c *Client) GetStatus() (*monitor.Status, error) {
	ret, err := c.Get("/status")
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to get status")
	}

	var st monitor.Status
	if err := json.Unmarshal([]byte(ret), &st); err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to unmarshal status")
	}

	return &st, nil
}

func (c *Client) GetBatteryInfo() (*powerinfo.Battery, error) {
	ret, err := c.Get("/battery-info")
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to get battery info")
	}

	var bat powerinfo.Battery
	if err := json.Unmarshal([]byte(ret), &bat); err != nil {
		return nil, fmt.Errorf("failed to unmarshal battery info: %w", err)
	}

	return &bat, nil
}

func (c *Client) GetHealth() (*health.Summary, error) {
	ret, err := c.Get("/health")
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to get battery health")
	}

	var summary health.Summary
	if err := json.Unmarshal([]byte(ret), &summary); err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to unmarshal battery health")
	}

	return &summary, nil
}

func (c *Client) ResetHealth() (string, error) {
	return c.Delete("/health")
}

func (c *Client) GetConfig() (*config.RawFileConfig, error) {
	ret, err := c.Get("/config")
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to get config")
	}

	var conf config.RawFileConfig
	if err := json.Unmarshal([]byte(ret), &conf); err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to unmarshal config")
	}

	return &conf, nil
}

func (c *Client) GetVersion() (string, error) {
	ret, err := c.Get("/version")
	if err != nil {
		return "", pkgerrors.Wrapf(err, "failed to get version")
	}

	var v string
	if err := json.Unmarshal([]byte(ret), &v); err != nil {
		return "", pkgerrors.Wrapf(err, "failed to unmarshal version")
	}
	return v, nil
}
