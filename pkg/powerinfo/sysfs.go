package powerinfo

import (
	"bufio"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	pkgerrors "github.com/pkg/errors"

	"github.com/charlie0129/battnotify/pkg/notify"
)

const sysfsPowerSupply = "/sys/class/power_supply"

// sysfsPlatform reads the linux power_supply class.
type sysfsPlatform struct {
	root string
}

func (p *sysfsPlatform) supplies() ([]string, error) {
	entries, err := os.ReadDir(p.root)
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to list %s", p.root)
	}

	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names, nil
}

func (p *sysfsPlatform) attr(supply, name string) string {
	b, err := os.ReadFile(filepath.Join(p.root, supply, name))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(b))
}

func sourceForType(typ string) (notify.PluggedSource, bool) {
	switch {
	case typ == "Battery":
		return notify.SourceNone, false
	case typ == "Mains":
		return notify.SourceAC, true
	case strings.HasPrefix(typ, "USB"):
		return notify.SourceUSB, true
	case typ == "Wireless":
		return notify.SourceWireless, true
	default:
		return notify.SourceOther, true
	}
}

func (p *sysfsPlatform) PluggedSource(charging bool) (notify.PluggedSource, error) {
	supplies, err := p.supplies()
	if err != nil {
		return notify.SourceNone, err
	}

	for _, supply := range supplies {
		src, ok := sourceForType(p.attr(supply, "type"))
		if !ok {
			continue
		}
		if p.attr(supply, "online") == "1" {
			return src, nil
		}
	}

	// Some chargers never show up as an online supply.
	return fallbackSource(charging), nil
}

func (p *sysfsPlatform) Details() (notify.BatteryHealth, float64) {
	supplies, err := p.supplies()
	if err != nil {
		return notify.HealthUnknown, 0
	}

	for _, supply := range supplies {
		if p.attr(supply, "type") != "Battery" {
			continue
		}
		props, err := readUevent(filepath.Join(p.root, supply, "uevent"))
		if err != nil {
			continue
		}

		health := notify.ParseBatteryHealth(props["POWER_SUPPLY_HEALTH"])
		var temp float64
		if raw, ok := props["POWER_SUPPLY_TEMP"]; ok {
			if tenths, err := strconv.Atoi(raw); err == nil {
				temp = float64(tenths) / 10
			}
		}
		return health, temp
	}

	return notify.HealthUnknown, 0
}

func (p *sysfsPlatform) Close() error { return nil }

// readUevent parses a KEY=VALUE uevent file.
func readUevent(path string) (map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	props := map[string]string{}
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		k, v, ok := strings.Cut(scanner.Text(), "=")
		if !ok {
			continue
		}
		props[k] = v
	}
	return props, scanner.Err()
}
