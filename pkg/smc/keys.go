//go:build darwin

package smc

// SMC keys read by battnotify.
const (
	ACPowerKey            = "AC-W"
	BatteryChargeKey      = "BUIC"
	BatteryTemperatureKey = "TB0T"
)
