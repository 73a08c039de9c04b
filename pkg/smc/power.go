//go:build darwin

package smc

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/sirupsen/logrus"
)

// IsPluggedIn reports whether a power adapter is connected.
func (c *AppleSMC) IsPluggedIn() (bool, error) {
	b, err := c.Read(ACPowerKey)
	if err != nil {
		return false, err
	}
	if len(b) < 1 {
		return false, fmt.Errorf("incorrect data length %d<1", len(b))
	}

	ret := int8(b[0]) > 0
	logrus.Tracef("IsPluggedIn returned %t", ret)

	return ret, nil
}

// GetBatteryCharge returns the battery charge in percent.
func (c *AppleSMC) GetBatteryCharge() (int, error) {
	b, err := c.Read(BatteryChargeKey)
	if err != nil {
		return 0, err
	}
	if len(b) != 1 {
		return 0, fmt.Errorf("incorrect data length %d!=1", len(b))
	}

	return int(b[0]), nil
}

// GetBatteryTemperature returns the battery temperature in degrees Celsius.
// Apple Silicon machines report a little-endian float32, Intel machines a
// big-endian sp78 fixed point value.
func (c *AppleSMC) GetBatteryTemperature() (float64, error) {
	b, err := c.Read(BatteryTemperatureKey)
	if err != nil {
		return 0, err
	}

	switch len(b) {
	case 4:
		return decodeFloat(b), nil
	case 2:
		return decodeSP78(b), nil
	default:
		return 0, fmt.Errorf("incorrect data length %d", len(b))
	}
}

// decodeFloat decodes a 4-byte slice into a little-endian float32.
func decodeFloat(b []byte) float64 {
	if len(b) != 4 {
		return 0
	}
	return float64(math.Float32frombits(binary.LittleEndian.Uint32(b)))
}

// decodeSP78 decodes a signed 7.8 fixed point value.
func decodeSP78(b []byte) float64 {
	if len(b) != 2 {
		return 0
	}
	return float64(int16(binary.BigEndian.Uint16(b))) / 256
}
