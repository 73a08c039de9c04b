//go:build darwin

package smc

import (
	"encoding/binary"
	"math"
	"testing"
)

func TestIsPluggedIn(t *testing.T) {
	tests := []struct {
		name string
		val  []byte
		want bool
	}{
		{"plugged", []byte{0x1}, true},
		{"unplugged", []byte{0x0}, false},
		{"negative", []byte{0xff}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewMock(map[string][]byte{ACPowerKey: tt.val})
			got, err := c.IsPluggedIn()
			if err != nil {
				t.Fatalf("IsPluggedIn() error = %v", err)
			}
			if got != tt.want {
				t.Fatalf("IsPluggedIn() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGetBatteryCharge(t *testing.T) {
	c := NewMock(map[string][]byte{BatteryChargeKey: {73}})
	got, err := c.GetBatteryCharge()
	if err != nil {
		t.Fatalf("GetBatteryCharge() error = %v", err)
	}
	if got != 73 {
		t.Fatalf("GetBatteryCharge() = %d, want 73", got)
	}
}

func TestGetBatteryTemperature(t *testing.T) {
	f := make([]byte, 4)
	binary.LittleEndian.PutUint32(f, math.Float32bits(31.5))

	tests := []struct {
		name string
		val  []byte
		want float64
	}{
		{"float", f, 31.5},
		{"sp78", []byte{0x1e, 0x80}, 30.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewMock(map[string][]byte{BatteryTemperatureKey: tt.val})
			got, err := c.GetBatteryTemperature()
			if err != nil {
				t.Fatalf("GetBatteryTemperature() error = %v", err)
			}
			if got != tt.want {
				t.Fatalf("GetBatteryTemperature() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestReadMissingKey(t *testing.T) {
	c := NewMock(nil)
	if _, err := c.GetBatteryCharge(); err == nil {
		t.Fatal("GetBatteryCharge() on an empty SMC should fail")
	}
	if err := c.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	// Closing twice is a no-op.
	if err := c.Close(); err != nil {
		t.Fatalf("second Close() error = %v", err)
	}
}
