// nav/config.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package nav

import (
	"io"
	"slices"

	"github.com/fmgs/lnav/util"
)

// SpeedLimit caps the calibrated airspeed below an altitude.
type SpeedLimit struct {
	BelowAltitude float32 `json:"below_altitude"`
	KCAS          float32 `json:"kcas"`
}

type Config struct {
	// Scales the computed turn radius used for hold geometry.
	TurnRadiusFactor float32 `json:"turn_radius_factor"`
	// Green dot (best lift/drag) speed, KCAS; 0 if unavailable.
	GreenDotSpeed float32 `json:"green_dot_speed,omitempty"`
	// ICAO holding speed schedule, sorted by altitude. Above the last
	// entry, MaxMach applies.
	SpeedLimits []SpeedLimit `json:"speed_limits,omitempty"`
	MaxMach     float32      `json:"max_mach"`
}

func DefaultConfig() Config {
	return Config{
		TurnRadiusFactor: 1.1,
		SpeedLimits: []SpeedLimit{
			{BelowAltitude: 14000, KCAS: 230},
			{BelowAltitude: 20000, KCAS: 240},
			{BelowAltitude: 34000, KCAS: 265},
		},
		MaxMach: 0.83,
	}
}

// LoadConfig reads a JSON configuration; fields that aren't specified
// keep their default values.
func LoadConfig(r io.Reader) (Config, error) {
	c := DefaultConfig()
	if err := util.UnmarshalJSON(r, &c); err != nil {
		return Config{}, err
	}
	return c, nil
}

func (c Config) Validate(e *util.ErrorLogger) {
	e.Push("config")
	defer e.Pop()

	if c.TurnRadiusFactor <= 0 {
		e.ErrorString("\"turn_radius_factor\" %.2f must be positive", c.TurnRadiusFactor)
	}
	if c.GreenDotSpeed < 0 {
		e.ErrorString("\"green_dot_speed\" %.0f must not be negative", c.GreenDotSpeed)
	}
	if c.MaxMach <= 0 || c.MaxMach >= 1 {
		e.ErrorString("\"max_mach\" %.2f must be between 0 and 1", c.MaxMach)
	}
	for i, sl := range c.SpeedLimits {
		if sl.KCAS <= 0 {
			e.ErrorString("speed limit %.0f below %.0f must be positive", sl.KCAS, sl.BelowAltitude)
		}
		if i > 0 && sl.BelowAltitude <= c.SpeedLimits[i-1].BelowAltitude {
			e.ErrorString("\"speed_limits\" must be sorted by increasing altitude")
		}
	}
}

// speedLimit returns the scheduled KCAS limit at alt and false if alt is
// above the schedule, in which case the Mach limit applies.
func (c Config) speedLimit(alt float32) (float32, bool) {
	idx := slices.IndexFunc(c.SpeedLimits, func(sl SpeedLimit) bool { return alt < sl.BelowAltitude })
	if idx == -1 {
		return 0, false
	}
	return c.SpeedLimits[idx].KCAS, true
}
