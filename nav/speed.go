// nav/speed.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package nav

import (
	av "github.com/fmgs/lnav/aviation"
	"github.com/fmgs/lnav/util"
)

const (
	// Used as the holding KCAS when no green dot speed is available and as
	// the predicted TAS when the altitude is unknown. This is a known
	// approximation until vertical guidance can provide a real speed.
	PlaceholderHoldSpeed = 220

	// Hold timing: legs are 1 minute below this altitude and 1.5 minutes
	// at or above it.
	HoldTimingAltitude = 14000
)

// holdAltitude returns the altitude used for hold speed and timing: the
// altitude coded for the leg if there is one and otherwise the aircraft's
// current altitude.
func holdAltitude(hold av.Hold, fs FlightState) (float32, bool) {
	if alt, ok := hold.Altitude.LegAltitude(); ok {
		return alt, true
	}
	if fs.IndicatedAltitude != nil {
		return *fs.IndicatedAltitude, true
	}
	return 0, false
}

// HoldKCAS returns the calibrated airspeed to fly the hold at alt: green
// dot speed, reduced to the leg speed constraint and the holding speed
// schedule.
func HoldKCAS(cfg Config, hold av.Hold, alt float32) float32 {
	kcas := float32(PlaceholderHoldSpeed)
	if cfg.GreenDotSpeed > 0 {
		kcas = cfg.GreenDotSpeed
	}
	if hold.SpeedConstraint > 100 {
		kcas = min(kcas, hold.SpeedConstraint)
	}

	if limit, ok := cfg.speedLimit(alt); ok {
		kcas = min(kcas, limit)
	} else {
		kcas = min(kcas, av.MachToCAS(cfg.MaxMach, av.ISAPressure(alt)))
	}
	return kcas
}

// TargetSpeed returns the true airspeed the hold is predicted to be flown
// at, assuming a standard atmosphere. If no altitude is available, the
// placeholder speed is returned along with false.
func TargetSpeed(cfg Config, hold av.Hold, fs FlightState) (float32, bool) {
	alt, ok := holdAltitude(hold, fs)
	if !ok {
		return PlaceholderHoldSpeed, false
	}
	kcas := HoldKCAS(cfg, hold, alt)
	return av.CASToTAS(kcas, av.ISATemperature(alt), av.ISAPressure(alt)), true
}

// DefaultHoldMinutes returns the standard outbound leg time at alt.
func DefaultHoldMinutes(alt float32) float32 {
	return util.Select[float32](alt < HoldTimingAltitude, 1, 1.5)
}

// LegDistance returns the length of the hold's straight legs in nm,
// given either a distance or a time and the speed it is flown at. With
// neither specified, the standard timing for the altitude is used; alt
// may be nil if unknown, in which case the longer timing is assumed.
func LegDistance(legNM, legMinutes, tas float32, alt *float32) float32 {
	if legNM > 0 {
		return legNM
	}
	if legMinutes <= 0 {
		legMinutes = 1.5
		if alt != nil {
			legMinutes = DefaultHoldMinutes(*alt)
		}
	}
	return legMinutes * tas / 60
}
