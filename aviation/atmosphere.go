// aviation/atmosphere.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package aviation

import (
	gomath "math"
)

// International Standard Atmosphere constants
const (
	ISASeaLevelTemperature = 288.15  // K
	ISASeaLevelPressure    = 1013.25 // hPa
	ISALapseRate           = 0.0019812
	ISATropopause          = 36089    // ft
	ISASpeedOfSound        = 661.4786 // kt at sea level
	isaPressureExponent    = 5.25588
	isaStratosphereScale   = 20806 // ft, pressure scale height above the tropopause
)

// ISATemperature returns the standard temperature in kelvin at the given
// pressure altitude in feet.
func ISATemperature(alt float32) float32 {
	alt = min(alt, ISATropopause)
	return ISASeaLevelTemperature - ISALapseRate*alt
}

// ISAPressure returns the standard static pressure in hPa at the given
// pressure altitude in feet. Above the tropopause the temperature is
// constant and pressure decays exponentially.
func ISAPressure(alt float32) float32 {
	t := float64(ISATemperature(alt))
	p := ISASeaLevelPressure * gomath.Pow(t/ISASeaLevelTemperature, isaPressureExponent)
	if alt > ISATropopause {
		p *= gomath.Exp(-float64(alt-ISATropopause) / isaStratosphereScale)
	}
	return float32(p)
}

func speedOfSound(temperature float64) float64 {
	return ISASpeedOfSound * gomath.Sqrt(temperature/ISASeaLevelTemperature)
}

// impact pressure for a Mach number at static pressure p
func impactPressure(mach, p float64) float64 {
	return p * (gomath.Pow(1+0.2*mach*mach, 3.5) - 1)
}

// Mach number for impact pressure qc at static pressure p
func machFromImpactPressure(qc, p float64) float64 {
	return gomath.Sqrt(5 * (gomath.Pow(qc/p+1, 2./7.) - 1))
}

// casFromImpactPressure inverts the sea-level pitot relation.
func casFromImpactPressure(qc float64) float64 {
	return ISASpeedOfSound * machFromImpactPressure(qc, ISASeaLevelPressure)
}

// CASToTAS converts calibrated airspeed to true airspeed given the static
// temperature (K) and pressure (hPa).
func CASToTAS(cas, temperature, pressure float32) float32 {
	qc := impactPressure(float64(cas)/ISASpeedOfSound, ISASeaLevelPressure)
	mach := machFromImpactPressure(qc, float64(pressure))
	return float32(mach * speedOfSound(float64(temperature)))
}

// TASToCAS converts true airspeed to calibrated airspeed given the static
// temperature (K) and pressure (hPa).
func TASToCAS(tas, temperature, pressure float32) float32 {
	mach := float64(tas) / speedOfSound(float64(temperature))
	return float32(casFromImpactPressure(impactPressure(mach, float64(pressure))))
}

// MachToCAS returns the calibrated airspeed corresponding to the given
// Mach number at static pressure p (hPa).
func MachToCAS(mach, pressure float32) float32 {
	return float32(casFromImpactPressure(impactPressure(float64(mach), float64(pressure))))
}
