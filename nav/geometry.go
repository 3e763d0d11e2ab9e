// nav/geometry.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package nav

import (
	"github.com/fmgs/lnav/math"
)

const (
	// Bank limits, degrees
	MaxBankAngle     = 30
	MaxHoldBankAngle = 25
	// Rate one turn, degrees per second
	StandardTurnRate = 3
	// Degrees per second
	RollRate = 5
)

// CourseToFixDistanceToGo returns the distance from ppos to the line
// through fix perpendicular to course, measured along course. It is zero
// once the aircraft has passed the fix.
func CourseToFixDistanceToGo(ppos math.Point2LL, course float32, fix math.Point2LL) float32 {
	d := math.NMDistance2LL(ppos, fix)
	if d == 0 {
		return 0
	}
	brg := math.Bearing2LL(ppos, fix)
	return max(0, d*math.Cos(math.Radians(math.HeadingSignedTurn(course, brg))))
}

// CourseToFixGuidance returns guidance to track course through fix.
func CourseToFixGuidance(ppos math.Point2LL, trueTrack, course float32, fix math.Point2LL) GuidanceParameters {
	d := math.NMDistance2LL(ppos, fix)
	var xtk float32
	if d > 0 {
		brg := math.Bearing2LL(ppos, fix)
		xtk = d * math.Sin(math.Radians(math.HeadingSignedTurn(course, brg)))
	}

	return GuidanceParameters{
		Law:             ControlLawLateralPath,
		TrackAngleError: math.HeadingSignedTurn(trueTrack, course),
		CrossTrackError: xtk,
		PhiCommand:      0,
	}
}

// ArcDistanceToGo returns the distance remaining along the arc that
// starts at itp and sweeps sweep degrees about centre. The full arc
// length is returned while the aircraft is still up to 20 degrees short
// of the start and 0 once it is past the end.
func ArcDistanceToGo(ppos, itp, centre math.Point2LL, sweep float32) float32 {
	itpBearing := math.Bearing2LL(centre, itp)
	pposBearing := math.Bearing2LL(centre, ppos)
	r := math.NMDistance2LL(centre, itp)

	var angle float32
	if sweep < 0 {
		angle = math.NormalizeHeading(itpBearing - pposBearing)
	} else {
		angle = math.NormalizeHeading(pposBearing - itpBearing)
	}

	total := math.Abs(sweep)
	if angle >= 340 {
		return r * math.Radians(total)
	} else if angle >= total {
		return 0
	}
	return r * math.Radians(total-angle)
}

// ArcGuidance returns guidance to track the arc starting at itp about
// centre; gs is used for the feed-forward bank angle.
func ArcGuidance(ppos math.Point2LL, trueTrack float32, itp, centre math.Point2LL, sweep, gs float32) GuidanceParameters {
	r := math.NMDistance2LL(centre, itp)
	d := math.NMDistance2LL(centre, ppos)

	desiredTrack := math.Bearing2LL(centre, ppos)
	xtk := r - d
	if sweep > 0 {
		desiredTrack += 90
		xtk = d - r
	} else {
		desiredTrack -= 90
	}

	var phi float32
	if r > 0 {
		v := gs * math.KnotsToMetersPerSecond
		phi = math.Sign(sweep) * math.Degrees(math.Atan(v*v/(r/math.MetersToNauticalMiles*math.G)))
	}

	return GuidanceParameters{
		Law:             ControlLawLateralPath,
		TrackAngleError: math.HeadingSignedTurn(trueTrack, math.NormalizeHeading(desiredTrack)),
		CrossTrackError: xtk,
		PhiCommand:      phi,
	}
}

// MaxBank returns the bank angle limit in degrees at the given true
// airspeed. Holds are flown at a rate one turn, up to 25 degrees of bank.
func MaxBank(tas float32, hold bool) float32 {
	if !hold {
		return MaxBankAngle
	}
	v := tas * math.KnotsToMetersPerSecond
	rateOne := math.Degrees(math.Atan(v * math.Radians(StandardTurnRate) / math.G))
	return min(MaxHoldBankAngle, rateOne)
}

// RollAnticipationDistance returns the distance before a segment boundary
// at which to start rolling from bankA to bankB, assuming a 5 degree per
// second roll rate.
func RollAnticipationDistance(gs, bankA, bankB float32) float32 {
	const k2 = 0.0038
	deltaPhi := math.Abs(bankA - bankB)
	return gs / 3600 * (math.Sqrt(1+2*k2*math.G*deltaPhi/RollRate) - 1) / (k2 * math.G)
}

// TurnRadius returns the radius in nm of a turn at the given true
// airspeed (kt) and bank angle (degrees).
func TurnRadius(tas, bank float32) float32 {
	v := tas * math.KnotsToMetersPerSecond
	return v * v / (math.G * math.Tan(math.Radians(bank))) * math.MetersToNauticalMiles
}
