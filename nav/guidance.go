// nav/guidance.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package nav

import (
	"fmt"
	"log/slog"

	"github.com/fmgs/lnav/math"
)

type ControlLaw int

const (
	ControlLawLateralPath ControlLaw = iota
)

var controlLawNames = []string{"LateralPath"}

func (c ControlLaw) String() string {
	if c < 0 || int(c) >= len(controlLawNames) {
		return fmt.Sprintf("ControlLaw(%d)", int(c))
	}
	return controlLawNames[c]
}

// GuidanceParameters are produced by a leg each guidance update.
type GuidanceParameters struct {
	Law ControlLaw
	// Degrees; positive when the desired track is to the right of the
	// current track.
	TrackAngleError float32
	// Nautical miles; positive when the aircraft is left of the path.
	CrossTrackError float32
	// Feed-forward bank angle in degrees; positive is right bank.
	PhiCommand float32
}

func (g GuidanceParameters) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("law", g.Law.String()),
		slog.Float64("tae", float64(g.TrackAngleError)),
		slog.Float64("xtk", float64(g.CrossTrackError)),
		slog.Float64("phi", float64(g.PhiCommand)),
	)
}

// LateralPathLaw closes the loop on GuidanceParameters, turning track and
// cross-track errors into a bank angle around the leg's feed-forward
// command.
type LateralPathLaw struct {
	XTKGain float32 // degrees of bank per nm of cross-track error
	TAEGain float32 // degrees of bank per degree of track angle error
	MaxBank float32 // degrees
}

func DefaultLateralPathLaw() LateralPathLaw {
	return LateralPathLaw{
		XTKGain: 30,
		TAEGain: 1,
		MaxBank: 30,
	}
}

// BankCommand returns the commanded bank angle in degrees, positive
// right.
func (law LateralPathLaw) BankCommand(g GuidanceParameters) float32 {
	// Limit the cross-track contribution so that a large deviation gives
	// an intercept rather than flying perpendicular to the path.
	xtk := math.Clamp(law.XTKGain*g.CrossTrackError, -law.MaxBank, law.MaxBank)
	phi := g.PhiCommand + xtk + law.TAEGain*g.TrackAngleError
	return math.Clamp(phi, -law.MaxBank, law.MaxBank)
}
