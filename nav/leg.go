// nav/leg.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package nav

import (
	"log/slog"

	"github.com/fmgs/lnav/math"
)

// FlightState holds the aircraft inputs to a guidance update.
type FlightState struct {
	Position  math.Point2LL
	TrueTrack float32 // degrees
	TAS       float32 // knots
	GS        float32 // knots
	// Nil if unavailable.
	IndicatedAltitude *float32
}

func (fs FlightState) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Any("position", fs.Position),
		slog.Float64("track", float64(fs.TrueTrack)),
		slog.Float64("tas", float64(fs.TAS)),
		slog.Float64("gs", float64(fs.GS)),
	}
	if fs.IndicatedAltitude != nil {
		attrs = append(attrs, slog.Float64("altitude", float64(*fs.IndicatedAltitude)))
	}
	return slog.GroupValue(attrs...)
}

// Leg is a segment of a flight plan that can be flown by the lateral
// guidance.
type Leg interface {
	Ident() string
	// Courses at the start and end of the leg's path, degrees true.
	InboundCourse() float32
	OutboundCourse() float32

	TerminationPoint() math.Point2LL
	PathStartPoint() math.Point2LL
	PathEndPoint() math.Point2LL

	// Distance returns the nominal length of the leg's path in nm.
	Distance() float32
	// DistanceToTermination returns the length of the predicted path.
	DistanceToTermination() float32

	// If true, the leg must be exited explicitly rather than being
	// sequenced when its distance to go reaches zero.
	DisableAutomaticSequencing() bool
	OverflyTermFix() bool

	GetGuidanceParameters(fs FlightState) GuidanceParameters
	GetDistanceToGo(ppos math.Point2LL) float32
	PredictedPath() []PathVector

	// RecomputeWithParameters is called once per sequencing pass for
	// every leg, active or not.
	RecomputeWithParameters(isActive bool, fs FlightState, prev, next Leg)
}

// Terminator is implemented by legs that end on a condition other than
// reaching their termination point.
type Terminator interface {
	TerminationConditionMet() bool
}

// ImmediateExiter is implemented by legs that the pilot can ask to leave
// at the earliest opportunity.
type ImmediateExiter interface {
	SetImmediateExit(exit bool, ppos math.Point2LL, tas float32)
	ImmediateExit() bool
}
