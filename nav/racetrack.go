// nav/racetrack.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package nav

import (
	"fmt"
	"log/slog"

	av "github.com/fmgs/lnav/aviation"
	"github.com/fmgs/lnav/math"
)

// Racetrack is the geometry of one lap of a hold. For a right turn:
//
//	      A          B
//	      *----------*
//	    /              \
//	1  |  *          *  |  2
//	    \              /
//	      *<---------*
//	     fix          C
//
// Arc 1 turns from the fix to A about its centre, the outbound leg runs
// from A to B, arc 2 turns from B to C and the inbound leg runs from C
// back to the fix. Left turns are the mirror image.
type Racetrack struct {
	Fix           math.Point2LL
	FixA          math.Point2LL
	FixB          math.Point2LL
	FixC          math.Point2LL
	ArcCentre1    math.Point2LL
	ArcCentre2    math.Point2LL
	InboundCourse float32
	SweepAngle    float32 // +180 for right turns, -180 for left

	LegDistance float32 // nm
	Radius      float32 // nm
}

// BuildRacetrack computes the hold geometry for straight legs of the given
// distance and turns of the given radius.
func BuildRacetrack(fix math.Point2LL, inboundCourse float32, turn av.TurnDirection, distance, radius float32) Racetrack {
	outbound := math.OppositeHeading(inboundCourse)
	abeam := math.NormalizeHeading(inboundCourse + 90)
	sweep := float32(180)
	if turn == av.TurnLeft {
		abeam = math.NormalizeHeading(inboundCourse - 90)
		sweep = -180
	}

	fixA := math.Project2LL(fix, abeam, 2*radius)
	fixC := math.Project2LL(fix, outbound, distance)

	return Racetrack{
		Fix:           fix,
		FixA:          fixA,
		FixB:          math.Project2LL(fixA, outbound, distance),
		FixC:          fixC,
		ArcCentre1:    math.Project2LL(fix, abeam, radius),
		ArcCentre2:    math.Project2LL(fixC, abeam, radius),
		InboundCourse: math.NormalizeHeading(inboundCourse),
		SweepAngle:    sweep,
		LegDistance:   distance,
		Radius:        radius,
	}
}

func (rt Racetrack) OutboundCourse() float32 {
	return math.OppositeHeading(rt.InboundCourse)
}

// TurnBank returns the bank angle to roll into for the hold's turns at
// the given true airspeed.
func (rt Racetrack) TurnBank(tas float32) float32 {
	return math.Sign(rt.SweepAngle) * MaxBank(tas, true)
}

// Length returns the length of one lap in nm.
func (rt Racetrack) Length() float32 {
	return 2*rt.LegDistance + 2*math.Pi()*rt.Radius
}

// Segment returns the path flown during the given phase.
func (rt Racetrack) Segment(phase HoldPhase) PathVector {
	switch phase {
	case HoldPhaseInbound:
		return PathVector{Type: PathVectorLine, StartPoint: rt.FixC, EndPoint: rt.Fix}
	case HoldPhaseArc1:
		return PathVector{Type: PathVectorArc, StartPoint: rt.Fix, EndPoint: rt.FixA,
			CentrePoint: rt.ArcCentre1, SweepAngle: rt.SweepAngle}
	case HoldPhaseOutbound:
		return PathVector{Type: PathVectorLine, StartPoint: rt.FixA, EndPoint: rt.FixB}
	case HoldPhaseArc2:
		return PathVector{Type: PathVectorArc, StartPoint: rt.FixB, EndPoint: rt.FixC,
			CentrePoint: rt.ArcCentre2, SweepAngle: rt.SweepAngle}
	default:
		panic(fmt.Sprintf("bad hold phase %d", phase))
	}
}

// PathFrom returns the segments from the given phase through the end of
// the lap at the fix, in the order they are flown.
func (rt Racetrack) PathFrom(phase HoldPhase) []PathVector {
	var path []PathVector
	for {
		path = append(path, rt.Segment(phase))
		if phase == HoldPhaseInbound {
			return path
		}
		phase = phase.Next()
	}
}

// Path returns a full lap starting and ending at the fix.
func (rt Racetrack) Path() []PathVector {
	return rt.PathFrom(HoldPhaseArc1)
}

func (rt Racetrack) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("fix_a", rt.FixA.DDString()),
		slog.String("fix_b", rt.FixB.DDString()),
		slog.String("fix_c", rt.FixC.DDString()),
		slog.Float64("sweep", float64(rt.SweepAngle)),
		slog.Float64("leg_distance", float64(rt.LegDistance)),
		slog.Float64("radius", float64(rt.Radius)),
	)
}
