// nav/hold_test.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package nav

import (
	"bytes"
	"strings"
	"testing"

	av "github.com/fmgs/lnav/aviation"
	"github.com/fmgs/lnav/log"
	"github.com/fmgs/lnav/math"
)

var testFix = av.Fix{Ident: "ABC", Location: math.Point2LL{0, 0}}

func altitude(alt float32) *float32 {
	return &alt
}

func makeTestHold(t *testing.T, kind HoldKind, turn av.TurnDirection) *HoldLeg {
	t.Helper()
	hold := av.Hold{InboundCourse: 360, TurnDirection: turn, LegLengthNM: 5}
	if kind == HoldKindHA {
		hold.Altitude = av.AltitudeConstraint{Type: av.AltitudeConstraintAtOrAbove, Altitude1: 8000}
	}
	fs := FlightState{TAS: 220, GS: 220, IndicatedAltitude: altitude(5000)}
	return MakeHoldLeg(kind, testFix, hold, DefaultConfig(), fs, nil)
}

type pathPoint struct {
	p     math.Point2LL
	track float32
}

// walkSegment returns points along the segment flown in the given phase,
// spaced roughly step nm apart and ending just past the segment's end.
func walkSegment(rt Racetrack, phase HoldPhase, step float32) []pathPoint {
	pv := rt.Segment(phase)
	var pts []pathPoint

	if pv.Type == PathVectorLine {
		course := rt.InboundCourse
		if phase == HoldPhaseOutbound {
			course = rt.OutboundCourse()
		}
		length := math.NMDistance2LL(pv.StartPoint, pv.EndPoint)
		n := int(length / step)
		for i := 1; i <= n; i++ {
			pts = append(pts, pathPoint{math.Project2LL(pv.StartPoint, course, float32(i)*length/float32(n)), course})
		}
		pts = append(pts, pathPoint{math.Project2LL(pv.StartPoint, course, length+step), course})
		return pts
	}

	r := math.NMDistance2LL(pv.CentrePoint, pv.StartPoint)
	b0 := math.Bearing2LL(pv.CentrePoint, pv.StartPoint)
	n := int(r * math.Radians(math.Abs(pv.SweepAngle)) / step)
	sign := math.Sign(pv.SweepAngle)
	for i := 1; i <= n+1; i++ {
		angle := pv.SweepAngle * float32(i) / float32(n)
		if i == n+1 {
			angle = pv.SweepAngle + 3*sign
		}
		brg := math.NormalizeHeading(b0 + angle)
		pts = append(pts, pathPoint{math.Project2LL(pv.CentrePoint, brg, r), math.NormalizeHeading(brg + 90*sign)})
	}
	return pts
}

// flyPhase walks the segment of the hold's current phase, checking the
// guidance along the way, and returns the phase the hold is in at the end.
func flyPhase(t *testing.T, l *HoldLeg, tas float32) HoldPhase {
	t.Helper()
	start := l.Phase()
	for _, pt := range walkSegment(l.Geometry(), start, 0.05) {
		prev := l.Phase()
		g := l.GetGuidanceParameters(FlightState{Position: pt.p, TrueTrack: pt.track, TAS: tas, GS: tas,
			IndicatedAltitude: altitude(5000)})

		if cur := l.Phase(); cur != prev && cur != prev.Next() {
			t.Fatalf("phase went from %s to %s in one update", prev, cur)
		}
		if l.Phase() == start {
			if math.Abs(g.CrossTrackError) > 0.05 {
				t.Errorf("%s: xtk %f flying the path", start, g.CrossTrackError)
			}
			if math.Abs(g.TrackAngleError) > 1 {
				t.Errorf("%s: tae %f flying the path", start, g.TrackAngleError)
			}
		}
	}
	return l.Phase()
}

func TestHoldPhase(t *testing.T) {
	p := HoldPhaseInbound
	expected := []HoldPhase{HoldPhaseArc1, HoldPhaseOutbound, HoldPhaseArc2, HoldPhaseInbound}
	for i := 0; i < 8; i++ {
		p = p.Next()
		if p != expected[i%4] {
			t.Errorf("step %d: got %s, expected %s", i, p, expected[i%4])
		}
	}

	var q HoldPhase
	if err := q.UnmarshalText([]byte("outbound")); err != nil || q != HoldPhaseOutbound {
		t.Errorf("UnmarshalText(outbound) got %s, %v", q, err)
	}
	if err := q.UnmarshalText([]byte("sideways")); err == nil {
		t.Errorf("expected error for invalid phase")
	}
	if s := HoldPhase(9).String(); s != "HoldPhase(9)" {
		t.Errorf("got %q for invalid phase", s)
	}
}

func TestInvalidHoldPhasePanics(t *testing.T) {
	expectPanic := func(name string, f func()) {
		t.Helper()
		defer func() {
			if r := recover(); r == nil {
				t.Errorf("%s: expected panic", name)
			}
		}()
		f()
	}

	l := makeTestHold(t, HoldKindHM, av.TurnRight)
	expectPanic("Next", func() { HoldPhase(4).Next() })
	expectPanic("SetInitialState", func() { l.SetInitialState(HoldPhase(-1)) })

	snap := l.TakeSnapshot()
	snap.Phase = HoldPhase(7)
	l.RestoreSnapshot(snap)
	expectPanic("GetGuidanceParameters", func() {
		l.GetGuidanceParameters(FlightState{Position: math.Point2LL{0, -0.1}, TAS: 220})
	})
}

func TestEntryPhase(t *testing.T) {
	for entry, phase := range map[av.HoldEntry]HoldPhase{
		av.HoldEntryDirect:   HoldPhaseArc1,
		av.HoldEntryParallel: HoldPhaseInbound,
		av.HoldEntryTeardrop: HoldPhaseArc2,
	} {
		if p := EntryPhase(entry); p != phase {
			t.Errorf("EntryPhase(%s) = %s, expected %s", entry, p, phase)
		}
	}
}

func TestHoldLegDistanceMinutes(t *testing.T) {
	hold := av.Hold{
		InboundCourse: 90,
		TurnDirection: av.TurnLeft,
		Altitude:      av.AltitudeConstraint{Type: av.AltitudeConstraintAt, Altitude1: 20000},
	}
	l := MakeHoldLeg(HoldKindHM, testFix, hold, DefaultConfig(), FlightState{TAS: 300}, nil)
	l.UpdatePrediction(210)
	if d := l.Geometry().LegDistance; !near(d, 5.25, 1e-4) {
		t.Errorf("leg distance %f, expected 5.25", d)
	}

	hold.Altitude = av.AltitudeConstraint{}
	l = MakeHoldLeg(HoldKindHM, testFix, hold, DefaultConfig(), FlightState{IndicatedAltitude: altitude(6000)}, nil)
	l.UpdatePrediction(210)
	if d := l.Geometry().LegDistance; !near(d, 3.5, 1e-4) {
		t.Errorf("leg distance %f below 14000', expected 3.5", d)
	}
}

func TestMakeHoldLegPrediction(t *testing.T) {
	l := makeTestHold(t, HoldKindHM, av.TurnRight)

	tas, _ := TargetSpeed(DefaultConfig(), l.Hold, FlightState{IndicatedAltitude: altitude(5000)})
	if l.PredictedSpeed() != tas {
		t.Errorf("predicted speed %f, expected %f", l.PredictedSpeed(), tas)
	}
	// 220 KCAS at 5000'
	if !near(l.HoldSpeed(), 220, 0.1) {
		t.Errorf("hold speed %f, expected 220", l.HoldSpeed())
	}

	rt := l.Geometry()
	radius := TurnRadius(tas, MaxBank(tas, true)) * 1.1
	if !near(rt.Radius, radius, 1e-4) || rt.LegDistance != 5 {
		t.Errorf("geometry radius %f leg %f, expected %f, 5", rt.Radius, rt.LegDistance, radius)
	}
	if d := l.Distance(); !near(d, 10+2*math.Pi()*radius, 1e-3) {
		t.Errorf("lap distance %f", d)
	}
	if s := l.String(); s != "HM 'ABC' right" {
		t.Errorf("String() = %q", s)
	}
}

func TestHoldNoAltitudeFallback(t *testing.T) {
	var buf bytes.Buffer
	lg := log.NewWriter(&buf, "info")

	hold := av.Hold{InboundCourse: 180, TurnDirection: av.TurnRight, LegMinutes: 1}
	l := MakeHoldLeg(HoldKindHM, testFix, hold, DefaultConfig(), FlightState{TAS: 250}, lg)
	if l.PredictedSpeed() != PlaceholderHoldSpeed {
		t.Errorf("predicted speed %f, expected placeholder", l.PredictedSpeed())
	}
	l.RecomputeWithParameters(false, FlightState{}, nil, nil)

	if n := strings.Count(buf.String(), "no altitude available"); n != 1 {
		t.Errorf("expected a single fallback warning, got %d: %s", n, buf.String())
	}
}

func TestHANoConstraintWarning(t *testing.T) {
	var buf bytes.Buffer
	lg := log.NewWriter(&buf, "info")

	hold := av.Hold{InboundCourse: 180, TurnDirection: av.TurnRight,
		Altitude: av.AltitudeConstraint{Type: av.AltitudeConstraintAt, Altitude1: 9000}}
	MakeHoldLeg(HoldKindHA, testFix, hold, DefaultConfig(), FlightState{IndicatedAltitude: altitude(3000)}, lg)
	if !strings.Contains(buf.String(), "HA hold without an at or above altitude constraint") {
		t.Errorf("expected warning, got %s", buf.String())
	}

	buf.Reset()
	hold.Altitude.Type = av.AltitudeConstraintAtOrAbove
	MakeHoldLeg(HoldKindHA, testFix, hold, DefaultConfig(), FlightState{IndicatedAltitude: altitude(3000)}, lg)
	if buf.Len() != 0 {
		t.Errorf("unexpected log output %s", buf.String())
	}
}

func TestHoldLaps(t *testing.T) {
	for _, turn := range []av.TurnDirection{av.TurnRight, av.TurnLeft} {
		t.Run(turn.String(), func(t *testing.T) {
			l := makeTestHold(t, HoldKindHM, turn)
			tas := l.PredictedSpeed()
			geom := l.Geometry()

			expected := HoldPhaseArc1
			for i := 0; i < 8; i++ {
				if p := flyPhase(t, l, tas); p != expected {
					t.Fatalf("after flying %s got %s, expected %s", expected.Next().Next().Next(), p, expected)
				}
				expected = expected.Next()
			}

			// Flown at the predicted speed, the geometry is the same each lap.
			if l.Geometry() != geom {
				t.Errorf("geometry changed: %+v vs %+v", l.Geometry(), geom)
			}
		})
	}
}

func TestHoldGeometryRefreshAtFix(t *testing.T) {
	l := makeTestHold(t, HoldKindHM, av.TurnRight)
	l.Hold.LegLengthNM = 0
	l.Hold.LegMinutes = 1

	// Cross the fix faster than predicted; the next lap is built for the
	// new speed.
	flyPhase(t, l, 260)
	if l.PredictedSpeed() != 260 {
		t.Errorf("predicted speed %f, expected 260", l.PredictedSpeed())
	}
	rt := l.Geometry()
	if !near(rt.LegDistance, 260./60, 1e-4) {
		t.Errorf("leg distance %f, expected %f", rt.LegDistance, 260./60)
	}
	if !near(rt.Radius, TurnRadius(260, MaxBank(260, true))*1.1, 1e-4) {
		t.Errorf("radius %f not updated", rt.Radius)
	}

	// No refresh mid-lap.
	flyPhase(t, l, 200)
	if l.Geometry() != rt {
		t.Errorf("geometry changed during arc 1")
	}
}

func TestHoldBankAnticipation(t *testing.T) {
	l := makeTestHold(t, HoldKindHM, av.TurnRight)
	tas := l.PredictedSpeed()
	rad := RollAnticipationDistance(tas, 0, MaxBank(tas, true))

	fs := func(distToFix float32) FlightState {
		return FlightState{Position: math.Project2LL(testFix.Location, 180, distToFix), TrueTrack: 360, TAS: tas}
	}

	if g := l.GetGuidanceParameters(fs(3)); g.PhiCommand != 0 {
		t.Errorf("3nm from fix: phi %f, expected 0", g.PhiCommand)
	}
	if g := l.GetGuidanceParameters(fs(rad / 2)); g.PhiCommand != MaxBank(tas, true) {
		t.Errorf("inside anticipation distance: phi %f, expected %f", g.PhiCommand, MaxBank(tas, true))
	}
	if l.Phase() != HoldPhaseInbound {
		t.Errorf("phase %s, expected Inbound", l.Phase())
	}

	// Rolling out at the end of arc 1.
	l.SetInitialState(HoldPhaseArc1)
	rt := l.Geometry()
	end := math.Project2LL(rt.ArcCentre1, 85, rt.Radius)
	g := l.GetGuidanceParameters(FlightState{Position: end, TrueTrack: 175, TAS: tas})
	if g.PhiCommand != 0 {
		t.Errorf("end of arc 1: phi %f, expected 0", g.PhiCommand)
	}
	mid := math.Project2LL(rt.ArcCentre1, 0, rt.Radius)
	g = l.GetGuidanceParameters(FlightState{Position: mid, TrueTrack: 90, TAS: tas})
	if g.PhiCommand <= 0 {
		t.Errorf("mid arc 1: phi %f, expected right bank", g.PhiCommand)
	}

	// No turn is anticipated when the hold ends at the fix.
	hf := makeTestHold(t, HoldKindHF, av.TurnRight)
	if g := hf.GetGuidanceParameters(fs(rad / 2)); g.PhiCommand != 0 {
		t.Errorf("HF inside anticipation distance: phi %f, expected 0", g.PhiCommand)
	}
}

func TestImmediateExitArc1(t *testing.T) {
	l := makeTestHold(t, HoldKindHM, av.TurnRight)
	tas := l.PredictedSpeed()
	l.SetInitialState(HoldPhaseArc1)

	if !l.DisableAutomaticSequencing() {
		t.Errorf("HM should not sequence before an exit is requested")
	}

	rt := l.Geometry()
	l.SetImmediateExit(true, math.Project2LL(rt.ArcCentre1, 0, rt.Radius), tas)

	if !l.ImmediateExit() || l.DisableAutomaticSequencing() {
		t.Errorf("exit not requested")
	}
	rt = l.Geometry()
	if rt.LegDistance != 0 || rt.FixB != rt.FixA {
		t.Errorf("outbound leg not shortened to zero: %+v", rt)
	}

	// The zero-length outbound leg ends as soon as it starts, so the end of
	// the arc 1 walk lands in arc 2.
	for _, expected := range []HoldPhase{HoldPhaseArc2, HoldPhaseInbound, HoldPhaseInbound} {
		if p := flyPhase(t, l, tas); p != expected {
			t.Fatalf("got phase %s, expected %s", p, expected)
		}
	}
	if d := l.GetDistanceToGo(math.Project2LL(testFix.Location, 0, 0.5)); d != 0 {
		t.Errorf("distance to go past the fix %f, expected 0", d)
	}
}

func TestImmediateExitOutbound(t *testing.T) {
	l := makeTestHold(t, HoldKindHM, av.TurnLeft)
	tas := l.PredictedSpeed()
	l.SetInitialState(HoldPhaseOutbound)

	rt := l.Geometry()
	ppos := math.Project2LL(rt.FixA, rt.OutboundCourse(), 1.2)
	l.SetImmediateExit(true, ppos, tas)

	rad := RollAnticipationDistance(tas, 0, -MaxBank(tas, true))
	if d := l.Geometry().LegDistance; !near(d, 1.2+rad, 0.01) {
		t.Errorf("shortened leg %f, expected %f", d, 1.2+rad)
	}
	if a := l.Geometry().ArcCentre1; a != rt.ArcCentre1 {
		t.Errorf("arc 1 moved")
	}
}

func TestImmediateExitKeepsLeg(t *testing.T) {
	for _, phase := range []HoldPhase{HoldPhaseArc2, HoldPhaseInbound} {
		l := makeTestHold(t, HoldKindHM, av.TurnRight)
		l.SetInitialState(phase)
		rt := l.Geometry()
		l.SetImmediateExit(true, rt.FixC, l.PredictedSpeed())
		if l.Geometry() != rt {
			t.Errorf("%s: geometry changed", phase)
		}
	}
}

func TestImmediateExitResume(t *testing.T) {
	l := makeTestHold(t, HoldKindHM, av.TurnRight)
	tas := l.PredictedSpeed()
	l.SetInitialState(HoldPhaseArc1)
	rt := l.Geometry()
	l.SetImmediateExit(true, rt.Fix, tas)
	l.SetImmediateExit(false, rt.Fix, tas)

	if l.ImmediateExit() {
		t.Errorf("exit still requested")
	}
	// The shortened lap is still flown.
	if l.Geometry().LegDistance != 0 {
		t.Errorf("geometry refreshed before crossing the fix")
	}
	if d := l.legDistance(); d != l.nominalLegDistance() || d == l.Geometry().LegDistance {
		t.Errorf("leg distance %f after cancelling, geometry %f", d, l.Geometry().LegDistance)
	}
	for _, expected := range []HoldPhase{HoldPhaseArc2, HoldPhaseInbound, HoldPhaseArc1} {
		if p := flyPhase(t, l, tas); p != expected {
			t.Fatalf("got phase %s, expected %s", p, expected)
		}
	}
	if l.Geometry() != rt {
		t.Errorf("full geometry not restored after crossing the fix")
	}
}

func TestHoldSnapshot(t *testing.T) {
	l := makeTestHold(t, HoldKindHM, av.TurnRight)
	tas := l.PredictedSpeed()
	l.SetTransitionEndPoint(math.Point2LL{0.1, 0.1})
	snap := l.TakeSnapshot()

	flyPhase(t, l, tas)
	l.SetImmediateExit(true, l.Geometry().Fix, tas)
	l.SetTransitionEndPoint(math.Point2LL{1, 1})

	l.RestoreSnapshot(snap)
	if l.Phase() != HoldPhaseInbound || l.ImmediateExit() {
		t.Errorf("state not restored: phase %s exit %v", l.Phase(), l.ImmediateExit())
	}
	if l.Geometry() != snap.Geometry {
		t.Errorf("geometry not restored")
	}
	if *l.transitionEndPoint != (math.Point2LL{0.1, 0.1}) {
		t.Errorf("transition end point not restored")
	}

	// The snapshot must not alias the leg.
	*l.transitionEndPoint = math.Point2LL{2, 2}
	if *snap.TransitionEndPoint != (math.Point2LL{0.1, 0.1}) {
		t.Errorf("snapshot aliases leg state")
	}
}
