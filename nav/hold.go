// nav/hold.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package nav

import (
	"fmt"
	"log/slog"
	"strings"

	av "github.com/fmgs/lnav/aviation"
	"github.com/fmgs/lnav/log"
	"github.com/fmgs/lnav/math"

	"github.com/brunoga/deep"
)

///////////////////////////////////////////////////////////////////////////
// HoldPhase

// HoldPhase is the part of the racetrack currently being flown. Phases
// advance cyclically, Inbound -> Arc1 -> Outbound -> Arc2 -> Inbound.
type HoldPhase int

const (
	HoldPhaseInbound HoldPhase = iota
	HoldPhaseArc1
	HoldPhaseOutbound
	HoldPhaseArc2
	numHoldPhases
)

var holdPhaseNames = []string{"Inbound", "Arc1", "Outbound", "Arc2"}

func (p HoldPhase) Valid() bool {
	return p >= HoldPhaseInbound && p < numHoldPhases
}

func (p HoldPhase) String() string {
	if !p.Valid() {
		return fmt.Sprintf("HoldPhase(%d)", int(p))
	}
	return holdPhaseNames[p]
}

func (p HoldPhase) Next() HoldPhase {
	if !p.Valid() {
		panic(fmt.Sprintf("bad hold phase %d", p))
	}
	return (p + 1) % numHoldPhases
}

func (p HoldPhase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *HoldPhase) UnmarshalText(b []byte) error {
	for i, n := range holdPhaseNames {
		if strings.EqualFold(n, string(b)) {
			*p = HoldPhase(i)
			return nil
		}
	}
	return fmt.Errorf("%s: %w", string(b), ErrInvalidHoldPhase)
}

// EntryPhase returns the phase to start the hold in after the given entry
// procedure has brought the aircraft to the racetrack.
func EntryPhase(entry av.HoldEntry) HoldPhase {
	switch entry {
	case av.HoldEntryParallel:
		// Turns back to intercept the inbound course.
		return HoldPhaseInbound
	case av.HoldEntryTeardrop:
		// Joins by turning onto the inbound course.
		return HoldPhaseArc2
	default:
		// Crosses the fix and turns outbound.
		return HoldPhaseArc1
	}
}

///////////////////////////////////////////////////////////////////////////
// HoldKind

// HoldKind selects how a hold terminates.
type HoldKind int

const (
	HoldKindHM HoldKind = iota // manual termination
	HoldKindHA                 // terminates at an altitude
	HoldKindHF                 // terminates at the first fix crossing
)

var holdKindNames = []string{"HM", "HA", "HF"}

func (k HoldKind) String() string {
	if k < 0 || int(k) >= len(holdKindNames) {
		return fmt.Sprintf("HoldKind(%d)", int(k))
	}
	return holdKindNames[k]
}

func (k HoldKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *HoldKind) UnmarshalText(b []byte) error {
	for i, n := range holdKindNames {
		if strings.EqualFold(n, string(b)) {
			*k = HoldKind(i)
			return nil
		}
	}
	return fmt.Errorf("%s: %w", string(b), ErrUnknownHoldKind)
}

///////////////////////////////////////////////////////////////////////////
// HoldLeg

// HoldLeg flies a racetrack holding pattern at a fix. The geometry is
// computed for the predicted speed and is only recomputed when crossing
// the fix, when the prediction is updated and when an immediate exit is
// requested.
//
// A HoldLeg is not safe for concurrent use.
type HoldLeg struct {
	Kind HoldKind
	Fix  av.Fix
	Hold av.Hold

	cfg Config
	lg  *log.Logger

	phase        HoldPhase
	initialPhase HoldPhase

	// True airspeed the geometry is predicted for.
	predictedSpeed float32
	// Predicted speed as KCAS, for display.
	holdSpeed float32
	geometry  Racetrack

	immExit       bool
	immExitLength float32

	termConditionMet   bool
	transitionEndPoint *math.Point2LL

	// Most recent altitude input.
	altitude         *float32
	warnedNoAltitude bool
}

// MakeHoldLeg returns a hold of the given kind at fix, with its speed
// predicted from the flight state.
func MakeHoldLeg(kind HoldKind, fix av.Fix, hold av.Hold, cfg Config, fs FlightState, lg *log.Logger) *HoldLeg {
	if _, ok := holdPolicies[kind]; !ok {
		panic(fmt.Sprintf("bad hold kind %d", kind))
	}

	l := &HoldLeg{
		Kind: kind,
		Fix:  fix,
		Hold: hold,
		cfg:  cfg,
		lg:   lg.With(slog.String("leg", kind.String()+" "+fix.Ident)),
	}

	if kind == HoldKindHA && hold.Altitude.Type != av.AltitudeConstraintAtOrAbove {
		// ARINC 424 requires the termination altitude to be at or above.
		l.lg.Warn("HA hold without an at or above altitude constraint",
			slog.String("constraint", hold.Altitude.String()))
	}

	l.observe(fs)
	holdPolicies[kind].update(l, fs)
	l.UpdatePrediction(l.targetSpeed(fs))

	return l
}

func (l *HoldLeg) String() string {
	return fmt.Sprintf("%s '%s' %s", l.Kind, l.Fix.Ident, l.Hold.TurnDirection)
}

func (l *HoldLeg) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("kind", l.Kind.String()),
		slog.String("fix", l.Fix.Ident),
		slog.String("phase", l.phase.String()),
		slog.Float64("predicted_speed", float64(l.predictedSpeed)),
		slog.Bool("imm_exit", l.immExit),
		slog.Bool("term_condition", l.termConditionMet),
		slog.Any("geometry", l.geometry),
	)
}

// observe records the inputs from a flight state that later computations
// that don't take one depend on.
func (l *HoldLeg) observe(fs FlightState) {
	if fs.IndicatedAltitude != nil {
		alt := *fs.IndicatedAltitude
		l.altitude = &alt
	}
}

func (l *HoldLeg) flightState() FlightState {
	return FlightState{IndicatedAltitude: l.altitude}
}

func (l *HoldLeg) targetSpeed(fs FlightState) float32 {
	tas, ok := TargetSpeed(l.cfg, l.Hold, fs)
	if !ok && !l.warnedNoAltitude {
		l.lg.Warnf("no altitude available; assuming %d kt for hold predictions", PlaceholderHoldSpeed)
		l.warnedNoAltitude = true
	}
	return tas
}

func (l *HoldLeg) Phase() HoldPhase              { return l.phase }
func (l *HoldLeg) InitialPhase() HoldPhase       { return l.initialPhase }
func (l *HoldLeg) PredictedSpeed() float32       { return l.predictedSpeed }
func (l *HoldLeg) HoldSpeed() float32            { return l.holdSpeed }
func (l *HoldLeg) ImmediateExit() bool           { return l.immExit }
func (l *HoldLeg) TerminationConditionMet() bool { return l.termConditionMet }

// Geometry returns the current racetrack; it does not recompute it.
func (l *HoldLeg) Geometry() Racetrack {
	return l.geometry
}

// SetInitialState sets the phase the hold is entered in.
func (l *HoldLeg) SetInitialState(phase HoldPhase) {
	if !phase.Valid() {
		panic(fmt.Sprintf("bad hold phase %d", phase))
	}
	l.phase = phase
	l.initialPhase = phase
}

// SetTransitionEndPoint records where the entry transition joins the
// hold; the predicted path of an HF hold starts there.
func (l *HoldLeg) SetTransitionEndPoint(p math.Point2LL) {
	l.transitionEndPoint = &p
}

// radius returns the turn radius at the predicted speed.
func (l *HoldLeg) radius() float32 {
	tas := l.predictedSpeed
	return TurnRadius(tas, MaxBank(tas, true)) * l.cfg.TurnRadiusFactor
}

// legDistance returns the current length of the straight legs, taking an
// immediate exit into account.
func (l *HoldLeg) legDistance() float32 {
	if l.immExit {
		return l.immExitLength
	}
	return l.nominalLegDistance()
}

func (l *HoldLeg) nominalLegDistance() float32 {
	var alt *float32
	if a, ok := holdAltitude(l.Hold, l.flightState()); ok {
		alt = &a
	}
	return LegDistance(l.Hold.LegLengthNM, l.Hold.LegMinutes, l.predictedSpeed, alt)
}

func (l *HoldLeg) buildGeometry() Racetrack {
	return BuildRacetrack(l.Fix.Location, l.Hold.InboundCourse, l.Hold.TurnDirection,
		l.legDistance(), l.radius())
}

func (l *HoldLeg) refreshGeometry() {
	l.geometry = l.buildGeometry()
	NavLog(l.Fix.Ident, NavLogGeometry, "racetrack leg=%.2fnm radius=%.2fnm A=%s B=%s C=%s",
		l.geometry.LegDistance, l.geometry.Radius, l.geometry.FixA.DDString(),
		l.geometry.FixB.DDString(), l.geometry.FixC.DDString())
}

// UpdatePrediction sets the speed the hold is predicted to be flown at and
// recomputes the geometry for it. It is called at each crossing of the
// hold fix.
func (l *HoldLeg) UpdatePrediction(tas float32) {
	l.predictedSpeed = tas
	l.refreshGeometry()

	l.holdSpeed = tas
	if alt, ok := holdAltitude(l.Hold, l.flightState()); ok {
		l.holdSpeed = av.TASToCAS(tas, av.ISATemperature(alt), av.ISAPressure(alt))
	}
}

// SetImmediateExit requests (or cancels) an exit from the hold at the
// next crossing of the fix, shortening the current lap where possible.
// The geometry reflects the request when it returns. When an exit is
// cancelled, the full geometry is restored at the next fix crossing, so
// until then Geometry().LegDistance may differ from the nominal leg distance.
func (l *HoldLeg) SetImmediateExit(exit bool, ppos math.Point2LL, tas float32) {
	if exit {
		switch l.phase {
		case HoldPhaseArc1:
			// Finish the turn and immediately turn back inbound.
			l.immExitLength = 0
		case HoldPhaseOutbound:
			// Turn inbound as soon as we can roll into the turn.
			rt := l.buildGeometry()
			rad := RollAnticipationDistance(tas, 0, rt.TurnBank(tas))
			l.immExitLength = rad + CourseToFixDistanceToGo(ppos, rt.InboundCourse, rt.FixA)
		case HoldPhaseArc2, HoldPhaseInbound:
			// Too late to shorten the lap.
			l.immExitLength = l.nominalLegDistance()
		default:
			panic(fmt.Sprintf("bad hold phase %d", l.phase))
		}
	}

	l.immExit = exit
	NavLog(l.Fix.Ident, NavLogHold, "immediate exit=%v phase=%s length=%.2fnm", exit, l.phase, l.immExitLength)

	if exit {
		l.refreshGeometry()
	}
}

// phaseDistanceToGo returns the distance to the end of the current phase.
func (l *HoldLeg) phaseDistanceToGo(ppos math.Point2LL, rt Racetrack) float32 {
	switch l.phase {
	case HoldPhaseInbound:
		return CourseToFixDistanceToGo(ppos, rt.InboundCourse, rt.Fix)
	case HoldPhaseArc1:
		return ArcDistanceToGo(ppos, rt.Fix, rt.ArcCentre1, rt.SweepAngle)
	case HoldPhaseOutbound:
		return CourseToFixDistanceToGo(ppos, rt.OutboundCourse(), rt.FixB)
	case HoldPhaseArc2:
		return ArcDistanceToGo(ppos, rt.FixB, rt.ArcCentre2, rt.SweepAngle)
	default:
		panic(fmt.Sprintf("bad hold phase %d", l.phase))
	}
}

// exitAtFix reports whether the hold ends at the next fix crossing.
func (l *HoldLeg) exitAtFix() bool {
	return l.immExit || l.termConditionMet
}

// updateState advances to the next phase once the current one is
// complete. A new lap starts with the geometry recomputed for the current
// speed.
func (l *HoldLeg) updateState(ppos math.Point2LL, tas float32) {
	if l.phaseDistanceToGo(ppos, l.geometry) > 0 {
		return
	}

	if l.phase == HoldPhaseInbound {
		if l.exitAtFix() {
			return
		}
		l.UpdatePrediction(tas)
	}

	prev := l.phase
	l.phase = l.phase.Next()
	NavLog(l.Fix.Ident, NavLogPhase, "%s -> %s", prev, l.phase)
}

// GetGuidanceParameters updates the hold state for the given flight
// state and returns the guidance to fly the current phase.
func (l *HoldLeg) GetGuidanceParameters(fs FlightState) GuidanceParameters {
	l.observe(fs)
	holdPolicies[l.Kind].update(l, fs)
	l.updateState(fs.Position, fs.TAS)

	rt := l.geometry
	var params GuidanceParameters
	var dtg, prevPhi, nextPhi float32

	switch l.phase {
	case HoldPhaseInbound:
		params = CourseToFixGuidance(fs.Position, fs.TrueTrack, rt.InboundCourse, rt.Fix)
		dtg = CourseToFixDistanceToGo(fs.Position, rt.InboundCourse, rt.Fix)
		if !l.exitAtFix() {
			// Wings level across the fix when the hold ends there.
			nextPhi = rt.TurnBank(fs.TAS)
		}
	case HoldPhaseArc1:
		params = ArcGuidance(fs.Position, fs.TrueTrack, rt.Fix, rt.ArcCentre1, rt.SweepAngle, fs.TAS)
		dtg = ArcDistanceToGo(fs.Position, rt.Fix, rt.ArcCentre1, rt.SweepAngle)
		prevPhi = params.PhiCommand
	case HoldPhaseOutbound:
		params = CourseToFixGuidance(fs.Position, fs.TrueTrack, rt.OutboundCourse(), rt.FixB)
		dtg = CourseToFixDistanceToGo(fs.Position, rt.OutboundCourse(), rt.FixB)
		nextPhi = rt.TurnBank(fs.TAS)
	case HoldPhaseArc2:
		params = ArcGuidance(fs.Position, fs.TrueTrack, rt.FixB, rt.ArcCentre2, rt.SweepAngle, fs.TAS)
		dtg = ArcDistanceToGo(fs.Position, rt.FixB, rt.ArcCentre2, rt.SweepAngle)
		prevPhi = params.PhiCommand
	default:
		panic(fmt.Sprintf("bad hold phase %d", l.phase))
	}

	// Start rolling into (or out of) the next turn early.
	if dtg <= RollAnticipationDistance(fs.TAS, prevPhi, nextPhi) {
		params.PhiCommand = nextPhi
	}

	return params
}

// distanceToGoThisOrbit returns the distance remaining to the fix.
func (l *HoldLeg) distanceToGoThisOrbit(ppos math.Point2LL) float32 {
	rt := l.geometry
	dtg := l.phaseDistanceToGo(ppos, rt)
	halfTurn := rt.Radius * math.Pi()

	switch l.phase {
	case HoldPhaseArc1:
		return dtg + 2*rt.LegDistance + halfTurn
	case HoldPhaseOutbound:
		return dtg + rt.LegDistance + halfTurn
	case HoldPhaseArc2:
		return dtg + rt.LegDistance
	default:
		return dtg
	}
}

func (l *HoldLeg) GetDistanceToGo(ppos math.Point2LL) float32 {
	return holdPolicies[l.Kind].distanceToGo(l, ppos)
}

func (l *HoldLeg) PredictedPath() []PathVector {
	return holdPolicies[l.Kind].predictedPath(l)
}

func (l *HoldLeg) DisableAutomaticSequencing() bool {
	return holdPolicies[l.Kind].disableAutomaticSequencing(l)
}

// RecomputeWithParameters refreshes the termination condition and, for
// legs that aren't being flown yet, the predicted speed and geometry.
func (l *HoldLeg) RecomputeWithParameters(isActive bool, fs FlightState, prev, next Leg) {
	l.observe(fs)
	holdPolicies[l.Kind].update(l, fs)
	if !isActive {
		l.UpdatePrediction(l.targetSpeed(fs))
	}
}

func (l *HoldLeg) Ident() string                   { return l.Fix.Ident }
func (l *HoldLeg) InboundCourse() float32          { return l.Hold.InboundCourse }
func (l *HoldLeg) OutboundCourse() float32         { return l.Hold.InboundCourse }
func (l *HoldLeg) TerminationPoint() math.Point2LL { return l.Fix.Location }
func (l *HoldLeg) PathStartPoint() math.Point2LL   { return l.Fix.Location }
func (l *HoldLeg) PathEndPoint() math.Point2LL     { return l.Fix.Location }
func (l *HoldLeg) OverflyTermFix() bool            { return true }

// Distance returns the length of one lap.
func (l *HoldLeg) Distance() float32 {
	return l.geometry.Length()
}

func (l *HoldLeg) DistanceToTermination() float32 {
	return PathLength(l.PredictedPath())
}

///////////////////////////////////////////////////////////////////////////
// Snapshots

// HoldSnapshot holds the mutable state of a HoldLeg so that it can be
// rolled back.
type HoldSnapshot struct {
	Phase              HoldPhase
	InitialPhase       HoldPhase
	PredictedSpeed     float32
	HoldSpeed          float32
	Geometry           Racetrack
	ImmExit            bool
	ImmExitLength      float32
	TermConditionMet   bool
	TransitionEndPoint *math.Point2LL
	Altitude           *float32
}

func (l *HoldLeg) TakeSnapshot() HoldSnapshot {
	return deep.MustCopy(HoldSnapshot{
		Phase:              l.phase,
		InitialPhase:       l.initialPhase,
		PredictedSpeed:     l.predictedSpeed,
		HoldSpeed:          l.holdSpeed,
		Geometry:           l.geometry,
		ImmExit:            l.immExit,
		ImmExitLength:      l.immExitLength,
		TermConditionMet:   l.termConditionMet,
		TransitionEndPoint: l.transitionEndPoint,
		Altitude:           l.altitude,
	})
}

func (l *HoldLeg) RestoreSnapshot(snap HoldSnapshot) {
	snap = deep.MustCopy(snap)
	l.phase = snap.Phase
	l.initialPhase = snap.InitialPhase
	l.predictedSpeed = snap.PredictedSpeed
	l.holdSpeed = snap.HoldSpeed
	l.geometry = snap.Geometry
	l.immExit = snap.ImmExit
	l.immExitLength = snap.ImmExitLength
	l.termConditionMet = snap.TermConditionMet
	l.transitionEndPoint = snap.TransitionEndPoint
	l.altitude = snap.Altitude
}
