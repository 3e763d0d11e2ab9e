// nav/policy.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package nav

import (
	"github.com/fmgs/lnav/math"
)

// HADistanceToGoPlaceholder is returned as the distance to go of an HA
// hold until its altitude has been reached. The real value depends on
// the vertical profile, which isn't available here.
const HADistanceToGoPlaceholder = 42

// holdPolicy holds the functions that differ between the kinds of hold;
// they all share the HoldLeg state machine.
type holdPolicy struct {
	// Called before each state update to evaluate the termination
	// condition.
	update                     func(l *HoldLeg, fs FlightState)
	disableAutomaticSequencing func(l *HoldLeg) bool
	distanceToGo               func(l *HoldLeg, ppos math.Point2LL) float32
	predictedPath              func(l *HoldLeg) []PathVector
}

var holdPolicies map[HoldKind]holdPolicy

func init() {
	holdPolicies = map[HoldKind]holdPolicy{
		// Repeats until the pilot requests an exit.
		HoldKindHM: {
			update: func(l *HoldLeg, fs FlightState) {},
			disableAutomaticSequencing: func(l *HoldLeg) bool {
				return !l.immExit
			},
			distanceToGo: func(l *HoldLeg, ppos math.Point2LL) float32 {
				return l.distanceToGoThisOrbit(ppos)
			},
			predictedPath: func(l *HoldLeg) []PathVector {
				return l.geometry.Path()
			},
		},

		// Exits at the fix once the aircraft is at or above the constraint
		// altitude.
		HoldKindHA: {
			update: func(l *HoldLeg, fs FlightState) {
				met := fs.IndicatedAltitude != nil && *fs.IndicatedAltitude >= l.Hold.Altitude.Altitude1
				if met != l.termConditionMet {
					NavLog(l.Fix.Ident, NavLogHold, "altitude %.0f reached: %v", l.Hold.Altitude.Altitude1, met)
				}
				l.termConditionMet = met
			},
			disableAutomaticSequencing: func(l *HoldLeg) bool { return true },
			distanceToGo: func(l *HoldLeg, ppos math.Point2LL) float32 {
				if !l.termConditionMet {
					return HADistanceToGoPlaceholder
				}
				return l.distanceToGoThisOrbit(ppos)
			},
			predictedPath: func(l *HoldLeg) []PathVector {
				if !l.termConditionMet {
					return l.geometry.Path()
				}
				// Only the rest of the current lap.
				return l.geometry.PathFrom(l.phase)
			},
		},

		// Exits at the first crossing of the fix.
		HoldKindHF: {
			update: func(l *HoldLeg, fs FlightState) {
				l.termConditionMet = true
			},
			disableAutomaticSequencing: func(l *HoldLeg) bool { return true },
			distanceToGo: func(l *HoldLeg, ppos math.Point2LL) float32 {
				return l.distanceToGoThisOrbit(ppos)
			},
			predictedPath: func(l *HoldLeg) []PathVector {
				path := l.geometry.PathFrom(l.initialPhase)
				if l.transitionEndPoint != nil {
					path[0].StartPoint = *l.transitionEndPoint
				}
				return path
			},
		},
	}
}
