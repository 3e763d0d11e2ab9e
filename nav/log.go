// nav/log.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package nav

// Trace categories for NavLog.
const (
	NavLogHold     = "hold"     // immediate exit and termination conditions
	NavLogPhase    = "phase"    // racetrack phase changes
	NavLogGeometry = "geometry" // racetrack recomputation
	NavLogSequence = "sequence" // leg sequencing
)

var navLogCategories = []string{NavLogHold, NavLogPhase, NavLogGeometry, NavLogSequence}
