// aviation/hold.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package aviation

import (
	"fmt"
	"strings"

	"github.com/fmgs/lnav/math"
	"github.com/fmgs/lnav/util"
)

///////////////////////////////////////////////////////////////////////////
// Fix

// Fix is a named point that a leg terminates at.
type Fix struct {
	Ident    string        `json:"ident"`
	Location math.Point2LL `json:"location"`
}

///////////////////////////////////////////////////////////////////////////
// Hold

// TurnDirection specifies the direction of a turn.
type TurnDirection int

const (
	TurnClosest TurnDirection = iota // default: turn the shortest direction
	TurnLeft
	TurnRight
)

func (t TurnDirection) String() string {
	return []string{"closest", "left", "right"}[int(t)]
}

func (t TurnDirection) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *TurnDirection) UnmarshalText(b []byte) error {
	switch strings.ToLower(string(b)) {
	case "closest", "":
		*t = TurnClosest
	case "left", "l":
		*t = TurnLeft
	case "right", "r":
		*t = TurnRight
	default:
		return fmt.Errorf("%s: invalid turn direction", string(b))
	}
	return nil
}

// Hold describes a holding pattern at a fix. Unlike published holds, the
// inbound course is given in degrees true.
type Hold struct {
	InboundCourse float32       `json:"inbound_course"`
	TurnDirection TurnDirection `json:"turn"`
	LegLengthNM   float32       `json:"leg_length_nm,omitempty"` // Distance-based leg length, 0 if time-based
	LegMinutes    float32       `json:"leg_minutes,omitempty"`   // Time-based leg duration, 0 if distance-based or default timing

	Altitude AltitudeConstraint `json:"altitude,omitzero"`
	// Speed constraint at the fix (KCAS), 0 if none.
	SpeedConstraint float32 `json:"speed_constraint,omitempty"`
}

func (h Hold) OutboundCourse() float32 {
	return math.OppositeHeading(h.InboundCourse)
}

func (h Hold) DisplayName(fix string) string {
	n := fmt.Sprintf("%s (%s", fix, h.TurnDirection)
	if h.LegLengthNM != 0 {
		n += fmt.Sprintf(", %.1f nm", h.LegLengthNM)
	} else if h.LegMinutes != 0 {
		n += fmt.Sprintf(", %.1f min", h.LegMinutes)
	}
	return n + ")"
}

// Validate reports problems with the hold definition to e.
func (h Hold) Validate(e *util.ErrorLogger) {
	if h.InboundCourse < 0 || h.InboundCourse > 360 {
		e.ErrorString("inbound course %.1f must be in [0,360]", h.InboundCourse)
	}
	if h.TurnDirection != TurnLeft && h.TurnDirection != TurnRight {
		e.ErrorString("turn direction must be \"left\" or \"right\"")
	}
	if h.LegLengthNM < 0 {
		e.ErrorString("leg length %.1f nm must not be negative", h.LegLengthNM)
	}
	if h.LegMinutes < 0 {
		e.ErrorString("leg time %.1f minutes must not be negative", h.LegMinutes)
	}
	if h.LegLengthNM > 0 && h.LegMinutes > 0 {
		e.ErrorString("only one of \"leg_length_nm\" and \"leg_minutes\" may be given")
	}
	if h.SpeedConstraint < 0 {
		e.ErrorString("speed constraint %.0f must not be negative", h.SpeedConstraint)
	}
}

type HoldEntry int

const (
	HoldEntryDirect HoldEntry = iota
	HoldEntryParallel
	HoldEntryTeardrop
)

func (e HoldEntry) String() string {
	return []string{"Direct", "Parallel", "Teardrop"}[int(e)]
}

// Entry returns the entry procedure for an aircraft approaching the
// holding fix on the given track.
func (h Hold) Entry(trackToFix float32) HoldEntry {
	outboundCourse := h.OutboundCourse()

	// The dividing line is 70 degrees from outbound on the holding side,
	// which gives three sectors measured from the outbound course:
	// parallel (110 degrees on the holding side), teardrop (70 degrees on
	// the non-holding side) and direct (the remaining 180).
	if h.TurnDirection == TurnLeft {
		if math.IsHeadingBetween(trackToFix, outboundCourse-110, outboundCourse) {
			return HoldEntryParallel
		} else if math.IsHeadingBetween(trackToFix, outboundCourse, outboundCourse+70) {
			return HoldEntryTeardrop
		}
		return HoldEntryDirect
	}

	if math.IsHeadingBetween(trackToFix, outboundCourse, outboundCourse+110) {
		return HoldEntryParallel
	} else if math.IsHeadingBetween(trackToFix, outboundCourse-70, outboundCourse) {
		return HoldEntryTeardrop
	}
	return HoldEntryDirect
}
