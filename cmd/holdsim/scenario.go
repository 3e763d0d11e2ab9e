// cmd/holdsim/scenario.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package main

import (
	"errors"
	"fmt"
	"os"
	"slices"

	av "github.com/fmgs/lnav/aviation"
	"github.com/fmgs/lnav/log"
	"github.com/fmgs/lnav/math"
	"github.com/fmgs/lnav/nav"
	"github.com/fmgs/lnav/util"
)

var ErrInvalidScenario = errors.New("Invalid scenario")

type Scenario struct {
	Name     string         `json:"name"`
	Config   nav.Config     `json:"config"`
	Legs     []ScenarioLeg  `json:"legs"`
	Aircraft AircraftState  `json:"aircraft"`
	Commands []PilotCommand `json:"commands,omitempty"`

	// Altitude profile: the aircraft climbs or descends at ClimbRate
	// (feet per minute) until it reaches TargetAltitude.
	ClimbRate      float32 `json:"climb_rate,omitempty"`
	TargetAltitude float32 `json:"target_altitude,omitempty"`
}

type ScenarioLeg struct {
	Kind nav.HoldKind `json:"kind"`
	Fix  av.Fix       `json:"fix"`
	Hold av.Hold      `json:"hold"`
	// If not given, the first leg's initial phase is set from the hold
	// entry for the aircraft's initial position.
	InitialPhase       *nav.HoldPhase `json:"initial_phase,omitempty"`
	TransitionEndPoint *math.Point2LL `json:"transition_end_point,omitempty"`
}

type AircraftState struct {
	Position math.Point2LL `json:"position"`
	Track    float32       `json:"track"`
	TAS      float32       `json:"tas"`
	Altitude *float32      `json:"altitude,omitempty"` // unknown if not given
}

// PilotCommand sets or cancels an immediate exit before the given tick.
type PilotCommand struct {
	Tick          int  `json:"tick"`
	ImmediateExit bool `json:"immediate_exit"`
}

func LoadScenario(path string, lg *log.Logger) (*Scenario, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sc := &Scenario{Config: nav.DefaultConfig()}
	if err := util.UnmarshalJSON(f, sc); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	var e util.ErrorLogger
	e.Push(path)
	sc.Validate(&e)
	e.Pop()
	if e.HaveErrors() {
		e.PrintErrors(lg)
		return nil, fmt.Errorf("%w: %w", ErrInvalidScenario, e.Err())
	}

	slices.SortStableFunc(sc.Commands, func(a, b PilotCommand) int { return a.Tick - b.Tick })
	return sc, nil
}

func (sc *Scenario) Validate(e *util.ErrorLogger) {
	defer e.CheckDepth(e.CurrentDepth())

	if sc.Name == "" {
		e.ErrorString("\"name\" must be specified")
	}
	sc.Config.Validate(e)

	if len(sc.Legs) == 0 {
		e.ErrorString("no \"legs\" specified")
	}
	for i, leg := range sc.Legs {
		e.Push(fmt.Sprintf("leg %d (%s)", i, leg.Fix.Ident))
		if leg.Fix.Ident == "" {
			e.ErrorString("fix must have an \"ident\"")
		}
		leg.Hold.Validate(e)
		if leg.Kind == nav.HoldKindHA && leg.Hold.Altitude.IsZero() {
			e.ErrorString("HA hold must have an altitude constraint")
		}
		e.Pop()
	}

	if sc.Aircraft.TAS <= 0 {
		e.ErrorString("aircraft \"tas\" must be positive")
	}
	if sc.ClimbRate != 0 && sc.Aircraft.Altitude == nil {
		e.ErrorString("\"climb_rate\" requires an initial aircraft \"altitude\"")
	}
	for _, cmd := range sc.Commands {
		if cmd.Tick < 0 {
			e.ErrorString("command tick %d must not be negative", cmd.Tick)
		}
	}
}

// MakeSequence builds the legs to fly for the aircraft's initial state.
func (sc *Scenario) MakeSequence(fs nav.FlightState, lg *log.Logger) *nav.LegSequence {
	var legs []nav.Leg
	for i, sl := range sc.Legs {
		hl := nav.MakeHoldLeg(sl.Kind, sl.Fix, sl.Hold, sc.Config, fs, lg)

		if sl.InitialPhase != nil {
			hl.SetInitialState(*sl.InitialPhase)
		} else if i == 0 {
			track := math.Bearing2LL(fs.Position, sl.Fix.Location)
			entry := sl.Hold.Entry(track)
			hl.SetInitialState(nav.EntryPhase(entry))
			lg.Info("hold entry", "fix", sl.Fix.Ident, "entry", entry.String(), "phase", hl.Phase().String())
		}
		if sl.TransitionEndPoint != nil {
			hl.SetTransitionEndPoint(*sl.TransitionEndPoint)
		}

		legs = append(legs, hl)
	}
	return nav.MakeLegSequence(legs, lg)
}
