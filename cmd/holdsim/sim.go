// cmd/holdsim/sim.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package main

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/fmgs/lnav/log"
	"github.com/fmgs/lnav/math"
	"github.com/fmgs/lnav/nav"
	"github.com/fmgs/lnav/util"
)

// Aircraft is a simple point-mass model: it rolls toward the commanded
// bank at a fixed rate and turns at the rate given by its bank and
// speed. There is no wind, so ground speed is equal to TAS.
type Aircraft struct {
	Position math.Point2LL
	Track    float32 // degrees true
	Bank     float32 // degrees, positive right
	TAS      float32 // knots
	Altitude *float32
}

func (ac *Aircraft) FlightState() nav.FlightState {
	fs := nav.FlightState{
		Position:  ac.Position,
		TrueTrack: ac.Track,
		TAS:       ac.TAS,
		GS:        ac.TAS,
	}
	if ac.Altitude != nil {
		alt := *ac.Altitude
		fs.IndicatedAltitude = &alt
	}
	return fs
}

// Update advances the aircraft by dt seconds.
func (ac *Aircraft) Update(bankCommand, dt float32) {
	maxRoll := nav.RollRate * dt
	ac.Bank += math.Clamp(bankCommand-ac.Bank, -maxRoll, maxRoll)

	v := ac.TAS * math.KnotsToMetersPerSecond
	if v > 0 {
		turnRate := math.Degrees(math.G * math.Tan(math.Radians(ac.Bank)) / v)
		ac.Track = math.NormalizeHeading(ac.Track + turnRate*dt)
	}

	ac.Position = math.Project2LL(ac.Position, ac.Track, ac.TAS*dt/3600)
}

// Climb moves the aircraft's altitude toward target at rate feet per
// minute.
func (ac *Aircraft) Climb(rate, target, dt float32) {
	if ac.Altitude == nil || rate == 0 {
		return
	}
	alt := *ac.Altitude
	step := math.Abs(rate) * dt / 60
	if alt < target {
		alt = min(alt+step, target)
	} else {
		alt = max(alt-step, target)
	}
	ac.Altitude = &alt
}

// Result summarizes a scenario run.
type Result struct {
	Scenario     string
	Ticks        int
	Sequenced    int
	PhaseChanges int
	Laps         int
	Completed    bool
	Position     math.Point2LL
	Altitude     float32
	Remaining    float32 // nm of predicted path left when the run ended
	Snapshot     nav.SequenceSnapshot
}

func (r Result) String() string {
	status := util.Select(r.Completed, "complete", "incomplete")
	return fmt.Sprintf("%s: %s after %d ticks, %d legs sequenced, %d phase changes, %d laps, %.1f nm remaining",
		r.Scenario, status, r.Ticks, r.Sequenced, r.PhaseChanges, r.Laps, r.Remaining)
}

// Run flies the scenario for up to ticks steps of dt seconds each. Pilot
// commands are applied before the tick they are scheduled for. If tw is
// non-nil, a record is written to it for every tick.
func (sc *Scenario) Run(ticks int, dt float32, tw *TraceWriter, lg *log.Logger) (Result, error) {
	lg = lg.With(slog.String("scenario", sc.Name))

	ac := &Aircraft{
		Position: sc.Aircraft.Position,
		Track:    sc.Aircraft.Track,
		TAS:      sc.Aircraft.TAS,
	}
	if sc.Aircraft.Altitude != nil {
		alt := *sc.Aircraft.Altitude
		ac.Altitude = &alt
	}

	seq := sc.MakeSequence(ac.FlightState(), lg)
	law := nav.DefaultLateralPathLaw()
	commands := sc.Commands

	res := Result{Scenario: sc.Name}
	lastPhase := make(map[nav.Leg]nav.HoldPhase)

	for tick := 0; tick < ticks; tick++ {
		fs := ac.FlightState()

		for len(commands) > 0 && commands[0].Tick <= tick {
			if err := seq.ImmediateExit(commands[0].ImmediateExit, fs); err != nil {
				lg.Warn("immediate exit command ignored", slog.Int("tick", tick), slog.Any("error", err))
			} else {
				lg.Info("immediate exit", slog.Int("tick", tick), slog.Bool("exit", commands[0].ImmediateExit))
			}
			commands = commands[1:]
		}

		leg := seq.Active()
		g, sequenced, err := seq.Update(fs)
		if errors.Is(err, nav.ErrNoActiveLeg) {
			res.Completed = true
			break
		} else if err != nil {
			return res, err
		}

		if h, ok := leg.(*nav.HoldLeg); ok {
			if prev, ok := lastPhase[leg]; ok && prev != h.Phase() {
				res.PhaseChanges++
				if prev == nav.HoldPhaseInbound && h.Phase() == nav.HoldPhaseArc1 {
					res.Laps++
				}
			}
			lastPhase[leg] = h.Phase()
		}

		if sequenced {
			res.Sequenced++
		} else if t, ok := leg.(nav.Terminator); ok && t.TerminationConditionMet() && seq.ActiveLegComplete(fs) {
			// Conditional legs stay active at their fix until told to
			// move on.
			if err := seq.Sequence(); err != nil {
				return res, err
			}
			res.Sequenced++
		}

		bank := law.BankCommand(g)
		if tw != nil {
			rec := TraceRecord{
				Tick:         tick,
				Leg:          leg.Ident(),
				Position:     ac.Position,
				Track:        ac.Track,
				Bank:         ac.Bank,
				BankCommand:  bank,
				Guidance:     g,
				DistanceToGo: leg.GetDistanceToGo(ac.Position),
			}
			if h, ok := leg.(*nav.HoldLeg); ok {
				rec.Phase = h.Phase().String()
			}
			if ac.Altitude != nil {
				rec.Altitude = *ac.Altitude
			}
			if err := tw.Write(rec); err != nil {
				return res, err
			}
		}

		ac.Update(bank, dt)
		ac.Climb(sc.ClimbRate, sc.TargetAltitude, dt)
		res.Ticks = tick + 1
	}

	if seq.Done() {
		res.Completed = true
	}
	res.Position = ac.Position
	if ac.Altitude != nil {
		res.Altitude = *ac.Altitude
	}
	res.Remaining = nav.PathLength(seq.PredictedPath())
	res.Snapshot = seq.TakeSnapshot()

	lg.Info("scenario finished", slog.String("result", res.String()))

	return res, nil
}
