// nav/sequence.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package nav

import (
	"log/slog"

	"github.com/fmgs/lnav/log"
)

// LegSequence flies an ordered list of legs, sequencing from one to the
// next as each is completed. It owns its legs; neither it nor they are
// safe for concurrent use.
type LegSequence struct {
	Legs   []Leg
	active int
	lg     *log.Logger
}

func MakeLegSequence(legs []Leg, lg *log.Logger) *LegSequence {
	return &LegSequence{Legs: legs, lg: lg}
}

// Active returns the leg currently being flown or nil if the sequence is
// complete.
func (s *LegSequence) Active() Leg {
	if s.active >= len(s.Legs) {
		return nil
	}
	return s.Legs[s.active]
}

func (s *LegSequence) ActiveIndex() int {
	return s.active
}

func (s *LegSequence) Done() bool {
	return s.active >= len(s.Legs)
}

// Update recomputes all of the legs for the current flight state and
// returns guidance for the active leg. The active leg is sequenced if it
// is complete and allows automatic sequencing; the returned bool
// indicates whether that happened.
func (s *LegSequence) Update(fs FlightState) (GuidanceParameters, bool, error) {
	leg := s.Active()
	if leg == nil {
		return GuidanceParameters{}, false, ErrNoActiveLeg
	}

	for i, l := range s.Legs {
		var prev, next Leg
		if i > 0 {
			prev = s.Legs[i-1]
		}
		if i+1 < len(s.Legs) {
			next = s.Legs[i+1]
		}
		l.RecomputeWithParameters(i == s.active, fs, prev, next)
	}

	params := leg.GetGuidanceParameters(fs)

	if s.ActiveLegComplete(fs) && !leg.DisableAutomaticSequencing() {
		s.advance("automatic")
		return params, true, nil
	}
	return params, false, nil
}

// ActiveLegComplete reports whether the active leg has no distance left
// to fly.
func (s *LegSequence) ActiveLegComplete(fs FlightState) bool {
	leg := s.Active()
	return leg != nil && leg.GetDistanceToGo(fs.Position) <= 0
}

// Sequence explicitly moves on to the next leg.
func (s *LegSequence) Sequence() error {
	if s.Active() == nil {
		return ErrNoActiveLeg
	}
	s.advance("explicit")
	return nil
}

func (s *LegSequence) advance(how string) {
	from := s.Legs[s.active]
	s.active++

	to := "(end)"
	if leg := s.Active(); leg != nil {
		to = leg.Ident()
	}
	NavLog(from.Ident(), NavLogSequence, "%s sequence %s -> %s", how, from.Ident(), to)
	s.lg.Info("sequenced leg", slog.String("from", from.Ident()), slog.String("to", to),
		slog.String("how", how))
}

// ImmediateExit forwards a pilot immediate exit request to the active leg.
func (s *LegSequence) ImmediateExit(exit bool, fs FlightState) error {
	leg := s.Active()
	if leg == nil {
		return ErrNoActiveLeg
	}
	ie, ok := leg.(ImmediateExiter)
	if !ok {
		return ErrImmediateExitUnsupported
	}
	ie.SetImmediateExit(exit, fs.Position, fs.TAS)
	return nil
}

// PredictedPath returns the predicted path from the active leg to the end
// of the sequence.
func (s *LegSequence) PredictedPath() []PathVector {
	var path []PathVector
	for _, leg := range s.Legs[min(s.active, len(s.Legs)):] {
		path = append(path, leg.PredictedPath()...)
	}
	return path
}

// SequenceSnapshot records the state of a LegSequence and its holds.
type SequenceSnapshot struct {
	Active int
	Holds  map[int]HoldSnapshot
}

func (s *LegSequence) TakeSnapshot() SequenceSnapshot {
	snap := SequenceSnapshot{Active: s.active, Holds: make(map[int]HoldSnapshot)}
	for i, leg := range s.Legs {
		if h, ok := leg.(*HoldLeg); ok {
			snap.Holds[i] = h.TakeSnapshot()
		}
	}
	return snap
}

func (s *LegSequence) RestoreSnapshot(snap SequenceSnapshot) {
	s.active = snap.Active
	for i, hs := range snap.Holds {
		if h, ok := s.Legs[i].(*HoldLeg); ok {
			h.RestoreSnapshot(hs)
		}
	}
}
