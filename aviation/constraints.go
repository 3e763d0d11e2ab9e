// aviation/constraints.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package aviation

import (
	"fmt"
	"strings"
)

type AltitudeConstraintType int

const (
	AltitudeConstraintNone AltitudeConstraintType = iota
	AltitudeConstraintAt
	AltitudeConstraintAtOrAbove
	AltitudeConstraintAtOrBelow
	AltitudeConstraintBetween
)

func (t AltitudeConstraintType) String() string {
	return []string{"none", "at", "at_or_above", "at_or_below", "between"}[int(t)]
}

func (t AltitudeConstraintType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *AltitudeConstraintType) UnmarshalText(b []byte) error {
	for i, s := range []string{"none", "at", "at_or_above", "at_or_below", "between"} {
		if strings.EqualFold(s, string(b)) {
			*t = AltitudeConstraintType(i)
			return nil
		}
	}
	return fmt.Errorf("%s: unknown altitude constraint type", string(b))
}

// AltitudeConstraint follows ARINC 424 coding: for "between", Altitude1
// is the upper limit and Altitude2 the lower one.
type AltitudeConstraint struct {
	Type      AltitudeConstraintType `json:"type"`
	Altitude1 float32                `json:"altitude1,omitempty"`
	Altitude2 float32                `json:"altitude2,omitempty"`
}

func (c AltitudeConstraint) IsZero() bool {
	return c.Type == AltitudeConstraintNone
}

// LegAltitude returns the altitude coded for the leg, if any.
func (c AltitudeConstraint) LegAltitude() (float32, bool) {
	if c.Type == AltitudeConstraintNone || c.Altitude1 <= 0 {
		return 0, false
	}
	return c.Altitude1, true
}

func (c AltitudeConstraint) String() string {
	switch c.Type {
	case AltitudeConstraintAt:
		return fmt.Sprintf("%.0f", c.Altitude1)
	case AltitudeConstraintAtOrAbove:
		return fmt.Sprintf("%.0f+", c.Altitude1)
	case AltitudeConstraintAtOrBelow:
		return fmt.Sprintf("%.0f-", c.Altitude1)
	case AltitudeConstraintBetween:
		return fmt.Sprintf("%.0f-%.0f", c.Altitude2, c.Altitude1)
	default:
		return "none"
	}
}
