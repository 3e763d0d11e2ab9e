// nav/path.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package nav

import (
	"fmt"

	"github.com/fmgs/lnav/math"
)

type PathVectorType int

const (
	PathVectorLine PathVectorType = iota
	PathVectorArc
)

func (t PathVectorType) String() string {
	return []string{"Line", "Arc"}[int(t)]
}

// PathVector is one segment of a leg's predicted path.
type PathVector struct {
	Type       PathVectorType
	StartPoint math.Point2LL
	EndPoint   math.Point2LL
	// Arcs only
	CentrePoint math.Point2LL
	SweepAngle  float32 // degrees, positive clockwise
}

// Length returns the length of the segment in nautical miles.
func (pv PathVector) Length() float32 {
	if pv.Type == PathVectorArc {
		r := math.NMDistance2LL(pv.CentrePoint, pv.StartPoint)
		return r * math.Radians(math.Abs(pv.SweepAngle))
	}
	return math.NMDistance2LL(pv.StartPoint, pv.EndPoint)
}

func (pv PathVector) String() string {
	if pv.Type == PathVectorArc {
		return fmt.Sprintf("arc %s -> %s centre %s sweep %.0f", pv.StartPoint.DDString(),
			pv.EndPoint.DDString(), pv.CentrePoint.DDString(), pv.SweepAngle)
	}
	return fmt.Sprintf("line %s -> %s", pv.StartPoint.DDString(), pv.EndPoint.DDString())
}

// PathLength returns the summed length of the path's segments.
func PathLength(path []PathVector) float32 {
	var d float32
	for _, pv := range path {
		d += pv.Length()
	}
	return d
}
