// math/latlong.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package math

import (
	"encoding/json"
	"fmt"
	gomath "math"
	"strconv"
	"strings"
)

// Mean earth radius in nautical miles (6371 km).
const EarthRadiusNM = 6371000 * 0.000539957

const NMPerLatitude = 60

///////////////////////////////////////////////////////////////////////////
// Point2LL

// Point2LL represents a 2D point on the Earth in latitude-longitude.
// Important: 0 (x) is longitude, 1 (y) is latitude
type Point2LL [2]float32

func (p Point2LL) Longitude() float32 {
	return p[0]
}

func (p Point2LL) Latitude() float32 {
	return p[1]
}

func (p Point2LL) IsZero() bool {
	return p[0] == 0 && p[1] == 0
}

// DDString returns the position in decimal degrees, e.g.:
// (39.860901, -75.274864)
func (p Point2LL) DDString() string {
	return fmt.Sprintf("(%f, %f)", p[1], p[0]) // latitude, longitude
}

// DMSString returns the position in degrees minutes, seconds, e.g.
// N039.51.39.243,W075.16.29.511
func (p Point2LL) DMSString() string {
	format := func(v float32) string {
		// Work in integer milliseconds of arc so that rounding can't
		// produce 60 seconds.
		ms := int64(gomath.Round(float64(Abs(v)) * 3600000))
		deg := ms / 3600000
		ms -= deg * 3600000
		min := ms / 60000
		ms -= min * 60000
		return fmt.Sprintf("%03d.%02d.%02d.%03d", deg, min, ms/1000, ms%1000)
	}

	ns, ew := "N", "E"
	if p[1] < 0 {
		ns = "S"
	}
	if p[0] < 0 {
		ew = "W"
	}
	return ns + format(p[1]) + "," + ew + format(p[0])
}

// ParseLatLong parses positions given either as "N40.37.58.400,
// W073.46.17.000" or as a pair of decimal degrees, "40.6328888,
// -73.771385" (latitude first in both cases).
func ParseLatLong(llstr []byte) (Point2LL, error) {
	s := strings.TrimSpace(string(llstr))
	lat, long, ok := strings.Cut(s, ",")
	if !ok {
		return Point2LL{}, fmt.Errorf("%s: invalid latlong string", s)
	}
	lat, long = strings.TrimSpace(lat), strings.TrimSpace(long)

	if len(lat) > 0 && (lat[0] == 'N' || lat[0] == 'S') {
		la, err := parseDotted(lat, 'N', 'S')
		if err != nil {
			return Point2LL{}, fmt.Errorf("%s: %w", s, err)
		}
		lo, err := parseDotted(long, 'E', 'W')
		if err != nil {
			return Point2LL{}, fmt.Errorf("%s: %w", s, err)
		}
		return Point2LL{lo, la}, nil
	}

	la, err := strconv.ParseFloat(lat, 32)
	if err != nil {
		return Point2LL{}, fmt.Errorf("%s: invalid latitude: %w", s, err)
	}
	lo, err := strconv.ParseFloat(long, 32)
	if err != nil {
		return Point2LL{}, fmt.Errorf("%s: invalid longitude: %w", s, err)
	}
	if gomath.Abs(la) > 90 || gomath.Abs(lo) > 180 {
		return Point2LL{}, fmt.Errorf("%s: latlong out of range", s)
	}
	return Point2LL{float32(lo), float32(la)}, nil
}

// parseDotted handles one hemisphere-prefixed ddd.mm.ss.fff component.
func parseDotted(s string, pos, neg byte) (float32, error) {
	if len(s) == 0 || (s[0] != pos && s[0] != neg) {
		return 0, fmt.Errorf("expected %c or %c", pos, neg)
	}
	fields := strings.Split(s[1:], ".")
	if len(fields) != 4 {
		return 0, fmt.Errorf("%s: expected four dotted fields", s)
	}

	scales := [4]float64{1, 60, 3600, 3600000}
	var v float64
	for i, f := range fields {
		if f == "" {
			return 0, fmt.Errorf("%s: empty field", s)
		}
		n, err := strconv.Atoi(f)
		if err != nil || n < 0 {
			return 0, fmt.Errorf("%s: invalid field %q", s, f)
		}
		if i == 3 {
			// Treat the last set of digits as a decimal, so that
			// Nxx.yy.zz.1 is handled like Nxx.yy.zz.100.
			for j := len(f); j < 3; j++ {
				n *= 10
			}
		}
		v += float64(n) / scales[i]
	}

	if s[0] == neg {
		v = -v
	}
	return float32(v), nil
}

// NMDistance2LL returns the great-circle distance in nautical miles
// between two provided lat-long coordinates.
func NMDistance2LL(a Point2LL, b Point2LL) float32 {
	// https://www.movable-type.co.uk/scripts/latlong.html
	lat1, lon1 := radians64(a[1]), radians64(a[0])
	lat2, lon2 := radians64(b[1]), radians64(b[0])
	dlat, dlon := lat2-lat1, lon2-lon1

	x := Sqr(gomath.Sin(dlat/2)) + gomath.Cos(lat1)*gomath.Cos(lat2)*Sqr(gomath.Sin(dlon/2))
	c := 2 * gomath.Atan2(gomath.Sqrt(x), gomath.Sqrt(1-x))

	return float32(EarthRadiusNM * c)
}

// Bearing2LL returns the initial great-circle course from |from| to |to|
// in degrees true, in the range [0,360).
func Bearing2LL(from Point2LL, to Point2LL) float32 {
	lat1, lon1 := radians64(from[1]), radians64(from[0])
	lat2, lon2 := radians64(to[1]), radians64(to[0])
	dlon := lon2 - lon1

	y := gomath.Sin(dlon) * gomath.Cos(lat2)
	x := gomath.Cos(lat1)*gomath.Sin(lat2) - gomath.Sin(lat1)*gomath.Cos(lat2)*gomath.Cos(dlon)
	return NormalizeHeading(float32(gomath.Atan2(y, x) * 180 / gomath.Pi))
}

// Project2LL returns the point reached by following the great circle
// leaving p with initial course hdg (degrees true) for dist nautical
// miles.
func Project2LL(p Point2LL, hdg float32, dist float32) Point2LL {
	if dist == 0 {
		return p
	}
	lat1, lon1 := radians64(p[1]), radians64(p[0])
	brg := radians64(hdg)
	d := float64(dist) / EarthRadiusNM

	lat2 := gomath.Asin(gomath.Sin(lat1)*gomath.Cos(d) + gomath.Cos(lat1)*gomath.Sin(d)*gomath.Cos(brg))
	lon2 := lon1 + gomath.Atan2(gomath.Sin(brg)*gomath.Sin(d)*gomath.Cos(lat1),
		gomath.Cos(d)-gomath.Sin(lat1)*gomath.Sin(lat2))

	// Wrap longitude to [-180,180)
	lon2 = gomath.Mod(lon2+3*gomath.Pi, 2*gomath.Pi) - gomath.Pi

	return Point2LL{float32(lon2 * 180 / gomath.Pi), float32(lat2 * 180 / gomath.Pi)}
}

func radians64(d float32) float64 {
	return float64(d) / 180 * gomath.Pi
}

// Store Point2LLs as strings is JSON, for compactness/friendliness...
func (p Point2LL) MarshalJSON() ([]byte, error) {
	return []byte("\"" + p.DMSString() + "\""), nil
}

func (p *Point2LL) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '[' {
		// [longitude, latitude] pairs are also accepted
		var pt [2]float32
		err := json.Unmarshal(b, &pt)
		if err == nil {
			*p = pt
		}
		return err
	}

	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	pt, err := ParseLatLong([]byte(s))
	if err == nil {
		*p = pt
	}
	return err
}
