// Package trackgeometry stitches a route's track ways into the longest
// contiguous polyline, projects its stops onto that polyline, and checks
// stop ordering by angle and by along-line monotonicity — spec §4.5.
package trackgeometry

import "github.com/theoremus-urban-solutions/subway-validator/internal/geometry"

const samePointEpsilonDeg = 1e-9

func pointsEqual(a, b geometry.Point) bool {
	return absf(a.Lon-b.Lon) < samePointEpsilonDeg && absf(a.Lat-b.Lat) < samePointEpsilonDeg
}

func absf(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}

func reversePoints(pts []geometry.Point) []geometry.Point {
	out := make([]geometry.Point, len(pts))
	for i, p := range pts {
		out[len(pts)-1-i] = p
	}
	return out
}

func stripConsecutiveDuplicates(pts []geometry.Point) []geometry.Point {
	if len(pts) == 0 {
		return pts
	}
	out := pts[:1]
	for _, p := range pts[1:] {
		if !pointsEqual(p, out[len(out)-1]) {
			out = append(out, p)
		}
	}
	return out
}

// StitchResult is the outcome of stitching a route's track ways.
type StitchResult struct {
	Track  []geometry.Point
	HadGap bool
}

// StitchLongestLine iterates ways in member order (each already node-
// reversed by the caller for a "backward" role) and grows a polyline: a
// way that starts or ends at the current segment's last point extends it;
// the first join attempted on a segment may instead reverse the whole
// segment once and retry; anything else is a hole. A hole discards the
// way that caused it entirely and lets the next way seed a fresh segment,
// re-arming the one-time reversal retry for it. Track is whichever
// segment ends up longest.
func StitchLongestLine(ways [][]geometry.Point) StitchResult {
	nonEmpty := ways[:0:0]
	for _, w := range ways {
		if len(w) > 0 {
			nonEmpty = append(nonEmpty, w)
		}
	}
	if len(nonEmpty) == 0 {
		return StitchResult{}
	}

	longest := append([]geometry.Point{}, nonEmpty[0]...)
	current := longest
	hadGap := false
	triedReversal := false

	for i := 1; i < len(nonEmpty); i++ {
		way := nonEmpty[i]

		if current == nil {
			current = append([]geometry.Point{}, way...)
			triedReversal = false
			if len(current) > len(longest) {
				longest = current
			}
			continue
		}

		canReverse := !triedReversal
		triedReversal = true

		last := current[len(current)-1]
		switch {
		case pointsEqual(way[0], last):
			current = append(current, way[1:]...)
			if len(current) > len(longest) {
				longest = current
			}
			continue
		case pointsEqual(way[len(way)-1], last):
			current = append(current, reversePoints(way[:len(way)-1])...)
			if len(current) > len(longest) {
				longest = current
			}
			continue
		}

		if canReverse {
			reversedCurrent := reversePoints(current)
			rLast := reversedCurrent[len(reversedCurrent)-1]
			switch {
			case pointsEqual(way[0], rLast):
				current = append(reversedCurrent, way[1:]...)
				if len(current) > len(longest) {
					longest = current
				}
				continue
			case pointsEqual(way[len(way)-1], rLast):
				current = append(reversedCurrent, reversePoints(way[:len(way)-1])...)
				if len(current) > len(longest) {
					longest = current
				}
				continue
			}
		}

		hadGap = true
		current = nil
	}

	return StitchResult{Track: stripConsecutiveDuplicates(longest), HadGap: hadGap}
}
