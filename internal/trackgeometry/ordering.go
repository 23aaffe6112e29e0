package trackgeometry

import "github.com/theoremus-urban-solutions/subway-validator/internal/geometry"

// AngleWarningDegrees / AngleErrorDegrees gate the interior-stop angle
// test: an angle at a stop formed by its two neighbors below the warning
// threshold is suspicious; below the error threshold it invalidates the
// route.
const (
	AngleWarningDegrees = 45.0
	AngleErrorDegrees   = 20.0
)

// AngleViolation is one interior stop whose neighbor angle fell below a
// threshold.
type AngleViolation struct {
	Index   int
	Angle   float64
	IsError bool
}

// CheckStopAngles runs the angle test over every interior stop (not the
// first or last) of stops.
func CheckStopAngles(stops []geometry.Point) []AngleViolation {
	var out []AngleViolation
	for i := 1; i < len(stops)-1; i++ {
		a := geometry.Angle(stops[i-1], stops[i], stops[i+1])
		switch {
		case a < AngleErrorDegrees:
			out = append(out, AngleViolation{Index: i, Angle: a, IsError: true})
		case a < AngleWarningDegrees:
			out = append(out, AngleViolation{Index: i, Angle: a, IsError: false})
		}
	}
	return out
}

// MonotonicityResult is the outcome of the on-line ordering scan.
type MonotonicityResult struct {
	Ordered          bool
	ViolationIndices []int
}

// CheckMonotonic scans projected stops in order, tracking the running
// maximum arc length; each next position must be >= that maximum. Rather
// than committing to a stop's nearest-segment arc length, it retries
// among the stop's other near-segment Candidates for one that keeps the
// sequence non-decreasing — a track passing close to the same stop more
// than once shouldn't read as an ordering violation when some other
// near-segment would have kept it ordered. A circular route tolerates
// exactly one violation (the wrap-around back to the start).
func CheckMonotonic(projections []StopProjection, circular bool) MonotonicityResult {
	if len(projections) == 0 {
		return MonotonicityResult{Ordered: true}
	}
	maxSoFar := projections[0].ArcLength
	var violations []int
	for i := 1; i < len(projections); i++ {
		if arc, ok := bestCandidateAtOrAbove(projections[i], maxSoFar); ok {
			maxSoFar = arc
			continue
		}
		violations = append(violations, i)
		if projections[i].ArcLength > maxSoFar {
			maxSoFar = projections[i].ArcLength
		}
	}
	allowed := 0
	if circular {
		allowed = 1
	}
	return MonotonicityResult{Ordered: len(violations) <= allowed, ViolationIndices: violations}
}

// bestCandidateAtOrAbove returns the smallest of p's arc-length
// candidates (its nearest-segment ArcLength, or one of its other
// Candidates) that is >= floor, or ok=false if none qualify.
func bestCandidateAtOrAbove(p StopProjection, floor float64) (arc float64, ok bool) {
	if p.ArcLength >= floor {
		arc, ok = p.ArcLength, true
	}
	for _, c := range p.Candidates {
		if c >= floor && (!ok || c < arc) {
			arc, ok = c, true
		}
	}
	return arc, ok
}

// FirstLastOnRailsIndex computes first_stop_on_rails_index (the first
// on-tracks stop) and last_stop_on_rails_index (scanning from the end,
// not below first). Returns (-1, -1) if no stop is on tracks.
func FirstLastOnRailsIndex(projections []StopProjection) (first, last int) {
	first, last = -1, -1
	for i, p := range projections {
		if p.OnTracks() {
			first = i
			break
		}
	}
	if first == -1 {
		return -1, -1
	}
	for i := len(projections) - 1; i >= first; i-- {
		if projections[i].OnTracks() {
			last = i
			break
		}
	}
	return first, last
}

// ExtendedTrack prepends the coordinates of leading stops (index < first)
// and appends the coordinates of trailing stops (index > last) to track.
func ExtendedTrack(stops []geometry.Point, track []geometry.Point, first, last int) []geometry.Point {
	var out []geometry.Point
	if first >= 0 {
		out = append(out, stops[:first]...)
	}
	out = append(out, track...)
	if last >= 0 && last+1 < len(stops) {
		out = append(out, stops[last+1:]...)
	}
	return out
}

// TruncatedTrack clips extended to the segment containing the first stop
// and the segment containing the last stop, pinning the endpoints to
// those stops. Circular routes are never truncated (the full extended
// track is returned).
func TruncatedTrack(extended []geometry.Point, firstStop, lastStop geometry.Point, circular bool) []geometry.Point {
	if circular {
		return extended
	}
	if len(extended) == 0 {
		return nil
	}
	startIdx, endIdx := 0, len(extended)-1
	bestStart, bestEnd := -1, -1
	bestStartDist, bestEndDist := 0.0, 0.0
	for i := 0; i < len(extended)-1; i++ {
		proj := geometry.ProjectOntoSegment(firstStop, extended[i], extended[i+1])
		if bestStart == -1 || proj.Distance < bestStartDist {
			bestStart, bestStartDist = i, proj.Distance
		}
	}
	for i := 0; i < len(extended)-1; i++ {
		proj := geometry.ProjectOntoSegment(lastStop, extended[i], extended[i+1])
		if bestEnd == -1 || proj.Distance < bestEndDist {
			bestEnd, bestEndDist = i, proj.Distance
		}
	}
	if bestStart == -1 || bestEnd == -1 || bestStart > bestEnd {
		return nil
	}
	startIdx, endIdx = bestStart+1, bestEnd

	out := make([]geometry.Point, 0, endIdx-startIdx+3)
	out = append(out, firstStop)
	out = append(out, extended[startIdx:endIdx+1]...)
	out = append(out, lastStop)
	return out
}

// CumulativeDistances computes each stop's cumulative distance from the
// route start, per spec §4.5 "Distance": between first/last on-rails it
// prefers along-polyline arc length when that is within
// [direct-10m, 2*direct] of the direct distance, falling back to direct
// distance otherwise (and always outside that range).
func CumulativeDistances(stops []geometry.Point, projections []StopProjection, first, last int) []float64 {
	out := make([]float64, len(stops))
	if len(stops) == 0 {
		return out
	}
	for i := 1; i < len(stops); i++ {
		direct := geometry.Distance(stops[i-1], stops[i])
		step := direct
		if i >= first && i <= last && first >= 0 && projections[i].Found && projections[i-1].Found {
			alongLine := absf(projections[i].ArcLength - projections[i-1].ArcLength)
			if alongLine >= direct-10 && alongLine <= 2*direct {
				step = alongLine
			}
		}
		out[i] = out[i-1] + step
	}
	return out
}
