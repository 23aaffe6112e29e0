package trackgeometry

import (
	"github.com/theoremus-urban-solutions/subway-validator/internal/diagnostics"
	"github.com/theoremus-urban-solutions/subway-validator/internal/elementindex"
	"github.com/theoremus-urban-solutions/subway-validator/internal/geometry"
	"github.com/theoremus-urban-solutions/subway-validator/internal/route"
)

// RecoveryLookup resolves a (colour, ref) pair to a reordered stop
// sequence, given as indices into stopNames/stopCentroids, from externally
// supplied recovery data, or ok=false if no unambiguous itinerary matches. Implemented by internal/recovery; kept
// as a function type here so trackgeometry has no import-time dependency
// on the recovery file format.
type RecoveryLookup func(colour, ref string, stopNames []string, stopCentroids []geometry.Point) (order []int, ok bool)

func resolveWayNodes(ix *elementindex.Index, t route.TrackRef, diag *diagnostics.Collector) []geometry.Point {
	way := ix.Get(t.WayId)
	if way == nil {
		diag.Warn("track way not found in dataset", nil)
		return nil
	}
	pts := make([]geometry.Point, 0, len(way.Nodes))
	for _, nodeId := range way.Nodes {
		node := ix.Get(nodeId)
		if node == nil || node.Coord == nil {
			diag.Warn("track way references a node missing from the dataset", way.Ref())
			return nil
		}
		pts = append(pts, geometry.Point{Lon: node.Coord.Lon, Lat: node.Coord.Lat})
	}
	if t.Backward {
		pts = reversePoints(pts)
	}
	return pts
}

// Result carries every geometric output the validation report and the
// distance-monotonicity tests consume.
type Result struct {
	Track           []geometry.Point
	ExtendedTrack   []geometry.Point
	TruncatedTrack  []geometry.Point
	FirstOnRails    int
	LastOnRails     int
	Distances       []float64
}

// Apply runs the full TrackGeometry pipeline over rt: stitches its track
// ways into the longest polyline, projects stops, checks ordering,
// reverses/recovers as needed, and rewrites on-tracks stop positions in
// place. diag receives every warning/notice/error this pass produces.
func Apply(ix *elementindex.Index, diag *diagnostics.Collector, rt *route.Route, recover RecoveryLookup) Result {
	ways := make([][]geometry.Point, 0, len(rt.Tracks))
	for _, t := range rt.Tracks {
		ways = append(ways, resolveWayNodes(ix, t, diag))
	}
	stitched := StitchLongestLine(ways)
	if stitched.HadGap {
		diag.Warn("hole in route rails", nil)
	}
	track := stitched.Track
	rt.TrackLine = track

	stopCoords := make([]geometry.Point, len(rt.Stops))
	for i, s := range rt.Stops {
		stopCoords[i] = s.Position
	}

	projections := ProjectStops(stopCoords, track)
	first, last := FirstLastOnRailsIndex(projections)

	mono := MonotonicityResult{Ordered: true}
	if first >= 0 {
		mono = CheckMonotonic(projections[first:last+1], rt.Circular)
		if !mono.Ordered {
			reversedTrack := reversePoints(track)
			reversedProjections := ProjectStops(stopCoords, reversedTrack)
			rFirst, rLast := FirstLastOnRailsIndex(reversedProjections)
			if rFirst >= 0 {
				if CheckMonotonic(reversedProjections[rFirst:rLast+1], rt.Circular).Ordered {
					diag.Warn("tracks seem to go opposite to stops", nil)
					track = reversedTrack
					rt.TrackLine = track
					projections = reversedProjections
					first, last = rFirst, rLast
					mono = MonotonicityResult{Ordered: true}
				}
			}
		}
		if !mono.Ordered && recover != nil {
			names := make([]string, len(rt.Stops))
			for i, s := range rt.Stops {
				names[i] = s.StopArea.Name
			}
			if order, ok := recover(derefOrEmpty(rt.Colour), rt.Ref, names, stopCoords); ok {
				reordered := make([]*route.RouteStop, len(order))
				for i, srcIdx := range order {
					if srcIdx >= 0 && srcIdx < len(rt.Stops) {
						reordered[i] = rt.Stops[srcIdx]
					}
				}
				rt.Stops = reordered
				diag.Warn("stop order recovered from external itinerary data", nil)
			} else {
				diag.Error("stops are not ordered along the route's tracks", nil)
			}
		} else if !mono.Ordered {
			diag.Error("stops are not ordered along the route's tracks", nil)
		}
	}

	for i := range rt.Stops {
		if i < first || i > last {
			continue
		}
		p := projections[i]
		switch {
		case !p.Found:
			diag.Error("stop has no projection onto the route's tracks", nil)
		case !p.OnTracks():
			diag.Notice("stop projects too far from the route's tracks", nil)
		default:
			rt.Stops[i].Position = p.Foot
		}
	}

	angleViolations := CheckStopAngles(stopCoords)
	for _, v := range angleViolations {
		if v.IsError {
			diag.Error("sharp angle at route stop", nil)
		} else {
			diag.Warn("sharp angle at route stop", nil)
		}
	}

	extended := ExtendedTrack(stopCoords, track, first, last)
	var truncated []geometry.Point
	if len(stopCoords) > 0 {
		truncated = TruncatedTrack(extended, stopCoords[0], stopCoords[len(stopCoords)-1], rt.Circular)
	}

	distances := CumulativeDistances(stopCoords, projections, first, last)
	for i := range rt.Stops {
		rt.Stops[i].Distance = distances[i]
	}

	rt.FirstStopOnRailsIndex = first
	rt.LastStopOnRailsIndex = last

	if rt.Circular && len(track) > 1 && !pointsEqual(track[0], track[len(track)-1]) {
		diag.Warn("non-closed rail sequence in a circular route", nil)
	}

	return Result{
		Track: track, ExtendedTrack: extended, TruncatedTrack: truncated,
		FirstOnRails: first, LastOnRails: last, Distances: distances,
	}
}

func derefOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
