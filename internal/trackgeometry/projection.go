package trackgeometry

import (
	"sort"

	"github.com/theoremus-urban-solutions/subway-validator/internal/geometry"
)

// MaxStopToLineMeters is MAX_DISTANCE_STOP_TO_LINE: a stop is "on tracks"
// only if its nearest projected point lies within this distance.
const MaxStopToLineMeters = 100.0

// StopProjection is the result of projecting one stop onto a track
// polyline.
type StopProjection struct {
	Found    bool
	Foot     geometry.Point
	Distance float64
	// ArcLength is the cumulative along-line distance from track[0] to
	// Foot (the nearest segment's projection), used for the monotonicity
	// ordering check.
	ArcLength float64
	// Candidates holds, in ascending order, the along-line arc length of
	// every segment within MaxStopToLineMeters of the stop — not just the
	// nearest one. A track that passes close to the same stop more than
	// once (a loop, a shared approach) gives the monotonicity check more
	// than one plausible position to retry before flagging a violation.
	Candidates []float64
}

// OnTracks reports whether the projection both exists and falls within
// MaxStopToLineMeters of the polyline.
func (p StopProjection) OnTracks() bool {
	return p.Found && p.Distance <= MaxStopToLineMeters
}

// ProjectStop finds the perpendicular foot of stop on the nearest segment
// of track, returning the along-line arc length to that foot, plus every
// other near-segment's arc length as a Candidates list. Returns
// Found=false if track has fewer than two points.
func ProjectStop(stop geometry.Point, track []geometry.Point) StopProjection {
	if len(track) < 2 {
		return StopProjection{}
	}

	var best geometry.Projection
	bestSeg := -1
	cumulative := make([]float64, len(track))
	for i := 1; i < len(track); i++ {
		cumulative[i] = cumulative[i-1] + geometry.Distance(track[i-1], track[i])
	}

	var candidates []float64
	for i := 0; i < len(track)-1; i++ {
		proj := geometry.ProjectOntoSegment(stop, track[i], track[i+1])
		if bestSeg == -1 || proj.Distance < best.Distance {
			best = proj
			bestSeg = i
		}
		if proj.Distance <= MaxStopToLineMeters {
			segLen := cumulative[i+1] - cumulative[i]
			candidates = append(candidates, cumulative[i]+proj.T*segLen)
		}
	}
	if bestSeg == -1 {
		return StopProjection{}
	}
	sort.Float64s(candidates)

	segLen := cumulative[bestSeg+1] - cumulative[bestSeg]
	arc := cumulative[bestSeg] + best.T*segLen
	return StopProjection{Found: true, Foot: best.Foot, Distance: best.Distance, ArcLength: arc, Candidates: candidates}
}

// ProjectStops projects every stop coordinate onto track, in order.
func ProjectStops(stops []geometry.Point, track []geometry.Point) []StopProjection {
	out := make([]StopProjection, len(stops))
	for i, s := range stops {
		out[i] = ProjectStop(s, track)
	}
	return out
}
