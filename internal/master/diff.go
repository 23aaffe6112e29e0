package master

import (
	"github.com/theoremus-urban-solutions/subway-validator/internal/diagnostics"
	"github.com/theoremus-urban-solutions/subway-validator/internal/geometry"
	"github.com/theoremus-urban-solutions/subway-validator/internal/route"
	"github.com/theoremus-urban-solutions/subway-validator/internal/trackgeometry"
)

// SubstitutedPair is one aligned position where a and b's twin-route diff
// lines up two different stops rather than a matching one.
type SubstitutedPair struct {
	A, B *route.RouteStop
}

// TwinDiff is the result of aligning two twin routes' stop sequences by
// edit distance: stops present in B's alignment position but missing from
// A's stop list, vice versa, and positions where the alignment substitutes
// one route's stop for the other's.
type TwinDiff struct {
	MissingFromA []*route.RouteStop
	MissingFromB []*route.RouteStop
	Substituted  []SubstitutedPair
}

// CalculateTwinRoutesDiff aligns a's stop sequence with b's reversed stop
// sequence (twins run in opposite directions) using a Wagner–Fischer edit
// distance over insertion, deletion, and substitution, and backtracks the
// alignment into the missing-stop lists plus the substituted-pair list.
func CalculateTwinRoutesDiff(a, b *route.Route) TwinDiff {
	as := a.Stops
	bs := make([]*route.RouteStop, len(b.Stops))
	for i, s := range b.Stops {
		bs[len(b.Stops)-1-i] = s
	}
	n, m := len(as), len(bs)

	dp := make([][]int, n+1)
	for i := range dp {
		dp[i] = make([]int, m+1)
		dp[i][0] = i
	}
	for j := 0; j <= m; j++ {
		dp[0][j] = j
	}
	for i := 1; i <= n; i++ {
		for j := 1; j <= m; j++ {
			if as[i-1].StopArea.Id == bs[j-1].StopArea.Id {
				dp[i][j] = dp[i-1][j-1]
				continue
			}
			best := dp[i-1][j-1] + 1 // substitution
			if del := dp[i-1][j] + 1; del < best {
				best = del
			}
			if ins := dp[i][j-1] + 1; ins < best {
				best = ins
			}
			dp[i][j] = best
		}
	}

	var diff TwinDiff
	i, j := n, m
	for i > 0 || j > 0 {
		switch {
		case i > 0 && j > 0 && as[i-1].StopArea.Id == bs[j-1].StopArea.Id:
			i--
			j--
		case i > 0 && j > 0 && dp[i][j] == dp[i-1][j-1]+1:
			diff.Substituted = append([]SubstitutedPair{{A: as[i-1], B: bs[j-1]}}, diff.Substituted...)
			i--
			j--
		case i > 0 && (j == 0 || dp[i-1][j]+1 == dp[i][j]):
			diff.MissingFromB = append([]*route.RouteStop{as[i-1]}, diff.MissingFromB...)
			i--
		default:
			diff.MissingFromA = append([]*route.RouteStop{bs[j-1]}, diff.MissingFromA...)
			j--
		}
	}
	return diff
}

// transferLikelyAt reports whether a substituted pair of stops sits close
// enough to one another — the same station, or within
// trackgeometry.MaxStopToLineMeters — that the mismatch looks like a
// missed transfer rather than a genuine route divergence.
func transferLikelyAt(a, b *route.RouteStop) bool {
	if a.StopArea.Station != nil && b.StopArea.Station != nil && a.StopArea.Station.Id == b.StopArea.Station.Id {
		return true
	}
	return geometry.Distance(a.Position, b.Position) <= trackgeometry.MaxStopToLineMeters
}

// missingStopPlausible reports whether stop's position is explained by
// missingFrom's own tracks: either those tracks are too short to judge, or
// stop projects onto them within trackgeometry.MaxStopToLineMeters. Either
// way it's evidence the stop is a genuine omission rather than a
// divergence between the two routes.
func missingStopPlausible(missingFrom *route.Route, stop *route.RouteStop) bool {
	if len(missingFrom.TrackLine) < 2 {
		return true
	}
	return trackgeometry.ProjectStop(stop.Position, missingFrom.TrackLine).OnTracks()
}

// EmitTwinDiffNotices reports diff's findings for pair into diag: a
// "should there be a transfer here?" notice for substituted stop pairs
// that sit close enough to suggest a missed transfer, and a per-stop
// "twin routes disagree on stop sequence" notice for stops missing from
// one side, attributed to whichever route actually lacks the stop and
// gated on whether that route's own tracks plausibly pass by it.
func EmitTwinDiffNotices(pair TwinPair, diff TwinDiff, diag *diagnostics.Collector) {
	for _, sp := range diff.Substituted {
		if transferLikelyAt(sp.A, sp.B) {
			diag.Notice("should there be a transfer here?", pair.A.Id.DiagRef(pair.A.Name))
		}
	}
	for _, stop := range diff.MissingFromA {
		if missingStopPlausible(pair.A, stop) {
			diag.Notice("twin routes disagree on stop sequence", pair.A.Id.DiagRef(pair.A.Name))
		}
	}
	for _, stop := range diff.MissingFromB {
		if missingStopPlausible(pair.B, stop) {
			diag.Notice("twin routes disagree on stop sequence", pair.B.Id.DiagRef(pair.B.Name))
		}
	}
}
