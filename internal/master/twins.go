package master

import (
	"github.com/theoremus-urban-solutions/subway-validator/internal/diagnostics"
	"github.com/theoremus-urban-solutions/subway-validator/internal/elementindex"
	"github.com/theoremus-urban-solutions/subway-validator/internal/route"
)

// EndTransferPair identifies a non-circular route by the transfer (or
// stop-area, if no transfer) ids at each end, used both for the
// return-direction check and for twin pairing.
type EndTransferPair struct {
	From, To elementindex.Id
}

// Reversed swaps From/To.
func (p EndTransferPair) Reversed() EndTransferPair { return EndTransferPair{From: p.To, To: p.From} }

// endId returns rs's raw stop-area id. endTransferPair substitutes the
// transfer key when the stop has a transfer, and falls back to these raw
// ids when both ends share one, to avoid false circularity.
func endId(rs *route.RouteStop) elementindex.Id {
	return rs.StopArea.Id
}

// endTransferPair computes rt's end-transfer pair for the return-
// direction and twin-pairing checks.
func endTransferPair(rt *route.Route) (EndTransferPair, bool) {
	if len(rt.Stops) < 2 {
		return EndTransferPair{}, false
	}
	from := rt.Stops[0]
	to := rt.Stops[len(rt.Stops)-1]
	fromId, toId := endId(from), endId(to)
	if from.StopArea.TransferId != nil {
		fromId = transferKeyId(*from.StopArea.TransferId)
	}
	if to.StopArea.TransferId != nil {
		toId = transferKeyId(*to.StopArea.TransferId)
	}
	if fromId == toId {
		// both ends share a transfer: fall back to raw stop-area ids so a
		// route doesn't look falsely circular.
		fromId, toId = endId(from), endId(to)
	}
	return EndTransferPair{From: fromId, To: toId}, true
}

// transferKeyId encodes a transfer's string id as a synthetic
// elementindex.Id so it can share a comparable type with stop-area ids;
// the Relation kind and a content hash keep it disjoint from any real id.
func transferKeyId(transferId string) elementindex.Id {
	var h int64
	for _, r := range transferId {
		h = h*131 + int64(r)
	}
	return elementindex.Id{Kind: elementindex.Relation, Ref: h}
}

func meaningfulRoutes(routes []*route.Route) []*route.Route {
	var out []*route.Route
	for _, r := range routes {
		if len(r.Stops) >= 2 {
			out = append(out, r)
		}
	}
	return out
}

// CheckReturnDirection runs spec §4.6's "Return-direction check" over one
// RouteMaster's member routes.
func CheckReturnDirection(rm *RouteMaster, diag *diagnostics.Collector) {
	meaningful := meaningfulRoutes(rm.Routes)
	switch {
	case len(meaningful) == 0:
		diag.Error("route master has no route with at least two stops", nil)
		return
	case len(meaningful) == 1:
		if meaningful[0].Circular {
			diag.Notice("route master has a single circular route with no return direction", nil)
		} else {
			diag.Error("route master has no return direction", nil)
		}
		return
	}

	circular := splitCircular(meaningful)
	checkNonCircularReturn(circular.nonCircular, diag)
	checkCircularReturn(circular.circular, diag)
}

type splitRoutes struct {
	circular, nonCircular []*route.Route
}

func splitCircular(routes []*route.Route) splitRoutes {
	var s splitRoutes
	for _, r := range routes {
		if r.Circular {
			s.circular = append(s.circular, r)
		} else {
			s.nonCircular = append(s.nonCircular, r)
		}
	}
	return s
}

func checkNonCircularReturn(routes []*route.Route, diag *diagnostics.Collector) {
	pairs := make([]EndTransferPair, len(routes))
	for i, r := range routes {
		p, _ := endTransferPair(r)
		pairs[i] = p
	}
	for i, p := range pairs {
		found := false
		for j, q := range pairs {
			if i == j {
				continue
			}
			if q == p.Reversed() {
				found = true
				break
			}
		}
		if !found {
			diag.Notice("route has no return-direction counterpart", routes[i].Id.DiagRef(routes[i].Name))
		}
	}
}

func checkCircularReturn(routes []*route.Route, diag *diagnostics.Collector) {
	paired := make([]bool, len(routes))
	sequences := make([][]elementindex.Id, len(routes))
	for i, r := range routes {
		sequences[i] = transferSequence(r)
	}
	for i := range routes {
		if paired[i] {
			continue
		}
		matched := false
		for j := i + 1; j < len(routes); j++ {
			if paired[j] {
				continue
			}
			if sharesCircularSubsequence(sequences[i], sequences[j]) {
				paired[i], paired[j] = true, true
				matched = true
				break
			}
		}
		if !matched {
			diag.Notice("circular route has no matching return-direction counterpart", routes[i].Id.DiagRef(routes[i].Name))
		}
	}
}

func transferSequence(r *route.Route) []elementindex.Id {
	seq := make([]elementindex.Id, len(r.Stops))
	for i, s := range r.Stops {
		if s.StopArea.TransferId != nil {
			seq[i] = transferKeyId(*s.StopArea.TransferId)
		} else {
			seq[i] = s.StopArea.Id
		}
	}
	return seq
}

// sharesCircularSubsequence reports whether any rotation of b shares a
// common (not necessarily contiguous) subsequence with a of length at
// least 0.8 * min(len(a), len(b)).
func sharesCircularSubsequence(a, b []elementindex.Id) bool {
	if len(a) == 0 || len(b) == 0 {
		return false
	}
	minLen := len(a)
	if len(b) < minLen {
		minLen = len(b)
	}
	threshold := 0.8 * float64(minLen)
	for rot := 0; rot < len(b); rot++ {
		rotated := rotate(b, rot)
		if float64(longestCommonSubsequenceLen(a, rotated)) >= threshold {
			return true
		}
	}
	return false
}

func rotate(ids []elementindex.Id, n int) []elementindex.Id {
	out := make([]elementindex.Id, len(ids))
	for i := range ids {
		out[i] = ids[(i+n)%len(ids)]
	}
	return out
}

func longestCommonSubsequenceLen(a, b []elementindex.Id) int {
	dp := make([][]int, len(a)+1)
	for i := range dp {
		dp[i] = make([]int, len(b)+1)
	}
	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			if a[i-1] == b[j-1] {
				dp[i][j] = dp[i-1][j-1] + 1
			} else if dp[i-1][j] >= dp[i][j-1] {
				dp[i][j] = dp[i-1][j]
			} else {
				dp[i][j] = dp[i][j-1]
			}
		}
	}
	return dp[len(a)][len(b)]
}

// TwinPair is a pairing of two opposite-direction, non-circular routes of
// the same line.
type TwinPair struct {
	A, B *route.Route
}

// FindTwinRoutes pairs non-circular routes whose end-transfer pairs are
// exact reverses and whose stop counts differ by at most 2 or 20%,
// choosing among candidates the one minimizing the symmetric difference
// of their transfer-id sets.
func FindTwinRoutes(routes []*route.Route) []TwinPair {
	nonCircular := splitCircular(meaningfulRoutes(routes)).nonCircular
	used := make(map[int]bool)
	var pairs []TwinPair

	for i := 0; i < len(nonCircular); i++ {
		if used[i] {
			continue
		}
		pi, ok := endTransferPair(nonCircular[i])
		if !ok {
			continue
		}
		best := -1
		bestDiff := -1
		for j := 0; j < len(nonCircular); j++ {
			if i == j || used[j] {
				continue
			}
			pj, ok := endTransferPair(nonCircular[j])
			if !ok || pj != pi.Reversed() {
				continue
			}
			if !stopCountCompatible(len(nonCircular[i].Stops), len(nonCircular[j].Stops)) {
				continue
			}
			diff := symmetricDiffSize(transferSequence(nonCircular[i]), transferSequence(nonCircular[j]))
			if best == -1 || diff < bestDiff {
				best, bestDiff = j, diff
			}
		}
		if best >= 0 {
			used[i], used[best] = true, true
			pairs = append(pairs, TwinPair{A: nonCircular[i], B: nonCircular[best]})
		}
	}
	return pairs
}

func stopCountCompatible(a, b int) bool {
	diff := a - b
	if diff < 0 {
		diff = -diff
	}
	if diff <= 2 {
		return true
	}
	larger := a
	if b > larger {
		larger = b
	}
	return float64(diff) <= 0.2*float64(larger)
}

func symmetricDiffSize(a, b []elementindex.Id) int {
	setA := make(map[elementindex.Id]bool, len(a))
	for _, id := range a {
		setA[id] = true
	}
	setB := make(map[elementindex.Id]bool, len(b))
	for _, id := range b {
		setB[id] = true
	}
	count := 0
	for id := range setA {
		if !setB[id] {
			count++
		}
	}
	for id := range setB {
		if !setA[id] {
			count++
		}
	}
	return count
}
