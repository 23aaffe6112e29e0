// Package master groups routes sharing a route_master relation (or a
// common ref when no such relation exists), picks the best representative
// route per line, pairs opposite directions, and diffs twin routes by
// edit distance — spec §4.6.
package master

import (
	"github.com/theoremus-urban-solutions/subway-validator/internal/diagnostics"
	"github.com/theoremus-urban-solutions/subway-validator/internal/elementindex"
	"github.com/theoremus-urban-solutions/subway-validator/internal/route"
)

// RouteMaster groups Routes sharing a line identity.
type RouteMaster struct {
	Id      string // route_master relation id, or the smallest member route's relation id if synthesized
	Mode    string
	Network string
	Colour  *string
	Ref     string
	Name    string

	IntervalSeconds *int

	Routes        []*route.Route
	BestRouteIdx  int
}

// Best returns the chosen representative route: most stops, tiebreak
// minimal relation id.
func (rm *RouteMaster) Best() *route.Route {
	if len(rm.Routes) == 0 {
		return nil
	}
	return rm.Routes[rm.BestRouteIdx]
}

// Aggregator builds RouteMasters from individually-assembled Routes.
type Aggregator struct {
	diag    *diagnostics.Collector
	masters map[string]*RouteMaster
	// minRouteId tracks, per synthesized (ref-keyed) master, the smallest
	// route relation id seen — spec §9 Open Question (c).
	minRouteId map[string]elementindex.Id
}

// NewAggregator builds an empty Aggregator reporting into diag.
func NewAggregator(diag *diagnostics.Collector) *Aggregator {
	return &Aggregator{
		diag:       diag,
		masters:    make(map[string]*RouteMaster),
		minRouteId: make(map[string]elementindex.Id),
	}
}

// Add folds rt into its RouteMaster, keyed by masterRelId when the route
// belongs to an explicit route_master relation, or by its ref otherwise.
// A mode mismatch against the master is fatal for this route alone: it is
// reported and dropped rather than added.
func (a *Aggregator) Add(rt *route.Route, masterRelId *elementindex.Id, masterTags map[string]string) {
	key := a.masterKey(rt, masterRelId)
	rm, exists := a.masters[key]
	if !exists {
		rm = &RouteMaster{Id: key, Mode: rt.Mode, Network: rt.Network, Colour: rt.Colour, Ref: rt.Ref, Name: rt.Name}
		if masterTags != nil {
			if ref, ok := masterTags["ref"]; ok {
				rm.Ref = ref
			}
			if name, ok := masterTags["name"]; ok {
				rm.Name = name
			}
		}
		a.masters[key] = rm
	}
	if masterRelId == nil {
		rm.Id = a.minRouteId[key].String()
	}

	if rm.Mode != rt.Mode {
		a.diag.Error("route mode does not match its route master", rt.Id.DiagRef(rt.Name))
		return
	}
	if rm.Network != rt.Network {
		a.diag.Error("route network does not match its route master", rt.Id.DiagRef(rt.Name))
	}
	if rm.Colour != nil && rt.Colour != nil && *rm.Colour != *rt.Colour {
		a.diag.Notice("route colour does not match its route master", rt.Id.DiagRef(rt.Name))
	}
	if rm.Ref != rt.Ref {
		a.diag.Notice("route ref does not match its route master", rt.Id.DiagRef(rt.Name))
	}

	if rt.IntervalSeconds != nil && (rm.IntervalSeconds == nil || *rt.IntervalSeconds < *rm.IntervalSeconds) {
		rm.IntervalSeconds = rt.IntervalSeconds
	}

	rm.Routes = append(rm.Routes, rt)
	a.updateBest(rm)
}

func (a *Aggregator) masterKey(rt *route.Route, masterRelId *elementindex.Id) string {
	if masterRelId != nil {
		return masterRelId.String()
	}
	key := "ref:" + rt.Ref
	if prev, ok := a.minRouteId[key]; !ok || rt.Id.Ref < prev.Ref {
		a.minRouteId[key] = rt.Id
	}
	return key
}

func (a *Aggregator) updateBest(rm *RouteMaster) {
	best := 0
	for i, r := range rm.Routes {
		if len(r.Stops) > len(rm.Routes[best].Stops) {
			best = i
			continue
		}
		if len(r.Stops) == len(rm.Routes[best].Stops) && r.Id.Ref < rm.Routes[best].Id.Ref {
			best = i
		}
	}
	rm.BestRouteIdx = best
}

// Masters returns every accumulated RouteMaster. A master that ends up
// with zero routes (every member rejected for a mode mismatch) is simply
// never present here — spec §9 Open Question (a).
func (a *Aggregator) Masters() []*RouteMaster {
	out := make([]*RouteMaster, 0, len(a.masters))
	for _, rm := range a.masters {
		if len(rm.Routes) > 0 {
			out = append(out, rm)
		}
	}
	return out
}
