package station

import (
	"github.com/theoremus-urban-solutions/subway-validator/internal/diagnostics"
	"github.com/theoremus-urban-solutions/subway-validator/internal/elementindex"
	"github.com/theoremus-urban-solutions/subway-validator/internal/geometry"
)

// MaxEntranceDistanceMeters is how far an entrance node may be from a
// station's centre and still be folded into its implicit StopArea.
const MaxEntranceDistanceMeters = 300.0

// Resolver promotes raw elements to Stations, builds StopAreas (explicit
// from stop_area relations, or synthesized around nearby entrances), and
// wires interchanges between them.
type Resolver struct {
	ix            *elementindex.Index
	diag          *diagnostics.Collector
	tramRequested bool

	Stations           map[elementindex.Id]*Station
	StopAreas          map[elementindex.Id]*StopArea
	StopAreasByStation map[elementindex.Id][]*StopArea
	Transfers          []*Transfer
	// ExplicitEntranceIds is every entrance/exit node claimed by a member
	// of some explicit stop_area relation, as opposed to one merely pulled
	// into an implicit StopArea by proximity.
	ExplicitEntranceIds map[elementindex.Id]bool

	// memberOwner records, for every stop-position / platform id, the
	// StopArea that first claimed it — enforcing membership uniqueness.
	memberOwner map[elementindex.Id]elementindex.Id
	// usedEntrances tracks every entrance/exit node claimed by some
	// StopArea, explicit or implicit, across the whole city.
	usedEntrances map[elementindex.Id]bool
}

// NewResolver builds a Resolver over ix, reporting into diag.
// tramRequested should be true when "tram" is among the city's requested
// modes (it gates whether railway=tram_stop counts as a station).
func NewResolver(ix *elementindex.Index, diag *diagnostics.Collector, tramRequested bool) *Resolver {
	return &Resolver{
		ix:                  ix,
		diag:                diag,
		tramRequested:       tramRequested,
		Stations:            make(map[elementindex.Id]*Station),
		StopAreas:           make(map[elementindex.Id]*StopArea),
		StopAreasByStation:  make(map[elementindex.Id][]*StopArea),
		ExplicitEntranceIds: make(map[elementindex.Id]bool),
		memberOwner:         make(map[elementindex.Id]elementindex.Id),
		usedEntrances:       make(map[elementindex.Id]bool),
	}
}

// stationElements and entranceElements are populated by Resolve's first
// pass and reused by the implicit-StopArea scan so it doesn't have to
// walk the whole index again.
type resolveScratch struct {
	stationElements  []*elementindex.Element
	entranceElements []*elementindex.Element
}

// Resolve runs the full algorithm described in spec §4.3 over every
// element els (typically ix.Get for each id the orchestrator iterates).
func (r *Resolver) Resolve(els []*elementindex.Element) {
	scratch := &resolveScratch{}
	var stationCandidates []*elementindex.Element
	for _, el := range els {
		if IsStation(el, r.tramRequested) {
			stationCandidates = append(stationCandidates, el)
		}
		if el.Id.Kind == elementindex.Node && IsEntrance(el) {
			scratch.entranceElements = append(scratch.entranceElements, el)
		}
	}
	scratch.stationElements = r.classifyStations(stationCandidates)

	for _, el := range scratch.stationElements {
		r.resolveStation(el, scratch)
	}

	r.resolveInterchanges(els)
}

// classifyStations narrows candidates (every element IsStation already
// matched) to the ones that can actually stand in for a station: a
// relation-kind match that isn't a multipolygon has no sensible single
// point or outline to anchor a Station on, so it's rejected rather than
// silently accepted.
func (r *Resolver) classifyStations(candidates []*elementindex.Element) []*elementindex.Element {
	out := make([]*elementindex.Element, 0, len(candidates))
	for _, el := range candidates {
		if el.Id.Kind == elementindex.Relation && !el.TagIs("type", "multipolygon") {
			r.diag.Warn("station-tagged relation is not a multipolygon, excluded", el.Ref())
			continue
		}
		out = append(out, el)
	}
	return out
}

func (r *Resolver) resolveStation(el *elementindex.Element, scratch *resolveScratch) {
	st, ok := newStation(el, r.ix)
	if !ok {
		r.diag.Error("station has no computable centroid", el.Ref())
		return
	}
	r.Stations[st.Id] = st

	stopAreaRelIds := r.ix.StopAreasContaining(el.Id)
	if len(stopAreaRelIds) == 0 {
		sa := r.buildImplicitStopArea(st, scratch)
		r.StopAreas[sa.Id] = sa
		r.StopAreasByStation[st.Id] = append(r.StopAreasByStation[st.Id], sa)
		return
	}
	for _, relId := range stopAreaRelIds {
		rel := r.ix.Get(relId)
		if rel == nil {
			continue
		}
		sa := r.buildExplicitStopArea(st, rel)
		r.StopAreas[sa.Id] = sa
		r.StopAreasByStation[st.Id] = append(r.StopAreasByStation[st.Id], sa)
	}
}

// buildExplicitStopArea walks rel's members, classifying each against the
// station it already knows (st), per spec §4.3 step 2.
func (r *Resolver) buildExplicitStopArea(st *Station, rel *elementindex.Element) *StopArea {
	sa := newStopArea(st, rel.Id, true)

	for _, m := range rel.Members {
		el := r.ix.Get(m.Id)
		if el == nil {
			continue
		}
		switch {
		case IsStation(el, r.tramRequested):
			if el.Id != st.Id {
				r.diag.Error("stop_area relation has more than one station", rel.Ref())
			}
		case IsStopPosition(el):
			r.claimMember(sa, el.Id, rel.Ref())
			sa.StopIds[el.Id] = true
		case IsPlatform(el):
			r.claimMember(sa, el.Id, rel.Ref())
			sa.PlatformId[el.Id] = true
		case IsEntrance(el):
			if el.Id.Kind != elementindex.Node {
				r.diag.Warn("entrance is not a node", el.Ref())
				continue
			}
			r.classifyEntrance(sa, el, m.Role, true)
		case IsTrackMember(el):
			r.diag.Warn("stop_area relation contains a track member", rel.Ref())
		}
	}

	sa.recomputeCentroid(r.ix)
	r.checkEntranceExitBalance(sa, rel.Ref())
	return sa
}

// IsTrackMember reports whether el is a way carrying a track railway type,
// i.e. one that should not appear as a stop_area member.
func IsTrackMember(el *elementindex.Element) bool {
	return IsTrack(el)
}

func (r *Resolver) claimMember(sa *StopArea, id elementindex.Id, ctx *diagnostics.ElementRef) {
	if owner, ok := r.memberOwner[id]; ok && owner != sa.Id {
		r.diag.Notice("stop/platform belongs to more than one stop area", ctx)
		return
	}
	r.memberOwner[id] = sa.Id
}

// classifyEntrance assigns el into sa's entrance and/or exit sets based on
// the combination of its own entrance= tag and the stop_area member role.
// explicit marks whether el was claimed by a real stop_area relation
// member, as opposed to the implicit-StopArea proximity scan.
func (r *Resolver) classifyEntrance(sa *StopArea, el *elementindex.Element, role string, explicit bool) {
	dir := EntranceDirection(el)
	enter, exit := true, true
	switch dir {
	case "entrance":
		exit = false
	case "exit":
		enter = false
	}
	switch role {
	case "exit_only":
		enter = false
	case "entry_only":
		exit = false
	}
	if enter {
		sa.EntranceId[el.Id] = true
	}
	if exit {
		sa.ExitId[el.Id] = true
	}
	r.usedEntrances[el.Id] = true
	if explicit {
		r.ExplicitEntranceIds[el.Id] = true
	}
}

func (r *Resolver) checkEntranceExitBalance(sa *StopArea, ctx *diagnostics.ElementRef) {
	if len(sa.EntranceId) == 0 && len(sa.ExitId) > 0 {
		r.diag.Warn("stop area has exits but no entrances", ctx)
	}
	if len(sa.ExitId) == 0 && len(sa.EntranceId) > 0 {
		r.diag.Warn("stop area has entrances but no exits", ctx)
	}
}

// buildImplicitStopArea synthesizes a StopArea id'd by the station itself,
// scanning every known entrance node within MaxEntranceDistanceMeters of
// the station centre that no explicit stop_area has already claimed.
func (r *Resolver) buildImplicitStopArea(st *Station, scratch *resolveScratch) *StopArea {
	sa := newStopArea(st, st.Id, false)
	for _, entrance := range scratch.entranceElements {
		if len(r.ix.StopAreasContaining(entrance.Id)) > 0 {
			continue
		}
		c := r.ix.Centroid(entrance.Id)
		if c == nil {
			continue
		}
		d := geometry.Distance(st.Centroid, geometry.Point{Lon: c.Lon, Lat: c.Lat})
		if d > MaxEntranceDistanceMeters {
			continue
		}
		r.classifyEntrance(sa, entrance, "", false)
	}
	sa.recomputeCentroid(r.ix)
	r.checkEntranceExitBalance(sa, st.station().Ref())
	return sa
}

// station is a tiny adapter so checkEntranceExitBalance can attach a
// diagnostic to the station's own element id.
func (s *Station) station() *elementindex.Element {
	return &elementindex.Element{Id: s.Id, Tags: map[string]string{"name": s.Name}}
}

// resolveInterchanges is spec §4.3 step 5: for each stop_area_group
// relation, collect member StopAreas and assign them a shared transfer
// id. Step 6 (filtering to StopAreas that actually participate in
// routes) happens later, once RouteAssembler has run; see
// FilterTransfersByUsage.
func (r *Resolver) resolveInterchanges(els []*elementindex.Element) {
	for _, el := range els {
		if !IsStopAreaGroupRelation(el) {
			continue
		}
		var members []elementindex.Id
		for _, m := range el.Members {
			sa, ok := r.StopAreas[m.Id]
			if !ok {
				continue
			}
			if sa.TransferId != nil {
				r.diag.Warn("stop area already belongs to a transfer", el.Ref())
			}
			members = append(members, sa.Id)
		}
		if len(members) == 0 {
			continue
		}
		id := el.Id.String()
		for _, saId := range members {
			v := id
			r.StopAreas[saId].TransferId = &v
		}
		r.Transfers = append(r.Transfers, &Transfer{Id: id, Members: members})
	}
}

// FilterTransfersByUsage keeps only transfers with at least two members
// whose StopArea actually participates in some route (used, keyed by
// StopArea id) — spec §4.3 step 6.
func FilterTransfersByUsage(transfers []*Transfer, used map[elementindex.Id]bool) []*Transfer {
	var out []*Transfer
	for _, t := range transfers {
		var kept []elementindex.Id
		for _, m := range t.Members {
			if used[m] {
				kept = append(kept, m)
			}
		}
		if len(kept) >= 2 {
			out = append(out, &Transfer{Id: t.Id, Members: kept})
		}
	}
	return out
}
