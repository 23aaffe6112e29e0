package route

import (
	"github.com/theoremus-urban-solutions/subway-validator/internal/diagnostics"
	"github.com/theoremus-urban-solutions/subway-validator/internal/elementindex"
	"github.com/theoremus-urban-solutions/subway-validator/internal/station"
)

// constructionTagKeys mirror station.ConstructionKeys; repeated here as a
// route-member predicate (an untagged or under-construction member is
// skipped with a warning rather than rejected outright).
var constructionTagKeys = []string{"construction", "proposed", "planned"}

// StopAreaLookup resolves a station element id to the StopArea(s) that
// represent it, satisfying the ambiguous-station guard: a station claimed
// by more than one stop_area relation has more than one entry.
type StopAreaLookup func(stationId elementindex.Id) []*station.StopArea

// Assembler parses one route relation into an ordered RouteStop sequence
// plus the recorded track-way references, per spec §4.4.
type Assembler struct {
	ix       *elementindex.Index
	diag     *diagnostics.Collector
	lookupSA StopAreaLookup

	route *Route

	stopAreaSeen     map[elementindex.Id]bool
	lastAppended     *RouteStop
	routeSeenStops   bool
	routeSeenPlats   bool
	inRepeat         bool
	repeatPos        int
}

// NewAssembler builds an Assembler over ix, reporting into diag, resolving
// station member ids through lookupSA.
func NewAssembler(ix *elementindex.Index, diag *diagnostics.Collector, lookupSA StopAreaLookup) *Assembler {
	return &Assembler{ix: ix, diag: diag, lookupSA: lookupSA}
}

// Assemble builds a Route from rel. masterRef is the owning route_master's
// ref tag (used as a fallback when rel has none of its own). It returns a
// non-nil error only for the fatal condition described in spec §4.4: a
// stop/platform-role member referencing an id absent from the dataset. A
// stop/platform-role member that is present but not resolvable as a
// station is recorded as an error diagnostic and skipped.
func (a *Assembler) Assemble(rel *elementindex.Element, masterRef string) (*Route, error) {
	a.route = intakeTags(rel, masterRef, a.diag)
	a.stopAreaSeen = make(map[elementindex.Id]bool)

	for _, m := range rel.Members {
		if err := a.walkMember(rel, m); err != nil {
			return nil, err
		}
	}

	if n := len(a.route.Stops); n >= 2 {
		first, last := a.route.Stops[0], a.route.Stops[n-1]
		a.route.Circular = first.StopArea.Id == last.StopArea.Id
	}
	return a.route, nil
}

func (a *Assembler) walkMember(rel *elementindex.Element, m elementindex.Member) error {
	el := a.ix.Get(m.Id)
	isStopOrPlatformRole := m.Role == "stop" || m.Role == "platform" ||
		m.Role == "stop_entry_only" || m.Role == "stop_exit_only" ||
		m.Role == "platform_entry_only" || m.Role == "platform_exit_only"

	if el == nil {
		if isStopOrPlatformRole {
			return elementindex.NewCriticalError("route %s references missing element %s with a stop/platform role", rel.Id, m.Id)
		}
		return nil
	}

	switch {
	case el.HasAnyTagKey(constructionTagKeys...):
		a.diag.Warn("route member is under construction", el.Ref())
		return nil
	case station.IsTrack(el):
		a.route.Tracks = append(a.route.Tracks, TrackRef{WayId: el.Id, Backward: m.Role == "backward"})
		return nil
	}

	if sas := a.resolveStationMember(el); sas != nil {
		return a.walkStationMember(el, m.Role, sas)
	}

	if isStopOrPlatformRole {
		a.diag.Error("route member with stop/platform role is not attached to a known station", el.Ref())
		return nil
	}
	if el.Tags == nil || len(el.Tags) == 0 {
		a.diag.Warn("untagged route member", el.Ref())
	}
	return nil
}

// resolveStationMember returns the StopArea a station-kind element
// belongs to, applying the ambiguous-station guard (spec §12.1): when a
// station resolves to more than one StopArea, the first is used
// deterministically and an error is recorded.
func (a *Assembler) resolveStationMember(el *elementindex.Element) *station.StopArea {
	if !isStationLike(el) {
		return nil
	}
	candidates := a.lookupSA(el.Id)
	if len(candidates) == 0 {
		return nil
	}
	if len(candidates) > 1 {
		a.diag.Error("ambiguous station in route, use stop_position or split interchange station", el.Ref())
	}
	return candidates[0]
}

func isStationLike(el *elementindex.Element) bool {
	railway, _ := el.Tag("railway")
	return railway == "station" || railway == "halt" || railway == "tram_stop"
}

func actualRole(el *elementindex.Element) ActualRole {
	switch {
	case station.IsStopPosition(el):
		return RoleStop
	case station.IsPlatform(el):
		return RolePlatform
	default:
		return RoleNone
	}
}

func roleDisagreesWithActual(role string, actual ActualRole) bool {
	if role == "" {
		return false
	}
	switch role {
	case "stop", "stop_entry_only", "stop_exit_only":
		return actual != RoleStop
	case "platform", "platform_entry_only", "platform_exit_only":
		return actual != RolePlatform
	default:
		return false
	}
}

func normalizedMemberRole(role string) string {
	switch role {
	case "stop_entry_only", "platform_entry_only":
		return "entry_only"
	case "stop_exit_only", "platform_exit_only":
		return "exit_only"
	default:
		return role
	}
}

func (a *Assembler) walkStationMember(el *elementindex.Element, role string, sa *station.StopArea) error {
	actual := actualRole(el)
	if role != "" && roleDisagreesWithActual(role, actual) {
		a.diag.Warn("route member role disagrees with its actual classification", el.Ref())
	}

	if !a.inRepeat {
		switch {
		case len(a.route.Stops) == 0 || !a.stopAreaSeen[sa.Id]:
			rs := newRouteStop(sa)
			a.route.Stops = append(a.route.Stops, rs)
			a.lastAppended = rs
			a.stopAreaSeen[sa.Id] = true
		case a.lastAppended != nil && sa.Id == a.lastAppended.StopArea.Id:
			// continue feeding the same RouteStop
		default:
			enterRepeat := (a.routeSeenStops && a.routeSeenPlats) ||
				(actual == RoleStop && !a.routeSeenPlats) ||
				(actual == RolePlatform && !a.routeSeenStops)
			if enterRepeat {
				rs := newRouteStop(sa)
				a.route.Stops = append(a.route.Stops, rs)
				a.lastAppended = rs
			} else {
				idx := -1
				for i := a.repeatPos; i < len(a.route.Stops); i++ {
					if a.route.Stops[i].StopArea.Id == sa.Id {
						idx = i
						break
					}
				}
				if idx == -1 {
					a.diag.Error("route member out of order and no matching prior stop", el.Ref())
					return nil
				}
				a.inRepeat = true
				a.repeatPos = idx
				a.lastAppended = a.route.Stops[idx]
			}
		}
	} else {
		current := a.route.Stops[a.repeatPos]
		if (actual == RoleStop && current.SeenStop) || (actual == RolePlatform && current.SeenPlatform) {
			a.diag.Error("route member out of place during repeated stop sequence", el.Ref())
			return nil
		}
		a.lastAppended = current
	}

	outcome := a.lastAppended.add(a.ix, el, normalizedMemberRole(role), actual)
	switch outcome {
	case AddDuplicateStop:
		a.diag.Error("more than one stop position for a single route stop", el.Ref())
	case AddDuplicatePlatform:
		a.diag.Notice("more than one platform for a single route stop", el.Ref())
	}

	if actual == RoleStop {
		a.routeSeenStops = true
	}
	if actual == RolePlatform {
		a.routeSeenPlats = true
	}
	return nil
}
