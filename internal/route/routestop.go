package route

import (
	"github.com/theoremus-urban-solutions/subway-validator/internal/elementindex"
	"github.com/theoremus-urban-solutions/subway-validator/internal/geometry"
	"github.com/theoremus-urban-solutions/subway-validator/internal/station"
)

// ActualRole is the tagged sum type of a route member's real function,
// independent of what its role string claims — spec §9 "variant modeling".
type ActualRole int

const (
	RoleNone ActualRole = iota
	RoleStop
	RolePlatform
)

// RouteStop is one ordered stop within a Route.
type RouteStop struct {
	StopArea *station.StopArea

	Position geometry.Point
	// positionRank tracks which kind of source set Position, so a later,
	// higher-priority source (stop-position node) can still overwrite a
	// platform-centroid fallback seen earlier.
	positionRank int

	PlatformEntryId *elementindex.Id
	PlatformExitId  *elementindex.Id
	CanEnter        bool
	CanExit         bool

	SeenStop          bool
	SeenPlatform      bool
	SeenPlatformEntry bool
	SeenPlatformExit  bool
	SeenStation       bool

	Distance float64
}

func newRouteStop(sa *station.StopArea) *RouteStop {
	return &RouteStop{StopArea: sa, Position: sa.Centroid}
}

const (
	rankNone = iota
	rankPlatform
	rankStation
	rankStopPosition
)

// setPosition applies the stop-coordinate precedence described in spec
// §4.4: stop-position node > station centroid > platform centroid, with
// order-of-seen precedence among equal ranks (first seen wins).
func (rs *RouteStop) setPosition(p geometry.Point, rank int) {
	if rank > rs.positionRank {
		rs.Position = p
		rs.positionRank = rank
	}
}

// add feeds one more member reference into this RouteStop, per the
// member state machine of spec §4.4: it updates can_enter/can_exit from
// entry_only/exit_only roles, the stop coordinate with precedence, the
// platform-entry/exit ids, and the seen_* flags. It reports whether this
// member was a duplicate that should be flagged by the caller (error for
// a second stop-position, notice for a second platform).
type AddOutcome int

const (
	AddOK AddOutcome = iota
	AddDuplicateStop
	AddDuplicatePlatform
)

func (rs *RouteStop) add(ix *elementindex.Index, el *elementindex.Element, role string, actual ActualRole) AddOutcome {
	// can_enter/can_exit only ever get set true by a member that grants
	// that access; no single member's role can take access away once
	// another member of the same stop has already granted it.
	switch role {
	case "entry_only":
		rs.CanEnter = true
	case "exit_only":
		rs.CanExit = true
	default:
		rs.CanEnter = true
		rs.CanExit = true
	}

	outcome := AddOK
	switch actual {
	case RoleStop:
		if rs.SeenStop {
			outcome = AddDuplicateStop
		}
		rs.SeenStop = true
		if c := ix.Centroid(el.Id); c != nil {
			rs.setPosition(geometry.Point{Lon: c.Lon, Lat: c.Lat}, rankStopPosition)
		}
	case RolePlatform:
		if rs.SeenPlatform {
			outcome = AddDuplicatePlatform
		}
		rs.SeenPlatform = true
		if c := ix.Centroid(el.Id); c != nil {
			rs.setPosition(geometry.Point{Lon: c.Lon, Lat: c.Lat}, rankPlatform)
		}
		switch role {
		case "entry_only":
			id := el.Id
			rs.PlatformEntryId = &id
			rs.SeenPlatformEntry = true
		case "exit_only":
			id := el.Id
			rs.PlatformExitId = &id
			rs.SeenPlatformExit = true
		}
	case RoleNone:
		rs.SeenStation = true
		rs.setPosition(rs.StopArea.Station.Centroid, rankStation)
	}
	return outcome
}
