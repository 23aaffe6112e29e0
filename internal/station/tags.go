package station

import "github.com/theoremus-urban-solutions/subway-validator/internal/elementindex"

// AllModes lists every transport mode the engine recognizes. A station's
// modes are derived from the presence of a "{mode}=yes" tag for each of
// these, plus the value of a "station" tag.
var AllModes = []string{
	"subway", "light_rail", "monorail", "train", "tram", "bus", "trolleybus", "aerialway", "ferry",
}

// RailwayTrackTypes are the railway= values that mark a way as a track
// candidate for TrackGeometry.
var RailwayTrackTypes = map[string]bool{
	"subway": true, "light_rail": true, "tram": true, "monorail": true,
	"rail": true, "narrow_gauge": true, "funicular": true,
}

// ConstructionKeys disqualify an element regardless of its other tags:
// any of these present at all (value irrelevant) marks it under
// construction.
var ConstructionKeys = []string{"construction", "proposed", "planned"}

// IsConstruction reports whether el carries any construction-marker key.
func IsConstruction(el *elementindex.Element) bool {
	return el.HasAnyTagKey(ConstructionKeys...)
}

// IsStation reports whether el qualifies as a rail/tram station given the
// set of modes requested for this city. tramRequested controls whether
// railway=tram_stop counts (only meaningful when "tram" is among the
// requested modes).
func IsStation(el *elementindex.Element, tramRequested bool) bool {
	if el == nil || IsConstruction(el) {
		return false
	}
	railway, _ := el.Tag("railway")
	if railway == "station" || railway == "halt" {
		return true
	}
	if tramRequested && railway == "tram_stop" {
		return true
	}
	return false
}

// IsStopPosition reports whether el is a stop-position node.
func IsStopPosition(el *elementindex.Element) bool {
	if el == nil {
		return false
	}
	if railway, _ := el.Tag("railway"); railway == "stop" {
		return true
	}
	return el.TagIs("public_transport", "stop_position")
}

// IsPlatform reports whether el is a platform (node, way, or area).
func IsPlatform(el *elementindex.Element) bool {
	if el == nil {
		return false
	}
	if railway, _ := el.Tag("railway"); railway == "platform" || railway == "platform_edge" {
		return true
	}
	return el.TagIs("public_transport", "platform")
}

// IsTrack reports whether el (a way) is a track of one of the recognized
// railway types.
func IsTrack(el *elementindex.Element) bool {
	if el == nil || el.Id.Kind != elementindex.Way {
		return false
	}
	railway, ok := el.Tag("railway")
	return ok && RailwayTrackTypes[railway]
}

// IsEntrance reports whether el is an entrance/exit node.
func IsEntrance(el *elementindex.Element) bool {
	if el == nil {
		return false
	}
	railway, _ := el.Tag("railway")
	return railway == "subway_entrance" || railway == "train_station_entrance"
}

// EntranceDirection narrows an entrance node's direction from its own
// entrance= tag: "entrance", "exit", or "" if unspecified/bidirectional.
func EntranceDirection(el *elementindex.Element) string {
	v, _ := el.Tag("entrance")
	if v == "entrance" || v == "exit" {
		return v
	}
	return ""
}

// StationModes derives the set of transport modes el serves: one entry
// per "{mode}=yes" tag present, plus the value of a "station" tag if it
// names a recognized mode.
func StationModes(el *elementindex.Element) map[string]bool {
	modes := make(map[string]bool)
	for _, m := range AllModes {
		if el.TagIs(m, "yes") {
			modes[m] = true
		}
	}
	if v, ok := el.Tag("station"); ok {
		for _, m := range AllModes {
			if v == m {
				modes[m] = true
			}
		}
	}
	if railway, _ := el.Tag("railway"); railway == "tram_stop" {
		modes["tram"] = true
	}
	return modes
}

// IsRoute reports whether el is a route relation serving one of
// requestedModes.
func IsRoute(el *elementindex.Element, requestedModes map[string]bool) bool {
	if el == nil || el.Id.Kind != elementindex.Relation {
		return false
	}
	if !el.TagIs("type", "route") {
		return false
	}
	if el.TagIs("access", "no") || el.TagIs("access", "private") {
		return false
	}
	mode, ok := el.Tag("route")
	if !ok || !requestedModes[mode] {
		return false
	}
	if len(el.Members) == 0 {
		return false
	}
	_, hasRef := el.Tag("ref")
	_, hasName := el.Tag("name")
	return hasRef || hasName
}

// IsRouteMaster reports whether el is a route_master relation.
func IsRouteMaster(el *elementindex.Element) bool {
	return el != nil && el.Id.Kind == elementindex.Relation && el.TagIs("type", "route_master")
}

// IsStopAreaRelation reports whether el is a public_transport=stop_area
// relation.
func IsStopAreaRelation(el *elementindex.Element) bool {
	return el != nil && el.Id.Kind == elementindex.Relation &&
		el.TagIs("type", "public_transport") && el.TagIs("public_transport", "stop_area")
}

// IsStopAreaGroupRelation reports whether el is a stop_area_group
// (transfer/interchange) relation.
func IsStopAreaGroupRelation(el *elementindex.Element) bool {
	return el != nil && el.Id.Kind == elementindex.Relation && el.TagIs("public_transport", "stop_area_group")
}
