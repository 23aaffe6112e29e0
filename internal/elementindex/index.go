package elementindex

// Index stores every raw element of one city's dataset, keyed by typed id,
// and answers the identity / centroid / containment queries the rest of
// the pipeline needs. One Index belongs to exactly one city validation run
// and is built once, then only read — matching the single-threaded,
// synchronous-per-city concurrency model: no locking around the maps.
type Index struct {
	elements map[Id]*Element

	// routeMasterMembers maps a route id to the route_master relation that
	// claims it, so a second route_master claiming the same route can be
	// flagged as a duplicate.
	routeMasterMembers map[Id]Id

	// stopAreaMembers maps each member element id (station, stop,
	// platform, entrance, ...) to every public_transport=stop_area
	// relation that lists it as a member.
	stopAreaMembers map[Id][]Id

	centroids map[Id]*LonLat
}

// New returns an empty Index.
func New() *Index {
	return &Index{
		elements:           make(map[Id]*Element),
		routeMasterMembers: make(map[Id]Id),
		stopAreaMembers:    make(map[Id][]Id),
		centroids:          make(map[Id]*LonLat),
	}
}

// AddElement indexes element by its typed id and, for route_master /
// stop_area relations, records membership against each member; a relation
// with no members is dropped silently. dupRouteMaster lists every route
// claimed by more than one route_master relation, keyed to the first
// master that claimed it.
func (ix *Index) AddElement(el *Element) (dupRouteMaster []struct {
	Route  Id
	Master Id
}) {
	if el == nil {
		return nil
	}
	if el.Id.Kind == Relation && len(el.Members) == 0 {
		return nil
	}
	ix.elements[el.Id] = el

	if el.Id.Kind != Relation {
		return nil
	}
	if el.TagIs("type", "route_master") {
		for _, m := range el.Members {
			if m.Id.Kind != Relation {
				continue
			}
			if existing, ok := ix.routeMasterMembers[m.Id]; ok && existing != el.Id {
				dupRouteMaster = append(dupRouteMaster, struct {
					Route  Id
					Master Id
				}{Route: m.Id, Master: existing})
				continue
			}
			ix.routeMasterMembers[m.Id] = el.Id
		}
	}
	if el.TagIs("public_transport", "stop_area") && el.TagIs("type", "public_transport") {
		for _, m := range el.Members {
			ix.stopAreaMembers[m.Id] = append(ix.stopAreaMembers[m.Id], el.Id)
		}
	}
	return dupRouteMaster
}

// RouteMasterOf returns the route_master relation id that claims route id,
// if any.
func (ix *Index) RouteMasterOf(route Id) (Id, bool) {
	m, ok := ix.routeMasterMembers[route]
	return m, ok
}

// StopAreasContaining returns every stop_area relation id that lists
// station as a member, in the order they were added.
func (ix *Index) StopAreasContaining(station Id) []Id {
	return ix.stopAreaMembers[station]
}

// Get returns the element for id, or nil if it was never indexed.
func (ix *Index) Get(id Id) *Element {
	return ix.elements[id]
}

// Len returns the number of indexed elements.
func (ix *Index) Len() int {
	return len(ix.elements)
}

// ContainsPoint reports whether coord falls within bbox (inclusive),
// expressed as (min, max) corners in lon-lat order.
func ContainsPoint(coord LonLat, min, max LonLat) bool {
	return coord.Lon >= min.Lon && coord.Lon <= max.Lon &&
		coord.Lat >= min.Lat && coord.Lat <= max.Lat
}

// Centroid computes and memoizes the centroid of el: the coordinate itself
// for a node, the mean of endpoint coordinates for a way, or the first
// member's centroid recursively for a relation. Returns nil if undefined
// (e.g. an empty way, or a member chain that bottoms out in an element not
// present in the index) — absence propagates rather than panicking.
func (ix *Index) Centroid(id Id) *LonLat {
	if c, ok := ix.centroids[id]; ok {
		return c
	}
	// Guard against cyclic relation membership recursing forever: mark
	// in-progress with a nil placeholder before recursing.
	ix.centroids[id] = nil

	el := ix.Get(id)
	c := ix.computeCentroid(el)
	ix.centroids[id] = c
	return c
}

func (ix *Index) computeCentroid(el *Element) *LonLat {
	if el == nil {
		return nil
	}
	switch el.Id.Kind {
	case Node:
		return el.Coord
	case Way:
		if len(el.Nodes) == 0 {
			return nil
		}
		var sumLon, sumLat float64
		var n int
		endpoints := []Id{el.Nodes[0], el.Nodes[len(el.Nodes)-1]}
		for _, nodeId := range endpoints {
			node := ix.Get(nodeId)
			if node == nil || node.Coord == nil {
				continue
			}
			sumLon += node.Coord.Lon
			sumLat += node.Coord.Lat
			n++
		}
		if n == 0 {
			return nil
		}
		return &LonLat{Lon: sumLon / float64(n), Lat: sumLat / float64(n)}
	case Relation:
		for _, m := range el.Members {
			if c, ok := ix.centroids[m.Id]; ok {
				if c != nil {
					return c
				}
				continue // cycle guard placeholder: try the next member
			}
			if c := ix.Centroid(m.Id); c != nil {
				return c
			}
		}
		return nil
	default:
		return nil
	}
}
