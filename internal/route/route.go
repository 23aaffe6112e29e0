package route

import (
	"github.com/theoremus-urban-solutions/subway-validator/internal/elementindex"
	"github.com/theoremus-urban-solutions/subway-validator/internal/geometry"
)

// TrackRef is one track-way member recorded for the geometry pass, in
// member order, with its declared traversal direction.
type TrackRef struct {
	WayId    elementindex.Id
	Backward bool
}

// Route is a directed sequence of RouteStops assembled from one route
// relation.
type Route struct {
	Id      elementindex.Id
	Mode    string
	Ref     string
	Name    string
	Network string
	Colour  *string
	Infill  *string

	IntervalSeconds         *int
	OpeningStart, OpeningEnd string

	Circular bool

	Stops  []*RouteStop
	Tracks []TrackRef

	// Geometry results, filled in by internal/trackgeometry once track ways
	// are resolved to coordinates.
	TrackLine              []geometry.Point
	FirstStopOnRailsIndex  int
	LastStopOnRailsIndex   int
}
