package station

import (
	"sort"

	"github.com/theoremus-urban-solutions/subway-validator/internal/elementindex"
	"github.com/theoremus-urban-solutions/subway-validator/internal/geometry"
	"github.com/theoremus-urban-solutions/subway-validator/internal/valuetypes"
)

// Station is a promoted raw element that qualifies as a rail/tram station.
// Constructed once during resolution and immutable thereafter.
type Station struct {
	Id       elementindex.Id
	Modes    map[string]bool
	Name     string
	IntName  string
	Colour   *string
	Centroid geometry.Point
}

// Mode reports whether the station serves mode m.
func (s *Station) Mode(m string) bool {
	return s.Modes != nil && s.Modes[m]
}

// newStation builds a Station from el, or returns (nil, false) if el's
// centroid is undefined — per spec §3, a Station's centroid is required
// and construction fails without one.
func newStation(el *elementindex.Element, ix *elementindex.Index) (*Station, bool) {
	c := ix.Centroid(el.Id)
	if c == nil {
		return nil, false
	}
	name, _ := el.Tag("name")
	intName, _ := el.Tag("int_name")
	var colour *string
	if raw, ok := el.Tag("colour"); ok {
		if normalized, ok := valuetypes.NormalizeColour(raw); ok {
			colour = &normalized
		}
	}
	return &Station{
		Id:       el.Id,
		Modes:    StationModes(el),
		Name:     name,
		IntName:  intName,
		Colour:   colour,
		Centroid: geometry.Point{Lon: c.Lon, Lat: c.Lat},
	}, true
}

// UnusedStations returns every station in stations whose id is absent
// from usedIds (one never appearing in any route's stop sequence), sorted
// by ascending ref for deterministic reporting.
func UnusedStations(stations map[elementindex.Id]*Station, usedIds map[elementindex.Id]bool) []*Station {
	out := make([]*Station, 0)
	for id, st := range stations {
		if !usedIds[id] {
			out = append(out, st)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Id.Ref < out[j].Id.Ref })
	return out
}
