package station

import (
	"github.com/theoremus-urban-solutions/subway-validator/internal/elementindex"
	"github.com/theoremus-urban-solutions/subway-validator/internal/geometry"
)

// StopArea aggregates one Station with its stop positions, platforms,
// entrances and exits. Its id is the backing stop_area relation's id, or
// the station's own id when the StopArea is implicit (synthesized from
// nearby entrances rather than an explicit relation).
type StopArea struct {
	Id         elementindex.Id
	Station    *Station
	StopIds    map[elementindex.Id]bool
	PlatformId map[elementindex.Id]bool
	EntranceId map[elementindex.Id]bool
	ExitId     map[elementindex.Id]bool
	Centroid   geometry.Point
	Modes      map[string]bool
	Name       string
	Colour     *string
	TransferId *string

	// explicit is true when Id is a stop_area relation id, false for an
	// implicit StopArea synthesized around the station alone.
	explicit bool
}

func newStopArea(st *Station, id elementindex.Id, explicit bool) *StopArea {
	modes := make(map[string]bool, len(st.Modes))
	for m := range st.Modes {
		modes[m] = true
	}
	return &StopArea{
		Id:         id,
		Station:    st,
		StopIds:    make(map[elementindex.Id]bool),
		PlatformId: make(map[elementindex.Id]bool),
		EntranceId: make(map[elementindex.Id]bool),
		ExitId:     make(map[elementindex.Id]bool),
		Centroid:   st.Centroid,
		Modes:      modes,
		Name:       st.Name,
		Colour:     st.Colour,
		explicit:   explicit,
	}
}

// recomputeCentroid averages the coordinates of every stop and platform
// member currently attached, falling back to the station centroid when
// there are none — matching spec §3's StopArea.centroid definition.
func (sa *StopArea) recomputeCentroid(ix *elementindex.Index) {
	var sumLon, sumLat float64
	var n int
	for id := range sa.StopIds {
		if c := ix.Centroid(id); c != nil {
			sumLon += c.Lon
			sumLat += c.Lat
			n++
		}
	}
	for id := range sa.PlatformId {
		if c := ix.Centroid(id); c != nil {
			sumLon += c.Lon
			sumLat += c.Lat
			n++
		}
	}
	if n == 0 {
		sa.Centroid = sa.Station.Centroid
		return
	}
	sa.Centroid = geometry.Point{Lon: sumLon / float64(n), Lat: sumLat / float64(n)}
}

// HasEntrance reports whether id is recorded either as an entrance or an
// exit of this StopArea.
func (sa *StopArea) HasEntrance(id elementindex.Id) bool {
	return sa.EntranceId[id] || sa.ExitId[id]
}
