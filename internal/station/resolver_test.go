package station

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/theoremus-urban-solutions/subway-validator/internal/diagnostics"
	"github.com/theoremus-urban-solutions/subway-validator/internal/elementindex"
)

func buildIndex(els ...*elementindex.Element) *elementindex.Index {
	ix := elementindex.New()
	for _, el := range els {
		ix.AddElement(el)
	}
	return ix
}

func TestResolver_ImplicitStopAreaFromNearbyEntrance(t *testing.T) {
	stationEl := &elementindex.Element{
		Id:    elementindex.Id{Kind: elementindex.Node, Ref: 1},
		Tags:  map[string]string{"railway": "station", "name": "Central"},
		Coord: &elementindex.LonLat{Lon: 0, Lat: 0},
	}
	entranceEl := &elementindex.Element{
		Id:    elementindex.Id{Kind: elementindex.Node, Ref: 2},
		Tags:  map[string]string{"railway": "subway_entrance", "entrance": "entrance"},
		Coord: &elementindex.LonLat{Lon: 0.0001, Lat: 0},
	}
	ix := buildIndex(stationEl, entranceEl)
	diag := diagnostics.NewCollector()
	r := NewResolver(ix, diag, false)
	r.Resolve([]*elementindex.Element{stationEl, entranceEl})

	require.Len(t, r.Stations, 1)
	sas := r.StopAreasByStation[stationEl.Id]
	require.Len(t, sas, 1)
	assert.True(t, sas[0].EntranceId[entranceEl.Id])
}

func TestResolver_StationWithoutCentroidErrors(t *testing.T) {
	stationEl := &elementindex.Element{
		Id:   elementindex.Id{Kind: elementindex.Node, Ref: 1},
		Tags: map[string]string{"railway": "station"},
		// no Coord set
	}
	ix := buildIndex(stationEl)
	diag := diagnostics.NewCollector()
	r := NewResolver(ix, diag, false)
	r.Resolve([]*elementindex.Element{stationEl})

	assert.True(t, diag.HasErrors())
	assert.Empty(t, r.Stations)
}

func TestResolver_ExplicitStopAreaMembershipUniqueness(t *testing.T) {
	stationEl := &elementindex.Element{
		Id:    elementindex.Id{Kind: elementindex.Node, Ref: 1},
		Tags:  map[string]string{"railway": "station", "name": "Central"},
		Coord: &elementindex.LonLat{Lon: 0, Lat: 0},
	}
	platformEl := &elementindex.Element{
		Id:    elementindex.Id{Kind: elementindex.Node, Ref: 2},
		Tags:  map[string]string{"public_transport": "platform"},
		Coord: &elementindex.LonLat{Lon: 0, Lat: 0},
	}
	stopArea1 := &elementindex.Element{
		Id:   elementindex.Id{Kind: elementindex.Relation, Ref: 10},
		Tags: map[string]string{"public_transport": "stop_area", "type": "public_transport"},
		Members: []elementindex.Member{
			{Id: stationEl.Id, Role: "station"},
			{Id: platformEl.Id, Role: "platform"},
		},
	}
	stopArea2 := &elementindex.Element{
		Id:   elementindex.Id{Kind: elementindex.Relation, Ref: 11},
		Tags: map[string]string{"public_transport": "stop_area", "type": "public_transport"},
		Members: []elementindex.Member{
			{Id: stationEl.Id, Role: "station"},
			{Id: platformEl.Id, Role: "platform"},
		},
	}
	ix := buildIndex(stationEl, platformEl, stopArea1, stopArea2)
	diag := diagnostics.NewCollector()
	r := NewResolver(ix, diag, false)
	r.Resolve([]*elementindex.Element{stationEl, platformEl, stopArea1, stopArea2})

	require.Len(t, r.StopAreasByStation[stationEl.Id], 2)
	notices := diag.BySeverity(diagnostics.Notice)
	require.NotEmpty(t, notices)
}

func TestResolver_InterchangeAssignsSharedTransferId(t *testing.T) {
	station1 := &elementindex.Element{
		Id: elementindex.Id{Kind: elementindex.Node, Ref: 1}, Tags: map[string]string{"railway": "station"},
		Coord: &elementindex.LonLat{Lon: 0, Lat: 0},
	}
	station2 := &elementindex.Element{
		Id: elementindex.Id{Kind: elementindex.Node, Ref: 2}, Tags: map[string]string{"railway": "station"},
		Coord: &elementindex.LonLat{Lon: 0.01, Lat: 0},
	}
	group := &elementindex.Element{
		Id:   elementindex.Id{Kind: elementindex.Relation, Ref: 99},
		Tags: map[string]string{"public_transport": "stop_area_group"},
		Members: []elementindex.Member{
			{Id: station1.Id},
			{Id: station2.Id},
		},
	}
	ix := buildIndex(station1, station2, group)
	diag := diagnostics.NewCollector()
	r := NewResolver(ix, diag, false)
	r.Resolve([]*elementindex.Element{station1, station2, group})

	require.Len(t, r.Transfers, 1)
	sa1 := r.StopAreasByStation[station1.Id][0]
	sa2 := r.StopAreasByStation[station2.Id][0]
	require.NotNil(t, sa1.TransferId)
	require.NotNil(t, sa2.TransferId)
	assert.Equal(t, *sa1.TransferId, *sa2.TransferId)
}
