package subwayvalidator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/theoremus-urban-solutions/subway-validator/internal/cityconfig"
	"github.com/theoremus-urban-solutions/subway-validator/internal/elementindex"
)

func node(ref int64, lon, lat float64, tags map[string]string) *elementindex.Element {
	return &elementindex.Element{
		Id: elementindex.Id{Kind: elementindex.Node, Ref: ref}, Tags: tags,
		Coord: &elementindex.LonLat{Lon: lon, Lat: lat},
	}
}

func TestValidateCity_SimpleTwoStationSubwayLine(t *testing.T) {
	stationA := node(1, 0, 0, map[string]string{"railway": "station", "name": "Alpha"})
	stationB := node(2, 1, 0, map[string]string{"railway": "station", "name": "Beta"})
	trackN1 := node(10, 0, 0, nil)
	trackN2 := node(11, 0.5, 0, nil)
	trackN3 := node(12, 1, 0, nil)
	trackWay := &elementindex.Element{
		Id:    elementindex.Id{Kind: elementindex.Way, Ref: 20},
		Tags:  map[string]string{"railway": "subway"},
		Nodes: []elementindex.Id{trackN1.Id, trackN2.Id, trackN3.Id},
	}
	routeRel := &elementindex.Element{
		Id:   elementindex.Id{Kind: elementindex.Relation, Ref: 100},
		Tags: map[string]string{"type": "route", "route": "subway", "ref": "1", "name": "Line 1", "colour": "#ff0000"},
		Members: []elementindex.Member{
			{Id: stationA.Id, Role: "stop"},
			{Id: trackWay.Id, Role: ""},
			{Id: stationB.Id, Role: "stop"},
		},
	}
	returnRel := &elementindex.Element{
		Id:   elementindex.Id{Kind: elementindex.Relation, Ref: 101},
		Tags: map[string]string{"type": "route", "route": "subway", "ref": "1", "name": "Line 1", "colour": "#ff0000"},
		Members: []elementindex.Member{
			{Id: stationB.Id, Role: "stop"},
			{Id: trackWay.Id, Role: "backward"},
			{Id: stationA.Id, Role: "stop"},
		},
	}

	elements := []*elementindex.Element{stationA, stationB, trackN1, trackN2, trackN3, trackWay, routeRel, returnRel}

	city := cityconfig.City{
		Id: 1, Name: "Testville",
		Modes:    map[string]bool{"subway": true},
		Expected: cityconfig.ExpectedCounts{NumStations: 2, NumLines: 1},
	}

	v := NewValidator()
	result, err := v.ValidateCity(city, elements)
	require.NoError(t, err)

	assert.Equal(t, 2, result.Report.Stations.Found)
	assert.True(t, result.Report.IsGood)
	assert.Equal(t, 1, result.Report.Lines["subway"].Found)
}

func TestValidateCity_SingleRouteHasNoReturnDirection(t *testing.T) {
	stationA := node(1, 0, 0, map[string]string{"railway": "station", "name": "Alpha"})
	stationB := node(2, 1, 0, map[string]string{"railway": "station", "name": "Beta"})
	routeRel := &elementindex.Element{
		Id:   elementindex.Id{Kind: elementindex.Relation, Ref: 100},
		Tags: map[string]string{"type": "route", "route": "subway", "ref": "1", "name": "Line 1"},
		Members: []elementindex.Member{
			{Id: stationA.Id, Role: "stop"},
			{Id: stationB.Id, Role: "stop"},
		},
	}
	elements := []*elementindex.Element{stationA, stationB, routeRel}

	city := cityconfig.City{Id: 2, Name: "Noplace", Modes: map[string]bool{"subway": true}}

	v := NewValidator()
	result, err := v.ValidateCity(city, elements)
	require.NoError(t, err)
	assert.False(t, result.Report.IsGood)

	var sawNoReturn bool
	for _, d := range result.Report.Diagnostics {
		if d.Severity == "ERROR" {
			sawNoReturn = true
		}
	}
	assert.True(t, sawNoReturn, "expected an error diagnostic for the missing return direction")
}
