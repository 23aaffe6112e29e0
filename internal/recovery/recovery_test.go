package recovery

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/theoremus-urban-solutions/subway-validator/internal/geometry"
)

func sampleData() *Data {
	return &Data{Itineraries: []Itinerary{
		{
			Colour: "#ff0000", Ref: "1", From: "Alpha", To: "Gamma",
			Stations: []ItineraryStation{
				{Name: "Alpha", Center: Center{Lon: 0, Lat: 0}},
				{Name: "Beta", Center: Center{Lon: 1, Lat: 0}},
				{Name: "Gamma", Center: Center{Lon: 2, Lat: 0}},
			},
		},
		{
			Colour: "#ff0000", Ref: "1", From: "Gamma", To: "Alpha",
			Stations: []ItineraryStation{
				{Name: "Gamma", Center: Center{Lon: 2, Lat: 0}},
				{Name: "Beta", Center: Center{Lon: 1, Lat: 0}},
				{Name: "Alpha", Center: Center{Lon: 0, Lat: 0}},
			},
		},
	}}
}

func TestIndex_LookupReordersByEndpointDisambiguation(t *testing.T) {
	idx := NewIndex(sampleData())

	stopNames := []string{"Gamma", "Beta", "Alpha"}
	stopCentroids := []geometry.Point{{Lon: 2, Lat: 0}, {Lon: 1, Lat: 0}, {Lon: 0, Lat: 0}}

	order, ok := idx.Lookup("#ff0000", "1", stopNames, stopCentroids)
	require.True(t, ok)
	assert.Equal(t, []int{0, 1, 2}, order)
}

func TestIndex_LookupFailsWithoutMatchingColourRef(t *testing.T) {
	idx := NewIndex(sampleData())
	_, ok := idx.Lookup("#00ff00", "1", nil, nil)
	assert.False(t, ok)
}

func TestIndex_LookupFailsWhenStationUnmatched(t *testing.T) {
	idx := NewIndex(sampleData())
	stopCentroids := []geometry.Point{{Lon: 50, Lat: 50}, {Lon: 1, Lat: 0}, {Lon: 0, Lat: 0}}
	_, ok := idx.Lookup("#ff0000", "1", []string{"Alpha", "Beta", "Gamma"}, stopCentroids)
	assert.False(t, ok)
}
