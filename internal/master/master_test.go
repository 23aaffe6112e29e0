package master

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/theoremus-urban-solutions/subway-validator/internal/diagnostics"
	"github.com/theoremus-urban-solutions/subway-validator/internal/elementindex"
	"github.com/theoremus-urban-solutions/subway-validator/internal/route"
	"github.com/theoremus-urban-solutions/subway-validator/internal/station"
)

func sa(ref int64) *station.StopArea {
	st := &station.Station{Id: elementindex.Id{Kind: elementindex.Node, Ref: ref}}
	return &station.StopArea{Id: st.Id, Station: st}
}

func routeWithStops(id int64, mode string, stopRefs ...int64) *route.Route {
	r := &route.Route{Id: elementindex.Id{Kind: elementindex.Relation, Ref: id}, Mode: mode}
	for _, ref := range stopRefs {
		r.Stops = append(r.Stops, &route.RouteStop{StopArea: sa(ref)})
	}
	return r
}

func TestAggregator_ModeMismatchDropsRoute(t *testing.T) {
	diag := diagnostics.NewCollector()
	agg := NewAggregator(diag)
	masterId := elementindex.Id{Kind: elementindex.Relation, Ref: 1}

	agg.Add(routeWithStops(10, "subway", 1, 2), &masterId, nil)
	agg.Add(routeWithStops(11, "tram", 1, 2), &masterId, nil)

	masters := agg.Masters()
	require.Len(t, masters, 1)
	assert.Len(t, masters[0].Routes, 1)
	assert.True(t, diag.HasErrors())
}

func TestAggregator_BestRouteIsLongest(t *testing.T) {
	diag := diagnostics.NewCollector()
	agg := NewAggregator(diag)
	masterId := elementindex.Id{Kind: elementindex.Relation, Ref: 1}

	agg.Add(routeWithStops(10, "subway", 1, 2), &masterId, nil)
	agg.Add(routeWithStops(11, "subway", 1, 2, 3), &masterId, nil)

	rm := agg.Masters()[0]
	assert.Equal(t, 3, len(rm.Best().Stops))
}

func TestCalculateTwinRoutesDiff_OneMissingMiddleStop(t *testing.T) {
	a := routeWithStops(1, "subway", 1, 2, 3)
	b := routeWithStops(2, "subway", 3, 1)

	diff := CalculateTwinRoutesDiff(a, b)
	require.Len(t, diff.MissingFromB, 1)
	assert.Equal(t, elementindex.Id{Kind: elementindex.Node, Ref: 2}, diff.MissingFromB[0].StopArea.Id)
	assert.Empty(t, diff.MissingFromA)
}

func TestFindTwinRoutes_PairsReverseEnds(t *testing.T) {
	a := routeWithStops(1, "subway", 1, 2, 3)
	b := routeWithStops(2, "subway", 3, 2, 1)

	pairs := FindTwinRoutes([]*route.Route{a, b})
	require.Len(t, pairs, 1)
}
