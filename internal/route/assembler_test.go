package route

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/theoremus-urban-solutions/subway-validator/internal/diagnostics"
	"github.com/theoremus-urban-solutions/subway-validator/internal/elementindex"
	"github.com/theoremus-urban-solutions/subway-validator/internal/station"
)

func buildIndex(els ...*elementindex.Element) *elementindex.Index {
	ix := elementindex.New()
	for _, el := range els {
		ix.AddElement(el)
	}
	return ix
}

func TestAssembler_SimpleTwoStationRoute(t *testing.T) {
	s1 := &elementindex.Element{
		Id: elementindex.Id{Kind: elementindex.Node, Ref: 1}, Tags: map[string]string{"railway": "station", "name": "A"},
		Coord: &elementindex.LonLat{Lon: 0, Lat: 0},
	}
	s2 := &elementindex.Element{
		Id: elementindex.Id{Kind: elementindex.Node, Ref: 2}, Tags: map[string]string{"railway": "station", "name": "B"},
		Coord: &elementindex.LonLat{Lon: 1, Lat: 0},
	}
	routeRel := &elementindex.Element{
		Id:   elementindex.Id{Kind: elementindex.Relation, Ref: 100},
		Tags: map[string]string{"type": "route", "route": "subway", "ref": "1", "name": "Line 1"},
		Members: []elementindex.Member{
			{Id: s1.Id, Role: "stop"},
			{Id: s2.Id, Role: "stop"},
		},
	}
	ix := buildIndex(s1, s2, routeRel)
	diag := diagnostics.NewCollector()

	resolver := station.NewResolver(ix, diag, false)
	resolver.Resolve([]*elementindex.Element{s1, s2})

	lookup := func(id elementindex.Id) []*station.StopArea {
		return resolver.StopAreasByStation[id]
	}
	asm := NewAssembler(ix, diag, lookup)
	r, err := asm.Assemble(routeRel, "")
	require.NoError(t, err)
	require.Len(t, r.Stops, 2)
	assert.Equal(t, "1", r.Ref)
	assert.Equal(t, "subway", r.Mode)
	assert.False(t, r.Circular)
	assert.False(t, diag.HasErrors())
}

func TestAssembler_MissingStopMemberIsFatal(t *testing.T) {
	routeRel := &elementindex.Element{
		Id:   elementindex.Id{Kind: elementindex.Relation, Ref: 100},
		Tags: map[string]string{"type": "route", "route": "subway", "ref": "1"},
		Members: []elementindex.Member{
			{Id: elementindex.Id{Kind: elementindex.Node, Ref: 404}, Role: "stop"},
		},
	}
	ix := buildIndex(routeRel)
	diag := diagnostics.NewCollector()
	lookup := func(id elementindex.Id) []*station.StopArea { return nil }
	asm := NewAssembler(ix, diag, lookup)
	_, err := asm.Assemble(routeRel, "")
	require.Error(t, err)
	assert.True(t, elementindex.IsCritical(err))
}
