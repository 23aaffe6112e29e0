package elementindex

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIndex_AddAndGet(t *testing.T) {
	ix := New()
	node := &Element{Id: Id{Kind: Node, Ref: 1}, Coord: &LonLat{Lon: 1, Lat: 2}}
	ix.AddElement(node)

	got := ix.Get(Id{Kind: Node, Ref: 1})
	require.NotNil(t, got)
	assert.Equal(t, 1.0, got.Coord.Lon)
	assert.Nil(t, ix.Get(Id{Kind: Node, Ref: 2}))
}

func TestIndex_RelationWithoutMembersDropped(t *testing.T) {
	ix := New()
	rel := &Element{Id: Id{Kind: Relation, Ref: 1}}
	ix.AddElement(rel)
	assert.Nil(t, ix.Get(Id{Kind: Relation, Ref: 1}))
	assert.Equal(t, 0, ix.Len())
}

func TestIndex_RouteMasterMembershipAndDuplicate(t *testing.T) {
	ix := New()
	route := Id{Kind: Relation, Ref: 10}
	master1 := &Element{
		Id:      Id{Kind: Relation, Ref: 1},
		Tags:    map[string]string{"type": "route_master"},
		Members: []Member{{Id: route, Role: ""}},
	}
	master2 := &Element{
		Id:      Id{Kind: Relation, Ref: 2},
		Tags:    map[string]string{"type": "route_master"},
		Members: []Member{{Id: route, Role: ""}},
	}
	dup1 := ix.AddElement(master1)
	assert.Empty(t, dup1)
	dup2 := ix.AddElement(master2)
	require.Len(t, dup2, 1)
	assert.Equal(t, master1.Id, dup2[0].Master)

	got, ok := ix.RouteMasterOf(route)
	require.True(t, ok)
	assert.Equal(t, master1.Id, got)
}

func TestIndex_StopAreaMembership(t *testing.T) {
	ix := New()
	station := Id{Kind: Node, Ref: 1}
	stopArea := &Element{
		Id:      Id{Kind: Relation, Ref: 5},
		Tags:    map[string]string{"public_transport": "stop_area", "type": "public_transport"},
		Members: []Member{{Id: station, Role: "station"}},
	}
	ix.AddElement(stopArea)
	assert.Equal(t, []Id{stopArea.Id}, ix.StopAreasContaining(station))
}

func TestIndex_CentroidNode(t *testing.T) {
	ix := New()
	node := &Element{Id: Id{Kind: Node, Ref: 1}, Coord: &LonLat{Lon: 10, Lat: 20}}
	ix.AddElement(node)
	c := ix.Centroid(node.Id)
	require.NotNil(t, c)
	assert.Equal(t, 10.0, c.Lon)
	assert.Equal(t, 20.0, c.Lat)
}

func TestIndex_CentroidWayMeansEndpoints(t *testing.T) {
	ix := New()
	n1 := &Element{Id: Id{Kind: Node, Ref: 1}, Coord: &LonLat{Lon: 0, Lat: 0}}
	n2 := &Element{Id: Id{Kind: Node, Ref: 2}, Coord: &LonLat{Lon: 10, Lat: 0}}
	way := &Element{Id: Id{Kind: Way, Ref: 1}, Nodes: []Id{n1.Id, n2.Id}}
	ix.AddElement(n1)
	ix.AddElement(n2)
	ix.AddElement(way)

	c := ix.Centroid(way.Id)
	require.NotNil(t, c)
	assert.Equal(t, 5.0, c.Lon)
}

func TestIndex_CentroidRelationRecursesToFirstMember(t *testing.T) {
	ix := New()
	n1 := &Element{Id: Id{Kind: Node, Ref: 1}, Coord: &LonLat{Lon: 3, Lat: 4}}
	rel := &Element{Id: Id{Kind: Relation, Ref: 1}, Members: []Member{{Id: n1.Id}}}
	ix.AddElement(n1)
	ix.AddElement(rel)

	c := ix.Centroid(rel.Id)
	require.NotNil(t, c)
	assert.Equal(t, 3.0, c.Lon)
	assert.Equal(t, 4.0, c.Lat)
}

func TestIndex_CentroidAbsentPropagates(t *testing.T) {
	ix := New()
	way := &Element{Id: Id{Kind: Way, Ref: 1}, Nodes: []Id{{Kind: Node, Ref: 99}}}
	ix.AddElement(way)
	assert.Nil(t, ix.Centroid(way.Id))
}

func TestIndex_CentroidMemoized(t *testing.T) {
	ix := New()
	n1 := &Element{Id: Id{Kind: Node, Ref: 1}, Coord: &LonLat{Lon: 1, Lat: 1}}
	ix.AddElement(n1)
	first := ix.Centroid(n1.Id)
	second := ix.Centroid(n1.Id)
	assert.Same(t, first, second)
}

func TestContainsPoint(t *testing.T) {
	inside := LonLat{Lon: 1, Lat: 1}
	min, max := LonLat{Lon: 0, Lat: 0}, LonLat{Lon: 2, Lat: 2}
	assert.True(t, ContainsPoint(inside, min, max))
	assert.False(t, ContainsPoint(LonLat{Lon: 3, Lat: 3}, min, max))
}
