package osmxml

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/theoremus-urban-solutions/subway-validator/internal/elementindex"
)

const sampleOSM = `<?xml version="1.0"?>
<osm version="0.6">
  <node id="1" lat="51.5" lon="-0.1">
    <tag k="railway" v="station"/>
  </node>
  <node id="2" lat="51.6" lon="-0.2"/>
  <way id="10">
    <nd ref="1"/>
    <nd ref="2"/>
    <tag k="railway" v="rail"/>
  </way>
  <relation id="100">
    <member type="node" ref="1" role="stop"/>
    <member type="way" ref="10" role=""/>
    <tag k="route" v="subway"/>
  </relation>
</osm>`

func TestParse_ExtractsNodesWaysRelations(t *testing.T) {
	elements, err := Parse(strings.NewReader(sampleOSM))
	require.NoError(t, err)
	require.Len(t, elements, 4)

	n1 := elements[0]
	assert.Equal(t, elementindex.Id{Kind: elementindex.Node, Ref: 1}, n1.Id)
	assert.Equal(t, "station", n1.Tags["railway"])
	require.NotNil(t, n1.Coord)
	assert.InDelta(t, 51.5, n1.Coord.Lat, 1e-9)

	way := elements[2]
	assert.Equal(t, elementindex.Id{Kind: elementindex.Way, Ref: 10}, way.Id)
	assert.Equal(t, []elementindex.Id{{Kind: elementindex.Node, Ref: 1}, {Kind: elementindex.Node, Ref: 2}}, way.Nodes)

	rel := elements[3]
	assert.Equal(t, elementindex.Id{Kind: elementindex.Relation, Ref: 100}, rel.Id)
	require.Len(t, rel.Members, 2)
	assert.Equal(t, "stop", rel.Members[0].Role)
	assert.Equal(t, elementindex.Way, rel.Members[1].Id.Kind)
}

func TestParse_RejectsBadCoordinate(t *testing.T) {
	_, err := Parse(strings.NewReader(`<osm><node id="1" lat="bad" lon="0"/></osm>`))
	assert.Error(t, err)
}
