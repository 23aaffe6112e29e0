// Package osmxml adapts OpenStreetMap XML (.osm) documents into
// elementindex.Element values. It is the one place in the module that
// knows about the wire format; everything downstream works with typed
// elements.
package osmxml

import (
	"io"
	"strconv"

	"github.com/antchfx/xmlquery"
	"github.com/pkg/errors"
	"github.com/theoremus-urban-solutions/subway-validator/internal/elementindex"
)

// Parse reads an OpenStreetMap XML document from r and returns every
// node, way and relation it contains as elementindex.Element values, in
// document order (nodes, then ways, then relations, as OSM XML always
// orders them).
func Parse(r io.Reader) ([]*elementindex.Element, error) {
	doc, err := xmlquery.Parse(r)
	if err != nil {
		return nil, errors.Wrap(err, "parsing OSM XML document")
	}

	var elements []*elementindex.Element

	for _, n := range xmlquery.Find(doc, "//osm/node") {
		el, err := parseNode(n)
		if err != nil {
			return nil, err
		}
		elements = append(elements, el)
	}
	for _, n := range xmlquery.Find(doc, "//osm/way") {
		el, err := parseWay(n)
		if err != nil {
			return nil, err
		}
		elements = append(elements, el)
	}
	for _, n := range xmlquery.Find(doc, "//osm/relation") {
		el, err := parseRelation(n)
		if err != nil {
			return nil, err
		}
		elements = append(elements, el)
	}

	return elements, nil
}

func parseId(n *xmlquery.Node) (int64, error) {
	raw := n.SelectAttr("id")
	ref, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, errors.Wrapf(err, "element id %q unparseable", raw)
	}
	return ref, nil
}

func parseTags(n *xmlquery.Node) map[string]string {
	tagNodes := xmlquery.Find(n, "tag")
	if len(tagNodes) == 0 {
		return nil
	}
	tags := make(map[string]string, len(tagNodes))
	for _, t := range tagNodes {
		k := t.SelectAttr("k")
		v := t.SelectAttr("v")
		if k != "" {
			tags[k] = v
		}
	}
	return tags
}

func parseNode(n *xmlquery.Node) (*elementindex.Element, error) {
	ref, err := parseId(n)
	if err != nil {
		return nil, err
	}
	lat, err := strconv.ParseFloat(n.SelectAttr("lat"), 64)
	if err != nil {
		return nil, errors.Wrapf(err, "node %d: bad lat", ref)
	}
	lon, err := strconv.ParseFloat(n.SelectAttr("lon"), 64)
	if err != nil {
		return nil, errors.Wrapf(err, "node %d: bad lon", ref)
	}
	return &elementindex.Element{
		Id:    elementindex.Id{Kind: elementindex.Node, Ref: ref},
		Tags:  parseTags(n),
		Coord: &elementindex.LonLat{Lon: lon, Lat: lat},
	}, nil
}

func parseWay(n *xmlquery.Node) (*elementindex.Element, error) {
	ref, err := parseId(n)
	if err != nil {
		return nil, err
	}
	ndNodes := xmlquery.Find(n, "nd")
	nodes := make([]elementindex.Id, 0, len(ndNodes))
	for _, nd := range ndNodes {
		refAttr := nd.SelectAttr("ref")
		nodeRef, err := strconv.ParseInt(refAttr, 10, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "way %d: bad nd ref %q", ref, refAttr)
		}
		nodes = append(nodes, elementindex.Id{Kind: elementindex.Node, Ref: nodeRef})
	}
	return &elementindex.Element{
		Id:    elementindex.Id{Kind: elementindex.Way, Ref: ref},
		Tags:  parseTags(n),
		Nodes: nodes,
	}, nil
}

var memberKinds = map[string]elementindex.Kind{
	"node": elementindex.Node, "way": elementindex.Way, "relation": elementindex.Relation,
}

func parseRelation(n *xmlquery.Node) (*elementindex.Element, error) {
	ref, err := parseId(n)
	if err != nil {
		return nil, err
	}
	memberNodes := xmlquery.Find(n, "member")
	members := make([]elementindex.Member, 0, len(memberNodes))
	for _, m := range memberNodes {
		kind, ok := memberKinds[m.SelectAttr("type")]
		if !ok {
			continue
		}
		refAttr := m.SelectAttr("ref")
		memberRef, err := strconv.ParseInt(refAttr, 10, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "relation %d: bad member ref %q", ref, refAttr)
		}
		members = append(members, elementindex.Member{
			Id:   elementindex.Id{Kind: kind, Ref: memberRef},
			Role: m.SelectAttr("role"),
		})
	}
	return &elementindex.Element{
		Id:      elementindex.Id{Kind: elementindex.Relation, Ref: ref},
		Tags:    parseTags(n),
		Members: members,
	}, nil
}
