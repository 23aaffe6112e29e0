// Package elementindex stores the raw dataset of OpenStreetMap-style public
// transport elements (nodes, ways, relations) and answers the identity,
// centroid and containment queries the rest of the validation pipeline
// needs. It owns every raw element for the lifetime of a city's
// validation; derived objects built by later stages reference elements by
// Id, never by pointer into a container someone else can mutate.
package elementindex

import (
	"fmt"

	"github.com/theoremus-urban-solutions/subway-validator/internal/diagnostics"
)

// Kind distinguishes the three OpenStreetMap element types. Ordering and
// identity are scoped per kind: a node 1 and a way 1 are different elements.
type Kind int

const (
	Node Kind = iota
	Way
	Relation
)

func (k Kind) String() string {
	switch k {
	case Node:
		return "node"
	case Way:
		return "way"
	case Relation:
		return "relation"
	default:
		return "unknown"
	}
}

func (k Kind) prefix() string {
	switch k {
	case Node:
		return "n"
	case Way:
		return "w"
	case Relation:
		return "r"
	default:
		return "?"
	}
}

// Id is a typed key, unique across the whole dataset: two elements of
// different kinds may share a Ref without colliding.
type Id struct {
	Kind Kind
	Ref  int64
}

// String renders the id the way the rest of the pipeline spells it in
// diagnostics messages, e.g. "n123" or "r45".
func (id Id) String() string {
	return fmt.Sprintf("%s%d", id.Kind.prefix(), id.Ref)
}

// DiagRef builds a diagnostics.ElementRef directly from an Id, for
// components (like Route) that keep only ids, not full Elements, for
// their own identity.
func (id Id) DiagRef(name string) *diagnostics.ElementRef {
	return &diagnostics.ElementRef{Kind: id.Kind.String(), Ref: id.Ref, Name: name}
}

// LonLat is a geographic point in (longitude, latitude) order, matching the
// coordinate order the geometry package computes in.
type LonLat struct {
	Lon, Lat float64
}

// Member is one entry of a relation's ordered member list.
type Member struct {
	Id   Id
	Role string
}

// Element is a raw, untyped dataset element: tags are preserved as a
// string-to-string map so unknown keys survive, and domain-specific
// parsing (colour, interval, opening hours) happens at the point of use.
type Element struct {
	Id      Id
	Tags    map[string]string
	Nodes   []Id     // way node references, in order; nil for non-ways
	Members []Member // relation members, in order; nil for non-relations
	Coord   *LonLat  // node coordinate; nil for ways/relations
}

// Tag returns a tag value and whether it was present.
func (e *Element) Tag(key string) (string, bool) {
	if e == nil || e.Tags == nil {
		return "", false
	}
	v, ok := e.Tags[key]
	return v, ok
}

// TagIs reports whether tag key has exactly value.
func (e *Element) TagIs(key, value string) bool {
	v, ok := e.Tag(key)
	return ok && v == value
}

// HasAnyTagKey reports whether any of keys is present on the element,
// regardless of value — used for construction-marker detection.
func (e *Element) HasAnyTagKey(keys ...string) bool {
	for _, k := range keys {
		if _, ok := e.Tag(k); ok {
			return true
		}
	}
	return false
}

// Name returns the display name used in diagnostics messages: the "name"
// tag, falling back to "ref", falling back to empty.
func (e *Element) Name() string {
	if e == nil {
		return ""
	}
	if v, ok := e.Tag("name"); ok {
		return v
	}
	if v, ok := e.Tag("ref"); ok {
		return v
	}
	return ""
}

// Ref builds the diagnostics.ElementRef used to attach this element to a
// diagnostic message.
func (e *Element) Ref() *diagnostics.ElementRef {
	if e == nil {
		return nil
	}
	return &diagnostics.ElementRef{Kind: e.Id.Kind.String(), Ref: e.Id.Ref, Name: e.Name()}
}
