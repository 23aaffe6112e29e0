// Package subwayvalidator validates and reconstructs an urban rail/tram
// network from a raw OpenStreetMap-style element dataset: it resolves
// stations and interchanges, assembles and geometrically orders routes,
// groups them into route masters, and reports every anomaly found along
// the way as a severity-ranked diagnostic.
//
// The public entry point is Validator.ValidateCity. Everything else —
// elementindex, station, route, trackgeometry, master — lives under
// internal/ and is wired together here; callers only see the assembled
// result types.
package subwayvalidator
