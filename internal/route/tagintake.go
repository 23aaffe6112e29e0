package route

import (
	"github.com/theoremus-urban-solutions/subway-validator/internal/diagnostics"
	"github.com/theoremus-urban-solutions/subway-validator/internal/elementindex"
	"github.com/theoremus-urban-solutions/subway-validator/internal/valuetypes"
)

// intakeTags extracts ref/name/mode/colour/infill/network/interval/opening
// hours from rel's tags, falling back to masterRef for ref when rel has
// none of its own. mode is required by the caller before intake is
// called (routes are only assembled once IsRoute has matched).
func intakeTags(rel *elementindex.Element, masterRef string, diag *diagnostics.Collector) *Route {
	r := &Route{Id: rel.Id}

	r.Mode, _ = rel.Tag("route")
	r.Name, _ = rel.Tag("name")

	if ref, ok := rel.Tag("ref"); ok {
		r.Ref = ref
	} else if masterRef != "" {
		r.Ref = masterRef
	} else {
		r.Ref = r.Name
	}

	r.Network, _ = rel.Tag("network")

	if raw, ok := rel.Tag("colour"); ok {
		if norm, ok := valuetypes.NormalizeColour(raw); ok {
			r.Colour = &norm
		} else {
			diag.Warn("invalid colour value", rel.Ref())
		}
	}
	if raw, ok := rel.Tag("colour:infill"); ok {
		if norm, ok := valuetypes.NormalizeColour(raw); ok {
			r.Infill = &norm
		} else {
			diag.Warn("invalid infill colour value", rel.Ref())
		}
	}

	for key, value := range rel.Tags {
		if !valuetypes.IsIntervalKey(key) {
			continue
		}
		if secs, ok := valuetypes.ParseInterval(value); ok {
			r.IntervalSeconds = &secs
		} else {
			diag.Notice("unparseable interval value", rel.Ref())
		}
		break
	}

	if raw, ok := rel.Tag("opening_hours"); ok {
		if start, end, ok := valuetypes.ParseOpeningHoursRange(raw); ok {
			r.OpeningStart, r.OpeningEnd = start, end
		}
	}

	if rel.TagIs("public_transport:version", "1") {
		diag.Warn("public_transport:version=1 route is not supported", rel.Ref())
	}

	return r
}
