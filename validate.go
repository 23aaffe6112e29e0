package subwayvalidator

import (
	"fmt"
	"sort"
	"strings"

	"github.com/theoremus-urban-solutions/subway-validator/internal/cityconfig"
	"github.com/theoremus-urban-solutions/subway-validator/internal/diagnostics"
	"github.com/theoremus-urban-solutions/subway-validator/internal/elementindex"
	"github.com/theoremus-urban-solutions/subway-validator/internal/geometry"
	"github.com/theoremus-urban-solutions/subway-validator/internal/logging"
	"github.com/theoremus-urban-solutions/subway-validator/internal/master"
	"github.com/theoremus-urban-solutions/subway-validator/internal/metrics"
	"github.com/theoremus-urban-solutions/subway-validator/internal/recovery"
	"github.com/theoremus-urban-solutions/subway-validator/internal/report"
	"github.com/theoremus-urban-solutions/subway-validator/internal/route"
	"github.com/theoremus-urban-solutions/subway-validator/internal/station"
	"github.com/theoremus-urban-solutions/subway-validator/internal/trackgeometry"
)

// Validator runs the full validation pipeline over one or more cities,
// sharing a single report run id and ambient logging/metrics across all
// of them.
type Validator struct {
	logger   logging.Logger
	metrics  *metrics.Recorder
	recovery *recovery.Index
	reportGen *report.Generator
}

// NewValidator builds a Validator. A default console logger is used if
// WithLogger is not given; metrics and recovery data are both optional.
func NewValidator(opts ...Option) *Validator {
	v := &Validator{
		logger:    logging.New(),
		reportGen: report.NewGenerator(),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// CityResult bundles one city's validation report with its supporting
// GeoJSON export of entrances unused by any stop area.
type CityResult struct {
	Report                 *report.ValidationReport
	UnusedEntrancesGeoJSON map[string]interface{}
}

// ValidateCity runs elementindex construction, station resolution, route
// assembly, track geometry and route-master aggregation over elements,
// scoped to city's requested modes; the report lists city's expected
// counts beside the found ones. city.BBox is not used to filter elements.
func (v *Validator) ValidateCity(city cityconfig.City, elements []*elementindex.Element) (*CityResult, error) {
	if v.metrics != nil {
		done := v.metrics.Timer(city.Name)
		defer done()
	}
	v.logger.Info("validating city", logging.Field{Key: "city", Value: city.Name})

	diag := diagnostics.NewCollector()
	ix := elementindex.New()
	for _, el := range elements {
		for _, dup := range ix.AddElement(el) {
			diag.Error("route belongs to more than one route_master", dup.Route.DiagRef(""))
		}
	}

	tramRequested := city.Modes["tram"]
	resolver := station.NewResolver(ix, diag, tramRequested)
	resolver.Resolve(elements)

	lookupSA := func(stationId elementindex.Id) []*station.StopArea {
		return resolver.StopAreasByStation[stationId]
	}

	var recoverFn trackgeometry.RecoveryLookup
	if v.recovery != nil {
		recoverFn = v.recovery.Lookup
	}

	agg := master.NewAggregator(diag)
	usedStopAreas := make(map[elementindex.Id]bool)
	usedStations := make(map[elementindex.Id]bool)

	for _, el := range elements {
		if !station.IsRoute(el, city.Modes) {
			continue
		}

		var masterRef string
		var masterTags map[string]string
		var masterIdPtr *elementindex.Id
		if masterId, ok := ix.RouteMasterOf(el.Id); ok {
			id := masterId
			masterIdPtr = &id
			if masterEl := ix.Get(masterId); masterEl != nil {
				masterTags = masterEl.Tags
				masterRef, _ = masterEl.Tag("ref")
			}
		}

		asm := route.NewAssembler(ix, diag, lookupSA)
		rt, err := asm.Assemble(el, masterRef)
		if err != nil {
			diag.Error(err.Error(), el.Ref())
			continue
		}

		trackgeometry.Apply(ix, diag, rt, recoverFn)
		for _, s := range rt.Stops {
			usedStopAreas[s.StopArea.Id] = true
			usedStations[s.StopArea.Station.Id] = true
		}

		agg.Add(rt, masterIdPtr, masterTags)
	}

	masters := agg.Masters()
	networks := make(map[string]int)
	for _, rm := range masters {
		master.CheckReturnDirection(rm, diag)
		for _, pair := range master.FindTwinRoutes(rm.Routes) {
			d := master.CalculateTwinRoutesDiff(pair.A, pair.B)
			master.EmitTwinDiffNotices(pair, d, diag)
		}
		if rm.Network != "" {
			networks[rm.Network]++
		}
	}
	emitNetworkCountNotice(networks, city.Networks, diag)

	if unusedStations := station.UnusedStations(resolver.Stations, usedStations); len(unusedStations) > 0 {
		ids := make([]string, len(unusedStations))
		for i, st := range unusedStations {
			ids[i] = st.Id.String()
		}
		diag.Notice(fmt.Sprintf("%d unused stations: %s", len(unusedStations), formatIdList(ids, 20)), nil)
	}

	transfers := station.FilterTransfersByUsage(resolver.Transfers, usedStopAreas)

	entranceUse := make(map[elementindex.Id]bool)
	for _, sa := range resolver.StopAreas {
		for id := range sa.EntranceId {
			entranceUse[id] = true
		}
		for id := range sa.ExitId {
			entranceUse[id] = true
		}
	}
	var unused []report.UnusedEntrance
	var notInStopAreas int
	for _, el := range elements {
		if el.Id.Kind != elementindex.Node || !station.IsEntrance(el) {
			continue
		}
		if !resolver.ExplicitEntranceIds[el.Id] {
			notInStopAreas++
		}
		if entranceUse[el.Id] {
			continue
		}
		c := ix.Centroid(el.Id)
		if c == nil {
			continue
		}
		unused = append(unused, report.UnusedEntrance{
			Id: el.Id.String(), Name: el.Name(),
			Pos: geometry.Point{Lon: c.Lon, Lat: c.Lat},
		})
	}

	lines := linesByMode(masters, city)

	rpt := v.reportGen.Generate(city.Id, city.Name, diag,
		report.Counts{Expected: city.Expected.NumStations, Found: len(resolver.Stations)},
		report.Counts{Expected: city.Expected.NumInterchanges, Found: len(transfers)},
		lines, len(unused), notInStopAreas, networks)

	if v.metrics != nil {
		for _, d := range diag.All() {
			v.metrics.ObserveNotice(city.Name, d.Severity.String())
		}
	}

	return &CityResult{Report: rpt, UnusedEntrancesGeoJSON: report.UnusedEntrancesGeoJSON(unused)}, nil
}

func linesByMode(masters []*master.RouteMaster, city cityconfig.City) map[string]report.Counts {
	found := make(map[string]int)
	for _, rm := range masters {
		found[rm.Mode]++
	}
	lines := make(map[string]report.Counts)
	if city.Modes["subway"] || city.Modes["light_rail"] {
		lines["subway"] = report.Counts{Expected: city.Expected.NumLines - city.Expected.NumLightLines, Found: found["subway"]}
		lines["light_rail"] = report.Counts{Expected: city.Expected.NumLightLines, Found: found["light_rail"]}
	}
	if city.Modes["tram"] {
		lines["tram"] = report.Counts{Expected: city.Expected.NumTramLines, Found: found["tram"]}
	}
	if city.Modes["bus"] {
		lines["bus"] = report.Counts{Expected: city.Expected.NumBusLines, Found: found["bus"]}
	}
	if city.Modes["trolleybus"] {
		lines["trolleybus"] = report.Counts{Expected: city.Expected.NumTrolleybusLines, Found: found["trolleybus"]}
	}
	return lines
}

// emitNetworkCountNotice reports a notice when more distinct route_master
// networks turn up than the city's configured network list allows for —
// configuring zero or one expected network still tolerates exactly one
// found network before it's worth a notice.
func emitNetworkCountNotice(networks map[string]int, configured []string, diag *diagnostics.Collector) {
	allowed := len(configured)
	if allowed < 1 {
		allowed = 1
	}
	if len(networks) <= allowed {
		return
	}
	names := make([]string, 0, len(networks))
	for name := range networks {
		names = append(names, name)
	}
	sort.Strings(names)
	parts := make([]string, len(names))
	for i, name := range names {
		parts[i] = fmt.Sprintf("%s (%d)", name, networks[name])
	}
	diag.Notice("more than one network: "+strings.Join(parts, "; "), nil)
}

// formatIdList renders up to max ids as a comma-separated list, appending
// ", ..." when there are more than that to show.
func formatIdList(ids []string, max int) string {
	sorted := append([]string{}, ids...)
	sort.Strings(sorted)
	if len(sorted) > max {
		return strings.Join(sorted[:max], ", ") + ", ..."
	}
	return strings.Join(sorted, ", ")
}
