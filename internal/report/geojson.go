package report

import "github.com/theoremus-urban-solutions/subway-validator/internal/geometry"

// UnusedEntrance is an entrance/exit node never claimed by any StopArea
// across the whole city.
type UnusedEntrance struct {
	Id   string
	Name string
	Pos  geometry.Point
}

// UnusedEntrancesGeoJSON builds a GeoJSON FeatureCollection of entrances
// never claimed by any StopArea, mirroring the original
// get_unused_subway_entrances_geojson output adapter. It is a pure
// function — no file or network I/O — returning plain map[string]any so
// callers can marshal it with any encoder.
func UnusedEntrancesGeoJSON(entrances []UnusedEntrance) map[string]interface{} {
	features := make([]map[string]interface{}, 0, len(entrances))
	for _, e := range entrances {
		features = append(features, map[string]interface{}{
			"type": "Feature",
			"geometry": map[string]interface{}{
				"type":        "Point",
				"coordinates": []float64{e.Pos.Lon, e.Pos.Lat},
			},
			"properties": map[string]interface{}{
				"id":   e.Id,
				"name": e.Name,
			},
		})
	}
	return map[string]interface{}{
		"type":     "FeatureCollection",
		"features": features,
	}
}
