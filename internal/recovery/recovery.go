// Package recovery loads externally supplied canonical itineraries used
// to recover stop order on routes whose tracks can't otherwise be
// disambiguated (spec §3 "Recovery data"). Itinerary files are grouped by
// (colour, ref); when more than one itinerary shares that key, the
// from/to endpoints on the route are used to disambiguate, and the
// lookup fails silently (ok=false) if ambiguity remains.
package recovery

import (
	"os"

	"github.com/pkg/errors"
	"github.com/theoremus-urban-solutions/subway-validator/internal/geometry"
	"github.com/theoremus-urban-solutions/subway-validator/internal/trackgeometry"
	"gopkg.in/yaml.v3"
)

// Center is a recovery station's recorded coordinate.
type Center struct {
	Lon float64 `yaml:"lon"`
	Lat float64 `yaml:"lat"`
}

// ItineraryStation is one stop entry in a recovery itinerary.
type ItineraryStation struct {
	Name   string `yaml:"name"`
	Center Center `yaml:"center"`
}

// Itinerary is one canonical (from, to) ordering for a (colour, ref) route.
type Itinerary struct {
	Colour   string             `yaml:"colour"`
	Ref      string             `yaml:"ref"`
	From     string             `yaml:"from"`
	To       string             `yaml:"to"`
	Stations []ItineraryStation `yaml:"stations"`
}

// Data is the parsed form of a recovery itinerary file.
type Data struct {
	Itineraries []Itinerary `yaml:"itineraries"`
}

// Load reads and parses a YAML recovery file.
func Load(path string) (*Data, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "reading recovery data file")
	}
	var data Data
	if err := yaml.Unmarshal(raw, &data); err != nil {
		return nil, errors.Wrap(err, "parsing recovery data file")
	}
	return &data, nil
}

// maxStationDistanceMeters bounds how far a route stop may sit from its
// matched recovery station's recorded center and still count as a match.
const maxStationDistanceMeters = 150.0

// Index groups itineraries by (colour, ref) for fast lookup.
type Index struct {
	byKey map[string][]Itinerary
}

// NewIndex builds a lookup index over the itineraries in data.
func NewIndex(data *Data) *Index {
	idx := &Index{byKey: make(map[string][]Itinerary)}
	if data == nil {
		return idx
	}
	for _, it := range data.Itineraries {
		key := it.Colour + "|" + it.Ref
		idx.byKey[key] = append(idx.byKey[key], it)
	}
	return idx
}

// Lookup implements trackgeometry.RecoveryLookup: given a route's colour,
// ref, current stop names, and their centroids, it returns the
// recovery-derived order (as indices into the input slices) or ok=false
// if no itinerary unambiguously matches.
func (idx *Index) Lookup(colour, ref string, stopNames []string, stopCentroids []geometry.Point) (order []int, ok bool) {
	candidates := idx.byKey[colour+"|"+ref]
	if len(candidates) == 0 {
		return nil, false
	}
	if len(candidates) > 1 && len(stopNames) > 0 {
		candidates = disambiguateByEndpoints(candidates, stopNames[0], stopNames[len(stopNames)-1])
	}
	if len(candidates) != 1 {
		return nil, false
	}
	return matchOrder(candidates[0], stopCentroids)
}

func disambiguateByEndpoints(candidates []Itinerary, fromName, toName string) []Itinerary {
	var matched []Itinerary
	for _, c := range candidates {
		if c.From == fromName && c.To == toName {
			matched = append(matched, c)
		}
	}
	if len(matched) > 0 {
		return matched
	}
	return candidates
}

// matchOrder maps each itinerary station to the nearest unused input stop
// within maxStationDistanceMeters, in itinerary order, and returns the
// resulting permutation of input indices. Fails if any itinerary station
// can't be matched or the match count differs from the input count.
func matchOrder(it Itinerary, stopCentroids []geometry.Point) ([]int, bool) {
	used := make([]bool, len(stopCentroids))
	order := make([]int, 0, len(it.Stations))
	for _, st := range it.Stations {
		target := geometry.Point{Lon: st.Center.Lon, Lat: st.Center.Lat}
		best := -1
		bestDist := maxStationDistanceMeters
		for i, c := range stopCentroids {
			if used[i] {
				continue
			}
			d := geometry.Distance(target, c)
			if d <= bestDist {
				best = i
				bestDist = d
			}
		}
		if best < 0 {
			return nil, false
		}
		used[best] = true
		order = append(order, best)
	}
	if len(order) != len(stopCentroids) {
		return nil, false
	}
	return order, true
}

var _ trackgeometry.RecoveryLookup = (&Index{}).Lookup
