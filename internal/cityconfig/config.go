// Package cityconfig loads the per-city configuration described in spec
// §6: bounding box, requested networks/modes, and expected counts used to
// judge whether a found count is within tolerance. Loading is kept thin
// (an external-collaborator concern per spec §1) but still uses the same
// stack the rest of the ambient tooling does: viper for file decoding,
// go-playground/validator for struct-tag validation.
package cityconfig

import (
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// BBox is a bounding box reordered to (min_lon, min_lat, max_lon, max_lat)
// from the "min_lat,min_lon,max_lat,max_lon" form city lists use.
type BBox struct {
	MinLon, MinLat, MaxLon, MaxLat float64
}

// ExpectedCounts are the per-city count expectations from spec §6: rapid-
// transit cities carry NumInterchanges, overground cities carry the
// per-mode line breakdown.
type ExpectedCounts struct {
	NumStations      int `mapstructure:"num_stations" validate:"gte=0"`
	NumLines         int `mapstructure:"num_lines" validate:"gte=0"`
	NumLightLines    int `mapstructure:"num_light_lines" validate:"gte=0"`
	NumInterchanges  int `mapstructure:"num_interchanges" validate:"gte=0"`
	NumTramLines     int `mapstructure:"num_tram_lines" validate:"gte=0"`
	NumBusLines      int `mapstructure:"num_bus_lines" validate:"gte=0"`
	NumTrolleybusLines int `mapstructure:"num_trolleybus_lines" validate:"gte=0"`
	NumOtherLines    int `mapstructure:"num_other_lines" validate:"gte=0"`
}

// RawCity is the shape a city list file (YAML/JSON, loaded by viper)
// decodes into, before bbox/networks parsing.
type RawCity struct {
	Id        int    `mapstructure:"id" validate:"required"`
	Name      string `mapstructure:"name" validate:"required"`
	Country   string `mapstructure:"country"`
	Continent string `mapstructure:"continent"`
	BBox      string `mapstructure:"bbox" validate:"required"`
	Networks  string `mapstructure:"networks"`
	ExpectedCounts `mapstructure:",squash"`
}

// City is one fully parsed, validated city configuration.
type City struct {
	Id        int
	Name      string
	Country   string
	Continent string
	BBox      BBox
	Modes     map[string]bool
	Networks  []string
	Expected  ExpectedCounts
}

var defaultRapidModes = map[string]bool{"subway": true, "light_rail": true}
var defaultOvergroundModes = map[string]bool{"tram": true, "trolleybus": true, "bus": true}

// ParseNetworks splits a "modes_csv:names_semicolon_list" networks tag,
// either half optional, applying the rapid/overground default mode sets
// when the modes half is empty.
func ParseNetworks(raw string, rapid bool) (modes map[string]bool, names []string) {
	modes = make(map[string]bool)
	modesPart, namesPart := raw, ""
	if idx := strings.Index(raw, ":"); idx >= 0 {
		modesPart, namesPart = raw[:idx], raw[idx+1:]
	}
	modesPart = strings.TrimSpace(modesPart)
	if modesPart == "" {
		if rapid {
			for m := range defaultRapidModes {
				modes[m] = true
			}
		} else {
			for m := range defaultOvergroundModes {
				modes[m] = true
			}
		}
	} else {
		for _, m := range strings.Split(modesPart, ",") {
			m = strings.TrimSpace(m)
			if m != "" {
				modes[m] = true
			}
		}
	}
	if namesPart != "" {
		for _, n := range strings.Split(namesPart, ";") {
			n = strings.TrimSpace(n)
			if n != "" {
				names = append(names, n)
			}
		}
	}
	return modes, names
}

// ParseBBox parses "min_lat,min_lon,max_lat,max_lon" into the reordered
// (min_lon, min_lat, max_lon, max_lat) BBox form the geometry code uses.
func ParseBBox(raw string) (BBox, error) {
	parts := strings.Split(raw, ",")
	if len(parts) != 4 {
		return BBox{}, errors.Errorf("bbox must have four comma-separated values, got %q", raw)
	}
	vals := make([]float64, 4)
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return BBox{}, errors.Wrapf(err, "bbox field %d unparseable", i)
		}
		vals[i] = v
	}
	minLat, minLon, maxLat, maxLon := vals[0], vals[1], vals[2], vals[3]
	return BBox{MinLon: minLon, MinLat: minLat, MaxLon: maxLon, MaxLat: maxLat}, nil
}

var structValidator = validator.New()

// Load reads a city list file (any format viper supports: YAML, JSON,
// TOML) from path and returns every validated City. rapid selects which
// default mode set applies when a city's networks field omits its modes
// half.
func Load(path string, rapid bool) ([]City, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, errors.Wrap(err, "reading city config file")
	}

	var raws []RawCity
	if err := v.UnmarshalKey("cities", &raws); err != nil {
		return nil, errors.Wrap(err, "decoding cities list")
	}

	cities := make([]City, 0, len(raws))
	for _, raw := range raws {
		if err := structValidator.Struct(raw); err != nil {
			return nil, errors.Wrapf(err, "city %q failed validation", raw.Name)
		}
		bbox, err := ParseBBox(raw.BBox)
		if err != nil {
			return nil, errors.Wrapf(err, "city %q", raw.Name)
		}
		modes, networkNames := ParseNetworks(raw.Networks, rapid)
		cities = append(cities, City{
			Id: raw.Id, Name: raw.Name, Country: raw.Country, Continent: raw.Continent,
			BBox: bbox, Modes: modes, Networks: networkNames, Expected: raw.ExpectedCounts,
		})
	}
	return cities, nil
}

// WithinTolerance reports whether found is acceptable against expected
// given a tolerance fraction (2% for stations, 7% for interchanges, per
// spec §7).
func WithinTolerance(expected, found int, tolerance float64) bool {
	if expected == 0 {
		return found == 0
	}
	diff := found - expected
	if diff < 0 {
		diff = -diff
	}
	return float64(diff) <= tolerance*float64(expected)
}

// StationTolerance / InterchangeTolerance are the fixed fractions spec §7
// names explicitly.
const (
	StationTolerance     = 0.02
	InterchangeTolerance = 0.07
)
