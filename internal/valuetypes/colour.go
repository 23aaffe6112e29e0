// Package valuetypes holds the small, total parsers for untyped OSM tag
// values that the core turns into domain types at the point of use:
// colours, intervals and opening-hours fragments. None of these parsers
// ever error; an unparseable value yields ok=false and the caller falls
// back to null plus a diagnostic, per spec §6 and §9 ("untyped tag maps").
package valuetypes

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Colour is an RGB colour normalized from either a CSS colour name or a
// #RRGGBB literal.
type Colour struct {
	R, G, B uint8
}

// cssNamedColours covers the CSS named colours this engine's source data
// actually uses in practice (route/station "colour" tags); it is not
// meant to be the full CSS4 keyword list. No library in the retrieval
// pack provides CSS keyword-to-RGB resolution, so this small table is
// hand-authored rather than wired to a dependency.
var cssNamedColours = map[string]Colour{
	"black":   {0, 0, 0},
	"white":   {255, 255, 255},
	"red":     {255, 0, 0},
	"green":   {0, 128, 0},
	"blue":    {0, 0, 255},
	"yellow":  {255, 255, 0},
	"orange":  {255, 165, 0},
	"purple":  {128, 0, 128},
	"pink":    {255, 192, 203},
	"brown":   {165, 42, 42},
	"gray":    {128, 128, 128},
	"grey":    {128, 128, 128},
	"cyan":    {0, 255, 255},
	"magenta": {255, 0, 255},
	"maroon":  {128, 0, 0},
	"navy":    {0, 0, 128},
	"silver":  {192, 192, 192},
	"gold":    {255, 215, 0},
	"lime":    {0, 255, 0},
	"teal":    {0, 128, 128},
	"indigo":  {75, 0, 130},
	"violet":  {238, 130, 238},
}

// NormalizeColour parses raw as either a CSS colour name (case-insensitive)
// or a #RRGGBB / RRGGBB literal, returning the canonical "#rrggbb" form.
// Invalid input returns ok=false; the caller is responsible for the
// accompanying warning.
func NormalizeColour(raw string) (string, bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", false
	}
	if c, ok := cssNamedColours[strings.ToLower(trimmed)]; ok {
		return c.Hex(), true
	}
	hex := strings.TrimPrefix(trimmed, "#")
	if len(hex) != 6 {
		return "", false
	}
	rgb, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return "", false
	}
	c := Colour{R: uint8(rgb >> 16), G: uint8(rgb >> 8), B: uint8(rgb)}
	return c.Hex(), true
}

// Hex renders the colour as a lowercase "#rrggbb" string.
func (c Colour) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Luminance is the relative luminance of the colour (WCAG definition),
// in [0, 1].
func (c Colour) Luminance() float64 {
	r := linearize(float64(c.R) / 255.0)
	g := linearize(float64(c.G) / 255.0)
	b := linearize(float64(c.B) / 255.0)
	return 0.2126*r + 0.7152*g + 0.0722*b
}

func linearize(channel float64) float64 {
	if channel <= 0.03928 {
		return channel / 12.92
	}
	return math.Pow((channel+0.055)/1.055, 2.4)
}
