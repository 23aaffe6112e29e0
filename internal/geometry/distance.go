// Package geometry holds the projection and distance primitives shared by
// station resolution and track-line reconstruction: equirectangular
// distance, perpendicular projection onto a polyline segment, and the
// angle formed by three consecutive points. Distances are in metres.
package geometry

import "math"

// EarthRadiusMeters is the mean Earth radius used by the equirectangular
// approximation below.
const EarthRadiusMeters = 6371000.0

// Point is a geographic coordinate in (longitude, latitude) order, degrees.
type Point struct {
	Lon, Lat float64
}

func radians(deg float64) float64 { return deg * math.Pi / 180 }

// Distance computes the distance between a and b using the equirectangular
// approximation with latitude scaling: adequate at city scale and much
// cheaper than haversine, which the engine deliberately does not use (the
// tolerances involved are in metres and the spans never exceed a few km).
func Distance(a, b Point) float64 {
	meanLat := radians((a.Lat + b.Lat) / 2)
	dx := radians(b.Lon-a.Lon) * math.Cos(meanLat)
	dy := radians(b.Lat - a.Lat)
	return math.Sqrt(dx*dx+dy*dy) * EarthRadiusMeters
}

// toPlane projects a point to a local planar (x, y) approximation in
// metres around origin, for segment/angle arithmetic that needs a metric
// plane rather than repeated degree-distance calls.
func toPlane(origin, p Point) (x, y float64) {
	meanLat := radians((origin.Lat + p.Lat) / 2)
	x = radians(p.Lon-origin.Lon) * math.Cos(meanLat) * EarthRadiusMeters
	y = radians(p.Lat-origin.Lat) * EarthRadiusMeters
	return x, y
}

// Projection is the result of projecting a point onto a polyline segment:
// the perpendicular foot, the distance from the point to that foot, and
// how far along the segment (0..1) the foot falls.
type Projection struct {
	Foot     Point
	Distance float64
	T        float64 // 0 at segment start, 1 at segment end
}

// ProjectOntoSegment returns the perpendicular foot of p on the segment
// (a, b), clamped to the segment (t in [0,1]).
func ProjectOntoSegment(p, a, b Point) Projection {
	ax, ay := toPlane(a, a)
	bx, by := toPlane(a, b)
	px, py := toPlane(a, p)

	dx, dy := bx-ax, by-ay
	segLenSq := dx*dx + dy*dy
	var t float64
	if segLenSq > 0 {
		t = ((px-ax)*dx + (py-ay)*dy) / segLenSq
	}
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}

	footX, footY := ax+t*dx, ay+t*dy
	distSq := (px-footX)*(px-footX) + (py-footY)*(py-footY)

	// Convert foot back to lon/lat via linear interpolation, which is an
	// adequate local approximation over segment lengths of a few km.
	foot := Point{Lon: a.Lon + t*(b.Lon-a.Lon), Lat: a.Lat + t*(b.Lat-a.Lat)}
	return Projection{Foot: foot, Distance: math.Sqrt(distSq), T: t}
}

// Angle returns the angle in degrees at vertex formed by the rays to prev
// and next, in [0, 180]. A straight line through vertex is 180°; a sharp
// U-turn is close to 0°.
func Angle(prev, vertex, next Point) float64 {
	v1x, v1y := toPlane(vertex, prev)
	v2x, v2y := toPlane(vertex, next)

	len1 := math.Hypot(v1x, v1y)
	len2 := math.Hypot(v2x, v2y)
	if len1 == 0 || len2 == 0 {
		return 180
	}
	cos := (v1x*v2x + v1y*v2y) / (len1 * len2)
	if cos > 1 {
		cos = 1
	}
	if cos < -1 {
		cos = -1
	}
	return math.Acos(cos) * 180 / math.Pi
}
