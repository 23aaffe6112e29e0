package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistance_OneDegreeLonAtEquator(t *testing.T) {
	a := Point{Lon: 0, Lat: 0}
	b := Point{Lon: 1, Lat: 0}
	d := Distance(a, b)
	assert.InDelta(t, 111195, d, 500)
}

func TestDistance_ZeroForSamePoint(t *testing.T) {
	p := Point{Lon: 5, Lat: 5}
	assert.Equal(t, 0.0, Distance(p, p))
}

func TestProjectOntoSegment_MidpointFallsOnLine(t *testing.T) {
	a := Point{Lon: 0, Lat: 0}
	b := Point{Lon: 1, Lat: 0}
	p := Point{Lon: 0.5, Lat: 0.0001}
	proj := ProjectOntoSegment(p, a, b)
	assert.InDelta(t, 0.5, proj.T, 0.01)
	assert.Greater(t, proj.Distance, 0.0)
}

func TestProjectOntoSegment_ClampsBeforeStart(t *testing.T) {
	a := Point{Lon: 0, Lat: 0}
	b := Point{Lon: 1, Lat: 0}
	p := Point{Lon: -1, Lat: 0}
	proj := ProjectOntoSegment(p, a, b)
	assert.Equal(t, 0.0, proj.T)
}

func TestAngle_StraightLineIs180(t *testing.T) {
	a := Angle(Point{Lon: 0, Lat: 0}, Point{Lon: 1, Lat: 0}, Point{Lon: 2, Lat: 0})
	assert.InDelta(t, 180, a, 0.5)
}

func TestAngle_SharpTurnIsSmall(t *testing.T) {
	a := Angle(Point{Lon: 1, Lat: 0}, Point{Lon: 0, Lat: 0}, Point{Lon: 1, Lat: 0.0001})
	assert.Less(t, a, 45.0)
}
