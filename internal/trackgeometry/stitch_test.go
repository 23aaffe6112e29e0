package trackgeometry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/theoremus-urban-solutions/subway-validator/internal/geometry"
)

func pt(lon, lat float64) geometry.Point { return geometry.Point{Lon: lon, Lat: lat} }

func TestStitchLongestLine_SimpleChain(t *testing.T) {
	way1 := []geometry.Point{pt(0, 0), pt(1, 0)}
	way2 := []geometry.Point{pt(1, 0), pt(2, 0)}
	res := StitchLongestLine([][]geometry.Point{way1, way2})
	require.Len(t, res.Track, 3)
	assert.False(t, res.HadGap)
	assert.Equal(t, pt(2, 0), res.Track[2])
}

func TestStitchLongestLine_ReversedSecondWay(t *testing.T) {
	way1 := []geometry.Point{pt(0, 0), pt(1, 0)}
	way2 := []geometry.Point{pt(2, 0), pt(1, 0)} // ends at track's last point
	res := StitchLongestLine([][]geometry.Point{way1, way2})
	require.Len(t, res.Track, 3)
	assert.Equal(t, pt(2, 0), res.Track[2])
}

func TestStitchLongestLine_HoleKeepsLongerSegment(t *testing.T) {
	way1 := []geometry.Point{pt(0, 0), pt(1, 0), pt(2, 0)}
	way2 := []geometry.Point{pt(10, 10), pt(11, 10)} // disconnected
	res := StitchLongestLine([][]geometry.Point{way1, way2})
	assert.True(t, res.HadGap)
	assert.Len(t, res.Track, 3) // way1 is longer, kept
}

func projAt(arc float64, candidates ...float64) StopProjection {
	return StopProjection{Found: true, ArcLength: arc, Candidates: candidates}
}

func TestCheckMonotonic_CircularToleratesOneViolation(t *testing.T) {
	projections := []StopProjection{projAt(0), projAt(10), projAt(20), projAt(5)} // wraps back to start
	result := CheckMonotonic(projections, true)
	assert.True(t, result.Ordered)
}

func TestCheckMonotonic_NonCircularFailsOnViolation(t *testing.T) {
	projections := []StopProjection{projAt(0), projAt(10), projAt(5), projAt(20)}
	result := CheckMonotonic(projections, false)
	assert.False(t, result.Ordered)
}

func TestCheckMonotonic_RetriesAlternateCandidateBeforeFlagging(t *testing.T) {
	// The third stop's nearest segment arc length (5) looks like a
	// violation after a running max of 10, but the track passes the same
	// stop again further along (candidate 25), which keeps it ordered.
	projections := []StopProjection{projAt(0), projAt(10), projAt(5, 5, 25), projAt(30)}
	result := CheckMonotonic(projections, false)
	assert.True(t, result.Ordered)
}

func TestProjectStop_OnSegment(t *testing.T) {
	track := []geometry.Point{pt(0, 0), pt(1, 0), pt(2, 0)}
	proj := ProjectStop(pt(0.5, 0.0001), track)
	assert.True(t, proj.Found)
	assert.True(t, proj.OnTracks())
}
