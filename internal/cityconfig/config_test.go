package cityconfig

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBBox_ReordersToLonLat(t *testing.T) {
	bbox, err := ParseBBox("51.2,-0.5,51.7,0.3")
	require.NoError(t, err)
	assert.Equal(t, BBox{MinLon: -0.5, MinLat: 51.2, MaxLon: 0.3, MaxLat: 51.7}, bbox)
}

func TestParseBBox_RejectsWrongFieldCount(t *testing.T) {
	_, err := ParseBBox("1,2,3")
	assert.Error(t, err)
}

func TestParseNetworks_DefaultsByRapidFlag(t *testing.T) {
	modes, names := ParseNetworks("", true)
	assert.True(t, modes["subway"])
	assert.True(t, modes["light_rail"])
	assert.Empty(t, names)

	modes, _ = ParseNetworks("", false)
	assert.True(t, modes["tram"])
	assert.True(t, modes["bus"])
}

func TestParseNetworks_ExplicitModesAndNames(t *testing.T) {
	modes, names := ParseNetworks("subway,light_rail:Metro;RER", true)
	assert.True(t, modes["subway"])
	assert.True(t, modes["light_rail"])
	assert.Equal(t, []string{"Metro", "RER"}, names)
}

func TestWithinTolerance(t *testing.T) {
	assert.True(t, WithinTolerance(100, 102, StationTolerance))
	assert.False(t, WithinTolerance(100, 110, StationTolerance))
	assert.True(t, WithinTolerance(0, 0, StationTolerance))
	assert.False(t, WithinTolerance(0, 1, StationTolerance))
}
