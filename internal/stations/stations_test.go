// internal/stations/stations_test.go

package stations

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve_KnownSpots(t *testing.T) {
	tests := []struct {
		input     string
		stationID string
	}{
		{"Cape Cod", "8447930"},
		{"somewhere near CAPE COD, MA", "8447930"},
		{"Boston Harbor", "8443970"},
		{"fishing new york harbor this weekend", "8518750"},
		{"Chesapeake Bay", "8575512"},
		{"Long Island Sound", "8516945"},
	}

	for _, tt := range tests {
		stationID, ok := Resolve(tt.input)
		require.True(t, ok, "expected %q to resolve", tt.input)
		assert.Equal(t, tt.stationID, stationID)
	}
}

func TestResolve_UnknownSpot(t *testing.T) {
	for _, input := range []string{"Miami", "Lake Ontario", ""} {
		_, ok := Resolve(input)
		assert.False(t, ok, "expected %q not to resolve", input)
	}
}

func TestNames(t *testing.T) {
	names := Names()
	require.Len(t, names, 5)
	assert.Equal(t, "Cape Cod", names[0])
	assert.Equal(t, "Long Island Sound", names[4])
}
