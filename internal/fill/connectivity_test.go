package fill

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConnectivity_Neighbors(t *testing.T) {
	center := Coordinate{Column: 2, Row: 2}

	four := Four.Neighbors(center)
	assert.Equal(t, []Coordinate{
		{2, 1}, // top
		{3, 2}, // right
		{1, 2}, // left
		{2, 3}, // bottom
	}, four)

	eight := Eight.Neighbors(center)
	assert.Len(t, eight, 8)
	assert.Equal(t, four, eight[:4])
	assert.Equal(t, []Coordinate{{1, 1}, {3, 1}, {3, 3}, {1, 3}}, eight[4:])
}

func TestConnectivity_NeighborsNotBoundsChecked(t *testing.T) {
	n := Four.Neighbors(Coordinate{Column: 0, Row: 0})
	assert.Contains(t, n, Coordinate{Column: 0, Row: -1})
	assert.Contains(t, n, Coordinate{Column: -1, Row: 0})
}

func TestParseConnectivity(t *testing.T) {
	tests := []struct {
		in   int
		want Connectivity
	}{
		{4, Four},
		{8, Eight},
		{0, Four},
		{6, Four},
		{-8, Four},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseConnectivity(tt.in), "input %d", tt.in)
	}
	assert.Len(t, Connectivity(3).Neighbors(Coordinate{}), 4, "unknown values enumerate four neighbours")
}
