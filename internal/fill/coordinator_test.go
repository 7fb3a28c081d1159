package fill

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCoordinator_RoundTrip(t *testing.T) {
	c := NewCoordinator(7, 5)

	for offset := 0; offset < 7*5; offset++ {
		assert.Equal(t, offset, c.Offset(c.Coordinate(offset)))
	}
	for row := 0; row < 5; row++ {
		for col := 0; col < 7; col++ {
			coord := Coordinate{Column: col, Row: row}
			assert.Equal(t, coord, c.Coordinate(c.Offset(coord)))
		}
	}
}

func TestCoordinator_Coordinate(t *testing.T) {
	c := NewCoordinator(4, 3)

	assert.Equal(t, Coordinate{Column: 0, Row: 0}, c.Coordinate(0))
	assert.Equal(t, Coordinate{Column: 3, Row: 0}, c.Coordinate(3))
	assert.Equal(t, Coordinate{Column: 0, Row: 1}, c.Coordinate(4))
	assert.Equal(t, Coordinate{Column: 1, Row: 2}, c.Coordinate(9))
	assert.Equal(t, 9, c.Offset(Coordinate{Column: 1, Row: 2}))
}

func TestCoordinator_IsInsideBox(t *testing.T) {
	c := NewCoordinator(10, 10)
	box := NewBox(1, 1, 4, 4)

	tests := []struct {
		name  string
		coord Coordinate
		want  bool
	}{
		{"one unit inside top-left", Coordinate{2, 2}, true},
		{"one unit inside bottom-right", Coordinate{3, 3}, true},
		{"top-left corner", Coordinate{1, 1}, false},
		{"top-right corner", Coordinate{4, 1}, false},
		{"bottom-left corner", Coordinate{1, 4}, false},
		{"bottom-right corner", Coordinate{4, 4}, false},
		{"left edge", Coordinate{1, 2}, false},
		{"right edge", Coordinate{4, 2}, false},
		{"top edge", Coordinate{2, 1}, false},
		{"bottom edge", Coordinate{2, 4}, false},
		{"outside", Coordinate{6, 6}, false},
		{"negative", Coordinate{-1, 2}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.IsInsideBox(tt.coord, box))
			assert.Equal(t, tt.want, c.IsOffsetInsideBox(c.Offset(tt.coord), box),
				"offset form must agree for in-grid coordinates")
		})
	}
}

func TestCoordinator_IsInside(t *testing.T) {
	c := NewCoordinator(5, 4)

	tests := []struct {
		name  string
		coord Coordinate
		want  bool
	}{
		{"origin", Coordinate{0, 0}, false},
		{"far corner", Coordinate{4, 3}, false},
		{"first column", Coordinate{0, 2}, false},
		{"first row", Coordinate{2, 0}, false},
		{"last column", Coordinate{4, 1}, false},
		{"last row", Coordinate{1, 3}, false},
		{"interior near origin", Coordinate{1, 1}, true},
		{"interior near far corner", Coordinate{3, 2}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.IsInside(tt.coord))
		})
	}
}

func TestCoordinator_Bounds(t *testing.T) {
	c := NewCoordinator(5, 4)
	assert.Equal(t, NewBox(0, 0, 4, 3), c.Bounds())
	assert.Equal(t, 5, c.Width())
	assert.Equal(t, 4, c.Height())
}
