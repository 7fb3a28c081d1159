package fill

import "fmt"

// Connectivity selects which neighbours count as adjacent.
type Connectivity int

const (
	// Four connects the axis-aligned neighbours.
	Four Connectivity = 4
	// Eight connects the axis-aligned and diagonal neighbours.
	Eight Connectivity = 8
)

// ParseConnectivity maps 4 and 8 to Four and Eight. Any other value falls
// back to Four.
func ParseConnectivity(n int) Connectivity {
	if Connectivity(n) == Eight {
		return Eight
	}
	return Four
}

// Neighbors returns the coordinates adjacent to coord in a fixed order: top,
// right, left, bottom, then for Eight top-left, top-right, bottom-right,
// bottom-left. Results are not bounds-checked.
func (c Connectivity) Neighbors(coord Coordinate) []Coordinate {
	col, row := coord.Column, coord.Row
	n := make([]Coordinate, 0, 8)
	n = append(n,
		Coordinate{Column: col, Row: row - 1},
		Coordinate{Column: col + 1, Row: row},
		Coordinate{Column: col - 1, Row: row},
		Coordinate{Column: col, Row: row + 1},
	)
	if c == Eight {
		n = append(n,
			Coordinate{Column: col - 1, Row: row - 1},
			Coordinate{Column: col + 1, Row: row - 1},
			Coordinate{Column: col + 1, Row: row + 1},
			Coordinate{Column: col - 1, Row: row + 1},
		)
	}
	return n
}

func (c Connectivity) String() string {
	return fmt.Sprintf("%d-connected", int(c))
}
