package fill

// Offset is an index into the flat row-major pixel buffer.
type Offset = int

// Coordinate is a 0-based (Column, Row) position. It is not validated on its
// own; validity depends on the grid it is used against.
type Coordinate struct {
	Column int `json:"column"`
	Row    int `json:"row"`
}

// Box is a rectangle given by its top-left and bottom-right corners.
// Containment tests against a Box are strict, see Coordinator.IsInsideBox.
type Box struct {
	TopLeft     Coordinate `json:"top_left"`
	BottomRight Coordinate `json:"bottom_right"`
}

// NewBox builds a Box from corner components.
func NewBox(x1, y1, x2, y2 int) Box {
	return Box{
		TopLeft:     Coordinate{Column: x1, Row: y1},
		BottomRight: Coordinate{Column: x2, Row: y2},
	}
}

// Coordinator converts between offsets and coordinates for a grid of fixed
// width and height, and tests whether positions sit strictly inside a box.
type Coordinator struct {
	width  int
	height int
}

// NewCoordinator returns a Coordinator for a width x height grid.
func NewCoordinator(width, height int) Coordinator {
	return Coordinator{width: width, height: height}
}

// Width returns the grid width.
func (c Coordinator) Width() int { return c.width }

// Height returns the grid height.
func (c Coordinator) Height() int { return c.height }

// Coordinate converts an offset to its (column, row) pair.
// Offsets outside [0, width*height) give meaningless but defined results.
func (c Coordinator) Coordinate(offset Offset) Coordinate {
	return Coordinate{Column: offset % c.width, Row: offset / c.width}
}

// Offset converts a coordinate to its flat buffer index.
func (c Coordinator) Offset(coord Coordinate) Offset {
	return coord.Row*c.width + coord.Column
}

// Bounds returns the box spanning the whole grid, corners included.
func (c Coordinator) Bounds() Box {
	return NewBox(0, 0, c.width-1, c.height-1)
}

// IsInsideBox reports whether coord is strictly inside box. Coordinates on
// any edge of the box, corners included, are not inside.
func (c Coordinator) IsInsideBox(coord Coordinate, box Box) bool {
	return coord.Column > box.TopLeft.Column &&
		coord.Column < box.BottomRight.Column &&
		coord.Row > box.TopLeft.Row &&
		coord.Row < box.BottomRight.Row
}

// IsInside reports whether coord is strictly inside the grid, i.e. not on
// the outermost row or column.
func (c Coordinator) IsInside(coord Coordinate) bool {
	return c.IsInsideBox(coord, c.Bounds())
}

// IsOffsetInsideBox is IsInsideBox for an offset.
func (c Coordinator) IsOffsetInsideBox(offset Offset, box Box) bool {
	return c.IsInsideBox(c.Coordinate(offset), box)
}

// IsOffsetInside is IsInside for an offset.
func (c Coordinator) IsOffsetInside(offset Offset) bool {
	return c.IsInside(c.Coordinate(offset))
}
