package fill

import "fmt"

// Grid is an immutable width x height buffer of pixels.
//
// Grids are never modified in place. CarveBox, CarveMask and Filler.Fill
// all return new grids.
type Grid struct {
	pixels []Pixel
	coord  Coordinator
}

// NewGrid builds a grid from a copy of pixels.
//
// Returns ErrShapeMismatch if width or height is not positive or
// len(pixels) != width*height, and ErrSampleOutOfRange for the first known
// pixel whose value is outside [0,1].
func NewGrid(width, height int, pixels []Pixel) (*Grid, error) {
	if err := checkShape(width, height, len(pixels)); err != nil {
		return nil, err
	}
	for i, p := range pixels {
		if !p.hole && !inRange(p.value) {
			return nil, fmt.Errorf("pixel %d: %w: %v", i, ErrSampleOutOfRange, p.value)
		}
	}
	buf := make([]Pixel, len(pixels))
	copy(buf, pixels)
	return newGrid(width, height, buf), nil
}

// NewGridFromSamples builds a grid from flat samples where each sample is in
// [0,1] or equals HoleSentinel.
//
// Returns ErrShapeMismatch for a bad shape and ErrSampleOutOfRange for the
// first invalid sample.
func NewGridFromSamples(width, height int, samples []float64) (*Grid, error) {
	if err := checkShape(width, height, len(samples)); err != nil {
		return nil, err
	}
	buf := make([]Pixel, len(samples))
	for i, s := range samples {
		p, err := PixelFromSample(s)
		if err != nil {
			return nil, fmt.Errorf("sample %d: %w", i, err)
		}
		buf[i] = p
	}
	return newGrid(width, height, buf), nil
}

// newGrid takes ownership of pixels without validation.
func newGrid(width, height int, pixels []Pixel) *Grid {
	return &Grid{pixels: pixels, coord: NewCoordinator(width, height)}
}

func checkShape(width, height, n int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrShapeMismatch, width, height)
	}
	if n != width*height {
		return fmt.Errorf("%w: %dx%d needs %d pixels, got %d",
			ErrShapeMismatch, width, height, width*height, n)
	}
	return nil
}

// Width returns the number of columns.
func (g *Grid) Width() int { return g.coord.Width() }

// Height returns the number of rows.
func (g *Grid) Height() int { return g.coord.Height() }

// Len returns width*height.
func (g *Grid) Len() int { return len(g.pixels) }

// Coordinator returns the coordinator for the grid's shape.
func (g *Grid) Coordinator() Coordinator { return g.coord }

// At returns the pixel at offset, or false if offset is outside [0, Len()).
func (g *Grid) At(offset Offset) (Pixel, bool) {
	if offset < 0 || offset >= len(g.pixels) {
		return Pixel{}, false
	}
	return g.pixels[offset], true
}

// AtCoordinate returns the pixel at coord, or false if coord lies outside
// the grid. A column past either edge is rejected rather than wrapping onto
// the neighbouring row.
func (g *Grid) AtCoordinate(coord Coordinate) (Pixel, bool) {
	if coord.Column < 0 || coord.Column >= g.Width() {
		return Pixel{}, false
	}
	return g.At(g.coord.Offset(coord))
}

// HoleOffsets returns, in ascending order, the offsets of hole pixels that
// are strictly inside the grid. Holes on the outer border are excluded and
// will never be filled.
func (g *Grid) HoleOffsets() []Offset {
	var holes []Offset
	for offset, p := range g.pixels {
		if !p.IsHole() {
			continue
		}
		if !g.coord.IsOffsetInside(offset) {
			continue
		}
		holes = append(holes, offset)
	}
	return holes
}

// HoleCount returns the number of hole pixels, border holes included.
func (g *Grid) HoleCount() int {
	n := 0
	for _, p := range g.pixels {
		if p.IsHole() {
			n++
		}
	}
	return n
}

// Pixels returns a copy of the pixel buffer.
func (g *Grid) Pixels() []Pixel {
	out := make([]Pixel, len(g.pixels))
	copy(out, g.pixels)
	return out
}

// Samples returns the pixel buffer as flat samples with holes encoded as
// HoleSentinel.
func (g *Grid) Samples() []float64 {
	out := make([]float64, len(g.pixels))
	for i, p := range g.pixels {
		out[i] = p.Sample()
	}
	return out
}

// CarveBox returns a new grid where every pixel strictly inside box is a
// hole. Pixels on the box edges keep their values.
func (g *Grid) CarveBox(box Box) *Grid {
	out := g.Pixels()
	for offset := range out {
		if g.coord.IsOffsetInsideBox(offset, box) {
			out[offset] = Hole()
		}
	}
	return newGrid(g.Width(), g.Height(), out)
}

// CarveMask returns a new grid where every pixel whose mask entry is true is
// a hole. The mask is row-major and must have exactly Len() entries.
func (g *Grid) CarveMask(mask []bool) (*Grid, error) {
	if len(mask) != len(g.pixels) {
		return nil, fmt.Errorf("%w: mask has %d entries, grid has %d",
			ErrShapeMismatch, len(mask), len(g.pixels))
	}
	out := g.Pixels()
	for offset, isHole := range mask {
		if isHole {
			out[offset] = Hole()
		}
	}
	return newGrid(g.Width(), g.Height(), out), nil
}
