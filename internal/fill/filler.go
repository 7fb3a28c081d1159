package fill

import (
	"sort"
	"sync"
)

// Filler fills the interior holes of a grid from its boundary pixels.
//
// The hole set and boundary set are computed once by NewFiller and never
// change. A Filler is safe for concurrent use.
type Filler struct {
	grid   *Grid
	weight Weigher
	conn   Connectivity

	holes    []Offset
	boundary []Offset

	// Boundary coordinates and values, aligned with boundary.
	boundaryCoords []Coordinate
	boundaryValues []float64

	workers int
}

// Option configures a Filler.
type Option func(*Filler)

// WithWorkers splits Fill across n goroutines. Values below 2 keep Fill
// sequential. The result is identical for every n.
func WithWorkers(n int) Option {
	return func(f *Filler) {
		f.workers = n
	}
}

// Stats summarizes the hole/boundary partition of a Filler.
type Stats struct {
	// Holes is the number of fillable holes (border holes excluded).
	Holes int `json:"hole_pixels"`
	// Boundary is the number of known pixels adjacent to a fillable hole.
	Boundary int `json:"boundary_pixels"`
	// BorderHoles is the number of holes on the outer border that are never filled.
	BorderHoles int `json:"border_hole_pixels"`
}

// NewFiller derives the hole and boundary sets of grid.
//
// Parameters:
//   - grid: the source grid. It is read, never modified.
//   - weight: weight strategy; nil selects DefaultWeigher.
//   - conn: Four or Eight. Any other value is treated as Four.
//
// Complexity: O(W×H) time for the hole scan plus O(|hole|·k) for the
// boundary, k being 4 or 8.
func NewFiller(grid *Grid, weight Weigher, conn Connectivity, opts ...Option) *Filler {
	if weight == nil {
		weight = DefaultWeigher()
	}
	f := &Filler{
		grid:   grid,
		weight: weight,
		conn:   ParseConnectivity(int(conn)),
	}
	for _, opt := range opts {
		opt(f)
	}
	f.holes = grid.HoleOffsets()
	f.setupBoundary()
	return f
}

// setupBoundary collects every known pixel adjacent to a hole member.
func (f *Filler) setupBoundary() {
	inHole := make(map[Offset]struct{}, len(f.holes))
	for _, h := range f.holes {
		inHole[h] = struct{}{}
	}

	coord := f.grid.Coordinator()
	seen := make(map[Offset]struct{})
	for _, h := range f.holes {
		for _, n := range f.conn.Neighbors(coord.Coordinate(h)) {
			p, ok := f.grid.AtCoordinate(n)
			if !ok || p.IsHole() {
				continue
			}
			offset := coord.Offset(n)
			if _, hole := inHole[offset]; hole {
				continue
			}
			seen[offset] = struct{}{}
		}
	}

	f.boundary = make([]Offset, 0, len(seen))
	for offset := range seen {
		f.boundary = append(f.boundary, offset)
	}
	sort.Ints(f.boundary)

	f.boundaryCoords = make([]Coordinate, len(f.boundary))
	f.boundaryValues = make([]float64, len(f.boundary))
	for i, offset := range f.boundary {
		p, _ := f.grid.At(offset)
		f.boundaryCoords[i] = coord.Coordinate(offset)
		f.boundaryValues[i], _ = p.Value()
	}
}

// Connectivity returns the connectivity in effect.
func (f *Filler) Connectivity() Connectivity { return f.conn }

// Holes returns a copy of the hole set in ascending order.
func (f *Filler) Holes() []Offset {
	out := make([]Offset, len(f.holes))
	copy(out, f.holes)
	return out
}

// Boundary returns a copy of the boundary set in ascending order.
func (f *Filler) Boundary() []Offset {
	out := make([]Offset, len(f.boundary))
	copy(out, f.boundary)
	return out
}

// Stats returns the sizes of the hole and boundary sets.
func (f *Filler) Stats() Stats {
	return Stats{
		Holes:       len(f.holes),
		Boundary:    len(f.boundary),
		BorderHoles: f.grid.HoleCount() - len(f.holes),
	}
}

// Fill returns a new grid in which every hole member holds the weighted
// average of the boundary. All other pixels, border holes included, are
// copied unchanged. A hole whose total weight is zero stays a hole.
//
// Cost is O(|hole|·|boundary|).
func (f *Filler) Fill() *Grid {
	out := f.grid.Pixels()

	workers := f.workers
	if workers > len(f.holes) {
		workers = len(f.holes)
	}
	if workers < 2 {
		f.fillRange(out, f.holes)
		return newGrid(f.grid.Width(), f.grid.Height(), out)
	}

	// Each worker owns a contiguous chunk of holes and writes only to
	// those offsets of out.
	chunk := (len(f.holes) + workers - 1) / workers
	var wg sync.WaitGroup
	for start := 0; start < len(f.holes); start += chunk {
		end := start + chunk
		if end > len(f.holes) {
			end = len(f.holes)
		}
		wg.Add(1)
		go func(holes []Offset) {
			defer wg.Done()
			f.fillRange(out, holes)
		}(f.holes[start:end])
	}
	wg.Wait()

	return newGrid(f.grid.Width(), f.grid.Height(), out)
}

func (f *Filler) fillRange(out []Pixel, holes []Offset) {
	coord := f.grid.Coordinator()
	for _, h := range holes {
		if v, ok := f.estimate(coord.Coordinate(h)); ok {
			out[h] = Known(v)
		}
	}
}

// estimate computes the weighted average for the hole at c. It returns false
// when the weights sum to zero.
func (f *Filler) estimate(c Coordinate) (float64, bool) {
	var num, den float64
	for i, b := range f.boundaryCoords {
		w := f.weight.Weight(c, b)
		num += w * f.boundaryValues[i]
		den += w
	}
	if den == 0 {
		return 0, false
	}
	return num / den, true
}
