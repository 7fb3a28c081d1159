package fill

import "math"

// Weigher assigns a non-negative weight to a (hole, boundary) coordinate
// pair. Implementations must be pure.
type Weigher interface {
	Weight(a, b Coordinate) float64
}

// WeightFunc adapts an ordinary function to the Weigher interface.
type WeightFunc func(a, b Coordinate) float64

// Weight calls f(a, b).
func (f WeightFunc) Weight(a, b Coordinate) float64 { return f(a, b) }

const (
	// DefaultExponent is the distance exponent used by DefaultWeigher.
	DefaultExponent = 2.0
	// DefaultEpsilon keeps InverseDistance finite for coincident points.
	DefaultEpsilon = 1e-9
)

// InverseDistance weighs pairs by 1 / (distance^Exponent + Epsilon).
type InverseDistance struct {
	Exponent float64
	Epsilon  float64
}

// DefaultWeigher returns InverseDistance with DefaultExponent and
// DefaultEpsilon.
func DefaultWeigher() InverseDistance {
	return InverseDistance{Exponent: DefaultExponent, Epsilon: DefaultEpsilon}
}

// Weight implements Weigher.
func (w InverseDistance) Weight(a, b Coordinate) float64 {
	return 1 / (math.Pow(Distance(a, b), w.Exponent) + w.Epsilon)
}

// Distance returns the Euclidean distance between a and b.
func Distance(a, b Coordinate) float64 {
	dx := float64(a.Column - b.Column)
	dy := float64(a.Row - b.Row)
	return math.Sqrt(dx*dx + dy*dy)
}
