package fill

import "fmt"

// HoleSentinel is the sample value that marks a hole in flat sample slices.
const HoleSentinel = -1.0

// Pixel is either a known grayscale value in [0,1] or a hole.
// The zero Pixel is a known black pixel.
type Pixel struct {
	value float64
	hole  bool
}

// Known returns a known pixel with value v.
func Known(v float64) Pixel { return Pixel{value: v} }

// Hole returns a hole pixel.
func Hole() Pixel { return Pixel{hole: true} }

// PixelFromSample decodes a flat sample: HoleSentinel becomes a hole, values
// in [0,1] become known pixels, anything else (NaN included) is rejected.
func PixelFromSample(s float64) (Pixel, error) {
	if s == HoleSentinel {
		return Hole(), nil
	}
	if !inRange(s) {
		return Pixel{}, fmt.Errorf("%w: %v", ErrSampleOutOfRange, s)
	}
	return Known(s), nil
}

// inRange reports whether v is in [0,1]. NaN is not.
func inRange(v float64) bool { return v >= 0 && v <= 1 }

// IsHole reports whether p is a hole.
func (p Pixel) IsHole() bool { return p.hole }

// Value returns the known value and true, or 0 and false for a hole.
func (p Pixel) Value() (float64, bool) {
	if p.hole {
		return 0, false
	}
	return p.value, true
}

// Sample encodes p back to a flat sample, HoleSentinel for holes.
func (p Pixel) Sample() float64 {
	if p.hole {
		return HoleSentinel
	}
	return p.value
}

func (p Pixel) String() string {
	if p.hole {
		return "hole"
	}
	return fmt.Sprintf("%g", p.value)
}
