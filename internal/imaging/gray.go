package imaging

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"
	"strings"

	"github.com/anthonynsimon/bild/effect"
	"github.com/disintegration/imaging"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/ironsheep/image-fill-mcp/internal/fill"
)

// ErrUnknownGrayMode is returned by ParseGrayMode for unrecognized names.
var ErrUnknownGrayMode = errors.New("unknown gray mode")

// GrayMode selects how color pixels are reduced to a single [0,1] sample.
type GrayMode string

const (
	// GrayBT601 uses ITU-R BT.601 luma (0.299R + 0.587G + 0.114B).
	GrayBT601 GrayMode = "bt601"
	// GrayLuma uses bild's grayscale weighting.
	GrayLuma GrayMode = "luma"
	// GrayLab uses CIE L* lightness, which tracks perceived brightness.
	GrayLab GrayMode = "lab"
)

// DefaultGrayMode is used when no mode is given.
const DefaultGrayMode = GrayBT601

// ParseGrayMode parses a mode name case-insensitively. The empty string
// selects DefaultGrayMode.
func ParseGrayMode(s string) (GrayMode, error) {
	switch GrayMode(strings.ToLower(strings.TrimSpace(s))) {
	case "":
		return DefaultGrayMode, nil
	case GrayBT601:
		return GrayBT601, nil
	case GrayLuma:
		return GrayLuma, nil
	case GrayLab:
		return GrayLab, nil
	}
	return "", fmt.Errorf("%w: %q (want bt601, luma or lab)", ErrUnknownGrayMode, s)
}

// GridFromImage converts img to a fill.Grid of known samples in [0,1].
//
// The grid is indexed relative to img.Bounds().Min, so (0,0) is always the
// top-left pixel.
func GridFromImage(img image.Image, mode GrayMode) (*fill.Grid, error) {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	var samples []float64
	switch mode {
	case GrayBT601, "":
		samples = bt601Samples(img)
	case GrayLuma:
		samples = rgbaToSamples(effect.Grayscale(img))
	case GrayLab:
		samples = labSamples(img)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownGrayMode, mode)
	}

	grid, err := fill.NewGridFromSamples(width, height, samples)
	if err != nil {
		return nil, fmt.Errorf("failed to build grid: %w", err)
	}
	return grid, nil
}

// bt601Samples reads the gray level of imaging.Grayscale's output, which
// stores the luma in every color channel.
func bt601Samples(img image.Image) []float64 {
	gray := imaging.Grayscale(img)
	bounds := gray.Bounds()
	samples := make([]float64, 0, bounds.Dx()*bounds.Dy())
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			samples = append(samples, float64(gray.NRGBAAt(x, y).R)/255.0)
		}
	}
	return samples
}

// rgbaToSamples reads the gray level of bild's grayscale output, which
// repeats the luma in the red, green and blue channels.
func rgbaToSamples(gray *image.RGBA) []float64 {
	bounds := gray.Bounds()
	samples := make([]float64, 0, bounds.Dx()*bounds.Dy())
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			samples = append(samples, float64(gray.RGBAAt(x, y).R)/255.0)
		}
	}
	return samples
}

// labSamples maps each pixel to its CIE L* lightness. Fully transparent
// pixels, which go-colorful cannot convert, read as black.
func labSamples(img image.Image) []float64 {
	bounds := img.Bounds()
	samples := make([]float64, 0, bounds.Dx()*bounds.Dy())
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c, ok := colorful.MakeColor(img.At(x, y))
			if !ok {
				samples = append(samples, 0)
				continue
			}
			l, _, _ := c.Lab()
			samples = append(samples, clamp01(l))
		}
	}
	return samples
}

// MaskFromImage returns a row-major hole mask for mask: true where the
// pixel's BT.601 luminance is at or above threshold.
func MaskFromImage(mask image.Image, threshold float64) []bool {
	samples := bt601Samples(mask)
	holes := make([]bool, len(samples))
	for i, s := range samples {
		holes[i] = s >= threshold
	}
	return holes
}

// ImageFromGrid renders grid as an 8-bit grayscale image. Known samples are
// scaled by 255 and rounded; pixels that are still holes render black.
func ImageFromGrid(grid *fill.Grid) *image.Gray {
	width, height := grid.Width(), grid.Height()
	out := image.NewGray(image.Rect(0, 0, width, height))
	for offset, p := range grid.Pixels() {
		v, ok := p.Value()
		if !ok {
			continue
		}
		out.SetGray(offset%width, offset/width, color.Gray{Y: uint8(math.Round(clamp01(v) * 255))})
	}
	return out
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
