package imaging

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/png"

	"github.com/disintegration/imaging"

	"github.com/ironsheep/image-fill-mcp/internal/fill"
)

var (
	// ErrNoHoleRegion is returned when a request has neither a box nor a mask.
	ErrNoHoleRegion = errors.New("either a hole box or a mask is required")
	// ErrMaskSize is returned when the mask dimensions differ from the image.
	ErrMaskSize = errors.New("mask size does not match image size")
)

// DefaultMaskThreshold is the luminance at or above which a mask pixel marks a hole.
const DefaultMaskThreshold = 0.5

// FillRequest describes how to carve and fill one image.
type FillRequest struct {
	// Box, when set, carves every pixel strictly inside it.
	Box *fill.Box

	// Mask, when set, carves every pixel whose luminance is at or above
	// MaskThreshold. Box and Mask may be combined.
	Mask image.Image

	// MaskThreshold defaults to DefaultMaskThreshold when not positive.
	MaskThreshold float64

	// Weigher defaults to fill.DefaultWeigher when nil.
	Weigher fill.Weigher

	// Connectivity is 4 or 8; anything else means 4.
	Connectivity fill.Connectivity

	// GrayMode defaults to DefaultGrayMode when empty.
	GrayMode GrayMode

	// Workers parallelizes the fill; values below 2 run sequentially.
	Workers int

	// OutputPath, when set, receives the filled image. The format follows
	// the file extension.
	OutputPath string

	// Scale resizes the base64 preview. 0 and 1 leave it unscaled.
	Scale float64

	// OmitPreview skips the base64 PNG in the result.
	OmitPreview bool
}

// HoleAnalysis describes the hole/boundary partition of a carved image.
type HoleAnalysis struct {
	Width        int `json:"width"`
	Height       int `json:"height"`
	Connectivity int `json:"connectivity"`
	fill.Stats
}

// FillResult contains the filled image and statistics about the fill.
type FillResult struct {
	HoleAnalysis

	// UnfilledPixels counts holes left after filling: border holes plus any
	// hole whose weights summed to zero.
	UnfilledPixels int `json:"unfilled_pixels"`

	// ImageBase64 is the filled grayscale image encoded as base64 PNG.
	ImageBase64 string `json:"image_base64,omitempty"`

	// MimeType is "image/png" when ImageBase64 is set.
	MimeType string `json:"mime_type,omitempty"`

	// OutputPath echoes FillRequest.OutputPath when the image was saved.
	OutputPath string `json:"output_path,omitempty"`
}

// carve converts img to a grid and applies the request's box and mask.
func carve(img image.Image, req *FillRequest) (*fill.Grid, error) {
	if req.Box == nil && req.Mask == nil {
		return nil, ErrNoHoleRegion
	}

	grid, err := GridFromImage(img, req.GrayMode)
	if err != nil {
		return nil, err
	}

	if req.Box != nil {
		grid = grid.CarveBox(*req.Box)
	}

	if req.Mask != nil {
		mb, ib := req.Mask.Bounds(), img.Bounds()
		if mb.Dx() != ib.Dx() || mb.Dy() != ib.Dy() {
			return nil, fmt.Errorf("%w: mask %dx%d, image %dx%d",
				ErrMaskSize, mb.Dx(), mb.Dy(), ib.Dx(), ib.Dy())
		}
		threshold := req.MaskThreshold
		if threshold <= 0 {
			threshold = DefaultMaskThreshold
		}
		grid, err = grid.CarveMask(MaskFromImage(req.Mask, threshold))
		if err != nil {
			return nil, fmt.Errorf("failed to apply mask: %w", err)
		}
	}

	return grid, nil
}

func newFiller(grid *fill.Grid, req *FillRequest) *fill.Filler {
	return fill.NewFiller(grid, req.Weigher, req.Connectivity, fill.WithWorkers(req.Workers))
}

// AnalyzeHole carves img as FillImage would and reports the hole and
// boundary sizes without filling.
func AnalyzeHole(img image.Image, req FillRequest) (*HoleAnalysis, error) {
	grid, err := carve(img, &req)
	if err != nil {
		return nil, err
	}
	f := newFiller(grid, &req)
	return &HoleAnalysis{
		Width:        grid.Width(),
		Height:       grid.Height(),
		Connectivity: int(f.Connectivity()),
		Stats:        f.Stats(),
	}, nil
}

// FillImage converts img to grayscale, carves the requested hole and fills
// it from the hole's boundary.
//
// Returns:
//   - *FillResult: statistics plus the filled image as base64 PNG, unless
//     OmitPreview is set.
//   - error: Non-nil if no hole region is given, the gray mode is unknown,
//     the mask size is wrong, or encoding/saving fails.
func FillImage(img image.Image, req FillRequest) (*FillResult, error) {
	grid, err := carve(img, &req)
	if err != nil {
		return nil, err
	}

	f := newFiller(grid, &req)
	filled := f.Fill()
	out := ImageFromGrid(filled)

	result := &FillResult{
		HoleAnalysis: HoleAnalysis{
			Width:        filled.Width(),
			Height:       filled.Height(),
			Connectivity: int(f.Connectivity()),
			Stats:        f.Stats(),
		},
		UnfilledPixels: filled.HoleCount(),
	}

	if req.OutputPath != "" {
		if err := imaging.Save(out, req.OutputPath); err != nil {
			return nil, fmt.Errorf("failed to save filled image: %w", err)
		}
		result.OutputPath = req.OutputPath
	}

	if !req.OmitPreview {
		encoded, err := encodePreview(out, req.Scale)
		if err != nil {
			return nil, err
		}
		result.ImageBase64 = encoded
		result.MimeType = "image/png"
	}

	return result, nil
}

// encodePreview PNG-encodes img, resized by scale when scale is positive and
// not 1, and returns it base64 encoded.
func encodePreview(img image.Image, scale float64) (string, error) {
	if scale != 1.0 && scale > 0 {
		b := img.Bounds()
		newWidth := int(float64(b.Dx()) * scale)
		newHeight := int(float64(b.Dy()) * scale)
		if newWidth < 1 {
			newWidth = 1
		}
		if newHeight < 1 {
			newHeight = 1
		}
		img = imaging.Resize(img, newWidth, newHeight, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", fmt.Errorf("failed to encode filled image: %w", err)
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
