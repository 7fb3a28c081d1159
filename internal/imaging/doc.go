// Package imaging adapts decoded images to the fill package and back.
//
// It is the only layer that knows about image formats and color: it loads and
// caches images, converts them to grayscale sample grids, carves the hole
// from a rectangle or a mask image, runs the fill, and encodes the result as
// an 8-bit grayscale PNG.
//
// # Coordinate System
//
// Pixel coordinates are 0-based and relative to the image's bounds:
//   - X: horizontal position (0 = leftmost pixel)
//   - Y: vertical position (0 = topmost pixel)
//
// A hole box (x1,y1)-(x2,y2) is strict: only pixels with x1 < x < x2 and
// y1 < y < y2 become holes. The box corners themselves stay known and feed
// the boundary.
//
// # Grayscale Conversion
//
// Three conversions are available, selected with GrayMode:
//   - bt601: ITU-R BT.601 luma via disintegration/imaging (default)
//   - luma: bild's effect.Grayscale weighting
//   - lab: CIE L* lightness via go-colorful
//
// All modes produce samples in [0,1].
//
// # Masks
//
// A mask image must have the same dimensions as the source. A mask pixel
// whose BT.601 luminance is at or above the threshold marks a hole, so a
// white-on-black mask paints the region to remove.
//
// # Thread Safety
//
// The ImageCache type is safe for concurrent use. All other functions are
// stateless.
//
// # Error Handling
//
// Functions return errors for:
//   - File I/O and decoding failures
//   - Unknown grayscale modes
//   - Masks whose size differs from the image
//   - Encoding errors during output
package imaging
