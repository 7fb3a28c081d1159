// Package fill implements boundary-weighted hole filling for grayscale pixel grids.
//
// A Grid holds width*height pixels, each either a known sample in [0,1] or a
// hole. A Filler derives the hole set and its boundary once, then Fill
// replaces every hole with a weighted average of the boundary pixels:
//
//	value(h) = Σ w(h,b)·v(b) / Σ w(h,b)   for b in boundary
//
// The package performs no I/O and knows nothing about RGB, alpha or file
// formats. Decoding and encoding images is the job of the imaging package.
//
// # Coordinate System
//
// Coordinates are 0-based (Column, Row) pairs with (0,0) at the top-left.
// Offsets index the flat row-major buffer: offset = row*width + column.
//
// # Containment
//
// IsInside and IsInsideBox are strict: a coordinate lying exactly on a box
// edge is not inside. The same predicate decides which holes are fillable
// (holes on the outer border of the image are never filled) and which pixels
// CarveBox turns into holes.
//
// # Boundary
//
// The boundary is the set of known pixels adjacent to at least one fillable
// hole under the chosen Connectivity (Four or Eight). It is kept sorted by
// offset so that the weighted sums are evaluated in a fixed order and Fill is
// deterministic regardless of the worker count.
//
// # Degenerate Fills
//
// When the weight denominator for a hole is exactly zero (an empty boundary,
// or a weight function that is zero everywhere) the pixel is left as a hole.
// This is not an error.
//
// # Thread Safety
//
// Grid and Filler are immutable after construction and safe for concurrent
// use. Weigher implementations must be safe for concurrent calls when
// WithWorkers is used with more than one worker.
package fill
