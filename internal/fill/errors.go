package fill

import "errors"

var (
	// ErrShapeMismatch is returned when width or height is not positive or
	// the pixel buffer length differs from width*height.
	ErrShapeMismatch = errors.New("pixel buffer does not match grid shape")
	// ErrSampleOutOfRange is returned when a sample is neither in [0,1] nor
	// the hole sentinel.
	ErrSampleOutOfRange = errors.New("sample outside [0,1] and not the hole sentinel")
)
