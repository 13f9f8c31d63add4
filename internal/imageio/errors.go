package imageio

import "errors"

// Sentinel errors for image loading.
var (
	// ErrNotImage is returned when the content is not a recognised image type.
	ErrNotImage = errors.New("not an image")

	// ErrDecode is returned when the content looks like an image but cannot be decoded.
	ErrDecode = errors.New("decode failed")

	// ErrTooLarge is returned when the file or its pixel count exceeds the configured limits.
	ErrTooLarge = errors.New("image too large")

	// ErrStale is returned for a load that was superseded by a newer one.
	ErrStale = errors.New("superseded by a newer load")

	// ErrClosed is returned by Load after Close.
	ErrClosed = errors.New("loader closed")
)
