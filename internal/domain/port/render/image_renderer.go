package render

// ImageRenderer turns a code token into a scannable raster image.
// It is a pure function of its inputs.
type ImageRenderer interface {
	// ScanURL returns the URL encoded into the image for the token
	ScanURL(token string) string

	// RenderPNG encodes ScanURL(token) as a square PNG of the given pixel size
	//
	// Possible errors:
	// - ErrInvalidImageSize: If size is outside the configured bounds
	RenderPNG(token string, size int) ([]byte, error)

	// ValidateSize checks a requested pixel size against the configured bounds
	ValidateSize(size int) error

	// DefaultSize is the pixel size used when the caller does not pick one
	DefaultSize() int
}
