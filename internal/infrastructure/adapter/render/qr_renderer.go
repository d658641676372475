package render

import (
	"fmt"
	"strings"

	errs "github.com/amirhossein-jamali/qr-rewards/internal/domain/error"
	renderport "github.com/amirhossein-jamali/qr-rewards/internal/domain/port/render"
	"github.com/amirhossein-jamali/qr-rewards/internal/infrastructure/config"
	qrcode "github.com/skip2/go-qrcode"
)

// QRRenderer renders code tokens as QR PNG images pointing at the scan URL
type QRRenderer struct {
	scanBaseURL string
	defaultSize int
	minSize     int
	maxSize     int
	level       qrcode.RecoveryLevel
}

var _ renderport.ImageRenderer = (*QRRenderer)(nil)

// NewQRRenderer creates a renderer from the render configuration
func NewQRRenderer(cfg config.RenderConfig) *QRRenderer {
	base := cfg.ScanBaseURL
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}
	return &QRRenderer{
		scanBaseURL: base,
		defaultSize: cfg.DefaultSize,
		minSize:     cfg.MinSize,
		maxSize:     cfg.MaxSize,
		level:       qrcode.Low,
	}
}

// ScanURL returns the URL encoded into the image for the token
func (r *QRRenderer) ScanURL(token string) string {
	return r.scanBaseURL + token
}

// RenderPNG encodes the scan URL of token as a size x size PNG
func (r *QRRenderer) RenderPNG(token string, size int) ([]byte, error) {
	if err := r.ValidateSize(size); err != nil {
		return nil, err
	}

	png, err := qrcode.Encode(r.ScanURL(token), r.level, size)
	if err != nil {
		return nil, fmt.Errorf("failed to encode QR image: %w", err)
	}
	return png, nil
}

// ValidateSize checks a requested pixel size against the configured bounds
func (r *QRRenderer) ValidateSize(size int) error {
	if size < r.minSize || size > r.maxSize {
		return fmt.Errorf("%w: %d is outside [%d, %d]", errs.ErrInvalidImageSize, size, r.minSize, r.maxSize)
	}
	return nil
}

// DefaultSize is the pixel size used when the caller does not pick one
func (r *QRRenderer) DefaultSize() int {
	return r.defaultSize
}
