package render

import (
	"bytes"
	"image/png"
	"testing"

	errs "github.com/amirhossein-jamali/qr-rewards/internal/domain/error"
	"github.com/amirhossein-jamali/qr-rewards/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRenderer(base string) *QRRenderer {
	return NewQRRenderer(config.RenderConfig{
		ScanBaseURL: base,
		DefaultSize: 300,
		MinSize:     21,
		MaxSize:     2048,
	})
}

func TestQRRenderer_ScanURL(t *testing.T) {
	t.Run("Base with trailing slash", func(t *testing.T) {
		r := testRenderer("https://yourapp.com/scan/")
		assert.Equal(t, "https://yourapp.com/scan/AB12CD34EF", r.ScanURL("AB12CD34EF"))
	})

	t.Run("Base without trailing slash", func(t *testing.T) {
		r := testRenderer("https://yourapp.com/scan")
		assert.Equal(t, "https://yourapp.com/scan/AB12CD34EF", r.ScanURL("AB12CD34EF"))
	})
}

func TestQRRenderer_RenderPNG(t *testing.T) {
	r := testRenderer("https://yourapp.com/scan/")

	t.Run("Renders square PNG of requested size", func(t *testing.T) {
		data, err := r.RenderPNG("AB12CD34EF", 300)
		require.NoError(t, err)

		img, err := png.Decode(bytes.NewReader(data))
		require.NoError(t, err)
		assert.Equal(t, 300, img.Bounds().Dx())
		assert.Equal(t, 300, img.Bounds().Dy())
	})

	t.Run("Same input renders same bytes", func(t *testing.T) {
		first, err := r.RenderPNG("ZZZZZZZZZZ", 128)
		require.NoError(t, err)
		second, err := r.RenderPNG("ZZZZZZZZZZ", 128)
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})

	t.Run("Size out of bounds", func(t *testing.T) {
		_, err := r.RenderPNG("AB12CD34EF", 10)
		assert.ErrorIs(t, err, errs.ErrInvalidImageSize)

		_, err = r.RenderPNG("AB12CD34EF", 5000)
		assert.ErrorIs(t, err, errs.ErrInvalidImageSize)
	})
}

func TestQRRenderer_DefaultSize(t *testing.T) {
	r := testRenderer("https://yourapp.com/scan/")
	assert.Equal(t, 300, r.DefaultSize())
	assert.NoError(t, r.ValidateSize(r.DefaultSize()))
}
