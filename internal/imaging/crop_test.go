package imaging

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func solidImage(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), &image.Uniform{c}, image.Point{}, draw.Src)
	return img
}

func TestCropScalesDisplayRectToNaturalResolution(t *testing.T) {
	// 1000x1000 natural, displayed at 500x500, crop (100,100,200,200)
	// in display space must yield a 400x400 output.
	src := solidImage(1000, 1000, color.RGBA{R: 200, G: 30, B: 30, A: 255})

	data, err := Crop(src, 500, 500, Rect{X: 100, Y: 100, W: 200, H: 200})
	require.NoError(t, err)

	out, mime, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, "image/jpeg", mime)
	assert.Equal(t, 400, out.Bounds().Dx())
	assert.Equal(t, 400, out.Bounds().Dy())
}

func TestCropExtractsSelectedRegion(t *testing.T) {
	// White square on black background; the selection covers exactly the
	// white square, so the output should be (near-)white throughout.
	src := solidImage(1000, 1000, color.RGBA{A: 255})
	white := color.RGBA{R: 255, G: 255, B: 255, A: 255}
	draw.Draw(src, image.Rect(200, 200, 600, 600), &image.Uniform{white}, image.Point{}, draw.Src)

	data, err := Crop(src, 500, 500, Rect{X: 100, Y: 100, W: 200, H: 200})
	require.NoError(t, err)

	out, _, err := Decode(data)
	require.NoError(t, err)

	for _, pt := range []image.Point{{10, 10}, {200, 200}, {389, 389}} {
		r, g, b, _ := out.At(pt.X, pt.Y).RGBA()
		assert.Greater(t, r>>8, uint32(230), "pixel %v should be near-white", pt)
		assert.Greater(t, g>>8, uint32(230), "pixel %v should be near-white", pt)
		assert.Greater(t, b>>8, uint32(230), "pixel %v should be near-white", pt)
	}
}

func TestCropRejectsBadInput(t *testing.T) {
	src := solidImage(10, 10, color.RGBA{A: 255})

	_, err := Crop(nil, 10, 10, Rect{W: 5, H: 5})
	assert.Error(t, err)

	_, err = Crop(src, 0, 10, Rect{W: 5, H: 5})
	assert.Error(t, err)

	_, err = Crop(src, 10, 10, Rect{W: 0, H: 5})
	assert.Error(t, err, "zero-width selection must be rejected")

	_, err = Crop(src, 10, 10, Rect{X: 20, Y: 20, W: 5, H: 5})
	assert.Error(t, err, "selection fully outside the image must be rejected")
}

func TestRectEmpty(t *testing.T) {
	assert.True(t, Rect{}.Empty())
	assert.True(t, Rect{W: 10}.Empty())
	assert.False(t, Rect{W: 1, H: 1}.Empty())
}

func TestDataURLRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, solidImage(4, 4, color.RGBA{B: 255, A: 255})))

	url := EncodeDataURL("image/png", buf.Bytes())
	assert.True(t, bytes.HasPrefix([]byte(url), []byte("data:image/png;base64,")))

	mime, data, err := DecodeDataURL(url)
	require.NoError(t, err)
	assert.Equal(t, "image/png", mime)
	assert.Equal(t, buf.Bytes(), data)
}

func TestDecodeDataURLRejectsMalformedInput(t *testing.T) {
	for _, s := range []string{
		"",
		"not a data url",
		"data:image/png;base64",
		"data:image/png,plain",
		"data:image/png;base64,!!!",
	} {
		_, _, err := DecodeDataURL(s)
		assert.Error(t, err, "input %q", s)
	}
}

func TestExt(t *testing.T) {
	assert.Equal(t, ".png", Ext("image/png"))
	assert.Equal(t, ".gif", Ext("image/gif"))
	assert.Equal(t, ".jpg", Ext("image/jpeg"))
	assert.Equal(t, ".jpg", Ext("application/octet-stream"))
}
