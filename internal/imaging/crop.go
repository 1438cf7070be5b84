// Package imaging holds the pixel-level pieces of glimt: cropping a
// displayed region out of a full-resolution image, and the data-URL
// encoding used to keep history records self-contained.
package imaging

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"

	"golang.org/x/image/draw"
)

// jpegQuality is the fixed quality factor for re-encoded crops.
const jpegQuality = 90

// Rect is a crop selection in the coordinate space of the displayed
// (possibly scaled-down) image.
type Rect struct {
	X int
	Y int
	W int
	H int
}

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Crop extracts sel from src and re-encodes it as JPEG. sel is expressed
// relative to a displayed size of displayW x displayH; the output contains
// the selected region at the source's natural resolution, i.e. an output of
// floor(sel.W*naturalW/displayW) x floor(sel.H*naturalH/displayH) pixels.
func Crop(src image.Image, displayW, displayH int, sel Rect) ([]byte, error) {
	if src == nil {
		return nil, fmt.Errorf("no source image")
	}
	if displayW <= 0 || displayH <= 0 {
		return nil, fmt.Errorf("invalid display size %dx%d", displayW, displayH)
	}
	if sel.Empty() {
		return nil, fmt.Errorf("empty crop selection")
	}

	b := src.Bounds()
	naturalW, naturalH := b.Dx(), b.Dy()
	scaleX := float64(naturalW) / float64(displayW)
	scaleY := float64(naturalH) / float64(displayH)

	sx := b.Min.X + int(float64(sel.X)*scaleX)
	sy := b.Min.Y + int(float64(sel.Y)*scaleY)
	outW := int(float64(sel.W) * scaleX)
	outH := int(float64(sel.H) * scaleY)

	// Clamp the mapped region to the source bounds.
	if sx < b.Min.X {
		sx = b.Min.X
	}
	if sy < b.Min.Y {
		sy = b.Min.Y
	}
	if sx+outW > b.Max.X {
		outW = b.Max.X - sx
	}
	if sy+outH > b.Max.Y {
		outH = b.Max.Y - sy
	}
	if outW <= 0 || outH <= 0 {
		return nil, fmt.Errorf("crop selection outside image bounds")
	}

	dst := image.NewRGBA(image.Rect(0, 0, outW, outH))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, image.Rect(sx, sy, sx+outW, sy+outH), draw.Src, nil)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, fmt.Errorf("error encoding crop: %w", err)
	}
	return buf.Bytes(), nil
}

// Decode decodes raw image bytes and reports the MIME type of the source
// encoding. PNG, JPEG and GIF are supported.
func Decode(data []byte) (image.Image, string, error) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("error decoding image: %w", err)
	}
	return img, "image/" + format, nil
}
