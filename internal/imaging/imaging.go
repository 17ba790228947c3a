// Package imaging turns uploaded image bytes into the grayscale matrix the
// QR scanner works on.
package imaging

import (
	"bytes"
	"fmt"
	"image"

	_ "image/jpeg"
	_ "image/png"
)

// binarization cutoff; samples above it become white, the rest black.
const threshold = 128

// Decode parses JPEG or PNG bytes and converts the result to 8-bit grayscale.
func Decode(data []byte) (*image.Gray, error) {
	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	b := src.Bounds()
	dst := image.NewGray(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			dst.Set(x, y, src.At(x, y))
		}
	}
	return dst, nil
}

// Threshold returns a binarized copy of img. Every sample ends up at either
// 0 or 255, which counteracts JPEG compression artefacts around QR modules.
func Threshold(img *image.Gray) *image.Gray {
	b := img.Bounds()
	dst := image.NewGray(b)
	copy(dst.Pix, img.Pix)
	for i, v := range dst.Pix {
		if v > threshold {
			dst.Pix[i] = 255
		} else {
			dst.Pix[i] = 0
		}
	}
	return dst
}
