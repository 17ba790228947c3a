// Package qrscan locates and decodes QR symbols in a grayscale image.
package qrscan

import (
	"image"

	"github.com/makiuchi-d/gozxing"
	"github.com/makiuchi-d/gozxing/multi/qrcode"
)

// DetectAndDecode returns the text payload of every QR symbol found in img,
// in detection order. Symbols that are located but fail to decode are
// skipped; a photographed page may contain noise or partially occluded
// codes, and those must not sink the whole scan.
func DetectAndDecode(img image.Image) []string {
	src := gozxing.NewLuminanceSourceFromImage(img)
	reader := qrcode.NewQRCodeMultiReader()

	// Hybrid first, then Global Histogram.
	if bmp, err := gozxing.NewBinaryBitmap(gozxing.NewHybridBinarizer(src)); err == nil {
		if results, err := reader.DecodeMultiple(bmp, nil); err == nil && len(results) > 0 {
			return texts(results)
		}
	}
	if bmp, err := gozxing.NewBinaryBitmap(gozxing.NewGlobalHistgramBinarizer(src)); err == nil {
		if results, err := reader.DecodeMultiple(bmp, nil); err == nil && len(results) > 0 {
			return texts(results)
		}
	}
	return nil
}

func texts(results []*gozxing.Result) []string {
	out := make([]string, 0, len(results))
	for _, r := range results {
		out = append(out, r.GetText())
	}
	return out
}
