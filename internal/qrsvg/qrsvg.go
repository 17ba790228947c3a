// Package qrsvg renders a string as a QR code in SVG markup, wrapped as a
// data URI suitable for an <img> src attribute.
package qrsvg

import (
	"fmt"
	"strings"

	"github.com/makiuchi-d/gozxing"
	qrcodewriter "github.com/makiuchi-d/gozxing/qrcode"
	"github.com/makiuchi-d/gozxing/qrcode/decoder"

	"github.com/martinrlilja/exodus/internal/percent"
)

// Quiet zone around the symbol, in modules.
const margin = 4

// Markup encodes content as a QR symbol at error correction level L and
// renders it as SVG, one unit per module, square modules. The output is
// deterministic: the same content always yields identical markup.
func Markup(content string) (string, error) {
	// Level L keeps the symbol small; the generated image is displayed on
	// screen and scanned up close, so damage tolerance buys nothing.
	hints := make(map[gozxing.EncodeHintType]interface{})
	hints[gozxing.EncodeHintType_ERROR_CORRECTION] = decoder.ErrorCorrectionLevel_L
	hints[gozxing.EncodeHintType_MARGIN] = margin

	writer := qrcodewriter.NewQRCodeWriter()
	bm, err := writer.Encode(content, gozxing.BarcodeFormat_QR_CODE, 1, 1, hints)
	if err != nil {
		return "", fmt.Errorf("qr render: %w", err)
	}

	w := bm.GetWidth()
	h := bm.GetHeight()

	var sb strings.Builder
	fmt.Fprintf(&sb, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %d %d">`, w, h)
	fmt.Fprintf(&sb, `<rect width="%d" height="%d" fill="#fff"/>`, w, h)
	sb.WriteString(`<path d="`)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if bm.Get(x, y) {
				fmt.Fprintf(&sb, "M%d,%dh1v1h-1z", x, y)
			}
		}
	}
	sb.WriteString(`" fill="#000"/></svg>`)
	return sb.String(), nil
}

// DataURI wraps Markup output as a percent-encoded image/svg+xml data URI.
func DataURI(content string) (string, error) {
	markup, err := Markup(content)
	if err != nil {
		return "", err
	}
	return "data:image/svg+xml," + percent.NonAlphanumeric(markup), nil
}
