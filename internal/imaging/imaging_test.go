package imaging

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"
)

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func TestDecodePNG(t *testing.T) {
	src := image.NewGray(image.Rect(0, 0, 2, 1))
	src.SetGray(0, 0, color.Gray{Y: 100})
	src.SetGray(1, 0, color.Gray{Y: 200})

	gray, err := Decode(encodePNG(t, src))
	if err != nil {
		t.Fatalf("Decode() failed: %v", err)
	}
	if got := gray.GrayAt(0, 0).Y; got != 100 {
		t.Errorf("pixel (0,0) = %d, want 100", got)
	}
	if got := gray.GrayAt(1, 0).Y; got != 200 {
		t.Errorf("pixel (1,0) = %d, want 200", got)
	}
}

func TestDecodeJPEG(t *testing.T) {
	src := image.NewGray(image.Rect(0, 0, 16, 16))
	for i := range src.Pix {
		src.Pix[i] = 255
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, src, nil); err != nil {
		t.Fatalf("encode jpeg: %v", err)
	}

	gray, err := Decode(buf.Bytes())
	if err != nil {
		t.Fatalf("Decode() failed: %v", err)
	}
	if gray.Bounds().Dx() != 16 || gray.Bounds().Dy() != 16 {
		t.Errorf("bounds = %v, want 16x16", gray.Bounds())
	}
}

func TestDecodeRejectsGarbage(t *testing.T) {
	if _, err := Decode([]byte("definitely not an image")); err == nil {
		t.Fatal("Decode() accepted garbage bytes")
	}
}

func TestThreshold(t *testing.T) {
	src := image.NewGray(image.Rect(0, 0, 4, 1))
	src.Pix = []uint8{0, 128, 129, 255}

	dst := Threshold(src)
	want := []uint8{0, 0, 255, 255}
	for i, v := range dst.Pix {
		if v != want[i] {
			t.Errorf("pixel %d = %d, want %d", i, v, want[i])
		}
	}

	// The source must stay untouched; the plain pass may still need it.
	if src.Pix[1] != 128 {
		t.Errorf("Threshold mutated its input: %v", src.Pix)
	}
}
