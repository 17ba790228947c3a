// Package export writes the regenerated account QR codes to raster files:
// one PNG per account, a single grid sheet, or an animated PNG that cycles
// through the accounts.
package export

import (
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/kettek/apng"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/martinrlilja/exodus/internal/otpauth"
)

// The size of each rendered QR tile in pixels.
const tileSize = 512

// Padding between QR tiles and around the grid border.
const gridPadding = 20

// renderAll rasterizes one QR image per account.
func renderAll(accounts []otpauth.Account) ([]image.Image, error) {
	images := make([]image.Image, 0, len(accounts))
	for _, a := range accounts {
		code, err := qrcode.New(a.URL, qrcode.Low)
		if err != nil {
			return nil, fmt.Errorf("render QR for %q: %w", a.Name, err)
		}
		images = append(images, code.Image(tileSize))
	}
	return images, nil
}

// PNGFiles writes one PNG per account into dir. File names are derived from
// the issuer and account name, prefixed with the account's position so two
// accounts with the same name cannot clobber each other.
func PNGFiles(accounts []otpauth.Account, dir string) error {
	for i, a := range accounts {
		name := fmt.Sprintf("%03d-%s.png", i+1, safeName(a.Issuer, a.Name))
		if err := qrcode.WriteFile(a.URL, qrcode.Low, tileSize, filepath.Join(dir, name)); err != nil {
			return fmt.Errorf("write %s: %w", name, err)
		}
	}
	return nil
}

// Grid composes all account QR codes into a single PNG sheet, as square as
// possible, with white padding between tiles.
func Grid(accounts []otpauth.Account, path string) error {
	images, err := renderAll(accounts)
	if err != nil {
		return err
	}
	if len(images) == 0 {
		return fmt.Errorf("no accounts to render")
	}

	numImages := len(images)
	cols := int(math.Ceil(math.Sqrt(float64(numImages))))
	rows := int(math.Ceil(float64(numImages) / float64(cols)))

	gridWidth := cols*tileSize + (cols+1)*gridPadding
	gridHeight := rows*tileSize + (rows+1)*gridPadding

	gridImage := image.NewRGBA(image.Rect(0, 0, gridWidth, gridHeight))
	draw.Draw(gridImage, gridImage.Bounds(), image.White, image.Point{}, draw.Src)

	for i, img := range images {
		row := i / cols
		col := i % cols
		x := gridPadding + col*(tileSize+gridPadding)
		y := gridPadding + row*(tileSize+gridPadding)
		rect := image.Rect(x, y, x+tileSize, y+tileSize)
		draw.Draw(gridImage, rect, img, image.Point{}, draw.Src)
	}

	outFile, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer outFile.Close()

	if err := png.Encode(outFile, gridImage); err != nil {
		return fmt.Errorf("encode grid PNG: %w", err)
	}
	return nil
}

// Animated writes an animated PNG showing each account QR code for delayMs
// milliseconds.
func Animated(accounts []otpauth.Account, path string, delayMs int) error {
	images, err := renderAll(accounts)
	if err != nil {
		return err
	}
	if len(images) == 0 {
		return fmt.Errorf("no accounts to render")
	}

	outFile, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer outFile.Close()

	a := apng.APNG{Frames: []apng.Frame{}}
	for _, img := range images {
		a.Frames = append(a.Frames, apng.Frame{
			Image:            img,
			DelayNumerator:   uint16(delayMs),
			DelayDenominator: 1000, // to convert milliseconds to seconds
		})
	}

	if err := apng.Encode(outFile, a); err != nil {
		return fmt.Errorf("encode animated PNG: %w", err)
	}
	return nil
}

// safeName collapses issuer and name into filesystem-safe characters.
func safeName(issuer, name string) string {
	s := name
	if issuer != "" {
		s = issuer + "-" + name
	}
	s = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		default:
			return '-'
		}
	}, s)
	s = strings.Trim(s, "-")
	if s == "" {
		s = "account"
	}
	return s
}
