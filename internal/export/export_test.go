package export

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/kettek/apng"

	"github.com/martinrlilja/exodus/internal/otpauth"
)

func testAccounts() []otpauth.Account {
	return []otpauth.Account{
		{Issuer: "Example", Name: "alice", URL: "otpauth://totp/Example%3Aalice?secret=32W353Y&issuer=Example"},
		{Name: "bob", URL: "otpauth://hotp/bob?secret=GAYTEMZUGU3DOOBZ&counter=1"},
	}
}

func TestGrid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "grid.png")
	if err := Grid(testAccounts(), path); err != nil {
		t.Fatalf("Grid() failed: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open grid: %v", err)
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("grid is not a PNG: %v", err)
	}
	// Two accounts land in a 2x1 grid with padding on all sides.
	wantW := 2*tileSize + 3*gridPadding
	wantH := tileSize + 2*gridPadding
	if img.Bounds().Dx() != wantW || img.Bounds().Dy() != wantH {
		t.Errorf("grid size = %v, want %dx%d", img.Bounds(), wantW, wantH)
	}
}

func TestGridEmpty(t *testing.T) {
	if err := Grid(nil, filepath.Join(t.TempDir(), "grid.png")); err == nil {
		t.Fatal("Grid() with no accounts must fail")
	}
}

func TestAnimated(t *testing.T) {
	path := filepath.Join(t.TempDir(), "accounts.png")
	if err := Animated(testAccounts(), path, 1500); err != nil {
		t.Fatalf("Animated() failed: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open apng: %v", err)
	}
	defer f.Close()

	a, err := apng.DecodeAll(f)
	if err != nil {
		t.Fatalf("not an APNG: %v", err)
	}
	if len(a.Frames) != 2 {
		t.Errorf("got %d frames, want 2", len(a.Frames))
	}
}

func TestPNGFiles(t *testing.T) {
	dir := t.TempDir()
	if err := PNGFiles(testAccounts(), dir); err != nil {
		t.Fatalf("PNGFiles() failed: %v", err)
	}

	for _, name := range []string{"001-Example-alice.png", "002-bob.png"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("missing %s: %v", name, err)
		}
	}
}

func TestSafeName(t *testing.T) {
	tests := []struct {
		issuer, name, want string
	}{
		{"Example", "alice", "Example-alice"},
		{"", "bob cat", "bob-cat"},
		{"", "../../etc/passwd", "etc-passwd"},
		{"", "", "account"},
	}
	for _, tt := range tests {
		if got := safeName(tt.issuer, tt.name); got != tt.want {
			t.Errorf("safeName(%q, %q) = %q, want %q", tt.issuer, tt.name, got, tt.want)
		}
	}
}
