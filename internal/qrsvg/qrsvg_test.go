package qrsvg

import (
	"strings"
	"testing"
)

const testURL = "otpauth://totp/Example%3Aalice?secret=32W353Y&issuer=Example"

func TestMarkup(t *testing.T) {
	markup, err := Markup(testURL)
	if err != nil {
		t.Fatalf("Markup() failed: %v", err)
	}
	if !strings.HasPrefix(markup, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 `) {
		t.Errorf("unexpected markup prefix: %.80s", markup)
	}
	if !strings.HasSuffix(markup, `" fill="#000"/></svg>`) {
		t.Errorf("unexpected markup suffix: %s", markup[len(markup)-40:])
	}
	if !strings.Contains(markup, `<path d="M`) {
		t.Error("markup has no dark modules")
	}
}

func TestMarkupDeterministic(t *testing.T) {
	first, err := Markup(testURL)
	if err != nil {
		t.Fatalf("Markup() failed: %v", err)
	}
	second, err := Markup(testURL)
	if err != nil {
		t.Fatalf("Markup() failed: %v", err)
	}
	if first != second {
		t.Error("Markup() is not deterministic for identical input")
	}
}

func TestDataURI(t *testing.T) {
	uri, err := DataURI(testURL)
	if err != nil {
		t.Fatalf("DataURI() failed: %v", err)
	}
	if !strings.HasPrefix(uri, "data:image/svg+xml,%3Csvg%20xmlns") {
		t.Errorf("unexpected data URI prefix: %.60s", uri)
	}
	// The markup must be fully percent-encoded, nothing raw left over.
	body := strings.TrimPrefix(uri, "data:image/svg+xml,")
	if strings.ContainsAny(body, `<>" =/`) {
		t.Error("data URI body contains unescaped characters")
	}
}
