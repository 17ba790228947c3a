// Package extract runs the full decode pipeline: image bytes in, converted
// OTP accounts out.
package extract

import (
	"errors"
	"fmt"
	"strings"

	"github.com/martinrlilja/exodus/internal/imaging"
	"github.com/martinrlilja/exodus/internal/migration"
	"github.com/martinrlilja/exodus/internal/otpauth"
	"github.com/martinrlilja/exodus/internal/qrscan"
	"github.com/martinrlilja/exodus/internal/qrsvg"
)

// ErrImageFormat reports bytes that are not a decodable JPEG or PNG. It is
// fatal for the file: no QR scan can happen without a pixel matrix.
var ErrImageFormat = errors.New("unsupported or corrupt image")

// NoSymbolMessage is shown when both decode passes come up empty. Not an
// error: there was simply nothing usable in the picture.
const NoSymbolMessage = "No valid Google Authenticator Export QR code found in the uploaded image."

// Result is the outcome of decoding one image.
type Result struct {
	// Found reports whether a migration payload was recovered at all.
	// When false, Accounts and RecordErrors are empty.
	Found bool
	// Accounts holds every successfully converted record, in payload order.
	Accounts []otpauth.Account
	// RecordErrors holds the conversion failures. One bad record never
	// stops its siblings.
	RecordErrors []error
}

// Extract decodes one image and converts every account in the first valid
// migration payload it finds. The scan runs twice: first on the plain
// grayscale image, then once more on a binarized copy, which rescues QR
// codes mangled by JPEG compression artefacts.
func Extract(data []byte) (*Result, error) {
	gray, err := imaging.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrImageFormat, err)
	}

	payload, ok := migration.FirstPayload(qrscan.DetectAndDecode(gray))
	if !ok {
		payload, ok = migration.FirstPayload(qrscan.DetectAndDecode(imaging.Threshold(gray)))
	}
	if !ok {
		return &Result{}, nil
	}

	res := &Result{Found: true}
	for _, params := range payload.Parameters {
		account, err := otpauth.FromParameters(params)
		if err != nil {
			res.RecordErrors = append(res.RecordErrors, err)
			continue
		}
		svg, err := qrsvg.DataURI(account.URL)
		if err != nil {
			res.RecordErrors = append(res.RecordErrors, err)
			continue
		}
		account.SVG = svg
		res.Accounts = append(res.Accounts, account)
	}
	return res, nil
}

// Message renders the user-facing status line for the result. Empty string
// means everything converted cleanly.
func (r *Result) Message() string {
	if !r.Found {
		return NoSymbolMessage
	}
	switch len(r.RecordErrors) {
	case 0:
		return ""
	case 1:
		return fmt.Sprintf("One account could not be read: %s", r.RecordErrors[0])
	default:
		msgs := make([]string, len(r.RecordErrors))
		for i, err := range r.RecordErrors {
			msgs[i] = err.Error()
		}
		return fmt.Sprintf("%d accounts could not be read: %s", len(msgs), strings.Join(msgs, ", "))
	}
}
