// Package otpauth turns exported account records into Key URI Format
// otpauth:// URLs, the form every authenticator app can import.
//
// Reference: https://github.com/google/google-authenticator/wiki/Key-Uri-Format
package otpauth

import (
	"encoding/base32"
	"errors"
	"net/url"
	"strconv"
	"strings"

	"github.com/martinrlilja/exodus/internal/migration"
	"github.com/martinrlilja/exodus/internal/percent"
)

// ErrUnknownType reports a record whose OTP type is missing. Such a record
// cannot be expressed as an otpauth URL and is dropped from the batch.
var ErrUnknownType = errors.New("unknown otp type")

// Authenticator apps want the secret without padding characters.
var secretEncoding = base32.StdEncoding.WithPadding(base32.NoPadding)

// Account is one fully converted OTP account.
type Account struct {
	Issuer string `json:"issuer"`
	Name   string `json:"name"`
	// Secret is the shared secret re-encoded as unpadded RFC 4648 base32.
	Secret string `json:"secret"`
	// Kind is "HOTP" or "TOTP".
	Kind string `json:"kind"`
	// Algorithm and Digits are empty when the export left them unspecified.
	Algorithm string `json:"algorithm,omitempty"`
	Digits    string `json:"digits,omitempty"`
	// URL is the canonical otpauth:// provisioning URL.
	URL string `json:"url"`
	// SVG is a data URI holding a QR code of URL, filled in by the caller.
	SVG string `json:"svg,omitempty"`
}

// FromParameters builds the canonical otpauth URL for one exported record.
// Query parameters keep their append order: secret, counter (HOTP only),
// issuer, algorithm, digits.
func FromParameters(params migration.Parameters) (Account, error) {
	secret := secretEncoding.EncodeToString(params.Secret)

	var query strings.Builder
	appendPair(&query, "secret", secret)

	var kind string
	switch params.Type {
	case migration.TypeHOTP:
		appendPair(&query, "counter", strconv.FormatUint(params.Counter, 10))
		kind = "hotp"
	case migration.TypeTOTP:
		kind = "totp"
	default:
		return Account{}, ErrUnknownType
	}

	var label string
	if params.Issuer != "" {
		appendPair(&query, "issuer", params.Issuer)
		label = percent.NonAlphanumeric(params.Issuer + ":" + params.Name)
	} else {
		label = percent.NonAlphanumeric(params.Name)
	}

	var algorithm string
	switch params.Algorithm {
	case migration.AlgorithmSHA1:
		algorithm = "SHA1"
	case migration.AlgorithmSHA256:
		algorithm = "SHA256"
	case migration.AlgorithmSHA512:
		algorithm = "SHA512"
	case migration.AlgorithmMD5:
		algorithm = "MD5"
	}
	if algorithm != "" {
		appendPair(&query, "algorithm", algorithm)
	}

	var digits string
	switch params.Digits {
	case migration.DigitCountSix:
		digits = "6"
	case migration.DigitCountEight:
		digits = "8"
	}
	if digits != "" {
		appendPair(&query, "digits", digits)
	}

	return Account{
		Issuer:    params.Issuer,
		Name:      params.Name,
		Secret:    secret,
		Kind:      strings.ToUpper(kind),
		Algorithm: algorithm,
		Digits:    digits,
		URL:       "otpauth://" + kind + "/" + label + "?" + query.String(),
	}, nil
}

func appendPair(query *strings.Builder, key, value string) {
	if query.Len() > 0 {
		query.WriteByte('&')
	}
	query.WriteString(key)
	query.WriteByte('=')
	query.WriteString(url.QueryEscape(value))
}
