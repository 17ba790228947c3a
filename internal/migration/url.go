package migration

import (
	"encoding/base64"
	"net/url"
)

// Scheme is the custom URL scheme Google Authenticator uses for exports.
const Scheme = "otpauth-migration"

// FilterURL parses text as a URL and, if it is an export URL, returns the
// base64-decoded value of its data parameter. Anything that is not a fully
// valid export URL yields nothing; the scanner routinely hands over QR
// payloads that are ordinary links or plain text.
func FilterURL(text string) ([]byte, bool) {
	u, err := url.Parse(text)
	if err != nil || u.Scheme != Scheme {
		return nil, false
	}

	data := u.Query().Get("data")
	if data == "" {
		return nil, false
	}

	raw, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return nil, false
	}
	return raw, true
}

// FirstPayload runs the decoded symbol texts through FilterURL and
// DecodePayload and returns the first payload for which both succeed.
// Later qualifying symbols are ignored; one image feeds one export.
func FirstPayload(texts []string) (*Payload, bool) {
	for _, text := range texts {
		raw, ok := FilterURL(text)
		if !ok {
			continue
		}
		payload, err := DecodePayload(raw)
		if err != nil {
			continue
		}
		return payload, true
	}
	return nil, false
}
