// Package percent implements the strict percent-encoding profile used by
// otpauth provisioning URIs and SVG data URIs.
package percent

import "strings"

const upperhex = "0123456789ABCDEF"

// NonAlphanumeric escapes every byte outside [A-Za-z0-9] as %XX. This is
// deliberately stricter than the usual URL component encoding; authenticator
// apps expect labels escaped this way.
func NonAlphanumeric(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' || '0' <= c && c <= '9' {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(upperhex[c>>4])
		b.WriteByte(upperhex[c&0x0f])
	}
	return b.String()
}
