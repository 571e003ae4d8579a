package report

import "strings"

// sanitizeFilename maps a probe target to a file name component. Anything but
// ASCII letters, digits and dashes becomes an underscore, so IPv6 literals and
// URLs are safe too.
func sanitizeFilename(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-':
			return r
		}
		return '_'
	}, s)
}
