package stamp

import "strings"

// SafeFilename maps a raw record value to a name safe to use as an output
// file name on common filesystems. Path separators, control characters and
// Windows-reserved punctuation become underscores, runs of whitespace
// collapse to a single space, and leading/trailing dots and spaces are
// trimmed. An unusable value yields the empty string; the caller decides
// the fallback.
func SafeFilename(raw string) string {
	var b strings.Builder
	space := false
	for _, r := range raw {
		switch {
		case r == ' ' || r == '\t' || r == '\n' || r == '\r':
			space = true
			continue
		case r < 0x20 || r == 0x7f:
			r = '_'
		case strings.ContainsRune(`/\<>:"|?*`, r):
			r = '_'
		}
		if space && b.Len() > 0 {
			b.WriteByte(' ')
		}
		space = false
		b.WriteRune(r)
	}
	return strings.Trim(b.String(), ". ")
}
