// Package str contains string case-conversion helpers.
package str

import "strings"

// ToScreamingSnakeCase transforms a given string into screaming snake case
// format, e.g. "someField" -> "SOME_FIELD".
func ToScreamingSnakeCase(in string) string {
	in = strings.TrimSpace(in)
	if in == "" {
		return in
	}

	var sb strings.Builder
	sb.Grow(len(in) + len(in)/3)

	for i := 0; i < len(in); i++ {
		c := in[i]
		switch {
		case c >= 'a' && c <= 'z':
			sb.WriteByte(c - ('a' - 'A'))
		case c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
			if i > 0 {
				sb.WriteByte('_')
			}
			sb.WriteByte(c)
		case c == '_' || c == '-':
			if i > 0 {
				sb.WriteByte('_')
			}
		default:
			sb.WriteByte(c)
		}
	}

	return sb.String()
}
