// Package sanitize provides functions for making text safe for plugin output.
package sanitize

import "strings"

// Line collapses s to a single line. Monitoring agents read only the first
// line of plugin output, so embedded CR/LF from daemon errors are replaced by
// spaces and surrounding whitespace is trimmed.
func Line(s string) string {
	s = strings.NewReplacer("\r\n", " ", "\r", " ", "\n", " ").Replace(s)
	return strings.TrimSpace(s)
}
