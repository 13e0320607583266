package helpers

import (
	"strings"
)

// HasWildcard reports whether pattern uses glob syntax.
func HasWildcard(pattern string) bool {
	return strings.ContainsAny(pattern, "*?[]{}")
}
