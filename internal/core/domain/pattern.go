package domain

import "strings"

// RegexpBody returns the expression of a pattern written /expr/.
func RegexpBody(pattern string) (string, bool) {
	if len(pattern) > 2 && strings.HasPrefix(pattern, "/") && strings.HasSuffix(pattern, "/") {
		return pattern[1 : len(pattern)-1], true
	}
	return "", false
}
