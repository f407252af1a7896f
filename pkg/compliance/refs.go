package compliance

import "strings"

// referenced reports whether text refers to id through url(#id) or
// href="#id", the only reference forms producers emit.
func referenced(text, id string) bool {
	return strings.Contains(text, "url(#"+id+")") ||
		strings.Contains(text, `href="#`+id+`"`)
}
