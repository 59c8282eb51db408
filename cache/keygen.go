package cache

import "strings"

// Key builds a cache key by joining the semantic parts of a call with ":".
// Callers must never pass secrets or tokens.
//
//	Key("wx", "41.9", "12.5") == "wx:41.9:12.5"
func Key(parts ...string) string {
	return strings.Join(parts, ":")
}
