package config

import "strings"

// SplitArgs splits a user-supplied override value on whitespace. Quoting
// and escaping are not supported; an argument containing a space cannot
// be expressed. This limitation is documented, observable behavior and
// must not be "fixed" silently.
func SplitArgs(s string) []string {
	return strings.Fields(s)
}
