package types

// Label returns the user-facing name used in diagnostics.
func Label(t Type) string {
	return t.Kind.String()
}
