package diag

import "strings"

// Severity orders diagnostics; only SevError fails a run.
type Severity uint8

const (
	SevInfo Severity = iota
	SevWarning
	SevError
)

// String is the upper-case tag, as printed by %v.
func (s Severity) String() string {
	return strings.ToUpper(SeverityLabel(s))
}

// SeverityLabel is the lowercase spelling used by text and json output.
func SeverityLabel(sev Severity) string {
	switch sev {
	case SevError:
		return "error"
	case SevWarning:
		return "warning"
	case SevInfo:
		return "info"
	}
	return "unknown"
}
