package schema

import "strings"

// Severity indicates the importance of a compile diagnostic.
type Severity int

// Severity levels for diagnostics.
const (
	// SeverityError indicates a failure that aborts compilation of the
	// enclosing document.
	SeverityError Severity = iota
	// SeverityWarning indicates an issue the caller should review; the
	// compiled model is still usable.
	SeverityWarning
	// SeverityInfo indicates informational feedback.
	SeverityInfo
)

// String returns the string representation of the severity.
func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	case SeverityInfo:
		return "info"
	default:
		return "unknown"
	}
}

// ParseSeverity converts a string to a Severity value.
// Returns the severity and true if valid, or SeverityWarning and false
// if the input is not a known level.
func ParseSeverity(s string) (Severity, bool) {
	switch strings.ToLower(s) {
	case "error":
		return SeverityError, true
	case "warning":
		return SeverityWarning, true
	case "info":
		return SeverityInfo, true
	default:
		return SeverityWarning, false
	}
}
