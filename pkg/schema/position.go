package schema

import "fmt"

// Position identifies a location in a schema document.
type Position struct {
	Document string // document name, empty if unknown
	Line     int    // 1-based line number
	Column   int    // 1-based column number, 0 if unknown
}

// IsValid reports whether the position carries a real line number.
func (p Position) IsValid() bool {
	return p.Line > 0
}

// String renders the position as "doc:line" or "doc:line:col".
func (p Position) String() string {
	switch {
	case p.Document == "" && p.Column > 0:
		return fmt.Sprintf("%d:%d", p.Line, p.Column)
	case p.Document == "":
		return fmt.Sprintf("%d", p.Line)
	case p.Column > 0:
		return fmt.Sprintf("%s:%d:%d", p.Document, p.Line, p.Column)
	default:
		return fmt.Sprintf("%s:%d", p.Document, p.Line)
	}
}
