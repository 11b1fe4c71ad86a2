package schema

import "fmt"

// SemanticError is a fatal validation-time failure: an inherited name
// that resolves to no declared model or interface, or a reference target
// that resolves to no declared model or enum. It carries the offending
// model/field identity so callers can act without re-parsing.
type SemanticError struct {
	Document string
	Model    string
	Field    string
	Message  string
	Line     int
}

func (e *SemanticError) Error() string {
	where := e.Model
	if e.Field != "" {
		where += "." + e.Field
	}
	if e.Document != "" {
		return fmt.Sprintf("%s: %s: %s", e.Document, where, e.Message)
	}
	return fmt.Sprintf("%s: %s", where, e.Message)
}
