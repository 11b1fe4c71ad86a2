package schema

import (
	"fmt"
	"strings"
)

// Diagnostic represents a non-fatal compile finding: a recoverable
// attribute-resolution fallback, an inheritance override warning, or a
// cascade conflict. Diagnostics are structured data, never error returns.
type Diagnostic struct {
	Code     string // stable identifier, e.g. "attr-cascade-fallback", "cascade-conflict"
	Severity Severity
	Message  string
	Model    string // owning model, empty for document-level findings
	Field    string // owning field, empty for model-level findings
	Pos      Position
}

// String renders the diagnostic in "severity code: message (model.field)" form.
func (d Diagnostic) String() string {
	var b strings.Builder
	b.WriteString(d.Severity.String())
	b.WriteString(" ")
	b.WriteString(d.Code)
	b.WriteString(": ")
	b.WriteString(d.Message)
	if d.Model != "" {
		b.WriteString(" (")
		b.WriteString(d.Model)
		if d.Field != "" {
			b.WriteString(".")
			b.WriteString(d.Field)
		}
		b.WriteString(")")
	}
	return b.String()
}

// ReferenceEdge is a resolved delete-propagation edge derived from a
// reference field on a non-abstract model. Edges are computed per
// validation run and are not persisted on the Document.
type ReferenceEdge struct {
	SourceModel string
	TargetModel string
	FieldName   string
	Cascade     string // CASCADE, NO ACTION, SET NULL, RESTRICT
}

// String renders the edge as "Source.Field -> Target [CASCADE]".
func (e ReferenceEdge) String() string {
	return fmt.Sprintf("%s.%s -> %s [%s]", e.SourceModel, e.FieldName, e.TargetModel, e.Cascade)
}

// CascadeConflict reports a target model reachable through more than one
// active CASCADE delete edge, which a relational engine cannot deploy.
type CascadeConflict struct {
	TargetModel string
	Edges       []ReferenceEdge // the conflicting edges, in discovery order
	Severity    Severity
	Suggestion  string // human-readable remediation
}

// Message renders the conflict as a single-line summary listing every
// conflicting (source, field) pair.
func (c CascadeConflict) Message() string {
	pairs := make([]string, len(c.Edges))
	for i, e := range c.Edges {
		pairs[i] = fmt.Sprintf("(%s, %s)", e.SourceModel, e.FieldName)
	}
	return fmt.Sprintf("multiple cascade delete paths converge on %s: %s",
		c.TargetModel, strings.Join(pairs, ", "))
}

// Diagnostic converts the conflict into a Diagnostic for uniform reporting.
func (c CascadeConflict) Diagnostic() Diagnostic {
	msg := c.Message()
	if c.Suggestion != "" {
		msg += "; " + c.Suggestion
	}
	return Diagnostic{
		Code:     "cascade-conflict",
		Severity: c.Severity,
		Message:  msg,
		Model:    c.TargetModel,
	}
}
