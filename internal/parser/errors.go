package parser

import "fmt"

// StructuralError is a fatal parse failure: unbalanced indentation, an
// unterminated attribute parenthesis, or a duplicate sibling field. It
// aborts compilation of the enclosing block with a line-numbered message.
type StructuralError struct {
	Document string
	Line     int
	Message  string
}

func (e *StructuralError) Error() string {
	if e.Document != "" {
		return fmt.Sprintf("%s:%d: %s", e.Document, e.Line, e.Message)
	}
	return fmt.Sprintf("%d: %s", e.Line, e.Message)
}

// DuplicateFieldError reports a field name colliding with a previously
// closed sibling at the same depth.
type DuplicateFieldError struct {
	Document string
	Block    string
	Field    string
	Line     int
}

func (e *DuplicateFieldError) Error() string {
	return fmt.Sprintf("%s:%d: duplicate field %q in %s", e.Document, e.Line, e.Field, e.Block)
}

// FrontmatterError reports an invalid YAML frontmatter block.
type FrontmatterError struct {
	Document string
	Message  string
}

func (e *FrontmatterError) Error() string {
	if e.Document != "" {
		return fmt.Sprintf("%s: frontmatter: %s", e.Document, e.Message)
	}
	return "frontmatter: " + e.Message
}
