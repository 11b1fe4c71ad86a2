package parser

import "strings"

// Line is one raw source line with its 1-based document line number.
// Blocks keep their bullet lines so the reconciler can re-derive
// indentation structure from source text.
type Line struct {
	Text   string
	Number int
}

// Node is a field candidate in the raw indentation tree. Whether a node
// is a genuine field or metadata of its parent is decided later by the
// reconciler; the parser only records structure.
type Node struct {
	Name     string
	Rest     string // text after the separator colon, or the remainder for colon-less lines
	HasColon bool
	Indent   int
	Line     int
	Children []*Node
}

// indentWidth returns the indentation of a line in columns, tabs
// counting as four.
func indentWidth(s string) int {
	w := 0
	for _, r := range s {
		switch r {
		case ' ':
			w++
		case '\t':
			w += 4
		default:
			return w
		}
	}
	return w
}

// isBullet reports whether the line is a "- ..." bullet after indentation.
func isBullet(s string) bool {
	t := strings.TrimLeft(s, " \t")
	return strings.HasPrefix(t, "- ") || t == "-"
}

// splitBullet splits a bullet line into name and rest. The separator is
// the first colon outside quotes, so quoted names or values containing
// ":" or "-" are never misparsed as structural tokens.
func splitBullet(text string) (name, rest string, hasColon bool) {
	t := strings.TrimSpace(strings.TrimPrefix(strings.TrimLeft(text, " \t"), "-"))

	var quote byte
	for i := 0; i < len(t); i++ {
		c := t[i]
		if quote != 0 {
			if c == quote {
				quote = 0
			}
			continue
		}
		switch c {
		case '"', '\'':
			quote = c
		case ':':
			return unquote(strings.TrimSpace(t[:i])), strings.TrimSpace(t[i+1:]), true
		}
	}

	// No separator: first token is the name, remainder is the value.
	if i := strings.IndexAny(t, " \t"); i >= 0 {
		return unquote(t[:i]), strings.TrimSpace(t[i:]), false
	}
	return unquote(t), "", false
}

// unquote removes one layer of matching surrounding quotes.
func unquote(s string) string {
	if len(s) >= 2 {
		first, last := s[0], s[len(s)-1]
		if first == last && (first == '"' || first == '\'') {
			return s[1 : len(s)-1]
		}
	}
	return s
}

// BuildFieldTree turns bullet lines into the raw field tree using an
// explicit (name, indent) stack: a deeper line is a child of the stack
// top, and the stack pops while the new line's indentation is at or
// below the top's. A colliding sibling name is a DuplicateFieldError.
func BuildFieldTree(docName, blockName string, lines []Line) ([]*Node, error) {
	var roots []*Node
	var stack []*Node

	for _, ln := range lines {
		if strings.TrimSpace(ln.Text) == "" || !isBullet(ln.Text) {
			continue
		}
		indent := indentWidth(ln.Text)
		name, rest, hasColon := splitBullet(ln.Text)
		if name == "" {
			continue
		}

		for len(stack) > 0 && stack[len(stack)-1].Indent >= indent {
			stack = stack[:len(stack)-1]
		}

		node := &Node{Name: name, Rest: rest, HasColon: hasColon, Indent: indent, Line: ln.Number}

		siblings := roots
		if len(stack) > 0 {
			siblings = stack[len(stack)-1].Children
		}
		for _, sib := range siblings {
			if sib.Name == name {
				return nil, &DuplicateFieldError{Document: docName, Block: blockName, Field: name, Line: ln.Number}
			}
		}

		if len(stack) == 0 {
			roots = append(roots, node)
		} else {
			parent := stack[len(stack)-1]
			parent.Children = append(parent.Children, node)
		}
		stack = append(stack, node)
	}

	return roots, nil
}

// Walk visits the tree in document order, parents before children.
func Walk(nodes []*Node, fn func(parent, node *Node)) {
	var walk func(parent *Node, ns []*Node)
	walk = func(parent *Node, ns []*Node) {
		for _, n := range ns {
			fn(parent, n)
			walk(n, n.Children)
		}
	}
	walk(nil, nodes)
}
