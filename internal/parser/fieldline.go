package parser

import (
	"strings"
)

// fieldSpec is the tokenized remainder of a field line after the name.
type fieldSpec struct {
	Type        string
	Nullable    bool
	Length      string
	Default     string
	Attrs       []string
	Framework   []string
	Description string
}

// parseFieldRest tokenizes everything after "name:" on a field line:
// a type token (with optional length and trailing "?"), @-attributes
// with balanced argument parentheses and cascade-suffix symbols,
// bracketed framework tags, a quoted description, and an optional
// "= default" expression.
func parseFieldRest(docName string, lineNo int, rest string) (*fieldSpec, error) {
	spec := &fieldSpec{}
	s := rest
	i := 0

	skipSpace := func() {
		for i < len(s) && (s[i] == ' ' || s[i] == '\t') {
			i++
		}
	}

	for {
		skipSpace()
		if i >= len(s) {
			break
		}
		switch c := s[i]; {
		case c == '@':
			attr, n, err := scanAttribute(s[i:])
			if err != nil {
				return nil, &StructuralError{Document: docName, Line: lineNo, Message: err.Error()}
			}
			i += n
			if name, arg, ok := splitDefaultAttr(attr); ok && name == "default" {
				spec.Default = arg
			}
			spec.Attrs = append(spec.Attrs, attr)

		case c == '[':
			tag, n, err := scanBracketed(s[i:])
			if err != nil {
				return nil, &StructuralError{Document: docName, Line: lineNo, Message: err.Error()}
			}
			i += n
			spec.Framework = append(spec.Framework, tag)

		case c == '"' || c == '\'':
			text, n := scanQuoted(s[i:])
			i += n
			if spec.Description != "" {
				spec.Description += " "
			}
			spec.Description += text

		case c == '=':
			// "= expr" default: runs to the next attribute, tag, or quote.
			i++
			start := i
			for i < len(s) && s[i] != '@' && s[i] != '[' && s[i] != '"' && s[i] != '\'' {
				i++
			}
			spec.Default = strings.TrimSpace(s[start:i])

		default:
			word := scanWord(s[i:])
			i += len(word)
			if spec.Type == "" {
				applyType(spec, word)
			} else {
				// Stray unquoted text reads as description.
				if spec.Description != "" {
					spec.Description += " "
				}
				spec.Description += word
			}
		}
	}

	return spec, nil
}

// applyType interprets the raw type token: a trailing "?" marks the
// field nullable, and a parenthesized length/precision is split off for
// primitive tokens ("string(100)", "decimal(18,2)").
func applyType(spec *fieldSpec, token string) {
	if strings.HasSuffix(token, "?") {
		spec.Nullable = true
		token = strings.TrimSuffix(token, "?")
	}
	if open := strings.IndexByte(token, '('); open > 0 && strings.HasSuffix(token, ")") {
		spec.Length = token[open+1 : len(token)-1]
		token = token[:open]
	}
	spec.Type = token
}

// scanWord consumes a bare token. Angle brackets group so generic tokens
// like "map<string, int>" survive internal spaces.
func scanWord(s string) string {
	depth := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '<':
			depth++
		case '>':
			depth--
		case ' ', '\t':
			if depth == 0 {
				return s[:i]
			}
		}
	}
	return s
}

// scanAttribute consumes "@name", "@name(args)" with balanced
// parentheses (quotes shield inner parens), and any trailing cascade
// suffix symbols. An opened-but-never-closed argument list is an error.
func scanAttribute(s string) (string, int, error) {
	i := 1 // past '@'
	for i < len(s) && (isIdentChar(s[i])) {
		i++
	}
	if i < len(s) && s[i] == '(' {
		depth := 0
		var quote byte
		closed := false
		for ; i < len(s); i++ {
			c := s[i]
			if quote != 0 {
				if c == quote {
					quote = 0
				}
				continue
			}
			switch c {
			case '"', '\'':
				quote = c
			case '(':
				depth++
			case ')':
				depth--
				if depth == 0 {
					i++
					closed = true
				}
			}
			if closed {
				break
			}
		}
		if !closed {
			return "", 0, &unterminatedErr{s}
		}
	}
	// Trailing cascade suffix symbols: "!", "!!", "?".
	for i < len(s) && (s[i] == '!' || s[i] == '?') {
		i++
	}
	return s[:i], i, nil
}

type unterminatedErr struct{ attr string }

func (e *unterminatedErr) Error() string {
	return "unterminated attribute parenthesis in " + strings.Fields(e.attr)[0]
}

// scanBracketed consumes a "[...]" framework tag verbatim.
func scanBracketed(s string) (string, int, error) {
	depth := 0
	var quote byte
	for i := 0; i < len(s); i++ {
		c := s[i]
		if quote != 0 {
			if c == quote {
				quote = 0
			}
			continue
		}
		switch c {
		case '"', '\'':
			quote = c
		case '[':
			depth++
		case ']':
			depth--
			if depth == 0 {
				return s[:i+1], i + 1, nil
			}
		}
	}
	return "", 0, &unterminatedErr{s}
}

// scanQuoted consumes a quoted string and returns its unquoted content.
func scanQuoted(s string) (string, int) {
	quote := s[0]
	for i := 1; i < len(s); i++ {
		if s[i] == quote {
			return s[1:i], i + 1
		}
	}
	return s[1:], len(s)
}

// splitDefaultAttr splits "@name(arg)" into its lowercased name and arg.
func splitDefaultAttr(attr string) (name, arg string, ok bool) {
	open := strings.IndexByte(attr, '(')
	if open < 0 || !strings.HasSuffix(attr, ")") {
		return "", "", false
	}
	return strings.ToLower(strings.TrimPrefix(attr[:open], "@")),
		strings.TrimSpace(attr[open+1 : len(attr)-1]), true
}

func isIdentChar(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}
