package parser

import (
	"strings"

	"github.com/leapstack-labs/mdschema/pkg/schema"
)

// RenderField serializes a raw field back to its bullet-line form. The
// canonical token order is name, type (with length and nullability),
// attributes, framework tags, quoted description, then a bare default
// expression. Attribute and framework strings are stored verbatim, so
// rendering a freshly parsed field reproduces its source line.
func RenderField(f *schema.Field) string {
	var b strings.Builder
	b.WriteString("- ")
	b.WriteString(f.Name)

	if tok := renderTypeToken(f); tok != "" {
		b.WriteString(": ")
		b.WriteString(tok)
	}
	for _, attr := range f.Attributes {
		b.WriteByte(' ')
		b.WriteString(attr)
	}
	for _, tag := range f.Framework {
		b.WriteByte(' ')
		b.WriteString(tag)
	}
	if f.Description != "" {
		b.WriteString(` "`)
		b.WriteString(f.Description)
		b.WriteByte('"')
	}
	if f.Default != "" && !hasDefaultAttribute(f) {
		b.WriteString(" = ")
		b.WriteString(f.Default)
	}
	return b.String()
}

// RenderFields serializes a model's raw field list, one bullet per line.
func RenderFields(fields []*schema.Field) string {
	lines := make([]string, len(fields))
	for i, f := range fields {
		lines[i] = RenderField(f)
	}
	return strings.Join(lines, "\n")
}

func renderTypeToken(f *schema.Field) string {
	tok := f.Type
	if tok == "" {
		return ""
	}
	if f.Length != "" {
		tok += "(" + f.Length + ")"
	}
	if f.Nullable {
		tok += "?"
	}
	return tok
}

// hasDefaultAttribute reports whether the default value came from a
// @default attribute, which renders as part of the attribute list.
func hasDefaultAttribute(f *schema.Field) bool {
	for _, attr := range f.Attributes {
		if name, _, ok := splitDefaultAttr(attr); ok && name == "default" {
			return true
		}
	}
	return false
}
