package schema

import (
	"fmt"
	"strings"
)

// Cascade behaviors recognized by the attribute extractor. These mirror
// the referential actions a relational engine accepts on delete.
const (
	CascadeDelete   = "CASCADE"
	CascadeNoAction = "NO ACTION"
	CascadeSetNull  = "SET NULL"
	CascadeRestrict = "RESTRICT"
)

// attrName returns the lowercased bare name of an @-attribute token,
// without the leading "@", arguments, or suffix symbols.
// "@Reference(User)!" → "reference".
func attrName(attr string) string {
	s := strings.TrimPrefix(strings.TrimSpace(attr), "@")
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '(' || c == '!' || c == '?' || c == ' ' {
			return strings.ToLower(s[:i])
		}
	}
	return strings.ToLower(s)
}

// attrArg returns the content inside the first balanced parenthesis pair
// of attr, trimmed, and true if a complete pair exists.
func attrArg(attr string) (string, bool) {
	open := strings.IndexByte(attr, '(')
	if open < 0 {
		return "", false
	}
	depth := 0
	for i := open; i < len(attr); i++ {
		switch attr[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return strings.TrimSpace(attr[open+1 : i]), true
			}
		}
	}
	return "", false
}

// HasAttribute reports whether the field carries an @-attribute with the
// given bare name (case-insensitive, arguments ignored).
func (f *Field) HasAttribute(name string) bool {
	name = strings.ToLower(name)
	for _, a := range f.Attributes {
		if attrName(a) == name {
			return true
		}
	}
	return false
}

// IsPrimaryKey reports whether the field is marked as (part of) the
// primary key.
func (f *Field) IsPrimaryKey() bool {
	return f.HasAttribute("primary_key") || f.HasAttribute("primary") || f.HasAttribute("pk")
}

// IsUnique reports whether the field carries a uniqueness constraint,
// either as an attribute or as reconciled nested metadata.
func (f *Field) IsUnique() bool {
	return f.HasAttribute("unique") || f.Meta("unique") == "true"
}

// IsReference reports whether the field declares a reference to another
// model or enum via @reference(...) or @ref(...).
func (f *Field) IsReference() bool {
	return f.referenceAttr() != ""
}

// IsComputed reports whether the field's value is a computed expression.
func (f *Field) IsComputed() bool {
	return f.HasAttribute("computed")
}

// IsTransient reports whether the field is excluded from storage.
// Transient fields never contribute reference edges to the cascade graph.
func (f *Field) IsTransient() bool {
	return f.HasAttribute("transient")
}

// IsPersisted reports whether the field maps to a stored column.
func (f *Field) IsPersisted() bool {
	return !f.IsComputed() && !f.IsTransient()
}

// referenceAttr returns the raw @reference/@ref attribute token, or "".
func (f *Field) referenceAttr() string {
	for _, a := range f.Attributes {
		switch attrName(a) {
		case "reference", "ref":
			return a
		}
	}
	return ""
}

// ReferenceTarget returns the referenced model or enum name: the trimmed
// content inside the first parenthesis pair of the reference attribute.
// Returns "" when the field is not a reference.
func (f *Field) ReferenceTarget() string {
	ref := f.referenceAttr()
	if ref == "" {
		return ""
	}
	target, ok := attrArg(ref)
	if !ok {
		return ""
	}
	return target
}

// NormalizeCascade maps a user-supplied cascade value to one of the four
// recognized behaviors. Unrecognized values default to CASCADE.
func NormalizeCascade(value string) string {
	v := strings.ToUpper(strings.TrimSpace(value))
	v = strings.ReplaceAll(v, "_", " ")
	switch v {
	case CascadeDelete, CascadeNoAction, CascadeSetNull, CascadeRestrict:
		return v
	default:
		return CascadeDelete
	}
}

// CascadeBehavior resolves the field's delete-cascade behavior. The
// referenced key is assumed non-nullable; use CascadeBehaviorFor when the
// caller knows the target key's nullability.
func (f *Field) CascadeBehavior() string {
	return f.CascadeBehaviorFor(false)
}

// CascadeBehaviorFor resolves the delete-cascade behavior with the
// referenced key's nullability supplied by the caller.
//
// Resolution priority, first match wins:
//  1. explicit @cascade(value), normalized
//  2. bare markers anywhere in the attribute text: @no_action,
//     @cascade, @set_null, @restrict — in that order
//  3. suffix symbols after the reference's closing parenthesis:
//     )!! → RESTRICT, )! → NO ACTION, )? → SET NULL
//  4. inference from nullability: nullable field → SET NULL,
//     non-nullable field over a non-nullable key → CASCADE
//  5. CASCADE
func (f *Field) CascadeBehaviorFor(targetKeyNullable bool) string {
	// 1. Explicit @cascade(value).
	for _, a := range f.Attributes {
		if attrName(a) == "cascade" {
			if arg, ok := attrArg(a); ok {
				return NormalizeCascade(arg)
			}
		}
	}

	// 2. Bare behavior markers anywhere in the attribute text.
	// @no_action wins over @cascade when both appear.
	joined := strings.ToLower(strings.Join(f.Attributes, " "))
	switch {
	case strings.Contains(joined, "@no_action"):
		return CascadeNoAction
	case strings.Contains(joined, "@cascade"):
		return CascadeDelete
	case strings.Contains(joined, "@set_null"):
		return CascadeSetNull
	case strings.Contains(joined, "@restrict"):
		return CascadeRestrict
	}

	// 3. Suffix symbols directly after the reference's closing paren.
	// "!!" must be tested before "!".
	if ref := f.referenceAttr(); ref != "" {
		switch {
		case strings.Contains(ref, ")!!"):
			return CascadeRestrict
		case strings.Contains(ref, ")!"):
			return CascadeNoAction
		case strings.Contains(ref, ")?"):
			return CascadeSetNull
		}
	}

	// 4. Infer from nullability.
	if f.Nullable {
		return CascadeSetNull
	}
	if !targetKeyNullable {
		return CascadeDelete
	}

	// 5. Default.
	return CascadeDelete
}

// ComputedExpression returns the expression inside @computed(...), with
// one layer of surrounding quotes stripped. The scan counts balanced
// parentheses so the expression may itself contain calls; an unbalanced
// attribute is a parse error, not a silent empty result.
func (f *Field) ComputedExpression() (string, error) {
	const marker = "@computed("
	joined := strings.Join(f.Attributes, " ")
	start := strings.Index(strings.ToLower(joined), marker)
	if start < 0 {
		return "", nil
	}
	depth := 0
	for i := start + len(marker) - 1; i < len(joined); i++ {
		switch joined[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				expr := joined[start+len(marker) : i]
				return stripQuotes(strings.TrimSpace(expr)), nil
			}
		}
	}
	return "", fmt.Errorf("unbalanced parentheses in computed expression of field %q", f.Name)
}

// stripQuotes removes exactly one layer of matching surrounding quotes.
func stripQuotes(s string) string {
	if len(s) >= 2 {
		first, last := s[0], s[len(s)-1]
		if first == last && (first == '"' || first == '\'') {
			return s[1 : len(s)-1]
		}
	}
	return s
}
