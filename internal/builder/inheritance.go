package builder

import (
	"fmt"

	"github.com/leapstack-labs/mdschema/pkg/schema"
)

// resolveInheritance flattens every model's and interface's inherited
// chain, merging ancestor fields in declaration order ahead of the
// descendant's own. A field re-declared downstream overrides the
// ancestor's field of the same name; doing so without an @override
// marker yields a warning, not an error — emitters decide strictness.
func (b *Builder) resolveInheritance(doc *schema.Document) ([]schema.Diagnostic, error) {
	var diags []schema.Diagnostic

	// Interfaces first, so a model inheriting an interface that itself
	// inherits sees the full flattened set.
	for _, iface := range doc.Interfaces {
		fields, d, err := b.flattenChain(doc, iface.Name, iface.Inherits, iface.Fields, nil)
		if err != nil {
			return nil, err
		}
		iface.Fields = fields
		diags = append(diags, d...)
	}

	for _, m := range doc.Models {
		fields, d, err := b.flattenChain(doc, m.Name, m.Inherits, m.Fields, map[string]bool{m.Name: true})
		if err != nil {
			return nil, err
		}
		m.Fields = fields
		diags = append(diags, d...)
	}

	return diags, nil
}

// flattenChain merges the inherited bases' fields with own fields.
// Ancestor fields are cloned and tagged with their origin; a same-named
// own field wins (last-writer-wins at the immediate level).
func (b *Builder) flattenChain(doc *schema.Document, owner string, inherits []string, own []*schema.Field, seen map[string]bool) ([]*schema.Field, []schema.Diagnostic, error) {
	if len(inherits) == 0 {
		return own, nil, nil
	}
	if seen == nil {
		seen = map[string]bool{owner: true}
	}

	var diags []schema.Diagnostic
	var merged []*schema.Field
	index := map[string]int{}

	add := func(f *schema.Field, origin string) {
		if i, ok := index[f.Name]; ok {
			// Redefinition: the later declaration wins.
			if origin == "" && !f.HasAttribute("override") {
				diags = append(diags, schema.Diagnostic{
					Code:     "inherit-override",
					Severity: schema.SeverityWarning,
					Message: fmt.Sprintf("field %s redefines inherited field from %s without @override",
						f.Name, merged[i].Origin),
					Model: owner,
					Field: f.Name,
					Pos:   schema.Position{Document: doc.Name, Line: f.Line},
				})
			}
			merged[i] = f
			return
		}
		index[f.Name] = len(merged)
		merged = append(merged, f)
	}

	for _, baseName := range inherits {
		if seen[baseName] {
			return nil, nil, &schema.SemanticError{
				Document: doc.Name, Model: owner,
				Message: fmt.Sprintf("inheritance cycle through %q", baseName),
			}
		}
		seen[baseName] = true

		baseFields, err := b.baseFields(doc, owner, baseName, seen)
		if err != nil {
			return nil, nil, err
		}
		for _, f := range baseFields {
			c := f.Clone()
			c.Inherited = true
			if c.Origin == "" {
				c.Origin = baseName
			}
			add(c, baseName)
		}
	}

	for _, f := range own {
		add(f, "")
	}

	return merged, diags, nil
}

// baseFields resolves an inherited name to its flattened field list.
// A name resolving to neither a model nor an interface is fatal.
func (b *Builder) baseFields(doc *schema.Document, owner, baseName string, seen map[string]bool) ([]*schema.Field, error) {
	if base := doc.ModelByName(baseName); base != nil {
		fields, _, err := b.flattenChain(doc, baseName, base.Inherits, base.Fields, seen)
		return fields, err
	}
	if base := doc.InterfaceByName(baseName); base != nil {
		fields, _, err := b.flattenChain(doc, baseName, base.Inherits, base.Fields, seen)
		return fields, err
	}
	return nil, &schema.SemanticError{
		Document: doc.Name, Model: owner,
		Message: fmt.Sprintf("inherited name %q is not a declared model or interface", baseName),
	}
}
