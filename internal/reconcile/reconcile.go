// Package reconcile corrects indentation-parsing artifacts. The
// structural parser flattens every nested bullet into a sibling field
// record; this pass re-derives the indentation tree from the raw source
// lines (the source of truth) and folds records that were never fields —
// "- unique: true" under "- email" — back into the parent field's
// extended metadata, deleting them from the model's authoritative field
// list so field count and enumeration order stay consistent.
package reconcile

import (
	"strings"

	"github.com/leapstack-labs/mdschema/internal/parser"
	"github.com/leapstack-labs/mdschema/internal/typemap"
	"github.com/leapstack-labs/mdschema/pkg/schema"
)

// Reconciler reclassifies misparsed nested records, one pass per block.
type Reconciler struct {
	mapper *typemap.Mapper
}

// New creates a reconciler using the given type mapper to decide what
// "looks like a type declaration".
func New(mapper *typemap.Mapper) *Reconciler {
	return &Reconciler{mapper: mapper}
}

// Apply runs the reconciliation pass over every model and interface
// block of a parse result.
func (r *Reconciler) Apply(res *parser.Result) error {
	doc := res.Document
	for _, block := range res.Blocks {
		tree, err := parser.BuildFieldTree(doc.Name, block.Name, block.FieldLines)
		if err != nil {
			return err
		}

		switch block.Kind {
		case parser.KindModel:
			m := doc.ModelByName(block.Name)
			if m == nil {
				continue
			}
			m.Fields = r.reconcileFields(doc, m.Fields, tree)
		case parser.KindInterface:
			i := doc.InterfaceByName(block.Name)
			if i == nil {
				continue
			}
			i.Fields = r.reconcileFields(doc, i.Fields, tree)
		}
	}
	return nil
}

// reconcileFields walks the re-derived tree and folds non-type-like
// child records into their parents, returning the corrected field list.
func (r *Reconciler) reconcileFields(doc *schema.Document, fields []*schema.Field, tree []*parser.Node) []*schema.Field {
	find := func(name string, line int) *schema.Field {
		for _, f := range fields {
			if f.Name == name && f.Line == line {
				return f
			}
		}
		return nil
	}

	parser.Walk(tree, func(parent, node *parser.Node) {
		if parent == nil || !node.HasColon {
			// Roots are always fields; colon-less leaves were folded at
			// parse time and never entered the field list.
			return
		}
		if r.typeLike(doc, node) {
			return
		}
		pf := find(parent.Name, parent.Line)
		if pf == nil {
			return
		}
		pf.SetMeta(node.Name, strings.TrimSpace(node.Rest))
		fields = removeAt(fields, node.Name, node.Line)
	})

	return fields
}

// typeLike reports whether a nested record reads as a genuine field
// declaration: its token is a known primitive, names a declared model,
// interface, or enum, or the record has children of its own.
func (r *Reconciler) typeLike(doc *schema.Document, node *parser.Node) bool {
	if len(node.Children) > 0 {
		return true
	}
	token := typeToken(node.Rest)
	if token == "" {
		return false
	}
	if r.mapper.IsPrimitive(token) {
		return true
	}
	return doc.HasType(token) || doc.InterfaceByName(token) != nil
}

// typeToken extracts the bare type token from a record's value text:
// first word, without nullability suffix or length arguments.
func typeToken(rest string) string {
	word := rest
	if i := strings.IndexAny(word, " \t"); i >= 0 {
		word = word[:i]
	}
	word = strings.TrimSuffix(word, "?")
	if open := strings.IndexByte(word, '('); open > 0 {
		word = word[:open]
	}
	return word
}

// removeAt deletes the field with the given name and line, preserving
// order. Line disambiguates same-named records under different parents.
func removeAt(fields []*schema.Field, name string, line int) []*schema.Field {
	for i, f := range fields {
		if f.Name == name && f.Line == line {
			return append(fields[:i], fields[i+1:]...)
		}
	}
	return fields
}
