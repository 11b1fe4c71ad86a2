// Package schema defines the semantic model a compiled schema document
// produces: models, interfaces, enums, fields with derived attribute
// accessors, resolved relationships, and cascade-conflict diagnostics.
// External emitters consume these types through the Document's read-only
// query surface and must not mutate them.
package schema

import "sort"

// Document is the root of one compiled schema unit. The compiler
// constructs it, the builder and validator annotate it, and Freeze locks
// it before it is handed to emitters.
type Document struct {
	Name      string // document (file) name, used in diagnostics
	Namespace string
	Title     string

	Models     []*Model
	Interfaces []*Interface
	Enums      []*Enum

	// Conflicts holds the cascade-conflict warnings discovered during
	// validation. Non-fatal by design: surfaced as structured data.
	Conflicts []CascadeConflict

	frozen       bool
	modelIdx     map[string]*Model
	interfaceIdx map[string]*Interface
	enumIdx      map[string]*Enum
}

// Freeze builds the lookup indexes and marks the document immutable.
// Mutating accessors are not enforced at the type level; Frozen is the
// contract emitters are expected to honor.
func (d *Document) Freeze() {
	d.modelIdx = make(map[string]*Model, len(d.Models))
	for _, m := range d.Models {
		d.modelIdx[m.Name] = m
	}
	d.interfaceIdx = make(map[string]*Interface, len(d.Interfaces))
	for _, i := range d.Interfaces {
		d.interfaceIdx[i.Name] = i
	}
	d.enumIdx = make(map[string]*Enum, len(d.Enums))
	for _, e := range d.Enums {
		d.enumIdx[e.Name] = e
	}
	d.frozen = true
}

// Frozen reports whether the document has been frozen.
func (d *Document) Frozen() bool { return d.frozen }

// ModelByName returns the model with the given name, or nil.
func (d *Document) ModelByName(name string) *Model {
	if d.modelIdx != nil {
		return d.modelIdx[name]
	}
	for _, m := range d.Models {
		if m.Name == name {
			return m
		}
	}
	return nil
}

// InterfaceByName returns the interface with the given name, or nil.
func (d *Document) InterfaceByName(name string) *Interface {
	if d.interfaceIdx != nil {
		return d.interfaceIdx[name]
	}
	for _, i := range d.Interfaces {
		if i.Name == name {
			return i
		}
	}
	return nil
}

// EnumByName returns the enum with the given name, or nil.
func (d *Document) EnumByName(name string) *Enum {
	if d.enumIdx != nil {
		return d.enumIdx[name]
	}
	for _, e := range d.Enums {
		if e.Name == name {
			return e
		}
	}
	return nil
}

// HasType reports whether name resolves to a declared model or enum.
// Reference targets must satisfy this at validation time; the parser
// tolerates forward references.
func (d *Document) HasType(name string) bool {
	return d.ModelByName(name) != nil || d.EnumByName(name) != nil
}

// NonAbstractModels returns the concrete models in declaration order.
// Only concrete models contribute reference edges to the cascade graph.
func (d *Document) NonAbstractModels() []*Model {
	var out []*Model
	for _, m := range d.Models {
		if !m.Abstract {
			out = append(out, m)
		}
	}
	return out
}

// ModelNames returns all model names sorted alphabetically.
func (d *Document) ModelNames() []string {
	names := make([]string, len(d.Models))
	for i, m := range d.Models {
		names[i] = m.Name
	}
	sort.Strings(names)
	return names
}

// Relationships returns every resolved relationship edge across all
// models, in model declaration order.
func (d *Document) Relationships() []*Relationship {
	var out []*Relationship
	for _, m := range d.Models {
		out = append(out, m.Relationships...)
	}
	return out
}
