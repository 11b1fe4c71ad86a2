package schema

// Model is a data model declared by a level-2 header block.
//
// The parser creates it, the reconciler and builder mutate its field
// list and relationship annotations, and Document.Freeze locks it once
// validation completes.
type Model struct {
	Name        string
	Label       string // optional display label
	Description string
	Abstract    bool
	Inherits    []string // base model/interface names, in declaration order

	Fields    []*Field
	Relations []*Relation // explicit relation declarations from the Relations subsection
	Indexes   []*Index
	Metadata  map[string]string

	// Relationships is the resolved bidirectional relationship list,
	// populated by the semantic model builder. It merges FK-implied
	// edges with explicit Relations, keyed by (target, property name).
	Relationships []*Relationship

	Line int
}

// FieldByName returns the field with the given name, or nil.
func (m *Model) FieldByName(name string) *Field {
	for _, f := range m.Fields {
		if f.Name == name {
			return f
		}
	}
	return nil
}

// RemoveField deletes the named field from the authoritative field list,
// preserving the order of the remaining fields. Returns true if removed.
// The reconciler uses this when a record turns out to be metadata.
func (m *Model) RemoveField(name string) bool {
	for i, f := range m.Fields {
		if f.Name == name {
			m.Fields = append(m.Fields[:i], m.Fields[i+1:]...)
			return true
		}
	}
	return false
}

// PrimaryKey returns the first primary-key field, or nil.
func (m *Model) PrimaryKey() *Field {
	for _, f := range m.Fields {
		if f.IsPrimaryKey() {
			return f
		}
	}
	return nil
}

// ReferenceFields returns the persisted fields that declare a reference,
// in field order. Transient fields are excluded: they never reach storage
// and contribute no delete-propagation edges.
func (m *Model) ReferenceFields() []*Field {
	var refs []*Field
	for _, f := range m.Fields {
		if f.IsReference() && !f.IsTransient() {
			refs = append(refs, f)
		}
	}
	return refs
}

// Meta returns the model-level metadata value for key, or "".
func (m *Model) Meta(key string) string {
	if m.Metadata == nil {
		return ""
	}
	return m.Metadata[key]
}

// Interface is a mixin declared by a "::interface" block. It owns fields
// like a Model but is not instantiable; models inherit its fields during
// semantic building.
type Interface struct {
	Name        string
	Description string
	Inherits    []string
	Fields      []*Field
	Metadata    map[string]string
	Line        int
}

// FieldByName returns the interface field with the given name, or nil.
func (i *Interface) FieldByName(name string) *Field {
	for _, f := range i.Fields {
		if f.Name == name {
			return f
		}
	}
	return nil
}

// Index is a declared index over one or more fields.
type Index struct {
	Name   string // optional
	Fields []string
	Unique bool
	Line   int
}
