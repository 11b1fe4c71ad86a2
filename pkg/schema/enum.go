package schema

// Enum is an enumeration declared by a "::enum" block.
type Enum struct {
	Name   string
	Base   string // optional base enum name (inheritance)
	Group  string // optional grouping
	Values []EnumValue
	Line   int
}

// EnumValue is a single enumeration entry.
type EnumValue struct {
	Name        string
	Literal     string // optional typed literal, verbatim
	HasLiteral  bool
	Description string
}

// ValueByName returns the entry with the given name, or nil.
func (e *Enum) ValueByName(name string) *EnumValue {
	for i := range e.Values {
		if e.Values[i].Name == name {
			return &e.Values[i]
		}
	}
	return nil
}
