package schema

// Field is a single declared field of a Model or Interface.
//
// The structural parser fills the raw parts (name, type token, attribute
// strings, description) verbatim; the reconciler and builder mutate
// Extended and the resolved parts. Boolean and string properties such as
// IsReference or CascadeBehavior are derived on demand from the raw
// attribute list (see attrs.go) and are never stored.
type Field struct {
	Name     string
	Type     string // declared type token: primitive name, "enum", "object", "map<K,V>", or array-of-any
	Nullable bool
	Length   string // optional length/precision, verbatim (e.g. "100", "18,2")
	Default  string // optional default-value expression, verbatim, uninterpreted

	// Attributes holds raw @-attribute strings in source order,
	// including any trailing cascade-suffix symbols (e.g. "@reference(User)!").
	Attributes []string

	// Framework holds bracket-delimited framework attribute strings
	// captured verbatim (e.g. "[JsonIgnore]"). They carry no semantic
	// weight in the core and pass through to emitters untouched.
	Framework []string

	// Extended holds key→value metadata populated by attribute
	// processing and the nested-metadata reconciler.
	Extended map[string]string

	Description string
	Line        int

	// Resolved by the semantic model builder.
	EnumType  string // resolved enum type name for enum-like fields
	Inherited bool   // merged in from a base model or interface
	Origin    string // declaring model/interface name when Inherited
}

// Meta returns the extended-metadata value for key, or "" if absent.
func (f *Field) Meta(key string) string {
	if f.Extended == nil {
		return ""
	}
	return f.Extended[key]
}

// SetMeta records an extended-metadata entry, allocating the map lazily.
func (f *Field) SetMeta(key, value string) {
	if f.Extended == nil {
		f.Extended = make(map[string]string)
	}
	f.Extended[key] = value
}

// Clone returns a deep copy of the field. Inheritance flattening copies
// ancestor fields so descendant edits never alias the base declaration.
func (f *Field) Clone() *Field {
	c := *f
	c.Attributes = append([]string(nil), f.Attributes...)
	c.Framework = append([]string(nil), f.Framework...)
	if f.Extended != nil {
		c.Extended = make(map[string]string, len(f.Extended))
		for k, v := range f.Extended {
			c.Extended[k] = v
		}
	}
	return &c
}
