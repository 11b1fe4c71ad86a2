// Package typemap interprets declared type tokens as a closed
// enumeration of DSL primitive kinds plus an open extension table for
// custom mappings. It replaces stringly-typed dispatch: every consumer
// switches on Kind, and only the extension table deals in raw tokens.
package typemap

import (
	"strings"

	"github.com/leapstack-labs/mdschema/internal/config"
)

// Kind is a DSL primitive kind.
type Kind int

// The closed set of primitive kinds.
const (
	KindUnknown Kind = iota
	KindString
	KindText
	KindInt
	KindBigInt
	KindFloat
	KindDecimal
	KindBool
	KindDate
	KindDateTime
	KindUUID
	KindJSON
	KindBinary
	KindEnum
	KindObject
	KindMap
	KindArray
)

// String returns the canonical kind name.
func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindText:
		return "text"
	case KindInt:
		return "int"
	case KindBigInt:
		return "bigint"
	case KindFloat:
		return "float"
	case KindDecimal:
		return "decimal"
	case KindBool:
		return "bool"
	case KindDate:
		return "date"
	case KindDateTime:
		return "datetime"
	case KindUUID:
		return "uuid"
	case KindJSON:
		return "json"
	case KindBinary:
		return "binary"
	case KindEnum:
		return "enum"
	case KindObject:
		return "object"
	case KindMap:
		return "map"
	case KindArray:
		return "array"
	default:
		return "unknown"
	}
}

// builtin maps lowercased type tokens (and common aliases) to kinds.
var builtin = map[string]Kind{
	"string":    KindString,
	"varchar":   KindString,
	"text":      KindText,
	"int":       KindInt,
	"integer":   KindInt,
	"bigint":    KindBigInt,
	"long":      KindBigInt,
	"float":     KindFloat,
	"double":    KindFloat,
	"decimal":   KindDecimal,
	"money":     KindDecimal,
	"bool":      KindBool,
	"boolean":   KindBool,
	"date":      KindDate,
	"datetime":  KindDateTime,
	"timestamp": KindDateTime,
	"uuid":      KindUUID,
	"guid":      KindUUID,
	"json":      KindJSON,
	"binary":    KindBinary,
	"blob":      KindBinary,
	"enum":      KindEnum,
	"object":    KindObject,
}

// kindByName resolves a canonical kind name, used by the extension table.
var kindByName = func() map[string]Kind {
	m := make(map[string]Kind)
	for k := KindString; k <= KindArray; k++ {
		m[k.String()] = k
	}
	return m
}()

// Type is a resolved type token.
type Type struct {
	Kind Kind
	// Elem is the element type for arrays, or the value type for maps.
	Elem *Type
	// Key is the key type for maps.
	Key *Type
	// Token is the raw token the type was parsed from.
	Token string
}

// Mapper resolves type tokens against the built-in kind set and the
// configured extension table.
type Mapper struct {
	cfg *config.TypeConfig
}

// NewMapper creates a mapper over the given type configuration.
func NewMapper(cfg *config.TypeConfig) *Mapper {
	return &Mapper{cfg: cfg}
}

// Parse resolves a declared type token. Array suffixes ("uuid[]",
// "[]uuid") and map tokens ("map<string, int>") recurse into their
// element types. Unrecognized tokens come back as KindUnknown; the
// builder decides whether they name a model or enum.
func (m *Mapper) Parse(token string) Type {
	t := strings.TrimSpace(token)

	switch {
	case strings.HasSuffix(t, "[]"):
		elem := m.Parse(strings.TrimSuffix(t, "[]"))
		return Type{Kind: KindArray, Elem: &elem, Token: token}
	case strings.HasPrefix(t, "[]"):
		elem := m.Parse(strings.TrimPrefix(t, "[]"))
		return Type{Kind: KindArray, Elem: &elem, Token: token}
	case strings.HasPrefix(strings.ToLower(t), "map<") && strings.HasSuffix(t, ">"):
		inner := t[4 : len(t)-1]
		if comma := splitTopComma(inner); comma >= 0 {
			key := m.Parse(inner[:comma])
			val := m.Parse(inner[comma+1:])
			return Type{Kind: KindMap, Key: &key, Elem: &val, Token: token}
		}
		val := m.Parse(inner)
		return Type{Kind: KindMap, Elem: &val, Token: token}
	}

	lower := strings.ToLower(t)
	if m.cfg != nil {
		if kindName, ok := m.cfg.Patterns[lower]; ok {
			if k, ok := kindByName[strings.ToLower(kindName)]; ok {
				return Type{Kind: k, Token: token}
			}
		}
	}
	if k, ok := builtin[lower]; ok {
		return Type{Kind: k, Token: token}
	}
	return Type{Kind: KindUnknown, Token: token}
}

// IsPrimitive reports whether the token resolves to a known primitive
// kind (anything but unknown).
func (m *Mapper) IsPrimitive(token string) bool {
	return m.Parse(token).Kind != KindUnknown
}

// splitTopComma returns the index of the first comma outside nested
// angle brackets, or -1.
func splitTopComma(s string) int {
	depth := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '<':
			depth++
		case '>':
			depth--
		case ',':
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}
