package typemap

import "fmt"

// defaultSQL maps kinds to their default SQL column types. Entries
// without a placeholder are used verbatim; string and decimal interpolate
// the configured or declared length/precision.
var defaultSQL = map[Kind]string{
	KindText:     "TEXT",
	KindInt:      "INTEGER",
	KindBigInt:   "BIGINT",
	KindFloat:    "DOUBLE PRECISION",
	KindBool:     "BOOLEAN",
	KindDate:     "DATE",
	KindDateTime: "TIMESTAMP",
	KindUUID:     "UUID",
	KindJSON:     "JSONB",
	KindBinary:   "BYTEA",
	KindEnum:     "INTEGER",
	KindObject:   "JSONB",
	KindMap:      "JSONB",
}

// SQLType renders the SQL column type for a resolved type. length is the
// field's declared length/precision and may be empty, in which case the
// configured defaults apply. The configured SQLTypes table overrides any
// kind's mapping.
func (m *Mapper) SQLType(t Type, length string) string {
	if m.cfg != nil {
		if override, ok := m.cfg.SQLTypes[t.Kind.String()]; ok {
			return override
		}
	}

	switch t.Kind {
	case KindString:
		if length == "" && m.cfg != nil {
			length = fmt.Sprintf("%d", m.cfg.DefaultStringLength)
		}
		if length == "" {
			return "VARCHAR"
		}
		return fmt.Sprintf("VARCHAR(%s)", length)
	case KindDecimal:
		if length == "" && m.cfg != nil {
			length = m.cfg.DecimalPrecision
		}
		if length == "" {
			return "NUMERIC"
		}
		return fmt.Sprintf("NUMERIC(%s)", length)
	case KindArray:
		if t.Elem != nil {
			return m.SQLType(*t.Elem, "") + "[]"
		}
		return "JSONB"
	}

	if s, ok := defaultSQL[t.Kind]; ok {
		return s
	}
	return "TEXT"
}
