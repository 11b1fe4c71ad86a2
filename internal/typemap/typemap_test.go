package typemap

import (
	"testing"

	"github.com/leapstack-labs/mdschema/internal/config"
)

func defaultMapper() *Mapper {
	cfg := config.Default()
	return NewMapper(&cfg.Types)
}

func TestParseKinds(t *testing.T) {
	tests := []struct {
		token string
		want  Kind
	}{
		{"string", KindString},
		{"VarChar", KindString},
		{"text", KindText},
		{"int", KindInt},
		{"integer", KindInt},
		{"long", KindBigInt},
		{"double", KindFloat},
		{"money", KindDecimal},
		{"boolean", KindBool},
		{"timestamp", KindDateTime},
		{"guid", KindUUID},
		{"enum", KindEnum},
		{"object", KindObject},
		{"Customer", KindUnknown},
	}
	m := defaultMapper()
	for _, tt := range tests {
		if got := m.Parse(tt.token).Kind; got != tt.want {
			t.Errorf("Parse(%q).Kind = %v, want %v", tt.token, got, tt.want)
		}
	}
}

func TestParseCompositeTokens(t *testing.T) {
	m := defaultMapper()

	arr := m.Parse("uuid[]")
	if arr.Kind != KindArray || arr.Elem == nil || arr.Elem.Kind != KindUUID {
		t.Errorf("uuid[] = %+v", arr)
	}

	arr = m.Parse("[]string")
	if arr.Kind != KindArray || arr.Elem.Kind != KindString {
		t.Errorf("[]string = %+v", arr)
	}

	mp := m.Parse("map<string, int>")
	if mp.Kind != KindMap || mp.Key.Kind != KindString || mp.Elem.Kind != KindInt {
		t.Errorf("map<string, int> = %+v", mp)
	}

	nested := m.Parse("map<string, map<string, int>>")
	if nested.Kind != KindMap || nested.Elem.Kind != KindMap {
		t.Errorf("nested map = %+v", nested)
	}
}

func TestParseConfigPatterns(t *testing.T) {
	cfg := config.Default()
	cfg.Types.Patterns = map[string]string{"slug": "string"}
	m := NewMapper(&cfg.Types)

	if got := m.Parse("slug").Kind; got != KindString {
		t.Errorf("pattern token = %v, want string kind", got)
	}
	if !m.IsPrimitive("slug") || m.IsPrimitive("Customer") {
		t.Error("IsPrimitive should follow the extension table")
	}
}

func TestSQLType(t *testing.T) {
	m := defaultMapper()

	tests := []struct {
		field fieldShape
		want  string
	}{
		{fieldShape{"string", ""}, "VARCHAR(255)"},
		{fieldShape{"string", "100"}, "VARCHAR(100)"},
		{fieldShape{"decimal", ""}, "NUMERIC(18,2)"},
		{fieldShape{"decimal", "10,4"}, "NUMERIC(10,4)"},
		{fieldShape{"int", ""}, "INTEGER"},
		{fieldShape{"bool", ""}, "BOOLEAN"},
		{fieldShape{"uuid[]", ""}, "UUID[]"},
	}
	for _, tt := range tests {
		if got := m.SQLType(m.Parse(tt.field.token), tt.field.length); got != tt.want {
			t.Errorf("SQLType(%q, %q) = %q, want %q", tt.field.token, tt.field.length, got, tt.want)
		}
	}
}

type fieldShape struct {
	token  string
	length string
}

func TestSQLTypeOverride(t *testing.T) {
	cfg := config.Default()
	cfg.Types.SQLTypes = map[string]string{"datetime": "TIMESTAMPTZ"}
	m := NewMapper(&cfg.Types)

	if got := m.SQLType(m.Parse("datetime"), ""); got != "TIMESTAMPTZ" {
		t.Errorf("override = %q", got)
	}
}
