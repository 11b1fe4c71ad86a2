package schema

import "testing"

func TestCascadeBehaviorPriority(t *testing.T) {
	tests := []struct {
		name     string
		attrs    []string
		nullable bool
		want     string
	}{
		{"explicit cascade value", []string{"@reference(User)", "@cascade(set_null)"}, false, CascadeSetNull},
		{"explicit wins over suffix", []string{"@reference(User)!!", "@cascade(no_action)"}, false, CascadeNoAction},
		{"explicit unrecognized defaults", []string{"@reference(User)", "@cascade(bogus)"}, false, CascadeDelete},
		{"bare no_action", []string{"@reference(User)", "@no_action"}, false, CascadeNoAction},
		{"bare no_action beats bare cascade", []string{"@cascade", "@no_action"}, false, CascadeNoAction},
		{"bare set_null", []string{"@reference(User)", "@set_null"}, false, CascadeSetNull},
		{"bare restrict", []string{"@reference(User)", "@restrict"}, false, CascadeRestrict},
		{"double bang restrict", []string{"@reference(User)!!"}, false, CascadeRestrict},
		{"single bang no action", []string{"@reference(User)!"}, false, CascadeNoAction},
		{"question set null", []string{"@reference(User)?"}, true, CascadeSetNull},
		{"nullable infers set null", []string{"@reference(User)"}, true, CascadeSetNull},
		{"non-nullable infers cascade", []string{"@reference(User)"}, false, CascadeDelete},
		{"no attributes defaults", nil, false, CascadeDelete},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := &Field{Name: "OwnerId", Attributes: tt.attrs, Nullable: tt.nullable}
			if got := f.CascadeBehavior(); got != tt.want {
				t.Errorf("CascadeBehavior() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCascadeBehaviorForNullableTargetKey(t *testing.T) {
	f := &Field{Name: "OwnerId", Attributes: []string{"@reference(User)"}}
	if got := f.CascadeBehaviorFor(true); got != CascadeDelete {
		t.Errorf("CascadeBehaviorFor(true) = %q, want %q", got, CascadeDelete)
	}
}

func TestNormalizeCascade(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"cascade", CascadeDelete},
		{"no_action", CascadeNoAction},
		{"NO ACTION", CascadeNoAction},
		{"set_null", CascadeSetNull},
		{"Restrict", CascadeRestrict},
		{"whatever", CascadeDelete},
		{"", CascadeDelete},
	}
	for _, tt := range tests {
		if got := NormalizeCascade(tt.in); got != tt.want {
			t.Errorf("NormalizeCascade(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestReferenceTarget(t *testing.T) {
	tests := []struct {
		name  string
		attrs []string
		want  string
	}{
		{"reference", []string{"@reference(User)"}, "User"},
		{"ref alias", []string{"@ref(Order)"}, "Order"},
		{"suffix ignored", []string{"@reference(User)!!"}, "User"},
		{"case insensitive name", []string{"@Reference(User)"}, "User"},
		{"not a reference", []string{"@unique"}, ""},
		{"no attributes", nil, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := &Field{Attributes: tt.attrs}
			if got := f.ReferenceTarget(); got != tt.want {
				t.Errorf("ReferenceTarget() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDerivedBooleans(t *testing.T) {
	f := &Field{Attributes: []string{"@primary_key", "@unique"}}
	if !f.IsPrimaryKey() || !f.IsUnique() {
		t.Error("expected primary key and unique")
	}

	f = &Field{Attributes: []string{"@pk"}}
	if !f.IsPrimaryKey() {
		t.Error("@pk should mark the primary key")
	}

	f = &Field{}
	f.SetMeta("unique", "true")
	if !f.IsUnique() {
		t.Error("reconciled unique metadata should count")
	}

	f = &Field{Attributes: []string{"@transient"}}
	if f.IsPersisted() {
		t.Error("transient fields are not persisted")
	}

	f = &Field{Attributes: []string{"@computed(Price * Quantity)"}}
	if f.IsPersisted() {
		t.Error("computed fields are not persisted")
	}
}

func TestComputedExpression(t *testing.T) {
	f := &Field{Name: "Total", Attributes: []string{"@computed(SUM(Price * Quantity))"}}
	expr, err := f.ComputedExpression()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if expr != "SUM(Price * Quantity)" {
		t.Errorf("expr = %q", expr)
	}

	f = &Field{Name: "Total", Attributes: []string{`@computed("Price * 2")`}}
	expr, err = f.ComputedExpression()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if expr != "Price * 2" {
		t.Errorf("quotes should strip, got %q", expr)
	}

	f = &Field{Name: "Total", Attributes: []string{"@computed(SUM(Price"}}
	if _, err := f.ComputedExpression(); err == nil {
		t.Error("unbalanced parentheses should error")
	}

	f = &Field{Name: "Plain"}
	expr, err = f.ComputedExpression()
	if err != nil || expr != "" {
		t.Errorf("non-computed field: expr=%q err=%v", expr, err)
	}
}

func TestFieldClone(t *testing.T) {
	f := &Field{
		Name:       "Email",
		Type:       "string",
		Attributes: []string{"@unique"},
	}
	f.SetMeta("validate", "email")

	c := f.Clone()
	c.Attributes[0] = "@primary_key"
	c.SetMeta("validate", "none")

	if f.Attributes[0] != "@unique" {
		t.Error("clone aliases the attribute slice")
	}
	if f.Meta("validate") != "email" {
		t.Error("clone aliases the extended map")
	}
}
