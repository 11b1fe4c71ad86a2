package parser

import (
	"strings"
	"testing"
)

func TestRenderFieldRoundTrip(t *testing.T) {
	lines := []string{
		"- Id: int @primary_key",
		"- Email: string(100) @unique",
		"- Nickname: string?",
		"- UserId: int @reference(User)!",
		"- ManagerId: int @reference(User)?",
		"- Balance: decimal(18,2)",
		"- Tags: string[] [JsonIgnore]",
		"- Note: string \"free text\"",
		"- Total: money @computed(SUM(Price))",
		"- Quantity: int = 1",
		"- CreatedAt: datetime @default(now())",
		"- Config: map<string, string>",
	}
	src := "## Sample\n" + strings.Join(lines, "\n") + "\n"

	res, err := New().Parse("test", src)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	fields := res.Document.Models[0].Fields
	if len(fields) != len(lines) {
		t.Fatalf("parsed %d fields, want %d", len(fields), len(lines))
	}

	for i, f := range fields {
		if got := RenderField(f); got != lines[i] {
			t.Errorf("RenderField(%s) = %q, want %q", f.Name, got, lines[i])
		}
	}
}

func TestRenderFields(t *testing.T) {
	src := "## Sample\n- Id: int @primary_key\n- Name: string\n"
	res, err := New().Parse("test", src)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	got := RenderFields(res.Document.Models[0].Fields)
	want := "- Id: int @primary_key\n- Name: string"
	if got != want {
		t.Errorf("RenderFields = %q, want %q", got, want)
	}
}
