package parser

import "testing"

func lines(texts ...string) []Line {
	out := make([]Line, len(texts))
	for i, t := range texts {
		out[i] = Line{Text: t, Number: i + 1}
	}
	return out
}

func TestBuildFieldTreeNesting(t *testing.T) {
	tree, err := BuildFieldTree("doc", "User", lines(
		"- Email: string",
		"  - unique: true",
		"  - validate: email",
		"- Name: string",
		"\t- required: true",
	))
	if err != nil {
		t.Fatalf("BuildFieldTree: %v", err)
	}

	if len(tree) != 2 {
		t.Fatalf("roots = %d, want 2", len(tree))
	}
	email := tree[0]
	if email.Name != "Email" || len(email.Children) != 2 {
		t.Fatalf("Email children = %d, want 2", len(email.Children))
	}
	if email.Children[0].Name != "unique" || email.Children[0].Rest != "true" {
		t.Errorf("child = %+v", email.Children[0])
	}
	// A tab indents four columns, nesting under the preceding root.
	name := tree[1]
	if len(name.Children) != 1 || name.Children[0].Name != "required" {
		t.Errorf("tab-indented child should nest under Name")
	}
}

func TestBuildFieldTreePopsOnDedent(t *testing.T) {
	tree, err := BuildFieldTree("doc", "Order", lines(
		"- Customer: object",
		"  - Name: string",
		"    - required: true",
		"  - Age: int",
		"- Total: decimal",
	))
	if err != nil {
		t.Fatalf("BuildFieldTree: %v", err)
	}
	if len(tree) != 2 {
		t.Fatalf("roots = %d, want 2", len(tree))
	}
	customer := tree[0]
	if len(customer.Children) != 2 {
		t.Fatalf("Customer children = %d, want 2", len(customer.Children))
	}
	if len(customer.Children[0].Children) != 1 {
		t.Error("required should nest under Name")
	}
	if len(customer.Children[1].Children) != 0 {
		t.Error("Age should have no children")
	}
}

func TestBuildFieldTreeDuplicateSiblings(t *testing.T) {
	_, err := BuildFieldTree("doc", "User", lines(
		"- Email: string",
		"  - unique: true",
		"  - unique: false",
	))
	if err == nil {
		t.Fatal("duplicate sibling should error")
	}

	// Same name at different depths is fine.
	_, err = BuildFieldTree("doc", "User", lines(
		"- name: string",
		"- profile: object",
		"  - name: string",
	))
	if err != nil {
		t.Fatalf("same name at different depth: %v", err)
	}
}

func TestSplitBulletQuoteShielding(t *testing.T) {
	name, rest, hasColon := splitBullet(`- "display:name": string`)
	if name != "display:name" || rest != "string" || !hasColon {
		t.Errorf("quoted name: name=%q rest=%q colon=%v", name, rest, hasColon)
	}

	name, rest, hasColon = splitBullet("- note 'free text'")
	if name != "note" || hasColon {
		t.Errorf("colon-less: name=%q rest=%q colon=%v", name, rest, hasColon)
	}
}
