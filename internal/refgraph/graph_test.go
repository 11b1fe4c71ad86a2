package refgraph

import (
	"testing"

	"github.com/leapstack-labs/mdschema/pkg/schema"
)

func model(name string, fields ...*schema.Field) *schema.Model {
	return &schema.Model{Name: name, Fields: fields}
}

func ref(name, target string, suffix string) *schema.Field {
	return &schema.Field{Name: name, Type: "int", Attributes: []string{"@reference(" + target + ")" + suffix}}
}

func TestBuildGraph(t *testing.T) {
	doc := &schema.Document{
		Name: "shop",
		Models: []*schema.Model{
			model("User", &schema.Field{Name: "Id", Type: "int"}),
			model("Order", ref("UserId", "User", "")),
			model("OrderItem", ref("OrderId", "Order", ""), ref("ProductId", "Product", "")),
			{Name: "Base", Abstract: true, Fields: []*schema.Field{ref("UserId", "User", "")}},
		},
	}

	g := Build(doc)

	// Abstract models are not nodes; Product is undeclared so its edge drops.
	if g.NodeCount() != 3 {
		t.Errorf("nodes = %d, want 3", g.NodeCount())
	}
	if g.EdgeCount() != 2 {
		t.Errorf("edges = %d, want 2", g.EdgeCount())
	}
	if len(g.Incoming("User")) != 1 {
		t.Errorf("User incoming = %d, want 1", len(g.Incoming("User")))
	}
	if e := g.Outgoing("Order")[0]; e.TargetModel != "User" || e.Cascade != schema.CascadeDelete {
		t.Errorf("edge = %+v", e)
	}
}

func TestBuildSkipsTransientAndEnumTargets(t *testing.T) {
	doc := &schema.Document{
		Name: "shop",
		Models: []*schema.Model{
			model("User"),
			model("Session",
				&schema.Field{Name: "UserId", Type: "int", Attributes: []string{"@reference(User)", "@transient"}},
				ref("StatusId", "Status", "")),
		},
		Enums: []*schema.Enum{{Name: "Status"}},
	}

	g := Build(doc)
	if g.EdgeCount() != 0 {
		t.Errorf("edges = %d, want 0", g.EdgeCount())
	}
}

func TestHasCycle(t *testing.T) {
	doc := &schema.Document{
		Name: "cyc",
		Models: []*schema.Model{
			model("A", ref("BId", "B", "")),
			model("B", ref("CId", "C", "")),
			model("C", ref("AId", "A", "")),
		},
	}

	g := Build(doc)
	cyclic, path := g.HasCycle()
	if !cyclic {
		t.Fatal("expected a cycle")
	}
	if len(path) < 4 || path[0] != path[len(path)-1] {
		t.Errorf("witness path should close on itself: %v", path)
	}
	if _, err := g.TopologicalOrder(); err == nil {
		t.Error("TopologicalOrder should fail on a cyclic graph")
	}
}

func TestTopologicalOrder(t *testing.T) {
	doc := &schema.Document{
		Name: "shop",
		Models: []*schema.Model{
			model("OrderItem", ref("OrderId", "Order", ""), ref("ProductId", "Product", "")),
			model("Order", ref("UserId", "User", "")),
			model("Product"),
			model("User"),
		},
	}

	g := Build(doc)
	order, err := g.TopologicalOrder()
	if err != nil {
		t.Fatalf("TopologicalOrder: %v", err)
	}

	pos := map[string]int{}
	for i, name := range order {
		pos[name] = i
	}
	if pos["User"] > pos["Order"] || pos["Order"] > pos["OrderItem"] || pos["Product"] > pos["OrderItem"] {
		t.Errorf("referenced models must precede referencers: %v", order)
	}
}

func TestLevels(t *testing.T) {
	doc := &schema.Document{
		Name: "shop",
		Models: []*schema.Model{
			model("User"),
			model("Product"),
			model("Order", ref("UserId", "User", "")),
			model("OrderItem", ref("OrderId", "Order", ""), ref("ProductId", "Product", "")),
		},
	}

	g := Build(doc)
	levels, err := g.Levels()
	if err != nil {
		t.Fatalf("Levels: %v", err)
	}
	if len(levels) != 3 {
		t.Fatalf("levels = %d, want 3", len(levels))
	}
	if levels[0][0] != "Product" || levels[0][1] != "User" {
		t.Errorf("level 0 = %v", levels[0])
	}
	if levels[1][0] != "Order" || levels[2][0] != "OrderItem" {
		t.Errorf("levels = %v", levels)
	}
}

func TestCascadeReachable(t *testing.T) {
	doc := &schema.Document{
		Name: "shop",
		Models: []*schema.Model{
			model("User"),
			model("Order", ref("UserId", "User", "")),
			model("OrderItem", ref("OrderId", "Order", "")),
			model("Audit", ref("OrderId", "Order", "!")),
		},
	}

	g := Build(doc)

	got := g.CascadeReachable("OrderItem")
	if len(got) != 2 || got[0] != "Order" || got[1] != "User" {
		t.Errorf("CascadeReachable(OrderItem) = %v", got)
	}
	// The NO ACTION edge stops propagation from Audit.
	if got := g.CascadeReachable("Audit"); len(got) != 0 {
		t.Errorf("CascadeReachable(Audit) = %v", got)
	}
}
