// Package refgraph provides the directed reference graph over a
// document's non-abstract models. Edges carry the originating field and
// its resolved cascade behavior; the cascade validator traverses them,
// and emitters use the topological order to write tables in
// foreign-key-safe order.
package refgraph

import (
	"fmt"
	"sort"

	"github.com/leapstack-labs/mdschema/pkg/schema"
)

// Graph is a directed reference graph. Nodes are model names; an edge
// source→target means source holds a reference (foreign key) to target.
type Graph struct {
	nodes map[string]*schema.Model
	out   map[string][]schema.ReferenceEdge // source -> outgoing edges
	in    map[string][]schema.ReferenceEdge // target -> incoming edges
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{
		nodes: make(map[string]*schema.Model),
		out:   make(map[string][]schema.ReferenceEdge),
		in:    make(map[string][]schema.ReferenceEdge),
	}
}

// Build constructs the reference graph for a document: one node per
// non-abstract model, one edge per persisted reference field whose
// target is itself a declared model. Enum references carry no delete
// semantics and are skipped.
func Build(doc *schema.Document) *Graph {
	g := New()
	for _, m := range doc.NonAbstractModels() {
		g.AddNode(m)
	}
	for _, m := range doc.NonAbstractModels() {
		for _, f := range m.ReferenceFields() {
			target := f.ReferenceTarget()
			if doc.ModelByName(target) == nil {
				continue
			}
			g.AddEdge(schema.ReferenceEdge{
				SourceModel: m.Name,
				TargetModel: target,
				FieldName:   f.Name,
				Cascade:     f.CascadeBehavior(),
			})
		}
	}
	return g
}

// AddNode registers a model node.
func (g *Graph) AddNode(m *schema.Model) {
	if _, ok := g.nodes[m.Name]; !ok {
		g.nodes[m.Name] = m
		g.out[m.Name] = nil
		g.in[m.Name] = nil
	}
}

// AddEdge records a reference edge. Both endpoints must be known; edges
// to models outside the graph (abstract bases, enums) are dropped.
func (g *Graph) AddEdge(e schema.ReferenceEdge) {
	if _, ok := g.nodes[e.SourceModel]; !ok {
		return
	}
	if _, ok := g.nodes[e.TargetModel]; !ok {
		return
	}
	g.out[e.SourceModel] = append(g.out[e.SourceModel], e)
	g.in[e.TargetModel] = append(g.in[e.TargetModel], e)
}

// Node returns the model for a node name, or nil.
func (g *Graph) Node(name string) *schema.Model {
	return g.nodes[name]
}

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// EdgeCount returns the number of edges.
func (g *Graph) EdgeCount() int {
	n := 0
	for _, edges := range g.out {
		n += len(edges)
	}
	return n
}

// Outgoing returns the edges leaving a model, in insertion order.
func (g *Graph) Outgoing(name string) []schema.ReferenceEdge {
	return g.out[name]
}

// Incoming returns the edges arriving at a model, in insertion order.
func (g *Graph) Incoming(name string) []schema.ReferenceEdge {
	return g.in[name]
}

// Names returns all node names sorted alphabetically.
func (g *Graph) Names() []string {
	names := make([]string, 0, len(g.nodes))
	for name := range g.nodes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// HasCycle reports whether the graph contains a reference cycle, along
// with one witness path.
func (g *Graph) HasCycle() (bool, []string) {
	visited := make(map[string]bool)
	onStack := make(map[string]bool)
	cameFrom := make(map[string]string)

	var cycle []string
	var dfs func(name string) bool
	dfs = func(name string) bool {
		visited[name] = true
		onStack[name] = true
		for _, e := range g.out[name] {
			next := e.TargetModel
			if !visited[next] {
				cameFrom[next] = name
				if dfs(next) {
					return true
				}
			} else if onStack[next] {
				cycle = []string{next}
				for cur := name; cur != next; cur = cameFrom[cur] {
					cycle = append([]string{cur}, cycle...)
				}
				cycle = append([]string{next}, cycle...)
				return true
			}
		}
		onStack[name] = false
		return false
	}

	for _, name := range g.Names() {
		if !visited[name] {
			if dfs(name) {
				return true, cycle
			}
		}
	}
	return false, nil
}

// TopologicalOrder returns model names so that every referenced model
// precedes its referencers, the order an emitter must create tables in.
// Ties break alphabetically for deterministic output. Errors on cycles.
func (g *Graph) TopologicalOrder() ([]string, error) {
	if cyclic, path := g.HasCycle(); cyclic {
		return nil, fmt.Errorf("reference cycle: %v", path)
	}

	visited := make(map[string]bool)
	var order []string

	var visit func(name string)
	visit = func(name string) {
		if visited[name] {
			return
		}
		visited[name] = true
		targets := make([]string, 0, len(g.out[name]))
		for _, e := range g.out[name] {
			targets = append(targets, e.TargetModel)
		}
		sort.Strings(targets)
		for _, t := range targets {
			visit(t)
		}
		order = append(order, name)
	}

	for _, name := range g.Names() {
		visit(name)
	}
	return order, nil
}

// Levels groups models by reference depth: level 0 has no outgoing
// references, and every model sits one past its deepest referenced
// model. Each level is sorted for deterministic output. Errors on cycles.
func (g *Graph) Levels() ([][]string, error) {
	if cyclic, path := g.HasCycle(); cyclic {
		return nil, fmt.Errorf("reference cycle: %v", path)
	}

	depth := make(map[string]int)
	var level func(name string) int
	level = func(name string) int {
		if d, ok := depth[name]; ok {
			return d
		}
		max := -1
		for _, e := range g.out[name] {
			if d := level(e.TargetModel); d > max {
				max = d
			}
		}
		depth[name] = max + 1
		return max + 1
	}

	maxLevel := 0
	for name := range g.nodes {
		if d := level(name); d > maxLevel {
			maxLevel = d
		}
	}

	levels := make([][]string, maxLevel+1)
	for name, d := range depth {
		levels[d] = append(levels[d], name)
	}
	for i := range levels {
		sort.Strings(levels[i])
	}
	return levels, nil
}

// CascadeReachable returns every model reachable from start by following
// only CASCADE edges, excluding start itself, sorted.
func (g *Graph) CascadeReachable(start string) []string {
	seen := make(map[string]bool)
	var visit func(name string)
	visit = func(name string) {
		for _, e := range g.out[name] {
			if e.Cascade != schema.CascadeDelete {
				continue
			}
			if !seen[e.TargetModel] {
				seen[e.TargetModel] = true
				visit(e.TargetModel)
			}
		}
	}
	visit(start)

	out := make([]string, 0, len(seen))
	for name := range seen {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
