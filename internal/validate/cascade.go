package validate

import (
	"fmt"
	"sort"
	"strings"

	"github.com/leapstack-labs/mdschema/internal/refgraph"
	"github.com/leapstack-labs/mdschema/pkg/schema"
)

// directConflictFloor and the configured ceiling bound the direct-edge
// conflict window. Below the floor there is nothing to conflict; above
// the ceiling the fan-out is treated as intentional ownership, not a
// modeling mistake.
const directConflictFloor = 2

// directConflicts groups incoming CASCADE edges by target model,
// deduplicated by (source, field), and reports a warning conflict for
// every target whose edge count falls inside the conflict window.
func (v *Validator) directConflicts(g *refgraph.Graph) []schema.CascadeConflict {
	ceiling := v.cfg.MaxDirectConflicts
	if ceiling < directConflictFloor {
		ceiling = directConflictFloor
	}

	var conflicts []schema.CascadeConflict
	for _, target := range g.Names() {
		seen := map[[2]string]bool{}
		var edges []schema.ReferenceEdge
		for _, e := range g.Incoming(target) {
			if e.Cascade != schema.CascadeDelete {
				continue
			}
			key := [2]string{e.SourceModel, e.FieldName}
			if seen[key] {
				continue
			}
			seen[key] = true
			edges = append(edges, e)
		}
		if len(edges) < directConflictFloor || len(edges) > ceiling {
			continue
		}
		conflicts = append(conflicts, schema.CascadeConflict{
			TargetModel: target,
			Edges:       edges,
			Severity:    schema.SeverityWarning,
			Suggestion:  remediation(edges),
		})
	}
	return conflicts
}

// transitiveConflicts enumerates every distinct CASCADE-only path from
// every source node. A target reached by more than one such path is a
// hard error; the conflicts are still returned so callers can render
// them.
func (v *Validator) transitiveConflicts(g *refgraph.Graph) ([]schema.CascadeConflict, error) {
	// pathsTo collects, per target, the first edge of every distinct
	// CASCADE path reaching it.
	pathsTo := map[string][]schema.ReferenceEdge{}

	var walk func(name string, first schema.ReferenceEdge, onPath map[string]bool)
	walk = func(name string, first schema.ReferenceEdge, onPath map[string]bool) {
		for _, e := range g.Outgoing(name) {
			if e.Cascade != schema.CascadeDelete {
				continue
			}
			if onPath[e.TargetModel] {
				continue
			}
			pathsTo[e.TargetModel] = append(pathsTo[e.TargetModel], first)
			onPath[e.TargetModel] = true
			walk(e.TargetModel, first, onPath)
			delete(onPath, e.TargetModel)
		}
	}

	for _, source := range g.Names() {
		for _, e := range g.Outgoing(source) {
			if e.Cascade != schema.CascadeDelete {
				continue
			}
			onPath := map[string]bool{source: true, e.TargetModel: true}
			pathsTo[e.TargetModel] = append(pathsTo[e.TargetModel], e)
			walk(e.TargetModel, e, onPath)
		}
	}

	targets := make([]string, 0, len(pathsTo))
	for target := range pathsTo {
		targets = append(targets, target)
	}
	sort.Strings(targets)

	var conflicts []schema.CascadeConflict
	for _, target := range targets {
		edges := pathsTo[target]
		if len(edges) < directConflictFloor {
			continue
		}
		conflicts = append(conflicts, schema.CascadeConflict{
			TargetModel: target,
			Edges:       edges,
			Severity:    schema.SeverityError,
			Suggestion:  remediation(edges),
		})
	}
	if len(conflicts) > 0 {
		names := make([]string, len(conflicts))
		for i, c := range conflicts {
			names[i] = c.TargetModel
		}
		return conflicts, fmt.Errorf("cascade delete paths conflict on: %s", strings.Join(names, ", "))
	}
	return nil, nil
}

// remediation suggests keeping the first conflicting edge CASCADE and
// downgrading the rest to NO ACTION.
func remediation(edges []schema.ReferenceEdge) string {
	if len(edges) == 0 {
		return ""
	}
	first := edges[0]
	rest := make([]string, 0, len(edges)-1)
	for _, e := range edges[1:] {
		rest = append(rest, fmt.Sprintf("%s.%s", e.SourceModel, e.FieldName))
	}
	return fmt.Sprintf("keep %s.%s CASCADE and annotate %s NO ACTION",
		first.SourceModel, first.FieldName, strings.Join(rest, ", "))
}
