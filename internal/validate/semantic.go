// Package validate performs the post-build checks: semantic resolution
// of reference and relation targets, and cascade-delete path conflict
// detection over the reference graph. Semantic failures are fatal;
// cascade conflicts under the direct-edge strategy are structured
// warning data.
package validate

import (
	"fmt"

	"github.com/leapstack-labs/mdschema/internal/config"
	"github.com/leapstack-labs/mdschema/internal/refgraph"
	"github.com/leapstack-labs/mdschema/pkg/schema"
)

// Validator runs the semantic and cascade checks for one configuration.
type Validator struct {
	cfg *config.ValidateConfig
}

// New creates a Validator over the given settings.
func New(cfg *config.ValidateConfig) *Validator {
	return &Validator{cfg: cfg}
}

// Validate checks the built document. It returns the cascade conflicts
// found by the configured strategy; the error is non-nil for fatal
// findings (an unresolvable target, or any conflict under the
// transitive strategy).
func (v *Validator) Validate(doc *schema.Document) ([]schema.CascadeConflict, error) {
	if err := v.checkTargets(doc); err != nil {
		return nil, err
	}

	g := refgraph.Build(doc)
	switch v.cfg.CascadeStrategy {
	case config.StrategyTransitive:
		return v.transitiveConflicts(g)
	default:
		return v.directConflicts(g), nil
	}
}

// checkTargets verifies that every reference field's target and every
// explicit relation's target names a declared model or enum. The parser
// tolerates forward references, so this is the first place unresolved
// names become fatal.
func (v *Validator) checkTargets(doc *schema.Document) error {
	for _, m := range doc.Models {
		for _, f := range m.ReferenceFields() {
			target := f.ReferenceTarget()
			if target == "" || doc.HasType(target) {
				continue
			}
			return &schema.SemanticError{
				Document: doc.Name,
				Model:    m.Name,
				Field:    f.Name,
				Line:     f.Line,
				Message:  fmt.Sprintf("reference target %q is not a declared model or enum", target),
			}
		}
		for _, rel := range m.Relations {
			if doc.ModelByName(rel.Target) != nil {
				continue
			}
			return &schema.SemanticError{
				Document: doc.Name,
				Model:    m.Name,
				Field:    rel.Name,
				Line:     rel.Line,
				Message:  fmt.Sprintf("relation target %q is not a declared model", rel.Target),
			}
		}
	}
	return nil
}
