// Package builder turns a reconciled raw document into the resolved
// semantic model: it flattens inheritance chains, synthesizes the
// bidirectional relationship map from reference fields and explicit
// relation declarations, and resolves enum types for enum-like fields.
// All heuristics are driven by the configuration passed in at
// construction; the builder holds no package-level state.
package builder

import (
	"github.com/leapstack-labs/mdschema/internal/config"
	"github.com/leapstack-labs/mdschema/internal/naming"
	"github.com/leapstack-labs/mdschema/internal/typemap"
	"github.com/leapstack-labs/mdschema/pkg/schema"
)

// Builder resolves the semantic model for one or more documents.
type Builder struct {
	cfg    *config.Config
	namer  *naming.Namer
	mapper *typemap.Mapper
}

// New creates a builder over the given configuration.
func New(cfg *config.Config) *Builder {
	return &Builder{
		cfg:    cfg,
		namer:  naming.New(&cfg.Naming),
		mapper: typemap.NewMapper(&cfg.Types),
	}
}

// Build resolves the document in place and returns the non-fatal
// diagnostics collected along the way. Fatal semantic failures (an
// unresolvable inherited name) return a *schema.SemanticError.
func (b *Builder) Build(doc *schema.Document) ([]schema.Diagnostic, error) {
	var diags []schema.Diagnostic

	inhDiags, err := b.resolveInheritance(doc)
	if err != nil {
		return nil, err
	}
	diags = append(diags, inhDiags...)

	diags = append(diags, b.resolveEnums(doc)...)
	diags = append(diags, b.checkAttributes(doc)...)
	b.resolveRelationships(doc)

	return diags, nil
}

// checkAttributes surfaces recoverable attribute-resolution problems as
// diagnostics; the derived accessors already fall back to defaults.
func (b *Builder) checkAttributes(doc *schema.Document) []schema.Diagnostic {
	var diags []schema.Diagnostic
	for _, m := range doc.Models {
		for _, f := range m.Fields {
			if !f.IsComputed() {
				continue
			}
			if _, err := f.ComputedExpression(); err != nil {
				diags = append(diags, schema.Diagnostic{
					Code:     "attr-computed-invalid",
					Severity: schema.SeverityWarning,
					Message:  err.Error(),
					Model:    m.Name,
					Field:    f.Name,
					Pos:      schema.Position{Document: doc.Name, Line: f.Line},
				})
			}
		}
	}
	return diags
}
