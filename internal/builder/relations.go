package builder

import (
	"github.com/leapstack-labs/mdschema/pkg/schema"
)

// resolveRelationships populates every model's Relationships list. Two
// sources feed it: reference fields imply a forward edge on the
// declaring model and a collection back edge on the target, and explicit
// Relations declarations contribute their side directly. Edges sharing
// (source, target, property name) merge: the later source enriches the
// earlier one instead of duplicating it.
func (b *Builder) resolveRelationships(doc *schema.Document) {
	merged := map[[3]string]*schema.Relationship{}

	attach := func(r *schema.Relationship) {
		if existing, ok := merged[r.Key()]; ok {
			enrich(existing, r)
			return
		}
		merged[r.Key()] = r
		if owner := doc.ModelByName(r.Source); owner != nil {
			owner.Relationships = append(owner.Relationships, r)
		}
	}

	for _, m := range doc.Models {
		if m.Abstract {
			continue
		}
		for _, f := range m.ReferenceFields() {
			target := f.ReferenceTarget()
			if doc.ModelByName(target) == nil {
				continue
			}
			cascade := f.CascadeBehavior()
			attach(&schema.Relationship{
				Source:          m.Name,
				Target:          target,
				Name:            b.namer.Navigation(f.Name, target),
				IsForeignKey:    true,
				ForeignKeyField: f.Name,
				Cardinality:     schema.CardinalityOne,
				Cascade:         cascade,
			})
			attach(&schema.Relationship{
				Source:          target,
				Target:          m.Name,
				Name:            b.namer.BackReference(f.Name, m.Name),
				IsCollection:    true,
				ForeignKeyField: f.Name,
				Cardinality:     schema.CardinalityMany,
				Cascade:         cascade,
			})
		}
	}

	for _, m := range doc.Models {
		if m.Abstract {
			continue
		}
		for _, rel := range m.Relations {
			declared, complement := b.explicitRelationship(m, rel)
			attach(declared)
			attach(complement)
		}
	}
}

// explicitRelationship converts a declared Relation into the declaring
// model's endpoint plus the complementary endpoint on the other model,
// so a Relation with no matching reference field still yields both
// sides. "to" means the declaring model holds the key; "from" declares
// the collection side locally, the target holds the key.
func (b *Builder) explicitRelationship(m *schema.Model, rel *schema.Relation) (declared, complement *schema.Relationship) {
	declared = &schema.Relationship{
		Source:          m.Name,
		Target:          rel.Target,
		Name:            rel.Name,
		ForeignKeyField: rel.ForeignKey,
		Cardinality:     rel.Cardinality,
		Cascade:         rel.Cascade,
	}
	if declared.Name == "" {
		declared.Name = rel.Target
	}

	complement = &schema.Relationship{
		Source:          rel.Target,
		Target:          m.Name,
		ForeignKeyField: rel.ForeignKey,
		Cascade:         rel.Cascade,
	}

	switch rel.Direction {
	case schema.DirectionFrom:
		declared.IsCollection = true
		if declared.Cardinality == "" {
			declared.Cardinality = schema.CardinalityMany
		}
		complement.IsForeignKey = true
		complement.Cardinality = schema.CardinalityOne
		if rel.ForeignKey != "" {
			complement.Name = b.namer.Navigation(rel.ForeignKey, m.Name)
		} else {
			complement.Name = m.Name
		}
	default:
		declared.IsForeignKey = true
		if declared.Cardinality == "" {
			declared.Cardinality = schema.CardinalityOne
		}
		complement.IsCollection = true
		complement.Cardinality = schema.CardinalityMany
		complement.Name = b.namer.BackReference(rel.ForeignKey, m.Name)
	}
	if declared.Cardinality == schema.CardinalityMany {
		declared.IsCollection = true
	}
	return declared, complement
}

// enrich folds a later-discovered edge into an existing one with the
// same identity. Flags accumulate; scalar fields fill in only when the
// existing edge left them empty, except Cascade where an explicit
// declaration overrides an inferred value.
func enrich(dst, src *schema.Relationship) {
	dst.IsForeignKey = dst.IsForeignKey || src.IsForeignKey
	dst.IsCollection = dst.IsCollection || src.IsCollection
	if dst.ForeignKeyField == "" {
		dst.ForeignKeyField = src.ForeignKeyField
	}
	if dst.Cardinality == "" {
		dst.Cardinality = src.Cardinality
	}
	if src.Cascade != "" {
		dst.Cascade = src.Cascade
	}
}
