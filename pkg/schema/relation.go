package schema

// Relation direction constants.
const (
	DirectionTo   = "to"
	DirectionFrom = "from"
)

// Cardinality tags.
const (
	CardinalityOne  = "one"
	CardinalityMany = "many"
)

// Relation is an explicit relationship declaration from a model's
// Relations subsection. It is distinct from a field's implicit
// @reference: both can coexist and the builder merges them by
// (target, property name) without duplication.
type Relation struct {
	Name        string
	Target      string
	Direction   string // "to" or "from"
	ForeignKey  string // optional foreign-key field name
	Cardinality string // "one" or "many"
	Cascade     string // optional cascade override
	Load        string // optional load override, passed through to emitters
	Line        int
}

// Relationship is a resolved relationship endpoint produced by the
// semantic model builder: one forward (FK-holding) edge and one back
// (collection) edge per discovered relationship.
type Relationship struct {
	Source string // owning model
	Target string // referenced model

	// Name is the navigation property name on the Source side.
	Name string

	// IsForeignKey marks the forward edge (the side holding the key).
	IsForeignKey bool

	// IsCollection marks the back edge (the many side).
	IsCollection bool

	// ForeignKeyField is the field holding the key on the forward side.
	ForeignKeyField string

	Cardinality string
	Cascade     string
}

// Key returns the merge-identity key (source, target, property name).
func (r *Relationship) Key() [3]string {
	return [3]string{r.Source, r.Target, r.Name}
}
