// Package config provides the compiler configuration: navigation-name
// and data-type pattern tables, mapping registries, and validator
// settings. A Config is constructed once and passed by reference into
// the parser, builder, and validator — there is no package-level mutable
// state, so multiple compilations can run with different configurations
// in the same process.
package config

// Config is the full compiler configuration.
type Config struct {
	Naming   NamingConfig   `koanf:"naming"`
	Types    TypeConfig     `koanf:"types"`
	Validate ValidateConfig `koanf:"validate"`
}

// NamingConfig drives navigation-property name derivation.
type NamingConfig struct {
	// Patterns maps a field name exactly to a navigation name. Consulted
	// before any heuristic tier.
	Patterns map[string]string `koanf:"patterns"`

	// PrefixPatterns maps a field-name prefix to a navigation name.
	// Consulted after exact patterns, before the heuristics.
	PrefixPatterns map[string]string `koanf:"prefix_patterns"`

	// PreserveRoles lists base names kept verbatim as navigation names
	// (e.g. CreatedBy, Owner, Requester), extending the built-in set.
	PreserveRoles []string `koanf:"preserve_roles"`

	// PreferDescriptive enables the humanize tier for non-trivial base
	// names that match no other rule.
	PreferDescriptive bool `koanf:"prefer_descriptive"`

	// EnumPropertySuffix is appended to enum-backed property names by
	// emitters; carried here so all emitters agree.
	EnumPropertySuffix string `koanf:"enum_property_suffix"`
}

// TypeConfig drives data-type token interpretation and target mappings.
type TypeConfig struct {
	// Patterns maps custom type tokens to primitive kind names,
	// extending the closed built-in kind set.
	Patterns map[string]string `koanf:"patterns"`

	// SQLTypes overrides the kind→SQL-type mapping per kind name.
	SQLTypes map[string]string `koanf:"sql_types"`

	// Namespaces maps DSL namespace names to target namespaces.
	Namespaces map[string]string `koanf:"namespaces"`

	// DefaultStringLength applies when a string field has no length.
	DefaultStringLength int `koanf:"default_string_length"`

	// DecimalPrecision applies when a decimal field has no precision,
	// as "precision,scale".
	DecimalPrecision string `koanf:"decimal_precision"`
}

// ValidateConfig selects cascade-conflict detection behavior.
type ValidateConfig struct {
	// CascadeStrategy is "direct" (canonical) or "transitive".
	CascadeStrategy string `koanf:"cascade_strategy"`

	// MaxDirectConflicts caps the direct-edge conflict window: a target
	// with more conflicting edges than this is treated as intentional
	// ownership fan-out, not a conflict.
	MaxDirectConflicts int `koanf:"max_direct_conflicts"`
}

// Cascade strategy names.
const (
	StrategyDirect     = "direct"
	StrategyTransitive = "transitive"
)
