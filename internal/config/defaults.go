package config

// Default configuration values.
const (
	DefaultStringLength     = 255
	DefaultDecimalPrecision = "18,2"
	DefaultCascadeStrategy  = StrategyDirect
	DefaultConflictWindow   = 5
)

// defaultPreserveRoles are base names always kept verbatim as navigation
// names when no configured role list overrides them.
var defaultPreserveRoles = []string{
	"CreatedBy", "UpdatedBy", "ModifiedBy", "DeletedBy",
	"Owner", "Requester", "Approver", "Assignee",
}

// Default returns a Config populated with built-in defaults. The
// descriptive naming tier is opt-in: under defaults a reference field
// whose base name matches no rule navigates by the target model name.
func Default() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	return cfg
}

// ApplyDefaults fills zero-valued fields with built-in defaults.
func ApplyDefaults(c *Config) {
	if c == nil {
		return
	}
	if c.Naming.Patterns == nil {
		c.Naming.Patterns = map[string]string{}
	}
	if c.Naming.PrefixPatterns == nil {
		c.Naming.PrefixPatterns = map[string]string{}
	}
	if len(c.Naming.PreserveRoles) == 0 {
		c.Naming.PreserveRoles = append([]string(nil), defaultPreserveRoles...)
	}
	if c.Types.Patterns == nil {
		c.Types.Patterns = map[string]string{}
	}
	if c.Types.SQLTypes == nil {
		c.Types.SQLTypes = map[string]string{}
	}
	if c.Types.Namespaces == nil {
		c.Types.Namespaces = map[string]string{}
	}
	if c.Types.DefaultStringLength == 0 {
		c.Types.DefaultStringLength = DefaultStringLength
	}
	if c.Types.DecimalPrecision == "" {
		c.Types.DecimalPrecision = DefaultDecimalPrecision
	}
	if c.Validate.CascadeStrategy == "" {
		c.Validate.CascadeStrategy = DefaultCascadeStrategy
	}
	if c.Validate.MaxDirectConflicts == 0 {
		c.Validate.MaxDirectConflicts = DefaultConflictWindow
	}
}
